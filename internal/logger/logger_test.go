package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestDefaultIsSilent(t *testing.T) {
	Set(nil)
	if Get().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should be disabled")
	}
}

func TestSet(t *testing.T) {
	var buf bytes.Buffer
	Set(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { Set(nil) })

	Get().Warn("degenerate polygon", "id", "p1")
	if !strings.Contains(buf.String(), "degenerate polygon") {
		t.Errorf("log output = %q", buf.String())
	}
}
