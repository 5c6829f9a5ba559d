package math3d

import (
	"testing"
)

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Translate(V3(1, 2, 3))
	m2 := RotateY(0.5)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4MulVec4(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.5))
	v := V4(1, 2, 3, 1)

	for b.Loop() {
		_ = m.MulVec4(v)
	}
}

func BenchmarkMat4Inverse(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.5)).Mul(Scale(V3(2, 2, 2)))

	for b.Loop() {
		_, _ = m.Inverse()
	}
}

func BenchmarkNewellNormal(b *testing.B) {
	pts := []Vec3{
		V3(-1, -1, 0), V3(1, -1, 0), V3(1, 1, 0), V3(0, 2, 0), V3(-1, 1, 0),
	}

	for b.Loop() {
		_, _ = NewellNormal(pts)
	}
}

func BenchmarkModelViewProjection(b *testing.B) {
	eye := V3(0, 0, 10)
	world := Translate(eye).Mul(LookAtRotation(eye, V3(0, 0, 0), Up()))
	view, _ := world.Inverse()
	proj := Perspective(0.87, 1.333, 0.1, 100.0)
	model := RotateEuler(0.3, 0.2, 0.1)

	for b.Loop() {
		_ = proj.Mul(view).Mul(model)
	}
}
