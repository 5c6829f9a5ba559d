package scene

import "fmt"

// CollisionEvent reports two models whose bounding boxes overlap. Models[0]
// is the model the event was delivered to first. Both directions of one
// collision share ID.
type CollisionEvent struct {
	ID     uint64
	Models [2]NodeID
}

// samePair reports whether e and o name the same two models, in any order.
func (e CollisionEvent) samePair(o CollisionEvent) bool {
	return (e.Models[0] == o.Models[0] && e.Models[1] == o.Models[1]) ||
		(e.Models[0] == o.Models[1] && e.Models[1] == o.Models[0])
}

// CollisionListener receives collision events.
type CollisionListener func(CollisionEvent)

type emitter struct {
	listeners map[int]CollisionListener
	order     []int
	next      int
	last      *CollisionEvent
}

func (e *emitter) on(fn CollisionListener) int {
	if e.listeners == nil {
		e.listeners = make(map[int]CollisionListener)
	}
	key := e.next
	e.next++
	e.listeners[key] = fn
	e.order = append(e.order, key)
	return key
}

func (e *emitter) off(key int) {
	if _, ok := e.listeners[key]; !ok {
		return
	}
	delete(e.listeners, key)
	for i, k := range e.order {
		if k == key {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

// emit delivers ev unless it mirrors the last event this node saw.
func (e *emitter) emit(ev CollisionEvent) {
	if e.last != nil && e.last.ID == ev.ID && e.last.samePair(ev) {
		return
	}
	e.last = &ev
	// listeners may unsubscribe while being called
	keys := append([]int(nil), e.order...)
	for _, k := range keys {
		if fn, ok := e.listeners[k]; ok {
			fn(ev)
		}
	}
}

// OnCollision registers fn for collisions of id or any of its descendants.
// The returned func removes the listener.
func (s *Scene) OnCollision(id NodeID, fn CollisionListener) (cancel func(), err error) {
	n := s.Node(id)
	if n == nil {
		return nil, fmt.Errorf("listen on %d: %w", id, ErrUnknownNode)
	}
	key := n.events.on(fn)
	return func() { n.events.off(key) }, nil
}

// OnceCollision registers fn for the next collision delivered to id.
func (s *Scene) OnceCollision(id NodeID, fn CollisionListener) (cancel func(), err error) {
	n := s.Node(id)
	if n == nil {
		return nil, fmt.Errorf("listen on %d: %w", id, ErrUnknownNode)
	}
	var key int
	key = n.events.on(func(ev CollisionEvent) {
		n.events.off(key)
		fn(ev)
	})
	return func() { n.events.off(key) }, nil
}

// EmitCollision reports that a and b collide. The event reaches a as (a, b)
// and b as (b, a), each walking up through its ancestors. A node reached by
// both directions delivers only the first.
func (s *Scene) EmitCollision(a, b NodeID, id uint64) {
	s.bubble(a, CollisionEvent{ID: id, Models: [2]NodeID{a, b}})
	s.bubble(b, CollisionEvent{ID: id, Models: [2]NodeID{b, a}})
}

func (s *Scene) bubble(from NodeID, ev CollisionEvent) {
	for id := from; id != None; {
		n := s.Node(id)
		if n == nil {
			return
		}
		n.events.emit(ev)
		id = n.parent
	}
}
