package ecs

import "github.com/milk9111/sprite2d/physics"

// CollisionEvent is a physics event stamped with the tick it was raised on.
type CollisionEvent struct {
	Tick uint64
	physics.Event
}

// EventQueue is a FIFO of this tick's collision events.
type EventQueue struct {
	items []CollisionEvent
}

func (q *EventQueue) Push(evt CollisionEvent) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Items returns the queued events without clearing them.
func (q *EventQueue) Items() []CollisionEvent {
	if q == nil {
		return nil
	}
	return q.items
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []CollisionEvent {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
