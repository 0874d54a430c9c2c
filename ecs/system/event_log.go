package system

import (
	"fmt"

	"github.com/milk9111/sprite2d/ecs"
)

const defaultEventLogSize = 12

// EventLogSystem keeps the most recent collision events for the overlay.
type EventLogSystem struct {
	entries []ecs.CollisionEvent
	size    int
}

func NewEventLogSystem(size int) *EventLogSystem {
	if size <= 0 {
		size = defaultEventLogSize
	}
	return &EventLogSystem{size: size}
}

func (s *EventLogSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	s.Record(w.Events().Items()...)
}

// Record appends events, dropping the oldest beyond the configured size.
func (s *EventLogSystem) Record(events ...ecs.CollisionEvent) {
	s.entries = append(s.entries, events...)
	if over := len(s.entries) - s.size; over > 0 {
		s.entries = append(s.entries[:0], s.entries[over:]...)
	}
}

// Entries returns the retained events, oldest first.
func (s *EventLogSystem) Entries() []ecs.CollisionEvent {
	return append([]ecs.CollisionEvent(nil), s.entries...)
}

// Lines formats the retained events for display, oldest first.
func (s *EventLogSystem) Lines() []string {
	lines := make([]string, len(s.entries))
	for i, e := range s.entries {
		lines[i] = fmt.Sprintf("%6d %-5s %s", e.Tick, e.State, e.Pair)
	}
	return lines
}
