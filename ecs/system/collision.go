package system

import (
	"github.com/milk9111/sprite2d/collider"
	"github.com/milk9111/sprite2d/ecs"
	"github.com/milk9111/sprite2d/ecs/component"
	"github.com/milk9111/sprite2d/physics"
	"go.uber.org/zap"
)

// CollisionSystem snapshots every labelled collider in entity id order, runs
// the scanner over it and publishes the resulting events on the world queue.
type CollisionSystem struct {
	scanner  *physics.Scanner
	log      *zap.Logger
	snapshot []physics.Entity
	ids      []ecs.Entity
}

func NewCollisionSystem(scanner *physics.Scanner, log *zap.Logger) *CollisionSystem {
	if scanner == nil {
		scanner = physics.NewScanner()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CollisionSystem{scanner: scanner, log: log}
}

func (s *CollisionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	s.publish(w, s.scanner.Scan(s.collect(w)))
}

// Reset ends every active contact, e.g. before the scene is rebuilt.
func (s *CollisionSystem) Reset(w *ecs.World) {
	if w == nil {
		s.scanner.Reset()
		return
	}
	s.publish(w, s.scanner.Reset())
}

// Snapshot returns the entities handed to the scanner on the last tick.
func (s *CollisionSystem) Snapshot() []physics.Entity {
	return s.snapshot
}

func (s *CollisionSystem) collect(w *ecs.World) []physics.Entity {
	s.snapshot = s.snapshot[:0]
	s.ids = s.ids[:0]
	ecs.ForEach3(w,
		component.LabelComponent.Kind(),
		component.TransformComponent.Kind(),
		component.ColliderComponent.Kind(),
		func(e ecs.Entity, l *component.Label, t *component.Transform, c *component.Collider) {
			s.ids = append(s.ids, e)
			s.snapshot = append(s.snapshot, physics.Entity{
				Label:            l.Name,
				Translation:      collider.Pt(t.X, t.Y),
				Rotation:         t.Rotation,
				Scale:            t.Scale,
				Collider:         c.Shape,
				CollisionEnabled: c.Enabled,
			})
		})
	return s.snapshot
}

func (s *CollisionSystem) publish(w *ecs.World, events []physics.Event) {
	if len(events) == 0 {
		return
	}
	index := s.scannedIndex()
	for _, ev := range events {
		w.Events().Push(ecs.CollisionEvent{Tick: w.Tick(), Event: ev})
		s.log.Debug("collision",
			zap.Stringer("pair", ev.Pair),
			zap.Stringer("state", ev.State),
			zap.Uint64("tick", w.Tick()))

		for _, label := range []string{ev.Pair.A, ev.Pair.B} {
			e, ok := index[label]
			if !ok {
				continue
			}
			s.markColliding(w, e, ev.State)
		}
	}
}

// scannedIndex maps each label to the entity the scanner kept for it on the
// last tick: the lowest-id entity the scanner found eligible.
func (s *CollisionSystem) scannedIndex() map[string]ecs.Entity {
	index := make(map[string]ecs.Entity, len(s.snapshot))
	for i, e := range s.snapshot {
		if _, dup := index[e.Label]; dup || !s.scanner.Eligible(e) {
			continue
		}
		index[e.Label] = s.ids[i]
	}
	return index
}

func (s *CollisionSystem) markColliding(w *ecs.World, e ecs.Entity, state physics.EventState) {
	kind := component.CollidingComponent.Kind()
	c, ok := ecs.Get(w, e, kind)
	switch state {
	case physics.Begin:
		if !ok {
			if err := ecs.Add(w, e, kind, &component.Colliding{Count: 1}); err != nil {
				s.log.Debug("colliding marker not added",
					zap.Stringer("entity", e),
					zap.Error(err))
			}
			return
		}
		c.Count++
	case physics.End:
		if !ok {
			return
		}
		c.Count--
		if c.Count <= 0 {
			ecs.Remove(w, e, kind)
		}
	}
}

// LabelIndex maps each label to the lowest-id entity carrying it, whether or
// not its collider is enabled. Scripts use it to reach disabled entities.
func LabelIndex(w *ecs.World) map[string]ecs.Entity {
	index := make(map[string]ecs.Entity)
	ecs.ForEach(w, component.LabelComponent.Kind(), func(e ecs.Entity, l *component.Label) {
		if _, dup := index[l.Name]; !dup {
			index[l.Name] = e
		}
	})
	return index
}
