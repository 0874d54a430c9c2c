package system

import (
	"testing"

	"github.com/milk9111/sprite2d/collider"
	"github.com/milk9111/sprite2d/ecs"
	"github.com/milk9111/sprite2d/ecs/component"
	"github.com/milk9111/sprite2d/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func spawn(t *testing.T, w *ecs.World, label string, c collider.Collider, x, y float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.LabelComponent.Kind(), &component.Label{Name: label}))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, Scale: 1}))
	require.NoError(t, ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{Shape: c, Enabled: true}))
	return e
}

func pairEvents(events []ecs.CollisionEvent) []physics.Event {
	if len(events) == 0 {
		return nil
	}
	out := make([]physics.Event, len(events))
	for i, e := range events {
		out[i] = e.Event
	}
	return out
}

func TestMovementSystem(t *testing.T) {
	w := ecs.NewWorld()
	e := spawn(t, w, "a", collider.Circle(1), 1, 2)
	require.NoError(t, ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{X: 3, Y: -1, Angular: 0.5}))

	NewMovementSystem().Update(w)
	NewMovementSystem().Update(w)

	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	require.True(t, ok)
	assert.InDelta(t, 7, tr.X, 1e-9)
	assert.InDelta(t, 0, tr.Y, 1e-9)
	assert.InDelta(t, 1, tr.Rotation, 1e-9)
}

func TestCollisionSystemPublishesEdges(t *testing.T) {
	w := ecs.NewWorld()
	a := spawn(t, w, "a", collider.Circle(10), 0, 25)
	b := spawn(t, w, "b", collider.Circle(10), 0, 0)
	require.NoError(t, ecs.Add(w, a, component.VelocityComponent.Kind(), &component.Velocity{Y: -10}))

	log := NewEventLogSystem(4)
	sched := ecs.NewScheduler(NewMovementSystem(), NewCollisionSystem(nil, zaptest.NewLogger(t)), log)

	var seen [][]physics.Event
	record := &recorder{fn: func(w *ecs.World) { seen = append(seen, pairEvents(w.Events().Items())) }}
	sched.Add(record)

	w.Update(sched) // 15 apart
	assert.True(t, ecs.Has(w, a, component.CollidingComponent.Kind()))
	assert.True(t, ecs.Has(w, b, component.CollidingComponent.Kind()))

	w.Update(sched) // 5 apart
	w.Update(sched) // 5 apart on the other side
	w.Update(sched) // 15 apart
	w.Update(sched) // 25 apart
	assert.False(t, ecs.Has(w, a, component.CollidingComponent.Kind()))

	pair := physics.NewPair("a", "b")
	assert.Equal(t, [][]physics.Event{
		{{Pair: pair, State: physics.Begin}},
		nil,
		nil,
		nil,
		{{Pair: pair, State: physics.End}},
	}, seen)

	entries := log.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, uint64(0), entries[0].Tick)
	assert.Equal(t, uint64(4), entries[1].Tick)
	assert.Equal(t, []string{"     0 begin a<->b", "     4 end   a<->b"}, log.Lines())
}

func TestCollisionSystemSnapshotOrder(t *testing.T) {
	w := ecs.NewWorld()
	spawn(t, w, "first", collider.Circle(1), 0, 0)
	spawn(t, w, "second", collider.Circle(1), 100, 0)
	disabled := spawn(t, w, "third", collider.Circle(1), 200, 0)
	c, _ := ecs.Get(w, disabled, component.ColliderComponent.Kind())
	c.Enabled = false

	sys := NewCollisionSystem(nil, nil)
	sys.Update(w)

	snap := sys.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "first", snap[0].Label)
	assert.Equal(t, "second", snap[1].Label)
	assert.False(t, snap[2].CollisionEnabled)
}

func TestCollisionSystemReset(t *testing.T) {
	w := ecs.NewWorld()
	a := spawn(t, w, "a", collider.Rect(10, 10), 0, 0)
	spawn(t, w, "b", collider.Rect(10, 10), 3, 3)

	sys := NewCollisionSystem(physics.NewScanner(), nil)
	sys.Update(w)
	require.Len(t, w.Events().Drain(), 1)

	sys.Reset(w)
	ended := pairEvents(w.Events().Drain())
	assert.Equal(t, []physics.Event{{Pair: physics.NewPair("a", "b"), State: physics.End}}, ended)
	assert.False(t, ecs.Has(w, a, component.CollidingComponent.Kind()))
}

func TestCollisionSystemMarksScannedEntity(t *testing.T) {
	w := ecs.NewWorld()
	disabled := spawn(t, w, "dup", collider.Circle(5), 0, 0)
	c, _ := ecs.Get(w, disabled, component.ColliderComponent.Kind())
	c.Enabled = false
	flat := spawn(t, w, "dup", collider.Polygon(collider.Pt(0, 0), collider.Pt(1, 0), collider.Pt(2, 0)), 0, 0)
	live := spawn(t, w, "dup", collider.Circle(5), 0, 0)
	other := spawn(t, w, "x", collider.Circle(5), 1, 0)

	NewCollisionSystem(nil, nil).Update(w)

	colliding := component.CollidingComponent.Kind()
	assert.False(t, ecs.Has(w, disabled, colliding))
	assert.False(t, ecs.Has(w, flat, colliding))
	assert.True(t, ecs.Has(w, live, colliding))
	assert.True(t, ecs.Has(w, other, colliding))

	// Scripts still resolve the label to the first entity carrying it.
	assert.Equal(t, disabled, LabelIndex(w)["dup"])
}

func TestCollisionSystemLogsFailedMarker(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	w := ecs.NewWorld()
	a := spawn(t, w, "a", collider.Circle(5), 0, 0)
	b := spawn(t, w, "b", collider.Circle(5), 100, 0)

	sys := NewCollisionSystem(nil, zap.New(core))
	sys.Update(w)
	require.True(t, ecs.DestroyEntity(w, a))

	sys.publish(w, []physics.Event{{Pair: physics.NewPair("a", "b"), State: physics.Begin}})

	assert.True(t, ecs.Has(w, b, component.CollidingComponent.Kind()))
	failed := logs.FilterMessage("colliding marker not added").All()
	require.Len(t, failed, 1)
	assert.Equal(t, component.ErrEntityNotAlive.Error(), failed[0].ContextMap()["error"])
}

func TestEventLogBounded(t *testing.T) {
	log := NewEventLogSystem(2)
	for i := 0; i < 5; i++ {
		log.Record(ecs.CollisionEvent{Tick: uint64(i)})
	}
	entries := log.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, uint64(3), entries[0].Tick)
	assert.Equal(t, uint64(4), entries[1].Tick)

	assert.Equal(t, defaultEventLogSize, NewEventLogSystem(0).size)
}

type recorder struct {
	fn func(w *ecs.World)
}

func (r *recorder) Update(w *ecs.World) { r.fn(w) }
