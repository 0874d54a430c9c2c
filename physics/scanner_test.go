package physics

import (
	"fmt"
	"math"
	"testing"

	"github.com/milk9111/sprite2d/collider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func ent(label string, c collider.Collider, x, y float64) Entity {
	return Entity{
		Label:            label,
		Translation:      collider.Pt(x, y),
		Scale:            1,
		Collider:         c,
		CollisionEnabled: true,
	}
}

func TestPairUnordered(t *testing.T) {
	assert.Equal(t, NewPair("a", "b"), NewPair("b", "a"))

	set := map[Pair]int{NewPair("x", "y"): 1}
	_, ok := set[NewPair("y", "x")]
	assert.True(t, ok)

	p := NewPair("car", "barrel")
	assert.True(t, p.Contains("car"))
	assert.Equal(t, "car", p.Other("barrel"))
	assert.Equal(t, "barrel", p.Other("car"))
	assert.Equal(t, "", p.Other("tree"))
	assert.Equal(t, "barrel<->car", p.String())
}

func TestScanEmpty(t *testing.T) {
	s := NewScanner()
	assert.Empty(t, s.Scan(nil))
	assert.Empty(t, s.Scan([]Entity{}))
}

func TestScanSelfExclusion(t *testing.T) {
	for _, c := range []collider.Collider{collider.None(), collider.Circle(10), collider.Rect(5, 5)} {
		s := NewScanner()
		for tick := 0; tick < 3; tick++ {
			assert.Empty(t, s.Scan([]Entity{ent("solo", c, 0, 0)}))
		}
	}
}

func TestScanEdgeTriggered(t *testing.T) {
	s := NewScanner()
	overlapping := []Entity{
		ent("a", collider.Circle(5), 0, 0),
		ent("b", collider.Circle(5), 4, 0),
	}

	events := s.Scan(overlapping)
	require.Equal(t, []Event{{Pair: NewPair("a", "b"), State: Begin}}, events)

	assert.Empty(t, s.Scan(overlapping))
	assert.Empty(t, s.Scan(overlapping))

	apart := []Entity{
		ent("a", collider.Circle(5), 0, 0),
		ent("b", collider.Circle(5), 40, 0),
	}
	events = s.Scan(apart)
	require.Equal(t, []Event{{Pair: NewPair("a", "b"), State: End}}, events)
	assert.Empty(t, s.Scan(apart))
}

func TestScanDisabledAndMissing(t *testing.T) {
	s := NewScanner()
	b := ent("b", collider.Circle(5), 1, 0)
	b.CollisionEnabled = false

	assert.Empty(t, s.Scan([]Entity{ent("a", collider.Circle(5), 0, 0), b}))

	events := s.Scan([]Entity{ent("a", collider.Circle(5), 0, 0), ent("b", collider.Circle(5), 1, 0)})
	require.Len(t, events, 1)
	assert.Equal(t, Begin, events[0].State)

	// Disabling a touching entity ends the contact.
	events = s.Scan([]Entity{ent("a", collider.Circle(5), 0, 0), b})
	require.Len(t, events, 1)
	assert.Equal(t, End, events[0].State)

	// So does the entity disappearing from the snapshot.
	s.Scan([]Entity{ent("a", collider.Circle(5), 0, 0), ent("b", collider.Circle(5), 1, 0)})
	events = s.Scan([]Entity{ent("a", collider.Circle(5), 0, 0)})
	require.Equal(t, []Event{{Pair: NewPair("a", "b"), State: End}}, events)
}

func TestScanMalformedSnapshot(t *testing.T) {
	s := NewScanner(WithLogger(zaptest.NewLogger(t)))
	entities := []Entity{
		ent("a", collider.Circle(5), 0, 0),
		ent("a", collider.Circle(5), 100, 100),
		ent("", collider.Circle(5), 0, 0),
		ent("empty", collider.Polygon(), 0, 0),
		ent("line", collider.Polygon(collider.Pt(0, 0), collider.Pt(3, 3)), 0, 0),
		ent("nan", collider.Circle(5), math.NaN(), 0),
		ent("b", collider.Circle(5), 3, 0),
	}
	assert.NotPanics(t, func() {
		events := s.Scan(entities)
		assert.Equal(t, []Event{{Pair: NewPair("a", "b"), State: Begin}}, events)
	})
}

func TestScanFlatPolygonsFarApart(t *testing.T) {
	stacked := collider.Polygon(collider.Pt(0, 0), collider.Pt(0, 0), collider.Pt(0, 0))
	line := collider.Polygon(collider.Pt(0, 0), collider.Pt(1, 0), collider.Pt(2, 0))
	entities := []Entity{
		ent("a", stacked, 0, 0),
		ent("b", stacked, 1000, 1000),
		ent("c", line, 10, 0),
		ent("d", line, 500, 0),
	}
	for _, s := range []*Scanner{NewScanner(), NewScanner(WithBroadphase(Grid(32)))} {
		assert.Empty(t, s.Scan(entities))
		for _, e := range entities {
			assert.False(t, s.Eligible(e), e.Label)
		}
	}
}

func TestScanEligible(t *testing.T) {
	s := NewScanner()
	assert.True(t, s.Eligible(ent("a", collider.Circle(1), 0, 0)))
	assert.False(t, s.Eligible(ent("", collider.Circle(1), 0, 0)))
	assert.False(t, s.Eligible(ent("a", collider.None(), 0, 0)))

	off := ent("a", collider.Circle(1), 0, 0)
	off.CollisionEnabled = false
	assert.False(t, s.Eligible(off))
}

func TestScanEventOrder(t *testing.T) {
	s := NewScanner()
	entities := []Entity{
		ent("d", collider.Circle(5), 0, 0),
		ent("c", collider.Circle(5), 1, 0),
		ent("b", collider.Circle(5), 2, 0),
		ent("a", collider.Circle(5), 200, 0),
	}
	events := s.Scan(entities)
	assert.Equal(t, []Event{
		{Pair: NewPair("d", "c"), State: Begin},
		{Pair: NewPair("d", "b"), State: Begin},
		{Pair: NewPair("c", "b"), State: Begin},
	}, events)

	entities[1].Translation = collider.Pt(500, 500)
	entities[2].Translation = collider.Pt(200, 1)
	events = s.Scan(entities)
	assert.Equal(t, []Event{
		{Pair: NewPair("b", "a"), State: Begin},
		{Pair: NewPair("b", "c"), State: End},
		{Pair: NewPair("b", "d"), State: End},
		{Pair: NewPair("c", "d"), State: End},
	}, events)
}

func TestScanReset(t *testing.T) {
	s := NewScanner()
	entities := []Entity{
		ent("a", collider.Circle(5), 0, 0),
		ent("b", collider.Circle(5), 1, 0),
		ent("c", collider.Circle(5), 2, 0),
	}
	require.Len(t, s.Scan(entities), 3)

	ended := s.Reset()
	assert.Equal(t, []Event{
		{Pair: NewPair("a", "b"), State: End},
		{Pair: NewPair("a", "c"), State: End},
		{Pair: NewPair("b", "c"), State: End},
	}, ended)
	assert.Empty(t, s.Reset())

	// After a reset the same contacts begin again.
	assert.Len(t, s.Scan(entities), 3)
}

func TestScanScalePolicy(t *testing.T) {
	entities := func() []Entity {
		a := ent("a", collider.Circle(5), 0, 0)
		b := ent("b", collider.Circle(5), 15, 0)
		a.Scale, b.Scale = 2, 2
		return []Entity{a, b}
	}

	ignore := NewScanner(WithScalePolicy(IgnoreScale))
	assert.Empty(t, ignore.Scan(entities()), "authored radii are 5+5 < 15")

	apply := NewScanner(WithScalePolicy(ApplyScale))
	assert.Len(t, apply.Scan(entities()), 1, "scaled radii are 10+10 > 15")

	polys := []Entity{
		ent("p", collider.Rect(10, 10), 0, 0),
		ent("q", collider.Rect(10, 10), 14, 0),
	}
	polys[0].Scale, polys[1].Scale = 2, 2
	assert.Empty(t, NewScanner().Scan(polys))
	assert.Len(t, NewScanner(WithScalePolicy(ApplyScale)).Scan(polys), 1)
}

func TestScanCircleMode(t *testing.T) {
	entities := []Entity{
		ent("ball", collider.Circle(5), 50, 103),
		ent("wall", collider.Polygon(collider.Pt(0, 0), collider.Pt(100, 0), collider.Pt(100, 100), collider.Pt(0, 100)), 0, 0),
	}
	assert.Empty(t, NewScanner().Scan(entities))
	assert.Len(t, NewScanner(WithCircleMode(CircleExact)).Scan(entities), 1)
}

// Two circles of radius 10 start 25 apart and close at 30 units per tick.
func TestScanApproachingCircles(t *testing.T) {
	const (
		radius = 10.0
		speed  = 15.0
		ticks  = 6
	)
	s := NewScanner()
	ax, bx := 0.0, 25.0

	var beginTick, endTick = -1, -1
	overlapping := false
	for tick := 0; tick < ticks; tick++ {
		if tick > 0 {
			ax += speed
			bx -= speed
		}
		dist := math.Abs(bx - ax)
		wasOverlapping := overlapping
		overlapping = dist < 2*radius

		events := s.Scan([]Entity{
			ent("A", collider.Circle(radius), ax, 0),
			ent("B", collider.Circle(radius), bx, 0),
		})

		switch {
		case overlapping && !wasOverlapping:
			require.Equal(t, []Event{{Pair: NewPair("A", "B"), State: Begin}}, events, "tick %d", tick)
			beginTick = tick
		case !overlapping && wasOverlapping:
			require.Equal(t, []Event{{Pair: NewPair("A", "B"), State: End}}, events, "tick %d", tick)
			endTick = tick
		default:
			require.Empty(t, events, "tick %d", tick)
		}
	}
	assert.Equal(t, 1, beginTick, "distance first drops below 20 on tick 1 (5 apart)")
	assert.Equal(t, 2, endTick, "they are 35 apart on tick 2")
}

func randomScene(n int, seed int) []Entity {
	// Deterministic scatter; no need for math/rand here.
	out := make([]Entity, 0, n)
	x := uint32(seed)
	next := func() float64 {
		x = x*1664525 + 1013904223
		return float64(x%10000) / 10000
	}
	for i := 0; i < n; i++ {
		var c collider.Collider
		switch i % 3 {
		case 0:
			c = collider.Circle(5 + next()*20)
		case 1:
			c = collider.Rect(10+next()*30, 10+next()*30)
		default:
			c = collider.Polygon(collider.Pt(0, -15), collider.Pt(14, 10), collider.Pt(-14, 10))
		}
		e := ent(fmt.Sprintf("e%03d", i), c, next()*600, next()*600)
		e.Rotation = next() * 2 * math.Pi
		out = append(out, e)
	}
	return out
}

func jiggle(entities []Entity, tick int) {
	for i := range entities {
		entities[i].Translation.X += math.Sin(float64(i+tick)) * 12
		entities[i].Translation.Y += math.Cos(float64(i*3+tick)) * 12
		entities[i].Rotation += 0.1
	}
}

func TestScanStrategiesAgree(t *testing.T) {
	variants := map[string]*Scanner{
		"grid":         NewScanner(WithBroadphase(Grid(40))),
		"tiny_grid":    NewScanner(WithBroadphase(Grid(1))),
		"workers":      NewScanner(WithWorkers(4)),
		"grid_workers": NewScanner(WithBroadphase(Grid(64)), WithWorkers(3)),
	}
	baseline := NewScanner()

	for _, mode := range []CircleMode{CircleVertex, CircleExact} {
		baseline.circleMode = mode
		for _, v := range variants {
			v.circleMode = mode
		}
		entities := randomScene(120, int(mode)+7)
		for tick := 0; tick < 8; tick++ {
			want := baseline.Scan(entities)
			for name, v := range variants {
				assert.Equal(t, want, v.Scan(entities), "%s mode=%s tick=%d", name, mode, tick)
			}
			jiggle(entities, tick)
		}
	}
}

func TestGridFallsBackToAllPairs(t *testing.T) {
	assert.IsType(t, allPairs{}, Grid(0))
	assert.IsType(t, allPairs{}, Grid(-3))
	assert.IsType(t, allPairs{}, Grid(math.Inf(1)))
}

func TestGridOversizedShape(t *testing.T) {
	entities := []Entity{
		ent("huge", collider.Rect(1e6, 1e6), 0, 0),
		ent("small", collider.Circle(1), 4e5, 4e5),
	}
	events := NewScanner(WithBroadphase(Grid(1))).Scan(entities)
	assert.Empty(t, events, "circle is nowhere near the rectangle's corners in vertex mode")

	events = NewScanner(WithBroadphase(Grid(1)), WithCircleMode(CircleExact)).Scan(entities)
	assert.Len(t, events, 1)
}
