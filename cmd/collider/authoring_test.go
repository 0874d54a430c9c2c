package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/sprite2d/collider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	return NewSession(filepath.Join(t.TempDir(), "car.collider"), 0)
}

func TestSessionPolygonEditing(t *testing.T) {
	s := newTestSession(t)
	assert.Equal(t, "empty", s.Status())
	assert.Equal(t, collider.ConvexityUnknown, s.Convexity())

	s.ReplaceLastPoint(collider.Pt(1, 1))
	assert.Empty(t, s.Points(), "replace on empty is a no-op")
	assert.False(t, s.Dirty())

	s.AddPoint(collider.Pt(0, 0))
	s.AddPoint(collider.Pt(10, 0))
	assert.Equal(t, collider.ConvexityUnknown, s.Convexity(), "two points are not a polygon yet")

	s.AddPoint(collider.Pt(10, 10))
	s.AddPoint(collider.Pt(0, 10))
	assert.Equal(t, collider.ConvexityConvex, s.Convexity())
	assert.Equal(t, "polygon 4 points, convex (unsaved)", s.Status())

	// Dragging the last point inward makes a dent.
	s.ReplaceLastPoint(collider.Pt(8, 2))
	assert.Equal(t, collider.ConvexityConcave, s.Convexity())
	assert.Equal(t, collider.Pt(8, 2), s.Points()[3])

	s.Clear()
	assert.Empty(t, s.Points())
	assert.Equal(t, collider.ConvexityUnknown, s.Convexity())
}

func TestSessionCircle(t *testing.T) {
	s := NewSession(filepath.Join(t.TempDir(), "ball.collider"), 5)
	s.AddPoint(collider.Pt(1, 1))

	s.SetCircle(20)
	assert.True(t, s.IsCircle())
	assert.Nil(t, s.Points())
	assert.Equal(t, "circle r=20.0 (unsaved)", s.Status())

	s.GrowCircle()
	assert.Equal(t, 25.0, s.Collider().Radius)

	for i := 0; i < 10; i++ {
		s.ShrinkCircle()
	}
	assert.Equal(t, 5.0, s.Collider().Radius, "shrinking stops at one step")

	s.SetCircle(-3)
	assert.Equal(t, 5.0, s.Collider().Radius)

	// A click after a circle starts over with a polygon.
	s.AddPoint(collider.Pt(2, 2))
	assert.False(t, s.IsCircle())
	assert.Equal(t, []collider.Point{collider.Pt(2, 2)}, s.Points())

	// Resizing a polygon does nothing.
	s.GrowCircle()
	assert.False(t, s.IsCircle())
}

func TestSessionDefaultStep(t *testing.T) {
	assert.Equal(t, defaultCircleStep, NewSession("x.collider", 0).Step())
	assert.Equal(t, defaultCircleStep, NewSession("x.collider", -1).Step())
	assert.Equal(t, 3.0, NewSession("x.collider", 3).Step())
}

func TestSessionCommitAndLoad(t *testing.T) {
	s := newTestSession(t)
	pts := []collider.Point{collider.Pt(-3.25, -1), collider.Pt(4.5, -1), collider.Pt(0.125, 6)}
	for _, p := range pts {
		s.AddPoint(p)
	}
	require.NoError(t, s.Commit())
	assert.False(t, s.Dirty())

	loaded := NewSession(s.Path(), 0)
	require.NoError(t, loaded.Load())
	got := loaded.Points()
	require.Len(t, got, len(pts))
	for i := range pts {
		assert.InDelta(t, pts[i].X, got[i].X, 1e-4)
		assert.InDelta(t, pts[i].Y, got[i].Y, 1e-4)
	}
	assert.Equal(t, collider.ConvexityConvex, loaded.Convexity())

	// Commit overwrites.
	s.SetCircle(7)
	require.NoError(t, s.Commit())
	require.NoError(t, loaded.Load())
	assert.True(t, loaded.IsCircle())
}

func TestSessionLoadMissing(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Load())
	assert.Equal(t, "empty", s.Status())
}

func TestSessionCommitFailureKeepsState(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing-dir")
	s := NewSession(filepath.Join(dir, "car.collider"), 0)
	s.AddPoint(collider.Pt(0, 0))
	s.AddPoint(collider.Pt(5, 0))
	s.AddPoint(collider.Pt(0, 5))
	before := s.Collider()

	require.Error(t, s.Commit())
	assert.True(t, s.Dirty())
	assert.Equal(t, before, s.Collider())

	// Too few points is also reported, not written.
	s2 := newTestSession(t)
	s2.AddPoint(collider.Pt(1, 1))
	assert.ErrorIs(t, s2.Commit(), collider.ErrTooFewPoints)
	_, err := os.Stat(s2.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestCheckArgs(t *testing.T) {
	_, err := checkArgs(nil)
	assert.Error(t, err)
	_, err = checkArgs([]string{"a.png", "b.png"})
	assert.Error(t, err)
	_, err = checkArgs([]string{filepath.Join(t.TempDir(), "nope.png")})
	assert.Error(t, err)
	_, err = checkArgs([]string{t.TempDir()})
	assert.Error(t, err)

	img := filepath.Join(t.TempDir(), "car.png")
	require.NoError(t, os.WriteFile(img, []byte("not really a png"), 0o644))
	path, err := checkArgs([]string{img})
	require.NoError(t, err)
	assert.Equal(t, img, path)
}

func TestPrefsSanitize(t *testing.T) {
	assert.Equal(t, DefaultPrefs(), Prefs{}.sanitize())
	assert.Equal(t, Prefs{Zoom: 9, CircleStep: 0.5}, Prefs{Zoom: 9, CircleStep: 0.5}.sanitize())
	assert.Equal(t, DefaultPrefs().Zoom, Prefs{Zoom: 12, CircleStep: 1}.sanitize().Zoom)

	var nilStore prefStore
	assert.Equal(t, DefaultPrefs(), nilStore.Load())
	assert.NoError(t, nilStore.Save(DefaultPrefs()))
}
