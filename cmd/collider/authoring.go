package main

import (
	"errors"
	"fmt"
	"io/fs"
	"math"

	"github.com/milk9111/sprite2d/collider"
)

const defaultCircleStep = 2.0

// Session is the collider being authored for one image. It is either an
// in-progress polygon (possibly with fewer than three points) or a circle.
type Session struct {
	path      string
	shape     collider.Collider
	convexity collider.Convexity
	step      float64
	dirty     bool
}

// NewSession starts an empty polygon for the sidecar at path. step is the
// circle resize increment; non-positive means the default.
func NewSession(path string, step float64) *Session {
	if !(step > 0) || math.IsInf(step, 0) {
		step = defaultCircleStep
	}
	return &Session{
		path:  path,
		shape: collider.Polygon(),
		step:  step,
	}
}

// Load replaces the session with the sidecar on disk. A missing sidecar is
// not an error and leaves the session empty.
func (s *Session) Load() error {
	c, err := collider.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	s.shape = c
	s.dirty = false
	s.recheck()
	return nil
}

func (s *Session) Path() string { return s.path }

func (s *Session) Step() float64 { return s.step }

func (s *Session) Dirty() bool { return s.dirty }

func (s *Session) IsCircle() bool { return s.shape.Kind == collider.KindCircle }

func (s *Session) Convexity() collider.Convexity { return s.convexity }

// Collider returns a copy of the collider as it stands.
func (s *Session) Collider() collider.Collider { return s.shape.Clone() }

// Points returns the polygon points in insertion order, nil for a circle.
func (s *Session) Points() []collider.Point {
	if s.IsCircle() {
		return nil
	}
	return append([]collider.Point(nil), s.shape.Points...)
}

// AddPoint appends p. Adding to a circle starts a new polygon.
func (s *Session) AddPoint(p collider.Point) {
	if s.IsCircle() {
		s.shape = collider.Polygon()
	}
	s.shape.Points = append(s.shape.Points, p)
	s.touch()
}

// ReplaceLastPoint moves the newest point to p. It does nothing when there
// are no points.
func (s *Session) ReplaceLastPoint(p collider.Point) {
	if s.IsCircle() || len(s.shape.Points) == 0 {
		return
	}
	s.shape.Points[len(s.shape.Points)-1] = p
	s.touch()
}

// Clear drops all geometry and returns to an empty polygon.
func (s *Session) Clear() {
	s.shape = collider.Polygon()
	s.touch()
}

// SetCircle replaces the collider with a circle. A radius that is not
// positive becomes one step.
func (s *Session) SetCircle(radius float64) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		radius = s.step
	}
	s.shape = collider.Circle(radius)
	s.touch()
}

func (s *Session) GrowCircle() {
	if !s.IsCircle() {
		return
	}
	s.shape.Radius += s.step
	s.touch()
}

// ShrinkCircle never takes the radius below one step.
func (s *Session) ShrinkCircle() {
	if !s.IsCircle() {
		return
	}
	s.shape.Radius = max(s.shape.Radius-s.step, s.step)
	s.touch()
}

// Encode returns the sidecar bytes for the current collider.
func (s *Session) Encode() ([]byte, error) {
	return collider.Encode(s.shape)
}

// Commit overwrites the sidecar. On error nothing in the session changes.
func (s *Session) Commit() error {
	if err := collider.WriteFile(s.path, s.shape); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// Status is the one-line summary shown to the operator.
func (s *Session) Status() string {
	var desc string
	switch {
	case s.IsCircle():
		desc = fmt.Sprintf("circle r=%.1f", s.shape.Radius)
	case len(s.shape.Points) == 0:
		desc = "empty"
	default:
		desc = fmt.Sprintf("polygon %d points, %s", len(s.shape.Points), s.convexity)
	}
	if s.dirty {
		desc += " (unsaved)"
	}
	return desc
}

func (s *Session) touch() {
	s.dirty = true
	s.recheck()
}

func (s *Session) recheck() {
	if s.IsCircle() {
		s.convexity = collider.ConvexityConvex
		return
	}
	s.convexity = collider.CheckConvexity(s.shape.Points)
}
