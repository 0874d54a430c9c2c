// Package collider holds the geometric shapes used for collision tests,
// the transforms that place them in world space and the sidecar file
// format written by the authoring tool.
package collider

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
)

var (
	ErrInvalidRadius = errors.New("collider: radius must be positive")
	ErrTooFewPoints  = errors.New("collider: polygon needs at least 3 points")
	ErrUnknownKind   = errors.New("collider: unknown kind")
)

// Kind identifies the collider variant.
type Kind uint8

const (
	KindNone Kind = iota
	KindCircle
	KindPolygon
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindCircle:
		return "circle"
	case KindPolygon:
		return "polygon"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Collider is a shape in local space. Polygon points are kept in insertion
// order, which is also the winding order. Convexity is not enforced here.
type Collider struct {
	Kind   Kind
	Radius float64
	Points []Point
}

func None() Collider {
	return Collider{Kind: KindNone}
}

func Circle(radius float64) Collider {
	return Collider{Kind: KindCircle, Radius: radius}
}

// Polygon copies points so later edits by the caller don't leak in.
func Polygon(points ...Point) Collider {
	return Collider{Kind: KindPolygon, Points: append([]Point(nil), points...)}
}

// Rect returns a w x h rectangle centered on the origin, wound clockwise
// in screen space (y down).
func Rect(w, h float64) Collider {
	hw, hh := w/2, h/2
	return Polygon(
		cp.Vector{X: -hw, Y: -hh},
		cp.Vector{X: hw, Y: -hh},
		cp.Vector{X: hw, Y: hh},
		cp.Vector{X: -hw, Y: hh},
	)
}

func (c Collider) IsNone() bool {
	return c.Kind == KindNone
}

// Validate checks the invariants of the variant. None is always valid.
func (c Collider) Validate() error {
	switch c.Kind {
	case KindNone:
		return nil
	case KindCircle:
		if !(c.Radius > 0) {
			return fmt.Errorf("%w: %v", ErrInvalidRadius, c.Radius)
		}
		return nil
	case KindPolygon:
		if len(c.Points) < 3 {
			return fmt.Errorf("%w: got %d", ErrTooFewPoints, len(c.Points))
		}
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnknownKind, uint8(c.Kind))
	}
}

// Scaled returns a copy with all geometry multiplied by s.
func (c Collider) Scaled(s float64) Collider {
	switch c.Kind {
	case KindCircle:
		return Circle(c.Radius * s)
	case KindPolygon:
		out := make([]Point, len(c.Points))
		for i, p := range c.Points {
			out[i] = p.Mult(s)
		}
		return Collider{Kind: KindPolygon, Points: out}
	default:
		return c
	}
}

// Clone returns a deep copy.
func (c Collider) Clone() Collider {
	if c.Kind == KindPolygon {
		return Polygon(c.Points...)
	}
	return c
}

func (c Collider) String() string {
	switch c.Kind {
	case KindCircle:
		return fmt.Sprintf("circle(r=%g)", c.Radius)
	case KindPolygon:
		return fmt.Sprintf("polygon(%d points)", len(c.Points))
	default:
		return c.Kind.String()
	}
}
