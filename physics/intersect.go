package physics

import (
	"github.com/milk9111/sprite2d/collider"
)

// CircleMode selects how a circle is tested against a polygon.
type CircleMode uint8

const (
	// CircleVertex collides when the circle center is within the radius of
	// any polygon vertex. It misses a circle resting on the middle of a long
	// edge but matches the behaviour existing games were tuned against.
	CircleVertex CircleMode = iota
	// CircleExact uses the real distance from the circle center to the
	// polygon, including the center being inside it.
	CircleExact
)

func (m CircleMode) String() string {
	if m == CircleExact {
		return "exact"
	}
	return "vertex"
}

// Collides reports whether two world-space shapes overlap. Degenerate shapes
// never collide.
func Collides(a, b collider.Shape, mode CircleMode) bool {
	if a.Degenerate() || b.Degenerate() {
		return false
	}
	switch a.Kind {
	case collider.KindCircle:
		switch b.Kind {
		case collider.KindCircle:
			return circlesOverlap(a.Center, a.Radius, b.Center, b.Radius)
		case collider.KindPolygon:
			return circlePolygon(a.Center, a.Radius, b.Points, mode)
		}
	case collider.KindPolygon:
		switch b.Kind {
		case collider.KindCircle:
			return circlePolygon(b.Center, b.Radius, a.Points, mode)
		case collider.KindPolygon:
			return polygonsOverlap(a.Points, b.Points)
		}
	}
	return false
}

// circlesOverlap is strict: circles that only touch don't collide.
func circlesOverlap(ca collider.Point, ra float64, cb collider.Point, rb float64) bool {
	r := ra + rb
	return ca.DistanceSq(cb) < r*r
}

func circlePolygon(center collider.Point, radius float64, poly []collider.Point, mode CircleMode) bool {
	if mode == CircleExact {
		return circlePolygonExact(center, radius, poly)
	}
	rr := radius * radius
	for _, p := range poly {
		if center.DistanceSq(p) < rr {
			return true
		}
	}
	return false
}

func circlePolygonExact(center collider.Point, radius float64, poly []collider.Point) bool {
	if pointInConvex(center, poly) {
		return true
	}
	rr := radius * radius
	n := len(poly)
	for i := 0; i < n; i++ {
		if segmentDistanceSq(center, poly[i], poly[(i+1)%n]) < rr {
			return true
		}
	}
	return false
}

// pointInConvex works for either winding: p must sit on the same side of
// every edge.
func pointInConvex(p collider.Point, poly []collider.Point) bool {
	n := len(poly)
	sign := 0
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[(i+1)%n]
		cross := b.Sub(a).Cross(p.Sub(a))
		switch {
		case cross > 0:
			if sign < 0 {
				return false
			}
			sign = 1
		case cross < 0:
			if sign > 0 {
				return false
			}
			sign = -1
		}
	}
	return sign != 0
}

func segmentDistanceSq(p, a, b collider.Point) float64 {
	ab := b.Sub(a)
	lenSq := ab.LengthSq()
	if lenSq == 0 {
		return p.DistanceSq(a)
	}
	t := p.Sub(a).Dot(ab) / lenSq
	t = max(0, min(1, t))
	return p.DistanceSq(a.Add(ab.Mult(t)))
}

// polygonsOverlap runs the separating axis test over the edge normals of
// both polygons. Touching intervals count as overlap.
func polygonsOverlap(a, b []collider.Point) bool {
	return !separatedOnEdges(a, a, b) && !separatedOnEdges(b, a, b)
}

func separatedOnEdges(edges, a, b []collider.Point) bool {
	n := len(edges)
	for i := 0; i < n; i++ {
		axis := collider.EdgeNormal(edges[i], edges[(i+1)%n])
		if axis.X == 0 && axis.Y == 0 {
			continue
		}
		minA, maxA := collider.Project(a, axis)
		minB, maxB := collider.Project(b, axis)
		if maxA < minB || maxB < minA {
			return true
		}
	}
	return false
}
