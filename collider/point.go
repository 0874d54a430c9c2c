package collider

import "github.com/jakecoffman/cp"

// Point is a 2D coordinate. Chipmunk's vector already carries the
// arithmetic we need (Add, Sub, Dot, Cross, Rotate, Distance).
type Point = cp.Vector

func Pt(x, y float64) Point {
	return cp.Vector{X: x, Y: y}
}

// Rotate turns p about the origin by theta radians:
// x' = x*cos - y*sin, y' = x*sin + y*cos.
func Rotate(p Point, theta float64) Point {
	if theta == 0 {
		return p
	}
	return p.Rotate(cp.ForAngle(theta))
}

func Translate(p, by Point) Point {
	return p.Add(by)
}

// EdgeNormal returns the (unnormalised) normal (dy, -dx) of the edge a->b.
func EdgeNormal(a, b Point) Point {
	d := b.Sub(a)
	return cp.Vector{X: d.Y, Y: -d.X}
}

// Project returns the [min, max] interval of points projected on axis.
func Project(points []Point, axis Point) (float64, float64) {
	if len(points) == 0 {
		return 0, 0
	}
	lo := points[0].Dot(axis)
	hi := lo
	for _, p := range points[1:] {
		d := p.Dot(axis)
		lo = min(lo, d)
		hi = max(hi, d)
	}
	return lo, hi
}

// Bounds returns the axis-aligned box around points.
func Bounds(points []Point) cp.BB {
	if len(points) == 0 {
		return cp.BB{}
	}
	bb := cp.BB{L: points[0].X, R: points[0].X, B: points[0].Y, T: points[0].Y}
	for _, p := range points[1:] {
		bb.L = min(bb.L, p.X)
		bb.R = max(bb.R, p.X)
		bb.B = min(bb.B, p.Y)
		bb.T = max(bb.T, p.Y)
	}
	return bb
}
