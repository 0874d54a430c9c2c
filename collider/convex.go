package collider

import "github.com/milk9111/sprite2d/common"

// Convexity is the result of a convex polygon check.
type Convexity uint8

const (
	ConvexityUnknown Convexity = iota
	ConvexityConvex
	ConvexityConcave
)

func (c Convexity) String() string {
	switch c {
	case ConvexityConvex:
		return "convex"
	case ConvexityConcave:
		return "NOT convex"
	default:
		return "not yet convex"
	}
}

// CheckConvexity walks every consecutive triple of points (wrapping around)
// and requires the cross products of the two edges to share a sign.
// Collinear triples are skipped. Fewer than three points, or points that are
// all collinear, give ConvexityUnknown.
func CheckConvexity(points []Point) Convexity {
	n := len(points)
	if n < 3 {
		return ConvexityUnknown
	}
	sign := 0
	for i := 0; i < n; i++ {
		a := points[i]
		b := points[(i+1)%n]
		c := points[(i+2)%n]
		cross := b.Sub(a).Cross(c.Sub(b))
		if common.NearlyZero(cross) {
			continue
		}
		s := 1
		if cross < 0 {
			s = -1
		}
		if sign == 0 {
			sign = s
			continue
		}
		if s != sign {
			return ConvexityConcave
		}
	}
	if sign == 0 {
		return ConvexityUnknown
	}
	return ConvexityConvex
}
