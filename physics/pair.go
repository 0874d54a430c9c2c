package physics

import (
	"fmt"
	"strings"
)

// Pair is an unordered pair of entity labels. NewPair stores the labels in
// sorted order so (a, b) and (b, a) are the same map key.
type Pair struct {
	A string
	B string
}

func NewPair(a, b string) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// Contains reports whether label is one side of the pair.
func (p Pair) Contains(label string) bool {
	return p.A == label || p.B == label
}

// Other returns the label on the other side of label, or "" when label is
// not part of the pair.
func (p Pair) Other(label string) string {
	switch label {
	case p.A:
		return p.B
	case p.B:
		return p.A
	default:
		return ""
	}
}

func (p Pair) String() string {
	return fmt.Sprintf("%s<->%s", p.A, p.B)
}

func comparePairs(x, y Pair) int {
	if c := strings.Compare(x.A, y.A); c != 0 {
		return c
	}
	return strings.Compare(x.B, y.B)
}

// EventState says whether a pair started or stopped touching.
type EventState uint8

const (
	Begin EventState = iota
	End
)

func (s EventState) String() string {
	if s == End {
		return "end"
	}
	return "begin"
}

// Event is emitted once when a pair starts overlapping and once when it
// stops. Frames in between produce nothing for that pair.
type Event struct {
	Pair  Pair
	State EventState
}

func (e Event) String() string {
	return e.State.String() + " " + e.Pair.String()
}
