// Package physics finds overlapping colliders each frame and turns changes
// in the overlapping set into Begin and End events.
package physics

import (
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sprite2d/collider"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// minPairsPerWorker keeps small frames on the calling goroutine.
const minPairsPerWorker = 64

// Option configures a Scanner.
type Option func(*Scanner)

// WithBroadphase replaces the default all-pairs candidate generation.
func WithBroadphase(b Broadphase) Option {
	return func(s *Scanner) {
		if b != nil {
			s.broadphase = b
		}
	}
}

// WithWorkers spreads the pair tests over n goroutines. n <= 1 keeps the
// scan on the caller's goroutine.
func WithWorkers(n int) Option {
	return func(s *Scanner) {
		s.workers = n
	}
}

// WithScalePolicy sets whether entity scale resizes colliders.
func WithScalePolicy(p ScalePolicy) Option {
	return func(s *Scanner) {
		s.scale = p
	}
}

// WithCircleMode picks how circles are tested against polygons.
func WithCircleMode(m CircleMode) Option {
	return func(s *Scanner) {
		s.circleMode = m
	}
}

// WithLogger sets the logger used for skipped entities. Nil is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(s *Scanner) {
		if l != nil {
			s.log = l
		}
	}
}

// Scanner owns the set of pairs that overlapped on the previous frame. That
// set is only observable through the events Scan returns.
type Scanner struct {
	previous map[Pair]struct{}

	broadphase Broadphase
	workers    int
	scale      ScalePolicy
	circleMode CircleMode
	log        *zap.Logger
}

// NewScanner returns a scanner with no active pairs. Without options it
// tests all pairs on the calling goroutine.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{
		previous:   make(map[Pair]struct{}),
		broadphase: AllPairs(),
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type frameEntry struct {
	label string
	shape collider.Shape
}

// Scan tests every pair of enabled entities, then diffs the overlapping set
// against the previous frame. Begin events come first in the order the
// pairs were found (snapshot order), followed by End events sorted by pair.
func (s *Scanner) Scan(entities []Entity) []Event {
	if s == nil {
		return nil
	}
	if s.previous == nil {
		s.previous = make(map[Pair]struct{})
	}

	frame := s.collect(entities)
	hits := s.narrowphase(frame, s.candidates(frame))

	current := make(map[Pair]struct{}, len(hits))
	var events []Event
	for _, p := range hits {
		if _, dup := current[p]; dup {
			continue
		}
		current[p] = struct{}{}
		if _, was := s.previous[p]; !was {
			events = append(events, Event{Pair: p, State: Begin})
		}
	}

	var ended []Pair
	for p := range s.previous {
		if _, still := current[p]; !still {
			ended = append(ended, p)
		}
	}
	slices.SortFunc(ended, comparePairs)
	for _, p := range ended {
		events = append(events, Event{Pair: p, State: End})
	}

	s.previous = current
	return events
}

// Reset forgets every overlapping pair and returns an End event for each so
// listeners can release whatever they tied to the contact.
func (s *Scanner) Reset() []Event {
	if s == nil || len(s.previous) == 0 {
		return nil
	}
	ended := make([]Pair, 0, len(s.previous))
	for p := range s.previous {
		ended = append(ended, p)
	}
	slices.SortFunc(ended, comparePairs)
	events := make([]Event, len(ended))
	for i, p := range ended {
		events[i] = Event{Pair: p, State: End}
	}
	s.previous = make(map[Pair]struct{})
	return events
}

// collect filters the snapshot and resolves each collider once for the
// frame. A repeated label keeps its first eligible entity.
func (s *Scanner) collect(entities []Entity) []frameEntry {
	frame := make([]frameEntry, 0, len(entities))
	seen := make(map[string]struct{}, len(entities))
	for _, e := range entities {
		shape, ok := s.resolve(e)
		if !ok {
			if e.CollisionEnabled && !e.Collider.IsNone() && e.Label != "" {
				s.log.Debug("degenerate collider skipped",
					zap.String("label", e.Label),
					zap.Stringer("collider", e.Collider))
			}
			continue
		}
		if _, dup := seen[e.Label]; dup {
			s.log.Debug("duplicate collider label skipped", zap.String("label", e.Label))
			continue
		}
		seen[e.Label] = struct{}{}
		frame = append(frame, frameEntry{label: e.Label, shape: shape})
	}
	return frame
}

// Eligible reports whether e takes part in a scan, leaving label clashes
// aside. The collider is resolved under the scanner's scale policy.
func (s *Scanner) Eligible(e Entity) bool {
	_, ok := s.resolve(e)
	return ok
}

func (s *Scanner) resolve(e Entity) (collider.Shape, bool) {
	if !e.CollisionEnabled || e.Collider.IsNone() || e.Label == "" {
		return collider.Shape{}, false
	}
	shape := e.Shape(s.scale)
	if shape.Degenerate() {
		return collider.Shape{}, false
	}
	return shape, true
}

func (s *Scanner) candidates(frame []frameEntry) []candidate {
	bounds := make([]cp.BB, len(frame))
	for i := range frame {
		bounds[i] = frame[i].shape.Bounds
	}
	return s.broadphase.Candidates(bounds)
}

// narrowphase returns the overlapping pairs in candidate order. The tests
// are independent, so with workers configured they run in chunks and only
// the ordered merge happens afterwards.
func (s *Scanner) narrowphase(frame []frameEntry, cands []candidate) []Pair {
	hit := make([]bool, len(cands))
	test := func(lo, hi int) {
		for k := lo; k < hi; k++ {
			c := cands[k]
			hit[k] = Collides(frame[c.i].shape, frame[c.j].shape, s.circleMode)
		}
	}

	if s.workers > 1 && len(cands) >= 2*minPairsPerWorker {
		chunk := (len(cands) + s.workers - 1) / s.workers
		chunk = max(chunk, minPairsPerWorker)
		var g errgroup.Group
		g.SetLimit(s.workers)
		for lo := 0; lo < len(cands); lo += chunk {
			lo, hi := lo, min(lo+chunk, len(cands))
			g.Go(func() error {
				test(lo, hi)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		test(0, len(cands))
	}

	var out []Pair
	for k, ok := range hit {
		if !ok {
			continue
		}
		c := cands[k]
		out = append(out, NewPair(frame[c.i].label, frame[c.j].label))
	}
	return out
}
