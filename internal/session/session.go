// ABOUTME: Pairwise elicitation workflow: one comparison per alternative pair
// ABOUTME: Tracks judgments and reliabilities, supports skip/back/jump, builds the report

package session

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/mauromedda/prefscale-go/internal/ahp"
	"github.com/mauromedda/prefscale-go/internal/engine"
	"github.com/mauromedda/prefscale-go/internal/eventbus"
	"github.com/mauromedda/prefscale-go/internal/scale"
)

// MinAlternatives is the smallest decision worth comparing.
const MinAlternatives = 2

// Pair indexes two alternatives; A is always the lower index.
type Pair struct {
	A, B int
}

// EventKind classifies session events.
type EventKind int

const (
	// EventJudged fires when a comparison reaches a terminal action.
	EventJudged EventKind = iota
	// EventSkipped fires when a pair is passed over with the neutral result.
	EventSkipped
	// EventReopened fires when an already-judged pair is opened again.
	EventReopened
	// EventCompleted fires once every pair holds a judgment.
	EventCompleted
)

// Event is published on the session bus after every workflow step.
type Event struct {
	Kind   EventKind
	Pair   Pair
	Result engine.Result
	Done   int
	Total  int
}

// Options configures a session. Zero values fall back to the integer scale,
// the eigenvector method, and the customary consistency threshold.
type Options struct {
	Scale          scale.Type
	Method         ahp.Method
	Threshold      float64
	FineGradations int
	Bus            *eventbus.Bus[Event]
}

// Session walks all i<j pairs of a set of alternatives, owning one
// independent comparison at a time. Judgments populate a reciprocal matrix
// and a parallel reliability record; Report is available once every pair is
// judged or skipped.
type Session struct {
	alternatives []string
	pairs        []Pair
	opts         Options

	idx     int
	current *engine.Comparison
	results []engine.Result
	filled  []bool
}

// New validates the alternatives and prepares the pair sequence. Names are
// trimmed and NFC-normalized; duplicates after normalization are rejected.
func New(alternatives []string, opts Options) (*Session, error) {
	names := make([]string, 0, len(alternatives))
	seen := make(map[string]bool, len(alternatives))
	for i, raw := range alternatives {
		name := norm.NFC.String(strings.TrimSpace(raw))
		if name == "" {
			return nil, fmt.Errorf("alternative %d is empty", i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate alternative %q", name)
		}
		seen[name] = true
		names = append(names, name)
	}
	if len(names) < MinAlternatives {
		return nil, fmt.Errorf("need at least %d alternatives, got %d", MinAlternatives, len(names))
	}

	if !opts.Scale.Valid() {
		opts.Scale = scale.Integer
	}
	if opts.Threshold <= 0 {
		opts.Threshold = ahp.DefaultThreshold
	}

	var pairs []Pair
	for i := range names {
		for j := i + 1; j < len(names); j++ {
			pairs = append(pairs, Pair{A: i, B: j})
		}
	}

	return &Session{
		alternatives: names,
		pairs:        pairs,
		opts:         opts,
		results:      make([]engine.Result, len(pairs)),
		filled:       make([]bool, len(pairs)),
	}, nil
}

// Alternatives returns the normalized alternative names.
func (s *Session) Alternatives() []string {
	out := make([]string, len(s.alternatives))
	copy(out, s.alternatives)
	return out
}

// Pairs returns the comparison order.
func (s *Session) Pairs() []Pair {
	out := make([]Pair, len(s.pairs))
	copy(out, s.pairs)
	return out
}

// Describe renders a pair for pickers and footers ("espresso vs filter").
func (s *Session) Describe(p Pair) string {
	return s.alternatives[p.A] + " vs " + s.alternatives[p.B]
}

// Judged reports whether the pair at the given position holds a judgment.
func (s *Session) Judged(pairIndex int) bool {
	return pairIndex >= 0 && pairIndex < len(s.filled) && s.filled[pairIndex]
}

// Progress reports judged pairs against the total.
func (s *Session) Progress() (done, total int) {
	for _, f := range s.filled {
		if f {
			done++
		}
	}
	return done, len(s.pairs)
}

// Finished reports whether every pair holds a judgment.
func (s *Session) Finished() bool {
	done, total := s.Progress()
	return done == total
}

// Pair returns the pair currently being compared.
func (s *Session) Pair() (Pair, error) {
	if s.idx >= len(s.pairs) {
		return Pair{}, fmt.Errorf("all %d pairs are judged", len(s.pairs))
	}
	return s.pairs[s.idx], nil
}

// Current returns the live comparison for the current pair, creating a fresh
// one on first access. The session's default scale is applied to new
// comparisons; the user may change it per comparison.
func (s *Session) Current() (*engine.Comparison, error) {
	if s.idx >= len(s.pairs) {
		return nil, fmt.Errorf("all %d pairs are judged", len(s.pairs))
	}
	if s.current == nil {
		p := s.pairs[s.idx]
		c := engine.New(s.alternatives[p.A], s.alternatives[p.B])
		if err := c.SetScaleType(s.opts.Scale); err != nil {
			return nil, err
		}
		if s.opts.FineGradations != 0 {
			if err := c.SetDefaultFineCount(s.opts.FineGradations); err != nil {
				return nil, err
			}
		}
		s.current = c
	}
	return s.current, nil
}

// Advance records the current comparison's terminal result and moves to the
// next unjudged pair. The comparison must have reached a terminal action.
func (s *Session) Advance() error {
	c, err := s.Current()
	if err != nil {
		return err
	}
	result, err := c.Result()
	if err != nil {
		return err
	}
	s.record(result, EventJudged)
	return nil
}

// Skip passes over the current pair with the neutral judgment (ratio 1,
// reliability 0).
func (s *Session) Skip() error {
	if s.idx >= len(s.pairs) {
		return fmt.Errorf("all %d pairs are judged", len(s.pairs))
	}
	s.record(engine.Result{Ratio: 1, Reliability: 0, Scale: scale.None}, EventSkipped)
	return nil
}

// Back reopens the previous pair, discarding its judgment. The abandoned
// current comparison is dropped.
func (s *Session) Back() error {
	if s.idx == 0 {
		return fmt.Errorf("already at the first pair")
	}
	s.idx--
	return s.reopen()
}

// JumpTo reopens the pair at the given position in the comparison order,
// discarding its judgment if it had one.
func (s *Session) JumpTo(pairIndex int) error {
	if pairIndex < 0 || pairIndex >= len(s.pairs) {
		return fmt.Errorf("pair index %d outside [0,%d)", pairIndex, len(s.pairs))
	}
	s.idx = pairIndex
	return s.reopen()
}

func (s *Session) reopen() error {
	p := s.pairs[s.idx]
	s.filled[s.idx] = false
	s.results[s.idx] = engine.Result{}
	s.current = nil
	s.publish(Event{Kind: EventReopened, Pair: p})
	return nil
}

func (s *Session) record(result engine.Result, kind EventKind) {
	p := s.pairs[s.idx]
	s.results[s.idx] = result
	s.filled[s.idx] = true
	s.current = nil
	s.advanceIndex()

	done, total := s.Progress()
	s.publish(Event{Kind: kind, Pair: p, Result: result, Done: done, Total: total})
	if done == total {
		s.publish(Event{Kind: EventCompleted, Done: done, Total: total})
	}
}

// advanceIndex moves to the next unjudged pair, wrapping once so pairs
// reopened out of order do not strand later ones.
func (s *Session) advanceIndex() {
	n := len(s.pairs)
	for step := 1; step <= n; step++ {
		i := (s.idx + step) % n
		if !s.filled[i] {
			s.idx = i
			return
		}
	}
	s.idx = n
}

func (s *Session) publish(e Event) {
	if s.opts.Bus != nil {
		s.opts.Bus.Publish(e)
	}
}
