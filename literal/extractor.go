package literal

import (
	"github.com/drobilla/rerex/internal/conv"
	"github.com/drobilla/rerex/internal/sparse"
	"github.com/drobilla/rerex/nfa"
)

// Config bounds literal extraction.
//
// The limits keep extraction cheap and its results small:
//   - MaxLiterals caps the number of alternative prefixes
//   - MaxLiteralLen caps the length of each prefix
//   - MaxClassSize caps the byte ranges that are expanded per byte;
//     wider ranges cut the prefix instead
type Config struct {
	MaxLiterals   int
	MaxLiteralLen int
	MaxClassSize  int
}

// DefaultConfig returns limits suited to typical patterns
func DefaultConfig() Config {
	return Config{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
		MaxClassSize:  10,
	}
}

// Extractor extracts prefix literal sequences from compiled NFAs
type Extractor struct {
	cfg Config
}

// New creates an extractor with the given configuration
func New(cfg Config) *Extractor {
	return &Extractor{cfg: cfg}
}

// Prefixes walks n from its start state and returns the covering prefix
// sequence, minimized, or nil when no sound finite sequence exists within
// the configured limits (heavily cyclic automata give up via a visit
// budget).
//
// Soundness over completeness: every path that is cut short still records
// the prefix accumulated so far as an incomplete literal, so the returned
// sequence always covers the accepted language. If the walk cannot finish
// within budget there is no covering set to return, hence nil.
func (e *Extractor) Prefixes(n *nfa.NFA) *Seq {
	w := &walker{
		n:      n,
		cfg:    e.cfg,
		seq:    &Seq{},
		budget: 16*n.States() + 64,
	}

	w.walk(n.Start(), nil, sparse.NewSet(conv.IntToUint32(n.States())))
	if w.failed {
		return nil
	}

	w.seq.Minimize()
	return w.seq
}

// walker carries the state of one extraction pass
type walker struct {
	n      *nfa.NFA
	cfg    Config
	seq    *Seq
	budget int
	failed bool
}

// walk visits s with the byte prefix accumulated so far. The eps set holds
// Split states already expanded since the last consumed byte; star loops
// close over epsilon, so without it the walk would not terminate.
func (w *walker) walk(s nfa.StateID, prefix []byte, eps *sparse.Set) {
	if w.failed {
		return
	}

	if w.budget--; w.budget < 0 || w.seq.Len() >= w.cfg.MaxLiterals {
		w.failed = true
		return
	}

	if s == nfa.NoState {
		// Vacant split arm; no path here
		return
	}

	st := w.n.State(s)
	switch st.Kind() {
	case nfa.StateMatch:
		w.seq.Push(NewLiteral(clone(prefix), true))

	case nfa.StateSplit:
		if eps.Contains(uint32(s)) {
			return
		}
		eps.Insert(uint32(s))

		left, right := st.Split()
		w.walk(left, prefix, eps)
		w.walk(right, prefix, eps)

	case nfa.StateRange:
		lo, hi, next := st.Range()
		if len(prefix) >= w.cfg.MaxLiteralLen || int(hi)-int(lo)+1 > w.cfg.MaxClassSize {
			// Too long or too wide to enumerate; cut here, keeping the
			// accumulated prefix so coverage holds
			w.seq.Push(NewLiteral(clone(prefix), false))
			return
		}

		for c := int(lo); c <= int(hi); c++ {
			ext := make([]byte, len(prefix)+1)
			copy(ext, prefix)
			ext[len(prefix)] = byte(c)

			// A consumed byte starts a new epsilon generation
			w.walk(next, ext, sparse.NewSet(conv.IntToUint32(w.n.States())))
		}
	}
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
