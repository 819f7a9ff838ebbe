// Package literal extracts literal byte sequences from compiled NFAs for
// prefilter optimization.
//
// Because matching is anchored, every accepted input must begin with one of
// the prefixes reachable from the start state. When that prefix set is small
// and finite, a prefilter can reject non-matching inputs without running the
// automaton at all.
package literal

import (
	"bytes"
	"sort"
)

// Literal is a byte sequence that accepted inputs may begin with.
// Complete is true when the literal is an entire accepted string rather
// than a proper prefix of longer matches.
type Literal struct {
	Bytes    []byte
	Complete bool
}

// NewLiteral creates a Literal from the given bytes and completeness flag
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{
		Bytes:    b,
		Complete: complete,
	}
}

// Seq is an ordered set of alternative literals extracted from one pattern.
// The invariant maintained by the extractor is coverage: every accepted
// input begins with at least one literal in the sequence.
type Seq struct {
	lits []Literal
}

// Push appends a literal to the sequence
func (s *Seq) Push(l Literal) {
	s.lits = append(s.lits, l)
}

// Len returns the number of literals in the sequence
func (s *Seq) Len() int {
	return len(s.lits)
}

// Get returns the literal at index i
func (s *Seq) Get(i int) Literal {
	return s.lits[i]
}

// IsEmpty returns true if the sequence has no literals
func (s *Seq) IsEmpty() bool {
	return len(s.lits) == 0
}

// HasEmpty returns true if any literal is the empty string.
// An empty literal means the pattern can accept before consuming a byte,
// which makes the sequence useless for filtering.
func (s *Seq) HasEmpty() bool {
	for _, l := range s.lits {
		if len(l.Bytes) == 0 {
			return true
		}
	}
	return false
}

// AllComplete returns true if every literal is a complete accepted string
func (s *Seq) AllComplete() bool {
	for _, l := range s.lits {
		if !l.Complete {
			return false
		}
	}
	return true
}

// Minimize sorts the sequence, removes duplicates, and removes literals
// that have another literal as a prefix. Coverage is preserved: an input
// beginning with a dropped literal also begins with the prefix that
// shadowed it.
func (s *Seq) Minimize() {
	if len(s.lits) < 2 {
		return
	}

	sort.Slice(s.lits, func(i, j int) bool {
		return bytes.Compare(s.lits[i].Bytes, s.lits[j].Bytes) < 0
	})

	kept := s.lits[:1]
	for _, l := range s.lits[1:] {
		prev := kept[len(kept)-1]
		if bytes.HasPrefix(l.Bytes, prev.Bytes) {
			// Shadowed (or duplicate); a shadowing prefix stops being a
			// complete match description, it is only a filter key now
			if !bytes.Equal(l.Bytes, prev.Bytes) && prev.Complete {
				kept[len(kept)-1].Complete = false
			}
			continue
		}
		kept = append(kept, l)
	}
	s.lits = kept
}
