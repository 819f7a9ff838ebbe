// Package prefilter provides fast candidate rejection for anchored regex
// matching using extracted prefix literals.
//
// Matching here is anchored, so the only haystack position that matters is
// offset 0: if none of the pattern's covering prefixes occurs there, the
// input cannot match and the automaton never runs. A prefilter is strictly
// a necessary-condition check; the caller always verifies candidates with
// the full engine.
//
// The builder selects a strategy from the literal sequence:
//   - a single literal uses a plain substring search
//   - several literals use an Aho-Corasick automaton
package prefilter

import (
	"bytes"
	"fmt"

	"github.com/coregx/ahocorasick"

	"github.com/drobilla/rerex/literal"
)

// Prefilter finds candidate match positions for a pattern's literals.
type Prefilter interface {
	// Find returns the index of the first literal occurrence at or after
	// start, or -1 if there is none. Anchored callers test Find(input, 0)
	// against 0.
	Find(haystack []byte, start int) int

	// IsComplete returns true if every underlying literal is a complete
	// accepted string, i.e. a candidate that spans the whole input is a
	// match. Callers that do not check the span must still verify.
	IsComplete() bool

	// LiteralCount returns the number of literals the prefilter was built
	// from
	LiteralCount() int
}

// Builder constructs a prefilter from an extracted literal sequence
type Builder struct {
	seq *literal.Seq
}

// NewBuilder creates a builder over seq, which may be nil
func NewBuilder(seq *literal.Seq) *Builder {
	return &Builder{seq: seq}
}

// Build returns the selected prefilter, or nil when the sequence cannot
// filter anything: no sequence, no literals, or an empty literal (the
// pattern accepts before consuming input, so every input is a candidate).
func (b *Builder) Build() Prefilter {
	seq := b.seq
	if seq == nil || seq.IsEmpty() || seq.HasEmpty() {
		return nil
	}

	if seq.Len() == 1 {
		return &memmemPrefilter{
			lit:      seq.Get(0).Bytes,
			complete: seq.AllComplete(),
		}
	}

	builder := ahocorasick.NewBuilder()
	for i := 0; i < seq.Len(); i++ {
		builder.AddPattern(seq.Get(i).Bytes)
	}
	auto, err := builder.Build()
	if err != nil {
		// An unusable automaton just means no prefiltering
		return nil
	}

	return &ahoCorasickPrefilter{
		auto:     auto,
		count:    seq.Len(),
		complete: seq.AllComplete(),
	}
}

// memmemPrefilter searches for a single literal
type memmemPrefilter struct {
	lit      []byte
	complete bool
}

func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start > len(haystack) {
		return -1
	}
	idx := bytes.Index(haystack[start:], p.lit)
	if idx < 0 {
		return -1
	}
	return start + idx
}

func (p *memmemPrefilter) IsComplete() bool {
	return p.complete
}

func (p *memmemPrefilter) LiteralCount() int {
	return 1
}

func (p *memmemPrefilter) String() string {
	return fmt.Sprintf("Memmem(%q)", p.lit)
}

// ahoCorasickPrefilter searches for any of several literals at once
type ahoCorasickPrefilter struct {
	auto     *ahocorasick.Automaton
	count    int
	complete bool
}

func (p *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

func (p *ahoCorasickPrefilter) IsComplete() bool {
	return p.complete
}

func (p *ahoCorasickPrefilter) LiteralCount() int {
	return p.count
}

func (p *ahoCorasickPrefilter) String() string {
	return fmt.Sprintf("AhoCorasick(%d literals)", p.count)
}
