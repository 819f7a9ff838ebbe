// Package rerex provides a small regular-expression engine over printable
// 7-bit text.
//
// Patterns are compiled by Thompson's construction into a flat arena of NFA
// states and matched by parallel state simulation, so matching runs in
// O(states * input) time with no backtracking. Matching is anchored: a
// pattern matches exactly when it accepts the entire input.
//
// Supported syntax: literal characters, '.', grouping with '(' ')',
// character classes '[...]' with ranges and '^' negation, the operators
// '*', '+', '?', and alternation with '|'. Backslash escapes the special
// characters. There are no captures, backreferences, counted repetitions,
// or anchors ('^'/'$' are not needed since matching is always anchored).
//
// Basic usage:
//
//	p, err := rerex.Compile("h(e|a)llo*")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	p.MatchString("hallooo") // true
//	p.MatchString("shallow") // false
//
// A Pattern is immutable and safe for concurrent matching. For repeated
// matching from a single goroutine, a dedicated Matcher avoids the
// internal pool:
//
//	m := rerex.NewMatcher(p)
//	for _, s := range inputs {
//	    if m.MatchString(s) {
//	        ...
//	    }
//	}
package rerex

import (
	"sync"

	"github.com/drobilla/rerex/literal"
	"github.com/drobilla/rerex/nfa"
	"github.com/drobilla/rerex/prefilter"
)

// Status identifies the outcome of compiling a pattern
type Status = nfa.Status

// Compilation statuses.
const (
	StatusSuccess           = nfa.StatusSuccess
	StatusExpectedChar      = nfa.StatusExpectedChar
	StatusExpectedElement   = nfa.StatusExpectedElement
	StatusExpectedRbracket  = nfa.StatusExpectedRbracket
	StatusExpectedRparen    = nfa.StatusExpectedRparen
	StatusExpectedSpecial   = nfa.StatusExpectedSpecial
	StatusUnexpectedSpecial = nfa.StatusUnexpectedSpecial
	StatusUnexpectedEnd     = nfa.StatusUnexpectedEnd
	StatusUnorderedRange    = nfa.StatusUnorderedRange
	StatusNoMemory          = nfa.StatusNoMemory
)

// ParseError describes a pattern that failed to compile
type ParseError = nfa.ParseError

// StatusText returns a short English description of a status.
// Unrecognized values map to "Unknown error".
func StatusText(s Status) string {
	return s.String()
}

// Pattern is a compiled regular expression.
//
// A Pattern is immutable after compilation and safe for concurrent use:
// Match and MatchString draw per-search state from an internal pool, and
// distinct Matchers created from one Pattern never share mutable state.
type Pattern struct {
	nfa     *nfa.NFA
	pf      prefilter.Prefilter
	pattern string
	end     int
	pool    sync.Pool
}

// Compile compiles a pattern into a Pattern.
//
// On failure the returned error is a *ParseError whose Offset is the
// position of the byte that caused the failure:
//
//	_, err := rerex.Compile("[z-a]")
//	var perr *rerex.ParseError
//	errors.As(err, &perr) // perr.Status == StatusUnorderedRange, perr.Offset == 4
func Compile(pattern string) (*Pattern, error) {
	n, end, err := nfa.Compile(pattern)
	if err != nil {
		return nil, err
	}

	p := &Pattern{
		nfa:     n,
		pattern: pattern,
		end:     end,
	}
	p.pool.New = func() any { return nfa.NewMatcher(n) }

	// An anchored prefix prefilter, when the pattern yields one
	seq := literal.New(literal.DefaultConfig()).Prefixes(n)
	p.pf = prefilter.NewBuilder(seq).Build()

	return p, nil
}

// MustCompile compiles a pattern and panics if it fails.
// Useful for patterns known to be valid at compile time.
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic("rerex: Compile(`" + pattern + "`): " + err.Error())
	}
	return p
}

// String returns the source text of the pattern
func (p *Pattern) String() string {
	return p.pattern
}

// End returns the final parser offset: one past the last pattern byte that
// was consumed. When End is less than len(String()), the trailing suffix
// was not part of the compiled expression.
func (p *Pattern) End() int {
	return p.end
}

// NumStates returns the number of NFA states in the compiled pattern
func (p *Pattern) NumStates() int {
	return p.nfa.States()
}

// Match reports whether input as a whole is accepted by the pattern
func (p *Pattern) Match(input []byte) bool {
	if p.pf != nil && p.pf.Find(input, 0) != 0 {
		// No covering prefix at the anchor; the automaton cannot accept
		return false
	}

	m := p.pool.Get().(*nfa.Matcher)
	ok := m.Match(input)
	p.pool.Put(m)
	return ok
}

// MatchString is like Match, for a string input
func (p *Pattern) MatchString(input string) bool {
	return p.Match([]byte(input))
}

// Matcher holds the per-search working buffers for matching one Pattern.
//
// A Matcher is single-owner mutable state: concurrent calls on one Matcher
// are a data race, while concurrent Matchers for the same Pattern are safe.
// The Pattern must outlive its Matchers.
type Matcher struct {
	p *Pattern
	m *nfa.Matcher
}

// NewMatcher creates a matcher with working buffers sized to the pattern
func NewMatcher(p *Pattern) *Matcher {
	return &Matcher{
		p: p,
		m: nfa.NewMatcher(p.nfa),
	}
}

// Pattern returns the pattern this matcher was created from
func (m *Matcher) Pattern() *Pattern {
	return m.p
}

// Match reports whether input as a whole is accepted by the pattern.
// It may be called repeatedly with different inputs; each call resets the
// working buffers and allocates nothing.
func (m *Matcher) Match(input []byte) bool {
	if pf := m.p.pf; pf != nil && pf.Find(input, 0) != 0 {
		return false
	}
	return m.m.Match(input)
}

// MatchString is like Match, for a string input
func (m *Matcher) MatchString(input string) bool {
	return m.Match([]byte(input))
}
