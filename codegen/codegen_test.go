package codegen

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/drobilla/rerex/nfa"
)

// TestOptions_Validate tests option checking
func TestOptions_Validate(t *testing.T) {
	valid := Options{Pattern: "a", Name: "A", Package: "p"}
	if err := valid.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	tests := []struct {
		name string
		opts Options
	}{
		{"no pattern", Options{Name: "A", Package: "p"}},
		{"no name", Options{Pattern: "a", Package: "p"}},
		{"no package", Options{Pattern: "a", Name: "A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.Validate(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

// TestSource tests the shape of the rendered file
func TestSource(t *testing.T) {
	src, err := Source(Options{
		Pattern: "h(e|a)llo",
		Name:    "Hello",
		Package: "hello",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := string(src)
	for _, want := range []string{
		"// Code generated by rerex/codegen. DO NOT EDIT.",
		"// Pattern: h(e|a)llo",
		"package hello",
		"func HelloMatch(input string) bool",
		"helloKinds",
		"helloStart",
		"helloNoState",
		"helloKindSplit",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("generated source missing %q\n%s", want, got)
		}
	}

	// Self-contained: the generated file must not import anything
	if strings.Contains(got, "import") {
		t.Errorf("generated source should have no imports\n%s", got)
	}
}

// TestSource_TableSize tests that the table mirrors the compiled arena
func TestSource_TableSize(t *testing.T) {
	pattern := "a|b"
	n, _, err := nfa.Compile(pattern)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	src, err := Source(Options{Pattern: pattern, Name: "Alt", Package: "alt"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// One kind entry per state
	kinds := strings.SplitN(string(src), "altKinds = [...]uint8{", 2)
	if len(kinds) != 2 {
		t.Fatalf("no kinds table in generated source\n%s", src)
	}
	row := strings.SplitN(kinds[1], "}", 2)[0]
	if got := len(strings.Split(row, ",")); got != n.States() {
		t.Errorf("kinds table has %d entries, want %d", got, n.States())
	}
}

// TestSource_BadPattern tests error propagation from compilation
func TestSource_BadPattern(t *testing.T) {
	_, err := Source(Options{Pattern: "[z-a]", Name: "Bad", Package: "bad"})
	if err == nil {
		t.Fatal("expected error")
	}

	var perr *nfa.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected wrapped *ParseError, got %v", err)
	}
	if perr.Status != nfa.StatusUnorderedRange {
		t.Errorf("status = %v, want UnorderedRange", perr.Status)
	}
}

// TestCompile_WritesFile tests the file-writing entry point
func TestCompile_WritesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "digit_gen.go")

	err := Compile(Options{
		Pattern:    "[0-9]",
		Name:       "Digit",
		Package:    "digit",
		OutputFile: out,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(data), "func DigitMatch(input string) bool") {
		t.Error("output file missing the match function")
	}
}

// TestCompile_RequiresOutputFile tests the missing-path error
func TestCompile_RequiresOutputFile(t *testing.T) {
	err := Compile(Options{Pattern: "a", Name: "A", Package: "p"})
	if err == nil {
		t.Fatal("expected error")
	}
}
