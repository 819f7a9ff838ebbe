// Package codegen generates standalone Go matchers from compiled patterns.
//
// The generated file embeds the pattern's frozen state table and a single
// exported function running the same anchored two-list simulation as the
// engine. It has no imports and no dependency on this module, so patterns
// known at build time can be matched without carrying the compiler.
package codegen

import (
	"bytes"
	"fmt"
	"unicode"

	"github.com/dave/jennifer/jen"

	"github.com/drobilla/rerex/nfa"
)

// Options configures code generation.
type Options struct {
	// Pattern is the regular expression to compile
	Pattern string

	// Name is the prefix for generated identifiers (e.g. "Hello" generates
	// HelloMatch and an unexported helloKinds state table)
	Name string

	// Package is the Go package name for the generated code
	Package string

	// OutputFile is the path the generated code is written to by Compile
	OutputFile string
}

// Validate checks if the options are valid.
func (o Options) Validate() error {
	if o.Pattern == "" {
		return fmt.Errorf("pattern cannot be empty")
	}
	if o.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if o.Package == "" {
		return fmt.Errorf("package cannot be empty")
	}
	return nil
}

// Compile generates a matcher for the pattern and writes it to
// opts.OutputFile.
func Compile(opts Options) error {
	if opts.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}

	f, err := build(opts)
	if err != nil {
		return err
	}

	return f.Save(opts.OutputFile)
}

// Source generates a matcher for the pattern and returns the rendered file
// without writing it.
func Source(opts Options) ([]byte, error) {
	f, err := build(opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("render generated code: %w", err)
	}
	return buf.Bytes(), nil
}

// build compiles the pattern and assembles the generated file
func build(opts Options) (*jen.File, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	n, _, err := nfa.Compile(opts.Pattern)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", opts.Pattern, err)
	}

	f := jen.NewFile(opts.Package)
	f.HeaderComment("Code generated by rerex/codegen. DO NOT EDIT.")
	f.HeaderComment(fmt.Sprintf("Pattern: %s", opts.Pattern))

	pfx := unexported(opts.Name)
	emitTable(f, pfx, n)
	emitMatch(f, opts.Name, pfx)

	return f, nil
}

// State kind values mirrored into the generated file.
const (
	genKindMatch = 0
	genKindRange = 1
	genKindSplit = 2
)

// emitTable declares the frozen state table as parallel arrays
func emitTable(f *jen.File, pfx string, n *nfa.NFA) {
	size := n.States()
	kinds := make([]jen.Code, size)
	lo := make([]jen.Code, size)
	hi := make([]jen.Code, size)
	next := make([]jen.Code, size)
	left := make([]jen.Code, size)
	right := make([]jen.Code, size)

	// NoState appears by name so the table reads like the engine's arena
	id := func(s nfa.StateID) jen.Code {
		if s == nfa.NoState {
			return jen.Id(pfx + "NoState")
		}
		return jen.Lit(int(s))
	}

	for i := 0; i < size; i++ {
		st := n.State(nfa.StateID(i))
		kinds[i] = jen.Lit(int(st.Kind()))

		l, h, nx := st.Range()
		lf, rt := st.Split()
		lo[i] = jen.Lit(int(l))
		hi[i] = jen.Lit(int(h))
		next[i] = id(nx)
		left[i] = id(lf)
		right[i] = id(rt)
	}

	f.Const().Defs(
		jen.Id(pfx+"NoState").Uint32().Op("=").Lit(0xFFFFFFFF),
		jen.Id(pfx+"Start").Uint32().Op("=").Lit(int(n.Start())),
	)

	f.Const().Defs(
		jen.Id(pfx+"KindMatch").Uint8().Op("=").Lit(genKindMatch),
		jen.Id(pfx+"KindRange").Uint8().Op("=").Lit(genKindRange),
		jen.Id(pfx+"KindSplit").Uint8().Op("=").Lit(genKindSplit),
	)

	f.Var().Id(pfx + "Kinds").Op("=").Index(jen.Op("...")).Uint8().Values(kinds...)
	f.Var().Id(pfx + "Lo").Op("=").Index(jen.Op("...")).Byte().Values(lo...)
	f.Var().Id(pfx + "Hi").Op("=").Index(jen.Op("...")).Byte().Values(hi...)
	f.Var().Id(pfx + "Next").Op("=").Index(jen.Op("...")).Uint32().Values(next...)
	f.Var().Id(pfx + "Left").Op("=").Index(jen.Op("...")).Uint32().Values(left...)
	f.Var().Id(pfx + "Right").Op("=").Index(jen.Op("...")).Uint32().Values(right...)
}

// emitMatch declares the exported match function running the two-list
// simulation over the embedded table
func emitMatch(f *jen.File, name, pfx string) {
	f.Comment(fmt.Sprintf("%sMatch reports whether input as a whole matches the pattern.", name))
	f.Func().Id(name + "Match").Params(jen.Id("input").String()).Bool().Block(
		jen.Id("n").Op(":=").Len(jen.Id(pfx+"Kinds")),
		jen.Id("last").Op(":=").Make(jen.Index().Int(), jen.Id("n")),
		jen.For(jen.Id("i").Op(":=").Range().Id("last")).Block(
			jen.Id("last").Index(jen.Id("i")).Op("=").Lit(-1),
		),
		jen.Id("cur").Op(":=").Make(jen.Index().Uint32(), jen.Lit(0), jen.Id("n")),
		jen.Id("nxt").Op(":=").Make(jen.Index().Uint32(), jen.Lit(0), jen.Id("n")),
		jen.Id("stack").Op(":=").Make(jen.Index().Uint32(), jen.Lit(0), jen.Id("n")),
		jen.Id("enter").Op(":=").Func().
			Params(jen.Id("step").Int(), jen.Id("list").Index().Uint32(), jen.Id("s").Uint32()).
			Index().Uint32().
			Block(
				jen.Id("stack").Op("=").Append(jen.Id("stack").Index(jen.Empty(), jen.Lit(0)), jen.Id("s")),
				jen.For(jen.Len(jen.Id("stack")).Op(">").Lit(0)).Block(
					jen.Id("t").Op(":=").Id("stack").Index(jen.Len(jen.Id("stack")).Op("-").Lit(1)),
					jen.Id("stack").Op("=").Id("stack").Index(jen.Empty(), jen.Len(jen.Id("stack")).Op("-").Lit(1)),
					jen.If(jen.Id("t").Op("==").Id(pfx+"NoState").Op("||").Id("last").Index(jen.Id("t")).Op("==").Id("step")).Block(
						jen.Continue(),
					),
					jen.Id("last").Index(jen.Id("t")).Op("=").Id("step"),
					jen.If(jen.Id(pfx+"Kinds").Index(jen.Id("t")).Op("==").Id(pfx+"KindSplit")).Block(
						jen.Id("stack").Op("=").Append(jen.Id("stack"), jen.Id(pfx+"Right").Index(jen.Id("t")), jen.Id(pfx+"Left").Index(jen.Id("t"))),
					).Else().Block(
						jen.Id("list").Op("=").Append(jen.Id("list"), jen.Id("t")),
					),
				),
				jen.Return(jen.Id("list")),
			),
		jen.Id("cur").Op("=").Id("enter").Call(jen.Lit(0), jen.Id("cur"), jen.Id(pfx+"Start")),
		jen.For(
			jen.Id("i").Op(":=").Lit(0),
			jen.Id("i").Op("<").Len(jen.Id("input")),
			jen.Id("i").Op("++"),
		).Block(
			jen.Id("c").Op(":=").Id("input").Index(jen.Id("i")),
			jen.Id("nxt").Op("=").Id("nxt").Index(jen.Empty(), jen.Lit(0)),
			jen.For(jen.List(jen.Id("_"), jen.Id("s")).Op(":=").Range().Id("cur")).Block(
				jen.If(
					jen.Id(pfx+"Kinds").Index(jen.Id("s")).Op("==").Id(pfx+"KindRange").
						Op("&&").Id(pfx+"Lo").Index(jen.Id("s")).Op("<=").Id("c").
						Op("&&").Id("c").Op("<=").Id(pfx+"Hi").Index(jen.Id("s")),
				).Block(
					jen.Id("nxt").Op("=").Id("enter").Call(jen.Id("i").Op("+").Lit(1), jen.Id("nxt"), jen.Id(pfx+"Next").Index(jen.Id("s"))),
				),
			),
			jen.List(jen.Id("cur"), jen.Id("nxt")).Op("=").List(jen.Id("nxt"), jen.Id("cur")),
		),
		jen.For(jen.List(jen.Id("_"), jen.Id("s")).Op(":=").Range().Id("cur")).Block(
			jen.If(jen.Id(pfx+"Kinds").Index(jen.Id("s")).Op("==").Id(pfx+"KindMatch")).Block(
				jen.Return(jen.True()),
			),
		),
		jen.Return(jen.False()),
	)
}

// unexported lowercases the leading rune of an identifier
func unexported(name string) string {
	r := []rune(name)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
