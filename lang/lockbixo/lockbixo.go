package lockbixo

import (
	_ "embed"

	"github.com/nihei9/ll1/driver"
	"github.com/nihei9/ll1/grammar"
	spec "github.com/nihei9/ll1/spec/grammar"
)

var (
	//go:embed examples/ok.lbx
	ExampleOK string

	//go:embed examples/err.lbx
	ExampleErr string
)

// Compile builds and compiles the grammar of Lockbixo. Reporting is always enabled because the
// report carries the conflict of the dangling else.
func Compile(opts ...grammar.CompileOption) (*spec.CompiledGrammar, *spec.Report, error) {
	b := grammar.GrammarBuilder{
		Definition: Definition(),
	}
	g, err := b.Build()
	if err != nil {
		return nil, nil, err
	}
	return grammar.Compile(g, append([]grammar.CompileOption{grammar.EnableReporting()}, opts...)...)
}

// Parse scans and parses a source with a compiled grammar of Lockbixo. The parser is returned even
// when the source is rejected, so that callers can inspect the trace.
func Parse(cg *spec.CompiledGrammar, src string, opts ...driver.ParserOption) (*driver.Parser, bool, error) {
	toks, err := Scan(src)
	if err != nil {
		return nil, false, err
	}
	gram := driver.NewGrammar(cg)
	ts, err := driver.NewSliceTokenStream(gram, toks)
	if err != nil {
		return nil, false, err
	}
	p, err := driver.NewParser(gram, ts, opts...)
	if err != nil {
		return nil, false, err
	}
	ok, err := p.Parse()
	return p, ok, err
}
