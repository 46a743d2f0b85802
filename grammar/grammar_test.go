package grammar

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	verr "github.com/nihei9/ll1/error"
	spec "github.com/nihei9/ll1/spec/grammar"
)

func TestGrammarBuilder_SemanticErrors(t *testing.T) {
	tests := []struct {
		caption string
		def     *spec.Definition
		cause   error
	}{
		{
			caption: "a grammar needs a name",
			def: &spec.Definition{
				Terminals: spec.Terminals("a"),
				Rules:     []*spec.RuleDef{spec.Rule("s", spec.Alt("a"))},
			},
			cause: semErrNoGrammarName,
		},
		{
			caption: "a grammar needs at least one production",
			def: &spec.Definition{
				Name:      "test",
				Terminals: spec.Terminals("a"),
			},
			cause: semErrNoProduction,
		},
		{
			caption: "an undefined symbol is an error",
			def: &spec.Definition{
				Name:  "test",
				Rules: []*spec.RuleDef{spec.Rule("s", spec.Alt("a"))},
			},
			cause: semErrUndefinedSym,
		},
		{
			caption: "an undefined start symbol is an error",
			def: &spec.Definition{
				Name:      "test",
				Start:     "x",
				Terminals: spec.Terminals("a"),
				Rules:     []*spec.RuleDef{spec.Rule("s", spec.Alt("a"))},
			},
			cause: semErrUndefinedStartSym,
		},
		{
			caption: "a terminal cannot be the start symbol",
			def: &spec.Definition{
				Name:      "test",
				Start:     "a",
				Terminals: spec.Terminals("a"),
				Rules:     []*spec.RuleDef{spec.Rule("s", spec.Alt("a"))},
			},
			cause: semErrUndefinedStartSym,
		},
		{
			caption: "duplicate productions are an error",
			def: &spec.Definition{
				Name:      "test",
				Terminals: spec.Terminals("a"),
				Rules:     []*spec.RuleDef{spec.Rule("s", spec.Alt("a"), spec.Alt("a"))},
			},
			cause: semErrDuplicateProduction,
		},
		{
			caption: "an empty alternative and an epsilon alternative are duplicates",
			def: &spec.Definition{
				Name:  "test",
				Rules: []*spec.RuleDef{spec.Rule("s", spec.Alt(), spec.Alt("ε"))},
			},
			cause: semErrDuplicateProduction,
		},
		{
			caption: "a terminal cannot be declared twice",
			def: &spec.Definition{
				Name:      "test",
				Terminals: spec.Terminals("a", "a"),
				Rules:     []*spec.RuleDef{spec.Rule("s", spec.Alt("a"))},
			},
			cause: semErrDuplicateTerminal,
		},
		{
			caption: "a non-terminal cannot be defined twice",
			def: &spec.Definition{
				Name:      "test",
				Terminals: spec.Terminals("a"),
				Rules: []*spec.RuleDef{
					spec.Rule("s", spec.Alt("a")),
					spec.Rule("s", spec.Alt("a", "a")),
				},
			},
			cause: semErrDuplicateRule,
		},
		{
			caption: "a non-terminal cannot have the name of a terminal",
			def: &spec.Definition{
				Name:      "test",
				Terminals: spec.Terminals("a"),
				Rules: []*spec.RuleDef{
					spec.Rule("s", spec.Alt("a")),
					spec.Rule("a", spec.Alt("s")),
				},
			},
			cause: semErrDuplicateName,
		},
		{
			caption: "the EOF cannot be declared",
			def: &spec.Definition{
				Name:      "test",
				Terminals: spec.Terminals("EOF"),
				Rules:     []*spec.RuleDef{spec.Rule("s", spec.Alt("ε"))},
			},
			cause: semErrReservedName,
		},
		{
			caption: "the epsilon cannot be defined as a non-terminal",
			def: &spec.Definition{
				Name:  "test",
				Rules: []*spec.RuleDef{spec.Rule("ε", spec.Alt())},
			},
			cause: semErrReservedName,
		},
		{
			caption: "a non-terminal needs at least one alternative",
			def: &spec.Definition{
				Name:  "test",
				Rules: []*spec.RuleDef{spec.Rule("s")},
			},
			cause: semErrEmptyAlternatives,
		},
		{
			caption: "the epsilon cannot be mixed with other symbols",
			def: &spec.Definition{
				Name:      "test",
				Terminals: spec.Terminals("a"),
				Rules:     []*spec.RuleDef{spec.Rule("s", spec.Alt("a", "ε"))},
			},
			cause: semErrMixedEpsilon,
		},
		{
			caption: "a terminal used in productions cannot be skipped",
			def: &spec.Definition{
				Name: "test",
				Terminals: []*spec.TerminalDef{
					{Name: "a", Pattern: "a", Skip: true},
				},
				Rules: []*spec.RuleDef{spec.Rule("s", spec.Alt("a"))},
			},
			cause: semErrTermCannotBeSkipped,
		},
		{
			caption: "a terminal without a pattern cannot be skipped",
			def: &spec.Definition{
				Name: "test",
				Terminals: []*spec.TerminalDef{
					{Name: "a"},
					{Name: "ws", Skip: true},
				},
				Rules: []*spec.RuleDef{spec.Rule("s", spec.Alt("a"))},
			},
			cause: semErrSkipWithoutPattern,
		},
		{
			caption: "a symbol name must not be empty",
			def: &spec.Definition{
				Name:      "test",
				Terminals: spec.Terminals(""),
				Rules:     []*spec.RuleDef{spec.Rule("s", spec.Alt("ε"))},
			},
			cause: semErrEmptyName,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			b := GrammarBuilder{
				Definition: tt.def,
			}
			gram, err := b.Build()
			if gram != nil {
				t.Fatal("a grammar must be nil")
			}
			specErrs, ok := err.(verr.SpecErrors)
			if !ok {
				t.Fatalf("unexpected error type: %T: %v", err, err)
			}
			found := false
			for _, e := range specErrs {
				if e.Cause == tt.cause {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("an expected error was not found; want: %v, got: %v", tt.cause, specErrs)
			}
		})
	}
}

func TestGrammarBuilder_Build(t *testing.T) {
	assert := assert.New(t)
	def := &spec.Definition{
		Name:      "list",
		Terminals: spec.Terminals("item", "unused"),
		Rules: []*spec.RuleDef{
			spec.Rule("list", spec.Alt("item", "list"), spec.Alt()),
		},
	}
	b := GrammarBuilder{
		Definition: def,
	}
	gram, err := b.Build()
	if !assert.NoError(err) {
		return
	}
	assert.Equal("list", gram.Name())
	assert.Equal(2, gram.productionSet.count())
	assert.Nil(gram.lexSpec)

	prod, ok := gram.productionSet.findByNum(2)
	if !assert.True(ok) {
		return
	}
	assert.True(prod.isEmpty())
	assert.Len(prod.rhs, 1)
	assert.True(prod.rhs[0].IsEpsilon())
}

func TestAnalysis(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ll1.grammar")
	defer teardown()

	gram := buildGrammar(t, exprGrammar)
	a, err := Analyze(gram)
	require.NoError(t, err)
	assert := assert.New(t)

	terms, empty, err := a.First("expr")
	require.NoError(t, err)
	assert.Equal([]string{"l_paren", "id"}, terms)
	assert.False(empty)

	terms, empty, err = a.First("add")
	require.NoError(t, err)
	assert.Equal([]string{"add"}, terms)
	assert.False(empty)

	terms, empty, err = a.First("ε")
	require.NoError(t, err)
	assert.Empty(terms)
	assert.True(empty)

	terms, empty, err = a.FirstOfSequence("expr_tail", "term_tail")
	require.NoError(t, err)
	assert.Equal([]string{"add", "mul"}, terms)
	assert.True(empty)

	flw, err := a.Follow("factor")
	require.NoError(t, err)
	assert.Equal([]string{"EOF", "add", "mul", "r_paren"}, flw)

	_, _, err = a.First("undefined")
	assert.ErrorIs(err, semErrUndefinedSym)
	_, err = a.Follow("add")
	assert.ErrorIs(err, semErrUndefinedSym)
}

func TestCompile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ll1.grammar")
	defer teardown()

	for lv := CompressionLevelMin; lv <= CompressionLevelMax; lv++ {
		gram := buildGrammar(t, exprGrammar)
		cg, report, err := Compile(gram, EnableReporting(), CompressionLevel(lv))
		require.NoError(t, err)
		assert := assert.New(t)

		assert.Equal("expr", cg.Name)
		if assert.NotNil(cg.Lexical) {
			assert.Equal("maleeni", cg.Lexical.Lexer)
			assert.Equal("expr", cg.Lexical.Maleeni.Spec.Name)
		}

		syn := cg.Syntactic
		assert.Equal(1, syn.StartSymbol)
		assert.Equal(1, syn.EOFSymbol)
		assert.Equal([]string{"", "EOF", "add", "mul", "l_paren", "r_paren", "id"}, syn.Terminals)
		assert.Equal([]string{"", "expr", "expr_tail", "term", "term_tail", "factor"}, syn.NonTerminals)
		assert.Equal(len(syn.Terminals), syn.TerminalCount)
		assert.Equal(len(syn.NonTerminals), syn.NonTerminalCount)
		assert.Equal([]int{0, 1, 2, 2, 3, 4, 4, 5, 5}, syn.LHSSymbols)
		assert.Equal([]int{0}, syn.Alternatives[3])
		assert.Equal([]int{4, -1, 5}, syn.Alternatives[7])
		assert.Empty(syn.Conflicts)
		assert.Equal(lv, syn.Prediction.CompressionLevel)

		if assert.NotNil(report) {
			assert.True(report.LL1())
			assert.NotEmpty(report.TableDigest)
			assert.Len(report.Productions, 9)
			assert.Len(report.Table, 13)
		}
	}
}

func TestCompile_DigestIsDeterministic(t *testing.T) {
	var digests []string
	for i := 0; i < 2; i++ {
		gram := buildGrammar(t, exprGrammar)
		_, report, err := Compile(gram, EnableReporting())
		require.NoError(t, err)
		digests = append(digests, report.TableDigest)
	}
	assert.Equal(t, digests[0], digests[1])

	gram := buildGrammar(t, `
#name other;

s
    : a
    ;
a: "a";
`)
	_, report, err := Compile(gram, EnableReporting())
	require.NoError(t, err)
	assert.NotEqual(t, digests[0], report.TableDigest)
}

func TestCompile_Conflicts(t *testing.T) {
	gram := buildGrammar(t, `
#name test;

s
    : a b
    | a c
    ;
a: "a";
b: "b";
c: "c";
`)
	cg, report, err := Compile(gram, EnableReporting())
	require.NoError(t, err)
	assert := assert.New(t)
	assert.False(report.LL1())
	if assert.Len(cg.Syntactic.Conflicts, 1) {
		c := cg.Syntactic.Conflicts[0]
		assert.Equal(&spec.Conflict{NonTerminal: 1, Terminal: 2, Production1: 1, Production2: 2}, c)
	}
}

func TestCompile_InvalidCompressionLevel(t *testing.T) {
	gram := buildGrammar(t, exprGrammar)
	_, _, err := Compile(gram, CompressionLevel(CompressionLevelMax+1))
	assert.Error(t, err)
}
