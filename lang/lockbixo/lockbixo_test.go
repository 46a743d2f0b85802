package lockbixo

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nihei9/ll1/driver"
	"github.com/nihei9/ll1/grammar"
	spec "github.com/nihei9/ll1/spec/grammar"
)

func terminalName(report *spec.Report, num int) string {
	for _, term := range report.Terminals {
		if term != nil && term.Number == num {
			return term.Name
		}
	}
	return ""
}

func nonTerminalName(report *spec.Report, num int) string {
	for _, nonTerm := range report.NonTerminals {
		if nonTerm != nil && nonTerm.Number == num {
			return nonTerm.Name
		}
	}
	return ""
}

func productionOf(report *spec.Report, num int) *spec.Production {
	for _, prod := range report.Productions {
		if prod != nil && prod.Number == num {
			return prod
		}
	}
	return nil
}

func TestCompile_DanglingElse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ll1.lockbixo")
	defer teardown()

	_, report, err := Compile()
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.False(t, report.LL1())
	require.Len(t, report.Conflicts, 1)
	c := report.Conflicts[0]
	assert.Equal(t, "IfElseOpt", nonTerminalName(report, c.NonTerminal))
	assert.Equal(t, KindElse, terminalName(report, c.Terminal))

	kept := productionOf(report, c.Production1)
	require.NotNil(t, kept)
	require.NotEmpty(t, kept.RHS)
	assert.Equal(t, KindElse, terminalName(report, kept.RHS[0]))

	dropped := productionOf(report, c.Production2)
	require.NotNil(t, dropped)
	assert.Equal(t, []int{0}, dropped.RHS)
}

func TestParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ll1.lockbixo")
	defer teardown()

	for lv := grammar.CompressionLevelMin; lv <= grammar.CompressionLevelMax; lv++ {
		cg, _, err := Compile(grammar.CompressionLevel(lv))
		require.NoError(t, err)

		tests := []struct {
			caption string
			src     string
			accept  bool
		}{
			{caption: "an empty program", src: "", accept: true},
			{caption: "arithmetic", src: "int x ; x = 1 + 2 * 3 ;", accept: true},
			{caption: "the dangling else", src: "if (a) if (b) x = 1; else x = 2;", accept: true},
			{caption: "a typed function", src: "int f(int a, char b) { return a; }", accept: true},
			{caption: "a call", src: "f(1, x + 2, !y);", accept: true},
			{caption: "loops", src: "for (int i = 0; i < 10; i = i + 1) write(i); do { x = x - 1; } while (x != 0);", accept: true},
			{caption: "an empty for", src: "for (;;) {}", accept: true},
			{caption: "the accepted example", src: ExampleOK, accept: true},
			{caption: "a missing operand", src: "if ( x > ) x = 1 ;"},
			{caption: "a missing semicolon", src: "int x"},
			{caption: "an unbalanced block", src: "{ x = 1;"},
			{caption: "the rejected example", src: ExampleErr},
		}
		for _, tt := range tests {
			t.Run(tt.caption, func(t *testing.T) {
				p, ok, err := Parse(cg, tt.src)
				require.NotNil(t, p)
				if tt.accept {
					require.NoError(t, err)
					assert.True(t, ok)
					return
				}
				assert.False(t, ok)
				_, isSynErr := err.(*driver.SyntaxError)
				assert.True(t, isSynErr, "unexpected error: %v", err)
			})
		}
	}
}

func TestParse_Trace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ll1.lockbixo")
	defer teardown()

	cg, _, err := Compile()
	require.NoError(t, err)

	p, ok, err := Parse(cg, "int x ; x = 1 + 2 * 3 ;")
	require.NoError(t, err)
	require.True(t, ok)

	trace := p.Trace()
	require.NotEmpty(t, trace)
	assert.Equal(t, []string{StartSymbol, KindEOF}, trace[0].Stack)
	assert.Equal(t, driver.ActionAccept, trace[len(trace)-1].Action)

	addIdx, mulIdx := -1, -1
	for i, e := range trace {
		if e.Action != driver.ActionExpand {
			continue
		}
		switch e.Production {
		case "AddTail → OP_SOMA MulExpr AddTail":
			if addIdx < 0 {
				addIdx = i
			}
		case "MulTail → OP_MULTI UnaryExpr MulTail":
			mulIdx = i
		}
	}
	require.True(t, addIdx >= 0, "AddTail was not expanded")
	require.True(t, mulIdx >= 0, "MulTail was not expanded")
	assert.True(t, addIdx < mulIdx)

	// The multiplication is nested in the addition, so AddTail stays below MulTail on the stack.
	stack := strings.Join(trace[mulIdx].Stack, " ")
	assert.True(t, strings.Index(stack, "MulTail") < strings.Index(stack, "AddTail"), stack)
}

func TestParse_SyntaxError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ll1.lockbixo")
	defer teardown()

	cg, _, err := Compile()
	require.NoError(t, err)

	p, ok, err := Parse(cg, "if ( x > ) x = 1 ;")
	assert.False(t, ok)
	require.Error(t, err)

	synErr, isSynErr := err.(*driver.SyntaxError)
	require.True(t, isSynErr, "unexpected error: %v", err)
	assert.Equal(t, 1, synErr.Row)
	assert.Equal(t, 10, synErr.Col)
	assert.Equal(t, KindDelimCloseParen, synErr.Kind)
	assert.Equal(t, ")", synErr.Lexeme)
	assert.Equal(t, []string{
		KindBoolean,
		KindChar,
		KindDelimOpenParen,
		KindFloat,
		KindID,
		KindInt,
		KindOpNot,
		KindString,
	}, synErr.ExpectedTerminals)

	trace := p.Trace()
	require.NotEmpty(t, trace)
	last := trace[len(trace)-1]
	assert.Equal(t, driver.ActionError, last.Action)
	assert.Equal(t, "AddExpr", last.Symbol)
	assert.Equal(t, KindDelimCloseParen, last.Lookahead)
}

func TestParse_ExampleErr(t *testing.T) {
	cg, _, err := Compile()
	require.NoError(t, err)

	_, ok, err := Parse(cg, ExampleErr)
	assert.False(t, ok)
	synErr, isSynErr := err.(*driver.SyntaxError)
	require.True(t, isSynErr, "unexpected error: %v", err)
	assert.Equal(t, 2, synErr.Row)
	assert.Equal(t, 8, synErr.Col)
}

func TestParse_ScanError(t *testing.T) {
	cg, _, err := Compile()
	require.NoError(t, err)

	p, ok, err := Parse(cg, "x = $;")
	assert.Nil(t, p)
	assert.False(t, ok)
	_, isScanErr := err.(*ScanError)
	assert.True(t, isScanErr, "unexpected error: %v", err)
}
