package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nihei9/ll1/grammar"
	"github.com/nihei9/ll1/spec"
	gspec "github.com/nihei9/ll1/spec/grammar"
)

const viewTestGrammar = `
#name view;
#terminals a b;

s
    : a s_tail
    | a
    ;
s_tail
    : b
    | ε
    ;
`

func genReport(t *testing.T, src string) *gspec.Report {
	t.Helper()

	ast, err := spec.Parse(strings.NewReader(src))
	require.NoError(t, err)
	def, err := ast.Definition()
	require.NoError(t, err)
	b := grammar.GrammarBuilder{
		Definition: def,
	}
	g, err := b.Build()
	require.NoError(t, err)
	_, report, err := grammar.Compile(g, grammar.EnableReporting())
	require.NoError(t, err)
	return report
}

func TestReportView(t *testing.T) {
	v := &reportView{
		report: genReport(t, viewTestGrammar),
	}

	assert.Equal(t, "s → a s_tail", v.production(1))
	assert.Equal(t, "s → a", v.production(2))
	assert.Equal(t, "s_tail → ε", v.production(4))
	assert.Equal(t, "<production 9>", v.production(9))

	assert.Equal(t, "1 conflict occurred. The grammar is not LL(1).", v.conflictSummary())
	assert.Equal(t, []string{"M[s, a]: s → a s_tail (kept) vs s → a"}, v.conflicts())

	assert.Equal(t, strings.Join([]string{
		"M[s, a] = s → a s_tail",
		"M[s_tail, EOF] = s_tail → ε",
		"M[s_tail, b] = s_tail → b",
	}, "\n")+"\n", v.tableList())

	ff := v.firstFollowTable(120)
	assert.Contains(t, ff, "{ a }")
	assert.Contains(t, ff, "{ b, ε }")
	assert.Contains(t, ff, "{ EOF }")
}

func TestReportView_TableMatrix(t *testing.T) {
	v := &reportView{
		report: genReport(t, viewTestGrammar),
	}

	// EOF, a, and b are split into two pages.
	m := v.tableMatrix(2, 8)
	assert.Contains(t, m, "Terminals 1-2 of 3")
	assert.Contains(t, m, "Terminals 3-3 of 3")
	assert.Contains(t, m, "s → a s…")
	assert.Contains(t, m, "s_tail …")
	assert.NotContains(t, m, "s → a s_tail")

	m = v.tableMatrix(6, 34)
	assert.Contains(t, m, "Terminals 1-3 of 3")
	assert.Contains(t, m, "s → a s_tail")
}

func TestClip(t *testing.T) {
	tests := []struct {
		text     string
		n        int
		expected string
	}{
		{text: "abc", n: 3, expected: "abc"},
		{text: "abcd", n: 3, expected: "ab…"},
		{text: "A → ε", n: 5, expected: "A → ε"},
		{text: "A → ε x", n: 5, expected: "A → …"},
		{text: "abc", n: 1, expected: "…"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, clip(tt.text, tt.n))
	}
}

func TestWriteReport(t *testing.T) {
	var b strings.Builder
	err := writeReport(&b, genReport(t, viewTestGrammar))
	require.NoError(t, err)

	out := b.String()
	for _, section := range []string{"# Conflicts", "# Terminals", "# Non-terminals", "# Productions", "# FIRST / FOLLOW", "# Prediction table", "# Table digest"} {
		assert.Contains(t, out, section)
	}
	assert.Contains(t, out, "   3 s_tail → b")
}
