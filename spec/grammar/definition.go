package grammar

import "strings"

// Definition is a grammar given as plain data. It is the input of the grammar builder and can
// come from a grammar file or be written directly in Go.
type Definition struct {
	Name string `json:"name"`

	// Start is the name of the start symbol. When it is empty, the LHS of the first rule is used.
	Start string `json:"start"`

	Terminals []*TerminalDef `json:"terminals"`
	Rules     []*RuleDef     `json:"rules"`
}

type TerminalDef struct {
	Name string `json:"name"`

	// Pattern is a lexical pattern in maleeni's syntax. Terminals without a pattern must be
	// produced by an external lexer.
	Pattern string `json:"pattern,omitempty"`
	Skip    bool   `json:"skip,omitempty"`

	Row int `json:"row,omitempty"`
	Col int `json:"col,omitempty"`
}

// RuleDef lists the alternatives of one non-terminal in the order of their declaration. An
// alternative is a sequence of symbol names. An empty alternative and an alternative consisting
// of the reserved epsilon name both derive the empty string.
type RuleDef struct {
	LHS          string     `json:"lhs"`
	Alternatives [][]string `json:"alternatives"`

	Row int `json:"row,omitempty"`
	Col int `json:"col,omitempty"`
}

// Terminals declares terminals that an external lexer produces.
func Terminals(names ...string) []*TerminalDef {
	defs := make([]*TerminalDef, len(names))
	for i, name := range names {
		defs[i] = &TerminalDef{
			Name: name,
		}
	}
	return defs
}

// Rule is shorthand for a RuleDef. Each alternative is given as a slice of symbol names.
func Rule(lhs string, alts ...[]string) *RuleDef {
	return &RuleDef{
		LHS:          lhs,
		Alternatives: alts,
	}
}

// Alt is shorthand for an alternative.
func Alt(syms ...string) []string {
	return syms
}

var patternEscaper = strings.NewReplacer(
	`\`, `\\`,
	`.`, `\.`,
	`*`, `\*`,
	`+`, `\+`,
	`?`, `\?`,
	`|`, `\|`,
	`(`, `\(`,
	`)`, `\)`,
	`[`, `\[`,
)

// EscapePattern turns a literal into a pattern that matches only the literal itself, so that
// EscapePattern(`+`) is `\+`.
func EscapePattern(lit string) string {
	return patternEscaper.Replace(lit)
}
