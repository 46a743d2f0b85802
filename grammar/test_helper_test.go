package grammar

import (
	"strings"
	"testing"

	"github.com/nihei9/ll1/grammar/symbol"
	"github.com/nihei9/ll1/spec"
)

type testSymbolGenerator func(text string) symbol.Symbol

func newTestSymbolGenerator(t *testing.T, symTab *symbol.SymbolTableReader) testSymbolGenerator {
	return func(text string) symbol.Symbol {
		t.Helper()

		sym, ok := symTab.ToSymbol(text)
		if !ok {
			t.Fatalf("symbol was not found: %v", text)
		}
		return sym
	}
}

type testProductionGenerator func(lhs string, rhs ...string) *production

func newTestProductionGenerator(t *testing.T, genSym testSymbolGenerator) testProductionGenerator {
	return func(lhs string, rhs ...string) *production {
		t.Helper()

		rhsSym := []symbol.Symbol{}
		for _, text := range rhs {
			rhsSym = append(rhsSym, genSym(text))
		}
		prod, err := newProduction(genSym(lhs), rhsSym)
		if err != nil {
			t.Fatalf("failed to create a production: %v", err)
		}

		return prod
	}
}

func buildGrammar(t *testing.T, src string) *Grammar {
	t.Helper()

	ast, err := spec.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	def, err := ast.Definition()
	if err != nil {
		t.Fatal(err)
	}
	b := GrammarBuilder{
		Definition: def,
	}
	gram, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	return gram
}

// exprGrammar is the classic expression grammar with its left recursion removed.
const exprGrammar = `
#name expr;

expr
    : term expr_tail
    ;
expr_tail
    : add term expr_tail
    | ε
    ;
term
    : factor term_tail
    ;
term_tail
    : mul factor term_tail
    | ε
    ;
factor
    : l_paren expr r_paren
    | id
    ;
add: '+';
mul: '*';
l_paren: '(';
r_paren: ')';
id: "[A-Za-z_][0-9A-Za-z_]*";
`
