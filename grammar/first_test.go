package grammar

import (
	"testing"

	"github.com/nihei9/ll1/grammar/symbol"
)

type first struct {
	lhs     string
	num     int
	dot     int
	symbols []string
	empty   bool
}

func TestGenFirst(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		first   []first
	}{
		{
			caption: "productions contain only non-empty productions",
			src: `
#name test;

expr
    : term expr_tail
    ;
expr_tail
    : add term expr_tail
    | ε
    ;
term
    : l_paren expr r_paren
    | id
    ;
add: '+';
l_paren: '(';
r_paren: ')';
id: "[A-Za-z_][0-9A-Za-z_]*";
`,
			first: []first{
				{lhs: "expr", num: 0, dot: 0, symbols: []string{"l_paren", "id"}},
				{lhs: "expr", num: 0, dot: 1, symbols: []string{"add"}, empty: true},
				{lhs: "expr_tail", num: 0, dot: 0, symbols: []string{"add"}},
				{lhs: "expr_tail", num: 0, dot: 2, symbols: []string{"add"}, empty: true},
				{lhs: "expr_tail", num: 1, dot: 0, symbols: []string{}, empty: true},
				{lhs: "term", num: 0, dot: 0, symbols: []string{"l_paren"}},
				{lhs: "term", num: 0, dot: 1, symbols: []string{"l_paren", "id"}},
				{lhs: "term", num: 0, dot: 2, symbols: []string{"r_paren"}},
				{lhs: "term", num: 1, dot: 0, symbols: []string{"id"}},
			},
		},
		{
			caption: "productions contain the empty start production",
			src: `
#name test;

s
    :
    ;
`,
			first: []first{
				{lhs: "s", num: 0, dot: 0, symbols: []string{}, empty: true},
			},
		},
		{
			caption: "productions contain an empty production",
			src: `
#name test;

s
    : foo bar
    ;
foo
    : ε
    ;
bar: "bar";
`,
			first: []first{
				{lhs: "s", num: 0, dot: 0, symbols: []string{"bar"}, empty: false},
				{lhs: "foo", num: 0, dot: 0, symbols: []string{}, empty: true},
			},
		},
		{
			caption: "a production contains non-empty alternative and empty alternative",
			src: `
#name test;

s
    : foo
    ;
foo
    : bar
    |
    ;
bar: "bar";
`,
			first: []first{
				{lhs: "s", num: 0, dot: 0, symbols: []string{"bar"}, empty: true},
				{lhs: "foo", num: 0, dot: 0, symbols: []string{"bar"}},
				{lhs: "foo", num: 1, dot: 0, symbols: []string{}, empty: true},
			},
		},
		{
			caption: "an EOF in an RHS ends the scan like other terminals",
			src: `
#name test;

program
    : stmts EOF
    ;
stmts
    : stmt stmts
    | ε
    ;
stmt: "s";
`,
			first: []first{
				{lhs: "program", num: 0, dot: 0, symbols: []string{"EOF", "stmt"}},
				{lhs: "program", num: 0, dot: 1, symbols: []string{"EOF"}},
			},
		},
		{
			caption: "left recursion terminates",
			src: `
#name test;

s
    : s a
    | b
    ;
a: "a";
b: "b";
`,
			first: []first{
				{lhs: "s", num: 0, dot: 0, symbols: []string{"b"}},
				{lhs: "s", num: 1, dot: 0, symbols: []string{"b"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			fst, gram := genActualFirst(t, tt.src)

			for _, ttFirst := range tt.first {
				lhsSym, ok := gram.symbolTable.ToSymbol(ttFirst.lhs)
				if !ok {
					t.Fatalf("a symbol was not found; symbol: %v", ttFirst.lhs)
				}

				prod, ok := gram.productionSet.findByLHS(lhsSym)
				if !ok {
					t.Fatalf("a production was not found; LHS: %v (%v)", ttFirst.lhs, lhsSym)
				}

				actualFirst, err := fst.find(prod[ttFirst.num], ttFirst.dot)
				if err != nil {
					t.Fatalf("failed to get a FIRST set; LHS: %v (%v), num: %v, dot: %v, error: %v", ttFirst.lhs, lhsSym, ttFirst.num, ttFirst.dot, err)
				}

				expectedFirst := genExpectedFirstEntry(t, ttFirst.symbols, ttFirst.empty, gram.symbolTable)

				testFirst(t, actualFirst, expectedFirst)
			}
		})
	}
}

func TestFirstSet_FindBySymbol(t *testing.T) {
	fst, gram := genActualFirst(t, exprGrammar)
	genSym := newTestSymbolGenerator(t, gram.symbolTable)

	e := fst.findBySymbol(genSym("add"))
	testFirst(t, e, genExpectedFirstEntry(t, []string{"add"}, false, gram.symbolTable))

	e = fst.findBySymbol(symbol.SymbolEpsilon)
	testFirst(t, e, genExpectedFirstEntry(t, []string{}, true, gram.symbolTable))

	e, err := fst.findOfSequence([]symbol.Symbol{genSym("expr_tail"), genSym("term_tail")})
	if err != nil {
		t.Fatal(err)
	}
	testFirst(t, e, genExpectedFirstEntry(t, []string{"add", "mul"}, true, gram.symbolTable))
}

func genActualFirst(t *testing.T, src string) (*firstSet, *Grammar) {
	gram := buildGrammar(t, src)
	fst, err := genFirstSet(gram.productionSet)
	if err != nil {
		t.Fatal(err)
	}
	if fst == nil {
		t.Fatal("genFirstSet returned nil without any error")
	}

	return fst, gram
}

func genExpectedFirstEntry(t *testing.T, symbols []string, empty bool, symTab *symbol.SymbolTableReader) *firstEntry {
	t.Helper()

	entry := newFirstEntry()
	if empty {
		entry.addEmpty()
	}
	for _, sym := range symbols {
		symSym, ok := symTab.ToSymbol(sym)
		if !ok {
			t.Fatalf("a symbol was not found; symbol: %v", sym)
		}
		entry.add(symSym)
	}

	return entry
}

func testFirst(t *testing.T, actual, expected *firstEntry) {
	t.Helper()

	if actual.empty != expected.empty {
		t.Errorf("empty is mismatched\nwant: %v\ngot: %v", expected.empty, actual.empty)
	}

	if len(actual.symbols) != len(expected.symbols) {
		t.Fatalf("invalid FIRST set\nwant: %+v\ngot: %+v", expected.symbols, actual.symbols)
	}

	for eSym := range expected.symbols {
		if _, ok := actual.symbols[eSym]; !ok {
			t.Fatalf("invalid FIRST set\nwant: %+v\ngot: %+v", expected.symbols, actual.symbols)
		}
	}
}
