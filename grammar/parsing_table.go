package grammar

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/nihei9/ll1/grammar/symbol"
	spec "github.com/nihei9/ll1/spec/grammar"
)

// predictionConflict means two productions are predicted for the same pair of a non-terminal and
// a lookahead terminal. The table keeps prodNum1, the one assigned first.
type predictionConflict struct {
	nonTerm  symbol.Symbol
	term     symbol.Symbol
	prodNum1 productionNum
	prodNum2 productionNum
}

// ParsingTable is an LL(1) prediction table. A row corresponds to a non-terminal and a column to a
// terminal, and both are indexed by the symbol numbers.
type ParsingTable struct {
	predictionTable  []productionNum
	terminalCount    int
	nonTerminalCount int
	conflicts        []*predictionConflict
}

func (t *ParsingTable) readPrediction(nonTerm symbol.Symbol, term symbol.Symbol) productionNum {
	return t.predictionTable[nonTerm.Num().Int()*t.terminalCount+term.Num().Int()]
}

func (t *ParsingTable) writePrediction(nonTerm symbol.Symbol, term symbol.Symbol, prod productionNum) {
	t.predictionTable[nonTerm.Num().Int()*t.terminalCount+term.Num().Int()] = prod
}

// entries returns the uncompressed table as a flat slice of production numbers.
func (t *ParsingTable) entries() []int {
	es := make([]int, len(t.predictionTable))
	for i, e := range t.predictionTable {
		es[i] = e.Int()
	}
	return es
}

type ll1TableBuilder struct {
	prods        *productionSet
	first        *firstSet
	follow       *followSet
	symTab       *symbol.SymbolTableReader
	termCount    int
	nonTermCount int

	conflicts []*predictionConflict
}

// build fills the table with FIRST of each production, and with FOLLOW of the LHS when the
// production can derive the empty string. Non-terminals and their productions are visited in the
// order of their declaration, which decides which production survives a conflict.
func (b *ll1TableBuilder) build() (*ParsingTable, error) {
	tab := &ParsingTable{
		predictionTable:  make([]productionNum, b.nonTermCount*b.termCount),
		terminalCount:    b.termCount,
		nonTerminalCount: b.nonTermCount,
	}

	for _, nonTerm := range b.symTab.NonTerminalSymbols() {
		prods, ok := b.prods.findByLHS(nonTerm)
		if !ok {
			return nil, fmt.Errorf("productions were not found; LHS: %v", nonTerm)
		}
		for _, prod := range prods {
			fst, err := b.first.find(prod, 0)
			if err != nil {
				return nil, err
			}
			for _, term := range fst.sortedSymbols() {
				b.writePrediction(tab, nonTerm, term, prod.num)
			}
			if !fst.empty {
				continue
			}

			flw, err := b.follow.find(nonTerm)
			if err != nil {
				return nil, err
			}
			for _, term := range flw.sortedSymbols() {
				b.writePrediction(tab, nonTerm, term, prod.num)
			}
		}
	}

	tab.conflicts = b.conflicts

	return tab, nil
}

// writePrediction writes a production to a cell of the table. When the cell is already occupied by
// another production, the existing one is kept and the conflict is recorded.
func (b *ll1TableBuilder) writePrediction(tab *ParsingTable, nonTerm symbol.Symbol, term symbol.Symbol, prod productionNum) {
	p := tab.readPrediction(nonTerm, term)
	if p != productionNumNil {
		if p == prod {
			return
		}

		b.conflicts = append(b.conflicts, &predictionConflict{
			nonTerm:  nonTerm,
			term:     term,
			prodNum1: p,
			prodNum2: prod,
		})
		tracer().Infof("conflict: M[%v, %v] = %v vs %v", b.symbolToText(nonTerm), b.symbolToText(term), p, prod)
		return
	}
	tab.writePrediction(nonTerm, term, prod)
}

func (b *ll1TableBuilder) symbolToText(sym symbol.Symbol) string {
	text, ok := b.symTab.ToText(sym)
	if !ok {
		return sym.String()
	}
	return text
}

func (b *ll1TableBuilder) genReport(tab *ParsingTable, gram *Grammar) (*spec.Report, error) {
	var terms []*spec.Terminal
	{
		termSyms := b.symTab.TerminalSymbols()
		terms = make([]*spec.Terminal, len(termSyms)+1)

		for _, sym := range termSyms {
			name, ok := b.symTab.ToText(sym)
			if !ok {
				return nil, fmt.Errorf("failed to generate terminals: symbol not found: %v", sym)
			}

			term := &spec.Terminal{
				Number: sym.Num().Int(),
				Name:   name,
			}
			if pat, ok := gram.sym2Pattern[sym]; ok {
				term.Pattern = pat
			}
			if _, ok := gram.skipSymbols[sym]; ok {
				term.Skip = true
			}

			terms[sym.Num()] = term
		}
	}

	var nonTerms []*spec.NonTerminal
	{
		nonTermSyms := b.symTab.NonTerminalSymbols()
		nonTerms = make([]*spec.NonTerminal, len(nonTermSyms)+1)
		for _, sym := range nonTermSyms {
			name, ok := b.symTab.ToText(sym)
			if !ok {
				return nil, fmt.Errorf("failed to generate non-terminals: symbol not found: %v", sym)
			}

			nonTerms[sym.Num()] = &spec.NonTerminal{
				Number: sym.Num().Int(),
				Name:   name,
			}
		}
	}

	var prods []*spec.Production
	{
		ps := gram.productionSet.getAllProductions()
		prods = make([]*spec.Production, len(ps)+1)
		for _, p := range ps {
			prods[p.num.Int()] = &spec.Production{
				Number: p.num.Int(),
				LHS:    p.lhs.Num().Int(),
				RHS:    encodeRHS(p.rhs),
			}
		}
	}

	var first []*spec.First
	var follow []*spec.Follow
	{
		nonTermSyms := b.symTab.NonTerminalSymbols()
		first = make([]*spec.First, 0, len(nonTermSyms))
		follow = make([]*spec.Follow, 0, len(nonTermSyms))
		for _, sym := range nonTermSyms {
			fst := b.first.findBySymbol(sym)
			if fst == nil {
				return nil, fmt.Errorf("an entry of FIRST was not found; symbol: %s", sym)
			}
			first = append(first, &spec.First{
				NonTerminal: sym.Num().Int(),
				Terminals:   symbolsToNums(fst.sortedSymbols()),
				Empty:       fst.empty,
			})

			flw, err := b.follow.find(sym)
			if err != nil {
				return nil, err
			}
			follow = append(follow, &spec.Follow{
				NonTerminal: sym.Num().Int(),
				Terminals:   symbolsToNums(flw.sortedSymbols()),
				EOF:         flw.eof,
			})
		}
	}

	var entries []*spec.TableEntry
	for _, nonTerm := range b.symTab.NonTerminalSymbols() {
		for _, term := range b.symTab.TerminalSymbols() {
			p := tab.readPrediction(nonTerm, term)
			if p == productionNumNil {
				continue
			}
			entries = append(entries, &spec.TableEntry{
				NonTerminal: nonTerm.Num().Int(),
				Terminal:    term.Num().Int(),
				Production:  p.Int(),
			})
		}
	}

	conflicts := make([]*spec.Conflict, len(tab.conflicts))
	for i, c := range tab.conflicts {
		conflicts[i] = &spec.Conflict{
			NonTerminal: c.nonTerm.Num().Int(),
			Terminal:    c.term.Num().Int(),
			Production1: c.prodNum1.Int(),
			Production2: c.prodNum2.Int(),
		}
	}

	digest, err := genTableDigest(tab)
	if err != nil {
		return nil, err
	}

	return &spec.Report{
		Name:         gram.name,
		Terminals:    terms,
		NonTerminals: nonTerms,
		Productions:  prods,
		First:        first,
		Follow:       follow,
		Table:        entries,
		Conflicts:    conflicts,
		TableDigest:  digest,
	}, nil
}

type tableFingerprint struct {
	TerminalCount    int
	NonTerminalCount int
	Entries          []int
}

// genTableDigest returns a fingerprint of a table. Two tables built from the same grammar always have
// the same fingerprint.
func genTableDigest(tab *ParsingTable) (string, error) {
	return structhash.Hash(&tableFingerprint{
		TerminalCount:    tab.terminalCount,
		NonTerminalCount: tab.nonTerminalCount,
		Entries:          tab.entries(),
	}, 1)
}

// encodeRHS encodes terminals as positive numbers, non-terminals as negative numbers, and the epsilon
// as zero.
func encodeRHS(rhs []symbol.Symbol) []int {
	es := make([]int, len(rhs))
	for i, sym := range rhs {
		switch {
		case sym.IsEpsilon():
			es[i] = spec.SymbolEpsilon
		case sym.IsTerminal():
			es[i] = sym.Num().Int()
		default:
			es[i] = sym.Num().Int() * -1
		}
	}
	return es
}

func symbolsToNums(syms []symbol.Symbol) []int {
	nums := make([]int, len(syms))
	for i, sym := range syms {
		nums[i] = sym.Num().Int()
	}
	return nums
}
