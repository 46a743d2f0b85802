package grammar

import (
	"fmt"
	"sort"

	"github.com/nihei9/ll1/grammar/symbol"
)

type firstEntry struct {
	symbols map[symbol.Symbol]struct{}
	empty   bool
}

func newFirstEntry() *firstEntry {
	return &firstEntry{
		symbols: map[symbol.Symbol]struct{}{},
		empty:   false,
	}
}

func (e *firstEntry) add(sym symbol.Symbol) bool {
	if _, ok := e.symbols[sym]; ok {
		return false
	}
	e.symbols[sym] = struct{}{}
	return true
}

func (e *firstEntry) addEmpty() bool {
	if !e.empty {
		e.empty = true
		return true
	}
	return false
}

func (e *firstEntry) mergeExceptEmpty(target *firstEntry) bool {
	if target == nil {
		return false
	}
	changed := false
	for sym := range target.symbols {
		added := e.add(sym)
		if added {
			changed = true
		}
	}
	return changed
}

// merge folds the whole target, including the empty flag, into the entry.
func (e *firstEntry) merge(target *firstEntry) bool {
	changed := e.mergeExceptEmpty(target)
	if target != nil && target.empty {
		if e.addEmpty() {
			changed = true
		}
	}
	return changed
}

// sortedSymbols returns the terminals of the entry in the order of their numbers.
func (e *firstEntry) sortedSymbols() []symbol.Symbol {
	syms := make([]symbol.Symbol, 0, len(e.symbols))
	for sym := range e.symbols {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i].Num() < syms[j].Num()
	})
	return syms
}

type firstSet struct {
	set map[symbol.Symbol]*firstEntry
}

func newFirstSet(prods *productionSet) *firstSet {
	fst := &firstSet{
		set: map[symbol.Symbol]*firstEntry{},
	}
	for _, prod := range prods.getAllProductions() {
		if _, ok := fst.set[prod.lhs]; ok {
			continue
		}
		fst.set[prod.lhs] = newFirstEntry()
	}

	return fst
}

// find returns FIRST of the RHS of a production from the position head to the end.
func (fst *firstSet) find(prod *production, head int) (*firstEntry, error) {
	if prod.rhsLen <= head {
		entry := newFirstEntry()
		entry.addEmpty()
		return entry, nil
	}
	return fst.findOfSequence(prod.rhs[head:])
}

// findOfSequence computes FIRST of a sequence of symbols. Epsilons in the sequence are skipped,
// and a terminal (including the EOF) ends the scan. When every symbol of the sequence can derive
// the empty string, the result contains the empty string.
func (fst *firstSet) findOfSequence(syms []symbol.Symbol) (*firstEntry, error) {
	entry := newFirstEntry()
	for _, sym := range syms {
		if sym.IsEpsilon() {
			continue
		}
		if sym.IsTerminal() {
			entry.add(sym)
			return entry, nil
		}

		e := fst.findBySymbol(sym)
		if e == nil {
			return nil, fmt.Errorf("an entry of FIRST was not found; symbol: %s", sym)
		}
		entry.mergeExceptEmpty(e)
		if !e.empty {
			return entry, nil
		}
	}
	entry.addEmpty()
	return entry, nil
}

// findBySymbol returns FIRST of a single symbol. FIRST of a terminal is the terminal itself and
// FIRST of the epsilon contains only the empty string.
func (fst *firstSet) findBySymbol(sym symbol.Symbol) *firstEntry {
	switch {
	case sym.IsEpsilon():
		e := newFirstEntry()
		e.addEmpty()
		return e
	case sym.IsTerminal():
		e := newFirstEntry()
		e.add(sym)
		return e
	}
	return fst.set[sym]
}

type firstComContext struct {
	first *firstSet
}

func newFirstComContext(prods *productionSet) *firstComContext {
	return &firstComContext{
		first: newFirstSet(prods),
	}
}

// genFirstSet computes FIRST of every non-terminal. It repeats full passes over all productions
// until no set grows, so left-recursive and cyclic grammars terminate too.
func genFirstSet(prods *productionSet) (*firstSet, error) {
	cc := newFirstComContext(prods)
	pass := 0
	for {
		pass++
		more := false
		for _, prod := range prods.getAllProductions() {
			e := cc.first.findBySymbol(prod.lhs)
			changed, err := genProdFirstEntry(cc, e, prod)
			if err != nil {
				return nil, err
			}
			if changed {
				more = true
			}
		}
		tracer().Debugf("FIRST pass %d: changed=%v", pass, more)
		if !more {
			break
		}
	}
	return cc.first, nil
}

func genProdFirstEntry(cc *firstComContext, acc *firstEntry, prod *production) (bool, error) {
	e, err := cc.first.findOfSequence(prod.rhs)
	if err != nil {
		return false, err
	}
	return acc.merge(e), nil
}
