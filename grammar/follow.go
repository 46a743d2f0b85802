package grammar

import (
	"fmt"
	"sort"

	"github.com/nihei9/ll1/grammar/symbol"
)

type followEntry struct {
	symbols map[symbol.Symbol]struct{}
	eof     bool
}

func newFollowEntry() *followEntry {
	return &followEntry{
		symbols: map[symbol.Symbol]struct{}{},
		eof:     false,
	}
}

func (e *followEntry) add(sym symbol.Symbol) bool {
	if sym.IsEOF() {
		return e.addEOF()
	}
	if _, ok := e.symbols[sym]; ok {
		return false
	}
	e.symbols[sym] = struct{}{}
	return true
}

func (e *followEntry) addEOF() bool {
	if !e.eof {
		e.eof = true
		return true
	}
	return false
}

func (e *followEntry) merge(fst *firstEntry, flw *followEntry) bool {
	changed := false

	if fst != nil {
		for sym := range fst.symbols {
			added := e.add(sym)
			if added {
				changed = true
			}
		}
	}

	if flw != nil {
		for sym := range flw.symbols {
			added := e.add(sym)
			if added {
				changed = true
			}
		}
		if flw.eof {
			added := e.addEOF()
			if added {
				changed = true
			}
		}
	}

	return changed
}

func (e *followEntry) copy() *followEntry {
	c := newFollowEntry()
	c.merge(nil, e)
	return c
}

// sortedSymbols returns the terminals of the entry in the order of their numbers. The EOF is
// included as the first element when the entry contains it.
func (e *followEntry) sortedSymbols() []symbol.Symbol {
	syms := make([]symbol.Symbol, 0, len(e.symbols)+1)
	for sym := range e.symbols {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i].Num() < syms[j].Num()
	})
	if e.eof {
		syms = append([]symbol.Symbol{symbol.SymbolEOF}, syms...)
	}
	return syms
}

type followSet struct {
	set map[symbol.Symbol]*followEntry
}

func newFollow(prods *productionSet) *followSet {
	flw := &followSet{
		set: map[symbol.Symbol]*followEntry{},
	}
	for _, prod := range prods.getAllProductions() {
		if _, ok := flw.set[prod.lhs]; ok {
			continue
		}
		flw.set[prod.lhs] = newFollowEntry()
	}
	return flw
}

func (flw *followSet) find(sym symbol.Symbol) (*followEntry, error) {
	e, ok := flw.set[sym]
	if !ok {
		return nil, fmt.Errorf("an entry of FOLLOW was not found; symbol: %s", sym)
	}
	return e, nil
}

type followComContext struct {
	prods  *productionSet
	first  *firstSet
	follow *followSet
}

func newFollowComContext(prods *productionSet, first *firstSet) *followComContext {
	return &followComContext{
		prods:  prods,
		first:  first,
		follow: newFollow(prods),
	}
}

// genFollowSet computes FOLLOW of every non-terminal. FOLLOW of the start symbol contains the EOF.
// Each pass walks every RHS from right to left carrying a trailer, the set of terminals that can
// follow the current position.
func genFollowSet(prods *productionSet, first *firstSet, start symbol.Symbol) (*followSet, error) {
	cc := newFollowComContext(prods, first)

	startEntry, err := cc.follow.find(start)
	if err != nil {
		return nil, err
	}
	startEntry.addEOF()

	pass := 0
	for {
		pass++
		more := false
		for _, prod := range prods.getAllProductions() {
			changed, err := genProdFollowEntries(cc, prod)
			if err != nil {
				return nil, err
			}
			if changed {
				more = true
			}
		}
		tracer().Debugf("FOLLOW pass %d: changed=%v", pass, more)
		if !more {
			break
		}
	}

	return cc.follow, nil
}

func genProdFollowEntries(cc *followComContext, prod *production) (bool, error) {
	lhsFollow, err := cc.follow.find(prod.lhs)
	if err != nil {
		return false, err
	}

	changed := false
	trailer := lhsFollow.copy()
	for i := prod.rhsLen - 1; i >= 0; i-- {
		sym := prod.rhs[i]
		switch {
		case sym.IsEpsilon():
			continue
		case sym.IsTerminal():
			trailer = newFollowEntry()
			trailer.add(sym)
			continue
		}

		e, err := cc.follow.find(sym)
		if err != nil {
			return false, err
		}
		if e.merge(nil, trailer) {
			changed = true
		}

		fst := cc.first.findBySymbol(sym)
		if fst == nil {
			return false, fmt.Errorf("an entry of FIRST was not found; symbol: %s", sym)
		}
		if fst.empty {
			trailer.merge(fst, nil)
		} else {
			trailer = newFollowEntry()
			trailer.merge(fst, nil)
		}
	}

	return changed, nil
}
