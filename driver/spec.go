package driver

import spec "github.com/nihei9/ll1/spec/grammar"

type grammarImpl struct {
	g *spec.CompiledGrammar
}

// NewGrammar returns a read-only view of a compiled grammar. The view can be shared by any number
// of parsers.
func NewGrammar(g *spec.CompiledGrammar) *grammarImpl {
	return &grammarImpl{
		g: g,
	}
}

func (g *grammarImpl) Name() string {
	return g.g.Name
}

func (g *grammarImpl) StartSymbol() int {
	return g.g.Syntactic.StartSymbol
}

func (g *grammarImpl) EOF() int {
	return g.g.Syntactic.EOFSymbol
}

func (g *grammarImpl) TerminalCount() int {
	return g.g.Syntactic.TerminalCount
}

func (g *grammarImpl) NonTerminalCount() int {
	return g.g.Syntactic.NonTerminalCount
}

// Predict looks up the prediction table. It returns 0 when the cell is empty.
func (g *grammarImpl) Predict(nonTerminal int, terminal int) int {
	pt := g.g.Syntactic.Prediction
	switch pt.CompressionLevel {
	case 2:
		row := pt.Table.RowNums[nonTerminal]
		rd := pt.Table.UniqueEntries
		d := rd.RowDisplacement[row]
		if rd.Bounds[d+terminal] != row {
			return rd.EmptyValue
		}
		return rd.Entries[d+terminal]
	case 1:
		row := pt.Table.RowNums[nonTerminal]
		return pt.Table.UncompressedUniqueEntries[row*pt.Table.OriginalColCount+terminal]
	default:
		return pt.UncompressedTable[nonTerminal*pt.ColCount+terminal]
	}
}

func (g *grammarImpl) LHS(prod int) int {
	return g.g.Syntactic.LHSSymbols[prod]
}

func (g *grammarImpl) Alternative(prod int) []int {
	return g.g.Syntactic.Alternatives[prod]
}

func (g *grammarImpl) Terminal(terminal int) string {
	return g.g.Syntactic.Terminals[terminal]
}

func (g *grammarImpl) NonTerminal(nonTerminal int) string {
	return g.g.Syntactic.NonTerminals[nonTerminal]
}
