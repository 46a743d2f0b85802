package grammar

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nihei9/ll1/compressor"
	verr "github.com/nihei9/ll1/error"
	"github.com/nihei9/ll1/grammar/symbol"
	spec "github.com/nihei9/ll1/spec/grammar"
	mlcompiler "github.com/nihei9/maleeni/compiler"
	mlspec "github.com/nihei9/maleeni/spec"
)

// Grammar is a validated grammar whose symbols are interned. It is immutable after Build.
type Grammar struct {
	name          string
	startSymbol   symbol.Symbol
	symbolTable   *symbol.SymbolTableReader
	productionSet *productionSet

	// lexSpec is nil when no terminal has a lexical pattern.
	lexSpec      *mlspec.LexSpec
	skipLexKinds []mlspec.LexKindName
	sym2Pattern  map[symbol.Symbol]string
	skipSymbols  map[symbol.Symbol]struct{}
}

func (g *Grammar) Name() string {
	return g.name
}

type GrammarBuilder struct {
	Definition *spec.Definition

	errs verr.SpecErrors
}

func (b *GrammarBuilder) Build() (*Grammar, error) {
	def := b.Definition
	if def == nil {
		return nil, fmt.Errorf("a grammar definition is missing")
	}

	if def.Name == "" {
		b.errs = append(b.errs, &verr.SpecError{
			Cause: semErrNoGrammarName,
		})
	}
	if len(def.Rules) == 0 {
		b.errs = append(b.errs, &verr.SpecError{
			Cause: semErrNoProduction,
		})
		return nil, b.errs
	}

	symTab := symbol.NewSymbolTable()
	b.registerTerminals(symTab.Writer(), def)
	b.registerNonTerminals(symTab.Writer(), def)
	if len(b.errs) > 0 {
		b.errs.Sort()
		return nil, b.errs
	}
	r := symTab.Reader()

	var startSym symbol.Symbol
	{
		startName := def.Start
		if startName == "" {
			startName = def.Rules[0].LHS
		}
		sym, ok := r.ToSymbol(startName)
		if !ok || !sym.IsNonTerminal() {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrUndefinedStartSym,
				Detail: startName,
			})
			return nil, b.errs
		}
		startSym = sym
	}

	prods := b.genProductions(r, def)

	usedTerms := map[symbol.Symbol]struct{}{}
	for _, prod := range prods.getAllProductions() {
		for _, sym := range prod.rhs {
			if sym.IsTerminal() {
				usedTerms[sym] = struct{}{}
			}
		}
	}

	lexSpec, skipKinds, sym2Pat, skipSyms := b.genLexSpec(r, def, usedTerms)
	if len(b.errs) > 0 {
		b.errs.Sort()
		return nil, b.errs
	}

	tracer().Infof("grammar %v: %v terminals, %v non-terminals, %v productions", def.Name, r.TerminalCount()-1, r.NonTerminalCount()-1, prods.count())

	return &Grammar{
		name:          def.Name,
		startSymbol:   startSym,
		symbolTable:   r,
		productionSet: prods,
		lexSpec:       lexSpec,
		skipLexKinds:  skipKinds,
		sym2Pattern:   sym2Pat,
		skipSymbols:   skipSyms,
	}, nil
}

func (b *GrammarBuilder) registerTerminals(w *symbol.SymbolTableWriter, def *spec.Definition) {
	for _, term := range def.Terminals {
		if term.Name == "" {
			b.errs = append(b.errs, &verr.SpecError{
				Cause: semErrEmptyName,
				Row:   term.Row,
				Col:   term.Col,
			})
			continue
		}
		if symbol.IsReservedName(term.Name) {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrReservedName,
				Detail: term.Name,
				Row:    term.Row,
				Col:    term.Col,
			})
			continue
		}
		if _, ok := w.ToSymbol(term.Name); ok {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrDuplicateTerminal,
				Detail: term.Name,
				Row:    term.Row,
				Col:    term.Col,
			})
			continue
		}
		if _, err := w.RegisterTerminalSymbol(term.Name); err != nil {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  err,
				Detail: term.Name,
				Row:    term.Row,
				Col:    term.Col,
			})
		}
	}
}

func (b *GrammarBuilder) registerNonTerminals(w *symbol.SymbolTableWriter, def *spec.Definition) {
	for _, rule := range def.Rules {
		if rule.LHS == "" {
			b.errs = append(b.errs, &verr.SpecError{
				Cause: semErrEmptyName,
				Row:   rule.Row,
				Col:   rule.Col,
			})
			continue
		}
		if symbol.IsReservedName(rule.LHS) {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrReservedName,
				Detail: rule.LHS,
				Row:    rule.Row,
				Col:    rule.Col,
			})
			continue
		}
		if sym, ok := w.ToSymbol(rule.LHS); ok {
			cause := semErrDuplicateRule
			if sym.IsTerminal() {
				cause = semErrDuplicateName
			}
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  cause,
				Detail: rule.LHS,
				Row:    rule.Row,
				Col:    rule.Col,
			})
			continue
		}
		if _, err := w.RegisterNonTerminalSymbol(rule.LHS); err != nil {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  err,
				Detail: rule.LHS,
				Row:    rule.Row,
				Col:    rule.Col,
			})
		}
	}
}

// genProductions converts the alternatives into productions. An alternative deriving the empty
// string always becomes a production whose RHS is [ε].
func (b *GrammarBuilder) genProductions(r *symbol.SymbolTableReader, def *spec.Definition) *productionSet {
	prods := newProductionSet()
	for _, rule := range def.Rules {
		lhs, _ := r.ToSymbol(rule.LHS)
		if len(rule.Alternatives) == 0 {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrEmptyAlternatives,
				Detail: rule.LHS,
				Row:    rule.Row,
				Col:    rule.Col,
			})
			continue
		}

		for _, alt := range rule.Alternatives {
			rhs := make([]symbol.Symbol, 0, len(alt))
			hasEpsilon := false
			undefined := false
			for _, name := range alt {
				sym, ok := r.ToSymbol(name)
				if !ok {
					b.errs = append(b.errs, &verr.SpecError{
						Cause:  semErrUndefinedSym,
						Detail: name,
						Row:    rule.Row,
						Col:    rule.Col,
					})
					undefined = true
					continue
				}
				if sym.IsEpsilon() {
					hasEpsilon = true
				}
				rhs = append(rhs, sym)
			}
			if undefined {
				continue
			}
			if hasEpsilon && len(rhs) > 1 {
				b.errs = append(b.errs, &verr.SpecError{
					Cause:  semErrMixedEpsilon,
					Detail: fmt.Sprintf("%v → %v", rule.LHS, strings.Join(alt, " ")),
					Row:    rule.Row,
					Col:    rule.Col,
				})
				continue
			}
			if len(rhs) == 0 {
				rhs = append(rhs, symbol.SymbolEpsilon)
			}

			prod, err := newProduction(lhs, rhs)
			if err != nil {
				b.errs = append(b.errs, &verr.SpecError{
					Cause: err,
					Row:   rule.Row,
					Col:   rule.Col,
				})
				continue
			}
			if !prods.append(prod) {
				b.errs = append(b.errs, &verr.SpecError{
					Cause:  semErrDuplicateProduction,
					Detail: fmt.Sprintf("%v → %v", rule.LHS, strings.Join(alt, " ")),
					Row:    rule.Row,
					Col:    rule.Col,
				})
			}
		}
	}
	return prods
}

func (b *GrammarBuilder) genLexSpec(r *symbol.SymbolTableReader, def *spec.Definition, usedTerms map[symbol.Symbol]struct{}) (*mlspec.LexSpec, []mlspec.LexKindName, map[symbol.Symbol]string, map[symbol.Symbol]struct{}) {
	entries := []*mlspec.LexEntry{}
	skipKinds := []mlspec.LexKindName{}
	sym2Pat := map[symbol.Symbol]string{}
	skipSyms := map[symbol.Symbol]struct{}{}
	for _, term := range def.Terminals {
		sym, ok := r.ToSymbol(term.Name)
		if !ok || !sym.IsTerminal() {
			continue
		}

		if term.Skip {
			if term.Pattern == "" {
				b.errs = append(b.errs, &verr.SpecError{
					Cause:  semErrSkipWithoutPattern,
					Detail: term.Name,
					Row:    term.Row,
					Col:    term.Col,
				})
				continue
			}
			if _, used := usedTerms[sym]; used {
				b.errs = append(b.errs, &verr.SpecError{
					Cause:  semErrTermCannotBeSkipped,
					Detail: term.Name,
					Row:    term.Row,
					Col:    term.Col,
				})
				continue
			}
			skipKinds = append(skipKinds, mlspec.LexKindName(term.Name))
			skipSyms[sym] = struct{}{}
		}

		if term.Pattern == "" {
			continue
		}
		sym2Pat[sym] = term.Pattern
		entries = append(entries, &mlspec.LexEntry{
			Kind:    mlspec.LexKindName(term.Name),
			Pattern: mlspec.LexPattern(term.Pattern),
		})
	}
	if len(entries) == 0 {
		return nil, nil, sym2Pat, skipSyms
	}

	return &mlspec.LexSpec{
		Name:    def.Name,
		Entries: entries,
	}, skipKinds, sym2Pat, skipSyms
}

// Analysis holds FIRST, FOLLOW, and the prediction table of a grammar.
type Analysis struct {
	gram   *Grammar
	first  *firstSet
	follow *followSet
	table  *ParsingTable
}

// Analyze computes FIRST and FOLLOW and builds the prediction table. Conflicts do not make it fail;
// check Conflicts of the result to know whether the grammar is LL(1).
func Analyze(gram *Grammar) (*Analysis, error) {
	fst, err := genFirstSet(gram.productionSet)
	if err != nil {
		return nil, err
	}
	flw, err := genFollowSet(gram.productionSet, fst, gram.startSymbol)
	if err != nil {
		return nil, err
	}

	b := &ll1TableBuilder{
		prods:        gram.productionSet,
		first:        fst,
		follow:       flw,
		symTab:       gram.symbolTable,
		termCount:    gram.symbolTable.TerminalCount(),
		nonTermCount: gram.symbolTable.NonTerminalCount(),
	}
	tab, err := b.build()
	if err != nil {
		return nil, err
	}

	return &Analysis{
		gram:   gram,
		first:  fst,
		follow: flw,
		table:  tab,
	}, nil
}

// Conflicts returns the number of conflicts found while building the prediction table.
func (a *Analysis) Conflicts() int {
	return len(a.table.conflicts)
}

// FirstOfSequence returns FIRST of a sequence of symbol names. The names are returned in the order
// of the terminal numbers, and empty reports whether the sequence can derive the empty string.
func (a *Analysis) FirstOfSequence(names ...string) (terminals []string, empty bool, err error) {
	syms := make([]symbol.Symbol, len(names))
	for i, name := range names {
		sym, ok := a.gram.symbolTable.ToSymbol(name)
		if !ok {
			return nil, false, fmt.Errorf("%w: %v", semErrUndefinedSym, name)
		}
		syms[i] = sym
	}
	e, err := a.first.findOfSequence(syms)
	if err != nil {
		return nil, false, err
	}
	return a.symbolsToTexts(e.sortedSymbols()), e.empty, nil
}

// First returns FIRST of a single symbol.
func (a *Analysis) First(name string) (terminals []string, empty bool, err error) {
	return a.FirstOfSequence(name)
}

// Follow returns FOLLOW of a non-terminal. EOF comes first when the set contains it.
func (a *Analysis) Follow(name string) ([]string, error) {
	sym, ok := a.gram.symbolTable.ToSymbol(name)
	if !ok || !sym.IsNonTerminal() {
		return nil, fmt.Errorf("%w: %v", semErrUndefinedSym, name)
	}
	e, err := a.follow.find(sym)
	if err != nil {
		return nil, err
	}
	return a.symbolsToTexts(e.sortedSymbols()), nil
}

func (a *Analysis) symbolsToTexts(syms []symbol.Symbol) []string {
	texts := make([]string, len(syms))
	for i, sym := range syms {
		text, ok := a.gram.symbolTable.ToText(sym)
		if !ok {
			text = sym.String()
		}
		texts[i] = text
	}
	return texts
}

type compileConfig struct {
	isReportingEnabled bool
	compressionLevel   int
}

type CompileOption func(config *compileConfig)

func EnableReporting() CompileOption {
	return func(config *compileConfig) {
		config.isReportingEnabled = true
	}
}

// CompressionLevel sets the compression level of the prediction table. 0 keeps the table as it
// is, 1 merges identical rows, and 2 additionally applies row displacement.
func CompressionLevel(lv int) CompileOption {
	return func(config *compileConfig) {
		config.compressionLevel = lv
	}
}

const (
	CompressionLevelMin = 0
	CompressionLevelMax = 2
)

func Compile(gram *Grammar, opts ...CompileOption) (*spec.CompiledGrammar, *spec.Report, error) {
	config := &compileConfig{
		compressionLevel: CompressionLevelMax,
	}
	for _, opt := range opts {
		opt(config)
	}
	if config.compressionLevel < CompressionLevelMin || config.compressionLevel > CompressionLevelMax {
		return nil, nil, fmt.Errorf("compression level must be %v to %v; passed: %v", CompressionLevelMin, CompressionLevelMax, config.compressionLevel)
	}

	lexical, err := compileLexSpec(gram)
	if err != nil {
		return nil, nil, err
	}

	terms := gram.symbolTable.TerminalTexts()
	nonTerms, err := gram.symbolTable.NonTerminalTexts()
	if err != nil {
		return nil, nil, err
	}

	a, err := Analyze(gram)
	if err != nil {
		return nil, nil, err
	}
	tab := a.table

	var report *spec.Report
	if config.isReportingEnabled {
		b := &ll1TableBuilder{
			prods:        gram.productionSet,
			first:        a.first,
			follow:       a.follow,
			symTab:       gram.symbolTable,
			termCount:    tab.terminalCount,
			nonTermCount: tab.nonTerminalCount,
		}
		report, err = b.genReport(tab, gram)
		if err != nil {
			return nil, nil, err
		}
	}

	prediction, err := genPredictionTable(tab, config.compressionLevel)
	if err != nil {
		return nil, nil, err
	}

	lhsSyms := make([]int, gram.productionSet.count()+1)
	alts := make([][]int, gram.productionSet.count()+1)
	for _, p := range gram.productionSet.getAllProductions() {
		lhsSyms[p.num] = p.lhs.Num().Int()
		alts[p.num] = encodeRHS(p.rhs)
	}

	var conflicts []*spec.Conflict
	for _, c := range tab.conflicts {
		conflicts = append(conflicts, &spec.Conflict{
			NonTerminal: c.nonTerm.Num().Int(),
			Terminal:    c.term.Num().Int(),
			Production1: c.prodNum1.Int(),
			Production2: c.prodNum2.Int(),
		})
	}

	return &spec.CompiledGrammar{
		Name:    gram.name,
		Lexical: lexical,
		Syntactic: &spec.SyntacticSpec{
			StartSymbol:      gram.startSymbol.Num().Int(),
			Terminals:        terms,
			TerminalCount:    tab.terminalCount,
			NonTerminals:     nonTerms,
			NonTerminalCount: tab.nonTerminalCount,
			EOFSymbol:        symbol.SymbolEOF.Num().Int(),
			LHSSymbols:       lhsSyms,
			Alternatives:     alts,
			Prediction:       prediction,
			Conflicts:        conflicts,
		},
	}, report, nil
}

func compileLexSpec(gram *Grammar) (*spec.LexicalSpec, error) {
	if gram.lexSpec == nil {
		return nil, nil
	}

	lexSpec, err, cErrs := mlcompiler.Compile(gram.lexSpec, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
	if err != nil {
		if len(cErrs) > 0 {
			var b strings.Builder
			writeCompileError(&b, cErrs[0])
			for _, cerr := range cErrs[1:] {
				fmt.Fprintf(&b, "\n")
				writeCompileError(&b, cerr)
			}
			return nil, errors.New(b.String())
		}
		return nil, err
	}

	kind2Term := make([]int, len(lexSpec.KindNames))
	term2Kind := make([]int, gram.symbolTable.TerminalCount())
	skip := make([]int, len(lexSpec.KindNames))
	for i, k := range lexSpec.KindNames {
		if k == mlspec.LexKindNameNil {
			continue
		}

		sym, ok := gram.symbolTable.ToSymbol(k.String())
		if !ok {
			return nil, fmt.Errorf("terminal symbol '%v' was not found in a symbol table", k)
		}
		kind2Term[i] = sym.Num().Int()
		term2Kind[sym.Num()] = i

		for _, sk := range gram.skipLexKinds {
			if k != sk {
				continue
			}
			skip[i] = 1
			break
		}
	}

	return &spec.LexicalSpec{
		Lexer: "maleeni",
		Maleeni: &spec.Maleeni{
			Spec:           lexSpec,
			KindToTerminal: kind2Term,
			TerminalToKind: term2Kind,
			Skip:           skip,
		},
	}, nil
}

func writeCompileError(w io.Writer, cErr *mlcompiler.CompileError) {
	if cErr.Fragment {
		fmt.Fprintf(w, "fragment ")
	}
	fmt.Fprintf(w, "%v: %v", cErr.Kind, cErr.Cause)
	if cErr.Detail != "" {
		fmt.Fprintf(w, ": %v", cErr.Detail)
	}
}

func genPredictionTable(tab *ParsingTable, compLv int) (*spec.PredictionTable, error) {
	pt := &spec.PredictionTable{
		RowCount:         tab.nonTerminalCount,
		ColCount:         tab.terminalCount,
		CompressionLevel: compLv,
	}

	var err error
	switch compLv {
	case 2:
		pt.Table, err = compressPredictionTableLv2(tab)
	case 1:
		pt.Table, err = compressPredictionTableLv1(tab)
	default:
		pt.UncompressedTable = tab.entries()
	}
	if err != nil {
		return nil, err
	}

	return pt, nil
}

func compressPredictionTableLv2(tab *ParsingTable) (*spec.UniqueEntriesTable, error) {
	ueTab := compressor.NewUniqueEntriesTable()
	{
		orig, err := compressor.NewOriginalTable(tab.entries(), tab.terminalCount)
		if err != nil {
			return nil, err
		}
		err = ueTab.Compress(orig)
		if err != nil {
			return nil, err
		}
	}

	rdTab := compressor.NewRowDisplacementTable(spec.ProductionNumNil)
	{
		orig, err := compressor.NewOriginalTable(ueTab.UniqueEntries, ueTab.OriginalColCount)
		if err != nil {
			return nil, err
		}
		err = rdTab.Compress(orig)
		if err != nil {
			return nil, err
		}
	}

	return &spec.UniqueEntriesTable{
		UniqueEntries: &spec.RowDisplacementTable{
			OriginalRowCount: rdTab.OriginalRowCount,
			OriginalColCount: rdTab.OriginalColCount,
			EmptyValue:       spec.ProductionNumNil,
			Entries:          rdTab.Entries,
			Bounds:           rdTab.Bounds,
			RowDisplacement:  rdTab.RowDisplacement,
		},
		RowNums:          ueTab.RowNums,
		OriginalRowCount: ueTab.OriginalRowCount,
		OriginalColCount: ueTab.OriginalColCount,
	}, nil
}

func compressPredictionTableLv1(tab *ParsingTable) (*spec.UniqueEntriesTable, error) {
	ueTab := compressor.NewUniqueEntriesTable()
	{
		orig, err := compressor.NewOriginalTable(tab.entries(), tab.terminalCount)
		if err != nil {
			return nil, err
		}
		err = ueTab.Compress(orig)
		if err != nil {
			return nil, err
		}
	}

	return &spec.UniqueEntriesTable{
		UncompressedUniqueEntries: ueTab.UniqueEntries,
		RowNums:                   ueTab.RowNums,
		OriginalRowCount:          ueTab.OriginalRowCount,
		OriginalColCount:          ueTab.OriginalColCount,
	}, nil
}
