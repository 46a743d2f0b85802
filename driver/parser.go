package driver

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/emirpasic/gods/utils"
)

// Grammar is a compiled LL(1) grammar. Terminals and non-terminals are identified by their numbers,
// and the number 0 means nil. An alternative encodes a terminal as a positive number, a
// non-terminal as a negative number, and the epsilon as 0.
type Grammar interface {
	// StartSymbol returns the number of the start non-terminal.
	StartSymbol() int

	// EOF returns the terminal number of the end marker.
	EOF() int

	TerminalCount() int
	NonTerminalCount() int

	// Predict returns the production to expand a non-terminal with when the lookahead is a terminal.
	// It returns 0 when the table has no entry.
	Predict(nonTerminal int, terminal int) int

	LHS(prod int) int
	Alternative(prod int) []int
	Terminal(terminal int) string
	NonTerminal(nonTerminal int) string
}

type VToken interface {
	// TerminalID returns the terminal number of the token. It returns 0 for an invalid token.
	TerminalID() int

	Lexeme() []byte
	EOF() bool
	Invalid() bool

	// Position returns a 1-based row and column.
	Position() (int, int)
}

type TokenStream interface {
	Next() (VToken, error)
}

const invalidTokenKind = "<invalid>"

type SyntaxError struct {
	Row               int
	Col               int
	Kind              string
	Lexeme            string
	ExpectedTerminals []string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v:%v: syntax error: unexpected %v (%q); expected: %v", e.Row, e.Col, e.Kind, e.Lexeme, FormatTerminalSet(e.ExpectedTerminals))
}

// FormatTerminalSet renders a set of terminals like "{ a, b }". An empty set is rendered as "{ }".
func FormatTerminalSet(terms []string) string {
	if len(terms) == 0 {
		return "{ }"
	}
	return "{ " + strings.Join(terms, ", ") + " }"
}

type Action string

const (
	ActionMatch   = Action("match")
	ActionEpsilon = Action("epsilon")
	ActionExpand  = Action("expand")
	ActionAccept  = Action("accept")
	ActionError   = Action("error")
)

// TraceEntry is a step of a parse. Stack is a snapshot taken before the step and lists symbols from
// the top to the bottom, so Symbol, the symbol the step pops, is its first element.
type TraceEntry struct {
	Stack      []string
	Symbol     string
	Lookahead  string
	Action     Action
	Production string
	Row        int
	Col        int
}

func (e *TraceEntry) String() string {
	act := string(e.Action)
	if e.Action == ActionExpand {
		act = fmt.Sprintf("%v %v", e.Action, e.Production)
	}
	return fmt.Sprintf("[%v] %v %v: %v", strings.Join(e.Stack, " "), e.Symbol, e.Lookahead, act)
}

type ParserOption func(p *Parser) error

// DisableTrace makes a parser record no trace.
func DisableTrace() ParserOption {
	return func(p *Parser) error {
		p.traceDisabled = true
		return nil
	}
}

// TraceLimit caps the number of recorded trace entries. 0 means unlimited.
func TraceLimit(n int) ParserOption {
	return func(p *Parser) error {
		if n < 0 {
			return fmt.Errorf("a trace limit must be greater than or equal to 0; got: %v", n)
		}
		p.traceLimit = n
		return nil
	}
}

type Parser struct {
	gram          Grammar
	toks          TokenStream
	stack         *arraystack.Stack
	trace         []*TraceEntry
	traceDisabled bool
	traceLimit    int
	truncated     bool
}

func NewParser(gram Grammar, toks TokenStream, opts ...ParserOption) (*Parser, error) {
	p := &Parser{
		gram:  gram,
		toks:  toks,
		stack: arraystack.New(),
	}

	for _, opt := range opts {
		err := opt(p)
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Parse runs the predictive parser over the whole token stream. It returns true when the input is
// accepted, and a *SyntaxError when no step is possible. The trace recorded until the failure stays
// available.
func (p *Parser) Parse() (bool, error) {
	p.stack.Clear()
	p.trace = nil
	p.truncated = false

	// The stack holds symbols in the encoding of alternatives. The end marker sits at the bottom.
	p.stack.Push(p.gram.EOF())
	p.stack.Push(-p.gram.StartSymbol())

	tok, err := p.toks.Next()
	if err != nil {
		return false, err
	}

	for !p.stack.Empty() {
		var snapshot []string
		if p.tracing() {
			snapshot = p.snapshot()
		}
		v, _ := p.stack.Pop()
		sym := v.(int)
		term := p.terminalOf(tok)
		row, col := tok.Position()
		entry := &TraceEntry{
			Stack:     snapshot,
			Symbol:    p.symbolText(sym),
			Lookahead: p.lookaheadText(term),
			Row:       row,
			Col:       col,
		}

		switch {
		case sym == p.gram.EOF():
			if tok.EOF() {
				entry.Action = ActionAccept
				p.record(entry)
				tracer().Debugf("accept")
				return true, nil
			}
			entry.Action = ActionError
			p.record(entry)
			return false, p.syntaxError(tok, term, []int{p.gram.EOF()})
		case sym > 0:
			if sym != term {
				entry.Action = ActionError
				p.record(entry)
				return false, p.syntaxError(tok, term, []int{sym})
			}
			entry.Action = ActionMatch
			p.record(entry)
			tracer().Debugf("match %v", entry.Symbol)
			tok, err = p.toks.Next()
			if err != nil {
				return false, err
			}
		case sym == 0:
			entry.Action = ActionEpsilon
			p.record(entry)
		default:
			nonTerm := -sym
			prod := p.gram.Predict(nonTerm, term)
			if prod == 0 {
				entry.Action = ActionError
				p.record(entry)
				return false, p.syntaxError(tok, term, p.expectedTerminals(nonTerm))
			}
			alt := p.gram.Alternative(prod)
			for i := len(alt) - 1; i >= 0; i-- {
				if alt[i] == 0 {
					continue
				}
				p.stack.Push(alt[i])
			}
			entry.Action = ActionExpand
			entry.Production = p.productionText(prod)
			p.record(entry)
			tracer().Debugf("expand %v", entry.Production)
		}
	}

	return false, nil
}

// Trace returns the steps recorded by the last parse.
func (p *Parser) Trace() []*TraceEntry {
	return p.trace
}

// TraceTruncated reports whether the last parse took more steps than the trace limit.
func (p *Parser) TraceTruncated() bool {
	return p.truncated
}

func (p *Parser) tracing() bool {
	if p.traceDisabled {
		return false
	}
	return p.traceLimit == 0 || len(p.trace) < p.traceLimit
}

func (p *Parser) record(entry *TraceEntry) {
	if p.traceDisabled {
		return
	}
	if p.traceLimit > 0 && len(p.trace) >= p.traceLimit {
		p.truncated = true
		return
	}
	p.trace = append(p.trace, entry)
}

func (p *Parser) snapshot() []string {
	vs := p.stack.Values()
	syms := make([]string, len(vs))
	for i, v := range vs {
		syms[i] = p.symbolText(v.(int))
	}
	return syms
}

func (p *Parser) terminalOf(tok VToken) int {
	switch {
	case tok.EOF():
		return p.gram.EOF()
	case tok.Invalid():
		return 0
	}
	return tok.TerminalID()
}

func (p *Parser) symbolText(sym int) string {
	switch {
	case sym > 0:
		return p.gram.Terminal(sym)
	case sym < 0:
		return p.gram.NonTerminal(-sym)
	}
	return "ε"
}

func (p *Parser) lookaheadText(term int) string {
	if term == 0 {
		return invalidTokenKind
	}
	return p.gram.Terminal(term)
}

func (p *Parser) productionText(prod int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v →", p.gram.NonTerminal(p.gram.LHS(prod)))
	for _, sym := range p.gram.Alternative(prod) {
		fmt.Fprintf(&b, " %v", p.symbolText(sym))
	}
	return b.String()
}

// expectedTerminals returns the terminals having an entry in the row of a non-terminal.
func (p *Parser) expectedTerminals(nonTerm int) []int {
	var terms []int
	for term := 1; term < p.gram.TerminalCount(); term++ {
		if p.gram.Predict(nonTerm, term) != 0 {
			terms = append(terms, term)
		}
	}
	return terms
}

func (p *Parser) syntaxError(tok VToken, term int, expected []int) *SyntaxError {
	set := treeset.NewWith(utils.StringComparator)
	for _, t := range expected {
		set.Add(p.gram.Terminal(t))
	}
	names := make([]string, 0, set.Size())
	for _, v := range set.Values() {
		names = append(names, v.(string))
	}

	row, col := tok.Position()
	synErr := &SyntaxError{
		Row:               row,
		Col:               col,
		Kind:              p.lookaheadText(term),
		Lexeme:            string(tok.Lexeme()),
		ExpectedTerminals: names,
	}
	tracer().Debugf("%v", synErr)
	return synErr
}
