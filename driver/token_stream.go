package driver

import (
	"fmt"
	"io"

	spec "github.com/nihei9/ll1/spec/grammar"
	mldriver "github.com/nihei9/maleeni/driver"
)

type vToken struct {
	terminalID int
	tok        *mldriver.Token
}

func (t *vToken) TerminalID() int {
	return t.terminalID
}

func (t *vToken) Lexeme() []byte {
	return t.tok.Lexeme
}

func (t *vToken) EOF() bool {
	return t.tok.EOF
}

func (t *vToken) Invalid() bool {
	return t.tok.Invalid
}

// Position returns a 1-based row and column.
func (t *vToken) Position() (int, int) {
	return t.tok.Row + 1, t.tok.Col + 1
}

type tokenStream struct {
	lex            *mldriver.Lexer
	kindToTerminal []int
	skip           []int
	eof            int
}

// NewTokenStream returns a token stream driven by the lexer compiled from the terminal patterns of
// a grammar. Tokens of skipped terminals never reach the parser.
func NewTokenStream(g *spec.CompiledGrammar, src io.Reader) (TokenStream, error) {
	if g.Lexical == nil || g.Lexical.Maleeni == nil {
		return nil, fmt.Errorf("grammar '%v' has no lexical specification", g.Name)
	}

	lex, err := mldriver.NewLexer(mldriver.NewLexSpec(g.Lexical.Maleeni.Spec), src)
	if err != nil {
		return nil, err
	}

	return &tokenStream{
		lex:            lex,
		kindToTerminal: g.Lexical.Maleeni.KindToTerminal,
		skip:           g.Lexical.Maleeni.Skip,
		eof:            g.Syntactic.EOFSymbol,
	}, nil
}

func (l *tokenStream) Next() (VToken, error) {
	for {
		tok, err := l.lex.Next()
		if err != nil {
			return nil, err
		}
		switch {
		case tok.EOF:
			return &vToken{
				terminalID: l.eof,
				tok:        tok,
			}, nil
		case tok.Invalid:
			return &vToken{
				tok: tok,
			}, nil
		}
		if l.skip[tok.KindID] > 0 {
			continue
		}
		return &vToken{
			terminalID: l.kindToTerminal[tok.KindID],
			tok:        tok,
		}, nil
	}
}

// Token is a token produced by an external lexer. Kind is a terminal name, and Row and Col are
// 1-based.
type Token struct {
	Kind   string
	Lexeme string
	Row    int
	Col    int
}

type sliceToken struct {
	terminalID int
	eof        bool
	tok        *Token
}

func (t *sliceToken) TerminalID() int {
	return t.terminalID
}

func (t *sliceToken) Lexeme() []byte {
	return []byte(t.tok.Lexeme)
}

func (t *sliceToken) EOF() bool {
	return t.eof
}

func (t *sliceToken) Invalid() bool {
	return false
}

func (t *sliceToken) Position() (int, int) {
	return t.tok.Row, t.tok.Col
}

type sliceTokenStream struct {
	toks []*sliceToken
	pos  int
}

// NewSliceTokenStream returns a token stream over tokens produced by an external lexer. The tokens
// must be terminated by exactly one EOF token, and every kind must be a terminal of the grammar.
func NewSliceTokenStream(g Grammar, toks []*Token) (TokenStream, error) {
	name2Term := map[string]int{}
	for i := 1; i < g.TerminalCount(); i++ {
		name2Term[g.Terminal(i)] = i
	}
	eofName := g.Terminal(g.EOF())

	if len(toks) == 0 || toks[len(toks)-1].Kind != eofName {
		return nil, fmt.Errorf("a token sequence must end with an %v token", eofName)
	}

	vToks := make([]*sliceToken, len(toks))
	for i, tok := range toks {
		term, ok := name2Term[tok.Kind]
		if !ok {
			return nil, fmt.Errorf("%v:%v: unknown token kind: %v", tok.Row, tok.Col, tok.Kind)
		}
		if term == g.EOF() && i != len(toks)-1 {
			return nil, fmt.Errorf("%v:%v: an %v token must appear only at the end", tok.Row, tok.Col, eofName)
		}
		vToks[i] = &sliceToken{
			terminalID: term,
			eof:        term == g.EOF(),
			tok:        tok,
		}
	}

	return &sliceTokenStream{
		toks: vToks,
	}, nil
}

// Next returns the EOF token repeatedly once the stream is exhausted.
func (s *sliceTokenStream) Next() (VToken, error) {
	tok := s.toks[s.pos]
	if s.pos < len(s.toks)-1 {
		s.pos++
	}
	return tok, nil
}
