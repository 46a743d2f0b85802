package lockbixo

import (
	"fmt"
	"strings"
	"sync"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"github.com/nihei9/ll1/driver"
)

type tokenPattern struct {
	kind    string
	pattern string
}

// tokenPatterns lists the lexical patterns in priority order. The longest match wins, and a tie
// goes to the pattern listed first, so keywords precede identifiers.
var tokenPatterns = []tokenPattern{
	{KindDelimOpenBrace, `\{`},
	{KindDelimCloseBrace, `\}`},
	{KindDelimOpenParen, `\(`},
	{KindDelimCloseParen, `\)`},
	{KindDelimOpenBracket, `\[`},
	{KindDelimCloseBracket, `\]`},
	{KindDelimSemicolon, `;`},
	{KindDelimComma, `,`},
	{KindOpGreaterEqual, `>=`},
	{KindOpLessEqual, `<=`},
	{KindOpEqual, `==`},
	{KindOpNotEqual, `!=`},
	{KindOpAnd, `&&`},
	{KindOpOr, `\|\|`},
	{KindOpAssign, `=`},
	{KindOpGreater, `>`},
	{KindOpLess, `<`},
	{KindOpNot, `!`},
	{KindOpAdd, `\+`},
	{KindOpSub, `-`},
	{KindOpMul, `\*`},
	{KindOpDiv, `/`},
	{KindOpMod, `%`},
	{KindString, `"([^"\\]|\\.)*"`},
	{KindFloat, `[0-9]+\.[0-9]+`},
	{KindInt, `[0-9]+`},
	{KindChar, `'[^\\\n]'`},
	{KindDataType, `String|int|real|boolean|char|double`},
	{KindVoid, `void`},
	{KindIf, `if`},
	{KindElse, `else`},
	{KindWhile, `while`},
	{KindFor, `for`},
	{KindDo, `do`},
	{KindReturn, `return`},
	{KindWrite, `write`},
	{KindBoolean, `true|false`},
	{KindID, `[A-Za-z_][A-Za-z0-9_]*`},
}

var skipPatterns = []string{
	`( |\t|\r|\n)+`,
	`//[^\n]*`,
	`/\*([^*]|\r|\n|(\*+([^*/]|\r|\n)))*\*+/`,
}

// ScanError means the scanner found a character no pattern matches. Row and Col are 1-based.
type ScanError struct {
	Row  int
	Col  int
	Text string
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("%v:%v: invalid character near '%v'", e.Row, e.Col, e.Text)
}

var (
	lexerOnce sync.Once
	lexer     *lexmachine.Lexer
	lexerErr  error
)

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func makeToken(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

func compiledLexer() (*lexmachine.Lexer, error) {
	lexerOnce.Do(func() {
		lex := lexmachine.NewLexer()
		for _, pat := range skipPatterns {
			lex.Add([]byte(pat), skip)
		}
		for id, tp := range tokenPatterns {
			lex.Add([]byte(tp.pattern), makeToken(id))
		}
		if err := lex.Compile(); err != nil {
			tracer().Errorf("failed to compile the DFA: %v", err)
			lexerErr = err
			return
		}
		lexer = lex
	})
	return lexer, lexerErr
}

// Scan splits a Lockbixo source into tokens. White spaces and comments are dropped, and the last
// token is always EOF positioned just after the end of the source.
func Scan(src string) ([]*driver.Token, error) {
	lex, err := compiledLexer()
	if err != nil {
		return nil, err
	}
	s, err := lex.Scanner([]byte(src))
	if err != nil {
		return nil, err
	}

	var toks []*driver.Token
	for tok, err, eof := s.Next(); !eof; tok, err, eof = s.Next() {
		if err != nil {
			if ui, ok := err.(*machines.UnconsumedInput); ok {
				return nil, &ScanError{
					Row:  ui.StartLine,
					Col:  ui.StartColumn,
					Text: snippet(src[ui.StartTC:]),
				}
			}
			return nil, err
		}
		t := tok.(*lexmachine.Token)
		toks = append(toks, &driver.Token{
			Kind:   tokenPatterns[t.Type].kind,
			Lexeme: string(t.Lexeme),
			Row:    t.StartLine,
			Col:    t.StartColumn,
		})
	}

	row, col := endPosition(src)
	toks = append(toks, &driver.Token{
		Kind: KindEOF,
		Row:  row,
		Col:  col,
	})
	tracer().Debugf("scanned %v tokens", len(toks))
	return toks, nil
}

func snippet(s string) string {
	if len(s) > 20 {
		s = s[:20]
	}
	return strings.ReplaceAll(s, "\n", `\n`)
}

// endPosition returns the position just after the last character of a source.
func endPosition(src string) (int, int) {
	row := strings.Count(src, "\n") + 1
	last := src[strings.LastIndex(src, "\n")+1:]
	return row, len([]rune(last)) + 1
}
