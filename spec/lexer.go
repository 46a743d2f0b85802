package spec

import (
	"fmt"
	"io"
	"strings"
	"sync"

	verr "github.com/nihei9/ll1/error"
	gspec "github.com/nihei9/ll1/spec/grammar"
	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
)

type tokenKind string

const (
	tokenKindID              = tokenKind("id")
	tokenKindTerminalPattern = tokenKind("terminal pattern")
	tokenKindEpsilon         = tokenKind("ε")
	tokenKindColon           = tokenKind(":")
	tokenKindOr              = tokenKind("|")
	tokenKindSemicolon       = tokenKind(";")
	tokenKindDirectiveMarker = tokenKind("#")
	tokenKindEOF             = tokenKind("eof")
	tokenKindInvalid         = tokenKind("invalid")
)

type Position struct {
	Row int
	Col int
}

func newPosition(row, col int) Position {
	return Position{
		Row: row,
		Col: col,
	}
}

type token struct {
	kind tokenKind
	text string
	pos  Position
}

func newSymbolToken(kind tokenKind, pos Position) *token {
	return &token{
		kind: kind,
		pos:  pos,
	}
}

func newIDToken(text string, pos Position) *token {
	return &token{
		kind: tokenKindID,
		text: text,
		pos:  pos,
	}
}

func newTerminalPatternToken(text string, pos Position) *token {
	return &token{
		kind: tokenKindTerminalPattern,
		text: text,
		pos:  pos,
	}
}

func newEOFToken() *token {
	return &token{
		kind: tokenKindEOF,
	}
}

func newInvalidToken(text string, pos Position) *token {
	return &token{
		kind: tokenKindInvalid,
		text: text,
		pos:  pos,
	}
}

// genLexSpec returns the lexical specification of the grammar definition language.
func genLexSpec() *mlspec.LexSpec {
	return &mlspec.LexSpec{
		Name:    "ll1",
		Entries: []*mlspec.LexEntry{
			{Kind: "white_space", Pattern: `[\u{0009}\u{000A}\u{000D}\u{0020}]+`},
			{Kind: "line_comment", Pattern: `//[^\u{000A}\u{000D}]*`},
			{Kind: "epsilon", Pattern: `\u{03B5}`},
			{Kind: "identifier", Pattern: `[A-Za-z_][0-9A-Za-z_]*`},
			{Kind: "pattern", Pattern: `"(\\.|[^"\\\u{000A}\u{000D}])*"`},
			{Kind: "literal", Pattern: `'(\\.|[^'\\\u{000A}\u{000D}])*'`},
			{Kind: "colon", Pattern: `:`},
			{Kind: "or", Pattern: `\|`},
			{Kind: "semicolon", Pattern: `;`},
			{Kind: "directive_marker", Pattern: `#`},
		},
	}
}

var (
	lexSpecOnce sync.Once
	lexSpec     *mlspec.CompiledLexSpec
	lexSpecErr  error
)

func compiledLexSpec() (*mlspec.CompiledLexSpec, error) {
	lexSpecOnce.Do(func() {
		s, err, cErrs := mlcompiler.Compile(genLexSpec(), mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
		if err != nil {
			if len(cErrs) > 0 {
				err = fmt.Errorf("%v: %v", cErrs[0].Kind, cErrs[0].Cause)
			}
			lexSpecErr = fmt.Errorf("failed to compile the lexical specification of the grammar language: %w", err)
			return
		}
		lexSpec = s
	})
	return lexSpec, lexSpecErr
}

type lexer struct {
	s *mlspec.CompiledLexSpec
	d *mldriver.Lexer
}

func newLexer(src io.Reader) (*lexer, error) {
	s, err := compiledLexSpec()
	if err != nil {
		return nil, err
	}
	d, err := mldriver.NewLexer(mldriver.NewLexSpec(s), src)
	if err != nil {
		return nil, err
	}
	return &lexer{
		s: s,
		d: d,
	}, nil
}

func (l *lexer) next() (*token, error) {
	var tok *mldriver.Token
	var kind string
	for {
		var err error
		tok, err = l.d.Next()
		if err != nil {
			return nil, err
		}
		if tok.Invalid {
			return newInvalidToken(string(tok.Lexeme), newPosition(tok.Row+1, tok.Col+1)), nil
		}
		if tok.EOF {
			return newEOFToken(), nil
		}
		kind = l.s.KindNames[tok.KindID].String()
		switch kind {
		case "white_space":
			continue
		case "line_comment":
			continue
		}

		break
	}

	pos := newPosition(tok.Row+1, tok.Col+1)
	text := string(tok.Lexeme)
	switch kind {
	case "identifier":
		return newIDToken(text, pos), nil
	case "epsilon":
		return newSymbolToken(tokenKindEpsilon, pos), nil
	case "pattern":
		// Remove the quotes. The escape sequences except for \" are interpreted by the lexer of
		// a compiled grammar, so they are kept as they are.
		pat := strings.ReplaceAll(text[1:len(text)-1], `\"`, `"`)
		if pat == "" {
			return nil, &verr.SpecError{
				Cause: synErrEmptyPattern,
				Row:   pos.Row,
				Col:   pos.Col,
			}
		}
		return newTerminalPatternToken(pat, pos), nil
	case "literal":
		lit := unescapeLiteral(text[1 : len(text)-1])
		if lit == "" {
			return nil, &verr.SpecError{
				Cause: synErrEmptyPattern,
				Row:   pos.Row,
				Col:   pos.Col,
			}
		}
		return newTerminalPatternToken(gspec.EscapePattern(lit), pos), nil
	case "colon":
		return newSymbolToken(tokenKindColon, pos), nil
	case "or":
		return newSymbolToken(tokenKindOr, pos), nil
	case "semicolon":
		return newSymbolToken(tokenKindSemicolon, pos), nil
	case "directive_marker":
		return newSymbolToken(tokenKindDirectiveMarker, pos), nil
	default:
		return newInvalidToken(text, pos), nil
	}
}

// unescapeLiteral removes the backslashes of escape sequences in a literal string.
func unescapeLiteral(s string) string {
	var b strings.Builder
	escaped := false
	for _, c := range s {
		if !escaped && c == '\\' {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(c)
	}
	return b.String()
}
