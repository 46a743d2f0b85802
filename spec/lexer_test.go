package spec

import (
	"strings"
	"testing"

	verr "github.com/nihei9/ll1/error"
)

func TestLexer_Run(t *testing.T) {
	idTok := func(text string) *token {
		return newIDToken(text, newPosition(1, 0))
	}

	termPatTok := func(text string) *token {
		return newTerminalPatternToken(text, newPosition(1, 0))
	}

	symTok := func(kind tokenKind) *token {
		return newSymbolToken(kind, newPosition(1, 0))
	}

	tests := []struct {
		caption string
		src     string
		tokens  []*token
		err     error
	}{
		{
			caption: "the lexer can recognize all kinds of tokens",
			src:     `id"terminal"'.*+?|()[\'':|;#ε`,
			tokens: []*token{
				idTok("id"),
				termPatTok("terminal"),
				termPatTok(`\.\*\+\?\|\(\)\['`),
				symTok(tokenKindColon),
				symTok(tokenKindOr),
				symTok(tokenKindSemicolon),
				symTok(tokenKindDirectiveMarker),
				symTok(tokenKindEpsilon),
				newEOFToken(),
			},
		},
		{
			caption: "the lexer keeps escape sequences in a pattern except for an escaped double quote",
			src:     `"abc\"\\"`,
			tokens: []*token{
				termPatTok(`abc"\\`),
				newEOFToken(),
			},
		},
		{
			caption: "a pattern must include at least one character",
			src:     `""`,
			err:     synErrEmptyPattern,
		},
		{
			caption: "a literal pattern must include at least one character",
			src:     `''`,
			err:     synErrEmptyPattern,
		},
		{
			caption: "the lexer ignores line comments",
			src: `
// This is the first comment.
foo
// This is the second comment.
// This is the third comment.
bar // This is the fourth comment.
`,
			tokens: []*token{
				idTok("foo"),
				idTok("bar"),
				newEOFToken(),
			},
		},
		{
			caption: "identifiers may begin with an underscore",
			src:     `_abc a_1`,
			tokens: []*token{
				idTok("_abc"),
				idTok("a_1"),
				newEOFToken(),
			},
		},
		{
			caption: "the lexer can recognize valid tokens following an invalid token",
			src:     `abc!def`,
			tokens: []*token{
				idTok("abc"),
				newInvalidToken("!", newPosition(1, 0)),
				idTok("def"),
				newEOFToken(),
			},
		},
		{
			caption: "the lexer skips white spaces and newlines",
			// \u0009: HT
			//  : SP
			src: "a\u0009b c\u000Ad\u000D\u000Ae",
			tokens: []*token{
				idTok("a"),
				idTok("b"),
				idTok("c"),
				idTok("d"),
				idTok("e"),
				newEOFToken(),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			l, err := newLexer(strings.NewReader(tt.src))
			if err != nil {
				t.Fatal(err)
			}
			n := 0
			for {
				var tok *token
				tok, err = l.next()
				if err != nil {
					break
				}
				if n >= len(tt.tokens) {
					t.Fatalf("too many tokens; got: %+v", tok)
				}
				testToken(t, tok, tt.tokens[n])
				n++
				if tok.kind == tokenKindEOF {
					break
				}
			}
			if tt.err != nil {
				synErr, ok := err.(*verr.SpecError)
				if !ok {
					t.Fatalf("unexpected error; want: %v, got: %v", tt.err, err)
				}
				if tt.err != synErr.Cause {
					t.Fatalf("unexpected error; want: %v, got: %v", tt.err, synErr.Cause)
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error; want: %v, got: %v", tt.err, err)
				}
			}
		})
	}
}

func TestGenLexSpec(t *testing.T) {
	s := genLexSpec()
	if s.Name == "" {
		t.Fatalf("a lexical specification must have a name")
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("the lexical specification is invalid: %v", err)
	}
}

func TestLexer_Position(t *testing.T) {
	src := "foo\n  : bar;"
	l, err := newLexer(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	expected := []Position{
		newPosition(1, 1),
		newPosition(2, 3),
		newPosition(2, 5),
		newPosition(2, 8),
	}
	for i, pos := range expected {
		tok, err := l.next()
		if err != nil {
			t.Fatal(err)
		}
		if tok.pos != pos {
			t.Fatalf("unexpected position of token #%v; want: %+v, got: %+v", i, pos, tok.pos)
		}
	}
}

func testToken(t *testing.T, tok, expected *token) {
	t.Helper()
	if tok.kind != expected.kind || tok.text != expected.text {
		t.Fatalf("unexpected token; want: %+v, got: %+v", expected, tok)
	}
}
