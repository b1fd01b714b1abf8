package lang

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func allTokens(src string) []Token {
	l := NewLexer(src)
	var out []Token
	for {
		t := l.NextToken()
		out = append(out, t)
		if t.Type == TokenEOF {
			return out
		}
	}
}

func nonTrivia(toks []Token) []Token {
	var out []Token
	for _, t := range toks {
		if t.Type == TokenWhitespace || t.Type == TokenComment {
			continue
		}
		out = append(out, t)
	}
	return out
}

func TestLexerIdentifiersAndPunctuation(t *testing.T) {
	c := qt.New(t)
	toks := nonTrivia(allTokens(`field id:int rowid;`))

	c.Assert(len(toks), qt.Equals, 7) // field, id, :, int, rowid, ;, EOF
	c.Assert(toks[0].Type, qt.Equals, TokenIdentifier)
	c.Assert(toks[0].Value, qt.Equals, "field")
	c.Assert(toks[2].Type, qt.Equals, TokenOperator)
	c.Assert(toks[2].Value, qt.Equals, ":")
	c.Assert(toks[5].Type, qt.Equals, TokenSemicolon)
	c.Assert(toks[6].Type, qt.Equals, TokenEOF)
}

func TestLexerString(t *testing.T) {
	c := qt.New(t)
	toks := nonTrivia(allTokens(`"hello \"world\""`))
	c.Assert(toks[0].Type, qt.Equals, TokenString)
	c.Assert(toks[0].Value, qt.Equals, `hello "world"`)
}

func TestLexerNumberAndComment(t *testing.T) {
	c := qt.New(t)
	toks := allTokens("42 # a comment\n7")
	c.Assert(toks[0].Type, qt.Equals, TokenNumber)
	c.Assert(toks[0].Value, qt.Equals, "42")

	var sawComment bool
	for _, t := range toks {
		if t.Type == TokenComment {
			sawComment = true
		}
	}
	c.Assert(sawComment, qt.IsTrue)
}

func TestTokenMatchHelpers(t *testing.T) {
	c := qt.New(t)
	tok := Token{Type: TokenIdentifier, Value: "Struct"}
	c.Assert(tok.MatchIdentifierValue("struct"), qt.IsTrue)
	c.Assert(tok.MatchOperatorValue("struct"), qt.IsFalse)
}
