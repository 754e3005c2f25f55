package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func tokens(t *testing.T, src string) []Token {
	t.Helper()
	l := New(src)
	var out []Token
	for {
		tok, err := l.NextToken()
		require.NoError(t, err)
		out = append(out, tok)
		if tok.Kind == EOF {
			return out
		}
	}
}

func TestLeadingEqualsIgnored(t *testing.T) {
	toks := tokens(t, "= 2 + 3")
	require.Equal(t, INTEGER, toks[0].Kind)
}

func TestIntegerAndFloat(t *testing.T) {
	toks := tokens(t, "2 3.5 1e3 .5")
	require.Equal(t, INTEGER, toks[0].Kind)
	require.Equal(t, 2.0, toks[0].Num)
	require.Equal(t, FLOAT, toks[1].Kind)
	require.Equal(t, FLOAT, toks[2].Kind)
	require.Equal(t, 1000.0, toks[2].Num)
	require.Equal(t, FLOAT, toks[3].Kind)
}

func TestStringEscapes(t *testing.T) {
	toks := tokens(t, `"a\nb" 'c\'d'`)
	require.Equal(t, "a\nb", toks[0].Text)
	require.Equal(t, "c'd", toks[1].Text)
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"abc`)
	_, err := l.NextToken()
	require.Error(t, err)
}

func TestKeywordsCaseInsensitive(t *testing.T) {
	toks := tokens(t, "true FALSE Null and OR not")
	require.Equal(t, KEYWORD_TRUE, toks[0].Kind)
	require.Equal(t, KEYWORD_FALSE, toks[1].Kind)
	require.Equal(t, KEYWORD_NULL, toks[2].Kind)
	require.Equal(t, KEYWORD_AND, toks[3].Kind)
	require.Equal(t, KEYWORD_OR, toks[4].Kind)
	require.Equal(t, KEYWORD_NOT, toks[5].Kind)
}

func TestVariableWalrusCastSafeNav(t *testing.T) {
	toks := tokens(t, ":a := 1; x::Integer; y&.z")
	require.Equal(t, VARIABLE, toks[0].Kind)
	require.Equal(t, "a", toks[0].Text)
	require.Equal(t, WALRUS, toks[1].Kind)
	require.Equal(t, SEMICOLON, toks[3].Kind)
	require.Equal(t, CAST, toks[5].Kind)
	require.Equal(t, SAFE_NAV, toks[9].Kind)
}

func TestSpreadAndComment(t *testing.T) {
	toks := tokens(t, "...arr # trailing comment\n1")
	require.Equal(t, SPREAD, toks[0].Kind)
	require.Equal(t, IDENT, toks[1].Kind)
	require.Equal(t, INTEGER, toks[2].Kind)
}

func TestUnknownPunctuation(t *testing.T) {
	l := New("1 @ 2")
	_, _ = l.NextToken()
	_, err := l.NextToken()
	require.Error(t, err)
}
