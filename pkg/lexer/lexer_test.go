package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeOperatorsAndDelimiters(t *testing.T) {
	tokens, err := Tokenize("+ ++ < ( ) { } : -> =")
	require.NoError(t, err)
	assert.Equal(t, []Kind{
		KindPlus, KindConcat, KindLessThan,
		KindLeftParen, KindRightParen, KindLeftBrace, KindRightBrace,
		KindColon, KindArrow, KindEqual,
	}, kinds(tokens))
}

func TestTokenizeKeywordsAndIdentifiers(t *testing.T) {
	tokens, err := Tokenize("if else let fn int bool str true false x _y z9 iffy")
	require.NoError(t, err)
	assert.Equal(t, []Kind{
		KindIf, KindElse, KindLet, KindFn, KindIntType, KindBoolType, KindStrType,
		KindBool, KindBool, KindIdentifier, KindIdentifier, KindIdentifier, KindIdentifier,
	}, kinds(tokens))
	assert.True(t, tokens[7].Bool)
	assert.False(t, tokens[8].Bool)
	assert.Equal(t, "_y", tokens[10].Text)
	assert.Equal(t, "iffy", tokens[12].Text)
}

func TestTokenizeIntegers(t *testing.T) {
	cases := []struct {
		src  string
		want []int64
	}{
		{"42", []int64{42}},
		{"-7", []int64{-7}},
		{"1-2", []int64{1, -2}},
		{"007", []int64{7}},
		{"9223372036854775807", []int64{9223372036854775807}},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			tokens, err := Tokenize(tc.src)
			require.NoError(t, err)
			require.Len(t, tokens, len(tc.want))
			for i, n := range tc.want {
				assert.Equal(t, KindInt, tokens[i].Kind)
				assert.Equal(t, n, tokens[i].Int)
			}
		})
	}
}

func TestTokenizeDigitsThenWord(t *testing.T) {
	tokens, err := Tokenize("12abc")
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, int64(12), tokens[0].Int)
	assert.Equal(t, "abc", tokens[1].Text)
}

func TestTokenizeArrowIsNotNumeric(t *testing.T) {
	tokens, err := Tokenize("(int->bool)")
	require.NoError(t, err)
	assert.Equal(t, []Kind{KindLeftParen, KindIntType, KindArrow, KindBoolType, KindRightParen}, kinds(tokens))
}

func TestTokenizeStrings(t *testing.T) {
	tokens, err := Tokenize(`"ab" ++ "c d\n" ++ ""`)
	require.NoError(t, err)
	require.Len(t, tokens, 5)
	assert.Equal(t, "ab", tokens[0].Text)
	assert.Equal(t, `c d\n`, tokens[2].Text)
	assert.Equal(t, "", tokens[4].Text)
}

func TestTokenizeErrors(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"-", "invalid integer"},
		{"- 3", "invalid integer"},
		{"99999999999999999999", "invalid integer"},
		{`"open`, "unterminated string"},
		{"1 # 2", "unexpected character: '#'"},
		{"x * y", "unexpected character: '*'"},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			_, err := Tokenize(tc.src)
			require.Error(t, err)
			var lexErr *Error
			require.ErrorAs(t, err, &lexErr)
			assert.Contains(t, lexErr.Message, tc.want)
		})
	}
}

func TestTokenizePositions(t *testing.T) {
	tokens, err := Tokenize("let x = 1\n{ x }")
	require.NoError(t, err)
	require.Len(t, tokens, 7)
	assert.Equal(t, Position{Offset: 4, Line: 1, Column: 5}, tokens[1].Pos)
	assert.Equal(t, Position{Offset: 10, Line: 2, Column: 1}, tokens[4].Pos)

	_, err = Tokenize("1 +\n  ?")
	require.Error(t, err)
	assert.Equal(t, "2:3: unexpected character: '?'", err.Error())
}

func TestTokenizeWhitespaceOnly(t *testing.T) {
	tokens, err := Tokenize(" \t\n ")
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestRenderRoundTrip(t *testing.T) {
	sources := []string{
		"3 + 4",
		`"ab" ++ "cd"`,
		"if 1 < 2 { 10 } else { 20 }",
		"let x = true { if x { 1 } else { 2 } }",
		"(fn (x: int) { x + 1 })(5)",
		"fn(f: (int -> (bool -> str))) { f(-3)(false) }",
		"1-2+-3",
	}
	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			first, err := Tokenize(src)
			require.NoError(t, err)
			second, err := Tokenize(Render(first))
			require.NoError(t, err)
			assert.True(t, EqualTokens(first, second), "re-lexed %q", Render(first))
		})
	}
}

func TestTokenEqualIgnoresPosition(t *testing.T) {
	a := Token{Kind: KindIdentifier, Text: "x", Pos: Position{Offset: 1, Line: 1, Column: 2}}
	b := Token{Kind: KindIdentifier, Text: "x"}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(Token{Kind: KindIdentifier, Text: "y"}))
	assert.False(t, EqualTokens([]Token{a}, nil))
}
