package robotforth

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scannedToken struct {
	kind TokenKind
	raw  string
	str  string
	num  int
	line int
}

func scanAll(t *testing.T, src string) ([]scannedToken, error) {
	tok := NewTokenizer(t.Name(), strings.NewReader(src))
	var toks []scannedToken
	for {
		kind, err := tok.Next()
		if err == io.EOF {
			return toks, nil
		} else if err != nil {
			return toks, err
		}
		toks = append(toks, scannedToken{kind, tok.Raw(), tok.str, tok.num, tok.Location().Line})
	}
}

func TestTokenizer(t *testing.T) {
	for _, tc := range []struct {
		name string
		src  string
		want []scannedToken
	}{
		{"empty", "", nil},
		{"blank", " \n\t ", nil},
		{"ints", "1 -42 +7", []scannedToken{
			{TokenInt, "1", "", 1, 1},
			{TokenInt, "-42", "", -42, 1},
			{TokenInt, "+7", "", 7, 1},
		}},
		{"bools", "true FALSE True", []scannedToken{
			{TokenBool, "true", "", 1, 1},
			{TokenBool, "FALSE", "", 0, 1},
			{TokenBool, "True", "", 1, 1},
		}},
		{"keywords", ": ; if else then begin until do loop", []scannedToken{
			{TokenBlockStart, ":", "", 0, 1},
			{TokenBlockEnd, ";", "", 0, 1},
			{TokenIf, "if", "", 0, 1},
			{TokenElse, "else", "", 0, 1},
			{TokenThen, "then", "", 0, 1},
			{TokenBegin, "begin", "", 0, 1},
			{TokenUntil, "until", "", 0, 1},
			{TokenDo, "do", "", 0, 1},
			{TokenLoop, "loop", "", 0, 1},
		}},
		{"words", "dup IF move! 1+", []scannedToken{
			{TokenWord, "dup", "dup", 0, 1},
			{TokenWord, "IF", "IF", 0, 1},
			{TokenWord, "move!", "move!", 0, 1},
			{TokenWord, "1+", "1+", 0, 1},
		}},
		{"variable", "variable  count ;", []scannedToken{
			{TokenVariable, "variable count", "count", 0, 1},
			{TokenBlockEnd, ";", "", 0, 1},
		}},
		{"strings", `."SCOUT" ."" ."two  words" ."a` + "\n" + `b"`, []scannedToken{
			{TokenString, `."SCOUT"`, "SCOUT", 0, 1},
			{TokenString, `.""`, "", 0, 1},
			{TokenString, `."two  words"`, "two  words", 0, 1},
			{TokenString, ".\"a\nb\"", "a\nb", 0, 1},
		}},
		{"comments", "(x) ( a b -- c ) 1", []scannedToken{
			{TokenComment, "(x)", "x", 0, 1},
			{TokenComment, "( a b -- c )", " a b -- c ", 0, 1},
			{TokenInt, "1", "", 1, 1},
		}},
		{"lines", "1\n2\n\n  3", []scannedToken{
			{TokenInt, "1", "", 1, 1},
			{TokenInt, "2", "", 2, 2},
			{TokenInt, "3", "", 3, 4},
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			toks, err := scanAll(t, tc.src)
			require.NoError(t, err)
			assert.Equal(t, tc.want, toks)
		})
	}
}

func TestTokenizer_unterminated(t *testing.T) {
	for _, src := range []string{
		`."open`,
		`."open string`,
		"( open comment",
		"(",
		"variable",
		"variable   ",
	} {
		t.Run(src, func(t *testing.T) {
			_, err := scanAll(t, src)
			assert.ErrorIs(t, err, ErrUnterminated)
		})
	}
}

func TestTokenizer_accessors(t *testing.T) {
	tok := NewTokenizer("test", strings.NewReader(`5 true ."hi" (note) w variable v`))

	kind, err := tok.Next()
	require.NoError(t, err)
	require.Equal(t, TokenInt, kind)
	n, err := tok.Int()
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	_, err = tok.Word()
	var tme *TokenMismatchError
	require.ErrorAs(t, err, &tme)
	assert.Equal(t, TokenMismatchError{Want: TokenWord, Got: TokenInt}, *tme)

	_, err = tok.Next()
	require.NoError(t, err)
	b, err := tok.Bool()
	require.NoError(t, err)
	assert.True(t, b)
	_, err = tok.Int()
	assert.ErrorAs(t, err, &tme)

	_, err = tok.Next()
	require.NoError(t, err)
	s, err := tok.Text()
	require.NoError(t, err)
	assert.Equal(t, "hi", s)
	_, err = tok.Comment()
	assert.ErrorAs(t, err, &tme)

	_, err = tok.Next()
	require.NoError(t, err)
	s, err = tok.Comment()
	require.NoError(t, err)
	assert.Equal(t, "note", s)

	_, err = tok.Next()
	require.NoError(t, err)
	s, err = tok.Word()
	require.NoError(t, err)
	assert.Equal(t, "w", s)
	_, err = tok.Variable()
	assert.ErrorAs(t, err, &tme)

	_, err = tok.Next()
	require.NoError(t, err)
	s, err = tok.Variable()
	require.NoError(t, err)
	assert.Equal(t, "v", s)

	assert.False(t, tok.HasNext())
	_, err = tok.Next()
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, TokenNone, tok.Kind())
}
