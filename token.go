package robotforth

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/jcorbin/robotforth/internal/fileinput"
)

// TokenKind classifies a script token.
type TokenKind uint8

// Token kinds.
const (
	TokenNone TokenKind = iota
	TokenInt
	TokenBool
	TokenString
	TokenComment
	TokenWord
	TokenVariable
	TokenBlockStart
	TokenBlockEnd
	TokenIf
	TokenElse
	TokenThen
	TokenBegin
	TokenUntil
	TokenDo
	TokenLoop
)

var tokenNames = [...]string{
	TokenNone:       "none",
	TokenInt:        "integer",
	TokenBool:       "boolean",
	TokenString:     "string",
	TokenComment:    "comment",
	TokenWord:       "word",
	TokenVariable:   "variable",
	TokenBlockStart: ":",
	TokenBlockEnd:   ";",
	TokenIf:         "if",
	TokenElse:       "else",
	TokenThen:       "then",
	TokenBegin:      "begin",
	TokenUntil:      "until",
	TokenDo:         "do",
	TokenLoop:       "loop",
}

func (kind TokenKind) String() string {
	if int(kind) < len(tokenNames) {
		return tokenNames[kind]
	}
	return fmt.Sprintf("TokenKind(%d)", uint8(kind))
}

var keywords = map[string]TokenKind{
	":":     TokenBlockStart,
	";":     TokenBlockEnd,
	"if":    TokenIf,
	"else":  TokenElse,
	"then":  TokenThen,
	"begin": TokenBegin,
	"until": TokenUntil,
	"do":    TokenDo,
	"loop":  TokenLoop,
}

// delimited describes a token that may span whitespace.
type delimited struct {
	kind       TokenKind
	start, end string
}

var delimitedTokens = []delimited{
	{TokenString, `."`, `"`},
	{TokenComment, `(`, `)`},
}

// Tokenizer splits script text into tokens. Tokens are whitespace delimited,
// except strings and comments which run from their opening delimiter to the
// first field that ends with their closing delimiter, keeping any interior
// whitespace verbatim.
type Tokenizer struct {
	in      fileinput.Input
	peek    rune
	hasPeek bool
	err     error

	kind TokenKind
	loc  fileinput.Location
	raw  string
	num  int
	str  string
}

// NewTokenizer creates a tokenizer reading from r, naming it for locations.
func NewTokenizer(name string, r io.Reader) *Tokenizer {
	var tok Tokenizer
	tok.in.Queue = append(tok.in.Queue, fileinput.Named(name, r))
	return &tok
}

func (tok *Tokenizer) readRune() (rune, error) {
	if tok.hasPeek {
		tok.hasPeek = false
		return tok.peek, nil
	}
	r, _, err := tok.in.ReadRune()
	return r, err
}

func (tok *Tokenizer) unreadRune(r rune) {
	tok.peek, tok.hasPeek = r, true
}

// skipSpace consumes whitespace, returning it verbatim.
func (tok *Tokenizer) skipSpace() (string, error) {
	var sb strings.Builder
	for {
		r, err := tok.readRune()
		if err != nil {
			return sb.String(), err
		}
		if !unicode.IsSpace(r) {
			tok.unreadRune(r)
			return sb.String(), nil
		}
		sb.WriteRune(r)
	}
}

// field reads the next run of non-space runes.
func (tok *Tokenizer) field() (string, error) {
	var sb strings.Builder
	for {
		r, err := tok.readRune()
		if err == io.EOF && sb.Len() > 0 {
			return sb.String(), nil
		} else if err != nil {
			return sb.String(), err
		}
		if unicode.IsSpace(r) {
			tok.unreadRune(r)
			return sb.String(), nil
		}
		sb.WriteRune(r)
	}
}

// HasNext returns true if another token, or a read error, remains.
func (tok *Tokenizer) HasNext() bool {
	if tok.err != nil {
		return tok.err != io.EOF
	}
	if _, err := tok.skipSpace(); err != nil {
		tok.err = err
		return err != io.EOF
	}
	return true
}

// Next scans the next token and returns its kind; io.EOF is returned once
// the input is exhausted.
func (tok *Tokenizer) Next() (TokenKind, error) {
	tok.kind, tok.raw, tok.str, tok.num = TokenNone, "", "", 0
	if !tok.HasNext() {
		return TokenNone, io.EOF
	}
	if tok.err != nil {
		return TokenNone, tok.err
	}
	tok.loc = tok.in.Location
	field, err := tok.field()
	if err != nil {
		tok.err = err
		return TokenNone, err
	}
	tok.raw = field
	tok.kind, err = tok.classify(field)
	return tok.kind, err
}

func (tok *Tokenizer) classify(field string) (TokenKind, error) {
	if n, err := strconv.ParseInt(field, 10, strconv.IntSize); err == nil {
		tok.num = int(n)
		return TokenInt, nil
	}
	if strings.EqualFold(field, "true") {
		tok.num = 1
		return TokenBool, nil
	}
	if strings.EqualFold(field, "false") {
		return TokenBool, nil
	}
	if kind, ok := keywords[field]; ok {
		return kind, nil
	}
	if field == "variable" {
		if _, err := tok.skipSpace(); err != nil {
			return TokenVariable, tok.unterminated(err)
		}
		name, err := tok.field()
		if err != nil {
			return TokenVariable, tok.unterminated(err)
		}
		tok.raw += " " + name
		tok.str = name
		return TokenVariable, nil
	}
	for _, dt := range delimitedTokens {
		if strings.HasPrefix(field, dt.start) {
			return dt.kind, tok.scanDelimited(dt, field)
		}
	}
	tok.str = field
	return TokenWord, nil
}

// scanDelimited completes a string or comment token opened by field.
func (tok *Tokenizer) scanDelimited(dt delimited, field string) error {
	if len(field) >= len(dt.start)+len(dt.end) && strings.HasSuffix(field, dt.end) {
		tok.str = field[len(dt.start) : len(field)-len(dt.end)]
		return nil
	}
	var sb strings.Builder
	sb.WriteString(field)
	for {
		space, err := tok.skipSpace()
		sb.WriteString(space)
		if err != nil {
			tok.raw = sb.String()
			return tok.unterminated(err)
		}
		next, err := tok.field()
		sb.WriteString(next)
		if err != nil {
			tok.raw = sb.String()
			return tok.unterminated(err)
		}
		if strings.HasSuffix(next, dt.end) {
			break
		}
	}
	tok.raw = sb.String()
	tok.str = tok.raw[len(dt.start) : len(tok.raw)-len(dt.end)]
	return nil
}

func (tok *Tokenizer) unterminated(err error) error {
	if err == io.EOF {
		return ErrUnterminated
	}
	tok.err = err
	return err
}

// Kind returns the kind of the last scanned token.
func (tok *Tokenizer) Kind() TokenKind { return tok.kind }

// Location returns where the last scanned token started.
func (tok *Tokenizer) Location() fileinput.Location { return tok.loc }

// Raw returns the source text of the last scanned token.
func (tok *Tokenizer) Raw() string { return tok.raw }

func (tok *Tokenizer) expect(kind TokenKind) error {
	if tok.kind != kind {
		return &TokenMismatchError{Want: kind, Got: tok.kind}
	}
	return nil
}

// Int returns the value of an integer token.
func (tok *Tokenizer) Int() (int, error) { return tok.num, tok.expect(TokenInt) }

// Bool returns the value of a boolean token.
func (tok *Tokenizer) Bool() (bool, error) { return tok.num != 0, tok.expect(TokenBool) }

// Text returns the content of a string token.
func (tok *Tokenizer) Text() (string, error) { return tok.str, tok.expect(TokenString) }

// Comment returns the content of a comment token.
func (tok *Tokenizer) Comment() (string, error) { return tok.str, tok.expect(TokenComment) }

// Word returns the name of a word token.
func (tok *Tokenizer) Word() (string, error) { return tok.str, tok.expect(TokenWord) }

// Variable returns the name declared by a variable token.
func (tok *Tokenizer) Variable() (string, error) { return tok.str, tok.expect(TokenVariable) }
