package robotforth

import (
	"errors"
	"fmt"

	"github.com/jcorbin/robotforth/internal/fileinput"
)

// Runtime faults.
var (
	ErrStackUnderflow    = errors.New("stack underflow")
	ErrAbsentValue       = errors.New("absent value")
	ErrMailboxEmpty      = errors.New("mailbox empty")
	ErrUnknownKind       = errors.New("unknown agent kind")
	ErrDivideByZero      = errors.New("divide by zero")
	ErrBadBound          = errors.New("negative random bound")
	ErrNoAgent           = errors.New("no agent attached")
	ErrMalformedResponse = errors.New("malformed agent response")
	ErrLeaveOutsideLoop  = errors.New("leave outside of any loop")
	ErrBusy              = errors.New("instance already running")
)

// Compile faults.
var (
	ErrUnterminated    = errors.New("unterminated block")
	ErrUnknownWord     = errors.New("unknown word")
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrNoEntryPoint    = errors.New("no " + EntryWord + " word defined")
)

// TypeError is returned when an operand has the wrong kind.
type TypeError struct {
	Want Kind
	Got  Kind
}

func (te *TypeError) Error() string {
	return fmt.Sprintf("type mismatch: expected %v, got %v", te.Want, te.Got)
}

// UnboundError is returned when loading a variable that has no binding.
type UnboundError struct{ Name string }

func (ue *UnboundError) Error() string { return fmt.Sprintf("unbound variable %q", ue.Name) }

// WordError annotates a runtime fault with the builtin that raised it.
type WordError struct {
	Word string
	Err  error
}

func (we *WordError) Error() string { return fmt.Sprintf("%v: %v", we.Word, we.Err) }
func (we *WordError) Unwrap() error { return we.Err }

// CompileError locates a fault raised while building a program.
type CompileError struct {
	fileinput.Location
	Token string
	Err   error
}

func (ce *CompileError) Error() string {
	if ce.Token == "" {
		return fmt.Sprintf("%v: %v", ce.Location, ce.Err)
	}
	return fmt.Sprintf("%v: %v %q", ce.Location, ce.Err, ce.Token)
}

func (ce *CompileError) Unwrap() error { return ce.Err }

// TokenMismatchError is returned by a Tokenizer accessor called for the wrong
// kind of token.
type TokenMismatchError struct {
	Want TokenKind
	Got  TokenKind
}

func (tme *TokenMismatchError) Error() string {
	return fmt.Sprintf("token mismatch: want %v, have %v", tme.Want, tme.Got)
}
