package robotforth

import (
	"errors"
	"io"
	"strings"
)

// Builder compiles scripts into programs. A Builder may be used from many
// goroutines at once.
type Builder struct{ env *env }

// NewBuilder creates a builder; its options carry over to every program it
// builds.
func NewBuilder(opts ...Option) *Builder { return &Builder{newEnv(opts...)} }

// Dictionary returns the builtin table used to resolve words.
func (bld *Builder) Dictionary() *Dictionary { return bld.env.dict }

// BuildString compiles script text.
func (bld *Builder) BuildString(name, script string) (*Program, error) {
	return bld.Build(name, strings.NewReader(script))
}

// Build compiles the script read from r.
//
// Top level code outside of any definition is a prelude: it runs once,
// immediately, against the build time state with no agent attached. Any
// variables it stores become the program's initial bindings; anything left
// on its stack is discarded.
func (bld *Builder) Build(name string, r io.Reader) (*Program, error) {
	c := compiler{
		env:     bld.env,
		logging: bld.env.logging,
		tok:     NewTokenizer(name, r),
		words:   make(map[string]*Sequence),
		state:   bld.env.newState(),
	}
	defer c.withLogPrefix(name + " ")()
	if err := c.top(); err != nil {
		return nil, err
	}
	return newProgram(bld.env, name, c.words, c.state.Vars())
}

type compiler struct {
	*env
	logging
	tok   *Tokenizer
	held  bool
	words map[string]*Sequence
	state *State
}

// next scans the next token, or returns the held one.
func (c *compiler) next() (TokenKind, error) {
	if c.held {
		c.held = false
		return c.tok.Kind(), nil
	}
	return c.tok.Next()
}

func (c *compiler) fail(err error) error {
	var ce *CompileError
	if errors.As(err, &ce) {
		return err
	}
	return &CompileError{Location: c.tok.Location(), Token: c.tok.Raw(), Err: err}
}

func (c *compiler) top() error {
	for {
		kind, err := c.next()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return c.fail(err)
		}

		switch kind {
		case TokenComment:

		case TokenVariable:
			if err := c.declare(); err != nil {
				return err
			}

		case TokenBlockStart:
			if err := c.define(); err != nil {
				return err
			}

		case TokenInt, TokenBool, TokenString, TokenWord:
			if err := c.prelude(); err != nil {
				return err
			}

		default:
			return c.fail(ErrUnexpectedToken)
		}
	}
}

// declare binds a new variable to zero, consuming an optional trailing ";".
func (c *compiler) declare() error {
	name := c.tok.str
	if err := c.state.Set(name, Int(0)); err != nil {
		return c.fail(err)
	}
	c.logf(":", "variable %v", name)
	switch kind, err := c.next(); {
	case err == io.EOF:
	case err != nil:
		return c.fail(err)
	case kind != TokenBlockEnd:
		c.held = true
	}
	return nil
}

func (c *compiler) define() error {
	kind, err := c.next()
	if err == io.EOF {
		return c.fail(ErrUnterminated)
	} else if err != nil {
		return c.fail(err)
	}
	if kind != TokenWord {
		return c.fail(ErrUnexpectedToken)
	}
	name := c.tok.str
	body, _, err := c.body(TokenBlockEnd)
	if err != nil {
		return err
	}
	if _, redef := c.words[name]; redef {
		c.logf(":", "%v redefined", name)
	}
	c.words[name] = body
	c.logf(":", "%v %v", name, formatOps(body))
	return nil
}

func (c *compiler) prelude() error {
	loc := c.tok.Location()
	first, err := c.op(c.tok.Kind())
	if err != nil {
		return err
	}
	seq := &Sequence{Ops: []Op{first}}
	switch end, err := c.collect(seq); end {
	case TokenNone:
		if err != nil {
			return err
		}
	case TokenBlockStart, TokenVariable:
		c.held = true
	default:
		return c.fail(ErrUnexpectedToken)
	}

	c.logf(">", "%v %v", loc, formatOps(seq))
	m := c.machine(c.state, nil, nil)
	m.logging = c.logging
	if err := m.run(seq); err != nil {
		return &CompileError{Location: loc, Err: err}
	}
	c.state.stack = c.state.stack[:0]
	return nil
}

// body builds a sequence that must end with one of the given terminators,
// returning the one found.
func (c *compiler) body(ends ...TokenKind) (*Sequence, TokenKind, error) {
	seq := &Sequence{}
	end, err := c.collect(seq)
	if err != nil {
		return nil, end, err
	}
	switch end {
	case TokenNone, TokenBlockStart:
		return nil, end, c.fail(ErrUnterminated)
	}
	for _, want := range ends {
		if end == want {
			return seq, end, nil
		}
	}
	return nil, end, c.fail(ErrUnexpectedToken)
}

// collect appends ops to seq until it scans a terminator, definition, or
// declaration token, which it returns. Returns TokenNone at end of input.
func (c *compiler) collect(seq *Sequence) (TokenKind, error) {
	for {
		kind, err := c.next()
		if err == io.EOF {
			return TokenNone, nil
		} else if err != nil {
			return TokenNone, c.fail(err)
		}

		switch kind {
		case TokenComment:
			continue
		case TokenBlockEnd, TokenUntil, TokenLoop, TokenElse, TokenThen,
			TokenBlockStart, TokenVariable:
			return kind, nil
		}

		op, err := c.op(kind)
		if err != nil {
			return TokenNone, err
		}
		seq.Ops = append(seq.Ops, op)
	}
}

func (c *compiler) op(kind TokenKind) (Op, error) {
	switch kind {
	case TokenInt:
		return Literal{Int(c.tok.num)}, nil
	case TokenBool:
		return Literal{Bool(c.tok.num != 0)}, nil
	case TokenString:
		return Literal{Text(c.tok.str)}, nil
	case TokenWord:
		return c.resolve(c.tok.str)

	case TokenBegin:
		body, _, err := c.body(TokenUntil)
		if err != nil {
			return nil, err
		}
		return GuardedLoop{body}, nil

	case TokenDo:
		body, _, err := c.body(TokenLoop)
		if err != nil {
			return nil, err
		}
		return CountedLoop{body}, nil

	case TokenIf:
		then, end, err := c.body(TokenElse, TokenThen)
		if err != nil {
			return nil, err
		}
		els := &Sequence{}
		if end == TokenElse {
			if els, _, err = c.body(TokenThen); err != nil {
				return nil, err
			}
		}
		return Conditional{then, els}, nil

	default:
		return nil, c.fail(ErrUnexpectedToken)
	}
}

// resolve looks a word up as a variable, then a builtin, then a previously
// completed user word.
func (c *compiler) resolve(name string) (Op, error) {
	if c.state.Declared(name) {
		return Literal{Var(name)}, nil
	}
	if b, ok := c.dict.Lookup(name); ok {
		return b, nil
	}
	if seq, ok := c.words[name]; ok {
		return seq, nil
	}
	return nil, c.fail(ErrUnknownWord)
}
