package robotforth

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/jcorbin/robotforth/internal/flushio"
)

// env holds the settings shared by a builder and every program it builds.
// It is immutable after construction, except for output and randomness
// which are guarded for concurrent runs.
type env struct {
	logging
	dict     *Dictionary
	kinds    []string
	capacity int
	tracer   trace.Tracer

	outMu sync.Mutex
	out   flushio.WriteFlusher

	randMu sync.Mutex
	rand   *rand.Rand
}

func newEnv(opts ...Option) *env {
	var e env
	defaultOptions.apply(&e)
	Options(opts...).apply(&e)
	if e.tracer == nil {
		e.tracer = otel.Tracer(tracerName)
	}
	if e.dict == nil {
		e.dict = NewDictionary()
	}
	return &e
}

func (e *env) newState() *State { return NewState(e.kinds, e.capacity) }

func (e *env) print(v Value) error {
	e.outMu.Lock()
	defer e.outMu.Unlock()
	if _, err := fmt.Fprintln(e.out, v); err != nil {
		return err
	}
	return e.out.Flush()
}

// randN returns a uniform integer in [0, bound]; bound must not be negative.
// The span is computed unsigned so that bound may be math.MaxInt.
func (e *env) randN(bound int) int {
	n := uint(bound) + 1
	if e.rand == nil {
		return int(rand.UintN(n))
	}
	e.randMu.Lock()
	defer e.randMu.Unlock()
	return int(e.rand.UintN(n))
}

// machine executes program ops against one state and its agent
// collaborators; listener and source are nil while running preludes.
type machine struct {
	*env
	logging
	state    *State
	listener Listener
	source   DataSource
}

func (e *env) machine(st *State, listener Listener, source DataSource) *machine {
	return &machine{
		env:      e,
		logging:  e.logging,
		state:    st,
		listener: listener,
		source:   source,
	}
}

func (m *machine) run(seq *Sequence) error {
	f, err := seq.exec(m)
	if err == nil && f == flowLeave {
		err = ErrLeaveOutsideLoop
	}
	return err
}

func (m *machine) push(v Value) error { return m.state.Push(v) }

// pushAll pushes vs in order, stopping at the first error.
func (m *machine) pushAll(vs ...Value) error {
	for _, v := range vs {
		if err := m.state.Push(v); err != nil {
			return err
		}
	}
	return nil
}

func (m *machine) pop() (Value, error) { return m.state.Pop() }

func (m *machine) popInt() (int, error) {
	v, err := m.state.Pop()
	if err != nil {
		return 0, err
	}
	return v.AsInt()
}

func (m *machine) popBool() (bool, error) {
	v, err := m.state.Pop()
	if err != nil {
		return false, err
	}
	return v.AsBool()
}

func (m *machine) popText() (string, error) {
	v, err := m.state.Pop()
	if err != nil {
		return "", err
	}
	return v.AsText()
}

func (m *machine) popVar() (string, error) {
	v, err := m.state.Pop()
	if err != nil {
		return "", err
	}
	return v.AsVar()
}

// popKind pops an agent kind name, which must name a known kind.
func (m *machine) popKind() (string, error) {
	kind, err := m.popText()
	if err != nil {
		return "", err
	}
	for _, known := range m.kinds {
		if kind == known {
			return kind, nil
		}
	}
	return "", unknownKind(kind)
}

func (m *machine) agent() (Listener, error) {
	if m.listener == nil {
		return nil, ErrNoAgent
	}
	return m.listener, nil
}

func (m *machine) status() (DataSource, error) {
	if m.source == nil {
		return nil, ErrNoAgent
	}
	return m.source, nil
}
