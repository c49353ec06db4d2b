package robotforth

import (
	"fmt"
	"sort"
	"sync/atomic"
)

// Program is a compiled script: its user words and the initial variable
// bindings left by its preludes. A Program is immutable and may be shared by
// any number of instances.
type Program struct {
	Name string

	env   *env
	words map[string]*Sequence
	vars  map[string]Value
}

// NewProgram assembles a program from already built words; words must
// define the entry point.
func NewProgram(name string, words map[string]*Sequence, vars map[string]Value, opts ...Option) (*Program, error) {
	return newProgram(newEnv(opts...), name, words, vars)
}

func newProgram(e *env, name string, words map[string]*Sequence, vars map[string]Value) (*Program, error) {
	if words[EntryWord] == nil {
		return nil, fmt.Errorf("%v: %w", name, ErrNoEntryPoint)
	}
	prog := &Program{
		Name:  name,
		env:   e,
		words: make(map[string]*Sequence, len(words)),
		vars:  map[string]Value{CounterVariable: Int(0)},
	}
	for name, seq := range words {
		prog.words[name] = seq
	}
	for name, v := range vars {
		if v.Valid() {
			prog.vars[name] = v
		}
	}
	return prog, nil
}

// Entry returns the body of the entry point word.
func (prog *Program) Entry() *Sequence { return prog.words[EntryWord] }

// Word returns the body of a user word.
func (prog *Program) Word(name string) (*Sequence, bool) {
	seq, ok := prog.words[name]
	return seq, ok
}

// Words returns the user word names in sorted order.
func (prog *Program) Words() []string {
	names := make([]string, 0, len(prog.words))
	for name := range prog.words {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Vars returns a copy of the initial variable bindings.
func (prog *Program) Vars() map[string]Value {
	vars := make(map[string]Value, len(prog.vars))
	for name, v := range prog.vars {
		vars[name] = v
	}
	return vars
}

// NewState creates a fresh state holding the initial variable bindings.
func (prog *Program) NewState() *State {
	st := prog.env.newState()
	for name, v := range prog.vars {
		st.vars[name] = v
	}
	return st
}

// NewInstance creates an instance with a fresh state.
func (prog *Program) NewInstance() *Instance {
	return &Instance{prog: prog, state: prog.NewState()}
}

// Instance pairs a program with the state it runs against. The state
// persists from one run to the next, so an instance may be run once per
// turn; it may not run twice at the same time.
type Instance struct {
	prog    *Program
	state   *State
	running atomic.Bool
}

func (inst *Instance) Program() *Program { return inst.prog }
func (inst *Instance) State() *State     { return inst.state }

// Clone returns an independent instance with a deep copy of the state.
// It must not be called while the instance is running.
func (inst *Instance) Clone() *Instance {
	return &Instance{prog: inst.prog, state: inst.state.Clone()}
}

// Run executes the entry point synchronously on the calling goroutine.
func (inst *Instance) Run(listener Listener, source DataSource) error {
	return inst.run(listener, source, "")
}

func (inst *Instance) run(listener Listener, source DataSource, logPrefix string) error {
	if !inst.running.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer inst.running.Store(false)

	m := inst.prog.env.machine(inst.state, listener, source)
	defer m.withLogPrefix(logPrefix)()
	m.logf("#", "run %v", inst.prog.Name)
	err := m.run(inst.prog.Entry())
	if err != nil {
		m.logf("#", "fault: %v", err)
	}
	return err
}
