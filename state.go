package robotforth

import (
	"fmt"
	"sort"
)

// State is the mutable interpreter state of one program instance: an operand
// stack, a flat variable store, and one bounded mailbox per known agent kind.
//
// A State is owned by a single running task; use Clone to derive an
// independent copy for another run.
type State struct {
	stack []Value
	vars  map[string]Value
	boxes map[string]*mailbox
	kinds []string
}

type mailbox struct {
	capacity int
	queue    []Value
}

// NewState creates a state with an empty stack, the counter variable bound
// to zero, and empty mailboxes for each of the given agent kinds.
func NewState(kinds []string, capacity int) *State {
	st := &State{
		vars:  map[string]Value{CounterVariable: Int(0)},
		boxes: make(map[string]*mailbox, len(kinds)),
	}
	for _, kind := range kinds {
		if _, dup := st.boxes[kind]; dup {
			continue
		}
		st.kinds = append(st.kinds, kind)
		st.boxes[kind] = &mailbox{capacity: capacity}
	}
	return st
}

// Push adds a value to the top of the stack; absent values are rejected.
func (st *State) Push(v Value) error {
	if !v.Valid() {
		return ErrAbsentValue
	}
	st.stack = append(st.stack, v)
	return nil
}

// Pop removes and returns the top of the stack.
func (st *State) Pop() (Value, error) {
	i := len(st.stack) - 1
	if i < 0 {
		return Value{}, ErrStackUnderflow
	}
	v := st.stack[i]
	st.stack = st.stack[:i]
	return v, nil
}

// Peek returns the top of the stack without removing it.
func (st *State) Peek() (Value, error) {
	if len(st.stack) == 0 {
		return Value{}, ErrStackUnderflow
	}
	return st.stack[len(st.stack)-1], nil
}

// Depth returns the number of values on the stack.
func (st *State) Depth() int { return len(st.stack) }

// Stack returns a copy of the stack, bottom first.
func (st *State) Stack() []Value { return append([]Value(nil), st.stack...) }

// Get loads a variable.
func (st *State) Get(name string) (Value, error) {
	v, ok := st.vars[name]
	if !ok {
		return Value{}, &UnboundError{name}
	}
	return v, nil
}

// Set stores a variable.
func (st *State) Set(name string, v Value) error {
	if !v.Valid() {
		return ErrAbsentValue
	}
	st.vars[name] = v
	return nil
}

// Declared returns true if the named variable has a binding.
func (st *State) Declared(name string) bool {
	_, ok := st.vars[name]
	return ok
}

// Vars returns a copy of the variable store.
func (st *State) Vars() map[string]Value {
	vars := make(map[string]Value, len(st.vars))
	for name, v := range st.vars {
		vars[name] = v
	}
	return vars
}

// VarNames returns the declared variable names in sorted order.
func (st *State) VarNames() []string {
	names := make([]string, 0, len(st.vars))
	for name := range st.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Kinds returns the agent kinds that have a mailbox.
func (st *State) Kinds() []string { return append([]string(nil), st.kinds...) }

func (st *State) mailbox(kind string) (*mailbox, error) {
	if box := st.boxes[kind]; box != nil {
		return box, nil
	}
	return nil, unknownKind(kind)
}

// HasMessage returns true if the given kind's mailbox has a pending message.
func (st *State) HasMessage(kind string) (bool, error) {
	box, err := st.mailbox(kind)
	if err != nil {
		return false, err
	}
	return len(box.queue) > 0, nil
}

// Receive dequeues the oldest message from the given kind's mailbox.
func (st *State) Receive(kind string) (Value, error) {
	box, err := st.mailbox(kind)
	if err != nil {
		return Value{}, err
	}
	if len(box.queue) == 0 {
		return Value{}, ErrMailboxEmpty
	}
	v := box.queue[0]
	box.queue = box.queue[1:]
	return v, nil
}

// Send enqueues a message into the given kind's mailbox, returning false
// when the mailbox is already at capacity.
func (st *State) Send(kind string, v Value) (bool, error) {
	if !v.Valid() {
		return false, ErrAbsentValue
	}
	box, err := st.mailbox(kind)
	if err != nil {
		return false, err
	}
	if len(box.queue) >= box.capacity {
		return false, nil
	}
	box.queue = append(box.queue, v)
	return true, nil
}

// Pending returns how many messages wait in the given kind's mailbox.
func (st *State) Pending(kind string) int {
	if box := st.boxes[kind]; box != nil {
		return len(box.queue)
	}
	return 0
}

// Clone returns a deep copy: the stack, variables, and every mailbox are
// independent of the receiver.
func (st *State) Clone() *State {
	dup := &State{
		stack: st.Stack(),
		vars:  st.Vars(),
		boxes: make(map[string]*mailbox, len(st.boxes)),
		kinds: st.Kinds(),
	}
	for kind, box := range st.boxes {
		dup.boxes[kind] = &mailbox{
			capacity: box.capacity,
			queue:    append([]Value(nil), box.queue...),
		}
	}
	return dup
}

func unknownKind(kind string) error {
	return fmt.Errorf("%w %q", ErrUnknownKind, kind)
}

// Room returns how many more messages the given kind's mailbox accepts.
func (st *State) Room(kind string) int {
	if box := st.boxes[kind]; box != nil {
		return box.capacity - len(box.queue)
	}
	return 0
}
