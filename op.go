package robotforth

// Op is one node of a compiled program tree.
type Op interface {
	exec(m *machine) (flow, error)
}

// flow tells enclosing ops how execution continues after an op.
type flow uint8

const (
	flowNext flow = iota
	flowLeave
)

// Literal pushes its value, except that a reference to the counter variable
// pushes the variable's current value instead.
type Literal struct{ Value Value }

// Sequence runs its ops in order. User words compile to one Sequence that
// is shared by every call site.
type Sequence struct{ Ops []Op }

// Conditional pops a boolean and runs one of its branches.
type Conditional struct{ Then, Else *Sequence }

// GuardedLoop runs its body, then pops a boolean guard, repeating while the
// guard is true.
type GuardedLoop struct{ Body *Sequence }

// CountedLoop pops a start index then an end index, running its body once
// for each counter value from start to end inclusive.
type CountedLoop struct{ Body *Sequence }

func (lit Literal) exec(m *machine) (flow, error) {
	if lit.Value.kind == KindVar && lit.Value.str == CounterVariable {
		v, err := m.state.Get(CounterVariable)
		if err != nil {
			return flowNext, err
		}
		return flowNext, m.state.Push(v)
	}
	return flowNext, m.state.Push(lit.Value)
}

func (seq *Sequence) exec(m *machine) (flow, error) {
	for _, op := range seq.Ops {
		if f, err := op.exec(m); err != nil || f == flowLeave {
			return f, err
		}
	}
	return flowNext, nil
}

func (cond Conditional) exec(m *machine) (flow, error) {
	test, err := m.popBool()
	if err != nil {
		return flowNext, &WordError{"if", err}
	}
	if test {
		return cond.Then.exec(m)
	}
	return cond.Else.exec(m)
}

func (loop GuardedLoop) exec(m *machine) (flow, error) {
	for {
		f, err := loop.Body.exec(m)
		if err != nil {
			return flowNext, err
		}
		if f == flowLeave {
			return flowNext, nil
		}
		again, err := m.popBool()
		if err != nil {
			return flowNext, &WordError{"until", err}
		}
		if !again {
			return flowNext, nil
		}
	}
}

func (loop CountedLoop) exec(m *machine) (_ flow, rerr error) {
	start, err := m.popInt()
	if err != nil {
		return flowNext, &WordError{"do", err}
	}
	end, err := m.popInt()
	if err != nil {
		return flowNext, &WordError{"do", err}
	}
	prior, err := m.state.Get(CounterVariable)
	if err != nil {
		return flowNext, err
	}
	defer func() {
		if err := m.state.Set(CounterVariable, prior); rerr == nil {
			rerr = err
		}
	}()
	for i := start; i <= end; i++ {
		if err := m.state.Set(CounterVariable, Int(i)); err != nil {
			return flowNext, err
		}
		f, err := loop.Body.exec(m)
		if err != nil {
			return flowNext, err
		}
		if f == flowLeave || i == end {
			break
		}
	}
	return flowNext, nil
}
