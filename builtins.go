package robotforth

import "sort"

// Builtin is a primitive word.
type Builtin struct {
	Name   string
	Effect string // stack effect, e.g. "( a b -- a+b )"
	Group  string

	fn    func(m *machine) error
	leave bool
}

func (b *Builtin) exec(m *machine) (flow, error) {
	if m.tracing() {
		m.logf(".", "%v %v", b.Name, formatValues(m.state.stack))
	}
	if b.leave {
		return flowLeave, nil
	}
	if err := b.fn(m); err != nil {
		return flowNext, &WordError{b.Name, err}
	}
	return flowNext, nil
}

// Dictionary is an immutable table of builtin words.
type Dictionary struct {
	words map[string]*Builtin
	names []string
}

// NewDictionary builds the standard builtin table.
func NewDictionary() *Dictionary {
	dict := &Dictionary{words: make(map[string]*Builtin, len(standardWords))}
	for i := range standardWords {
		b := standardWords[i]
		dict.words[b.Name] = &b
		dict.names = append(dict.names, b.Name)
	}
	sort.Strings(dict.names)
	return dict
}

// Lookup returns the named builtin.
func (dict *Dictionary) Lookup(name string) (*Builtin, bool) {
	b, ok := dict.words[name]
	return b, ok
}

// Names returns every builtin name in sorted order.
func (dict *Dictionary) Names() []string { return append([]string(nil), dict.names...) }

// Len returns the number of builtins.
func (dict *Dictionary) Len() int { return len(dict.names) }

var standardWords = []Builtin{
	{Name: "drop", Group: "stack", Effect: "( a -- )", fn: drop},
	{Name: "pop", Group: "stack", Effect: "( a -- )", fn: drop},
	{Name: "dup", Group: "stack", Effect: "( a -- a a )", fn: dup},
	{Name: "swap", Group: "stack", Effect: "( a b -- b a )", fn: swap},
	{Name: "rot", Group: "stack", Effect: "( a b c -- b c a )", fn: rot},

	{Name: "+", Group: "arithmetic", Effect: "( a b -- a+b )", fn: intOp(func(a, b int) int { return a + b })},
	{Name: "-", Group: "arithmetic", Effect: "( a b -- a-b )", fn: intOp(func(a, b int) int { return a - b })},
	{Name: "*", Group: "arithmetic", Effect: "( a b -- a*b )", fn: intOp(func(a, b int) int { return a * b })},
	{Name: "/mod", Group: "arithmetic", Effect: "( a b -- a%b a/b )", fn: divMod},

	{Name: "<", Group: "comparison", Effect: "( a b -- a<b )", fn: intCmp(func(a, b int) bool { return a < b })},
	{Name: "<=", Group: "comparison", Effect: "( a b -- a<=b )", fn: intCmp(func(a, b int) bool { return a <= b })},
	{Name: ">", Group: "comparison", Effect: "( a b -- a>b )", fn: intCmp(func(a, b int) bool { return a > b })},
	{Name: ">=", Group: "comparison", Effect: "( a b -- a>=b )", fn: intCmp(func(a, b int) bool { return a >= b })},
	{Name: "=", Group: "comparison", Effect: "( a b -- a=b )", fn: equals(false)},
	{Name: "<>", Group: "comparison", Effect: "( a b -- a<>b )", fn: equals(true)},

	{Name: "and", Group: "logic", Effect: "( p q -- p&q )", fn: boolOp(func(p, q bool) bool { return p && q })},
	{Name: "or", Group: "logic", Effect: "( p q -- p|q )", fn: boolOp(func(p, q bool) bool { return p || q })},
	{Name: "invert", Group: "logic", Effect: "( p -- !p )", fn: invert},

	{Name: "!", Group: "variable", Effect: "( value var -- )", fn: store},
	{Name: "?", Group: "variable", Effect: "( var -- value )", fn: load},

	{Name: ".", Group: "utility", Effect: "( a -- )", fn: printValue},
	{Name: "random", Group: "utility", Effect: "( n -- [0,n] )", fn: random},

	{Name: "move!", Group: "agent", Effect: "( -- )", fn: move},
	{Name: "move", Group: "agent", Effect: "( -- )", fn: move},
	{Name: "turn!", Group: "agent", Effect: "( n -- )", fn: turn},
	{Name: "shoot!", Group: "agent", Effect: "( direction distance -- )", fn: shoot},
	{Name: "scan!", Group: "agent", Effect: "( -- count )", fn: scan},
	{Name: "check!", Group: "agent", Effect: "( direction -- status )", fn: check},
	{Name: "identify!", Group: "agent", Effect: "( index -- health direction range team )", fn: identify},

	{Name: "attack", Group: "status", Effect: "( -- n )", fn: statusInt(DataSource.Attack)},
	{Name: "health", Group: "status", Effect: "( -- n )", fn: statusInt(DataSource.Health)},
	{Name: "healthLeft", Group: "status", Effect: "( -- n )", fn: statusInt(DataSource.HealthLeft)},
	{Name: "moves", Group: "status", Effect: "( -- n )", fn: statusInt(DataSource.Moves)},
	{Name: "movesLeft", Group: "status", Effect: "( -- n )", fn: statusInt(DataSource.MovesLeft)},
	{Name: "range", Group: "status", Effect: "( -- n )", fn: statusInt(DataSource.Range)},
	{Name: "team", Group: "status", Effect: "( -- team )", fn: statusText(DataSource.Team)},
	{Name: "type", Group: "status", Effect: "( -- kind )", fn: statusText(DataSource.Kind)},

	{Name: "send!", Group: "mail", Effect: "( kind value -- sent )", fn: send},
	{Name: "recv!", Group: "mail", Effect: "( kind -- value )", fn: receive},
	{Name: "mesg?", Group: "mail", Effect: "( kind -- waiting )", fn: hasMessage},

	{Name: "leave", Group: "loop", Effect: "( -- )", leave: true},
}

func drop(m *machine) error {
	_, err := m.pop()
	return err
}

func dup(m *machine) error {
	v, err := m.state.Peek()
	if err != nil {
		return err
	}
	return m.push(v)
}

func swap(m *machine) error {
	b, err := m.pop()
	if err != nil {
		return err
	}
	a, err := m.pop()
	if err != nil {
		return err
	}
	return m.pushAll(b, a)
}

func rot(m *machine) error {
	c, err := m.pop()
	if err != nil {
		return err
	}
	b, err := m.pop()
	if err != nil {
		return err
	}
	a, err := m.pop()
	if err != nil {
		return err
	}
	return m.pushAll(b, c, a)
}

// popInts pops the right hand operand b, then the left hand operand a.
func popInts(m *machine) (a, b int, err error) {
	if b, err = m.popInt(); err == nil {
		a, err = m.popInt()
	}
	return a, b, err
}

func intOp(op func(a, b int) int) func(m *machine) error {
	return func(m *machine) error {
		a, b, err := popInts(m)
		if err != nil {
			return err
		}
		return m.push(Int(op(a, b)))
	}
}

func intCmp(cmp func(a, b int) bool) func(m *machine) error {
	return func(m *machine) error {
		a, b, err := popInts(m)
		if err != nil {
			return err
		}
		return m.push(Bool(cmp(a, b)))
	}
}

func divMod(m *machine) error {
	a, b, err := popInts(m)
	if err != nil {
		return err
	}
	if b == 0 {
		return ErrDivideByZero
	}
	return m.pushAll(Int(a%b), Int(a/b))
}

func equals(negate bool) func(m *machine) error {
	return func(m *machine) error {
		b, err := m.pop()
		if err != nil {
			return err
		}
		a, err := m.pop()
		if err != nil {
			return err
		}
		eq, err := a.Equal(b)
		if err != nil {
			return err
		}
		return m.push(Bool(eq != negate))
	}
}

func boolOp(op func(p, q bool) bool) func(m *machine) error {
	return func(m *machine) error {
		q, err := m.popBool()
		if err != nil {
			return err
		}
		p, err := m.popBool()
		if err != nil {
			return err
		}
		return m.push(Bool(op(p, q)))
	}
}

func invert(m *machine) error {
	p, err := m.popBool()
	if err != nil {
		return err
	}
	return m.push(Bool(!p))
}

func store(m *machine) error {
	name, err := m.popVar()
	if err != nil {
		return err
	}
	v, err := m.pop()
	if err != nil {
		return err
	}
	return m.state.Set(name, v)
}

func load(m *machine) error {
	name, err := m.popVar()
	if err != nil {
		return err
	}
	v, err := m.state.Get(name)
	if err != nil {
		return err
	}
	return m.push(v)
}

func printValue(m *machine) error {
	v, err := m.pop()
	if err != nil {
		return err
	}
	return m.env.print(v)
}

func random(m *machine) error {
	bound, err := m.popInt()
	if err != nil {
		return err
	}
	if bound < 0 {
		return ErrBadBound
	}
	return m.push(Int(m.randN(bound)))
}

func move(m *machine) error {
	agent, err := m.agent()
	if err != nil {
		return err
	}
	agent.Move()
	return nil
}

func turn(m *machine) error {
	agent, err := m.agent()
	if err != nil {
		return err
	}
	n, err := m.popInt()
	if err != nil {
		return err
	}
	agent.Turn(n)
	return nil
}

func shoot(m *machine) error {
	agent, err := m.agent()
	if err != nil {
		return err
	}
	direction, distance, err := popInts(m)
	if err != nil {
		return err
	}
	agent.Shoot(direction, distance)
	return nil
}

func scan(m *machine) error {
	agent, err := m.agent()
	if err != nil {
		return err
	}
	return m.push(Int(agent.Scan()))
}

func check(m *machine) error {
	agent, err := m.agent()
	if err != nil {
		return err
	}
	direction, err := m.popInt()
	if err != nil {
		return err
	}
	occ := agent.Check(direction)
	if !occ.Valid() {
		return ErrMalformedResponse
	}
	return m.push(Text(occ.String()))
}

func identify(m *machine) error {
	agent, err := m.agent()
	if err != nil {
		return err
	}
	index, err := m.popInt()
	if err != nil {
		return err
	}
	id := agent.Identify(index)
	if id.Team == "" {
		return ErrMalformedResponse
	}
	return m.pushAll(Int(id.Health), Int(id.Direction), Int(id.Range), Text(id.Team))
}

func statusInt(get func(DataSource) int) func(m *machine) error {
	return func(m *machine) error {
		source, err := m.status()
		if err != nil {
			return err
		}
		return m.push(Int(get(source)))
	}
}

func statusText(get func(DataSource) string) func(m *machine) error {
	return func(m *machine) error {
		source, err := m.status()
		if err != nil {
			return err
		}
		return m.push(Text(get(source)))
	}
}

func send(m *machine) error {
	agent, err := m.agent()
	if err != nil {
		return err
	}
	v, err := m.pop()
	if err != nil {
		return err
	}
	kind, err := m.popKind()
	if err != nil {
		return err
	}
	return m.push(Bool(agent.SendMessage(kind, v)))
}

func receive(m *machine) error {
	kind, err := m.popKind()
	if err != nil {
		return err
	}
	v, err := m.state.Receive(kind)
	if err != nil {
		return err
	}
	return m.push(v)
}

func hasMessage(m *machine) error {
	kind, err := m.popKind()
	if err != nil {
		return err
	}
	has, err := m.state.HasMessage(kind)
	if err != nil {
		return err
	}
	return m.push(Bool(has))
}
