package robotforth

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptTestCases []scriptTestCase

func (stcs scriptTestCases) run(t *testing.T) {
	{
		var exclusive []scriptTestCase
		for _, stc := range stcs {
			if stc.exclusive {
				exclusive = append(exclusive, stc)
			}
		}
		if len(exclusive) > 0 {
			stcs = exclusive
		}
	}
	for _, stc := range stcs {
		if !t.Run(stc.name, stc.run) {
			return
		}
	}
}

func scriptTest(name string) (stc scriptTestCase) {
	stc.name = name
	return stc
}

type scriptTestCase struct {
	name      string
	opts      []Option
	source    string
	noAgent   bool
	setup     []func(st *State, ma *mockAgent)
	expect    []func(t *testing.T, st *State, ma *mockAgent)
	wantErr   error
	wantAs    interface{}
	buildErr  error
	output    *string
	exclusive bool
}

func (stc scriptTestCase) exclusiveTest() scriptTestCase {
	stc.exclusive = true
	return stc
}

func (stc scriptTestCase) withOptions(opts ...Option) scriptTestCase {
	stc.opts = append(stc.opts, opts...)
	return stc
}

func (stc scriptTestCase) script(lines ...string) scriptTestCase {
	stc.source = strings.Join(lines, "\n")
	return stc
}

// play sets the script to a single entry point definition.
func (stc scriptTestCase) play(body string) scriptTestCase {
	return stc.script(": play " + body + " ;")
}

func (stc scriptTestCase) withoutAgent() scriptTestCase {
	stc.noAgent = true
	return stc
}

func (stc scriptTestCase) withAgent(f func(ma *mockAgent)) scriptTestCase {
	stc.setup = append(stc.setup, func(_ *State, ma *mockAgent) { f(ma) })
	return stc
}

func (stc scriptTestCase) withStack(values ...Value) scriptTestCase {
	stc.setup = append(stc.setup, func(st *State, _ *mockAgent) {
		st.stack = append(st.stack, values...)
	})
	return stc
}

func (stc scriptTestCase) withVar(name string, v Value) scriptTestCase {
	stc.setup = append(stc.setup, func(st *State, _ *mockAgent) {
		st.vars[name] = v
	})
	return stc
}

func (stc scriptTestCase) withMail(kind string, values ...Value) scriptTestCase {
	stc.setup = append(stc.setup, func(st *State, _ *mockAgent) {
		for _, v := range values {
			if _, err := st.Send(kind, v); err != nil {
				panic(err)
			}
		}
	})
	return stc
}

func (stc scriptTestCase) expectError(err error) scriptTestCase {
	stc.wantErr = err
	return stc
}

// expectErrorAs expects a run fault matching target, as by errors.As.
func (stc scriptTestCase) expectErrorAs(target interface{}) scriptTestCase {
	stc.wantAs = target
	return stc
}

func (stc scriptTestCase) expectBuildError(err error) scriptTestCase {
	stc.buildErr = err
	return stc
}

func (stc scriptTestCase) expectStack(values ...Value) scriptTestCase {
	stc.expect = append(stc.expect, func(t *testing.T, st *State, _ *mockAgent) {
		if len(values) == 0 {
			assert.Empty(t, st.Stack(), "expected empty stack")
			return
		}
		assert.Equal(t, values, st.Stack(), "expected stack values")
	})
	return stc
}

func (stc scriptTestCase) expectVar(name string, v Value) scriptTestCase {
	stc.expect = append(stc.expect, func(t *testing.T, st *State, _ *mockAgent) {
		got, err := st.Get(name)
		if assert.NoError(t, err, "expected variable %q bound", name) {
			assert.Equal(t, v, got, "expected variable %q value", name)
		}
	})
	return stc
}

func (stc scriptTestCase) expectPending(kind string, n int) scriptTestCase {
	stc.expect = append(stc.expect, func(t *testing.T, st *State, _ *mockAgent) {
		assert.Equal(t, n, st.Pending(kind), "expected pending %v messages", kind)
	})
	return stc
}

func (stc scriptTestCase) expectEvents(events ...string) scriptTestCase {
	stc.expect = append(stc.expect, func(t *testing.T, _ *State, ma *mockAgent) {
		if events == nil {
			events = []string{}
		}
		got := []string{}
		if ma != nil {
			got = append(got, ma.Events()...)
		}
		assert.Equal(t, events, got, "expected agent events")
	})
	return stc
}

func (stc scriptTestCase) expectOutput(output string) scriptTestCase {
	var out strings.Builder
	stc.opts = append(stc.opts, WithOutput(&out))
	stc.expect = append(stc.expect, func(t *testing.T, _ *State, _ *mockAgent) {
		assert.Equal(t, output, out.String(), "expected output")
	})
	return stc
}

func (stc scriptTestCase) run(t *testing.T) {
	var trace []string
	opts := append([]Option{
		WithLogf(func(mess string, args ...interface{}) {
			trace = append(trace, fmt.Sprintf(mess, args...))
		}),
	}, stc.opts...)
	defer func() {
		if t.Failed() {
			for _, line := range trace {
				t.Log(line)
			}
		}
	}()

	prog, err := NewBuilder(opts...).BuildString(t.Name(), stc.source)
	if stc.buildErr != nil {
		assert.True(t, errors.Is(err, stc.buildErr), "expected build error: %v\ngot: %+v", stc.buildErr, err)
		var ce *CompileError
		assert.ErrorAs(t, err, &ce, "expected build error to carry a location")
		return
	}
	require.NoError(t, err, "unexpected build error")

	inst := prog.NewInstance()
	var ma *mockAgent
	if !stc.noAgent {
		ma = newMockAgent()
	}
	for _, setup := range stc.setup {
		setup(inst.state, ma)
	}

	if ma != nil {
		err = inst.Run(ma, ma)
	} else {
		err = inst.Run(nil, nil)
	}
	if stc.wantErr != nil {
		assert.True(t, errors.Is(err, stc.wantErr), "expected error: %v\ngot: %+v", stc.wantErr, err)
	} else if stc.wantAs != nil {
		assert.ErrorAs(t, err, stc.wantAs)
	} else {
		assert.NoError(t, err, "unexpected run error")
	}

	for _, expect := range stc.expect {
		expect(t, inst.state, ma)
	}
}
