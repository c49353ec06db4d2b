package robotforth

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a program's variables and word trees to w. Calls to other
// user words are shown by name, since their bodies are shared.
func Dump(w io.Writer, prog *Program) error {
	dump := progDumper{
		prog:  prog,
		out:   &errWriter{w: w},
		names: make(map[*Sequence]string, len(prog.words)),
	}
	for name, seq := range prog.words {
		dump.names[seq] = name
	}
	dump.dump()
	return dump.out.err
}

// DumpState writes a state's stack, variables, and pending mail to w.
func DumpState(w io.Writer, st *State) error {
	out := &errWriter{w: w}
	fmt.Fprintf(out, "# State\n")
	fmt.Fprintf(out, "  stack: %v\n", formatValues(st.stack))
	fmt.Fprintf(out, "  vars:\n")
	for _, name := range st.VarNames() {
		fmt.Fprintf(out, "    %v = %v\n", name, st.vars[name].Literal())
	}
	fmt.Fprintf(out, "  mail:\n")
	for _, kind := range st.kinds {
		box := st.boxes[kind]
		fmt.Fprintf(out, "    %v %v/%v %v\n", kind, len(box.queue), box.capacity, formatValues(box.queue))
	}
	return out.err
}

type progDumper struct {
	prog  *Program
	out   *errWriter
	names map[*Sequence]string
}

func (dump progDumper) dump() {
	fmt.Fprintf(dump.out, "# Program %v\n", dump.prog.Name)
	fmt.Fprintf(dump.out, "  vars:")
	for _, name := range (&State{vars: dump.prog.vars}).VarNames() {
		fmt.Fprintf(dump.out, " %v=%v", name, dump.prog.vars[name].Literal())
	}
	fmt.Fprintf(dump.out, "\n")
	for _, name := range dump.prog.Words() {
		fmt.Fprintf(dump.out, "  : %v\n", name)
		dump.ops(dump.prog.words[name], 2)
		fmt.Fprintf(dump.out, "  ;\n")
	}
}

func (dump progDumper) ops(seq *Sequence, depth int) {
	for _, op := range seq.Ops {
		dump.op(op, depth)
	}
}

func (dump progDumper) op(op Op, depth int) {
	indent := strings.Repeat("  ", depth)
	switch op := op.(type) {
	case *Sequence:
		if name, ok := dump.names[op]; ok {
			fmt.Fprintf(dump.out, "%v%v\n", indent, name)
			return
		}
		dump.ops(op, depth)
	case Conditional:
		fmt.Fprintf(dump.out, "%vif\n", indent)
		dump.ops(op.Then, depth+1)
		if len(op.Else.Ops) > 0 {
			fmt.Fprintf(dump.out, "%velse\n", indent)
			dump.ops(op.Else, depth+1)
		}
		fmt.Fprintf(dump.out, "%vthen\n", indent)
	case GuardedLoop:
		fmt.Fprintf(dump.out, "%vbegin\n", indent)
		dump.ops(op.Body, depth+1)
		fmt.Fprintf(dump.out, "%vuntil\n", indent)
	case CountedLoop:
		fmt.Fprintf(dump.out, "%vdo\n", indent)
		dump.ops(op.Body, depth+1)
		fmt.Fprintf(dump.out, "%vloop\n", indent)
	default:
		fmt.Fprintf(dump.out, "%v%v\n", indent, formatOp(op))
	}
}

func formatOp(op Op) string {
	switch op := op.(type) {
	case Literal:
		return op.Value.Literal()
	case *Builtin:
		return op.Name
	case *Sequence:
		return formatOps(op)
	case Conditional:
		if len(op.Else.Ops) == 0 {
			return fmt.Sprintf("if %v then", formatOps(op.Then))
		}
		return fmt.Sprintf("if %v else %v then", formatOps(op.Then), formatOps(op.Else))
	case GuardedLoop:
		return fmt.Sprintf("begin %v until", formatOps(op.Body))
	case CountedLoop:
		return fmt.Sprintf("do %v loop", formatOps(op.Body))
	default:
		return fmt.Sprintf("%T", op)
	}
}

// formatOps renders a sequence on one line, bracketing nested sequences.
func formatOps(seq *Sequence) string {
	parts := make([]string, len(seq.Ops))
	for i, op := range seq.Ops {
		if sub, ok := op.(*Sequence); ok {
			parts[i] = "[" + formatOps(sub) + "]"
		} else {
			parts[i] = formatOp(op)
		}
	}
	return strings.Join(parts, " ")
}

func formatValues(vs []Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.Literal()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// errWriter retains the first write error, dropping later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}
