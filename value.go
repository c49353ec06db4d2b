package robotforth

import (
	"fmt"
	"strconv"
)

// Kind tags the variant held by a Value.
type Kind uint8

// Value kinds; the zero Kind marks an absent value.
const (
	KindAbsent Kind = iota
	KindInt
	KindBool
	KindText
	KindVar
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindText:
		return "text"
	case KindVar:
		return "variable"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is an immutable tagged union over integers, booleans, text, and
// variable references. The zero Value is absent and may not be pushed or
// stored.
type Value struct {
	kind Kind
	num  int
	str  string
}

// Int returns an integer value.
func Int(n int) Value { return Value{kind: KindInt, num: n} }

// Bool returns a boolean value.
func Bool(b bool) Value {
	v := Value{kind: KindBool}
	if b {
		v.num = 1
	}
	return v
}

// Text returns a text value.
func Text(s string) Value { return Value{kind: KindText, str: s} }

// Var returns a reference to the named variable; an empty name yields the
// absent value.
func Var(name string) Value {
	if name == "" {
		return Value{}
	}
	return Value{kind: KindVar, str: name}
}

func (v Value) Kind() Kind  { return v.kind }
func (v Value) Valid() bool { return v.kind != KindAbsent }

func (v Value) AsInt() (int, error) {
	if v.kind != KindInt {
		return 0, &TypeError{KindInt, v.kind}
	}
	return v.num, nil
}

func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, &TypeError{KindBool, v.kind}
	}
	return v.num != 0, nil
}

func (v Value) AsText() (string, error) {
	if v.kind != KindText {
		return "", &TypeError{KindText, v.kind}
	}
	return v.str, nil
}

func (v Value) AsVar() (string, error) {
	if v.kind != KindVar {
		return "", &TypeError{KindVar, v.kind}
	}
	return v.str, nil
}

// Equal compares two values of the same kind; comparing different kinds is
// a type mismatch.
func (v Value) Equal(other Value) (bool, error) {
	if v.kind != other.kind {
		return false, &TypeError{v.kind, other.kind}
	}
	return v.num == other.num && v.str == other.str, nil
}

// String formats the value the way the print word shows it.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.Itoa(v.num)
	case KindBool:
		return strconv.FormatBool(v.num != 0)
	case KindText, KindVar:
		return v.str
	default:
		return "<absent>"
	}
}

// Literal formats the value as script source.
func (v Value) Literal() string {
	if v.kind == KindText {
		return `."` + v.str + `"`
	}
	return v.String()
}
