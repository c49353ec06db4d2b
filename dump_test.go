package robotforth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}

func TestDump(t *testing.T) {
	prog := buildTest(t, lines(
		"variable n",
		": inc n ? 1 + n ! ;",
		`: play inc true if ."yes" else 2 then false if 3 then begin false until 3 0 do I drop loop ;`,
	))
	var out strings.Builder
	require.NoError(t, Dump(&out, prog))
	assert.Equal(t, lines(
		"# Program "+prog.Name,
		"  vars: I=0 n=0",
		"  : inc",
		"    n",
		"    ?",
		"    1",
		"    +",
		"    n",
		"    !",
		"  ;",
		"  : play",
		"    inc",
		"    true",
		"    if",
		`      ."yes"`,
		"    else",
		"      2",
		"    then",
		"    false",
		"    if",
		"      3",
		"    then",
		"    begin",
		"      false",
		"    until",
		"    3",
		"    0",
		"    do",
		"      I",
		"      drop",
		"    loop",
		"  ;",
	), out.String())
}

func TestDumpState(t *testing.T) {
	st := NewState(DefaultKinds, DefaultMailboxCapacity)
	require.NoError(t, st.Push(Int(1)))
	require.NoError(t, st.Push(Text("x")))
	require.NoError(t, st.Set("n", Int(2)))
	_, err := st.Send("SNIPER", Bool(true))
	require.NoError(t, err)

	var out strings.Builder
	require.NoError(t, DumpState(&out, st))
	assert.Equal(t, lines(
		"# State",
		`  stack: [1 ."x"]`,
		"  vars:",
		"    I = 0",
		"    n = 2",
		"  mail:",
		"    SCOUT 0/6 []",
		"    SNIPER 1/6 [true]",
		"    TANK 0/6 []",
	), out.String())
}

func TestFormatOps(t *testing.T) {
	prog := buildTest(t, ": two 2 ; : play two 1 = if 5 else 6 then begin true until 1 0 do loop ;")
	assert.Equal(t,
		"[2] 1 = if 5 else 6 then begin true until 1 0 do  loop",
		formatOps(prog.Entry()))
}
