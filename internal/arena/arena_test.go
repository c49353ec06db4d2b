package arena

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/robotforth"
	"github.com/jcorbin/robotforth/internal/scriptload"
)

type mapLoader map[string]string

func (ml mapLoader) Load(name string) (*robotforth.Program, error) {
	src, ok := ml[name]
	if !ok {
		return nil, fmt.Errorf("no script %q", name)
	}
	return robotforth.NewBuilder().BuildString(name, src)
}

func TestScenario_defaults(t *testing.T) {
	sc, err := ParseScenario([]byte(`
agents:
  - {script: a, team: RED, kind: TANK}
  - {script: a, team: BLUE, kind: MEDIC, health: 5}
`))
	require.NoError(t, err)
	assert.Equal(t, 1, sc.Turns)
	assert.Equal(t, "RED-TANK", sc.Agents[0].Name)
	assert.Equal(t, KindStats["TANK"], sc.Agents[0].Stats)
	assert.Equal(t, Stats{Health: 5}, sc.Agents[1].Stats)
	assert.Equal(t, "EMPTY", sc.Agents[1].Check)
}

func TestScenario_invalid(t *testing.T) {
	for _, tc := range []struct {
		name string
		yaml string
		err  string
	}{
		{"empty", `name: nothing`, "no agents"},
		{"syntax", `agents: [`, "failed to parse scenario"},
		{"negative turns", "turns: -1\nagents: [{script: a, team: R, kind: K}]", "turns must not be negative"},
		{"missing script", "agents: [{team: R, kind: K}]", "needs a script"},
		{"duplicate", "agents: [{name: x, script: a, team: R, kind: K}, {name: x, script: a, team: R, kind: K}]", `duplicate agent name "x"`},
		{"bad check", "agents: [{script: a, team: R, kind: K, check: MAYBE}]", `invalid occupancy "MAYBE"`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tc.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.err)
		})
	}
}

func TestArena_skirmish(t *testing.T) {
	sc, err := LoadScenario("testdata/skirmish.yaml")
	require.NoError(t, err)
	ld, err := scriptload.NewDir("", robotforth.NewBuilder(), 8)
	require.NoError(t, err)

	var logs []string
	a, err := New(sc, ld, func(mess string, args ...interface{}) {
		logs = append(logs, fmt.Sprintf(mess, args...))
	})
	require.NoError(t, err)
	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, 2, a.Turn())
	assert.Contains(t, logs, "turn 1 done, delivered 2 messages")

	for _, sum := range a.Summaries() {
		assert.Equal(t, 2, sum.Runs, "%v runs", sum.Name)
		assert.Equal(t, 0, sum.Faults, "%v faults: %v", sum.Name, sum.LastFault)
	}

	scout := a.Agent("red-scout")
	require.NotNil(t, scout)
	assert.Equal(t, robotforth.Int(2), scout.Instance().State().Vars()["sightings"])
	assert.Equal(t, 2, scout.Instance().State().Pending("SNIPER"), "expected unread sniper messages")
	assert.Contains(t, scout.Events(), "send TANK 2 true")

	sniper := a.Agent("red-sniper")
	assert.Equal(t, 2, sniper.Direction())
	assert.Equal(t, []string{
		"scan", "identify 0", "identify 1", "shoot 3 2", "turn 1", `send SCOUT ."sniper holding" true`,
	}, sniper.Events()[:6])

	tank := a.Agent("red-tank")
	assert.Equal(t, robotforth.Int(2), tank.Instance().State().Vars()["reports"])
	assert.Equal(t, 1, tank.Instance().State().Pending("SCOUT"), "expected the last report still unread")
	assert.Equal(t, []string{"scan", "identify 0", "shoot 5 1", "move"}, tank.Events()[:4])
}

func TestArena_faults(t *testing.T) {
	sc, err := ParseScenario([]byte(`
turns: 3
agents:
  - {name: reader, script: reader, team: RED, kind: TANK}
  - {name: quiet, script: quiet, team: RED, kind: SCOUT}
`))
	require.NoError(t, err)
	a, err := New(sc, mapLoader{
		"reader": `: play ."SCOUT" recv! drop ;`,
		"quiet":  `: play ;`,
	}, nil)
	require.NoError(t, err)
	require.NoError(t, a.Run(context.Background()))

	reader := a.Agent("reader")
	assert.Equal(t, 3, reader.Runs())
	faults := reader.Faults()
	require.Len(t, faults, 3)
	for _, err := range faults {
		assert.ErrorIs(t, err, robotforth.ErrMailboxEmpty)
	}
	assert.Empty(t, a.Agent("quiet").Faults())
}

func TestArena_mailboxFull(t *testing.T) {
	sc, err := ParseScenario([]byte(`
agents:
  - {name: chatty, script: chatty, team: RED, kind: SCOUT}
  - {name: tank, script: quiet, team: RED, kind: TANK}
  - {name: enemy, script: quiet, team: BLUE, kind: SNIPER}
`))
	require.NoError(t, err)
	a, err := New(sc, mapLoader{
		"chatty": `: play 7 0 do ."TANK" I send! . loop ."SNIPER" 1 send! . ;`,
		"quiet":  `: play ;`,
	}, nil)
	require.NoError(t, err)
	require.NoError(t, a.Step(context.Background()))

	events := a.Agent("chatty").Events()
	require.Len(t, events, 9)
	for i := 0; i < 6; i++ {
		assert.Equal(t, fmt.Sprintf("send TANK %d true", i), events[i])
	}
	assert.Equal(t, "send TANK 6 false", events[6])
	assert.Equal(t, "send TANK 7 false", events[7])
	assert.Equal(t, "send SNIPER 1 false", events[8], "expected no message across teams")
	assert.Equal(t, 6, a.Agent("tank").Instance().State().Pending("SCOUT"))
}

func TestNew_loadError(t *testing.T) {
	sc, err := ParseScenario([]byte(`agents: [{name: x, script: missing, team: R, kind: K}]`))
	require.NoError(t, err)
	_, err = New(sc, mapLoader{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `agent "x"`)
	assert.False(t, errors.Is(err, robotforth.ErrBusy))
}
