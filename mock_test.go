package robotforth

import (
	"fmt"
	"sync"
)

// mockAgent records every listener call as a short event string, answering
// queries from its configured fields.
type mockAgent struct {
	mu     sync.Mutex
	events []string

	scan      int
	sightings []Identification
	occupancy Occupancy
	accept    bool
	sent      []mockMessage

	health, healthLeft int
	moves, movesLeft   int
	attack, rng        int
	team, kind         string

	faults   []error
	finished int
	panicOn  string
}

type mockMessage struct {
	Kind  string
	Value Value
}

func newMockAgent() *mockAgent {
	return &mockAgent{
		occupancy:  Empty,
		accept:     true,
		health:     3,
		healthLeft: 2,
		moves:      1,
		movesLeft:  1,
		attack:     3,
		rng:        1,
		team:       "RED",
		kind:       "TANK",
	}
}

func (ma *mockAgent) record(what string, args ...interface{}) {
	ma.mu.Lock()
	defer ma.mu.Unlock()
	if len(args) > 0 {
		what = fmt.Sprintf(what, args...)
	}
	ma.events = append(ma.events, what)
	if ma.panicOn != "" && ma.panicOn == what {
		panic(fmt.Sprintf("mock agent refuses to %v", what))
	}
}

func (ma *mockAgent) Events() []string {
	ma.mu.Lock()
	defer ma.mu.Unlock()
	return append([]string(nil), ma.events...)
}

func (ma *mockAgent) Turn(direction int)            { ma.record("turn %d", direction) }
func (ma *mockAgent) Move()                         { ma.record("move") }
func (ma *mockAgent) Shoot(direction, distance int) { ma.record("shoot %d %d", direction, distance) }

func (ma *mockAgent) Scan() int {
	ma.record("scan")
	return ma.scan
}

func (ma *mockAgent) Identify(index int) Identification {
	ma.record("identify %d", index)
	if index < 0 || index >= len(ma.sightings) {
		return Identification{}
	}
	return ma.sightings[index]
}

func (ma *mockAgent) Check(direction int) Occupancy {
	ma.record("check %d", direction)
	return ma.occupancy
}

func (ma *mockAgent) SendMessage(kind string, v Value) bool {
	ma.record("send %v %v", kind, v.Literal())
	if ma.accept {
		ma.sent = append(ma.sent, mockMessage{kind, v})
	}
	return ma.accept
}

func (ma *mockAgent) Interrupted(err error) {
	ma.faults = append(ma.faults, err)
	ma.record("interrupted")
}

func (ma *mockAgent) Finished() {
	ma.finished++
	ma.record("finished")
}

func (ma *mockAgent) Health() int     { return ma.health }
func (ma *mockAgent) HealthLeft() int { return ma.healthLeft }
func (ma *mockAgent) Moves() int      { return ma.moves }
func (ma *mockAgent) MovesLeft() int  { return ma.movesLeft }
func (ma *mockAgent) Attack() int     { return ma.attack }
func (ma *mockAgent) Range() int      { return ma.rng }
func (ma *mockAgent) Team() string    { return ma.team }
func (ma *mockAgent) Kind() string    { return ma.kind }
