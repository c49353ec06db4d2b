package arena

import (
	"fmt"
	"sync"

	"github.com/jcorbin/robotforth"
)

// Agent runs one script instance in the arena. It implements the listener
// and data source for its runs, recording every action as an event.
type Agent struct {
	spec AgentSpec

	inst   *robotforth.Instance
	router *Router

	mu        sync.Mutex
	direction int
	movesLeft int
	events    []string
	runs      int
	faults    []error
}

var (
	_ robotforth.Listener   = (*Agent)(nil)
	_ robotforth.DataSource = (*Agent)(nil)
)

func (ag *Agent) eventf(format string, args ...interface{}) {
	ag.mu.Lock()
	defer ag.mu.Unlock()
	ag.events = append(ag.events, fmt.Sprintf(format, args...))
}

// Events returns the actions recorded so far.
func (ag *Agent) Events() []string {
	ag.mu.Lock()
	defer ag.mu.Unlock()
	return append([]string(nil), ag.events...)
}

// Faults returns the faults of every interrupted run.
func (ag *Agent) Faults() []error {
	ag.mu.Lock()
	defer ag.mu.Unlock()
	return append([]error(nil), ag.faults...)
}

// Runs returns how many runs have finished.
func (ag *Agent) Runs() int {
	ag.mu.Lock()
	defer ag.mu.Unlock()
	return ag.runs
}

// Direction returns the agent's current facing, in [0, 6).
func (ag *Agent) Direction() int {
	ag.mu.Lock()
	defer ag.mu.Unlock()
	return ag.direction
}

// Spec returns the agent's scenario description.
func (ag *Agent) Spec() AgentSpec { return ag.spec }

// Name returns the agent's unique name.
func (ag *Agent) Name() string { return ag.spec.Name }

// Instance returns the script instance the agent runs.
func (ag *Agent) Instance() *robotforth.Instance { return ag.inst }

func (ag *Agent) startTurn() {
	ag.mu.Lock()
	defer ag.mu.Unlock()
	ag.movesLeft = ag.spec.Moves
}

func (ag *Agent) Turn(direction int) {
	ag.mu.Lock()
	ag.direction = ((ag.direction+direction)%6 + 6) % 6
	ag.mu.Unlock()
	ag.eventf("turn %d", direction)
}

func (ag *Agent) Move() {
	ag.mu.Lock()
	if ag.movesLeft > 0 {
		ag.movesLeft--
	}
	ag.mu.Unlock()
	ag.eventf("move")
}

func (ag *Agent) Shoot(direction, distance int) { ag.eventf("shoot %d %d", direction, distance) }

func (ag *Agent) Scan() int {
	ag.eventf("scan")
	return len(ag.spec.Sightings)
}

func (ag *Agent) Identify(index int) robotforth.Identification {
	ag.eventf("identify %d", index)
	if index < 0 || index >= len(ag.spec.Sightings) {
		return robotforth.Identification{}
	}
	s := ag.spec.Sightings[index]
	return robotforth.Identification{Team: s.Team, Range: s.Range, Direction: s.Direction, Health: s.Health}
}

func (ag *Agent) Check(direction int) robotforth.Occupancy {
	ag.eventf("check %d", direction)
	occ, _ := robotforth.ParseOccupancy(ag.spec.Check)
	return occ
}

func (ag *Agent) SendMessage(kind string, v robotforth.Value) bool {
	sent := ag.router.Post(ag, kind, v)
	ag.eventf("send %v %v %v", kind, v.Literal(), sent)
	return sent
}

func (ag *Agent) Interrupted(err error) {
	ag.mu.Lock()
	defer ag.mu.Unlock()
	ag.faults = append(ag.faults, err)
}

func (ag *Agent) Finished() {
	ag.mu.Lock()
	defer ag.mu.Unlock()
	ag.runs++
}

func (ag *Agent) Health() int     { return ag.spec.Health }
func (ag *Agent) HealthLeft() int { return ag.spec.Health }
func (ag *Agent) Moves() int      { return ag.spec.Moves }
func (ag *Agent) Attack() int     { return ag.spec.Attack }
func (ag *Agent) Range() int      { return ag.spec.Range }
func (ag *Agent) Team() string    { return ag.spec.Team }
func (ag *Agent) Kind() string    { return ag.spec.Kind }

func (ag *Agent) MovesLeft() int {
	ag.mu.Lock()
	defer ag.mu.Unlock()
	return ag.movesLeft
}
