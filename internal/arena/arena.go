package arena

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jcorbin/robotforth"
)

// ProgramLoader resolves script names to compiled programs.
type ProgramLoader interface {
	Load(name string) (*robotforth.Program, error)
}

// Arena runs a scenario's agents turn by turn. Within a turn every agent's
// script runs concurrently, each on its own instance.
type Arena struct {
	scenario *Scenario
	agents   []*Agent
	router   Router
	logf     func(mess string, args ...interface{})
	turn     int
}

// New compiles every agent's script and prepares the arena.
func New(sc *Scenario, loader ProgramLoader, logf func(mess string, args ...interface{})) (*Arena, error) {
	if logf == nil {
		logf = func(string, ...interface{}) {}
	}
	a := &Arena{scenario: sc, logf: logf}
	for _, spec := range sc.Agents {
		prog, err := loader.Load(spec.Script)
		if err != nil {
			return nil, fmt.Errorf("agent %q: %w", spec.Name, err)
		}
		a.agents = append(a.agents, &Agent{
			spec:   spec,
			inst:   prog.NewInstance(),
			router: &a.router,
		})
	}
	return a, nil
}

// Agents returns the arena's agents in scenario order.
func (a *Arena) Agents() []*Agent { return append([]*Agent(nil), a.agents...) }

// Agent returns the named agent, or nil.
func (a *Arena) Agent(name string) *Agent {
	for _, ag := range a.agents {
		if ag.spec.Name == name {
			return ag
		}
	}
	return nil
}

// Run plays every remaining turn of the scenario.
func (a *Arena) Run(ctx context.Context) error {
	for a.turn < a.scenario.Turns {
		if err := a.Step(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Step plays one turn: every agent runs its script once, then messages
// posted during the turn are delivered. Script faults are recorded on the
// agent and do not stop the turn.
func (a *Arena) Step(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.turn++
	a.router.open(a.agents)

	g, ctx := errgroup.WithContext(ctx)
	if a.scenario.Parallel > 0 {
		g.SetLimit(a.scenario.Parallel)
	}
	for _, ag := range a.agents {
		ag.startTurn()
		g.Go(func() error {
			res := <-robotforth.Start(ctx, ag.inst, ag, ag)
			if res.Err != nil {
				a.logf("turn %d %v run %v: %v", a.turn, ag.spec.Name, res.ID, res.Err)
			}
			if errors.Is(res.Err, robotforth.ErrBusy) {
				return res.Err
			}
			return nil
		})
	}
	err := g.Wait()
	n := a.router.deliver()
	a.logf("turn %d done, delivered %d messages", a.turn, n)
	return err
}

// Turn returns how many turns have been played.
func (a *Arena) Turn() int { return a.turn }

// Summary is one agent's outcome.
type Summary struct {
	Name, Team, Kind, Script string
	Runs, Faults, Events     int
	LastFault                error
	Pending                  int
}

// Summaries reports every agent's outcome so far.
func (a *Arena) Summaries() []Summary {
	sums := make([]Summary, len(a.agents))
	for i, ag := range a.agents {
		faults := ag.Faults()
		sum := Summary{
			Name:   ag.spec.Name,
			Team:   ag.spec.Team,
			Kind:   ag.spec.Kind,
			Script: ag.spec.Script,
			Runs:   ag.Runs(),
			Faults: len(faults),
			Events: len(ag.Events()),
		}
		if len(faults) > 0 {
			sum.LastFault = faults[len(faults)-1]
		}
		st := ag.inst.State()
		for _, kind := range st.Kinds() {
			sum.Pending += st.Pending(kind)
		}
		sums[i] = sum
	}
	return sums
}
