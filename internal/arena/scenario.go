// Package arena runs robot scripts through scripted turns without a game
// board, for trying scripts out and exercising the driver concurrently.
package arena

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jcorbin/robotforth"
)

// Scenario describes the agents of one arena and how long it runs.
type Scenario struct {
	Name     string      `yaml:"name"`
	Turns    int         `yaml:"turns"`
	Parallel int         `yaml:"parallel"` // concurrent runs per turn, 0 for no limit
	Agents   []AgentSpec `yaml:"agents"`
}

// AgentSpec describes one agent: the script it runs, its status, and what
// the world reports back to it.
type AgentSpec struct {
	Name   string `yaml:"name"`
	Script string `yaml:"script"`
	Team   string `yaml:"team"`
	Kind   string `yaml:"kind"`

	Stats `yaml:",inline"`

	// Sightings are reported by scan! and identify!, in index order.
	Sightings []Sighting `yaml:"sightings"`
	// Check is the occupancy reported for every direction.
	Check string `yaml:"check"`
}

// Stats are an agent's fixed abilities; zero fields default from its kind.
type Stats struct {
	Attack int `yaml:"attack"`
	Health int `yaml:"health"`
	Moves  int `yaml:"moves"`
	Range  int `yaml:"range"`
}

// Sighting is another agent as seen by a scan.
type Sighting struct {
	Team      string `yaml:"team"`
	Range     int    `yaml:"range"`
	Direction int    `yaml:"direction"`
	Health    int    `yaml:"health"`
}

// KindStats are the default stats of the standard agent kinds.
var KindStats = map[string]Stats{
	"SCOUT":  {Attack: 1, Health: 1, Moves: 3, Range: 2},
	"SNIPER": {Attack: 2, Health: 2, Moves: 2, Range: 3},
	"TANK":   {Attack: 3, Health: 3, Moves: 1, Range: 1},
}

// Teams are the standard team colors.
var Teams = []string{"RED", "GREEN", "YELLOW", "BLUE", "ORANGE", "PURPLE"}

// LoadScenario reads a YAML scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	return sc, nil
}

// ParseScenario decodes and validates a YAML scenario, filling in defaults.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := sc.Normalize(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Normalize validates the scenario, filling in defaults from each agent's kind.
func (sc *Scenario) Normalize() error {
	if sc.Turns == 0 {
		sc.Turns = 1
	}
	if sc.Turns < 0 {
		return fmt.Errorf("turns must not be negative, got %d", sc.Turns)
	}
	if len(sc.Agents) == 0 {
		return errors.New("scenario has no agents")
	}
	names := make(map[string]bool, len(sc.Agents))
	for i := range sc.Agents {
		spec := &sc.Agents[i]
		if spec.Name == "" {
			spec.Name = fmt.Sprintf("%v-%v", spec.Team, spec.Kind)
		}
		if names[spec.Name] {
			return fmt.Errorf("duplicate agent name %q", spec.Name)
		}
		names[spec.Name] = true
		if spec.Script == "" || spec.Team == "" || spec.Kind == "" {
			return fmt.Errorf("agent %q needs a script, team, and kind", spec.Name)
		}
		def := KindStats[spec.Kind]
		if spec.Attack == 0 {
			spec.Attack = def.Attack
		}
		if spec.Health == 0 {
			spec.Health = def.Health
		}
		if spec.Moves == 0 {
			spec.Moves = def.Moves
		}
		if spec.Range == 0 {
			spec.Range = def.Range
		}
		if spec.Check == "" {
			spec.Check = robotforth.Empty.String()
		}
		if _, err := robotforth.ParseOccupancy(spec.Check); err != nil {
			return fmt.Errorf("agent %q: %w", spec.Name, err)
		}
	}
	return nil
}
