package robotforth

import "fmt"

// EntryWord names the user word where every run begins.
const EntryWord = "play"

// CounterVariable is the variable bound to the current counted loop index.
const CounterVariable = "I"

// DefaultMailboxCapacity is how many messages a mailbox holds by default.
const DefaultMailboxCapacity = 6

// DefaultKinds are the agent kinds known when no WithKinds option is given.
var DefaultKinds = []string{"SCOUT", "SNIPER", "TANK"}

const tracerName = "github.com/jcorbin/robotforth"

// Listener receives the actions of a running script and answers its
// queries about the world.
type Listener interface {
	Turn(direction int)
	Move()
	Shoot(direction, distance int)
	Scan() int
	Identify(index int) Identification
	Check(direction int) Occupancy
	SendMessage(kind string, v Value) bool

	// Interrupted is called when a run faults, just before Finished.
	Interrupted(err error)
	// Finished is called once after every run.
	Finished()
}

// DataSource reports the status of the agent running a script.
type DataSource interface {
	Health() int
	HealthLeft() int
	Moves() int
	MovesLeft() int
	Attack() int
	Range() int
	Team() string
	Kind() string
}

// Identification describes an agent found by a scan.
type Identification struct {
	Team      string
	Range     int
	Direction int
	Health    int
}

// Occupancy is the result of checking an adjacent space.
type Occupancy uint8

// Occupancy values; the zero value is not a valid response.
const (
	Empty Occupancy = iota + 1
	Occupied
	OutOfBounds
)

func (occ Occupancy) Valid() bool { return occ >= Empty && occ <= OutOfBounds }

func (occ Occupancy) String() string {
	switch occ {
	case Empty:
		return "EMPTY"
	case Occupied:
		return "OCCUPIED"
	case OutOfBounds:
		return "OUT OF BOUNDS"
	default:
		return fmt.Sprintf("Occupancy(%d)", uint8(occ))
	}
}

// ParseOccupancy is the inverse of Occupancy.String.
func ParseOccupancy(s string) (Occupancy, error) {
	for occ := Empty; occ <= OutOfBounds; occ++ {
		if occ.String() == s {
			return occ, nil
		}
	}
	return 0, fmt.Errorf("invalid occupancy %q", s)
}
