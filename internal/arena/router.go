package arena

import (
	"sync"

	"github.com/jcorbin/robotforth"
)

// Router carries messages between teammates. Messages posted during a turn
// are held until the turn ends, then delivered into the recipient's mailbox
// for the sender's kind, so that no state is touched by another agent's run.
type Router struct {
	mu      sync.Mutex
	agents  []*Agent
	room    map[mailKey]int
	pending []letter
}

type mailKey struct {
	to   *Agent
	from string
}

type letter struct {
	mailKey
	value robotforth.Value
}

// open snapshots mailbox room before a turn's runs start.
func (r *Router) open(agents []*Agent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.agents = agents
	r.room = make(map[mailKey]int)
	r.pending = r.pending[:0]
	for _, to := range agents {
		st := to.inst.State()
		for _, kind := range st.Kinds() {
			r.room[mailKey{to, kind}] = st.Room(kind)
		}
	}
}

// Post queues a message from one agent to the teammate of the given kind,
// returning false if there is no such teammate or its mailbox is full.
func (r *Router) Post(from *Agent, kind string, v robotforth.Value) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, to := range r.agents {
		if to == from || to.spec.Team != from.spec.Team || to.spec.Kind != kind {
			continue
		}
		key := mailKey{to, from.spec.Kind}
		if r.room[key] <= 0 {
			return false
		}
		r.room[key]--
		r.pending = append(r.pending, letter{key, v})
		return true
	}
	return false
}

// deliver moves every queued message into its mailbox; it must only be
// called while no runs are active.
func (r *Router) deliver() (delivered int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.pending {
		if ok, _ := l.to.inst.State().Send(l.from, l.value); ok {
			delivered++
		}
	}
	r.pending = r.pending[:0]
	return delivered
}
