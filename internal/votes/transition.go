// Package votes implements the vote ledger: a per-voter toggle over
// {none, up, down} with counters on the voted entity kept in lockstep.
//
// The transition logic is a pure function so the full table can be
// enumerated in tests; applying it atomically against the database is the
// Ledger's job.
package votes

import "github.com/MITHU9/forum-hub-backend/internal/models"

// Kind is a requested vote direction. Values match the stored vote_type
// encoding (+1 up, -1 down).
type Kind int

const (
	Up   Kind = models.VoteTypeUp
	Down Kind = models.VoteTypeDown
)

func (k Kind) Valid() bool {
	return k == Up || k == Down
}

// Opposite returns the other direction.
func (k Kind) Opposite() Kind {
	return -k
}

func (k Kind) String() string {
	switch k {
	case Up:
		return "upvote"
	case Down:
		return "downvote"
	default:
		return "invalid"
	}
}

// State is a voter's current recorded vote on one entity.
type State int

const (
	None      State = 0
	VotedUp   State = State(Up)
	VotedDown State = State(Down)
)

// Outcome names the transition that was taken.
type Outcome int

const (
	Added Outcome = iota
	Removed
	Switched
)

// Delta is the counter adjustment paired with a transition.
type Delta struct {
	Up   int
	Down int
}

// Transition resolves a requested vote against the voter's current state.
// It is total over the six reachable (state, kind) pairs: same direction
// toggles off, opposite direction switches, no prior vote adds.
func Transition(cur State, req Kind) (next State, d Delta, o Outcome) {
	switch cur {
	case State(req):
		next, o = None, Removed
		if req == Up {
			d = Delta{Up: -1}
		} else {
			d = Delta{Down: -1}
		}
	case None:
		next, o = State(req), Added
		if req == Up {
			d = Delta{Up: +1}
		} else {
			d = Delta{Down: +1}
		}
	default:
		next, o = State(req), Switched
		if req == Up {
			d = Delta{Up: +1, Down: -1}
		} else {
			d = Delta{Up: -1, Down: +1}
		}
	}
	return next, d, o
}

// Message renders the transition description sent back to clients.
func (o Outcome) Message(req Kind) string {
	switch o {
	case Added:
		if req == Up {
			return "Upvote added"
		}
		return "Downvote added"
	case Removed:
		if req == Up {
			return "Upvote removed"
		}
		return "Downvote removed"
	default:
		if req == Up {
			return "Vote switched to upvote"
		}
		return "Vote switched to downvote"
	}
}
