package votes

import "testing"

// TestTransitionTable enumerates every reachable (state, request) pair.
// There are exactly six; nothing else may be produced.
func TestTransitionTable(t *testing.T) {
	cases := []struct {
		name     string
		cur      State
		req      Kind
		wantNext State
		wantUp   int
		wantDown int
		wantOut  Outcome
		wantMsg  string
	}{
		{"none+up adds upvote", None, Up, VotedUp, +1, 0, Added, "Upvote added"},
		{"none+down adds downvote", None, Down, VotedDown, 0, +1, Added, "Downvote added"},
		{"up+up removes upvote", VotedUp, Up, None, -1, 0, Removed, "Upvote removed"},
		{"up+down switches to downvote", VotedUp, Down, VotedDown, -1, +1, Switched, "Vote switched to downvote"},
		{"down+down removes downvote", VotedDown, Down, None, 0, -1, Removed, "Downvote removed"},
		{"down+up switches to upvote", VotedDown, Up, VotedUp, +1, -1, Switched, "Vote switched to upvote"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, d, out := Transition(tc.cur, tc.req)
			if next != tc.wantNext {
				t.Fatalf("next state = %d, want %d", next, tc.wantNext)
			}
			if d.Up != tc.wantUp || d.Down != tc.wantDown {
				t.Fatalf("delta = {%d,%d}, want {%d,%d}", d.Up, d.Down, tc.wantUp, tc.wantDown)
			}
			if out != tc.wantOut {
				t.Fatalf("outcome = %d, want %d", out, tc.wantOut)
			}
			if msg := out.Message(tc.req); msg != tc.wantMsg {
				t.Fatalf("message = %q, want %q", msg, tc.wantMsg)
			}
		})
	}
}

// TestToggleIdempotence: two identical casts return to none with a net
// zero counter delta, from any starting point the pair is reachable from.
func TestToggleIdempotence(t *testing.T) {
	for _, k := range []Kind{Up, Down} {
		s1, d1, _ := Transition(None, k)
		s2, d2, _ := Transition(s1, k)
		if s2 != None {
			t.Fatalf("%s twice: state = %d, want none", k, s2)
		}
		if d1.Up+d2.Up != 0 || d1.Down+d2.Down != 0 {
			t.Fatalf("%s twice: net delta {%d,%d}, want {0,0}", k, d1.Up+d2.Up, d1.Down+d2.Down)
		}
	}
}

// TestTransitionNextStateMatchesDelta: across any sequence of casts the
// running counter sum equals the count implied by the final state. A
// random-ish walk over all inputs keeps the invariant visible.
func TestTransitionSequenceInvariant(t *testing.T) {
	seq := []Kind{Up, Up, Down, Down, Up, Down, Up, Up, Down}

	state := None
	up, down := 0, 0
	for i, k := range seq {
		var d Delta
		state, d, _ = Transition(state, k)
		up += d.Up
		down += d.Down

		wantUp, wantDown := 0, 0
		switch state {
		case VotedUp:
			wantUp = 1
		case VotedDown:
			wantDown = 1
		}
		if up != wantUp || down != wantDown {
			t.Fatalf("step %d: counters {%d,%d}, state implies {%d,%d}", i, up, down, wantUp, wantDown)
		}
	}
}

func TestKindHelpers(t *testing.T) {
	if Up.Opposite() != Down || Down.Opposite() != Up {
		t.Fatal("opposite kinds wrong")
	}
	if !Up.Valid() || !Down.Valid() || Kind(0).Valid() || Kind(2).Valid() {
		t.Fatal("kind validity wrong")
	}
	if Up.String() != "upvote" || Down.String() != "downvote" {
		t.Fatal("kind strings wrong")
	}
}
