package votes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	// ErrPostNotFound is returned when the voted post does not exist.
	ErrPostNotFound = errors.New("post not found")
	// ErrCommentNotFound is returned when the voted comment does not exist.
	ErrCommentNotFound = errors.New("comment not found")
	// ErrInvalidVote is returned for a bad id, blank voter or unknown kind.
	ErrInvalidVote = errors.New("invalid vote request")

	// errRaced signals that a concurrent cast by the same voter committed
	// between our conditional statements. The caller retries once.
	errRaced = errors.New("vote raced a concurrent cast")
)

// Result is the outcome of a completed cast: the transition taken and the
// entity's counters after it.
type Result struct {
	Outcome   Outcome `json:"-"`
	Kind      Kind    `json:"-"`
	UpVotes   int     `json:"upvotes"`
	DownVotes int     `json:"downvotes"`
}

func (r Result) Message() string {
	return r.Outcome.Message(r.Kind)
}

// Ledger applies vote transitions atomically. Every cast is a single
// transaction of conditional statements, each predicated on the voter's
// prior recorded type, so two racing casts can never both take the same
// branch. There is no separate read step to go stale.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// target binds the ledger to one votable entity kind.
type target struct {
	entityTable string
	voteTable   string
	fkColumn    string
	notFound    error
}

var (
	postTarget    = target{entityTable: "posts", voteTable: "post_votes", fkColumn: "post_id", notFound: ErrPostNotFound}
	commentTarget = target{entityTable: "comments", voteTable: "comment_votes", fkColumn: "comment_id", notFound: ErrCommentNotFound}
)

// CastPostVote toggles voterEmail's vote on a post.
func (l *Ledger) CastPostVote(ctx context.Context, postID int, voterEmail string, kind Kind) (Result, error) {
	return l.cast(ctx, postTarget, postID, voterEmail, kind)
}

// CastCommentVote toggles voterEmail's vote on a comment.
func (l *Ledger) CastCommentVote(ctx context.Context, commentID int, voterEmail string, kind Kind) (Result, error) {
	return l.cast(ctx, commentTarget, commentID, voterEmail, kind)
}

func (l *Ledger) cast(ctx context.Context, t target, entityID int, voterEmail string, kind Kind) (Result, error) {
	voterEmail = strings.TrimSpace(voterEmail)
	if entityID <= 0 || voterEmail == "" || !kind.Valid() {
		return Result{}, ErrInvalidVote
	}

	res, err := l.castOnce(ctx, t, entityID, voterEmail, kind)
	if errors.Is(err, errRaced) {
		// The same voter's concurrent cast won the insert. Their row is
		// committed now, so one more pass resolves as toggle or switch.
		log.WithFields(log.Fields{t.fkColumn: entityID, "voter": voterEmail}).
			Debug("vote insert lost a race, retrying")
		res, err = l.castOnce(ctx, t, entityID, voterEmail, kind)
	}
	if errors.Is(err, errRaced) {
		return Result{}, fmt.Errorf("cast %s on %s %d: %w", kind, t.entityTable, entityID, err)
	}
	return res, err
}

// castOnce runs one transaction of the conditional chain:
//
//  1. DELETE the voter's row where vote_type equals the request: toggle off.
//  2. UPDATE the voter's row where vote_type equals the opposite: switch.
//  3. INSERT ON CONFLICT DO NOTHING: first vote, or errRaced on conflict.
//
// The branch that affected a row tells us the prior state; Transition
// supplies the matching counter delta, applied relatively in the same
// transaction. Nothing is visible outside the transaction mid-flight and
// every error path rolls the whole cast back.
func (l *Ledger) castOnce(ctx context.Context, t target, entityID int, voterEmail string, kind Kind) (Result, error) {
	out := Result{Kind: kind}

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists bool
		check := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE id = ?)", t.entityTable)
		if err := tx.Raw(check, entityID).Scan(&exists).Error; err != nil {
			return fmt.Errorf("check %s: %w", t.entityTable, err)
		}
		if !exists {
			return t.notFound
		}

		var prior State

		del := tx.Exec(
			fmt.Sprintf("DELETE FROM %s WHERE %s = ? AND voter_email = ? AND vote_type = ?", t.voteTable, t.fkColumn),
			entityID, voterEmail, int(kind),
		)
		if del.Error != nil {
			return fmt.Errorf("remove vote: %w", del.Error)
		}

		switch {
		case del.RowsAffected == 1:
			prior = State(kind)
		default:
			upd := tx.Exec(
				fmt.Sprintf("UPDATE %s SET vote_type = ?, updated_at = NOW() WHERE %s = ? AND voter_email = ? AND vote_type = ?", t.voteTable, t.fkColumn),
				int(kind), entityID, voterEmail, int(kind.Opposite()),
			)
			if upd.Error != nil {
				return fmt.Errorf("switch vote: %w", upd.Error)
			}
			if upd.RowsAffected == 1 {
				prior = State(kind.Opposite())
				break
			}

			ins := tx.Exec(
				fmt.Sprintf("INSERT INTO %s (%s, voter_email, vote_type, created_at, updated_at) VALUES (?, ?, ?, NOW(), NOW()) ON CONFLICT (%s, voter_email) DO NOTHING", t.voteTable, t.fkColumn, t.fkColumn),
				entityID, voterEmail, int(kind),
			)
			if ins.Error != nil {
				return fmt.Errorf("add vote: %w", ins.Error)
			}
			if ins.RowsAffected == 0 {
				return errRaced
			}
			prior = None
		}

		_, delta, outcome := Transition(prior, kind)
		out.Outcome = outcome

		counters := struct {
			UpVotes   int
			DownVotes int
		}{}
		apply := tx.Raw(
			fmt.Sprintf("UPDATE %s SET up_votes = up_votes + ?, down_votes = down_votes + ?, updated_at = NOW() WHERE id = ? RETURNING up_votes, down_votes", t.entityTable),
			delta.Up, delta.Down, entityID,
		).Scan(&counters)
		if apply.Error != nil {
			return fmt.Errorf("adjust counters: %w", apply.Error)
		}
		if apply.RowsAffected == 0 {
			// Entity deleted underneath us; roll the vote back with it.
			return t.notFound
		}
		out.UpVotes = counters.UpVotes
		out.DownVotes = counters.DownVotes
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return out, nil
}
