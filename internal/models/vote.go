package models

import "time"

// Vote type encoding shared by post and comment votes.
const (
	VoteTypeUp   = 1
	VoteTypeDown = -1
)

// PostVote is a single voter's current vote on a post. At most one row
// per (post, voter); the pair carries a unique index and the vote ledger
// relies on it for conflict detection.
//
// The voter key is the account email. Emails are mutable, so a user who
// changes theirs orphans their vote history. Kept on purpose: the wire
// contract identifies voters by email and switching to the user id would
// silently change semantics.
type PostVote struct {
	ID         int       `gorm:"primaryKey" json:"id"`
	PostID     int       `gorm:"uniqueIndex:idx_post_voter;not null" json:"post_id"`
	VoterEmail string    `gorm:"uniqueIndex:idx_post_voter;not null" json:"voter_email"`
	VoteType   int       `gorm:"not null" json:"vote_type"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CommentVote mirrors PostVote for comments.
type CommentVote struct {
	ID         int       `gorm:"primaryKey" json:"id"`
	CommentID  int       `gorm:"uniqueIndex:idx_comment_voter;not null" json:"comment_id"`
	VoterEmail string    `gorm:"uniqueIndex:idx_comment_voter;not null" json:"voter_email"`
	VoteType   int       `gorm:"not null" json:"vote_type"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
