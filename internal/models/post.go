package models

import "time"

type Post struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Body      string    `json:"body"`
	Image     string    `json:"image"`
	AuthorID  int       `json:"author_id"`
	User      User      `gorm:"foreignKey:AuthorID" json:"user"`
	UpVotes   int       `gorm:"column:up_votes;default:0" json:"upvotes"`
	DownVotes int       `gorm:"column:down_votes;default:0" json:"downvotes"`
	Comments  int       `gorm:"default:0" json:"comments"`
	Tags      []Tag     `gorm:"many2many:post_tags" json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VoteScore is the ranking metric. Derived, never persisted.
func (p *Post) VoteScore() int {
	return p.UpVotes - p.DownVotes
}

type CreatePostRequest struct {
	Title string   `json:"title"`
	Body  string   `json:"body"`
	Image string   `json:"image"`
	Tags  []string `json:"tags"`
}
