package models

import "time"

// SearchTerm tracks how often a query string has been searched.
// Terms are stored lowercased; Hits is bumped with an upsert.
type SearchTerm struct {
	ID             int       `gorm:"primaryKey" json:"id"`
	Term           string    `gorm:"unique;not null" json:"term"`
	Hits           int       `gorm:"default:1" json:"hits"`
	LastSearchedAt time.Time `json:"last_searched_at"`
}
