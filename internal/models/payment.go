package models

import "time"

// PaymentIntent records a user's intent to pay. No gateway is attached;
// the row plus its client secret is the whole integration surface.
type PaymentIntent struct {
	ID           int       `gorm:"primaryKey" json:"id"`
	Reference    string    `gorm:"unique;not null" json:"reference"`
	UserID       int       `json:"user_id"`
	AmountCents  int64     `gorm:"not null" json:"amount_cents"`
	Currency     string    `gorm:"not null" json:"currency"`
	Status       string    `gorm:"default:created" json:"status"`
	ClientSecret string    `json:"client_secret"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreatePaymentIntentRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}
