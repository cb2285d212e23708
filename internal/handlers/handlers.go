package handlers

import (
	"gorm.io/gorm"

	"github.com/MITHU9/forum-hub-backend/internal/config"
	"github.com/MITHU9/forum-hub-backend/internal/notify"
	"github.com/MITHU9/forum-hub-backend/internal/votes"
)

// Handler combines all handler types
type Handler struct {
	Auth         *AuthHandler
	Post         *PostHandler
	Comment      *CommentHandler
	User         *UserHandler
	Vote         *VoteHandler
	Announcement *AnnouncementHandler
	Search       *SearchHandler
	Payment      *PaymentHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(db *gorm.DB, cfg *config.Config, notifier notify.Notifier) *Handler {
	ledger := votes.NewLedger(db)

	return &Handler{
		Auth:         NewAuthHandler(db, cfg),
		Post:         NewPostHandler(db),
		Comment:      NewCommentHandler(db, ledger),
		User:         NewUserHandler(db),
		Vote:         NewVoteHandler(ledger),
		Announcement: NewAnnouncementHandler(db, notifier),
		Search:       NewSearchHandler(db),
		Payment:      NewPaymentHandler(db),
	}
}
