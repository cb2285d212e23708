package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/MITHU9/forum-hub-backend/internal/middleware"
	"github.com/MITHU9/forum-hub-backend/internal/models"
)

type PaymentHandler struct {
	db *gorm.DB
}

func NewPaymentHandler(db *gorm.DB) *PaymentHandler {
	return &PaymentHandler{db: db}
}

// CreateIntent records a payment intent for the caller and hands back a
// reference plus client secret. No gateway call happens here.
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var input models.CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&input); err != nil || input.AmountCents <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A positive amount_cents is required"})
		return
	}

	currency := strings.ToLower(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = "usd"
	}
	if len(currency) != 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Currency must be a 3-letter code"})
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	intent := models.PaymentIntent{
		Reference:    "pi_" + uuid.NewString(),
		UserID:       userID,
		AmountCents:  input.AmountCents,
		Currency:     currency,
		Status:       "created",
		ClientSecret: uuid.NewString(),
	}

	if err := h.db.Create(&intent).Error; err != nil {
		log.WithError(err).Error("payment intent creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment intent"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"reference":     intent.Reference,
		"amount_cents":  intent.AmountCents,
		"currency":      intent.Currency,
		"status":        intent.Status,
		"client_secret": intent.ClientSecret,
		"created_at":    intent.CreatedAt,
	})
}
