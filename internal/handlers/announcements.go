package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/MITHU9/forum-hub-backend/internal/middleware"
	"github.com/MITHU9/forum-hub-backend/internal/models"
	"github.com/MITHU9/forum-hub-backend/internal/notify"
)

type AnnouncementHandler struct {
	db       *gorm.DB
	notifier notify.Notifier
}

func NewAnnouncementHandler(db *gorm.DB, notifier notify.Notifier) *AnnouncementHandler {
	return &AnnouncementHandler{db: db, notifier: notifier}
}

// GetAnnouncements lists announcements, pinned first.
func (h *AnnouncementHandler) GetAnnouncements(c *gin.Context) {
	var announcements []models.Announcement

	if err := h.db.Preload("User").Order("pinned DESC, created_at DESC").Find(&announcements).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch announcements"})
		return
	}

	c.JSON(http.StatusOK, announcements)
}

// CreateAnnouncement posts a new announcement (ADMIN). When Twilio is
// configured the announcement is also broadcast by SMS.
func (h *AnnouncementHandler) CreateAnnouncement(c *gin.Context) {
	var input models.AnnouncementRequest
	if err := c.ShouldBindJSON(&input); err != nil || input.Title == "" || input.Body == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and body are required"})
		return
	}

	adminID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	announcement := models.Announcement{
		Title:     input.Title,
		Body:      input.Body,
		Pinned:    input.Pinned,
		CreatedBy: adminID,
	}

	if err := h.db.Create(&announcement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create announcement"})
		return
	}

	log.WithField("announcement_id", announcement.ID).Info("announcement created")
	go h.notifier.Broadcast(announcement.Title, announcement.Body)

	h.db.Preload("User").First(&announcement, announcement.ID)
	c.JSON(http.StatusCreated, announcement)
}

// UpdateAnnouncement edits an announcement (ADMIN).
func (h *AnnouncementHandler) UpdateAnnouncement(c *gin.Context) {
	announcementID := c.Param("id")

	var input models.AnnouncementRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var announcement models.Announcement
	if err := h.db.First(&announcement, "id = ?", announcementID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Announcement not found"})
		return
	}

	if input.Title != "" {
		announcement.Title = input.Title
	}
	if input.Body != "" {
		announcement.Body = input.Body
	}
	announcement.Pinned = input.Pinned

	if err := h.db.Save(&announcement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update announcement"})
		return
	}

	c.JSON(http.StatusOK, announcement)
}

// DeleteAnnouncement removes an announcement (ADMIN).
func (h *AnnouncementHandler) DeleteAnnouncement(c *gin.Context) {
	announcementID := c.Param("id")

	var announcement models.Announcement
	if err := h.db.First(&announcement, "id = ?", announcementID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Announcement not found"})
		return
	}

	if err := h.db.Delete(&announcement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete announcement"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Announcement deleted successfully"})
}
