package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/MITHU9/forum-hub-backend/internal/models"
)

type SearchHandler struct {
	db *gorm.DB
}

func NewSearchHandler(db *gorm.DB) *SearchHandler {
	return &SearchHandler{db: db}
}

// SearchPosts finds posts whose title, body or tag matches the query and
// records the term for trending stats.
func (h *SearchHandler) SearchPosts(c *gin.Context) {
	term := strings.ToLower(strings.TrimSpace(c.Query("q")))
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter q is required"})
		return
	}

	h.recordTerm(term)

	pattern := "%" + term + "%"
	var posts []models.Post
	err := h.db.Preload("User").Preload("Tags").
		Where("LOWER(title) LIKE ? OR LOWER(body) LIKE ?", pattern, pattern).
		Or("id IN (?)", h.db.Table("post_tags").
			Select("post_tags.post_id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.name = ?", term)).
		Order("created_at DESC").Limit(50).
		Find(&posts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	responses := make([]gin.H, 0, len(posts))
	for i := range posts {
		responses = append(responses, postResponse(&posts[i]))
	}

	c.JSON(http.StatusOK, gin.H{"query": term, "posts": responses})
}

// recordTerm bumps the term's hit counter with a single upsert. Tracking
// failures never fail the search itself.
func (h *SearchHandler) recordTerm(term string) {
	err := h.db.Exec(`
		INSERT INTO search_terms (term, hits, last_searched_at)
		VALUES (?, 1, NOW())
		ON CONFLICT (term) DO UPDATE SET hits = search_terms.hits + 1, last_searched_at = NOW()
	`, term).Error
	if err != nil {
		log.WithError(err).WithField("term", term).Warn("search term tracking failed")
	}
}

// TrendingTerms returns the most searched terms.
func (h *SearchHandler) TrendingTerms(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 50 {
		limit = 10
	}

	var terms []models.SearchTerm
	if err := h.db.Order("hits DESC, last_searched_at DESC").Limit(limit).Find(&terms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trending terms"})
		return
	}

	c.JSON(http.StatusOK, terms)
}
