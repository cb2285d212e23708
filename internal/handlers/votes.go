package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/MITHU9/forum-hub-backend/internal/votes"
)

// VoteHandler exposes the legacy vote endpoints. The voter identity comes
// from the request body's userEmail field; these routes use a "message"
// response key throughout, including error bodies.
type VoteHandler struct {
	ledger *votes.Ledger
}

func NewVoteHandler(ledger *votes.Ledger) *VoteHandler {
	return &VoteHandler{ledger: ledger}
}

// UpvotePost handles POST /post-upvote/:postId
func (h *VoteHandler) UpvotePost(c *gin.Context) {
	h.castPost(c, votes.Up)
}

// DownvotePost handles POST /post-downvote/:postId
func (h *VoteHandler) DownvotePost(c *gin.Context) {
	h.castPost(c, votes.Down)
}

func (h *VoteHandler) castPost(c *gin.Context, kind votes.Kind) {
	postID, err := strconv.Atoi(c.Param("postId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid post id"})
		return
	}

	var input struct {
		UserEmail string `json:"userEmail"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.UserEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "userEmail is required"})
		return
	}

	result, err := h.ledger.CastPostVote(c.Request.Context(), postID, input.UserEmail, kind)
	switch {
	case errors.Is(err, votes.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	case errors.Is(err, votes.ErrInvalidVote):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid vote request"})
		return
	case err != nil:
		log.WithError(err).WithField("post_id", postID).Error("vote cast failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to record vote"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   result.Message(),
		"upvotes":   result.UpVotes,
		"downvotes": result.DownVotes,
	})
}
