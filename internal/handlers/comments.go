package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/MITHU9/forum-hub-backend/internal/middleware"
	"github.com/MITHU9/forum-hub-backend/internal/models"
	"github.com/MITHU9/forum-hub-backend/internal/votes"
)

type CommentHandler struct {
	db     *gorm.DB
	ledger *votes.Ledger
}

func NewCommentHandler(db *gorm.DB, ledger *votes.Ledger) *CommentHandler {
	return &CommentHandler{db: db, ledger: ledger}
}

func commentResponse(comment *models.Comment) gin.H {
	return gin.H{
		"id":                comment.ID,
		"body":              comment.Body,
		"author_id":         comment.AuthorID,
		"post_id":           comment.PostID,
		"parent_comment_id": comment.ParentCommentID,
		"user":              comment.User,
		"upvotes":           comment.UpVotes,
		"downvotes":         comment.DownVotes,
		"created_at":        comment.CreatedAt,
		"updated_at":        comment.UpdatedAt,
	}
}

// GetComments returns all comments for a post
func (h *CommentHandler) GetComments(c *gin.Context) {
	postID := c.Param("id")
	var comments []models.Comment

	if err := h.db.Where("post_id = ?", postID).Preload("User").Order("created_at desc").Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	responses := make([]gin.H, 0, len(comments))
	for i := range comments {
		responses = append(responses, commentResponse(&comments[i]))
	}

	c.JSON(http.StatusOK, responses)
}

// CreateComment creates a new comment on a post
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var input models.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil || input.Body == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment body is required"})
		return
	}

	postID := c.Param("id")
	authorID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var post models.Post
	if err := h.db.First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	comment := models.Comment{
		Body:            input.Body,
		PostID:          post.ID,
		AuthorID:        authorID,
		ParentCommentID: input.ParentCommentID,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", post.ID).
			UpdateColumn("comments", gorm.Expr("comments + 1")).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	h.db.Preload("User").First(&comment, comment.ID)
	c.JSON(http.StatusCreated, commentResponse(&comment))
}

// UpdateComment updates a comment (owner only)
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	commentID := c.Param("commentId")

	authorID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Body string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var comment models.Comment
	if err := h.db.First(&comment, "id = ?", commentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	if comment.AuthorID != authorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own comments"})
		return
	}

	comment.Body = input.Body
	if err := h.db.Save(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update comment"})
		return
	}
	h.db.Preload("User").First(&comment, comment.ID)

	c.JSON(http.StatusOK, commentResponse(&comment))
}

// DeleteComment deletes a comment and its votes (owner only)
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID := c.Param("commentId")

	authorID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var comment models.Comment
	if err := h.db.First(&comment, "id = ?", commentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	if comment.AuthorID != authorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own comments"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", comment.ID).Delete(&models.CommentVote{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ? AND comments > 0", comment.PostID).
			UpdateColumn("comments", gorm.Expr("comments - 1")).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}

// UpvoteComment toggles the caller's upvote on a comment.
func (h *CommentHandler) UpvoteComment(c *gin.Context) {
	h.castComment(c, votes.Up)
}

// DownvoteComment toggles the caller's downvote on a comment.
func (h *CommentHandler) DownvoteComment(c *gin.Context) {
	h.castComment(c, votes.Down)
}

func (h *CommentHandler) castComment(c *gin.Context, kind votes.Kind) {
	commentID, err := strconv.Atoi(c.Param("commentId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment id"})
		return
	}

	voterEmail, ok := middleware.UserEmail(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	result, err := h.ledger.CastCommentVote(c.Request.Context(), commentID, voterEmail, kind)
	switch {
	case errors.Is(err, votes.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	case errors.Is(err, votes.ErrInvalidVote):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vote request"})
		return
	case err != nil:
		log.WithError(err).WithField("comment_id", commentID).Error("comment vote failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record vote"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   result.Message(),
		"upvotes":   result.UpVotes,
		"downvotes": result.DownVotes,
	})
}
