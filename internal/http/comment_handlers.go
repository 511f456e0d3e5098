package http

import (
	"errors"
	"net/http"

	"github.com/Filichkin/Blogicum/internal/auth"
	"github.com/Filichkin/Blogicum/internal/blog"
	"github.com/Filichkin/Blogicum/internal/comment"
	"github.com/Filichkin/Blogicum/models"
	"github.com/gin-gonic/gin"
)

type commentRequest struct {
	Text string `json:"text" binding:"required"`
}

func commentResponse(c *models.Comment) gin.H {
	return gin.H{
		"id":          c.ID,
		"text":        c.Text,
		"post_id":     c.PostID,
		"author_id":   c.AuthorID,
		"created_at":  c.CreatedAt,
		"total_likes": c.TotalLikes,
	}
}

func commentListResponse(comments []*models.Comment) []gin.H {
	result := make([]gin.H, 0, len(comments))
	for _, c := range comments {
		result = append(result, commentResponse(c))
	}
	return result
}

func (h *Handler) AddComment(c *gin.Context) {
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}

	if auth.ViewerID(c) == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cmt, err := h.CommentStore.AddComment(c.Request.Context(), postID, req.Text)
	if errors.Is(err, blog.ErrPostNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not add comment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": commentResponse(cmt)})
}

func (h *Handler) EditComment(c *gin.Context) {
	commentID, ok := parseIDParam(c, "comment_id")
	if !ok {
		return
	}

	if auth.ViewerID(c) == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cmt, err := h.CommentStore.EditComment(c.Request.Context(), commentID, req.Text)
	// чужой комментарий - явный 403 (в отличие от постов, где редирект)
	if errors.Is(err, comment.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	if errors.Is(err, comment.ErrCommentNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not edit comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"comment": commentResponse(cmt)})
}

func (h *Handler) DeleteComment(c *gin.Context) {
	commentID, ok := parseIDParam(c, "comment_id")
	if !ok {
		return
	}

	if auth.ViewerID(c) == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	err := h.CommentStore.DeleteComment(c.Request.Context(), commentID)
	if errors.Is(err, comment.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	if errors.Is(err, comment.ErrCommentNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
