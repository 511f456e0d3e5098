package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Filichkin/Blogicum/internal/auth"
	"github.com/Filichkin/Blogicum/internal/engagement"
	"github.com/Filichkin/Blogicum/internal/follow"
	"github.com/gin-gonic/gin"
)

// parseAjaxForm разбирает форму AJAX-кнопок: поля id и action
func parseAjaxForm(c *gin.Context) (uint, string, bool) {
	id, err := strconv.ParseUint(c.PostForm("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error"})
		return 0, "", false
	}
	return uint(id), c.PostForm("action"), true
}

// LikePost - AJAX-кнопка лайка поста: форма с полями id и action (like/unlike)
func (h *Handler) LikePost(c *gin.Context) {
	h.likeItem(c, engagement.KindPost)
}

// LikeComment - AJAX-кнопка лайка комментария
func (h *Handler) LikeComment(c *gin.Context) {
	h.likeItem(c, engagement.KindComment)
}

func (h *Handler) likeItem(c *gin.Context, kind engagement.ItemKind) {
	if auth.ViewerID(c) == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error"})
		return
	}

	itemID, action, ok := parseAjaxForm(c)
	if !ok {
		return
	}

	var err error
	switch action {
	case "like":
		err = h.LikeStore.Like(c.Request.Context(), kind, itemID)
	case "unlike":
		err = h.LikeStore.Unlike(c.Request.Context(), kind, itemID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"status": "error"})
		return
	}

	if errors.Is(err, engagement.ErrItemNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"status": "error"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// FollowUser - AJAX-кнопка подписки: форма с полями id и action (follow/unfollow)
func (h *Handler) FollowUser(c *gin.Context) {
	if auth.ViewerID(c) == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error"})
		return
	}

	userID, action, ok := parseAjaxForm(c)
	if !ok {
		return
	}

	var err error
	switch action {
	case "follow":
		err = h.FollowStore.Follow(c.Request.Context(), userID)
	case "unfollow":
		err = h.FollowStore.Unfollow(c.Request.Context(), userID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"status": "error"})
		return
	}

	if errors.Is(err, follow.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"status": "error"})
		return
	}
	if errors.Is(err, follow.ErrSelfFollow) {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
