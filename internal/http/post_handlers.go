package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Filichkin/Blogicum/internal/auth"
	"github.com/Filichkin/Blogicum/internal/blog"
	"github.com/Filichkin/Blogicum/internal/user"
	"github.com/Filichkin/Blogicum/models"
	"github.com/gin-gonic/gin"
)

type postRequest struct {
	Title       string    `json:"title" binding:"required"`
	Text        string    `json:"text" binding:"required"`
	PubDate     time.Time `json:"pub_date" binding:"required"`
	IsPublished bool      `json:"is_published"`
	CategoryID  *uint     `json:"category_id"`
	LocationID  *uint     `json:"location_id"`
	Image       string    `json:"image"`
}

func (r postRequest) toInput() blog.PostInput {
	return blog.PostInput{
		Title:       r.Title,
		Text:        r.Text,
		PubDate:     r.PubDate,
		IsPublished: r.IsPublished,
		CategoryID:  r.CategoryID,
		LocationID:  r.LocationID,
		Image:       r.Image,
	}
}

// postResponse - представление поста в API (без служебных полей gorm)
func postResponse(p *models.Post) gin.H {
	return gin.H{
		"id":            p.ID,
		"title":         p.Title,
		"text":          p.Text,
		"pub_date":      p.PubDate,
		"is_published":  p.IsPublished,
		"image":         p.Image,
		"author_id":     p.AuthorID,
		"category_id":   p.CategoryID,
		"location_id":   p.LocationID,
		"total_likes":   p.TotalLikes,
		"comment_count": p.CommentCount,
	}
}

func postListResponse(posts []*models.Post) []gin.H {
	result := make([]gin.H, 0, len(posts))
	for _, p := range posts {
		result = append(result, postResponse(p))
	}
	return result
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid %s", name)})
		return 0, false
	}
	return uint(id), true
}

// Index - главная лента: все посты, видимые viewer-у, новые сверху
func (h *Handler) Index(c *gin.Context) {
	posts, err := h.PostStore.ListVisible(auth.ViewerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list posts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": postListResponse(posts)})
}

// PostDetail - страница отдельной публикации вместе с комментариями
func (h *Handler) PostDetail(c *gin.Context) {
	id, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}

	post, err := h.PostStore.GetVisible(auth.ViewerID(c), id)
	if errors.Is(err, blog.ErrPostNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get post"})
		return
	}

	comments, err := h.CommentStore.ListComments(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post":     postResponse(post),
		"comments": commentListResponse(comments),
	})
}

// CategoryPosts - лента опубликованной категории по slug
func (h *Handler) CategoryPosts(c *gin.Context) {
	slug := c.Param("category_slug")

	category, posts, err := h.PostStore.ListCategory(auth.ViewerID(c), slug)
	if errors.Is(err, blog.ErrCategoryNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": gin.H{
			"title":       category.Title,
			"description": category.Description,
			"slug":        category.Slug,
		},
		"posts": postListResponse(posts),
	})
}

// Profile - страница пользователя: его посты и счетчики подписок
func (h *Handler) Profile(c *gin.Context) {
	username := c.Param("username")

	profile, err := h.UserStore.GetUserByUsername(username)
	if errors.Is(err, user.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get user"})
		return
	}

	posts, err := h.PostStore.ListProfile(auth.ViewerID(c), username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list profile posts"})
		return
	}

	followers, err := h.FollowStore.ListFollowers(profile.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list followers"})
		return
	}
	following, err := h.FollowStore.ListFollowing(profile.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list following"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":   userResponse(profile),
		"posts":     postListResponse(posts),
		"followers": len(followers),
		"following": len(following),
	})
}

func (h *Handler) CreatePost(c *gin.Context) {
	if auth.ViewerID(c) == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.PostStore.CreatePost(c.Request.Context(), req.toInput())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": postResponse(post)})
}

func (h *Handler) EditPost(c *gin.Context) {
	id, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}

	if auth.ViewerID(c) == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.PostStore.UpdatePost(c.Request.Context(), id, req.toInput())
	if errors.Is(err, blog.ErrNotAuthor) {
		// чужой пост не редактируем: вместо 403 отправляем на страницу поста
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", id))
		return
	}
	if errors.Is(err, blog.ErrPostNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": postResponse(post)})
}

func (h *Handler) DeletePost(c *gin.Context) {
	id, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}

	if auth.ViewerID(c) == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	err := h.PostStore.DeletePost(c.Request.Context(), id)
	if errors.Is(err, blog.ErrNotAuthor) {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", id))
		return
	}
	if errors.Is(err, blog.ErrPostNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
