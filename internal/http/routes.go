package http

import (
	"github.com/Filichkin/Blogicum/internal/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// SetupRoutes вешает middleware и маршруты на router.
// Карта URL повторяет структуру блога: ленты, посты, комментарии,
// AJAX-кнопки лайков и подписок, профили.
func SetupRoutes(router *gin.Engine, h *Handler, log *logrus.Logger) {
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}))
	router.Use(RequestLogger(log))
	router.Use(auth.Middleware())

	router.POST("/auth/register", h.Register)
	router.POST("/auth/login", h.Login)
	router.POST("/accounts/profile", h.EditProfile)

	router.GET("/", h.Index)
	router.GET("/posts/:post_id", h.PostDetail)
	router.GET("/category/:category_slug", h.CategoryPosts)
	router.GET("/profile/:username", h.Profile)

	router.POST("/posts/create", h.CreatePost)
	router.POST("/posts/:post_id/edit", h.EditPost)
	router.POST("/posts/:post_id/delete", h.DeletePost)

	router.POST("/posts/:post_id/comment", h.AddComment)
	router.POST("/posts/:post_id/edit_comment/:comment_id", h.EditComment)
	router.POST("/posts/:post_id/delete_comment/:comment_id", h.DeleteComment)

	// AJAX-кнопки под общим rate limit
	ajax := router.Group("/", RateLimit(rate.Limit(10), 20))
	ajax.POST("/posts/like", h.LikePost)
	ajax.POST("/posts/like_comment", h.LikeComment)
	ajax.POST("/profile/follow", h.FollowUser)
}
