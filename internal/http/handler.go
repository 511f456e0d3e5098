package http

import (
	"github.com/Filichkin/Blogicum/internal/blog"
	"github.com/Filichkin/Blogicum/internal/comment"
	"github.com/Filichkin/Blogicum/internal/engagement"
	"github.com/Filichkin/Blogicum/internal/follow"
	"github.com/Filichkin/Blogicum/internal/user"
)

// Handler служит корневой точкой для всех HTTP-обработчиков.
// Здесь внедряются зависимости - хранилища.
type Handler struct {
	PostStore    blog.PostStorage
	CommentStore comment.CommentStorage
	LikeStore    engagement.LikeStorage
	FollowStore  follow.FollowStorage
	UserStore    user.UserStorage
}
