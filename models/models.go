package models

import (
	"time"

	"github.com/jinzhu/gorm"
)

type User struct {
	gorm.Model
	Username  string `gorm:"unique"`
	Email     string `gorm:"unique"`
	Password  string
	FirstName string
	LastName  string
	Posts     []Post    `gorm:"foreignkey:AuthorID"`
	Comments  []Comment `gorm:"foreignkey:AuthorID"`
}

type Category struct {
	gorm.Model
	Title       string
	Description string
	Slug        string `gorm:"unique_index"`
	IsPublished bool
	Posts       []Post `gorm:"foreignkey:CategoryID"`
}

// Location - географическая метка поста, на видимость не влияет.
type Location struct {
	gorm.Model
	Name        string
	IsPublished bool
}

type Post struct {
	gorm.Model
	Title       string
	Text        string
	PubDate     time.Time
	IsPublished bool
	Image       string
	TotalLikes  int // денормализованный счетчик, всегда пересчитывается от множества лайков
	AuthorID    uint
	CategoryID  *uint
	LocationID  *uint
	Category    *Category `gorm:"foreignkey:CategoryID"`
	Location    *Location `gorm:"foreignkey:LocationID"`
	Comments    []Comment `gorm:"foreignkey:PostID"`

	// CommentCount вычисляется при выборке, в БД не хранится
	CommentCount int `gorm:"-"`
}

// OwnerID возвращает автора поста (для проверки прав в authz)
func (p *Post) OwnerID() (uint, bool) {
	return p.AuthorID, true
}

type Comment struct {
	gorm.Model
	Text       string
	PostID     uint
	AuthorID   *uint // nullable: при удалении аккаунта автор очищается, комментарий остается
	TotalLikes int
}

// OwnerID возвращает автора комментария (false - если автор удален)
func (c *Comment) OwnerID() (uint, bool) {
	if c.AuthorID == nil {
		return 0, false
	}
	return *c.AuthorID, true
}

// PostLike - ребро "пользователь лайкнул пост".
// Пара (user, post) уникальна: отношение - множество, не мультимножество.
type PostLike struct {
	ID        uint `gorm:"primary_key"`
	UserID    uint `gorm:"unique_index:idx_post_like_edge"`
	PostID    uint `gorm:"unique_index:idx_post_like_edge"`
	CreatedAt time.Time
}

// CommentLike - ребро "пользователь лайкнул комментарий".
type CommentLike struct {
	ID        uint `gorm:"primary_key"`
	UserID    uint `gorm:"unique_index:idx_comment_like_edge"`
	CommentID uint `gorm:"unique_index:idx_comment_like_edge"`
	CreatedAt time.Time
}

// Follow - направленное ребро подписки (подписка не взаимна).
type Follow struct {
	ID         uint `gorm:"primary_key"`
	FollowerID uint `gorm:"unique_index:idx_follow_edge"`
	FollowedID uint `gorm:"unique_index:idx_follow_edge"`
	CreatedAt  time.Time
}
