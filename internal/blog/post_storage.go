package blog

import (
	"context"
	"errors"
	"time"

	"github.com/Filichkin/Blogicum/models"
)

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrCategoryNotFound = errors.New("category not found")
	// ErrNotAuthor - попытка изменить чужой пост; обработчик должен
	// перенаправить на страницу поста, а не отдавать 403.
	ErrNotAuthor = errors.New("not the author of the post")
)

// PostInput - поля поста, которые заполняет автор.
type PostInput struct {
	Title       string
	Text        string
	PubDate     time.Time
	IsPublished bool
	CategoryID  *uint
	LocationID  *uint
	Image       string
}

// PostStorage описывает хранилище постов вместе с правилами видимости.
//
// Пост виден всем, если он опубликован, дата публикации наступила и его
// категория опубликована. Автор видит свои посты всегда. Одиночная выборка
// (GetVisible) намеренно не проверяет дату публикации - отложенный пост
// доступен по прямой ссылке, но не показывается в лентах.
type PostStorage interface {
	CreatePost(ctx context.Context, input PostInput) (*models.Post, error)
	UpdatePost(ctx context.Context, id uint, input PostInput) (*models.Post, error)
	DeletePost(ctx context.Context, id uint) error

	// GetPostByID - точечная выборка без проверки видимости (для внутренних нужд)
	GetPostByID(id uint) (*models.Post, error)
	// GetVisible - пост по id с проверкой видимости для viewer
	GetVisible(viewerID, id uint) (*models.Post, error)
	// ListVisible - лента всех видимых постов, новые сверху,
	// каждый пост аннотирован числом комментариев
	ListVisible(viewerID uint) ([]*models.Post, error)
	// ListCategory - посты опубликованной категории; неопубликованная или
	// несуществующая категория - ErrCategoryNotFound для любого viewer
	ListCategory(viewerID uint, slug string) (*models.Category, []*models.Post, error)
	// ListProfile - посты одного автора; свои посты автор видит без фильтра
	ListProfile(viewerID uint, username string) ([]*models.Post, error)
}
