package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Filichkin/Blogicum/internal/auth"
	"github.com/Filichkin/Blogicum/internal/authz"
	"github.com/Filichkin/Blogicum/internal/blog"
	"github.com/Filichkin/Blogicum/internal/comment"
	"github.com/Filichkin/Blogicum/models"
)

type CommentMemoryStorage struct {
	mu          sync.Mutex
	comments    map[uint]*models.Comment
	nextID      uint
	postStorage blog.PostStorage // хранилище постов (внедрение зависимости)
}

func NewCommentMemoryStorage(postStore blog.PostStorage) *CommentMemoryStorage {
	return &CommentMemoryStorage{
		comments:    make(map[uint]*models.Comment),
		nextID:      1,
		postStorage: postStore,
	}
}

// cloneComment - копия комментария; наружу отдаем только снимки,
// как и для постов
func cloneComment(c *models.Comment) *models.Comment {
	clone := *c
	return &clone
}

// setTotalLikes выставляет счетчик под мьютексом комментариев;
// вызывается хранилищем лайков
func (s *CommentMemoryStorage) setTotalLikes(id uint, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cmt, ok := s.comments[id]; ok {
		cmt.TotalLikes = n
	}
}

func (s *CommentMemoryStorage) AddComment(ctx context.Context, postID uint, text string) (*models.Comment, error) {
	if len(text) == 0 || len(text) > 2000 {
		return nil, fmt.Errorf("comment text is too long or empty")
	}

	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	// проверяем пост до захвата собственного мьютекса,
	// чтобы не держать два замка одновременно
	if _, err := s.postStorage.GetPostByID(postID); err != nil {
		return nil, blog.ErrPostNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cmt := &models.Comment{
		Text:     text,
		PostID:   postID,
		AuthorID: &userID,
	}
	cmt.ID = s.nextID
	s.nextID++
	cmt.CreatedAt = time.Now()

	s.comments[cmt.ID] = cmt
	return cloneComment(cmt), nil
}

func (s *CommentMemoryStorage) EditComment(ctx context.Context, commentID uint, text string) (*models.Comment, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cmt, exists := s.comments[commentID]
	if !exists {
		return nil, comment.ErrCommentNotFound
	}

	if !authz.CanMutate(userID, cmt) {
		return nil, comment.ErrForbidden
	}

	cmt.Text = text
	return cloneComment(cmt), nil
}

func (s *CommentMemoryStorage) DeleteComment(ctx context.Context, commentID uint) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cmt, exists := s.comments[commentID]
	if !exists {
		return comment.ErrCommentNotFound
	}

	if !authz.CanMutate(userID, cmt) {
		return comment.ErrForbidden
	}

	delete(s.comments, commentID)
	return nil
}

func (s *CommentMemoryStorage) GetCommentByID(id uint) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cmt, exists := s.comments[id]
	if !exists {
		return nil, comment.ErrCommentNotFound
	}
	return cloneComment(cmt), nil
}

func (s *CommentMemoryStorage) ListComments(postID uint) ([]*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var comments []*models.Comment
	for _, c := range s.comments {
		if c.PostID == postID {
			comments = append(comments, cloneComment(c))
		}
	}

	// по возрастанию даты создания (и по ID при равном времени)
	sort.Slice(comments, func(i, j int) bool {
		if comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].ID < comments[j].ID
		}
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})

	return comments, nil
}

// CountForPost реализует CommentCounter для аннотации лент постов
func (s *CommentMemoryStorage) CountForPost(postID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, c := range s.comments {
		if c.PostID == postID {
			count++
		}
	}
	return count
}
