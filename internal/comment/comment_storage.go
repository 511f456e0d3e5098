package comment

import (
	"context"
	"errors"

	"github.com/Filichkin/Blogicum/models"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	// ErrForbidden - попытка изменить чужой комментарий; в отличие от постов
	// обработчик отдает явный 403.
	ErrForbidden = errors.New("forbidden: not the author of the comment")
)

type CommentStorage interface {
	AddComment(ctx context.Context, postID uint, text string) (*models.Comment, error)
	EditComment(ctx context.Context, commentID uint, text string) (*models.Comment, error)
	DeleteComment(ctx context.Context, commentID uint) error

	GetCommentByID(id uint) (*models.Comment, error)
	// ListComments - комментарии поста по возрастанию даты создания
	ListComments(postID uint) ([]*models.Comment, error)
}
