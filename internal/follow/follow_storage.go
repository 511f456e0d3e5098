package follow

import (
	"context"
	"errors"

	"github.com/Filichkin/Blogicum/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrSelfFollow   = errors.New("cannot follow yourself")
)

// FollowStorage - направленный граф подписок.
// Подписка не взаимна: follow(A, B) не создает follow(B, A).
// Повторная подписка и отписка без подписки - no-op.
type FollowStorage interface {
	Follow(ctx context.Context, userID uint) error
	Unfollow(ctx context.Context, userID uint) error

	ListFollowers(userID uint) ([]*models.User, error)
	ListFollowing(userID uint) ([]*models.User, error)
}
