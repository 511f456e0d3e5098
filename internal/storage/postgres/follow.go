package postgres

import (
	"context"
	"fmt"

	"github.com/Filichkin/Blogicum/internal/auth"
	"github.com/Filichkin/Blogicum/internal/follow"
	"github.com/Filichkin/Blogicum/models"
	"github.com/jinzhu/gorm"
)

type FollowPostgresStorage struct{}

func NewFollowPostgresStorage() *FollowPostgresStorage {
	return &FollowPostgresStorage{}
}

func (s *FollowPostgresStorage) Follow(ctx context.Context, userID uint) error {
	followerID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	if followerID == userID {
		return follow.ErrSelfFollow
	}

	var target models.User
	err = DB.First(&target, userID).Error
	if gorm.IsRecordNotFoundError(err) {
		return follow.ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("could not get user: %w", err)
	}

	// FirstOrCreate: повторная подписка не создает дубликат ребра
	var edge models.Follow
	err = DB.Where(models.Follow{FollowerID: followerID, FollowedID: userID}).FirstOrCreate(&edge).Error
	if err != nil {
		return fmt.Errorf("could not create follow edge: %w", err)
	}

	return nil
}

func (s *FollowPostgresStorage) Unfollow(ctx context.Context, userID uint) error {
	followerID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	err = DB.Where("follower_id = ? AND followed_id = ?", followerID, userID).Delete(&models.Follow{}).Error
	if err != nil {
		return fmt.Errorf("could not delete follow edge: %w", err)
	}

	return nil
}

func (s *FollowPostgresStorage) ListFollowers(userID uint) ([]*models.User, error) {
	var users []*models.User
	err := DB.
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followed_id = ?", userID).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("could not list followers: %w", err)
	}
	return users, nil
}

func (s *FollowPostgresStorage) ListFollowing(userID uint) ([]*models.User, error) {
	var users []*models.User
	err := DB.
		Joins("JOIN follows ON follows.followed_id = users.id").
		Where("follows.follower_id = ?", userID).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("could not list following: %w", err)
	}
	return users, nil
}
