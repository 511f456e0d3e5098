package postgres

import (
	"context"
	"fmt"

	"github.com/Filichkin/Blogicum/internal/auth"
	"github.com/Filichkin/Blogicum/internal/engagement"
	"github.com/Filichkin/Blogicum/models"
	"github.com/jinzhu/gorm"
)

type LikePostgresStorage struct{}

func NewLikePostgresStorage() *LikePostgresStorage {
	return &LikePostgresStorage{}
}

// recomputePostLikes выставляет total_likes равным мощности множества ребер.
// Подзапрос в UPDATE берет блокировку строки поста, поэтому конкурентные
// лайки одного поста сериализуются и счетчик не расходится с ребрами.
func recomputePostLikes(tx *gorm.DB, postID uint) error {
	return tx.Exec(
		"UPDATE posts SET total_likes = (SELECT COUNT(*) FROM post_likes WHERE post_likes.post_id = ?) WHERE posts.id = ?",
		postID, postID,
	).Error
}

func recomputeCommentLikes(tx *gorm.DB, commentID uint) error {
	return tx.Exec(
		"UPDATE comments SET total_likes = (SELECT COUNT(*) FROM comment_likes WHERE comment_likes.comment_id = ?) WHERE comments.id = ?",
		commentID, commentID,
	).Error
}

func (s *LikePostgresStorage) Like(ctx context.Context, kind engagement.ItemKind, itemID uint) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	tx := DB.Begin()
	if tx.Error != nil {
		return fmt.Errorf("could not begin transaction: %w", tx.Error)
	}

	switch kind {
	case engagement.KindPost:
		var post models.Post
		if err := tx.First(&post, itemID).Error; err != nil {
			tx.Rollback()
			if gorm.IsRecordNotFoundError(err) {
				return engagement.ErrItemNotFound
			}
			return fmt.Errorf("could not get post: %w", err)
		}

		// FirstOrCreate: повторный лайк - no-op
		var edge models.PostLike
		if err := tx.Where(models.PostLike{UserID: userID, PostID: itemID}).FirstOrCreate(&edge).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("could not create like: %w", err)
		}

		if err := recomputePostLikes(tx, itemID); err != nil {
			tx.Rollback()
			return fmt.Errorf("could not recompute total_likes: %w", err)
		}

	case engagement.KindComment:
		var cmt models.Comment
		if err := tx.First(&cmt, itemID).Error; err != nil {
			tx.Rollback()
			if gorm.IsRecordNotFoundError(err) {
				return engagement.ErrItemNotFound
			}
			return fmt.Errorf("could not get comment: %w", err)
		}

		var edge models.CommentLike
		if err := tx.Where(models.CommentLike{UserID: userID, CommentID: itemID}).FirstOrCreate(&edge).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("could not create like: %w", err)
		}

		if err := recomputeCommentLikes(tx, itemID); err != nil {
			tx.Rollback()
			return fmt.Errorf("could not recompute total_likes: %w", err)
		}

	default:
		tx.Rollback()
		return fmt.Errorf("unknown item kind %q", kind)
	}

	return tx.Commit().Error
}

func (s *LikePostgresStorage) Unlike(ctx context.Context, kind engagement.ItemKind, itemID uint) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	tx := DB.Begin()
	if tx.Error != nil {
		return fmt.Errorf("could not begin transaction: %w", tx.Error)
	}

	switch kind {
	case engagement.KindPost:
		var post models.Post
		if err := tx.First(&post, itemID).Error; err != nil {
			tx.Rollback()
			if gorm.IsRecordNotFoundError(err) {
				return engagement.ErrItemNotFound
			}
			return fmt.Errorf("could not get post: %w", err)
		}

		// удаление отсутствующего ребра - no-op
		if err := tx.Where("user_id = ? AND post_id = ?", userID, itemID).Delete(&models.PostLike{}).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("could not delete like: %w", err)
		}

		if err := recomputePostLikes(tx, itemID); err != nil {
			tx.Rollback()
			return fmt.Errorf("could not recompute total_likes: %w", err)
		}

	case engagement.KindComment:
		var cmt models.Comment
		if err := tx.First(&cmt, itemID).Error; err != nil {
			tx.Rollback()
			if gorm.IsRecordNotFoundError(err) {
				return engagement.ErrItemNotFound
			}
			return fmt.Errorf("could not get comment: %w", err)
		}

		if err := tx.Where("user_id = ? AND comment_id = ?", userID, itemID).Delete(&models.CommentLike{}).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("could not delete like: %w", err)
		}

		if err := recomputeCommentLikes(tx, itemID); err != nil {
			tx.Rollback()
			return fmt.Errorf("could not recompute total_likes: %w", err)
		}

	default:
		tx.Rollback()
		return fmt.Errorf("unknown item kind %q", kind)
	}

	return tx.Commit().Error
}

func (s *LikePostgresStorage) CountLikes(kind engagement.ItemKind, itemID uint) (int, error) {
	var count int
	switch kind {
	case engagement.KindPost:
		if err := DB.Model(&models.PostLike{}).Where("post_id = ?", itemID).Count(&count).Error; err != nil {
			return 0, fmt.Errorf("could not count likes: %w", err)
		}
	case engagement.KindComment:
		if err := DB.Model(&models.CommentLike{}).Where("comment_id = ?", itemID).Count(&count).Error; err != nil {
			return 0, fmt.Errorf("could not count likes: %w", err)
		}
	default:
		return 0, fmt.Errorf("unknown item kind %q", kind)
	}
	return count, nil
}
