package postgres

import (
	"context"
	"fmt"

	"github.com/Filichkin/Blogicum/internal/auth"
	"github.com/Filichkin/Blogicum/internal/authz"
	"github.com/Filichkin/Blogicum/internal/blog"
	"github.com/Filichkin/Blogicum/internal/comment"
	"github.com/Filichkin/Blogicum/models"
	"github.com/jinzhu/gorm"
)

type CommentPostgresStorage struct{}

func NewCommentPostgresStorage() *CommentPostgresStorage {
	return &CommentPostgresStorage{}
}

func (s *CommentPostgresStorage) AddComment(ctx context.Context, postID uint, text string) (*models.Comment, error) {
	if len(text) == 0 || len(text) > 2000 {
		return nil, fmt.Errorf("comment text is too long or empty")
	}

	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	var post models.Post
	err = DB.First(&post, postID).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, blog.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not get post: %w", err)
	}

	cmt := &models.Comment{
		Text:     text,
		PostID:   postID,
		AuthorID: &userID,
	}

	if err := DB.Create(cmt).Error; err != nil {
		return nil, fmt.Errorf("could not create comment: %w", err)
	}

	return cmt, nil
}

func (s *CommentPostgresStorage) EditComment(ctx context.Context, commentID uint, text string) (*models.Comment, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	var cmt models.Comment
	err = DB.First(&cmt, commentID).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, comment.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not get comment: %w", err)
	}

	if !authz.CanMutate(userID, &cmt) {
		return nil, comment.ErrForbidden
	}

	cmt.Text = text
	if err := DB.Save(&cmt).Error; err != nil {
		return nil, fmt.Errorf("could not update comment: %w", err)
	}

	return &cmt, nil
}

func (s *CommentPostgresStorage) DeleteComment(ctx context.Context, commentID uint) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	var cmt models.Comment
	err = DB.First(&cmt, commentID).Error
	if gorm.IsRecordNotFoundError(err) {
		return comment.ErrCommentNotFound
	}
	if err != nil {
		return fmt.Errorf("could not get comment: %w", err)
	}

	if !authz.CanMutate(userID, &cmt) {
		return comment.ErrForbidden
	}

	tx := DB.Begin()
	if tx.Error != nil {
		return fmt.Errorf("could not begin transaction: %w", tx.Error)
	}

	if err := tx.Where("comment_id = ?", commentID).Delete(&models.CommentLike{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("could not delete comment likes: %w", err)
	}

	if err := tx.Delete(&models.Comment{}, commentID).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("could not delete comment: %w", err)
	}

	return tx.Commit().Error
}

func (s *CommentPostgresStorage) GetCommentByID(id uint) (*models.Comment, error) {
	var cmt models.Comment
	err := DB.First(&cmt, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, comment.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not get comment by id: %w", err)
	}
	return &cmt, nil
}

func (s *CommentPostgresStorage) ListComments(postID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := DB.Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("could not list comments: %w", err)
	}
	return comments, nil
}
