package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Filichkin/Blogicum/internal/auth"
	"github.com/Filichkin/Blogicum/internal/authz"
	"github.com/Filichkin/Blogicum/internal/blog"
	"github.com/Filichkin/Blogicum/internal/user"
	"github.com/Filichkin/Blogicum/models"
	"github.com/jinzhu/gorm"
)

type PostPostgresStorage struct{}

func NewPostPostgresStorage() *PostPostgresStorage {
	return &PostPostgresStorage{}
}

// visibleQuery - общий предикат видимости для лент:
// пост опубликован, дата публикации наступила и категория опубликована,
// либо viewer - автор поста (автор видит свои посты в любом состоянии).
// LEFT JOIN, чтобы посты без категории не выпадали из авторской ветки предиката.
func visibleQuery(viewerID uint) *gorm.DB {
	return DB.Model(&models.Post{}).
		Joins("LEFT JOIN categories ON categories.id = posts.category_id AND categories.deleted_at IS NULL").
		Where("(posts.is_published = ? AND posts.pub_date <= ? AND categories.is_published = ?) OR posts.author_id = ?",
			true, time.Now(), true, viewerID)
}

// annotateCommentCounts проставляет CommentCount одним сгруппированным запросом
func annotateCommentCounts(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}

	rows, err := DB.Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS cnt").
		Where("post_id IN (?)", ids).
		Group("post_id").
		Rows()
	if err != nil {
		return fmt.Errorf("could not count comments: %w", err)
	}
	defer rows.Close()

	counts := make(map[uint]int)
	for rows.Next() {
		var postID uint
		var cnt int
		if err := rows.Scan(&postID, &cnt); err != nil {
			return fmt.Errorf("could not scan comment count: %w", err)
		}
		counts[postID] = cnt
	}

	for _, p := range posts {
		p.CommentCount = counts[p.ID]
	}
	return nil
}

func (s *PostPostgresStorage) CreatePost(ctx context.Context, input blog.PostInput) (*models.Post, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	post := &models.Post{
		Title:       input.Title,
		Text:        input.Text,
		PubDate:     input.PubDate,
		IsPublished: input.IsPublished,
		Image:       input.Image,
		AuthorID:    userID,
		CategoryID:  input.CategoryID,
		LocationID:  input.LocationID,
	}

	err = DB.Create(post).Error
	if err != nil {
		return nil, fmt.Errorf("could not create post: %w", err)
	}

	return post, nil
}

func (s *PostPostgresStorage) UpdatePost(ctx context.Context, id uint, input blog.PostInput) (*models.Post, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	var post models.Post
	err = DB.First(&post, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, blog.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not get post: %w", err)
	}

	if !authz.CanMutate(userID, &post) {
		return nil, blog.ErrNotAuthor
	}

	post.Title = input.Title
	post.Text = input.Text
	post.PubDate = input.PubDate
	post.IsPublished = input.IsPublished
	post.Image = input.Image
	post.CategoryID = input.CategoryID
	post.LocationID = input.LocationID

	err = DB.Save(&post).Error
	if err != nil {
		return nil, fmt.Errorf("could not update post: %w", err)
	}

	return &post, nil
}

func (s *PostPostgresStorage) DeletePost(ctx context.Context, id uint) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	var post models.Post
	err = DB.First(&post, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return blog.ErrPostNotFound
	}
	if err != nil {
		return fmt.Errorf("could not get post: %w", err)
	}

	if !authz.CanMutate(userID, &post) {
		return blog.ErrNotAuthor
	}

	// пост удаляется вместе с комментариями и ребрами лайков
	tx := DB.Begin()
	if tx.Error != nil {
		return fmt.Errorf("could not begin transaction: %w", tx.Error)
	}

	err = tx.Exec(
		"DELETE FROM comment_likes WHERE comment_id IN (SELECT id FROM comments WHERE post_id = ?)", id,
	).Error
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("could not delete comment likes: %w", err)
	}

	if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("could not delete comments: %w", err)
	}

	if err := tx.Where("post_id = ?", id).Delete(&models.PostLike{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("could not delete post likes: %w", err)
	}

	if err := tx.Delete(&models.Post{}, id).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("could not delete post: %w", err)
	}

	return tx.Commit().Error
}

func (s *PostPostgresStorage) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	err := DB.First(&post, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, blog.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not get post by id: %w", err)
	}
	return &post, nil
}

func (s *PostPostgresStorage) GetVisible(viewerID, id uint) (*models.Post, error) {
	var post models.Post
	err := DB.Preload("Category").Preload("Location").First(&post, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, blog.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not get post by id: %w", err)
	}

	// дата публикации здесь намеренно не проверяется: отложенный пост
	// доступен по прямой ссылке, хотя в лентах его нет
	if post.AuthorID != viewerID {
		published := post.IsPublished && post.Category != nil && post.Category.IsPublished
		if !published {
			return nil, blog.ErrPostNotFound
		}
	}

	if err := annotateCommentCounts([]*models.Post{&post}); err != nil {
		return nil, err
	}

	return &post, nil
}

func (s *PostPostgresStorage) ListVisible(viewerID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := visibleQuery(viewerID).
		Order("posts.pub_date DESC, posts.id ASC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("could not list posts: %w", err)
	}

	if err := annotateCommentCounts(posts); err != nil {
		return nil, err
	}

	return posts, nil
}

func (s *PostPostgresStorage) ListCategory(viewerID uint, slug string) (*models.Category, []*models.Post, error) {
	// неопубликованная категория скрывает всю ленту даже от авторов постов
	var category models.Category
	err := DB.Where("slug = ? AND is_published = ?", slug, true).First(&category).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil, blog.ErrCategoryNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("could not get category: %w", err)
	}

	var posts []*models.Post
	err = visibleQuery(viewerID).
		Where("posts.category_id = ?", category.ID).
		Order("posts.pub_date DESC, posts.id ASC").
		Find(&posts).Error
	if err != nil {
		return nil, nil, fmt.Errorf("could not list category posts: %w", err)
	}

	if err := annotateCommentCounts(posts); err != nil {
		return nil, nil, err
	}

	return &category, posts, nil
}

func (s *PostPostgresStorage) ListProfile(viewerID uint, username string) ([]*models.Post, error) {
	var author models.User
	err := DB.Where("username = ?", username).First(&author).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not get user: %w", err)
	}

	query := visibleQuery(viewerID)
	if author.ID == viewerID {
		// свои посты автор видит все, без фильтра видимости
		query = DB.Model(&models.Post{})
	}

	var posts []*models.Post
	err = query.
		Where("posts.author_id = ?", author.ID).
		Order("posts.pub_date DESC, posts.id ASC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("could not list profile posts: %w", err)
	}

	if err := annotateCommentCounts(posts); err != nil {
		return nil, err
	}

	return posts, nil
}
