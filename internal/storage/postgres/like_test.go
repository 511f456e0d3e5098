package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/Filichkin/Blogicum/internal/engagement"
	"github.com/Filichkin/Blogicum/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikePostgresStorage_LikePost(t *testing.T) {
	storage := NewLikePostgresStorage()

	t.Run("Like is idempotent", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		authorID := createTestUser(t, "author")
		readerID := createTestUser(t, "reader")
		categoryID := createTestCategory(t, "go", true)
		postID := createTestPost(t, authorID, "liked", time.Now().Add(-time.Hour), true, &categoryID)

		ctx := createUserContext(readerID)
		require.NoError(t, storage.Like(ctx, engagement.KindPost, postID))
		// повторный лайк не меняет ни множество ребер, ни счетчик
		require.NoError(t, storage.Like(ctx, engagement.KindPost, postID))

		count, err := storage.CountLikes(engagement.KindPost, postID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		var post models.Post
		require.NoError(t, DB.First(&post, postID).Error)
		assert.Equal(t, 1, post.TotalLikes)
	})

	t.Run("Counter follows the edge set", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		authorID := createTestUser(t, "author")
		firstID := createTestUser(t, "first")
		secondID := createTestUser(t, "second")
		categoryID := createTestCategory(t, "go", true)
		postID := createTestPost(t, authorID, "popular", time.Now().Add(-time.Hour), true, &categoryID)

		require.NoError(t, storage.Like(createUserContext(firstID), engagement.KindPost, postID))
		require.NoError(t, storage.Like(createUserContext(secondID), engagement.KindPost, postID))

		var post models.Post
		require.NoError(t, DB.First(&post, postID).Error)
		assert.Equal(t, 2, post.TotalLikes)

		require.NoError(t, storage.Unlike(createUserContext(firstID), engagement.KindPost, postID))

		require.NoError(t, DB.First(&post, postID).Error)
		assert.Equal(t, 1, post.TotalLikes)
	})

	t.Run("Drifted counter is repaired on next mutation", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		authorID := createTestUser(t, "author")
		readerID := createTestUser(t, "reader")
		categoryID := createTestCategory(t, "go", true)
		postID := createTestPost(t, authorID, "drifted", time.Now().Add(-time.Hour), true, &categoryID)

		// портим счетчик напрямую: пересчет от множества должен его починить
		require.NoError(t, DB.Model(&models.Post{}).Where("id = ?", postID).Update("total_likes", 42).Error)

		require.NoError(t, storage.Like(createUserContext(readerID), engagement.KindPost, postID))

		var post models.Post
		require.NoError(t, DB.First(&post, postID).Error)
		assert.Equal(t, 1, post.TotalLikes)
	})

	t.Run("Like not exist post", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		readerID := createTestUser(t, "reader")
		err := storage.Like(createUserContext(readerID), engagement.KindPost, 999)
		assert.ErrorIs(t, err, engagement.ErrItemNotFound)
	})

	t.Run("Like by unauthorized user", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		authorID := createTestUser(t, "author")
		categoryID := createTestCategory(t, "go", true)
		postID := createTestPost(t, authorID, "post", time.Now().Add(-time.Hour), true, &categoryID)

		err := storage.Like(context.Background(), engagement.KindPost, postID)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unauthorized")
	})
}

func TestLikePostgresStorage_UnlikePost(t *testing.T) {
	storage := NewLikePostgresStorage()

	t.Run("Unlike removes only own edge", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		authorID := createTestUser(t, "author")
		firstID := createTestUser(t, "first")
		secondID := createTestUser(t, "second")
		categoryID := createTestCategory(t, "go", true)
		postID := createTestPost(t, authorID, "post", time.Now().Add(-time.Hour), true, &categoryID)

		require.NoError(t, storage.Like(createUserContext(firstID), engagement.KindPost, postID))
		require.NoError(t, storage.Like(createUserContext(secondID), engagement.KindPost, postID))

		require.NoError(t, storage.Unlike(createUserContext(firstID), engagement.KindPost, postID))

		count, err := storage.CountLikes(engagement.KindPost, postID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("Unlike without edge is a no-op", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		authorID := createTestUser(t, "author")
		readerID := createTestUser(t, "reader")
		categoryID := createTestCategory(t, "go", true)
		postID := createTestPost(t, authorID, "post", time.Now().Add(-time.Hour), true, &categoryID)

		require.NoError(t, storage.Unlike(createUserContext(readerID), engagement.KindPost, postID))

		var post models.Post
		require.NoError(t, DB.First(&post, postID).Error)
		assert.Equal(t, 0, post.TotalLikes)
	})

	t.Run("Unlike not exist post", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		readerID := createTestUser(t, "reader")
		err := storage.Unlike(createUserContext(readerID), engagement.KindPost, 999)
		assert.ErrorIs(t, err, engagement.ErrItemNotFound)
	})
}

func TestLikePostgresStorage_CommentLikes(t *testing.T) {
	storage := NewLikePostgresStorage()

	t.Run("Like and unlike a comment", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		authorID := createTestUser(t, "author")
		readerID := createTestUser(t, "reader")
		categoryID := createTestCategory(t, "go", true)
		postID := createTestPost(t, authorID, "post", time.Now().Add(-time.Hour), true, &categoryID)

		commentStorage := NewCommentPostgresStorage()
		cmt, err := commentStorage.AddComment(createUserContext(authorID), postID, "comment")
		require.NoError(t, err)

		ctx := createUserContext(readerID)
		require.NoError(t, storage.Like(ctx, engagement.KindComment, cmt.ID))
		require.NoError(t, storage.Like(ctx, engagement.KindComment, cmt.ID))

		var dbComment models.Comment
		require.NoError(t, DB.First(&dbComment, cmt.ID).Error)
		assert.Equal(t, 1, dbComment.TotalLikes)

		require.NoError(t, storage.Unlike(ctx, engagement.KindComment, cmt.ID))

		require.NoError(t, DB.First(&dbComment, cmt.ID).Error)
		assert.Equal(t, 0, dbComment.TotalLikes)
	})

	t.Run("Like not exist comment", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		readerID := createTestUser(t, "reader")
		err := storage.Like(createUserContext(readerID), engagement.KindComment, 999)
		assert.ErrorIs(t, err, engagement.ErrItemNotFound)
	})
}
