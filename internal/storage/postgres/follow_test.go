package postgres

import (
	"context"
	"testing"

	"github.com/Filichkin/Blogicum/internal/follow"
	"github.com/Filichkin/Blogicum/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowPostgresStorage_Follow(t *testing.T) {
	storage := NewFollowPostgresStorage()

	t.Run("Follow creates a directed edge", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		aliceID := createTestUser(t, "alice")
		bobID := createTestUser(t, "bob")

		require.NoError(t, storage.Follow(createUserContext(aliceID), bobID))

		following, err := storage.ListFollowing(aliceID)
		require.NoError(t, err)
		require.Len(t, following, 1)
		assert.Equal(t, bobID, following[0].ID)

		followers, err := storage.ListFollowers(bobID)
		require.NoError(t, err)
		require.Len(t, followers, 1)
		assert.Equal(t, aliceID, followers[0].ID)

		// подписка направленная: обратного ребра нет
		followers, err = storage.ListFollowers(aliceID)
		require.NoError(t, err)
		assert.Empty(t, followers)
	})

	t.Run("Repeated follow does not create duplicate edges", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		aliceID := createTestUser(t, "alice")
		bobID := createTestUser(t, "bob")

		require.NoError(t, storage.Follow(createUserContext(aliceID), bobID))
		require.NoError(t, storage.Follow(createUserContext(aliceID), bobID))

		var count int
		DB.Model(&models.Follow{}).Where("follower_id = ? AND followed_id = ?", aliceID, bobID).Count(&count)
		assert.Equal(t, 1, count)
	})

	t.Run("Self-follow is rejected", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		aliceID := createTestUser(t, "alice")

		err := storage.Follow(createUserContext(aliceID), aliceID)
		assert.ErrorIs(t, err, follow.ErrSelfFollow)
	})

	t.Run("Follow not exist user", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		aliceID := createTestUser(t, "alice")

		err := storage.Follow(createUserContext(aliceID), 999)
		assert.ErrorIs(t, err, follow.ErrUserNotFound)
	})

	t.Run("Follow by unauthorized user", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		bobID := createTestUser(t, "bob")

		err := storage.Follow(context.Background(), bobID)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unauthorized")
	})
}

func TestFollowPostgresStorage_Unfollow(t *testing.T) {
	storage := NewFollowPostgresStorage()

	t.Run("Unfollow removes the edge", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		aliceID := createTestUser(t, "alice")
		bobID := createTestUser(t, "bob")

		require.NoError(t, storage.Follow(createUserContext(aliceID), bobID))
		require.NoError(t, storage.Unfollow(createUserContext(aliceID), bobID))

		following, err := storage.ListFollowing(aliceID)
		require.NoError(t, err)
		assert.Empty(t, following)
	})

	t.Run("Unfollow without edge is a no-op", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		aliceID := createTestUser(t, "alice")
		bobID := createTestUser(t, "bob")

		assert.NoError(t, storage.Unfollow(createUserContext(aliceID), bobID))
	})

	t.Run("Unfollow does not touch other edges", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		aliceID := createTestUser(t, "alice")
		bobID := createTestUser(t, "bob")
		carolID := createTestUser(t, "carol")

		require.NoError(t, storage.Follow(createUserContext(aliceID), bobID))
		require.NoError(t, storage.Follow(createUserContext(carolID), bobID))

		require.NoError(t, storage.Unfollow(createUserContext(aliceID), bobID))

		followers, err := storage.ListFollowers(bobID)
		require.NoError(t, err)
		require.Len(t, followers, 1)
		assert.Equal(t, carolID, followers[0].ID)
	})
}
