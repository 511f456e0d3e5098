package memory

import (
	"testing"

	"github.com/Filichkin/Blogicum/internal/follow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowMemoryStorage(t *testing.T) {
	f := newFixture(t)
	follows := NewFollowMemoryStorage(f.users)

	t.Run("Follow creates a directed edge", func(t *testing.T) {
		err := follows.Follow(createUserContext(f.reader.ID), f.author.ID)
		require.NoError(t, err)

		followers, err := follows.ListFollowers(f.author.ID)
		require.NoError(t, err)
		require.Len(t, followers, 1)
		assert.Equal(t, f.reader.ID, followers[0].ID)

		// подписка не взаимна
		followers, err = follows.ListFollowers(f.reader.ID)
		require.NoError(t, err)
		assert.Empty(t, followers)

		following, err := follows.ListFollowing(f.reader.ID)
		require.NoError(t, err)
		require.Len(t, following, 1)
		assert.Equal(t, f.author.ID, following[0].ID)
	})

	t.Run("Repeated follow does not create duplicate edges", func(t *testing.T) {
		err := follows.Follow(createUserContext(f.reader.ID), f.author.ID)
		require.NoError(t, err)

		followers, err := follows.ListFollowers(f.author.ID)
		require.NoError(t, err)
		assert.Len(t, followers, 1)
	})

	t.Run("Unfollow removes the edge", func(t *testing.T) {
		err := follows.Unfollow(createUserContext(f.reader.ID), f.author.ID)
		require.NoError(t, err)

		followers, err := follows.ListFollowers(f.author.ID)
		require.NoError(t, err)
		assert.Empty(t, followers)
	})

	t.Run("Unfollow without edge is a no-op", func(t *testing.T) {
		err := follows.Unfollow(createUserContext(f.reader.ID), f.author.ID)
		assert.NoError(t, err)
	})

	t.Run("Self-follow is rejected", func(t *testing.T) {
		err := follows.Follow(createUserContext(f.reader.ID), f.reader.ID)
		assert.ErrorIs(t, err, follow.ErrSelfFollow)
	})

	t.Run("Following a missing user", func(t *testing.T) {
		err := follows.Follow(createUserContext(f.reader.ID), 99999)
		assert.ErrorIs(t, err, follow.ErrUserNotFound)
	})
}
