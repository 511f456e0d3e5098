package memory

import (
	"testing"
	"time"

	"github.com/Filichkin/Blogicum/internal/blog"
	"github.com/Filichkin/Blogicum/internal/comment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentMemoryStorage_AddComment(t *testing.T) {
	f := newFixture(t)
	post := f.createPost(t, f.author.ID, "post", time.Now().Add(-time.Hour), true, &f.published.ID)

	t.Run("Success comment creation", func(t *testing.T) {
		cmt, err := f.comments.AddComment(createUserContext(f.reader.ID), post.ID, "hello")
		require.NoError(t, err)
		assert.Equal(t, "hello", cmt.Text)
		assert.Equal(t, post.ID, cmt.PostID)
		require.NotNil(t, cmt.AuthorID)
		assert.Equal(t, f.reader.ID, *cmt.AuthorID)
	})

	t.Run("Missing post", func(t *testing.T) {
		_, err := f.comments.AddComment(createUserContext(f.reader.ID), 99999, "hello")
		assert.ErrorIs(t, err, blog.ErrPostNotFound)
	})

	t.Run("Empty text", func(t *testing.T) {
		_, err := f.comments.AddComment(createUserContext(f.reader.ID), post.ID, "")
		assert.Error(t, err)
	})
}

func TestCommentMemoryStorage_EditComment(t *testing.T) {
	f := newFixture(t)
	post := f.createPost(t, f.author.ID, "post", time.Now().Add(-time.Hour), true, &f.published.ID)

	cmt, err := f.comments.AddComment(createUserContext(f.reader.ID), post.ID, "original")
	require.NoError(t, err)

	t.Run("Author edits own comment", func(t *testing.T) {
		edited, err := f.comments.EditComment(createUserContext(f.reader.ID), cmt.ID, "edited")
		require.NoError(t, err)
		assert.Equal(t, "edited", edited.Text)
	})

	t.Run("Other user gets forbidden and comment is unchanged", func(t *testing.T) {
		_, err := f.comments.EditComment(createUserContext(f.author.ID), cmt.ID, "hijacked")
		assert.ErrorIs(t, err, comment.ErrForbidden)

		got, err := f.comments.GetCommentByID(cmt.ID)
		require.NoError(t, err)
		assert.Equal(t, "edited", got.Text)
	})

	t.Run("Missing comment", func(t *testing.T) {
		_, err := f.comments.EditComment(createUserContext(f.reader.ID), 99999, "text")
		assert.ErrorIs(t, err, comment.ErrCommentNotFound)
	})
}

func TestCommentMemoryStorage_DeleteComment(t *testing.T) {
	f := newFixture(t)
	post := f.createPost(t, f.author.ID, "post", time.Now().Add(-time.Hour), true, &f.published.ID)

	cmt, err := f.comments.AddComment(createUserContext(f.reader.ID), post.ID, "to delete")
	require.NoError(t, err)

	t.Run("Other user gets forbidden", func(t *testing.T) {
		err := f.comments.DeleteComment(createUserContext(f.author.ID), cmt.ID)
		assert.ErrorIs(t, err, comment.ErrForbidden)

		_, err = f.comments.GetCommentByID(cmt.ID)
		assert.NoError(t, err)
	})

	t.Run("Author deletes own comment", func(t *testing.T) {
		err := f.comments.DeleteComment(createUserContext(f.reader.ID), cmt.ID)
		require.NoError(t, err)

		_, err = f.comments.GetCommentByID(cmt.ID)
		assert.ErrorIs(t, err, comment.ErrCommentNotFound)
	})
}

func TestCommentMemoryStorage_ListComments(t *testing.T) {
	f := newFixture(t)
	post := f.createPost(t, f.author.ID, "post", time.Now().Add(-time.Hour), true, &f.published.ID)
	other := f.createPost(t, f.author.ID, "other", time.Now().Add(-time.Hour), true, &f.published.ID)

	first, err := f.comments.AddComment(createUserContext(f.reader.ID), post.ID, "first")
	require.NoError(t, err)
	second, err := f.comments.AddComment(createUserContext(f.author.ID), post.ID, "second")
	require.NoError(t, err)
	_, err = f.comments.AddComment(createUserContext(f.reader.ID), other.ID, "elsewhere")
	require.NoError(t, err)

	comments, err := f.comments.ListComments(post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)

	// по возрастанию даты создания
	assert.Equal(t, first.ID, comments[0].ID)
	assert.Equal(t, second.ID, comments[1].ID)

	assert.Equal(t, 2, f.comments.CountForPost(post.ID))
	assert.Equal(t, 1, f.comments.CountForPost(other.ID))
}
