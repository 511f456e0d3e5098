package authz

import (
	"testing"

	"github.com/Filichkin/Blogicum/models"
	"github.com/stretchr/testify/assert"
)

func TestCanMutate(t *testing.T) {
	t.Run("Author can mutate own post", func(t *testing.T) {
		post := &models.Post{AuthorID: 42}
		assert.True(t, CanMutate(42, post))
	})

	t.Run("Other user cannot mutate post", func(t *testing.T) {
		post := &models.Post{AuthorID: 42}
		assert.False(t, CanMutate(7, post))
	})

	t.Run("Anonymous viewer cannot mutate", func(t *testing.T) {
		post := &models.Post{AuthorID: 42}
		assert.False(t, CanMutate(0, post))
	})

	t.Run("Author can mutate own comment", func(t *testing.T) {
		authorID := uint(42)
		cmt := &models.Comment{AuthorID: &authorID}
		assert.True(t, CanMutate(42, cmt))
	})

	t.Run("Comment with cleared author cannot be mutated", func(t *testing.T) {
		// автор аккаунта удален - комментарий остается, но без владельца
		cmt := &models.Comment{AuthorID: nil}
		assert.False(t, CanMutate(42, cmt))
	})

	t.Run("Post with author 0 is not mutable by anonymous", func(t *testing.T) {
		post := &models.Post{AuthorID: 0}
		assert.False(t, CanMutate(0, post))
	})
}
