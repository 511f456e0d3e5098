package engagement

import (
	"context"
	"errors"
)

// ItemKind - тип лайкаемого объекта.
type ItemKind string

const (
	KindPost    ItemKind = "post"
	KindComment ItemKind = "comment"
)

var ErrItemNotFound = errors.New("item not found")

// LikeStorage поддерживает множество лайков и денормализованный счетчик
// total_likes на объекте.
//
// Повторный лайк и снятие отсутствующего лайка - no-op. После каждой мутации
// счетчик пересчитывается от мощности множества ребер (никогда не
// инкрементируется) атомарно с самой мутацией: наблюдать ребро без
// соответствующего счетчика нельзя.
type LikeStorage interface {
	Like(ctx context.Context, kind ItemKind, itemID uint) error
	Unlike(ctx context.Context, kind ItemKind, itemID uint) error

	// CountLikes - мощность множества ребер (не денормализованный счетчик)
	CountLikes(kind ItemKind, itemID uint) (int, error)
}
