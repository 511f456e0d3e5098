package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/Filichkin/Blogicum/internal/auth"
	"github.com/Filichkin/Blogicum/internal/engagement"
)

type LikeMemoryStorage struct {
	mu           sync.Mutex
	postLikes    map[uint]map[uint]struct{} // postID -> множество userID
	commentLikes map[uint]map[uint]struct{} // commentID -> множество userID

	postStorage    *PostMemoryStorage
	commentStorage *CommentMemoryStorage
}

func NewLikeMemoryStorage(postStore *PostMemoryStorage, commentStore *CommentMemoryStorage) *LikeMemoryStorage {
	return &LikeMemoryStorage{
		postLikes:      make(map[uint]map[uint]struct{}),
		commentLikes:   make(map[uint]map[uint]struct{}),
		postStorage:    postStore,
		commentStorage: commentStore,
	}
}

func (s *LikeMemoryStorage) Like(ctx context.Context, kind engagement.ItemKind, itemID uint) error {
	return s.mutate(ctx, kind, itemID, true)
}

func (s *LikeMemoryStorage) Unlike(ctx context.Context, kind engagement.ItemKind, itemID uint) error {
	return s.mutate(ctx, kind, itemID, false)
}

// mutate изменяет множество ребер и тут же пересчитывает total_likes от его
// мощности. Счетчик пишется через setTotalLikes владеющего хранилища, под его
// мьютексом: читатели лент снимают копии под тем же замком и не делят
// изменяемую память с ребрами. Порядок захвата всегда лайки ->
// посты/комментарии, обратных вызовов из тех хранилищ сюда нет.
func (s *LikeMemoryStorage) mutate(ctx context.Context, kind engagement.ItemKind, itemID uint, add bool) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	switch kind {
	case engagement.KindPost:
		if _, err := s.postStorage.GetPostByID(itemID); err != nil {
			return engagement.ErrItemNotFound
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		edges, ok := s.postLikes[itemID]
		if !ok {
			edges = make(map[uint]struct{})
			s.postLikes[itemID] = edges
		}
		if add {
			edges[userID] = struct{}{} // повторный лайк - no-op
		} else {
			delete(edges, userID) // снятие отсутствующего лайка - no-op
		}
		// пересчет от множества, не инкремент
		s.postStorage.setTotalLikes(itemID, len(edges))

	case engagement.KindComment:
		if _, err := s.commentStorage.GetCommentByID(itemID); err != nil {
			return engagement.ErrItemNotFound
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		edges, ok := s.commentLikes[itemID]
		if !ok {
			edges = make(map[uint]struct{})
			s.commentLikes[itemID] = edges
		}
		if add {
			edges[userID] = struct{}{}
		} else {
			delete(edges, userID)
		}
		s.commentStorage.setTotalLikes(itemID, len(edges))

	default:
		return fmt.Errorf("unknown item kind %q", kind)
	}

	return nil
}

func (s *LikeMemoryStorage) CountLikes(kind engagement.ItemKind, itemID uint) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch kind {
	case engagement.KindPost:
		return len(s.postLikes[itemID]), nil
	case engagement.KindComment:
		return len(s.commentLikes[itemID]), nil
	default:
		return 0, fmt.Errorf("unknown item kind %q", kind)
	}
}
