package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Filichkin/Blogicum/internal/auth"
	"github.com/Filichkin/Blogicum/internal/follow"
	"github.com/Filichkin/Blogicum/internal/user"
	"github.com/Filichkin/Blogicum/models"
)

type FollowMemoryStorage struct {
	mu    sync.Mutex
	edges map[uint]map[uint]struct{} // followerID -> множество followedID

	userStorage user.UserStorage
}

func NewFollowMemoryStorage(userStore user.UserStorage) *FollowMemoryStorage {
	return &FollowMemoryStorage{
		edges:       make(map[uint]map[uint]struct{}),
		userStorage: userStore,
	}
}

func (s *FollowMemoryStorage) Follow(ctx context.Context, userID uint) error {
	followerID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	if followerID == userID {
		return follow.ErrSelfFollow
	}

	if _, err := s.userStorage.GetUserByID(userID); err != nil {
		return follow.ErrUserNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	followed, ok := s.edges[followerID]
	if !ok {
		followed = make(map[uint]struct{})
		s.edges[followerID] = followed
	}
	followed[userID] = struct{}{} // повторная подписка - no-op

	return nil
}

func (s *FollowMemoryStorage) Unfollow(ctx context.Context, userID uint) error {
	followerID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.edges[followerID], userID) // отписка без подписки - no-op
	return nil
}

func (s *FollowMemoryStorage) ListFollowers(userID uint) ([]*models.User, error) {
	s.mu.Lock()
	var ids []uint
	for followerID, followed := range s.edges {
		if _, ok := followed[userID]; ok {
			ids = append(ids, followerID)
		}
	}
	s.mu.Unlock()

	return s.resolveUsers(ids)
}

func (s *FollowMemoryStorage) ListFollowing(userID uint) ([]*models.User, error) {
	s.mu.Lock()
	var ids []uint
	for followedID := range s.edges[userID] {
		ids = append(ids, followedID)
	}
	s.mu.Unlock()

	return s.resolveUsers(ids)
}

func (s *FollowMemoryStorage) resolveUsers(ids []uint) ([]*models.User, error) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var users []*models.User
	for _, id := range ids {
		u, err := s.userStorage.GetUserByID(id)
		if err != nil {
			continue // пользователь удален - пропускаем
		}
		users = append(users, u)
	}
	return users, nil
}
