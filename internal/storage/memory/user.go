package memory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/Filichkin/Blogicum/internal/auth"
	"github.com/Filichkin/Blogicum/internal/user"
	"github.com/Filichkin/Blogicum/models"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

type UserMemoryStorage struct {
	mu         sync.Mutex
	byID       map[uint]*models.User
	byUsername map[string]*models.User
	nextID     uint
}

func NewUserMemoryStorage() *UserMemoryStorage {
	return &UserMemoryStorage{
		byID:       make(map[uint]*models.User),
		byUsername: make(map[string]*models.User),
		nextID:     1,
	}
}

// cloneUser - копия пользователя; наружу отдаем только снимки,
// профиль может обновляться конкурентно с читателями
func cloneUser(u *models.User) *models.User {
	clone := *u
	return &clone
}

func (s *UserMemoryStorage) RegisterUser(username, email, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.byUsername[username]
	if exists {
		return nil, fmt.Errorf("user with username %s already exists", username)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
	}
	u.ID = s.nextID
	s.nextID++

	s.byID[u.ID] = u
	s.byUsername[username] = u

	return cloneUser(u), nil
}

func (s *UserMemoryStorage) LoginUser(username, password string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.byUsername[username]
	if !exists {
		return "", fmt.Errorf("user with username %s not found", username)
	}

	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	if err != nil {
		return "", fmt.Errorf("invalid password or username: %w", err)
	}

	// достаем из .env jwtSecret
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return "", errors.New("JWT_SECRET is not set in environment")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  u.ID,
		"username": u.Username,
		"exp":      time.Now().Add(72 * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

func (s *UserMemoryStorage) GetUserByID(id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.byID[id]
	if !exists {
		return nil, user.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (s *UserMemoryStorage) GetUserByUsername(username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.byUsername[username]
	if !exists {
		return nil, user.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (s *UserMemoryStorage) UpdateProfile(ctx context.Context, firstName, lastName, email string) (*models.User, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.byID[userID]
	if !exists {
		return nil, user.ErrUserNotFound
	}

	u.FirstName = firstName
	u.LastName = lastName
	u.Email = email

	return cloneUser(u), nil
}
