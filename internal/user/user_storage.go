package user

import (
	"context"
	"errors"

	"github.com/Filichkin/Blogicum/models"
)

var ErrUserNotFound = errors.New("user not found")

type UserStorage interface {
	RegisterUser(username, email, password string) (*models.User, error)
	LoginUser(username, password string) (string, error) // JWT

	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	UpdateProfile(ctx context.Context, firstName, lastName, email string) (*models.User, error)
}
