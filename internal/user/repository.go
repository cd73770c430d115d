package user

import (
	"context"
	"errors"

	"stocktrack/internal/model"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidUser        = errors.New("invalid user input")
)

// Repository is engine-agnostic: user SQL needs nothing beyond ? placeholders
// and sqlx rebinding, so one implementation serves both backends.
type Repository interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}
