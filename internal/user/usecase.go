package user

import (
	"context"

	"stocktrack/internal/model"
	"stocktrack/internal/user/dto"
)

type UseCase interface {
	Register(ctx context.Context, input *dto.RegisterInput) (*model.User, error)
	// Login verifies credentials and returns a signed bearer token.
	Login(ctx context.Context, input *dto.LoginInput) (string, error)
}
