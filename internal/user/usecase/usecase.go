package usecase

import (
	"context"
	"fmt"
	"strings"

	"stocktrack/internal/auth"
	"stocktrack/internal/model"
	"stocktrack/internal/user"
	"stocktrack/internal/user/dto"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxUsernameLen = 64
	minPasswordLen = 8
)

type userUseCase struct {
	repo   user.Repository
	tokens *auth.TokenManager
	logger *zap.Logger
}

func NewUserUseCase(repo user.Repository, tokens *auth.TokenManager, log *zap.Logger) user.UseCase {
	return &userUseCase{
		repo:   repo,
		tokens: tokens,
		logger: log,
	}
}

func (uc *userUseCase) Register(ctx context.Context, input *dto.RegisterInput) (*model.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || len(username) > maxUsernameLen {
		return nil, fmt.Errorf("%w: username must be 1-%d characters", user.ErrInvalidUser, maxUsernameLen)
	}
	if len(input.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", user.ErrInvalidUser, minPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := uc.repo.Create(ctx, &model.User{
		Username:     username,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("user registered", zap.String("username", created.Username))
	return created, nil
}

func (uc *userUseCase) Login(ctx context.Context, input *dto.LoginInput) (string, error) {
	u, err := uc.repo.FindByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", user.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)); err != nil {
		return "", user.ErrInvalidCredentials
	}

	return uc.tokens.Issue(u)
}
