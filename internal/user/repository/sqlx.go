package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"stocktrack/internal/model"
	"stocktrack/internal/user"

	"github.com/jmoiron/sqlx"
)

type SQLRepository struct {
	DB *sqlx.DB
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{DB: db}
}

func (r *SQLRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	// Existence pre-check instead of decoding engine-specific unique-violation
	// errors; the username column stays UNIQUE so a race still cannot produce
	// duplicates, it just surfaces as a raw engine error.
	existing, err := r.FindByUsername(ctx, u.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, user.ErrUsernameTaken
	}

	query := r.DB.Rebind(`INSERT INTO users (username, password_hash) VALUES (?, ?)`)
	if _, err := r.DB.ExecContext(ctx, query, u.Username, u.PasswordHash); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created, err := r.FindByUsername(ctx, u.Username)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("reload user %q: row missing after insert", u.Username)
	}
	return created, nil
}

func (r *SQLRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	query := r.DB.Rebind(`SELECT * FROM users WHERE username = ?`)
	err := r.DB.GetContext(ctx, &u, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
