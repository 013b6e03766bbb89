package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/prokopsimek/pmcrm/internal/domain"
)

func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	u.CreatedAt = time.Now().UTC()

	query := `INSERT INTO users (id, account_id, email, name, api_key_hash, onboarded_at, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		u.ID, u.AccountID, u.Email, u.Name, u.APIKeyHash, u.OnboardedAt, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *Store) GetUserByAPIKeyHash(ctx context.Context, keyHash string) (*domain.User, error) {
	var u domain.User
	query := `SELECT * FROM users WHERE api_key_hash = ?`
	if err := s.db.GetContext(ctx, &u, query, keyHash); err != nil {
		return nil, notFound(err, "user")
	}
	return &u, nil
}

func (s *Store) MarkUserOnboarded(ctx context.Context, accountID, id string, at time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET onboarded_at = ? WHERE id = ? AND account_id = ?`, at, id, accountID)
	if err != nil {
		return fmt.Errorf("failed to mark user onboarded: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound("user not found")
	}
	return nil
}
