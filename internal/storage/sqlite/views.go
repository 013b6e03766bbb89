package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/prokopsimek/pmcrm/internal/domain"
)

func (s *Store) CreateSavedView(ctx context.Context, v *domain.SavedView) error {
	v.CreatedAt = time.Now().UTC()

	query := `INSERT INTO saved_views (id, account_id, user_id, name, filters, created_at)
	          VALUES (?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query, v.ID, v.AccountID, v.UserID, v.Name, v.Filters, v.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create saved view: %w", err)
	}
	return nil
}

func (s *Store) GetSavedView(ctx context.Context, accountID, id string) (*domain.SavedView, error) {
	var v domain.SavedView
	query := `SELECT * FROM saved_views WHERE account_id = ? AND id = ?`
	if err := s.db.GetContext(ctx, &v, query, accountID, id); err != nil {
		return nil, notFound(err, "saved view")
	}
	return &v, nil
}

func (s *Store) DeleteSavedView(ctx context.Context, accountID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM saved_views WHERE account_id = ? AND id = ?`, accountID, id)
	if err != nil {
		return fmt.Errorf("failed to delete saved view: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound("saved view not found")
	}
	return nil
}

func (s *Store) ListSavedViews(ctx context.Context, accountID, userID string) ([]*domain.SavedView, error) {
	query := `SELECT * FROM saved_views WHERE account_id = ? AND user_id = ?
	          ORDER BY created_at DESC, id`

	views := []*domain.SavedView{}
	if err := s.db.SelectContext(ctx, &views, query, accountID, userID); err != nil {
		return nil, fmt.Errorf("failed to list saved views: %w", err)
	}
	return views, nil
}
