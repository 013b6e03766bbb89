package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/prokopsimek/pmcrm/internal/domain"
	"github.com/prokopsimek/pmcrm/internal/storage"
)

func (s *Store) CreateOrganization(ctx context.Context, o *domain.Organization) error {
	o.CreatedAt = time.Now().UTC()
	o.UpdatedAt = o.CreatedAt

	query := `INSERT INTO organizations (id, account_id, name, domain, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query, o.ID, o.AccountID, o.Name, o.Domain, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create organization: %w", err)
	}
	return nil
}

func (s *Store) GetOrganization(ctx context.Context, accountID, id string) (*domain.Organization, error) {
	var o domain.Organization
	query := `SELECT * FROM organizations WHERE account_id = ? AND id = ?`
	if err := s.db.GetContext(ctx, &o, query, accountID, id); err != nil {
		return nil, notFound(err, "organization")
	}
	return &o, nil
}

func (s *Store) UpdateOrganization(ctx context.Context, o *domain.Organization) error {
	o.UpdatedAt = time.Now().UTC()

	query := `UPDATE organizations SET name = ?, domain = ?, updated_at = ?
	          WHERE account_id = ? AND id = ?`

	res, err := s.db.ExecContext(ctx, query, o.Name, o.Domain, o.UpdatedAt, o.AccountID, o.ID)
	if err != nil {
		return fmt.Errorf("failed to update organization: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound("organization not found")
	}
	return nil
}

func (s *Store) DeleteOrganization(ctx context.Context, accountID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM organizations WHERE account_id = ? AND id = ?`, accountID, id)
	if err != nil {
		return fmt.Errorf("failed to delete organization: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound("organization not found")
	}
	return nil
}

func (s *Store) ListOrganizations(ctx context.Context, accountID string, opts storage.ListOptions) ([]*domain.Organization, error) {
	query := `SELECT * FROM organizations WHERE account_id = ?
	          ORDER BY name, id LIMIT ? OFFSET ?`

	orgs := []*domain.Organization{}
	if err := s.db.SelectContext(ctx, &orgs, query, accountID, opts.Limit, opts.Offset); err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return orgs, nil
}
