package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/prokopsimek/pmcrm/internal/domain"
	"github.com/prokopsimek/pmcrm/internal/storage"
)

func (s *Store) CreateContact(ctx context.Context, c *domain.Contact) error {
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt

	query := `INSERT INTO contacts (id, account_id, organization_id, first_name, last_name, email, title, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		c.ID, c.AccountID, c.OrganizationID, c.FirstName, c.LastName, c.Email, c.Title, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

func (s *Store) GetContact(ctx context.Context, accountID, id string) (*domain.Contact, error) {
	var c domain.Contact
	query := `SELECT * FROM contacts WHERE account_id = ? AND id = ?`
	if err := s.db.GetContext(ctx, &c, query, accountID, id); err != nil {
		return nil, notFound(err, "contact")
	}
	return &c, nil
}

func (s *Store) UpdateContact(ctx context.Context, c *domain.Contact) error {
	c.UpdatedAt = time.Now().UTC()

	query := `UPDATE contacts
	          SET organization_id = ?, first_name = ?, last_name = ?, email = ?, title = ?, updated_at = ?
	          WHERE account_id = ? AND id = ?`

	res, err := s.db.ExecContext(ctx, query,
		c.OrganizationID, c.FirstName, c.LastName, c.Email, c.Title, c.UpdatedAt, c.AccountID, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound("contact not found")
	}
	return nil
}

func (s *Store) DeleteContact(ctx context.Context, accountID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM contacts WHERE account_id = ? AND id = ?`, accountID, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound("contact not found")
	}
	return nil
}

func (s *Store) ListContacts(ctx context.Context, accountID string, opts storage.ListOptions) ([]*domain.Contact, error) {
	query := `SELECT * FROM contacts WHERE account_id = ?
	          ORDER BY last_name, first_name, id LIMIT ? OFFSET ?`

	contacts := []*domain.Contact{}
	if err := s.db.SelectContext(ctx, &contacts, query, accountID, opts.Limit, opts.Offset); err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, nil
}
