package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/prokopsimek/pmcrm/internal/storage"
)

type emailRow struct {
	ID         string         `db:"id"`
	AccountID  string         `db:"account_id"`
	ContactID  string         `db:"contact_id"`
	ThreadID   string         `db:"thread_id"`
	Subject    string         `db:"subject"`
	Snippet    string         `db:"snippet"`
	Direction  string         `db:"direction"`
	Source     string         `db:"source"`
	Metadata   sql.NullString `db:"metadata"`
	OccurredAt time.Time      `db:"occurred_at"`
}

func (r *emailRow) toEmail() (*storage.Email, error) {
	meta, err := unmarshalMetadata(r.Metadata)
	if err != nil {
		return nil, err
	}
	return &storage.Email{
		ID:         r.ID,
		AccountID:  r.AccountID,
		ContactID:  r.ContactID,
		ThreadID:   r.ThreadID,
		Subject:    r.Subject,
		Snippet:    r.Snippet,
		Direction:  r.Direction,
		Source:     r.Source,
		Metadata:   meta,
		OccurredAt: r.OccurredAt,
	}, nil
}

func (s *Store) CreateEmail(ctx context.Context, e *storage.Email) error {
	meta, err := marshalMetadata(e.Metadata)
	if err != nil {
		return err
	}

	query := `INSERT INTO emails (id, account_id, contact_id, thread_id, subject, snippet, direction, source, metadata, occurred_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.ExecContext(ctx, query,
		e.ID, e.AccountID, e.ContactID, e.ThreadID, e.Subject, e.Snippet, e.Direction, e.Source, meta, e.OccurredAt)
	if err != nil {
		return fmt.Errorf("failed to create email: %w", err)
	}
	return nil
}

func (s *Store) ListEmails(ctx context.Context, accountID, contactID string, f storage.EventFilter) ([]*storage.Email, error) {
	query := `SELECT * FROM emails WHERE account_id = ? AND contact_id = ?`
	args := []any{accountID, contactID}

	if f.Search != "" {
		query += ` AND (subject LIKE ? OR snippet LIKE ?)`
		pattern := likePattern(f.Search)
		args = append(args, pattern, pattern)
	}
	if f.Before != nil {
		query += ` AND occurred_at < ?`
		args = append(args, *f.Before)
	}
	query += ` ORDER BY occurred_at DESC, id DESC LIMIT ?`
	args = append(args, f.Limit)

	rows := []emailRow{}
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list emails: %w", err)
	}

	emails := make([]*storage.Email, 0, len(rows))
	for i := range rows {
		e, err := rows[i].toEmail()
		if err != nil {
			return nil, err
		}
		emails = append(emails, e)
	}
	return emails, nil
}

func (s *Store) CountEmails(ctx context.Context, accountID, contactID string) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM emails WHERE account_id = ? AND contact_id = ?`
	if err := s.db.GetContext(ctx, &n, query, accountID, contactID); err != nil {
		return 0, fmt.Errorf("failed to count emails: %w", err)
	}
	return n, nil
}
