package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/prokopsimek/pmcrm/internal/domain"
	"github.com/prokopsimek/pmcrm/internal/storage"
)

type noteRow struct {
	ID        string    `db:"id"`
	AccountID string    `db:"account_id"`
	ContactID string    `db:"contact_id"`
	UserID    string    `db:"user_id"`
	Content   string    `db:"content"`
	Pinned    bool      `db:"pinned"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *noteRow) toNote() *storage.Note {
	return &storage.Note{
		ID:        r.ID,
		AccountID: r.AccountID,
		ContactID: r.ContactID,
		UserID:    r.UserID,
		Content:   r.Content,
		Pinned:    r.Pinned,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (s *Store) CreateNote(ctx context.Context, n *storage.Note) error {
	n.CreatedAt = time.Now().UTC()
	n.UpdatedAt = n.CreatedAt

	query := `INSERT INTO notes (id, account_id, contact_id, user_id, content, pinned, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		n.ID, n.AccountID, n.ContactID, n.UserID, n.Content, n.Pinned, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	return nil
}

func (s *Store) UpdateNote(ctx context.Context, n *storage.Note) error {
	n.UpdatedAt = time.Now().UTC()

	query := `UPDATE notes SET content = ?, pinned = ?, updated_at = ?
	          WHERE account_id = ? AND user_id = ? AND id = ?`

	res, err := s.db.ExecContext(ctx, query, n.Content, n.Pinned, n.UpdatedAt, n.AccountID, n.UserID, n.ID)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return domain.ErrNotFound("note not found")
	}
	return nil
}

func (s *Store) DeleteNote(ctx context.Context, accountID, userID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE account_id = ? AND user_id = ? AND id = ?`, accountID, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return domain.ErrNotFound("note not found")
	}
	return nil
}

// ListNotes scopes by authoring user in addition to account and contact;
// notes are private to their author.
func (s *Store) ListNotes(ctx context.Context, accountID, contactID, userID string, f storage.EventFilter) ([]*storage.Note, error) {
	query := `SELECT * FROM notes WHERE account_id = ? AND contact_id = ? AND user_id = ?`
	args := []any{accountID, contactID, userID}

	if f.Search != "" {
		query += ` AND content LIKE ?`
		args = append(args, likePattern(f.Search))
	}
	if f.Before != nil {
		query += ` AND created_at < ?`
		args = append(args, *f.Before)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, f.Limit)

	rows := []noteRow{}
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	notes := make([]*storage.Note, 0, len(rows))
	for i := range rows {
		notes = append(notes, rows[i].toNote())
	}
	return notes, nil
}

func (s *Store) CountNotes(ctx context.Context, accountID, contactID, userID string) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM notes WHERE account_id = ? AND contact_id = ? AND user_id = ?`
	if err := s.db.GetContext(ctx, &n, query, accountID, contactID, userID); err != nil {
		return 0, fmt.Errorf("failed to count notes: %w", err)
	}
	return n, nil
}
