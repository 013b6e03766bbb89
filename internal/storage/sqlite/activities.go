package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/prokopsimek/pmcrm/internal/storage"
)

type activityRow struct {
	ID           string         `db:"id"`
	AccountID    string         `db:"account_id"`
	ContactID    string         `db:"contact_id"`
	ActivityType string         `db:"activity_type"`
	Title        string         `db:"title"`
	Description  string         `db:"description"`
	ExternalID   string         `db:"external_id"`
	Source       string         `db:"source"`
	Metadata     sql.NullString `db:"metadata"`
	OccurredAt   time.Time      `db:"occurred_at"`
}

func (r *activityRow) toActivity() (*storage.Activity, error) {
	meta, err := unmarshalMetadata(r.Metadata)
	if err != nil {
		return nil, err
	}
	return &storage.Activity{
		ID:           r.ID,
		AccountID:    r.AccountID,
		ContactID:    r.ContactID,
		ActivityType: r.ActivityType,
		Title:        r.Title,
		Description:  r.Description,
		ExternalID:   r.ExternalID,
		Source:       r.Source,
		Metadata:     meta,
		OccurredAt:   r.OccurredAt,
	}, nil
}

func (s *Store) CreateActivity(ctx context.Context, a *storage.Activity) error {
	meta, err := marshalMetadata(a.Metadata)
	if err != nil {
		return err
	}

	query := `INSERT INTO activities (id, account_id, contact_id, activity_type, title, description, external_id, source, metadata, occurred_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.ExecContext(ctx, query,
		a.ID, a.AccountID, a.ContactID, a.ActivityType, a.Title, a.Description, a.ExternalID, a.Source, meta, a.OccurredAt)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

func (s *Store) ListActivities(ctx context.Context, accountID, contactID string, tags []string, includeUnknown bool, knownTags []string, f storage.EventFilter) ([]*storage.Activity, error) {
	if len(tags) == 0 && !includeUnknown {
		return []*storage.Activity{}, nil
	}

	query := `SELECT * FROM activities WHERE account_id = ? AND contact_id = ?`
	args := []any{accountID, contactID}

	// Tag filter: explicitly requested native tags, optionally plus any tag
	// outside the known mapping (those normalize to the "other" event type).
	var tagClauses []string
	if len(tags) > 0 {
		tagClauses = append(tagClauses, `activity_type IN (?)`)
		args = append(args, tags)
	}
	if includeUnknown && len(knownTags) > 0 {
		tagClauses = append(tagClauses, `activity_type NOT IN (?)`)
		args = append(args, knownTags)
	}
	if len(tagClauses) > 0 {
		query += ` AND (` + strings.Join(tagClauses, ` OR `) + `)`
	}

	if f.Search != "" {
		query += ` AND (title LIKE ? OR description LIKE ?)`
		pattern := likePattern(f.Search)
		args = append(args, pattern, pattern)
	}
	if f.Before != nil {
		query += ` AND occurred_at < ?`
		args = append(args, *f.Before)
	}
	query += ` ORDER BY occurred_at DESC, id DESC LIMIT ?`
	args = append(args, f.Limit)

	query, expanded, err := sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to build activities query: %w", err)
	}

	rows := []activityRow{}
	if err := s.db.SelectContext(ctx, &rows, query, expanded...); err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	activities := make([]*storage.Activity, 0, len(rows))
	for i := range rows {
		a, err := rows[i].toActivity()
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, nil
}

func (s *Store) CountActivities(ctx context.Context, accountID, contactID string) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM activities WHERE account_id = ? AND contact_id = ?`
	if err := s.db.GetContext(ctx, &n, query, accountID, contactID); err != nil {
		return 0, fmt.Errorf("failed to count activities: %w", err)
	}
	return n, nil
}
