package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/prokopsimek/pmcrm/internal/storage"
)

type meetingRow struct {
	ID          string         `db:"id"`
	AccountID   string         `db:"account_id"`
	ContactID   string         `db:"contact_id"`
	ExternalID  string         `db:"external_id"`
	MeetingType string         `db:"meeting_type"`
	Subject     string         `db:"subject"`
	Summary     string         `db:"summary"`
	Source      string         `db:"source"`
	Metadata    sql.NullString `db:"metadata"`
	OccurredAt  time.Time      `db:"occurred_at"`
}

func (r *meetingRow) toMeeting() (*storage.Meeting, error) {
	meta, err := unmarshalMetadata(r.Metadata)
	if err != nil {
		return nil, err
	}
	return &storage.Meeting{
		ID:          r.ID,
		AccountID:   r.AccountID,
		ContactID:   r.ContactID,
		ExternalID:  r.ExternalID,
		MeetingType: r.MeetingType,
		Subject:     r.Subject,
		Summary:     r.Summary,
		Source:      r.Source,
		Metadata:    meta,
		OccurredAt:  r.OccurredAt,
	}, nil
}

func (s *Store) CreateMeeting(ctx context.Context, m *storage.Meeting) error {
	meta, err := marshalMetadata(m.Metadata)
	if err != nil {
		return err
	}

	query := `INSERT INTO meetings (id, account_id, contact_id, external_id, meeting_type, subject, summary, source, metadata, occurred_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.ExecContext(ctx, query,
		m.ID, m.AccountID, m.ContactID, m.ExternalID, m.MeetingType, m.Subject, m.Summary, m.Source, meta, m.OccurredAt)
	if err != nil {
		return fmt.Errorf("failed to create meeting: %w", err)
	}
	return nil
}

func (s *Store) ListMeetings(ctx context.Context, accountID, contactID string, meetingTypes []string, f storage.EventFilter) ([]*storage.Meeting, error) {
	if len(meetingTypes) == 0 {
		return []*storage.Meeting{}, nil
	}

	query := `SELECT * FROM meetings WHERE account_id = ? AND contact_id = ? AND meeting_type IN (?)`
	args := []any{accountID, contactID, meetingTypes}

	if f.Search != "" {
		query += ` AND (subject LIKE ? OR summary LIKE ?)`
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
		return nil, fmt.Errorf("failed to build meetings query: %w", err)
	}

	rows := []meetingRow{}
	if err := s.db.SelectContext(ctx, &rows, query, expanded...); err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}

	meetings := make([]*storage.Meeting, 0, len(rows))
	for i := range rows {
		m, err := rows[i].toMeeting()
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, m)
	}
	return meetings, nil
}

func (s *Store) CountMeetings(ctx context.Context, accountID, contactID string) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM meetings WHERE account_id = ? AND contact_id = ?`
	if err := s.db.GetContext(ctx, &n, query, accountID, contactID); err != nil {
		return 0, fmt.Errorf("failed to count meetings: %w", err)
	}
	return n, nil
}
