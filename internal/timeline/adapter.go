// Package timeline implements the unified timeline aggregator: it merges the
// independently stored interaction histories of a contact (emails, meetings
// and calls, notes, third-party activities) into a single reverse-
// chronological, cursor-paginated feed.
package timeline

import (
	"context"
	"time"

	"github.com/prokopsimek/pmcrm/internal/domain"
)

// Scope identifies whose history is being read. AccountID and ContactID scope
// every source; UserID additionally scopes notes, which are private to their
// author.
type Scope struct {
	AccountID string
	ContactID string
	UserID    string
}

// FetchQuery is the per-adapter slice of a normalized timeline query. Types
// is the non-empty intersection of the requested types with the adapter's
// own; Before is a strict exclusive upper bound on the source timestamp.
type FetchQuery struct {
	Types  []domain.EventType
	Search string
	Before *time.Time
	Limit  int
}

// SourceAdapter wraps one backing event source behind a uniform contract.
//
// Fetch must return events strictly descending by OccurredAt, at most Limit
// of them, already normalized to the canonical shape. A store error is
// returned as-is; the engine never masks source failures with a partial feed.
//
// Count returns the total row count for the scope, ignoring search and
// cursor. It only feeds the advisory total.
type SourceAdapter interface {
	Name() string
	EventTypes() []domain.EventType
	Fetch(ctx context.Context, scope Scope, q FetchQuery) ([]domain.TimelineEvent, error)
	Count(ctx context.Context, scope Scope) (int, error)
}
