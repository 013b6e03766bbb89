// Package storage defines the persistence interfaces the CRM is built
// against. Implementations live in subpackages; callers depend only on the
// interfaces here so the backing store stays swappable.
package storage

import (
	"context"
	"time"

	"github.com/prokopsimek/pmcrm/internal/domain"
)

// Email is one message from a synced mailbox thread.
type Email struct {
	ID         string
	AccountID  string
	ContactID  string
	ThreadID   string
	Subject    string
	Snippet    string
	Direction  string
	Source     string
	Metadata   map[string]any
	OccurredAt time.Time
}

// Meeting is a calendar meeting or logged call. MeetingType is either
// "meeting" or "call".
type Meeting struct {
	ID          string
	AccountID   string
	ContactID   string
	ExternalID  string
	MeetingType string
	Subject     string
	Summary     string
	Source      string
	Metadata    map[string]any
	OccurredAt  time.Time
}

// Note is a manual note a user wrote on a contact. Notes carry no occurrence
// timestamp of their own; creation time stands in for ordering.
type Note struct {
	ID        string
	AccountID string
	ContactID string
	UserID    string
	Content   string
	Pinned    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Activity is a record imported from a third-party integration. ActivityType
// is the integration's native tag (e.g. "linkedin_message") and is mapped to
// a canonical event type by the timeline normalizer.
type Activity struct {
	ID           string
	AccountID    string
	ContactID    string
	ActivityType string
	Title        string
	Description  string
	ExternalID   string
	Source       string
	Metadata     map[string]any
	OccurredAt   time.Time
}

// EventFilter is the common fetch filter for the four event sources.
// Before is an exclusive upper bound on the source's ordering timestamp;
// Search is a case-insensitive substring match against the source's own
// text fields.
type EventFilter struct {
	Search string
	Before *time.Time
	Limit  int
}

// ListOptions is the common offset pagination for CRUD listings.
type ListOptions struct {
	Limit  int
	Offset int
}

// ContactStore manages contacts, always scoped by account.
type ContactStore interface {
	CreateContact(ctx context.Context, c *domain.Contact) error
	// GetContact returns domain.ErrNotFound when the contact does not exist
	// or belongs to another account.
	GetContact(ctx context.Context, accountID, id string) (*domain.Contact, error)
	UpdateContact(ctx context.Context, c *domain.Contact) error
	DeleteContact(ctx context.Context, accountID, id string) error
	ListContacts(ctx context.Context, accountID string, opts ListOptions) ([]*domain.Contact, error)
}

// OrganizationStore manages organizations, always scoped by account.
type OrganizationStore interface {
	CreateOrganization(ctx context.Context, o *domain.Organization) error
	GetOrganization(ctx context.Context, accountID, id string) (*domain.Organization, error)
	UpdateOrganization(ctx context.Context, o *domain.Organization) error
	DeleteOrganization(ctx context.Context, accountID, id string) error
	ListOrganizations(ctx context.Context, accountID string, opts ListOptions) ([]*domain.Organization, error)
}

// SavedViewStore manages saved filter views.
type SavedViewStore interface {
	CreateSavedView(ctx context.Context, v *domain.SavedView) error
	GetSavedView(ctx context.Context, accountID, id string) (*domain.SavedView, error)
	DeleteSavedView(ctx context.Context, accountID, id string) error
	ListSavedViews(ctx context.Context, accountID, userID string) ([]*domain.SavedView, error)
}

// UserStore resolves and provisions users.
type UserStore interface {
	CreateUser(ctx context.Context, u *domain.User) error
	// GetUserByAPIKeyHash returns domain.ErrNotFound when no user matches.
	GetUserByAPIKeyHash(ctx context.Context, keyHash string) (*domain.User, error)
	// MarkUserOnboarded records when a user finished onboarding. The id is
	// checked within the given account.
	MarkUserOnboarded(ctx context.Context, accountID, id string, at time.Time) error
}

// EmailStore reads the synced email source for the timeline.
type EmailStore interface {
	CreateEmail(ctx context.Context, e *Email) error
	// ListEmails returns up to f.Limit rows strictly descending by
	// occurred_at, filtered by f.Before (exclusive) and f.Search against
	// subject and snippet.
	ListEmails(ctx context.Context, accountID, contactID string, f EventFilter) ([]*Email, error)
	// CountEmails ignores search and cursor; it backs the approximate total.
	CountEmails(ctx context.Context, accountID, contactID string) (int, error)
}

// MeetingStore reads the meeting/call source for the timeline.
type MeetingStore interface {
	CreateMeeting(ctx context.Context, m *Meeting) error
	// ListMeetings restricts rows to the given meeting types ("meeting",
	// "call"); f.Search matches subject and summary.
	ListMeetings(ctx context.Context, accountID, contactID string, meetingTypes []string, f EventFilter) ([]*Meeting, error)
	CountMeetings(ctx context.Context, accountID, contactID string) (int, error)
}

// NoteStore manages manual notes. Unlike the other sources, note reads are
// additionally scoped to the authoring user.
type NoteStore interface {
	CreateNote(ctx context.Context, n *Note) error
	UpdateNote(ctx context.Context, n *Note) error
	DeleteNote(ctx context.Context, accountID, userID, id string) error
	// ListNotes orders by created_at; f.Search matches content.
	ListNotes(ctx context.Context, accountID, contactID, userID string, f EventFilter) ([]*Note, error)
	CountNotes(ctx context.Context, accountID, contactID, userID string) (int, error)
}

// ActivityStore reads third-party activity records for the timeline.
type ActivityStore interface {
	CreateActivity(ctx context.Context, a *Activity) error
	// ListActivities restricts rows to the given native activity tags.
	// When includeUnknown is true rows whose tag is outside knownTags are
	// included as well, so "other" filtering can match unrecognized tags.
	// f.Search matches title and description.
	ListActivities(ctx context.Context, accountID, contactID string, tags []string, includeUnknown bool, knownTags []string, f EventFilter) ([]*Activity, error)
	CountActivities(ctx context.Context, accountID, contactID string) (int, error)
}

// Store aggregates every persistence concern of the CRM.
type Store interface {
	ContactStore
	OrganizationStore
	SavedViewStore
	UserStore
	EmailStore
	MeetingStore
	NoteStore
	ActivityStore
	Close() error
}
