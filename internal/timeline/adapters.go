package timeline

import (
	"context"

	"github.com/prokopsimek/pmcrm/internal/domain"
	"github.com/prokopsimek/pmcrm/internal/storage"
)

// EmailAdapter reads the synced email source.
type EmailAdapter struct {
	store storage.EmailStore
}

func NewEmailAdapter(store storage.EmailStore) *EmailAdapter {
	return &EmailAdapter{store: store}
}

func (a *EmailAdapter) Name() string { return "email" }

func (a *EmailAdapter) EventTypes() []domain.EventType {
	return []domain.EventType{domain.EventTypeEmail}
}

func (a *EmailAdapter) Fetch(ctx context.Context, scope Scope, q FetchQuery) ([]domain.TimelineEvent, error) {
	emails, err := a.store.ListEmails(ctx, scope.AccountID, scope.ContactID, storage.EventFilter{
		Search: q.Search,
		Before: q.Before,
		Limit:  q.Limit,
	})
	if err != nil {
		return nil, err
	}

	events := make([]domain.TimelineEvent, 0, len(emails))
	for _, e := range emails {
		events = append(events, normalizeEmail(e))
	}
	return events, nil
}

func (a *EmailAdapter) Count(ctx context.Context, scope Scope) (int, error) {
	return a.store.CountEmails(ctx, scope.AccountID, scope.ContactID)
}

// MeetingAdapter reads the meeting/call source. It produces two event types
// from one table, distinguished by the meeting_type column.
type MeetingAdapter struct {
	store storage.MeetingStore
}

func NewMeetingAdapter(store storage.MeetingStore) *MeetingAdapter {
	return &MeetingAdapter{store: store}
}

func (a *MeetingAdapter) Name() string { return "meeting" }

func (a *MeetingAdapter) EventTypes() []domain.EventType {
	return []domain.EventType{domain.EventTypeMeeting, domain.EventTypeCall}
}

func (a *MeetingAdapter) Fetch(ctx context.Context, scope Scope, q FetchQuery) ([]domain.TimelineEvent, error) {
	meetingTypes := make([]string, 0, len(q.Types))
	for _, t := range q.Types {
		meetingTypes = append(meetingTypes, string(t))
	}

	meetings, err := a.store.ListMeetings(ctx, scope.AccountID, scope.ContactID, meetingTypes, storage.EventFilter{
		Search: q.Search,
		Before: q.Before,
		Limit:  q.Limit,
	})
	if err != nil {
		return nil, err
	}

	events := make([]domain.TimelineEvent, 0, len(meetings))
	for _, m := range meetings {
		events = append(events, normalizeMeeting(m))
	}
	return events, nil
}

func (a *MeetingAdapter) Count(ctx context.Context, scope Scope) (int, error) {
	return a.store.CountMeetings(ctx, scope.AccountID, scope.ContactID)
}

// NoteAdapter reads manual notes. Notes have no occurrence timestamp of
// their own, so creation time orders them, and reads are scoped to the
// authoring user on top of the account/contact scope.
type NoteAdapter struct {
	store storage.NoteStore
}

func NewNoteAdapter(store storage.NoteStore) *NoteAdapter {
	return &NoteAdapter{store: store}
}

func (a *NoteAdapter) Name() string { return "note" }

func (a *NoteAdapter) EventTypes() []domain.EventType {
	return []domain.EventType{domain.EventTypeNote}
}

func (a *NoteAdapter) Fetch(ctx context.Context, scope Scope, q FetchQuery) ([]domain.TimelineEvent, error) {
	notes, err := a.store.ListNotes(ctx, scope.AccountID, scope.ContactID, scope.UserID, storage.EventFilter{
		Search: q.Search,
		Before: q.Before,
		Limit:  q.Limit,
	})
	if err != nil {
		return nil, err
	}

	events := make([]domain.TimelineEvent, 0, len(notes))
	for _, n := range notes {
		events = append(events, normalizeNote(n))
	}
	return events, nil
}

func (a *NoteAdapter) Count(ctx context.Context, scope Scope) (int, error) {
	return a.store.CountNotes(ctx, scope.AccountID, scope.ContactID, scope.UserID)
}

// ActivityAdapter reads third-party activity records. Native integration
// tags map to canonical event types through activityTypeByTag; requesting
// the "other" type matches every tag outside that mapping.
type ActivityAdapter struct {
	store storage.ActivityStore
}

func NewActivityAdapter(store storage.ActivityStore) *ActivityAdapter {
	return &ActivityAdapter{store: store}
}

func (a *ActivityAdapter) Name() string { return "activity" }

func (a *ActivityAdapter) EventTypes() []domain.EventType {
	return []domain.EventType{
		domain.EventTypeLinkedInMessage,
		domain.EventTypeLinkedInConnection,
		domain.EventTypeWhatsApp,
		domain.EventTypeOther,
	}
}

func (a *ActivityAdapter) Fetch(ctx context.Context, scope Scope, q FetchQuery) ([]domain.TimelineEvent, error) {
	var tags []string
	includeUnknown := false
	for _, t := range q.Types {
		if t == domain.EventTypeOther {
			includeUnknown = true
			continue
		}
		if tag, ok := activityTagByType[t]; ok {
			tags = append(tags, tag)
		}
	}

	activities, err := a.store.ListActivities(ctx, scope.AccountID, scope.ContactID, tags, includeUnknown, knownActivityTags(), storage.EventFilter{
		Search: q.Search,
		Before: q.Before,
		Limit:  q.Limit,
	})
	if err != nil {
		return nil, err
	}

	events := make([]domain.TimelineEvent, 0, len(activities))
	for _, act := range activities {
		events = append(events, normalizeActivity(act))
	}
	return events, nil
}

func (a *ActivityAdapter) Count(ctx context.Context, scope Scope) (int, error) {
	return a.store.CountActivities(ctx, scope.AccountID, scope.ContactID)
}
