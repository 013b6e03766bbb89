package timeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prokopsimek/pmcrm/internal/domain"
)

// fakeAdapter serves canned events, newest first, and records its calls.
type fakeAdapter struct {
	name   string
	types  []domain.EventType
	events []domain.TimelineEvent
	err    error

	mu         sync.Mutex
	fetchCalls int
	countCalls int
	lastFetch  FetchQuery
}

func (f *fakeAdapter) Name() string                   { return f.name }
func (f *fakeAdapter) EventTypes() []domain.EventType { return f.types }

func (f *fakeAdapter) Fetch(ctx context.Context, scope Scope, q FetchQuery) ([]domain.TimelineEvent, error) {
	f.mu.Lock()
	f.fetchCalls++
	f.lastFetch = q
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}

	var out []domain.TimelineEvent
	for _, ev := range f.events {
		if q.Before != nil && !ev.OccurredAt.Before(*q.Before) {
			continue
		}
		if q.Search != "" && !strings.Contains(strings.ToLower(ev.Title), strings.ToLower(q.Search)) {
			continue
		}
		out = append(out, ev)
		if len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeAdapter) Count(ctx context.Context, scope Scope) (int, error) {
	f.mu.Lock()
	f.countCalls++
	f.mu.Unlock()

	if f.err != nil {
		return 0, f.err
	}
	return len(f.events), nil
}

func at(sec int) time.Time {
	return time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(sec) * time.Second)
}

func event(id string, t domain.EventType, occurred time.Time) domain.TimelineEvent {
	return domain.TimelineEvent{ID: id, Type: t, OccurredAt: occurred, Title: string(t) + " " + id}
}

func testScope() Scope {
	return Scope{AccountID: "acc-1", ContactID: "contact-1", UserID: "user-1"}
}

func TestEngine_MergeAcrossSources(t *testing.T) {
	email := &fakeAdapter{
		name:   "email",
		types:  []domain.EventType{domain.EventTypeEmail},
		events: []domain.TimelineEvent{event("e1", domain.EventTypeEmail, at(10))},
	}
	meeting := &fakeAdapter{
		name:   "meeting",
		types:  []domain.EventType{domain.EventTypeMeeting, domain.EventTypeCall},
		events: []domain.TimelineEvent{event("m1", domain.EventTypeMeeting, at(12))},
	}
	note := &fakeAdapter{
		name:   "note",
		types:  []domain.EventType{domain.EventTypeNote},
		events: []domain.TimelineEvent{event("n1", domain.EventTypeNote, at(8))},
	}

	engine := NewEngine([]SourceAdapter{email, meeting, note})

	resp, err := engine.Timeline(context.Background(), testScope(), domain.TimelineQuery{Limit: 2})
	require.NoError(t, err)

	require.Len(t, resp.Data, 2)
	assert.Equal(t, "m1", resp.Data[0].ID)
	assert.Equal(t, "e1", resp.Data[1].ID)
	assert.True(t, resp.HasMore)
	assert.Equal(t, at(10).Format(CursorFormat), resp.NextCursor)
	assert.Equal(t, 3, resp.Total)
}

func TestEngine_EmptyTimeline(t *testing.T) {
	adapters := []SourceAdapter{
		&fakeAdapter{name: "email", types: []domain.EventType{domain.EventTypeEmail}},
		&fakeAdapter{name: "note", types: []domain.EventType{domain.EventTypeNote}},
	}
	engine := NewEngine(adapters)

	resp, err := engine.Timeline(context.Background(), testScope(), domain.TimelineQuery{})
	require.NoError(t, err)

	assert.Empty(t, resp.Data)
	assert.Equal(t, 0, resp.Total)
	assert.False(t, resp.HasMore)
	assert.Empty(t, resp.NextCursor)
}

func TestEngine_OrderingAndPageBound(t *testing.T) {
	email := &fakeAdapter{name: "email", types: []domain.EventType{domain.EventTypeEmail}}
	note := &fakeAdapter{name: "note", types: []domain.EventType{domain.EventTypeNote}}
	for i := 10; i > 0; i-- {
		email.events = append(email.events, event("e"+string(rune('a'+i)), domain.EventTypeEmail, at(i*2)))
		note.events = append(note.events, event("n"+string(rune('a'+i)), domain.EventTypeNote, at(i*2-1)))
	}

	engine := NewEngine([]SourceAdapter{email, note})

	resp, err := engine.Timeline(context.Background(), testScope(), domain.TimelineQuery{Limit: 7})
	require.NoError(t, err)

	assert.Len(t, resp.Data, 7)
	assert.True(t, resp.HasMore)
	for i := 0; i+1 < len(resp.Data); i++ {
		assert.False(t, resp.Data[i].OccurredAt.Before(resp.Data[i+1].OccurredAt),
			"data[%d] older than data[%d]", i, i+1)
	}
}

func TestEngine_CursorContinuity(t *testing.T) {
	email := &fakeAdapter{name: "email", types: []domain.EventType{domain.EventTypeEmail}}
	note := &fakeAdapter{name: "note", types: []domain.EventType{domain.EventTypeNote}}
	for i := 6; i > 0; i-- {
		email.events = append(email.events, event("e"+string(rune('0'+i)), domain.EventTypeEmail, at(i*10)))
		note.events = append(note.events, event("n"+string(rune('0'+i)), domain.EventTypeNote, at(i*10+5)))
	}

	engine := NewEngine([]SourceAdapter{email, note})
	scope := testScope()

	seen := map[string]bool{}
	var cursor *time.Time
	pages := 0
	for {
		resp, err := engine.Timeline(context.Background(), scope, domain.TimelineQuery{Limit: 5, Cursor: cursor})
		require.NoError(t, err)
		pages++

		for _, ev := range resp.Data {
			require.False(t, seen[ev.ID], "event %s appeared on two pages", ev.ID)
			seen[ev.ID] = true
			if cursor != nil {
				assert.True(t, ev.OccurredAt.Before(*cursor))
			}
		}

		if !resp.HasMore {
			break
		}
		require.Len(t, resp.Data, 5, "full page expected when hasMore")
		next, err := time.Parse(CursorFormat, resp.NextCursor)
		require.NoError(t, err)
		cursor = &next
	}

	assert.Equal(t, 12, len(seen))
	assert.Equal(t, 3, pages)
}

func TestEngine_TypeFilterSkipsAdapters(t *testing.T) {
	email := &fakeAdapter{
		name:   "email",
		types:  []domain.EventType{domain.EventTypeEmail},
		events: []domain.TimelineEvent{event("e1", domain.EventTypeEmail, at(5))},
	}
	meeting := &fakeAdapter{name: "meeting", types: []domain.EventType{domain.EventTypeMeeting, domain.EventTypeCall}}
	note := &fakeAdapter{
		name:   "note",
		types:  []domain.EventType{domain.EventTypeNote},
		events: []domain.TimelineEvent{event("n1", domain.EventTypeNote, at(3))},
	}
	activity := &fakeAdapter{name: "activity", types: []domain.EventType{domain.EventTypeWhatsApp, domain.EventTypeOther}}

	engine := NewEngine([]SourceAdapter{email, meeting, note, activity})

	resp, err := engine.Timeline(context.Background(), testScope(), domain.TimelineQuery{
		Types: []domain.EventType{domain.EventTypeNote},
	})
	require.NoError(t, err)

	require.Len(t, resp.Data, 1)
	assert.Equal(t, domain.EventTypeNote, resp.Data[0].Type)
	assert.Equal(t, 1, resp.Total, "total covers only active sources")

	assert.Equal(t, 1, note.fetchCalls)
	assert.Equal(t, 1, note.countCalls)
	for _, skipped := range []*fakeAdapter{email, meeting, activity} {
		assert.Zero(t, skipped.fetchCalls, "%s fetched", skipped.name)
		assert.Zero(t, skipped.countCalls, "%s counted", skipped.name)
	}
}

func TestEngine_TotalIndependentOfSearch(t *testing.T) {
	email := &fakeAdapter{
		name:  "email",
		types: []domain.EventType{domain.EventTypeEmail},
		events: []domain.TimelineEvent{
			event("e1", domain.EventTypeEmail, at(9)),
			event("e2", domain.EventTypeEmail, at(7)),
		},
	}
	note := &fakeAdapter{
		name:   "note",
		types:  []domain.EventType{domain.EventTypeNote},
		events: []domain.TimelineEvent{event("n1", domain.EventTypeNote, at(8))},
	}

	engine := NewEngine([]SourceAdapter{email, note})
	scope := testScope()

	unfiltered, err := engine.Timeline(context.Background(), scope, domain.TimelineQuery{})
	require.NoError(t, err)

	filtered, err := engine.Timeline(context.Background(), scope, domain.TimelineQuery{Search: "email e1"})
	require.NoError(t, err)

	assert.Equal(t, unfiltered.Total, filtered.Total)
	assert.Less(t, len(filtered.Data), len(unfiltered.Data))
}

func TestEngine_FetchBudgetIsLimitPlusOne(t *testing.T) {
	email := &fakeAdapter{name: "email", types: []domain.EventType{domain.EventTypeEmail}}
	engine := NewEngine([]SourceAdapter{email})

	_, err := engine.Timeline(context.Background(), testScope(), domain.TimelineQuery{Limit: 4})
	require.NoError(t, err)
	assert.Equal(t, 5, email.lastFetch.Limit)

	// Default limit applies when none is given.
	_, err = engine.Timeline(context.Background(), testScope(), domain.TimelineQuery{})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTimelineLimit+1, email.lastFetch.Limit)
}

func TestEngine_AdapterFailureFailsWholeRequest(t *testing.T) {
	storeErr := errors.New("emails table unavailable")
	email := &fakeAdapter{name: "email", types: []domain.EventType{domain.EventTypeEmail}, err: storeErr}
	note := &fakeAdapter{
		name:   "note",
		types:  []domain.EventType{domain.EventTypeNote},
		events: []domain.TimelineEvent{event("n1", domain.EventTypeNote, at(1))},
	}

	engine := NewEngine([]SourceAdapter{email, note})

	resp, err := engine.Timeline(context.Background(), testScope(), domain.TimelineQuery{})
	require.ErrorIs(t, err, storeErr)
	assert.Nil(t, resp, "no partial timeline on source failure")
}

func TestEngine_TieBreakIsDeterministic(t *testing.T) {
	ts := at(42)
	email := &fakeAdapter{
		name:   "email",
		types:  []domain.EventType{domain.EventTypeEmail},
		events: []domain.TimelineEvent{event("b", domain.EventTypeEmail, ts)},
	}
	note := &fakeAdapter{
		name:   "note",
		types:  []domain.EventType{domain.EventTypeNote},
		events: []domain.TimelineEvent{event("a", domain.EventTypeNote, ts)},
	}

	// Email precedes note in adapter order, so it wins the tie despite the
	// larger id.
	engine := NewEngine([]SourceAdapter{email, note})

	var first []string
	for i := 0; i < 5; i++ {
		resp, err := engine.Timeline(context.Background(), testScope(), domain.TimelineQuery{})
		require.NoError(t, err)

		ids := make([]string, 0, len(resp.Data))
		for _, ev := range resp.Data {
			ids = append(ids, ev.ID)
		}
		if first == nil {
			first = ids
			assert.Equal(t, []string{"b", "a"}, ids)
		} else {
			assert.Equal(t, first, ids)
		}
	}
}
