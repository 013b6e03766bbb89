package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/prokopsimek/pmcrm/internal/domain"
)

func TestNormalizeQuery_Defaults(t *testing.T) {
	nq := normalizeQuery(domain.TimelineQuery{})

	assert.Equal(t, domain.AllEventTypes(), nq.types)
	assert.Equal(t, domain.DefaultTimelineLimit, nq.limit)
	assert.Nil(t, nq.before)
	assert.Empty(t, nq.search)
}

func TestNormalizeQuery_PassesThroughFilters(t *testing.T) {
	cursor := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	nq := normalizeQuery(domain.TimelineQuery{
		Types:  []domain.EventType{domain.EventTypeCall},
		Search: "renewal",
		Cursor: &cursor,
		Limit:  5,
	})

	assert.Equal(t, []domain.EventType{domain.EventTypeCall}, nq.types)
	assert.Equal(t, "renewal", nq.search)
	assert.Equal(t, &cursor, nq.before)
	assert.Equal(t, 5, nq.limit)
}

func TestAdapterTypes(t *testing.T) {
	meeting := &fakeAdapter{
		name:  "meeting",
		types: []domain.EventType{domain.EventTypeMeeting, domain.EventTypeCall},
	}

	t.Run("full intersection", func(t *testing.T) {
		got := adapterTypes(meeting, domain.AllEventTypes())
		assert.Equal(t, []domain.EventType{domain.EventTypeMeeting, domain.EventTypeCall}, got)
	})

	t.Run("partial intersection", func(t *testing.T) {
		got := adapterTypes(meeting, []domain.EventType{domain.EventTypeCall, domain.EventTypeEmail})
		assert.Equal(t, []domain.EventType{domain.EventTypeCall}, got)
	})

	t.Run("no intersection means skipped", func(t *testing.T) {
		got := adapterTypes(meeting, []domain.EventType{domain.EventTypeNote})
		assert.Empty(t, got)
	})
}
