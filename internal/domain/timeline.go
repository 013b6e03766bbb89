package domain

import "time"

// DefaultTimelineLimit is the page size used when a query does not specify one.
const DefaultTimelineLimit = 20

// TimelineQuery carries the caller's filters for one timeline page.
type TimelineQuery struct {
	// Types restricts the result to the given event types. Empty means all.
	Types []EventType

	// Search is an optional case-insensitive substring filter. It is applied
	// per source against that source's own searchable text fields, not a
	// unified full-text index.
	Search string

	// Cursor, when set, restricts results to events strictly older than it
	// (keyset pagination, exclusive bound).
	Cursor *time.Time

	// Limit is the maximum page size. Zero means DefaultTimelineLimit.
	Limit int
}

// TimelineResponse is one page of a contact's merged history.
//
// Total is approximate: it is the sum of per-source row counts for the
// requested type set and deliberately ignores the search filter, so it is
// stable whether or not a search term is supplied. Computing an exact
// filtered count would require a second full scan of every source.
type TimelineResponse struct {
	Data       []TimelineEvent `json:"data"`
	Total      int             `json:"total"`
	NextCursor string          `json:"nextCursor,omitempty"`
	HasMore    bool            `json:"hasMore"`
}
