package timeline

import (
	"time"

	"github.com/prokopsimek/pmcrm/internal/domain"
)

// normalizedQuery is a TimelineQuery with defaults applied and the type set
// made canonical.
type normalizedQuery struct {
	types  []domain.EventType
	search string
	before *time.Time
	limit  int
}

// normalizeQuery applies defaults: an empty type set means every type, a
// zero limit means domain.DefaultTimelineLimit. It never fails; filtering
// that matches nothing is expressed by skipping adapters, not by an error.
func normalizeQuery(q domain.TimelineQuery) normalizedQuery {
	types := q.Types
	if len(types) == 0 {
		types = domain.AllEventTypes()
	}

	limit := q.Limit
	if limit <= 0 {
		limit = domain.DefaultTimelineLimit
	}

	return normalizedQuery{
		types:  types,
		search: q.Search,
		before: q.Cursor,
		limit:  limit,
	}
}

// adapterTypes intersects the requested types with what the adapter
// produces, preserving request order. An empty result means the adapter is
// not consulted at all for this query.
func adapterTypes(a SourceAdapter, requested []domain.EventType) []domain.EventType {
	produced := make(map[domain.EventType]bool, len(a.EventTypes()))
	for _, t := range a.EventTypes() {
		produced[t] = true
	}

	var matched []domain.EventType
	for _, t := range requested {
		if produced[t] {
			matched = append(matched, t)
		}
	}
	return matched
}
