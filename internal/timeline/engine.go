package timeline

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/prokopsimek/pmcrm/internal/domain"
)

// CursorFormat is the wire format of pagination cursors.
const CursorFormat = time.RFC3339Nano

// Engine merges the active source adapters into one timeline page. It holds
// no state beyond its collaborators; every call recomputes from source.
type Engine struct {
	adapters []SourceAdapter
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an engine over the given adapters. Adapter order is the
// tie-break priority when events share an identical timestamp.
func NewEngine(adapters []SourceAdapter, opts ...Option) *Engine {
	e := &Engine{
		adapters: adapters,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// mergeCandidate tags a fetched event with its adapter's priority so ties
// sort deterministically.
type mergeCandidate struct {
	event    domain.TimelineEvent
	priority int
}

// Timeline computes one page of the contact's merged history.
//
// Each active adapter is fetched concurrently with a budget of limit+1 rows:
// since every adapter contributes its own top candidates, the concatenation
// always contains the true global top limit rows, and one extra row is
// enough to detect whether more pages exist. The per-adapter counts run in
// the same fan-out rather than after it.
//
// Any adapter failure fails the whole call. A partial, silently incomplete
// feed would be worse than a visible error, so no degraded mode exists. The
// engine also imposes no timeout of its own; ctx carries the caller's
// deadline.
func (e *Engine) Timeline(ctx context.Context, scope Scope, query domain.TimelineQuery) (*domain.TimelineResponse, error) {
	nq := normalizeQuery(query)

	type activeAdapter struct {
		adapter  SourceAdapter
		types    []domain.EventType
		priority int
	}

	var active []activeAdapter
	for i, a := range e.adapters {
		types := adapterTypes(a, nq.types)
		if len(types) == 0 {
			continue
		}
		active = append(active, activeAdapter{adapter: a, types: types, priority: i})
	}

	fetched := make([][]domain.TimelineEvent, len(active))
	counts := make([]int, len(active))

	// Plain errgroup, not WithContext: siblings are not cancelled on a
	// failure. Cancellation is the caller's timeout propagating through ctx.
	var g errgroup.Group
	for i, act := range active {
		i, act := i, act
		fq := FetchQuery{
			Types:  act.types,
			Search: nq.search,
			Before: nq.before,
			Limit:  nq.limit + 1,
		}
		g.Go(func() error {
			events, err := act.adapter.Fetch(ctx, scope, fq)
			if err != nil {
				return err
			}
			fetched[i] = events
			return nil
		})
		g.Go(func() error {
			n, err := act.adapter.Count(ctx, scope)
			if err != nil {
				return err
			}
			counts[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var candidates []mergeCandidate
	for i, events := range fetched {
		for _, ev := range events {
			candidates = append(candidates, mergeCandidate{event: ev, priority: active[i].priority})
		}
	}

	// Descending by timestamp; ties break by adapter priority then id so an
	// identical query always yields an identical ordering.
	sort.SliceStable(candidates, func(i, j int) bool {
		ti, tj := candidates[i].event.OccurredAt, candidates[j].event.OccurredAt
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		if candidates[i].priority != candidates[j].priority {
			return candidates[i].priority < candidates[j].priority
		}
		return candidates[i].event.ID < candidates[j].event.ID
	})

	hasMore := len(candidates) > nq.limit
	if hasMore {
		candidates = candidates[:nq.limit]
	}

	data := make([]domain.TimelineEvent, 0, len(candidates))
	for _, c := range candidates {
		data = append(data, c.event)
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	resp := &domain.TimelineResponse{
		Data:    data,
		Total:   total,
		HasMore: hasMore,
	}
	if hasMore && len(data) > 0 {
		// The cursor is the last retained timestamp alone. When several
		// events share that exact timestamp across a page boundary the next
		// page can skip or repeat them; kept as-is for cursor compatibility.
		resp.NextCursor = data[len(data)-1].OccurredAt.UTC().Format(CursorFormat)
	}

	e.logger.Debug("timeline aggregated",
		slog.String("contact_id", scope.ContactID),
		slog.Int("sources", len(active)),
		slog.Int("events", len(data)),
		slog.Bool("has_more", hasMore),
	)

	return resp, nil
}
