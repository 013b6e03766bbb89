package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/prokopsimek/pmcrm/internal/domain"
	"github.com/prokopsimek/pmcrm/internal/server"
	"github.com/prokopsimek/pmcrm/internal/timeline"
)

// handleTimeline serves GET /v1/contacts/{contactID}/timeline.
//
// Ownership is checked before the aggregation engine runs: a contact that
// does not exist and a contact owned by another account both surface as
// not-found, so the engine is never consulted for foreign contacts.
func (h *Handler) handleTimeline(w http.ResponseWriter, r *http.Request) {
	user := server.UserFromContext(r.Context())
	if user == nil {
		h.writeError(w, r, domain.ErrAuthentication("missing user"))
		return
	}

	contactID := chi.URLParam(r, "contactID")
	contact, err := h.store.GetContact(r.Context(), user.AccountID, contactID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	query, matchNothing, err := parseTimelineQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if matchNothing {
		h.writeJSON(w, http.StatusOK, &domain.TimelineResponse{Data: []domain.TimelineEvent{}})
		return
	}

	scope := timeline.Scope{
		AccountID: user.AccountID,
		ContactID: contact.ID,
		UserID:    user.ID,
	}

	resp, err := h.engine.Timeline(r.Context(), scope, query)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// parseTimelineQuery reads the query string into a TimelineQuery. A types
// parameter that names only unknown values matches nothing (reported via the
// second return) rather than falling back to "all types".
func parseTimelineQuery(r *http.Request) (domain.TimelineQuery, bool, error) {
	var query domain.TimelineQuery

	if raw := r.URL.Query().Get("types"); raw != "" {
		sawToken := false
		for _, token := range strings.Split(raw, ",") {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}
			sawToken = true
			if t, ok := domain.ParseEventType(token); ok {
				query.Types = append(query.Types, t)
			}
		}
		// A value of only separators ("types=,") is the same as omitting the
		// parameter; only named-but-unknown types match nothing.
		if sawToken && len(query.Types) == 0 {
			return query, true, nil
		}
	}

	query.Search = r.URL.Query().Get("search")

	if raw := r.URL.Query().Get("cursor"); raw != "" {
		cursor, err := time.Parse(timeline.CursorFormat, raw)
		if err != nil {
			return query, false, domain.ErrInvalidRequest("cursor must be an RFC 3339 timestamp").WithParam("cursor")
		}
		query.Cursor = &cursor
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return query, false, domain.ErrInvalidRequest("limit must be a positive integer").WithParam("limit")
		}
		query.Limit = limit
	}

	return query, false, nil
}
