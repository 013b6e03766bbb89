package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/prokopsimek/pmcrm/internal/domain"
	"github.com/prokopsimek/pmcrm/internal/server"
)

type savedViewRequest struct {
	Name    string          `json:"name"`
	Filters json.RawMessage `json:"filters"`
}

func (h *Handler) handleCreateSavedView(w http.ResponseWriter, r *http.Request) {
	user := server.UserFromContext(r.Context())
	if user == nil {
		h.writeError(w, r, domain.ErrAuthentication("missing user"))
		return
	}

	var req savedViewRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Name == "" {
		h.writeError(w, r, domain.ErrInvalidRequest("view name is required").WithParam("name"))
		return
	}

	filters := "{}"
	if len(req.Filters) > 0 {
		filters = string(req.Filters)
	}

	view := &domain.SavedView{
		ID:        uuid.New().String(),
		AccountID: user.AccountID,
		UserID:    user.ID,
		Name:      req.Name,
		Filters:   filters,
	}
	if err := h.store.CreateSavedView(r.Context(), view); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, view)
}

func (h *Handler) handleGetSavedView(w http.ResponseWriter, r *http.Request) {
	user := server.UserFromContext(r.Context())
	if user == nil {
		h.writeError(w, r, domain.ErrAuthentication("missing user"))
		return
	}

	view, err := h.store.GetSavedView(r.Context(), user.AccountID, chi.URLParam(r, "viewID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handleDeleteSavedView(w http.ResponseWriter, r *http.Request) {
	user := server.UserFromContext(r.Context())
	if user == nil {
		h.writeError(w, r, domain.ErrAuthentication("missing user"))
		return
	}

	if err := h.store.DeleteSavedView(r.Context(), user.AccountID, chi.URLParam(r, "viewID")); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListSavedViews(w http.ResponseWriter, r *http.Request) {
	user := server.UserFromContext(r.Context())
	if user == nil {
		h.writeError(w, r, domain.ErrAuthentication("missing user"))
		return
	}

	views, err := h.store.ListSavedViews(r.Context(), user.AccountID, user.ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"data": views})
}
