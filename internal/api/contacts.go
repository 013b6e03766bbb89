package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/prokopsimek/pmcrm/internal/domain"
	"github.com/prokopsimek/pmcrm/internal/server"
	"github.com/prokopsimek/pmcrm/internal/storage"
)

type contactRequest struct {
	OrganizationID string `json:"organizationId"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Title          string `json:"title"`
}

func (h *Handler) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	user := server.UserFromContext(r.Context())
	if user == nil {
		h.writeError(w, r, domain.ErrAuthentication("missing user"))
		return
	}

	var req contactRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.FirstName == "" && req.LastName == "" {
		h.writeError(w, r, domain.ErrInvalidRequest("contact needs a first or last name"))
		return
	}

	contact := &domain.Contact{
		ID:             uuid.New().String(),
		AccountID:      user.AccountID,
		OrganizationID: req.OrganizationID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Title:          req.Title,
	}
	if err := h.store.CreateContact(r.Context(), contact); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, contact)
}

func (h *Handler) handleGetContact(w http.ResponseWriter, r *http.Request) {
	user := server.UserFromContext(r.Context())
	if user == nil {
		h.writeError(w, r, domain.ErrAuthentication("missing user"))
		return
	}

	contact, err := h.store.GetContact(r.Context(), user.AccountID, chi.URLParam(r, "contactID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, contact)
}

func (h *Handler) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	user := server.UserFromContext(r.Context())
	if user == nil {
		h.writeError(w, r, domain.ErrAuthentication("missing user"))
		return
	}

	contact, err := h.store.GetContact(r.Context(), user.AccountID, chi.URLParam(r, "contactID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req contactRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if req.OrganizationID != "" {
		contact.OrganizationID = req.OrganizationID
	}
	if req.FirstName != "" {
		contact.FirstName = req.FirstName
	}
	if req.LastName != "" {
		contact.LastName = req.LastName
	}
	if req.Email != "" {
		contact.Email = req.Email
	}
	if req.Title != "" {
		contact.Title = req.Title
	}

	if err := h.store.UpdateContact(r.Context(), contact); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, contact)
}

func (h *Handler) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	user := server.UserFromContext(r.Context())
	if user == nil {
		h.writeError(w, r, domain.ErrAuthentication("missing user"))
		return
	}

	if err := h.store.DeleteContact(r.Context(), user.AccountID, chi.URLParam(r, "contactID")); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListContacts(w http.ResponseWriter, r *http.Request) {
	user := server.UserFromContext(r.Context())
	if user == nil {
		h.writeError(w, r, domain.ErrAuthentication("missing user"))
		return
	}

	opts, err := parseListOptions(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	contacts, err := h.store.ListContacts(r.Context(), user.AccountID, opts)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"data": contacts})
}

// parseListOptions reads the shared limit/offset parameters for CRUD lists.
func parseListOptions(r *http.Request) (storage.ListOptions, error) {
	opts := storage.ListOptions{Limit: 50}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return opts, domain.ErrInvalidRequest("limit must be a positive integer").WithParam("limit")
		}
		opts.Limit = limit
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return opts, domain.ErrInvalidRequest("offset must be a non-negative integer").WithParam("offset")
		}
		opts.Offset = offset
	}

	return opts, nil
}
