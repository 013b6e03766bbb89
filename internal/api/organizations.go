package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/prokopsimek/pmcrm/internal/domain"
	"github.com/prokopsimek/pmcrm/internal/server"
)

type organizationRequest struct {
	Name   string `json:"name"`
	Domain string `json:"domain"`
}

func (h *Handler) handleCreateOrganization(w http.ResponseWriter, r *http.Request) {
	user := server.UserFromContext(r.Context())
	if user == nil {
		h.writeError(w, r, domain.ErrAuthentication("missing user"))
		return
	}

	var req organizationRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Name == "" {
		h.writeError(w, r, domain.ErrInvalidRequest("organization name is required").WithParam("name"))
		return
	}

	org := &domain.Organization{
		ID:        uuid.New().String(),
		AccountID: user.AccountID,
		Name:      req.Name,
		Domain:    req.Domain,
	}
	if err := h.store.CreateOrganization(r.Context(), org); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, org)
}

func (h *Handler) handleGetOrganization(w http.ResponseWriter, r *http.Request) {
	user := server.UserFromContext(r.Context())
	if user == nil {
		h.writeError(w, r, domain.ErrAuthentication("missing user"))
		return
	}

	org, err := h.store.GetOrganization(r.Context(), user.AccountID, chi.URLParam(r, "orgID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, org)
}

func (h *Handler) handleUpdateOrganization(w http.ResponseWriter, r *http.Request) {
	user := server.UserFromContext(r.Context())
	if user == nil {
		h.writeError(w, r, domain.ErrAuthentication("missing user"))
		return
	}

	org, err := h.store.GetOrganization(r.Context(), user.AccountID, chi.URLParam(r, "orgID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req organizationRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Name != "" {
		org.Name = req.Name
	}
	if req.Domain != "" {
		org.Domain = req.Domain
	}

	if err := h.store.UpdateOrganization(r.Context(), org); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, org)
}

func (h *Handler) handleDeleteOrganization(w http.ResponseWriter, r *http.Request) {
	user := server.UserFromContext(r.Context())
	if user == nil {
		h.writeError(w, r, domain.ErrAuthentication("missing user"))
		return
	}

	if err := h.store.DeleteOrganization(r.Context(), user.AccountID, chi.URLParam(r, "orgID")); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListOrganizations(w http.ResponseWriter, r *http.Request) {
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

	orgs, err := h.store.ListOrganizations(r.Context(), user.AccountID, opts)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"data": orgs})
}
