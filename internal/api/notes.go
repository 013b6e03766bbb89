package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/prokopsimek/pmcrm/internal/domain"
	"github.com/prokopsimek/pmcrm/internal/server"
	"github.com/prokopsimek/pmcrm/internal/storage"
)

type noteRequest struct {
	Content string `json:"content"`
	Pinned  bool   `json:"pinned"`
}

// handleCreateNote serves POST /v1/contacts/{contactID}/notes. The contact
// is resolved first so a foreign contact surfaces as not-found.
func (h *Handler) handleCreateNote(w http.ResponseWriter, r *http.Request) {
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

	var req noteRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Content == "" {
		h.writeError(w, r, domain.ErrInvalidRequest("note content is required").WithParam("content"))
		return
	}

	note := &storage.Note{
		ID:        uuid.New().String(),
		AccountID: user.AccountID,
		ContactID: contact.ID,
		UserID:    user.ID,
		Content:   req.Content,
		Pinned:    req.Pinned,
	}
	if err := h.store.CreateNote(r.Context(), note); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]any{
		"id":        note.ID,
		"contactId": note.ContactID,
		"content":   note.Content,
		"pinned":    note.Pinned,
		"createdAt": note.CreatedAt,
	})
}
