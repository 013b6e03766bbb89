// Package api implements the REST surface of the CRM: CRUD resources for
// contacts, organizations, saved views and notes, user provisioning, and the
// unified timeline endpoint.
package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/prokopsimek/pmcrm/internal/storage"
	"github.com/prokopsimek/pmcrm/internal/timeline"
)

// Handler owns the route handlers. All persistence goes through the store
// interfaces; the timeline endpoint delegates to the aggregation engine.
type Handler struct {
	store  storage.Store
	engine *timeline.Engine
	logger *slog.Logger
}

func NewHandler(store storage.Store, engine *timeline.Engine, logger *slog.Logger) *Handler {
	return &Handler{
		store:  store,
		engine: engine,
		logger: logger,
	}
}

// Routes mounts every endpoint on the router.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Route("/contacts", func(r chi.Router) {
			r.Post("/", h.handleCreateContact)
			r.Get("/", h.handleListContacts)
			r.Get("/{contactID}", h.handleGetContact)
			r.Patch("/{contactID}", h.handleUpdateContact)
			r.Delete("/{contactID}", h.handleDeleteContact)

			r.Get("/{contactID}/timeline", h.handleTimeline)
			r.Post("/{contactID}/notes", h.handleCreateNote)
		})

		r.Route("/organizations", func(r chi.Router) {
			r.Post("/", h.handleCreateOrganization)
			r.Get("/", h.handleListOrganizations)
			r.Get("/{orgID}", h.handleGetOrganization)
			r.Patch("/{orgID}", h.handleUpdateOrganization)
			r.Delete("/{orgID}", h.handleDeleteOrganization)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", h.handleCreateUser)
			r.Post("/{userID}/onboard", h.handleOnboardUser)
		})

		r.Route("/views", func(r chi.Router) {
			r.Post("/", h.handleCreateSavedView)
			r.Get("/", h.handleListSavedViews)
			r.Get("/{viewID}", h.handleGetSavedView)
			r.Delete("/{viewID}", h.handleDeleteSavedView)
		})
	})
}
