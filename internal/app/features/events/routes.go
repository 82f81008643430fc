package events

import (
	"github.com/go-chi/chi/v5"
	"github.com/gracechapel/churchhub/internal/app/system/auth"
	"github.com/gracechapel/churchhub/internal/domain/models"
)

// Mount attaches event routes under /api/events. Writes require an admin
// with a content role.
func Mount(r chi.Router, h *Handler) {
	r.Route("/api/events", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(models.RoleSuperAdmin, models.RoleContentManager))
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}
