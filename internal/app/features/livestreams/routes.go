package livestreams

import (
	"github.com/go-chi/chi/v5"
	"github.com/gracechapel/churchhub/internal/app/system/auth"
	"github.com/gracechapel/churchhub/internal/domain/models"
)

// Mount attaches livestream routes under /api/livestreams.
func Mount(r chi.Router, h *Handler) {
	r.Route("/api/livestreams", func(r chi.Router) {
		r.Get("/", h.List)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(models.RoleSuperAdmin, models.RoleContentManager))
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}
