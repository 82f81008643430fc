package wotd

import (
	"github.com/go-chi/chi/v5"
	"github.com/gracechapel/churchhub/internal/app/system/auth"
	"github.com/gracechapel/churchhub/internal/domain/models"
)

// Mount attaches word-of-the-day routes under /api/wotd.
func Mount(r chi.Router, h *Handler) {
	r.Route("/api/wotd", func(r chi.Router) {
		r.Get("/", h.Latest)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(models.RoleSuperAdmin, models.RoleContentManager, models.RoleNewsEditor))
			r.Post("/", h.Create)
		})
	})
}
