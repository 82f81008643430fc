package letters

import (
	"github.com/go-chi/chi/v5"
	"github.com/gracechapel/churchhub/internal/app/system/auth"
	"github.com/gracechapel/churchhub/internal/domain/models"
)

// Mount attaches the public letter listing under /api/letters (active
// letters only) and the back-office surface under /api/admin/letters.
func Mount(r chi.Router, h *Handler) {
	r.Get("/api/letters", h.List)

	r.Route("/api/admin/letters", func(r chi.Router) {
		r.Use(auth.RequireRole(models.RoleSuperAdmin, models.RoleContentManager))
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}
