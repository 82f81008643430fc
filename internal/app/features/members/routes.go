package members

import (
	"github.com/go-chi/chi/v5"
	"github.com/gracechapel/churchhub/internal/app/system/auth"
	"github.com/gracechapel/churchhub/internal/domain/models"
)

// Mount attaches the member directory under /api/members. The whole
// directory is back-office only.
func Mount(r chi.Router, h *Handler) {
	r.Route("/api/members", func(r chi.Router) {
		r.Use(auth.RequireRole(models.RoleSuperAdmin, models.RoleContentManager))
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}
