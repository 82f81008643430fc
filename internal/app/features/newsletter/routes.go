package newsletter

import (
	"github.com/go-chi/chi/v5"
	"github.com/gracechapel/churchhub/internal/app/system/auth"
	"github.com/gracechapel/churchhub/internal/domain/models"
)

// Mount attaches the public subscribe endpoints and the admin subscriber
// listing.
func Mount(r chi.Router, h *Handler) {
	r.Post("/api/newsletter", h.Subscribe)
	r.Delete("/api/newsletter", h.Unsubscribe)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(models.RoleSuperAdmin, models.RoleContentManager))
		r.Get("/api/newsletter", h.List)
		r.Delete("/api/newsletter/{email}", h.AdminUnsubscribe)
	})
}
