package audittrail

import (
	"github.com/go-chi/chi/v5"
	"github.com/gracechapel/churchhub/internal/app/system/auth"
	"github.com/gracechapel/churchhub/internal/domain/models"
)

// Mount attaches the audit log listing under /api/admin/audit. Reading the
// trail is restricted to super admins.
func Mount(r chi.Router, h *Handler) {
	r.Route("/api/admin/audit", func(r chi.Router) {
		r.Use(auth.RequireRole(models.RoleSuperAdmin))
		r.Get("/", h.List)
	})
}
