package authadmin

import (
	"github.com/go-chi/chi/v5"
	"github.com/gracechapel/churchhub/internal/app/system/auth"
	"github.com/gracechapel/churchhub/internal/domain/models"
)

// Mount attaches the back-office auth routes under /api/auth.
func Mount(r chi.Router, h *Handler) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Post("/init-super-admin", h.InitSuperAdmin)
		r.Post("/accept-invite", h.AcceptInvite)
		r.Post("/reset-request", h.RequestReset)
		r.Post("/reset", h.ResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Get("/me", h.Me)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(models.RoleSuperAdmin))
			r.Post("/invite", h.Invite)
		})
	})
}
