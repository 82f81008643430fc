package memberauth

import (
	"github.com/go-chi/chi/v5"
	"github.com/gracechapel/churchhub/internal/app/system/auth"
)

// Mount attaches member auth routes under /api/member-auth.
func Mount(r chi.Router, h *Handler) {
	r.Route("/api/member-auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireMember)
			r.Get("/me", h.Me)
		})
	})
}
