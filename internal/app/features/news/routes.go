package news

import (
	"github.com/go-chi/chi/v5"
	"github.com/gracechapel/churchhub/internal/app/system/auth"
	"github.com/gracechapel/churchhub/internal/domain/models"
)

// Mount attaches news routes under /api/news. Counters and comments are
// public; writes require an admin with a news-capable role.
func Mount(r chi.Router, h *Handler) {
	r.Route("/api/news", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{ref}", h.Get)
		r.Post("/{ref}/views", h.AddView)
		r.Post("/{ref}/likes", h.AddLike)
		r.Post("/{ref}/comments", h.AddComment)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(models.RoleSuperAdmin, models.RoleContentManager, models.RoleNewsEditor))
			r.Post("/", h.Create)
			r.Put("/{ref}", h.Update)
			r.Delete("/{ref}", h.Delete)
		})
	})
}
