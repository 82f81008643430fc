package health

import "github.com/go-chi/chi/v5"

// Mount attaches health routes to the router.
func Mount(r chi.Router, h *Handler) {
	r.Get("/health", h.Serve)
}
