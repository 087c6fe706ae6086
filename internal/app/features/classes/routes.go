package classes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes wires the class catalog. Browsing is open; creation is admin-only.
func Routes(h *Handler, verify, adminOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)

	r.Group(func(g chi.Router) {
		g.Use(verify, adminOnly)
		g.Post("/", h.Create)
	})
	return r
}
