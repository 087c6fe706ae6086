package forums

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes wires the forum endpoints. Reading is open; posting and voting
// need a verified identity.
func Routes(h *Handler, verify func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)

	r.Group(func(g chi.Router) {
		g.Use(verify)
		g.Post("/", h.Create)
		g.Patch("/vote/{id}", h.Vote)
	})
	return r
}
