package slots

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes wires the slot endpoints. Creation needs the trainer role; the
// counter bump only needs a verified identity.
func Routes(h *Handler, verify, trainerOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{id}", h.Get)

	r.Group(func(g chi.Router) {
		g.Use(verify, trainerOnly)
		g.Post("/", h.Create)
	})

	r.Group(func(g chi.Router) {
		g.Use(verify)
		g.Patch("/{id}/increment", h.Increment)
	})
	return r
}
