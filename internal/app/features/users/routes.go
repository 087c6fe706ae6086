package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes wires the user endpoints. verify is the bearer-token middleware,
// adminOnly the admin role gate; account creation stays open because it is
// the sign-in entry point.
func Routes(h *Handler, verify, adminOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)

	r.Group(func(g chi.Router) {
		g.Use(verify)
		g.Get("/{email}", h.GetByEmail)
		g.Patch("/profile/{email}", h.UpdateProfile)
	})

	r.Group(func(g chi.Router) {
		g.Use(verify, adminOnly)
		g.Patch("/demote/{id}", h.Demote)
	})
	return r
}
