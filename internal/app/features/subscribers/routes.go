package subscribers

import "github.com/go-chi/chi/v5"

// Routes wires the subscription endpoint. Subscribing is open.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Subscribe)
	return r
}
