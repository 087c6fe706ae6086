package payments

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes serves /payments. Everything requires a verified identity; the
// revenue total is admin-only.
func Routes(h *Handler, verify, adminOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(verify)
	r.Post("/", h.Record)
	r.Get("/booked-slots", h.BookedSlots)

	r.Group(func(g chi.Router) {
		g.Use(adminOnly)
		g.Get("/revenue", h.Revenue)
	})
	return r
}

// IntentRoutes serves /create-payment-intent.
func IntentRoutes(h *Handler, verify func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(verify)
	r.Post("/", h.CreateIntent)
	return r
}
