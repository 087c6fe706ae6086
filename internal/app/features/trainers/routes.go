package trainers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// AppliedRoutes serves /applied-trainers: applicants submit, admins review.
func AppliedRoutes(h *Handler, verify, adminOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Group(func(g chi.Router) {
		g.Use(verify)
		g.Post("/", h.Apply)
	})
	r.Group(func(g chi.Router) {
		g.Use(verify, adminOnly)
		g.Get("/", h.ListApplied)
		g.Get("/{id}", h.GetApplied)
	})
	return r
}

// Routes serves /trainers: the public roster plus admin state changes.
func Routes(h *Handler, verify, adminOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)

	r.Group(func(g chi.Router) {
		g.Use(verify, adminOnly)
		g.Patch("/status/{id}", h.SetStatus)
		g.Delete("/delete/{id}", h.Delete)
	})
	return r
}

// RejectionRoutes serves /trainer-rejections.
func RejectionRoutes(h *Handler, verify, adminOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(verify, adminOnly)
	r.Post("/", h.Reject)
	return r
}
