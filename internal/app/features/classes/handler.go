// Package classes exposes the class catalog: a searchable paginated list
// and admin-only creation.
package classes

import (
	"context"
	"encoding/json"
	"net/http"

	classstore "github.com/fitnest/fitnest/internal/app/store/classes"
	"github.com/fitnest/fitnest/internal/app/system/httpjson"
	"github.com/fitnest/fitnest/internal/app/system/paging"
	"github.com/fitnest/fitnest/internal/app/system/timeouts"
	"github.com/fitnest/fitnest/internal/domain/models"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type Handler struct {
	Classes  *classstore.Store
	Validate *validator.Validate
	Log      *zap.Logger
}

func NewHandler(classes *classstore.Store, validate *validator.Validate, log *zap.Logger) *Handler {
	return &Handler{Classes: classes, Validate: validate, Log: log}
}

type listResponse struct {
	Result []models.Class `json:"result"`
	Total  int64          `json:"total"`
}

// List handles GET /classes?search=&page=&limit=. The total counts the
// whole filtered set so clients can render page controls.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := paging.Parse(r)
	search := r.URL.Query().Get("search")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	result, total, err := h.Classes.List(ctx, search, page)
	if err != nil {
		h.Log.Error("list classes failed", zap.Error(err))
		httpjson.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	httpjson.OK(w, r, listResponse{Result: result, Total: total})
}

type createRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	ImageURL    string `json:"image"`
}

// Create handles POST /classes: admin adds a class to the catalog.
// Classes are immutable afterwards.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		httpjson.ValidationError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Classes.Create(ctx, models.Class{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		h.Log.Error("create class failed", zap.Error(err))
		httpjson.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	httpjson.Created(w, r, map[string]any{"insertedId": created.ID.Hex()})
}
