// Package slots exposes trainer session slots: creation by trainers,
// lookup, and the explicit booking-counter bump.
package slots

import (
	"context"
	"encoding/json"
	"net/http"

	slotstore "github.com/fitnest/fitnest/internal/app/store/slots"
	"github.com/fitnest/fitnest/internal/app/system/auth"
	"github.com/fitnest/fitnest/internal/app/system/httpjson"
	"github.com/fitnest/fitnest/internal/app/system/timeouts"
	"github.com/fitnest/fitnest/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Handler struct {
	Slots    *slotstore.Store
	Validate *validator.Validate
	Log      *zap.Logger
}

func NewHandler(slots *slotstore.Store, validate *validator.Validate, log *zap.Logger) *Handler {
	return &Handler{Slots: slots, Validate: validate, Log: log}
}

type createRequest struct {
	Title    string `json:"title" validate:"required"`
	Day      string `json:"day" validate:"required"`
	StartsAt string `json:"startsAt" validate:"required"`
	EndsAt   string `json:"endsAt" validate:"required"`
	Capacity int    `json:"capacity" validate:"required,gt=0"`
	ClassID  string `json:"classId"`
}

// Create handles POST /slots: a trainer opens a bookable session. The
// owner is the verified identity, never the request body.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.CurrentIdentity(r)
	if !ok {
		httpjson.Error(w, r, http.StatusUnauthorized, "missing bearer token")
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		httpjson.ValidationError(w, r, err)
		return
	}

	slot := models.Slot{
		TrainerEmail: id.Email,
		Title:        req.Title,
		Day:          req.Day,
		StartsAt:     req.StartsAt,
		EndsAt:       req.EndsAt,
		Capacity:     req.Capacity,
	}
	if req.ClassID != "" {
		classID, err := primitive.ObjectIDFromHex(req.ClassID)
		if err != nil {
			httpjson.Error(w, r, http.StatusBadRequest, "invalid classId")
			return
		}
		slot.ClassID = &classID
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Slots.Create(ctx, slot)
	if err != nil {
		h.Log.Error("create slot failed", zap.Error(err))
		httpjson.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	httpjson.Created(w, r, map[string]any{"insertedId": created.ID.Hex()})
}

// Get handles GET /slots/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, r, http.StatusBadRequest, "invalid slot id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	slot, err := h.Slots.GetByID(ctx, id)
	if err != nil {
		if err == slotstore.ErrNotFound {
			httpjson.Error(w, r, http.StatusNotFound, "slot not found")
			return
		}
		h.Log.Error("get slot failed", zap.Error(err))
		httpjson.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	httpjson.OK(w, r, slot)
}

// Increment handles PATCH /slots/{id}/increment: the explicit +1 on the
// booking counter after a payment is recorded.
func (h *Handler) Increment(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, r, http.StatusBadRequest, "invalid slot id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Slots.IncrementBookingCount(ctx, id); err != nil {
		if err == slotstore.ErrNotFound {
			httpjson.Error(w, r, http.StatusNotFound, "slot not found")
			return
		}
		h.Log.Error("increment booking count failed", zap.Error(err))
		httpjson.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	httpjson.OK(w, r, map[string]any{"modifiedCount": 1})
}
