// Package subscribers exposes the newsletter subscription endpoint.
package subscribers

import (
	"context"
	"encoding/json"
	"net/http"

	subscriberstore "github.com/fitnest/fitnest/internal/app/store/subscribers"
	"github.com/fitnest/fitnest/internal/app/system/httpjson"
	"github.com/fitnest/fitnest/internal/app/system/timeouts"
	"github.com/fitnest/fitnest/internal/domain/models"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type Handler struct {
	Subscribers *subscriberstore.Store
	Validate    *validator.Validate
	Log         *zap.Logger
}

func NewHandler(subs *subscriberstore.Store, validate *validator.Validate, log *zap.Logger) *Handler {
	return &Handler{Subscribers: subs, Validate: validate, Log: log}
}

type subscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
}

// Subscribe handles POST /subscribers: 400 on missing fields, 409 when the
// email is already subscribed, 201 otherwise.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
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

	created, err := h.Subscribers.Create(ctx, models.Subscriber{
		Email: req.Email,
		Name:  req.Name,
	})
	if err != nil {
		if err == subscriberstore.ErrDuplicateEmail {
			httpjson.Error(w, r, http.StatusConflict, "email is already subscribed")
			return
		}
		h.Log.Error("subscribe failed", zap.Error(err))
		httpjson.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	httpjson.Created(w, r, map[string]any{"insertedId": created.ID.Hex()})
}
