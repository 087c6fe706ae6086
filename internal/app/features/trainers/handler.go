// Package trainers exposes the trainer application workflow: applicants
// submit, admins review, confirm (which promotes the account) or reject
// with feedback and then delete.
package trainers

import (
	"context"
	"encoding/json"
	"net/http"

	trainerstore "github.com/fitnest/fitnest/internal/app/store/trainers"
	"github.com/fitnest/fitnest/internal/app/system/httpjson"
	"github.com/fitnest/fitnest/internal/app/system/normalize"
	"github.com/fitnest/fitnest/internal/app/system/timeouts"
	"github.com/fitnest/fitnest/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Handler struct {
	Trainers *trainerstore.Store
	Validate *validator.Validate
	Log      *zap.Logger
}

func NewHandler(trainers *trainerstore.Store, validate *validator.Validate, log *zap.Logger) *Handler {
	return &Handler{Trainers: trainers, Validate: validate, Log: log}
}

type applyRequest struct {
	Email      string   `json:"email" validate:"required,email"`
	FullName   string   `json:"fullName" validate:"required"`
	Age        int      `json:"age" validate:"required,gt=0"`
	Experience int      `json:"experience" validate:"gte=0"`
	Skills     []string `json:"skills"`
}

// Apply handles POST /applied-trainers: submit a pending application.
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
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

	created, err := h.Trainers.Submit(ctx, models.TrainerApplication{
		Email:      req.Email,
		FullName:   req.FullName,
		Age:        req.Age,
		Experience: req.Experience,
		Skills:     req.Skills,
	})
	if err != nil {
		h.Log.Error("submit application failed", zap.Error(err))
		httpjson.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	httpjson.Created(w, r, map[string]any{"insertedId": created.ID.Hex()})
}

// ListApplied handles GET /applied-trainers?email=&status=: admin review
// queue, optionally narrowed to one applicant.
func (h *Handler) ListApplied(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	status := normalize.Status(r.URL.Query().Get("status"))
	if status == "" {
		status = models.ApplicationPending
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var (
		apps []models.TrainerApplication
		err  error
	)
	if email != "" {
		apps, err = h.Trainers.ListByEmailAndStatus(ctx, email, status)
	} else {
		apps, err = h.Trainers.ListByStatus(ctx, status)
	}
	if err != nil {
		h.Log.Error("list applications failed", zap.Error(err))
		httpjson.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	httpjson.OK(w, r, apps)
}

// GetApplied handles GET /applied-trainers/{id}.
func (h *Handler) GetApplied(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, r, http.StatusBadRequest, "invalid application id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	app, err := h.Trainers.GetByID(ctx, id)
	if err != nil {
		if err == trainerstore.ErrNotFound {
			httpjson.Error(w, r, http.StatusNotFound, "application not found")
			return
		}
		h.Log.Error("get application failed", zap.Error(err))
		httpjson.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	httpjson.OK(w, r, app)
}

// List handles GET /trainers?status=: the public trainer roster
// (confirmed) or the pending queue.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	status := normalize.Status(r.URL.Query().Get("status"))
	if status == "" {
		status = models.ApplicationConfirmed
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	apps, err := h.Trainers.ListByStatus(ctx, status)
	if err != nil {
		h.Log.Error("list trainers failed", zap.Error(err))
		httpjson.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	httpjson.OK(w, r, apps)
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
}

// SetStatus handles PATCH /trainers/status/{id}. Confirming promotes the
// applicant's account to the trainer role.
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, r, http.StatusBadRequest, "invalid application id")
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		httpjson.ValidationError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	status := normalize.Status(req.Status)
	if err := h.Trainers.SetStatus(ctx, id, status, req.Email); err != nil {
		switch err {
		case trainerstore.ErrNotFound:
			httpjson.Error(w, r, http.StatusNotFound, "application not found")
		default:
			h.Log.Error("set status failed", zap.String("id", id.Hex()), zap.Error(err))
			httpjson.Error(w, r, http.StatusBadRequest, err.Error())
		}
		return
	}

	httpjson.OK(w, r, map[string]any{"status": status})
}

// Delete handles DELETE /trainers/delete/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, r, http.StatusBadRequest, "invalid application id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Trainers.Delete(ctx, id); err != nil {
		if err == trainerstore.ErrNotFound {
			httpjson.Error(w, r, http.StatusNotFound, "application not found")
			return
		}
		h.Log.Error("delete application failed", zap.Error(err))
		httpjson.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	httpjson.OK(w, r, map[string]any{"deletedCount": 1})
}

type rejectRequest struct {
	TrainerID string `json:"trainerId" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Feedback  string `json:"feedback" validate:"required"`
}

// Reject handles POST /trainer-rejections: archive the rejection with its
// feedback. The application itself is removed by the separate delete call.
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	var req rejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		httpjson.ValidationError(w, r, err)
		return
	}

	appID, err := primitive.ObjectIDFromHex(req.TrainerID)
	if err != nil {
		httpjson.Error(w, r, http.StatusBadRequest, "invalid trainerId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	rej, err := h.Trainers.Reject(ctx, appID, req.Email, req.Feedback)
	if err != nil {
		h.Log.Error("reject application failed", zap.Error(err))
		httpjson.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	httpjson.Created(w, r, map[string]any{"insertedId": rej.ID.Hex()})
}
