// Package users exposes the account endpoints: creation at first sign-in,
// profile reads and patches, and the admin demotion switch.
package users

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	userstore "github.com/fitnest/fitnest/internal/app/store/users"
	"github.com/fitnest/fitnest/internal/app/system/httpjson"
	"github.com/fitnest/fitnest/internal/app/system/timeouts"
	"github.com/fitnest/fitnest/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Users    *userstore.Store
	Validate *validator.Validate
	Log      *zap.Logger
}

func NewHandler(users *userstore.Store, validate *validator.Validate, log *zap.Logger) *Handler {
	return &Handler{Users: users, Validate: validate, Log: log}
}

type createRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FullName  string `json:"name" validate:"required"`
	AvatarURL string `json:"photoURL"`
}

// Create handles POST /users: save the account on first sign-in.
// 409 when the email already has an account.
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

	created, err := h.Users.Create(ctx, models.User{
		Email:     req.Email,
		FullName:  req.FullName,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		if err == userstore.ErrDuplicateEmail {
			httpjson.Error(w, r, http.StatusConflict, "user already exists")
			return
		}
		h.Log.Error("create user failed", zap.Error(err))
		httpjson.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	httpjson.Created(w, r, map[string]any{"insertedId": created.ID.Hex()})
}

// GetByEmail handles GET /users/{email}. Returns null when no account
// exists, matching what sign-in flows expect.
func (h *Handler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.OK(w, r, nil)
			return
		}
		h.Log.Error("get user failed", zap.String("email", email), zap.Error(err))
		httpjson.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	httpjson.OK(w, r, u)
}

type profileRequest struct {
	FullName  string `json:"name"`
	AvatarURL string `json:"photoURL"`
}

// UpdateProfile handles PATCH /users/profile/{email}: display name, avatar,
// and the sign-in timestamp.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	now := time.Now()
	n, err := h.Users.UpdateProfile(ctx, email, userstore.ProfileUpdate{
		FullName:  req.FullName,
		AvatarURL: req.AvatarURL,
		LastLogin: &now,
	})
	if err != nil {
		h.Log.Error("update profile failed", zap.String("email", email), zap.Error(err))
		httpjson.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	httpjson.OK(w, r, map[string]any{"modifiedCount": n})
}

// Demote handles PATCH /users/demote/{id}: admin sets a user's role back
// to member.
func (h *Handler) Demote(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, r, http.StatusBadRequest, "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Users.Demote(ctx, id); err != nil {
		if err == userstore.ErrNotFound {
			httpjson.Error(w, r, http.StatusNotFound, "user not found")
			return
		}
		h.Log.Error("demote failed", zap.String("id", id.Hex()), zap.Error(err))
		httpjson.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	httpjson.OK(w, r, map[string]any{"role": models.RoleMember})
}
