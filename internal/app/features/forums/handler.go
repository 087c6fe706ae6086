// Package forums exposes the discussion board: authoring, a paginated
// listing, and per-user voting.
package forums

import (
	"context"
	"encoding/json"
	"net/http"

	forumstore "github.com/fitnest/fitnest/internal/app/store/forums"
	"github.com/fitnest/fitnest/internal/app/system/auth"
	"github.com/fitnest/fitnest/internal/app/system/httpjson"
	"github.com/fitnest/fitnest/internal/app/system/paging"
	"github.com/fitnest/fitnest/internal/app/system/timeouts"
	"github.com/fitnest/fitnest/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Vote intents accepted by the vote endpoint.
const (
	VoteCast    = "vote"
	VoteRetract = "cancelVote"
)

type Handler struct {
	Forums   *forumstore.Store
	Validate *validator.Validate
	Log      *zap.Logger
}

func NewHandler(forums *forumstore.Store, validate *validator.Validate, log *zap.Logger) *Handler {
	return &Handler{Forums: forums, Validate: validate, Log: log}
}

type createRequest struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
}

// Create handles POST /forums. The author is the verified identity; the
// body is sanitized before storage.
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Forums.Create(ctx, models.ForumPost{
		AuthorEmail: id.Email,
		AuthorName:  id.Name,
		Title:       req.Title,
		Body:        req.Body,
	})
	if err != nil {
		h.Log.Error("create post failed", zap.Error(err))
		httpjson.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	httpjson.Created(w, r, map[string]any{"insertedId": created.ID.Hex()})
}

type listResponse struct {
	Result []models.ForumPost `json:"result"`
	Total  int64              `json:"total"`
}

// List handles GET /forums?page=&limit=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := paging.Parse(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	posts, total, err := h.Forums.List(ctx, page)
	if err != nil {
		h.Log.Error("list posts failed", zap.Error(err))
		httpjson.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	httpjson.OK(w, r, listResponse{Result: posts, Total: total})
}

type voteRequest struct {
	Vote      string `json:"vote"`
	UserEmail string `json:"userEmail"`
}

// Vote handles PATCH /forums/vote/{id}: add or remove the voter's mark.
// Repeating the same intent is a no-op.
func (h *Handler) Vote(w http.ResponseWriter, r *http.Request) {
	postID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, r, http.StatusBadRequest, "invalid post id")
		return
	}

	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserEmail == "" {
		httpjson.Error(w, r, http.StatusBadRequest, "userEmail is required")
		return
	}

	var cast bool
	switch req.Vote {
	case VoteCast:
		cast = true
	case VoteRetract:
		cast = false
	default:
		httpjson.Error(w, r, http.StatusBadRequest, `vote must be "vote" or "cancelVote"`)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Forums.CastOrRetract(ctx, postID, req.UserEmail, cast); err != nil {
		if err == forumstore.ErrNotFound {
			httpjson.Error(w, r, http.StatusNotFound, "post not found")
			return
		}
		h.Log.Error("vote failed", zap.String("post_id", postID.Hex()), zap.Error(err))
		httpjson.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	httpjson.OK(w, r, map[string]any{"modifiedCount": 1})
}
