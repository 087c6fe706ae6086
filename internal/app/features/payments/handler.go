// Package payments exposes the booking money-flow: charge-intent creation
// with the gateway, ledger writes, a payer's booked slots, and total
// revenue for admins.
package payments

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fitnest/fitnest/internal/app/gateway"
	paymentstore "github.com/fitnest/fitnest/internal/app/store/payments"
	slotstore "github.com/fitnest/fitnest/internal/app/store/slots"
	"github.com/fitnest/fitnest/internal/app/system/httpjson"
	"github.com/fitnest/fitnest/internal/app/system/timeouts"
	"github.com/fitnest/fitnest/internal/domain/models"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Handler struct {
	Payments *paymentstore.Store
	Slots    *slotstore.Store
	Gateway  gateway.Gateway
	Currency string
	Validate *validator.Validate
	Log      *zap.Logger
}

func NewHandler(payments *paymentstore.Store, slots *slotstore.Store, gw gateway.Gateway, currency string, validate *validator.Validate, log *zap.Logger) *Handler {
	return &Handler{
		Payments: payments,
		Slots:    slots,
		Gateway:  gw,
		Currency: currency,
		Validate: validate,
		Log:      log,
	}
}

type intentRequest struct {
	Price float64 `json:"price" validate:"required,gt=0"`
}

// CreateIntent handles POST /create-payment-intent. The amount crosses the
// gateway boundary in minor units; nothing is written to the ledger here.
func (h *Handler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req intentRequest
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

	intent, err := h.Gateway.CreateIntent(ctx, gateway.IntentRequest{
		AmountMinor: gateway.MinorUnits(req.Price),
		Currency:    h.Currency,
		Title:       "Training session booking",
	})
	if err != nil {
		h.Log.Error("create intent failed", zap.Error(err))
		httpjson.Error(w, r, http.StatusInternalServerError, "payment gateway error")
		return
	}

	httpjson.OK(w, r, map[string]any{"clientSecret": intent.ClientSecret})
}

type recordRequest struct {
	PayerEmail string  `json:"userEmail" validate:"required,email"`
	SlotID     string  `json:"slotId" validate:"required"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	GatewayRef string  `json:"gatewayRef"`
}

// Record handles POST /payments: write the ledger entry for a completed
// checkout. 409 when the payer already booked the slot.
func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		httpjson.ValidationError(w, r, err)
		return
	}

	slotID, err := primitive.ObjectIDFromHex(req.SlotID)
	if err != nil {
		httpjson.Error(w, r, http.StatusBadRequest, "invalid slotId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Payments.Record(ctx, models.Payment{
		PayerEmail: req.PayerEmail,
		SlotID:     slotID,
		Amount:     req.Amount,
		GatewayRef: req.GatewayRef,
	})
	if err != nil {
		if err == paymentstore.ErrAlreadyBooked {
			httpjson.Error(w, r, http.StatusConflict, "slot already booked")
			return
		}
		h.Log.Error("record payment failed", zap.Error(err))
		httpjson.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	httpjson.Created(w, r, map[string]any{"insertedId": created.ID.Hex()})
}

// BookedSlots handles GET /payments/booked-slots?email=: the slots the
// payer has paid for.
func (h *Handler) BookedSlots(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		httpjson.Error(w, r, http.StatusBadRequest, "email is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ids, err := h.Payments.BookedSlotIDs(ctx, email)
	if err != nil {
		h.Log.Error("booked slot ids failed", zap.Error(err))
		httpjson.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	slots, err := h.Slots.GetByIDs(ctx, ids)
	if err != nil {
		h.Log.Error("resolve booked slots failed", zap.Error(err))
		httpjson.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	httpjson.OK(w, r, slots)
}

// Revenue handles GET /payments/revenue: the ledger total for admins.
func (h *Handler) Revenue(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	total, err := h.Payments.TotalRevenue(ctx)
	if err != nil {
		h.Log.Error("total revenue failed", zap.Error(err))
		httpjson.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	httpjson.OK(w, r, map[string]any{"total": total})
}
