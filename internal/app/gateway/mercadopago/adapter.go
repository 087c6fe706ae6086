// Package mercadopago implements the gateway port with Checkout Pro
// preferences from the official SDK.
package mercadopago

import (
	"context"
	"fmt"

	"github.com/fitnest/fitnest/internal/app/gateway"
	"github.com/google/uuid"
	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"go.uber.org/zap"
)

type Adapter struct {
	client     preference.Client
	successURL string
	failureURL string
	log        *zap.Logger
}

// New builds an adapter from the account access token. The success and
// failure URLs are where checkout sends the payer back.
func New(accessToken, successURL, failureURL string, log *zap.Logger) (*Adapter, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &Adapter{
		client:     preference.NewClient(cfg),
		successURL: successURL,
		failureURL: failureURL,
		log:        log,
	}, nil
}

// CreateIntent creates a Checkout Pro preference for the charge. The
// preference id doubles as the client secret the browser SDK consumes.
func (a *Adapter) CreateIntent(ctx context.Context, req gateway.IntentRequest) (*gateway.Intent, error) {
	ref := uuid.NewString()

	prefReq := preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:      req.Title,
				Quantity:   1,
				UnitPrice:  gateway.DecimalAmount(req.AmountMinor),
				CurrencyID: req.Currency,
			},
		},
		ExternalReference: ref,
		AutoReturn:        "approved",
		BackURLs: &preference.BackURLsRequest{
			Success: a.successURL,
			Failure: a.failureURL,
		},
	}
	if req.PayerEmail != "" {
		prefReq.Payer = &preference.PayerRequest{Email: req.PayerEmail}
	}

	result, err := a.client.Create(ctx, prefReq)
	if err != nil {
		a.log.Error("create preference failed",
			zap.String("external_reference", ref),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", gateway.ErrGateway, err)
	}

	a.log.Info("charge intent created",
		zap.String("preference_id", result.ID),
		zap.String("external_reference", ref),
		zap.Int64("amount_minor", req.AmountMinor))

	return &gateway.Intent{
		ClientSecret: result.ID,
		CheckoutURL:  result.InitPoint,
	}, nil
}
