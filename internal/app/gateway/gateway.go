// Package gateway defines the charge-intent port the payment feature talks
// to. Adapters implement it against a concrete provider.
package gateway

import (
	"context"
	"errors"
	"math"
)

// ErrGateway wraps any provider-side failure. Handlers translate it to 500;
// no ledger writes happen on that path.
var ErrGateway = errors.New("payment gateway error")

// IntentRequest describes the charge to prepare. Amounts are carried in
// minor units so no float arithmetic crosses the boundary.
type IntentRequest struct {
	AmountMinor int64
	Currency    string
	PayerEmail  string
	Title       string
}

// Intent is the provider's handle for a prepared charge. ClientSecret is
// what the browser-side SDK needs to open checkout.
type Intent struct {
	ClientSecret string
	CheckoutURL  string
}

// Gateway prepares charge intents with the payment provider.
type Gateway interface {
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)
}

// MinorUnits converts a decimal amount to minor units, truncating toward
// zero. 10.999 becomes 1099. A micro-cent nudge absorbs binary float
// representation, so 29.99 becomes 2999 even when 29.99*100 lands a hair
// below it.
func MinorUnits(amount float64) int64 {
	cents := amount * 100
	if cents < 0 {
		return int64(math.Trunc(cents - 1e-6))
	}
	return int64(math.Trunc(cents + 1e-6))
}

// DecimalAmount converts minor units back to a decimal amount for
// providers whose APIs take decimals.
func DecimalAmount(minor int64) float64 {
	return float64(minor) / 100
}
