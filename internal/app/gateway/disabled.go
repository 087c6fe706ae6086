package gateway

import "context"

// Disabled is the gateway used when no provider credentials are configured.
// Every intent fails with ErrGateway so the handler surfaces a clean 500
// instead of a provider SDK panic. Ledger writes are unaffected; recording
// an already-paid booking does not touch the provider.
type Disabled struct{}

func (Disabled) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	return nil, ErrGateway
}
