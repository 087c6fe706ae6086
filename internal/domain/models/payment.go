// internal/domain/models/payment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is one accepted charge in the local ledger. The compound unique
// index on (payer_email, slot_id) is what enforces at-most-one accepted
// payment per payer per slot, including under concurrent requests.
type Payment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PayerEmail string             `bson:"payer_email" json:"payer_email"`
	SlotID     primitive.ObjectID `bson:"slot_id" json:"slot_id"`
	Amount     float64            `bson:"amount" json:"amount"`
	GatewayRef string             `bson:"gateway_ref,omitempty" json:"gateway_ref,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
