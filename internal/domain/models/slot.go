// internal/domain/models/slot.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Slot is a bookable session published by a trainer. The window is a
// weekday name plus wall-clock start and end times ("HH:MM"), repeating
// weekly; there is no absolute date on a slot.
//
// BookingCount mirrors the number of accepted payments referencing this slot.
// It is mutated only through the payment ledger ($inc) and repaired at
// startup by the booking-count reconciliation pass.
type Slot struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	TrainerEmail string              `bson:"trainer_email" json:"trainer_email"`
	ClassID      *primitive.ObjectID `bson:"class_id,omitempty" json:"class_id,omitempty"`
	Title        string              `bson:"title" json:"title"`
	Day          string              `bson:"day,omitempty" json:"day,omitempty"`
	StartsAt     string              `bson:"starts_at" json:"starts_at"`
	EndsAt       string              `bson:"ends_at" json:"ends_at"`
	Capacity     int                 `bson:"capacity,omitempty" json:"capacity,omitempty"`
	BookingCount int64               `bson:"booking_count" json:"booking_count"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
