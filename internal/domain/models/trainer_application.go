// internal/domain/models/trainer_application.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainerApplication status values. There is no stored "rejected" status:
// rejection archives a RejectedApplication and deletes the pending document.
const (
	ApplicationPending   = "pending"
	ApplicationConfirmed = "confirm"
)

// TrainerApplication is a member's request to become a trainer. Many
// applications may reference the same user by email; confirmation promotes
// that user's role.
type TrainerApplication struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email      string             `bson:"email" json:"email"`
	FullName   string             `bson:"full_name" json:"full_name"`
	Age        int                `bson:"age,omitempty" json:"age,omitempty"`
	Experience int                `bson:"experience,omitempty" json:"experience,omitempty"`
	Skills     []string           `bson:"skills,omitempty" json:"skills,omitempty"`
	Status     string             `bson:"status" json:"status"` // pending | confirm

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// RejectedApplication is the archive record written when a pending
// application is rejected. Immutable once inserted; its lifecycle is
// independent of the original application document.
type RejectedApplication struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ApplicationID primitive.ObjectID `bson:"application_id" json:"application_id"`
	Email         string             `bson:"email" json:"email"`
	Feedback      string             `bson:"feedback" json:"feedback"`
	RejectedAt    time.Time          `bson:"rejected_at" json:"rejected_at"`
}
