// Package paymentstore is the booking ledger. One document per
// (payer, slot) pair; the unique compound index is the source of truth for
// at-most-one booking under concurrency.
package paymentstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/fitnest/fitnest/internal/app/system/normalize"
	"github.com/fitnest/fitnest/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("payments")}
}

// ErrAlreadyBooked is returned when the payer already holds this slot.
var ErrAlreadyBooked = errors.New("slot already booked by this payer")

// Record inserts a ledger entry. The pre-read is a fast path for the common
// duplicate; concurrent duplicates race to the insert and the unique
// (payer_email, slot_id) index rejects the loser.
func (s *Store) Record(ctx context.Context, p models.Payment) (models.Payment, error) {
	p.PayerEmail = normalize.Email(p.PayerEmail)

	err := s.c.FindOne(ctx, bson.M{
		"payer_email": p.PayerEmail,
		"slot_id":     p.SlotID,
	}).Err()
	if err == nil {
		return models.Payment{}, ErrAlreadyBooked
	}
	if err != mongo.ErrNoDocuments {
		return models.Payment{}, err
	}

	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now()

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Payment{}, ErrAlreadyBooked
		}
		return models.Payment{}, err
	}
	return p, nil
}

// ListByPayer returns a payer's ledger entries, newest first.
func (s *Store) ListByPayer(ctx context.Context, payerEmail string) ([]models.Payment, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"payer_email": normalize.Email(payerEmail)},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	payments := []models.Payment{}
	if err := cur.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// BookedSlotIDs returns the ids of the slots a payer has booked.
func (s *Store) BookedSlotIDs(ctx context.Context, payerEmail string) ([]primitive.ObjectID, error) {
	payments, err := s.ListByPayer(ctx, payerEmail)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(payments))
	for _, p := range payments {
		ids = append(ids, p.SlotID)
	}
	return ids, nil
}

// TotalRevenue sums the whole ledger. Zero on an empty ledger.
func (s *Store) TotalRevenue(ctx context.Context) (float64, error) {
	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$amount"}}},
		}}},
	})
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		return 0, cur.Err()
	}
	var row struct {
		Total float64 `bson:"total"`
	}
	if err := cur.Decode(&row); err != nil {
		return 0, err
	}
	return row.Total, nil
}
