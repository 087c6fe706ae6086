package slotstore

import (
	"context"
	"errors"
	"time"

	"github.com/fitnest/fitnest/internal/app/system/normalize"
	"github.com/fitnest/fitnest/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type Store struct {
	c        *mongo.Collection
	payments *mongo.Collection
	log      *zap.Logger
}

func New(db *mongo.Database, log *zap.Logger) *Store {
	return &Store{
		c:        db.Collection("slots"),
		payments: db.Collection("payments"),
		log:      log,
	}
}

// ErrNotFound is returned when no slot matches the id.
var ErrNotFound = errors.New("slot not found")

// Create inserts a new slot for a trainer.
func (s *Store) Create(ctx context.Context, sl models.Slot) (models.Slot, error) {
	sl.ID = primitive.NewObjectID()
	sl.TrainerEmail = normalize.Email(sl.TrainerEmail)
	sl.BookingCount = 0
	sl.CreatedAt = time.Now()

	if _, err := s.c.InsertOne(ctx, sl); err != nil {
		return models.Slot{}, err
	}
	return sl, nil
}

// GetByID loads one slot.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Slot, error) {
	var sl models.Slot
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sl); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sl, nil
}

// GetByIDs loads slots for a set of ids, in no particular order.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Slot, error) {
	if len(ids) == 0 {
		return []models.Slot{}, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	slots := []models.Slot{}
	if err := cur.All(ctx, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// ListByTrainer returns a trainer's slots, newest first.
func (s *Store) ListByTrainer(ctx context.Context, trainerEmail string) ([]models.Slot, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"trainer_email": normalize.Email(trainerEmail)},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	slots := []models.Slot{}
	if err := cur.All(ctx, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// IncrementBookingCount bumps booking_count by one atomically.
func (s *Store) IncrementBookingCount(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"booking_count": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ReconcileBookingCounts recomputes booking_count from the payment ledger
// for every slot. A crash between recording a payment and bumping the
// counter leaves drift; the ledger is the source of truth. Returns the
// number of slots corrected.
func (s *Store) ReconcileBookingCounts(ctx context.Context) (int, error) {
	cur, err := s.payments.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$slot_id"},
			{Key: "n", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	})
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	ledger := map[primitive.ObjectID]int64{}
	for cur.Next(ctx) {
		var row struct {
			ID primitive.ObjectID `bson:"_id"`
			N  int64              `bson:"n"`
		}
		if err := cur.Decode(&row); err != nil {
			return 0, err
		}
		ledger[row.ID] = row.N
	}
	if err := cur.Err(); err != nil {
		return 0, err
	}

	slotCur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	defer slotCur.Close(ctx)

	repaired := 0
	for slotCur.Next(ctx) {
		var sl models.Slot
		if err := slotCur.Decode(&sl); err != nil {
			return repaired, err
		}
		want := ledger[sl.ID]
		if sl.BookingCount == want {
			continue
		}
		_, err := s.c.UpdateOne(ctx,
			bson.M{"_id": sl.ID},
			bson.M{"$set": bson.M{"booking_count": want}})
		if err != nil {
			return repaired, err
		}
		s.log.Info("corrected booking count",
			zap.String("slot_id", sl.ID.Hex()),
			zap.Int64("from", sl.BookingCount),
			zap.Int64("to", want))
		repaired++
	}
	return repaired, slotCur.Err()
}
