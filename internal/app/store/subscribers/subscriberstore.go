package subscriberstore

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
	return &Store{c: db.Collection("subscribers")}
}

// ErrDuplicateEmail is returned when the email is already subscribed.
var ErrDuplicateEmail = errors.New("email is already subscribed")

// Create inserts a new subscriber. The unique email index makes concurrent
// duplicate subscriptions race to a single insert.
func (s *Store) Create(ctx context.Context, sub models.Subscriber) (models.Subscriber, error) {
	sub.ID = primitive.NewObjectID()
	sub.Email = normalize.Email(sub.Email)
	sub.Name = normalize.Name(sub.Name)
	sub.CreatedAt = time.Now()

	if _, err := s.c.InsertOne(ctx, sub); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Subscriber{}, ErrDuplicateEmail
		}
		return models.Subscriber{}, err
	}
	return sub, nil
}

// List returns all subscribers, newest first.
func (s *Store) List(ctx context.Context) ([]models.Subscriber, error) {
	cur, err := s.c.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	subs := []models.Subscriber{}
	if err := cur.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// Count returns the number of subscribers.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
