package classstore

import (
	"context"
	"regexp"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/fitnest/fitnest/internal/app/system/paging"
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
	return &Store{c: db.Collection("classes")}
}

// Create inserts a new class. Classes are immutable once created.
func (s *Store) Create(ctx context.Context, c models.Class) (models.Class, error) {
	c.ID = primitive.NewObjectID()
	c.TitleCI = text.Fold(c.Title)
	c.CreatedAt = time.Now()

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Class{}, err
	}
	return c, nil
}

// List returns one page of classes matching the search term, newest first,
// together with the total size of the filtered set. The search is a
// case-insensitive substring match on the folded title.
func (s *Store) List(ctx context.Context, search string, p paging.Page) ([]models.Class, int64, error) {
	filter := bson.M{}
	if search != "" {
		filter["title_ci"] = bson.M{
			"$regex": regexp.QuoteMeta(text.Fold(search)),
		}
	}

	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cur, err := s.c.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(p.Skip()).
		SetLimit(p.Limit64()))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	classes := []models.Class{}
	if err := cur.All(ctx, &classes); err != nil {
		return nil, 0, err
	}
	return classes, total, nil
}

// GetByID loads one class.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Class, error) {
	var c models.Class
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
