// Package forumstore persists forum posts and their vote sets. A vote is
// membership of the voter's email in the post's votes array; count always
// equals the size of that array.
package forumstore

import (
	"context"
	"errors"
	"time"

	"github.com/fitnest/fitnest/internal/app/system/htmlsanitize"
	"github.com/fitnest/fitnest/internal/app/system/normalize"
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
	return &Store{c: db.Collection("forum_posts")}
}

// ErrNotFound is returned when no post matches the id.
var ErrNotFound = errors.New("forum post not found")

// Create inserts a new post with an empty vote set. The body is sanitized
// before it is stored.
func (s *Store) Create(ctx context.Context, p models.ForumPost) (models.ForumPost, error) {
	p.ID = primitive.NewObjectID()
	p.AuthorEmail = normalize.Email(p.AuthorEmail)
	p.AuthorName = normalize.Name(p.AuthorName)
	p.Body = htmlsanitize.Sanitize(p.Body)
	p.Votes = []string{}
	p.Count = 0
	p.CreatedAt = time.Now()

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.ForumPost{}, err
	}
	return p, nil
}

// List returns one page of posts, newest first, and the total post count.
func (s *Store) List(ctx context.Context, p paging.Page) ([]models.ForumPost, int64, error) {
	total, err := s.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	cur, err := s.c.Find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(p.Skip()).
		SetLimit(p.Limit64()))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	posts := []models.ForumPost{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// GetByID loads one post.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ForumPost, error) {
	var p models.ForumPost
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// CastOrRetract adds or removes the voter's email in the post's vote set
// and recomputes the count, in one pipeline update. The server applies the
// whole pipeline atomically per document, so count == |votes| holds at all
// times and repeating the same call is a no-op.
func (s *Store) CastOrRetract(ctx context.Context, id primitive.ObjectID, voter string, cast bool) error {
	voter = normalize.Email(voter)

	op := "$setDifference"
	if cast {
		op = "$setUnion"
	}
	update := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "votes", Value: bson.D{{Key: op, Value: bson.A{"$votes", bson.A{voter}}}}},
		}}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "count", Value: bson.D{{Key: "$size", Value: "$votes"}}},
		}}},
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
