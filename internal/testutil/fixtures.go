package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/fitnest/fitnest/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for seeding test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user with the given email and role.
func (f *Fixtures) CreateUser(ctx context.Context, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:        primitive.NewObjectID(),
		Email:     email,
		FullName:  "Test User",
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("insert user fixture: %v", err)
	}
	return u
}

// CreateClass inserts a class with the given title.
func (f *Fixtures) CreateClass(ctx context.Context, title string) models.Class {
	f.t.Helper()

	c := models.Class{
		ID:          primitive.NewObjectID(),
		Title:       title,
		TitleCI:     text.Fold(title),
		Description: "Test class",
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := f.db.Collection("classes").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("insert class fixture: %v", err)
	}
	return c
}

// CreateSlot inserts a slot owned by the given trainer.
func (f *Fixtures) CreateSlot(ctx context.Context, trainerEmail string) models.Slot {
	f.t.Helper()

	s := models.Slot{
		ID:           primitive.NewObjectID(),
		TrainerEmail: trainerEmail,
		Title:        "Morning Session",
		Day:          "Monday",
		StartsAt:     "09:00",
		EndsAt:       "10:00",
		Capacity:     10,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := f.db.Collection("slots").InsertOne(ctx, s); err != nil {
		f.t.Fatalf("insert slot fixture: %v", err)
	}
	return s
}

// CreateApplication inserts a trainer application with the given status.
func (f *Fixtures) CreateApplication(ctx context.Context, email, status string) models.TrainerApplication {
	f.t.Helper()

	now := time.Now().UTC()
	a := models.TrainerApplication{
		ID:         primitive.NewObjectID(),
		Email:      email,
		FullName:   "Test Applicant",
		Age:        30,
		Experience: 3,
		Skills:     []string{"yoga"},
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("trainer_applications").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("insert application fixture: %v", err)
	}
	return a
}

// CreatePost inserts a forum post by the given author.
func (f *Fixtures) CreatePost(ctx context.Context, authorEmail, title string) models.ForumPost {
	f.t.Helper()

	p := models.ForumPost{
		ID:          primitive.NewObjectID(),
		AuthorEmail: authorEmail,
		AuthorName:  "Test Author",
		Title:       title,
		Body:        "Test body",
		Votes:       []string{},
		Count:       0,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := f.db.Collection("forum_posts").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("insert forum post fixture: %v", err)
	}
	return p
}
