package userstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/fitnest/fitnest/internal/app/system/gates"
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
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when a user with the email already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	errBadRole  = errors.New(`role must be "member"|"trainer"|"admin"`)
)

// Create inserts a new user after normalizing fields. New accounts default
// to the member role.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Email = normalize.Email(u.Email)
	u.FullName = normalize.Name(u.FullName)
	u.Role = normalize.Role(u.Role)
	if u.Role == "" {
		u.Role = models.RoleMember
	}
	if !models.IsValidRole(u.Role) {
		return models.User{}, errBadRole
	}

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	u.LastLoginAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByEmail looks up a user by case-insensitive email.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// RoleByEmail resolves a verified email to the stored role. Satisfies
// gates.RoleLookup.
func (s *Store) RoleByEmail(ctx context.Context, email string) (string, error) {
	var doc struct {
		Role string `bson:"role"`
	}
	err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)},
		options.FindOne().SetProjection(bson.M{"role": 1})).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return "", gates.ErrUnknownSubject
	}
	if err != nil {
		return "", err
	}
	return doc.Role, nil
}

// ProfileUpdate holds the fields a signed-in user may change about
// themselves. Zero-valued fields are left untouched.
type ProfileUpdate struct {
	FullName  string
	AvatarURL string
	LastLogin *time.Time
}

// UpdateProfile patches the profile of the user with the given email.
// Returns the number of documents modified (0 or 1).
func (s *Store) UpdateProfile(ctx context.Context, email string, upd ProfileUpdate) (int64, error) {
	set := bson.M{"updated_at": time.Now()}
	if upd.FullName != "" {
		set["full_name"] = normalize.Name(upd.FullName)
	}
	if upd.AvatarURL != "" {
		set["avatar_url"] = upd.AvatarURL
	}
	if upd.LastLogin != nil {
		set["last_login_at"] = *upd.LastLogin
	}

	res, err := s.c.UpdateOne(ctx,
		bson.M{"email": normalize.Email(email)},
		bson.M{"$set": set})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// SetRoleByEmail sets the role of the user with the given email. Used by
// the trainer confirmation flow and by the startup reconciliation pass.
func (s *Store) SetRoleByEmail(ctx context.Context, email, role string) error {
	role = normalize.Role(role)
	if !models.IsValidRole(role) {
		return errBadRole
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"email": normalize.Email(email)},
		bson.M{"$set": bson.M{"role": role, "updated_at": time.Now()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Demote sets a user's role back to member by ObjectID.
func (s *Store) Demote(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"role": models.RoleMember, "updated_at": time.Now()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
