// Package trainerstore persists trainer applications and drives the
// application lifecycle: submitted pending, confirmed (with role promotion),
// or rejected (archived, then deleted).
package trainerstore

import (
	"context"
	"errors"
	"time"

	userstore "github.com/fitnest/fitnest/internal/app/store/users"
	"github.com/fitnest/fitnest/internal/app/system/normalize"
	"github.com/fitnest/fitnest/internal/app/system/txn"
	"github.com/fitnest/fitnest/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type Store struct {
	db       *mongo.Database
	c        *mongo.Collection
	rejected *mongo.Collection
	users    *userstore.Store
	log      *zap.Logger

	// betweenConfirmWrites runs between the status write and the role
	// promotion. Tests use it to simulate a crash in the gap the startup
	// reconciliation pass has to repair.
	betweenConfirmWrites func() error
}

func New(db *mongo.Database, users *userstore.Store, log *zap.Logger) *Store {
	return &Store{
		db:       db,
		c:        db.Collection("trainer_applications"),
		rejected: db.Collection("rejected_applications"),
		users:    users,
		log:      log,
	}
}

var (
	// ErrNotFound is returned when no application matches the id.
	ErrNotFound = errors.New("trainer application not found")
	errBadState = errors.New(`status must be "pending"|"confirm"`)
)

// Submit inserts a new pending application. An applicant may hold more than
// one pending application; admins resolve duplicates during review.
func (s *Store) Submit(ctx context.Context, a models.TrainerApplication) (models.TrainerApplication, error) {
	a.ID = primitive.NewObjectID()
	a.Email = normalize.Email(a.Email)
	a.FullName = normalize.Name(a.FullName)
	a.Status = models.ApplicationPending

	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.TrainerApplication{}, err
	}
	return a, nil
}

// SetStatus moves an application to the given status. Confirming also
// promotes the applicant's user account to the trainer role; both writes
// run inside a transaction when the deployment supports one, otherwise
// sequentially with the gap repaired at startup by ReconcilePromotions.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status, email string) error {
	email = normalize.Email(email)

	switch status {
	case models.ApplicationPending:
		return s.writeStatus(ctx, id, status)
	case models.ApplicationConfirmed:
		return txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
			return s.confirmWrites(ctx, id, email)
		})
	default:
		return errBadState
	}
}

func (s *Store) writeStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) confirmWrites(ctx context.Context, id primitive.ObjectID, email string) error {
	if err := s.writeStatus(ctx, id, models.ApplicationConfirmed); err != nil {
		return err
	}
	if s.betweenConfirmWrites != nil {
		if err := s.betweenConfirmWrites(); err != nil {
			return err
		}
	}
	if err := s.users.SetRoleByEmail(ctx, email, models.RoleTrainer); err != nil {
		// the applicant's account may not exist yet; the promotion is
		// picked up by ReconcilePromotions once it does
		if errors.Is(err, userstore.ErrNotFound) {
			s.log.Warn("confirmed application has no user account",
				zap.String("email", email))
			return nil
		}
		return err
	}
	return nil
}

// Reject archives the rejection with its feedback. Removing the application
// itself is the separate Delete step.
func (s *Store) Reject(ctx context.Context, applicationID primitive.ObjectID, email, feedback string) (models.RejectedApplication, error) {
	rej := models.RejectedApplication{
		ID:            primitive.NewObjectID(),
		ApplicationID: applicationID,
		Email:         normalize.Email(email),
		Feedback:      feedback,
		RejectedAt:    time.Now(),
	}
	if _, err := s.rejected.InsertOne(ctx, rej); err != nil {
		return models.RejectedApplication{}, err
	}
	return rej, nil
}

// Delete removes an application by id. Returns ErrNotFound when nothing
// was deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID loads one application.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.TrainerApplication, error) {
	var a models.TrainerApplication
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListByStatus returns applications in the given status, newest first.
func (s *Store) ListByStatus(ctx context.Context, status string) ([]models.TrainerApplication, error) {
	return s.list(ctx, bson.M{"status": status})
}

// ListByEmailAndStatus returns one applicant's applications in the given
// status, newest first.
func (s *Store) ListByEmailAndStatus(ctx context.Context, email, status string) ([]models.TrainerApplication, error) {
	return s.list(ctx, bson.M{"email": normalize.Email(email), "status": status})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.TrainerApplication, error) {
	cur, err := s.c.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	apps := []models.TrainerApplication{}
	if err := cur.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// ReconcilePromotions repairs the confirm-without-promotion gap left by a
// crash between the two confirmation writes on deployments without
// transactions. It scans confirmed applications and promotes any applicant
// whose account is still unpromoted. Returns the number of repairs.
func (s *Store) ReconcilePromotions(ctx context.Context) (int, error) {
	apps, err := s.ListByStatus(ctx, models.ApplicationConfirmed)
	if err != nil {
		return 0, err
	}

	repaired := 0
	for _, a := range apps {
		u, err := s.users.GetByEmail(ctx, a.Email)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				continue
			}
			return repaired, err
		}
		if u.Role == models.RoleTrainer || u.Role == models.RoleAdmin {
			continue
		}
		if err := s.users.SetRoleByEmail(ctx, a.Email, models.RoleTrainer); err != nil {
			return repaired, err
		}
		s.log.Info("promoted user for confirmed application",
			zap.String("email", a.Email),
			zap.String("application_id", a.ID.Hex()))
		repaired++
	}
	return repaired, nil
}
