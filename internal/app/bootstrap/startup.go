package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/config"
	slotstore "github.com/fitnest/fitnest/internal/app/store/slots"
	trainerstore "github.com/fitnest/fitnest/internal/app/store/trainers"
	userstore "github.com/fitnest/fitnest/internal/app/store/users"
	"github.com/fitnest/fitnest/internal/app/system/normalize"
	"github.com/fitnest/fitnest/internal/app/system/timeouts"
	"github.com/fitnest/fitnest/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Startup runs one-time initialization after DB connections and schema
// setup, before the HTTP handler is built. Fitnest uses it for the
// reconciliation passes that repair gaps left by crashes between paired
// writes, and to make sure an admin account exists.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase
	users := userstore.New(db)

	if appCfg.AdminEmail != "" {
		if err := ensureAdmin(ctx, deps, appCfg.AdminEmail, logger); err != nil {
			return err
		}
	}

	// The reconciliation passes scan whole collections, so they run under
	// the long tier rather than the ambient startup deadline.
	recCtx, done := timeouts.WithTimeout(ctx, timeouts.Long(), logger, "startup reconciliation")
	defer done()

	trainers := trainerstore.New(db, users, logger)
	promoted, err := trainers.ReconcilePromotions(recCtx)
	if err != nil {
		logger.Error("promotion reconciliation failed", zap.Error(err))
		return err
	}
	if promoted > 0 {
		logger.Info("repaired stalled trainer promotions", zap.Int("count", promoted))
	}

	slots := slotstore.New(db, logger)
	corrected, err := slots.ReconcileBookingCounts(recCtx)
	if err != nil {
		logger.Error("booking count reconciliation failed", zap.Error(err))
		return err
	}
	if corrected > 0 {
		logger.Info("repaired drifted booking counts", zap.Int("count", corrected))
	}

	return nil
}

// ensureAdmin promotes the configured account to admin, creating it when
// it does not exist yet.
func ensureAdmin(ctx context.Context, deps DBDeps, email string, logger *zap.Logger) error {
	email = normalize.Email(email)
	c := deps.MongoDatabase.Collection("users")

	res, err := c.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"role": models.RoleAdmin, "updated_at": time.Now()}})
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		logger.Info("promoted existing user to admin", zap.String("email", email))
		return nil
	}

	now := time.Now()
	_, err = c.InsertOne(ctx, models.User{
		ID:        primitive.NewObjectID(),
		Email:     email,
		FullName:  "Administrator",
		Role:      models.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return err
	}
	logger.Info("created admin user", zap.String("email", email))
	return nil
}
