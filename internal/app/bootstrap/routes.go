package bootstrap

import (
	"net/http"
	"time"

	"github.com/dalemusser/waffle/config"
	classesfeature "github.com/fitnest/fitnest/internal/app/features/classes"
	forumsfeature "github.com/fitnest/fitnest/internal/app/features/forums"
	healthfeature "github.com/fitnest/fitnest/internal/app/features/health"
	paymentsfeature "github.com/fitnest/fitnest/internal/app/features/payments"
	slotsfeature "github.com/fitnest/fitnest/internal/app/features/slots"
	subscribersfeature "github.com/fitnest/fitnest/internal/app/features/subscribers"
	trainersfeature "github.com/fitnest/fitnest/internal/app/features/trainers"
	usersfeature "github.com/fitnest/fitnest/internal/app/features/users"
	"github.com/fitnest/fitnest/internal/app/gateway"
	"github.com/fitnest/fitnest/internal/app/gateway/mercadopago"
	classstore "github.com/fitnest/fitnest/internal/app/store/classes"
	forumstore "github.com/fitnest/fitnest/internal/app/store/forums"
	paymentstore "github.com/fitnest/fitnest/internal/app/store/payments"
	slotstore "github.com/fitnest/fitnest/internal/app/store/slots"
	subscriberstore "github.com/fitnest/fitnest/internal/app/store/subscribers"
	trainerstore "github.com/fitnest/fitnest/internal/app/store/trainers"
	userstore "github.com/fitnest/fitnest/internal/app/store/users"
	"github.com/fitnest/fitnest/internal/app/system/auth"
	"github.com/fitnest/fitnest/internal/app/system/gates"
	"github.com/fitnest/fitnest/internal/app/system/limits"
	"github.com/fitnest/fitnest/internal/app/system/ratelimit"
	"github.com/fitnest/fitnest/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler for the app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. Stores are built once here and shared by
// the feature handlers; the auth verifier and role gates are created once
// and passed to each feature's route constructor.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	users := userstore.New(db)
	subscribers := subscriberstore.New(db)
	trainers := trainerstore.New(db, users, logger)
	classes := classstore.New(db)
	slots := slotstore.New(db, logger)
	payments := paymentstore.New(db)
	forums := forumstore.New(db)

	validate := validator.New()

	verifier := auth.NewVerifier(appCfg.AuthSecret)
	verify := verifier.Middleware
	adminOnly := gates.Require(users, logger, models.RoleAdmin)
	trainerOnly := gates.Require(users, logger, models.RoleTrainer, models.RoleAdmin)

	var gw gateway.Gateway
	if appCfg.MPAccessToken != "" {
		mp, err := mercadopago.New(appCfg.MPAccessToken, appCfg.PaymentSuccessURL, appCfg.PaymentFailureURL, logger)
		if err != nil {
			logger.Error("mercadopago client init failed", zap.Error(err))
			return nil, err
		}
		gw = mp
	} else {
		gw = gateway.Disabled{}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(limits.Body)

	// Newsletter signup is the only write with no bearer check in front
	// of it, so it gets a per-IP budget.
	subscribeLimiter := ratelimit.New(30, time.Minute)

	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	usersHandler := usersfeature.NewHandler(users, validate, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler, verify, adminOnly))

	subscribersHandler := subscribersfeature.NewHandler(subscribers, validate, logger)
	r.With(subscribeLimiter.Middleware).Mount("/subscribers", subscribersfeature.Routes(subscribersHandler))

	trainersHandler := trainersfeature.NewHandler(trainers, validate, logger)
	r.Mount("/applied-trainers", trainersfeature.AppliedRoutes(trainersHandler, verify, adminOnly))
	r.Mount("/trainers", trainersfeature.Routes(trainersHandler, verify, adminOnly))
	r.Mount("/trainer-rejections", trainersfeature.RejectionRoutes(trainersHandler, verify, adminOnly))

	classesHandler := classesfeature.NewHandler(classes, validate, logger)
	r.Mount("/classes", classesfeature.Routes(classesHandler, verify, adminOnly))

	slotsHandler := slotsfeature.NewHandler(slots, validate, logger)
	r.Mount("/slots", slotsfeature.Routes(slotsHandler, verify, trainerOnly))

	paymentsHandler := paymentsfeature.NewHandler(payments, slots, gw, appCfg.PaymentCurrency, validate, logger)
	r.Mount("/payments", paymentsfeature.Routes(paymentsHandler, verify, adminOnly))
	r.Mount("/create-payment-intent", paymentsfeature.IntentRoutes(paymentsHandler, verify))

	forumsHandler := forumsfeature.NewHandler(forums, validate, logger)
	r.Mount("/forums", forumsfeature.Routes(forumsHandler, verify))

	return r, nil
}
