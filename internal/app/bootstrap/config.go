package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for Fitnest. They are loaded
// via WAFFLE's config system with support for:
//   - Config files: mongo_uri, auth_secret, etc.
//   - Environment variables: FITNEST_MONGO_URI, FITNEST_AUTH_SECRET, etc.
//   - Command-line flags: --mongo_uri, --auth_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "fitnest", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "auth_secret", Default: "dev-only-change-me-0123456789ABCDEF", Desc: "HMAC key for bearer token verification (must be strong in production)"},
	{Name: "admin_email", Default: "", Desc: "Email of the platform admin (promotes/creates on startup)"},

	{Name: "mp_access_token", Default: "", Desc: "Mercado Pago access token"},
	{Name: "payment_currency", Default: "USD", Desc: "Currency for checkout preferences"},
	{Name: "payment_success_url", Default: "http://localhost:3000/payment/success", Desc: "Checkout success redirect"},
	{Name: "payment_failure_url", Default: "http://localhost:3000/payment/failure", Desc: "Checkout failure redirect"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// Precedence: flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "FITNEST", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		AuthSecret: appValues.String("auth_secret"),
		AdminEmail: appValues.String("admin_email"),

		MPAccessToken:     appValues.String("mp_access_token"),
		PaymentCurrency:   appValues.String("payment_currency"),
		PaymentSuccessURL: appValues.String("payment_success_url"),
		PaymentFailureURL: appValues.String("payment_failure_url"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation before any
// backends are touched.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if coreCfg.Env == "prod" {
		if appCfg.AuthSecret == "" || appCfg.AuthSecret == "dev-only-change-me-0123456789ABCDEF" {
			return fmt.Errorf("auth_secret must be set to a strong value in production")
		}
		if appCfg.MPAccessToken == "" {
			return fmt.Errorf("mp_access_token must be set in production")
		}
	}

	if appCfg.MPAccessToken == "" {
		logger.Warn("mp_access_token not set; checkout intent creation will fail")
	}

	return nil
}
