package bootstrap

// AppConfig holds service-specific configuration.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings (ports, TLS, logging, CORS); AppConfig is
// everything specific to this application.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// AuthSecret is the HMAC key bearer tokens are verified against.
	AuthSecret string

	// AdminEmail promotes (or creates) the platform admin account on
	// startup so a fresh deployment is never adminless.
	AdminEmail string

	// Mercado Pago checkout configuration
	MPAccessToken     string
	PaymentCurrency   string
	PaymentSuccessURL string
	PaymentFailureURL string
}
