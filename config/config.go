// Package config defines the environment variable and command-line flags
// supported by this client and includes default values for particular
// fields.
package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/companieshouse/gofigure"
	"github.com/go-playground/validator/v10"
	"github.com/plutov/paypal/v4"
)

var cfg *Config
var mtx sync.Mutex

// Config defines the configuration options for the PayPal client.
type Config struct {
	PaypalClientID         string `env:"PAYPAL_CLIENT_ID"                  flag:"paypal-client-id"                  flagDesc:"PayPal REST app client ID"          validate:"required"`
	PaypalSecret           string `env:"PAYPAL_SECRET"                     flag:"paypal-secret"                     flagDesc:"PayPal REST app secret"             validate:"required"`
	PaypalEnv              string `env:"PAYPAL_ENV"                        flag:"paypal-env"                        flagDesc:"PayPal environment: live or test"   validate:"oneof=live test sandbox"`
	PaypalAPIBase          string `env:"PAYPAL_API_BASE"                   flag:"paypal-api-base"                   flagDesc:"Override for the PayPal API base URL" validate:"omitempty,url"`
	HTTPTimeoutSeconds     int    `env:"PAYPAL_HTTP_TIMEOUT_SECONDS"       flag:"paypal-http-timeout-seconds"       flagDesc:"Timeout for calls to PayPal"        validate:"gte=0"`
	TokenExpirySkewSeconds int    `env:"PAYPAL_TOKEN_EXPIRY_SKEW_SECONDS"  flag:"paypal-token-expiry-skew-seconds"  flagDesc:"Refresh tokens this long before they expire" validate:"gte=0"`
	MongoDBURL             string `env:"MONGODB_URL"                       flag:"mongodb-url"                       flagDesc:"MongoDB server URL for the shared token store"`
	Database               string `env:"MONGODB_DATABASE"                  flag:"mongodb-database"                  flagDesc:"MongoDB database for the shared token store"`
	TokenCollection        string `env:"MONGODB_TOKEN_COLLECTION"          flag:"mongodb-token-collection"          flagDesc:"MongoDB collection for cached access tokens"`
}

// DefaultConfig returns a pointer to a Config instance that has been populated
// with default values.
func DefaultConfig() *Config {
	return &Config{
		PaypalEnv:              "test",
		HTTPTimeoutSeconds:     30,
		TokenExpirySkewSeconds: 60,
		Database:               "paypal",
		TokenCollection:        "access_tokens",
	}
}

// Get returns a pointer to a Config instance that has been populated with
// values provided by the environment or command-line flags, or with default
// values if none are provided.
func Get() (*Config, error) {
	mtx.Lock()
	defer mtx.Unlock()

	if cfg != nil {
		return cfg, nil
	}

	cfg = DefaultConfig()

	err := gofigure.Gofigure(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is usable for talking to PayPal.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err != nil {
		return fmt.Errorf("invalid paypal config: [%w]", err)
	}
	return nil
}

// APIBase returns the PayPal API base URL for the configured environment.
// An explicit PaypalAPIBase wins over the environment selector.
func (c *Config) APIBase() (string, error) {
	if c.PaypalAPIBase != "" {
		return strings.TrimSuffix(c.PaypalAPIBase, "/"), nil
	}

	switch c.PaypalEnv {
	case "live":
		return paypal.APIBaseLive, nil
	case "test", "sandbox":
		return paypal.APIBaseSandBox, nil
	default:
		return "", fmt.Errorf("invalid paypal env in config: %s", c.PaypalEnv)
	}
}

// HTTPTimeout is the per-request timeout applied to the HTTP client.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// TokenExpirySkew is how long before expiry a cached token is considered stale.
func (c *Config) TokenExpirySkew() time.Duration {
	return time.Duration(c.TokenExpirySkewSeconds) * time.Second
}

// TokenStoreEnabled reports whether a shared MongoDB token store is configured.
func (c *Config) TokenStoreEnabled() bool {
	return c.MongoDBURL != ""
}
