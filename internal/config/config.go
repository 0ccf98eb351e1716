package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Session  SessionConfig  `mapstructure:"session"`
	OAuth    OAuthConfig    `mapstructure:"oauth" validate:"required"`
	Listing  ListingConfig  `mapstructure:"listing" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`
	// TrustProxyHeaders takes the client address from X-Forwarded-For and
	// X-Real-IP. Enable it only behind a proxy that overwrites those headers.
	TrustProxyHeaders bool `mapstructure:"trust_proxy_headers"`
}

// ShutdownTimeout returns the graceful shutdown window.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL                    string `mapstructure:"url" validate:"required,url"`
	MaxOpenConns           int    `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"gte=0"`
	AutoMigrate            bool   `mapstructure:"auto_migrate"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	BCryptCost           int    `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
	LoginRatePerMinute   int    `mapstructure:"login_rate_per_minute" validate:"gte=0"`
}

// TokenLifetime returns the session token lifetime.
func (c AuthConfig) TokenLifetime() time.Duration {
	return time.Duration(c.TokenLifetimeMinutes) * time.Minute
}

// SessionConfig configures the session revocation store.
// An empty RedisURL selects the in-process store.
type SessionConfig struct {
	RedisURL string `mapstructure:"redis_url" validate:"omitempty,url"`
}

// OAuthConfig holds the settings of the social login providers.
type OAuthConfig struct {
	TimeoutSeconds int                 `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	GitHub         OAuthProviderConfig `mapstructure:"github"`
	Kakao          OAuthProviderConfig `mapstructure:"kakao"`
}

// Timeout returns the per-call timeout for provider requests.
func (c OAuthConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// OAuthProviderConfig configures a single provider. A provider with an
// empty ClientID is disabled.
type OAuthProviderConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url" validate:"omitempty,url"`
	TokenURL     string `mapstructure:"token_url" validate:"omitempty,url"`
	APIBaseURL   string `mapstructure:"api_base_url" validate:"omitempty,url"`
}

// Enabled reports whether the provider has credentials configured.
func (c OAuthProviderConfig) Enabled() bool {
	return c.ClientID != ""
}

// Amenity write policies.
const (
	AmenityWriteOpen          = "open"
	AmenityWriteAuthenticated = "authenticated"
	AmenityWriteHost          = "host"
)

// ListingConfig holds settings for listing queries and amenity management.
type ListingConfig struct {
	PageSize           int    `mapstructure:"page_size" validate:"required,gt=0,lte=100"`
	AmenityWritePolicy string `mapstructure:"amenity_write_policy" validate:"required,oneof=open authenticated host"`
}
