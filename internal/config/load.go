package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix shared by all environment variables read by Load.
const EnvPrefix = "NESTLY"

// configKeys lists every key bound to an environment variable. Viper only
// unmarshals env values for keys it knows about.
var configKeys = []string{
	"server.port",
	"server.log_level",
	"server.shutdown_timeout_seconds",
	"server.trust_proxy_headers",
	"database.url",
	"database.max_open_conns",
	"database.max_idle_conns",
	"database.conn_max_lifetime_minutes",
	"database.auto_migrate",
	"auth.jwt_secret",
	"auth.token_lifetime_minutes",
	"auth.bcrypt_cost",
	"auth.login_rate_per_minute",
	"session.redis_url",
	"oauth.timeout_seconds",
	"oauth.github.client_id",
	"oauth.github.client_secret",
	"oauth.github.redirect_url",
	"oauth.github.token_url",
	"oauth.github.api_base_url",
	"oauth.kakao.client_id",
	"oauth.kakao.client_secret",
	"oauth.kakao.redirect_url",
	"oauth.kakao.token_url",
	"oauth.kakao.api_base_url",
	"listing.page_size",
	"listing.amenity_write_policy",
}

// Load configuration from environment variables and optionally config files.
// A .env file in the working directory is loaded first when present; variables
// already set in the environment win over it. Environment variables take
// precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range configKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its validate tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout_seconds", 15)
	v.SetDefault("server.trust_proxy_headers", false)

	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 25)
	v.SetDefault("database.conn_max_lifetime_minutes", 5)
	v.SetDefault("database.auto_migrate", false)

	v.SetDefault("auth.token_lifetime_minutes", 60*24)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("auth.login_rate_per_minute", 10)

	v.SetDefault("oauth.timeout_seconds", 10)
	v.SetDefault("oauth.github.token_url", "https://github.com/login/oauth/access_token")
	v.SetDefault("oauth.github.api_base_url", "https://api.github.com")
	v.SetDefault("oauth.kakao.token_url", "https://kauth.kakao.com/oauth/token")
	v.SetDefault("oauth.kakao.api_base_url", "https://kapi.kakao.com")

	v.SetDefault("listing.page_size", 10)
	v.SetDefault("listing.amenity_write_policy", AmenityWriteOpen)
}
