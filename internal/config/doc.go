// Package config handles configuration loading, parsing, and validation
// from various sources (.env file, config.yaml, environment variables). It provides
// type-safe access to application settings needed by different components while
// keeping configuration details separate from business logic.
//
// All environment variables use the NESTLY_ prefix with dots replaced by
// underscores, e.g. NESTLY_DATABASE_URL or NESTLY_OAUTH_GITHUB_CLIENT_ID.
package config
