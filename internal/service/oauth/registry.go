package oauth

import (
	"log/slog"

	"github.com/phrazzld/nestly-api/internal/config"
)

// NewRegistryFromConfig registers every provider whose client id is set.
func NewRegistryFromConfig(cfg config.OAuthConfig, log *slog.Logger) *Registry {
	var providers []Provider
	if cfg.GitHub.Enabled() {
		providers = append(providers, NewGitHubProvider(cfg.GitHub, cfg.Timeout(), log))
	}
	if cfg.Kakao.Enabled() {
		providers = append(providers, NewKakaoProvider(cfg.Kakao, cfg.Timeout(), log))
	}
	return NewRegistry(providers...)
}
