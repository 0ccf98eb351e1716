package oauth

import (
	"context"
	"log/slog"
	"time"

	"github.com/phrazzld/nestly-api/internal/config"
	"github.com/phrazzld/nestly-api/internal/domain"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

type githubUser struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

// GitHubProvider implements Provider against the GitHub OAuth app flow.
type GitHubProvider struct {
	client *client
}

var _ Provider = (*GitHubProvider)(nil)

// NewGitHubProvider creates a GitHub provider. TokenURL and APIBaseURL from
// cfg override the public endpoints.
func NewGitHubProvider(cfg config.OAuthProviderConfig, timeout time.Duration, log *slog.Logger) *GitHubProvider {
	endpoint := github.Endpoint
	if cfg.TokenURL != "" {
		endpoint.TokenURL = cfg.TokenURL
	}
	endpoint.AuthStyle = oauth2.AuthStyleInParams

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Endpoint:     endpoint,
		Scopes:       []string{"read:user", "user:email"},
	}

	apiBase := cfg.APIBaseURL
	if apiBase == "" {
		apiBase = "https://api.github.com"
	}

	return &GitHubProvider{client: newClient(GitHub, oauthCfg, apiBase, timeout, log)}
}

// Name implements Provider.
func (p *GitHubProvider) Name() string { return GitHub }

// ExchangeCode implements Provider.
func (p *GitHubProvider) ExchangeCode(ctx context.Context, code string) (string, error) {
	return p.client.exchange(ctx, code)
}

// FetchProfile reads /user and picks the primary address from /user/emails.
func (p *GitHubProvider) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	var user githubUser
	if err := p.client.getJSON(ctx, accessToken, "/user", &user); err != nil {
		return nil, err
	}

	var emails []githubEmail
	if err := p.client.getJSON(ctx, accessToken, "/user/emails", &emails); err != nil {
		return nil, err
	}

	primary := ""
	for _, e := range emails {
		if e.Primary {
			primary = e.Email
			break
		}
	}
	if primary == "" {
		return nil, ErrNoPrimaryEmail
	}

	name := user.Name
	if name == "" {
		name = user.Login
	}

	return &Profile{
		Email:     domain.NormalizeEmail(primary),
		Username:  user.Login,
		Name:      name,
		AvatarURL: user.AvatarURL,
	}, nil
}
