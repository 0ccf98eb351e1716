package oauth

import (
	"context"
	"log/slog"
	"time"

	"github.com/phrazzld/nestly-api/internal/config"
	"github.com/phrazzld/nestly-api/internal/domain"
	"golang.org/x/oauth2"
)

type kakaoUser struct {
	ID           int64 `json:"id"`
	KakaoAccount struct {
		Email   string `json:"email"`
		Profile struct {
			Nickname        string `json:"nickname"`
			ProfileImageURL string `json:"profile_image_url"`
		} `json:"profile"`
	} `json:"kakao_account"`
}

// KakaoProvider implements Provider against Kakao login.
type KakaoProvider struct {
	client *client
}

var _ Provider = (*KakaoProvider)(nil)

// NewKakaoProvider creates a Kakao provider. Kakao expects the client
// credentials as form parameters.
func NewKakaoProvider(cfg config.OAuthProviderConfig, timeout time.Duration, log *slog.Logger) *KakaoProvider {
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = "https://kauth.kakao.com/oauth/token"
	}
	apiBase := cfg.APIBaseURL
	if apiBase == "" {
		apiBase = "https://kapi.kakao.com"
	}

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Endpoint: oauth2.Endpoint{
			AuthURL:   "https://kauth.kakao.com/oauth/authorize",
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	return &KakaoProvider{client: newClient(Kakao, oauthCfg, apiBase, timeout, log)}
}

// Name implements Provider.
func (p *KakaoProvider) Name() string { return Kakao }

// ExchangeCode implements Provider.
func (p *KakaoProvider) ExchangeCode(ctx context.Context, code string) (string, error) {
	return p.client.exchange(ctx, code)
}

// FetchProfile reads /v2/user/me. The nickname doubles as username and name.
func (p *KakaoProvider) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	var user kakaoUser
	if err := p.client.getJSON(ctx, accessToken, "/v2/user/me", &user); err != nil {
		return nil, err
	}

	account := user.KakaoAccount
	if account.Email == "" {
		return nil, ErrMissingEmail
	}

	return &Profile{
		Email:     domain.NormalizeEmail(account.Email),
		Username:  account.Profile.Nickname,
		Name:      account.Profile.Nickname,
		AvatarURL: account.Profile.ProfileImageURL,
	}, nil
}
