package oauth

import (
	"context"
	"fmt"
	"sort"
)

// Provider names, as used in the social login routes.
const (
	GitHub = "github"
	Kakao  = "kakao"
)

// Profile is the normalized identity returned by a provider.
type Profile struct {
	Email     string
	Username  string
	Name      string
	AvatarURL string
}

// Provider exchanges an authorization code for an access token and reads
// the user's profile with it.
type Provider interface {
	Name() string
	ExchangeCode(ctx context.Context, code string) (string, error)
	FetchProfile(ctx context.Context, accessToken string) (*Profile, error)
}

// Registry looks up configured providers by name.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry builds a registry from the given providers.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		r.providers[p.Name()] = p
	}
	return r
}

// Get returns the named provider or ErrUnknownProvider.
func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	return p, nil
}

// Names lists the configured providers in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
