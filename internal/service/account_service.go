package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/phrazzld/nestly-api/internal/domain"
	"github.com/phrazzld/nestly-api/internal/platform/logger"
	"github.com/phrazzld/nestly-api/internal/redact"
	"github.com/phrazzld/nestly-api/internal/service/auth"
	"github.com/phrazzld/nestly-api/internal/service/oauth"
	"github.com/phrazzld/nestly-api/internal/store"
)

const (
	maxUsernameLength   = 150
	usernameSuffixChars = 6
	maxUsernameAttempts = 5
)

// SessionIssuer starts and ends sessions. *auth.SessionManager implements it.
type SessionIssuer interface {
	Issue(ctx context.Context, userID int64) (*auth.Token, error)
	Revoke(ctx context.Context, claims *auth.Claims) error
}

// ProviderLookup resolves an OAuth provider by route name. *oauth.Registry
// implements it.
type ProviderLookup interface {
	Get(name string) (oauth.Provider, error)
}

// AccountService covers signup, login and the private profile.
type AccountService interface {
	// CreateAccount registers a user with a password.
	CreateAccount(ctx context.Context, input SignupInput) (*domain.User, error)

	// ChangePassword replaces actor's password after checking the old one.
	ChangePassword(ctx context.Context, actor *domain.User, oldPassword, newPassword string) error

	// LogIn checks the credentials and starts a session.
	LogIn(ctx context.Context, username, password string) (*domain.User, *auth.Token, error)

	// LogOut revokes the session described by claims.
	LogOut(ctx context.Context, actor *domain.User, claims *auth.Claims) error

	// SocialLogin exchanges an OAuth code, finds or creates the matching
	// user by email and starts a session.
	SocialLogin(ctx context.Context, provider, code string) (*domain.User, *auth.Token, error)

	// GetProfile returns actor's private profile.
	GetProfile(ctx context.Context, actor *domain.User) (*domain.User, error)

	// UpdateProfile applies a partial update to actor's profile.
	UpdateProfile(ctx context.Context, actor *domain.User, input ProfileInput) (*domain.User, error)
}

type accountServiceImpl struct {
	users     store.UserStore
	hasher    auth.PasswordHasher
	sessions  SessionIssuer
	providers ProviderLookup
	logger    *slog.Logger
}

// NewAccountService creates an AccountService.
// It returns an error if any of the required dependencies are nil.
func NewAccountService(
	users store.UserStore,
	hasher auth.PasswordHasher,
	sessions SessionIssuer,
	providers ProviderLookup,
	logger *slog.Logger,
) (AccountService, error) {
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if hasher == nil {
		return nil, domain.NewValidationError("hasher", "cannot be nil", domain.ErrValidation)
	}
	if sessions == nil {
		return nil, domain.NewValidationError("sessions", "cannot be nil", domain.ErrValidation)
	}
	if providers == nil {
		return nil, domain.NewValidationError("providers", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &accountServiceImpl{
		users:     users,
		hasher:    hasher,
		sessions:  sessions,
		providers: providers,
		logger:    logger.With(slog.String("component", "account_service")),
	}, nil
}

// CreateAccount implements AccountService.CreateAccount
func (s *accountServiceImpl) CreateAccount(ctx context.Context, input SignupInput) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if input.Password == "" {
		return nil, domain.NewValidationError("password", "Password is required.", nil)
	}
	if err := domain.ValidatePassword(input.Password, input.Username, input.Email, input.Name); err != nil {
		return nil, err
	}
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, NewServiceError("account", "create", "failed to hash password", err)
	}

	user := &domain.User{
		Username:       strings.TrimSpace(input.Username),
		Email:          domain.NormalizeEmail(input.Email),
		Name:           input.Name,
		Avatar:         input.Avatar,
		IsHost:         input.IsHost,
		Gender:         input.Gender,
		Language:       input.Language,
		Currency:       input.Currency,
		HashedPassword: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if fe := uniqueConflict(err); fe != nil {
			return nil, fe
		}
		return nil, err
	}

	log.Info("account created", slog.Int64("user_id", user.ID))
	return user, nil
}

// ChangePassword implements AccountService.ChangePassword
func (s *accountServiceImpl) ChangePassword(
	ctx context.Context,
	actor *domain.User,
	oldPassword, newPassword string,
) error {
	if actor == nil {
		return ErrAuthenticationRequired
	}
	if oldPassword == "" || newPassword == "" {
		return domain.NewValidationError("", "Both old_password and new_password are required.", nil)
	}
	if err := domain.ValidatePassword(newPassword, actor.Username, actor.Email, actor.Name); err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return err
	}
	if err := s.hasher.Compare(user.HashedPassword, oldPassword); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return domain.NewValidationError("old_password", "Invalid Password", err)
		}
		return NewServiceError("account", "change_password", "failed to verify password", err)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return NewServiceError("account", "change_password", "failed to hash password", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("password changed",
		slog.Int64("user_id", user.ID))
	return nil
}

// LogIn implements AccountService.LogIn
func (s *accountServiceImpl) LogIn(ctx context.Context, username, password string) (*domain.User, *auth.Token, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if username == "" || password == "" {
		return nil, nil, domain.NewValidationError("", "Both username and password are required.", nil)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login for unknown username")
			return nil, nil, ErrWrongCredentials
		}
		return nil, nil, err
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			log.Debug("login with wrong password", slog.Int64("user_id", user.ID))
			return nil, nil, ErrWrongCredentials
		}
		return nil, nil, NewServiceError("account", "login", "failed to verify password", err)
	}

	token, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, nil, NewServiceError("account", "login", "failed to issue session", err)
	}

	log.Info("user logged in", slog.Int64("user_id", user.ID))
	return user, token, nil
}

// LogOut implements AccountService.LogOut
func (s *accountServiceImpl) LogOut(ctx context.Context, actor *domain.User, claims *auth.Claims) error {
	if actor == nil || claims == nil {
		return ErrAuthenticationRequired
	}
	if err := s.sessions.Revoke(ctx, claims); err != nil {
		return NewServiceError("account", "logout", "failed to revoke session", err)
	}
	return nil
}

// SocialLogin implements AccountService.SocialLogin
func (s *accountServiceImpl) SocialLogin(
	ctx context.Context,
	providerName, code string,
) (*domain.User, *auth.Token, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("provider", providerName))

	provider, err := s.providers.Get(providerName)
	if err != nil {
		return nil, nil, err
	}

	accessToken, err := provider.ExchangeCode(ctx, code)
	if err != nil {
		return nil, nil, err
	}
	profile, err := provider.FetchProfile(ctx, accessToken)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.findOrCreate(ctx, profile)
	if err != nil {
		log.Error("social login failed to resolve user", slog.String("error", redact.Error(err)))
		return nil, nil, err
	}

	token, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, nil, NewServiceError("account", "social_login", "failed to issue session", err)
	}

	log.Info("user logged in via provider", slog.Int64("user_id", user.ID))
	return user, token, nil
}

// findOrCreate returns the user with the profile's email, creating one with
// an unusable password when none exists. Existing profiles are left as is.
func (s *accountServiceImpl) findOrCreate(ctx context.Context, profile *oauth.Profile) (*domain.User, error) {
	email := domain.NormalizeEmail(profile.Email)
	if email == "" {
		return nil, oauth.ErrMissingEmail
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return nil, err
	}

	base := usernameBase(profile.Username, email)
	for attempt := 0; attempt < maxUsernameAttempts; attempt++ {
		username, err := s.availableUsername(ctx, base, attempt)
		if err != nil {
			return nil, err
		}

		user = &domain.User{
			Username:       username,
			Email:          email,
			Name:           profile.Name,
			Avatar:         profile.AvatarURL,
			HashedPassword: auth.UnusablePassword(),
		}
		err = s.users.Create(ctx, user)
		switch {
		case err == nil:
			logger.FromContextOrDefault(ctx, s.logger).Info("account created from social profile",
				slog.Int64("user_id", user.ID))
			return user, nil
		case errors.Is(err, store.ErrEmailExists):
			// Lost a race with a concurrent login for the same email.
			return s.users.GetByEmail(ctx, email)
		case errors.Is(err, store.ErrUsernameExists):
			continue
		default:
			return nil, err
		}
	}

	return nil, NewServiceError("account", "social_login", "no free username",
		fmt.Errorf("%w: %q", store.ErrUsernameExists, base))
}

// availableUsername returns base when it is free on the first attempt and a
// randomly suffixed variant otherwise.
func (s *accountServiceImpl) availableUsername(ctx context.Context, base string, attempt int) (string, error) {
	if attempt == 0 {
		taken, err := s.users.UsernameExists(ctx, base)
		if err != nil {
			return "", err
		}
		if !taken {
			return base, nil
		}
	}

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:usernameSuffixChars]
	return truncateRunes(base, maxUsernameLength-1-usernameSuffixChars) + "_" + suffix, nil
}

// usernameBase picks the provider username, falling back to the email's
// local part.
func usernameBase(username, email string) string {
	base := strings.TrimSpace(username)
	if base == "" {
		base, _, _ = strings.Cut(email, "@")
	}
	return truncateRunes(base, maxUsernameLength)
}

// truncateRunes cuts s to at most n characters without splitting one.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// GetProfile implements AccountService.GetProfile
func (s *accountServiceImpl) GetProfile(ctx context.Context, actor *domain.User) (*domain.User, error) {
	if actor == nil {
		return nil, ErrAuthenticationRequired
	}
	return s.users.GetByID(ctx, actor.ID)
}

// UpdateProfile implements AccountService.UpdateProfile
func (s *accountServiceImpl) UpdateProfile(
	ctx context.Context,
	actor *domain.User,
	input ProfileInput,
) (*domain.User, error) {
	if actor == nil {
		return nil, ErrAuthenticationRequired
	}
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	input.applyTo(user)

	if err := s.users.Update(ctx, user); err != nil {
		if fe := uniqueConflict(err); fe != nil {
			return nil, fe
		}
		return nil, err
	}
	return user, nil
}

// uniqueConflict converts a username or email conflict into FieldErrors.
func uniqueConflict(err error) domain.FieldErrors {
	switch {
	case errors.Is(err, store.ErrUsernameExists):
		return duplicateFieldErrors("username")
	case errors.Is(err, store.ErrEmailExists):
		return duplicateFieldErrors("email")
	}
	return nil
}
