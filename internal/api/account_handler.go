package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/nestly-api/internal/api/shared"
	"github.com/phrazzld/nestly-api/internal/service"
)

// AccountHandler handles signup, login and the private profile
type AccountHandler struct {
	accounts service.AccountService
	logger   *slog.Logger
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accounts service.AccountService, logger *slog.Logger) *AccountHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AccountHandler")
	}

	return &AccountHandler{
		accounts: accounts,
		logger:   logger.With(slog.String("component", "account_handler")),
	}
}

// Signup handles POST /users/signup
func (h *AccountHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input service.SignupInput
	if !decodeBody(w, r, &input) {
		return
	}

	user, err := h.accounts.CreateAccount(r.Context(), input)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create account")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toPrivateUser(user))
}

// Login handles POST /users/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, token, err := h.accounts.LogIn(r.Context(), req.Username, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to log in")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toSessionResponse(user, token))
}

// Logout handles POST /users/logout
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.accounts.LogOut(ctx, shared.UserFromContext(ctx), shared.ClaimsFromContext(ctx)); err != nil {
		HandleAPIError(w, r, err, "Failed to log out")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{OK: "bye!"})
}

// ChangePassword handles POST and PUT /users/change-password
func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	actor := shared.UserFromContext(r.Context())
	if err := h.accounts.ChangePassword(r.Context(), actor, req.OldPassword, req.NewPassword); err != nil {
		HandleAPIError(w, r, err, "Failed to change password")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{OK: "Password changed."})
}

// Me handles GET /users/me
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.accounts.GetProfile(r.Context(), shared.UserFromContext(r.Context()))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get profile")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toPrivateUser(user))
}

// UpdateMe handles PUT /users/me
func (h *AccountHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var input service.ProfileInput
	if !decodeBody(w, r, &input) {
		return
	}

	user, err := h.accounts.UpdateProfile(r.Context(), shared.UserFromContext(r.Context()), input)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update profile")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toPrivateUser(user))
}

// SocialLogin returns the handler for POST /users/social/{provider}. Every
// failure is reported to the client as the same 400.
func (h *AccountHandler) SocialLogin(provider string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SocialLoginRequest
		if err := shared.DecodeJSON(r, &req); err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Social login failed", err)
			return
		}

		user, token, err := h.accounts.SocialLogin(r.Context(), provider, req.Code)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Social login failed", err,
				shared.WithElevatedLogLevel())
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, toSessionResponse(user, token))
	}
}
