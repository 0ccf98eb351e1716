package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/nestly-api/internal/domain"
	"github.com/phrazzld/nestly-api/internal/service"
	"github.com/phrazzld/nestly-api/internal/service/auth"
	"github.com/phrazzld/nestly-api/internal/service/oauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func mountAccounts(h *AccountHandler) func(r chi.Router) {
	return func(r chi.Router) {
		r.Post("/users/signup", h.Signup)
		r.Post("/users/login", h.Login)
		r.Post("/users/logout", h.Logout)
		r.Post("/users/change-password", h.ChangePassword)
		r.Put("/users/change-password", h.ChangePassword)
		r.Get("/users/me", h.Me)
		r.Put("/users/me", h.UpdateMe)
		r.Post("/users/social/github", h.SocialLogin(oauth.GitHub))
		r.Post("/users/social/kakao", h.SocialLogin(oauth.Kakao))
	}
}

func testToken() *auth.Token {
	return &auth.Token{
		Value:     "signed.jwt.value",
		ID:        "jti-1",
		ExpiresAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func post(router http.Handler, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))
	return rec
}

func TestAccountHandler_Signup(t *testing.T) {
	accounts := new(MockAccountService)
	h := NewAccountHandler(accounts, testLogger())
	accounts.On("CreateAccount", mock.Anything, mock.MatchedBy(func(in service.SignupInput) bool {
		return in.Username == "carol" && in.Password == "correct-horse-battery"
	})).Return(&domain.User{ID: 3, Username: "carol", Email: "carol@example.com"}, nil)
	accounts.On("CreateAccount", mock.Anything, mock.MatchedBy(func(in service.SignupInput) bool {
		return in.Username == "alice"
	})).Return(nil, domain.FieldErrors{"username": {"A user with that username already exists."}})

	router := newTestRouter(nil, mountAccounts(h))

	rec := post(router, "/users/signup",
		`{"username":"carol","email":"carol@example.com","password":"correct-horse-battery"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var user PrivateUserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "carol@example.com", user.Email)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = post(router, "/users/signup", `{"username":"alice","email":"a@example.com","password":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"username":["A user with that username already exists."]}`, rec.Body.String())

	rec = post(router, "/users/signup", ``)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Request body is required.", decodeError(t, rec))
}

func TestAccountHandler_Login(t *testing.T) {
	accounts := new(MockAccountService)
	h := NewAccountHandler(accounts, testLogger())
	accounts.On("LogIn", mock.Anything, "alice", "correct-horse-battery").Return(alice, testToken(), nil)
	accounts.On("LogIn", mock.Anything, "alice", "wrong").Return(nil, nil, service.ErrWrongCredentials)

	router := newTestRouter(nil, mountAccounts(h))

	rec := post(router, "/users/login", `{"username":"alice","password":"correct-horse-battery"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Welcome!", resp.OK)
	assert.Equal(t, "signed.jwt.value", resp.Token)
	assert.Equal(t, "2030-01-01T00:00:00Z", resp.ExpiresAt)
	assert.Equal(t, "alice", resp.User.Username)

	rec = post(router, "/users/login", `{"username":"alice","password":"wrong"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Wrong Password", decodeError(t, rec))
}

func TestAccountHandler_ChangePasswordThenLogin(t *testing.T) {
	accounts := new(MockAccountService)
	h := NewAccountHandler(accounts, testLogger())
	accounts.On("ChangePassword", mock.Anything, alice, "old-secret-pass", "new-secret-pass").Return(nil).Once()
	accounts.On("ChangePassword", mock.Anything, alice, "bad-old-pass", "new-secret-pass").
		Return(domain.NewValidationError("old_password", "Invalid Password", auth.ErrPasswordMismatch))
	accounts.On("LogIn", mock.Anything, "alice", "old-secret-pass").Return(nil, nil, service.ErrWrongCredentials)
	accounts.On("LogIn", mock.Anything, "alice", "new-secret-pass").Return(alice, testToken(), nil)

	authed := newTestRouter(alice, mountAccounts(h))
	anonymous := newTestRouter(nil, mountAccounts(h))

	rec := post(authed, "/users/change-password", `{"old_password":"bad-old-pass","new_password":"new-secret-pass"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid Password", decodeError(t, rec))

	rec = httptest.NewRecorder()
	authed.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/users/change-password",
		strings.NewReader(`{"old_password":"old-secret-pass","new_password":"new-secret-pass"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = post(anonymous, "/users/login", `{"username":"alice","password":"old-secret-pass"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(anonymous, "/users/login", `{"username":"alice","password":"new-secret-pass"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	accounts.AssertExpectations(t)
}

func TestAccountHandler_Logout(t *testing.T) {
	accounts := new(MockAccountService)
	h := NewAccountHandler(accounts, testLogger())
	accounts.On("LogOut", mock.Anything, alice, mock.MatchedBy(func(c *auth.Claims) bool {
		return c != nil && c.ID == "test-jti"
	})).Return(nil)
	accounts.On("LogOut", mock.Anything, (*domain.User)(nil), mock.Anything).Return(service.ErrAuthenticationRequired)

	rec := post(newTestRouter(alice, mountAccounts(h)), "/users/logout", ``)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":"bye!"}`, rec.Body.String())

	rec = post(newTestRouter(nil, mountAccounts(h)), "/users/logout", ``)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAccountHandler_Profile(t *testing.T) {
	accounts := new(MockAccountService)
	h := NewAccountHandler(accounts, testLogger())
	accounts.On("GetProfile", mock.Anything, alice).Return(alice, nil)
	renamed := *alice
	renamed.Name = "Alice Kim"
	accounts.On("UpdateProfile", mock.Anything, alice, mock.MatchedBy(func(in service.ProfileInput) bool {
		return in.Name != nil && *in.Name == "Alice Kim" && in.Email == nil
	})).Return(&renamed, nil)

	router := newTestRouter(alice, mountAccounts(h))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/me", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var me PrivateUserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "alice@example.com", me.Email)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/users/me", strings.NewReader(`{"name":"Alice Kim"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "Alice Kim", me.Name)
}

func TestAccountHandler_SocialLogin(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		body           string
		setup          func(m *MockAccountService)
		expectedStatus int
	}{
		{
			name: "github success",
			path: "/users/social/github",
			body: `{"code":"abc"}`,
			setup: func(m *MockAccountService) {
				m.On("SocialLogin", mock.Anything, oauth.GitHub, "abc").Return(alice, testToken(), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "provider rejects code",
			path: "/users/social/kakao",
			body: `{"code":"expired"}`,
			setup: func(m *MockAccountService) {
				m.On("SocialLogin", mock.Anything, oauth.Kakao, "expired").
					Return(nil, nil, fmt.Errorf("%w: kakao token exchange failed", oauth.ErrAuthProvider))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "storage failure is still reported as social failure",
			path: "/users/social/github",
			body: `{"code":"abc"}`,
			setup: func(m *MockAccountService) {
				m.On("SocialLogin", mock.Anything, oauth.GitHub, "abc").
					Return(nil, nil, fmt.Errorf("insert user: connection reset"))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed body",
			path:           "/users/social/github",
			body:           `{"code":`,
			setup:          func(m *MockAccountService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			accounts := new(MockAccountService)
			tc.setup(accounts)
			h := NewAccountHandler(accounts, testLogger())

			rec := post(newTestRouter(nil, mountAccounts(h)), tc.path, tc.body)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			if tc.expectedStatus == http.StatusOK {
				var resp SessionResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, "Welcome!", resp.OK)
				assert.NotEmpty(t, resp.Token)
			} else {
				assert.Equal(t, "Social login failed", decodeError(t, rec))
				assert.NotContains(t, rec.Body.String(), "connection reset")
			}
			accounts.AssertExpectations(t)
		})
	}
}
