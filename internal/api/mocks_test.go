package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/nestly-api/internal/api/shared"
	"github.com/phrazzld/nestly-api/internal/domain"
	"github.com/phrazzld/nestly-api/internal/service"
	"github.com/phrazzld/nestly-api/internal/service/auth"
	"github.com/stretchr/testify/mock"
)

// MockRoomService mocks service.RoomService
type MockRoomService struct {
	mock.Mock
}

func (m *MockRoomService) Create(ctx context.Context, input service.RoomInput, actor *domain.User) (*domain.Room, error) {
	args := m.Called(ctx, input, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomService) Update(
	ctx context.Context,
	roomID int64,
	input service.RoomInput,
	actor *domain.User,
) (*domain.Room, error) {
	args := m.Called(ctx, roomID, input, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomService) Delete(ctx context.Context, roomID int64, actor *domain.User) error {
	args := m.Called(ctx, roomID, actor)
	return args.Error(0)
}

func (m *MockRoomService) Get(ctx context.Context, roomID int64) (*domain.Room, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomService) List(ctx context.Context) ([]*domain.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Room), args.Error(1)
}

// MockListingService mocks service.ListingService
type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) RoomReviews(ctx context.Context, roomID int64, page int) (*service.Page[*domain.Review], error) {
	args := m.Called(ctx, roomID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[*domain.Review]), args.Error(1)
}

func (m *MockListingService) RoomAmenities(
	ctx context.Context,
	roomID int64,
	page int,
) (*service.Page[*domain.Amenity], error) {
	args := m.Called(ctx, roomID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[*domain.Amenity]), args.Error(1)
}

func (m *MockListingService) UserReviews(
	ctx context.Context,
	username string,
	page int,
) (*service.Page[*domain.Review], error) {
	return m.reviewPage(m.Called(ctx, username, page))
}

func (m *MockListingService) HostRooms(ctx context.Context, username string, page int) (*service.Page[*domain.Room], error) {
	args := m.Called(ctx, username, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[*domain.Room]), args.Error(1)
}

func (m *MockListingService) HostRoomReviews(
	ctx context.Context,
	username string,
	page int,
) (*service.Page[*domain.Review], error) {
	return m.reviewPage(m.Called(ctx, username, page))
}

func (m *MockListingService) HostExperiences(
	ctx context.Context,
	username string,
	page int,
) (*service.Page[*domain.Experience], error) {
	args := m.Called(ctx, username, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[*domain.Experience]), args.Error(1)
}

func (m *MockListingService) HostExperienceReviews(
	ctx context.Context,
	username string,
	page int,
) (*service.Page[*domain.Review], error) {
	return m.reviewPage(m.Called(ctx, username, page))
}

func (m *MockListingService) PublicProfile(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockListingService) Categories(ctx context.Context) ([]*domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Category), args.Error(1)
}

func (m *MockListingService) reviewPage(args mock.Arguments) (*service.Page[*domain.Review], error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[*domain.Review]), args.Error(1)
}

// MockAmenityService mocks service.AmenityService
type MockAmenityService struct {
	mock.Mock
}

func (m *MockAmenityService) List(ctx context.Context) ([]*domain.Amenity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Amenity), args.Error(1)
}

func (m *MockAmenityService) Get(ctx context.Context, id int64) (*domain.Amenity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Amenity), args.Error(1)
}

func (m *MockAmenityService) Create(
	ctx context.Context,
	input service.AmenityInput,
	actor *domain.User,
) (*domain.Amenity, error) {
	args := m.Called(ctx, input, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Amenity), args.Error(1)
}

func (m *MockAmenityService) Update(
	ctx context.Context,
	id int64,
	input service.AmenityInput,
	actor *domain.User,
) (*domain.Amenity, error) {
	args := m.Called(ctx, id, input, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Amenity), args.Error(1)
}

func (m *MockAmenityService) Delete(ctx context.Context, id int64, actor *domain.User) error {
	args := m.Called(ctx, id, actor)
	return args.Error(0)
}

// MockAccountService mocks service.AccountService
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, input service.SignupInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAccountService) ChangePassword(ctx context.Context, actor *domain.User, oldPassword, newPassword string) error {
	args := m.Called(ctx, actor, oldPassword, newPassword)
	return args.Error(0)
}

func (m *MockAccountService) LogIn(ctx context.Context, username, password string) (*domain.User, *auth.Token, error) {
	return m.session(m.Called(ctx, username, password))
}

func (m *MockAccountService) LogOut(ctx context.Context, actor *domain.User, claims *auth.Claims) error {
	args := m.Called(ctx, actor, claims)
	return args.Error(0)
}

func (m *MockAccountService) SocialLogin(ctx context.Context, provider, code string) (*domain.User, *auth.Token, error) {
	return m.session(m.Called(ctx, provider, code))
}

func (m *MockAccountService) GetProfile(ctx context.Context, actor *domain.User) (*domain.User, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAccountService) UpdateProfile(
	ctx context.Context,
	actor *domain.User,
	input service.ProfileInput,
) (*domain.User, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAccountService) session(args mock.Arguments) (*domain.User, *auth.Token, error) {
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.User), args.Get(1).(*auth.Token), args.Error(2)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// asUser returns middleware that places user in the request context the way
// the auth middleware does.
func asUser(user *domain.User, claims *auth.Claims) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user != nil {
				r = r.WithContext(shared.WithUser(r.Context(), user, claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// newTestRouter mounts handlers under a chi router so path parameters resolve.
func newTestRouter(user *domain.User, mount func(r chi.Router)) http.Handler {
	r := chi.NewRouter()
	r.Use(asUser(user, &auth.Claims{UserID: idOf(user), ID: "test-jti"}))
	mount(r)
	return r
}

func idOf(user *domain.User) int64 {
	if user == nil {
		return 0
	}
	return user.ID
}
