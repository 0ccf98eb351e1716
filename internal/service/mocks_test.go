package service

import (
	"context"
	"database/sql"

	"github.com/phrazzld/nestly-api/internal/domain"
	"github.com/phrazzld/nestly-api/internal/service/auth"
	"github.com/phrazzld/nestly-api/internal/service/oauth"
	"github.com/phrazzld/nestly-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockUserStore mocks store.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) UpdatePassword(ctx context.Context, id int64, hashedPassword string) error {
	args := m.Called(ctx, id, hashedPassword)
	return args.Error(0)
}

func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}

// MockRoomStore mocks store.RoomStore
type MockRoomStore struct {
	mock.Mock
}

func (m *MockRoomStore) Create(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomStore) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomStore) Update(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRoomStore) List(ctx context.Context) ([]*domain.Room, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.Room), args.Error(1)
}

func (m *MockRoomStore) ListByOwner(
	ctx context.Context,
	ownerID int64,
	page store.PageRequest,
) ([]*domain.Room, int, error) {
	args := m.Called(ctx, ownerID, page)
	return args.Get(0).([]*domain.Room), args.Int(1), args.Error(2)
}

func (m *MockRoomStore) ReplaceAmenities(ctx context.Context, roomID int64, amenityIDs []int64) error {
	args := m.Called(ctx, roomID, amenityIDs)
	return args.Error(0)
}

func (m *MockRoomStore) WithTx(tx *sql.Tx) store.RoomStore {
	return m
}

// MockAmenityStore mocks store.AmenityStore
type MockAmenityStore struct {
	mock.Mock
}

func (m *MockAmenityStore) Create(ctx context.Context, amenity *domain.Amenity) error {
	args := m.Called(ctx, amenity)
	return args.Error(0)
}

func (m *MockAmenityStore) GetByID(ctx context.Context, id int64) (*domain.Amenity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Amenity), args.Error(1)
}

func (m *MockAmenityStore) Update(ctx context.Context, amenity *domain.Amenity) error {
	args := m.Called(ctx, amenity)
	return args.Error(0)
}

func (m *MockAmenityStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAmenityStore) List(ctx context.Context) ([]*domain.Amenity, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.Amenity), args.Error(1)
}

func (m *MockAmenityStore) ListByRoom(
	ctx context.Context,
	roomID int64,
	page store.PageRequest,
) ([]*domain.Amenity, int, error) {
	args := m.Called(ctx, roomID, page)
	return args.Get(0).([]*domain.Amenity), args.Int(1), args.Error(2)
}

func (m *MockAmenityStore) WithTx(tx *sql.Tx) store.AmenityStore {
	return m
}

// MockCategoryStore mocks store.CategoryStore
type MockCategoryStore struct {
	mock.Mock
}

func (m *MockCategoryStore) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryStore) List(ctx context.Context) ([]*domain.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.Category), args.Error(1)
}

// MockReviewStore mocks store.ReviewStore
type MockReviewStore struct {
	mock.Mock
}

func (m *MockReviewStore) ListByRoom(
	ctx context.Context,
	roomID int64,
	page store.PageRequest,
) ([]*domain.Review, int, error) {
	args := m.Called(ctx, roomID, page)
	return args.Get(0).([]*domain.Review), args.Int(1), args.Error(2)
}

func (m *MockReviewStore) ListByUser(
	ctx context.Context,
	userID int64,
	page store.PageRequest,
) ([]*domain.Review, int, error) {
	args := m.Called(ctx, userID, page)
	return args.Get(0).([]*domain.Review), args.Int(1), args.Error(2)
}

func (m *MockReviewStore) ListByRoomOwner(
	ctx context.Context,
	ownerID int64,
	page store.PageRequest,
) ([]*domain.Review, int, error) {
	args := m.Called(ctx, ownerID, page)
	return args.Get(0).([]*domain.Review), args.Int(1), args.Error(2)
}

func (m *MockReviewStore) ListByExperienceHost(
	ctx context.Context,
	hostID int64,
	page store.PageRequest,
) ([]*domain.Review, int, error) {
	args := m.Called(ctx, hostID, page)
	return args.Get(0).([]*domain.Review), args.Int(1), args.Error(2)
}

// MockExperienceStore mocks store.ExperienceStore
type MockExperienceStore struct {
	mock.Mock
}

func (m *MockExperienceStore) ListByHost(
	ctx context.Context,
	hostID int64,
	page store.PageRequest,
) ([]*domain.Experience, int, error) {
	args := m.Called(ctx, hostID, page)
	return args.Get(0).([]*domain.Experience), args.Int(1), args.Error(2)
}

// MockSessions mocks SessionIssuer
type MockSessions struct {
	mock.Mock
}

func (m *MockSessions) Issue(ctx context.Context, userID int64) (*auth.Token, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Token), args.Error(1)
}

func (m *MockSessions) Revoke(ctx context.Context, claims *auth.Claims) error {
	args := m.Called(ctx, claims)
	return args.Error(0)
}

// fakeProvider returns a fixed profile for one authorization code.
type fakeProvider struct {
	name    string
	code    string
	profile *oauth.Profile
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) ExchangeCode(_ context.Context, code string) (string, error) {
	if code != p.code {
		return "", oauth.ErrAuthProvider
	}
	return "access-" + code, nil
}

func (p *fakeProvider) FetchProfile(_ context.Context, accessToken string) (*oauth.Profile, error) {
	if accessToken != "access-"+p.code {
		return nil, oauth.ErrAuthProvider
	}
	copied := *p.profile
	return &copied, nil
}

// plainHasher stores passwords with a prefix so tests can assert on hashes
// without paying for bcrypt.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (plainHasher) Compare(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return auth.ErrPasswordMismatch
	}
	return nil
}
