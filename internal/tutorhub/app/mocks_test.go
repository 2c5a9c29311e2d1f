package app_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"tutorhub/internal/tutorhub/domain/entities"
	"tutorhub/internal/tutorhub/domain/services"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindOne(ctx context.Context, email string, userType entities.UserType) (*entities.User, error) {
	args := m.Called(ctx, email, userType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) Hash(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) Verify(ctx context.Context, password, hash string) bool {
	args := m.Called(ctx, password, hash)
	return args.Bool(0)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) IssueAccess(ctx context.Context, identity services.Identity) (string, time.Time, error) {
	args := m.Called(ctx, identity)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *mockTokenService) IssueRefresh(ctx context.Context, identity services.Identity) (string, time.Time, error) {
	args := m.Called(ctx, identity)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *mockTokenService) Verify(ctx context.Context, token string) (*services.TokenClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TokenClaims), args.Error(1)
}

func (m *mockTokenService) IssuePair(ctx context.Context, identity services.Identity) (*services.TokenPair, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TokenPair), args.Error(1)
}

func (m *mockTokenService) Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TokenPair), args.Error(1)
}

type mockCatalogRepository struct {
	mock.Mock
}

func (m *mockCatalogRepository) CourseSummaries(ctx context.Context) ([]entities.CourseSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.CourseSummary), args.Error(1)
}

func (m *mockCatalogRepository) TutorSummaries(ctx context.Context) ([]entities.TutorSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.TutorSummary), args.Error(1)
}

func (m *mockCatalogRepository) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *mockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockCache) Close() error {
	return m.Called().Error(0)
}

// memoryUserRepository - хранилище в памяти с уникальностью (email, тип).
type memoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*entities.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[string]*entities.User)}
}

func memoryKey(email string, userType entities.UserType) string {
	return email + "|" + userType.String()
}

func (r *memoryUserRepository) FindOne(_ context.Context, email string, userType entities.UserType) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[memoryKey(email, userType)]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *memoryUserRepository) Create(_ context.Context, user *entities.User) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := memoryKey(user.Email, user.UserType)
	if _, ok := r.users[key]; ok {
		return nil, entities.ErrUserAlreadyExists
	}

	created := *user
	created.ID = "user-" + user.Email
	created.CreatedAt = time.Now().UTC()
	r.users[key] = &created

	result := created
	return &result, nil
}

func (r *memoryUserRepository) delete(email string, userType entities.UserType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, memoryKey(email, userType))
}
