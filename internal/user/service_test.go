// File: internal/user/service_test.go
package user

import (
	"context"
	"testing"
	"time"

	"ktm_rentals_backend/internal/common"
	"ktm_rentals_backend/internal/config"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockUserRepository is a mock type for user.Repository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) FindByFirebaseUID(ctx context.Context, firebaseUID string) (*User, error) {
	args := m.Called(ctx, firebaseUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func newTestService(repo Repository, cfg *config.Config) *ServiceImplementation {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return NewService(repo, nil, cfg, zap.NewNop())
}

func strPtr(s string) *string { return &s }

func TestGetOrCreateUserFromFirebaseClaims_NewUser(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	svc := newTestService(mockRepo, nil)

	token := &firebaseauth.Token{
		UID: "fb-uid-new",
		Claims: map[string]interface{}{
			"email": "newuser@example.com",
			"name":  "New User",
		},
	}

	mockRepo.On("FindByFirebaseUID", ctx, "fb-uid-new").
		Return(nil, common.ErrNotFound.WithDetails("User not found with this Firebase UID."))
	mockRepo.On("Create", ctx, mock.MatchedBy(func(u *User) bool {
		return u.FirebaseUID == "fb-uid-new" &&
			u.Email != nil && *u.Email == "newuser@example.com" &&
			u.Role == common.RoleUser &&
			u.LastLoginAt != nil
	})).Return(nil)

	usr, wasCreated, err := svc.GetOrCreateUserFromFirebaseClaims(ctx, token)

	assert.NoError(t, err)
	assert.True(t, wasCreated)
	assert.NotNil(t, usr)
	assert.Equal(t, "fb-uid-new", usr.FirebaseUID)
	assert.Equal(t, common.RoleUser, usr.Role)
	mockRepo.AssertExpectations(t)
}

func TestGetOrCreateUserFromFirebaseClaims_NewAdminViaProviderClaim(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	svc := newTestService(mockRepo, nil)

	token := &firebaseauth.Token{
		UID: "fb-uid-admin",
		Claims: map[string]interface{}{
			"email": "ops@example.com",
			"role":  "admin",
		},
	}

	mockRepo.On("FindByFirebaseUID", ctx, "fb-uid-admin").
		Return(nil, common.ErrNotFound)
	mockRepo.On("Create", ctx, mock.MatchedBy(func(u *User) bool {
		return u.Role == common.RoleAdmin
	})).Return(nil)

	usr, wasCreated, err := svc.GetOrCreateUserFromFirebaseClaims(ctx, token)

	assert.NoError(t, err)
	assert.True(t, wasCreated)
	assert.Equal(t, common.RoleAdmin, usr.Role)
	mockRepo.AssertExpectations(t)
}

func TestGetOrCreateUserFromFirebaseClaims_NewAdminViaAllowList(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	cfg := &config.Config{AdminAllowlistEmails: []string{"trusted@example.com"}}
	svc := newTestService(mockRepo, cfg)

	token := &firebaseauth.Token{
		UID: "fb-uid-listed",
		Claims: map[string]interface{}{
			"email": "Trusted@Example.com",
		},
	}

	mockRepo.On("FindByFirebaseUID", ctx, "fb-uid-listed").
		Return(nil, common.ErrNotFound)
	mockRepo.On("Create", ctx, mock.MatchedBy(func(u *User) bool {
		return u.Role == common.RoleAdmin
	})).Return(nil)

	usr, _, err := svc.GetOrCreateUserFromFirebaseClaims(ctx, token)

	assert.NoError(t, err)
	assert.Equal(t, common.RoleAdmin, usr.Role)
	mockRepo.AssertExpectations(t)
}

func TestGetOrCreateUserFromFirebaseClaims_ExistingUserRefreshed(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	svc := newTestService(mockRepo, nil)

	existing := &User{
		BaseModel:   common.BaseModel{ID: uuid.New(), CreatedAt: time.Now().Add(-48 * time.Hour)},
		FirebaseUID: "fb-uid-existing",
		Email:       strPtr("old@example.com"),
		DisplayName: strPtr("Old Name"),
		Role:        common.RoleUser,
	}

	token := &firebaseauth.Token{
		UID: "fb-uid-existing",
		Claims: map[string]interface{}{
			"email": "current@example.com",
			"name":  "Current Name",
		},
	}

	mockRepo.On("FindByFirebaseUID", ctx, "fb-uid-existing").Return(existing, nil)
	mockRepo.On("Update", ctx, mock.MatchedBy(func(u *User) bool {
		return u.Email != nil && *u.Email == "current@example.com" &&
			u.DisplayName != nil && *u.DisplayName == "Current Name" &&
			u.LastLoginAt != nil
	})).Return(nil)

	usr, wasCreated, err := svc.GetOrCreateUserFromFirebaseClaims(ctx, token)

	assert.NoError(t, err)
	assert.False(t, wasCreated)
	assert.Equal(t, "current@example.com", *usr.Email)
	mockRepo.AssertExpectations(t)
}

func TestGetOrCreateUserFromFirebaseClaims_ExistingUserDemotedWhenClaimRemoved(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	svc := newTestService(mockRepo, nil)

	existing := &User{
		BaseModel:   common.BaseModel{ID: uuid.New()},
		FirebaseUID: "fb-uid-demoted",
		Email:       strPtr("former-admin@example.com"),
		Role:        common.RoleAdmin,
	}

	token := &firebaseauth.Token{
		UID:    "fb-uid-demoted",
		Claims: map[string]interface{}{"email": "former-admin@example.com"},
	}

	mockRepo.On("FindByFirebaseUID", ctx, "fb-uid-demoted").Return(existing, nil)
	mockRepo.On("Update", ctx, mock.MatchedBy(func(u *User) bool {
		return u.Role == common.RoleUser
	})).Return(nil)

	usr, _, err := svc.GetOrCreateUserFromFirebaseClaims(ctx, token)

	assert.NoError(t, err)
	assert.Equal(t, common.RoleUser, usr.Role)
	mockRepo.AssertExpectations(t)
}

func TestGetOrCreateUserFromFirebaseClaims_NilToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newTestService(mockRepo, nil)

	_, _, err := svc.GetOrCreateUserFromFirebaseClaims(context.Background(), nil)

	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, common.ErrUnauthorized.Code, apiErr.Code)
}

func TestDeriveRole(t *testing.T) {
	allowList := []string{"sita@ktmrentals.com", "ram@ktmrentals.com"}

	tests := []struct {
		name   string
		claims map[string]interface{}
		email  string
		want   string
	}{
		{
			name:   "provider admin claim",
			claims: map[string]interface{}{"role": "admin"},
			email:  "anyone@example.com",
			want:   common.RoleAdmin,
		},
		{
			name:   "allow-listed email",
			claims: map[string]interface{}{},
			email:  "sita@ktmrentals.com",
			want:   common.RoleAdmin,
		},
		{
			name:   "allow-list is case-insensitive",
			claims: nil,
			email:  "RAM@KTMRentals.com",
			want:   common.RoleAdmin,
		},
		{
			name:   "plain user",
			claims: map[string]interface{}{"role": "editor"},
			email:  "guest@example.com",
			want:   common.RoleUser,
		},
		{
			name:   "non-string role claim is ignored",
			claims: map[string]interface{}{"role": true},
			email:  "guest@example.com",
			want:   common.RoleUser,
		},
		{
			name:   "empty email never matches allow-list",
			claims: map[string]interface{}{},
			email:  "",
			want:   common.RoleUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveRole(tt.claims, tt.email, allowList))
		})
	}
}
