// File: internal/user/service.go
package user

import (
	"context"
	"fmt"
	"time"

	"ktm_rentals_backend/internal/common"
	"ktm_rentals_backend/internal/config"
	"ktm_rentals_backend/internal/loginlog"
	"ktm_rentals_backend/internal/shared"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ServiceImplementation implements the shared.Service interface.
type ServiceImplementation struct {
	repo     Repository
	loginLog loginlog.Service
	cfg      *config.Config
	logger   *zap.Logger
}

var _ shared.Service = (*ServiceImplementation)(nil)

// NewService creates a new user service.
func NewService(
	repo Repository,
	loginLog loginlog.Service,
	cfg *config.Config,
	logger *zap.Logger,
) *ServiceImplementation {
	return &ServiceImplementation{
		repo:     repo,
		loginLog: loginLog,
		cfg:      cfg,
		logger:   logger.Named("UserService"),
	}
}

// GetUserByID returns the principal with the given local id.
func (s *ServiceImplementation) GetUserByID(ctx context.Context, id uuid.UUID) (*shared.User, error) {
	dbUser, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return DBToShared(dbUser), nil
}

// GetUserByFirebaseUID returns the principal with the given provider uid.
func (s *ServiceImplementation) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*shared.User, error) {
	dbUser, err := s.repo.FindByFirebaseUID(ctx, firebaseUID)
	if err != nil {
		return nil, err
	}
	return DBToShared(dbUser), nil
}

// GetOrCreateUserFromFirebaseClaims resolves the local user row for a
// verified Firebase token, creating it on first sight. The role is derived
// fresh on every resolution so provider-side changes and allow-list edits
// take effect on the next request. A daily login event is recorded as a side
// effect; failures there are logged, never surfaced.
func (s *ServiceImplementation) GetOrCreateUserFromFirebaseClaims(ctx context.Context, token *firebaseauth.Token) (*shared.User, bool, error) {
	if token == nil {
		return nil, false, common.ErrUnauthorized.WithDetails("Missing identity token.")
	}

	email := claimString(token.Claims, "email")
	displayName := claimString(token.Claims, "name")
	phoneNumber := claimString(token.Claims, "phone_number")
	role := DeriveRole(token.Claims, email, s.cfg.AdminAllowlistEmails)
	now := time.Now()

	dbUser, err := s.repo.FindByFirebaseUID(ctx, token.UID)
	if err != nil {
		if !isNotFoundAPIError(err) {
			s.logger.Error("Failed to look up user by Firebase UID", zap.String("uid", token.UID), zap.Error(err))
			return nil, false, fmt.Errorf("failed to look up user: %w", err)
		}

		newUser := &User{
			FirebaseUID: token.UID,
			Email:       optionalString(email),
			DisplayName: optionalString(displayName),
			PhoneNumber: optionalString(phoneNumber),
			Role:        role,
			LastLoginAt: &now,
		}
		if err := s.repo.Create(ctx, newUser); err != nil {
			s.logger.Error("Failed to create user from Firebase claims", zap.String("uid", token.UID), zap.Error(err))
			return nil, false, err
		}
		s.logger.Info("User created from identity provider",
			zap.String("userID", newUser.ID.String()),
			zap.String("role", newUser.Role),
		)

		sharedUser := DBToShared(newUser)
		s.recordLogin(ctx, sharedUser)
		return sharedUser, true, nil
	}

	// Refresh provider-supplied fields that may have drifted.
	if email != "" && (dbUser.Email == nil || *dbUser.Email != email) {
		dbUser.Email = optionalString(email)
	}
	if displayName != "" && (dbUser.DisplayName == nil || *dbUser.DisplayName != displayName) {
		dbUser.DisplayName = optionalString(displayName)
	}
	if dbUser.Role != role {
		s.logger.Info("User role updated on resolution",
			zap.String("userID", dbUser.ID.String()),
			zap.String("from", dbUser.Role),
			zap.String("to", role),
		)
		dbUser.Role = role
	}
	dbUser.LastLoginAt = &now

	if err := s.repo.Update(ctx, dbUser); err != nil {
		// Non-fatal: the stale row is still usable for this request.
		s.logger.Warn("Failed to refresh user row on login", zap.String("userID", dbUser.ID.String()), zap.Error(err))
	}

	sharedUser := DBToShared(dbUser)
	s.recordLogin(ctx, sharedUser)
	return sharedUser, false, nil
}

func (s *ServiceImplementation) recordLogin(ctx context.Context, usr *shared.User) {
	if s.loginLog == nil {
		return
	}
	if _, err := s.loginLog.RecordDailyLogin(ctx, usr); err != nil {
		s.logger.Warn("Could not record daily login event", zap.String("userID", usr.ID.String()), zap.Error(err))
	}
}

func claimString(claims map[string]interface{}, key string) string {
	if claims == nil {
		return ""
	}
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func isNotFoundAPIError(err error) bool {
	apiErr, ok := common.IsAPIError(err)
	return ok && apiErr.Code == common.ErrNotFound.Code
}
