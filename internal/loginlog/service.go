package loginlog

import (
	"context"
	"time"

	"ktm_rentals_backend/internal/common"
	"ktm_rentals_backend/internal/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines login-event business logic.
type Service interface {
	// RecordDailyLogin stores a login event for the user unless one already
	// exists for today. Returns whether a new event was stored.
	RecordDailyLogin(ctx context.Context, usr *shared.User) (bool, error)
	GetLoginHistory(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]LoginEvent, *common.Pagination, error)
	PurgeOlderThan(ctx context.Context, retentionDays int) (int64, error)
}

// ServiceImplementation implements the loginlog Service interface.
type ServiceImplementation struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new login-event service.
func NewService(repo Repository, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:   repo,
		logger: logger.Named("LoginLogService"),
		now:    time.Now,
	}
}

// RecordDailyLogin checks for an existing event today before inserting.
func (s *ServiceImplementation) RecordDailyLogin(ctx context.Context, usr *shared.User) (bool, error) {
	today := s.now()

	hasLogin, err := s.repo.HasLoginOnDay(ctx, usr.ID, today)
	if err != nil {
		s.logger.Warn("Could not check today's login events", zap.String("userID", usr.ID.String()), zap.Error(err))
		return false, err
	}
	if hasLogin {
		s.logger.Debug("User already has a login event today, skipping", zap.String("userID", usr.ID.String()))
		return false, nil
	}

	var email string
	if usr.Email != nil {
		email = *usr.Email
	}
	event := &LoginEvent{
		UserID:      usr.ID,
		Email:       email,
		Username:    usr.DisplayName,
		PhoneNumber: usr.PhoneNumber,
		LoggedInAt:  today,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		s.logger.Warn("Failed to store login event", zap.String("userID", usr.ID.String()), zap.Error(err))
		return false, err
	}

	s.logger.Debug("Login event stored", zap.String("userID", usr.ID.String()))
	return true, nil
}

// GetLoginHistory returns the user's login events, newest first.
func (s *ServiceImplementation) GetLoginHistory(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]LoginEvent, *common.Pagination, error) {
	events, pagination, err := s.repo.FindByUser(ctx, userID, page, pageSize)
	if err != nil {
		s.logger.Error("Failed to fetch login history", zap.String("userID", userID.String()), zap.Error(err))
		return nil, nil, common.ErrInternalServer.WithDetails("Could not retrieve login history.")
	}
	return events, pagination, nil
}

// PurgeOlderThan deletes events older than the retention window.
func (s *ServiceImplementation) PurgeOlderThan(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		s.logger.Info("Login event retention disabled, skipping purge")
		return 0, nil
	}
	cutoff := s.now().AddDate(0, 0, -retentionDays)
	removed, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Error("Login event purge failed", zap.Error(err))
		return 0, err
	}
	return removed, nil
}
