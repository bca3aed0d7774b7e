package loginlog

import (
	"context"
	"fmt"
	"time"

	"ktm_rentals_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for login-event data operations.
type Repository interface {
	Create(ctx context.Context, event *LoginEvent) error
	HasLoginOnDay(ctx context.Context, userID uuid.UUID, day time.Time) (bool, error)
	FindByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]LoginEvent, *common.Pagination, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// GORMRepository implements the Repository interface using GORM.
type GORMRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM login-event repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &GORMRepository{db: db}
}

// Create inserts a new login event into the database.
func (r *GORMRepository) Create(ctx context.Context, event *LoginEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to create login event: %w", err)
	}
	return nil
}

// HasLoginOnDay reports whether a login event already exists for the user on
// the calendar day containing `day`. Read-before-write: two concurrent
// sign-ins in the same instant can both pass this check and insert twice,
// which is acceptable for an analytics record.
func (r *GORMRepository) HasLoginOnDay(ctx context.Context, userID uuid.UUID, day time.Time) (bool, error) {
	startOfDay := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)

	var count int64
	err := r.db.WithContext(ctx).Model(&LoginEvent{}).
		Where("user_id = ? AND logged_in_date >= ? AND logged_in_date < ?", userID, startOfDay, endOfDay).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check login events for user %s: %w", userID, err)
	}
	return count > 0, nil
}

// FindByUser retrieves a paginated login history for a user, newest first.
func (r *GORMRepository) FindByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]LoginEvent, *common.Pagination, error) {
	var events []LoginEvent
	var total int64

	if err := r.db.WithContext(ctx).Model(&LoginEvent{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, nil, fmt.Errorf("counting login events for user %s failed: %w", userID, err)
	}

	pagination := common.NewPagination(total, page, pageSize)

	offset := (page - 1) * pageSize
	if page <= 0 {
		offset = 0
	}

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("logged_in_date DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&events).Error
	if err != nil {
		return nil, nil, fmt.Errorf("fetching login events for user %s failed: %w", userID, err)
	}
	return events, pagination, nil
}

// DeleteOlderThan removes login events recorded before the cutoff and returns
// the number of rows deleted.
func (r *GORMRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("logged_in_date < ?", cutoff).Delete(&LoginEvent{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to purge login events before %s: %w", cutoff.Format(time.RFC3339), result.Error)
	}
	return result.RowsAffected, nil
}
