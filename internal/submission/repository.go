// File: internal/submission/repository.go
package submission

import (
	"context"
	"errors"
	"fmt"

	"ktm_rentals_backend/internal/common"
	"ktm_rentals_backend/internal/room"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for property-submission data operations.
type Repository interface {
	Create(ctx context.Context, sub *PendingProperty) error
	FindByID(ctx context.Context, id uuid.UUID) (*PendingProperty, error)
	FindPending(ctx context.Context) ([]PendingProperty, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]PendingProperty, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	// Approve marks the submission approved and creates the published room
	// in the same transaction.
	Approve(ctx context.Context, sub *PendingProperty, newRoom *room.Room) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM submission repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, sub *PendingProperty) error {
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		return fmt.Errorf("failed to create property submission: %w", err)
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*PendingProperty, error) {
	var sub PendingProperty
	err := r.db.WithContext(ctx).First(&sub, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Property submission not found.")
		}
		return nil, fmt.Errorf("failed to fetch submission %s: %w", id, err)
	}
	return &sub, nil
}

// FindPending returns submissions awaiting a decision, newest first.
func (r *gormRepository) FindPending(ctx context.Context) ([]PendingProperty, error) {
	var subs []PendingProperty
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusPending).
		Order("created_at DESC").
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending submissions: %w", err)
	}
	return subs, nil
}

// FindByOwner returns all of an owner's submissions regardless of status,
// newest first.
func (r *gormRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]PendingProperty, error) {
	var subs []PendingProperty
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch submissions for owner %s: %w", ownerID, err)
	}
	return subs, nil
}

// UpdateStatus moves a pending submission to the given status. The status
// predicate mirrors Approve's, so two racing admin decisions cannot both win.
func (r *gormRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	result := r.db.WithContext(ctx).
		Model(&PendingProperty{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update status of submission %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return common.ErrConflict.WithDetails("This submission has already been decided.")
	}
	return nil
}

// Approve flips the submission to approved and inserts the room row
// atomically. If either write fails the whole decision rolls back, so a
// submission is never approved without its published listing.
func (r *gormRepository) Approve(ctx context.Context, sub *PendingProperty, newRoom *room.Room) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&PendingProperty{}).
			Where("id = ? AND status = ?", sub.ID, StatusPending).
			Update("status", StatusApproved)
		if result.Error != nil {
			return fmt.Errorf("failed to approve submission %s: %w", sub.ID, result.Error)
		}
		if result.RowsAffected == 0 {
			// Lost a race with another admin decision.
			return common.ErrConflict.WithDetails("This submission has already been decided.")
		}

		if err := tx.Create(newRoom).Error; err != nil {
			return fmt.Errorf("failed to publish room for submission %s: %w", sub.ID, err)
		}
		return nil
	})
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&PendingProperty{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete submission %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Property submission not found.")
	}
	return nil
}
