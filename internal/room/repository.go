// File: internal/room/repository.go
package room

import (
	"context"
	"errors"
	"fmt"

	"ktm_rentals_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for published room data operations.
type Repository interface {
	Create(ctx context.Context, room *Room) error
	FindByID(ctx context.Context, id uuid.UUID) (*Room, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Room, error)
	FindAvailable(ctx context.Context) ([]Room, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]Room, error)
	Update(ctx context.Context, room *Room) error
	Delete(ctx context.Context, id uuid.UUID) error
	SearchILike(ctx context.Context, term string) ([]Room, error)
	FindByPriceRange(ctx context.Context, min, max float64) ([]Room, error)
	FindBatch(ctx context.Context, offset, limit int) ([]Room, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM room repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, room *Room) error {
	if err := r.db.WithContext(ctx).Create(room).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return common.ErrConflict.WithDetails("A room with this slug already exists.")
		}
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Room, error) {
	var room Room
	err := r.db.WithContext(ctx).First(&room, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Room not found.")
		}
		return nil, fmt.Errorf("failed to fetch room %s: %w", id, err)
	}
	return &room, nil
}

// FindByIDs fetches the given rooms and returns them in the order of `ids`.
// IDs with no matching row are silently skipped.
func (r *gormRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Room, error) {
	if len(ids) == 0 {
		return []Room{}, nil
	}
	var rooms []Room
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch rooms by ids: %w", err)
	}

	byID := make(map[uuid.UUID]Room, len(rooms))
	for _, room := range rooms {
		byID[room.ID] = room
	}
	ordered := make([]Room, 0, len(rooms))
	for _, id := range ids {
		if room, ok := byID[id]; ok {
			ordered = append(ordered, room)
		}
	}
	return ordered, nil
}

func (r *gormRepository) FindAvailable(ctx context.Context) ([]Room, error) {
	var rooms []Room
	err := r.db.WithContext(ctx).
		Where("available = ?", true).
		Order("created_at DESC").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch available rooms: %w", err)
	}
	return rooms, nil
}

func (r *gormRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]Room, error) {
	var rooms []Room
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rooms for owner %s: %w", ownerID, err)
	}
	return rooms, nil
}

func (r *gormRepository) Update(ctx context.Context, room *Room) error {
	if err := r.db.WithContext(ctx).Save(room).Error; err != nil {
		return fmt.Errorf("failed to update room %s: %w", room.ID, err)
	}
	return nil
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Room{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete room %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Room not found.")
	}
	return nil
}

// SearchILike matches the term against title and location with ILIKE. This
// is the fallback path when the search index is unavailable.
func (r *gormRepository) SearchILike(ctx context.Context, term string) ([]Room, error) {
	var rooms []Room
	pattern := "%" + term + "%"
	err := r.db.WithContext(ctx).
		Where("available = ?", true).
		Where("title ILIKE ? OR location ILIKE ?", pattern, pattern).
		Order("created_at DESC").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("room search for %q failed: %w", term, err)
	}
	return rooms, nil
}

func (r *gormRepository) FindByPriceRange(ctx context.Context, min, max float64) ([]Room, error) {
	var rooms []Room
	err := r.db.WithContext(ctx).
		Where("available = ?", true).
		Where("price >= ? AND price <= ?", min, max).
		Order("price ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("room price-range query failed: %w", err)
	}
	return rooms, nil
}

// FindBatch pages through all rooms in insertion order, for index rebuilds.
func (r *gormRepository) FindBatch(ctx context.Context, offset, limit int) ([]Room, error) {
	var rooms []Room
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch room batch at offset %d: %w", offset, err)
	}
	return rooms, nil
}
