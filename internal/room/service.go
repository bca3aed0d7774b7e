// File: internal/room/service.go
package room

import (
	"context"
	"strings"

	"ktm_rentals_backend/internal/common"
	"ktm_rentals_backend/internal/config"
	platformElasticsearch "ktm_rentals_backend/internal/platform/elasticsearch"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const searchResultLimit = 100

// Service defines business logic for published rooms.
type Service interface {
	GetRooms(ctx context.Context, opts RefineOptions) ([]Room, error)
	GetRoomByID(ctx context.Context, id uuid.UUID) (*Room, error)
	GetRoomsByOwner(ctx context.Context, ownerID uuid.UUID) ([]Room, error)
	UpdateRoom(ctx context.Context, id uuid.UUID, req UpdateRoomRequest, callerID uuid.UUID, callerRole string) (*Room, error)
	DeleteRoom(ctx context.Context, id uuid.UUID, callerID uuid.UUID, callerRole string) error
	SearchRooms(ctx context.Context, term string) ([]Room, error)
	FilterByPriceRange(ctx context.Context, min, max float64) ([]Room, error)
	IndexRoom(ctx context.Context, r *Room)
	RemoveFromIndex(ctx context.Context, id uuid.UUID)
}

// ServiceImplementation implements the room Service interface.
type ServiceImplementation struct {
	repo     Repository
	esClient *platformElasticsearch.ESClientWrapper
	cfg      *config.Config
	logger   *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new room service. esClient may be nil, in which case
// search falls back to the database.
func NewService(
	repo Repository,
	esClient *platformElasticsearch.ESClientWrapper,
	cfg *config.Config,
	logger *zap.Logger,
) *ServiceImplementation {
	return &ServiceImplementation{
		repo:     repo,
		esClient: esClient,
		cfg:      cfg,
		logger:   logger.Named("RoomService"),
	}
}

// GetRooms returns available rooms newest-first, refined in memory by the
// caller's filter and sort options.
func (s *ServiceImplementation) GetRooms(ctx context.Context, opts RefineOptions) ([]Room, error) {
	rooms, err := s.repo.FindAvailable(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch available rooms", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not retrieve rooms.")
	}
	if opts.IsZero() {
		return rooms, nil
	}
	return Refine(rooms, opts), nil
}

func (s *ServiceImplementation) GetRoomByID(ctx context.Context, id uuid.UUID) (*Room, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ServiceImplementation) GetRoomsByOwner(ctx context.Context, ownerID uuid.UUID) ([]Room, error) {
	rooms, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("Failed to fetch rooms for owner", zap.String("ownerID", ownerID.String()), zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not retrieve your rooms.")
	}
	return rooms, nil
}

// UpdateRoom applies the non-nil fields of the request. Only the owner may
// edit a published room.
func (s *ServiceImplementation) UpdateRoom(ctx context.Context, id uuid.UUID, req UpdateRoomRequest, callerID uuid.UUID, callerRole string) (*Room, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != callerID {
		s.logger.Warn("User attempted to edit another owner's room",
			zap.String("roomID", id.String()),
			zap.String("callerID", callerID.String()),
		)
		return nil, common.ErrForbidden.WithDetails("Only the owner can edit this room.")
	}

	applyRoomUpdate(existing, req)

	if err := s.repo.Update(ctx, existing); err != nil {
		s.logger.Error("Failed to update room", zap.String("roomID", id.String()), zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not update the room.")
	}

	s.IndexRoom(ctx, existing)
	return existing, nil
}

// DeleteRoom unpublishes a room. Owners can remove their own rooms; admins
// can remove any.
func (s *ServiceImplementation) DeleteRoom(ctx context.Context, id uuid.UUID, callerID uuid.UUID, callerRole string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.OwnerID != callerID && callerRole != common.RoleAdmin {
		return common.ErrForbidden.WithDetails("Only the owner or an administrator can remove this room.")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.RemoveFromIndex(ctx, id)
	s.logger.Info("Room removed",
		zap.String("roomID", id.String()),
		zap.String("removedBy", callerID.String()),
	)
	return nil
}

// SearchRooms runs a full-text search. When the search index is configured
// it is queried first and matching rows are loaded in relevance order; on
// any failure, or when the index is disabled, the database ILIKE path is
// used instead.
func (s *ServiceImplementation) SearchRooms(ctx context.Context, term string) ([]Room, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.GetRooms(ctx, RefineOptions{})
	}

	if s.esClient != nil {
		ids, err := searchRoomIDs(ctx, s.esClient, term, searchResultLimit)
		if err == nil {
			rooms, ferr := s.repo.FindByIDs(ctx, ids)
			if ferr == nil {
				return rooms, nil
			}
			s.logger.Warn("Failed to load rooms for search hits, falling back to database search", zap.Error(ferr))
		} else {
			s.logger.Warn("Elasticsearch search failed, falling back to database search", zap.String("term", term), zap.Error(err))
		}
	}

	rooms, err := s.repo.SearchILike(ctx, term)
	if err != nil {
		s.logger.Error("Database room search failed", zap.String("term", term), zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Search is currently unavailable.")
	}
	return rooms, nil
}

// FilterByPriceRange returns available rooms priced within [min, max],
// cheapest first.
func (s *ServiceImplementation) FilterByPriceRange(ctx context.Context, min, max float64) ([]Room, error) {
	if min < 0 || max < min {
		return nil, common.ErrBadRequest.WithDetails("Invalid price range: min must be >= 0 and max >= min.")
	}
	rooms, err := s.repo.FindByPriceRange(ctx, min, max)
	if err != nil {
		s.logger.Error("Price-range query failed", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not retrieve rooms.")
	}
	return rooms, nil
}

// IndexRoom writes the room document to the search index. Best effort: index
// failures are logged and never surfaced, the database remains the source
// of truth.
func (s *ServiceImplementation) IndexRoom(ctx context.Context, r *Room) {
	if s.esClient == nil {
		return
	}
	if err := indexRoomDoc(ctx, s.esClient, r); err != nil {
		s.logger.Warn("Failed to index room document", zap.String("roomID", r.ID.String()), zap.Error(err))
	}
}

// RemoveFromIndex deletes the room document from the search index, best
// effort.
func (s *ServiceImplementation) RemoveFromIndex(ctx context.Context, id uuid.UUID) {
	if s.esClient == nil {
		return
	}
	if err := deleteRoomDoc(ctx, s.esClient, id); err != nil {
		s.logger.Warn("Failed to remove room document from index", zap.String("roomID", id.String()), zap.Error(err))
	}
}

func applyRoomUpdate(r *Room, req UpdateRoomRequest) {
	if req.Title != nil {
		r.Title = *req.Title
	}
	if req.Location != nil {
		r.Location = *req.Location
	}
	if req.Description != nil {
		r.Description = req.Description
	}
	if req.Price != nil {
		r.Price = *req.Price
	}
	if req.Bedrooms != nil {
		r.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		r.Bathrooms = *req.Bathrooms
	}
	if req.Amenities != nil {
		r.Amenities = req.Amenities
	}
	if req.Images != nil {
		r.Images = req.Images
	}
	if req.ContactPhone != nil {
		r.ContactPhone = req.ContactPhone
	}
	if req.ContactEmail != nil {
		r.ContactEmail = req.ContactEmail
	}
	if req.Available != nil {
		r.Available = *req.Available
	}
}
