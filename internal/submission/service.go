// File: internal/submission/service.go
package submission

import (
	"context"

	"ktm_rentals_backend/internal/common"
	"ktm_rentals_backend/internal/room"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines business logic for the property verification workflow.
type Service interface {
	Submit(ctx context.Context, ownerID uuid.UUID, req CreateSubmissionRequest) (*PendingProperty, error)
	ListPending(ctx context.Context) ([]PendingProperty, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]PendingProperty, error)
	// Decide applies an admin verdict. Approval publishes the listing as a
	// room; rejection only records the status.
	Decide(ctx context.Context, id uuid.UUID, decision Decision, callerID uuid.UUID, callerRole string) (*PendingProperty, error)
	Remove(ctx context.Context, id uuid.UUID, callerID uuid.UUID, callerRole string) error
}

// ServiceImplementation implements the submission Service interface.
type ServiceImplementation struct {
	repo   Repository
	rooms  room.Service
	logger *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new submission service.
func NewService(repo Repository, rooms room.Service, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:   repo,
		rooms:  rooms,
		logger: logger.Named("SubmissionService"),
	}
}

// Submit records a new property for admin verification. Every submission
// starts pending; there is no fast path to published.
func (s *ServiceImplementation) Submit(ctx context.Context, ownerID uuid.UUID, req CreateSubmissionRequest) (*PendingProperty, error) {
	sub := &PendingProperty{
		OwnerID:      ownerID,
		Title:        req.Title,
		Location:     req.Location,
		Description:  req.Description,
		Price:        req.Price,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		Amenities:    req.Amenities,
		Images:       req.Images,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
		Status:       StatusPending,
		Available:    true,
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		s.logger.Error("Failed to create property submission", zap.String("ownerID", ownerID.String()), zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not submit the property.")
	}

	s.logger.Info("Property submitted for verification",
		zap.String("submissionID", sub.ID.String()),
		zap.String("ownerID", ownerID.String()),
	)
	return sub, nil
}

func (s *ServiceImplementation) ListPending(ctx context.Context) ([]PendingProperty, error) {
	subs, err := s.repo.FindPending(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch pending submissions", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not retrieve pending submissions.")
	}
	return subs, nil
}

func (s *ServiceImplementation) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]PendingProperty, error) {
	subs, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("Failed to fetch owner submissions", zap.String("ownerID", ownerID.String()), zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not retrieve your submissions.")
	}
	return subs, nil
}

// Decide applies an admin verdict to a pending submission. Decisions are
// final: a submission that is already approved or rejected cannot be
// re-decided.
func (s *ServiceImplementation) Decide(ctx context.Context, id uuid.UUID, decision Decision, callerID uuid.UUID, callerRole string) (*PendingProperty, error) {
	if callerRole != common.RoleAdmin {
		return nil, common.ErrForbidden.WithDetails("Only administrators can decide on submissions.")
	}

	target, ok := decision.TargetStatus()
	if !ok {
		return nil, common.ErrBadRequest.WithDetails("Unknown decision.")
	}

	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sub.Status.CanTransitionTo(target) {
		return nil, common.ErrConflict.WithDetails("This submission has already been decided.")
	}

	switch decision {
	case DecisionApprove:
		newRoom := materializeRoom(sub)
		if err := s.repo.Approve(ctx, sub, newRoom); err != nil {
			if _, isAPIErr := common.IsAPIError(err); isAPIErr {
				return nil, err
			}
			s.logger.Error("Failed to approve submission", zap.String("submissionID", id.String()), zap.Error(err))
			return nil, common.ErrInternalServer.WithDetails("Could not approve the submission.")
		}
		sub.Status = StatusApproved
		s.rooms.IndexRoom(ctx, newRoom)
		s.logger.Info("Submission approved and room published",
			zap.String("submissionID", id.String()),
			zap.String("roomID", newRoom.ID.String()),
			zap.String("decidedBy", callerID.String()),
		)

	case DecisionReject:
		if err := s.repo.UpdateStatus(ctx, id, StatusRejected); err != nil {
			if _, isAPIErr := common.IsAPIError(err); isAPIErr {
				return nil, err
			}
			s.logger.Error("Failed to reject submission", zap.String("submissionID", id.String()), zap.Error(err))
			return nil, common.ErrInternalServer.WithDetails("Could not reject the submission.")
		}
		sub.Status = StatusRejected
		s.logger.Info("Submission rejected",
			zap.String("submissionID", id.String()),
			zap.String("decidedBy", callerID.String()),
		)
	}

	return sub, nil
}

// Remove deletes a submission. Owners can withdraw their own; admins can
// remove any.
func (s *ServiceImplementation) Remove(ctx context.Context, id uuid.UUID, callerID uuid.UUID, callerRole string) error {
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if sub.OwnerID != callerID && callerRole != common.RoleAdmin {
		return common.ErrForbidden.WithDetails("Only the owner or an administrator can remove this submission.")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Submission removed",
		zap.String("submissionID", id.String()),
		zap.String("removedBy", callerID.String()),
	)
	return nil
}

// materializeRoom builds the published room row from an approved submission.
// The room gets its own identity; the submission id stays behind as the
// audit record only.
func materializeRoom(sub *PendingProperty) *room.Room {
	return &room.Room{
		OwnerID:      sub.OwnerID,
		Slug:         room.NewSlug(sub.Title),
		Title:        sub.Title,
		Location:     sub.Location,
		Description:  sub.Description,
		Price:        sub.Price,
		Bedrooms:     sub.Bedrooms,
		Bathrooms:    sub.Bathrooms,
		Amenities:    sub.Amenities,
		Images:       sub.Images,
		ContactPhone: sub.ContactPhone,
		ContactEmail: sub.ContactEmail,
		Available:    sub.Available,
	}
}
