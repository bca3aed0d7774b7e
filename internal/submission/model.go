// File: internal/submission/model.go
package submission

import (
	"time"

	"ktm_rentals_backend/internal/common"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Status is the verification state of a property submission.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransitionTo reports whether moving from s to target is a legal state
// change. Only pending submissions can be decided, and a decision is final.
func (s Status) CanTransitionTo(target Status) bool {
	if s != StatusPending {
		return false
	}
	return target == StatusApproved || target == StatusRejected
}

// Decision is an admin verdict on a pending submission.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// TargetStatus maps a decision to the status it produces.
func (d Decision) TargetStatus() (Status, bool) {
	switch d {
	case DecisionApprove:
		return StatusApproved, true
	case DecisionReject:
		return StatusRejected, true
	default:
		return "", false
	}
}

// PendingProperty is a property submission awaiting admin verification.
// Approved submissions are materialized into published rooms; the row itself
// is kept as the audit record of the decision.
type PendingProperty struct {
	common.BaseModel
	OwnerID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title        string         `gorm:"type:varchar(255);not null"`
	Location     string         `gorm:"type:varchar(255);not null"`
	Description  *string        `gorm:"type:text"`
	Price        float64        `gorm:"type:numeric(12,2);not null"`
	Bedrooms     int            `gorm:"not null;default:0"`
	Bathrooms    int            `gorm:"not null;default:0"`
	Amenities    pq.StringArray `gorm:"type:text[]"`
	Images       pq.StringArray `gorm:"type:text[]"`
	ContactPhone *string        `gorm:"type:varchar(50)"`
	ContactEmail *string        `gorm:"type:varchar(255)"`
	Status       Status         `gorm:"type:varchar(20);not null;default:'pending';index"`
	Available    bool           `gorm:"not null;default:true"`
}

func (PendingProperty) TableName() string {
	return "pending_properties"
}

// CreateSubmissionRequest is the payload for submitting a property for
// verification.
type CreateSubmissionRequest struct {
	Title        string   `json:"title" binding:"required,min=3,max=255"`
	Location     string   `json:"location" binding:"required,min=2,max=255"`
	Description  *string  `json:"description,omitempty"`
	Price        float64  `json:"price" binding:"required,gt=0"`
	Bedrooms     int      `json:"bedrooms" binding:"gte=0"`
	Bathrooms    int      `json:"bathrooms" binding:"gte=0"`
	Amenities    []string `json:"amenities,omitempty" binding:"omitempty,dive,max=100"`
	Images       []string `json:"images,omitempty" binding:"omitempty,max=10,dive,url"`
	ContactPhone *string  `json:"contact_phone,omitempty" binding:"omitempty,max=50"`
	ContactEmail *string  `json:"contact_email,omitempty" binding:"omitempty,email,max=255"`
}

// SubmissionResponse is the API representation of a property submission.
type SubmissionResponse struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Title        string    `json:"title"`
	Location     string    `json:"location"`
	Description  *string   `json:"description,omitempty"`
	Price        float64   `json:"price"`
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    int       `json:"bathrooms"`
	Amenities    []string  `json:"amenities"`
	Images       []string  `json:"images"`
	ContactPhone *string   `json:"contact_phone,omitempty"`
	ContactEmail *string   `json:"contact_email,omitempty"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToSubmissionResponse converts a PendingProperty to its API representation.
func ToSubmissionResponse(p *PendingProperty) SubmissionResponse {
	return SubmissionResponse{
		ID:           p.ID,
		OwnerID:      p.OwnerID,
		Title:        p.Title,
		Location:     p.Location,
		Description:  p.Description,
		Price:        p.Price,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		Amenities:    p.Amenities,
		Images:       p.Images,
		ContactPhone: p.ContactPhone,
		ContactEmail: p.ContactEmail,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToSubmissionResponses converts a slice of submissions.
func ToSubmissionResponses(subs []PendingProperty) []SubmissionResponse {
	responses := make([]SubmissionResponse, 0, len(subs))
	for i := range subs {
		responses = append(responses, ToSubmissionResponse(&subs[i]))
	}
	return responses
}
