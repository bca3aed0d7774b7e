// File: internal/room/model.go
package room

import (
	"time"

	"ktm_rentals_backend/internal/common"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/lib/pq"
)

// Room is a published rental listing. Rows are materialized from approved
// property submissions and are the only listings visible to the public.
type Room struct {
	common.BaseModel
	OwnerID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	Slug         string         `gorm:"type:varchar(300);not null;uniqueIndex"`
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
	Available    bool           `gorm:"not null;default:true"`
}

func (Room) TableName() string {
	return "rooms"
}

// NewSlug builds a URL-safe slug from the listing title. A short random
// suffix keeps slugs unique without a round trip to the database.
func NewSlug(title string) string {
	suffix := uuid.New().String()[:8]
	base := slug.Make(title)
	if base == "" {
		base = "room"
	}
	return base + "-" + suffix
}

// UpdateRoomRequest carries the owner-editable fields of a published room.
// All fields are optional; only non-nil values are applied.
type UpdateRoomRequest struct {
	Title        *string  `json:"title,omitempty" binding:"omitempty,min=3,max=255"`
	Location     *string  `json:"location,omitempty" binding:"omitempty,min=2,max=255"`
	Description  *string  `json:"description,omitempty"`
	Price        *float64 `json:"price,omitempty" binding:"omitempty,gt=0"`
	Bedrooms     *int     `json:"bedrooms,omitempty" binding:"omitempty,gte=0"`
	Bathrooms    *int     `json:"bathrooms,omitempty" binding:"omitempty,gte=0"`
	Amenities    []string `json:"amenities,omitempty" binding:"omitempty,dive,max=100"`
	Images       []string `json:"images,omitempty" binding:"omitempty,max=10,dive,url"`
	ContactPhone *string  `json:"contact_phone,omitempty" binding:"omitempty,max=50"`
	ContactEmail *string  `json:"contact_email,omitempty" binding:"omitempty,email,max=255"`
	Available    *bool    `json:"available,omitempty"`
}

// RoomResponse is the API representation of a published room.
type RoomResponse struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Slug         string    `json:"slug"`
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
	Available    bool      `json:"available"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToRoomResponse converts a Room model to its API representation.
func ToRoomResponse(r *Room) RoomResponse {
	return RoomResponse{
		ID:           r.ID,
		OwnerID:      r.OwnerID,
		Slug:         r.Slug,
		Title:        r.Title,
		Location:     r.Location,
		Description:  r.Description,
		Price:        r.Price,
		Bedrooms:     r.Bedrooms,
		Bathrooms:    r.Bathrooms,
		Amenities:    r.Amenities,
		Images:       r.Images,
		ContactPhone: r.ContactPhone,
		ContactEmail: r.ContactEmail,
		Available:    r.Available,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// ToRoomResponses converts a slice of rooms.
func ToRoomResponses(rooms []Room) []RoomResponse {
	responses := make([]RoomResponse, 0, len(rooms))
	for i := range rooms {
		responses = append(responses, ToRoomResponse(&rooms[i]))
	}
	return responses
}
