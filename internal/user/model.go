// File: internal/user/model.go
package user

import (
	"time"

	"ktm_rentals_backend/internal/common"
	"ktm_rentals_backend/internal/shared"

	"github.com/google/uuid"
)

// User represents the user model in the database. Rows mirror the external
// identity provider; they exist so submissions and rooms can reference a
// stable local id.
type User struct {
	common.BaseModel
	FirebaseUID string  `gorm:"type:varchar(128);not null;uniqueIndex"`
	Email       *string `gorm:"type:varchar(255);uniqueIndex"`
	DisplayName *string `gorm:"type:varchar(150)"`
	PhoneNumber *string `gorm:"type:varchar(50)"`
	Role        string  `gorm:"type:varchar(50);not null;default:'user'"`
	LastLoginAt *time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// UserResponse defines the structure for user data sent in API responses.
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       *string    `json:"email,omitempty"`
	DisplayName *string    `json:"display_name,omitempty"`
	PhoneNumber *string    `json:"phone_number,omitempty"`
	Role        string     `json:"role"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// ToUserResponse converts a shared.User to a UserResponse DTO.
func ToUserResponse(usr *shared.User) UserResponse {
	return UserResponse{
		ID:          usr.ID,
		Email:       usr.Email,
		DisplayName: usr.DisplayName,
		PhoneNumber: usr.PhoneNumber,
		Role:        usr.Role,
		CreatedAt:   usr.CreatedAt,
		LastLoginAt: usr.LastLoginAt,
	}
}

// DBToShared converts a GORM User to the shared principal type.
func DBToShared(u *User) *shared.User {
	if u == nil {
		return nil
	}
	return &shared.User{
		ID:          u.ID,
		FirebaseUID: u.FirebaseUID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}
