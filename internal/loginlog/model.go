package loginlog

import (
	"time"

	"github.com/google/uuid"
)

// LoginEvent records a user sign-in. At most one row is kept per user per
// calendar day; this is analytics bookkeeping, not an audit trail.
type LoginEvent struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_user_logins_user_date" json:"user_id"`
	Email       string    `gorm:"type:varchar(255);not null" json:"email"`
	Username    *string   `gorm:"type:varchar(150)" json:"username,omitempty"`
	PhoneNumber *string   `gorm:"type:varchar(50)" json:"phone_number,omitempty"`
	LoggedInAt  time.Time `gorm:"column:logged_in_date;not null;default:CURRENT_TIMESTAMP;index:idx_user_logins_user_date" json:"logged_in_date"`
}

// TableName specifies the table name for GORM.
func (LoginEvent) TableName() string {
	return "user_logins"
}
