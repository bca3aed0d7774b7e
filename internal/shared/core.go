package shared

import (
	"context"
	"time"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/google/uuid"
)

// User is the authenticated principal as seen by the rest of the system.
// The external identity provider is trusted verbatim; no further checks are
// layered on top of a verified token.
type User struct {
	ID          uuid.UUID
	FirebaseUID string
	Email       *string
	DisplayName *string
	PhoneNumber *string
	Role        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	LastLoginAt *time.Time
}

// Service defines the identity operations the middleware and handlers need.
// Lives here rather than in the user package to avoid an import cycle with
// the middleware.
type Service interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*User, error)
	// GetOrCreateUserFromFirebaseClaims resolves the local user row for a
	// verified Firebase token, creating it on first sight. wasCreated reports
	// whether a new row was inserted.
	GetOrCreateUserFromFirebaseClaims(ctx context.Context, token *firebaseauth.Token) (usr *User, wasCreated bool, err error)
}
