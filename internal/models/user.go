package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a row of the users table
type User struct {
	ID          uuid.UUID  `json:"id" db:"id"`                     // Internal primary key
	PublicID    uuid.UUID  `json:"public_id" db:"public_id"`       // External-facing identifier
	Email       string     `json:"email" db:"email"`               // Unique email
	Username    string     `json:"username" db:"username"`         // Unique username
	DisplayName *string    `json:"display_name" db:"display_name"` // Optional display name
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`     // Creation timestamp
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`     // Last update timestamp
	DeletedAt   *time.Time `json:"deleted_at" db:"deleted_at"`     // Set when the user is soft-deleted
}

type GetUserByIDParams struct {
	ID uuid.UUID `json:"id"`
}

type GetUserByPublicIDParams struct {
	PublicID uuid.UUID `json:"public_id"`
}

type GetUserByEmailParams struct {
	Email string `json:"email"`
}

type GetUserByUsernameParams struct {
	Username string `json:"username"`
}

type ListUsersParams struct {
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}

type CreateUserParams struct {
	Email       string  `json:"email"`
	Username    string  `json:"username"`
	DisplayName *string `json:"display_name"`
}

// UpdateUserParams is a partial update: a nil field keeps the stored value.
type UpdateUserParams struct {
	ID          uuid.UUID `json:"id"`
	Email       *string   `json:"email"`
	Username    *string   `json:"username"`
	DisplayName *string   `json:"display_name"`
}

type SoftDeleteUserParams struct {
	ID uuid.UUID `json:"id"`
}

type HardDeleteUserParams struct {
	ID uuid.UUID `json:"id"`
}
