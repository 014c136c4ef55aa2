package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the access level of a user.
type Role string

const (
	RoleClient   Role = "Client"
	RoleAdmin    Role = "Admin"
	RoleEmployee Role = "Employee"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleAdmin, RoleEmployee:
		return true
	}
	return false
}

// PasswordReset is a pending reset capability. Only the hash of the value mailed
// to the user is ever stored.
type PasswordReset struct {
	Hash      string    `bson:"hash" json:"-"`
	ExpiresAt time.Time `bson:"expiresAt" json:"-"`
}

// Expired reports whether the reset can no longer be redeemed at now.
func (r *PasswordReset) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

// User is a stored account.
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email" validate:"required,email"`
	Password      string             `bson:"password" json:"-"`
	Role          Role               `bson:"role" json:"role"`
	Suspended     bool               `bson:"suspended" json:"suspended"`
	PasswordReset *PasswordReset     `bson:"passwordReset,omitempty" json:"-"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PublicUser is the summary returned alongside session tokens.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Public strips the user down to its client-facing summary.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
