package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the permission level of a staff account.
type Role string

const (
	RoleStaff      Role = "staff"
	RoleManager    Role = "manager"
	RoleSuperAdmin Role = "super_admin"
)

// CanManageRooms reports whether the role may change the room inventory.
func (r Role) CanManageRooms() bool {
	return r == RoleManager || r == RoleSuperAdmin
}

// User represents a staff account on the billing desk.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Email is used for login (unique).
	Email string

	DisplayName string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	Role Role

	CreatedAt int64
	UpdatedAt int64
}

// NewUser creates a staff user with a fresh ID and timestamps.
func NewUser(email, displayName, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		Role:         RoleStaff,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
