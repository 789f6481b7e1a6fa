package models

import "time"

type RoleName string

const (
	RoleAdmin        RoleName = "ADMIN"
	RolePractitioner RoleName = "PRACTITIONER"
	RoleUser         RoleName = "USER"
)

// Valid reports whether the role name is one of the closed set.
func (r RoleName) Valid() bool {
	switch r {
	case RoleAdmin, RolePractitioner, RoleUser:
		return true
	}
	return false
}

type Role struct {
	ID          int
	Name        RoleName
	Description string
}

type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserWithRoles is the admin listing projection: a user row plus the
// aggregated names of the roles it holds.
type UserWithRoles struct {
	User
	Roles []RoleName
}
