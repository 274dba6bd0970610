package domain

import "time"

// Admin is the domain model for administrator accounts. Admins live in a
// separate table and never appear in the public user directory.
type Admin struct {
	ID             string
	Email          string
	FullName       string
	ProfilePicture string
	AuthID         string
	IsActive       bool
	CreatedAt      time.Time
	LastLogin      *time.Time
}
