package domain

import "time"

// DefaultProfilePicture is assigned to accounts created without an avatar.
const DefaultProfilePicture = "https://storage.googleapis.com/user-service-assets/default-avatar.png"

// User is the domain model for end-user accounts.
type User struct {
	ID             string
	Email          string
	Username       string
	FullName       string
	ProfilePicture string
	AuthID         string
	IsActive       bool
	CreatedAt      time.Time
	LastLogin      *time.Time
}
