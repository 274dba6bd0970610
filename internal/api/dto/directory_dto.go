package dto

import "time"

// DirectoryUser is the directory projection of an active user.
type DirectoryUser struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	Username       string    `json:"username"`
	ProfilePicture string    `json:"profile_picture"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// DirectoryMetadata reports pagination progress.
type DirectoryMetadata struct {
	LastTime       *time.Time `json:"last_time"`
	RemainingItems int        `json:"remainingItems"`
	RemainingPages int        `json:"remainingPages"`
}

// DirectoryResponse is the paginated directory envelope.
type DirectoryResponse struct {
	Message  string            `json:"message"`
	Data     []DirectoryUser   `json:"data"`
	Metadata DirectoryMetadata `json:"metadata"`
}

// SearchResult is the search projection of a user.
type SearchResult struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	UserFullname   string `json:"user_fullname"`
	ProfilePicture string `json:"profile_picture"`
}
