package dto

// UpdateProfileRequest carries optional profile changes; omitted fields are
// left untouched. Username is ignored for admin profiles.
type UpdateProfileRequest struct {
	Username       *string `json:"username,omitempty"`
	FullName       *string `json:"full_name,omitempty"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
}

// UserProfileResponse is the user-facing profile projection.
type UserProfileResponse struct {
	Email          string `json:"email"`
	Username       string `json:"username"`
	FullName       string `json:"full_name"`
	ProfilePicture string `json:"profile_picture"`
}

// AdminProfileResponse is the admin-facing profile projection.
type AdminProfileResponse struct {
	Email          string `json:"email"`
	FullName       string `json:"full_name"`
	ProfilePicture string `json:"profile_picture"`
}
