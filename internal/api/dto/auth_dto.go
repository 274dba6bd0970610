package dto

// LoginRequest carries the third-party identity token exchanged for a
// session token.
type LoginRequest struct {
	AuthToken string `json:"auth_token"`
}

// RegisterRequest payload for new accounts. The identity token travels in
// the same body and is validated by the identity gate before the handler
// runs.
type RegisterRequest struct {
	AuthToken string `json:"auth_token"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	AuthID    string `json:"auth_id"`
}

// AuthResponse standard response for login endpoints.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
}
