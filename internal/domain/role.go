package domain

// Role classifies an authenticated subject. Only two variants exist; any
// unrecognized role string collapses to RoleUser so a bad claim can never
// grant elevated access.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// NormalizeRole maps a raw role claim onto the two-variant Role enum.
func NormalizeRole(raw string) Role {
	if raw == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleUser
}

// IsAdmin reports whether the role carries administrative privileges.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
