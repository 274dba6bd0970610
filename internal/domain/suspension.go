package domain

import "time"

// Suspension is an immutable access-restriction window applied to a user by
// an admin. A user is suspended while start_date <= now < end_date; expiry
// happens by comparison, records are never deleted.
type Suspension struct {
	ID          string
	UserID      string
	StartDate   time.Time
	EndDate     time.Time
	Description string
	CreatedAt   time.Time
}
