package users

import "time"

// User is a stored credential record. Records are immutable after
// registration; there are no update or delete flows.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}
