package domain

import "time"

// User is the persisted credential record. PasswordHash must never leave the
// repository layer through any handler-facing read path.
type User struct {
	ID                 string
	Email              string
	PasswordHash       string
	Role               string
	FirstName          string
	LastName           string
	SubscriptionPlan   string
	SubscriptionStatus string
	IsVerified         bool
	FailedAttempts     int
	LockedUntil        *time.Time
	LastLoginAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsLocked reports whether the account is currently locked. A lock whose
// window has already elapsed counts as unlocked (lazy expiry; the counters
// are rewritten on the next login attempt, not here).
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && u.LockedUntil.After(now)
}

// LockExpired reports whether a previous lock exists but its window has
// passed.
func (u *User) LockExpired(now time.Time) bool {
	return u.LockedUntil != nil && !u.LockedUntil.After(now)
}
