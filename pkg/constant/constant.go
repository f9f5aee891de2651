package constant

import "time"

// Auth roles embedded in signed tokens.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Subscription plans. The plan doubles as the request-scoped tier role
// consumed by route guards.
const (
	PlanFree       = "free"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"
)

// Subscription statuses.
const (
	SubscriptionActive    = "active"
	SubscriptionInactive  = "inactive"
	SubscriptionCancelled = "cancelled"
)

// Account lockout policy: five consecutive failed logins lock the account
// for two hours.
const (
	MaxFailedLoginAttempts = 5
	AccountLockDuration    = 2 * time.Hour
)

// BcryptCost is the work factor used when hashing passwords.
const BcryptCost = 12

// FederatedPasswordPlaceholder is stored as the credential hash for
// identities provisioned from an external provider. It never matches a
// bcrypt digest, so local password login is impossible for these accounts.
const FederatedPasswordPlaceholder = "auth0-managed"
