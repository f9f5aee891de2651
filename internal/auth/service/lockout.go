package service

import (
	"time"

	"github.com/aayushmishra321/Interview-Ai-sub001/internal/auth/domain"
	"github.com/aayushmishra321/Interview-Ai-sub001/pkg/constant"
)

// LockoutPolicy decides how a credential record's failed-attempt counters
// move on each login attempt. It is a pure function of the record and the
// clock; persistence happens in the caller.
type LockoutPolicy struct {
	Threshold    int
	LockDuration time.Duration
}

func DefaultLockoutPolicy() LockoutPolicy {
	return LockoutPolicy{
		Threshold:    constant.MaxFailedLoginAttempts,
		LockDuration: constant.AccountLockDuration,
	}
}

// OnFailure returns the next (failedAttempts, lockedUntil) state after a
// failed login attempt observed at now.
//
// A lock whose window has elapsed restarts the count at 1 rather than
// resuming the old streak. Reaching the threshold locks the account for the
// configured duration. An attempt made while still locked never reaches
// here; callers reject it before evaluating the credential.
func (p LockoutPolicy) OnFailure(user *domain.User, now time.Time) (int, *time.Time) {
	if user.LockExpired(now) {
		return 1, nil
	}

	attempts := user.FailedAttempts + 1
	if attempts >= p.Threshold {
		until := now.Add(p.LockDuration)
		return attempts, &until
	}

	return attempts, user.LockedUntil
}

// OnSuccess returns the reset state after a successful login: the counter
// is cleared and any lock (expired or not) is removed.
func (p LockoutPolicy) OnSuccess() (int, *time.Time) {
	return 0, nil
}
