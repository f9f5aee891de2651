package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aayushmishra321/Interview-Ai-sub001/internal/auth/domain"
)

func TestLockoutPolicy_OnFailure(t *testing.T) {
	policy := DefaultLockoutPolicy()
	now := time.Now()

	t.Run("increments below threshold", func(t *testing.T) {
		user := &domain.User{FailedAttempts: 2}

		attempts, lockedUntil := policy.OnFailure(user, now)

		assert.Equal(t, 3, attempts)
		assert.Nil(t, lockedUntil)
	})

	t.Run("fifth consecutive failure locks for two hours", func(t *testing.T) {
		user := &domain.User{FailedAttempts: 4}

		attempts, lockedUntil := policy.OnFailure(user, now)

		assert.Equal(t, 5, attempts)
		require.NotNil(t, lockedUntil)
		assert.Equal(t, now.Add(2*time.Hour), *lockedUntil)
	})

	t.Run("expired lock restarts the count at one", func(t *testing.T) {
		past := now.Add(-time.Minute)
		user := &domain.User{FailedAttempts: 5, LockedUntil: &past}

		attempts, lockedUntil := policy.OnFailure(user, now)

		assert.Equal(t, 1, attempts)
		assert.Nil(t, lockedUntil)
	})
}

func TestLockoutPolicy_OnSuccess(t *testing.T) {
	policy := DefaultLockoutPolicy()

	attempts, lockedUntil := policy.OnSuccess()

	assert.Zero(t, attempts)
	assert.Nil(t, lockedUntil)
}

func TestUser_IsLocked(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	assert.False(t, (&domain.User{}).IsLocked(now))
	assert.True(t, (&domain.User{LockedUntil: &future}).IsLocked(now))
	// Lazy expiry: an elapsed lock counts as unlocked without a write-back.
	assert.False(t, (&domain.User{LockedUntil: &past}).IsLocked(now))
	assert.True(t, (&domain.User{LockedUntil: &past}).LockExpired(now))
}
