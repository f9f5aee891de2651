package middleware_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aayushmishra321/Interview-Ai-sub001/internal/auth/middleware"
)

func limitedApp(limiter *middleware.UserRateLimiter, id *middleware.Identity) *fiber.App {
	app := fiber.New()
	app.Get("/api", identityInjector(id), limiter.Handle, okHandler)
	return app
}

func TestUserRateLimiter_BlocksAfterLimit(t *testing.T) {
	limiter := middleware.NewUserRateLimiter(3, time.Minute)
	app := limitedApp(limiter, &middleware.Identity{UserID: "user-123"})

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/api", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/api", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Too many requests, please try again later", body["error"])
}

func TestUserRateLimiter_WindowsArePerIdentity(t *testing.T) {
	limiter := middleware.NewUserRateLimiter(1, time.Minute)

	alice := limitedApp(limiter, &middleware.Identity{UserID: "alice"})
	bob := limitedApp(limiter, &middleware.Identity{UserID: "bob"})

	resp, err := alice.Test(httptest.NewRequest("GET", "/api", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Alice is out of budget, Bob is untouched.
	resp, err = alice.Test(httptest.NewRequest("GET", "/api", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	resp, err = bob.Test(httptest.NewRequest("GET", "/api", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestUserRateLimiter_WindowResets(t *testing.T) {
	now := time.Now()
	limiter := middleware.NewUserRateLimiter(1, time.Minute)
	limiter.SetNowForTest(func() time.Time { return now })

	app := limitedApp(limiter, &middleware.Identity{UserID: "user-123"})

	resp, err := app.Test(httptest.NewRequest("GET", "/api", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	now = now.Add(time.Minute + time.Second)

	resp, err = app.Test(httptest.NewRequest("GET", "/api", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestUserRateLimiter_AnonymousKeyedByAddress(t *testing.T) {
	limiter := middleware.NewUserRateLimiter(1, time.Minute)
	app := limitedApp(limiter, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/api", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}
