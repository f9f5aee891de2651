package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aayushmishra321/Interview-Ai-sub001/internal/audit"
	"github.com/aayushmishra321/Interview-Ai-sub001/internal/auth/domain"
	"github.com/aayushmishra321/Interview-Ai-sub001/internal/auth/dto"
	"github.com/aayushmishra321/Interview-Ai-sub001/internal/auth/handler"
	"github.com/aayushmishra321/Interview-Ai-sub001/internal/auth/middleware"
	"github.com/aayushmishra321/Interview-Ai-sub001/internal/auth/service"
	"github.com/aayushmishra321/Interview-Ai-sub001/internal/mocks"
	"github.com/aayushmishra321/Interview-Ai-sub001/pkg/constant"
)

func newAdminHarness(t *testing.T) (*fiber.App, *mocks.MockUserRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockUserRepository(ctrl)
	tokens := service.NewTokenService("access-secret", "refresh-secret", 15, 1440)
	userService := service.NewUserService(repo, tokens, quietLogger())

	// The audit sink is fire-and-forget; an expectation-less pool just
	// absorbs the background write.
	auditDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(auditDB.Close)
	auditLogger := audit.NewLogger(auditDB, quietLogger())

	adminHandler := handler.NewAdminHandler(userService, auditLogger)

	app := fiber.New()
	asAdmin := func(c *fiber.Ctx) error {
		middleware.SetIdentity(c, &middleware.Identity{
			UserID:    "admin-1",
			Email:     "admin@example.com",
			TokenRole: constant.RoleAdmin,
		})
		return c.Next()
	}
	app.Get("/admin/users", asAdmin, adminHandler.GetAllUsers)
	app.Put("/admin/users/:id/role", asAdmin, adminHandler.UpdateUserRole)

	return app, repo
}

func TestGetAllUsers(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		app, repo := newAdminHarness(t)

		repo.EXPECT().List(gomock.Any(), 50, 0).Return([]*domain.User{
			{ID: "user-1", Email: "a@example.com"},
			{ID: "user-2", Email: "b@example.com"},
		}, nil)

		resp, err := app.Test(httptest.NewRequest("GET", "/admin/users", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Len(t, body["data"], 2)
	})

	t.Run("out-of-range paging falls back to defaults", func(t *testing.T) {
		app, repo := newAdminHarness(t)

		repo.EXPECT().List(gomock.Any(), 50, 0).Return(nil, nil)

		resp, err := app.Test(httptest.NewRequest("GET", "/admin/users?limit=9999&offset=-3", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("explicit paging", func(t *testing.T) {
		app, repo := newAdminHarness(t)

		repo.EXPECT().List(gomock.Any(), 10, 20).Return(nil, nil)

		resp, err := app.Test(httptest.NewRequest("GET", "/admin/users?limit=10&offset=20", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestUpdateUserRole(t *testing.T) {
	putRole := func(t *testing.T, app *fiber.App, id, role string) (int, map[string]any) {
		t.Helper()

		body, err := json.Marshal(dto.UpdateRoleInput{Role: role})
		require.NoError(t, err)

		req := httptest.NewRequest("PUT", "/admin/users/"+id+"/role", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, 5000)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))

		return resp.StatusCode, decoded
	}

	t.Run("success", func(t *testing.T) {
		app, repo := newAdminHarness(t)

		repo.EXPECT().GetByID(gomock.Any(), "user-123").Return(&domain.User{
			ID:    "user-123",
			Email: "test@example.com",
			Role:  constant.RoleUser,
		}, nil)
		repo.EXPECT().UpdateRole(gomock.Any(), "user-123", constant.RoleAdmin).Return(nil)

		status, body := putRole(t, app, "user-123", constant.RoleAdmin)
		assert.Equal(t, fiber.StatusOK, status)

		data := body["data"].(map[string]any)
		assert.Equal(t, constant.RoleAdmin, data["role"])

		// Let the detached audit write run before the harness tears down.
		time.Sleep(20 * time.Millisecond)
	})

	t.Run("unknown user", func(t *testing.T) {
		app, repo := newAdminHarness(t)

		repo.EXPECT().GetByID(gomock.Any(), "ghost").Return(nil, nil)

		status, body := putRole(t, app, "ghost", constant.RoleAdmin)
		assert.Equal(t, fiber.StatusNotFound, status)
		assert.Equal(t, "User not found", body["error"])

		time.Sleep(20 * time.Millisecond)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		app, _ := newAdminHarness(t)

		status, _ := putRole(t, app, "user-123", "superuser")
		assert.Equal(t, fiber.StatusBadRequest, status)
	})
}

// The route group always runs the authenticator first, but the handler must
// not rely on that composition for its own safety.
func TestUpdateUserRole_NoIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockUserRepository(ctrl)
	tokens := service.NewTokenService("access-secret", "refresh-secret", 15, 1440)
	userService := service.NewUserService(repo, tokens, quietLogger())

	auditDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer auditDB.Close()

	adminHandler := handler.NewAdminHandler(userService, audit.NewLogger(auditDB, quietLogger()))

	app := fiber.New()
	app.Put("/admin/users/:id/role", adminHandler.UpdateUserRole)

	body, err := json.Marshal(dto.UpdateRoleInput{Role: constant.RoleAdmin})
	require.NoError(t, err)

	req := httptest.NewRequest("PUT", "/admin/users/user-123/role", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	assert.Equal(t, "Authentication required", decoded["error"])
}
