package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/aayushmishra321/Interview-Ai-sub001/internal/audit"
	"github.com/aayushmishra321/Interview-Ai-sub001/internal/auth/dto"
	"github.com/aayushmishra321/Interview-Ai-sub001/internal/auth/middleware"
	"github.com/aayushmishra321/Interview-Ai-sub001/internal/auth/service"
	autherror "github.com/aayushmishra321/Interview-Ai-sub001/internal/errors"
	"github.com/aayushmishra321/Interview-Ai-sub001/pkg/response"
)

type AdminHandler struct {
	userService *service.UserService
	audit       *audit.Logger
}

func NewAdminHandler(userService *service.UserService, auditLogger *audit.Logger) *AdminHandler {
	return &AdminHandler{userService: userService, audit: auditLogger}
}

func (h *AdminHandler) GetAllUsers(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "50"))
	if err != nil || limit <= 0 || limit > 200 {
		limit = 50
	}
	offset, err := strconv.Atoi(c.Query("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	users, err := h.userService.ListUsers(c.Context(), limit, offset)
	if err != nil {
		return response.Error(c, fiber.StatusInternalServerError, "Failed to list users")
	}

	out := make([]dto.UserOutput, 0, len(users))
	for _, u := range users {
		out = append(out, dto.NewUserOutput(u))
	}

	return response.OK(c, out, "")
}

func (h *AdminHandler) UpdateUserRole(c *fiber.Ctx) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return response.Error(c, fiber.StatusUnauthorized, "Authentication required")
	}

	var input dto.UpdateRoleInput
	if err := c.BodyParser(&input); err != nil {
		return response.Error(c, fiber.StatusBadRequest, "Invalid input")
	}
	if err := validate.Struct(input); err != nil {
		return response.ErrorWithMessage(c, fiber.StatusBadRequest, "Validation failed", err.Error())
	}

	targetID := c.Params("id")

	user, err := h.userService.UpdateUserRole(c.Context(), targetID, input.Role)

	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	h.audit.Record(audit.Entry{
		ActorID:    identity.UserID,
		ActorEmail: identity.Email,
		Action:     "update_role",
		Resource:   "user",
		ResourceID: targetID,
		Outcome:    outcome,
		IPAddress:  c.IP(),
	})

	if err != nil {
		if errors.Is(err, autherror.ErrUserNotFound) {
			return response.Error(c, fiber.StatusNotFound, "User not found")
		}
		return response.Error(c, fiber.StatusInternalServerError, "Failed to update role")
	}

	return response.OK(c, dto.NewUserOutput(user), "Role updated successfully")
}
