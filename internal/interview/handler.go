package interview

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/aayushmishra321/Interview-Ai-sub001/internal/auth/middleware"
	"github.com/aayushmishra321/Interview-Ai-sub001/pkg/constant"
	"github.com/aayushmishra321/Interview-Ai-sub001/pkg/response"
)

var validate = validator.New()

type CreateInput struct {
	Type       string `json:"type" validate:"required,oneof=behavioral technical coding system-design"`
	Role       string `json:"role" validate:"required,max=100"`
	Difficulty string `json:"difficulty" validate:"required,oneof=entry mid senior executive"`
}

type CompleteInput struct {
	Score int `json:"score" validate:"min=0,max=100"`
}

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) Create(c *fiber.Ctx) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return response.Error(c, fiber.StatusUnauthorized, "Authentication required")
	}

	var input CreateInput
	if err := c.BodyParser(&input); err != nil {
		return response.Error(c, fiber.StatusBadRequest, "Invalid input")
	}
	if err := validate.Struct(input); err != nil {
		return response.ErrorWithMessage(c, fiber.StatusBadRequest, "Validation failed", err.Error())
	}

	now := time.Now()
	iv := &Interview{
		ID:         uuid.NewString(),
		UserID:     identity.UserID,
		Type:       input.Type,
		Role:       input.Role,
		Difficulty: input.Difficulty,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := h.repo.Create(c.Context(), iv); err != nil {
		return response.Error(c, fiber.StatusInternalServerError, "Failed to create interview")
	}

	return response.Created(c, iv, "Interview created successfully")
}

func (h *Handler) List(c *fiber.Ctx) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return response.Error(c, fiber.StatusUnauthorized, "Authentication required")
	}

	interviews, err := h.repo.ListByUser(c.Context(), identity.UserID, 50, 0)
	if err != nil {
		return response.Error(c, fiber.StatusInternalServerError, "Failed to list interviews")
	}
	if interviews == nil {
		interviews = []*Interview{}
	}

	return response.OK(c, interviews, "")
}

// Get returns a single interview. Only the owner or an admin may read it.
func (h *Handler) Get(c *fiber.Ctx) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return response.Error(c, fiber.StatusUnauthorized, "Authentication required")
	}

	iv, err := h.repo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return response.Error(c, fiber.StatusInternalServerError, "Failed to load interview")
	}
	if iv == nil {
		return response.Error(c, fiber.StatusNotFound, "Interview not found")
	}

	if iv.UserID != identity.UserID && identity.TokenRole != constant.RoleAdmin {
		return response.Error(c, fiber.StatusForbidden, "Insufficient permissions")
	}

	return response.OK(c, iv, "")
}

func (h *Handler) Complete(c *fiber.Ctx) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return response.Error(c, fiber.StatusUnauthorized, "Authentication required")
	}

	var input CompleteInput
	if err := c.BodyParser(&input); err != nil {
		return response.Error(c, fiber.StatusBadRequest, "Invalid input")
	}
	if err := validate.Struct(input); err != nil {
		return response.ErrorWithMessage(c, fiber.StatusBadRequest, "Validation failed", err.Error())
	}

	iv, err := h.repo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return response.Error(c, fiber.StatusInternalServerError, "Failed to load interview")
	}
	if iv == nil {
		return response.Error(c, fiber.StatusNotFound, "Interview not found")
	}
	if iv.UserID != identity.UserID {
		return response.Error(c, fiber.StatusForbidden, "Insufficient permissions")
	}

	if err := h.repo.Complete(c.Context(), iv.ID, input.Score); err != nil {
		return response.Error(c, fiber.StatusInternalServerError, "Failed to complete interview")
	}

	return response.OK(c, nil, "Interview completed successfully")
}
