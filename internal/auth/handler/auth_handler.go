package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/aayushmishra321/Interview-Ai-sub001/internal/auth/dto"
	"github.com/aayushmishra321/Interview-Ai-sub001/internal/auth/middleware"
	"github.com/aayushmishra321/Interview-Ai-sub001/internal/auth/service"
	autherror "github.com/aayushmishra321/Interview-Ai-sub001/internal/errors"
	"github.com/aayushmishra321/Interview-Ai-sub001/pkg/response"
)

var validate = validator.New()

type AuthHandler struct {
	userService *service.UserService
}

func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return response.Error(c, fiber.StatusBadRequest, "Invalid input")
	}
	if err := validate.Struct(input); err != nil {
		return response.ErrorWithMessage(c, fiber.StatusBadRequest, "Validation failed", err.Error())
	}

	user, tokens, err := h.userService.Register(c.Context(), input)
	if err != nil {
		if errors.Is(err, autherror.ErrEmailAlreadyInUse) {
			return response.Error(c, fiber.StatusBadRequest, "User already exists with this email")
		}
		return response.Error(c, fiber.StatusInternalServerError, "Registration failed")
	}

	return response.Created(c, dto.AuthResponse{
		User:   dto.NewUserOutput(user),
		Tokens: *tokens,
	}, "User registered successfully")
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return response.Error(c, fiber.StatusBadRequest, "Invalid input")
	}
	if err := validate.Struct(input); err != nil {
		return response.ErrorWithMessage(c, fiber.StatusBadRequest, "Validation failed", err.Error())
	}

	input.IPAddress = c.IP()
	input.UserAgent = string(c.Request().Header.UserAgent())

	user, tokens, err := h.userService.Login(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, autherror.ErrAccountLocked):
			return response.Error(c, fiber.StatusLocked,
				"Account is temporarily locked due to too many failed login attempts")
		case errors.Is(err, autherror.ErrInvalidCredentials):
			return response.Error(c, fiber.StatusUnauthorized, "Invalid credentials")
		default:
			return response.Error(c, fiber.StatusInternalServerError, "Login failed")
		}
	}

	return response.OK(c, dto.AuthResponse{
		User:   dto.NewUserOutput(user),
		Tokens: *tokens,
	}, "Login successful")
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var input dto.RefreshInput
	if err := c.BodyParser(&input); err != nil {
		return response.Error(c, fiber.StatusBadRequest, "Invalid input")
	}
	if input.RefreshToken == "" {
		return response.Error(c, fiber.StatusUnauthorized, "Refresh token is required")
	}

	tokens, err := h.userService.Refresh(c.Context(), input)
	if err != nil {
		if errors.Is(err, autherror.ErrUserNotFound) {
			return response.Error(c, fiber.StatusUnauthorized, "User not found")
		}
		return response.Error(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}

	return response.OK(c, tokens, "Tokens refreshed successfully")
}

// Logout is a client-side operation with stateless tokens; the handler only
// acknowledges so clients can treat it uniformly.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return response.OK(c, nil, "Logged out successfully")
}

// Session reports whether the caller is signed in. It sits behind OptionalAuth
// so clients can poll it with a stale or absent token without getting a 401.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return response.OK(c, fiber.Map{"authenticated": false}, "")
	}

	return response.OK(c, fiber.Map{
		"authenticated": true,
		"user_id":       identity.UserID,
		"email":         identity.Email,
		"plan":          identity.Role,
	}, "")
}

// CreateProfile upserts a profile for a federated identity, mirroring the
// auto-provisioning the authenticator performs on first request.
func (h *AuthHandler) CreateProfile(c *fiber.Ctx) error {
	var input dto.CreateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return response.Error(c, fiber.StatusBadRequest, "Invalid input")
	}
	if err := validate.Struct(input); err != nil {
		return response.Error(c, fiber.StatusBadRequest, "Email is required")
	}

	user, err := h.userService.UpsertFederatedProfile(c.Context(), input)
	if err != nil {
		return response.Error(c, fiber.StatusInternalServerError, "Profile creation failed")
	}

	return response.OK(c, dto.NewUserOutput(user), "Profile created/updated successfully")
}

// GetProfile returns the caller's own record.
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return response.Error(c, fiber.StatusUnauthorized, "Authentication required")
	}

	user, err := h.userService.GetProfile(c.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, autherror.ErrUserNotFound) {
			return response.Error(c, fiber.StatusNotFound, "User not found")
		}
		return response.Error(c, fiber.StatusInternalServerError, "Failed to load profile")
	}

	return response.OK(c, dto.NewUserOutput(user), "")
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return response.Error(c, fiber.StatusUnauthorized, "Authentication required")
	}

	var input dto.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return response.Error(c, fiber.StatusBadRequest, "Invalid input")
	}
	if err := validate.Struct(input); err != nil {
		return response.ErrorWithMessage(c, fiber.StatusBadRequest, "Validation failed", err.Error())
	}

	user, err := h.userService.UpdateProfile(c.Context(), identity.UserID, input)
	if err != nil {
		return response.Error(c, fiber.StatusInternalServerError, "Failed to update profile")
	}

	return response.OK(c, dto.NewUserOutput(user), "Profile updated successfully")
}
