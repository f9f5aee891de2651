package dto

import (
	"time"

	"github.com/aayushmishra321/Interview-Ai-sub001/internal/auth/domain"
)

type UserOutput struct {
	ID                 string     `json:"id"`
	Email              string     `json:"email"`
	Role               string     `json:"role"`
	FirstName          string     `json:"first_name"`
	LastName           string     `json:"last_name"`
	SubscriptionPlan   string     `json:"subscription_plan"`
	SubscriptionStatus string     `json:"subscription_status"`
	IsVerified         bool       `json:"is_verified"`
	LastLoginAt        *time.Time `json:"last_login_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// NewUserOutput maps a credential record onto its public shape. The password
// hash and lockout counters deliberately have no place here.
func NewUserOutput(u *domain.User) UserOutput {
	return UserOutput{
		ID:                 u.ID,
		Email:              u.Email,
		Role:               u.Role,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		SubscriptionPlan:   u.SubscriptionPlan,
		SubscriptionStatus: u.SubscriptionStatus,
		IsVerified:         u.IsVerified,
		LastLoginAt:        u.LastLoginAt,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthResponse struct {
	User   UserOutput    `json:"user"`
	Tokens TokenResponse `json:"tokens"`
}

type CreateProfileInput struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"max=50"`
	LastName  string `json:"last_name" validate:"max=50"`
}

type UpdateProfileInput struct {
	FirstName string `json:"first_name" validate:"required,max=50"`
	LastName  string `json:"last_name" validate:"required,max=50"`
}

type UpdateRoleInput struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}
