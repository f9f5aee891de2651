package service

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/aayushmishra321/Interview-Ai-sub001/internal/auth/domain UserRepository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/aayushmishra321/Interview-Ai-sub001/internal/auth/domain"
	"github.com/aayushmishra321/Interview-Ai-sub001/internal/auth/dto"
	autherror "github.com/aayushmishra321/Interview-Ai-sub001/internal/errors"
	"github.com/aayushmishra321/Interview-Ai-sub001/pkg/constant"
)

type UserService struct {
	repo    domain.UserRepository
	tokens  TokenGenerator
	lockout LockoutPolicy
	log     *logrus.Logger
}

func NewUserService(repo domain.UserRepository, tokens TokenGenerator, log *logrus.Logger) *UserService {
	return &UserService{
		repo:    repo,
		tokens:  tokens,
		lockout: DefaultLockoutPolicy(),
		log:     log,
	}
}

func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*domain.User, *dto.TokenResponse, error) {
	email := normalizeEmail(input.Email)

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, autherror.ErrEmailAlreadyInUse
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), constant.BcryptCost)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:                 uuid.NewString(),
		Email:              email,
		PasswordHash:       string(hashed),
		Role:               constant.RoleUser,
		FirstName:          input.FirstName,
		LastName:           input.LastName,
		SubscriptionPlan:   constant.PlanFree,
		SubscriptionStatus: constant.SubscriptionActive,
		LastLoginAt:        &now,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	s.log.WithField("email", email).Info("new user registered")

	return user, tokens, nil
}

// Login evaluates a local credential against the lockout state machine.
// A locked account rejects the attempt before the password is even checked;
// a correct password does not unlock early.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*domain.User, *dto.TokenResponse, error) {
	email := normalizeEmail(input.Email)
	now := time.Now()

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, autherror.ErrInvalidCredentials
	}

	if user.IsLocked(now) {
		return nil, nil, autherror.ErrAccountLocked
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		attempts, lockedUntil := s.lockout.OnFailure(user, now)
		if err := s.repo.UpdateLoginState(ctx, user.ID, attempts, lockedUntil); err != nil {
			s.log.WithError(err).WithField("user_id", user.ID).Warn("failed to record login failure")
		}
		if lockedUntil != nil {
			s.log.WithFields(logrus.Fields{
				"user_id":      user.ID,
				"locked_until": lockedUntil,
				"ip":           input.IPAddress,
			}).Warn("account locked after repeated failed logins")
		}
		return nil, nil, autherror.ErrInvalidCredentials
	}

	if user.FailedAttempts > 0 || user.LockedUntil != nil {
		attempts, lockedUntil := s.lockout.OnSuccess()
		if err := s.repo.UpdateLoginState(ctx, user.ID, attempts, lockedUntil); err != nil {
			return nil, nil, err
		}
		user.FailedAttempts = attempts
		user.LockedUntil = lockedUntil
	}

	if err := s.repo.RecordLogin(ctx, user.ID, now); err != nil {
		return nil, nil, err
	}
	user.LastLoginAt = &now

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	s.log.WithField("email", email).Info("user logged in")

	return user, tokens, nil
}

// Refresh mints a fresh token pair from a valid refresh token. The user is
// re-read so the role claim embedded in the new pair reflects the store, not
// the old token.
func (s *UserService) Refresh(ctx context.Context, input dto.RefreshInput) (*dto.TokenResponse, error) {
	claims, err := s.tokens.VerifyRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, autherror.ErrInvalidRefreshToken
	}

	user, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrUserNotFound
	}

	return s.issueTokens(user)
}

// UpsertFederatedProfile creates or refreshes the credential record for a
// federated identity. Federated accounts are created pre-verified with a
// placeholder credential hash that can never pass local password login.
func (s *UserService) UpsertFederatedProfile(ctx context.Context, input dto.CreateProfileInput) (*domain.User, error) {
	email := normalizeEmail(input.Email)
	now := time.Now()

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if user != nil {
		if input.FirstName != "" || input.LastName != "" {
			if err := s.repo.UpdateProfile(ctx, user.ID, input.FirstName, input.LastName); err != nil {
				return nil, err
			}
			user.FirstName = input.FirstName
			user.LastName = input.LastName
		}
		if err := s.repo.RecordLogin(ctx, user.ID, now); err != nil {
			return nil, err
		}
		user.LastLoginAt = &now
		return user, nil
	}

	user = NewFederatedUser(email, input.FirstName, input.LastName, now)
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.WithField("email", email).Info("auto-created profile for federated user")

	return user, nil
}

// NewFederatedUser builds the credential record provisioned for a
// previously-unseen federated identity.
func NewFederatedUser(email, firstName, lastName string, now time.Time) *domain.User {
	if firstName == "" {
		firstName = localPart(email)
	}

	return &domain.User{
		ID:                 uuid.NewString(),
		Email:              normalizeEmail(email),
		PasswordHash:       constant.FederatedPasswordPlaceholder,
		Role:               constant.RoleUser,
		FirstName:          firstName,
		LastName:           lastName,
		SubscriptionPlan:   constant.PlanFree,
		SubscriptionStatus: constant.SubscriptionActive,
		IsVerified:         true,
		LastLoginAt:        &now,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func (s *UserService) GetProfile(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id string, input dto.UpdateProfileInput) (*domain.User, error) {
	if err := s.repo.UpdateProfile(ctx, id, input.FirstName, input.LastName); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *UserService) UpdateUserRole(ctx context.Context, id, role string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrUserNotFound
	}

	if err := s.repo.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}
	user.Role = role

	return user, nil
}

func (s *UserService) issueTokens(user *domain.User) (*dto.TokenResponse, error) {
	access, refresh, _, err := s.tokens.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{AccessToken: access, RefreshToken: refresh}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func localPart(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return "User"
}
