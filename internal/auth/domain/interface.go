package domain

import (
	"context"
	"time"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByEmailOrID(ctx context.Context, email, id string) (*User, error)
	Create(ctx context.Context, user *User) error
	UpdateLoginState(ctx context.Context, id string, failedAttempts int, lockedUntil *time.Time) error
	RecordLogin(ctx context.Context, id string, at time.Time) error
	UpdateProfile(ctx context.Context, id, firstName, lastName string) error
	UpdateRole(ctx context.Context, id, role string) error
	List(ctx context.Context, limit, offset int) ([]*User, error)
}
