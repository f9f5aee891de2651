package interview

//go:generate mockgen -destination=../mocks/mock_interview_repository.go -package=mocks -mock_names=Repository=MockInterviewRepository github.com/aayushmishra321/Interview-Ai-sub001/internal/interview Repository

import (
	"context"
	"time"
)

// Interview statuses.
const (
	StatusPending   = "pending"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

type Interview struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Type       string    `json:"type"`
	Role       string    `json:"role"`
	Difficulty string    `json:"difficulty"`
	Status     string    `json:"status"`
	Score      *int      `json:"score,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Repository interface {
	Create(ctx context.Context, iv *Interview) error
	GetByID(ctx context.Context, id string) (*Interview, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*Interview, error)
	Complete(ctx context.Context, id string, score int) error
}
