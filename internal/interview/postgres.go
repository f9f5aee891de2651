package interview

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, iv *Interview) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO interviews (id, user_id, type, role, difficulty, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, iv.ID, iv.UserID, iv.Type, iv.Role, iv.Difficulty, iv.Status, iv.CreatedAt, iv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create interview: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Interview, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, user_id, type, role, difficulty, status, score, created_at, updated_at
		FROM interviews
		WHERE id = $1
		LIMIT 1;
	`, id)

	var iv Interview
	err := row.Scan(&iv.ID, &iv.UserID, &iv.Type, &iv.Role, &iv.Difficulty,
		&iv.Status, &iv.Score, &iv.CreatedAt, &iv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get interview: %w", err)
	}

	return &iv, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*Interview, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, type, role, difficulty, status, score, created_at, updated_at
		FROM interviews
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	defer rows.Close()

	var interviews []*Interview
	for rows.Next() {
		var iv Interview
		if err := rows.Scan(&iv.ID, &iv.UserID, &iv.Type, &iv.Role, &iv.Difficulty,
			&iv.Status, &iv.Score, &iv.CreatedAt, &iv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan interview: %w", err)
		}
		interviews = append(interviews, &iv)
	}

	return interviews, rows.Err()
}

func (r *PostgresRepository) Complete(ctx context.Context, id string, score int) error {
	_, err := r.db.Exec(ctx, `
		UPDATE interviews SET status = $2, score = $3, updated_at = now()
		WHERE id = $1
	`, id, StatusCompleted, score)
	if err != nil {
		return fmt.Errorf("failed to complete interview: %w", err)
	}

	return nil
}
