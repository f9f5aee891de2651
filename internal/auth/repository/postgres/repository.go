package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aayushmishra321/Interview-Ai-sub001/internal/auth/domain"
	autherror "github.com/aayushmishra321/Interview-Ai-sub001/internal/errors"
)

// DB is the subset of pgxpool.Pool the repository uses. pgxmock satisfies it
// in tests.
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

const userColumns = `id, email, password_hash, role, first_name, last_name,
		subscription_plan, subscription_status, is_verified,
		failed_attempts, locked_until, last_login_at, created_at, updated_at`

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1 LIMIT 1;`, userColumns)
	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = lower($1) LIMIT 1;`, userColumns)
	return r.getOne(ctx, query, email)
}

// GetByEmailOrID resolves federated subjects, which may match either the
// provider subject stored as the id or the email.
func (r *PostgresRepository) GetByEmailOrID(ctx context.Context, email, id string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = lower($1) OR id::text = $2 LIMIT 1;`, userColumns)
	return r.getOne(ctx, query, email, id)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, args ...any) (*domain.User, error) {
	row := r.db.QueryRow(ctx, query, args...)

	var user domain.User
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Role,
		&user.FirstName, &user.LastName,
		&user.SubscriptionPlan, &user.SubscriptionStatus, &user.IsVerified,
		&user.FailedAttempts, &user.LockedUntil, &user.LastLoginAt,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapStoreError("failed to get user", err)
	}

	return &user, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, role, first_name, last_name,
			subscription_plan, subscription_status, is_verified,
			failed_attempts, locked_until, last_login_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, user.ID, user.Email, user.PasswordHash, user.Role, user.FirstName, user.LastName,
		user.SubscriptionPlan, user.SubscriptionStatus, user.IsVerified,
		user.FailedAttempts, user.LockedUntil, user.LastLoginAt, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return mapStoreError("failed to create user", err)
	}

	return nil
}

func (r *PostgresRepository) UpdateLoginState(ctx context.Context, id string, failedAttempts int, lockedUntil *time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET failed_attempts = $2, locked_until = $3, updated_at = now()
		WHERE id = $1
	`, id, failedAttempts, lockedUntil)
	if err != nil {
		return mapStoreError("failed to update login state", err)
	}

	return nil
}

func (r *PostgresRepository) RecordLogin(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET last_login_at = $2, updated_at = now()
		WHERE id = $1
	`, id, at)
	if err != nil {
		return mapStoreError("failed to record login", err)
	}

	return nil
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, id, firstName, lastName string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET first_name = $2, last_name = $3, updated_at = now()
		WHERE id = $1
	`, id, firstName, lastName)
	if err != nil {
		return mapStoreError("failed to update profile", err)
	}

	return nil
}

func (r *PostgresRepository) UpdateRole(ctx context.Context, id, role string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET role = $2, updated_at = now()
		WHERE id = $1
	`, id, role)
	if err != nil {
		return mapStoreError("failed to update role", err)
	}

	return nil
}

func (r *PostgresRepository) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2;`, userColumns)
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, mapStoreError("failed to list users", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID, &user.Email, &user.PasswordHash, &user.Role,
			&user.FirstName, &user.LastName,
			&user.SubscriptionPlan, &user.SubscriptionStatus, &user.IsVerified,
			&user.FailedAttempts, &user.LockedUntil, &user.LastLoginAt,
			&user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}

	return users, rows.Err()
}

// mapStoreError tags connectivity failures with ErrStoreUnavailable so the
// authenticator can branch to its degraded path. Everything else — SQL
// errors, scan failures, caller cancellation — stays plain: the store
// answered (or the caller gave up), so it is not unreachable.
func mapStoreError(msg string, err error) error {
	if isConnectivityError(err) {
		return fmt.Errorf("%s: %w: %w", msg, autherror.ErrStoreUnavailable, err)
	}

	return fmt.Errorf("%s: %w", msg, err)
}

func isConnectivityError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
