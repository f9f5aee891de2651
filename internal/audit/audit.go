// Package audit records admin-gated mutations. Recording is fire-and-forget:
// it must never block or fail the primary response.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
)

type Entry struct {
	ActorID    string
	ActorEmail string
	Action     string
	Resource   string
	ResourceID string
	Outcome    string
	IPAddress  string
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Logger struct {
	db  execer
	log *logrus.Logger
}

func NewLogger(db execer, log *logrus.Logger) *Logger {
	return &Logger{db: db, log: log}
}

// Record persists the entry on a detached goroutine. Failures are logged
// and dropped.
func (l *Logger) Record(entry Entry) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_, err := l.db.Exec(ctx, `
			INSERT INTO audit_logs (id, actor_id, actor_email, action, resource, resource_id, outcome, ip_address, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		`, uuid.NewString(), entry.ActorID, entry.ActorEmail, entry.Action,
			entry.Resource, entry.ResourceID, entry.Outcome, entry.IPAddress)
		if err != nil {
			l.log.WithError(err).Warn("failed to write audit log")
			return
		}

		l.log.WithFields(logrus.Fields{
			"action":   entry.Action,
			"resource": entry.Resource,
			"actor_id": entry.ActorID,
		}).Info("audit log created")
	}()
}
