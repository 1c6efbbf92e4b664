package shared

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditLog represents a record stored in audit_logs.
type AuditLog struct {
	Actor  string
	Action string
	Meta   map[string]any
	At     time.Time
}

// AuditLogger writes security events (registrations, logouts) into
// audit_logs. Login sessions are tracked separately in the sessions table.
type AuditLogger struct {
	pool *pgxpool.Pool
}

// NewAuditLogger returns a new AuditLogger.
func NewAuditLogger(pool *pgxpool.Pool) *AuditLogger {
	return &AuditLogger{pool: pool}
}

// Record persists the log entry. A nil receiver is a no-op so callers can
// run without auditing wired.
func (l *AuditLogger) Record(ctx context.Context, log AuditLog) error {
	if l == nil {
		return nil
	}
	if log.Actor == "" || log.Action == "" {
		return errors.New("audit log requires actor and action")
	}
	metaJSON, err := json.Marshal(log.Meta)
	if err != nil {
		return err
	}
	at := log.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	_, err = l.pool.Exec(ctx,
		`INSERT INTO audit_logs (actor, action, meta, occurred_at) VALUES ($1, $2, $3, $4)`,
		log.Actor, log.Action, metaJSON, at)
	return err
}
