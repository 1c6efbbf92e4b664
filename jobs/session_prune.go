package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/doma17/SessionSecurity/internal/auth"
)

// SessionPruneJob deletes expired session audit rows. The live sessions in
// Redis expire on their own TTL; this only keeps the audit table from
// growing without bound.
type SessionPruneJob struct {
	sessions auth.SessionRepository
	logger   *slog.Logger
}

// NewSessionPruneJob constructs the job.
func NewSessionPruneJob(sessions auth.SessionRepository, logger *slog.Logger) *SessionPruneJob {
	return &SessionPruneJob{sessions: sessions, logger: logger}
}

// Handle processes TaskSessionPrune tasks.
func (j *SessionPruneJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload SessionPrunePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	removed, err := j.sessions.DeleteExpiredSessions(ctx, time.Now())
	if err != nil {
		return err
	}
	if j.logger != nil {
		j.logger.Info("pruned expired sessions", slog.Int64("removed", removed))
	}
	return nil
}
