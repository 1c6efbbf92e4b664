// Package jobs hosts background maintenance tasks processed by Asynq.
package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskSessionPrune removes expired session audit rows.
	TaskSessionPrune = "sessions:prune"
)

// SessionPrunePayload carries scheduling metadata.
type SessionPrunePayload struct {
	ScheduledFor time.Time `json:"scheduled_for"`
}

// NewSessionPruneTask constructs an Asynq task for session pruning.
func NewSessionPruneTask(at time.Time) (*asynq.Task, error) {
	body, err := json.Marshal(SessionPrunePayload{ScheduledFor: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSessionPrune, body, asynq.Queue(QueueDefault)), nil
}
