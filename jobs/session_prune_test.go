package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
)

type stubSessionRepo struct {
	removed int64
	err     error
	calls   int
}

func (s *stubSessionRepo) CreateSession(ctx context.Context, id, username string, expiresAt time.Time, ip, ua string) error {
	return nil
}

func (s *stubSessionRepo) DeleteSession(ctx context.Context, id string) error {
	return nil
}

func (s *stubSessionRepo) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	s.calls++
	return s.removed, s.err
}

func TestSessionPruneHandle(t *testing.T) {
	repo := &stubSessionRepo{removed: 3}
	job := NewSessionPruneJob(repo, nil)

	task, err := NewSessionPruneTask(time.Now().UTC())
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	if err := job.Handle(context.Background(), task); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if repo.calls != 1 {
		t.Fatalf("expected one delete call, got %d", repo.calls)
	}
}

func TestSessionPruneHandleRepoError(t *testing.T) {
	repo := &stubSessionRepo{err: errors.New("db down")}
	job := NewSessionPruneJob(repo, nil)

	task, err := NewSessionPruneTask(time.Now().UTC())
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	if err := job.Handle(context.Background(), task); err == nil {
		t.Fatal("expected the repository error to propagate for retry")
	}
}

func TestSessionPruneHandleBadPayload(t *testing.T) {
	job := NewSessionPruneJob(&stubSessionRepo{}, nil)
	task := asynq.NewTask(TaskSessionPrune, []byte("{not json"))

	err := job.Handle(context.Background(), task)
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("err = %v, want asynq.SkipRetry", err)
	}
}
