package client

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/silver-jubilee/backend/internal/domain"
	"github.com/silver-jubilee/backend/internal/queue/task"
)

// Enqueuer hands status-decision notifications to the asynq queue so the
// admin mutation request never waits on SMTP.
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(opt asynq.RedisConnOpt) *Enqueuer {
	return &Enqueuer{
		client: asynq.NewClient(opt),
	}
}

func (e *Enqueuer) NotifyStatusDecision(ctx context.Context, email, name string, status domain.RegistrationStatus) error {
	t, err := task.NewStatusEmailTask(email, name, string(status))
	if err != nil {
		return fmt.Errorf("build status email task failed: %w", err)
	}

	if _, err := e.client.EnqueueContext(ctx, t); err != nil {
		return fmt.Errorf("enqueue status email task failed: %w", err)
	}

	return nil
}

func (e *Enqueuer) Close() error {
	return e.client.Close()
}
