package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/silver-jubilee/backend/internal/queue/task"
	"github.com/silver-jubilee/backend/internal/worker"
)

type statusEmailProcessor struct {
	workers *worker.Workers
}

func NewStatusEmailProcessor(workers *worker.Workers) *statusEmailProcessor {
	return &statusEmailProcessor{
		workers: workers,
	}
}

func (p *statusEmailProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var data task.StatusEmail
	err := json.Unmarshal(t.Payload(), &data)
	if err != nil {
		return fmt.Errorf("process status email task json unmarshal failed: %w", err)
	}

	if err = p.workers.EmailSender.SendStatusDecisionEmail(ctx, data.Email, data.Name, data.Status); err != nil {
		return fmt.Errorf("send status decision email failed: %w", err)
	}

	return nil
}
