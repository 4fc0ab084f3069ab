package asynqserver

import (
	"github.com/hibiken/asynq"

	"github.com/silver-jubilee/backend/internal/config"
	"github.com/silver-jubilee/backend/internal/queue/processor"
	"github.com/silver-jubilee/backend/internal/queue/task"
	"github.com/silver-jubilee/backend/internal/worker"
)

func New(cfg config.Cache, workers *worker.Workers) (*asynq.Server, *asynq.ServeMux) {
	mux, queues := getQueues(workers)
	srv := asynq.NewServer(
		RedisOptions(cfg),
		asynq.Config{
			Concurrency: 10,
			LogLevel:    asynq.ErrorLevel,
			Queues:      queues,
		},
	)

	return srv, mux
}

func RedisOptions(cfg config.Cache) asynq.RedisConnOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
	}
}

func getQueues(workers *worker.Workers) (*asynq.ServeMux, map[string]int) {
	mux := asynq.NewServeMux()
	mux.Handle(task.StatusEmailTaskName, processor.NewStatusEmailProcessor(workers))
	queues := map[string]int{
		task.StatusEmailQueueName: 1,
	}
	return mux, queues
}
