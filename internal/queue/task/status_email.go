package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	StatusEmailTaskName  = "statusEmailTask"
	StatusEmailQueueName = "statusEmailQueue"
)

type StatusEmail struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

func NewStatusEmailTask(email, name, status string) (*asynq.Task, error) {
	var data StatusEmail
	data.Email = email
	data.Name = name
	data.Status = status

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	return asynq.NewTask(
		StatusEmailTaskName,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue(StatusEmailQueueName),
	), nil
}
