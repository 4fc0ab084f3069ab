package worker

import (
	"context"

	"github.com/silver-jubilee/backend/internal/config"
	emailProvider "github.com/silver-jubilee/backend/pkg/email"
)

type Workers struct {
	EmailSender EmailSender
}

type Deps struct {
	EmailProvider emailProvider.Sender
	Config        *config.Config
}

type EmailSender interface {
	SendStatusDecisionEmail(ctx context.Context, email, name, status string) error
}

func NewWorkers(deps Deps) *Workers {
	return &Workers{
		EmailSender: newEmailSender(deps.EmailProvider, deps.Config.Email),
	}
}
