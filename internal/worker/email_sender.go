package worker

import (
	"context"
	"fmt"

	"github.com/silver-jubilee/backend/internal/config"
	emailProvider "github.com/silver-jubilee/backend/pkg/email"
)

type emailSender struct {
	sender emailProvider.Sender
	config config.EmailConfig
}

func newEmailSender(
	sender emailProvider.Sender,
	config config.EmailConfig,
) *emailSender {
	return &emailSender{
		sender: sender,
		config: config,
	}
}

type statusEmailInput struct {
	Name   string
	Status string
}

func (s *emailSender) SendStatusDecisionEmail(ctx context.Context, email, name, status string) error {
	subject := "Your Silver Jubilee registration was " + status

	templateInput := statusEmailInput{Name: name, Status: status}
	sendInput := emailProvider.SendEmailInput{Subject: subject, To: email}

	if err := sendInput.GenerateBodyFromHTML(s.config.Templates.StatusDecision, templateInput); err != nil {
		return fmt.Errorf("generate email failed: %w", err)
	}

	if err := s.sender.Send(sendInput); err != nil {
		return fmt.Errorf("send email failed: %w", err)
	}

	return nil
}
