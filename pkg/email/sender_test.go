package email_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silver-jubilee/backend/pkg/email"
	mock_email "github.com/silver-jubilee/backend/pkg/email/mock"
)

func TestIsEmailValid(t *testing.T) {
	assert.True(t, email.IsEmailValid("alice@example.com"))
	assert.False(t, email.IsEmailValid("alice@example"))
	assert.False(t, email.IsEmailValid("not an email"))
	assert.False(t, email.IsEmailValid(""))
}

func TestSendEmailInputValidate(t *testing.T) {
	input := email.SendEmailInput{
		To:      "alice@example.com",
		Subject: "Your registration",
		Body:    "<p>hi</p>",
	}
	require.NoError(t, input.Validate())

	missingTo := input
	missingTo.To = ""
	assert.Error(t, missingTo.Validate())

	missingSubject := input
	missingSubject.Subject = ""
	assert.Error(t, missingSubject.Validate())

	badAddress := input
	badAddress.To = "not an email"
	assert.Error(t, badAddress.Validate())
}

func TestMockSender(t *testing.T) {
	sender := new(mock_email.EmailSender)
	input := email.SendEmailInput{
		To:      "alice@example.com",
		Subject: "Your registration",
		Body:    "<p>hi</p>",
	}
	sender.On("Send", input).Return(nil)

	require.NoError(t, sender.Send(input))
	sender.AssertExpectations(t)
}
