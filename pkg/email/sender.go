package email

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"regexp"
)

type SendEmailInput struct {
	To      string
	Subject string
	Body    string
}

type Sender interface {
	Send(input SendEmailInput) error
}

var emailRegexp = regexp.MustCompile(`^\S+@\S+\.\S+$`)

func IsEmailValid(address string) bool {
	return emailRegexp.MatchString(address)
}

func (e *SendEmailInput) GenerateBodyFromHTML(templateFileName string, data interface{}) error {
	t, err := template.ParseFiles("./templates/" + templateFileName)
	if err != nil {
		return fmt.Errorf("parse file failed: %w", err)
	}

	buf := new(bytes.Buffer)
	if err = t.Execute(buf, data); err != nil {
		return fmt.Errorf("email data injection failed: %w", err)
	}

	e.Body = buf.String()

	return nil
}

func (e *SendEmailInput) Validate() error {
	if e.To == "" {
		return errors.New("empty to")
	}

	if e.Subject == "" || e.Body == "" {
		return errors.New("empty subject/body")
	}

	if !IsEmailValid(e.To) {
		return errors.New("invalid to email")
	}

	return nil
}
