package mailer

import (
	"context"
	"log"

	"github.com/google/uuid"
)

// ConsoleMailer logs messages instead of delivering them. Used in development
// and in environments without SES credentials.
type ConsoleMailer struct{}

func NewConsoleMailer() *ConsoleMailer {
	return &ConsoleMailer{}
}

func (m *ConsoleMailer) Send(_ context.Context, to, subject, body string) error {
	log.Printf("mail %s to=%s subject=%q body=%q", uuid.NewString(), to, subject, body)
	return nil
}
