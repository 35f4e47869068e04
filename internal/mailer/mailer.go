// Package mailer is the outbound notification channel. Send failures are
// reported to the caller, which logs them; they never surface in a flow's
// response.
package mailer

//go:generate mockgen -destination=../mocks/mock_mailer.go -package=mocks github.com/andrianpratama/member-auth-service/internal/mailer Mailer

import "context"

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
