// Package mailer defines the outbound email boundary. Delivery transport
// is a collaborator, not part of this core: everything behind Send is
// someone else's problem.
package mailer

import (
	"context"
	"log/slog"
)

// Mailer sends a single message. Implementations must not block the
// request beyond the send itself; retries belong to the transport.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogMailer is the development-mode mailer used when no transport
// credentials are configured. It logs the message for operator
// visibility and always reports success, so flows that send mail (like
// password reset) behave identically with or without a real transport.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, to, subject, body string) error {
	slog.InfoContext(ctx, "outbound email (dev mode, not delivered)",
		"to", to,
		"subject", subject,
		"body", body,
	)
	return nil
}
