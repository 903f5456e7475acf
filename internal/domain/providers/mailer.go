package providers

import (
	"context"
)

// Mailer delivers plain-text email.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, body string) error
}
