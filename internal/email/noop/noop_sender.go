package noop

import (
	"context"
	"log"

	"vatledger/internal/email"
	"vatledger/internal/port"
)

type noopSender struct{}

// NewNoopSender creates an EmailSender that logs confirmations instead of sending them.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendOrderConfirmation(_ context.Context, msg *port.OrderConfirmation) error {
	log.Printf("[NOOP EMAIL] %q to %s:\n%s", email.Subject(msg), msg.ToEmail, email.TextBody(msg))
	return nil
}
