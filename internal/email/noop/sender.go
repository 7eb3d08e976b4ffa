package noop

import (
	"context"
	"log"

	"github.com/google/uuid"

	"recibo/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs messages to stdout.
// Used in development where no SES credentials are configured.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) Send(_ context.Context, msg port.EmailMessage) (string, error) {
	log.Printf("[NOOP EMAIL] to=%s subject=%q", msg.To, msg.Subject)
	return "noop-" + uuid.New().String(), nil
}
