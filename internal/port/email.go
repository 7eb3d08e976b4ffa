package port

import "context"

// EmailMessage is a fully rendered outbound email.
type EmailMessage struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// EmailSender defines the contract for outbound email delivery. Send returns
// the provider message id when available.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) (messageID string, err error)
}
