package mailer

import "context"

// Message is a single outbound email.
type Message struct {
	To       []string
	Subject  string
	HTMLBody string
}

// Mailer delivers email messages. Send blocks until the provider accepts or
// rejects the message; there is no queueing or delivery confirmation beyond
// the returned error.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
