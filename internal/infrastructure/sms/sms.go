package sms

import "context"

// Sender delivers a single text message to a destination phone number.
// Implementations must not log message bodies: verification codes travel
// through here in plaintext.
type Sender interface {
	Send(ctx context.Context, to string, body string) error
}
