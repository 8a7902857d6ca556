package ports

import "context"

// PushSender abstracts the push notification transport.
// Implementations talk to a provider such as Firebase Cloud Messaging;
// tests substitute a fake. Transport failures are tolerated upstream, the
// durable notification record is written regardless.
type PushSender interface {
	// Send delivers one push message to a single device token.
	Send(ctx context.Context, token string, title string, body string, payload map[string]string) error

	// SendMulticast delivers one push message to many device tokens in a
	// single provider call. It returns the tokens that failed; a non-nil
	// error means the whole batch call failed and individual sends should
	// be attempted instead.
	SendMulticast(ctx context.Context, tokens []string, title string, body string, payload map[string]string) (failed []string, err error)
}
