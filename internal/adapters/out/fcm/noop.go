package fcm

import "context"

// NoopSender drops every push. Used when no messaging credentials are
// configured; durable notification records are still written upstream.
type NoopSender struct{}

func (NoopSender) Send(context.Context, string, string, string, map[string]string) error {
	return nil
}

func (NoopSender) SendMulticast(context.Context, []string, string, string, map[string]string) ([]string, error) {
	return nil, nil
}
