// Package fcm implements the push transport over Firebase Cloud Messaging.
package fcm

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Sender delivers push notifications through the Firebase Admin SDK.
// It implements ports.PushSender.
type Sender struct {
	client *messaging.Client
}

// NewSender initializes the Firebase app from a service account credentials
// file and returns a ready messaging sender.
func NewSender(ctx context.Context, credentialsPath string) (*Sender, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase messaging: %w", err)
	}

	return &Sender{client: client}, nil
}

// Send delivers one push message to a single device token.
func (s *Sender) Send(ctx context.Context, token, title, body string, payload map[string]string) error {
	_, err := s.client.Send(ctx, &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: payload,
	})
	return err
}

// SendMulticast delivers one push message to many device tokens in a single
// batched call. The returned slice holds the tokens whose sends failed; a
// non-nil error means the batch call itself failed and nothing was delivered.
func (s *Sender) SendMulticast(
	ctx context.Context,
	tokens []string,
	title, body string,
	payload map[string]string,
) ([]string, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	response, err := s.client.SendEachForMulticast(ctx, &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: payload,
	})
	if err != nil {
		return nil, err
	}

	var failed []string
	for i, result := range response.Responses {
		if !result.Success {
			failed = append(failed, tokens[i])
		}
	}

	return failed, nil
}
