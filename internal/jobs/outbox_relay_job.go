package jobs

import (
	"context"
	"log/slog"
	"time"

	"broker/internal/core/application/services"
	"broker/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// OutboxRelayJob drains the notification outbox. It polls for pending
// messages every second and hands each one to the dispatcher, so
// notifications enqueued inside a command transaction go out shortly after
// commit without the command ever touching the push transport.
type OutboxRelayJob struct {
	dispatcher  *services.NotificationDispatcher
	uowFactory  ports.UnitOfWorkFactory
	batchSize   int
	maxAttempts int
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewOutboxRelayJob creates the relay. batchSize bounds how many messages
// one tick processes; maxAttempts bounds how often a failing message is
// retried before it is parked as failed.
func NewOutboxRelayJob(
	dispatcher *services.NotificationDispatcher,
	uowFactory ports.UnitOfWorkFactory,
	batchSize int,
	maxAttempts int,
	logger *slog.Logger,
) *OutboxRelayJob {
	return &OutboxRelayJob{
		dispatcher:  dispatcher,
		uowFactory:  uowFactory,
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
		// A slow dispatch can outlast the one-second schedule. Overlapping
		// ticks are skipped so a message is never polled twice in-process.
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "outbox_relay_job"),
	}
}

// Start begins polling the outbox every second.
func (j *OutboxRelayJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		if err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Outbox relay tick failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started (running every second)")
	return nil
}

// Stop stops the relay.
func (j *OutboxRelayJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}

// RunOnce processes a single batch of pending messages. Each message is
// claimed before it is dispatched, so concurrent relays never write the same
// message's notification records twice. A dispatch error on one message
// never blocks the rest of the batch: the message is marked for retry and
// the relay moves on.
func (j *OutboxRelayJob) RunOnce(ctx context.Context) error {
	outbox := j.uowFactory.Create().OutboxRepository()

	messages, err := outbox.GetPending(ctx, j.batchSize)
	if err != nil {
		return err
	}

	for _, message := range messages {
		claimed, claimErr := outbox.Claim(ctx, message.ID)
		if claimErr != nil {
			j.logger.ErrorContext(ctx, "Failed to claim outbox message",
				"message_id", message.ID.String(), "error", claimErr)
			continue
		}
		if !claimed {
			// Another relay got there first.
			continue
		}

		result, dispatchErr := j.dispatcher.Dispatch(ctx, message)
		if dispatchErr != nil {
			j.logger.WarnContext(ctx, "Outbox message dispatch failed",
				"message_id", message.ID.String(),
				"kind", string(message.Kind),
				"error", dispatchErr,
			)
			if markErr := outbox.MarkFailed(ctx, message.ID, j.maxAttempts); markErr != nil {
				j.logger.ErrorContext(ctx, "Failed to mark outbox message as failed",
					"message_id", message.ID.String(), "error", markErr)
			}
			continue
		}

		if markErr := outbox.MarkSent(ctx, message.ID, time.Now().UTC()); markErr != nil {
			j.logger.ErrorContext(ctx, "Failed to mark outbox message as sent",
				"message_id", message.ID.String(), "error", markErr)
			continue
		}

		j.logger.InfoContext(ctx, "Outbox message dispatched",
			"message_id", message.ID.String(),
			"kind", string(message.Kind),
			"recipients", result.Recipients,
			"delivered", result.Delivered,
			"failed", result.Failed,
		)
	}

	return nil
}
