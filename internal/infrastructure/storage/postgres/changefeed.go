package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"junkshop/pkg/logger"
)

// ChangeEvent is one row-change notification from the database. Triggers on
// the register and catalog tables NOTIFY with a JSON payload of this shape.
type ChangeEvent struct {
	Table          string `json:"table"`
	Op             string `json:"op"`
	OrganizationID string `json:"organizationId,omitempty"`
	Branch         string `json:"branch,omitempty"`
	Item           string `json:"item,omitempty"`
}

// ChangeHandler consumes change events. Handlers must be idempotent: the
// feed redelivers after reconnects and deduplicates nothing.
type ChangeHandler func(ctx context.Context, ev ChangeEvent)

// ChangeFeed listens on a NOTIFY channel and fans events out to a handler.
// Consumers recompute aggregates from scratch on every event, so a dropped
// notification costs staleness until the next event, never correctness.
type ChangeFeed struct {
	pool    *Pool
	channel string
	handler ChangeHandler

	// ReconnectDelay spaces out reconnect attempts after a lost listen
	// connection.
	ReconnectDelay time.Duration
}

// NewChangeFeed creates a feed over the given NOTIFY channel.
func NewChangeFeed(pool *Pool, channel string, handler ChangeHandler) *ChangeFeed {
	return &ChangeFeed{
		pool:           pool,
		channel:        channel,
		handler:        handler,
		ReconnectDelay: 5 * time.Second,
	}
}

// Run blocks, listening for notifications until ctx is cancelled. Connection
// loss triggers a reconnect, not an exit.
func (f *ChangeFeed) Run(ctx context.Context) error {
	for {
		err := f.listen(ctx)
		if err == nil || errors.Is(err, context.Canceled) {
			return ctx.Err()
		}

		logger.Warn(ctx, "change feed connection lost",
			"channel", f.channel,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(f.ReconnectDelay):
		}
	}
}

func (f *ChangeFeed) listen(ctx context.Context) error {
	conn, err := f.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire listen connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+f.channel); err != nil {
		return fmt.Errorf("listen %s: %w", f.channel, err)
	}

	logger.Info(ctx, "change feed listening", "channel", f.channel)

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		var ev ChangeEvent
		if err := json.Unmarshal([]byte(notification.Payload), &ev); err != nil {
			logger.Warn(ctx, "change feed payload not parseable",
				"channel", f.channel,
				"payload", notification.Payload,
			)
			continue
		}

		f.handler(ctx, ev)
	}
}
