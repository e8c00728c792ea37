package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/adventure-engine/pkg/state"
)

const (
	DefaultRecent  = 100
	DefaultTimeout = 2 * time.Second
)

// Broadcaster publishes a game's events to Redis Pub/Sub and keeps the most
// recent ones in a capped list for spectators who join late.
type Broadcaster struct {
	client  *Client
	gameID  string
	logger  *slog.Logger
	recent  int64
	timeout time.Duration
}

var _ state.Observer = (*Broadcaster)(nil)

// Option configures a Broadcaster.
type Option func(*Broadcaster)

// WithRecent sets how many events the recent list keeps.
func WithRecent(n int) Option {
	return func(b *Broadcaster) { b.recent = int64(n) }
}

// WithTimeout bounds each publish made from EventAppended.
func WithTimeout(d time.Duration) Option {
	return func(b *Broadcaster) { b.timeout = d }
}

// NewBroadcaster creates a broadcaster for one game session.
func NewBroadcaster(client *Client, gameID string, logger *slog.Logger, opts ...Option) *Broadcaster {
	b := &Broadcaster{
		client:  client,
		gameID:  gameID,
		logger:  logger.With("game_id", gameID),
		recent:  DefaultRecent,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Publish sends ev to the game's channel and appends it to the recent list.
func (b *Broadcaster) Publish(ctx context.Context, ev state.Event) error {
	msg := NewMessage(b.gameID, ev)
	data, err := json.Marshal(msg)
	if err != nil {
		b.logger.Error("Failed to marshal event", "error", err, "seq", ev.Seq)
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	channel := eventsChannel(b.gameID)
	key := recentKey(b.gameID)
	_, err = b.client.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Publish(ctx, channel, data)
		pipe.RPush(ctx, key, data)
		pipe.LTrim(ctx, key, -b.recent, -1)
		return nil
	})
	if err != nil {
		b.logger.Error("Failed to publish event", "error", err, "channel", channel)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	b.logger.Debug("Event published",
		"channel", channel,
		"seq", msg.Seq,
		"kind", msg.Kind.String(),
	)
	return nil
}

// EventAppended publishes ev. Failures are logged and never reach the game.
func (b *Broadcaster) EventAppended(ev state.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()
	_ = b.Publish(ctx, ev)
}

// Recent returns the kept events of gameID, oldest first.
func (c *Client) Recent(ctx context.Context, gameID string) ([]Message, error) {
	raw, err := c.rdb.LRange(ctx, recentKey(gameID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read recent events: %w", err)
	}
	out := make([]Message, 0, len(raw))
	for _, r := range raw {
		var m Message
		if err := json.Unmarshal([]byte(r), &m); err != nil {
			c.logger.Warn("Skipping malformed event", "error", err)
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// Watch calls handle for the recent events of gameID and then for every
// event published until ctx is done.
func (c *Client) Watch(ctx context.Context, gameID string, handle func(Message)) error {
	sub := c.rdb.Subscribe(ctx, eventsChannel(gameID))
	defer sub.Close()
	// Subscribe before reading the backlog so nothing falls in between.
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	backlog, err := c.Recent(ctx, gameID)
	if err != nil {
		return err
	}
	last := -1
	for _, m := range backlog {
		handle(m)
		last = m.Seq
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case rm, ok := <-ch:
			if !ok {
				return nil
			}
			var m Message
			if err := json.Unmarshal([]byte(rm.Payload), &m); err != nil {
				c.logger.Warn("Skipping malformed event", "error", err)
				continue
			}
			if m.Seq <= last {
				continue
			}
			handle(m)
		}
	}
}
