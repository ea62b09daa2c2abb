// Package redisnotify publishes lifecycle notifications on a Redis channel.
// A separate delivery service renders the templates and sends emails and
// push messages; this service only emits events.
package redisnotify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"devis/internal/core/domain/model/notification"
	"devis/internal/pkg/errs"

	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"
)

// Event is the JSON document published for each notification.
type Event struct {
	ID          string            `json:"id"`
	Kind        string            `json:"kind"`
	Audience    string            `json:"audience"`
	RecipientID string            `json:"recipientId,omitempty"`
	RequestID   string            `json:"requestId"`
	Context     map[string]string `json:"context,omitempty"`
	OccurredAt  time.Time         `json:"occurredAt"`
}

// Config configures the Redis connection.
type Config struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
}

// NewClient connects to a single Redis node and checks it answers.
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("no Redis address provided")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// Notifier implements ports.Notifier.
type Notifier struct {
	client  redis.UniversalClient
	channel string
	clock   func() time.Time
	logger  *slog.Logger
}

// NewNotifier publishes on channel through client. Every event gets a ULID
// and an occurredAt taken from clock.
//
// Example:
//
//	client, err := redisnotify.NewClient(ctx, cfg.Redis())
//	if err != nil {
//	    return err
//	}
//	notifier := redisnotify.NewNotifier(client, "devis.notifications", time.Now, logger)
func NewNotifier(client redis.UniversalClient, channel string, clock func() time.Time, logger *slog.Logger) *Notifier {
	return &Notifier{
		client:  client,
		channel: channel,
		clock:   clock,
		logger:  logger.With("component", "redis-notifier"),
	}
}

// Notify publishes n. Delivery is at most once per subscriber; a message
// published while no subscriber listens is dropped and only logged.
func (p *Notifier) Notify(ctx context.Context, n notification.Notification) error {
	event := Event{
		ID:         ulid.Make().String(),
		Kind:       string(n.Kind()),
		Audience:   string(n.Recipient().Audience),
		RequestID:  n.RequestID().String(),
		Context:    n.Context(),
		OccurredAt: p.clock().UTC(),
	}
	if id := n.Recipient().ID; id != nil {
		event.RecipientID = id.String()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	receivers, err := p.client.Publish(ctx, p.channel, payload).Result()
	if err != nil {
		return errs.NewDependencyFailureErrorWithCause("redis", err)
	}
	if receivers == 0 {
		p.logger.WarnContext(ctx, "notification published without subscribers",
			"event_id", event.ID, "kind", event.Kind, "request_id", event.RequestID)
	}
	return nil
}
