// Package store persists validation outcomes in Redis.
//
// Outcomes are stored as JSON keyed by run id with a configurable TTL and
// indexed per subject node, so callers can pull the recent validation
// history of a record. Accept/reject notifications fan out on a pub/sub
// channel for external listeners (UIs, audit pipelines); the SDK itself
// never consumes them.
package store

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/typeforge/sdk/policy"
)

// outcomeChannel is the pub/sub channel outcome notifications fan out on.
const outcomeChannel = "typeforge:outcomes"

// Notification is the compact pub/sub form of an outcome.
type Notification struct {
	RunID     string `json:"run_id"`
	SubjectID string `json:"subject_id"`
	Task      string `json:"task"`
	Accepted  bool   `json:"accepted"`
}

// Store defines the interface for persisting and retrieving validation
// outcomes.
type Store interface {
	// SaveOutcome persists an outcome under its run id and indexes it by
	// subject, then publishes a notification.
	SaveOutcome(ctx context.Context, outcome *policy.Outcome) error

	// GetOutcome retrieves an outcome by run id. Returns (nil, nil) when
	// the run is unknown or expired.
	GetOutcome(ctx context.Context, runID string) (*policy.Outcome, error)

	// ListRuns returns the run ids recorded for a subject node, most
	// recent first.
	ListRuns(ctx context.Context, subjectID string) ([]string, error)

	// Subscribe creates a subscription to outcome notifications.
	// The returned channel closes when the context is cancelled.
	Subscribe(ctx context.Context) (<-chan Notification, error)

	// Close closes the connection.
	Close() error
}

// Options configures the Redis connection and retention.
type Options struct {
	// URL is the Redis connection string (e.g. "redis://localhost:6379").
	URL string

	// TLS configuration for secure connections.
	TLS *tls.Config

	// TTL is how long outcomes are retained. Defaults to 24h.
	TTL time.Duration

	// ConnectTimeout is the maximum time to wait for connection
	// establishment.
	ConnectTimeout time.Duration
}

// RedisStore implements Store using go-redis/v9.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed outcome store with the given options.
func NewRedisStore(opts Options) (*RedisStore, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.TTL == 0 {
		opts.TTL = 24 * time.Hour
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	redisOpts.TLSConfig = opts.TLS
	redisOpts.DialTimeout = opts.ConnectTimeout

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client, ttl: opts.TTL}, nil
}

// SaveOutcome persists the outcome JSON under report:<run-id> with the
// configured TTL, pushes the run id onto the subject's run index, and
// publishes a notification.
func (s *RedisStore) SaveOutcome(ctx context.Context, outcome *policy.Outcome) error {
	if outcome == nil || outcome.RunID == "" {
		return fmt.Errorf("outcome with a run id is required")
	}

	data, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("failed to marshal outcome: %w", err)
	}

	reportKey := fmt.Sprintf("report:%s", outcome.RunID)
	if err := s.client.Set(ctx, reportKey, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store outcome %s: %w", outcome.RunID, err)
	}

	if outcome.SubjectID != "" {
		indexKey := fmt.Sprintf("subject:%s:runs", outcome.SubjectID)
		if err := s.client.LPush(ctx, indexKey, outcome.RunID).Err(); err != nil {
			return fmt.Errorf("failed to index outcome %s: %w", outcome.RunID, err)
		}
		if err := s.client.Expire(ctx, indexKey, s.ttl).Err(); err != nil {
			return fmt.Errorf("failed to set index TTL: %w", err)
		}
	}

	note, err := json.Marshal(Notification{
		RunID:     outcome.RunID,
		SubjectID: outcome.SubjectID,
		Task:      outcome.Task.String(),
		Accepted:  outcome.Accepted,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	if err := s.client.Publish(ctx, outcomeChannel, note).Err(); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	return nil
}

// GetOutcome retrieves an outcome by run id.
func (s *RedisStore) GetOutcome(ctx context.Context, runID string) (*policy.Outcome, error) {
	reportKey := fmt.Sprintf("report:%s", runID)
	data, err := s.client.Get(ctx, reportKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get outcome %s: %w", runID, err)
	}

	var outcome policy.Outcome
	if err := json.Unmarshal(data, &outcome); err != nil {
		return nil, fmt.Errorf("failed to unmarshal outcome %s: %w", runID, err)
	}

	return &outcome, nil
}

// ListRuns returns the run ids recorded for a subject, most recent first.
func (s *RedisStore) ListRuns(ctx context.Context, subjectID string) ([]string, error) {
	indexKey := fmt.Sprintf("subject:%s:runs", subjectID)
	runs, err := s.client.LRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list runs for %s: %w", subjectID, err)
	}
	return runs, nil
}

// Subscribe creates a subscription to outcome notifications.
func (s *RedisStore) Subscribe(ctx context.Context) (<-chan Notification, error) {
	pubsub := s.client.Subscribe(ctx, outcomeChannel)

	if _, err := pubsub.Receive(ctx); err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", outcomeChannel, err)
	}

	notes := make(chan Notification)

	go func() {
		defer close(notes)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var note Notification
				if err := json.Unmarshal([]byte(msg.Payload), &note); err != nil {
					continue
				}

				select {
				case notes <- note:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return notes, nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
