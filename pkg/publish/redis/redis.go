// Package redis mirrors animation snapshots to Redis.
//
// Every published snapshot is stored under a key, so late readers can fetch
// the current state, and published on a channel for live readers. Both
// happen in one pipeline round trip.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	backend "github.com/redis/go-redis/v9"

	apperr "github.com/matzehuels/autotype/pkg/errors"
	"github.com/matzehuels/autotype/pkg/observability"
	"github.com/matzehuels/autotype/pkg/record"
)

// Defaults for key and channel names.
const (
	DefaultKey     = "autotype:snapshot"
	DefaultChannel = "autotype:snapshots"
)

// Publisher writes snapshots to Redis. It implements publish.Publisher.
type Publisher struct {
	client  backend.UniversalClient
	key     string
	channel string
	ttl     time.Duration
	logger  *log.Logger
}

// Option configures a [Publisher].
type Option func(*Publisher)

// WithKey sets the key holding the latest snapshot.
func WithKey(key string) Option {
	return func(p *Publisher) {
		if key != "" {
			p.key = key
		}
	}
}

// WithChannel sets the pub/sub channel snapshots are published on.
func WithChannel(channel string) Option {
	return func(p *Publisher) {
		if channel != "" {
			p.channel = channel
		}
	}
}

// WithTTL sets an expiry on the snapshot key. Zero keeps it forever.
func WithTTL(ttl time.Duration) Option {
	return func(p *Publisher) { p.ttl = ttl }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(p *Publisher) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a publisher from connection options.
func New(opts *backend.Options, options ...Option) *Publisher {
	return NewFromClient(backend.NewClient(opts), options...)
}

// NewFromClient creates a publisher using an existing client.
func NewFromClient(client backend.UniversalClient, options ...Option) *Publisher {
	p := &Publisher{
		client:  client,
		key:     DefaultKey,
		channel: DefaultChannel,
		logger:  log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Key returns the key holding the latest snapshot.
func (p *Publisher) Key() string { return p.key }

// Channel returns the pub/sub channel.
func (p *Publisher) Channel() string { return p.channel }

// Ping checks the connection.
func (p *Publisher) Ping(ctx context.Context) error {
	if err := p.client.Ping(ctx).Err(); err != nil {
		return apperr.Wrap(apperr.ErrCodeNetwork, err, "redis ping")
	}
	return nil
}

// Publish stores snap as the latest snapshot and publishes it.
func (p *Publisher) Publish(ctx context.Context, snap *record.Record) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	pipe := p.client.Pipeline()
	pipe.Set(ctx, p.key, data, p.ttl)
	pipe.Publish(ctx, p.channel, data)
	_, err = pipe.Exec(ctx)

	observability.Stream().OnPublish(ctx, "redis", len(data), err)
	if err != nil {
		p.logger.Warn("redis publish failed", "key", p.key, "error", err)
		return apperr.Wrap(apperr.ErrCodeNetwork, err, "publish snapshot")
	}
	return nil
}

// Latest reads the latest snapshot back. It returns an error with
// [apperr.ErrCodeNotFound] if nothing has been published or the key expired.
func (p *Publisher) Latest(ctx context.Context) ([]byte, error) {
	data, err := p.client.Get(ctx, p.key).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, apperr.New(apperr.ErrCodeNotFound, "no snapshot at %s", p.key)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeNetwork, err, "get %s", p.key)
	}
	return data, nil
}

// Close closes the underlying client.
func (p *Publisher) Close() error {
	return p.client.Close()
}
