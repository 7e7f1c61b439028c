package publish

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/metorial/homewatch/internal/feed"
	"github.com/metorial/homewatch/internal/metrics"
	"github.com/metorial/homewatch/internal/store"
)

const (
	DefaultChannel = "homewatch:changes"
	queueSize      = 128
	publishTimeout = 2 * time.Second
)

// Client is the part of a redis client the publisher needs.
type Client interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// Publisher forwards store changes to a Redis pub/sub channel. Encoding
// happens on the store listener; the network write happens on Run's
// goroutine so a slow Redis never stalls store writers.
type Publisher struct {
	client  Client
	channel string
	queue   chan []byte
	logger  *zap.Logger
}

func New(client Client, channel string, logger *zap.Logger) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{
		client:  client,
		channel: channel,
		queue:   make(chan []byte, queueSize),
		logger:  logger,
	}
}

// Connect dials Redis and checks it with PING.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     10,
		MinIdleConns: 1,
		MaxRetries:   3,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func (p *Publisher) Listen(change store.Change) {
	message, err := feed.Encode(change)
	if err != nil {
		p.logger.Error("Failed to encode change for Redis", zap.Error(err))
		return
	}

	select {
	case p.queue <- message:
	default:
		metrics.PublishedChanges.WithLabelValues("dropped").Inc()
		p.logger.Warn("Redis publish queue full, dropping change",
			zap.String("kind", string(change.Kind)))
	}
}

func (p *Publisher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case message := <-p.queue:
			p.send(ctx, message)
		}
	}
}

func (p *Publisher) send(ctx context.Context, message []byte) {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := p.client.Publish(ctx, p.channel, message).Err(); err != nil {
		metrics.PublishedChanges.WithLabelValues("error").Inc()
		p.logger.Warn("Redis publish failed", zap.String("channel", p.channel), zap.Error(err))
		return
	}
	metrics.PublishedChanges.WithLabelValues("success").Inc()
}
