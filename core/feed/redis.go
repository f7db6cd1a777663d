package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"musicbridge/config"
	"musicbridge/logger"

	"github.com/redis/go-redis/v9"
)

// lastStateTTL bounds how long the last published event stays readable
// after the watcher stops.
const lastStateTTL = 24 * time.Hour

// RedisPublisher publishes events on a Redis channel and keeps the most
// recent now-playing event under "<channel>:last".
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

// ConnectRedis connects to the configured Redis and checks the connection.
func ConnectRedis(cfg *config.Config) (*RedisPublisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("redis connected",
		logger.String("addr", client.Options().Addr),
		logger.String("channel", cfg.WatchChannel))
	return NewRedisPublisher(client, cfg.WatchChannel), nil
}

// NewRedisPublisher wraps an existing client.
func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) lastKey() string {
	return p.channel + ":last"
}

// Publish implements Sink.
func (p *RedisPublisher) Publish(ctx context.Context, ev Event) error {
	data, err := ev.Encode()
	if err != nil {
		return err
	}
	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	if ev.Type == EventNowPlaying {
		if err := p.client.Set(ctx, p.lastKey(), data, lastStateTTL).Err(); err != nil {
			return fmt.Errorf("failed to store last event: %w", err)
		}
	}
	return nil
}

// Last returns the most recent now-playing event, or nil when none is stored.
func (p *RedisPublisher) Last(ctx context.Context) ([]byte, error) {
	data, err := p.client.Get(ctx, p.lastKey()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last event: %w", err)
	}
	return data, nil
}

// Subscribe streams the raw payloads published on the channel until ctx is
// done.
func (p *RedisPublisher) Subscribe(ctx context.Context) (<-chan []byte, error) {
	ps := p.client.Subscribe(ctx, p.channel)
	if _, err := ps.Receive(ctx); err != nil {
		ps.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", p.channel, err)
	}

	out := make(chan []byte)
	go func() {
		defer close(out)
		defer ps.Close()
		ch := ps.Channel()
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Close closes the Redis connection.
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
