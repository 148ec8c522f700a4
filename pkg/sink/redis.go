package sink

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisObserver forwards each broadcast item to a Redis pub/sub
// channel, letting processes outside this one follow an upload stream.
type RedisObserver struct {
	client  redis.UniversalClient
	channel string
}

// NewRedisObserver creates an observer publishing to the given channel.
func NewRedisObserver(client redis.UniversalClient, channel string) *RedisObserver {
	return &RedisObserver{client: client, channel: channel}
}

// Notify implements Observer by publishing the item. Publish failures
// surface as delivery errors and are handled by the sink's swallow
// policy like any other observer failure.
func (o *RedisObserver) Notify(ctx context.Context, item string) error {
	return o.client.Publish(ctx, o.channel, item).Err()
}

// RedisSource adapts a Redis subscription to the lazy source contract,
// so a remote publisher can drive a local sink or session. The stream
// ends only when the subscription is closed.
type RedisSource struct {
	pubsub *redis.PubSub
	msgs   <-chan *redis.Message
}

// NewRedisSource subscribes to the given channel. The returned source
// must be closed to release the subscription.
func NewRedisSource(ctx context.Context, client redis.UniversalClient, channel string) *RedisSource {
	pubsub := client.Subscribe(ctx, channel)
	return &RedisSource{
		pubsub: pubsub,
		msgs:   pubsub.Channel(),
	}
}

// Next implements sequence.Source. It blocks until a message arrives,
// the subscription closes (clean exhaustion), or ctx is cancelled.
func (s *RedisSource) Next(ctx context.Context) (string, bool, error) {
	select {
	case msg, ok := <-s.msgs:
		if !ok {
			return "", false, nil
		}
		return msg.Payload, true, nil
	case <-ctx.Done():
		return "", false, ctx.Err()
	}
}

// Close releases the subscription.
func (s *RedisSource) Close() error {
	return s.pubsub.Close()
}
