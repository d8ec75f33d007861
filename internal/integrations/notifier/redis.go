package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// RedisPublisher публикует события в pub/sub канал Redis в виде JSON
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisPublisher создает получателя поверх клиента Redis
func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{
		client:  client,
		channel: channel,
	}
}

func (p *RedisPublisher) Name() string {
	return "redis"
}

// Publish отправляет событие командой PUBLISH
func (p *RedisPublisher) Publish(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncodeFailed, err)
	}

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("%w: channel=%s: %w", ErrPublishFailed, p.channel, err)
	}

	return nil
}
