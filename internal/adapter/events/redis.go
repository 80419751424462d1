package events

import (
	"context"
	"encoding/json"
	"time"

	"workorder-approval/internal/domain/approval"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var _ approval.Publisher = (*RedisPublisher)(nil)

// RedisPublisher fans accepted transitions out on a Redis pub/sub channel.
// Publishing is best effort: failures are logged, never returned.
type RedisPublisher struct {
	rdb     *redis.Client
	channel string
	timeout time.Duration
	log     zerolog.Logger
}

func NewRedisPublisher(rdb *redis.Client, channel string, log zerolog.Logger) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, channel: channel, timeout: 2 * time.Second, log: log}
}

func (p *RedisPublisher) PublishTransition(ctx context.Context, ev approval.TransitionEvent) {
	if p == nil || p.rdb == nil || p.channel == "" {
		return
	}
	data, err := json.Marshal(ev)
	if err != nil {
		p.log.Warn().Err(err).Str("work_order_id", ev.WorkOrderID).Msg("events: marshal transition failed")
		return
	}

	// detached from request cancellation
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	receivers, err := p.rdb.Publish(ctx, p.channel, data).Result()
	if err != nil {
		p.log.Warn().Err(err).
			Str("channel", p.channel).
			Str("work_order_id", ev.WorkOrderID).
			Msg("events: publish transition failed (non-fatal)")
		return
	}
	p.log.Debug().
		Str("channel", p.channel).
		Str("work_order_id", ev.WorkOrderID).
		Str("action", string(ev.Action)).
		Int64("receivers", receivers).
		Msg("events: transition published")
}
