package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type redisBus struct {
	logger  *zap.SugaredLogger
	rdb     *goredis.Client
	channel string
}

// NewRedisBus подключается к Redis и проверяет соединение.
func NewRedisBus(ctx context.Context, addr, channel string, logger *zap.SugaredLogger) (Bus, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("missing redis address")
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	channel = strings.TrimSpace(channel)
	if channel == "" {
		channel = "moodkeeper-records"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisBus{
		logger:  logger.With("component", "redis-bus"),
		rdb:     rdb,
		channel: channel,
	}, nil
}

func (b *redisBus) Publish(ctx context.Context, msg Message) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}

func (b *redisBus) StartForwarder(ctx context.Context, onMsg func(m Message)) error {
	if onMsg == nil {
		return errors.New("onMsg callback required")
	}

	sub := b.rdb.Subscribe(ctx, b.channel)
	// дожидаемся подтверждения подписки
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					return
				}
				msg, err := decodeMessage(m.Payload)
				if err != nil {
					b.logger.Warnw("bad redis payload", "error", err)
					continue
				}
				onMsg(msg)
			}
		}
	}()
	return nil
}

func (b *redisBus) Close() error {
	return b.rdb.Close()
}

func decodeMessage(payload string) (Message, error) {
	var msg Message
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		return Message{}, err
	}
	if msg.Channel == "" {
		return Message{}, errors.New("message without channel")
	}
	return msg, nil
}
