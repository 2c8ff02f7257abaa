// Package queue enqueues background narration pre-fetch jobs. The
// player requests upcoming lesson audio before it is needed, so
// synthesis latency never sits on the playback path.
package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/learnloop/courseai/internal/config"
)

type Client struct {
	client *asynq.Client
}

func NewClient(cfg config.RedisConfig) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) EnqueueNarrationPrefetch(payload NarrationPrefetchPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	task := asynq.NewTask(TypeNarrationPrefetch, data)
	_, err = c.client.Enqueue(task, asynq.MaxRetry(2), asynq.Timeout(60*time.Second))
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", TypeNarrationPrefetch, err)
	}
	return nil
}
