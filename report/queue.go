// Package report forwards finished decisions to the audit journal and
// the downstream report-publishing queue.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	goredis "github.com/go-redis/redis/v8"
)

// Task is one queued report-publish job.
type Task struct {
	Payload  json.RawMessage `json:"payload"`
	Priority int             `json:"priority"`
	Status   string          `json:"status"` // always "pending" when enqueued
}

// Queue accepts report tasks for asynchronous downstream publishing.
// Publishing is best-effort; a failed publish is retried by the
// consumer side, not here.
type Queue interface {
	Publish(ctx context.Context, t Task) error
	Close() error
}

// RedisQueueConfig configures the Redis-backed report queue.
type RedisQueueConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	DB       int    `json:"db" yaml:"db"`
	Key      string `json:"key" yaml:"key"` // pending-list key, e.g. "reports:pending"
}

// RedisQueue publishes tasks onto a Redis list consumed by the report
// workers.
type RedisQueue struct {
	client *goredis.Client
	key    string
}

// NewRedisQueue connects to Redis and pings the server.
func NewRedisQueue(cfg RedisQueueConfig) (*RedisQueue, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	key := cfg.Key
	if key == "" {
		key = "reports:pending"
	}

	log.Printf("[report-queue] connected to %s (key=%s)", cfg.Addr, key)
	return &RedisQueue{client: client, key: key}, nil
}

// Publish pushes the task onto the pending list.
func (q *RedisQueue) Publish(ctx context.Context, t Task) error {
	if t.Status == "" {
		t.Status = "pending"
	}
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}
	if err := q.client.LPush(ctx, q.key, data).Err(); err != nil {
		return fmt.Errorf("lpush %s: %w", q.key, err)
	}
	return nil
}

// Pending returns the number of queued tasks.
func (q *RedisQueue) Pending(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.key).Result()
}

func (q *RedisQueue) Close() error {
	return q.client.Close()
}
