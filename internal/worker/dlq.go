package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	DLQPrefix = "dlq:"

	// dlqMaxEntries caps each dead letter list; the oldest entries fall off.
	dlqMaxEntries = 1000
)

// DLQEntry is a job that exhausted MaxAttempts, kept for manual inspection.
type DLQEntry struct {
	OriginalQueue string          `json:"original_queue"`
	JobType       string          `json:"job_type"`
	Payload       json.RawMessage `json:"payload"`
	Reason        string          `json:"reason"`
	FailedAt      time.Time       `json:"failed_at"`
	Attempts      int             `json:"attempts"`
}

// SendToDLQ parks job in dlq:<queue>, newest first.
func SendToDLQ(ctx context.Context, rdb *redis.Client, queue string, job Job, reason string) error {
	data, err := json.Marshal(DLQEntry{
		OriginalQueue: queue,
		JobType:       job.Type,
		Payload:       job.Payload,
		Reason:        reason,
		FailedAt:      time.Now().UTC(),
		Attempts:      job.Attempts,
	})
	if err != nil {
		return fmt.Errorf("dlq: marshal entry: %w", err)
	}

	key := DLQPrefix + queue
	_, err = rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.LPush(ctx, key, data)
		p.LTrim(ctx, key, 0, dlqMaxEntries-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("dlq: push %s: %w", key, err)
	}

	log.Warn().
		Str("queue", queue).
		Str("job_type", job.Type).
		Int("attempts", job.Attempts).
		Str("reason", reason).
		Msg("job moved to dead letter queue")
	return nil
}

// DLQLength is reported by /health.
func DLQLength(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, DLQPrefix+queue).Result()
}

// LastDLQEntry returns the most recent dead letter, or nil when the list is empty.
func LastDLQEntry(ctx context.Context, rdb *redis.Client, queue string) (*DLQEntry, error) {
	raw, err := rdb.LIndex(ctx, DLQPrefix+queue, 0).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var e DLQEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("dlq: decode entry: %w", err)
	}
	return &e, nil
}
