package worker

// Failed jobs wait in a sorted set (retry:{queue}) scored by the unix time they
// become due. A ticker moves due entries back onto the work queue.

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	MaxAttempts = 3

	retryPrefix       = "retry:"
	retryTickInterval = 5 * time.Second
	retryBatchSize    = 50
)

// computeRetryBackoff returns 10s, 20s, 40s... for attempt 1, 2, 3...
func computeRetryBackoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return time.Duration(1<<(attempt-1)) * 10 * time.Second
}

func scheduleRetry(ctx context.Context, rdb *redis.Client, queue string, job Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	due := time.Now().Add(computeRetryBackoff(job.Attempts))
	log.Warn().
		Str("queue", queue).
		Str("job_type", job.Type).
		Int("attempts", job.Attempts).
		Time("next_retry_at", due).
		Msg("job failed, retry scheduled")
	return rdb.ZAdd(ctx, retryPrefix+queue, redis.Z{Score: float64(due.Unix()), Member: data}).Err()
}

func runRetryScheduler(ctx context.Context, rdb *redis.Client, queues []string) {
	ticker := time.NewTicker(retryTickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("retry scheduler shutting down")
			return
		case <-ticker.C:
			for _, q := range queues {
				promoteDue(ctx, rdb, q, time.Now())
			}
		}
	}
}

// requeueScript pushes a due member onto the queue and only then drops it from
// the retry set. It runs atomically, so two API instances never re-queue the
// same entry, and a failed LPUSH aborts before the ZREM.
var requeueScript = redis.NewScript(`
if not redis.call('ZSCORE', KEYS[1], ARGV[1]) then
	return 0
end
redis.call('LPUSH', KEYS[2], ARGV[1])
redis.call('ZREM', KEYS[1], ARGV[1])
return 1
`)

// promoteDue moves due retries back to queue and returns how many moved.
func promoteDue(ctx context.Context, rdb *redis.Client, queue string, now time.Time) int {
	key := retryPrefix + queue
	due, err := rdb.ZRangeByScore(ctx, key, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(now.Unix(), 10),
		Count: retryBatchSize,
	}).Result()
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to read due retries")
		return 0
	}

	moved := 0
	for _, member := range due {
		n, err := requeueScript.Run(ctx, rdb, []string{key, queue}, member).Int()
		if err != nil {
			log.Error().Err(err).Str("queue", queue).Msg("failed to re-queue retry")
			continue
		}
		moved += n
	}
	if moved > 0 {
		log.Info().Str("queue", queue).Int("count", moved).Msg("retries re-queued")
	}
	return moved
}
