package infra

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"inventario/internal/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const precioCacheTTL = 4 * time.Hour

// setIfVersion writes the entry only while the version key still holds the
// value the reader saw before going to the database.
var setIfVersion = redis.NewScript(`
local current = redis.call('GET', KEYS[1]) or '0'
if current ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`)

// PrecioCache keeps the active price of each presentation in Redis.
// Every operation is best effort: a Redis failure degrades to a DB read.
type PrecioCache struct {
	rdb *redis.Client
}

func NewPrecioCache(rdb *redis.Client) *PrecioCache {
	return &PrecioCache{rdb: rdb}
}

func precioKey(presentationID uuid.UUID) string {
	return "precio:activo:" + presentationID.String()
}

func precioVersionKey(presentationID uuid.UUID) string {
	return "precio:version:" + presentationID.String()
}

func (c *PrecioCache) Get(ctx context.Context, presentationID uuid.UUID) (*model.Precio, bool) {
	raw, err := c.rdb.Get(ctx, precioKey(presentationID)).Bytes()
	if err != nil {
		return nil, false
	}
	var p model.Precio
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, false
	}
	return &p, true
}

// Version returns the invalidation counter of a presentation. ok is false
// when Redis cannot be read, in which case callers must not populate the cache.
func (c *PrecioCache) Version(ctx context.Context, presentationID uuid.UUID) (int64, bool) {
	v, err := c.rdb.Get(ctx, precioVersionKey(presentationID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, true
	}
	if err != nil {
		log.Debug().Err(err).Str("presentation_id", presentationID.String()).Msg("precio cache version failed")
		return 0, false
	}
	return v, true
}

// Set stores p unless the presentation was invalidated after version was read.
func (c *PrecioCache) Set(ctx context.Context, p *model.Precio, version int64) bool {
	b, err := json.Marshal(p)
	if err != nil {
		return false
	}
	keys := []string{precioVersionKey(p.PresentationID), precioKey(p.PresentationID)}
	n, err := setIfVersion.Run(ctx, c.rdb, keys, version, b, precioCacheTTL.Milliseconds()).Int()
	if err != nil {
		log.Debug().Err(err).Str("presentation_id", p.PresentationID.String()).Msg("precio cache set failed")
		return false
	}
	return n == 1
}

// Invalidate bumps the version before dropping the entry, so a reader that
// loaded the previous row can no longer write it back.
func (c *PrecioCache) Invalidate(ctx context.Context, presentationID uuid.UUID) {
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, precioVersionKey(presentationID))
		pipe.Del(ctx, precioKey(presentationID))
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("presentation_id", presentationID.String()).Msg("precio cache invalidate failed")
	}
}
