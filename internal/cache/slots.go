package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/velvetlens/studio-booking/internal/dto"
)

const (
	slotsKeyPrefix = "occupied-slots:"
	slotsTTL       = 60 * time.Second
)

// SlotCache keeps the public occupied-slots view out of the database on the
// hot path. Misses and redis faults are silent: the caller falls through to
// the store.
type SlotCache struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewSlotCache(rdb *redis.Client, logger *zap.Logger) *SlotCache {
	return &SlotCache{rdb: rdb, logger: logger}
}

func (c *SlotCache) Get(ctx context.Context, from string) (dto.OccupiedSlots, bool) {
	raw, err := c.rdb.Get(ctx, slotsKeyPrefix+from).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("slot cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var slots dto.OccupiedSlots
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *SlotCache) Set(ctx context.Context, from string, slots dto.OccupiedSlots) {
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, slotsKeyPrefix+from, raw, slotsTTL).Err(); err != nil {
		c.logger.Warn("slot cache write failed", zap.Error(err))
	}
}

// Invalidate drops every cached view. Called after any booking mutation.
func (c *SlotCache) Invalidate(ctx context.Context) {
	iter := c.rdb.Scan(ctx, 0, slotsKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Warn("slot cache invalidation failed", zap.Error(err))
			return
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("slot cache invalidation failed", zap.Error(err))
	}
}
