package util

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Deduper is a Redis SetNX once-guard for reminder occurrences. It is a
// fast path in front of the notification ledger, not the source of truth:
// when Redis is unavailable it fails open and lets the ledger decide.
type Deduper struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewDeduper(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *Deduper {
	return &Deduper{
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

func dedupKey(medicineID int, day, slot string) string {
	return fmt.Sprintf("dedup:reminder:%d:%s:%s", medicineID, day, slot)
}

// AcquireOnce tries to claim the occurrence (medicineID, day, slot).
// Returns true on first claim, false when the occurrence was already claimed.
func (d *Deduper) AcquireOnce(ctx context.Context, medicineID int, day, slot string) bool {
	key := dedupKey(medicineID, day, slot)

	ok, err := d.rdb.SetNX(ctx, key, 1, d.ttl).Result()
	if err != nil {
		if d.logger != nil {
			d.logger.Warn("Redis dedup check failed, allowing processing",
				zap.Int("medicine_id", medicineID),
				zap.String("slot", slot),
				zap.Error(err),
			)
		}
		return true
	}

	if !ok && d.logger != nil {
		d.logger.Info("Skipped duplicated reminder occurrence",
			zap.Int("medicine_id", medicineID),
			zap.String("day", day),
			zap.String("slot", slot),
		)
	}

	return ok
}

// Release drops a claim so a later pass inside the tolerance window can
// retry the occurrence. Callers use this when the pass fails after the
// claim but before the notification commits; a failed delete only delays
// the retry until the key expires.
func (d *Deduper) Release(ctx context.Context, medicineID int, day, slot string) {
	key := dedupKey(medicineID, day, slot)

	if err := d.rdb.Del(ctx, key).Err(); err != nil && d.logger != nil {
		d.logger.Warn("Failed to release dedup claim",
			zap.Int("medicine_id", medicineID),
			zap.String("day", day),
			zap.String("slot", slot),
			zap.Error(err),
		)
	}
}
