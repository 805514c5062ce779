package service

import (
	"context"
	"fmt"
	"time"

	"smart-bed-allocation/internal/domain/entity"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	// Redis key prefix for per-hospital availability counters
	availabilityKeyPrefix = "hospital:available:"

	// Timeout for best-effort cache writes after a committed transaction
	publishTimeout = 5 * time.Second
)

// AvailabilityPublisher receives the committed available-bed count of a
// hospital after every successful allocation, discharge or manual override.
// Implementations must be best-effort: the database is the source of truth
// and a failed publish must never fail the operation that triggered it.
type AvailabilityPublisher interface {
	PublishAvailability(ctx context.Context, hospitalName string, availableBeds int)
}

// AvailabilityStore adds the read side for consumers that serve counters out
// of the cache with a database fallback on a miss.
type AvailabilityStore interface {
	AvailabilityPublisher
	GetAvailability(ctx context.Context, hospitalName string) (int, bool)
}

// AvailabilityCache mirrors the registry's available_beds counters into Redis
// so read-heavy dashboard traffic does not hit the database. The cache is
// never consulted for admission control; the conditional update on the
// hospital row remains the only gate.
type AvailabilityCache struct {
	db          *gorm.DB
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewAvailabilityCache(db *gorm.DB, redisClient *redis.Client, log *logrus.Logger) *AvailabilityCache {
	return &AvailabilityCache{
		db:          db,
		redisClient: redisClient,
		log:         log,
	}
}

// SyncOnStartup overwrites every cached counter with the current database
// value. Run before accepting traffic; also usable as disaster recovery when
// Redis state is suspect.
func (s *AvailabilityCache) SyncOnStartup(ctx context.Context) error {
	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		s.log.Warnf("Redis is not available, skipping availability sync: %+v", err)
		return fmt.Errorf("redis ping failed: %w", err)
	}

	var hospitals []entity.Hospital
	if err := s.db.WithContext(ctx).
		Select("name", "available_beds").
		Find(&hospitals).Error; err != nil {
		s.log.Errorf("Failed to query hospitals for availability sync: %+v", err)
		return fmt.Errorf("query hospitals: %w", err)
	}

	pipe := s.redisClient.TxPipeline()
	for _, hospital := range hospitals {
		pipe.Set(ctx, availabilityKey(hospital.Name), hospital.AvailableBeds, 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Errorf("Failed to execute availability sync pipeline: %+v", err)
		return fmt.Errorf("pipeline exec: %w", err)
	}

	s.log.Infof("Availability cache synced: %d hospitals", len(hospitals))
	return nil
}

// PublishAvailability overwrites one hospital's cached counter with the value
// just committed. Detached from the request context so a cancelled request
// cannot leave the cache stale.
func (s *AvailabilityCache) PublishAvailability(ctx context.Context, hospitalName string, availableBeds int) {
	pubCtx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := s.redisClient.Set(pubCtx, availabilityKey(hospitalName), availableBeds, 0).Err(); err != nil {
		// Non-fatal: the cache is re-synced on next startup
		s.log.Warnf("Failed to publish availability for %s: %+v", hospitalName, err)
	}
}

// GetAvailability reads a cached counter. The second return value is false on
// a cache miss or Redis failure; callers fall back to the database.
func (s *AvailabilityCache) GetAvailability(ctx context.Context, hospitalName string) (int, bool) {
	val, err := s.redisClient.Get(ctx, availabilityKey(hospitalName)).Int()
	if err != nil {
		if err != redis.Nil {
			s.log.Warnf("Failed to read availability cache for %s: %+v", hospitalName, err)
		}
		return 0, false
	}
	return val, true
}

func availabilityKey(hospitalName string) string {
	return availabilityKeyPrefix + hospitalName
}
