package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Redis key prefix for collection staleness flags
	StaleTagKeyPrefix = "cache:stale:"

	// Stale flags expire on their own; a list view that never probes
	// again should not pin keys forever.
	staleTagTTL = 24 * time.Hour
)

// InvalidationService marks cached collection views (enquiry lists,
// per-hotel booking lists) stale after a booking mutation so they
// re-fetch on next access. Marking is best-effort: a failure is logged
// and never propagated into the save path.
type InvalidationService struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewInvalidationService(redisClient *redis.Client, log *logrus.Logger) *InvalidationService {
	return &InvalidationService{
		redisClient: redisClient,
		log:         log,
	}
}

// MarkStale flags every given tag in one pipeline round trip.
func (s *InvalidationService) MarkStale(ctx context.Context, tags ...string) error {
	if len(tags) == 0 {
		return nil
	}

	pipe := s.redisClient.TxPipeline()
	now := time.Now().Unix()
	for _, tag := range tags {
		pipe.Set(ctx, StaleTagKeyPrefix+tag, now, staleTagTTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Warnf("Failed to mark cache tags %v stale (non-fatal): %+v", tags, err)
		return err
	}

	s.log.Debugf("Marked cache tags stale: %v", tags)
	return nil
}

// IsStale reports whether a tag was invalidated since it was last
// cleared.
func (s *InvalidationService) IsStale(ctx context.Context, tag string) (bool, error) {
	exists, err := s.redisClient.Exists(ctx, StaleTagKeyPrefix+tag).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// ClearStale removes the flag after a list view re-fetched.
func (s *InvalidationService) ClearStale(ctx context.Context, tag string) error {
	if err := s.redisClient.Del(ctx, StaleTagKeyPrefix+tag).Err(); err != nil {
		s.log.Warnf("Failed to clear stale flag for %q: %+v", tag, err)
		return err
	}
	return nil
}
