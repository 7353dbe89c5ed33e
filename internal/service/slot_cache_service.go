package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Redis key prefix for computed slot lists
	slotCacheKeyPrefix = "slots:"

	// Cap for browsing far-future dates; same-day entries expire at the
	// end of that schedule day instead.
	slotCacheMaxTTL = 6 * time.Hour
)

// SlotCacheService caches computed available-slot lists in Redis.
//
// The cache is purely an acceleration layer: booking consistency lives in
// the database transaction, so a stale or missing entry can never cause a
// double-booking, only a recomputation. Every write that touches a
// doctor's day invalidates that day's entries.
type SlotCacheService struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewSlotCacheService(redisClient *redis.Client, log *logrus.Logger) *SlotCacheService {
	return &SlotCacheService{
		redisClient: redisClient,
		log:         log,
	}
}

// Get returns the cached slot list, or ok=false on miss or Redis failure.
func (s *SlotCacheService) Get(ctx context.Context, doctorID uuid.UUID, date time.Time, durationMinutes int) ([]TimeSlot, bool) {
	key := s.slotKey(doctorID, date, durationMinutes)

	payload, err := s.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warnf("Slot cache read failed for %s: %+v", key, err)
		}
		return nil, false
	}

	var slots []TimeSlot
	if err := json.Unmarshal(payload, &slots); err != nil {
		s.log.Warnf("Slot cache entry corrupt for %s: %+v", key, err)
		return nil, false
	}

	return slots, true
}

// Set stores the slot list with a TTL bounded by the schedule day.
// Failures are logged and swallowed, the caller already has the data.
func (s *SlotCacheService) Set(ctx context.Context, doctorID uuid.UUID, date time.Time, durationMinutes int, slots []TimeSlot) {
	key := s.slotKey(doctorID, date, durationMinutes)

	payload, err := json.Marshal(slots)
	if err != nil {
		s.log.Warnf("Failed to marshal slots for %s: %+v", key, err)
		return
	}

	if err := s.redisClient.Set(ctx, key, payload, s.calculateTTL(date)).Err(); err != nil {
		s.log.Warnf("Slot cache write failed for %s: %+v", key, err)
	}
}

// Invalidate drops every cached duration for the doctor's day. Called
// after a booking or completion changes that day's occupancy.
func (s *SlotCacheService) Invalidate(ctx context.Context, doctorID uuid.UUID, date time.Time) {
	s.deletePattern(ctx, fmt.Sprintf("%s%s:%s:*", slotCacheKeyPrefix, doctorID.String(), date.Format("2006-01-02")))
}

// InvalidateDoctor drops every cached date for the doctor. Used when the
// weekly schedule template itself changes.
func (s *SlotCacheService) InvalidateDoctor(ctx context.Context, doctorID uuid.UUID) {
	s.deletePattern(ctx, fmt.Sprintf("%s%s:*", slotCacheKeyPrefix, doctorID.String()))
}

func (s *SlotCacheService) deletePattern(ctx context.Context, pattern string) {
	iter := s.redisClient.Scan(ctx, 0, pattern, 0).Iterator()
	keys := make([]string, 0, 4)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		s.log.Warnf("Slot cache scan failed for %s: %+v", pattern, err)
		return
	}

	if len(keys) == 0 {
		return
	}

	if err := s.redisClient.Del(ctx, keys...).Err(); err != nil {
		s.log.Warnf("Slot cache invalidation failed for %s: %+v", pattern, err)
		return
	}

	s.log.Debugf("Invalidated %d slot cache entries matching %s", len(keys), pattern)
}

func (s *SlotCacheService) slotKey(doctorID uuid.UUID, date time.Time, durationMinutes int) string {
	return fmt.Sprintf("%s%s:%s:%d", slotCacheKeyPrefix, doctorID.String(), date.Format("2006-01-02"), durationMinutes)
}

// calculateTTL bounds an entry's life by the end of its schedule day.
func (s *SlotCacheService) calculateTTL(date time.Time) time.Duration {
	endOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	ttl := time.Until(endOfDay)

	if ttl <= 0 {
		return 1 * time.Minute
	}
	if ttl > slotCacheMaxTTL {
		return slotCacheMaxTTL
	}
	return ttl
}
