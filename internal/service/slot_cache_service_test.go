package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func newTestSlotCache(t *testing.T) *SlotCacheService {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewSlotCacheService(client, log)
}

func TestSlotCacheRoundTrip(t *testing.T) {
	cache := newTestSlotCache(t)
	ctx := context.Background()
	doctorID := uuid.New()
	date := time.Now().UTC().AddDate(0, 0, 1)
	slots := []TimeSlot{
		{Time: "09:00", IsAvailable: true},
		{Time: "09:30", IsAvailable: false},
	}

	if _, ok := cache.Get(ctx, doctorID, date, 30); ok {
		t.Fatal("expected a miss before any Set")
	}

	cache.Set(ctx, doctorID, date, 30, slots)

	got, ok := cache.Get(ctx, doctorID, date, 30)
	if !ok {
		t.Fatal("expected a hit after Set")
	}
	if len(got) != 2 || got[0].Time != "09:00" || got[1].IsAvailable {
		t.Errorf("unexpected cached slots: %+v", got)
	}

	if _, ok := cache.Get(ctx, doctorID, date, 60); ok {
		t.Error("a different duration must be a separate entry")
	}
}

func TestSlotCacheInvalidateDay(t *testing.T) {
	cache := newTestSlotCache(t)
	ctx := context.Background()
	doctorID := uuid.New()
	day1 := time.Now().UTC().AddDate(0, 0, 1)
	day2 := day1.AddDate(0, 0, 1)
	slots := []TimeSlot{{Time: "09:00", IsAvailable: true}}

	cache.Set(ctx, doctorID, day1, 30, slots)
	cache.Set(ctx, doctorID, day1, 60, slots)
	cache.Set(ctx, doctorID, day2, 30, slots)

	cache.Invalidate(ctx, doctorID, day1)

	if _, ok := cache.Get(ctx, doctorID, day1, 30); ok {
		t.Error("day1 30-minute entry should be gone")
	}
	if _, ok := cache.Get(ctx, doctorID, day1, 60); ok {
		t.Error("day1 60-minute entry should be gone")
	}
	if _, ok := cache.Get(ctx, doctorID, day2, 30); !ok {
		t.Error("day2 entry should survive a day1 invalidation")
	}
}

func TestSlotCacheInvalidateDoctorDropsAllDates(t *testing.T) {
	cache := newTestSlotCache(t)
	ctx := context.Background()
	doctorA := uuid.New()
	doctorB := uuid.New()
	day1 := time.Now().UTC().AddDate(0, 0, 1)
	day2 := day1.AddDate(0, 0, 7)
	slots := []TimeSlot{{Time: "08:00", IsAvailable: true}}

	cache.Set(ctx, doctorA, day1, 30, slots)
	cache.Set(ctx, doctorA, day2, 30, slots)
	cache.Set(ctx, doctorB, day1, 30, slots)

	// A weekly-template change must drop every cached date for the
	// doctor so new windows show up immediately.
	cache.InvalidateDoctor(ctx, doctorA)

	if _, ok := cache.Get(ctx, doctorA, day1, 30); ok {
		t.Error("doctor A day1 entry should be gone")
	}
	if _, ok := cache.Get(ctx, doctorA, day2, 30); ok {
		t.Error("doctor A day2 entry should be gone")
	}
	if _, ok := cache.Get(ctx, doctorB, day1, 30); !ok {
		t.Error("doctor B entries should be untouched")
	}
}
