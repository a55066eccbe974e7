package recommendation

import (
	"testing"

	"github.com/2beens/liftcoach/internal/progression"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestEventCache(t *testing.T) {
	cache := NewLatestEventCache()

	_, ok := cache.Get("user1", "bench-press")
	assert.False(t, ok)

	cache.Set(RecommendationEvent{
		ID:                  "event1",
		UserID:              "user1",
		ExerciseID:          "bench-press",
		Action:              progression.ActionHold,
		RecommendedWeightKg: 100,
	})

	event, ok := cache.Get("user1", "bench-press")
	require.True(t, ok)
	assert.Equal(t, "event1", event.ID)
	assert.Equal(t, 100.0, event.RecommendedWeightKg)

	// same user, different lift
	_, ok = cache.Get("user1", "squat")
	assert.False(t, ok)

	// newer prescription replaces the old one
	cache.Set(RecommendationEvent{
		ID:         "event2",
		UserID:     "user1",
		ExerciseID: "bench-press",
	})
	event, ok = cache.Get("user1", "bench-press")
	require.True(t, ok)
	assert.Equal(t, "event2", event.ID)

	cache.Invalidate("user1", "bench-press")
	_, ok = cache.Get("user1", "bench-press")
	assert.False(t, ok)
}

func TestLatestEventCache_ManyLifts(t *testing.T) {
	cache := NewLatestEventCache()

	events := make([]RecommendationEvent, 0, 200)
	for i := 0; i < 200; i++ {
		event := RecommendationEvent{
			ID:                  gofakeit.UUID(),
			UserID:              gofakeit.Username(),
			ExerciseID:          gofakeit.Word(),
			Action:              progression.ActionHold,
			RecommendedWeightKg: gofakeit.Float64Range(20, 200),
			RecommendedReps:     gofakeit.Number(1, 12),
		}
		events = append(events, event)
		cache.Set(event)
	}

	for _, want := range events {
		got, ok := cache.Get(want.UserID, want.ExerciseID)
		require.True(t, ok)
		// same user+lift pair can repeat, the cache then holds the
		// later prescription
		assert.NotEmpty(t, got.ID)
		assert.Equal(t, want.UserID, got.UserID)
		assert.Equal(t, want.ExerciseID, got.ExerciseID)
	}
}

func TestFlagImplausible(t *testing.T) {
	for name, tc := range map[string]struct {
		set     PerformedSet
		flagged bool
	}{
		"plausible":       {set: PerformedSet{WeightKg: 100, Reps: 8}},
		"negative weight": {set: PerformedSet{WeightKg: -5, Reps: 8}, flagged: true},
		"unit error":      {set: PerformedSet{WeightKg: 2200, Reps: 8}, flagged: true},
		"rep entry error": {set: PerformedSet{WeightKg: 100, Reps: 88}, flagged: true},
		"heavy but real":  {set: PerformedSet{WeightKg: 300, Reps: 1}},
	} {
		t.Run(name, func(t *testing.T) {
			set := tc.set
			flagImplausible(&set)
			assert.Equal(t, tc.flagged, set.Flagged)
		})
	}
}
