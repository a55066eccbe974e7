package progression

import (
	"time"
)

// TrendTag describes the direction of the rolling e1RM. Can be one of:
//   - improving
//   - stable
//   - declining
//   - insufficient
type TrendTag string

const (
	TrendImproving    TrendTag = "improving"
	TrendStable       TrendTag = "stable"
	TrendDeclining    TrendTag = "declining"
	TrendInsufficient TrendTag = "insufficient"
)

func (t TrendTag) String() string {
	return string(t)
}

func (t TrendTag) IsValid() bool {
	switch t {
	case TrendImproving, TrendStable, TrendDeclining, TrendInsufficient:
		return true
	default:
		return false
	}
}

// E1RMPoint is a single dated entry of the bounded e1RM history.
type E1RMPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

const (
	// maxE1RMHistory bounds the per-lift e1RM history kept on the state row.
	maxE1RMHistory = 50

	// trendLookback is how many history entries back the trend comparison reaches.
	trendLookback = 4
	// trendMinPoints is the minimum history size for a trend verdict.
	trendMinPoints = 3
	// trendBand is the relative change below which the trend counts as stable.
	trendBand = 0.025
)

// ExerciseState is the persistent per user+exercise progression record.
// It is mutated only by the engine, after an exposure completes, and is
// written back with an optimistic version check.
type ExerciseState struct {
	UserID     string `json:"userId"`
	ExerciseID string `json:"exerciseId"`

	CurrentWorkingWeightKg float64     `json:"currentWorkingWeightKg"`
	TargetReps             int         `json:"targetReps"`
	LastDecision           Action      `json:"lastDecision"`
	RollingE1RM            *float64    `json:"rollingE1rm,omitempty"`
	E1RMTrend              TrendTag    `json:"e1rmTrend"`
	E1RMHistory            []E1RMPoint `json:"e1rmHistory,omitempty"`

	ConsecutiveFailures  int        `json:"consecutiveFailures"`
	ConsecutiveSuccesses int        `json:"consecutiveSuccesses"`
	SuccessfulSessions   int        `json:"successfulSessions"`
	LastDeloadAt         *time.Time `json:"lastDeloadAt,omitempty"`

	// Version guards the upsert, a stale write must not win.
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewColdStartState builds the state used when a lifter performs an
// exercise for the first time. Missing state is not an error.
func NewColdStartState(userID, exerciseID string, firstObservedWeightKg float64, targetReps int, now time.Time) ExerciseState {
	return ExerciseState{
		UserID:                 userID,
		ExerciseID:             exerciseID,
		CurrentWorkingWeightKg: firstObservedWeightKg,
		TargetReps:             targetReps,
		LastDecision:           ActionHold,
		E1RMTrend:              TrendInsufficient,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
}

// appendE1RMPoint pushes a new history entry, dropping the oldest ones
// beyond the history bound.
func (s *ExerciseState) appendE1RMPoint(p E1RMPoint) {
	s.E1RMHistory = append(s.E1RMHistory, p)
	if len(s.E1RMHistory) > maxE1RMHistory {
		s.E1RMHistory = s.E1RMHistory[len(s.E1RMHistory)-maxE1RMHistory:]
	}
}

// computeTrend compares the newest history value against one a few entries
// back. Fewer than trendMinPoints entries give no verdict.
func computeTrend(history []E1RMPoint) TrendTag {
	if len(history) < trendMinPoints {
		return TrendInsufficient
	}

	newest := history[len(history)-1].Value
	refIdx := len(history) - 1 - trendLookback
	if refIdx < 0 {
		refIdx = 0
	}
	reference := history[refIdx].Value
	if reference <= 0 {
		return TrendInsufficient
	}

	change := (newest - reference) / reference
	switch {
	case change > trendBand:
		return TrendImproving
	case change < -trendBand:
		return TrendDeclining
	default:
		return TrendStable
	}
}
