package progression

import (
	"encoding/json"
	"time"
)

// TemporalFeatures are the derived, decision-time features frozen into a
// snapshot together with the state fields. They are computed once, from
// data already persisted before the exposure started.
type TemporalFeatures struct {
	DaysSinceLastExposure *int    `json:"daysSinceLastExposure,omitempty"`
	DaysSinceLastDeload   *int    `json:"daysSinceLastDeload,omitempty"`
	ExposuresLast14Days   int     `json:"exposuresLast14Days"`
	VolumeLast7DaysKg     float64 `json:"volumeLast7DaysKg"`
}

// LiftStateSnapshot is the frozen, read-only copy of an ExerciseState taken
// once at exposure start. All fields are unexported so that nothing can
// mutate a snapshot after it was frozen; a recommendation event carries it
// by value forever.
type LiftStateSnapshot struct {
	userID     string
	exerciseID string

	workingWeightKg      float64
	targetReps           int
	rollingE1RM          *float64
	e1rmTrend            TrendTag
	consecutiveFailures  int
	consecutiveSuccesses int
	successfulSessions   int
	lastDeloadAt         *time.Time

	temporal TemporalFeatures
	frozenAt time.Time
}

// FreezeSnapshot copies the decision-relevant fields of the given state
// into an immutable snapshot. Pointer fields are deep copied, the snapshot
// must not alias the live state.
func FreezeSnapshot(state ExerciseState, temporal TemporalFeatures, now time.Time) LiftStateSnapshot {
	s := LiftStateSnapshot{
		userID:               state.UserID,
		exerciseID:           state.ExerciseID,
		workingWeightKg:      state.CurrentWorkingWeightKg,
		targetReps:           state.TargetReps,
		e1rmTrend:            state.E1RMTrend,
		consecutiveFailures:  state.ConsecutiveFailures,
		consecutiveSuccesses: state.ConsecutiveSuccesses,
		successfulSessions:   state.SuccessfulSessions,
		temporal:             temporal,
		frozenAt:             now,
	}
	if state.RollingE1RM != nil {
		v := *state.RollingE1RM
		s.rollingE1RM = &v
	}
	if state.LastDeloadAt != nil {
		t := *state.LastDeloadAt
		s.lastDeloadAt = &t
	}
	return s
}

func (s LiftStateSnapshot) UserID() string           { return s.userID }
func (s LiftStateSnapshot) ExerciseID() string       { return s.exerciseID }
func (s LiftStateSnapshot) WorkingWeightKg() float64 { return s.workingWeightKg }
func (s LiftStateSnapshot) TargetReps() int          { return s.targetReps }
func (s LiftStateSnapshot) E1RMTrend() TrendTag      { return s.e1rmTrend }
func (s LiftStateSnapshot) ConsecutiveFailures() int { return s.consecutiveFailures }
func (s LiftStateSnapshot) ConsecutiveSuccesses() int {
	return s.consecutiveSuccesses
}
func (s LiftStateSnapshot) SuccessfulSessions() int { return s.successfulSessions }
func (s LiftStateSnapshot) FrozenAt() time.Time     { return s.frozenAt }
func (s LiftStateSnapshot) Temporal() TemporalFeatures {
	return s.temporal
}

// RollingE1RM returns a copy of the frozen rolling e1RM, or nil when the
// state had none yet.
func (s LiftStateSnapshot) RollingE1RM() *float64 {
	if s.rollingE1RM == nil {
		return nil
	}
	v := *s.rollingE1RM
	return &v
}

// LastDeloadAt returns a copy of the frozen last-deload timestamp, or nil.
func (s LiftStateSnapshot) LastDeloadAt() *time.Time {
	if s.lastDeloadAt == nil {
		return nil
	}
	t := *s.lastDeloadAt
	return &t
}

// snapshotJSON is the wire/db shape of a snapshot.
type snapshotJSON struct {
	UserID               string           `json:"userId"`
	ExerciseID           string           `json:"exerciseId"`
	WorkingWeightKg      float64          `json:"workingWeightKg"`
	TargetReps           int              `json:"targetReps"`
	RollingE1RM          *float64         `json:"rollingE1rm,omitempty"`
	E1RMTrend            TrendTag         `json:"e1rmTrend"`
	ConsecutiveFailures  int              `json:"consecutiveFailures"`
	ConsecutiveSuccesses int              `json:"consecutiveSuccesses"`
	SuccessfulSessions   int              `json:"successfulSessions"`
	LastDeloadAt         *time.Time       `json:"lastDeloadAt,omitempty"`
	Temporal             TemporalFeatures `json:"temporal"`
	FrozenAt             time.Time        `json:"frozenAt"`
}

func (s LiftStateSnapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(snapshotJSON{
		UserID:               s.userID,
		ExerciseID:           s.exerciseID,
		WorkingWeightKg:      s.workingWeightKg,
		TargetReps:           s.targetReps,
		RollingE1RM:          s.rollingE1RM,
		E1RMTrend:            s.e1rmTrend,
		ConsecutiveFailures:  s.consecutiveFailures,
		ConsecutiveSuccesses: s.consecutiveSuccesses,
		SuccessfulSessions:   s.successfulSessions,
		LastDeloadAt:         s.lastDeloadAt,
		Temporal:             s.temporal,
		FrozenAt:             s.frozenAt,
	})
}

func (s *LiftStateSnapshot) UnmarshalJSON(data []byte) error {
	var sj snapshotJSON
	if err := json.Unmarshal(data, &sj); err != nil {
		return err
	}
	*s = LiftStateSnapshot{
		userID:               sj.UserID,
		exerciseID:           sj.ExerciseID,
		workingWeightKg:      sj.WorkingWeightKg,
		targetReps:           sj.TargetReps,
		rollingE1RM:          sj.RollingE1RM,
		e1rmTrend:            sj.E1RMTrend,
		consecutiveFailures:  sj.ConsecutiveFailures,
		consecutiveSuccesses: sj.ConsecutiveSuccesses,
		successfulSessions:   sj.SuccessfulSessions,
		lastDeloadAt:         sj.LastDeloadAt,
		temporal:             sj.Temporal,
		frozenAt:             sj.FrozenAt,
	}
	return nil
}
