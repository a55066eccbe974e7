package labeling

import "time"

const (
	weightMissedReps        = 0.4
	weightLastRepGrind      = 0.25
	weightUnusuallyLongRest = 0.15
	weightEndedEarly        = 0.15
	weightNextLoadReduced   = 0.3

	// longRestFactor marks the last working set's rest as unusually long
	// when it exceeds the prescribed rest by this factor.
	longRestFactor = 1.5

	// tooAggressiveScore is the composite-score cutoff for the
	// too-aggressive verdict.
	tooAggressiveScore = 0.4
)

// NearFailureSignals is the auxiliary, continuous "too aggressive" signal
// of one exposure. Hard failure is rare in logged data; these weaker
// markers fill the gap.
type NearFailureSignals struct {
	MissedReps        bool `json:"missedReps"`
	LastRepGrind      bool `json:"lastRepGrind"`
	UnusuallyLongRest bool `json:"unusuallyLongRest"`
	SessionEndedEarly bool `json:"sessionEndedEarly"`

	// NextLoadReduced is only known after the next exposure is observed;
	// nil until then.
	NextLoadReduced *bool `json:"nextLoadReduced,omitempty"`
}

// ComputeNearFailureSignals derives the boolean markers from the per-set
// outcomes and the rest timing of the last working set. A prescribed rest
// of zero disables the rest check.
func ComputeNearFailureSignals(
	setOutcomes []SetOutcome,
	lastSetRest, prescribedRest time.Duration,
	sessionEndedEarly bool,
) NearFailureSignals {
	signals := NearFailureSignals{
		SessionEndedEarly: sessionEndedEarly,
	}
	for _, o := range setOutcomes {
		switch o {
		case SetFailure:
			signals.MissedReps = true
		case SetGrinder:
			signals.LastRepGrind = true
		}
	}
	if prescribedRest > 0 && lastSetRest > time.Duration(longRestFactor*float64(prescribedRest)) {
		signals.UnusuallyLongRest = true
	}
	return signals
}

// WithNextLoadReduced returns a copy with the post-hoc marker filled in.
func (s NearFailureSignals) WithNextLoadReduced(reduced bool) NearFailureSignals {
	s.NextLoadReduced = &reduced
	return s
}

// Score reduces the signals to a single value in [0, 1].
func (s NearFailureSignals) Score() float64 {
	var score float64
	if s.MissedReps {
		score += weightMissedReps
	}
	if s.LastRepGrind {
		score += weightLastRepGrind
	}
	if s.UnusuallyLongRest {
		score += weightUnusuallyLongRest
	}
	if s.SessionEndedEarly {
		score += weightEndedEarly
	}
	if s.NextLoadReduced != nil && *s.NextLoadReduced {
		score += weightNextLoadReduced
	}

	if score > 1 {
		return 1
	}
	if score < 0 {
		return 0
	}
	return score
}

// IsTooAggressive reports whether the exposure overshot the lifter's
// capacity: either reps were missed outright, or the composite score
// crosses the cutoff.
func (s NearFailureSignals) IsTooAggressive() bool {
	return s.MissedReps || s.Score() >= tooAggressiveScore
}
