package labeling

// SetOutcome is the 3-state-plus-exclusions label of a single performed
// set. Can be one of:
//   - success
//   - failure
//   - grinder
//   - unknown_difficulty
//   - pain_stop
//   - skipped
//
// Only success, failure and grinder are clean labels; the rest stay in
// storage but are excluded from binary-classification exports by default.
type SetOutcome string

const (
	SetSuccess           SetOutcome = "success"
	SetFailure           SetOutcome = "failure"
	SetGrinder           SetOutcome = "grinder"
	SetUnknownDifficulty SetOutcome = "unknown_difficulty"
	SetPainStop          SetOutcome = "pain_stop"
	SetSkipped           SetOutcome = "skipped"
)

func (o SetOutcome) String() string {
	return string(o)
}

func (o SetOutcome) IsValid() bool {
	switch o {
	case SetSuccess, SetFailure, SetGrinder, SetUnknownDifficulty, SetPainStop, SetSkipped:
		return true
	default:
		return false
	}
}

// IsClean reports whether the label is usable as a training target.
func (o SetOutcome) IsClean() bool {
	switch o {
	case SetSuccess, SetFailure, SetGrinder:
		return true
	default:
		return false
	}
}

// SetOutcomeParams are the inputs of a single set classification.
type SetOutcomeParams struct {
	RepsAchieved int
	TargetReps   int
	RIRObserved  *float64
	TargetRIR    float64
	IsFailure    bool
	PainStop     bool
}

// ComputeSetOutcome classifies one performed set. Pain always wins and
// excludes the set from training. A missing RIR on a reps-met set is
// deliberately NOT a success: lifters tend to skip logging RIR exactly on
// the sets that got away from them, so silence is ambiguity, not ease.
func ComputeSetOutcome(p SetOutcomeParams) SetOutcome {
	if p.PainStop {
		return SetPainStop
	}
	if p.IsFailure {
		return SetFailure
	}
	if p.RepsAchieved < p.TargetReps {
		return SetFailure
	}

	if p.RIRObserved == nil {
		return SetUnknownDifficulty
	}
	if *p.RIRObserved < p.TargetRIR-1 {
		return SetGrinder
	}
	return SetSuccess
}
