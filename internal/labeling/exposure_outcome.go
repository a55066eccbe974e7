package labeling

// ExposureOutcome is the aggregate label of one exercise within one
// session. Can be one of:
//   - success
//   - partial
//   - failure
//   - unknown_difficulty
//   - pain_stop
//   - skipped
type ExposureOutcome string

const (
	ExposureSuccess           ExposureOutcome = "success"
	ExposurePartial           ExposureOutcome = "partial"
	ExposureFailure           ExposureOutcome = "failure"
	ExposureUnknownDifficulty ExposureOutcome = "unknown_difficulty"
	ExposurePainStop          ExposureOutcome = "pain_stop"
	ExposureSkipped           ExposureOutcome = "skipped"
)

func (o ExposureOutcome) String() string {
	return string(o)
}

func (o ExposureOutcome) IsValid() bool {
	switch o {
	case ExposureSuccess, ExposurePartial, ExposureFailure,
		ExposureUnknownDifficulty, ExposurePainStop, ExposureSkipped:
		return true
	default:
		return false
	}
}

// IsClean reports whether the aggregate label is usable as a training target.
func (o ExposureOutcome) IsClean() bool {
	switch o {
	case ExposureSuccess, ExposurePartial, ExposureFailure:
		return true
	default:
		return false
	}
}

// ComputeExposureOutcome aggregates the per-set labels of one exposure.
//
// A would-be all-success exposure is downgraded to unknown_difficulty when
// unknown-difficulty sets are present: ambiguous sets must never be folded
// into a clean success label, that would contaminate the training signal.
func ComputeExposureOutcome(setOutcomes []SetOutcome, stoppedDueToPain bool) ExposureOutcome {
	if stoppedDueToPain {
		return ExposurePainStop
	}

	var successes, failuresOrGrinders, unknown int
	for _, o := range setOutcomes {
		switch o {
		case SetSuccess:
			successes++
		case SetFailure, SetGrinder:
			failuresOrGrinders++
		case SetUnknownDifficulty:
			unknown++
		}
	}

	if successes+failuresOrGrinders == 0 {
		if unknown > 0 {
			return ExposureUnknownDifficulty
		}
		return ExposureSkipped
	}

	if failuresOrGrinders == 0 {
		if unknown > 0 {
			return ExposureUnknownDifficulty
		}
		return ExposureSuccess
	}
	if successes == 0 {
		return ExposureFailure
	}
	return ExposurePartial
}
