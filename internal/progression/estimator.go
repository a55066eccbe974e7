package progression

const (
	// brzyckiSlope is the per-rep coefficient of the Brzycki e1RM formula.
	brzyckiSlope = 0.0278
	// brzyckiIntercept is the constant term of the Brzycki e1RM formula.
	brzyckiIntercept = 1.0278

	// e1rmMaxReps is the rep ceiling above which the Brzycki estimate
	// degrades too much to be useful.
	e1rmMaxReps = 12

	// e1rmMinLoadRatio rejects sets lighter than half of the current
	// e1RM baseline, they carry no strength signal.
	e1rmMinLoadRatio = 0.5

	// e1rmSmoothingAlpha is the exponential smoothing factor for the
	// rolling e1RM.
	e1rmSmoothingAlpha = 0.3
)

// ComputeE1RM estimates the one-rep max from a single performed set using
// the Brzycki formula. It returns ok=false when the set is not usable as a
// strength signal: warm-up sets, failed sets, rep counts outside [1, 12],
// and sets lighter than half the current e1RM baseline (when one exists).
func ComputeE1RM(weightKg float64, reps int, currentE1RM *float64, isFailure, isWarmup bool) (float64, bool) {
	if isWarmup || isFailure {
		return 0, false
	}
	if reps < 1 || reps > e1rmMaxReps {
		return 0, false
	}
	if currentE1RM != nil && *currentE1RM > 0 && weightKg / *currentE1RM < e1rmMinLoadRatio {
		return 0, false
	}
	return weightKg / (brzyckiIntercept - brzyckiSlope*float64(reps)), true
}

// SmoothE1RM folds a fresh e1RM estimate into the previous smoothed value
// with exponential smoothing. With no previous value the fresh estimate is
// taken as-is.
func SmoothE1RM(newEstimate float64, previousSmoothed *float64) float64 {
	if previousSmoothed == nil {
		return newEstimate
	}
	return e1rmSmoothingAlpha*newEstimate + (1-e1rmSmoothingAlpha)*(*previousSmoothed)
}
