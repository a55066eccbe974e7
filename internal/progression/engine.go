package progression

import (
	"math"
	"time"
)

// Action is the decision the engine takes for the next exposure. Can be
// one of:
//   - increase_weight
//   - increase_reps
//   - hold
//   - deload
type Action string

const (
	ActionIncreaseWeight Action = "increase_weight"
	ActionIncreaseReps   Action = "increase_reps"
	ActionHold           Action = "hold"
	ActionDeload         Action = "deload"
)

func (a Action) String() string {
	return string(a)
}

func (a Action) IsValid() bool {
	switch a {
	case ActionIncreaseWeight, ActionIncreaseReps, ActionHold, ActionDeload:
		return true
	default:
		return false
	}
}

// Config holds the double-progression parameters for one decision call.
// It is always passed in explicitly, there are no ambient defaults baked
// into the engine.
type Config struct {
	RepRangeMin       int     `json:"repRangeMin" toml:"rep_range_min"`
	RepRangeMax       int     `json:"repRangeMax" toml:"rep_range_max"`
	WeightIncrementKg float64 `json:"weightIncrementKg" toml:"weight_increment_kg"`
	DeloadFactor      float64 `json:"deloadFactor" toml:"deload_factor"`
	FailureThreshold  int     `json:"failureThreshold" toml:"failure_threshold"`
	LoadStepKg        float64 `json:"loadStepKg" toml:"load_step_kg"`
	TargetSets        int     `json:"targetSets" toml:"target_sets"`
	TargetRIR         float64 `json:"targetRir" toml:"target_rir"`
}

func DefaultConfig() Config {
	return Config{
		RepRangeMin:       6,
		RepRangeMax:       10,
		WeightIncrementKg: 2.5,
		DeloadFactor:      0.9,
		FailureThreshold:  3,
		LoadStepKg:        2.5,
		TargetSets:        3,
		TargetRIR:         2,
	}
}

// SetSample is one performed working set as the engine sees it.
type SetSample struct {
	WeightKg  float64
	Reps      int
	Warmup    bool
	Failure   bool
	Completed bool
}

// Decision is the prescription for the next exposure.
type Decision struct {
	Action       Action  `json:"action"`
	NextWeightKg float64 `json:"nextWeightKg"`
	TargetReps   int     `json:"targetReps"`
	TargetSets   int     `json:"targetSets"`
	TargetRIR    float64 `json:"targetRir"`
}

// Engine runs the progressive-overload state machine, once per exposure.
// Decide is pure: it returns the decision and the updated state copy,
// persisting is the caller's job.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Decide evaluates the completed exposure against the rep range and
// produces the next prescription plus the updated state.
//
// The rep-ceiling check wins over the rep-floor check, and both win over
// failure accounting. With zero qualifying sets the engine holds at the
// rep floor and leaves the state untouched.
func (e *Engine) Decide(cfg Config, state ExerciseState, sets []SetSample, now time.Time) (Decision, ExerciseState) {
	sample := workingSample(sets)

	if len(sample) == 0 {
		return Decision{
			Action:       ActionHold,
			NextWeightKg: state.CurrentWorkingWeightKg,
			TargetReps:   cfg.RepRangeMin,
			TargetSets:   cfg.TargetSets,
			TargetRIR:    cfg.TargetRIR,
		}, state
	}

	var weightSum float64
	minReps := sample[0].Reps
	allAtLeastLB := true
	allAtLeastUB := true
	for _, s := range sample {
		weightSum += s.WeightKg
		if s.Reps < minReps {
			minReps = s.Reps
		}
		if s.Reps < cfg.RepRangeMin {
			allAtLeastLB = false
		}
		if s.Reps < cfg.RepRangeMax {
			allAtLeastUB = false
		}
	}
	baseWeight := roundToStep(weightSum/float64(len(sample)), cfg.LoadStepKg)

	var decision Decision
	switch {
	case allAtLeastUB:
		decision = Decision{
			Action:       ActionIncreaseWeight,
			NextWeightKg: roundToStep(baseWeight+cfg.WeightIncrementKg, cfg.LoadStepKg),
			TargetReps:   cfg.RepRangeMin,
		}
		state.ConsecutiveFailures = 0
		state.ConsecutiveSuccesses++
		state.SuccessfulSessions++
	case allAtLeastLB:
		decision = Decision{
			Action:       ActionIncreaseReps,
			NextWeightKg: baseWeight,
			TargetReps:   clampInt(minReps+1, cfg.RepRangeMin, cfg.RepRangeMax),
		}
		state.ConsecutiveFailures = 0
		state.ConsecutiveSuccesses++
		state.SuccessfulSessions++
	default:
		state.ConsecutiveFailures++
		state.ConsecutiveSuccesses = 0
		if state.ConsecutiveFailures >= cfg.FailureThreshold {
			decision = Decision{
				Action:       ActionDeload,
				NextWeightKg: roundToStep(math.Max(0, baseWeight*cfg.DeloadFactor), cfg.LoadStepKg),
				TargetReps:   cfg.RepRangeMin,
			}
			state.ConsecutiveFailures = 0
			deloadAt := now
			state.LastDeloadAt = &deloadAt
		} else {
			decision = Decision{
				Action:       ActionHold,
				NextWeightKg: baseWeight,
				TargetReps:   cfg.RepRangeMin,
			}
		}
	}

	decision.TargetSets = cfg.TargetSets
	decision.TargetRIR = cfg.TargetRIR

	state.CurrentWorkingWeightKg = decision.NextWeightKg
	state.TargetReps = decision.TargetReps
	state.LastDecision = decision.Action
	state.UpdatedAt = now

	e.updateE1RM(&state, sample, now)

	return decision, state
}

// updateE1RM folds the best usable set of the exposure into the rolling
// e1RM and refreshes the trend tag.
func (e *Engine) updateE1RM(state *ExerciseState, sample []SetSample, now time.Time) {
	var best float64
	found := false
	for _, s := range sample {
		est, ok := ComputeE1RM(s.WeightKg, s.Reps, state.RollingE1RM, s.Failure, s.Warmup)
		if !ok {
			continue
		}
		if !found || est > best {
			best = est
			found = true
		}
	}
	if !found {
		return
	}

	smoothed := SmoothE1RM(best, state.RollingE1RM)
	state.RollingE1RM = &smoothed
	state.appendE1RMPoint(E1RMPoint{Date: now, Value: smoothed})
	state.E1RMTrend = computeTrend(state.E1RMHistory)
}

// workingSample filters the performed sets down to the ones the state
// machine evaluates: non warm-up, and only the completed ones when any set
// is marked completed at all.
func workingSample(sets []SetSample) []SetSample {
	working := make([]SetSample, 0, len(sets))
	anyCompleted := false
	for _, s := range sets {
		if s.Warmup {
			continue
		}
		if s.Completed {
			anyCompleted = true
		}
		working = append(working, s)
	}

	if !anyCompleted {
		return working
	}

	completed := make([]SetSample, 0, len(working))
	for _, s := range working {
		if s.Completed {
			completed = append(completed, s)
		}
	}
	return completed
}

func roundToStep(weightKg, stepKg float64) float64 {
	if stepKg <= 0 {
		return weightKg
	}
	return math.Round(weightKg/stepKg) * stepKg
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
