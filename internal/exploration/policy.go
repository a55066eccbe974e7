package exploration

// BlockReason explains why the safety gates kept an exploration from
// firing. Can be one of:
//   - user_opt_out
//   - pain_above_threshold
//   - recent_failures
//   - low_predicted_success
type BlockReason string

const (
	BlockUserOptOut          BlockReason = "user_opt_out"
	BlockPainAboveThreshold  BlockReason = "pain_above_threshold"
	BlockRecentFailures      BlockReason = "recent_failures"
	BlockLowPredictedSuccess BlockReason = "low_predicted_success"
)

func (b BlockReason) String() string {
	return string(b)
}

func (b BlockReason) IsValid() bool {
	switch b {
	case BlockUserOptOut, BlockPainAboveThreshold, BlockRecentFailures, BlockLowPredictedSuccess:
		return true
	default:
		return false
	}
}

// Gates are the safety thresholds of the exploration policy, passed in
// explicitly per decision call.
type Gates struct {
	PainLevelThreshold     int     `json:"painLevelThreshold" toml:"pain_level_threshold"`
	MaxConsecutiveFailures int     `json:"maxConsecutiveFailures" toml:"max_consecutive_failures"`
	MinPredictedSuccess    float64 `json:"minPredictedSuccess" toml:"min_predicted_success"`
	MaxDeltaFractionOfLoad float64 `json:"maxDeltaFractionOfLoad" toml:"max_delta_fraction_of_load"`

	// ExplorationRate is the fraction of eligible decisions that actually
	// get perturbed. The rest stay deterministic so the logged action
	// probabilities remain informative for off-policy evaluation.
	ExplorationRate float64 `json:"explorationRate" toml:"exploration_rate"`
}

func DefaultGates() Gates {
	return Gates{
		PainLevelThreshold:     3,
		MaxConsecutiveFailures: 1,
		MinPredictedSuccess:    0.6,
		MaxDeltaFractionOfLoad: 0.05,
		ExplorationRate:        0.1,
	}
}

// EligibilityParams are the safety inputs of a single gating call. Pain
// level is optional, it comes from an external check-in collaborator.
type EligibilityParams struct {
	PredictedPSuccess   float64
	RecentPainLevel     *int
	ConsecutiveFailures int
	UserOptedIn         bool
}

// Policy perturbs the deterministic recommendation for off-policy
// learning, but only when the safety gates allow it. It holds no state
// and produces no side effects; the caller supplies randomness and logs
// the resulting event.
type Policy struct {
	gates Gates
}

func NewPolicy(gates Gates) *Policy {
	return &Policy{
		gates: gates,
	}
}

// Eligibility runs the safety gates in order: opt-out, pain, recent
// failures, predicted success. The first failed gate wins and is reported
// as the block reason; a blocked exploration is not an error, the
// deterministic recommendation still goes out.
func (p *Policy) Eligibility(params EligibilityParams) (bool, BlockReason) {
	if !params.UserOptedIn {
		return false, BlockUserOptOut
	}
	if params.RecentPainLevel != nil && *params.RecentPainLevel > p.gates.PainLevelThreshold {
		return false, BlockPainAboveThreshold
	}
	if params.ConsecutiveFailures > p.gates.MaxConsecutiveFailures {
		return false, BlockRecentFailures
	}
	if params.PredictedPSuccess < p.gates.MinPredictedSuccess {
		return false, BlockLowPredictedSuccess
	}
	return true, ""
}

// GenerateDelta maps a random unit-interval draw to an additive weight
// perturbation. The delta is never negative (exploration never recommends
// below the deterministic baseline) and is capped at the configured
// fraction of the deterministic load.
func (p *Policy) GenerateDelta(deterministicWeightKg, randomUnitInterval float64) float64 {
	if randomUnitInterval < 0 {
		randomUnitInterval = 0
	}
	if randomUnitInterval > 1 {
		randomUnitInterval = 1
	}
	return randomUnitInterval * deterministicWeightKg * p.gates.MaxDeltaFractionOfLoad
}
