package recommendation

import (
	"time"

	"github.com/2beens/liftcoach/internal/exploration"
	"github.com/2beens/liftcoach/internal/progression"
)

// PlannedSet is one prescribed set. Created at prescription time and never
// edited, a correction is a new row.
type PlannedSet struct {
	ID             string    `json:"id"`
	EventID        string    `json:"eventId"`
	SetNumber      int       `json:"setNumber"`
	TargetWeightKg float64   `json:"targetWeightKg"`
	TargetReps     int       `json:"targetReps"`
	TargetRIR      float64   `json:"targetRir"`
	Tempo          *string   `json:"tempo,omitempty"`
	Warmup         bool      `json:"warmup"`
	CreatedAt      time.Time `json:"createdAt"`
}

// PerformedSet is what the lifter actually did, as reported by the
// session-tracking collaborator. Mutable until the session ends, then
// append-only history.
type PerformedSet struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	ExerciseID   string    `json:"exerciseId"`
	ExposureID   string    `json:"exposureId"`
	PlannedSetID *string   `json:"plannedSetId,omitempty"`
	Reps         int       `json:"reps"`
	WeightKg     float64   `json:"weightKg"`
	RIR          *float64  `json:"rir,omitempty"`
	RPE          *float64  `json:"rpe,omitempty"`
	RestSeconds  int       `json:"restSeconds"`
	Warmup       bool      `json:"warmup"`
	Failure      bool      `json:"failure"`
	DropSet      bool      `json:"dropSet"`
	Completed    bool      `json:"completed"`
	PainStop     bool      `json:"painStop"`
	// Flagged marks implausible load/rep values for downstream
	// invalidation; the set still takes part in the decision.
	Flagged   bool      `json:"flagged"`
	CreatedAt time.Time `json:"createdAt"`
}

// CandidateAction is one enumerated alternative the deterministic policy
// could have taken, logged for off-policy evaluation.
type CandidateAction struct {
	Action   progression.Action `json:"action"`
	WeightKg float64            `json:"weightKg"`
	Reps     int                `json:"reps"`
}

// RecommendationEvent is the immutable record of one decision: the chosen
// action, the frozen state snapshot it was made from, the policy identity
// and exploration metadata, and the deterministic counterfactual. Never
// updated after creation; corrections are new events.
type RecommendationEvent struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	ExerciseID string `json:"exerciseId"`

	Action              progression.Action `json:"action"`
	RecommendedWeightKg float64            `json:"recommendedWeightKg"`
	RecommendedReps     int                `json:"recommendedReps"`
	RecommendedSets     int                `json:"recommendedSets"`
	RecommendedRIR      float64            `json:"recommendedRir"`

	PolicyVersion    string `json:"policyVersion"`
	ExecutedPolicyID string `json:"executedPolicyId"`

	IsExploration            bool                     `json:"isExploration"`
	ActionProbability        float64                  `json:"actionProbability"`
	ExplorationDeltaKg       float64                  `json:"explorationDeltaKg"`
	ExplorationEligible      bool                     `json:"explorationEligible"`
	ExplorationBlockedReason *exploration.BlockReason `json:"explorationBlockedReason,omitempty"`

	// deterministic counterfactual, what the rule-based policy alone
	// would have prescribed
	DeterministicWeightKg float64 `json:"deterministicWeightKg"`
	DeterministicReps     int     `json:"deterministicReps"`

	Candidates []CandidateAction `json:"candidates,omitempty"`

	Snapshot progression.LiftStateSnapshot `json:"snapshot"`

	Flagged   bool      `json:"flagged"`
	CreatedAt time.Time `json:"createdAt"`
}

const (
	// implausibleWeightKg is the load above which a value is assumed to
	// be a unit or entry error.
	implausibleWeightKg = 600
	// implausibleReps is the rep count above which a value is assumed to
	// be an entry error.
	implausibleReps = 50
)

// flagImplausible marks unit/bounds violations on a performed set. The set
// is kept and still answered, downstream consumers filter on the flag.
func flagImplausible(s *PerformedSet) {
	if s.WeightKg < 0 || s.WeightKg > implausibleWeightKg || s.Reps > implausibleReps {
		s.Flagged = true
	}
}
