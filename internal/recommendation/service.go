package recommendation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/2beens/liftcoach/internal/exploration"
	"github.com/2beens/liftcoach/internal/labeling"
	"github.com/2beens/liftcoach/internal/progression"
	"github.com/2beens/liftcoach/internal/telemetry/metrics"
	"github.com/2beens/liftcoach/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=recommendation

type stateRepo interface {
	Get(ctx context.Context, userID, exerciseID string) (*progression.ExerciseState, error)
	Upsert(ctx context.Context, state progression.ExerciseState) error
}

type setsRepo interface {
	InsertPlannedSets(ctx context.Context, sets []PlannedSet) error
	InsertPerformedSets(ctx context.Context, sets []PerformedSet) error
	ListPerformed(ctx context.Context, exposureID string) ([]PerformedSet, error)
	VolumeSince(ctx context.Context, userID string, since time.Time) (float64, error)
}

type labelsRepo interface {
	Upsert(ctx context.Context, labels labeling.ExposureLabels) error
	LatestForLift(ctx context.Context, userID, exerciseID string) (*labeling.ExposureLabels, error)
}

type liftLocker interface {
	Acquire(ctx context.Context, userID, exerciseID string) (release func(), err error)
}

// PolicyVersion identifies the deterministic rule set baked into this
// build. Bump it whenever the decision rules change, the events carry it
// so old decisions stay attributable.
const PolicyVersion = "double-progression/v1"

var (
	ErrExposureInProgress = errors.New("exposure already being finished")
	ErrNoPerformedSets    = errors.New("no performed sets reported")
)

// RecommendRequest asks for the next prescription of one user+exercise
// pair. Readiness inputs are optional and come from external collaborators
// (check-in forms, a success model); absent values fall back to
// conservative defaults.
type RecommendRequest struct {
	UserID     string `json:"userId"`
	ExerciseID string `json:"exerciseId"`

	// StartWeightKg seeds a lift that has no state yet. Ignored once
	// state exists.
	StartWeightKg *float64 `json:"startWeightKg,omitempty"`

	RecentPainLevel   *int     `json:"recentPainLevel,omitempty"`
	PredictedPSuccess *float64 `json:"predictedPSuccess,omitempty"`
	ExplorationOptIn  bool     `json:"explorationOptIn"`
}

type Recommendation struct {
	Event       RecommendationEvent `json:"event"`
	PlannedSets []PlannedSet        `json:"plannedSets"`
}

// FinishExposureRequest reports a completed exposure: everything the
// lifter actually did, plus session context needed for labeling.
type FinishExposureRequest struct {
	UserID     string `json:"userId"`
	ExerciseID string `json:"exerciseId"`
	ExposureID string `json:"exposureId"`

	// EventID ties the exposure to the prescription it followed. When
	// empty the latest event of the lift is assumed.
	EventID string `json:"eventId,omitempty"`

	PerformedSets []PerformedSet `json:"performedSets"`

	StoppedDueToPain      bool                 `json:"stoppedDueToPain"`
	SessionEndedEarly     bool                 `json:"sessionEndedEarly"`
	PrescribedRestSeconds int                  `json:"prescribedRestSeconds"`
	ModificationReason    *labeling.ReasonCode `json:"modificationReason,omitempty"`
}

type ExposureResult struct {
	Labels   labeling.ExposureLabels `json:"labels"`
	Decision progression.Decision    `json:"decision"`
}

// Service runs the decision cycle: freeze a snapshot, prescribe, log the
// event; then on exposure finish label what happened, advance the state
// machine and persist the new state under a per-lift lock.
type Service struct {
	stateRepo  stateRepo
	eventLog   EventLog
	setsRepo   setsRepo
	labelsRepo labelsRepo
	locker     liftLocker
	cache      *LatestEventCache
	engine     *progression.Engine
	policy     *exploration.Policy
	gates      exploration.Gates
	progCfg    progression.Config
	metrics    *metrics.Manager

	coldStartWeightKg float64

	// injected for determinism in tests
	now  func() time.Time
	rand func() float64
}

func NewService(
	stateRepo stateRepo,
	eventLog EventLog,
	setsRepo setsRepo,
	labelsRepo labelsRepo,
	locker liftLocker,
	cache *LatestEventCache,
	progCfg progression.Config,
	gates exploration.Gates,
	coldStartWeightKg float64,
	metrics *metrics.Manager,
	now func() time.Time,
	rand func() float64,
) *Service {
	return &Service{
		stateRepo:         stateRepo,
		eventLog:          eventLog,
		setsRepo:          setsRepo,
		labelsRepo:        labelsRepo,
		locker:            locker,
		cache:             cache,
		engine:            progression.NewEngine(),
		policy:            exploration.NewPolicy(gates),
		gates:             gates,
		progCfg:           progCfg,
		coldStartWeightKg: coldStartWeightKg,
		metrics:           metrics,
		now:               now,
		rand:              rand,
	}
}

// Recommend produces the next prescription for one lift and logs it as an
// immutable event. The deterministic part comes straight from the stored
// state, exploration may nudge the load upward within the safety gates.
func (s *Service) Recommend(ctx context.Context, req RecommendRequest) (_ *Recommendation, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.recommendation.recommend")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	now := s.now()

	state, err := s.stateRepo.Get(ctx, req.UserID, req.ExerciseID)
	switch {
	case err == nil:
	case errors.Is(err, progression.ErrStateNotFound):
		startWeight := s.coldStartWeightKg
		if req.StartWeightKg != nil && *req.StartWeightKg > 0 {
			startWeight = *req.StartWeightKg
		}
		coldStart := progression.NewColdStartState(
			req.UserID, req.ExerciseID,
			startWeight, s.progCfg.RepRangeMin, now,
		)
		state = &coldStart
		if err := s.stateRepo.Upsert(ctx, coldStart); err != nil {
			return nil, fmt.Errorf("persist cold start state: %w", err)
		}
	default:
		return nil, fmt.Errorf("get exercise state: %w", err)
	}

	temporal, err := s.temporalFeatures(ctx, *state, now)
	if err != nil {
		// temporal features inform the snapshot, they never block a
		// prescription
		log.Errorf("recommend [%s/%s]: temporal features: %s", req.UserID, req.ExerciseID, err)
	}

	snapshot := progression.FreezeSnapshot(*state, temporal, now)

	detWeight := state.CurrentWorkingWeightKg
	detReps := state.TargetReps

	pSuccess := 1.0
	if req.PredictedPSuccess != nil {
		pSuccess = *req.PredictedPSuccess
	}
	eligible, blockedReason := s.policy.Eligibility(exploration.EligibilityParams{
		PredictedPSuccess:   pSuccess,
		RecentPainLevel:     req.RecentPainLevel,
		ConsecutiveFailures: state.ConsecutiveFailures,
		UserOptedIn:         req.ExplorationOptIn,
	})

	recommendedWeight := detWeight
	deltaKg := 0.0
	isExploration := false
	actionProbability := 1.0
	if eligible {
		if s.rand() < s.gates.ExplorationRate {
			deltaKg = s.policy.GenerateDelta(detWeight, s.rand())
			recommendedWeight = detWeight + deltaKg
			isExploration = deltaKg > 0
		}
		if isExploration {
			actionProbability = s.gates.ExplorationRate
		} else {
			actionProbability = 1 - s.gates.ExplorationRate
		}
	}

	event := RecommendationEvent{
		ID:         uuid.NewString(),
		UserID:     req.UserID,
		ExerciseID: req.ExerciseID,

		Action:              state.LastDecision,
		RecommendedWeightKg: recommendedWeight,
		RecommendedReps:     detReps,
		RecommendedSets:     s.progCfg.TargetSets,
		RecommendedRIR:      s.progCfg.TargetRIR,

		PolicyVersion:    PolicyVersion,
		ExecutedPolicyID: executedPolicyID(isExploration),

		IsExploration:       isExploration,
		ActionProbability:   actionProbability,
		ExplorationDeltaKg:  deltaKg,
		ExplorationEligible: eligible,

		DeterministicWeightKg: detWeight,
		DeterministicReps:     detReps,

		Candidates: s.candidates(*state),
		Snapshot:   snapshot,

		Flagged:   recommendedWeight <= 0 || recommendedWeight > implausibleWeightKg,
		CreatedAt: now,
	}
	if !eligible {
		event.ExplorationBlockedReason = &blockedReason
		s.metrics.CounterExplorationsBlocked.WithLabelValues(blockedReason.String()).Inc()
	}

	inserted, err := s.eventLog.Insert(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("insert recommendation event: %w", err)
	}

	planned := s.plannedSets(*inserted, now)
	if err := s.setsRepo.InsertPlannedSets(ctx, planned); err != nil {
		return nil, fmt.Errorf("insert planned sets: %w", err)
	}

	s.cache.Set(*inserted)
	s.metrics.CounterRecommendations.WithLabelValues(inserted.Action.String()).Inc()
	if isExploration {
		s.metrics.CounterExplorations.Inc()
	}

	log.Tracef(
		"recommend [%s/%s]: %s %0.1fkg x %d (exploration: %t)",
		req.UserID, req.ExerciseID,
		inserted.Action, inserted.RecommendedWeightKg, inserted.RecommendedReps,
		isExploration,
	)

	return &Recommendation{
		Event:       *inserted,
		PlannedSets: planned,
	}, nil
}

// FinishExposure labels the reported sets, runs the state machine off
// them and persists the advanced state. Serialized per lift with a lock,
// concurrent finishes of the same lift are rejected.
func (s *Service) FinishExposure(ctx context.Context, req FinishExposureRequest) (_ *ExposureResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.recommendation.finishExposure")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if len(req.PerformedSets) == 0 {
		return nil, ErrNoPerformedSets
	}

	release, err := s.locker.Acquire(ctx, req.UserID, req.ExerciseID)
	if err != nil {
		return nil, ErrExposureInProgress
	}
	defer release()

	now := s.now()

	event, err := s.resolveEvent(ctx, req)
	if err != nil {
		return nil, err
	}

	working := make([]PerformedSet, 0, len(req.PerformedSets))
	for i := range req.PerformedSets {
		set := &req.PerformedSets[i]
		set.UserID = req.UserID
		set.ExerciseID = req.ExerciseID
		set.ExposureID = req.ExposureID
		if set.ID == "" {
			set.ID = uuid.NewString()
		}
		if set.CreatedAt.IsZero() {
			set.CreatedAt = now
		}
		flagImplausible(set)
		if !set.Warmup {
			working = append(working, *set)
		}
	}
	if len(working) == 0 {
		return nil, ErrNoPerformedSets
	}

	targetReps, targetRIR, recWeight := s.targets(event)

	setOutcomes := make([]labeling.SetOutcome, 0, len(working))
	for _, set := range working {
		setOutcomes = append(setOutcomes, labeling.ComputeSetOutcome(labeling.SetOutcomeParams{
			RepsAchieved: set.Reps,
			TargetReps:   targetReps,
			RIRObserved:  set.RIR,
			TargetRIR:    targetRIR,
			IsFailure:    set.Failure,
			PainStop:     set.PainStop,
		}))
	}

	outcome := labeling.ComputeExposureOutcome(setOutcomes, req.StoppedDueToPain)
	nearFailure := labeling.ComputeNearFailureSignals(
		setOutcomes,
		time.Duration(working[len(working)-1].RestSeconds)*time.Second,
		time.Duration(req.PrescribedRestSeconds)*time.Second,
		req.SessionEndedEarly,
	)

	meanWeight, minReps := summarizeWorking(working)
	var modification *labeling.ModificationDetails
	if event != nil {
		mod := labeling.ComputeModification(
			recWeight, targetReps,
			meanWeight, minReps,
			req.ModificationReason,
		)
		modification = &mod
	}

	if err := s.backfillNextLoadReduced(ctx, req, meanWeight); err != nil {
		log.Errorf("finish exposure [%s]: backfill previous labels: %s", req.ExposureID, err)
	}

	labels := labeling.ExposureLabels{
		ExposureID:   req.ExposureID,
		UserID:       req.UserID,
		ExerciseID:   req.ExerciseID,
		SetOutcomes:  setOutcomes,
		Outcome:      outcome,
		NearFailure:  nearFailure,
		Modification: modification,
		MeanWeightKg: meanWeight,
		CleanLabel:   outcome.IsClean(),
		ComputedAt:   now,
	}
	if err := s.labelsRepo.Upsert(ctx, labels); err != nil {
		return nil, fmt.Errorf("upsert exposure labels: %w", err)
	}

	if err := s.setsRepo.InsertPerformedSets(ctx, req.PerformedSets); err != nil {
		return nil, fmt.Errorf("insert performed sets: %w", err)
	}

	decision, err := s.advanceState(ctx, req, working, now)
	if err != nil {
		return nil, err
	}

	s.metrics.CounterExposuresLabeled.Inc()
	if decision.Action == progression.ActionDeload {
		s.metrics.CounterDeloads.Inc()
	}

	log.Tracef(
		"finish exposure [%s] [%s/%s]: outcome %s, next: %s %0.1fkg x %d",
		req.ExposureID, req.UserID, req.ExerciseID,
		outcome, decision.Action, decision.NextWeightKg, decision.TargetReps,
	)

	return &ExposureResult{
		Labels:   labels,
		Decision: decision,
	}, nil
}

// advanceState runs the progression engine and writes the new state. A
// version conflict means someone advanced the lift between our read and
// write, the decision is recomputed off the fresh state once.
func (s *Service) advanceState(
	ctx context.Context,
	req FinishExposureRequest,
	working []PerformedSet,
	now time.Time,
) (progression.Decision, error) {
	samples := make([]progression.SetSample, 0, len(working))
	for _, set := range working {
		samples = append(samples, progression.SetSample{
			WeightKg:  set.WeightKg,
			Reps:      set.Reps,
			Warmup:    set.Warmup,
			Failure:   set.Failure,
			Completed: set.Completed,
		})
	}

	for attempt := 0; ; attempt++ {
		state, err := s.stateRepo.Get(ctx, req.UserID, req.ExerciseID)
		if errors.Is(err, progression.ErrStateNotFound) {
			// exposure reported for a lift that never got a
			// recommendation, seed state from what was lifted
			coldStart := progression.NewColdStartState(
				req.UserID, req.ExerciseID,
				working[0].WeightKg, s.progCfg.RepRangeMin, now,
			)
			state = &coldStart
		} else if err != nil {
			return progression.Decision{}, fmt.Errorf("get exercise state: %w", err)
		}

		decision, newState := s.engine.Decide(s.progCfg, *state, samples, now)

		err = s.stateRepo.Upsert(ctx, newState)
		if err == nil {
			return decision, nil
		}
		if errors.Is(err, progression.ErrVersionConflict) && attempt == 0 {
			s.metrics.CounterStateConflicts.Inc()
			log.Warnf("finish exposure [%s]: state version conflict, retrying", req.ExposureID)
			continue
		}
		return progression.Decision{}, fmt.Errorf("upsert exercise state: %w", err)
	}
}

// backfillNextLoadReduced completes the near-failure signals of the
// previous exposure now that the load actually used this time is known.
func (s *Service) backfillNextLoadReduced(
	ctx context.Context,
	req FinishExposureRequest,
	meanWeight float64,
) error {
	prev, err := s.labelsRepo.LatestForLift(ctx, req.UserID, req.ExerciseID)
	if errors.Is(err, labeling.ErrLabelsNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if prev.ExposureID == req.ExposureID || prev.NearFailure.NextLoadReduced != nil {
		return nil
	}
	reduced := meanWeight < prev.MeanWeightKg-0.1
	prev.NearFailure = prev.NearFailure.WithNextLoadReduced(reduced)
	return s.labelsRepo.Upsert(ctx, *prev)
}

// resolveEvent finds the prescription this exposure followed: explicit
// event id, then the cache, then the log. An exposure without any
// prescription is allowed, it is labeled without modification details.
func (s *Service) resolveEvent(ctx context.Context, req FinishExposureRequest) (*RecommendationEvent, error) {
	if req.EventID != "" {
		event, err := s.eventLog.Get(ctx, req.EventID)
		if err != nil {
			return nil, fmt.Errorf("get recommendation event %s: %w", req.EventID, err)
		}
		return event, nil
	}
	if event, ok := s.cache.Get(req.UserID, req.ExerciseID); ok {
		return event, nil
	}
	event, err := s.eventLog.LatestForLift(ctx, req.UserID, req.ExerciseID)
	if errors.Is(err, ErrEventNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get latest recommendation event: %w", err)
	}
	return event, nil
}

func (s *Service) targets(event *RecommendationEvent) (targetReps int, targetRIR, recWeight float64) {
	if event != nil {
		return event.RecommendedReps, event.RecommendedRIR, event.RecommendedWeightKg
	}
	return s.progCfg.RepRangeMin, s.progCfg.TargetRIR, 0
}

func (s *Service) temporalFeatures(
	ctx context.Context,
	state progression.ExerciseState,
	now time.Time,
) (progression.TemporalFeatures, error) {
	var temporal progression.TemporalFeatures

	latest, err := s.eventLog.LatestForLift(ctx, state.UserID, state.ExerciseID)
	switch {
	case err == nil:
		days := int(now.Sub(latest.CreatedAt).Hours() / 24)
		temporal.DaysSinceLastExposure = &days
	case errors.Is(err, ErrEventNotFound):
	default:
		return temporal, fmt.Errorf("latest event: %w", err)
	}

	if state.LastDeloadAt != nil {
		days := int(now.Sub(*state.LastDeloadAt).Hours() / 24)
		temporal.DaysSinceLastDeload = &days
	}

	count, err := s.eventLog.CountSince(ctx, state.UserID, state.ExerciseID, now.AddDate(0, 0, -14))
	if err != nil {
		return temporal, fmt.Errorf("count events: %w", err)
	}
	temporal.ExposuresLast14Days = count

	volume, err := s.setsRepo.VolumeSince(ctx, state.UserID, now.AddDate(0, 0, -7))
	if err != nil {
		return temporal, fmt.Errorf("volume: %w", err)
	}
	temporal.VolumeLast7DaysKg = volume

	return temporal, nil
}

// candidates enumerates the alternatives the rule-based policy could have
// picked, logged alongside the chosen action for off-policy evaluation.
func (s *Service) candidates(state progression.ExerciseState) []CandidateAction {
	weight := state.CurrentWorkingWeightKg
	return []CandidateAction{
		{Action: progression.ActionHold, WeightKg: weight, Reps: state.TargetReps},
		{
			Action:   progression.ActionIncreaseReps,
			WeightKg: weight,
			Reps:     minInt(state.TargetReps+1, s.progCfg.RepRangeMax),
		},
		{
			Action:   progression.ActionIncreaseWeight,
			WeightKg: weight + s.progCfg.WeightIncrementKg,
			Reps:     s.progCfg.RepRangeMin,
		},
		{
			Action:   progression.ActionDeload,
			WeightKg: math.Round(weight*s.progCfg.DeloadFactor*10) / 10,
			Reps:     s.progCfg.RepRangeMin,
		},
	}
}

func (s *Service) plannedSets(event RecommendationEvent, now time.Time) []PlannedSet {
	planned := make([]PlannedSet, 0, event.RecommendedSets)
	for i := 0; i < event.RecommendedSets; i++ {
		planned = append(planned, PlannedSet{
			ID:             uuid.NewString(),
			EventID:        event.ID,
			SetNumber:      i + 1,
			TargetWeightKg: event.RecommendedWeightKg,
			TargetReps:     event.RecommendedReps,
			TargetRIR:      event.RecommendedRIR,
			CreatedAt:      now,
		})
	}
	return planned
}

// summarizeWorking reduces an exposure to the values compared against the
// prescription: mean load across working sets and the weakest set's reps.
func summarizeWorking(working []PerformedSet) (meanWeight float64, minReps int) {
	var totalWeight float64
	minReps = working[0].Reps
	for _, set := range working {
		totalWeight += set.WeightKg
		if set.Reps < minReps {
			minReps = set.Reps
		}
	}
	return totalWeight / float64(len(working)), minReps
}

func executedPolicyID(isExploration bool) string {
	if isExploration {
		return "uniform-upward-delta/v1"
	}
	return "deterministic/v1"
}

// DefaultRand is the exploration randomness source used outside of tests.
func DefaultRand() func() float64 {
	return rand.Float64
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
