package recommendation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/liftcoach/internal/exploration"
	"github.com/2beens/liftcoach/internal/progression"
	"github.com/2beens/liftcoach/internal/telemetry/tracing"
	"github.com/2beens/liftcoach/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrEventNotFound = errors.New("recommendation event not found")
	// ErrEventExists comes back on an insert with an already logged id,
	// usually a client retrying a request that did land.
	ErrEventExists = errors.New("recommendation event already logged")
)

// EventLog is the write-once view of the recommendation event store.
// There is deliberately no update or delete on it, an accidental mutation
// of a logged decision must be a type error, not a runtime convention.
type EventLog interface {
	Insert(ctx context.Context, event RecommendationEvent) (*RecommendationEvent, error)
	Get(ctx context.Context, id string) (*RecommendationEvent, error)
	List(ctx context.Context, params ListEventsParams) ([]RecommendationEvent, int, error)
	LatestForLift(ctx context.Context, userID, exerciseID string) (*RecommendationEvent, error)
	CountSince(ctx context.Context, userID, exerciseID string, since time.Time) (int, error)
}

type ListEventsParams struct {
	UserID     string
	ExerciseID string
	From       *time.Time
	To         *time.Time
	Page       int
	Size       int
}

type EventRepo struct {
	db *pgxpool.Pool
}

var _ EventLog = (*EventRepo)(nil)

func NewEventRepo(db *pgxpool.Pool) *EventRepo {
	return &EventRepo{
		db: db,
	}
}

func (r *EventRepo) Insert(ctx context.Context, event RecommendationEvent) (_ *RecommendationEvent, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.recommendation.events.insert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("event.id", event.ID))
	span.SetAttributes(attribute.String("action", event.Action.String()))

	snapshotJson, err := json.Marshal(event.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	var candidatesJson []byte
	if len(event.Candidates) > 0 {
		candidatesJson, err = json.Marshal(event.Candidates)
		if err != nil {
			return nil, fmt.Errorf("marshal candidates: %w", err)
		}
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO recommendation_event (
			id, user_id, exercise_id, action,
			recommended_weight_kg, recommended_reps, recommended_sets, recommended_rir,
			policy_version, executed_policy_id,
			is_exploration, action_probability, exploration_delta_kg,
			exploration_eligible, exploration_blocked_reason,
			deterministic_weight_kg, deterministic_reps,
			candidates, snapshot, flagged, created_at
		)
		VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21
		);`,
		event.ID, event.UserID, event.ExerciseID, event.Action,
		event.RecommendedWeightKg, event.RecommendedReps, event.RecommendedSets, event.RecommendedRIR,
		event.PolicyVersion, event.ExecutedPolicyID,
		event.IsExploration, event.ActionProbability, event.ExplorationDeltaKg,
		event.ExplorationEligible, event.ExplorationBlockedReason,
		event.DeterministicWeightKg, event.DeterministicReps,
		candidatesJson, snapshotJson, event.Flagged, event.CreatedAt,
	)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrEventExists
		}
		return nil, fmt.Errorf("insert event: %w", err)
	}

	return &event, nil
}

func (r *EventRepo) Get(ctx context.Context, id string) (_ *RecommendationEvent, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.recommendation.events.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("event.id", id))

	rows, err := r.db.Query(ctx, eventSelect+`WHERE id = $1;`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	events, err := rows2events(rows)
	if err != nil {
		return nil, err
	}
	if len(events) != 1 {
		return nil, ErrEventNotFound
	}
	return &events[0], nil
}

func (r *EventRepo) List(ctx context.Context, params ListEventsParams) (_ []RecommendationEvent, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.recommendation.events.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", params.UserID))
	span.SetAttributes(attribute.String("exercise_id", params.ExerciseID))
	span.SetAttributes(attribute.Int("page", params.Page))
	span.SetAttributes(attribute.Int("size", params.Size))

	if params.Page < 1 {
		return nil, -1, errors.New("page must be greater than 0")
	}
	if params.Size < 1 {
		return nil, -1, errors.New("size must be greater than 0")
	}

	if err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM recommendation_event
		WHERE ($1::text = '' OR user_id = $1)
		  AND ($2::text = '' OR exercise_id = $2)
		  AND ($3::timestamp IS NULL OR created_at >= $3)
		  AND ($4::timestamp IS NULL OR created_at <= $4);`,
		params.UserID, params.ExerciseID, params.From, params.To,
	).Scan(&total); err != nil {
		return nil, -1, fmt.Errorf("count events: %w", err)
	}

	limit := params.Size
	offset := (params.Page - 1) * params.Size

	rows, err := r.db.Query(ctx, eventSelect+`
		WHERE ($1::text = '' OR user_id = $1)
		  AND ($2::text = '' OR exercise_id = $2)
		  AND ($3::timestamp IS NULL OR created_at >= $3)
		  AND ($4::timestamp IS NULL OR created_at <= $4)
		ORDER BY created_at DESC
		LIMIT $5
		OFFSET $6;`,
		params.UserID, params.ExerciseID, params.From, params.To,
		limit, offset,
	)
	if err != nil {
		return nil, -1, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, -1, err
	}

	events, err := rows2events(rows)
	if err != nil {
		return nil, -1, err
	}
	return events, total, nil
}

func (r *EventRepo) LatestForLift(ctx context.Context, userID, exerciseID string) (_ *RecommendationEvent, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.recommendation.events.latest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))
	span.SetAttributes(attribute.String("exercise_id", exerciseID))

	rows, err := r.db.Query(ctx, eventSelect+`
		WHERE user_id = $1 AND exercise_id = $2
		ORDER BY created_at DESC
		LIMIT 1;`,
		userID, exerciseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	events, err := rows2events(rows)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, ErrEventNotFound
	}
	return &events[0], nil
}

// CountSince counts decisions for one lift in a recent window, used for
// the frozen 14-day exposure-count feature.
func (r *EventRepo) CountSince(ctx context.Context, userID, exerciseID string, since time.Time) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.recommendation.events.countsince")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var count int
	if err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM recommendation_event
		WHERE user_id = $1 AND exercise_id = $2 AND created_at >= $3;`,
		userID, exerciseID, since,
	).Scan(&count); err != nil {
		return -1, fmt.Errorf("count events since: %w", err)
	}
	return count, nil
}

const eventSelect = `
	SELECT
		id, user_id, exercise_id, action,
		recommended_weight_kg, recommended_reps, recommended_sets, recommended_rir,
		policy_version, executed_policy_id,
		is_exploration, action_probability, exploration_delta_kg,
		exploration_eligible, exploration_blocked_reason,
		deterministic_weight_kg, deterministic_reps,
		candidates, snapshot, flagged, created_at
	FROM recommendation_event
`

func rows2events(rows pgx.Rows) ([]RecommendationEvent, error) {
	events := make([]RecommendationEvent, 0)
	for rows.Next() {
		var e RecommendationEvent
		var action string
		var blockedReason *string
		var candidatesBytes, snapshotBytes []byte
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.ExerciseID, &action,
			&e.RecommendedWeightKg, &e.RecommendedReps, &e.RecommendedSets, &e.RecommendedRIR,
			&e.PolicyVersion, &e.ExecutedPolicyID,
			&e.IsExploration, &e.ActionProbability, &e.ExplorationDeltaKg,
			&e.ExplorationEligible, &blockedReason,
			&e.DeterministicWeightKg, &e.DeterministicReps,
			&candidatesBytes, &snapshotBytes, &e.Flagged, &e.CreatedAt,
		); err != nil {
			return nil, err
		}

		e.Action = progression.Action(action)
		if blockedReason != nil {
			br := exploration.BlockReason(*blockedReason)
			e.ExplorationBlockedReason = &br
		}
		if len(candidatesBytes) > 0 {
			if err := json.Unmarshal(candidatesBytes, &e.Candidates); err != nil {
				return nil, fmt.Errorf("unmarshal candidates for event %s: %w", e.ID, err)
			}
		}
		if len(snapshotBytes) > 0 {
			if err := json.Unmarshal(snapshotBytes, &e.Snapshot); err != nil {
				return nil, fmt.Errorf("unmarshal snapshot for event %s: %w", e.ID, err)
			}
		}

		events = append(events, e)
	}
	return events, nil
}
