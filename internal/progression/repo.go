package progression

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/2beens/liftcoach/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrStateNotFound = errors.New("exercise state not found")
	// ErrVersionConflict means another writer updated the state row since
	// it was read. The caller re-reads and retries, a lost update here
	// would corrupt the progression history.
	ErrVersionConflict = errors.New("exercise state version conflict")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Get(ctx context.Context, userID, exerciseID string) (_ *ExerciseState, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progression.state.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))
	span.SetAttributes(attribute.String("exercise_id", exerciseID))

	row := r.db.QueryRow(ctx, `
		SELECT
			user_id, exercise_id, working_weight_kg, target_reps, last_decision,
			rolling_e1rm, e1rm_trend, e1rm_history,
			consecutive_failures, consecutive_successes, successful_sessions,
			last_deload_at, version, created_at, updated_at
		FROM exercise_state
		WHERE user_id = $1 AND exercise_id = $2;`,
		userID, exerciseID,
	)

	state, err := scanState(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStateNotFound
		}
		return nil, fmt.Errorf("scan state: %w", err)
	}
	return state, nil
}

// Upsert writes the state back. For an existing row the write only lands
// when the version still matches the one the state was read at, otherwise
// ErrVersionConflict is returned and nothing is changed.
func (r *Repo) Upsert(ctx context.Context, state ExerciseState) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progression.state.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", state.UserID))
	span.SetAttributes(attribute.String("exercise_id", state.ExerciseID))
	span.SetAttributes(attribute.Int64("version", state.Version))

	historyJson, err := json.Marshal(state.E1RMHistory)
	if err != nil {
		return fmt.Errorf("marshal e1rm history: %w", err)
	}

	tag, err := r.db.Exec(ctx, `
		INSERT INTO exercise_state (
			user_id, exercise_id, working_weight_kg, target_reps, last_decision,
			rolling_e1rm, e1rm_trend, e1rm_history,
			consecutive_failures, consecutive_successes, successful_sessions,
			last_deload_at, version, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13 + 1, $14, $15)
		ON CONFLICT (user_id, exercise_id) DO UPDATE SET
			working_weight_kg = EXCLUDED.working_weight_kg,
			target_reps = EXCLUDED.target_reps,
			last_decision = EXCLUDED.last_decision,
			rolling_e1rm = EXCLUDED.rolling_e1rm,
			e1rm_trend = EXCLUDED.e1rm_trend,
			e1rm_history = EXCLUDED.e1rm_history,
			consecutive_failures = EXCLUDED.consecutive_failures,
			consecutive_successes = EXCLUDED.consecutive_successes,
			successful_sessions = EXCLUDED.successful_sessions,
			last_deload_at = EXCLUDED.last_deload_at,
			version = exercise_state.version + 1,
			updated_at = EXCLUDED.updated_at
		WHERE exercise_state.version = $13;`,
		state.UserID, state.ExerciseID,
		state.CurrentWorkingWeightKg, state.TargetReps, state.LastDecision,
		state.RollingE1RM, state.E1RMTrend, historyJson,
		state.ConsecutiveFailures, state.ConsecutiveSuccesses, state.SuccessfulSessions,
		state.LastDeloadAt, state.Version, state.CreatedAt, state.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrVersionConflict
	}
	return nil
}

func scanState(row pgx.Row) (*ExerciseState, error) {
	var state ExerciseState
	var lastDecision string
	var trend string
	var historyBytes []byte
	if err := row.Scan(
		&state.UserID, &state.ExerciseID,
		&state.CurrentWorkingWeightKg, &state.TargetReps, &lastDecision,
		&state.RollingE1RM, &trend, &historyBytes,
		&state.ConsecutiveFailures, &state.ConsecutiveSuccesses, &state.SuccessfulSessions,
		&state.LastDeloadAt, &state.Version, &state.CreatedAt, &state.UpdatedAt,
	); err != nil {
		return nil, err
	}

	state.LastDecision = Action(lastDecision)
	state.E1RMTrend = TrendTag(trend)
	if len(historyBytes) > 0 {
		if err := json.Unmarshal(historyBytes, &state.E1RMHistory); err != nil {
			return nil, fmt.Errorf("unmarshal e1rm history: %w", err)
		}
	}
	return &state, nil
}
