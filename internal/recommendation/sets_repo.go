package recommendation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/liftcoach/internal/telemetry/tracing"
	"github.com/2beens/liftcoach/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// ErrUnknownPlannedSet comes back when a performed set references a
// planned set that was never prescribed.
var ErrUnknownPlannedSet = errors.New("referenced planned set does not exist")

type SetsRepo struct {
	db *pgxpool.Pool
}

func NewSetsRepo(db *pgxpool.Pool) *SetsRepo {
	return &SetsRepo{
		db: db,
	}
}

// InsertPlannedSets stores the full prescription of one event in a single
// transaction. Planned sets are never edited afterwards.
func (r *SetsRepo) InsertPlannedSets(ctx context.Context, sets []PlannedSet) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.recommendation.sets.insertplanned")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("count", len(sets)))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	for _, s := range sets {
		if _, err = tx.Exec(ctx, `
			INSERT INTO planned_set (
				id, event_id, set_number, target_weight_kg, target_reps,
				target_rir, tempo, warmup, created_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
			s.ID, s.EventID, s.SetNumber, s.TargetWeightKg, s.TargetReps,
			s.TargetRIR, s.Tempo, s.Warmup, s.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert planned set %d: %w", s.SetNumber, err)
		}
	}
	return nil
}

func (r *SetsRepo) InsertPerformedSets(ctx context.Context, sets []PerformedSet) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.recommendation.sets.insertperformed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("count", len(sets)))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	for i, s := range sets {
		if _, err = tx.Exec(ctx, `
			INSERT INTO performed_set (
				id, user_id, exercise_id, exposure_id, planned_set_id,
				reps, weight_kg, rir, rpe, rest_seconds,
				warmup, failure, drop_set, completed, pain_stop, flagged, created_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
			ON CONFLICT (id) DO NOTHING;`,
			s.ID, s.UserID, s.ExerciseID, s.ExposureID, s.PlannedSetID,
			s.Reps, s.WeightKg, s.RIR, s.RPE, s.RestSeconds,
			s.Warmup, s.Failure, s.DropSet, s.Completed, s.PainStop, s.Flagged, s.CreatedAt,
		); err != nil {
			if pkg.IsForeignKeyViolationError(err) {
				return fmt.Errorf("insert performed set %d: %w", i, ErrUnknownPlannedSet)
			}
			return fmt.Errorf("insert performed set %d: %w", i, err)
		}
	}
	return nil
}

func (r *SetsRepo) ListPerformed(ctx context.Context, exposureID string) (_ []PerformedSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.recommendation.sets.listperformed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exposure_id", exposureID))

	rows, err := r.db.Query(ctx, performedSelect+`
		WHERE exposure_id = $1
		ORDER BY created_at ASC;`,
		exposureID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rows2performedSets(rows)
}

// VolumeSince sums the tonnage (weight x reps) of all non warm-up
// performed sets of a user since the given time, the frozen 7-day volume
// feature.
func (r *SetsRepo) VolumeSince(ctx context.Context, userID string, since time.Time) (_ float64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.recommendation.sets.volumesince")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	var volume float64
	if err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(weight_kg * reps), 0)
		FROM performed_set
		WHERE user_id = $1 AND warmup IS FALSE AND created_at >= $2;`,
		userID, since,
	).Scan(&volume); err != nil {
		return 0, fmt.Errorf("volume since: %w", err)
	}
	return volume, nil
}

const performedSelect = `
	SELECT
		id, user_id, exercise_id, exposure_id, planned_set_id,
		reps, weight_kg, rir, rpe, rest_seconds,
		warmup, failure, drop_set, completed, pain_stop, flagged, created_at
	FROM performed_set
`

func rows2performedSets(rows pgx.Rows) ([]PerformedSet, error) {
	sets := make([]PerformedSet, 0)
	for rows.Next() {
		var s PerformedSet
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.ExerciseID, &s.ExposureID, &s.PlannedSetID,
			&s.Reps, &s.WeightKg, &s.RIR, &s.RPE, &s.RestSeconds,
			&s.Warmup, &s.Failure, &s.DropSet, &s.Completed, &s.PainStop, &s.Flagged, &s.CreatedAt,
		); err != nil {
			return nil, err
		}
		sets = append(sets, s)
	}
	return sets, nil
}
