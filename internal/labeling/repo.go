package labeling

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/liftcoach/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrLabelsNotFound = errors.New("exposure labels not found")

// ExposureLabels is one exposure's full derived-label row. Recomputing it
// from the same performed sets must yield the identical row, so the upsert
// stays idempotent.
type ExposureLabels struct {
	ExposureID   string               `json:"exposureId"`
	UserID       string               `json:"userId"`
	ExerciseID   string               `json:"exerciseId"`
	SetOutcomes  []SetOutcome         `json:"setOutcomes"`
	Outcome      ExposureOutcome      `json:"outcome"`
	NearFailure  NearFailureSignals   `json:"nearFailure"`
	Modification *ModificationDetails `json:"modification,omitempty"`
	// MeanWeightKg is the mean working-set load of the exposure; the next
	// exposure's backfill compares against it.
	MeanWeightKg float64   `json:"meanWeightKg"`
	CleanLabel   bool      `json:"cleanLabel"`
	ComputedAt   time.Time `json:"computedAt"`
}

// ExportParams filter the training-data export. Non-clean rows are
// excluded unless IncludeUnclean is set.
type ExportParams struct {
	UserID         string
	ExerciseID     string
	From           *time.Time
	To             *time.Time
	IncludeUnclean bool
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Upsert writes the derived labels of one exposure. Re-running the label
// batch for a backfill lands on the same row.
func (r *Repo) Upsert(ctx context.Context, labels ExposureLabels) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.labeling.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exposure_id", labels.ExposureID))
	span.SetAttributes(attribute.String("outcome", labels.Outcome.String()))

	setOutcomesJson, err := json.Marshal(labels.SetOutcomes)
	if err != nil {
		return fmt.Errorf("marshal set outcomes: %w", err)
	}
	nearFailureJson, err := json.Marshal(labels.NearFailure)
	if err != nil {
		return fmt.Errorf("marshal near failure signals: %w", err)
	}
	var modificationJson []byte
	if labels.Modification != nil {
		modificationJson, err = json.Marshal(labels.Modification)
		if err != nil {
			return fmt.Errorf("marshal modification details: %w", err)
		}
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO exposure_label (
			exposure_id, user_id, exercise_id, set_outcomes, outcome,
			near_failure, modification, mean_weight_kg, clean_label, computed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (exposure_id) DO UPDATE SET
			set_outcomes = EXCLUDED.set_outcomes,
			outcome = EXCLUDED.outcome,
			near_failure = EXCLUDED.near_failure,
			modification = EXCLUDED.modification,
			mean_weight_kg = EXCLUDED.mean_weight_kg,
			clean_label = EXCLUDED.clean_label,
			computed_at = EXCLUDED.computed_at;`,
		labels.ExposureID, labels.UserID, labels.ExerciseID,
		setOutcomesJson, labels.Outcome,
		nearFailureJson, modificationJson, labels.MeanWeightKg, labels.CleanLabel, labels.ComputedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert exposure labels: %w", err)
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, exposureID string) (_ *ExposureLabels, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.labeling.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exposure_id", exposureID))

	rows, err := r.db.Query(ctx, `
		SELECT
			exposure_id, user_id, exercise_id, set_outcomes, outcome,
			near_failure, modification, mean_weight_kg, clean_label, computed_at
		FROM exposure_label
		WHERE exposure_id = $1;`,
		exposureID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	labels, err := rows2labels(rows)
	if err != nil {
		return nil, err
	}
	if len(labels) != 1 {
		return nil, ErrLabelsNotFound
	}
	return &labels[0], nil
}

// LatestForLift returns the most recently computed labels row of the given
// user+exercise, used for the post-hoc next-load-reduced backfill.
func (r *Repo) LatestForLift(ctx context.Context, userID, exerciseID string) (_ *ExposureLabels, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.labeling.latest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))
	span.SetAttributes(attribute.String("exercise_id", exerciseID))

	rows, err := r.db.Query(ctx, `
		SELECT
			exposure_id, user_id, exercise_id, set_outcomes, outcome,
			near_failure, modification, mean_weight_kg, clean_label, computed_at
		FROM exposure_label
		WHERE user_id = $1 AND exercise_id = $2
		ORDER BY computed_at DESC
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

	labels, err := rows2labels(rows)
	if err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		return nil, ErrLabelsNotFound
	}
	return &labels[0], nil
}

// ListForExport returns label rows for downstream training-data export.
// Non-clean rows stay in storage but are filtered out by default.
func (r *Repo) ListForExport(ctx context.Context, params ExportParams) (_ []ExposureLabels, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.labeling.export")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", params.UserID))
	span.SetAttributes(attribute.String("exercise_id", params.ExerciseID))
	span.SetAttributes(attribute.Bool("include_unclean", params.IncludeUnclean))

	rows, err := r.db.Query(ctx, `
		SELECT
			exposure_id, user_id, exercise_id, set_outcomes, outcome,
			near_failure, modification, mean_weight_kg, clean_label, computed_at
		FROM exposure_label
		WHERE ($1::text = '' OR user_id = $1)
		  AND ($2::text = '' OR exercise_id = $2)
		  AND ($3::timestamp IS NULL OR computed_at >= $3)
		  AND ($4::timestamp IS NULL OR computed_at <= $4)
		  AND ($5::boolean IS TRUE OR clean_label IS TRUE)
		ORDER BY computed_at DESC;`,
		params.UserID, params.ExerciseID,
		params.From, params.To,
		params.IncludeUnclean,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return rows2labels(rows)
}

func rows2labels(rows pgx.Rows) ([]ExposureLabels, error) {
	labels := make([]ExposureLabels, 0)
	for rows.Next() {
		var l ExposureLabels
		var outcome string
		var setOutcomesBytes, nearFailureBytes, modificationBytes []byte
		if err := rows.Scan(
			&l.ExposureID, &l.UserID, &l.ExerciseID,
			&setOutcomesBytes, &outcome,
			&nearFailureBytes, &modificationBytes, &l.MeanWeightKg, &l.CleanLabel, &l.ComputedAt,
		); err != nil {
			return nil, err
		}

		l.Outcome = ExposureOutcome(outcome)
		if len(setOutcomesBytes) > 0 {
			if err := json.Unmarshal(setOutcomesBytes, &l.SetOutcomes); err != nil {
				return nil, fmt.Errorf("unmarshal set outcomes for %s: %w", l.ExposureID, err)
			}
		}
		if len(nearFailureBytes) > 0 {
			if err := json.Unmarshal(nearFailureBytes, &l.NearFailure); err != nil {
				return nil, fmt.Errorf("unmarshal near failure for %s: %w", l.ExposureID, err)
			}
		}
		if len(modificationBytes) > 0 {
			var m ModificationDetails
			if err := json.Unmarshal(modificationBytes, &m); err != nil {
				return nil, fmt.Errorf("unmarshal modification for %s: %w", l.ExposureID, err)
			}
			l.Modification = &m
		}

		labels = append(labels, l)
	}
	return labels, nil
}
