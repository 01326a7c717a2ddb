package exercises

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/2beens/barbellviz/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrNoExercises = errors.New("no exercises found")

const MaxLatestLimit = 50

type LatestParams struct {
	// MuscleGroup filters the exercises when not empty.
	MuscleGroup string
	Limit       int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// ListLatest returns the most recently logged exercises, newest first.
func (r *Repo) ListLatest(ctx context.Context, params LatestParams) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.listlatest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("muscle_group", params.MuscleGroup))
	span.SetAttributes(attribute.Int("limit", params.Limit))

	if params.Limit <= 0 || params.Limit > MaxLatestLimit {
		return nil, fmt.Errorf("invalid limit: %d", params.Limit)
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				e.id, e.exercise_id, e.muscle_group, e.kilos, e.reps, e.metadata, e.created_at
			FROM exercise e
			WHERE ($1::text = '' OR e.muscle_group = $1)
			ORDER BY e.created_at DESC
			LIMIT $2;`,
		params.MuscleGroup, params.Limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query latest exercises: %w", err)
	}
	defer rows.Close()

	exercises, err := rows2exercises(rows)
	if err != nil {
		return nil, err
	}

	if len(exercises) == 0 {
		return nil, ErrNoExercises
	}

	return exercises, nil
}

func rows2exercises(rows pgx.Rows) ([]Exercise, error) {
	var exercises []Exercise
	for rows.Next() {
		var ex Exercise
		var metadataJson []byte
		if err := rows.Scan(
			&ex.ID, &ex.ExerciseID, &ex.MuscleGroup, &ex.Kilos, &ex.Reps, &metadataJson, &ex.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}

		if len(metadataJson) > 0 {
			if err := json.Unmarshal(metadataJson, &ex.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshal metadata: %w", err)
			}
		}

		exercises = append(exercises, ex)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return exercises, nil
}
