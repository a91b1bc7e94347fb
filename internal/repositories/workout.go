package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/desertthunder/lvx/internal/models"
	"github.com/desertthunder/lvx/internal/shared"
)

var _ models.Repository[*models.Workout] = (*WorkoutRepository)(nil)

// WorkoutRepository implements models.Repository[*models.Workout] for the workout log.
type WorkoutRepository struct {
	db *sql.DB
}

// NewWorkoutRepository creates a new WorkoutRepository with the given database connection
func NewWorkoutRepository(db *sql.DB) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

const workoutColumns = `id, sequence, played_on, songs, kcal, note, created_at, updated_at, deleted_at`

// Create inserts a new [models.Workout] with generated ID and sequence
func (r *WorkoutRepository) Create(w *models.Workout) error {
	if err := w.Validate(); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
	}

	sequence, err := NextSequence(r.db, "workouts")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	w.SetID(shared.GenerateID())
	w.SetSequence(sequence)

	query := `
		INSERT INTO workouts (id, sequence, played_on, songs, kcal, note, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		w.ID(),
		w.Sequence(),
		w.PlayedOn(),
		w.Songs(),
		w.Kcal(),
		w.Note(),
		w.CreatedAt(),
		w.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert workout: %w", err)
	}

	return nil
}

// Get retrieves a workout by ID, excluding soft-deleted workouts
func (r *WorkoutRepository) Get(id string) (*models.Workout, error) {
	query := `SELECT ` + workoutColumns + ` FROM workouts WHERE id = ? AND deleted_at IS NULL`

	w, err := scanWorkout(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrWorkoutNotFound, id)
	}
	return w, err
}

// GetBySequence retrieves a workout by its sequence number
func (r *WorkoutRepository) GetBySequence(sequence int) (*models.Workout, error) {
	query := `SELECT ` + workoutColumns + ` FROM workouts WHERE sequence = ? AND deleted_at IS NULL`

	w, err := scanWorkout(r.db.QueryRow(query, sequence))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: #%d", shared.ErrWorkoutNotFound, sequence)
	}
	return w, err
}

// Update modifies an existing workout in the database
func (r *WorkoutRepository) Update(w *models.Workout) error {
	if err := w.Validate(); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
	}

	now := time.Now()
	w.SetUpdatedAt(now)

	query := `
		UPDATE workouts
		SET played_on = ?, songs = ?, kcal = ?, note = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, w.PlayedOn(), w.Songs(), w.Kcal(), w.Note(), now, w.ID())
	if err != nil {
		return fmt.Errorf("failed to update workout: %w", err)
	}

	return expectOne(result, w.ID())
}

// Delete soft-deletes a workout by ID
func (r *WorkoutRepository) Delete(id string) error {
	query := `
		UPDATE workouts
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete workout: %w", err)
	}

	return expectOne(result, id)
}

func expectOne(result sql.Result, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrWorkoutNotFound, id)
	}
	return nil
}

// List retrieves workouts ordered by day then sequence, excluding soft-deleted ones.
//
// Supported criteria: "from" and "to" ([time.Time], inclusive days) and "limit" (int, keeps the most recent n).
func (r *WorkoutRepository) List(criteria map[string]any) ([]*models.Workout, error) {
	var (
		where = []string{"deleted_at IS NULL"}
		args  []any
	)

	if from, ok := criteria["from"].(time.Time); ok && !from.IsZero() {
		where = append(where, "played_on >= ?")
		args = append(args, models.TruncateDay(from))
	}
	if to, ok := criteria["to"].(time.Time); ok && !to.IsZero() {
		where = append(where, "played_on <= ?")
		args = append(args, models.TruncateDay(to))
	}

	query := `SELECT ` + workoutColumns + ` FROM workouts WHERE ` + strings.Join(where, " AND ")

	limit, _ := criteria["limit"].(int)
	if limit > 0 {
		query += " ORDER BY played_on DESC, sequence DESC LIMIT ?"
		args = append(args, limit)
	} else {
		query += " ORDER BY played_on ASC, sequence ASC"
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query workouts: %w", err)
	}
	defer rows.Close()

	var workouts []*models.Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	if limit > 0 {
		slices.Reverse(workouts)
	}

	return workouts, nil
}

// Summary aggregates every logged workout, with a trailing window of windowDays ending at now.
func (r *WorkoutRepository) Summary(now time.Time, windowDays int) (models.WorkoutSummary, error) {
	workouts, err := r.List(nil)
	if err != nil {
		return models.WorkoutSummary{}, err
	}
	return models.Summarize(workouts, now, windowDays), nil
}

func scanWorkout(row scanner) (*models.Workout, error) {
	var (
		id        string
		sequence  int
		playedOn  time.Time
		songs     int
		kcal      float64
		note      string
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := row.Scan(&id, &sequence, &playedOn, &songs, &kcal, &note, &createdAt, &updatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan workout: %w", err)
	}

	w := models.NewWorkout(sequence, playedOn, songs, kcal, note)
	w.SetID(id)
	w.SetCreatedAt(createdAt)
	w.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		w.SetDeletedAt(&deletedAt.Time)
	}

	return w, nil
}
