package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/lvx/internal/models"
	"github.com/desertthunder/lvx/internal/shared"
	"github.com/urfave/cli/v3"
)

// WorkoutAdd logs a play session.
func (r *Runner) WorkoutAdd(ctx context.Context, cmd *cli.Command) error {
	playedOn, err := parseDay(cmd.String("date"), "date")
	if err != nil {
		return err
	}
	if playedOn.IsZero() {
		playedOn = r.now()
	}

	repo, err := r.workouts()
	if err != nil {
		return err
	}

	w := models.NewWorkout(0, playedOn, int(cmd.Int("songs")), cmd.Float("kcal"), cmd.String("note"))
	if err := repo.Create(w); err != nil {
		return err
	}
	r.logger.Debug("workout logged", "id", w.ID(), "sequence", w.Sequence())

	r.writePlain("✓ Logged #%d: %s, %d song(s), %.1f kcal\n", w.Sequence(), w.PlayedOn().Format(time.DateOnly), w.Songs(), w.Kcal())
	return nil
}

// WorkoutList prints logged sessions, oldest first.
func (r *Runner) WorkoutList(ctx context.Context, cmd *cli.Command) error {
	from, err := parseDay(cmd.String("from"), "from")
	if err != nil {
		return err
	}
	to, err := parseDay(cmd.String("to"), "to")
	if err != nil {
		return err
	}
	limit := int(cmd.Int("limit"))
	if limit < 0 {
		return fmt.Errorf("%w: --limit must not be negative", shared.ErrInvalidFlag)
	}

	repo, err := r.workouts()
	if err != nil {
		return err
	}

	workouts, err := repo.List(map[string]any{"from": from, "to": to, "limit": limit})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		if workouts == nil {
			workouts = []*models.Workout{}
		}
		return r.writeJSON(workouts, true)
	}

	if len(workouts) == 0 {
		r.writePlain("No workouts logged.\n")
		return nil
	}

	r.writePlainHeader(fmt.Sprintf("Workouts (%d)", len(workouts)))
	for _, w := range workouts {
		r.writePlain("#%-4d %s  %3d song(s)  %7.1f kcal", w.Sequence(), w.PlayedOn().Format(time.DateOnly), w.Songs(), w.Kcal())
		if w.Note() != "" {
			r.writePlain("  %s", w.Note())
		}
		r.writePlain("\n")
	}
	return nil
}

// WorkoutSummary prints calorie totals and the trailing window.
func (r *Runner) WorkoutSummary(ctx context.Context, cmd *cli.Command) error {
	days := int(cmd.Int("days"))
	if days < 0 {
		return fmt.Errorf("%w: --days must not be negative", shared.ErrInvalidFlag)
	}
	if days == 0 {
		days = r.Config().Workout.WindowDays
	}

	repo, err := r.workouts()
	if err != nil {
		return err
	}

	summary, err := repo.Summary(r.now(), days)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(summary, true)
	}

	r.writePlainHeader("Workout Summary")
	if summary.Sessions == 0 {
		r.writePlain("No workouts logged.\n")
		return nil
	}
	r.writePlain("Sessions:   %d (%s to %s)\n", summary.Sessions,
		summary.FirstPlayedOn.Format(time.DateOnly), summary.LastPlayedOn.Format(time.DateOnly))
	r.writePlain("Songs:      %d\n", summary.Songs)
	r.writePlain("Total:      %.1f kcal (%.1f per session)\n", summary.TotalKcal, summary.AvgKcal)
	r.writePlain("Best day:   %s, %.1f kcal\n", summary.BestDay.Format(time.DateOnly), summary.BestDayKcal)
	r.writePlain("Last %d days: %.1f kcal over %d song(s)\n", summary.WindowDays, summary.WindowKcal, summary.WindowSongs)
	return nil
}

// WorkoutDelete removes a session by its sequence number.
func (r *Runner) WorkoutDelete(ctx context.Context, cmd *cli.Command) error {
	arg := strings.TrimSpace(cmd.Args().First())
	if arg == "" {
		return fmt.Errorf("%w: sequence", shared.ErrMissingArgument)
	}

	sequence, err := strconv.Atoi(strings.TrimPrefix(arg, "#"))
	if err != nil || sequence < 1 {
		return fmt.Errorf("%w: sequence must be a positive number, got %q", shared.ErrInvalidArgument, arg)
	}

	repo, err := r.workouts()
	if err != nil {
		return err
	}

	w, err := repo.GetBySequence(sequence)
	if err != nil {
		return err
	}
	if err := repo.Delete(w.ID()); err != nil {
		return err
	}

	r.writePlain("✓ Deleted #%d (%s)\n", w.Sequence(), w.PlayedOn().Format(time.DateOnly))
	return nil
}

// parseDay parses a YYYY-MM-DD flag value. An empty value yields the zero time.
func parseDay(value, flag string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: --%s must be YYYY-MM-DD, got %q", shared.ErrInvalidFlag, flag, value)
	}
	return t, nil
}
