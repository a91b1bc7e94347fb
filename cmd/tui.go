package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/lvx/internal/shared"
	"github.com/desertthunder/lvx/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive dashboard.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	cfg := r.Config()

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, logFile, err := shared.NewFileLogger(cfg.Files.Log)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.logFile = logFile
	r.SetLogger(fileLogger)

	var workouts ui.WorkoutSummarizer
	if repo, err := r.workouts(); err != nil {
		r.logger.Warn("workout log unavailable", "error", err)
	} else {
		workouts = repo
	}

	model := ui.NewModel(ctx, r.pipeline(), workouts, ui.Options{
		Tier:       cfg.Tier.Name,
		WindowDays: cfg.Workout.WindowDays,
		Rand:       r.rng,
		Now:        r.now,
	})
	p := tea.NewProgram(model, tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
