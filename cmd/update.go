package main

import (
	"context"

	"github.com/desertthunder/lvx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Update runs the catalog and records collaborators, then optionally analyzes the fresh tables.
func (r *Runner) Update(ctx context.Context, cmd *cli.Command) error {
	runner := tasks.NewRunner(r.Config().Collaborators, r.logger)

	r.writePlain("Refreshing input tables...\n")
	progressCh := make(chan tasks.ProgressUpdate, 10)
	done := r.printProgress(progressCh)
	results, err := runner.Update(ctx, progressCh)
	close(progressCh)
	<-done

	for _, res := range results {
		mark := "✓"
		if !res.OK {
			mark = "✗"
		}
		r.writePlainln("%s %s", mark, res.Diagnostic)
	}
	if err != nil {
		return err
	}

	if cmd.Bool("analyze") {
		r.writePlain("\n")
		return r.Analyze(ctx, cmd)
	}
	return nil
}
