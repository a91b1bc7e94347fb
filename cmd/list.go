package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/lvx/internal/formatter"
	"github.com/desertthunder/lvx/internal/models"
	"github.com/desertthunder/lvx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// ListRevenge prints the revenge list in catalog order.
func (r *Runner) ListRevenge(ctx context.Context, cmd *cli.Command) error {
	return r.list(ctx, cmd, formatter.RevengeHeader, (*models.Snapshot).Revenge)
}

// ListUnplayed prints the unplayed list in catalog order.
func (r *Runner) ListUnplayed(ctx context.Context, cmd *cli.Command) error {
	return r.list(ctx, cmd, formatter.UnplayedHeader, (*models.Snapshot).Unplayed)
}

func (r *Runner) list(ctx context.Context, cmd *cli.Command, header string, titles func(*models.Snapshot) []string) error {
	snap, err := r.pipeline().Current(ctx)
	if err != nil {
		return err
	}

	items := titles(snap)
	if items == nil {
		items = []string{}
	}
	if cmd.Bool("json") {
		return r.writeJSON(items, true)
	}

	r.writePlainHeader(fmt.Sprintf("%s (%d)", header, len(items)))
	for i, title := range items {
		r.writePlain("%3d. %s\n", i+1, title)
	}
	return nil
}

// Pick chooses a random song from the revenge list, or the unplayed list with --unplayed.
func (r *Runner) Pick(ctx context.Context, cmd *cli.Command) error {
	snap, err := r.pipeline().Current(ctx)
	if err != nil {
		return err
	}

	entries, from := snap.RevengeEntries(), "revenge"
	if cmd.Bool("unplayed") {
		entries, from = snap.UnplayedEntries(), "unplayed"
	}

	res, err := tasks.Pick(r.rng, entries)
	if err != nil {
		return fmt.Errorf("%s list: %w", from, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(res, true)
	}
	r.writePlain("🎲 %s\n", res.Entry.RawTitle)
	r.writePlain("   drawn from %d %s song(s)\n", res.Remaining, from)
	return nil
}
