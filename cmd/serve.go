package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/lvx/internal/server"
	"github.com/desertthunder/lvx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve runs the dashboard API until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := r.Config()
	serverCfg := cfg.Server
	if host := cmd.String("host"); host != "" {
		serverCfg.Host = host
	}
	if port := int(cmd.Int("port")); port != 0 {
		if port < 0 || port > 65535 {
			return fmt.Errorf("%w: --port out of range: %d", shared.ErrInvalidFlag, port)
		}
		serverCfg.Port = port
	}

	workouts, err := r.workouts()
	if err != nil {
		return err
	}

	dashboard := server.NewDashboard(r.pipeline(), workouts, r.logger, server.DashboardOpts{
		Tier:       cfg.Tier.Name,
		WindowDays: cfg.Workout.WindowDays,
		Rand:       r.rng,
		Now:        r.now,
	})

	router := server.NewBasicRouter()
	router.Use(server.Recover(r.logger), server.Logging(r.logger))
	router.Handler(dashboard)

	addr := serverCfg.Addr()
	ready := func() {
		r.writePlain("Serving %s dashboard on http://%s (Ctrl+C to stop)\n", cfg.Tier.Name, addr)
		if cmd.Bool("open") {
			if err := shared.OpenBrowser("http://" + addr + "/api/summary"); err != nil {
				r.logger.Warn("could not open browser", "error", err)
			}
		}
	}

	return server.Serve(ctx, addr, router, r.logger, ready)
}
