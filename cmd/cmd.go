// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles first-run setup of the config file and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write the example configuration to the --config path",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Action: r.SetupDatabase,
			},
		},
	}
}

// analyzeCommand runs the reconciliation and writes the output tables.
func analyzeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "analyze",
		Aliases: []string{"a"},
		Usage:   "Reconcile the catalog against your records and write the revenge/unplayed tables",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Do not write the output tables",
			},
			&cli.IntFlag{
				Name:  "suggest",
				Usage: "Show up to N near-miss record titles for each unmatched song",
			},
			&cli.StringFlag{
				Name:  "report",
				Usage: "Also write a report to the report directory (md, txt or json)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the result as JSON",
			},
		},
		Action: r.Analyze,
	}
}

// listCommand prints one of the derived lists.
func listCommand(r *Runner) *cli.Command {
	flags := func() []cli.Flag {
		return []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		}
	}
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "Show the revenge or unplayed list",
		Commands: []*cli.Command{
			{
				Name:   "revenge",
				Usage:  "Songs attempted but not cleared",
				Flags:  flags(),
				Action: r.ListRevenge,
			},
			{
				Name:   "unplayed",
				Usage:  "Songs with no attempt on record",
				Flags:  flags(),
				Action: r.ListUnplayed,
			},
		},
	}
}

// pickCommand spins the roulette.
func pickCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "pick",
		Aliases: []string{"spin"},
		Usage:   "Pick a random song to play next",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "unplayed",
				Usage: "Pick from the unplayed list instead of revenge",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Pick,
	}
}

// updateCommand runs the external collaborators that refresh the input tables.
func updateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "update",
		Usage: "Run the configured catalog and records collaborators",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "analyze",
				Usage: "Run analyze afterwards when every collaborator succeeded",
			},
		},
		Action: r.Update,
	}
}

// workoutCommand manages the workout log.
func workoutCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "workout",
		Aliases: []string{"wo"},
		Usage:   "Log play sessions and summarize calories",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Log a play session",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "date",
						Usage: "Day played (YYYY-MM-DD), defaults to today",
					},
					&cli.IntFlag{
						Name:  "songs",
						Usage: "Number of songs played",
					},
					&cli.FloatFlag{
						Name:     "kcal",
						Usage:    "Calories burned, as shown by the cabinet",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "note",
						Usage: "Free-form note",
					},
				},
				Action: r.WorkoutAdd,
			},
			{
				Name:  "list",
				Usage: "List logged sessions",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "from",
						Usage: "First day (YYYY-MM-DD)",
					},
					&cli.StringFlag{
						Name:  "to",
						Usage: "Last day (YYYY-MM-DD)",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Show only the most recent N sessions",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.WorkoutList,
			},
			{
				Name:  "summary",
				Usage: "Summarize calories",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "days",
						Usage: "Trailing window in days (defaults to workout.window_days)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.WorkoutSummary,
			},
			{
				Name:      "delete",
				Usage:     "Delete a session by its sequence number",
				ArgsUsage: "<sequence>",
				Action:    r.WorkoutDelete,
			},
		},
	}
}

// serveCommand runs the JSON dashboard.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the dashboard API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (defaults to server.host)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen port (defaults to server.port)",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the summary endpoint in a browser",
			},
		},
		Action: r.Serve,
	}
}

// tuiCommand returns the top-level TUI command for the interactive dashboard.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive dashboard",
		Action:  r.TUI,
	}
}
