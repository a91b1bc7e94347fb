package tasks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lvx/internal/shared"
	"golang.org/x/time/rate"
)

// CommandFunc builds the process for one collaborator. Defaults to [exec.CommandContext].
type CommandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// CollaboratorResult is the outcome of one collaborator run.
type CollaboratorResult struct {
	Label      string        `json:"label"`
	OK         bool          `json:"ok"`
	Diagnostic string        `json:"diagnostic"` // "<label> succeeded/failed" plus captured output
	Output     string        `json:"output,omitempty"`
	Duration   time.Duration `json:"duration"`
	Err        error         `json:"-"`
}

// Runner runs the external commands that refresh the catalog and records tables.
type Runner struct {
	cfg     shared.CollaboratorsConfig
	logger  *log.Logger
	command CommandFunc
}

// NewRunner creates a [Runner] for the configured collaborators.
func NewRunner(cfg shared.CollaboratorsConfig, logger *log.Logger) *Runner {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Runner{cfg: cfg, logger: logger, command: exec.CommandContext}
}

// WithCommand replaces the process builder.
func (r *Runner) WithCommand(fn CommandFunc) *Runner {
	r.command = fn
	return r
}

// Collaborators returns the enabled collaborators in run order: catalog, then records.
func (r *Runner) Collaborators() []shared.CollaboratorConfig {
	var out []shared.CollaboratorConfig
	for _, c := range []shared.CollaboratorConfig{r.cfg.Catalog, r.cfg.Records} {
		if c.Enabled() {
			if c.Label == "" {
				c.Label = c.Command
			}
			out = append(out, c)
		}
	}
	return out
}

type collaboratorJob struct {
	index int
	cfg   shared.CollaboratorConfig
}

type collaboratorOutcome struct {
	index  int
	result CollaboratorResult
}

// Update runs every enabled collaborator and returns one result per collaborator, in run order.
//
// Collaborators run on up to `parallel` workers; successive launches are spaced by the
// configured interval. A failure never stops the others. The returned error joins every
// failure, each wrapping [shared.ErrCollaboratorFailed].
func (r *Runner) Update(ctx context.Context, progress chan<- ProgressUpdate) ([]CollaboratorResult, error) {
	collaborators := r.Collaborators()
	if len(collaborators) == 0 {
		return nil, fmt.Errorf("%w: no collaborator commands configured", shared.ErrMissingConfig)
	}

	total := len(collaborators)
	workers := min(max(r.cfg.Parallel, 1), total)

	limit := rate.Inf
	if iv := r.cfg.Interval(); iv > 0 {
		limit = rate.Every(iv)
	}
	limiter := rate.NewLimiter(limit, 1)

	jobs := make(chan collaboratorJob, total)
	outcomes := make(chan collaboratorOutcome, total)

	for range workers {
		go func() {
			for job := range jobs {
				if err := limiter.Wait(ctx); err != nil {
					outcomes <- collaboratorOutcome{job.index, failedResult(job.cfg.Label, err, "", 0)}
					continue
				}
				sendProgress(progress, collaboratorStartedUpdate(job.index+1, total, job.cfg.Label))
				outcomes <- collaboratorOutcome{job.index, r.run(ctx, job.cfg)}
			}
		}()
	}

	for i, c := range collaborators {
		jobs <- collaboratorJob{index: i, cfg: c}
	}
	close(jobs)

	results := make([]CollaboratorResult, total)
	var errs []error
	for range total {
		o := <-outcomes
		results[o.index] = o.result
		sendProgress(progress, collaboratorDoneUpdate(o.index+1, total, o.result))

		if o.result.OK {
			r.logger.Info("collaborator finished", "label", o.result.Label, "duration", o.result.Duration)
		} else {
			r.logger.Error("collaborator failed", "label", o.result.Label, "error", o.result.Err)
		}
	}

	for _, res := range results {
		if !res.OK {
			errs = append(errs, fmt.Errorf("%w: %s: %w", shared.ErrCollaboratorFailed, res.Label, res.Err))
		}
	}
	return results, errors.Join(errs...)
}

func (r *Runner) run(ctx context.Context, c shared.CollaboratorConfig) CollaboratorResult {
	if timeout := r.cfg.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := r.command(ctx, c.Command, c.Args...)
	if c.Dir != "" {
		cmd.Dir = c.Dir
	}
	if len(c.Env) > 0 {
		cmd.Env = append(cmd.Environ(), c.Env...)
	}

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)
	output := strings.TrimSpace(out.String())

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("%w after %s: %w", shared.ErrTimeout, r.cfg.Timeout(), err)
		}
		return failedResult(c.Label, err, output, elapsed)
	}

	diag := c.Label + " succeeded"
	if output != "" {
		diag += "\n" + output
	}
	return CollaboratorResult{Label: c.Label, OK: true, Diagnostic: diag, Output: output, Duration: elapsed}
}

func failedResult(label string, err error, output string, elapsed time.Duration) CollaboratorResult {
	detail := output
	if detail == "" {
		detail = err.Error()
	}
	return CollaboratorResult{
		Label:      label,
		Diagnostic: fmt.Sprintf("%s failed: %s", label, detail),
		Output:     output,
		Duration:   elapsed,
		Err:        err,
	}
}
