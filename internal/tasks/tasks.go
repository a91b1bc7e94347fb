package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lvx/internal/formatter"
	"github.com/desertthunder/lvx/internal/models"
	"github.com/desertthunder/lvx/internal/reconcile"
	"github.com/desertthunder/lvx/internal/shared"
	"github.com/desertthunder/lvx/internal/tables"
)

// SnapshotStore persists the most recent reconciliation result.
//
// Implemented by repositories.SnapshotRepository.
type SnapshotStore interface {
	Save(snap *models.Snapshot) error
	GetByHash(hash string) (*models.Snapshot, error)
	Latest() (*models.Snapshot, error)
}

// AnalyzeOpts controls the optional steps of [Pipeline.Analyze].
type AnalyzeOpts struct {
	WriteOutputs bool // Write the revenge and unplayed CSV tables
	Suggest      int  // Near-miss suggestions per unmatched entry; 0 disables
}

// Miss is a catalog entry that matched no record, with fuzzy candidates from the records.
type Miss struct {
	Entry       models.CatalogEntry    `json:"entry"`
	Fingerprint string                 `json:"fingerprint"`
	Suggestions []reconcile.Suggestion `json:"suggestions"`
}

// AnalyzeResult contains everything produced by one analyze run.
type AnalyzeResult struct {
	Tables   *tables.Tables             // Loaded inputs, including non-fatal row issues
	Result   *reconcile.Result          // Partitions and per-entry trace
	Files    *formatter.CSVExportResult // Written output tables (nil unless requested)
	Snapshot *models.Snapshot           // Snapshot of this run
	Misses   []Miss                     // Unmatched entries with suggestions (only when requested)
	Hash     string                     // Cache key: input content plus rules and column mapping
	Cached   bool                       // An identical snapshot was already stored
}

// Pipeline wires the table loader, the reconciliation engine, the output writers and the snapshot cache.
type Pipeline struct {
	cfg       *shared.Config
	engine    *reconcile.Engine
	snapshots SnapshotStore
	logger    *log.Logger
	now       func() time.Time
}

// NewPipeline creates a [Pipeline]. snapshots may be nil, which disables caching.
func NewPipeline(cfg *shared.Config, snapshots SnapshotStore, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Pipeline{
		cfg:       cfg,
		engine:    reconcile.NewEngine(RulesFromConfig(cfg.Tier)),
		snapshots: snapshots,
		logger:    logger,
		now:       time.Now,
	}
}

// RulesFromConfig builds the marker rules of the configured tier, falling back to the
// default marker set for anything left empty.
func RulesFromConfig(tier shared.TierConfig) reconcile.Rules {
	markers := tier.Markers
	if len(markers) == 0 {
		markers = reconcile.DefaultMarkers
	}
	challenge := tier.ChallengeMarker
	if challenge == "" {
		challenge = reconcile.ChallengeMarker
	}
	expert := tier.ExpertMarker
	if expert == "" {
		expert = reconcile.ExpertMarker
	}
	return reconcile.NewRules(challenge, expert, markers...)
}

// Config returns the configuration the pipeline was built with.
func (p *Pipeline) Config() *shared.Config { return p.cfg }

// Analyze runs the full reconciliation: load, reconcile, write outputs, cache.
//
// It short-circuits with an error wrapping [shared.ErrInputMissing] when an input
// table is absent; reconciliation itself never fails.
func (p *Pipeline) Analyze(ctx context.Context, opts AnalyzeOpts, progress chan<- ProgressUpdate) (*AnalyzeResult, error) {
	src := tables.SourceFromConfig(p.cfg)

	sendProgress(progress, loadingUpdate(src))
	t, err := tables.Load(src)
	if err != nil {
		return nil, err
	}
	p.logIssues(t.Issues)
	sendProgress(progress, loadedUpdate(t))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := &AnalyzeResult{Tables: t, Hash: p.cacheKey(t)}
	out.Result = p.engine.Reconcile(t.Catalog, t.Records)
	out.Snapshot = models.NewSnapshot(out.Hash, models.Titles(out.Result.Revenge), models.Titles(out.Result.Unplayed), out.Result.Cleared)

	if p.snapshots != nil {
		if _, err := p.snapshots.GetByHash(out.Hash); err == nil {
			out.Cached = true
		} else if !errors.Is(err, shared.ErrNotFound) {
			p.logger.Warn("snapshot lookup failed", "error", err)
		}
	}
	sendProgress(progress, reconciledUpdate(out.Result, out.Cached))

	p.logger.Info("reconciled",
		"tier", p.cfg.Tier.Name,
		"total", out.Result.Total(),
		"revenge", len(out.Result.Revenge),
		"unplayed", len(out.Result.Unplayed),
		"cleared", out.Result.Cleared,
		"duplicates", out.Result.Duplicates,
	)

	if opts.WriteOutputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sendProgress(progress, writingUpdate(1, 2, p.cfg.Files.Revenge))
		sendProgress(progress, writingUpdate(2, 2, p.cfg.Files.Unplayed))
		files, err := formatter.WriteCSVExport(out.Result, p.cfg.Files.Revenge, p.cfg.Files.Unplayed)
		if err != nil {
			return nil, err
		}
		out.Files = files
	}

	if p.snapshots != nil && !out.Cached {
		if err := p.snapshots.Save(out.Snapshot); err != nil {
			p.logger.Warn("failed to cache snapshot", "error", err)
		} else {
			sendProgress(progress, cachedUpdate(out.Hash))
		}
	}

	if opts.Suggest > 0 {
		out.Misses = p.suggest(ctx, t, out.Result, opts.Suggest, progress)
	}
	return out, nil
}

// Current returns the reconciliation of the current input tables, reusing the cached
// snapshot when the inputs have not changed since it was stored.
func (p *Pipeline) Current(ctx context.Context) (*models.Snapshot, error) {
	t, err := tables.Load(tables.SourceFromConfig(p.cfg))
	if err != nil {
		return nil, err
	}
	hash := p.cacheKey(t)

	if p.snapshots != nil {
		snap, err := p.snapshots.GetByHash(hash)
		if err == nil {
			return snap, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			p.logger.Warn("snapshot lookup failed", "error", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := p.engine.Reconcile(t.Catalog, t.Records)
	snap := models.NewSnapshot(hash, models.Titles(res.Revenge), models.Titles(res.Unplayed), res.Cleared)
	if p.snapshots != nil {
		if err := p.snapshots.Save(snap); err != nil {
			p.logger.Warn("failed to cache snapshot", "error", err)
		}
	}
	return snap, nil
}

// Report builds an exportable report for an analyze result.
func (p *Pipeline) Report(res *AnalyzeResult) *formatter.Report {
	return formatter.NewReport(p.cfg.Tier.Name, res.Result, p.now())
}

func (p *Pipeline) suggest(ctx context.Context, t *tables.Tables, res *reconcile.Result, limit int, progress chan<- ProgressUpdate) []Miss {
	idx := p.engine.Rules().BuildIndex(t.Records)
	missing := res.Missing()
	misses := make([]Miss, 0, len(missing))

	for i, c := range missing {
		if ctx.Err() != nil {
			break
		}
		sendProgress(progress, suggestUpdate(i+1, len(missing), c.Entry.RawTitle))
		misses = append(misses, Miss{
			Entry:       c.Entry,
			Fingerprint: c.Fingerprint,
			Suggestions: reconcile.Suggest(idx, c.Fingerprint, limit),
		})
	}
	return misses
}

// cacheKey mixes the table hash with everything that changes how the tables are read or
// reconciled, so editing the config invalidates cached snapshots.
func (p *Pipeline) cacheKey(t *tables.Tables) string {
	tier := p.cfg.Tier
	cols := p.cfg.Columns
	desc := strings.Join([]string{
		strings.Join(tier.Markers, ","),
		tier.ChallengeMarker,
		tier.ExpertMarker,
		strings.Join(cols.Catalog.Title, ","),
		strings.Join(cols.Records.Title, ","),
		strings.Join(cols.Records.Challenge, ","),
		strings.Join(cols.Records.Expert, ","),
	}, "|")
	return tables.ContentHash([]byte(t.Hash), []byte(desc))
}

func (p *Pipeline) logIssues(issues []tables.RowIssue) {
	for _, issue := range issues {
		p.logger.Warn("malformed row", "table", issue.Table, "row", issue.Row, "column", issue.Column, "value", issue.Value)
	}
	if len(issues) > 0 {
		p.logger.Warn(fmt.Sprintf("%d row issue(s) degraded to no data", len(issues)))
	}
}
