package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/lvx/internal/formatter"
	"github.com/desertthunder/lvx/internal/shared"
	"github.com/desertthunder/lvx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Analyze reconciles the input tables and writes the revenge and unplayed tables.
func (r *Runner) Analyze(ctx context.Context, cmd *cli.Command) error {
	var reportFormat formatter.Format
	if f := cmd.String("report"); f != "" {
		parsed, err := formatter.ParseFormat(f)
		if err != nil {
			return err
		}
		reportFormat = parsed
	}

	opts := tasks.AnalyzeOpts{
		WriteOutputs: !cmd.Bool("dry-run"),
		Suggest:      int(cmd.Int("suggest")),
	}
	if opts.Suggest < 0 {
		return fmt.Errorf("%w: --suggest must not be negative", shared.ErrInvalidFlag)
	}

	pipeline := r.pipeline()
	asJSON := cmd.Bool("json")

	var (
		res *tasks.AnalyzeResult
		err error
	)
	if asJSON {
		res, err = pipeline.Analyze(ctx, opts, nil)
	} else {
		progressCh := make(chan tasks.ProgressUpdate, 50)
		done := r.printProgress(progressCh)
		res, err = pipeline.Analyze(ctx, opts, progressCh)
		close(progressCh)
		<-done
	}
	if err != nil {
		return err
	}

	var reportPath string
	if reportFormat != "" {
		reportPath, err = formatter.WriteReport(pipeline.Report(res), r.Config().Files.ReportDir, reportFormat)
		if err != nil {
			return err
		}
		r.logger.Info("report written", "path", reportPath)
	}

	if asJSON {
		return r.writeJSON(analyzeJSON(res, r.Config().Tier.Name, reportPath), true)
	}
	return r.printAnalyze(res, reportPath)
}

type analyzeOutput struct {
	Tier       string       `json:"tier"`
	Total      int          `json:"total"`
	Cleared    int          `json:"cleared"`
	Revenge    []string     `json:"revenge"`
	Unplayed   []string     `json:"unplayed"`
	Duplicates int          `json:"duplicate_records"`
	Issues     []string     `json:"issues,omitempty"`
	Files      []string     `json:"files,omitempty"`
	Misses     []tasks.Miss `json:"misses,omitempty"`
	Hash       string       `json:"input_hash"`
	Cached     bool         `json:"cached"`
}

func analyzeJSON(res *tasks.AnalyzeResult, tier, reportPath string) analyzeOutput {
	out := analyzeOutput{
		Tier:       tier,
		Total:      res.Result.Total(),
		Cleared:    res.Result.Cleared,
		Revenge:    res.Snapshot.Revenge(),
		Unplayed:   res.Snapshot.Unplayed(),
		Duplicates: res.Result.Duplicates,
		Misses:     res.Misses,
		Hash:       res.Hash,
		Cached:     res.Cached,
	}
	for _, issue := range res.Tables.Issues {
		out.Issues = append(out.Issues, issue.Error())
	}
	if res.Files != nil {
		out.Files = append(out.Files, res.Files.RevengeFile, res.Files.UnplayedFile)
	}
	if reportPath != "" {
		out.Files = append(out.Files, reportPath)
	}
	return out
}

func (r *Runner) printAnalyze(res *tasks.AnalyzeResult, reportPath string) error {
	result := res.Result
	total := result.Total()

	r.writePlain("\n")
	r.writePlainHeader(fmt.Sprintf("%s Analysis Complete!", r.Config().Tier.Name))
	r.writePlain("Songs:    %d\n", total)
	r.writePlain("Cleared:  %d", result.Cleared)
	if total > 0 {
		r.writePlain(" (%.1f%%)", float64(result.Cleared)/float64(total)*100)
	}
	r.writePlain("\nRevenge:  %d\n", len(result.Revenge))
	r.writePlain("Unplayed: %d\n", len(result.Unplayed))

	if result.Duplicates > 0 {
		r.writePlain("\n%d duplicate record(s) ignored; the first row for each song wins.\n", result.Duplicates)
	}

	if n := len(res.Tables.Issues); n > 0 {
		r.writePlain("\n⚠ %d malformed row(s) read as no data:\n", n)
		for _, issue := range res.Tables.Issues {
			r.writePlain("  - %s\n", issue.Error())
		}
	}

	if res.Files != nil {
		r.writePlain("\nWrote:\n  %s\n  %s\n", res.Files.RevengeFile, res.Files.UnplayedFile)
	}
	if reportPath != "" {
		r.writePlain("Report: %s\n", reportPath)
	}

	if len(res.Misses) > 0 {
		r.writePlain("\nNo record found for %d song(s):\n", len(res.Misses))
		for _, miss := range res.Misses {
			r.writePlain("  - %s", miss.Entry.RawTitle)
			if len(miss.Suggestions) > 0 {
				r.writePlain("  (closest record keys:")
				for _, s := range miss.Suggestions {
					r.writePlain(" %s", s.Key)
				}
				r.writePlain(")")
			}
			r.writePlain("\n")
		}
	}

	return nil
}
