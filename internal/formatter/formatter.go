// package formatter exports reconciliation results to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/desertthunder/lvx/internal/models"
	"github.com/desertthunder/lvx/internal/reconcile"
	"github.com/desertthunder/lvx/internal/shared"
)

// Column headers of the two output tables.
const (
	RevengeHeader  = "課題曲名"
	UnplayedHeader = "未プレイ曲名"
)

// utf8BOM makes spreadsheet applications detect UTF-8 when opening the CSVs.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Format names a report format.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
	FormatJSON     Format = "json"
)

// ParseFormat accepts "md"/"markdown", "txt"/"text" and "json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "md", "markdown":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: unknown report format %q", shared.ErrInvalidArgument, s)
}

// Report is a presentation-ready summary of one reconciliation.
type Report struct {
	Tier        string    `json:"tier"`
	GeneratedAt time.Time `json:"generated_at"`
	Total       int       `json:"total"`
	Cleared     int       `json:"cleared"`
	Revenge     []string  `json:"revenge"`
	Unplayed    []string  `json:"unplayed"`
}

// NewReport summarizes res for tier.
func NewReport(tier string, res *reconcile.Result, at time.Time) *Report {
	return &Report{
		Tier:        tier,
		GeneratedAt: at,
		Total:       res.Total(),
		Cleared:     res.Cleared,
		Revenge:     models.Titles(res.Revenge),
		Unplayed:    models.Titles(res.Unplayed),
	}
}

// ReportFromSnapshot summarizes a cached result.
func ReportFromSnapshot(tier string, snap *models.Snapshot) *Report {
	return &Report{
		Tier:        tier,
		GeneratedAt: snap.UpdatedAt(),
		Total:       snap.Total(),
		Cleared:     snap.Cleared(),
		Revenge:     snap.Revenge(),
		Unplayed:    snap.Unplayed(),
	}
}

// ClearRate is the cleared share of the tier as a percentage.
func (r *Report) ClearRate() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Cleared) / float64(r.Total) * 100
}

// ExportListCSV writes a one-column table of titles with the given header, UTF-8 with BOM.
func ExportListCSV(header string, titles []string) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{header}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, title := range titles {
		if err := writer.Write([]string{title}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders the report as a Markdown document.
func ExportToMarkdown(r *Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s progress\n\n", r.Tier)
	fmt.Fprintf(&buf, "**Generated**: %s\n\n", r.GeneratedAt.Format(time.DateTime))
	fmt.Fprintf(&buf, "| total | cleared | revenge | unplayed | clear rate |\n")
	fmt.Fprintf(&buf, "|------:|--------:|--------:|---------:|-----------:|\n")
	fmt.Fprintf(&buf, "| %d | %d | %d | %d | %.1f%% |\n\n", r.Total, r.Cleared, len(r.Revenge), len(r.Unplayed), r.ClearRate())

	writeMarkdownList(&buf, "Revenge", r.Revenge)
	writeMarkdownList(&buf, "Unplayed", r.Unplayed)

	return buf.Bytes(), nil
}

func writeMarkdownList(buf *bytes.Buffer, title string, items []string) {
	fmt.Fprintf(buf, "## %s (%d)\n\n", title, len(items))
	if len(items) == 0 {
		buf.WriteString("_none_\n\n")
		return
	}
	for i, item := range items {
		fmt.Fprintf(buf, "%d. %s\n", i+1, item)
	}
	buf.WriteString("\n")
}

// ExportToText renders the report as plain text.
func ExportToText(r *Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Tier: %s\n", r.Tier)
	fmt.Fprintf(&buf, "Cleared: %d/%d (%.1f%%)\n", r.Cleared, r.Total, r.ClearRate())
	fmt.Fprintf(&buf, "Revenge: %d\n", len(r.Revenge))
	for i, title := range r.Revenge {
		fmt.Fprintf(&buf, "  %d. %s\n", i+1, title)
	}
	fmt.Fprintf(&buf, "Unplayed: %d\n", len(r.Unplayed))
	for i, title := range r.Unplayed {
		fmt.Fprintf(&buf, "  %d. %s\n", i+1, title)
	}

	return buf.Bytes(), nil
}

// ExportToJSON renders the report as indented JSON.
func ExportToJSON(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := shared.WriteJSON(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Export renders the report in format.
func Export(r *Report, format Format) ([]byte, error) {
	switch format {
	case FormatMarkdown:
		return ExportToMarkdown(r)
	case FormatText:
		return ExportToText(r)
	case FormatJSON:
		return ExportToJSON(r)
	}
	return nil, fmt.Errorf("%w: unknown report format %q", shared.ErrInvalidArgument, format)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	RevengeFile  string
	UnplayedFile string
}

// WriteCSVExport writes the revenge and unplayed tables, creating parent directories.
//
// An empty list still produces a header-only file so consumers never read stale output.
func WriteCSVExport(res *reconcile.Result, revengePath, unplayedPath string) (*CSVExportResult, error) {
	if err := writeList(revengePath, RevengeHeader, models.Titles(res.Revenge)); err != nil {
		return nil, err
	}
	if err := writeList(unplayedPath, UnplayedHeader, models.Titles(res.Unplayed)); err != nil {
		return nil, err
	}

	return &CSVExportResult{RevengeFile: revengePath, UnplayedFile: unplayedPath}, nil
}

func writeList(path, header string, titles []string) error {
	data, err := ExportListCSV(header, titles)
	if err != nil {
		return fmt.Errorf("failed to generate CSV: %w", err)
	}
	return writeFile(path, data)
}

// WriteReport writes the report to dir as {tier}_report.{format} and returns the path.
func WriteReport(r *Report, dir string, format Format) (string, error) {
	data, err := Export(r, format)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_report.%s", strings.ToLower(r.Tier), format)
	path := filepath.Join(dir, name)
	if err := writeFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
