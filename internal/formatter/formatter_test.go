package formatter

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/lvx/internal/models"
	"github.com/desertthunder/lvx/internal/reconcile"
	"github.com/desertthunder/lvx/internal/shared"
	th "github.com/desertthunder/lvx/internal/testing"
)

func sampleResult() *reconcile.Result {
	catalog := []models.CatalogEntry{{RawTitle: "Alpha(激)"}, {RawTitle: "Beta(鬼)"}, {RawTitle: "Gamma, the \"Third\""}}
	records := []models.PersonalRecord{
		{Title: "Alpha", Expert: models.ClearStatusCleared},
		{Title: "Beta", Challenge: models.ClearStatusFailed},
	}
	return reconcile.Reconcile(catalog, records)
}

func TestExporters(t *testing.T) {
	at := time.Date(2025, 3, 1, 20, 30, 0, 0, time.UTC)
	report := NewReport("Lv18", sampleResult(), at)

	t.Run("NewReport", func(t *testing.T) {
		if report.Total != 3 || report.Cleared != 1 {
			t.Errorf("unexpected totals: %+v", report)
		}
		if len(report.Revenge) != 1 || report.Revenge[0] != "Beta(鬼)" {
			t.Errorf("unexpected revenge: %v", report.Revenge)
		}
		if rate := report.ClearRate(); rate < 33.3 || rate > 33.4 {
			t.Errorf("ClearRate() = %f", rate)
		}
	})

	t.Run("ExportListCSV", func(t *testing.T) {
		data, err := ExportListCSV(UnplayedHeader, report.Unplayed)
		if err != nil {
			t.Fatalf("ExportListCSV failed: %v", err)
		}

		output := string(data)
		if !strings.HasPrefix(output, "\ufeff"+UnplayedHeader+"\n") {
			t.Errorf("CSV missing BOM and header, got: %q", output)
		}
		if !strings.Contains(output, `"Gamma, the ""Third"""`) {
			t.Errorf("CSV should quote titles with commas and quotes, got: %q", output)
		}
	})

	t.Run("ExportListCSV empty", func(t *testing.T) {
		data, err := ExportListCSV(RevengeHeader, nil)
		if err != nil {
			t.Fatalf("ExportListCSV failed: %v", err)
		}
		if string(data) != "\ufeff"+RevengeHeader+"\n" {
			t.Errorf("expected header-only CSV, got %q", data)
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(report)
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{"# Lv18 progress", "| 3 | 1 | 1 | 1 | 33.3% |", "## Revenge (1)", "1. Beta(鬼)", "## Unplayed (1)"} {
			if !strings.Contains(output, want) {
				t.Errorf("Markdown missing %q, got:\n%s", want, output)
			}
		}
	})

	t.Run("ExportToMarkdown empty lists", func(t *testing.T) {
		data, err := ExportToMarkdown(&Report{Tier: "Lv18"})
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}
		if strings.Count(string(data), "_none_") != 2 {
			t.Errorf("expected two empty markers, got:\n%s", data)
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(report)
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Cleared: 1/3 (33.3%)") {
			t.Errorf("text missing clear line, got:\n%s", output)
		}
		if !strings.Contains(output, "  1. Beta(鬼)") {
			t.Errorf("text missing revenge entry, got:\n%s", output)
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(report)
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}

		var decoded Report
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded.Tier != "Lv18" || len(decoded.Unplayed) != 1 || !decoded.GeneratedAt.Equal(at) {
			t.Errorf("unexpected decoded report: %+v", decoded)
		}
	})

	t.Run("ParseFormat", func(t *testing.T) {
		tc := map[string]Format{"md": FormatMarkdown, "Markdown": FormatMarkdown, "text": FormatText, "json": FormatJSON}
		for in, want := range tc {
			got, err := ParseFormat(in)
			if err != nil || got != want {
				t.Errorf("ParseFormat(%q) = %v, %v", in, got, err)
			}
		}
		if _, err := ParseFormat("pdf"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestWriters(t *testing.T) {
	t.Run("WriteCSVExport", func(t *testing.T) {
		dir := t.TempDir()
		revenge := filepath.Join(dir, "out", "revenge.csv")
		unplayed := filepath.Join(dir, "out", "unplayed.csv")

		result, err := WriteCSVExport(sampleResult(), revenge, unplayed)
		if err != nil {
			t.Fatalf("WriteCSVExport failed: %v", err)
		}

		th.AssertFileExists(t, result.RevengeFile)
		th.AssertFileExists(t, result.UnplayedFile)

		if content := th.MustReadFile(t, revenge); content != "\ufeff課題曲名\nBeta(鬼)\n" {
			t.Errorf("unexpected revenge file: %q", content)
		}
	})

	t.Run("WriteCSVExport overwrites with header-only file", func(t *testing.T) {
		dir := t.TempDir()
		revenge := filepath.Join(dir, "revenge.csv")
		unplayed := filepath.Join(dir, "unplayed.csv")

		if _, err := WriteCSVExport(sampleResult(), revenge, unplayed); err != nil {
			t.Fatalf("WriteCSVExport failed: %v", err)
		}

		empty := reconcile.Reconcile(nil, nil)
		if _, err := WriteCSVExport(empty, revenge, unplayed); err != nil {
			t.Fatalf("WriteCSVExport failed: %v", err)
		}

		if content := th.MustReadFile(t, revenge); content != "\ufeff課題曲名\n" {
			t.Errorf("stale revenge file: %q", content)
		}
	})

	t.Run("WriteReport", func(t *testing.T) {
		dir := t.TempDir()
		report := NewReport("Lv18", sampleResult(), time.Now())

		path, err := WriteReport(report, filepath.Join(dir, "reports"), FormatMarkdown)
		if err != nil {
			t.Fatalf("WriteReport failed: %v", err)
		}

		if filepath.Base(path) != "lv18_report.md" {
			t.Errorf("unexpected report name: %s", path)
		}
		th.AssertFileExists(t, path)
	})

	t.Run("ReportFromSnapshot", func(t *testing.T) {
		snap := models.NewSnapshot("hash", []string{"Beta(鬼)"}, []string{"Gamma"}, 1)
		report := ReportFromSnapshot("Lv18", snap)
		if report.Total != 3 || report.Revenge[0] != "Beta(鬼)" || report.Unplayed[0] != "Gamma" {
			t.Errorf("unexpected report: %+v", report)
		}
	})
}
