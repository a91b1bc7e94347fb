package tables

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/tealeg/xlsx/v2"

	"github.com/desertthunder/lvx/internal/models"
	"github.com/desertthunder/lvx/internal/reconcile"
	"github.com/desertthunder/lvx/internal/shared"
)

func defaultSource(catalog, records string) Source {
	cfg := shared.DefaultConfig()
	cfg.Files.Catalog = catalog
	cfg.Files.Records = records
	return SourceFromConfig(cfg)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func writeXLSX(t *testing.T, dir, name string, rows [][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Sheet1")
	if err != nil {
		t.Fatalf("failed to add sheet: %v", err)
	}
	for _, cells := range rows {
		row := sheet.AddRow()
		for _, c := range cells {
			row.AddCell().SetString(c)
		}
	}
	path := filepath.Join(dir, name)
	if err := f.Save(path); err != nil {
		t.Fatalf("failed to save xlsx: %v", err)
	}
	return path
}

func TestParseClearStatus(t *testing.T) {
	tc := []struct {
		raw     string
		want    models.ClearStatus
		wantErr bool
	}{
		{"クリア済み", models.ClearStatusCleared, false},
		{"cleared", models.ClearStatusCleared, false},
		{" CLEARED ", models.ClearStatusCleared, false},
		{"未クリア(E)", models.ClearStatusFailed, false},
		{"未クリア", models.ClearStatusFailed, false},
		{"failed_clear", models.ClearStatusFailed, false},
		{"failed_cleared_attempt", models.ClearStatusFailed, false},
		{"未プレイ", models.ClearStatusNotPlayed, false},
		{"not_played", models.ClearStatusNotPlayed, false},
		{"データなし", models.ClearStatusNoData, false},
		{"n/a", models.ClearStatusNoData, false},
		{"N/A", models.ClearStatusNoData, false},
		{"no_data", models.ClearStatusNoData, false},
		{"", models.ClearStatusNoData, false},
		{"ﾃﾞｰﾀなし", models.ClearStatusNoData, false},
		{"フルコンボ", models.ClearStatusNoData, true},
	}

	for _, tt := range tc {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseClearStatus(tt.raw)
			if got != tt.want {
				t.Errorf("ParseClearStatus(%q) = %v, want %v", tt.raw, got, tt.want)
			}
			if tt.wantErr != (err != nil) {
				t.Errorf("ParseClearStatus(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, shared.ErrMalformedRow) {
				t.Errorf("expected ErrMalformedRow, got %v", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("csv with headers and BOM", func(t *testing.T) {
		dir := t.TempDir()
		catalog := writeFile(t, dir, "DDR18_songs.csv", "\ufeff楽曲データ\nAlpha(激)\nBeta(鬼)\nGamma\n")
		records := writeFile(t, dir, "my_ddr_data.csv",
			"\ufeff曲名,EXPERT判定,CHALLENGE判定\nAlpha,クリア済み,データなし\nBeta,データなし,未クリア(C)\n")

		tbl, err := Load(defaultSource(catalog, records))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if got := models.Titles(tbl.Catalog); !reflect.DeepEqual(got, []string{"Alpha(激)", "Beta(鬼)", "Gamma"}) {
			t.Errorf("catalog = %v", got)
		}

		want := []models.PersonalRecord{
			{Title: "Alpha", Expert: models.ClearStatusCleared, Challenge: models.ClearStatusNoData},
			{Title: "Beta", Expert: models.ClearStatusNoData, Challenge: models.ClearStatusFailed},
		}
		if !reflect.DeepEqual(tbl.Records, want) {
			t.Errorf("records = %+v, want %+v", tbl.Records, want)
		}

		if len(tbl.Issues) != 0 {
			t.Errorf("unexpected issues: %v", tbl.Issues)
		}

		if len(tbl.Hash) != 64 {
			t.Errorf("expected sha256 hex hash, got %q", tbl.Hash)
		}
	})

	t.Run("titles are trimmed", func(t *testing.T) {
		dir := t.TempDir()
		catalog := writeFile(t, dir, "DDR18_songs.csv", "楽曲データ\nSong(鬼) \n Other(激)\n")
		records := writeFile(t, dir, "my_ddr_data.csv",
			"曲名,EXPERT判定,CHALLENGE判定\n Song ,データなし,クリア済み\nOther,クリア済み,データなし\n")

		tbl, err := Load(defaultSource(catalog, records))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if got := models.Titles(tbl.Catalog); !reflect.DeepEqual(got, []string{"Song(鬼)", "Other(激)"}) {
			t.Errorf("catalog = %q", got)
		}
		if tbl.Records[0].Title != "Song" {
			t.Errorf("record title = %q, want Song", tbl.Records[0].Title)
		}

		res := reconcile.Reconcile(tbl.Catalog, tbl.Records)
		if res.Cleared != 2 || len(res.Revenge) != 0 || len(res.Unplayed) != 0 {
			t.Errorf("cleared = %d, revenge = %v, unplayed = %v; want both cleared", res.Cleared, res.Revenge, res.Unplayed)
		}
	})

	t.Run("title falls back to first column", func(t *testing.T) {
		dir := t.TempDir()
		catalog := writeFile(t, dir, "catalog.csv", "songs,level\nAlpha,18\n")
		records := writeFile(t, dir, "records.csv", "name,CHALLENGE判定\nAlpha,cleared\n")

		tbl, err := Load(defaultSource(catalog, records))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if tbl.Catalog[0].RawTitle != "Alpha" {
			t.Errorf("catalog title = %q, want Alpha", tbl.Catalog[0].RawTitle)
		}
		if tbl.Records[0].Title != "Alpha" || tbl.Records[0].Challenge != models.ClearStatusCleared {
			t.Errorf("record = %+v", tbl.Records[0])
		}
		if tbl.Records[0].Expert != models.ClearStatusNoData {
			t.Errorf("missing expert column should read as no data, got %v", tbl.Records[0].Expert)
		}

		if len(tbl.Issues) != 1 || tbl.Issues[0].Row != 1 || !errors.Is(tbl.Issues[0], shared.ErrMalformedRow) {
			t.Errorf("expected one missing column issue, got %v", tbl.Issues)
		}
	})

	t.Run("malformed rows degrade", func(t *testing.T) {
		dir := t.TempDir()
		catalog := writeFile(t, dir, "catalog.csv", "曲名,x\n,1\nAlpha,2\n")
		records := writeFile(t, dir, "records.csv", "曲名,CHALLENGE判定,EXPERT判定\nAlpha,???\nBeta\n,cleared,cleared\n")

		tbl, err := Load(defaultSource(catalog, records))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if got := models.Titles(tbl.Catalog); !reflect.DeepEqual(got, []string{"Alpha"}) {
			t.Errorf("catalog = %v", got)
		}

		want := []models.PersonalRecord{{Title: "Alpha"}, {Title: "Beta"}}
		if !reflect.DeepEqual(tbl.Records, want) {
			t.Errorf("records = %+v, want %+v", tbl.Records, want)
		}

		// catalog blank title, Alpha bad challenge + missing expert, Beta missing both, blank record title
		if len(tbl.Issues) != 6 {
			t.Errorf("expected 6 issues, got %d: %v", len(tbl.Issues), tbl.Issues)
		}
		for _, issue := range tbl.Issues {
			if !errors.Is(issue, shared.ErrMalformedRow) {
				t.Errorf("issue should wrap ErrMalformedRow: %v", issue)
			}
		}
		if tbl.Issues[1].Value != "???" || tbl.Issues[1].Row != 2 || tbl.Issues[1].Column != "CHALLENGE判定" {
			t.Errorf("unexpected issue: %+v", tbl.Issues[1])
		}
	})

	t.Run("header-only records are allowed", func(t *testing.T) {
		dir := t.TempDir()
		catalog := writeFile(t, dir, "catalog.csv", "曲名\nSolo\n")
		records := writeFile(t, dir, "records.csv", "曲名,CHALLENGE判定,EXPERT判定\n")

		tbl, err := Load(defaultSource(catalog, records))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(tbl.Records) != 0 {
			t.Errorf("expected no records, got %v", tbl.Records)
		}
	})

	t.Run("xlsx input", func(t *testing.T) {
		dir := t.TempDir()
		catalog := writeXLSX(t, dir, "catalog.xlsx", [][]string{{"楽曲データ"}, {"Alpha(激)"}, {""}, {"Gamma"}})
		records := writeXLSX(t, dir, "records.xlsx", [][]string{
			{"曲名", "EXPERT判定", "CHALLENGE判定"},
			{"Alpha", "クリア済み", "未プレイ"},
		})

		tbl, err := Load(defaultSource(catalog, records))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got := models.Titles(tbl.Catalog); !reflect.DeepEqual(got, []string{"Alpha(激)", "Gamma"}) {
			t.Errorf("catalog = %v", got)
		}
		want := models.PersonalRecord{Title: "Alpha", Expert: models.ClearStatusCleared, Challenge: models.ClearStatusNotPlayed}
		if len(tbl.Records) != 1 || tbl.Records[0] != want {
			t.Errorf("records = %+v", tbl.Records)
		}
	})

	t.Run("input missing", func(t *testing.T) {
		dir := t.TempDir()
		catalog := writeFile(t, dir, "catalog.csv", "曲名\nSolo\n")
		empty := writeFile(t, dir, "empty.csv", "")
		headerOnly := writeFile(t, dir, "header.csv", "曲名\n")

		tc := []struct {
			name      string
			src       Source
			wantEmpty bool
		}{
			{"no catalog file", defaultSource(filepath.Join(dir, "nope.csv"), catalog), false},
			{"no records file", defaultSource(catalog, filepath.Join(dir, "nope.csv")), false},
			{"unconfigured path", defaultSource("", catalog), false},
			{"empty catalog file", defaultSource(empty, catalog), true},
			{"header-only catalog", defaultSource(headerOnly, catalog), true},
			{"empty records file", defaultSource(catalog, empty), true},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				tbl, err := Load(tt.src)
				if tbl != nil {
					t.Errorf("expected no tables, got %+v", tbl)
				}
				if !IsInputMissing(err) {
					t.Errorf("expected ErrInputMissing, got %v", err)
				}
				if tt.wantEmpty != errors.Is(err, shared.ErrEmptyTable) {
					t.Errorf("ErrEmptyTable = %v, want %v (%v)", !tt.wantEmpty, tt.wantEmpty, err)
				}
			})
		}
	})
}

func TestContentHash(t *testing.T) {
	a := ContentHash([]byte("ab"), []byte("c"))
	if a != ContentHash([]byte("ab"), []byte("c")) {
		t.Error("hash should be deterministic")
	}
	if a == ContentHash([]byte("a"), []byte("bc")) {
		t.Error("moving bytes between parts should change the hash")
	}
}

func TestFormatOf(t *testing.T) {
	if FormatOf("songs.XLSX") != FormatXLSX {
		t.Error("expected xlsx")
	}
	if FormatOf("songs.csv") != FormatCSV || FormatOf("songs") != FormatCSV {
		t.Error("expected csv")
	}
}
