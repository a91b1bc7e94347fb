// package testing contains shared testing utilities
package testing

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/lvx/internal/models"
	"github.com/desertthunder/lvx/internal/shared"
)

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// NewTestDB opens a migrated in-memory database that is closed when the test ends.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(shared.MemoryDatabase)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

// NewTestConfig returns the default configuration with every path under dir.
func NewTestConfig(t *testing.T, dir string) *shared.Config {
	t.Helper()

	cfg := shared.DefaultConfig()
	cfg.Files.Catalog = filepath.Join(dir, "DDR18_songs.csv")
	cfg.Files.Records = filepath.Join(dir, "my_ddr_data.csv")
	cfg.Files.Revenge = filepath.Join(dir, "out", "revenge.csv")
	cfg.Files.Unplayed = filepath.Join(dir, "out", "unplayed.csv")
	cfg.Files.ReportDir = filepath.Join(dir, "reports")
	cfg.Files.Log = filepath.Join(dir, "lvx.log")
	cfg.Database.Path = shared.MemoryDatabase
	cfg.Collaborators.IntervalMS = 0
	return cfg
}

// WriteCatalog writes a catalog CSV with the scraper's header.
func WriteCatalog(t *testing.T, path string, titles ...string) {
	t.Helper()

	rows := [][]string{{"楽曲データ"}}
	for _, title := range titles {
		rows = append(rows, []string{title})
	}
	writeCSV(t, path, rows)
}

// WriteRecords writes a personal-record CSV with the scraper's header and Japanese status labels.
func WriteRecords(t *testing.T, path string, records ...models.PersonalRecord) {
	t.Helper()

	rows := [][]string{{"曲名", "EXPERT判定", "CHALLENGE判定"}}
	for _, r := range records {
		rows = append(rows, []string{r.Title, StatusLabel(r.Expert), StatusLabel(r.Challenge)})
	}
	writeCSV(t, path, rows)
}

// StatusLabel returns the label the official site shows for s.
func StatusLabel(s models.ClearStatus) string {
	switch s {
	case models.ClearStatusCleared:
		return "クリア済み"
	case models.ClearStatusFailed:
		return "未クリア(E)"
	case models.ClearStatusNotPlayed:
		return "未プレイ"
	default:
		return "データなし"
	}
}

func writeCSV(t *testing.T, path string, rows [][]string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
