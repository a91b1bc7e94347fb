package tables

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/lvx/internal/models"
	"github.com/desertthunder/lvx/internal/shared"
)

// Table names used in diagnostics.
const (
	CatalogTable = "catalog"
	RecordsTable = "records"
)

// RowIssue is a non-fatal problem found in one row. Row is 1-based and counts the header.
type RowIssue struct {
	Table  string
	Row    int
	Column string
	Value  string
	Err    error
}

func (i RowIssue) Error() string {
	if i.Column == "" {
		return fmt.Sprintf("%s row %d: %v", i.Table, i.Row, i.Err)
	}
	return fmt.Sprintf("%s row %d, column %s: %v", i.Table, i.Row, i.Column, i.Err)
}

func (i RowIssue) Unwrap() error { return i.Err }

// Source locates the two input tables and their column mappings.
type Source struct {
	CatalogPath    string
	RecordsPath    string
	CatalogColumns ColumnMap
	RecordColumns  ColumnMap
}

// SourceFromConfig builds a [Source] from the files and columns sections.
func SourceFromConfig(cfg *shared.Config) Source {
	return Source{
		CatalogPath:    cfg.Files.Catalog,
		RecordsPath:    cfg.Files.Records,
		CatalogColumns: CatalogColumns(cfg.Columns),
		RecordColumns:  RecordColumns(cfg.Columns),
	}
}

// Tables is a successfully loaded pair of inputs.
//
// Hash identifies the exact bytes of both files and is stable across processes.
type Tables struct {
	Catalog []models.CatalogEntry
	Records []models.PersonalRecord
	Issues  []RowIssue
	Hash    string
}

// Load reads both tables. It fails, wrapping [shared.ErrInputMissing], when either file is
// absent or unreadable, when the catalog has no entries, or when the records file has no
// header row. A records table with a header and no rows is valid and yields no records.
func Load(src Source) (*Tables, error) {
	catalogData, err := readFile(CatalogTable, src.CatalogPath)
	if err != nil {
		return nil, err
	}
	recordsData, err := readFile(RecordsTable, src.RecordsPath)
	if err != nil {
		return nil, err
	}

	catalog, catalogIssues, err := ParseCatalog(catalogData, FormatOf(src.CatalogPath), src.CatalogColumns)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", shared.ErrInputMissing, CatalogTable, src.CatalogPath, err)
	}
	if len(catalog) == 0 {
		return nil, fmt.Errorf("%w: %s %s: %w", shared.ErrInputMissing, CatalogTable, src.CatalogPath, shared.ErrEmptyTable)
	}

	records, recordIssues, err := ParseRecords(recordsData, FormatOf(src.RecordsPath), src.RecordColumns)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", shared.ErrInputMissing, RecordsTable, src.RecordsPath, err)
	}

	return &Tables{
		Catalog: catalog,
		Records: records,
		Issues:  append(catalogIssues, recordIssues...),
		Hash:    ContentHash(catalogData, recordsData),
	}, nil
}

func readFile(table, path string) ([]byte, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: %s path is not configured", shared.ErrInputMissing, table)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", shared.ErrInputMissing, table, path, err)
	}
	return data, nil
}

// ParseCatalog decodes a catalog table. Rows without a title are skipped and reported.
// Titles are kept as written apart from surrounding whitespace, so a trailing marker
// still ends the title.
func ParseCatalog(data []byte, format Format, cols ColumnMap) ([]models.CatalogEntry, []RowIssue, error) {
	rows, err := parseRows(data, format)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, shared.ErrEmptyTable
	}

	l := cols.resolve(rows[0])
	var (
		entries []models.CatalogEntry
		issues  []RowIssue
	)
	for i, row := range rows[1:] {
		title, ok := cell(row, l.title)
		title = strings.TrimSpace(title)
		if !ok || title == "" {
			issues = append(issues, RowIssue{
				Table:  CatalogTable,
				Row:    i + 2,
				Column: headerName(rows[0], l.title),
				Err:    fmt.Errorf("%w: missing title", shared.ErrMalformedRow),
			})
			continue
		}
		entries = append(entries, models.CatalogEntry{RawTitle: title})
	}
	return entries, issues, nil
}

// ParseRecords decodes a personal-record table. A status column absent from the header
// reads as no data for every row and is reported once.
func ParseRecords(data []byte, format Format, cols ColumnMap) ([]models.PersonalRecord, []RowIssue, error) {
	rows, err := parseRows(data, format)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, shared.ErrEmptyTable
	}

	header := rows[0]
	l := cols.resolve(header)

	var issues []RowIssue
	if l.challenge < 0 {
		issues = append(issues, missingColumn(cols.Challenge))
	}
	if l.expert < 0 {
		issues = append(issues, missingColumn(cols.Expert))
	}

	records := make([]models.PersonalRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2
		title, ok := cell(row, l.title)
		title = strings.TrimSpace(title)
		if !ok || title == "" {
			issues = append(issues, RowIssue{
				Table:  RecordsTable,
				Row:    line,
				Column: headerName(header, l.title),
				Err:    fmt.Errorf("%w: missing title", shared.ErrMalformedRow),
			})
			continue
		}

		rec := models.PersonalRecord{Title: title}
		rec.Challenge, issues = statusAt(row, header, l.challenge, line, issues)
		rec.Expert, issues = statusAt(row, header, l.expert, line, issues)
		records = append(records, rec)
	}
	return records, issues, nil
}

func statusAt(row, header []string, col, line int, issues []RowIssue) (models.ClearStatus, []RowIssue) {
	if col < 0 {
		return models.ClearStatusNoData, issues
	}
	raw, ok := cell(row, col)
	if !ok {
		return models.ClearStatusNoData, append(issues, RowIssue{
			Table:  RecordsTable,
			Row:    line,
			Column: headerName(header, col),
			Err:    fmt.Errorf("%w: missing status", shared.ErrMalformedRow),
		})
	}

	status, err := ParseClearStatus(raw)
	if err != nil {
		issues = append(issues, RowIssue{
			Table:  RecordsTable,
			Row:    line,
			Column: headerName(header, col),
			Value:  raw,
			Err:    err,
		})
	}
	return status, issues
}

func missingColumn(candidates []string) RowIssue {
	return RowIssue{
		Table:  RecordsTable,
		Row:    1,
		Column: strings.Join(candidates, "|"),
		Err:    fmt.Errorf("%w: status column not found, reading as no data", shared.ErrMalformedRow),
	}
}

func headerName(header []string, i int) string {
	if h, ok := cell(header, i); ok {
		return cleanHeader(h)
	}
	return fmt.Sprintf("#%d", i)
}

// ContentHash returns a hex SHA-256 over parts. Each part is length-prefixed so
// moving bytes between parts changes the hash.
func ContentHash(parts ...[]byte) string {
	h := sha256.New()
	var size [8]byte
	for _, p := range parts {
		binary.BigEndian.PutUint64(size[:], uint64(len(p)))
		h.Write(size[:])
		h.Write(p)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// IsInputMissing reports whether err means the inputs could not be loaded.
func IsInputMissing(err error) bool {
	return errors.Is(err, shared.ErrInputMissing)
}
