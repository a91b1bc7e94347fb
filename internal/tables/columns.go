package tables

import (
	"strings"

	"github.com/desertthunder/lvx/internal/shared"
)

const bom = "\ufeff"

// ColumnMap lists acceptable header names per logical column, most preferred first.
type ColumnMap struct {
	Title     []string
	Challenge []string
	Expert    []string
}

// CatalogColumns builds the catalog [ColumnMap] from configuration.
func CatalogColumns(cfg shared.ColumnsConfig) ColumnMap {
	return ColumnMap{Title: cfg.Catalog.Title}
}

// RecordColumns builds the personal-record [ColumnMap] from configuration.
func RecordColumns(cfg shared.ColumnsConfig) ColumnMap {
	return ColumnMap{
		Title:     cfg.Records.Title,
		Challenge: cfg.Records.Challenge,
		Expert:    cfg.Records.Expert,
	}
}

// layout is a ColumnMap resolved against a concrete header row. -1 means absent.
type layout struct {
	title     int
	challenge int
	expert    int
}

func (m ColumnMap) resolve(header []string) layout {
	l := layout{
		title:     findColumn(header, m.Title),
		challenge: findColumn(header, m.Challenge),
		expert:    findColumn(header, m.Expert),
	}
	if l.title < 0 {
		l.title = 0
	}
	return l
}

// findColumn returns the index of the first candidate present in header.
// Header cells are compared trimmed and case-insensitively.
func findColumn(header []string, candidates []string) int {
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		for i, h := range header {
			if strings.EqualFold(cleanHeader(h), c) {
				return i
			}
		}
	}
	return -1
}

func cleanHeader(h string) string {
	return strings.TrimSpace(strings.TrimPrefix(h, bom))
}

// cell returns row[i], or false when the row is too short.
func cell(row []string, i int) (string, bool) {
	if i < 0 || i >= len(row) {
		return "", false
	}
	return row[i], true
}
