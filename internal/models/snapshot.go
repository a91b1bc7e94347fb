package models

import (
	"fmt"
	"time"
)

// Snapshot is a cached reconciliation result.
//
// InputHash identifies the exact catalog and record tables the result was computed from,
// so a consumer can reuse it whenever the inputs are unchanged.
type Snapshot struct {
	id        string
	inputHash string
	revenge   []string
	unplayed  []string
	cleared   int
	createdAt time.Time
	updatedAt time.Time
}

// NewSnapshot creates a [Snapshot] for the given input hash and partitions.
func NewSnapshot(inputHash string, revenge, unplayed []string, cleared int) *Snapshot {
	now := time.Now()
	return &Snapshot{
		inputHash: inputHash,
		revenge:   revenge,
		unplayed:  unplayed,
		cleared:   cleared,
		createdAt: now,
		updatedAt: now,
	}
}

func (s *Snapshot) ID() string           { return s.id }
func (s *Snapshot) InputHash() string    { return s.inputHash }
func (s *Snapshot) Revenge() []string    { return s.revenge }
func (s *Snapshot) Unplayed() []string   { return s.unplayed }
func (s *Snapshot) Cleared() int         { return s.cleared }
func (s *Snapshot) Total() int           { return len(s.revenge) + len(s.unplayed) + s.cleared }
func (s *Snapshot) CreatedAt() time.Time { return s.createdAt }
func (s *Snapshot) UpdatedAt() time.Time { return s.updatedAt }

func (s *Snapshot) SetID(id string)          { s.id = id }
func (s *Snapshot) SetCreatedAt(t time.Time) { s.createdAt = t }
func (s *Snapshot) SetUpdatedAt(t time.Time) { s.updatedAt = t }

func (s *Snapshot) Validate() error {
	if s.inputHash == "" {
		return fmt.Errorf("input hash is required")
	}
	if s.cleared < 0 {
		return fmt.Errorf("cleared count must not be negative: %d", s.cleared)
	}
	return nil
}

// RevengeEntries converts the cached revenge titles back to catalog entries.
func (s *Snapshot) RevengeEntries() []CatalogEntry { return toEntries(s.revenge) }

// UnplayedEntries converts the cached unplayed titles back to catalog entries.
func (s *Snapshot) UnplayedEntries() []CatalogEntry { return toEntries(s.unplayed) }

func toEntries(titles []string) []CatalogEntry {
	entries := make([]CatalogEntry, len(titles))
	for i, t := range titles {
		entries[i] = CatalogEntry{RawTitle: t}
	}
	return entries
}
