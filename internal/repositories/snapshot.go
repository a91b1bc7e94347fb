package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/lvx/internal/models"
	"github.com/desertthunder/lvx/internal/shared"
)

// SnapshotRepository caches the latest reconciliation result.
//
// Only one snapshot is retained: saving replaces whatever was cached before.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the given database connection
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

const snapshotColumns = `id, input_hash, revenge, unplayed, cleared, created_at, updated_at`

// Save stores snap as the only cached snapshot and assigns it a new ID.
func (r *SnapshotRepository) Save(snap *models.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
	}

	revenge, err := encodeTitles(snap.Revenge())
	if err != nil {
		return err
	}
	unplayed, err := encodeTitles(snap.Unplayed())
	if err != nil {
		return err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM snapshots"); err != nil {
		return fmt.Errorf("failed to clear snapshots: %w", err)
	}

	id := shared.GenerateID()
	now := time.Now()

	query := `
		INSERT INTO snapshots (` + snapshotColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := tx.Exec(query, id, snap.InputHash(), revenge, unplayed, snap.Cleared(), snap.CreatedAt(), now); err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	snap.SetID(id)
	snap.SetUpdatedAt(now)
	return nil
}

// Latest returns the cached snapshot, or an error wrapping [shared.ErrNotFound].
func (r *SnapshotRepository) Latest() (*models.Snapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM snapshots ORDER BY updated_at DESC LIMIT 1`

	snap, err := scanSnapshot(r.db.QueryRow(query))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no cached snapshot", shared.ErrNotFound)
	}
	return snap, err
}

// GetByHash returns the cached snapshot computed from inputs with the given content hash.
func (r *SnapshotRepository) GetByHash(hash string) (*models.Snapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM snapshots WHERE input_hash = ?`

	snap, err := scanSnapshot(r.db.QueryRow(query, hash))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no snapshot for %s", shared.ErrNotFound, hash)
	}
	return snap, err
}

// Clear drops the cached snapshot.
func (r *SnapshotRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM snapshots"); err != nil {
		return fmt.Errorf("failed to clear snapshots: %w", err)
	}
	return nil
}

func encodeTitles(titles []string) (string, error) {
	if titles == nil {
		titles = []string{}
	}
	data, err := json.Marshal(titles)
	if err != nil {
		return "", fmt.Errorf("failed to encode titles: %w", err)
	}
	return string(data), nil
}

func scanSnapshot(row scanner) (*models.Snapshot, error) {
	var (
		id        string
		hash      string
		revenge   string
		unplayed  string
		cleared   int
		createdAt time.Time
		updatedAt time.Time
	)

	err := row.Scan(&id, &hash, &revenge, &unplayed, &cleared, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan snapshot: %w", err)
	}

	var revengeTitles, unplayedTitles []string
	if err := json.Unmarshal([]byte(revenge), &revengeTitles); err != nil {
		return nil, fmt.Errorf("failed to decode revenge titles: %w", err)
	}
	if err := json.Unmarshal([]byte(unplayed), &unplayedTitles); err != nil {
		return nil, fmt.Errorf("failed to decode unplayed titles: %w", err)
	}

	snap := models.NewSnapshot(hash, revengeTitles, unplayedTitles, cleared)
	snap.SetID(id)
	snap.SetCreatedAt(createdAt)
	snap.SetUpdatedAt(updatedAt)
	return snap, nil
}
