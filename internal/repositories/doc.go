// Package repositories implements SQLite persistence for the workout log and the reconciliation cache.
//
// Key Implementations:
//   - [WorkoutRepository] : play sessions with calorie counts, soft deletes and date-range queries
//   - [SnapshotRepository] : the most recent reconciliation result keyed by the content hash of its inputs
//
// Sequence numbers provide stable, human-readable ordering (e.g., workout #42) independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
