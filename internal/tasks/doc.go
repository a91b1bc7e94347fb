// Package tasks orchestrates the work around the reconciliation core with real-time progress reporting.
//
// # Core Operations
//
//  1. [Pipeline.Analyze] : full reconciliation run
//     - Loads the catalog and records tables ([tables.Load])
//     - Reconciles them with the configured [reconcile.Rules]
//     - Writes the revenge and unplayed CSV tables
//     - Caches the result as a [models.Snapshot] keyed by the inputs' content hash
//     - Optionally proposes near-miss record titles for unmatched entries
//
//  2. [Pipeline.Current] : cached view for dashboards
//     - Reuses the stored snapshot while the input files are unchanged
//
//  3. [Runner.Update] : refresh the input tables
//     - Runs the configured external collaborator commands on a small worker pool
//     - Launches are throttled with a [rate.Limiter]
//     - Each run yields a success/failure diagnostic with the captured output
//
//  4. [Pick] : uniform random choice from a list, for the roulette
//
// # Progress Reporting
//
// All long-running operations accept a `chan<- ProgressUpdate`. Updates are sent
// with select/default so a slow or absent consumer never blocks the operation.
package tasks
