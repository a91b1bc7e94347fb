package tasks

import (
	"fmt"

	"github.com/desertthunder/lvx/internal/reconcile"
	"github.com/desertthunder/lvx/internal/tables"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	LoadTables Phase = iota
	Reconcile
	WriteOutputs
	CacheSnapshot
	Suggest
	RunCollaborator
)

func (p Phase) String() string {
	switch p {
	case LoadTables:
		return "load_tables"
	case Reconcile:
		return "reconcile"
	case WriteOutputs:
		return "write_outputs"
	case CacheSnapshot:
		return "cache_snapshot"
	case Suggest:
		return "suggest"
	case RunCollaborator:
		return "run_collaborator"
	default:
		return ""
	}
}

func loadingUpdate(src tables.Source) ProgressUpdate {
	return ProgressUpdate{
		Phase:   LoadTables,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Loading %s and %s...", src.CatalogPath, src.RecordsPath),
	}
}

func loadedUpdate(t *tables.Tables) ProgressUpdate {
	return ProgressUpdate{
		Phase:   LoadTables,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Loaded %d catalog entries and %d records (%d issues)", len(t.Catalog), len(t.Records), len(t.Issues)),
		Data:    t,
	}
}

func reconciledUpdate(res *reconcile.Result, cached bool) ProgressUpdate {
	msg := fmt.Sprintf("%d revenge, %d unplayed, %d cleared", len(res.Revenge), len(res.Unplayed), res.Cleared)
	if cached {
		msg += " (inputs unchanged)"
	}
	return ProgressUpdate{
		Phase:   Reconcile,
		Step:    1,
		Total:   1,
		Message: msg,
		Data:    res,
	}
}

func writingUpdate(step, total int, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteOutputs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Writing %s...", step, total, path),
	}
}

func cachedUpdate(hash string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CacheSnapshot,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Cached result for inputs %.12s", hash),
	}
}

func suggestUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Suggest,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Looking for near misses: %s", step, total, title),
	}
}

func collaboratorStartedUpdate(step, total int, label string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RunCollaborator,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Running %s...", step, total, label),
	}
}

func collaboratorDoneUpdate(step, total int, res CollaboratorResult) ProgressUpdate {
	mark := "✓"
	if !res.OK {
		mark = "✗"
	}
	return ProgressUpdate{
		Phase:   RunCollaborator,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s %s (%s)", step, total, mark, res.Label, res.Duration.Round(1e6)),
		Data:    res,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}
