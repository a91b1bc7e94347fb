package reconcile

import "github.com/desertthunder/lvx/internal/models"

// Classification is the per-entry trace of a reconciliation run.
type Classification struct {
	Entry       models.CatalogEntry    `json:"entry"`
	Fingerprint string                 `json:"fingerprint"`
	Target      models.Mode            `json:"target"`
	Outcome     models.Outcome         `json:"outcome"`
	Record      *models.PersonalRecord `json:"record,omitempty"`
}

// Result holds the partitions of one run. Revenge and Unplayed keep catalog order.
type Result struct {
	Revenge    []models.CatalogEntry `json:"revenge"`
	Unplayed   []models.CatalogEntry `json:"unplayed"`
	Cleared    int                   `json:"cleared"`
	Duplicates int                   `json:"duplicate_records"`
	Entries    []Classification      `json:"entries"`
}

// Total is the number of catalog entries reconciled.
func (r *Result) Total() int {
	return len(r.Revenge) + len(r.Unplayed) + r.Cleared
}

// Missing returns the classifications of entries that matched no record.
func (r *Result) Missing() []Classification {
	var out []Classification
	for _, c := range r.Entries {
		if c.Record == nil {
			out = append(out, c)
		}
	}
	return out
}

// Engine reconciles catalogs with a fixed set of [Rules]. It holds no mutable state
// and is safe for concurrent use.
type Engine struct {
	rules Rules
}

func NewEngine(rules Rules) *Engine {
	return &Engine{rules: rules}
}

func (e *Engine) Rules() Rules { return e.rules }

// Reconcile partitions catalog against records. It never fails: unmatched entries are
// unplayed and missing status columns resolve as no data.
func (e *Engine) Reconcile(catalog []models.CatalogEntry, records []models.PersonalRecord) *Result {
	idx := e.rules.BuildIndex(records)
	res := &Result{
		Revenge:    []models.CatalogEntry{},
		Unplayed:   []models.CatalogEntry{},
		Duplicates: idx.Duplicates(),
		Entries:    make([]Classification, 0, len(catalog)),
	}

	for _, entry := range catalog {
		key := e.rules.Fingerprint(entry.RawTitle)
		target := e.rules.ClassifyVariant(entry.RawTitle)
		rec := idx.Lookup(key)
		outcome := Resolve(target, rec)

		switch outcome {
		case models.OutcomeRevenge:
			res.Revenge = append(res.Revenge, entry)
		case models.OutcomeUnplayed:
			res.Unplayed = append(res.Unplayed, entry)
		default:
			res.Cleared++
		}

		res.Entries = append(res.Entries, Classification{
			Entry:       entry,
			Fingerprint: key,
			Target:      target,
			Outcome:     outcome,
			Record:      rec,
		})
	}
	return res
}

// Reconcile runs an [Engine] with [DefaultRules].
func Reconcile(catalog []models.CatalogEntry, records []models.PersonalRecord) *Result {
	return NewEngine(DefaultRules()).Reconcile(catalog, records)
}
