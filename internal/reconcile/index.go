package reconcile

import "github.com/desertthunder/lvx/internal/models"

// Index maps record fingerprints to the first record that produced them.
type Index struct {
	byKey      map[string]*models.PersonalRecord
	keys       []string
	duplicates int
}

// BuildIndex fingerprints every record once, in input order. Later records whose key
// is already present are ignored and only counted.
//
// Records with an empty fingerprint are indexed like any other key; an empty catalog
// title can then match them, which mirrors how the two sources are joined.
func (r Rules) BuildIndex(records []models.PersonalRecord) *Index {
	idx := &Index{
		byKey: make(map[string]*models.PersonalRecord, len(records)),
		keys:  make([]string, 0, len(records)),
	}
	for i := range records {
		key := r.Fingerprint(records[i].Title)
		if _, ok := idx.byKey[key]; ok {
			idx.duplicates++
			continue
		}
		idx.byKey[key] = &records[i]
		idx.keys = append(idx.keys, key)
	}
	return idx
}

// BuildIndex builds an [Index] with [DefaultRules].
func BuildIndex(records []models.PersonalRecord) *Index {
	return defaultRules.BuildIndex(records)
}

// Lookup returns the record for key, or nil.
func (idx *Index) Lookup(key string) *models.PersonalRecord {
	if idx == nil {
		return nil
	}
	return idx.byKey[key]
}

// Keys returns the indexed fingerprints in first-seen order.
func (idx *Index) Keys() []string {
	if idx == nil {
		return nil
	}
	return idx.keys
}

func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.keys)
}

// Duplicates is the number of records dropped because their fingerprint was already indexed.
func (idx *Index) Duplicates() int {
	if idx == nil {
		return 0
	}
	return idx.duplicates
}
