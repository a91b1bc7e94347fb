package reconcile

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Suggestion is a record fingerprint that loosely resembles an unmatched catalog key.
type Suggestion struct {
	Key      string `json:"key"`
	Distance int    `json:"distance"`
}

// Suggest ranks indexed fingerprints that fuzzily contain key, closest first.
// At most limit suggestions are returned; limit <= 0 means no limit.
func Suggest(idx *Index, key string, limit int) []Suggestion {
	if key == "" || idx.Len() == 0 {
		return nil
	}

	ranks := fuzzy.RankFind(key, idx.Keys())
	if len(ranks) == 0 {
		// The record title may be the shorter one, e.g. a catalog subtitle the records omit.
		for _, k := range idx.Keys() {
			if k != "" && fuzzy.Match(k, key) {
				ranks = append(ranks, fuzzy.Rank{Source: k, Target: k, Distance: fuzzy.LevenshteinDistance(k, key)})
			}
		}
	}
	sort.Stable(ranks)

	out := make([]Suggestion, 0, len(ranks))
	for _, r := range ranks {
		if r.Target == key {
			continue
		}
		out = append(out, Suggestion{Key: r.Target, Distance: r.Distance})
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
