package tasks

import (
	"fmt"
	"math/rand/v2"

	"github.com/desertthunder/lvx/internal/models"
	"github.com/desertthunder/lvx/internal/shared"
)

// PickResult is one roulette spin.
type PickResult struct {
	Entry     models.CatalogEntry `json:"entry"`
	Remaining int                 `json:"remaining"` // Size of the list the entry was drawn from
}

// Pick draws one entry uniformly at random. rng may be nil to use the global source.
func Pick(rng *rand.Rand, entries []models.CatalogEntry) (*PickResult, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: nothing left to pick", shared.ErrEmptyTable)
	}

	var i int
	if rng != nil {
		i = rng.IntN(len(entries))
	} else {
		i = rand.IntN(len(entries))
	}
	return &PickResult{Entry: entries[i], Remaining: len(entries)}, nil
}
