package tasks

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/desertthunder/lvx/internal/models"
	"github.com/desertthunder/lvx/internal/shared"
)

func TestPick(t *testing.T) {
	entries := []models.CatalogEntry{{RawTitle: "Alpha(激)"}, {RawTitle: "Beta(鬼)"}, {RawTitle: "Gamma"}}

	t.Run("draws from the list", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(1, 2))
		seen := map[string]int{}
		for range 300 {
			res, err := Pick(rng, entries)
			if err != nil {
				t.Fatalf("Pick() error = %v", err)
			}
			if res.Remaining != len(entries) {
				t.Errorf("Remaining = %d, want %d", res.Remaining, len(entries))
			}
			seen[res.Entry.RawTitle]++
		}
		for _, e := range entries {
			if seen[e.RawTitle] == 0 {
				t.Errorf("%q never picked in 300 spins", e.RawTitle)
			}
		}
	})

	t.Run("same seed same pick", func(t *testing.T) {
		a, _ := Pick(rand.New(rand.NewPCG(7, 7)), entries)
		b, _ := Pick(rand.New(rand.NewPCG(7, 7)), entries)
		if a.Entry != b.Entry {
			t.Errorf("picks differ: %q vs %q", a.Entry.RawTitle, b.Entry.RawTitle)
		}
	})

	t.Run("global source", func(t *testing.T) {
		res, err := Pick(nil, entries[:1])
		if err != nil {
			t.Fatalf("Pick() error = %v", err)
		}
		if res.Entry.RawTitle != "Alpha(激)" {
			t.Errorf("Pick() = %q, want Alpha(激)", res.Entry.RawTitle)
		}
	})

	t.Run("empty list", func(t *testing.T) {
		if _, err := Pick(nil, nil); !errors.Is(err, shared.ErrEmptyTable) {
			t.Errorf("Pick() error = %v, want ErrEmptyTable", err)
		}
	})
}
