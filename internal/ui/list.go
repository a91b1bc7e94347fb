package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/lvx/internal/models"
	"github.com/desertthunder/lvx/internal/reconcile"
)

var (
	_ list.Item = songItem{}
)

// songItem wraps a [reconcile.Classification] to implement [list.Item].
type songItem struct {
	c reconcile.Classification
}

func (i songItem) FilterValue() string { return i.c.Entry.RawTitle }
func (i songItem) Title() string       { return i.c.Entry.RawTitle }
func (i songItem) Description() string {
	if i.c.Record == nil {
		return fmt.Sprintf("%s • no record", i.c.Target)
	}
	switch i.c.Target {
	case models.ModeChallenge, models.ModeExpert:
		return fmt.Sprintf("%s • %s", i.c.Target, i.c.Record.StatusFor(i.c.Target))
	default:
		return fmt.Sprintf("challenge %s • expert %s", i.c.Record.Challenge, i.c.Record.Expert)
	}
}

// itemsFor returns the classified entries with outcome o, in catalog order.
func itemsFor(res *reconcile.Result, o models.Outcome) []list.Item {
	var items []list.Item
	for _, c := range res.Entries {
		if c.Outcome == o {
			items = append(items, songItem{c: c})
		}
	}
	return items
}
