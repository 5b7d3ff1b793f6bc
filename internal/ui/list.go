package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/noblex1/moviex/internal/models"
	"github.com/noblex1/moviex/internal/shared"
)

var (
	_ list.Item = watchlistItem{}
)

// watchlistItem wraps [models.WatchlistEntry] to implement [list.Item].
type watchlistItem struct {
	entry models.WatchlistEntry
}

func (i watchlistItem) FilterValue() string { return i.entry.Movie.Title }
func (i watchlistItem) Title() string       { return i.entry.Movie.Title }
func (i watchlistItem) Description() string {
	desc := fmt.Sprintf("%s • %s", shared.ValueOrNA(i.entry.Movie.Year), i.entry.Movie.ID)
	if !i.entry.AddedAt.IsZero() {
		desc = fmt.Sprintf("%s • added %s", desc, i.entry.AddedAt.Local().Format("2006-01-02"))
	}
	return desc
}

func watchlistItems(entries []models.WatchlistEntry) []list.Item {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = watchlistItem{entry: e}
	}
	return items
}
