package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/noblex1/moviex/internal/models"
	"github.com/noblex1/moviex/internal/shared"
)

var (
	purple = lipgloss.Color("99")

	headerStyle = lipgloss.NewStyle().Foreground(purple).Bold(true).Align(lipgloss.Center)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Bold(true).Width(8)
	titleStyle  = lipgloss.NewStyle().Foreground(purple).Bold(true)
)

// newTable returns a borderless table with the shared header style.
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(purple)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

// moviesTable renders search results, starring movies for which saved reports true.
func moviesTable(movies []models.Movie, saved func(id string) bool) string {
	t := newTable("#", "Title", "Year", "Type", "IMDb ID", "")
	for i, m := range movies {
		mark := ""
		if saved != nil && saved(m.ID) {
			mark = "★"
		}
		t.Row(fmt.Sprintf("%d", i+1), truncateString(m.Title, 58), shared.ValueOrNA(m.Year), shared.ValueOrNA(m.Type), m.ID, mark)
	}
	return t.String()
}

// watchlistTable renders saved movies with the date they were added.
func watchlistTable(entries []models.WatchlistEntry) string {
	t := newTable("#", "Title", "Year", "Type", "IMDb ID", "Added")
	for i, e := range entries {
		added := "N/A"
		if !e.AddedAt.IsZero() {
			added = e.AddedAt.Local().Format("2006-01-02")
		}
		t.Row(fmt.Sprintf("%d", i+1), truncateString(e.Movie.Title, 58), shared.ValueOrNA(e.Movie.Year), shared.ValueOrNA(e.Movie.Type), e.Movie.ID, added)
	}
	return t.String()
}

// detailBlock renders one detail record.
func detailBlock(d *models.DetailRecord) string {
	rating := "N/A"
	if d.Rating != "" {
		rating = d.Rating + "/10"
	}

	heading := titleStyle.Render(fmt.Sprintf("%s (%s)", shared.ValueOrNA(d.Title), shared.ValueOrNA(d.Year)))
	rows := []string{
		heading,
		labelStyle.Render("Plot:") + shared.ValueOrNA(d.Plot),
		labelStyle.Render("Actors:") + shared.ValueOrNA(d.Actors),
		labelStyle.Render("Rating:") + rating,
		labelStyle.Render("Genre:") + shared.ValueOrNA(d.Genre),
	}
	if url, err := shared.IMDbURL(d.ID); err == nil {
		rows = append(rows, labelStyle.Render("IMDb:")+url)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func truncateString(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
