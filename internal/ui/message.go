package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/noblex1/moviex/internal/models"
	"github.com/noblex1/moviex/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgStatus MsgKind = iota
	MsgResults
	MsgControls
	MsgWatchlist
	MsgDetail
	MsgNotice
)

type detailResult struct {
	id     string
	record *models.DetailRecord
	err    error
}

type notice struct {
	text  string
	isErr bool
}

// statusMsg is the constructor for [MsgStatus]
func statusMsg(s tasks.Status) Msg {
	return Msg{kind: MsgStatus, data: s}
}

// resultsMsg is the constructor for [MsgResults]
func resultsMsg(movies []models.Movie) Msg {
	return Msg{kind: MsgResults, data: movies}
}

// controlsMsg is the constructor for [MsgControls]
func controlsMsg(enabled bool) Msg {
	return Msg{kind: MsgControls, data: enabled}
}

// watchlistMsg is the constructor for [MsgWatchlist]
func watchlistMsg(entries []models.WatchlistEntry) Msg {
	return Msg{kind: MsgWatchlist, data: entries}
}

// detailMsg is the constructor for [MsgDetail]
func detailMsg(id string, record *models.DetailRecord, err error) Msg {
	return Msg{kind: MsgDetail, data: detailResult{id: id, record: record, err: err}}
}

// noticeMsg is the constructor for [MsgNotice]
func noticeMsg(text string, isErr bool) Msg {
	return Msg{kind: MsgNotice, data: notice{text: text, isErr: isErr}}
}
