package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/noblex1/moviex/internal/models"
	"github.com/noblex1/moviex/internal/tasks"
	"github.com/noblex1/moviex/internal/watchlist"
)

var (
	_ tasks.Renderer     = (*Renderer)(nil)
	_ watchlist.Renderer = (*Renderer)(nil)
)

// Renderer forwards core notifications to the running program as messages.
//
// Notifications arriving before [Renderer.SetSender] is called are dropped.
type Renderer struct {
	mu   sync.RWMutex
	send func(tea.Msg)
}

// NewRenderer creates a [Renderer] without a sender.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// SetSender sets the function messages are delivered with, usually [tea.Program.Send].
func (r *Renderer) SetSender(send func(tea.Msg)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.send = send
}

func (r *Renderer) dispatch(msg tea.Msg) {
	r.mu.RLock()
	send := r.send
	r.mu.RUnlock()
	if send != nil {
		send(msg)
	}
}

func (r *Renderer) RenderStatus(s tasks.Status) { r.dispatch(statusMsg(s)) }

func (r *Renderer) RenderResults(movies []models.Movie) { r.dispatch(resultsMsg(movies)) }

func (r *Renderer) SetControlsEnabled(enabled bool) { r.dispatch(controlsMsg(enabled)) }

func (r *Renderer) RenderWatchlist(entries []models.WatchlistEntry) {
	r.dispatch(watchlistMsg(entries))
}
