package ui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/noblex1/moviex/internal/models"
	"github.com/noblex1/moviex/internal/services"
	"github.com/noblex1/moviex/internal/shared"
	"github.com/noblex1/moviex/internal/tasks"
	"github.com/noblex1/moviex/internal/watchlist"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SearchView ViewState = iota
	WatchlistView
)

type focusArea int

const (
	focusInput focusArea = iota
	focusResults
)

// Options contains the dependencies of a [Model].
type Options struct {
	Client        services.MetadataClient
	Store         *watchlist.Store // Must be created with the same [Renderer]
	Storage       models.Storage   // Persists the theme preference
	Theme         models.Theme
	Logger        *log.Logger
	APIKeyMissing bool
	Open          func(url string) error // Defaults to [shared.OpenBrowser]
}

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	view    ViewState
	focus   focusArea
	client  services.MetadataClient
	session *tasks.Session
	store   *watchlist.Store
	storage models.Storage
	logger  *log.Logger
	open    func(string) error

	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap
	wlList  list.Model

	results  []models.Movie
	toggles  map[string]*tasks.DetailToggle
	cursor   int
	entries  []models.WatchlistEntry
	status   tasks.Status
	notice   notice
	controls bool

	theme         models.Theme
	palette       *Palette
	apiKeyMissing bool
	width         int
	height        int
}

// NewModel creates a new TUI model. renderer must be the renderer the store was created with.
func NewModel(ctx context.Context, renderer *Renderer, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	open := opts.Open
	if open == nil {
		open = shared.OpenBrowser
	}

	input := textinput.New()
	input.Placeholder = "Search movies by title..."
	input.CharLimit = 100
	input.Prompt = "🔍 "
	input.Focus()

	theme := models.ParseTheme(opts.Theme.String())

	m := &Model{
		ctx:           ctx,
		view:          SearchView,
		focus:         focusInput,
		client:        opts.Client,
		session:       tasks.NewSession(opts.Client, renderer, tasks.WithSessionLogger(logger)),
		store:         opts.Store,
		storage:       opts.Storage,
		logger:        shared.WithLogger(logger, "component", "tui"),
		open:          open,
		input:         input,
		spinner:       spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:          help.New(),
		keys:          newKeyMap(),
		toggles:       make(map[string]*tasks.DetailToggle),
		status:        tasks.Status{Kind: tasks.Idle},
		controls:      true,
		theme:         theme,
		palette:       PaletteFor(theme),
		apiKeyMissing: opts.APIKeyMissing,
	}

	if m.store != nil {
		m.entries = m.store.List()
	}
	m.wlList = list.New(watchlistItems(m.entries), list.NewDefaultDelegate(), 0, 0)
	m.wlList.Title = "Watchlist"
	m.wlList.SetShowHelp(false)

	return m
}

// Init starts the cursor blink and the spinner.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.wlList.SetSize(max(msg.Width-4, 10), max(msg.Height-10, 5))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		return m.handleMsg(msg)

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m.updateInput(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgStatus:
		m.status = msg.data.(tasks.Status)
		if m.status.Kind == tasks.Loading {
			m.notice = notice{}
		}
		return m, nil

	case MsgResults:
		m.results = msg.data.([]models.Movie)
		m.toggles = make(map[string]*tasks.DetailToggle, len(m.results))
		m.cursor = 0
		return m, nil

	case MsgControls:
		m.controls = msg.data.(bool)
		if !m.controls {
			m.input.Blur()
			return m, nil
		}
		if m.focus == focusInput && m.view == SearchView {
			return m, m.input.Focus()
		}
		return m, nil

	case MsgWatchlist:
		m.entries = msg.data.([]models.WatchlistEntry)
		return m, m.wlList.SetItems(watchlistItems(m.entries))

	case MsgDetail:
		res := msg.data.(detailResult)
		if res.err != nil {
			m.logger.Warn("detail fetch failed", "id", res.id, "error", res.err)
		}
		if toggle, ok := m.toggles[res.id]; ok {
			toggle.Resolve(res.record, res.err)
		}
		return m, nil

	case MsgNotice:
		m.notice = msg.data.(notice)
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.watchlist):
		return m, m.switchView()
	case key.Matches(msg, m.keys.theme):
		return m, m.toggleTheme()
	case key.Matches(msg, m.keys.clear):
		return m, m.clearResults()
	}

	if m.view == WatchlistView {
		return m.handleWatchlistKeys(msg)
	}
	if m.focus == focusInput {
		return m.handleInputKeys(msg)
	}
	return m.handleResultKeys(msg)
}

func (m *Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.search):
		if !m.controls {
			return m, nil
		}
		return m, m.runSearch(m.input.Value())
	case key.Matches(msg, m.keys.focus):
		if len(m.results) > 0 {
			m.focus = focusResults
			m.input.Blur()
		}
		return m, nil
	}
	if !m.controls {
		return m, nil
	}
	return m.updateInput(msg)
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.focus):
		m.focus = focusInput
		if m.controls {
			return m, m.input.Focus()
		}
	case key.Matches(msg, m.keys.up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.down):
		if m.cursor < len(m.results)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.details):
		return m, m.toggleDetail()
	case key.Matches(msg, m.keys.add):
		if movie, ok := m.selected(); ok {
			return m, m.addToWatchlist(movie)
		}
	case key.Matches(msg, m.keys.remove):
		if movie, ok := m.selected(); ok {
			return m, m.removeFromWatchlist(movie.ID)
		}
	case key.Matches(msg, m.keys.open):
		if movie, ok := m.selected(); ok {
			return m, m.openIMDb(movie)
		}
	}
	return m, nil
}

func (m *Model) handleWatchlistKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.wlList.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.remove):
			if item, ok := m.wlList.SelectedItem().(watchlistItem); ok {
				return m, m.removeFromWatchlist(item.entry.Movie.ID)
			}
			return m, nil
		case key.Matches(msg, m.keys.open):
			if item, ok := m.wlList.SelectedItem().(watchlistItem); ok {
				return m, m.openIMDb(item.entry.Movie)
			}
			return m, nil
		case key.Matches(msg, m.keys.help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.wlList, cmd = m.wlList.Update(msg)
	return m, cmd
}

func (m *Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) selected() (models.Movie, bool) {
	if m.cursor < 0 || m.cursor >= len(m.results) {
		return models.Movie{}, false
	}
	return m.results[m.cursor], true
}

func (m *Model) switchView() tea.Cmd {
	if m.view == SearchView {
		m.view = WatchlistView
		m.input.Blur()
		return nil
	}
	m.view = SearchView
	if m.focus == focusInput && m.controls {
		return m.input.Focus()
	}
	return nil
}

func (m *Model) runSearch(query string) tea.Cmd {
	m.focus = focusInput
	return func() tea.Msg {
		m.session.Run(m.ctx, query)
		return nil
	}
}

func (m *Model) clearResults() tea.Cmd {
	m.focus = focusInput
	m.input.SetValue("")
	return func() tea.Msg {
		m.session.Clear()
		return nil
	}
}

func (m *Model) toggleDetail() tea.Cmd {
	movie, ok := m.selected()
	if !ok {
		return nil
	}

	toggle, ok := m.toggles[movie.ID]
	if !ok {
		toggle = tasks.NewDetailToggle(movie.ID)
		m.toggles[movie.ID] = toggle
	}
	if !toggle.Request() {
		return nil
	}

	client := m.client
	return func() tea.Msg {
		record, err := client.FetchDetail(m.ctx, movie.ID)
		return detailMsg(movie.ID, record, err)
	}
}

func (m *Model) addToWatchlist(movie models.Movie) tea.Cmd {
	if m.store == nil {
		return nil
	}
	return func() tea.Msg {
		outcome, err := m.store.Add(m.ctx, movie)
		if err != nil {
			m.logger.Error("failed to save watchlist", "id", movie.ID, "error", err)
			return noticeMsg(fmt.Sprintf("%s (not saved: %v)", outcome.Notice(), err), true)
		}
		return noticeMsg(outcome.Notice(), false)
	}
}

func (m *Model) removeFromWatchlist(id string) tea.Cmd {
	if m.store == nil {
		return nil
	}
	return func() tea.Msg {
		outcome, err := m.store.Remove(m.ctx, id)
		if err != nil {
			m.logger.Error("failed to save watchlist", "id", id, "error", err)
			return noticeMsg(fmt.Sprintf("%s (not saved: %v)", outcome.Notice(), err), true)
		}
		return noticeMsg(outcome.Notice(), false)
	}
}

func (m *Model) toggleTheme() tea.Cmd {
	m.theme = m.theme.Toggle()
	m.palette = PaletteFor(m.theme)
	theme := m.theme
	return func() tea.Msg {
		if err := tasks.SaveTheme(m.ctx, m.storage, theme); err != nil {
			m.logger.Warn("failed to save theme", "theme", theme, "error", err)
			return noticeMsg("Theme not saved", true)
		}
		return nil
	}
}

func (m *Model) openIMDb(movie models.Movie) tea.Cmd {
	open := m.open
	return func() tea.Msg {
		url, err := shared.IMDbURL(movie.ID)
		if err == nil {
			err = open(url)
		}
		if err != nil {
			return noticeMsg(fmt.Sprintf("Could not open %s: %v", movie.Title, err), true)
		}
		return noticeMsg(fmt.Sprintf("Opened %s on IMDb", movie.Title), false)
	}
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.palette.title.Render("🎬 moviex"))
	b.WriteString("\n")

	if m.apiKeyMissing {
		b.WriteString(m.palette.warn.Render("Remember to set your OMDb API key in config.toml (or OMDB_API_KEY)."))
		b.WriteString("\n\n")
	}

	switch m.view {
	case WatchlistView:
		b.WriteString(m.wlList.View())
	default:
		b.WriteString(m.renderSearch())
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderSearch() string {
	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.palette.muted.Render(fmt.Sprintf("Search term: %d chars", utf8.RuneCountInString(m.input.Value()))))
	b.WriteString(m.palette.muted.Render(fmt.Sprintf("  •  Watchlist: %d  •  Theme: %s", len(m.entries), m.theme)))
	b.WriteString("\n\n")

	if line := m.renderStatus(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.notice.text != "" {
		if m.notice.isErr {
			b.WriteString(m.palette.err.Render(m.notice.text))
		} else {
			b.WriteString(m.palette.ok.Render(m.notice.text))
		}
		b.WriteString("\n")
	}

	if len(m.results) > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderResults())
	}
	return b.String()
}

func (m *Model) renderStatus() string {
	text := m.status.Text()
	switch {
	case text == "":
		return ""
	case m.status.Kind == tasks.Loading:
		return m.spinner.View() + " " + text
	case m.status.IsError():
		return m.palette.err.Render(text)
	default:
		return m.palette.ok.Render(text)
	}
}

func (m *Model) renderResults() string {
	first, last := m.visibleRange()

	var b strings.Builder
	for i := first; i < last; i++ {
		b.WriteString(m.renderCard(i, m.results[i]))
	}
	if last < len(m.results) {
		b.WriteString(m.palette.muted.Render(fmt.Sprintf("  … %d more", len(m.results)-last)))
		b.WriteString("\n")
	}
	return b.String()
}

// visibleRange returns the window of cards that fits the terminal, keeping the cursor visible.
func (m *Model) visibleRange() (int, int) {
	n := len(m.results)
	size := n
	if m.height > 0 {
		size = max((m.height-16)/2, 3)
	}
	if size >= n {
		return 0, n
	}
	first := max(m.cursor-size/2, 0)
	if first+size > n {
		first = n - size
	}
	return first, first + size
}

func (m *Model) renderCard(i int, movie models.Movie) string {
	var b strings.Builder

	marker := "  "
	titleStyle := m.palette.card
	if m.focus == focusResults && i == m.cursor {
		marker = "> "
		titleStyle = m.palette.selected
	}

	line := fmt.Sprintf("%s (%s)", movie.Title, shared.ValueOrNA(movie.Year))
	meta := []string{shared.ValueOrNA(movie.Type)}
	if !movie.HasPoster() {
		meta = append(meta, "no poster")
	}
	if m.store != nil && m.store.Contains(movie.ID) {
		meta = append(meta, "★ in watchlist")
	}

	b.WriteString(marker)
	b.WriteString(titleStyle.Render(line))
	b.WriteString(" ")
	b.WriteString(m.palette.muted.Render(strings.Join(meta, " · ")))
	b.WriteString("\n")

	if toggle, ok := m.toggles[movie.ID]; ok {
		if details := m.renderDetails(toggle); details != "" {
			b.WriteString(details)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m *Model) renderDetails(toggle *tasks.DetailToggle) string {
	switch toggle.State() {
	case tasks.DetailLoading:
		return m.palette.detail.Render(m.spinner.View() + " Loading details...")
	case tasks.ExpandedError:
		return m.palette.detail.Render(tasks.DetailUnavailableText)
	case tasks.Expanded:
		d := toggle.Record()
		rating := "N/A"
		if d.Rating != "" {
			rating = d.Rating + "/10"
		}
		lines := []string{
			"Plot: " + shared.ValueOrNA(d.Plot),
			"Actors: " + shared.ValueOrNA(d.Actors),
			"Rating: ⭐ " + rating,
			"Genre: " + shared.ValueOrNA(d.Genre),
		}
		return m.palette.detail.Render(strings.Join(lines, "\n"))
	default:
		return ""
	}
}
