package ui

import (
	"context"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/noblex1/moviex/internal/models"
	"github.com/noblex1/moviex/internal/services"
	"github.com/noblex1/moviex/internal/tasks"
	tu "github.com/noblex1/moviex/internal/testing"
	"github.com/noblex1/moviex/internal/testing/mocks"
	"github.com/noblex1/moviex/internal/watchlist"
)

var results = []models.Movie{
	{ID: "tt0372784", Title: "Batman Begins", Year: "2005", Type: "movie", Poster: "https://example.com/bb.jpg"},
	{ID: "tt0468569", Title: "The Dark Knight", Year: "2008", Type: "movie"},
}

// harness drives a [Model] without a running program: commands are executed synchronously and
// every message sent through the renderer is fed back into Update.
type harness struct {
	t       *testing.T
	m       *Model
	storage *tu.MemoryStorage
	opened  []string

	mu    sync.Mutex
	queue []tea.Msg
}

func newHarness(t *testing.T, client services.MetadataClient) *harness {
	t.Helper()
	h := &harness{t: t, storage: tu.NewMemoryStorage()}

	r := NewRenderer()
	r.SetSender(h.push)

	ctx := context.Background()
	store := watchlist.New(ctx, watchlist.Opts{Storage: h.storage, Renderer: r})
	h.m = NewModel(ctx, r, Options{
		Client:  client,
		Store:   store,
		Storage: h.storage,
		Open: func(url string) error {
			h.opened = append(h.opened, url)
			return nil
		},
	})
	h.m.Update(tea.WindowSizeMsg{Width: 120, Height: 60})
	return h
}

func (h *harness) push(msg tea.Msg) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.queue = append(h.queue, msg)
}

func (h *harness) pop() (tea.Msg, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.queue) == 0 {
		return nil, false
	}
	msg := h.queue[0]
	h.queue = h.queue[1:]
	return msg, true
}

// run executes cmd and drains the resulting messages. Commands returned while draining are
// bubbles housekeeping (cursor blink, list filtering) and are not executed.
func (h *harness) run(cmd tea.Cmd) {
	if cmd != nil {
		if msg := cmd(); msg != nil {
			h.push(msg)
		}
	}
	for {
		msg, ok := h.pop()
		if !ok {
			return
		}
		h.m.Update(msg)
	}
}

func (h *harness) press(k tea.KeyMsg) {
	_, cmd := h.m.Update(k)
	h.run(cmd)
}

func (h *harness) search(q string) {
	h.m.input.SetValue(q)
	h.press(tea.KeyMsg{Type: tea.KeyEnter})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelSearch(t *testing.T) {
	t.Run("success renders cards", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockMetadataClient(ctrl)
		client.EXPECT().Search(gomock.Any(), "batman").Return(results, nil)

		h := newHarness(t, client)
		h.search("batman")

		assert.Equal(t, tasks.Success, h.m.status.Kind)
		assert.Equal(t, results, h.m.results)
		assert.True(t, h.m.controls)

		view := h.m.View()
		assert.Contains(t, view, "2 results")
		assert.Contains(t, view, "Batman Begins (2005)")
		assert.Contains(t, view, "no poster")
		assert.Contains(t, view, "Search term: 6 chars")
	})

	t.Run("empty query shows validation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockMetadataClient(ctrl)

		h := newHarness(t, client)
		h.search("   ")

		assert.Equal(t, tasks.ValidatingEmpty, h.m.status.Kind)
		assert.Contains(t, h.m.View(), "Please enter a search term.")
	})

	t.Run("not found clears cards", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockMetadataClient(ctrl)
		gomock.InOrder(
			client.EXPECT().Search(gomock.Any(), "batman").Return(results, nil),
			client.EXPECT().Search(gomock.Any(), "qwxz").Return(nil, services.ClassifyAPIError("Movie not found!")),
		)

		h := newHarness(t, client)
		h.search("batman")
		h.search("qwxz")

		assert.Empty(t, h.m.results)
		assert.Contains(t, h.m.View(), "No movies found. Try different keyword.")
	})

	t.Run("clear", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockMetadataClient(ctrl)
		client.EXPECT().Search(gomock.Any(), "batman").Return(results, nil)

		h := newHarness(t, client)
		h.search("batman")
		h.press(tea.KeyMsg{Type: tea.KeyCtrlL})

		assert.Empty(t, h.m.results)
		assert.Equal(t, "", h.m.input.Value())
		assert.Contains(t, h.m.View(), "Results cleared")
	})
}

func TestModelDetails(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockMetadataClient(ctrl)
	client.EXPECT().Search(gomock.Any(), "batman").Return(results, nil)
	client.EXPECT().FetchDetail(gomock.Any(), "tt0372784").Return(&models.DetailRecord{
		ID:     "tt0372784",
		Plot:   "Bruce Wayne begins his fight against crime.",
		Actors: "Christian Bale, Michael Caine",
		Rating: "8.2",
	}, nil).Times(1)

	h := newHarness(t, client)
	h.search("batman")
	h.press(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, focusResults, h.m.focus)

	h.press(tea.KeyMsg{Type: tea.KeyEnter})
	view := h.m.View()
	assert.Contains(t, view, "Plot: Bruce Wayne begins his fight against crime.")
	assert.Contains(t, view, "Rating: ⭐ 8.2/10")
	assert.Contains(t, view, "Genre: N/A")

	h.press(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotContains(t, h.m.View(), "Plot:")

	h.press(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, h.m.View(), "Plot: Bruce Wayne")
	assert.Equal(t, 1, h.m.toggles["tt0372784"].Fetches())
}

func TestModelDetailsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockMetadataClient(ctrl)
	client.EXPECT().Search(gomock.Any(), "batman").Return(results, nil)
	client.EXPECT().FetchDetail(gomock.Any(), "tt0468569").Return(nil, assert.AnError)

	h := newHarness(t, client)
	h.search("batman")
	h.press(tea.KeyMsg{Type: tea.KeyTab})
	h.press(runes("j"))
	h.press(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Contains(t, h.m.View(), tasks.DetailUnavailableText)
}

func TestModelWatchlist(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockMetadataClient(ctrl)
	client.EXPECT().Search(gomock.Any(), "batman").Return(results, nil)

	h := newHarness(t, client)
	h.search("batman")
	h.press(tea.KeyMsg{Type: tea.KeyTab})

	h.press(runes("a"))
	assert.Equal(t, "Added to watchlist", h.m.notice.text)
	assert.Len(t, h.m.entries, 1)
	assert.Contains(t, h.m.View(), "★ in watchlist")

	h.press(runes("a"))
	assert.Equal(t, "Already in watchlist", h.m.notice.text)
	assert.Len(t, h.m.entries, 1)

	raw, ok := h.storage.Value(watchlist.DefaultKey)
	require.True(t, ok)
	assert.Contains(t, raw, "tt0372784")

	h.press(tea.KeyMsg{Type: tea.KeyCtrlW})
	require.Equal(t, WatchlistView, h.m.view)
	assert.Contains(t, h.m.View(), "Batman Begins")

	h.press(runes("x"))
	assert.Equal(t, "Removed from watchlist", h.m.notice.text)
	assert.Empty(t, h.m.entries)
}

func TestModelThemeAndOpen(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockMetadataClient(ctrl)
	client.EXPECT().Search(gomock.Any(), "batman").Return(results, nil)

	h := newHarness(t, client)
	require.Equal(t, models.ThemeLight, h.m.theme)

	h.press(tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, models.ThemeDark, h.m.theme)
	assert.Same(t, darkPalette, h.m.palette)
	value, _ := h.storage.Value(tasks.ThemeKey)
	assert.Equal(t, "dark", value)

	h.search("batman")
	h.press(tea.KeyMsg{Type: tea.KeyTab})
	h.press(runes("o"))

	assert.Equal(t, []string{"https://www.imdb.com/title/tt0372784/"}, h.opened)
	assert.Equal(t, "Opened Batman Begins on IMDb", h.m.notice.text)
}

func TestModelAPIKeyWarning(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := NewModel(context.Background(), NewRenderer(), Options{
		Client:        mocks.NewMockMetadataClient(ctrl),
		APIKeyMissing: true,
		Theme:         models.ThemeDark,
	})

	view := m.View()
	assert.True(t, strings.Contains(view, "Remember to set your OMDb API key"))
	assert.Equal(t, models.ThemeDark, m.theme)
}

func TestRendererWithoutSender(t *testing.T) {
	r := NewRenderer()
	assert.NotPanics(t, func() {
		r.RenderStatus(tasks.Status{Kind: tasks.Loading})
		r.RenderResults(nil)
		r.SetControlsEnabled(true)
		r.RenderWatchlist(nil)
	})
}
