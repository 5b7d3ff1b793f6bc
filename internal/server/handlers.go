package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/noblex1/moviex/internal/models"
	"github.com/noblex1/moviex/internal/services"
	"github.com/noblex1/moviex/internal/shared"
	"github.com/noblex1/moviex/internal/tasks"
	"github.com/noblex1/moviex/internal/watchlist"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return errors.Join(shared.ErrInvalidInput, err)
	}
	return nil
}

// discardRenderer drops session output; handlers read the returned status instead.
type discardRenderer struct{}

func (discardRenderer) RenderStatus(tasks.Status)    {}
func (discardRenderer) RenderResults([]models.Movie) {}
func (discardRenderer) SetControlsEnabled(bool)      {}

type searchResponse struct {
	Status  string               `json:"status"`
	Message string               `json:"message"`
	Error   bool                 `json:"error"`
	Count   int                  `json:"count"`
	Results []models.MovieRecord `json:"results"`
}

// SearchHandler serves GET /api/search?q=.
//
// Every request runs in its own session so concurrent requests never supersede each other.
type SearchHandler struct {
	client services.MetadataClient
	logger *log.Logger
}

// NewSearchHandler creates a [SearchHandler].
func NewSearchHandler(client services.MetadataClient, logger *log.Logger) *SearchHandler {
	return &SearchHandler{client: client, logger: logger}
}

func (h *SearchHandler) Routes() []Route {
	return []Route{{Method: http.MethodGet, Path: "/api/search", Handler: h.Search}}
}

// Search runs the query and maps the resulting status to a response code.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	session := tasks.NewSession(h.client, discardRenderer{}, tasks.WithSessionLogger(h.logger))
	st := session.Run(r.Context(), r.URL.Query().Get("q"))

	results := session.Results()
	resp := searchResponse{
		Status:  st.Kind.String(),
		Message: st.Text(),
		Error:   st.IsError(),
		Count:   len(results),
		Results: make([]models.MovieRecord, 0, len(results)),
	}
	for _, m := range results {
		resp.Results = append(resp.Results, models.NewMovieRecord(m))
	}

	writeJSON(w, searchStatusCode(st), resp)
}

func searchStatusCode(st tasks.Status) int {
	switch st.Kind {
	case tasks.ValidatingEmpty:
		return http.StatusBadRequest
	case tasks.APIError, tasks.NetworkError:
		return http.StatusBadGateway
	default:
		return http.StatusOK
	}
}

type detailResponse struct {
	*models.DetailRecord
	InWatchlist bool `json:"inWatchlist"`
}

// MovieHandler serves GET /api/movies/{id}.
type MovieHandler struct {
	client services.MetadataClient
	store  *watchlist.Store
	logger *log.Logger
}

// NewMovieHandler creates a [MovieHandler]. store may be nil.
func NewMovieHandler(client services.MetadataClient, store *watchlist.Store, logger *log.Logger) *MovieHandler {
	return &MovieHandler{client: client, store: store, logger: logger}
}

func (h *MovieHandler) Routes() []Route {
	return []Route{{Method: http.MethodGet, Path: "/api/movies/{id}", Handler: h.Detail}}
}

// Detail fetches the detail record of one movie. Any failure is reported as a 502 carrying the
// detail fallback text.
func (h *MovieHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	toggle := tasks.NewDetailToggle(id)
	if toggle.Toggle(r.Context(), h.client) != tasks.Expanded {
		h.logger.Warn("detail fetch failed", "id", id, "error", toggle.Err())
		writeError(w, http.StatusBadGateway, tasks.DetailUnavailableText)
		return
	}

	resp := detailResponse{DetailRecord: toggle.Record()}
	if h.store != nil {
		resp.InWatchlist = h.store.Contains(id)
	}
	writeJSON(w, http.StatusOK, resp)
}

type outcomeResponse struct {
	Outcome string `json:"outcome"`
	Notice  string `json:"notice"`
	Count   int    `json:"count"`
	Warning string `json:"warning,omitempty"`
}

// WatchlistHandler serves the watchlist collection.
type WatchlistHandler struct {
	store  *watchlist.Store
	logger *log.Logger
}

// NewWatchlistHandler creates a [WatchlistHandler].
func NewWatchlistHandler(store *watchlist.Store, logger *log.Logger) *WatchlistHandler {
	return &WatchlistHandler{store: store, logger: logger}
}

func (h *WatchlistHandler) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/api/watchlist", Handler: h.List},
		{Method: http.MethodPost, Path: "/api/watchlist", Handler: h.Add},
		{Method: http.MethodDelete, Path: "/api/watchlist/{id}", Handler: h.Remove},
	}
}

// List returns the saved movies in insertion order.
func (h *WatchlistHandler) List(w http.ResponseWriter, _ *http.Request) {
	entries := h.store.List()
	records := make([]models.WatchlistRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, models.NewWatchlistRecord(e))
	}
	writeJSON(w, http.StatusOK, records)
}

// Add saves the movie in the body. Adding a saved movie is not an error.
func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var rec models.MovieRecord
	if err := decodeBody(r, &rec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid movie body")
		return
	}

	outcome, err := h.store.Add(r.Context(), rec.ToMovie())
	if errors.Is(err, shared.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, "movie id is required")
		return
	}

	code := http.StatusOK
	if outcome == watchlist.Added {
		code = http.StatusCreated
	}
	h.writeOutcome(w, code, outcome.String(), outcome.Notice(), err)
}

// Remove deletes the movie named in the path. Removing an unsaved movie is not an error.
func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.store.Remove(r.Context(), mux.Vars(r)["id"])
	h.writeOutcome(w, http.StatusOK, outcome.String(), outcome.Notice(), err)
}

func (h *WatchlistHandler) writeOutcome(w http.ResponseWriter, code int, outcome, notice string, err error) {
	resp := outcomeResponse{Outcome: outcome, Notice: notice, Count: h.store.Len()}
	if err != nil {
		h.logger.Error("watchlist not persisted", "outcome", outcome, "error", err)
		resp.Warning = "Watchlist change was not saved."
		code = http.StatusInternalServerError
	}
	writeJSON(w, code, resp)
}

type themeBody struct {
	Theme string `json:"theme"`
}

// ThemeHandler serves the persisted theme preference.
type ThemeHandler struct {
	storage  models.Storage
	fallback models.Theme
	logger   *log.Logger
}

// NewThemeHandler creates a [ThemeHandler] reporting fallback when nothing is stored.
func NewThemeHandler(storage models.Storage, fallback models.Theme, logger *log.Logger) *ThemeHandler {
	return &ThemeHandler{storage: storage, fallback: fallback, logger: logger}
}

func (h *ThemeHandler) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/api/theme", Handler: h.Get},
		{Method: http.MethodPut, Path: "/api/theme", Handler: h.Put},
	}
}

// Get returns the stored theme.
func (h *ThemeHandler) Get(w http.ResponseWriter, r *http.Request) {
	theme, err := tasks.LoadTheme(r.Context(), h.storage, h.fallback)
	if err != nil {
		h.logger.Warn("theme unreadable, using fallback", "error", err)
	}
	writeJSON(w, http.StatusOK, themeBody{Theme: theme.String()})
}

// Put stores a theme. Only "light" and "dark" are accepted.
func (h *ThemeHandler) Put(w http.ResponseWriter, r *http.Request) {
	var body themeBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid theme body")
		return
	}

	name := strings.ToLower(strings.TrimSpace(body.Theme))
	if name != models.ThemeLight.String() && name != models.ThemeDark.String() {
		writeError(w, http.StatusBadRequest, "theme must be light or dark")
		return
	}

	theme := models.Theme(name)
	if err := tasks.SaveTheme(r.Context(), h.storage, theme); err != nil {
		h.logger.Error("failed to save theme", "error", err)
		writeError(w, http.StatusInternalServerError, "theme was not saved")
		return
	}
	writeJSON(w, http.StatusOK, themeBody{Theme: theme.String()})
}
