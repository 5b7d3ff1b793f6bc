package server

import (
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/noblex1/moviex/internal/models"
	"github.com/noblex1/moviex/internal/services"
	"github.com/noblex1/moviex/internal/shared"
	"github.com/noblex1/moviex/internal/watchlist"
)

// APIOpts holds the collaborators of the JSON API.
type APIOpts struct {
	Client  services.MetadataClient
	Store   *watchlist.Store
	Storage models.Storage
	Theme   models.Theme // reported when no theme is stored
	Logger  *log.Logger
}

// NewAPI builds the routed and wrapped JSON API.
//
// CORS wraps the whole router so preflight requests are answered before method matching.
func NewAPI(opts APIOpts) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	logger = shared.WithLogger(logger, "component", "api")

	r := NewRouter()
	r.Use(RequestID(), Logging(logger), Recover(logger))

	r.Handler(NewSearchHandler(opts.Client, logger))
	r.Handler(NewMovieHandler(opts.Client, opts.Store, logger))
	r.Handler(NewWatchlistHandler(opts.Store, logger))
	r.Handler(NewThemeHandler(opts.Storage, opts.Theme, logger))

	return CORS()(r)
}
