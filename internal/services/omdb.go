package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/noblex1/moviex/internal/models"
	"github.com/noblex1/moviex/internal/shared"
)

// DefaultBaseURL is the public OMDb endpoint.
const DefaultBaseURL = "https://www.omdbapi.com/"

// OMDbClient implements [MetadataClient] against the OMDb API.
type OMDbClient struct {
	apiKey     string
	baseURL    string
	plot       string
	kind       string
	httpClient *http.Client
	logger     *log.Logger
}

// OMDbOption configures an [OMDbClient].
type OMDbOption func(*OMDbClient)

// WithPlot selects the plot length of detail lookups ("short" or "full").
func WithPlot(plot string) OMDbOption {
	return func(c *OMDbClient) {
		if plot != "" {
			c.plot = plot
		}
	}
}

// WithType restricts searches to one result type (movie, series or episode).
func WithType(kind string) OMDbOption {
	return func(c *OMDbClient) { c.kind = kind }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *log.Logger) OMDbOption {
	return func(c *OMDbClient) {
		if l != nil {
			c.logger = shared.WithLogger(l, "component", "omdb")
		}
	}
}

// NewOMDbClient creates a new OMDb client.
//
// An empty baseURL uses [DefaultBaseURL] and a nil client uses [http.DefaultClient].
func NewOMDbClient(apiKey, baseURL string, client *http.Client, opts ...OMDbOption) *OMDbClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	c := &OMDbClient{
		apiKey:     apiKey,
		baseURL:    baseURL,
		plot:       "short",
		httpClient: client,
		logger:     shared.NewLogger(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// searchResponse is the envelope of a search-by-title response.
type searchResponse struct {
	Search       []models.MovieRecord `json:"Search"`
	TotalResults string               `json:"totalResults"`
	Response     string               `json:"Response"`
	Error        string               `json:"Error"`
}

// detailResponse is the envelope of a lookup-by-id response.
type detailResponse struct {
	models.DetailRecord
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

// Search performs a single search-by-title request. There are no retries.
func (c *OMDbClient) Search(ctx context.Context, query string) ([]models.Movie, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, shared.ErrEmptyQuery
	}

	params := url.Values{"s": {query}}
	if c.kind != "" {
		params.Set("type", c.kind)
	}

	var body searchResponse
	if err := c.get(ctx, params, &body); err != nil {
		c.logger.Warn("search request failed", "query", query, "error", err)
		return nil, NetworkError(err)
	}

	if body.Response != "True" {
		serr := ClassifyAPIError(body.Error)
		c.logger.Debug("search returned failure", "query", query, "kind", serr.Kind, "error", body.Error)
		return nil, serr
	}

	movies := make([]models.Movie, 0, len(body.Search))
	for _, rec := range body.Search {
		movies = append(movies, rec.ToMovie())
	}
	c.logger.Debug("search completed", "query", query, "results", len(movies), "total", body.TotalResults)
	return movies, nil
}

// FetchDetail performs a single lookup-by-id request.
func (c *OMDbClient) FetchDetail(ctx context.Context, id string) (*models.DetailRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: %w: empty id", shared.ErrDetailUnavailable, shared.ErrMissingArgument)
	}

	params := url.Values{"i": {id}, "plot": {c.plot}}

	var body detailResponse
	if err := c.get(ctx, params, &body); err != nil {
		c.logger.Warn("detail request failed", "id", id, "error", err)
		return nil, fmt.Errorf("%w: %w", shared.ErrDetailUnavailable, err)
	}

	if body.Response != "True" {
		c.logger.Debug("detail returned failure", "id", id, "error", body.Error)
		return nil, fmt.Errorf("%w: %s", shared.ErrDetailUnavailable, body.Error)
	}

	record := body.DetailRecord
	record.Normalize()
	if record.ID == "" {
		record.ID = id
	}
	return &record, nil
}

// get issues a GET with params plus the API key and decodes the JSON body into v.
//
// The body is decoded whatever the HTTP status, since OMDb reports failures in the envelope.
func (c *OMDbClient) get(ctx context.Context, params url.Values, v any) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	params.Set("apikey", c.apiKey)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}
	return nil
}
