package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/noblex1/moviex/internal/models"
	"github.com/noblex1/moviex/internal/shared"
	tu "github.com/noblex1/moviex/internal/testing"
	"github.com/noblex1/moviex/internal/testing/mocks"
	"github.com/noblex1/moviex/internal/watchlist"
)

func TestBulkAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("adds found movies in input order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockMetadataClient(ctrl)
		client.EXPECT().FetchDetail(gomock.Any(), "tt0468569").Return(&models.DetailRecord{ID: "tt0468569", Title: "The Dark Knight"}, nil)
		client.EXPECT().FetchDetail(gomock.Any(), "tt0111161").Return(&models.DetailRecord{ID: "tt0111161", Title: "The Shawshank Redemption"}, nil)
		client.EXPECT().FetchDetail(gomock.Any(), "tt0000000").Return(nil, shared.ErrDetailUnavailable)

		store := watchlist.New(ctx, watchlist.Opts{Storage: tu.NewMemoryStorage()})
		_, err := store.Add(ctx, models.Movie{ID: "tt0111161", Title: "The Shawshank Redemption"})
		require.NoError(t, err)

		prog := make(chan ProgressUpdate, 32)
		result, err := BulkAdd(ctx, prog, client, store, []string{"tt0468569", " tt0111161 ", "tt0000000", "tt0468569"}, BulkAddOpts{NumWorkers: 2})
		require.NoError(t, err)

		assert.Equal(t, 3, result.Total)
		require.Len(t, result.Added, 1)
		assert.Equal(t, "tt0468569", result.Added[0].ID)
		require.Len(t, result.Skipped, 1)
		assert.Equal(t, "tt0111161", result.Skipped[0].ID)
		assert.ErrorIs(t, result.Failed["tt0000000"], shared.ErrDetailUnavailable)

		list := store.List()
		require.Len(t, list, 2)
		assert.Equal(t, "tt0111161", list[0].Movie.ID)
		assert.Equal(t, "tt0468569", list[1].Movie.ID)

		close(prog)
		var phases []Phase
		for u := range prog {
			phases = append(phases, u.Phase)
		}
		require.NotEmpty(t, phases)
		assert.Equal(t, FetchMovies, phases[0])
		assert.Contains(t, phases, AddMovies)
	})

	t.Run("write failure is reported after all additions", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockMetadataClient(ctrl)
		client.EXPECT().FetchDetail(gomock.Any(), "tt0468569").Return(&models.DetailRecord{ID: "tt0468569", Title: "The Dark Knight"}, nil)

		storage := tu.NewMemoryStorage()
		storage.SetErr = errors.New("disk full")
		store := watchlist.New(ctx, watchlist.Opts{Storage: storage})

		result, err := BulkAdd(ctx, nil, client, store, []string{"tt0468569"}, BulkAddOpts{})
		assert.ErrorIs(t, err, shared.ErrSnapshotWrite)
		assert.Len(t, result.Added, 1)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("no ids", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockMetadataClient(ctrl)
		store := watchlist.New(ctx, watchlist.Opts{})

		_, err := BulkAdd(ctx, nil, client, store, []string{" ", ""}, BulkAddOpts{})
		assert.ErrorIs(t, err, shared.ErrMissingArgument)
	})

	t.Run("missing dependencies", func(t *testing.T) {
		_, err := BulkAdd(ctx, nil, nil, nil, []string{"tt0111161"}, BulkAddOpts{})
		assert.ErrorIs(t, err, shared.ErrServiceUnavailable)
	})
}

func TestExportWatchlist(t *testing.T) {
	ctx := context.Background()
	entries := []models.WatchlistEntry{
		{Movie: models.Movie{ID: "tt0111161", Title: "The Shawshank Redemption", Year: "1994"}},
	}

	t.Run("default filename", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		result, err := ExportWatchlist(ctx, nil, fs, entries, ExportOpts{Format: "csv"})
		require.NoError(t, err)

		assert.Equal(t, []string{"watchlist.csv"}, result.Files)
		ok, _ := afero.Exists(fs, "watchlist.csv")
		assert.True(t, ok)
	})

	t.Run("markdown directory", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		prog := make(chan ProgressUpdate, 1)
		result, err := ExportWatchlist(ctx, prog, fs, entries, ExportOpts{Format: "md", Output: "out"})
		require.NoError(t, err)

		assert.Contains(t, result.Files, "out/README.md")
		u := <-prog
		assert.Equal(t, ExportMovies, u.Phase)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := ExportWatchlist(ctx, nil, afero.NewMemMapFs(), entries, ExportOpts{Format: "xml"})
		assert.ErrorIs(t, err, shared.ErrInvalidArgument)
	})
}
