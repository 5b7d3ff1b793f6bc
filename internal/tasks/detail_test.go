package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/noblex1/moviex/internal/models"
	"github.com/noblex1/moviex/internal/shared"
	"github.com/noblex1/moviex/internal/testing/mocks"
)

var shawshankDetail = &models.DetailRecord{
	ID:     "tt0111161",
	Plot:   "Two imprisoned men bond over a number of years.",
	Actors: "Tim Robbins, Morgan Freeman",
	Rating: "9.3",
	Genre:  "Drama",
}

func TestDetailToggle(t *testing.T) {
	ctx := context.Background()

	t.Run("first expand fetches once, re-expand uses the cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockMetadataClient(ctrl)
		client.EXPECT().FetchDetail(gomock.Any(), "tt0111161").Return(shawshankDetail, nil).Times(1)

		toggle := NewDetailToggle("tt0111161")
		require.Equal(t, Collapsed, toggle.State())

		assert.Equal(t, Expanded, toggle.Toggle(ctx, client))
		assert.Equal(t, shawshankDetail, toggle.Record())
		assert.Equal(t, 1, toggle.Fetches())

		assert.Equal(t, Collapsed, toggle.Toggle(ctx, client))

		assert.Equal(t, Expanded, toggle.Toggle(ctx, client))
		assert.Same(t, shawshankDetail, toggle.Record())
		assert.Equal(t, 1, toggle.Fetches())
	})

	t.Run("errors are not cached", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockMetadataClient(ctrl)
		gomock.InOrder(
			client.EXPECT().FetchDetail(gomock.Any(), "tt0111161").Return(nil, errors.New("timeout")),
			client.EXPECT().FetchDetail(gomock.Any(), "tt0111161").Return(shawshankDetail, nil),
		)

		toggle := NewDetailToggle("tt0111161")

		assert.Equal(t, ExpandedError, toggle.Toggle(ctx, client))
		assert.Nil(t, toggle.Record())
		assert.ErrorIs(t, toggle.Err(), shared.ErrDetailUnavailable)

		assert.Equal(t, Collapsed, toggle.Toggle(ctx, client))

		assert.Equal(t, Expanded, toggle.Toggle(ctx, client))
		assert.Equal(t, 2, toggle.Fetches())
		assert.NoError(t, toggle.Err())
	})

	t.Run("requests while loading are ignored", func(t *testing.T) {
		toggle := NewDetailToggle("tt0111161")

		assert.True(t, toggle.Request())
		assert.Equal(t, DetailLoading, toggle.State())

		assert.False(t, toggle.Request())
		toggle.Collapse()
		assert.Equal(t, DetailLoading, toggle.State())
		assert.Equal(t, 1, toggle.Fetches())

		toggle.Resolve(shawshankDetail, nil)
		assert.Equal(t, Expanded, toggle.State())
	})

	t.Run("resolve outside loading does nothing", func(t *testing.T) {
		toggle := NewDetailToggle("tt0111161")

		toggle.Resolve(shawshankDetail, nil)
		assert.Equal(t, Collapsed, toggle.State())
		assert.Nil(t, toggle.Record())
	})

	t.Run("resolve without record is an error", func(t *testing.T) {
		toggle := NewDetailToggle("tt0111161")
		toggle.Request()

		toggle.Resolve(nil, nil)
		assert.Equal(t, ExpandedError, toggle.State())
		assert.ErrorIs(t, toggle.Err(), shared.ErrDetailUnavailable)
	})

	t.Run("collapse from expanded-error", func(t *testing.T) {
		toggle := NewDetailToggle("tt0111161")
		toggle.Request()
		toggle.Resolve(nil, shared.ErrDetailUnavailable)

		toggle.Collapse()
		assert.Equal(t, Collapsed, toggle.State())
		toggle.Collapse()
		assert.Equal(t, Collapsed, toggle.State())
	})

	t.Run("MovieID", func(t *testing.T) {
		assert.Equal(t, "tt0468569", NewDetailToggle("tt0468569").MovieID())
	})
}

func TestDetailState(t *testing.T) {
	assert.Equal(t, "collapsed", Collapsed.String())
	assert.Equal(t, "loading", DetailLoading.String())
	assert.Equal(t, "expanded", Expanded.String())
	assert.Equal(t, "expanded-error", ExpandedError.String())
}
