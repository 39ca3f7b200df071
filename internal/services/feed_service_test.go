// internal/services/feed_service_test.go
package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storyboardapp/backend/internal/config"
	"github.com/storyboardapp/backend/internal/models"
)

type fakeSource struct {
	pages   [][]models.Asset
	fetches int32

	// when set, FetchPage blocks until released
	started chan struct{}
	release chan struct{}
}

func (f *fakeSource) FetchPage(ctx context.Context, page, limit int) ([]models.Asset, error) {
	atomic.AddInt32(&f.fetches, 1)
	if f.started != nil {
		f.started <- struct{}{}
		<-f.release
	}
	if page >= len(f.pages) {
		return nil, nil
	}
	return f.pages[page], nil
}

func (f *fakeSource) FetchAsset(ctx context.Context, id string) (models.Asset, error) {
	return models.Asset{ID: id, Title: "fetched directly"}, nil
}

func makeAssets(prefix string, n int) []models.Asset {
	assets := make([]models.Asset, n)
	for i := range assets {
		assets[i] = models.Asset{
			ID: fmt.Sprintf("%s-%d", prefix, i),
			LicenseOffers: []models.LicenseOffer{
				{Kind: models.LicenseKindPersonal, Price: "0", Currency: "IP"},
			},
		}
	}
	return assets
}

func testFeedConfig() config.FeedConfig {
	return config.FeedConfig{PageSize: 50, LowWaterMark: 5, SwipeHistorySize: 10}
}

func TestFeedAccumulatesPagesAndLatchesHasMore(t *testing.T) {
	source := &fakeSource{pages: [][]models.Asset{
		makeAssets("p0", 50),
		makeAssets("p1", 32),
	}}
	feed := NewFeedService(source, testFeedConfig())
	ctx := context.Background()

	require.NoError(t, feed.LoadNextPage(ctx, "w"))
	snap := feed.Snapshot("w")
	assert.Equal(t, 50, snap.Total)
	assert.True(t, snap.HasMore)

	// A short page exhausts the upstream.
	require.NoError(t, feed.LoadNextPage(ctx, "w"))
	snap = feed.Snapshot("w")
	assert.Equal(t, 82, snap.Total)
	assert.False(t, snap.HasMore)

	// Further loads are no-ops once exhausted.
	require.NoError(t, feed.LoadNextPage(ctx, "w"))
	assert.Equal(t, int32(2), atomic.LoadInt32(&source.fetches))
}

func TestFeedDeduplicatesAcrossPages(t *testing.T) {
	overlap := makeAssets("x", 50)
	source := &fakeSource{pages: [][]models.Asset{
		overlap,
		append(makeAssets("y", 10), overlap[:40]...),
	}}
	feed := NewFeedService(source, testFeedConfig())
	ctx := context.Background()

	require.NoError(t, feed.LoadNextPage(ctx, "w"))
	require.NoError(t, feed.LoadNextPage(ctx, "w"))

	snap := feed.Snapshot("w")
	assert.Equal(t, 60, snap.Total)

	seen := map[string]bool{}
	for _, a := range snap.Assets {
		assert.False(t, seen[a.ID], "duplicate id %s", a.ID)
		seen[a.ID] = true
	}

	// First appearance order wins for duplicated ids.
	assert.Equal(t, "x-0", snap.Assets[0].ID)
}

func TestFeedInFlightGuard(t *testing.T) {
	source := &fakeSource{
		pages:   [][]models.Asset{makeAssets("p0", 50)},
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	feed := NewFeedService(source, testFeedConfig())
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- feed.LoadNextPage(ctx, "w") }()
	<-source.started

	// Second call while the first fetch is in flight returns immediately
	// without fetching.
	require.NoError(t, feed.LoadNextPage(ctx, "w"))
	assert.Equal(t, int32(1), atomic.LoadInt32(&source.fetches))

	close(source.release)
	require.NoError(t, <-done)
}

func TestFeedEnsureAvailable(t *testing.T) {
	source := &fakeSource{pages: [][]models.Asset{
		makeAssets("p0", 50),
		makeAssets("p1", 50),
	}}
	feed := NewFeedService(source, testFeedConfig())
	ctx := context.Background()

	require.NoError(t, feed.LoadNextPage(ctx, "w"))

	// Plenty remaining: no fetch.
	require.NoError(t, feed.EnsureAvailable(ctx, "w", 10))
	assert.Equal(t, int32(1), atomic.LoadInt32(&source.fetches))

	// Below the low-water mark: tops up.
	require.NoError(t, feed.EnsureAvailable(ctx, "w", 4))
	assert.Equal(t, int32(2), atomic.LoadInt32(&source.fetches))
	assert.Equal(t, 100, feed.Snapshot("w").Total)

	// Exhaustion triggers an immediate fetch attempt.
	require.NoError(t, feed.EnsureAvailable(ctx, "w", 0))
	assert.Equal(t, int32(3), atomic.LoadInt32(&source.fetches))
}

func TestFeedFilterCriteriaAreAppliedToSnapshot(t *testing.T) {
	assets := makeAssets("p0", 10)
	assets[3].Kind = models.AssetKindMusic
	source := &fakeSource{pages: [][]models.Asset{assets}}
	feed := NewFeedService(source, testFeedConfig())

	require.NoError(t, feed.LoadNextPage(context.Background(), "w"))

	applied := feed.SetFilter("w", models.FilterCriteria{Kind: "music"})
	assert.Equal(t, "music", applied.Kind)
	assert.Equal(t, "all", applied.Collection)

	snap := feed.Snapshot("w")
	require.Len(t, snap.Assets, 1)
	assert.Equal(t, "p0-3", snap.Assets[0].ID)
	// The working set is untouched by filtering.
	assert.Equal(t, 10, snap.Total)
}

func TestFeedLookupFallsBackToDirectFetch(t *testing.T) {
	source := &fakeSource{pages: [][]models.Asset{makeAssets("p0", 2)}}
	feed := NewFeedService(source, testFeedConfig())
	ctx := context.Background()

	require.NoError(t, feed.LoadNextPage(ctx, "w"))

	inSet, err := feed.Lookup(ctx, "w", "p0-1")
	require.NoError(t, err)
	assert.Equal(t, "p0-1", inSet.ID)
	assert.NotEqual(t, "fetched directly", inSet.Title)

	missing, err := feed.Lookup(ctx, "w", "elsewhere")
	require.NoError(t, err)
	assert.Equal(t, "fetched directly", missing.Title)
}

func TestFeedResetRearmsLatch(t *testing.T) {
	source := &fakeSource{pages: [][]models.Asset{makeAssets("p0", 10)}}
	feed := NewFeedService(source, testFeedConfig())
	ctx := context.Background()

	require.NoError(t, feed.LoadNextPage(ctx, "w"))
	assert.False(t, feed.Snapshot("w").HasMore)

	feed.SetFilter("w", models.FilterCriteria{Kind: "image"})
	feed.Reset("w")

	snap := feed.Snapshot("w")
	assert.Zero(t, snap.Total)
	assert.True(t, snap.HasMore)
	// Criteria survive a reset.
	assert.Equal(t, "image", snap.Criteria.Kind)
}
