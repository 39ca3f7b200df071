// internal/services/feed_service.go
package services

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/storyboardapp/backend/internal/config"
	"github.com/storyboardapp/backend/internal/models"
	"github.com/storyboardapp/backend/internal/storyapi"
)

// FeedSnapshot is one consistent view of a wallet's feed: the filtered
// working set plus accumulator state.
type FeedSnapshot struct {
	Assets      []models.Asset        `json:"assets"`
	Total       int                   `json:"total"`
	PagesLoaded int                   `json:"pages_loaded"`
	HasMore     bool                  `json:"has_more"`
	Loading     bool                  `json:"loading"`
	Criteria    models.FilterCriteria `json:"criteria"`
}

// feedState is one wallet's accumulated working set. Assets keep their
// first-appearance order; later pages only ever append.
type feedState struct {
	assets   []models.Asset
	seen     map[string]struct{}
	page     int
	hasMore  bool
	loading  bool
	criteria models.FilterCriteria
}

func newFeedState() *feedState {
	return &feedState{
		seen:     make(map[string]struct{}),
		hasMore:  true,
		criteria: models.DefaultFilterCriteria(),
	}
}

// FeedService accumulates catalog pages into per-wallet working sets. Pages
// merge by asset id, an exhausted upstream latches has_more off until the
// feed is reset, and at most one fetch per wallet is in flight at a time.
type FeedService struct {
	source       storyapi.Source
	pageSize     int
	lowWaterMark int

	mtx   sync.Mutex
	feeds map[string]*feedState
	log   *logrus.Entry
}

func NewFeedService(source storyapi.Source, cfg config.FeedConfig) *FeedService {
	return &FeedService{
		source:       source,
		pageSize:     cfg.PageSize,
		lowWaterMark: cfg.LowWaterMark,
		feeds:        make(map[string]*feedState),
		log:          logrus.WithField("component", "feed"),
	}
}

func (s *FeedService) state(walletAddress string) *feedState {
	if feed, ok := s.feeds[walletAddress]; ok {
		return feed
	}
	feed := newFeedState()
	s.feeds[walletAddress] = feed
	return feed
}

// Snapshot returns the wallet's filtered feed. The returned slice is owned
// by the caller.
func (s *FeedService) Snapshot(walletAddress string) FeedSnapshot {
	s.mtx.Lock()
	feed := s.state(walletAddress)
	working := make([]models.Asset, len(feed.assets))
	copy(working, feed.assets)
	snapshot := FeedSnapshot{
		Total:       len(feed.assets),
		PagesLoaded: feed.page,
		HasMore:     feed.hasMore,
		Loading:     feed.loading,
		Criteria:    feed.criteria,
	}
	s.mtx.Unlock()

	snapshot.Assets = ApplyFilter(working, snapshot.Criteria)
	return snapshot
}

// LoadNextPage fetches and merges the next catalog page. A call while a
// fetch is already in flight, or after the upstream is exhausted, is a
// no-op.
func (s *FeedService) LoadNextPage(ctx context.Context, walletAddress string) error {
	s.mtx.Lock()
	feed := s.state(walletAddress)
	if feed.loading || !feed.hasMore {
		s.mtx.Unlock()
		return nil
	}
	feed.loading = true
	page := feed.page
	s.mtx.Unlock()

	assets, err := s.source.FetchPage(ctx, page, s.pageSize)

	s.mtx.Lock()
	defer s.mtx.Unlock()
	feed.loading = false

	if err != nil {
		return err
	}

	added := 0
	for _, asset := range assets {
		if _, dup := feed.seen[asset.ID]; dup {
			continue
		}
		feed.seen[asset.ID] = struct{}{}
		feed.assets = append(feed.assets, asset)
		added++
	}

	feed.page++

	// A short page means the upstream has nothing further. The latch stays
	// off until Reset, so exhausted feeds never re-poll.
	if len(assets) < s.pageSize {
		feed.hasMore = false
	}

	s.log.WithFields(logrus.Fields{
		"wallet":   walletAddress,
		"page":     page,
		"fetched":  len(assets),
		"added":    added,
		"total":    len(feed.assets),
		"has_more": feed.hasMore,
	}).Debug("Merged catalog page")

	return nil
}

// EnsureAvailable tops the feed up when the unconsumed remainder runs low.
// remaining is how many filtered assets the caller still has to show.
func (s *FeedService) EnsureAvailable(ctx context.Context, walletAddress string, remaining int) error {
	s.mtx.Lock()
	feed := s.state(walletAddress)
	needsMore := feed.hasMore && !feed.loading && remaining < s.lowWaterMark
	s.mtx.Unlock()

	if !needsMore {
		return nil
	}
	return s.LoadNextPage(ctx, walletAddress)
}

// SetFilter replaces the wallet's criteria wholesale. The working set is
// untouched; only the view changes.
func (s *FeedService) SetFilter(walletAddress string, criteria models.FilterCriteria) models.FilterCriteria {
	normalized := criteria.Normalize()

	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.state(walletAddress).criteria = normalized
	return normalized
}

// Criteria returns the wallet's active filter.
func (s *FeedService) Criteria(walletAddress string) models.FilterCriteria {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.state(walletAddress).criteria
}

// Lookup finds an asset in the wallet's working set; on a miss it falls
// through to a direct upstream fetch.
func (s *FeedService) Lookup(ctx context.Context, walletAddress, assetID string) (models.Asset, error) {
	s.mtx.Lock()
	feed := s.state(walletAddress)
	for _, asset := range feed.assets {
		if asset.ID == assetID {
			s.mtx.Unlock()
			return asset, nil
		}
	}
	s.mtx.Unlock()

	return s.source.FetchAsset(ctx, assetID)
}

// Reset discards the wallet's working set and re-arms the has_more latch.
func (s *FeedService) Reset(walletAddress string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	criteria := s.state(walletAddress).criteria
	feed := newFeedState()
	feed.criteria = criteria
	s.feeds[walletAddress] = feed
}
