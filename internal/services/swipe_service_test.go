// internal/services/swipe_service_test.go
package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storyboardapp/backend/internal/database"
	"github.com/storyboardapp/backend/internal/models"
	"github.com/storyboardapp/backend/internal/stores"
)

const testWallet = "0x1234567890abcdef1234567890abcdef12345678"

func newSwipeFixture(t *testing.T, assetCount int) (*SwipeService, *stores.LikedStore) {
	t.Helper()

	db, err := database.InitializeTest()
	require.NoError(t, err)

	source := &fakeSource{pages: [][]models.Asset{makeAssets("a", assetCount)}}
	feed := NewFeedService(source, testFeedConfig())
	require.NoError(t, feed.LoadNextPage(context.Background(), testWallet))

	liked := stores.NewLikedStore(db)
	return NewSwipeService(feed, liked, testFeedConfig()), liked
}

func TestSwipeStackShowsTopThree(t *testing.T) {
	swipe, _ := newSwipeFixture(t, 10)

	view, err := swipe.Stack(context.Background(), testWallet)
	require.NoError(t, err)

	require.Len(t, view.Cards, 3)
	assert.Equal(t, "a-0", view.Cards[0].ID)
	assert.Equal(t, 10, view.Remaining)
	assert.False(t, view.Empty)
	assert.False(t, view.CanUndo)
}

func TestSwipeDecideAdvancesAndRecordsLike(t *testing.T) {
	swipe, liked := newSwipeFixture(t, 10)
	ctx := context.Background()

	view, err := swipe.Decide(ctx, testWallet, "a-0", models.SwipeKindLike)
	require.NoError(t, err)
	assert.Equal(t, "a-1", view.Cards[0].ID)
	assert.Equal(t, 9, view.Remaining)
	assert.True(t, view.CanUndo)

	has, err := liked.Has(testWallet, "a-0")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestSwipeDecideSkipHasNoSideEffect(t *testing.T) {
	swipe, liked := newSwipeFixture(t, 10)

	_, err := swipe.Decide(context.Background(), testWallet, "a-0", models.SwipeKindSkip)
	require.NoError(t, err)

	count, err := liked.Count(testWallet)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSwipeDecideRejectsNonCurrentCard(t *testing.T) {
	swipe, _ := newSwipeFixture(t, 10)

	_, err := swipe.Decide(context.Background(), testWallet, "a-5", models.SwipeKindLike)
	assert.ErrorIs(t, err, ErrNotCurrent)
}

func TestSwipeUndoInverseOfLike(t *testing.T) {
	swipe, liked := newSwipeFixture(t, 10)
	ctx := context.Background()

	before, err := swipe.Stack(ctx, testWallet)
	require.NoError(t, err)

	_, err = swipe.Decide(ctx, testWallet, "a-0", models.SwipeKindLike)
	require.NoError(t, err)

	after, err := swipe.Undo(ctx, testWallet)
	require.NoError(t, err)

	// The liked collection and the stack position are back where they were.
	count, err := liked.Count(testWallet)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, before.Cards[0].ID, after.Cards[0].ID)
	assert.Equal(t, before.Remaining, after.Remaining)
}

func TestSwipeUndoSkipRestoresPositionOnly(t *testing.T) {
	swipe, _ := newSwipeFixture(t, 10)
	ctx := context.Background()

	_, err := swipe.Decide(ctx, testWallet, "a-0", models.SwipeKindSkip)
	require.NoError(t, err)

	view, err := swipe.Undo(ctx, testWallet)
	require.NoError(t, err)
	assert.Equal(t, "a-0", view.Cards[0].ID)
}

func TestSwipeUndoOnEmptyHistory(t *testing.T) {
	swipe, _ := newSwipeFixture(t, 10)

	_, err := swipe.Undo(context.Background(), testWallet)
	assert.ErrorIs(t, err, ErrNothingToUndo)
}

func TestSwipeLikeIdempotent(t *testing.T) {
	swipe, liked := newSwipeFixture(t, 10)
	ctx := context.Background()

	_, err := swipe.Decide(ctx, testWallet, "a-0", models.SwipeKindLike)
	require.NoError(t, err)

	require.NoError(t, liked.Add(testWallet, models.Asset{ID: "a-0"}))

	count, err := liked.Count(testWallet)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSwipeHistoryRingIsBounded(t *testing.T) {
	swipe, _ := newSwipeFixture(t, 20)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		_, err := swipe.Decide(ctx, testWallet, fmt.Sprintf("a-%d", i), models.SwipeKindSkip)
		require.NoError(t, err)
	}

	history := swipe.History(testWallet)
	require.Len(t, history, 10)
	// Oldest actions were evicted.
	assert.Equal(t, "a-5", history[0].AssetID)
	assert.Equal(t, "a-14", history[9].AssetID)
}

func TestSwipeExhaustionReportsEmpty(t *testing.T) {
	swipe, _ := newSwipeFixture(t, 2)
	ctx := context.Background()

	_, err := swipe.Decide(ctx, testWallet, "a-0", models.SwipeKindSkip)
	require.NoError(t, err)
	view, err := swipe.Decide(ctx, testWallet, "a-1", models.SwipeKindSkip)
	require.NoError(t, err)

	assert.True(t, view.Empty)
	assert.Zero(t, view.Remaining)

	_, err = swipe.Decide(ctx, testWallet, "a-2", models.SwipeKindSkip)
	assert.ErrorIs(t, err, ErrStackEmpty)
}

func TestSwipeResetRewindsSession(t *testing.T) {
	swipe, _ := newSwipeFixture(t, 10)
	ctx := context.Background()

	_, err := swipe.Decide(ctx, testWallet, "a-0", models.SwipeKindLike)
	require.NoError(t, err)

	swipe.Reset(testWallet)

	view, err := swipe.Stack(ctx, testWallet)
	require.NoError(t, err)
	assert.Equal(t, "a-0", view.Cards[0].ID)
	assert.False(t, view.CanUndo)
	assert.Empty(t, swipe.History(testWallet))
}
