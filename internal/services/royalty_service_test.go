// internal/services/royalty_service_test.go
package services

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storyboardapp/backend/internal/database"
	"github.com/storyboardapp/backend/internal/models"
	"github.com/storyboardapp/backend/internal/protocol"
	"github.com/storyboardapp/backend/internal/stores"
)

func newRoyaltyFixture(t *testing.T, client *fakeProtocol) *RoyaltyService {
	t.Helper()

	db, err := database.InitializeTest()
	require.NoError(t, err)

	return NewRoyaltyService(client, stores.NewRoyaltyStore(db))
}

func TestRoyaltyAcquireMergesHoldings(t *testing.T) {
	svc := newRoyaltyFixture(t, &fakeProtocol{vault: "0xvault"})
	ctx := context.Background()
	asset := licensableAsset()

	first, err := svc.Acquire(ctx, testWallet, asset, 5)
	require.NoError(t, err)
	assert.Equal(t, float64(5), first.SharePercent)
	assert.Equal(t, int64(5_000_000), first.TokenCount)
	assert.Equal(t, "0xvault", first.VaultAddress)

	merged, err := svc.Acquire(ctx, testWallet, asset, 10)
	require.NoError(t, err)
	assert.Equal(t, float64(15), merged.SharePercent)
	assert.Equal(t, int64(15_000_000), merged.TokenCount)

	holdings, err := svc.Holdings(testWallet)
	require.NoError(t, err)
	require.Len(t, holdings, 1)
}

func TestRoyaltyAcquireShareBounds(t *testing.T) {
	svc := newRoyaltyFixture(t, &fakeProtocol{})

	for _, share := range []float64{0, 0.5, 31, -3} {
		_, err := svc.Acquire(context.Background(), testWallet, licensableAsset(), share)
		assert.Equal(t, protocol.KindInvalidParams, protocol.KindOf(err), "share %v", share)
	}
}

func TestRoyaltyAcquireVaultLookupFailureIsNotFatal(t *testing.T) {
	svc := newRoyaltyFixture(t, &fakeProtocol{
		vaultErr: protocol.NewError(protocol.KindGeneric, "vault unavailable"),
	})

	holding, err := svc.Acquire(context.Background(), testWallet, licensableAsset(), 5)
	require.NoError(t, err)
	assert.Empty(t, holding.VaultAddress)
}

func TestRoyaltyClaimable(t *testing.T) {
	svc := newRoyaltyFixture(t, &fakeProtocol{claimable: big.NewInt(123456)})
	ctx := context.Background()

	_, err := svc.Acquire(ctx, testWallet, licensableAsset(), 5)
	require.NoError(t, err)

	claimable, err := svc.Claimable(ctx, testWallet, "asset-1")
	require.NoError(t, err)
	assert.Equal(t, "123456", claimable.String())
}

func TestRoyaltyClaimRecordsTotals(t *testing.T) {
	client := &fakeProtocol{
		claimResult: protocol.ClaimResult{
			TxHashes:       []string{"0xclaim1", "0xclaim2"},
			ClaimedAmounts: []string{"100", "50"},
		},
	}
	svc := newRoyaltyFixture(t, client)
	ctx := context.Background()

	_, err := svc.Acquire(ctx, testWallet, licensableAsset(), 5)
	require.NoError(t, err)

	outcome, err := svc.Claim(ctx, testWallet, "asset-1")
	require.NoError(t, err)
	assert.Equal(t, "150", outcome.ClaimedAmount)

	holdings, err := svc.Holdings(testWallet)
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.Equal(t, "150", holdings[0].TotalClaimed)
	require.NotNil(t, holdings[0].LastClaimAt)

	// A second claim adds to the running total.
	_, err = svc.Claim(ctx, testWallet, "asset-1")
	require.NoError(t, err)

	holdings, err = svc.Holdings(testWallet)
	require.NoError(t, err)
	assert.Equal(t, "300", holdings[0].TotalClaimed)
}

func TestRoyaltyClaimNothingToClaim(t *testing.T) {
	svc := newRoyaltyFixture(t, &fakeProtocol{
		claimResult: protocol.ClaimResult{ClaimedAmounts: []string{"0"}},
	})
	ctx := context.Background()

	_, err := svc.Acquire(ctx, testWallet, licensableAsset(), 5)
	require.NoError(t, err)

	_, err = svc.Claim(ctx, testWallet, "asset-1")
	assert.Equal(t, protocol.KindNothingToClaim, protocol.KindOf(err))
}

func TestRoyaltyClaimUnknownHolding(t *testing.T) {
	svc := newRoyaltyFixture(t, &fakeProtocol{})

	_, err := svc.Claim(context.Background(), testWallet, "nope")
	assert.True(t, stores.IsNotFound(err))
}

func TestTokensForShare(t *testing.T) {
	assert.Equal(t, int64(1_000_000), models.TokensForShare(1))
	assert.Equal(t, int64(15_000_000), models.TokensForShare(15))
	assert.Equal(t, int64(30_000_000), models.TokensForShare(30))
}
