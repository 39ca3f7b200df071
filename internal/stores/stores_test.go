// internal/stores/stores_test.go
package stores

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/storyboardapp/backend/internal/database"
	"github.com/storyboardapp/backend/internal/models"
	"github.com/storyboardapp/backend/internal/utils"
)

const testWallet = "0x1234567890abcdef1234567890abcdef12345678"

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.InitializeTest()
	require.NoError(t, err)
	return db
}

func testAsset(id string) models.Asset {
	return models.Asset{
		ID:         id,
		ProtocolID: id,
		Title:      "Asset " + id,
		Tags:       []string{"art"},
		LicenseOffers: []models.LicenseOffer{
			{Kind: models.LicenseKindPersonal, Price: "0", Currency: "IP"},
		},
	}
}

func TestLikedStoreAddIsIdempotent(t *testing.T) {
	store := NewLikedStore(testDB(t))

	require.NoError(t, store.Add(testWallet, testAsset("a1")))
	require.NoError(t, store.Add(testWallet, testAsset("a1")))

	count, err := store.Count(testWallet)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestLikedStoreRoundTrip(t *testing.T) {
	store := NewLikedStore(testDB(t))

	require.NoError(t, store.Add(testWallet, testAsset("a1")))
	require.NoError(t, store.Add(testWallet, testAsset("a2")))

	likes, err := store.List(testWallet)
	require.NoError(t, err)
	require.Len(t, likes, 2)

	// The full asset snapshot survives persistence.
	entry, err := store.Get(testWallet, "a1")
	require.NoError(t, err)
	asset := entry.Asset.Asset()
	assert.Equal(t, "Asset a1", asset.Title)
	require.Len(t, asset.LicenseOffers, 1)
	assert.Equal(t, models.LicenseKindPersonal, asset.LicenseOffers[0].Kind)

	has, err := store.Has(testWallet, "a2")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestLikedStoreListPage(t *testing.T) {
	store := NewLikedStore(testDB(t))

	for _, id := range []string{"a1", "a2", "a3"} {
		require.NoError(t, store.Add(testWallet, testAsset(id)))
	}

	page, total, err := store.ListPage(testWallet, utils.PaginationParams{
		Page: 1, Limit: 2, Sort: "liked_at", Order: "desc",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page, 2)

	page, _, err = store.ListPage(testWallet, utils.PaginationParams{
		Page: 2, Limit: 2, Sort: "liked_at", Order: "desc",
	})
	require.NoError(t, err)
	assert.Len(t, page, 1)
}

func TestLikedStoreRemove(t *testing.T) {
	store := NewLikedStore(testDB(t))

	require.NoError(t, store.Add(testWallet, testAsset("a1")))
	require.NoError(t, store.Remove(testWallet, "a1"))
	// Removing a never-liked asset is a no-op.
	require.NoError(t, store.Remove(testWallet, "a9"))

	count, err := store.Count(testWallet)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestLikedStoreIsolatedPerWallet(t *testing.T) {
	store := NewLikedStore(testDB(t))
	other := "0xffffffffffffffffffffffffffffffffffffffff"

	require.NoError(t, store.Add(testWallet, testAsset("a1")))

	has, err := store.Has(other, "a1")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestLicenseStoreAppendOnly(t *testing.T) {
	store := NewLicenseStore(testDB(t))

	for i := 0; i < 2; i++ {
		license := &models.License{
			LicenseID:     "77",
			WalletAddress: testWallet,
			AssetID:       "a1",
			Asset:         models.AssetBlob(testAsset("a1")),
			LicenseKind:   models.LicenseKindCommercial,
			Price:         "1000",
			Currency:      "IP",
			TxHash:        "0xmint",
			LicensedAt:    time.Now(),
		}
		require.NoError(t, store.Record(license))
	}

	// Repeat purchases each get their own row.
	licenses, err := store.List(testWallet)
	require.NoError(t, err)
	assert.Len(t, licenses, 2)

	byAsset, err := store.ListByAsset(testWallet, "a1")
	require.NoError(t, err)
	assert.Len(t, byAsset, 2)

	has, err := store.HasLicense(testWallet, "a1", models.LicenseKindCommercial)
	require.NoError(t, err)
	assert.True(t, has)

	has, err = store.HasLicense(testWallet, "a1", models.LicenseKindRemix)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestRoyaltyStoreMergeInvariant(t *testing.T) {
	store := NewRoyaltyStore(testDB(t))

	first, err := store.Acquire(testWallet, testAsset("a1"), 5, "0xvault")
	require.NoError(t, err)
	assert.Equal(t, int64(5_000_000), first.TokenCount)

	merged, err := store.Acquire(testWallet, testAsset("a1"), 10, "")
	require.NoError(t, err)
	assert.Equal(t, float64(15), merged.SharePercent)
	assert.Equal(t, int64(15_000_000), merged.TokenCount)
	// The vault cached on first acquisition is kept.
	assert.Equal(t, "0xvault", merged.VaultAddress)
	// A merge refreshes the acquisition time.
	assert.False(t, merged.AcquiredAt.Before(first.AcquiredAt))

	holdings, err := store.List(testWallet)
	require.NoError(t, err)
	require.Len(t, holdings, 1)
}

func TestRoyaltyStoreRecordClaim(t *testing.T) {
	store := NewRoyaltyStore(testDB(t))

	_, err := store.Acquire(testWallet, testAsset("a1"), 5, "")
	require.NoError(t, err)

	require.NoError(t, store.RecordClaim(testWallet, "a1", "100"))
	require.NoError(t, store.RecordClaim(testWallet, "a1", "50"))

	holding, err := store.Get(testWallet, "a1")
	require.NoError(t, err)
	assert.Equal(t, "150", holding.TotalClaimed)
	require.NotNil(t, holding.LastClaimAt)

	err = store.RecordClaim(testWallet, "missing", "100")
	assert.True(t, IsNotFound(err))
}

func TestNotificationStore(t *testing.T) {
	store := NewNotificationStore(testDB(t))

	require.NoError(t, store.Add(&models.Notification{
		WalletAddress: testWallet,
		Level:         models.NotificationLevelSuccess,
		Title:         "License acquired",
		Message:       "Asset a1",
	}))
	require.NoError(t, store.Add(&models.Notification{
		WalletAddress: testWallet,
		Level:         models.NotificationLevelError,
		Title:         "Mint failed",
	}))

	unread, err := store.UnreadCount(testWallet)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	list, err := store.List(testWallet, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NoError(t, store.MarkRead(testWallet, list[0].ID.String()))
	unread, err = store.UnreadCount(testWallet)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	require.NoError(t, store.MarkAllRead(testWallet))
	unread, err = store.UnreadCount(testWallet)
	require.NoError(t, err)
	assert.Zero(t, unread)
}
