// internal/storyapi/samples.go
package storyapi

import (
	"time"

	"github.com/storyboardapp/backend/internal/models"
)

// SampleAssets returns the built-in first-page fallback, so the discover
// stack is never empty when the upstream API is unreachable on first load.
func SampleAssets() []models.Asset {
	now := time.Now().UTC()

	return []models.Asset{
		{
			ID:          "story-ip-001",
			ProtocolID:  "0xabc1234567890abcdef1234567890abcdef12345",
			Title:       "Digital Art Collection #1",
			Description: "A unique digital artwork registered on Story Protocol. This piece represents the future of IP ownership and licensing on-chain.",
			Kind:        models.AssetKindImage,
			Collection:  models.CollectionColorCats,
			Creator: models.Creator{
				Name:    "StoryArtist",
				Address: "0x1234567890123456789012345678901234567890",
				Avatar:  AvatarURL("StoryArtist"),
			},
			PreviewURL:   "https://images.unsplash.com/photo-1618005182384-a83a8bd57fbe?w=800&h=1000&fit=crop",
			ThumbnailURL: "https://images.unsplash.com/photo-1618005182384-a83a8bd57fbe?w=400&h=500&fit=crop",
			LicenseOffers: []models.LicenseOffer{
				{Kind: models.LicenseKindPersonal, Price: "0", Currency: "IP", Available: true},
				{Kind: models.LicenseKindCommercial, Price: "50000000000000000", Currency: "IP", Available: true},
			},
			CreatedAt: now.Add(-2 * time.Hour),
			ViewCount: 450,
			LikeCount: 34,
			Tags:      []string{"digital-art", "nft", "story-protocol"},
		},
		{
			ID:          "story-ip-002",
			ProtocolID:  "0xdef2345678901234567890abcdef1234567890ab",
			Title:       "Licensed Music Track",
			Description: "Original music composition available for licensing through Story Protocol. Perfect for content creators and commercial use.",
			Kind:        models.AssetKindMusic,
			Collection:  models.CollectionSigmaMusic,
			Creator: models.Creator{
				Name:    "MusicCreator",
				Address: "0x2345678901234567890123456789012345678901",
				Avatar:  AvatarURL("MusicCreator"),
			},
			PreviewURL:   "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-1.mp3",
			ThumbnailURL: "https://images.unsplash.com/photo-1507874457470-272b3c8d8ee2?w=400&h=500&fit=crop",
			LicenseOffers: []models.LicenseOffer{
				{Kind: models.LicenseKindPersonal, Price: "10000000000000000", Currency: "IP", Available: true},
				{Kind: models.LicenseKindCommercial, Price: "100000000000000000", Currency: "IP", Available: true},
				{Kind: models.LicenseKindRemix, Price: "50000000000000000", Currency: "IP", Available: true},
			},
			CreatedAt: now.Add(-time.Hour),
			ViewCount: 820,
			LikeCount: 67,
			Tags:      []string{"music", "royalty-free", "licensing"},
		},
		{
			ID:          "story-ip-003",
			ProtocolID:  "0x456789012345678901234567890abcdef1234567",
			Title:       "Programmable IP NFT",
			Description: "An innovative IP asset demonstrating the power of Story Protocol. Includes full commercial rights and remix capabilities with revenue sharing.",
			Kind:        models.AssetKindImage,
			Collection:  models.CollectionPizzaDAO,
			Creator: models.Creator{
				Name:    "IPInnovator",
				Address: "0x3456789012345678901234567890123456789012",
				Avatar:  AvatarURL("IPInnovator"),
			},
			PreviewURL:   "https://images.unsplash.com/photo-1634986666676-ec8fd927c23d?w=800&h=1000&fit=crop",
			ThumbnailURL: "https://images.unsplash.com/photo-1634986666676-ec8fd927c23d?w=400&h=500&fit=crop",
			LicenseOffers: []models.LicenseOffer{
				{Kind: models.LicenseKindCommercial, Price: "150000000000000000", Currency: "IP", Available: true},
				{Kind: models.LicenseKindRemix, Price: "80000000000000000", Currency: "IP", Available: true},
			},
			CreatedAt: now.Add(-4 * time.Hour),
			ViewCount: 1250,
			LikeCount: 98,
			Tags:      []string{"programmable-ip", "nft", "licensing"},
		},
	}
}
