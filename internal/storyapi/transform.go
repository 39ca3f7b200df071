// internal/storyapi/transform.go
package storyapi

import (
	"fmt"
	"hash/fnv"
	"math/big"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/storyboardapp/backend/internal/models"
)

const zeroAddress = "0x0000000000000000000000000000000000000000"

var placeholderColors = []string{"FF6B35", "7C3AED", "10B981", "F59E0B", "EF4444", "8B5CF6"}

var hashtagPattern = regexp.MustCompile(`#\w+`)

// TransformRecord normalizes one upstream record of unspecified shape into
// the canonical Asset. It never fails: every field has an explicit fallback
// chain ending in a generated placeholder, so a partially broken record
// still yields a usable card.
func TransformRecord(record map[string]interface{}) models.Asset {
	ipID := stringField(record, "ipId", "id", "assetId")
	metadata := mapField(record, "nftMetadata", "metadata")
	ipMetadata := mapField(record, "ipMetadata")

	owner := stringField(record, "owner", "ipOwner", "creator")
	if owner == "" {
		owner = zeroAddress
	}

	name := firstNonEmpty(
		stringField(metadata, "name"),
		stringField(ipMetadata, "name"),
		stringField(record, "name"),
		"Untitled IP Asset",
	)
	description := firstNonEmpty(
		stringField(metadata, "description"),
		stringField(ipMetadata, "description"),
		stringField(record, "description"),
		"No description available",
	)
	image := firstNonEmpty(
		stringField(metadata, "image", "imageUrl"),
		stringField(ipMetadata, "imageUrl"),
		stringField(record, "imageUrl"),
	)

	previewURL := image
	if previewURL == "" {
		previewURL = PlaceholderImageURL(name)
	}
	thumbnailURL := firstNonEmpty(
		stringField(metadata, "thumbnail", "thumbnailUrl"),
		image,
		PlaceholderImageURL(name),
	)

	creatorName := stringField(mapField(metadata, "creator"), "name")
	if creatorName == "" {
		creatorName = ShortenAddress(owner)
	}
	avatar := stringField(mapField(metadata, "creator"), "avatar")
	if avatar == "" {
		avatar = AvatarURL(owner)
	}

	tags := stringsField(metadata, "tags")
	if len(tags) == 0 {
		tags = stringsField(record, "tags")
	}
	if len(tags) == 0 {
		tags = ExtractTags(description)
	}

	offers := transformOffers(listField(record, "licenseTerms", "licenses"))

	return models.Asset{
		ID:         ipID,
		ProtocolID: ipID,
		Title:      name,
		Description: description,
		Kind: DetermineAssetKind(firstNonEmpty(
			stringField(metadata, "contentType", "type"),
			stringField(record, "assetType"),
			"image",
		)),
		Collection: models.NormalizeCollection(firstNonEmpty(
			stringField(metadata, "collection"),
			stringField(record, "collection"),
		)),
		Creator: models.Creator{
			Name:    creatorName,
			Address: owner,
			Avatar:  avatar,
		},
		PreviewURL:    previewURL,
		ThumbnailURL:  thumbnailURL,
		LicenseOffers: offers,
		CreatedAt: parseTimestamp(firstNonEmpty(
			stringField(record, "blockTimestamp"),
			stringField(record, "createdAt"),
			stringField(record, "timestamp"),
		)),
		ViewCount: countField(metadata, record, "views"),
		LikeCount: countField(metadata, record, "likes"),
		Tags:      tags,
	}
}

// DetermineAssetKind maps an upstream content type string onto the closed
// asset kind set. Unknown types count as images.
func DetermineAssetKind(contentType string) models.AssetKind {
	t := strings.ToLower(contentType)
	switch {
	case strings.Contains(t, "audio"), strings.Contains(t, "music"), strings.Contains(t, "mp3"):
		return models.AssetKindMusic
	case strings.Contains(t, "video"), strings.Contains(t, "mp4"):
		return models.AssetKindVideo
	case strings.Contains(t, "text"), strings.Contains(t, "document"):
		return models.AssetKindText
	default:
		return models.AssetKindImage
	}
}

// transformOffers maps upstream license-term records onto license offers. A
// record with no terms gets a single free personal offer so the invariant
// "licenseOffers is non-empty" holds for every asset.
func transformOffers(terms []interface{}) []models.LicenseOffer {
	if len(terms) == 0 {
		return []models.LicenseOffer{{
			Kind:      models.LicenseKindPersonal,
			Price:     "0",
			Currency:  "IP",
			Available: true,
		}}
	}

	offers := make([]models.LicenseOffer, 0, len(terms))
	for _, raw := range terms {
		term, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}

		termsID := stringField(term, "licenseTermsId", "id")

		kind := models.LicenseKindPersonal
		switch {
		case termsID == "2":
			kind = models.LicenseKindCommercial
		case termsID == "3":
			kind = models.LicenseKindRemix
		case boolField(term, "derivativesAllowed"):
			kind = models.LicenseKindRemix
		case boolField(term, "commercialUse"):
			kind = models.LicenseKindCommercial
		}

		available := true
		if v, ok := term["available"].(bool); ok {
			available = v
		}

		offers = append(offers, models.LicenseOffer{
			Kind:      kind,
			Price:     normalizePrice(stringField(term, "mintingFee", "price")),
			Currency:  firstNonEmpty(stringField(term, "currency"), "IP"),
			Available: available,
		})
	}

	if len(offers) == 0 {
		return transformOffers(nil)
	}
	return offers
}

// normalizePrice keeps monetary amounts as integer strings in the smallest
// unit; "0" is the canonical free price, never "" or a float.
func normalizePrice(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "0"
	}
	v, ok := new(big.Int).SetString(raw, 10)
	if !ok || v.Sign() < 0 {
		return "0"
	}
	return v.String()
}

// ShortenAddress renders 0x1234...abcd for display names.
func ShortenAddress(address string) string {
	if len(address) < 10 {
		return "Unknown"
	}
	return address[:6] + "..." + address[len(address)-4:]
}

// ExtractTags pulls up to five hashtags out of a description.
func ExtractTags(description string) []string {
	matches := hashtagPattern.FindAllString(description, -1)
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, strings.TrimPrefix(m, "#"))
		if len(tags) == 5 {
			break
		}
	}
	return tags
}

// PlaceholderImageURL builds a deterministic placeholder; the color is
// derived from the name seed so re-fetches render the same card.
func PlaceholderImageURL(name string) string {
	if name == "" {
		name = "IP Asset"
	}
	h := fnv.New32a()
	h.Write([]byte(name))
	color := placeholderColors[int(h.Sum32())%len(placeholderColors)]
	return fmt.Sprintf("https://via.placeholder.com/800x1000/%s/FFFFFF?text=%s", color, url.QueryEscape(name))
}

// AvatarURL builds a deterministic generated avatar from a seed such as the
// owner address.
func AvatarURL(seed string) string {
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + url.QueryEscape(seed)
}

func parseTimestamp(raw string) time.Time {
	if raw == "" {
		return time.Now().UTC()
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts
	}
	if secs, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC()
	}
	return time.Now().UTC()
}

func countField(metadata, record map[string]interface{}, key string) int64 {
	if v := numberField(metadata, key); v != 0 {
		return v
	}
	return numberField(record, key)
}

func numberField(m map[string]interface{}, key string) int64 {
	if m == nil {
		return 0
	}
	switch v := m[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	}
	return 0
}

func stringField(m map[string]interface{}, keys ...string) string {
	if m == nil {
		return ""
	}
	for _, key := range keys {
		switch v := m[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatInt(int64(v), 10)
		}
	}
	return ""
}

func boolField(m map[string]interface{}, key string) bool {
	v, _ := m[key].(bool)
	return v
}

func mapField(m map[string]interface{}, keys ...string) map[string]interface{} {
	for _, key := range keys {
		if v, ok := m[key].(map[string]interface{}); ok {
			return v
		}
	}
	return nil
}

func listField(m map[string]interface{}, keys ...string) []interface{} {
	for _, key := range keys {
		if v, ok := m[key].([]interface{}); ok {
			return v
		}
	}
	return nil
}

func stringsField(m map[string]interface{}, key string) []string {
	if m == nil {
		return nil
	}
	raw, ok := m[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
