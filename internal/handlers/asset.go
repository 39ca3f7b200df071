// internal/handlers/asset.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/storyboardapp/backend/internal/models"
	"github.com/storyboardapp/backend/internal/services"
	"github.com/storyboardapp/backend/internal/utils"
)

type AssetHandler struct {
	feedService  *services.FeedService
	swipeService *services.SwipeService
}

func NewAssetHandler(feedService *services.FeedService, swipeService *services.SwipeService) *AssetHandler {
	return &AssetHandler{
		feedService:  feedService,
		swipeService: swipeService,
	}
}

// GET /assets
//
// Returns the accumulated working set, filtered and sorted. Filter query
// params replace the session criteria wholesale; a criteria change rewinds
// the swipe session because the ordering underneath it changed.
func (h *AssetHandler) GetAssets(c *gin.Context) {
	key := feedKey(c)

	var criteria models.FilterCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	if criteria != (models.FilterCriteria{}) {
		previous := h.feedService.Criteria(key)
		if applied := h.feedService.SetFilter(key, criteria); applied != previous {
			h.swipeService.Reset(key)
		}
	}

	// First hit fetches the initial page.
	snapshot := h.feedService.Snapshot(key)
	if snapshot.Total == 0 && snapshot.HasMore {
		if err := h.feedService.LoadNextPage(c.Request.Context(), key); err != nil {
			utils.InternalErrorResponse(c, err.Error())
			return
		}
		snapshot = h.feedService.Snapshot(key)
	}

	utils.SuccessResponseWithMeta(c, gin.H{
		"assets": snapshot.Assets,
	}, gin.H{
		"total":        snapshot.Total,
		"pages_loaded": snapshot.PagesLoaded,
		"has_more":     snapshot.HasMore,
		"criteria":     snapshot.Criteria,
	})
}

// GET /assets/:id
func (h *AssetHandler) GetAsset(c *gin.Context) {
	assetID := c.Param("id")
	if assetID == "" {
		utils.BadRequestResponse(c, "Missing asset ID", nil)
		return
	}

	asset, err := h.feedService.Lookup(c.Request.Context(), feedKey(c), assetID)
	if err != nil {
		utils.NotFoundResponse(c, "asset")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"asset": asset,
	})
}

// POST /assets/refresh
//
// Explicitly pulls the next catalog page into the working set.
func (h *AssetHandler) Refresh(c *gin.Context) {
	key := feedKey(c)

	if err := h.feedService.LoadNextPage(c.Request.Context(), key); err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	snapshot := h.feedService.Snapshot(key)
	utils.SuccessResponseWithMeta(c, gin.H{
		"assets": snapshot.Assets,
	}, gin.H{
		"total":        snapshot.Total,
		"pages_loaded": snapshot.PagesLoaded,
		"has_more":     snapshot.HasMore,
	})
}

// GET /collections
func (h *AssetHandler) GetCollections(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"collections": models.Collections(),
	})
}
