// internal/handlers/royalty.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storyboardapp/backend/internal/i18n"
	"github.com/storyboardapp/backend/internal/models"
	"github.com/storyboardapp/backend/internal/services"
	"github.com/storyboardapp/backend/internal/stores"
	"github.com/storyboardapp/backend/internal/utils"
)

type RoyaltyHandler struct {
	royaltyService *services.RoyaltyService
	feedService    *services.FeedService
	notifications  *services.NotificationService
}

func NewRoyaltyHandler(royaltyService *services.RoyaltyService, feedService *services.FeedService, notifications *services.NotificationService) *RoyaltyHandler {
	return &RoyaltyHandler{
		royaltyService: royaltyService,
		feedService:    feedService,
		notifications:  notifications,
	}
}

type AcquireSharesRequest struct {
	AssetID      string  `json:"asset_id" validate:"required"`
	SharePercent float64 `json:"share_percent" validate:"required,min=1,max=30"`
}

// GET /royalty/holdings
func (h *RoyaltyHandler) GetHoldings(c *gin.Context) {
	wallet, exists := utils.GetWalletFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	holdings, err := h.royaltyService.Holdings(wallet)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponseWithMeta(c, gin.H{
		"holdings": holdings,
	}, gin.H{
		"total": len(holdings),
	})
}

// POST /royalty/holdings
func (h *RoyaltyHandler) AcquireShares(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	wallet, exists := utils.GetWalletFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req AcquireSharesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	asset, err := h.feedService.Lookup(c.Request.Context(), wallet, req.AssetID)
	if err != nil {
		utils.NotFoundResponse(c, "asset")
		return
	}

	holding, err := h.royaltyService.Acquire(c.Request.Context(), wallet, asset, req.SharePercent)
	if err != nil {
		protocolErrorResponse(c, err)
		return
	}

	h.notifications.Success(wallet, i18n.T(lang, i18n.KeyRoyaltyShareAcquired), asset.Title, models.JSONB{
		"asset_id":      asset.ID,
		"share_percent": holding.SharePercent,
		"token_count":   holding.TokenCount,
	})

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyRoyaltyShareAcquired),
		"holding": holding,
	})
}

// GET /royalty/holdings/:assetID/claimable
func (h *RoyaltyHandler) GetClaimable(c *gin.Context) {
	wallet, exists := utils.GetWalletFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	assetID := c.Param("assetID")
	claimable, err := h.royaltyService.Claimable(c.Request.Context(), wallet, assetID)
	if err != nil {
		if stores.IsNotFound(err) {
			utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", i18n.T(utils.GetLangFromContext(c), i18n.KeyRoyaltyHoldingMissing), nil)
			return
		}
		protocolErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"asset_id":  assetID,
		"claimable": claimable.String(),
	})
}

// POST /royalty/holdings/:assetID/claim
func (h *RoyaltyHandler) Claim(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	wallet, exists := utils.GetWalletFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	assetID := c.Param("assetID")
	outcome, err := h.royaltyService.Claim(context.WithoutCancel(c.Request.Context()), wallet, assetID)
	if err != nil {
		if stores.IsNotFound(err) {
			utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", i18n.T(lang, i18n.KeyRoyaltyHoldingMissing), nil)
			return
		}
		protocolErrorResponse(c, err)
		return
	}

	h.notifications.Success(wallet, i18n.T(lang, i18n.KeyRoyaltyClaimed), outcome.ClaimedAmount, models.JSONB{
		"asset_id": assetID,
		"amount":   outcome.ClaimedAmount,
	})

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyRoyaltyClaimed),
		"claim":   outcome,
	})
}
