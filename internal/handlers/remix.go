// internal/handlers/remix.go
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/storyboardapp/backend/internal/i18n"
	"github.com/storyboardapp/backend/internal/models"
	"github.com/storyboardapp/backend/internal/services"
	"github.com/storyboardapp/backend/internal/utils"
)

type RemixHandler struct {
	remixService  *services.RemixService
	feedService   *services.FeedService
	notifications *services.NotificationService
}

func NewRemixHandler(remixService *services.RemixService, feedService *services.FeedService, notifications *services.NotificationService) *RemixHandler {
	return &RemixHandler{
		remixService:  remixService,
		feedService:   feedService,
		notifications: notifications,
	}
}

type CreateRemixRequest struct {
	ParentAssetID string `json:"parent_asset_id" validate:"required"`
	NFTContract   string `json:"nft_contract" validate:"required,eth_addr"`
	TokenID       string `json:"token_id" validate:"required,token_id"`
	MetadataURI   string `json:"metadata_uri" validate:"omitempty,uri"`
}

// POST /remix
func (h *RemixHandler) Create(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	wallet, exists := utils.GetWalletFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req CreateRemixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	parent, err := h.feedService.Lookup(c.Request.Context(), wallet, req.ParentAssetID)
	if err != nil {
		utils.NotFoundResponse(c, "asset")
		return
	}

	// Detached from the request context so an abandoned request still runs
	// the register+link sequence to completion.
	outcome, err := h.remixService.CreateDerivative(context.WithoutCancel(c.Request.Context()), wallet, parent.ProtocolID, req.NFTContract, req.TokenID, req.MetadataURI)
	if err != nil {
		h.notifications.Error(wallet, i18n.T(lang, i18n.KeyRemixFailed), err.Error())
		protocolErrorResponse(c, err)
		return
	}

	h.notifications.Success(wallet, i18n.T(lang, i18n.KeyRemixCreated), parent.Title, models.JSONB{
		"parent_asset_id": parent.ID,
		"ip_id":           outcome.IPID,
		"tx_hash":         outcome.LinkTxHash,
	})

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyRemixCreated),
		"remix":   outcome,
	})
}
