// internal/handlers/license.go
package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/storyboardapp/backend/internal/i18n"
	"github.com/storyboardapp/backend/internal/models"
	"github.com/storyboardapp/backend/internal/services"
	"github.com/storyboardapp/backend/internal/stores"
	"github.com/storyboardapp/backend/internal/utils"
)

type LicenseHandler struct {
	licenseService *services.LicenseService
	feedService    *services.FeedService
	licenseStore   *stores.LicenseStore
	notifications  *services.NotificationService
}

func NewLicenseHandler(licenseService *services.LicenseService, feedService *services.FeedService, licenseStore *stores.LicenseStore, notifications *services.NotificationService) *LicenseHandler {
	return &LicenseHandler{
		licenseService: licenseService,
		feedService:    feedService,
		licenseStore:   licenseStore,
		notifications:  notifications,
	}
}

type MintLicenseRequest struct {
	AssetID string `json:"asset_id" validate:"required"`
	Kind    string `json:"kind" validate:"required,oneof=personal commercial remix"`
}

// POST /licenses/mint
//
// Runs the acquisition sequence and, on success, appends the License record
// and posts a single success notification. Failures notify once with the
// classified reason.
func (h *LicenseHandler) Mint(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	wallet, exists := utils.GetWalletFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req MintLicenseRequest
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

	kind := models.LicenseKind(req.Kind)
	offer, hasOffer := asset.Offer(kind)
	if !hasOffer {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyLicenseOfferInvalid), nil)
		return
	}

	// Detached from the request context: a client that navigates away mid
	// mint must not abort a transaction that is already on its way.
	outcome, err := h.licenseService.Acquire(context.WithoutCancel(c.Request.Context()), wallet, asset, kind)
	if err != nil {
		h.notifications.Error(wallet, i18n.T(lang, i18n.KeyLicenseFailed), err.Error())
		protocolErrorResponse(c, err)
		return
	}

	license := &models.License{
		LicenseID:     outcome.LicenseID,
		WalletAddress: wallet,
		AssetID:       asset.ID,
		Asset:         models.AssetBlob(asset),
		LicenseKind:   kind,
		Price:         offer.Price,
		Currency:      offer.Currency,
		TxHash:        outcome.TxHash,
		LicensedAt:    time.Now(),
	}
	if err := h.licenseStore.Record(license); err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	h.notifications.Success(wallet, i18n.T(lang, i18n.KeyLicenseAcquired), asset.Title, models.JSONB{
		"asset_id":   asset.ID,
		"license_id": outcome.LicenseID,
		"tx_hash":    outcome.TxHash,
	})

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyLicenseAcquired),
		"license": license,
	})
}

// GET /licenses
func (h *LicenseHandler) GetLicenses(c *gin.Context) {
	wallet, exists := utils.GetWalletFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	params.Sort = c.DefaultQuery("sort", "licensed_at")

	licenses, total, err := h.licenseStore.ListPage(wallet, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(gin.H{
		"licenses": licenses,
	}, total, params))
}

// GET /licenses/asset/:assetID
func (h *LicenseHandler) GetLicensesForAsset(c *gin.Context) {
	wallet, exists := utils.GetWalletFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	assetID := c.Param("assetID")
	if assetID == "" {
		utils.BadRequestResponse(c, "Missing asset ID", nil)
		return
	}

	licenses, err := h.licenseStore.ListByAsset(wallet, assetID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"licenses": licenses,
	})
}
