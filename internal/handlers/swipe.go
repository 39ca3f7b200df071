// internal/handlers/swipe.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/storyboardapp/backend/internal/i18n"
	"github.com/storyboardapp/backend/internal/models"
	"github.com/storyboardapp/backend/internal/services"
	"github.com/storyboardapp/backend/internal/utils"
)

type SwipeHandler struct {
	swipeService *services.SwipeService
}

func NewSwipeHandler(swipeService *services.SwipeService) *SwipeHandler {
	return &SwipeHandler{
		swipeService: swipeService,
	}
}

type DecideRequest struct {
	AssetID string `json:"asset_id" validate:"required"`
	Kind    string `json:"kind" validate:"required,oneof=like skip"`
}

// GET /swipe/stack
func (h *SwipeHandler) GetStack(c *gin.Context) {
	wallet, exists := utils.GetWalletFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	view, err := h.swipeService.Stack(c.Request.Context(), wallet)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"stack": view,
	})
}

// POST /swipe/decide
func (h *SwipeHandler) Decide(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	wallet, exists := utils.GetWalletFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	view, err := h.swipeService.Decide(c.Request.Context(), wallet, req.AssetID, models.SwipeKind(req.Kind))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStackEmpty):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeySwipeStackEmpty), nil)
		case errors.Is(err, services.ErrNotCurrent):
			utils.ConflictResponse(c, err.Error())
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	messageKey := i18n.KeyAssetSkipped
	if req.Kind == string(models.SwipeKindLike) {
		messageKey = i18n.KeyAssetLiked
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, messageKey),
		"stack":   view,
	})
}

// POST /swipe/undo
func (h *SwipeHandler) Undo(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	wallet, exists := utils.GetWalletFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	view, err := h.swipeService.Undo(c.Request.Context(), wallet)
	if err != nil {
		if errors.Is(err, services.ErrNothingToUndo) {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeySwipeNothingToUndo), nil)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeySwipeUndone),
		"stack":   view,
	})
}

// POST /swipe/reset
func (h *SwipeHandler) Reset(c *gin.Context) {
	wallet, exists := utils.GetWalletFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	h.swipeService.Reset(wallet)

	view, err := h.swipeService.Stack(c.Request.Context(), wallet)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"stack": view,
	})
}

// GET /swipe/history
func (h *SwipeHandler) History(c *gin.Context) {
	wallet, exists := utils.GetWalletFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"history": h.swipeService.History(wallet),
	})
}
