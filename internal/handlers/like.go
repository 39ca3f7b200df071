// internal/handlers/like.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/storyboardapp/backend/internal/i18n"
	"github.com/storyboardapp/backend/internal/stores"
	"github.com/storyboardapp/backend/internal/utils"
)

type LikeHandler struct {
	likedStore *stores.LikedStore
}

func NewLikeHandler(likedStore *stores.LikedStore) *LikeHandler {
	return &LikeHandler{
		likedStore: likedStore,
	}
}

// GET /likes
func (h *LikeHandler) GetLikes(c *gin.Context) {
	wallet, exists := utils.GetWalletFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	params.Sort = c.DefaultQuery("sort", "liked_at")

	likes, total, err := h.likedStore.ListPage(wallet, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(gin.H{
		"likes": likes,
	}, total, params))
}

// DELETE /likes/:assetID
func (h *LikeHandler) RemoveLike(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
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

	if err := h.likedStore.Remove(wallet, assetID); err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAssetUnliked),
	})
}
