// internal/handlers/auth.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/storyboardapp/backend/internal/i18n"
	"github.com/storyboardapp/backend/internal/services"
	"github.com/storyboardapp/backend/internal/utils"
	"github.com/storyboardapp/backend/internal/wallet"
)

type AuthHandler struct {
	authService *services.AuthService
	wallets     wallet.Connector
}

func NewAuthHandler(authService *services.AuthService, wallets wallet.Connector) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		wallets:     wallets,
	}
}

type ConnectRequest struct {
	Address   string `json:"address" validate:"required,eth_addr"`
	Message   string `json:"message" validate:"required"`
	Signature string `json:"signature" validate:"required"`
	ChainID   int64  `json:"chain_id" validate:"required"`
}

// POST /auth/connect
func (h *AuthHandler) Connect(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	token, state, err := h.authService.Connect(req.Address, req.Message, req.Signature, req.ChainID)
	if err != nil {
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidSignature))
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAuthConnectSuccess),
		"token":   token,
		"wallet":  state,
	})
}

// POST /auth/disconnect
func (h *AuthHandler) Disconnect(c *gin.Context) {
	address, exists := utils.GetWalletFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	h.authService.Disconnect(address)
	utils.SuccessResponse(c, gin.H{"disconnected": true})
}

// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	address, exists := utils.GetWalletFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	state, connected := h.wallets.State(address)
	if !connected {
		state = wallet.State{Address: address}
	}

	utils.SuccessResponse(c, gin.H{
		"wallet": state,
	})
}
