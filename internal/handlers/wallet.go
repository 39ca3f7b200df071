// internal/handlers/wallet.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/storyboardapp/backend/internal/config"
	"github.com/storyboardapp/backend/internal/i18n"
	"github.com/storyboardapp/backend/internal/utils"
	"github.com/storyboardapp/backend/internal/wallet"
)

type WalletHandler struct {
	wallets wallet.Connector
	chain   config.ChainConfig
}

func NewWalletHandler(wallets wallet.Connector, chain config.ChainConfig) *WalletHandler {
	return &WalletHandler{
		wallets: wallets,
		chain:   chain,
	}
}

type WalletStateRequest struct {
	ChainID   int64 `json:"chain_id" validate:"required"`
	Connected bool  `json:"connected"`
}

// PUT /wallet/state
//
// The client reports its connector state after every account or network
// change; this is what settles pending switch directives.
func (h *WalletHandler) UpdateState(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	address, exists := utils.GetWalletFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req WalletStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	h.wallets.Report(wallet.State{
		Address:   address,
		ChainID:   req.ChainID,
		Connected: req.Connected,
	})

	state, _ := h.wallets.State(address)
	pending, hasPending := h.wallets.PendingSwitch(address)

	response := gin.H{"wallet": state}
	if hasPending {
		response["pending_switch"] = pending
	}
	utils.SuccessResponse(c, response)
}

// GET /wallet/state
func (h *WalletHandler) GetState(c *gin.Context) {
	address, exists := utils.GetWalletFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	state, connected := h.wallets.State(address)
	if !connected {
		state = wallet.State{Address: address}
	}

	response := gin.H{"wallet": state}
	if pending, hasPending := h.wallets.PendingSwitch(address); hasPending {
		response["pending_switch"] = pending
	}
	utils.SuccessResponse(c, response)
}

// POST /wallet/switch-chain
//
// Returns the chain parameters the wallet must switch to. The switch itself
// happens in the client's wallet; the follow-up state report confirms it.
func (h *WalletHandler) SwitchChain(c *gin.Context) {
	_, exists := utils.GetWalletFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"chain": gin.H{
			"chain_id":        h.chain.ChainID,
			"name":            h.chain.Name,
			"rpc_url":         h.chain.RPCURL,
			"explorer_url":    h.chain.ExplorerURL,
			"currency_symbol": h.chain.CurrencySymbol,
		},
	})
}
