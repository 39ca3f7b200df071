// internal/handlers/common.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storyboardapp/backend/internal/i18n"
	"github.com/storyboardapp/backend/internal/protocol"
	"github.com/storyboardapp/backend/internal/utils"
)

// feedKey identifies the caller's feed session. Authenticated requests use
// the wallet address; anonymous browsing gets a per-client session keyed by
// source IP.
func feedKey(c *gin.Context) string {
	if wallet, ok := utils.GetWalletFromContext(c); ok {
		return wallet
	}
	return "anon:" + c.ClientIP()
}

// protocolErrorResponse maps a classified protocol error onto the API
// envelope. The original upstream message rides along as the error detail
// so nothing is lost when classification misses.
func protocolErrorResponse(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	status := http.StatusInternalServerError
	code := "PROTOCOL_ERROR"
	key := ""

	switch protocol.KindOf(err) {
	case protocol.KindWalletNotConnected:
		status, code, key = http.StatusConflict, "WALLET_NOT_CONNECTED", i18n.KeyWalletNotConnected
	case protocol.KindWrongNetwork:
		status, code, key = http.StatusConflict, "WRONG_NETWORK", i18n.KeyWalletWrongNetwork
	case protocol.KindInvalidParams:
		status, code = http.StatusBadRequest, "INVALID_PARAMS"
	case protocol.KindInsufficientBalance:
		status, code, key = http.StatusPaymentRequired, "INSUFFICIENT_BALANCE", i18n.KeyLicenseInsufficient
	case protocol.KindUserRejected:
		status, code, key = http.StatusBadRequest, "USER_REJECTED", i18n.KeyLicenseUserRejected
	case protocol.KindAlreadyRegistered:
		status, code, key = http.StatusConflict, "ALREADY_REGISTERED", i18n.KeyRemixAlreadyRegistered
	case protocol.KindNotOwner:
		status, code, key = http.StatusForbidden, "NOT_OWNER", i18n.KeyRemixNotOwner
	case protocol.KindPermissionDenied:
		status, code = http.StatusForbidden, "PERMISSION_DENIED"
	case protocol.KindNothingToClaim:
		status, code, key = http.StatusBadRequest, "NOTHING_TO_CLAIM", i18n.KeyRoyaltyNothingToClaim
	case protocol.KindNotTokenHolder:
		status, code, key = http.StatusForbidden, "NOT_TOKEN_HOLDER", i18n.KeyRoyaltyNotHolder
	}

	message := err.Error()
	if key != "" {
		message = i18n.T(lang, key)
	}

	utils.ErrorResponse(c, status, code, message, err.Error())
}
