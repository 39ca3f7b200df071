// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"
	KeyWarning = "warning"
	KeyInfo    = "info"

	// Authentication / wallet
	KeyAuthRequired         = "auth.required"
	KeyAuthInvalidToken     = "auth.invalid_token"
	KeyAuthTokenExpired     = "auth.token_expired"
	KeyAuthInvalidSignature = "auth.invalid_signature"
	KeyAuthConnectSuccess   = "auth.connect_success"
	KeyWalletNotConnected   = "wallet.not_connected"
	KeyWalletWrongNetwork   = "wallet.wrong_network"
	KeyWalletSwitchFailed   = "wallet.switch_failed"

	// Assets / feed
	KeyAssetNotFound   = "asset.not_found"
	KeyAssetFeedEmpty  = "asset.feed_empty"
	KeyAssetLiked      = "asset.liked"
	KeyAssetSkipped    = "asset.skipped"
	KeyAssetUnliked    = "asset.unliked"
	KeySwipeNothingToUndo = "swipe.nothing_to_undo"
	KeySwipeUndone        = "swipe.undone"
	KeySwipeStackEmpty    = "swipe.stack_empty"

	// Licenses
	KeyLicenseAcquired      = "license.acquired"
	KeyLicenseFailed        = "license.failed"
	KeyLicensePending       = "license.pending"
	KeyLicenseNotFound      = "license.not_found"
	KeyLicenseOfferInvalid  = "license.offer_invalid"
	KeyLicenseInsufficient  = "license.insufficient_balance"
	KeyLicenseUserRejected  = "license.user_rejected"

	// Remix
	KeyRemixCreated           = "remix.created"
	KeyRemixFailed            = "remix.failed"
	KeyRemixAlreadyRegistered = "remix.already_registered"
	KeyRemixNotOwner          = "remix.not_owner"

	// Royalty
	KeyRoyaltyShareAcquired = "royalty.share_acquired"
	KeyRoyaltyClaimed       = "royalty.claimed"
	KeyRoyaltyNothingToClaim = "royalty.nothing_to_claim"
	KeyRoyaltyNotHolder      = "royalty.not_holder"
	KeyRoyaltyHoldingMissing = "royalty.holding_missing"

	// Validation
	KeyValidationInvalid = "validation.invalid"
	KeyValidationAddress = "validation.address"
	KeyValidationTokenID = "validation.token_id"
)
