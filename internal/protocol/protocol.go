// internal/protocol/protocol.go
package protocol

import (
	"context"
	"math/big"

	"github.com/storyboardapp/backend/internal/models"
)

// Default protocol license terms ids for the common license kinds:
// non-commercial social remixing, commercial use, commercial remix.
const (
	TermsNonCommercialRemix = "1"
	TermsCommercialUse      = "2"
	TermsCommercialRemix    = "3"
)

// LicenseTermsID maps an app license kind to the protocol terms id minted
// against it.
func LicenseTermsID(kind models.LicenseKind) string {
	switch kind {
	case models.LicenseKindCommercial:
		return TermsCommercialUse
	case models.LicenseKindRemix:
		return TermsCommercialRemix
	default:
		return TermsNonCommercialRemix
	}
}

type AttachRequest struct {
	IPID           string `json:"ip_id"`
	LicenseTermsID string `json:"license_terms_id"`
}

type MintRequest struct {
	LicensorIPID   string `json:"licensor_ip_id"`
	LicenseTermsID string `json:"license_terms_id"`
	Receiver       string `json:"receiver"`
	Amount         int    `json:"amount"`
}

type RegisterRequest struct {
	NFTContract string `json:"nft_contract"`
	TokenID     string `json:"token_id"`
	MetadataURI string `json:"metadata_uri,omitempty"`
	Owner       string `json:"owner"`
}

type DerivativeRequest struct {
	ChildIPID      string   `json:"child_ip_id"`
	ParentIPIDs    []string `json:"parent_ip_ids"`
	LicenseTermsID string   `json:"license_terms_id"`
}

type ClaimRequest struct {
	AncestorIPID   string   `json:"ancestor_ip_id"`
	Claimer        string   `json:"claimer"`
	CurrencyTokens []string `json:"currency_tokens"`
}

type TxResult struct {
	TxHash string `json:"tx_hash"`
}

type MintResult struct {
	TxHash          string   `json:"tx_hash"`
	LicenseTokenIDs []string `json:"license_token_ids"`
}

type RegisterResult struct {
	IPID   string `json:"ip_id"`
	TxHash string `json:"tx_hash"`
}

type ClaimResult struct {
	TxHashes       []string `json:"tx_hashes"`
	ClaimedAmounts []string `json:"claimed_amounts"`
}

// Client is the boundary to the external protocol SDK. Every call is a
// suspension point; each returns a transaction hash on success and a
// classified *Error on failure.
type Client interface {
	AttachLicenseTerms(ctx context.Context, req AttachRequest) (TxResult, error)
	MintLicenseTokens(ctx context.Context, req MintRequest) (MintResult, error)
	Register(ctx context.Context, req RegisterRequest) (RegisterResult, error)
	RegisterDerivative(ctx context.Context, req DerivativeRequest) (TxResult, error)
	RoyaltyVaultAddress(ctx context.Context, ipID string) (string, error)
	ClaimableRevenue(ctx context.Context, ipID, claimer, token string) (*big.Int, error)
	ClaimAllRevenue(ctx context.Context, req ClaimRequest) (ClaimResult, error)
}

// ConfirmationWaiter blocks until a submitted transaction is confirmed, the
// bounded timeout elapses, or the context is cancelled.
type ConfirmationWaiter interface {
	WaitForConfirmation(ctx context.Context, txHash string) error
}
