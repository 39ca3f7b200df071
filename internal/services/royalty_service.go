// internal/services/royalty_service.go
package services

import (
	"context"
	"math/big"

	"github.com/sirupsen/logrus"

	"github.com/storyboardapp/backend/internal/models"
	"github.com/storyboardapp/backend/internal/protocol"
	"github.com/storyboardapp/backend/internal/stores"
)

// WIPTokenAddress is the wrapped native token revenue is denominated in.
const WIPTokenAddress = "0x1514000000000000000000000000000000000000"

// ClaimOutcome reports one completed revenue claim.
type ClaimOutcome struct {
	TxHashes      []string `json:"tx_hashes"`
	ClaimedAmount string   `json:"claimed_amount"`
}

// RoyaltyService manages fractional revenue-share positions: acquiring
// shares (merging into one holding per asset), resolving the asset's
// royalty vault, and claiming accrued revenue.
type RoyaltyService struct {
	protocol protocol.Client
	holdings *stores.RoyaltyStore
	log      *logrus.Entry
}

func NewRoyaltyService(client protocol.Client, holdings *stores.RoyaltyStore) *RoyaltyService {
	return &RoyaltyService{
		protocol: client,
		holdings: holdings,
		log:      logrus.WithField("component", "royalty"),
	}
}

// Acquire records sharePercent of the asset for the wallet. Shares are
// bounded to 1-30 percent per acquisition; repeated acquisitions of the
// same asset merge into a single holding. The vault address is resolved
// best-effort and cached on the holding.
func (s *RoyaltyService) Acquire(ctx context.Context, walletAddress string, asset models.Asset, sharePercent float64) (*models.RoyaltyHolding, error) {
	if sharePercent < 1 || sharePercent > 30 {
		return nil, protocol.NewError(protocol.KindInvalidParams,
			"share must be between 1 and 30 percent")
	}

	vaultAddress := ""
	if asset.ProtocolID != "" {
		addr, err := s.protocol.RoyaltyVaultAddress(ctx, asset.ProtocolID)
		if err != nil {
			s.log.WithError(err).WithField("asset", asset.ID).Warn("Vault lookup failed")
		} else {
			vaultAddress = addr
		}
	}

	return s.holdings.Acquire(walletAddress, asset, sharePercent, vaultAddress)
}

// Holdings returns the wallet's positions, most recent first.
func (s *RoyaltyService) Holdings(walletAddress string) ([]models.RoyaltyHolding, error) {
	return s.holdings.List(walletAddress)
}

// Claimable returns the revenue currently claimable against one holding,
// in the smallest unit of the revenue token.
func (s *RoyaltyService) Claimable(ctx context.Context, walletAddress, assetID string) (*big.Int, error) {
	holding, err := s.holdings.Get(walletAddress, assetID)
	if err != nil {
		return nil, err
	}

	ipID := holding.Asset.Asset().ProtocolID
	if ipID == "" {
		return big.NewInt(0), nil
	}

	return s.protocol.ClaimableRevenue(ctx, ipID, walletAddress, WIPTokenAddress)
}

// Claim collects all claimable revenue for one holding and records the
// claimed total on it.
func (s *RoyaltyService) Claim(ctx context.Context, walletAddress, assetID string) (ClaimOutcome, error) {
	holding, err := s.holdings.Get(walletAddress, assetID)
	if err != nil {
		return ClaimOutcome{}, err
	}

	ipID := holding.Asset.Asset().ProtocolID
	if ipID == "" {
		return ClaimOutcome{}, protocol.NewError(protocol.KindInvalidParams,
			"asset has no on-chain identifier")
	}

	result, err := s.protocol.ClaimAllRevenue(ctx, protocol.ClaimRequest{
		AncestorIPID:   ipID,
		Claimer:        walletAddress,
		CurrencyTokens: []string{WIPTokenAddress},
	})
	if err != nil {
		return ClaimOutcome{}, err
	}

	total := big.NewInt(0)
	for _, amount := range result.ClaimedAmounts {
		if v, ok := new(big.Int).SetString(amount, 10); ok {
			total.Add(total, v)
		}
	}

	if total.Sign() == 0 {
		return ClaimOutcome{}, protocol.NewError(protocol.KindNothingToClaim,
			"no claimable revenue")
	}

	if err := s.holdings.RecordClaim(walletAddress, assetID, total.String()); err != nil {
		return ClaimOutcome{}, err
	}

	s.log.WithFields(logrus.Fields{
		"wallet": walletAddress,
		"asset":  assetID,
		"amount": total.String(),
	}).Info("Revenue claimed")

	return ClaimOutcome{TxHashes: result.TxHashes, ClaimedAmount: total.String()}, nil
}
