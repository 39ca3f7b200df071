// internal/services/license_service.go
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/storyboardapp/backend/internal/config"
	"github.com/storyboardapp/backend/internal/models"
	"github.com/storyboardapp/backend/internal/protocol"
	"github.com/storyboardapp/backend/internal/wallet"
)

// MintOutcome is what a successful acquisition returns to the caller. The
// license id comes from the minted token when the protocol reports one and
// falls back to a time-based identifier when it does not.
type MintOutcome struct {
	LicenseID string `json:"license_id"`
	TxHash    string `json:"tx_hash"`
}

// LicenseService runs the multi-step license acquisition sequence against
// the protocol: chain check, attach terms, confirm, mint, confirm. Steps
// are strictly sequential; independent acquisitions for different assets
// run without mutual ordering. The service performs the on-chain calls only;
// persisting the resulting License record is the caller's job.
type LicenseService struct {
	protocol  protocol.Client
	confirmer protocol.ConfirmationWaiter
	wallets   wallet.Connector
	chainID   int64

	mtx     sync.Mutex
	pending map[string]struct{}
	log     *logrus.Entry
}

func NewLicenseService(client protocol.Client, confirmer protocol.ConfirmationWaiter, wallets wallet.Connector, chain config.ChainConfig) *LicenseService {
	return &LicenseService{
		protocol:  client,
		confirmer: confirmer,
		wallets:   wallets,
		chainID:   chain.ChainID,
		pending:   make(map[string]struct{}),
		log:       logrus.WithField("component", "license"),
	}
}

func pendingKey(walletAddress, assetID string) string {
	return walletAddress + "/" + assetID
}

// begin marks an acquisition in flight. A second acquisition of the same
// asset by the same wallet while one is pending is rejected rather than
// queued.
func (s *LicenseService) begin(walletAddress, assetID string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	key := pendingKey(walletAddress, assetID)
	if _, busy := s.pending[key]; busy {
		return protocol.NewError(protocol.KindInvalidParams,
			fmt.Sprintf("an operation for asset %s is already in progress", assetID))
	}
	s.pending[key] = struct{}{}
	return nil
}

func (s *LicenseService) end(walletAddress, assetID string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	delete(s.pending, pendingKey(walletAddress, assetID))
}

// Acquire attaches the chosen license terms to the asset and mints one
// license token to the wallet. An attach that fails because the terms are
// already attached counts as success and the sequence proceeds to mint.
func (s *LicenseService) Acquire(ctx context.Context, walletAddress string, asset models.Asset, kind models.LicenseKind) (MintOutcome, error) {
	ipID := asset.ProtocolID
	if ipID == "" {
		return MintOutcome{}, protocol.NewError(protocol.KindInvalidParams,
			"asset has no on-chain identifier")
	}

	if err := s.begin(walletAddress, asset.ID); err != nil {
		return MintOutcome{}, err
	}
	defer s.end(walletAddress, asset.ID)

	if err := s.wallets.EnsureChain(ctx, walletAddress, s.chainID); err != nil {
		return MintOutcome{}, err
	}

	termsID := protocol.LicenseTermsID(kind)
	log := s.log.WithFields(logrus.Fields{
		"wallet": walletAddress,
		"asset":  asset.ID,
		"ip_id":  ipID,
		"terms":  termsID,
	})

	attach, err := s.protocol.AttachLicenseTerms(ctx, protocol.AttachRequest{
		IPID:           ipID,
		LicenseTermsID: termsID,
	})
	switch {
	case err == nil:
		if err := s.confirmer.WaitForConfirmation(ctx, attach.TxHash); err != nil {
			return MintOutcome{}, err
		}
	case protocol.Classify(err).Kind == protocol.KindAlreadyAttached:
		log.Info("License terms already attached, proceeding to mint")
	default:
		return MintOutcome{}, err
	}

	mint, err := s.protocol.MintLicenseTokens(ctx, protocol.MintRequest{
		LicensorIPID:   ipID,
		LicenseTermsID: termsID,
		Receiver:       walletAddress,
		Amount:         1,
	})
	if err != nil {
		return MintOutcome{}, err
	}

	if err := s.confirmer.WaitForConfirmation(ctx, mint.TxHash); err != nil {
		return MintOutcome{}, err
	}

	licenseID := fmt.Sprintf("license-%d", time.Now().UnixMilli())
	if len(mint.LicenseTokenIDs) > 0 {
		licenseID = mint.LicenseTokenIDs[0]
	}

	log.WithFields(logrus.Fields{
		"tx_hash":    mint.TxHash,
		"license_id": licenseID,
	}).Info("License minted")

	return MintOutcome{LicenseID: licenseID, TxHash: mint.TxHash}, nil
}
