// internal/services/remix_service.go
package services

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/storyboardapp/backend/internal/config"
	"github.com/storyboardapp/backend/internal/protocol"
	"github.com/storyboardapp/backend/internal/wallet"
)

// RemixOutcome identifies the derivative created by a completed remix flow.
type RemixOutcome struct {
	IPID           string `json:"ip_id"`
	RegisterTxHash string `json:"register_tx_hash"`
	LinkTxHash     string `json:"link_tx_hash"`
}

// RemixService registers a caller-owned NFT as an IP asset and links it as
// a derivative of the parent. The two steps run strictly in order; the link
// never starts before the registration is confirmed.
type RemixService struct {
	protocol  protocol.Client
	confirmer protocol.ConfirmationWaiter
	wallets   wallet.Connector
	chainID   int64
	log       *logrus.Entry
}

func NewRemixService(client protocol.Client, confirmer protocol.ConfirmationWaiter, wallets wallet.Connector, chain config.ChainConfig) *RemixService {
	return &RemixService{
		protocol:  client,
		confirmer: confirmer,
		wallets:   wallets,
		chainID:   chain.ChainID,
		log:       logrus.WithField("component", "remix"),
	}
}

// CreateDerivative runs the remix sequence. parentIPID is the on-chain id
// of the asset being remixed; nftContract and tokenID identify the caller's
// derivative work.
func (s *RemixService) CreateDerivative(ctx context.Context, walletAddress, parentIPID, nftContract, tokenID, metadataURI string) (RemixOutcome, error) {
	if !common.IsHexAddress(nftContract) {
		return RemixOutcome{}, protocol.NewError(protocol.KindInvalidParams,
			"invalid NFT contract address")
	}
	if parentIPID == "" {
		return RemixOutcome{}, protocol.NewError(protocol.KindInvalidParams,
			"parent asset has no on-chain identifier")
	}

	if err := s.wallets.EnsureChain(ctx, walletAddress, s.chainID); err != nil {
		return RemixOutcome{}, err
	}

	log := s.log.WithFields(logrus.Fields{
		"wallet":   walletAddress,
		"parent":   parentIPID,
		"contract": nftContract,
		"token_id": tokenID,
	})

	registered, err := s.protocol.Register(ctx, protocol.RegisterRequest{
		NFTContract: nftContract,
		TokenID:     tokenID,
		MetadataURI: metadataURI,
		Owner:       walletAddress,
	})
	if err != nil {
		return RemixOutcome{}, err
	}

	if err := s.confirmer.WaitForConfirmation(ctx, registered.TxHash); err != nil {
		return RemixOutcome{}, err
	}

	link, err := s.protocol.RegisterDerivative(ctx, protocol.DerivativeRequest{
		ChildIPID:      registered.IPID,
		ParentIPIDs:    []string{parentIPID},
		LicenseTermsID: protocol.TermsCommercialRemix,
	})
	if err != nil {
		return RemixOutcome{}, err
	}

	if err := s.confirmer.WaitForConfirmation(ctx, link.TxHash); err != nil {
		return RemixOutcome{}, err
	}

	log.WithField("ip_id", registered.IPID).Info("Derivative registered")

	return RemixOutcome{
		IPID:           registered.IPID,
		RegisterTxHash: registered.TxHash,
		LinkTxHash:     link.TxHash,
	}, nil
}
