// internal/services/auth_service.go
package services

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/storyboardapp/backend/internal/config"
	"github.com/storyboardapp/backend/internal/utils"
	"github.com/storyboardapp/backend/internal/wallet"
)

// AuthService exchanges a wallet signature for a session token. The wallet
// proves control of the address by signing a connect message; no accounts
// or passwords exist.
type AuthService struct {
	wallets  wallet.Connector
	tokenTTL int
	log      *logrus.Entry
}

func NewAuthService(wallets wallet.Connector, cfg *config.Config) *AuthService {
	return &AuthService{
		wallets:  wallets,
		tokenTTL: cfg.JWT.AccessTokenTTL,
		log:      logrus.WithField("component", "auth"),
	}
}

// Connect verifies the signed message and issues a JWT for the address. The
// message must embed the address it claims to be from, so a signature for
// one address cannot be replayed for another.
func (s *AuthService) Connect(address, message, signature string, chainID int64) (string, wallet.State, error) {
	if !common.IsHexAddress(address) {
		return "", wallet.State{}, fmt.Errorf("invalid wallet address")
	}

	if !strings.Contains(strings.ToLower(message), strings.ToLower(address)) {
		return "", wallet.State{}, fmt.Errorf("message does not reference the connecting address")
	}

	if !utils.VerifySignature(address, message, signature) {
		return "", wallet.State{}, fmt.Errorf("signature verification failed")
	}

	token, err := utils.GenerateJWT(address, chainID, s.tokenTTL)
	if err != nil {
		return "", wallet.State{}, fmt.Errorf("failed to issue token: %w", err)
	}

	state := wallet.State{Address: address, ChainID: chainID, Connected: true}
	s.wallets.Report(state)

	s.log.WithFields(logrus.Fields{
		"address": address,
		"chain":   chainID,
	}).Info("Wallet connected")

	return token, state, nil
}

// Disconnect drops the wallet's session state. Issued tokens simply expire.
func (s *AuthService) Disconnect(address string) {
	s.wallets.Disconnect(address)
}
