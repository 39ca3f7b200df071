// internal/protocol/gateway.go
package protocol

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/storyboardapp/backend/internal/config"
)

// GatewayClient talks to the protocol SDK gateway, the signing sidecar that
// wraps the vendor SDK. All transaction building and signing happens there;
// this client only sequences calls and classifies failures.
type GatewayClient struct {
	baseURL    string
	httpClient *http.Client
	log        *logrus.Entry
}

func NewGatewayClient(cfg config.ProtocolConfig) *GatewayClient {
	return &GatewayClient{
		baseURL: cfg.GatewayURL,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		log: logrus.WithField("component", "protocol-gateway"),
	}
}

type gatewayEnvelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func (g *GatewayClient) call(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return Classify(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return Classify(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return Classify(err)
	}
	defer resp.Body.Close()

	var envelope gatewayEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return Classify(fmt.Errorf("malformed gateway response: %w", err))
	}

	if envelope.Error != "" {
		g.log.WithFields(logrus.Fields{
			"path":  path,
			"error": envelope.Error,
		}).Warn("Protocol gateway call failed")
		return Classify(errors.New(envelope.Error))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Classify(fmt.Errorf("gateway returned status %d", resp.StatusCode))
	}

	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return Classify(fmt.Errorf("malformed gateway payload: %w", err))
		}
	}

	return nil
}

func (g *GatewayClient) AttachLicenseTerms(ctx context.Context, req AttachRequest) (TxResult, error) {
	var result TxResult
	err := g.call(ctx, "/license/attach", req, &result)
	return result, err
}

func (g *GatewayClient) MintLicenseTokens(ctx context.Context, req MintRequest) (MintResult, error) {
	var result MintResult
	err := g.call(ctx, "/license/mint", req, &result)
	return result, err
}

func (g *GatewayClient) Register(ctx context.Context, req RegisterRequest) (RegisterResult, error) {
	var result RegisterResult
	err := g.call(ctx, "/ip/register", req, &result)
	return result, err
}

func (g *GatewayClient) RegisterDerivative(ctx context.Context, req DerivativeRequest) (TxResult, error) {
	var result TxResult
	err := g.call(ctx, "/ip/derivative", req, &result)
	return result, err
}

func (g *GatewayClient) RoyaltyVaultAddress(ctx context.Context, ipID string) (string, error) {
	var result struct {
		VaultAddress string `json:"vault_address"`
	}
	err := g.call(ctx, "/royalty/vault", map[string]string{"ip_id": ipID}, &result)
	return result.VaultAddress, err
}

func (g *GatewayClient) ClaimableRevenue(ctx context.Context, ipID, claimer, token string) (*big.Int, error) {
	var result struct {
		Amount string `json:"amount"`
	}
	err := g.call(ctx, "/royalty/claimable", map[string]string{
		"ip_id":   ipID,
		"claimer": claimer,
		"token":   token,
	}, &result)
	if err != nil {
		return nil, err
	}

	amount, ok := new(big.Int).SetString(result.Amount, 10)
	if !ok {
		return big.NewInt(0), nil
	}
	return amount, nil
}

func (g *GatewayClient) ClaimAllRevenue(ctx context.Context, req ClaimRequest) (ClaimResult, error) {
	var result ClaimResult
	err := g.call(ctx, "/royalty/claim-all", req, &result)
	return result, err
}
