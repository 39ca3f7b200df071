// internal/protocol/confirm.go
package protocol

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/sirupsen/logrus"

	"github.com/storyboardapp/backend/internal/config"
)

const (
	initialPollInterval = time.Second
	maxPollInterval     = 8 * time.Second
)

// Confirmer polls the chain for a transaction receipt with exponential
// backoff and a bounded timeout. When no RPC endpoint is reachable it falls
// back to a fixed settle delay, which matches what the web client did
// before receipt polling existed.
type Confirmer struct {
	client      *ethclient.Client
	timeout     time.Duration
	settleDelay time.Duration
	log         *logrus.Entry
}

func NewConfirmer(chain config.ChainConfig, proto config.ProtocolConfig) *Confirmer {
	c := &Confirmer{
		timeout:     time.Duration(proto.ConfirmTimeout) * time.Second,
		settleDelay: time.Duration(proto.SettleDelay) * time.Second,
		log:         logrus.WithField("component", "confirmer"),
	}

	if chain.RPCURL != "" {
		client, err := ethclient.Dial(chain.RPCURL)
		if err != nil {
			c.log.WithError(err).Warn("Failed to dial chain RPC, falling back to fixed settle delay")
		} else {
			c.client = client
		}
	}

	return c
}

// WaitForConfirmation blocks until the transaction has a mined receipt, the
// timeout elapses, or ctx is cancelled.
func (c *Confirmer) WaitForConfirmation(ctx context.Context, txHash string) error {
	if c.client == nil {
		select {
		case <-time.After(c.settleDelay):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	hash := common.HexToHash(txHash)
	interval := initialPollInterval

	for {
		receipt, err := c.client.TransactionReceipt(ctx, hash)
		if err == nil && receipt != nil {
			if receipt.Status == 0 {
				return NewError(KindGeneric, fmt.Sprintf("transaction %s reverted", txHash))
			}
			return nil
		}

		if err != nil {
			c.log.WithField("tx", txHash).Debugf("Receipt not available yet: %v", err)
		}

		select {
		case <-time.After(interval):
		case <-ctx.Done():
			return NewError(KindGeneric, fmt.Sprintf("timed out waiting for confirmation of %s", txHash))
		}

		if interval < maxPollInterval {
			interval *= 2
		}
	}
}
