package chain

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/ligun0805/transfer-loop/internal/erc20"
)

// Client is the network connection shared by every loop iteration.
type Client struct {
	*ethclient.Client
}

// newHTTPClient keeps connections alive between iterations.
func newHTTPClient() *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        16,
		MaxIdleConnsPerHost: 16,
		IdleConnTimeout:     90 * time.Second,
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}

// Dial prepares the connection to rpcURL. Over HTTP no request is made
// here, so an unreachable node surfaces on the first call instead.
func Dial(ctx context.Context, rpcURL string) (*Client, error) {
	rc, err := rpc.DialOptions(ctx, rpcURL, rpc.WithHTTPClient(newHTTPClient()))
	if err != nil {
		return nil, fmt.Errorf("dial RPC: %w", err)
	}
	return &Client{Client: ethclient.NewClient(rc)}, nil
}

// EstimateTransferGas estimates gas for transfer(to, amount) sent by from.
func (c *Client) EstimateTransferGas(ctx context.Context, from, token, to common.Address, amount *big.Int) (uint64, error) {
	msg := ethereum.CallMsg{From: from, To: &token, Value: big.NewInt(0), Data: erc20.EncodeTransfer(to, amount)}
	return c.EstimateGas(ctx, msg)
}
