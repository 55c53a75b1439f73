package chain

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/ligun0805/transfer-loop/internal/erc20"
)

// Backend is what Token needs from the network connection.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

// Token sends a signer's transfers of one ERC20 token.
// It is not safe for concurrent use.
type Token struct {
	binding        *erc20.ERC20
	backend        Backend
	signer         *Signer
	chainID        *big.Int
	opts           *bind.TransactOpts // built on first Transfer
	confirmTimeout time.Duration
	log            *zap.Logger
}

// TokenOption configures a Token.
type TokenOption func(*Token)

// WithConfirmTimeout caps each confirmation wait. Zero means no cap.
func WithConfirmTimeout(d time.Duration) TokenOption {
	return func(t *Token) { t.confirmTimeout = d }
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *zap.Logger) TokenOption {
	return func(t *Token) { t.log = l }
}

// NewToken binds the token at address, signing with signer.
func NewToken(backend Backend, address common.Address, signer *Signer, options ...TokenOption) *Token {
	t := &Token{
		binding: erc20.New(address, backend),
		backend: backend,
		signer:  signer,
		log:     zap.NewNop(),
	}
	for _, o := range options {
		o(t)
	}
	return t
}

// Binding exposes the underlying contract binding.
func (t *Token) Binding() *erc20.ERC20 { return t.binding }

// BalanceOf reads owner's token balance at the latest block.
func (t *Token) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	return t.binding.BalanceOf(&bind.CallOpts{Context: ctx}, owner)
}

// ChainID returns the chain id, asking the node only until it first answers.
func (t *Token) ChainID(ctx context.Context) (*big.Int, error) {
	if t.chainID == nil {
		id, err := t.backend.ChainID(ctx)
		if err != nil {
			return nil, fmt.Errorf("chain id: %w", err)
		}
		t.chainID = id
		t.log.Info("chain id discovered", zap.Stringer("chainId", id))
	}
	return new(big.Int).Set(t.chainID), nil
}

func (t *Token) transactor(ctx context.Context) (*bind.TransactOpts, error) {
	if t.opts != nil {
		return t.opts, nil
	}
	id, err := t.ChainID(ctx)
	if err != nil {
		return nil, err
	}
	opts, err := t.signer.Transactor(id)
	if err != nil {
		return nil, err
	}
	t.opts = opts
	return opts, nil
}

// Transfer submits transfer(to, amount). Gas is estimated and the pending
// nonce fetched for every call.
func (t *Token) Transfer(ctx context.Context, to common.Address, amount *big.Int) (*types.Transaction, error) {
	base, err := t.transactor(ctx)
	if err != nil {
		return nil, err
	}
	opts := *base
	opts.Context = ctx
	tx, err := t.binding.Transfer(&opts, to, new(big.Int).Set(amount))
	if err != nil {
		return nil, err
	}
	t.log.Debug("transfer submitted",
		zap.String("hash", tx.Hash().Hex()),
		zap.Uint64("nonce", tx.Nonce()),
		zap.Uint64("gas", tx.Gas()))
	return tx, nil
}

// WaitConfirmed blocks until tx is mined. A mined but failed transaction
// returns ErrReverted.
func (t *Token) WaitConfirmed(ctx context.Context, tx *types.Transaction) (common.Hash, error) {
	if t.confirmTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.confirmTimeout)
		defer cancel()
	}
	receipt, err := bind.WaitMined(ctx, t.backend, tx)
	if err != nil {
		return common.Hash{}, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt.TxHash, fmt.Errorf("%w: %s in block %v", ErrReverted, receipt.TxHash.Hex(), receipt.BlockNumber)
	}
	for _, l := range receipt.Logs {
		if l.Address != t.binding.Address() {
			continue
		}
		if from, to, v, ok := erc20.ParseTransfer(l); ok {
			t.log.Debug("transfer event",
				zap.String("from", from.Hex()),
				zap.String("to", to.Hex()),
				zap.String("value", v.String()))
		}
	}
	t.log.Debug("transfer mined",
		zap.String("hash", receipt.TxHash.Hex()),
		zap.Stringer("block", receipt.BlockNumber),
		zap.Uint64("gasUsed", receipt.GasUsed))
	return receipt.TxHash, nil
}
