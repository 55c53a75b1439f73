package main

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"

	"github.com/ligun0805/transfer-loop/internal/chain"
	"github.com/ligun0805/transfer-loop/internal/config"
	"github.com/ligun0805/transfer-loop/internal/units"
)

// printConfig prints the startup banner. Lookups that fail are shown as unknown
// and never stop startup.
func printConfig(ctx context.Context, w io.Writer, cl *chain.Client, token *chain.Token, st config.Settings, cfg config.Resolved, sender common.Address) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	callOpts := &bind.CallOpts{Context: ctx}
	symbol, err := token.Binding().Symbol(callOpts)
	if err != nil || symbol == "" {
		symbol = "?"
	}
	decimals := -1
	if d, err := token.Binding().Decimals(callOpts); err == nil {
		decimals = int(d)
	}
	amountHuman := cfg.Amount.String()
	if decimals >= 0 {
		amountHuman = units.FormatTokens(cfg.Amount, decimals) + " " + symbol
	}
	nativeBal, _ := cl.BalanceAt(ctx, sender, nil)
	chainID := "unknown"
	if id, err := token.ChainID(ctx); err == nil {
		chainID = id.String()
	}

	fmt.Fprintln(w, "=== CONFIG (.env) ===")
	fmt.Fprintln(w, "RPC_URL           :", cfg.RPCURL)
	fmt.Fprintln(w, "CHAIN_ID          :", chainID)
	fmt.Fprintln(w, "PRIVATE_KEY       :", units.MaskHex(st.PrivateKeyHex))
	fmt.Fprintln(w, "  -> Sender       :", sender.Hex())
	fmt.Fprintln(w, "  -> Gas balance  :", units.FormatEther(nativeBal), "ETH")
	fmt.Fprintln(w, "TOKEN_ADDRESS     :", cfg.Token.Hex(), "("+symbol+")")
	fmt.Fprintln(w, "RECIPIENT_ADDRESS :", cfg.Recipient.Hex())
	fmt.Fprintln(w, "AMOUNT            :", cfg.Amount.String(), "("+amountHuman+")")
	if gas, err := cl.EstimateTransferGas(ctx, sender, cfg.Token, cfg.Recipient, new(big.Int).Set(cfg.Amount)); err == nil {
		fmt.Fprintln(w, "Gas (transfer)    :", gas)
	} else {
		fmt.Fprintln(w, "Gas (transfer)    :", chain.Classify(err))
	}
	if cfg.ConfirmTimeout > 0 {
		fmt.Fprintln(w, "Confirm timeout   :", cfg.ConfirmTimeout)
	}
	if cfg.SkipOnBalErr {
		fmt.Fprintln(w, "On balance error  : skip transfer")
	}
	fmt.Fprintln(w, "=====================")
}
