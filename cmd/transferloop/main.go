package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ligun0805/transfer-loop/internal/chain"
	"github.com/ligun0805/transfer-loop/internal/config"
	"github.com/ligun0805/transfer-loop/internal/loop"
)

func main() {
	_ = godotenv.Load()
	_ = godotenv.Overload(".env.local")

	ctx := context.Background()

	st := config.Load()
	log := newLogger(st.LogLevel)
	defer func() { _ = log.Sync() }()

	if strings.TrimSpace(st.PrivateKeyHex) == "" && stdinIsTerminal() {
		st.PrivateKeyHex = readPassword("Enter sender private key: ")
	}
	cfg, err := st.Resolve()
	must(err, "config")

	signer, err := chain.NewSigner(cfg.PrivateKeyHex)
	must(err, "signer")

	cl, err := chain.Dial(ctx, cfg.RPCURL)
	must(err, "connect")
	defer cl.Close()
	log.Info("rpc configured", zap.String("rpc", cfg.RPCURL))

	token := chain.NewToken(cl, cfg.Token, signer,
		chain.WithConfirmTimeout(cfg.ConfirmTimeout),
		chain.WithLogger(log.Named("token")))

	printConfig(ctx, os.Stdout, cl, token, st, cfg, signer.Address())

	runner := loop.New(loop.Config{
		Sender:    signer.Address(),
		Recipient: cfg.Recipient,
		Amount:    cfg.Amount,
		Policy: loop.Policy{
			SkipTransferOnBalanceError: cfg.SkipOnBalErr,
			Describe:                   chain.Classify,
		},
	}, token, os.Stdout, log.Named("loop"))

	sum, err := runner.Run(ctx)
	if err != nil {
		log.Error("loop aborted", zap.Error(err))
	}
	fmt.Printf("\nDone: %d iterations, %d confirmed, %d failed\n", sum.Iterations, sum.Confirmed, sum.Failed)
}

func must(err error, msg string) {
	if err != nil {
		die(msg + ": " + err.Error())
	}
}

func die(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
