package config

import (
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Defaults used when the environment does not provide a value.
const (
	DefaultRPCURL           = "https://rpc.hashira.io/arbitrum_sepolia"
	DefaultTokenAddress     = "0xD8a6E3FCA403d79b6AD6216b60527F51cc967D39"
	DefaultRecipientAddress = "0x92df3Da2B4B0a76A89401e779A6c5F8458E7fF1d"
	DefaultAmount           = "1000"
	DefaultLogLevel         = "info"
)

// ErrMissingKey is returned by Resolve when no private key was configured.
var ErrMissingKey = errors.New("private key is empty")

// Settings keeps all configuration options as raw strings/numbers,
// exactly as they were read from the environment.
type Settings struct {
	RPCURL                     string
	PrivateKeyHex              string
	TokenAddress               string
	RecipientAddress           string
	Amount                     string // base units, decimal or 0x-hex
	ConfirmTimeoutSec          int
	SkipTransferOnBalanceError bool
	LogLevel                   string
}

// Resolved is the typed form of Settings. Building it is the only place
// where malformed startup values are detected.
type Resolved struct {
	RPCURL         string
	PrivateKeyHex  string
	Token          common.Address
	Recipient      common.Address
	Amount         *big.Int
	ConfirmTimeout time.Duration
	SkipOnBalErr   bool
}

// Default returns the built-in settings with no private key.
func Default() Settings {
	return Settings{
		RPCURL:           DefaultRPCURL,
		TokenAddress:     DefaultTokenAddress,
		RecipientAddress: DefaultRecipientAddress,
		Amount:           DefaultAmount,
		LogLevel:         DefaultLogLevel,
	}
}

// Load reads settings from environment supporting both UPPER_CASE and lower_case keys.
func Load() Settings {
	return loadFrom(os.Getenv)
}

func loadFrom(getenv func(string) string) Settings {
	get := func(keys []string, def string) string {
		for _, k := range keys {
			if v := strings.TrimSpace(getenv(k)); v != "" {
				return v
			}
		}
		return def
	}
	getInt := func(keys []string, def int) int {
		s := get(keys, "")
		if s == "" {
			return def
		}
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		return def
	}
	getBool := func(keys []string, def bool) bool {
		s := strings.ToLower(get(keys, ""))
		if s == "" {
			return def
		}
		return s == "1" || s == "true" || s == "yes" || s == "on"
	}

	def := Default()
	st := Settings{}
	st.RPCURL = get([]string{"rpc_url", "RPC_URL"}, def.RPCURL)
	st.PrivateKeyHex = get([]string{"private_key", "PRIVATE_KEY"}, "")
	st.TokenAddress = get([]string{"token_address", "TOKEN_ADDRESS"}, def.TokenAddress)
	st.RecipientAddress = get([]string{"recipient_address", "RECIPIENT_ADDRESS"}, def.RecipientAddress)
	st.Amount = get([]string{"amount", "AMOUNT"}, def.Amount)
	st.ConfirmTimeoutSec = getInt([]string{"confirm_timeout_sec", "CONFIRM_TIMEOUT_SEC"}, 0)
	st.SkipTransferOnBalanceError = getBool([]string{"skip_transfer_on_balance_error", "SKIP_TRANSFER_ON_BALANCE_ERROR"}, false)
	st.LogLevel = get([]string{"log_level", "LOG_LEVEL"}, def.LogLevel)
	return st
}

// Resolve validates the settings and converts them into typed values.
func (s Settings) Resolve() (Resolved, error) {
	var r Resolved

	u, err := url.Parse(strings.TrimSpace(s.RPCURL))
	if err != nil || u.Host == "" {
		return r, fmt.Errorf("invalid RPC URL %q", s.RPCURL)
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return r, fmt.Errorf("invalid RPC URL %q: unsupported scheme %q", s.RPCURL, u.Scheme)
	}
	r.RPCURL = u.String()

	pk := strings.TrimPrefix(strings.TrimSpace(s.PrivateKeyHex), "0x")
	if pk == "" {
		return r, ErrMissingKey
	}
	r.PrivateKeyHex = pk

	if r.Token, err = parseAddress("token", s.TokenAddress); err != nil {
		return r, err
	}
	if r.Recipient, err = parseAddress("recipient", s.RecipientAddress); err != nil {
		return r, err
	}
	if r.Amount, err = parseAmount(s.Amount); err != nil {
		return r, err
	}
	if s.ConfirmTimeoutSec < 0 {
		return r, fmt.Errorf("invalid confirm timeout %ds", s.ConfirmTimeoutSec)
	}
	r.ConfirmTimeout = time.Duration(s.ConfirmTimeoutSec) * time.Second
	r.SkipOnBalErr = s.SkipTransferOnBalanceError
	return r, nil
}

func parseAddress(what, s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid %s address %q", what, s)
	}
	return common.HexToAddress(s), nil
}

func parseAmount(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	z, ok := new(big.Int), false
	if strings.HasPrefix(s, "0x") {
		z, ok = z.SetString(s[2:], 16)
	} else {
		z, ok = z.SetString(s, 10)
	}
	if !ok || z.Sign() <= 0 {
		return nil, fmt.Errorf("invalid amount %q: must be a positive integer in base units", s)
	}
	if z.BitLen() > 256 {
		return nil, fmt.Errorf("invalid amount %q: does not fit in uint256", s)
	}
	return z, nil
}
