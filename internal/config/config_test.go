package config

import (
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadDefaults(t *testing.T) {
	st := loadFrom(envMap(nil))

	assert.Equal(t, DefaultRPCURL, st.RPCURL)
	assert.Equal(t, DefaultTokenAddress, st.TokenAddress)
	assert.Equal(t, DefaultRecipientAddress, st.RecipientAddress)
	assert.Equal(t, DefaultAmount, st.Amount)
	assert.Empty(t, st.PrivateKeyHex)
	assert.Zero(t, st.ConfirmTimeoutSec)
	assert.False(t, st.SkipTransferOnBalanceError)
}

func TestLoadEnvKeys(t *testing.T) {
	st := loadFrom(envMap(map[string]string{
		"RPC_URL":                        " http://localhost:8545 ",
		"private_key":                    "0x" + testKey,
		"AMOUNT":                         "42",
		"CONFIRM_TIMEOUT_SEC":            "30",
		"skip_transfer_on_balance_error": "yes",
		"LOG_LEVEL":                      "debug",
	}))

	assert.Equal(t, "http://localhost:8545", st.RPCURL)
	assert.Equal(t, "0x"+testKey, st.PrivateKeyHex)
	assert.Equal(t, "42", st.Amount)
	assert.Equal(t, 30, st.ConfirmTimeoutSec)
	assert.True(t, st.SkipTransferOnBalanceError)
	assert.Equal(t, "debug", st.LogLevel)
}

func TestLoadBadIntFallsBack(t *testing.T) {
	st := loadFrom(envMap(map[string]string{"CONFIRM_TIMEOUT_SEC": "soon"}))
	assert.Zero(t, st.ConfirmTimeoutSec)
}

func TestResolve(t *testing.T) {
	st := Default()
	st.PrivateKeyHex = "0x" + testKey
	st.ConfirmTimeoutSec = 5

	r, err := st.Resolve()
	require.NoError(t, err)
	assert.Equal(t, testKey, r.PrivateKeyHex)
	assert.Equal(t, common.HexToAddress(DefaultTokenAddress), r.Token)
	assert.Equal(t, common.HexToAddress(DefaultRecipientAddress), r.Recipient)
	assert.Equal(t, "1000", r.Amount.String())
	assert.Equal(t, 5*time.Second, r.ConfirmTimeout)
}

func TestResolveHexAmount(t *testing.T) {
	st := Default()
	st.PrivateKeyHex = testKey
	st.Amount = "0x3e8"

	r, err := st.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "1000", r.Amount.String())
}

func TestResolveErrors(t *testing.T) {
	cases := []struct {
		name   string
		modify func(*Settings)
		want   string
	}{
		{"missing key", func(s *Settings) { s.PrivateKeyHex = "" }, "private key is empty"},
		{"bad url", func(s *Settings) { s.RPCURL = "not a url" }, "invalid RPC URL"},
		{"bad scheme", func(s *Settings) { s.RPCURL = "ftp://example.com" }, "unsupported scheme"},
		{"bad token", func(s *Settings) { s.TokenAddress = "0x1234" }, "invalid token address"},
		{"bad recipient", func(s *Settings) { s.RecipientAddress = "bob" }, "invalid recipient address"},
		{"zero amount", func(s *Settings) { s.Amount = "0" }, "invalid amount"},
		{"bad amount", func(s *Settings) { s.Amount = "1.5" }, "invalid amount"},
		{"amount over uint256", func(s *Settings) { s.Amount = "0x1" + strings.Repeat("0", 64) }, "does not fit in uint256"},
		{"negative timeout", func(s *Settings) { s.ConfirmTimeoutSec = -1 }, "invalid confirm timeout"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := Default()
			st.PrivateKeyHex = testKey
			tc.modify(&st)

			_, err := st.Resolve()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestResolveMissingKeySentinel(t *testing.T) {
	_, err := Default().Resolve()
	assert.ErrorIs(t, err, ErrMissingKey)
}

func TestResolveMaxUint256Amount(t *testing.T) {
	st := Default()
	st.PrivateKeyHex = testKey
	st.Amount = "0x" + strings.Repeat("f", 64)

	r, err := st.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 256, r.Amount.BitLen())
}
