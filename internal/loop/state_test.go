package loop

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestNextTransitions(t *testing.T) {
	boom := errors.New("boom")
	hash := common.HexToHash("0xabc")
	cases := []struct {
		name   string
		policy Policy
		res    Result
		want   Transition
	}{
		{
			name: "sufficient balance goes to submit silently",
			res:  Result{Kind: BalanceSufficient, Balance: big.NewInt(5000), Amount: big.NewInt(1000)},
			want: Transition{State: Running, Next: PhaseSubmit},
		},
		{
			name: "insufficient balance stops",
			res:  Result{Kind: BalanceInsufficient, Balance: big.NewInt(999), Amount: big.NewInt(1000)},
			want: Transition{State: Stopped, Next: PhaseDone, Message: "❌ Insufficient balance! Need 1000 but have 999"},
		},
		{
			name: "balance error still submits",
			res:  Result{Kind: BalanceFailed, Err: boom},
			want: Transition{State: Running, Next: PhaseSubmit, Message: "❌ Error getting balance: boom"},
		},
		{
			name:   "balance error with skip policy ends iteration",
			policy: Policy{SkipTransferOnBalanceError: true},
			res:    Result{Kind: BalanceFailed, Err: boom},
			want:   Transition{State: Running, Next: PhaseDone, Message: "❌ Error getting balance: boom"},
		},
		{
			name: "submitted waits for confirmation",
			res:  Result{Kind: Submitted, Hash: hash},
			want: Transition{State: Running, Next: PhaseConfirm},
		},
		{
			name: "submit error ends iteration",
			res:  Result{Kind: SubmitFailed, Err: boom},
			want: Transition{State: Running, Next: PhaseDone, Message: "❌ Error submitting transaction: boom"},
		},
		{
			name: "confirmed prints hash",
			res:  Result{Kind: Confirmed, Hash: hash},
			want: Transition{State: Running, Next: PhaseDone, Message: "✅ Transaction confirmed! Hash: " + hash.Hex()},
		},
		{
			name: "confirm error ends iteration",
			res:  Result{Kind: ConfirmFailed, Err: boom},
			want: Transition{State: Running, Next: PhaseDone, Message: "❌ Error confirming transaction: boom"},
		},
		{
			name:   "describe hook formats errors",
			policy: Policy{Describe: func(err error) string { return "[RPC] " + err.Error() }},
			res:    Result{Kind: SubmitFailed, Err: boom},
			want:   Transition{State: Running, Next: PhaseDone, Message: "❌ Error submitting transaction: [RPC] boom"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Next(tc.policy, Running, tc.res))
		})
	}
}

func TestStoppedIsAbsorbing(t *testing.T) {
	for _, k := range []Kind{BalanceSufficient, BalanceInsufficient, BalanceFailed, Submitted, SubmitFailed, Confirmed, ConfirmFailed} {
		tr := Next(Policy{}, Stopped, Result{Kind: k, Err: errors.New("x")})
		assert.Equal(t, Transition{State: Stopped, Next: PhaseDone}, tr, "kind %d", k)
	}
}

func TestOnlyInsufficientBalanceStops(t *testing.T) {
	for _, k := range []Kind{BalanceSufficient, BalanceFailed, Submitted, SubmitFailed, Confirmed, ConfirmFailed} {
		tr := Next(Policy{}, Running, Result{Kind: k, Err: errors.New("x")})
		assert.Equal(t, Running, tr.State, "kind %d", k)
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "RUNNING", Running.String())
	assert.Equal(t, "STOPPED", Stopped.String())
	assert.Equal(t, "State(9)", State(9).String())
}
