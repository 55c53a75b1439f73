package loop

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// State of the transfer loop.
type State int

const (
	Running State = iota
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "RUNNING"
	case Stopped:
		return "STOPPED"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Phase is the next step inside an iteration.
type Phase int

const (
	PhaseBalance Phase = iota
	PhaseSubmit
	PhaseConfirm
	PhaseDone
)

// Kind classifies the outcome of one step.
type Kind int

const (
	BalanceSufficient Kind = iota
	BalanceInsufficient
	BalanceFailed
	Submitted
	SubmitFailed
	Confirmed
	ConfirmFailed
)

// Result is what a step produced.
type Result struct {
	Kind    Kind
	Balance *big.Int
	Amount  *big.Int
	Hash    common.Hash
	Err     error
}

// Policy holds the operator-tunable branches of the machine.
type Policy struct {
	// SkipTransferOnBalanceError ends the iteration after a failed balance
	// read instead of attempting the transfer. It never stops the loop.
	SkipTransferOnBalanceError bool

	// Describe renders errors in status lines. Nil uses err.Error().
	Describe func(error) string
}

// Transition is the machine's answer to a Result.
type Transition struct {
	State   State
	Next    Phase
	Message string // empty when nothing is printed
}

// Status line markers.
const (
	markOK   = "✅"
	markFail = "❌"
)

// Next computes the transition for r in state s.
// Only an insufficient balance read moves Running to Stopped, and Stopped is absorbing.
func Next(p Policy, s State, r Result) Transition {
	if s == Stopped {
		return Transition{State: Stopped, Next: PhaseDone}
	}
	switch r.Kind {
	case BalanceSufficient:
		return Transition{State: Running, Next: PhaseSubmit}
	case BalanceInsufficient:
		return Transition{
			State:   Stopped,
			Next:    PhaseDone,
			Message: fmt.Sprintf("%s Insufficient balance! Need %s but have %s", markFail, bigString(r.Amount), bigString(r.Balance)),
		}
	case BalanceFailed:
		next := PhaseSubmit
		if p.SkipTransferOnBalanceError {
			next = PhaseDone
		}
		return Transition{State: Running, Next: next, Message: markFail + " Error getting balance: " + p.describe(r.Err)}
	case Submitted:
		return Transition{State: Running, Next: PhaseConfirm}
	case SubmitFailed:
		return Transition{State: Running, Next: PhaseDone, Message: markFail + " Error submitting transaction: " + p.describe(r.Err)}
	case Confirmed:
		return Transition{State: Running, Next: PhaseDone, Message: markOK + " Transaction confirmed! Hash: " + r.Hash.Hex()}
	case ConfirmFailed:
		return Transition{State: Running, Next: PhaseDone, Message: markFail + " Error confirming transaction: " + p.describe(r.Err)}
	}
	return Transition{State: Running, Next: PhaseDone, Message: fmt.Sprintf("%s unknown result kind %d", markFail, int(r.Kind))}
}

func (p Policy) describe(err error) string {
	if err == nil {
		return "unknown error"
	}
	if p.Describe != nil {
		return p.Describe(err)
	}
	return err.Error()
}

func bigString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
