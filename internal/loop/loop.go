// Package loop drives the balance-check / transfer / confirm cycle.
package loop

import (
	"context"
	"fmt"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

// Token is the set of capabilities the loop needs from the chain.
type Token interface {
	BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error)
	Transfer(ctx context.Context, to common.Address, amount *big.Int) (*types.Transaction, error)
	WaitConfirmed(ctx context.Context, tx *types.Transaction) (common.Hash, error)
}

// Config is fixed for the lifetime of a Runner.
type Config struct {
	Sender    common.Address
	Recipient common.Address
	Amount    *big.Int
	Policy    Policy
}

// Summary counts what happened across iterations. Failed counts failed
// steps, so one iteration can add to both Failed and Confirmed.
type Summary struct {
	Iterations int
	Confirmed  int
	Failed     int
	State      State
}

// Runner executes iterations back to back until the machine stops.
type Runner struct {
	cfg   Config
	token Token
	out   io.Writer
	log   *zap.Logger
	state State
	iter  int

	confirmed int
	failed    int
}

// New returns a Runner printing status lines to out.
func New(cfg Config, token Token, out io.Writer, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{cfg: cfg, token: token, out: out, log: log, state: Running}
}

// State reports the current machine state.
func (r *Runner) State() State { return r.state }

// Run loops until a successful balance read reports insufficient funds.
// It returns early only if ctx is done.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	startIter, startOK, startFail := r.iter, r.confirmed, r.failed
	summary := func() Summary {
		return Summary{
			Iterations: r.iter - startIter,
			Confirmed:  r.confirmed - startOK,
			Failed:     r.failed - startFail,
			State:      r.state,
		}
	}
	for r.state == Running {
		if err := ctx.Err(); err != nil {
			return summary(), err
		}
		r.Iterate(ctx)
	}
	return summary(), nil
}

// Iterate performs one pass and returns the kind of its last step.
func (r *Runner) Iterate(ctx context.Context) Kind {
	r.iter++
	fmt.Fprintf(r.out, "\nTransaction %d\n", r.iter)
	amount := new(big.Int).Set(r.cfg.Amount)

	var (
		tx   *types.Transaction
		last Kind
	)
	phase := PhaseBalance
	for phase != PhaseDone {
		var res Result
		switch phase {
		case PhaseBalance:
			res = r.checkBalance(ctx, amount)
		case PhaseSubmit:
			res, tx = r.submit(ctx, amount)
		case PhaseConfirm:
			res = r.confirm(ctx, tx)
		}
		tr := Next(r.cfg.Policy, r.state, res)
		if tr.Message != "" {
			fmt.Fprintln(r.out, tr.Message)
		}
		if tr.State != r.state {
			r.log.Info("loop state change",
				zap.Int("iteration", r.iter),
				zap.Stringer("from", r.state),
				zap.Stringer("to", tr.State))
		}
		switch res.Kind {
		case Confirmed:
			r.confirmed++
		case BalanceFailed, SubmitFailed, ConfirmFailed:
			r.failed++
		}
		r.state = tr.State
		phase = tr.Next
		last = res.Kind
	}
	return last
}

func (r *Runner) checkBalance(ctx context.Context, amount *big.Int) Result {
	bal, err := r.token.BalanceOf(ctx, r.cfg.Sender)
	if err != nil {
		r.log.Warn("balance read failed", zap.Int("iteration", r.iter), zap.Error(err))
		return Result{Kind: BalanceFailed, Amount: amount, Err: err}
	}
	r.log.Debug("balance", zap.Int("iteration", r.iter), zap.String("balance", bal.String()))
	if bal.Cmp(amount) < 0 {
		return Result{Kind: BalanceInsufficient, Amount: amount, Balance: bal}
	}
	return Result{Kind: BalanceSufficient, Amount: amount, Balance: bal}
}

func (r *Runner) submit(ctx context.Context, amount *big.Int) (Result, *types.Transaction) {
	tx, err := r.token.Transfer(ctx, r.cfg.Recipient, amount)
	if err != nil {
		r.log.Warn("transfer submission failed", zap.Int("iteration", r.iter), zap.Error(err))
		return Result{Kind: SubmitFailed, Amount: amount, Err: err}, nil
	}
	return Result{Kind: Submitted, Amount: amount, Hash: tx.Hash()}, tx
}

func (r *Runner) confirm(ctx context.Context, tx *types.Transaction) Result {
	h, err := r.token.WaitConfirmed(ctx, tx)
	if err != nil {
		r.log.Warn("confirmation failed", zap.Int("iteration", r.iter), zap.String("hash", tx.Hash().Hex()), zap.Error(err))
		return Result{Kind: ConfirmFailed, Hash: tx.Hash(), Err: err}
	}
	return Result{Kind: Confirmed, Hash: h}
}
