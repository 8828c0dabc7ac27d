// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime executes signed transactions against state, one instruction at a time.
package runtime

import (
	"errors"
	"sync"
	"time"

	errorsmod "cosmossdk.io/errors"

	"github.com/tapedrive/tape/builtin"
	"github.com/tapedrive/tape/builtin/reverts"
	"github.com/tapedrive/tape/clock"
	"github.com/tapedrive/tape/log"
	"github.com/tapedrive/tape/metrics"
	"github.com/tapedrive/tape/state"
	"github.com/tapedrive/tape/tape"
	"github.com/tapedrive/tape/tx"
	"github.com/tapedrive/tape/xenv"
)

var (
	logger = log.WithContext("pkg", "runtime")

	metricInstructionCount    = metrics.LazyLoadCounterVec("instruction_count", []string{"instruction", "result"})
	metricInstructionDuration = metrics.LazyLoadHistogramVec("instruction_duration_ms", []string{"instruction"}, metrics.BucketDurationMs)
)

var ErrUnknownProgram = errors.New("runtime: unknown program")

// Runtime is to support transaction execution.
// Transactions are applied one by one, each against the state left by the previous one.
type Runtime struct {
	mu     sync.Mutex
	stater *state.Stater
	state  *state.State
	clock  clock.Clock
}

// New create a Runtime object.
func New(stater *state.Stater, clk clock.Clock) *Runtime {
	return &Runtime{
		stater: stater,
		state:  stater.NewState(),
		clock:  clk,
	}
}

// ExecuteTransaction applies the instruction carried by trx.
//
// A failing instruction is reported in the receipt and its writes are discarded, except
// for sticky failures whose writes are kept. An error is returned only when trx could not
// be executed at all.
func (rt *Runtime) ExecuteTransaction(trx *tx.Transaction) (*tx.Receipt, error) {
	signers, err := trx.Signers()
	if err != nil {
		return nil, err
	}
	program, ok := builtin.Lookup(trx.Program())
	if !ok {
		return nil, errorsmod.Wrap(ErrUnknownProgram, trx.Program().String())
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()

	var (
		data  = trx.Data()
		name  = program.Instruction(data)
		start = time.Now()
		now   = rt.clock.Now()
		env   = xenv.New(trx.Program(), rt.state, &xenv.TransactionContext{
			ID:      trx.ID(),
			Signers: signers,
			Time:    now,
		}, trx.Accounts())
	)

	receipt := &tx.Receipt{
		TxID:    trx.ID(),
		Program: trx.Program(),
		Time:    now,
	}

	checkpoint := rt.state.NewCheckpoint()
	execErr := program.Execute(env, data)
	metricInstructionDuration().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"instruction": name})

	if execErr == nil {
		receipt.Events = env.Events()
		metricInstructionCount().AddWithLabel(1, map[string]string{"instruction": name, "result": "success"})
		logger.Debug("instruction executed", "id", receipt.TxID, "instruction", name, "events", len(receipt.Events))
		return receipt, nil
	}

	var stateErr *state.Error
	if errors.As(execErr, &stateErr) {
		rt.state.RevertTo(checkpoint)
		return nil, execErr
	}

	receipt.Error = execErr.Error()
	receipt.Codespace, receipt.Code, _ = errorsmod.ABCIInfo(execErr, false)
	if reverts.IsSticky(execErr) {
		metricInstructionCount().AddWithLabel(1, map[string]string{"instruction": name, "result": "sticky"})
	} else {
		rt.state.RevertTo(checkpoint)
		receipt.Reverted = true
		metricInstructionCount().AddWithLabel(1, map[string]string{"instruction": name, "result": "reverted"})
	}
	logger.Debug("instruction failed", "id", receipt.TxID, "instruction", name, "reverted", receipt.Reverted, "err", execErr)
	return receipt, nil
}

// Commit persists every change applied so far and returns the hash of the change set.
func (rt *Runtime) Commit() (tape.Bytes32, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	stage := rt.state.Stage()
	hash := stage.Hash()
	if err := stage.Commit(); err != nil {
		return tape.Bytes32{}, err
	}
	rt.state = rt.stater.NewState()
	return hash, nil
}

// Discard drops every change not yet committed.
func (rt *Runtime) Discard() {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	rt.state = rt.stater.NewState()
}

// Clock returns the time source instructions are executed against.
func (rt *Runtime) Clock() clock.Clock {
	return rt.clock
}
