// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reward implements the proof-of-storage incentive program.
//
// Objects are registered by their owners, epochs are opened against objects, miners race to
// submit proofs before the epoch deadline, anyone may challenge a submitted proof, and
// unchallenged epochs are finalized by paying the solver out of the reward vault. Miners stake
// collateral that the admin can slash, and rewards are debited from a capped, decaying emission
// budget held by the global record.
//
// Every handler checks all of its preconditions before writing any record. The only failure
// that keeps its writes is a late proof submission, which moves the epoch to Challenged.
package reward

import (
	"math"

	"github.com/tapedrive/tape/builtin/token"
	"github.com/tapedrive/tape/log"
	"github.com/tapedrive/tape/metrics"
	"github.com/tapedrive/tape/pda"
	"github.com/tapedrive/tape/state"
	"github.com/tapedrive/tape/tape"
	"github.com/tapedrive/tape/xenv"
)

var (
	logger = log.WithContext("pkg", "reward")

	metricEmissionSkipped   = metrics.LazyLoadCounter("emission_skipped_count")
	metricEmissionRemaining = metrics.LazyLoadGauge("emission_remaining")
)

// reportRemaining publishes the remaining emission, clamped to the gauge range.
func reportRemaining(remaining uint64) {
	metricEmissionRemaining().Set(gaugeValue(remaining))
}

func gaugeValue(v uint64) int64 {
	return int64(min(v, math.MaxInt64))
}

func SetLogger(l log.Logger) {
	logger = l
}

// Tokens is the value transfer capability the program pays and collects through.
type Tokens interface {
	GetAccount(addr tape.Address) (*token.Account, error)
	Transfer(from, to, authority tape.Address, amount uint64) error
	TransferSigned(from, to tape.Address, signer pda.Signer, amount uint64) error
}

// Reward is the reward program bound to one instruction execution.
type Reward struct {
	addr   tape.Address
	env    *xenv.Environment
	state  *state.State
	tokens Tokens
}

// New create a new instance.
func New(addr tape.Address, env *xenv.Environment, tokens Tokens) *Reward {
	return &Reward{
		addr:   addr,
		env:    env,
		state:  env.State(),
		tokens: tokens,
	}
}

// Address returns the program id.
func (r *Reward) Address() tape.Address {
	return r.addr
}

// globalSigner is the capability of the program to sign as its global address,
// which owns both vaults.
func (r *Reward) globalSigner(g *GlobalState) pda.Signer {
	return pda.NewSigner(r.addr, g.Bump, GlobalSeeds()...)
}

func (r *Reward) now() uint64 {
	return r.env.Now()
}

// Execute decodes one instruction and runs it against the declared accounts.
func (r *Reward) Execute(data []byte) error {
	ins, err := DecodeInstruction(data)
	if err != nil {
		logger.Info("rejected malformed instruction", "err", err)
		return err
	}
	logger.Debug("executing instruction", "instruction", ins.Tag(), "accounts", len(r.env.Accounts()))
	if err := ins.handle(r, r.env.Accounts()); err != nil {
		logger.Info("instruction rejected", "instruction", ins.Tag(), "kind", Classify(err), "err", err)
		return err
	}
	logger.Info("instruction applied", "instruction", ins.Tag())
	return nil
}
