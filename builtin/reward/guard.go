// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reward

import (
	errorsmod "cosmossdk.io/errors"
	"github.com/holiman/uint256"

	"github.com/tapedrive/tape/builtin/token"
	"github.com/tapedrive/tape/pda"
	"github.com/tapedrive/tape/state"
	"github.com/tapedrive/tape/tape"
)

func (r *Reward) requireSigner(addr tape.Address) error {
	if !r.env.IsSigner(addr) {
		return errorsmod.Wrapf(ErrMissingSignature, "%v must sign", addr)
	}
	return nil
}

// requireDerived verifies addr against the derivation of seeds and returns its bump.
func (r *Reward) requireDerived(addr tape.Address, seeds [][]byte) (byte, error) {
	expected, bump, err := pda.Find(r.addr, seeds...)
	if err != nil {
		return 0, errorsmod.Wrap(ErrInvalidArgument, err.Error())
	}
	if expected != addr {
		return 0, errorsmod.Wrapf(ErrAddressMismatch, "got %v, want %v", addr, expected)
	}
	return bump, nil
}

// requireCreated verifies addr against the derivation of seeds with a known bump.
func (r *Reward) requireCreated(addr tape.Address, bump byte, seeds [][]byte) error {
	expected, err := pda.Create(r.addr, bump, seeds...)
	if err != nil || expected != addr {
		return errorsmod.Wrapf(ErrAddressMismatch, "%v", addr)
	}
	return nil
}

func (r *Reward) requireEmpty(addr tape.Address) error {
	exists, err := r.state.Exists(addr)
	if err != nil {
		return err
	}
	if exists {
		return errorsmod.Wrapf(ErrAlreadyInitialized, "%v", addr)
	}
	return nil
}

func requireID(id *uint256.Int) error {
	if id == nil || id.BitLen() > tape.MaxObjectIDBits {
		return errorsmod.Wrap(ErrInvalidArgument, "id must be an unsigned 128-bit integer")
	}
	return nil
}

// read loads a record the program owns.
func read[R Record](r *Reward, addr tape.Address, rec R) error {
	acc, err := r.state.GetAccount(addr)
	if err != nil {
		return err
	}
	if acc.IsEmpty() {
		return errorsmod.Wrapf(ErrNotInitialized, "%v", addr)
	}
	if acc.Owner != r.addr {
		return errorsmod.Wrapf(ErrIllegalOwner, "%v owned by %v", addr, acc.Owner)
	}
	return Decode(acc.Data, rec)
}

func write[R Record](r *Reward, addr tape.Address, rec R) error {
	data, err := Encode(rec)
	if err != nil {
		return err
	}
	r.state.SetAccount(addr, state.Account{Owner: r.addr, Data: data})
	return nil
}

func (r *Reward) loadGlobal(addr tape.Address) (*GlobalState, error) {
	var g GlobalState
	if err := read(r, addr, &g); err != nil {
		return nil, err
	}
	if err := r.requireCreated(addr, g.Bump, GlobalSeeds()); err != nil {
		return nil, err
	}
	return &g, nil
}

// loadEpoch loads the epoch at addr and checks that it is epochID.
func (r *Reward) loadEpoch(addr tape.Address, epochID *uint256.Int) (*EpochRecord, error) {
	var ep EpochRecord
	if err := read(r, addr, &ep); err != nil {
		return nil, err
	}
	if err := r.requireCreated(addr, ep.Bump, EpochSeeds(ep.ObjectID, ep.EpochID)); err != nil {
		return nil, err
	}
	if epochID == nil || !ep.EpochID.Eq(epochID) {
		return nil, errorsmod.Wrapf(ErrEpochMismatch, "record holds epoch %v", ep.EpochID)
	}
	return &ep, nil
}

// loadMiner loads the ledger entry of miner from addr.
func (r *Reward) loadMiner(addr, miner tape.Address) (*MinerAccount, error) {
	if _, err := r.requireDerived(addr, MinerSeeds(miner)); err != nil {
		return nil, err
	}
	var m MinerAccount
	if err := read(r, addr, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// requirePayout checks that addr is a token account of mint controlled by owner.
func (r *Reward) requirePayout(addr, owner, mint tape.Address) error {
	acc, err := r.tokens.GetAccount(addr)
	if err != nil {
		return errorsmod.Wrapf(ErrInvalidArgument, "payout account %v: %v", addr, err)
	}
	if acc.Owner != owner {
		return errorsmod.Wrapf(ErrIllegalOwner, "payout account %v owned by %v", addr, acc.Owner)
	}
	if acc.Mint != mint {
		return errorsmod.Wrapf(ErrInvalidArgument, "payout account %v holds mint %v", addr, acc.Mint)
	}
	return nil
}

// transferError maps a token failure onto the program errors.
func transferError(err error) error {
	if errorsmod.IsOf(err, token.ErrInsufficientFunds) {
		return errorsmod.Wrap(ErrInsufficientFunds, err.Error())
	}
	return errorsmod.Wrap(ErrTransferFailed, err.Error())
}

func saturatingAdd(a, b uint64) uint64 {
	if s := a + b; s >= a {
		return s
	}
	return ^uint64(0)
}

func saturatingSub[T uint32 | uint64](a, b T) T {
	if a < b {
		return 0
	}
	return a - b
}
