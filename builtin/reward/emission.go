// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reward

import (
	errorsmod "cosmossdk.io/errors"
	"github.com/holiman/uint256"

	"github.com/tapedrive/tape/tape"
)

// maxDecaySteps bounds the decay work done by one instruction. Periods beyond it
// are applied by later instructions.
const maxDecaySteps = 1024

// Initialize creates the global record. Both vaults must already exist as token
// accounts of the reward mint controlled by the global address.
func (r *Reward) Initialize(accs *InitializeAccounts, args *Initialize) error {
	if err := r.requireSigner(accs.Admin); err != nil {
		return err
	}
	if args.DecayDenom == 0 || args.DecayNumerator > args.DecayDenom {
		return errorsmod.Wrapf(ErrInvalidArgument, "decay fraction %d/%d", args.DecayNumerator, args.DecayDenom)
	}
	bump, err := r.requireDerived(accs.Global, GlobalSeeds())
	if err != nil {
		return err
	}
	if err := r.requireEmpty(accs.Global); err != nil {
		return err
	}
	if _, err := r.requireDerived(accs.RewardVault, RewardVaultSeeds(accs.RewardMint)); err != nil {
		return err
	}
	if _, err := r.requireDerived(accs.StakeVault, StakeVaultSeeds(accs.RewardMint)); err != nil {
		return err
	}
	for _, vault := range []tape.Address{accs.RewardVault, accs.StakeVault} {
		if err := r.requirePayout(vault, accs.Global, accs.RewardMint); err != nil {
			return err
		}
	}

	g := &GlobalState{
		Admin:          accs.Admin,
		RewardMint:     accs.RewardMint,
		RewardVault:    accs.RewardVault,
		StakeVault:     accs.StakeVault,
		EmissionCap:    args.EmissionCap,
		DecayNumerator: args.DecayNumerator,
		DecayDenom:     args.DecayDenom,
		LastDecayAt:    r.now(),
		Bump:           bump,
	}
	if err := write(r, accs.Global, g); err != nil {
		return err
	}
	reportRemaining(g.EmissionCap)
	r.emit("Initialized")
	return nil
}

// decay applies the elapsed decay periods up to now and returns how many were applied.
// The cap never increases and LastDecayAt only moves forward.
func (g *GlobalState) decay(now, interval uint64) uint64 {
	if interval == 0 || g.DecayNumerator == 0 || now <= g.LastDecayAt {
		return 0
	}
	periods := (now - g.LastDecayAt) / interval
	if periods == 0 {
		return 0
	}

	var (
		remaining = uint256.NewInt(g.EmissionCap)
		num       = uint256.NewInt(g.DecayNumerator)
		denom     = uint256.NewInt(g.DecayDenom)
		cut       = new(uint256.Int)
	)
	applied := uint64(0)
	for applied < periods && applied < maxDecaySteps {
		cut.Mul(remaining, num)
		cut.Div(cut, denom)
		if cut.IsZero() {
			// no further step can change the cap
			applied = periods
			break
		}
		remaining.Sub(remaining, cut)
		applied++
	}
	g.EmissionCap = remaining.Uint64()
	g.LastDecayAt += applied * interval
	return applied
}

// debit takes amount from the remaining budget.
func (g *GlobalState) debit(amount uint64) error {
	if g.EmissionCap < amount {
		return errorsmod.Wrapf(ErrCapExceeded, "remaining %d, requested %d", g.EmissionCap, amount)
	}
	g.EmissionCap -= amount
	g.TotalMinted = saturatingAdd(g.TotalMinted, amount)
	return nil
}
