// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reward

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/tapedrive/tape/tape"
)

// StakeTokens locks amount from the miner's funding account into the stake vault,
// creating the ledger entry on first stake. Every stake restarts the cooldown.
func (r *Reward) StakeTokens(accs *StakeTokensAccounts, args *StakeTokens) error {
	if err := r.requireSigner(accs.Miner); err != nil {
		return err
	}
	if args.Amount == 0 {
		return errorsmod.Wrap(ErrInvalidArgument, "zero amount")
	}
	bump, err := r.requireDerived(accs.MinerAccount, MinerSeeds(accs.Miner))
	if err != nil {
		return err
	}
	g, err := r.loadGlobal(accs.Global)
	if err != nil {
		return err
	}
	if accs.StakeVault != g.StakeVault {
		return errorsmod.Wrapf(ErrAddressMismatch, "stake vault %v", accs.StakeVault)
	}

	exists, err := r.state.Exists(accs.MinerAccount)
	if err != nil {
		return err
	}
	miner := &MinerAccount{
		Miner:      accs.Miner,
		Reputation: tape.InitialReputation,
		Bump:       bump,
	}
	if exists {
		if err := read(r, accs.MinerAccount, miner); err != nil {
			return err
		}
	}

	if err := r.tokens.Transfer(accs.MinerFunding, accs.StakeVault, accs.Miner, args.Amount); err != nil {
		return transferError(err)
	}

	miner.Stake = saturatingAdd(miner.Stake, args.Amount)
	miner.UnstakeAvailableAt = r.now() + tape.UnstakeCooldownSeconds()
	if err := write(r, accs.MinerAccount, miner); err != nil {
		return err
	}
	r.emit("Staked", accs.Miner, args.Amount)
	return nil
}

// UnstakeTokens releases amount of stake back to the miner once the cooldown is over.
func (r *Reward) UnstakeTokens(accs *UnstakeTokensAccounts, args *UnstakeTokens) error {
	if err := r.requireSigner(accs.Miner); err != nil {
		return err
	}
	if args.Amount == 0 {
		return errorsmod.Wrap(ErrInvalidArgument, "zero amount")
	}
	miner, err := r.loadMiner(accs.MinerAccount, accs.Miner)
	if err != nil {
		return err
	}
	if now := r.now(); now < miner.UnstakeAvailableAt {
		return errorsmod.Wrapf(ErrCooldownActive, "available at %d, now %d", miner.UnstakeAvailableAt, now)
	}
	if miner.Stake < args.Amount {
		return errorsmod.Wrapf(ErrInsufficientFunds, "stake %d, requested %d", miner.Stake, args.Amount)
	}
	g, err := r.loadGlobal(accs.Global)
	if err != nil {
		return err
	}
	if accs.StakeVault != g.StakeVault {
		return errorsmod.Wrapf(ErrAddressMismatch, "stake vault %v", accs.StakeVault)
	}
	if err := r.requirePayout(accs.MinerPayout, accs.Miner, g.RewardMint); err != nil {
		return err
	}

	if err := r.tokens.TransferSigned(accs.StakeVault, accs.MinerPayout, r.globalSigner(g), args.Amount); err != nil {
		return transferError(err)
	}

	miner.Stake -= args.Amount
	if err := write(r, accs.MinerAccount, miner); err != nil {
		return err
	}
	r.emit("Unstaked", accs.Miner, args.Amount)
	return nil
}

// ClaimRewards pays out all pending rewards of the miner.
func (r *Reward) ClaimRewards(accs *ClaimRewardsAccounts) error {
	if err := r.requireSigner(accs.Miner); err != nil {
		return err
	}
	miner, err := r.loadMiner(accs.MinerAccount, accs.Miner)
	if err != nil {
		return err
	}
	if miner.PendingRewards == 0 {
		return ErrNothingToClaim
	}
	g, err := r.loadGlobal(accs.Global)
	if err != nil {
		return err
	}
	if accs.RewardVault != g.RewardVault {
		return errorsmod.Wrapf(ErrAddressMismatch, "reward vault %v", accs.RewardVault)
	}
	if err := r.requirePayout(accs.MinerPayout, accs.Miner, g.RewardMint); err != nil {
		return err
	}

	amount := miner.PendingRewards
	if err := r.tokens.TransferSigned(accs.RewardVault, accs.MinerPayout, r.globalSigner(g), amount); err != nil {
		return transferError(err)
	}

	miner.PendingRewards = 0
	if err := write(r, accs.MinerAccount, miner); err != nil {
		return err
	}
	r.emit("RewardsClaimed", accs.Miner, amount)
	return nil
}

// SlashMiner cuts stake and reputation of a miner. The slashed amount stays in the
// stake vault and is no longer attributed to anyone.
func (r *Reward) SlashMiner(accs *SlashMinerAccounts, args *SlashMiner) error {
	if err := r.requireSigner(accs.Admin); err != nil {
		return err
	}
	g, err := r.loadGlobal(accs.Global)
	if err != nil {
		return err
	}
	if g.Admin != accs.Admin {
		return errorsmod.Wrapf(ErrNotAdmin, "%v", accs.Admin)
	}
	miner, err := r.loadMiner(accs.MinerAccount, args.Miner)
	if err != nil {
		return err
	}

	miner.Stake = saturatingSub(miner.Stake, args.Amount)
	miner.Reputation = saturatingSub(miner.Reputation, tape.SlashPenalty)
	if err := write(r, accs.MinerAccount, miner); err != nil {
		return err
	}
	r.emit("MinerSlashed", args.Miner, args.Amount)
	return nil
}
