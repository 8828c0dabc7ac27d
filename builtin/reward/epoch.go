// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reward

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/tapedrive/tape/builtin/reverts"
	"github.com/tapedrive/tape/tape"
)

// CreateEpoch opens a proof round against a registered object. Anyone may open one.
func (r *Reward) CreateEpoch(accs *CreateEpochAccounts, args *CreateEpoch) error {
	if err := r.requireSigner(accs.Caller); err != nil {
		return err
	}
	if err := requireID(args.ObjectID); err != nil {
		return err
	}
	if err := requireID(args.EpochID); err != nil {
		return err
	}
	var obj ObjectRecord
	if err := read(r, accs.Object, &obj); err != nil {
		return err
	}
	if _, err := r.requireDerived(accs.Object, ObjectSeeds(obj.Owner, args.ObjectID)); err != nil {
		return err
	}
	bump, err := r.requireDerived(accs.Epoch, EpochSeeds(args.ObjectID, args.EpochID))
	if err != nil {
		return err
	}
	if err := r.requireEmpty(accs.Epoch); err != nil {
		return err
	}

	ep := &EpochRecord{
		ObjectID: args.ObjectID.Clone(),
		EpochID:  args.EpochID.Clone(),
		Nonce:    args.Nonce,
		Deadline: r.now() + tape.EpochWindowSeconds(),
		Status:   EpochOpen,
		Reward:   tape.EpochRewardAmount(),
		Bump:     bump,
	}
	if err := write(r, accs.Epoch, ep); err != nil {
		return err
	}
	r.emit("EpochCreated", args.EpochID, args.Nonce)
	return nil
}

// SubmitProof records the signer as solver of an open epoch and credits the reward
// to its ledger entry.
//
// A submission after the deadline moves the epoch to Challenged and fails; that write
// is kept. The budget is debited only when it covers the reward, while the miner is
// credited regardless.
func (r *Reward) SubmitProof(accs *SubmitProofAccounts, args *SubmitProof) error {
	if err := r.requireSigner(accs.Miner); err != nil {
		return err
	}
	ep, err := r.loadEpoch(accs.Epoch, args.EpochID)
	if err != nil {
		return err
	}
	if ep.Status != EpochOpen {
		return errorsmod.Wrapf(ErrInvalidStatus, "epoch is %v", ep.Status)
	}

	now := r.now()
	if now > ep.Deadline {
		ep.Status = EpochChallenged
		if err := write(r, accs.Epoch, ep); err != nil {
			return err
		}
		logger.Info("late proof submission", "epoch", ep.EpochID, "miner", accs.Miner, "deadline", ep.Deadline, "now", now)
		return reverts.Sticky(errorsmod.Wrapf(ErrDeadlineExceeded, "deadline %d, now %d", ep.Deadline, now))
	}

	miner, err := r.loadMiner(accs.MinerAccount, accs.Miner)
	if err != nil {
		return err
	}
	g, err := r.loadGlobal(accs.Global)
	if err != nil {
		return err
	}

	if steps := g.decay(now, tape.DecayInterval()); steps > 0 {
		logger.Debug("emission decayed", "steps", steps, "remaining", g.EmissionCap)
	}
	miner.PendingRewards = saturatingAdd(miner.PendingRewards, ep.Reward)
	if err := g.debit(ep.Reward); err != nil {
		logger.Warn("reward credited without emission budget", "epoch", ep.EpochID, "miner", accs.Miner, "err", err)
		metricEmissionSkipped().Add(1)
	}

	solver := accs.Miner
	ep.Solver = &solver
	ep.ProofHash = args.ProofHash
	ep.Status = EpochSubmitted

	if err := write(r, accs.Epoch, ep); err != nil {
		return err
	}
	if err := write(r, accs.MinerAccount, miner); err != nil {
		return err
	}
	if err := write(r, accs.Global, g); err != nil {
		return err
	}
	reportRemaining(g.EmissionCap)
	r.emit("EpochSubmitted", ep.EpochID)
	return nil
}

// ChallengeProof disputes a submitted proof. The evidence is stored for off-chain
// adjudication and the solver loses reputation.
func (r *Reward) ChallengeProof(accs *ChallengeProofAccounts, args *ChallengeProof) error {
	if err := r.requireSigner(accs.Challenger); err != nil {
		return err
	}
	ep, err := r.loadEpoch(accs.Epoch, args.EpochID)
	if err != nil {
		return err
	}
	if ep.Status != EpochSubmitted || ep.Solver == nil {
		return errorsmod.Wrapf(ErrInvalidStatus, "epoch is %v", ep.Status)
	}
	miner, err := r.loadMiner(accs.MinerAccount, *ep.Solver)
	if err != nil {
		return err
	}

	challenger := accs.Challenger
	ep.Status = EpochChallenged
	ep.Challenger = &challenger
	ep.EvidenceHash = args.EvidenceHash
	miner.Reputation = saturatingSub(miner.Reputation, tape.ChallengePenalty)

	if err := write(r, accs.Epoch, ep); err != nil {
		return err
	}
	if err := write(r, accs.MinerAccount, miner); err != nil {
		return err
	}
	r.emit("EpochChallenged", ep.EpochID, args.EvidenceHash)
	return nil
}

// FinalizeEpoch pays the solver of a submitted epoch from the reward vault.
func (r *Reward) FinalizeEpoch(accs *FinalizeEpochAccounts, args *FinalizeEpoch) error {
	if err := r.requireSigner(accs.Caller); err != nil {
		return err
	}
	ep, err := r.loadEpoch(accs.Epoch, args.EpochID)
	if err != nil {
		return err
	}
	switch {
	case ep.Status == EpochChallenged:
		return errorsmod.Wrapf(ErrUnderDispute, "epoch %v", ep.EpochID)
	case ep.Status != EpochSubmitted || ep.Solver == nil:
		return errorsmod.Wrapf(ErrInvalidStatus, "epoch is %v", ep.Status)
	}
	g, err := r.loadGlobal(accs.Global)
	if err != nil {
		return err
	}
	if accs.RewardVault != g.RewardVault {
		return errorsmod.Wrapf(ErrAddressMismatch, "reward vault %v", accs.RewardVault)
	}
	if err := r.requirePayout(accs.MinerPayout, *ep.Solver, g.RewardMint); err != nil {
		return err
	}

	if err := r.tokens.TransferSigned(accs.RewardVault, accs.MinerPayout, r.globalSigner(g), ep.Reward); err != nil {
		return transferError(err)
	}

	ep.Status = EpochFinalized
	if err := write(r, accs.Epoch, ep); err != nil {
		return err
	}
	r.emit("EpochFinalized", ep.EpochID, ep.Reward)
	return nil
}
