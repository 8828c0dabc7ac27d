// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"crypto/ecdsa"
	"time"

	"github.com/holiman/uint256"

	"github.com/tapedrive/tape/builtin"
	"github.com/tapedrive/tape/builtin/reward"
	"github.com/tapedrive/tape/genesis"
	"github.com/tapedrive/tape/tape"
	"github.com/tapedrive/tape/tx"
)

// call is an instruction together with the accounts it operates on, in wire order.
type call struct {
	ins      reward.Instruction
	accounts []tape.Address
}

// sign packs c into a transaction signed by key.
func (c *call) sign(key *ecdsa.PrivateKey) (*tx.Transaction, error) {
	data, err := reward.EncodeInstruction(c.ins)
	if err != nil {
		return nil, err
	}
	trx := tx.NewBuilder(builtin.Reward.Address).
		Data(data).
		Account(c.accounts...).
		Nonce(uint64(time.Now().UnixNano())).
		Build()
	return tx.Sign(trx, key)
}

var program = builtin.Reward.Address

func registerObjectCall(owner tape.Address, objectID *uint256.Int, commitment tape.Bytes32, proofType reward.ProofType, size, retention uint64) (*call, error) {
	object, _, err := reward.ObjectAddress(program, owner, objectID)
	if err != nil {
		return nil, err
	}
	return &call{
		ins: &reward.RegisterObject{
			Commitment:      commitment,
			ProofType:       proofType,
			Size:            size,
			RetentionEpochs: retention,
			ObjectID:        objectID,
		},
		accounts: (&reward.RegisterObjectAccounts{Owner: owner, Object: object}).List(),
	}, nil
}

func createEpochCall(caller, owner tape.Address, objectID, epochID *uint256.Int, nonce uint64) (*call, error) {
	object, _, err := reward.ObjectAddress(program, owner, objectID)
	if err != nil {
		return nil, err
	}
	epoch, _, err := reward.EpochAddress(program, objectID, epochID)
	if err != nil {
		return nil, err
	}
	return &call{
		ins:      &reward.CreateEpoch{ObjectID: objectID, Nonce: nonce, EpochID: epochID},
		accounts: (&reward.CreateEpochAccounts{Caller: caller, Object: object, Epoch: epoch}).List(),
	}, nil
}

func submitProofCall(miner tape.Address, objectID, epochID *uint256.Int, proof tape.Bytes32) (*call, error) {
	epoch, _, err := reward.EpochAddress(program, objectID, epochID)
	if err != nil {
		return nil, err
	}
	minerAccount, _, err := reward.MinerAddress(program, miner)
	if err != nil {
		return nil, err
	}
	addrs, err := genesis.WellKnown()
	if err != nil {
		return nil, err
	}
	return &call{
		ins: &reward.SubmitProof{EpochID: epochID, ProofHash: proof},
		accounts: (&reward.SubmitProofAccounts{
			Miner:        miner,
			Epoch:        epoch,
			MinerAccount: minerAccount,
			Global:       addrs.Global,
		}).List(),
	}, nil
}

// challengeProofCall disputes the proof that solver submitted.
func challengeProofCall(challenger, solver tape.Address, objectID, epochID *uint256.Int, evidence tape.Bytes32) (*call, error) {
	epoch, _, err := reward.EpochAddress(program, objectID, epochID)
	if err != nil {
		return nil, err
	}
	minerAccount, _, err := reward.MinerAddress(program, solver)
	if err != nil {
		return nil, err
	}
	return &call{
		ins: &reward.ChallengeProof{EpochID: epochID, EvidenceHash: evidence},
		accounts: (&reward.ChallengeProofAccounts{
			Challenger:   challenger,
			Epoch:        epoch,
			MinerAccount: minerAccount,
		}).List(),
	}, nil
}

// finalizeEpochCall pays solver, who must be the recorded solver of the epoch.
func finalizeEpochCall(caller, solver tape.Address, objectID, epochID *uint256.Int) (*call, error) {
	epoch, _, err := reward.EpochAddress(program, objectID, epochID)
	if err != nil {
		return nil, err
	}
	addrs, err := genesis.WellKnown()
	if err != nil {
		return nil, err
	}
	return &call{
		ins: &reward.FinalizeEpoch{EpochID: epochID},
		accounts: (&reward.FinalizeEpochAccounts{
			Caller:      caller,
			Epoch:       epoch,
			Global:      addrs.Global,
			RewardVault: addrs.RewardVault,
			MinerPayout: genesis.Wallet(solver),
		}).List(),
	}, nil
}

func stakeCall(miner tape.Address, amount uint64) (*call, error) {
	minerAccount, _, err := reward.MinerAddress(program, miner)
	if err != nil {
		return nil, err
	}
	addrs, err := genesis.WellKnown()
	if err != nil {
		return nil, err
	}
	return &call{
		ins: &reward.StakeTokens{Amount: amount},
		accounts: (&reward.StakeTokensAccounts{
			Miner:        miner,
			MinerFunding: genesis.Wallet(miner),
			MinerAccount: minerAccount,
			Global:       addrs.Global,
			StakeVault:   addrs.StakeVault,
		}).List(),
	}, nil
}

func unstakeCall(miner tape.Address, amount uint64) (*call, error) {
	minerAccount, _, err := reward.MinerAddress(program, miner)
	if err != nil {
		return nil, err
	}
	addrs, err := genesis.WellKnown()
	if err != nil {
		return nil, err
	}
	return &call{
		ins: &reward.UnstakeTokens{Amount: amount},
		accounts: (&reward.UnstakeTokensAccounts{
			Miner:        miner,
			MinerAccount: minerAccount,
			Global:       addrs.Global,
			StakeVault:   addrs.StakeVault,
			MinerPayout:  genesis.Wallet(miner),
		}).List(),
	}, nil
}

func claimCall(miner tape.Address) (*call, error) {
	minerAccount, _, err := reward.MinerAddress(program, miner)
	if err != nil {
		return nil, err
	}
	addrs, err := genesis.WellKnown()
	if err != nil {
		return nil, err
	}
	return &call{
		ins: &reward.ClaimRewards{},
		accounts: (&reward.ClaimRewardsAccounts{
			Miner:        miner,
			MinerAccount: minerAccount,
			Global:       addrs.Global,
			RewardVault:  addrs.RewardVault,
			MinerPayout:  genesis.Wallet(miner),
		}).List(),
	}, nil
}

func slashCall(admin, miner tape.Address, amount uint64) (*call, error) {
	minerAccount, _, err := reward.MinerAddress(program, miner)
	if err != nil {
		return nil, err
	}
	addrs, err := genesis.WellKnown()
	if err != nil {
		return nil, err
	}
	return &call{
		ins: &reward.SlashMiner{Miner: miner, Amount: amount},
		accounts: (&reward.SlashMinerAccounts{
			Admin:        admin,
			MinerAccount: minerAccount,
			Global:       addrs.Global,
		}).List(),
	}, nil
}
