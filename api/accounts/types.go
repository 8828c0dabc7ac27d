// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/tapedrive/tape/builtin/reward"
	"github.com/tapedrive/tape/tape"
)

// Account is the raw form of a state account.
type Account struct {
	Owner tape.Address  `json:"owner"`
	Data  hexutil.Bytes `json:"data"`
}

// TokenAccount is a balance of the token program.
type TokenAccount struct {
	Mint   tape.Address `json:"mint"`
	Owner  tape.Address `json:"owner"`
	Amount uint64       `json:"amount"`
}

type Global struct {
	Address        tape.Address `json:"address"`
	Admin          tape.Address `json:"admin"`
	RewardMint     tape.Address `json:"rewardMint"`
	RewardVault    tape.Address `json:"rewardVault"`
	StakeVault     tape.Address `json:"stakeVault"`
	TotalMinted    uint64       `json:"totalMinted"`
	EmissionCap    uint64       `json:"emissionCap"`
	DecayNumerator uint64       `json:"decayNumerator"`
	DecayDenom     uint64       `json:"decayDenom"`
	LastDecayAt    uint64       `json:"lastDecayAt"`
}

func convertGlobal(addr tape.Address, g *reward.GlobalState) *Global {
	return &Global{
		Address:        addr,
		Admin:          g.Admin,
		RewardMint:     g.RewardMint,
		RewardVault:    g.RewardVault,
		StakeVault:     g.StakeVault,
		TotalMinted:    g.TotalMinted,
		EmissionCap:    g.EmissionCap,
		DecayNumerator: g.DecayNumerator,
		DecayDenom:     g.DecayDenom,
		LastDecayAt:    g.LastDecayAt,
	}
}

type Object struct {
	Address         tape.Address `json:"address"`
	Owner           tape.Address `json:"owner"`
	Commitment      tape.Bytes32 `json:"commitment"`
	ProofType       string       `json:"proofType"`
	Size            uint64       `json:"size"`
	CreatedAt       uint64       `json:"createdAt"`
	RetentionEpochs uint64       `json:"retentionEpochs"`
}

func convertObject(addr tape.Address, o *reward.ObjectRecord) *Object {
	return &Object{
		Address:         addr,
		Owner:           o.Owner,
		Commitment:      o.Commitment,
		ProofType:       o.ProofType.String(),
		Size:            o.Size,
		CreatedAt:       o.CreatedAt,
		RetentionEpochs: o.RetentionEpochs,
	}
}

// Epoch renders ids as decimal strings, they may exceed the JSON safe integer range.
type Epoch struct {
	Address      tape.Address  `json:"address"`
	ObjectID     string        `json:"objectID"`
	EpochID      string        `json:"epochID"`
	Nonce        uint64        `json:"nonce"`
	Deadline     uint64        `json:"deadline"`
	Status       string        `json:"status"`
	Reward       uint64        `json:"reward"`
	Solver       *tape.Address `json:"solver"`
	ProofHash    tape.Bytes32  `json:"proofHash"`
	Challenger   *tape.Address `json:"challenger"`
	EvidenceHash tape.Bytes32  `json:"evidenceHash"`
}

func convertEpoch(addr tape.Address, e *reward.EpochRecord) *Epoch {
	return &Epoch{
		Address:      addr,
		ObjectID:     e.ObjectID.Dec(),
		EpochID:      e.EpochID.Dec(),
		Nonce:        e.Nonce,
		Deadline:     e.Deadline,
		Status:       e.Status.String(),
		Reward:       e.Reward,
		Solver:       e.Solver,
		ProofHash:    e.ProofHash,
		Challenger:   e.Challenger,
		EvidenceHash: e.EvidenceHash,
	}
}

type Miner struct {
	Address            tape.Address `json:"address"`
	Miner              tape.Address `json:"miner"`
	Stake              uint64       `json:"stake"`
	PendingRewards     uint64       `json:"pendingRewards"`
	Reputation         uint32       `json:"reputation"`
	UnstakeAvailableAt uint64       `json:"unstakeAvailableAt"`
}

func convertMiner(addr tape.Address, m *reward.MinerAccount) *Miner {
	return &Miner{
		Address:            addr,
		Miner:              m.Miner,
		Stake:              m.Stake,
		PendingRewards:     m.PendingRewards,
		Reputation:         m.Reputation,
		UnstakeAvailableAt: m.UnstakeAvailableAt,
	}
}
