// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reward

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/tapedrive/tape/tape"
)

// ProofType is the kind of possession proof an object expects.
// Values other than CompactHash and Snark are carried as opaque tags.
type ProofType uint8

const (
	ProofCompactHash ProofType = 0
	ProofSnark       ProofType = 1
)

func (p ProofType) String() string {
	switch p {
	case ProofCompactHash:
		return "CompactHash"
	case ProofSnark:
		return "Snark"
	default:
		return fmt.Sprintf("Other(%d)", uint8(p))
	}
}

// EpochStatus is the lifecycle state of an epoch.
//
//	Open -> Submitted -> Finalized
//	          |-> Challenged
//	Open -> Challenged (late submission)
type EpochStatus uint8

const (
	EpochOpen EpochStatus = iota
	EpochSubmitted
	EpochChallenged
	EpochFinalized
)

func (s EpochStatus) String() string {
	switch s {
	case EpochOpen:
		return "Open"
	case EpochSubmitted:
		return "Submitted"
	case EpochChallenged:
		return "Challenged"
	case EpochFinalized:
		return "Finalized"
	default:
		return fmt.Sprintf("EpochStatus(%d)", uint8(s))
	}
}

type (
	// GlobalState is the protocol singleton.
	GlobalState struct {
		Admin          tape.Address
		RewardMint     tape.Address
		RewardVault    tape.Address
		StakeVault     tape.Address
		TotalMinted    uint64
		EmissionCap    uint64 // remaining budget
		DecayNumerator uint64
		DecayDenom     uint64
		LastDecayAt    uint64
		Bump           uint8
	}

	// ObjectRecord describes a stored data object.
	ObjectRecord struct {
		Owner           tape.Address
		Commitment      tape.Bytes32
		ProofType       ProofType
		Size            uint64
		CreatedAt       uint64
		RetentionEpochs uint64
		Bump            uint8
	}

	// EpochRecord is one proof round of an object.
	EpochRecord struct {
		ObjectID     *uint256.Int
		EpochID      *uint256.Int
		Nonce        uint64
		Deadline     uint64
		Solver       *tape.Address `rlp:"nil"`
		ProofHash    tape.Bytes32
		Status       EpochStatus
		Reward       uint64
		Challenger   *tape.Address `rlp:"nil"`
		EvidenceHash tape.Bytes32
		Bump         uint8
	}

	// MinerAccount is the ledger entry of a miner.
	MinerAccount struct {
		Miner              tape.Address
		Stake              uint64
		PendingRewards     uint64
		Reputation         uint32
		UnstakeAvailableAt uint64
		Bump               uint8
	}
)
