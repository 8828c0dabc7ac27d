// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reward

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"

	"github.com/tapedrive/tape/tape"
)

// Tag identifies an instruction on the wire.
type Tag byte

const (
	TagInitialize Tag = iota
	TagRegisterObject
	TagCreateEpoch
	TagSubmitProof
	TagChallengeProof
	TagFinalizeEpoch
	TagStakeTokens
	TagUnstakeTokens
	TagClaimRewards
	TagSlashMiner
)

var tagNames = [...]string{
	TagInitialize:     "Initialize",
	TagRegisterObject: "RegisterObject",
	TagCreateEpoch:    "CreateEpoch",
	TagSubmitProof:    "SubmitProof",
	TagChallengeProof: "ChallengeProof",
	TagFinalizeEpoch:  "FinalizeEpoch",
	TagStakeTokens:    "StakeTokens",
	TagUnstakeTokens:  "UnstakeTokens",
	TagClaimRewards:   "ClaimRewards",
	TagSlashMiner:     "SlashMiner",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return fmt.Sprintf("Tag(%d)", byte(t))
}

// Instruction is one of the payload types below.
type Instruction interface {
	Tag() Tag
	handle(r *Reward, accounts []tape.Address) error
}

// Instruction payloads. The account list each one expects is documented on its Accounts type.
type (
	Initialize struct {
		DecayNumerator uint64
		DecayDenom     uint64
		EmissionCap    uint64
	}

	RegisterObject struct {
		Commitment      tape.Bytes32
		ProofType       ProofType
		Size            uint64
		RetentionEpochs uint64
		ObjectID        *uint256.Int
	}

	CreateEpoch struct {
		ObjectID *uint256.Int
		Nonce    uint64
		EpochID  *uint256.Int
	}

	SubmitProof struct {
		EpochID   *uint256.Int
		ProofHash tape.Bytes32
	}

	ChallengeProof struct {
		EpochID      *uint256.Int
		EvidenceHash tape.Bytes32
	}

	FinalizeEpoch struct {
		EpochID *uint256.Int
	}

	StakeTokens struct {
		Amount uint64
	}

	UnstakeTokens struct {
		Amount uint64
	}

	ClaimRewards struct{}

	SlashMiner struct {
		Miner  tape.Address
		Amount uint64
	}
)

func (*Initialize) Tag() Tag     { return TagInitialize }
func (*RegisterObject) Tag() Tag { return TagRegisterObject }
func (*CreateEpoch) Tag() Tag    { return TagCreateEpoch }
func (*SubmitProof) Tag() Tag    { return TagSubmitProof }
func (*ChallengeProof) Tag() Tag { return TagChallengeProof }
func (*FinalizeEpoch) Tag() Tag  { return TagFinalizeEpoch }
func (*StakeTokens) Tag() Tag    { return TagStakeTokens }
func (*UnstakeTokens) Tag() Tag  { return TagUnstakeTokens }
func (*ClaimRewards) Tag() Tag   { return TagClaimRewards }
func (*SlashMiner) Tag() Tag     { return TagSlashMiner }

// EncodeInstruction serializes ins as its tag byte followed by the rlp payload.
func EncodeInstruction(ins Instruction) ([]byte, error) {
	payload, err := rlp.EncodeToBytes(ins)
	if err != nil {
		return nil, errorsmod.Wrap(ErrInvalidInstruction, err.Error())
	}
	return append([]byte{byte(ins.Tag())}, payload...), nil
}

// DecodeInstruction parses data produced by EncodeInstruction.
func DecodeInstruction(data []byte) (Instruction, error) {
	if len(data) == 0 {
		return nil, errorsmod.Wrap(ErrInvalidInstruction, "empty instruction")
	}
	var ins Instruction
	switch Tag(data[0]) {
	case TagInitialize:
		ins = new(Initialize)
	case TagRegisterObject:
		ins = new(RegisterObject)
	case TagCreateEpoch:
		ins = new(CreateEpoch)
	case TagSubmitProof:
		ins = new(SubmitProof)
	case TagChallengeProof:
		ins = new(ChallengeProof)
	case TagFinalizeEpoch:
		ins = new(FinalizeEpoch)
	case TagStakeTokens:
		ins = new(StakeTokens)
	case TagUnstakeTokens:
		ins = new(UnstakeTokens)
	case TagClaimRewards:
		ins = new(ClaimRewards)
	case TagSlashMiner:
		ins = new(SlashMiner)
	default:
		return nil, errorsmod.Wrapf(ErrInvalidInstruction, "unknown tag %d", data[0])
	}
	if err := rlp.DecodeBytes(data[1:], ins); err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidInstruction, "%v: %v", ins.Tag(), err)
	}
	return ins, nil
}

// Account lists, in wire order.
type (
	InitializeAccounts struct {
		Admin, Global, RewardMint, RewardVault, StakeVault tape.Address
	}
	RegisterObjectAccounts struct {
		Owner, Object tape.Address
	}
	CreateEpochAccounts struct {
		Caller, Object, Epoch tape.Address
	}
	SubmitProofAccounts struct {
		Miner, Epoch, MinerAccount, Global tape.Address
	}
	ChallengeProofAccounts struct {
		Challenger, Epoch, MinerAccount tape.Address
	}
	FinalizeEpochAccounts struct {
		Caller, Epoch, Global, RewardVault, MinerPayout tape.Address
	}
	StakeTokensAccounts struct {
		Miner, MinerFunding, MinerAccount, Global, StakeVault tape.Address
	}
	UnstakeTokensAccounts struct {
		Miner, MinerAccount, Global, StakeVault, MinerPayout tape.Address
	}
	ClaimRewardsAccounts struct {
		Miner, MinerAccount, Global, RewardVault, MinerPayout tape.Address
	}
	SlashMinerAccounts struct {
		Admin, MinerAccount, Global tape.Address
	}
)

func (a *InitializeAccounts) List() []tape.Address {
	return []tape.Address{a.Admin, a.Global, a.RewardMint, a.RewardVault, a.StakeVault}
}

func (a *RegisterObjectAccounts) List() []tape.Address {
	return []tape.Address{a.Owner, a.Object}
}

func (a *CreateEpochAccounts) List() []tape.Address {
	return []tape.Address{a.Caller, a.Object, a.Epoch}
}

func (a *SubmitProofAccounts) List() []tape.Address {
	return []tape.Address{a.Miner, a.Epoch, a.MinerAccount, a.Global}
}

func (a *ChallengeProofAccounts) List() []tape.Address {
	return []tape.Address{a.Challenger, a.Epoch, a.MinerAccount}
}

func (a *FinalizeEpochAccounts) List() []tape.Address {
	return []tape.Address{a.Caller, a.Epoch, a.Global, a.RewardVault, a.MinerPayout}
}

func (a *StakeTokensAccounts) List() []tape.Address {
	return []tape.Address{a.Miner, a.MinerFunding, a.MinerAccount, a.Global, a.StakeVault}
}

func (a *UnstakeTokensAccounts) List() []tape.Address {
	return []tape.Address{a.Miner, a.MinerAccount, a.Global, a.StakeVault, a.MinerPayout}
}

func (a *ClaimRewardsAccounts) List() []tape.Address {
	return []tape.Address{a.Miner, a.MinerAccount, a.Global, a.RewardVault, a.MinerPayout}
}

func (a *SlashMinerAccounts) List() []tape.Address {
	return []tape.Address{a.Admin, a.MinerAccount, a.Global}
}

// unpack assigns the leading accounts to dst in order.
func unpack(accounts []tape.Address, dst ...*tape.Address) error {
	if len(accounts) < len(dst) {
		return errorsmod.Wrapf(ErrInvalidInstruction, "expected %d accounts, got %d", len(dst), len(accounts))
	}
	for i, d := range dst {
		*d = accounts[i]
	}
	return nil
}

func (ins *Initialize) handle(r *Reward, accounts []tape.Address) error {
	var a InitializeAccounts
	if err := unpack(accounts, &a.Admin, &a.Global, &a.RewardMint, &a.RewardVault, &a.StakeVault); err != nil {
		return err
	}
	return r.Initialize(&a, ins)
}

func (ins *RegisterObject) handle(r *Reward, accounts []tape.Address) error {
	var a RegisterObjectAccounts
	if err := unpack(accounts, &a.Owner, &a.Object); err != nil {
		return err
	}
	return r.RegisterObject(&a, ins)
}

func (ins *CreateEpoch) handle(r *Reward, accounts []tape.Address) error {
	var a CreateEpochAccounts
	if err := unpack(accounts, &a.Caller, &a.Object, &a.Epoch); err != nil {
		return err
	}
	return r.CreateEpoch(&a, ins)
}

func (ins *SubmitProof) handle(r *Reward, accounts []tape.Address) error {
	var a SubmitProofAccounts
	if err := unpack(accounts, &a.Miner, &a.Epoch, &a.MinerAccount, &a.Global); err != nil {
		return err
	}
	return r.SubmitProof(&a, ins)
}

func (ins *ChallengeProof) handle(r *Reward, accounts []tape.Address) error {
	var a ChallengeProofAccounts
	if err := unpack(accounts, &a.Challenger, &a.Epoch, &a.MinerAccount); err != nil {
		return err
	}
	return r.ChallengeProof(&a, ins)
}

func (ins *FinalizeEpoch) handle(r *Reward, accounts []tape.Address) error {
	var a FinalizeEpochAccounts
	if err := unpack(accounts, &a.Caller, &a.Epoch, &a.Global, &a.RewardVault, &a.MinerPayout); err != nil {
		return err
	}
	return r.FinalizeEpoch(&a, ins)
}

func (ins *StakeTokens) handle(r *Reward, accounts []tape.Address) error {
	var a StakeTokensAccounts
	if err := unpack(accounts, &a.Miner, &a.MinerFunding, &a.MinerAccount, &a.Global, &a.StakeVault); err != nil {
		return err
	}
	return r.StakeTokens(&a, ins)
}

func (ins *UnstakeTokens) handle(r *Reward, accounts []tape.Address) error {
	var a UnstakeTokensAccounts
	if err := unpack(accounts, &a.Miner, &a.MinerAccount, &a.Global, &a.StakeVault, &a.MinerPayout); err != nil {
		return err
	}
	return r.UnstakeTokens(&a, ins)
}

func (ins *ClaimRewards) handle(r *Reward, accounts []tape.Address) error {
	var a ClaimRewardsAccounts
	if err := unpack(accounts, &a.Miner, &a.MinerAccount, &a.Global, &a.RewardVault, &a.MinerPayout); err != nil {
		return err
	}
	return r.ClaimRewards(&a)
}

func (ins *SlashMiner) handle(r *Reward, accounts []tape.Address) error {
	var a SlashMinerAccounts
	if err := unpack(accounts, &a.Admin, &a.MinerAccount, &a.Global); err != nil {
		return err
	}
	return r.SlashMiner(&a, ins)
}
