// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/tapedrive/tape/builtin"
	"github.com/tapedrive/tape/builtin/reward"
	"github.com/tapedrive/tape/builtin/token"
	"github.com/tapedrive/tape/pda"
	"github.com/tapedrive/tape/state"
	"github.com/tapedrive/tape/tape"
)

// Genesis to build genesis state.
type Genesis struct {
	builder *Builder
	name    string
	params  tape.Config
}

// Build build the genesis state.
func (g *Genesis) Build(stater *state.Stater) (tape.Bytes32, []string, error) {
	return g.builder.Build(stater)
}

// Name returns network name.
func (g *Genesis) Name() string {
	return g.name
}

// Params returns the protocol tunables of the network.
func (g *Genesis) Params() tape.Config {
	return g.params
}

// MintAddress returns the address of the reward mint.
func MintAddress() tape.Address {
	addr, _, err := pda.Find(builtin.Token.Address, tape.SeedMint)
	if err != nil {
		panic(err)
	}
	return addr
}

// Addresses are the well known accounts of a deployment.
type Addresses struct {
	Mint        tape.Address `json:"mint"`
	Global      tape.Address `json:"global"`
	RewardVault tape.Address `json:"rewardVault"`
	StakeVault  tape.Address `json:"stakeVault"`
}

// WellKnown derives the well known accounts.
func WellKnown() (*Addresses, error) {
	program := builtin.Reward.Address
	mint := MintAddress()
	global, _, err := reward.GlobalAddress(program)
	if err != nil {
		return nil, err
	}
	rewardVault, _, err := reward.RewardVaultAddress(program, mint)
	if err != nil {
		return nil, err
	}
	stakeVault, _, err := reward.StakeVaultAddress(program, mint)
	if err != nil {
		return nil, err
	}
	return &Addresses{mint, global, rewardVault, stakeVault}, nil
}

// Wallet returns the reward token account of owner.
func Wallet(owner tape.Address) tape.Address {
	return token.WalletAddress(MintAddress(), owner)
}
