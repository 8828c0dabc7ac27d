// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/tapedrive/tape/builtin"
	"github.com/tapedrive/tape/builtin/reward"
	"github.com/tapedrive/tape/state"
	"github.com/tapedrive/tape/tape"
)

// CustomGenesis is user customized genesis
type CustomGenesis struct {
	Name        string       `yaml:"name" json:"name"`
	LaunchTime  uint64       `yaml:"launchTime" json:"launchTime"`
	Admin       tape.Address `yaml:"admin" json:"admin"`
	Decimals    uint8        `yaml:"decimals" json:"decimals"`
	VaultSupply uint64       `yaml:"vaultSupply" json:"vaultSupply"`
	Emission    Emission     `yaml:"emission" json:"emission"`
	Accounts    []Account    `yaml:"accounts" json:"accounts"`
	Params      tape.Config  `yaml:"params" json:"params"`
}

// Emission is the initial emission schedule.
type Emission struct {
	Cap            uint64 `yaml:"cap" json:"cap"`
	DecayNumerator uint64 `yaml:"decayNumerator" json:"decayNumerator"`
	DecayDenom     uint64 `yaml:"decayDenom" json:"decayDenom"`
}

// Account is a funded wallet of the reward token.
type Account struct {
	Address tape.Address `yaml:"address" json:"address"`
	Balance uint64       `yaml:"balance" json:"balance"`
}

// LoadCustomGenesis reads a YAML genesis file. Unknown fields are rejected.
func LoadCustomGenesis(path string) (*CustomGenesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var gen CustomGenesis
	if err := dec.Decode(&gen); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	return &gen, nil
}

// NewCustomNet create custom network genesis.
func NewCustomNet(gen *CustomGenesis) (*Genesis, error) {
	if gen.Admin.IsZero() {
		return nil, errors.New("admin must be set")
	}
	if gen.Emission.DecayDenom == 0 || gen.Emission.DecayNumerator > gen.Emission.DecayDenom {
		return nil, errors.Errorf("invalid decay fraction %d/%d", gen.Emission.DecayNumerator, gen.Emission.DecayDenom)
	}
	seen := make(map[tape.Address]bool, len(gen.Accounts))
	for _, a := range gen.Accounts {
		if a.Balance == 0 {
			return nil, errors.Errorf("%v: balance must be a non-zero integer", a.Address)
		}
		if seen[a.Address] {
			return nil, errors.Errorf("%v: duplicated account", a.Address)
		}
		seen[a.Address] = true
	}

	known, err := WellKnown()
	if err != nil {
		return nil, err
	}

	initialize, err := reward.EncodeInstruction(&reward.Initialize{
		DecayNumerator: gen.Emission.DecayNumerator,
		DecayDenom:     gen.Emission.DecayDenom,
		EmissionCap:    gen.Emission.Cap,
	})
	if err != nil {
		return nil, err
	}
	accounts := reward.InitializeAccounts{
		Admin:       gen.Admin,
		Global:      known.Global,
		RewardMint:  known.Mint,
		RewardVault: known.RewardVault,
		StakeVault:  known.StakeVault,
	}

	builder := new(Builder).
		Timestamp(gen.LaunchTime).
		State(func(state *state.State) error {
			tk := builtin.Token.WithState(state)
			if err := tk.CreateMint(known.Mint, gen.Admin, gen.Decimals); err != nil {
				return errors.Wrap(err, "create mint")
			}
			for _, vault := range []tape.Address{known.RewardVault, known.StakeVault} {
				if err := tk.CreateAccount(vault, known.Mint, known.Global); err != nil {
					return errors.Wrapf(err, "create vault %v", vault)
				}
			}
			if gen.VaultSupply > 0 {
				if err := tk.MintTo(known.Mint, known.RewardVault, gen.Admin, gen.VaultSupply); err != nil {
					return errors.Wrap(err, "fund reward vault")
				}
			}
			for _, a := range gen.Accounts {
				wallet := Wallet(a.Address)
				if err := tk.CreateAccount(wallet, known.Mint, a.Address); err != nil {
					return errors.Wrapf(err, "create wallet of %v", a.Address)
				}
				if err := tk.MintTo(known.Mint, wallet, gen.Admin, a.Balance); err != nil {
					return errors.Wrapf(err, "fund wallet of %v", a.Address)
				}
			}
			return nil
		}).
		Call(builtin.Reward.Address, initialize, accounts.List(), gen.Admin)

	name := gen.Name
	if name == "" {
		name = "customnet"
	}
	return &Genesis{builder, name, gen.Params}, nil
}
