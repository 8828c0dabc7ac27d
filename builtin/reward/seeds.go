// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reward

import (
	"github.com/holiman/uint256"

	"github.com/tapedrive/tape/pda"
	"github.com/tapedrive/tape/tape"
)

// Derivations of the accounts the program owns or controls.

func GlobalSeeds() [][]byte {
	return [][]byte{tape.SeedGlobal}
}

func ObjectSeeds(owner tape.Address, objectID *uint256.Int) [][]byte {
	return [][]byte{tape.SeedObject, owner.Bytes(), pda.U128(objectID)}
}

func EpochSeeds(objectID, epochID *uint256.Int) [][]byte {
	return [][]byte{tape.SeedEpoch, pda.U128(objectID), pda.U128(epochID)}
}

func MinerSeeds(miner tape.Address) [][]byte {
	return [][]byte{tape.SeedMiner, miner.Bytes()}
}

func RewardVaultSeeds(mint tape.Address) [][]byte {
	return [][]byte{tape.SeedRewardVault, mint.Bytes()}
}

func StakeVaultSeeds(mint tape.Address) [][]byte {
	return [][]byte{tape.SeedStakeVault, mint.Bytes()}
}

// GlobalAddress returns the singleton address of program.
func GlobalAddress(program tape.Address) (tape.Address, byte, error) {
	return pda.Find(program, GlobalSeeds()...)
}

func ObjectAddress(program, owner tape.Address, objectID *uint256.Int) (tape.Address, byte, error) {
	return pda.Find(program, ObjectSeeds(owner, objectID)...)
}

func EpochAddress(program tape.Address, objectID, epochID *uint256.Int) (tape.Address, byte, error) {
	return pda.Find(program, EpochSeeds(objectID, epochID)...)
}

func MinerAddress(program, miner tape.Address) (tape.Address, byte, error) {
	return pda.Find(program, MinerSeeds(miner)...)
}

func RewardVaultAddress(program, mint tape.Address) (tape.Address, byte, error) {
	return pda.Find(program, RewardVaultSeeds(mint)...)
}

func StakeVaultAddress(program, mint tape.Address) (tape.Address, byte, error) {
	return pda.Find(program, StakeVaultSeeds(mint)...)
}
