// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tape

// Constants of the incentive protocol.
const (
	EpochWindow     uint64 = 120       // (unit: second) a proof must land within this window after the epoch opens.
	EpochReward     uint64 = 1_000_000 // reward units fixed into every epoch at creation.
	UnstakeCooldown uint64 = 3600      // (unit: second) reset by every stake.

	ChallengePenalty  uint32 = 1   // reputation lost by a challenged solver.
	SlashPenalty      uint32 = 10  // reputation lost per slash.
	InitialReputation uint32 = 100 // reputation of a freshly created miner.

	MaxObjectIDBits = 128 // object and epoch ids are unsigned 128-bit integers.
)

// Seed tags of derived accounts.
var (
	SeedGlobal      = []byte("global")
	SeedObject      = []byte("object")
	SeedEpoch       = []byte("epoch")
	SeedMiner       = []byte("miner")
	SeedRewardVault = []byte("reward_vault")
	SeedStakeVault  = []byte("stake_vault")
	SeedMint        = []byte("tape_mint")
)
