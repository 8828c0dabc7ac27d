// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tape

// Config is the configurable parameters of the protocol. Every parameter has a default value and
// is 'locked' for production deployments. For testing purposes or custom networks, the parameters can be updated.

var (
	epochWindow     = EpochWindow
	epochReward     = EpochReward
	unstakeCooldown = UnstakeCooldown
	decayInterval   uint64 // 0 disables emission decay

	locked bool
)

type Config struct {
	EpochWindow     uint64 `json:"epochWindow" yaml:"epochWindow"`         // seconds between epoch creation and its proof deadline.
	EpochReward     uint64 `json:"epochReward" yaml:"epochReward"`         // reward fixed into new epochs.
	UnstakeCooldown uint64 `json:"unstakeCooldown" yaml:"unstakeCooldown"` // seconds a stake stays locked.
	DecayInterval   uint64 `json:"decayInterval" yaml:"decayInterval"`     // seconds per emission decay step.
}

// SetConfig sets the config.
// Zero fields keep their current value.
// If the config is locked, will panic.
func SetConfig(cfg Config) {
	if locked {
		panic("config is locked, cannot be set")
	}

	if cfg.EpochWindow != 0 {
		epochWindow = cfg.EpochWindow
	}

	if cfg.EpochReward != 0 {
		epochReward = cfg.EpochReward
	}

	if cfg.UnstakeCooldown != 0 {
		unstakeCooldown = cfg.UnstakeCooldown
	}

	if cfg.DecayInterval != 0 {
		decayInterval = cfg.DecayInterval
	}
}

// LockConfig locks the config, preventing any further changes.
func LockConfig() {
	locked = true
}

// CurrentConfig returns the effective parameters.
func CurrentConfig() Config {
	return Config{
		EpochWindow:     epochWindow,
		EpochReward:     epochReward,
		UnstakeCooldown: unstakeCooldown,
		DecayInterval:   decayInterval,
	}
}

func EpochWindowSeconds() uint64 {
	return epochWindow
}

func EpochRewardAmount() uint64 {
	return epochReward
}

func UnstakeCooldownSeconds() uint64 {
	return unstakeCooldown
}

func DecayInterval() uint64 {
	return decayInterval
}
