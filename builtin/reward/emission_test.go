// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reward

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/tapedrive/tape/tape"
)

func TestInitialize(t *testing.T) {
	f := newFixture(t)
	f.initialize(5_000_000)

	g := f.globalState()
	_, bump, err := GlobalAddress(programID)
	require.NoError(t, err)
	assert.Equal(t, &GlobalState{
		Admin:          admin,
		RewardMint:     rewardMint,
		RewardVault:    f.rewardVault,
		StakeVault:     f.stakeVault,
		EmissionCap:    5_000_000,
		DecayNumerator: 1,
		DecayDenom:     10,
		LastDecayAt:    genesisTime,
		Bump:           bump,
	}, g)
	assert.Equal(t, []string{"EVENT:Initialized"}, f.events)

	err = f.exec(admin, &Initialize{DecayNumerator: 1, DecayDenom: 2, EmissionCap: 1}, f.initAccounts().List())
	assert.ErrorIs(t, err, ErrAlreadyInitialized)
	assert.Equal(t, uint64(5_000_000), f.globalState().EmissionCap)
}

func TestInitializeRejects(t *testing.T) {
	valid := &Initialize{DecayNumerator: 1, DecayDenom: 10, EmissionCap: 1000}

	tests := []struct {
		name   string
		signer tape.Address
		args   *Initialize
		mutate func(f *fixture, a *InitializeAccounts)
		want   error
	}{
		{"missing signature", stranger, valid, nil, ErrMissingSignature},
		{"zero denominator", admin, &Initialize{DecayNumerator: 0, DecayDenom: 0}, nil, ErrInvalidArgument},
		{"fraction above one", admin, &Initialize{DecayNumerator: 3, DecayDenom: 2}, nil, ErrInvalidArgument},
		{"wrong global", admin, valid, func(_ *fixture, a *InitializeAccounts) { a.Global = stranger }, ErrAddressMismatch},
		{"wrong reward vault", admin, valid, func(f *fixture, a *InitializeAccounts) { a.RewardVault = f.stakeVault }, ErrAddressMismatch},
		{"wrong stake vault", admin, valid, func(f *fixture, a *InitializeAccounts) { a.StakeVault = f.rewardVault }, ErrAddressMismatch},
		{"foreign mint", admin, valid, func(_ *fixture, a *InitializeAccounts) { a.RewardMint = stranger }, ErrAddressMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			accs := f.initAccounts()
			if tt.mutate != nil {
				tt.mutate(f, accs)
			}
			err := f.raw(tt.signer, tt.args, accs.List())
			assert.ErrorIs(t, err, tt.want)
			exists, err := f.st.Exists(f.global)
			require.NoError(t, err)
			assert.False(t, exists)
		})
	}
}

func TestInitializeVaultOwner(t *testing.T) {
	f := newFixture(t)
	// a reward vault controlled by a principal instead of the global address
	rv, _, err := RewardVaultAddress(programID, rewardMint)
	require.NoError(t, err)
	f.st.Delete(rv)
	require.NoError(t, f.tk.CreateAccount(rv, rewardMint, admin))

	err = f.raw(admin, &Initialize{DecayNumerator: 1, DecayDenom: 10}, f.initAccounts().List())
	assert.ErrorIs(t, err, ErrIllegalOwner)
}

func TestDecay(t *testing.T) {
	tests := []struct {
		name        string
		g           GlobalState
		now         uint64
		interval    uint64
		wantCap     uint64
		wantLast    uint64
		wantApplied uint64
	}{
		{"disabled", GlobalState{EmissionCap: 1000, DecayNumerator: 1, DecayDenom: 10}, 500, 0, 1000, 0, 0},
		{"no numerator", GlobalState{EmissionCap: 1000, DecayDenom: 10}, 500, 100, 1000, 0, 0},
		{"within period", GlobalState{EmissionCap: 1000, DecayNumerator: 1, DecayDenom: 10, LastDecayAt: 100}, 150, 100, 1000, 100, 0},
		{"one period", GlobalState{EmissionCap: 1000, DecayNumerator: 1, DecayDenom: 10, LastDecayAt: 100}, 250, 100, 900, 200, 1},
		{"three periods", GlobalState{EmissionCap: 1000, DecayNumerator: 1, DecayDenom: 10}, 300, 100, 729, 300, 3},
		{"full decay", GlobalState{EmissionCap: 1000, DecayNumerator: 1, DecayDenom: 1}, 300, 100, 0, 300, 3},
		{"clock behind", GlobalState{EmissionCap: 1000, DecayNumerator: 1, DecayDenom: 10, LastDecayAt: 500}, 300, 100, 1000, 500, 0},
		{"cut rounds to zero", GlobalState{EmissionCap: 5, DecayNumerator: 1, DecayDenom: 10}, 1000, 100, 5, 1000, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.g
			applied := g.decay(tt.now, tt.interval)
			assert.Equal(t, tt.wantApplied, applied)
			assert.Equal(t, tt.wantCap, g.EmissionCap)
			assert.Equal(t, tt.wantLast, g.LastDecayAt)
		})
	}
}

func TestDecayBounded(t *testing.T) {
	g := GlobalState{EmissionCap: ^uint64(0), DecayNumerator: 1, DecayDenom: 1 << 40}
	applied := g.decay(1<<32, 1)
	assert.Equal(t, uint64(maxDecaySteps), applied)
	assert.Equal(t, uint64(maxDecaySteps), g.LastDecayAt)
}

func TestDecayProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		denom := rapid.Uint64Range(1, 1<<32).Draw(t, "denom")
		g := GlobalState{
			EmissionCap:    rapid.Uint64().Draw(t, "cap"),
			DecayNumerator: rapid.Uint64Range(0, denom).Draw(t, "num"),
			DecayDenom:     denom,
			LastDecayAt:    rapid.Uint64Range(0, 1<<40).Draw(t, "last"),
		}
		before := g
		now := rapid.Uint64Range(0, 1<<41).Draw(t, "now")
		interval := rapid.Uint64Range(0, 1<<20).Draw(t, "interval")

		g.decay(now, interval)
		if g.EmissionCap > before.EmissionCap {
			t.Fatalf("cap grew from %d to %d", before.EmissionCap, g.EmissionCap)
		}
		if g.LastDecayAt < before.LastDecayAt {
			t.Fatalf("last decay moved back from %d to %d", before.LastDecayAt, g.LastDecayAt)
		}
		if g.LastDecayAt > before.LastDecayAt && g.LastDecayAt > now {
			t.Fatalf("last decay %d beyond now %d", g.LastDecayAt, now)
		}
	})
}

func TestDebit(t *testing.T) {
	g := GlobalState{EmissionCap: 100, TotalMinted: 7}
	require.NoError(t, g.debit(60))
	assert.Equal(t, uint64(40), g.EmissionCap)
	assert.Equal(t, uint64(67), g.TotalMinted)

	err := g.debit(41)
	assert.ErrorIs(t, err, ErrCapExceeded)
	assert.Equal(t, KindCapExceeded, Classify(err))
	assert.Equal(t, uint64(40), g.EmissionCap)
	assert.Equal(t, uint64(67), g.TotalMinted)
}

func TestGaugeValue(t *testing.T) {
	assert.Equal(t, int64(0), gaugeValue(0))
	assert.Equal(t, int64(1_000_000), gaugeValue(1_000_000))
	assert.Equal(t, int64(math.MaxInt64), gaugeValue(math.MaxInt64))
	assert.Equal(t, int64(math.MaxInt64), gaugeValue(math.MaxUint64))
}
