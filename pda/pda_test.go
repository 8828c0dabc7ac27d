// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pda

import (
	"bytes"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/tapedrive/tape/tape"
)

var program = tape.BytesToAddress([]byte("reward program"))

func TestFindCreate(t *testing.T) {
	addr, bump, err := Find(program, tape.SeedGlobal)
	require.NoError(t, err)

	created, err := Create(program, bump, tape.SeedGlobal)
	require.NoError(t, err)
	assert.Equal(t, addr, created)

	again, bump2, err := Find(program, tape.SeedGlobal)
	require.NoError(t, err)
	assert.Equal(t, addr, again)
	assert.Equal(t, bump, bump2)

	other, _, err := Find(tape.BytesToAddress([]byte("another program")), tape.SeedGlobal)
	require.NoError(t, err)
	assert.NotEqual(t, addr, other, "program id is part of the derivation")

	miner, _, err := Find(program, tape.SeedMiner, []byte("miner"))
	require.NoError(t, err)
	assert.NotEqual(t, addr, miner)
}

func TestOnCurve(t *testing.T) {
	// x coordinate of the secp256k1 generator
	gx := tape.MustParseBytes32("0x79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798")
	assert.True(t, onCurve(gx))

	// not a field element
	var ff tape.Bytes32
	for i := range ff {
		ff[i] = 0xff
	}
	assert.False(t, onCurve(ff))
}

func TestSeedLimits(t *testing.T) {
	_, _, err := Find(program, bytes.Repeat([]byte{1}, MaxSeedLen+1))
	assert.ErrorIs(t, err, ErrMaxSeedLengthExceeded)

	seeds := make([][]byte, MaxSeeds+1)
	_, err = Create(program, 1, seeds...)
	assert.ErrorIs(t, err, ErrTooManySeeds)
}

func TestSigner(t *testing.T) {
	addr, bump, err := Find(program, tape.SeedGlobal)
	require.NoError(t, err)

	signer := NewSigner(program, bump, tape.SeedGlobal)
	got, err := signer.Address()
	require.NoError(t, err)
	assert.Equal(t, addr, got)
	assert.Equal(t, program, signer.Program())
}

func TestU128(t *testing.T) {
	assert.Equal(t, []byte{42, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, U128(uint256.NewInt(42)))
	assert.Equal(t, []byte{0xe9, 0x03, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, U128(uint256.NewInt(1001)))

	max := new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 128), uint256.NewInt(1))
	assert.Equal(t, bytes.Repeat([]byte{0xff}, 16), U128(max))
}

// Every address found is reproducible with its bump and is not a curve point.
func TestFindProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.SliceOfN(rapid.Byte(), 0, MaxSeedLen).Draw(t, "seed")
		addr, bump, err := Find(program, tape.SeedObject, seed)
		if err != nil {
			t.Fatal(err)
		}
		created, err := Create(program, bump, tape.SeedObject, seed)
		if err != nil {
			t.Fatal(err)
		}
		if created != addr {
			t.Fatalf("create %v != find %v", created, addr)
		}
		for b := int(bump) + 1; b <= 255; b++ {
			if _, err := Create(program, byte(b), tape.SeedObject, seed); err != ErrInvalidSeeds {
				t.Fatalf("bump %d above the found one must be invalid, got %v", b, err)
			}
		}
	})
}
