// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package pda derives program addresses: account addresses computed from a program id
// and a seed tuple, for which no private key exists.
package pda

import (
	"errors"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/holiman/uint256"

	"github.com/tapedrive/tape/tape"
)

const (
	// MaxSeeds is the maximum count of seeds, bump excluded.
	MaxSeeds = 16
	// MaxSeedLen is the maximum length of a single seed.
	MaxSeedLen = 32
)

var (
	ErrMaxSeedLengthExceeded = errors.New("pda: length of the seed is too long")
	ErrTooManySeeds          = errors.New("pda: too many seeds")
	ErrInvalidSeeds          = errors.New("pda: seeds derive a point on the curve")
	ErrNoViableBump          = errors.New("pda: unable to find a viable bump")

	marker = []byte("ProgramDerivedAddress")
)

func checkSeeds(seeds [][]byte) error {
	if len(seeds) > MaxSeeds {
		return ErrTooManySeeds
	}
	for _, s := range seeds {
		if len(s) > MaxSeedLen {
			return ErrMaxSeedLengthExceeded
		}
	}
	return nil
}

func derive(program tape.Address, bump []byte, seeds [][]byte) tape.Bytes32 {
	return tape.Blake2bFn(func(w io.Writer) {
		for _, s := range seeds {
			w.Write(s)
		}
		w.Write(bump)
		w.Write(program[:])
		w.Write(marker)
	})
}

// onCurve reports whether h is the x coordinate of a secp256k1 point.
// Hashes on the curve could have a private key, so they are never used as derived addresses.
func onCurve(h tape.Bytes32) bool {
	var compressed [33]byte
	compressed[0] = secp256k1.PubKeyFormatCompressedEven
	copy(compressed[1:], h[:])
	_, err := secp256k1.ParsePubKey(compressed[:])
	return err == nil
}

func toAddress(h tape.Bytes32) tape.Address {
	return tape.BytesToAddress(h[12:])
}

// Create derives the address for the exact seeds and bump.
func Create(program tape.Address, bump byte, seeds ...[]byte) (tape.Address, error) {
	if err := checkSeeds(seeds); err != nil {
		return tape.Address{}, err
	}
	h := derive(program, []byte{bump}, seeds)
	if onCurve(h) {
		return tape.Address{}, ErrInvalidSeeds
	}
	return toAddress(h), nil
}

// Find searches the highest bump yielding a valid derived address for the seeds.
func Find(program tape.Address, seeds ...[]byte) (tape.Address, byte, error) {
	if err := checkSeeds(seeds); err != nil {
		return tape.Address{}, 0, err
	}
	for bump := 255; bump >= 0; bump-- {
		h := derive(program, []byte{byte(bump)}, seeds)
		if !onCurve(h) {
			return toAddress(h), byte(bump), nil
		}
	}
	return tape.Address{}, 0, ErrNoViableBump
}

// U128 encodes a 128-bit id as the 16 byte little endian seed.
// Higher bits are ignored.
func U128(id *uint256.Int) []byte {
	b32 := id.Bytes32()
	seed := make([]byte, 16)
	for i := range seed {
		seed[i] = b32[31-i]
	}
	return seed
}
