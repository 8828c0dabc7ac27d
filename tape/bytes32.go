// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tape

import (
	"encoding"

	"github.com/ethereum/go-ethereum/common"
)

// Bytes32 array of 32 bytes. Used for commitments, proof hashes and evidence hashes.
// Its text form, in JSON and YAML alike, is 0x-prefixed hex.
type Bytes32 [32]byte

var (
	_ encoding.TextMarshaler   = Bytes32{}
	_ encoding.TextUnmarshaler = (*Bytes32)(nil)
)

func (b Bytes32) String() string { return encodeHex(b[:]) }

// Bytes returns byte slice form of Bytes32.
func (b Bytes32) Bytes() []byte { return b[:] }

// IsZero returns if Bytes32 has all zero bytes.
func (b Bytes32) IsZero() bool { return b == Bytes32{} }

// MarshalText implements encoding.TextMarshaler.
func (b Bytes32) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Bytes32) UnmarshalText(text []byte) error {
	var parsed Bytes32
	if err := decodeHex(parsed[:], string(text)); err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseBytes32 parses hex, optionally 0x-prefixed, into Bytes32.
func ParseBytes32(s string) (b Bytes32, err error) {
	err = b.UnmarshalText([]byte(s))
	return
}

// MustParseBytes32 convert string presented into Bytes32 type, panic on error.
func MustParseBytes32(s string) Bytes32 {
	b32, err := ParseBytes32(s)
	if err != nil {
		panic(err)
	}
	return b32
}

// BytesToBytes32 converts bytes slice into Bytes32.
// If b is larger than Bytes32 length, b will be cropped (from the left).
// If b is smaller than Bytes32 length, b will be extended (from the left).
func BytesToBytes32(b []byte) Bytes32 {
	return Bytes32(common.BytesToHash(b))
}
