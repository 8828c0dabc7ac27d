// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tape

import (
	"crypto/ecdsa"
	"encoding"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	// AddressLength length of address in bytes.
	AddressLength = common.AddressLength
)

// Address identifies an account or a principal.
// Principals are derived from secp256k1 public keys, derived accounts come from package pda.
type Address common.Address

var (
	_ encoding.TextMarshaler   = Address{}
	_ encoding.TextUnmarshaler = (*Address)(nil)
)

// PrincipalOf returns the principal controlled by pub: the last 20 bytes of the keccak-256
// digest of its uncompressed form, without the 0x04 prefix.
func PrincipalOf(pub *ecdsa.PublicKey) Address {
	h := Keccak256(crypto.FromECDSAPub(pub)[1:])
	return BytesToAddress(h[12:])
}

func (a Address) String() string { return encodeHex(a[:]) }

// Bytes returns byte slice form of address.
func (a Address) Bytes() []byte { return a[:] }

// IsZero returns if address is all zero bytes.
func (a Address) IsZero() bool { return a == Address{} }

// MarshalText implements encoding.TextMarshaler. JSON and YAML use it too.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	var parsed Address
	if err := decodeHex(parsed[:], string(text)); err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAddress parses hex, optionally 0x-prefixed, into Address.
func ParseAddress(s string) (addr Address, err error) {
	err = addr.UnmarshalText([]byte(s))
	return
}

// MustParseAddress parses the string as address and panics on failure.
func MustParseAddress(s string) Address {
	addr, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return addr
}

// BytesToAddress converts bytes slice into address.
// If b is larger than address length, b will be cropped (from the left).
// If b is smaller than address length, b will be extended (from the left).
func BytesToAddress(b []byte) Address {
	return Address(common.BytesToAddress(b))
}
