// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"math/big"
	"strings"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/tapedrive/tape/tape"
)

// ParseAddress parses a path or query parameter into an address, as a bad request on failure.
func ParseAddress(name, s string) (tape.Address, error) {
	addr, err := tape.ParseAddress(s)
	if err != nil {
		return tape.Address{}, BadRequest(errors.WithMessage(err, name))
	}
	return addr, nil
}

// ParseID parses a decimal or 0x prefixed hex 128-bit identifier.
func ParseID(name, s string) (*uint256.Int, error) {
	var (
		b  *big.Int
		ok bool
	)
	if hex, found := strings.CutPrefix(strings.ToLower(s), "0x"); found {
		b, ok = new(big.Int).SetString(hex, 16)
	} else {
		b, ok = new(big.Int).SetString(s, 10)
	}
	if !ok || b.Sign() < 0 {
		return nil, BadRequest(errors.Errorf("%s: invalid id %q", name, s))
	}
	if b.BitLen() > tape.MaxObjectIDBits {
		return nil, BadRequest(errors.Errorf("%s: exceeds %d bits", name, tape.MaxObjectIDBits))
	}
	id, _ := uint256.FromBig(b)
	return id, nil
}
