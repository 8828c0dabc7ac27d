// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/tapedrive/tape/tape"
)

const (
	kindMint    byte = 1
	kindAccount byte = 2
)

type (
	// Mint describes a fungible asset.
	Mint struct {
		Authority tape.Address // allowed to mint new units
		Supply    uint64
		Decimals  uint8
	}

	// Account is a custodial balance of one mint, controlled by Owner.
	Account struct {
		Mint   tape.Address
		Owner  tape.Address
		Amount uint64
	}
)

func encode(kind byte, v any) ([]byte, error) {
	body, err := rlp.EncodeToBytes(v)
	if err != nil {
		return nil, err
	}
	return append([]byte{kind}, body...), nil
}

func decode(kind byte, data []byte, v any) error {
	if len(data) == 0 || data[0] != kind {
		return errors.Errorf("token: unexpected record kind")
	}
	return errors.Wrap(rlp.DecodeBytes(data[1:], v), "token: decode")
}
