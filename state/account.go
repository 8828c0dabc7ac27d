// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/tapedrive/tape/kv"
	"github.com/tapedrive/tape/tape"
)

// Account is an owned, binary encoded record.
// RLP encoded accounts are stored in the accounts bucket.
type Account struct {
	Owner tape.Address // program or principal allowed to write Data
	Data  []byte
}

// IsEmpty returns if an account is empty.
// An empty account has no owner and no data, and is deleted on commit.
func (a *Account) IsEmpty() bool {
	return a.Owner.IsZero() && len(a.Data) == 0
}

// Copy returns a deep copy.
func (a *Account) Copy() Account {
	return Account{
		Owner: a.Owner,
		Data:  bytes.Clone(a.Data),
	}
}

func emptyAccount() *Account {
	return &Account{}
}

// loadAccount load an account object by address in the accounts bucket.
// If the given address is not found, an empty account is returned.
func loadAccount(getter kv.Getter, addr tape.Address) (*Account, error) {
	data, err := getter.Get(addr[:])
	if err != nil {
		if getter.IsNotFound(err) {
			return emptyAccount(), nil
		}
		return nil, err
	}
	var a Account
	if err := rlp.DecodeBytes(data, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// saveAccount save account into the bucket putter at given address.
// Empty accounts are deleted.
func saveAccount(putter kv.Putter, addr tape.Address, a *Account) error {
	if a.IsEmpty() {
		return putter.Delete(addr[:])
	}
	data, err := rlp.EncodeToBytes(a)
	if err != nil {
		return err
	}
	return putter.Put(addr[:], data)
}
