// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"io"
	"slices"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/tapedrive/tape/cache"
	"github.com/tapedrive/tape/kv"
	"github.com/tapedrive/tape/tape"
)

// Stage abstracts the changes of a state.
type Stage struct {
	store    kv.Store
	accounts *cache.LRU[tape.Address, *Account]
	changes  map[tape.Address]*Account
}

func (s *Stage) sortedAddresses() []tape.Address {
	addrs := make([]tape.Address, 0, len(s.changes))
	for addr := range s.changes {
		addrs = append(addrs, addr)
	}
	slices.SortFunc(addrs, func(a, b tape.Address) int {
		return bytes.Compare(a[:], b[:])
	})
	return addrs
}

// Len returns the count of changed accounts.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Hash returns the digest of all changes, ordered by address.
func (s *Stage) Hash() tape.Bytes32 {
	return tape.Blake2bFn(func(w io.Writer) {
		for _, addr := range s.sortedAddresses() {
			w.Write(addr[:])
			rlp.Encode(w, s.changes[addr])
		}
	})
}

// Commit writes all changes atomically into the store.
func (s *Stage) Commit() error {
	batch := AccountBucket.NewBatch(s.store.NewBatch())
	for _, addr := range s.sortedAddresses() {
		if err := saveAccount(batch, addr, s.changes[addr]); err != nil {
			return &Error{err}
		}
	}
	if err := batch.Write(); err != nil {
		return &Error{err}
	}
	if s.accounts != nil {
		for addr, acc := range s.changes {
			s.accounts.Add(addr, acc)
		}
	}
	return nil
}
