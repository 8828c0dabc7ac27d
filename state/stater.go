// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/tapedrive/tape/cache"
	"github.com/tapedrive/tape/kv"
	"github.com/tapedrive/tape/tape"
)

const accountCacheSize = 4096

// Stater is the state creator. States it creates share a cache of committed accounts.
type Stater struct {
	store    kv.Store
	accounts *cache.LRU[tape.Address, *Account]
}

// NewStater create a new stater.
func NewStater(store kv.Store) *Stater {
	accounts, _ := cache.NewLRU[tape.Address, *Account](accountCacheSize)
	return &Stater{store, accounts}
}

// NewState create a new state object.
func (s *Stater) NewState() *State {
	return New(s.store, s.accounts)
}
