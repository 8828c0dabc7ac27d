// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/tapedrive/tape/cache"
	"github.com/tapedrive/tape/kv"
	"github.com/tapedrive/tape/stackedmap"
	"github.com/tapedrive/tape/tape"
)

// AccountBucket is the kv bucket holding accounts.
const AccountBucket = kv.Bucket("a")

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// State manages the accounts of one execution context.
type State struct {
	getter   kv.Getter
	store    kv.Store
	accounts *cache.LRU[tape.Address, *Account] // committed accounts, shared across states
	sm       *stackedmap.StackedMap[tape.Address, *Account]
}

// New create state object over the given store.
// accounts is an optional cache of committed accounts.
func New(store kv.Store, accounts *cache.LRU[tape.Address, *Account]) *State {
	s := &State{
		getter:   AccountBucket.NewGetter(store),
		store:    store,
		accounts: accounts,
	}
	s.sm = stackedmap.New(s.load)
	s.sm.Push() // base level, never reverted
	return s
}

// load implements stackedmap.Getter.
func (s *State) load(addr tape.Address) (*Account, bool, error) {
	var (
		acc *Account
		err error
	)
	if s.accounts != nil {
		acc, err = s.accounts.GetOrLoad(addr, func(addr tape.Address) (*Account, error) {
			return loadAccount(s.getter, addr)
		})
	} else {
		acc, err = loadAccount(s.getter, addr)
	}
	if err != nil {
		return nil, false, err
	}
	return acc, true, nil
}

// getAccount gets account by address. the returned account should not be modified.
func (s *State) getAccount(addr tape.Address) (*Account, error) {
	acc, _, err := s.sm.Get(addr)
	if err != nil {
		return nil, &Error{err}
	}
	return acc, nil
}

// GetAccount returns a copy of the account at addr, empty if it doesn't exist.
func (s *State) GetAccount(addr tape.Address) (Account, error) {
	acc, err := s.getAccount(addr)
	if err != nil {
		return Account{}, err
	}
	return acc.Copy(), nil
}

// SetAccount replaces the account at addr.
func (s *State) SetAccount(addr tape.Address, acc Account) {
	cpy := acc.Copy()
	s.sm.Put(addr, &cpy)
}

// GetOwner returns the owner of the account at addr.
func (s *State) GetOwner(addr tape.Address) (tape.Address, error) {
	acc, err := s.getAccount(addr)
	if err != nil {
		return tape.Address{}, err
	}
	return acc.Owner, nil
}

// GetData returns a copy of the data of the account at addr.
func (s *State) GetData(addr tape.Address) ([]byte, error) {
	acc, err := s.getAccount(addr)
	if err != nil {
		return nil, err
	}
	return acc.Copy().Data, nil
}

// SetData replaces the data of the account at addr, keeping its owner.
func (s *State) SetData(addr tape.Address, data []byte) error {
	acc, err := s.getAccount(addr)
	if err != nil {
		return err
	}
	s.SetAccount(addr, Account{Owner: acc.Owner, Data: data})
	return nil
}

// Exists returns whether an account exists at the given address.
// See Account.IsEmpty()
func (s *State) Exists(addr tape.Address) (bool, error) {
	acc, err := s.getAccount(addr)
	if err != nil {
		return false, err
	}
	return !acc.IsEmpty(), nil
}

// Delete deletes the account at the given address.
func (s *State) Delete(addr tape.Address) {
	s.sm.Put(addr, emptyAccount())
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	if revision < 1 {
		panic("state: invalid checkpoint revision")
	}
	s.sm.PopTo(revision)
}

// Stage collects all journaled changes, ready to be committed.
func (s *State) Stage() *Stage {
	changes := make(map[tape.Address]*Account)
	s.sm.Journal(func(addr tape.Address, acc *Account) bool {
		changes[addr] = acc
		return true
	})
	return &Stage{
		store:    s.store,
		accounts: s.accounts,
		changes:  changes,
	}
}
