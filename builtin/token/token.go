// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token keeps mints and custodial token accounts in state, and moves value between them.
//
// Every operation validates all of its inputs before writing anything, so a failed call
// leaves state untouched.
package token

import (
	"errors"
	"math"

	"github.com/tapedrive/tape/log"
	"github.com/tapedrive/tape/pda"
	"github.com/tapedrive/tape/state"
	"github.com/tapedrive/tape/tape"
)

var logger = log.WithContext("pkg", "token")

var (
	ErrAccountNotFound   = errors.New("token: account not found")
	ErrAccountInUse      = errors.New("token: account already in use")
	ErrIllegalOwner      = errors.New("token: account not owned by the token program")
	ErrMintMismatch      = errors.New("token: mint mismatch")
	ErrOwnerMismatch     = errors.New("token: authority does not own the source account")
	ErrNotMintAuthority  = errors.New("token: not the mint authority")
	ErrInsufficientFunds = errors.New("token: insufficient funds")
	ErrOverflow          = errors.New("token: amount overflow")
)

// Token binds the token program to a state.
type Token struct {
	addr  tape.Address
	state *state.State
}

// New create a new instance.
func New(addr tape.Address, state *state.State) *Token {
	return &Token{addr, state}
}

// Address returns the token program id.
func (t *Token) Address() tape.Address {
	return t.addr
}

func (t *Token) load(addr tape.Address, kind byte, v any) error {
	acc, err := t.state.GetAccount(addr)
	if err != nil {
		return err
	}
	if acc.IsEmpty() {
		return ErrAccountNotFound
	}
	if acc.Owner != t.addr {
		return ErrIllegalOwner
	}
	return decode(kind, acc.Data, v)
}

func (t *Token) store(addr tape.Address, kind byte, v any) error {
	data, err := encode(kind, v)
	if err != nil {
		return err
	}
	t.state.SetAccount(addr, state.Account{Owner: t.addr, Data: data})
	return nil
}

func (t *Token) ensureUnused(addr tape.Address) error {
	exists, err := t.state.Exists(addr)
	if err != nil {
		return err
	}
	if exists {
		return ErrAccountInUse
	}
	return nil
}

// GetMint loads the mint at addr.
func (t *Token) GetMint(addr tape.Address) (*Mint, error) {
	var m Mint
	if err := t.load(addr, kindMint, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// GetAccount loads the token account at addr.
func (t *Token) GetAccount(addr tape.Address) (*Account, error) {
	var a Account
	if err := t.load(addr, kindAccount, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateMint creates an empty mint at an unused address.
func (t *Token) CreateMint(addr, authority tape.Address, decimals uint8) error {
	if err := t.ensureUnused(addr); err != nil {
		return err
	}
	logger.Debug("create mint", "mint", addr, "authority", authority)
	return t.store(addr, kindMint, &Mint{Authority: authority, Decimals: decimals})
}

// CreateAccount creates an empty token account of mint at an unused address.
func (t *Token) CreateAccount(addr, mint, owner tape.Address) error {
	if err := t.ensureUnused(addr); err != nil {
		return err
	}
	if _, err := t.GetMint(mint); err != nil {
		return err
	}
	logger.Debug("create account", "account", addr, "mint", mint, "owner", owner)
	return t.store(addr, kindAccount, &Account{Mint: mint, Owner: owner})
}

// MintTo issues amount new units into the account to.
// authority must be authenticated by the caller.
func (t *Token) MintTo(mint, to, authority tape.Address, amount uint64) error {
	m, err := t.GetMint(mint)
	if err != nil {
		return err
	}
	if m.Authority != authority {
		return ErrNotMintAuthority
	}
	dst, err := t.GetAccount(to)
	if err != nil {
		return err
	}
	if dst.Mint != mint {
		return ErrMintMismatch
	}
	if m.Supply > math.MaxUint64-amount || dst.Amount > math.MaxUint64-amount {
		return ErrOverflow
	}

	m.Supply += amount
	dst.Amount += amount
	if err := t.store(mint, kindMint, m); err != nil {
		return err
	}
	return t.store(to, kindAccount, dst)
}

// Transfer moves amount from one account to another of the same mint.
// authority must own the source account, and must be authenticated by the caller.
func (t *Token) Transfer(from, to, authority tape.Address, amount uint64) error {
	src, err := t.GetAccount(from)
	if err != nil {
		return err
	}
	dst, err := t.GetAccount(to)
	if err != nil {
		return err
	}
	if src.Owner != authority {
		return ErrOwnerMismatch
	}
	if src.Mint != dst.Mint {
		return ErrMintMismatch
	}
	if src.Amount < amount {
		return ErrInsufficientFunds
	}
	if from == to {
		return nil
	}
	if dst.Amount > math.MaxUint64-amount {
		return ErrOverflow
	}

	src.Amount -= amount
	dst.Amount += amount
	if err := t.store(from, kindAccount, src); err != nil {
		return err
	}
	if err := t.store(to, kindAccount, dst); err != nil {
		return err
	}
	logger.Debug("transfer", "from", from, "to", to, "amount", amount)
	return nil
}

// TransferSigned moves amount out of an account owned by a program derived address,
// authorized by the program's signing capability over that address.
func (t *Token) TransferSigned(from, to tape.Address, signer pda.Signer, amount uint64) error {
	authority, err := signer.Address()
	if err != nil {
		return err
	}
	return t.Transfer(from, to, authority, amount)
}
