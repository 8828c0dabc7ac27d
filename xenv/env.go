// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"slices"

	"github.com/tapedrive/tape/state"
	"github.com/tapedrive/tape/tape"
)

// TransactionContext transaction context.
type TransactionContext struct {
	ID      tape.Bytes32
	Signers []tape.Address // principals whose signatures were verified
	Time    uint64         // unix seconds, read once per transaction
}

// Environment an env to execute a program instruction.
type Environment struct {
	program  tape.Address
	state    *state.State
	txCtx    *TransactionContext
	accounts []tape.Address
	events   []string
}

// New create a new env.
func New(
	program tape.Address,
	state *state.State,
	txCtx *TransactionContext,
	accounts []tape.Address,
) *Environment {
	return &Environment{
		program:  program,
		state:    state,
		txCtx:    txCtx,
		accounts: accounts,
	}
}

func (env *Environment) Program() tape.Address                   { return env.program }
func (env *Environment) State() *state.State                     { return env.state }
func (env *Environment) TransactionContext() *TransactionContext { return env.txCtx }
func (env *Environment) Now() uint64                             { return env.txCtx.Time }

// Accounts returns the accounts declared by the instruction, in order.
func (env *Environment) Accounts() []tape.Address {
	return env.accounts
}

// IsSigner reports whether addr signed the transaction.
func (env *Environment) IsSigner(addr tape.Address) bool {
	return slices.Contains(env.txCtx.Signers, addr)
}

// Emit records an event line.
func (env *Environment) Emit(event string) {
	env.events = append(env.events, event)
}

// Events returns the events emitted so far.
func (env *Environment) Events() []string {
	return env.events
}

// ResetEvents drops the events emitted so far, used when the instruction is reverted.
func (env *Environment) ResetEvents() {
	env.events = nil
}
