// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tapedrive/tape/tape"
)

func TestEnvironment(t *testing.T) {
	alice := tape.BytesToAddress([]byte("alice"))
	bob := tape.BytesToAddress([]byte("bob"))
	program := tape.BytesToAddress([]byte("Reward"))

	env := New(program, nil, &TransactionContext{Signers: []tape.Address{alice}, Time: 1700000000}, []tape.Address{alice, bob})

	assert.Equal(t, program, env.Program())
	assert.Equal(t, uint64(1700000000), env.Now())
	assert.True(t, env.IsSigner(alice))
	assert.False(t, env.IsSigner(bob))
	assert.Equal(t, []tape.Address{alice, bob}, env.Accounts())

	env.Emit("EVENT:Initialized")
	env.Emit("EVENT:Staked:x:1")
	assert.Equal(t, []string{"EVENT:Initialized", "EVENT:Staked:x:1"}, env.Events())
	env.ResetEvents()
	assert.Empty(t, env.Events())
}
