// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/tapedrive/tape/tape"
)

// Builder to make it easy to build transaction.
type Builder struct {
	body body
}

func NewBuilder(program tape.Address) *Builder {
	return &Builder{body: body{Program: program}}
}

// Data set the encoded instruction.
func (b *Builder) Data(data []byte) *Builder {
	b.body.Data = append([]byte(nil), data...)
	return b
}

// Account appends declared accounts.
func (b *Builder) Account(addrs ...tape.Address) *Builder {
	b.body.Accounts = append(b.body.Accounts, addrs...)
	return b
}

// Nonce set nonce.
func (b *Builder) Nonce(nonce uint64) *Builder {
	b.body.Nonce = nonce
	return b
}

// Build build tx object.
func (b *Builder) Build() *Transaction {
	tx := Transaction{body: b.body}
	tx.body.Accounts = append([]tape.Address(nil), b.body.Accounts...)
	return &tx
}
