// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pda

import (
	"github.com/tapedrive/tape/tape"
)

// Signer is the capability of a program to act as one of its derived addresses.
// It is handed explicitly to whoever needs the authority, e.g. a token transfer.
type Signer struct {
	program tape.Address
	seeds   [][]byte
	bump    byte
}

// NewSigner builds the signing capability of program over the derived address of seeds and bump.
func NewSigner(program tape.Address, bump byte, seeds ...[]byte) Signer {
	return Signer{program: program, seeds: seeds, bump: bump}
}

// Program returns the program owning the derived address.
func (s Signer) Program() tape.Address {
	return s.program
}

// Address returns the derived address the signer speaks for.
func (s Signer) Address() (tape.Address, error) {
	return Create(s.program, s.bump, s.seeds...)
}
