// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"

	"github.com/tapedrive/tape/tape"
)

func RandAddress() (addr tape.Address) {
	rand.Read(addr[:])
	return
}

// RandomHash returns random 32 bytes, usable as a commitment, proof or evidence hash.
func RandomHash() (h tape.Bytes32) {
	rand.Read(h[:])
	return
}

func RandBytes(n int) []byte {
	b := make([]byte, n)
	rand.Read(b)
	return b
}
