// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	mathrand "math/rand/v2"

	"github.com/holiman/uint256"
)

func RandUint64() uint64 {
	return mathrand.Uint64() //#nosec G404
}

// RandID returns a random unsigned 128-bit identifier.
func RandID() *uint256.Int {
	return new(uint256.Int).SetBytes16(RandBytes(16))
}
