// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"github.com/tapedrive/tape/tape"
)

var walletSeed = []byte("wallet")

// WalletAddress returns the conventional token account of owner for mint.
func WalletAddress(mint, owner tape.Address) tape.Address {
	h := tape.Blake2b(walletSeed, mint.Bytes(), owner.Bytes())
	return tape.BytesToAddress(h[12:])
}
