// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transactions

import (
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/tapedrive/tape/tape"
)

// RawTx a signed transaction in rlp form.
type RawTx struct {
	Raw hexutil.Bytes `json:"raw"`
}

// SubmitResult is the outcome of a submitted transaction.
type SubmitResult struct {
	ID tape.Bytes32 `json:"id"`
}
