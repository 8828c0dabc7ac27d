// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/tapedrive/tape/tape"
)

// Receipt represents the results of a transaction.
type Receipt struct {
	TxID tape.Bytes32 `json:"txID"`
	// program the instruction was dispatched to
	Program tape.Address `json:"program"`
	// clock reading the instruction saw
	Time uint64 `json:"time"`
	// whether state changes were discarded
	Reverted bool `json:"reverted"`
	// failure, empty on success
	Error     string `json:"error,omitempty"`
	Codespace string `json:"codespace,omitempty"`
	Code      uint32 `json:"code,omitempty"`
	// events emitted, kept only on success
	Events []string `json:"events"`
}

// Failed reports whether the instruction returned an error.
func (r *Receipt) Failed() bool {
	return r.Error != ""
}
