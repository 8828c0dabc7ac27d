// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reward

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/tapedrive/tape/tape"
)

// EventPrefix starts every event line the program emits.
const EventPrefix = "EVENT:"

func (r *Reward) emit(name string, fields ...any) {
	line := EventPrefix + name
	for _, f := range fields {
		line += ":" + formatField(f)
	}
	r.env.Emit(line)
}

func formatField(v any) string {
	switch v := v.(type) {
	case *uint256.Int:
		return v.Dec()
	case tape.Address:
		return v.String()
	case tape.Bytes32:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
