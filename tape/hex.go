// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tape

import (
	"encoding/hex"
	"errors"
)

var (
	errHexPrefix = errors.New("invalid prefix")
	errHexLength = errors.New("invalid length")
)

// encodeHex returns the 0x-prefixed lower case hex form of b.
func encodeHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

// decodeHex fills dst from s, which must hold exactly len(dst) bytes of hex,
// with or without a 0x prefix.
func decodeHex(dst []byte, s string) error {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	} else if len(s) == len(dst)*2+2 {
		return errHexPrefix
	}
	if len(s) != len(dst)*2 {
		return errHexLength
	}
	_, err := hex.Decode(dst, []byte(s))
	return err
}
