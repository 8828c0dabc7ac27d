// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import "math"

// sequence orders events by the commit batch they were written in, then by their
// position inside the batch.
type sequence int64

const maxIndex = math.MaxInt32

func newSequence(batch uint32, index uint32) (sequence, error) {
	if batch > math.MaxInt32 {
		return 0, errIndexOverflow("batch", batch)
	}
	if index > maxIndex {
		return 0, errIndexOverflow("index", index)
	}
	return (sequence(batch) << 31) | sequence(index), nil
}

func (s sequence) Batch() uint32 {
	return uint32(s >> 31)
}

func (s sequence) Index() uint32 {
	return uint32(s & maxIndex)
}
