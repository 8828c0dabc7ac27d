// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tape

import (
	"hash"
	"io"
	"sync"

	"github.com/ethereum/go-ethereum/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// hasher is a pooled hash state with a scratch digest.
type hasher struct {
	hash.Hash
	sum Bytes32
}

func (h *hasher) digest(fn func(w io.Writer)) Bytes32 {
	fn(h.Hash)
	h.Hash.Sum(h.sum[:0])
	h.Hash.Reset()
	return h.sum
}

var (
	blake2bPool = sync.Pool{
		New: func() any {
			h, _ := blake2b.New256(nil)
			return &hasher{Hash: h}
		},
	}
	keccakPool = sync.Pool{
		New: func() any {
			return &hasher{Hash: sha3.NewLegacyKeccak256()}
		},
	}
)

func pooled(pool *sync.Pool, fn func(w io.Writer)) Bytes32 {
	h := pool.Get().(*hasher)
	defer pool.Put(h)
	return h.digest(fn)
}

func writeAll(data [][]byte) func(w io.Writer) {
	return func(w io.Writer) {
		for _, b := range data {
			w.Write(b)
		}
	}
}

// Blake2b computes the blake2b-256 digest of the concatenated data.
// Record addresses, tx ids and state roots all use it.
func Blake2b(data ...[]byte) Bytes32 {
	if len(data) == 1 {
		return blake2b.Sum256(data[0])
	}
	return pooled(&blake2bPool, writeAll(data))
}

// Blake2bFn computes the blake2b-256 digest of whatever fn writes.
func Blake2bFn(fn func(w io.Writer)) Bytes32 {
	return pooled(&blake2bPool, fn)
}

// Keccak256 computes the legacy keccak-256 digest, used when deriving principals from public keys.
func Keccak256(data ...[]byte) Bytes32 {
	return pooled(&keccakPool, writeAll(data))
}
