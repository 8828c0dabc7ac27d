// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reward

import (
	errorsmod "cosmossdk.io/errors"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/tapedrive/tape/tape"
)

// Kind prefix of every persisted record.
const (
	kindGlobal byte = 0x10 + iota
	kindObject
	kindEpoch
	kindMiner
)

// Record is any persisted reward record.
type Record interface {
	*GlobalState | *ObjectRecord | *EpochRecord | *MinerAccount
}

func recordKind(v any) byte {
	switch v.(type) {
	case *GlobalState:
		return kindGlobal
	case *ObjectRecord:
		return kindObject
	case *EpochRecord:
		return kindEpoch
	case *MinerAccount:
		return kindMiner
	}
	panic("unknown record type")
}

// Encode serializes a record as its kind byte followed by its rlp body.
func Encode[R Record](rec R) ([]byte, error) {
	body, err := rlp.EncodeToBytes(rec)
	if err != nil {
		return nil, errorsmod.Wrap(ErrCodec, err.Error())
	}
	return append([]byte{recordKind(rec)}, body...), nil
}

// Decode parses data produced by Encode into rec.
func Decode[R Record](data []byte, rec R) error {
	if len(data) == 0 {
		return errorsmod.Wrap(ErrCodec, "empty record")
	}
	if data[0] != recordKind(rec) {
		return errorsmod.Wrapf(ErrCodec, "record kind %#x, want %#x", data[0], recordKind(rec))
	}
	if err := rlp.DecodeBytes(data[1:], rec); err != nil {
		return errorsmod.Wrap(ErrCodec, err.Error())
	}
	if v, ok := any(rec).(interface{ validate() error }); ok {
		return v.validate()
	}
	return nil
}

func (e *EpochRecord) validate() error {
	if e.Status > EpochFinalized {
		return errorsmod.Wrapf(ErrCodec, "unknown epoch status %d", e.Status)
	}
	if e.ObjectID.BitLen() > tape.MaxObjectIDBits || e.EpochID.BitLen() > tape.MaxObjectIDBits {
		return errorsmod.Wrap(ErrCodec, "id exceeds 128 bits")
	}
	return nil
}
