// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"io"
	"slices"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/tapedrive/tape/tape"
)

var (
	ErrUnsigned        = errors.New("tx: no signature")
	ErrDuplicateSigner = errors.New("tx: duplicate signer")
)

// Transaction is an immutable tx type carrying one program instruction.
type Transaction struct {
	body body

	cache struct {
		id          atomic.Value
		signingHash atomic.Value
		signers     atomic.Value
	}
}

// body describes details of a tx.
type body struct {
	Program    tape.Address
	Data       []byte
	Accounts   []tape.Address
	Nonce      uint64
	Signatures [][]byte
}

// ID returns the id of tx, the hash over its full encoding.
func (t *Transaction) ID() (id tape.Bytes32) {
	if cached := t.cache.id.Load(); cached != nil {
		return cached.(tape.Bytes32)
	}
	defer func() { t.cache.id.Store(id) }()

	return tape.Blake2bFn(func(w io.Writer) {
		rlp.Encode(w, &t.body)
	})
}

// SigningHash returns hash of tx excludes signatures.
func (t *Transaction) SigningHash() (hash tape.Bytes32) {
	if cached := t.cache.signingHash.Load(); cached != nil {
		return cached.(tape.Bytes32)
	}
	defer func() { t.cache.signingHash.Store(hash) }()

	return tape.Blake2bFn(func(w io.Writer) {
		rlp.Encode(w, []any{
			t.body.Program,
			t.body.Data,
			t.body.Accounts,
			t.body.Nonce,
		})
	})
}

// Program returns the program the instruction is addressed to.
func (t *Transaction) Program() tape.Address {
	return t.body.Program
}

// Data returns the encoded instruction.
func (t *Transaction) Data() []byte {
	return append([]byte(nil), t.body.Data...)
}

// Accounts returns the accounts declared by the instruction.
func (t *Transaction) Accounts() []tape.Address {
	return slices.Clone(t.body.Accounts)
}

func (t *Transaction) Nonce() uint64 {
	return t.body.Nonce
}

// Signatures returns the signatures.
func (t *Transaction) Signatures() [][]byte {
	sigs := make([][]byte, len(t.body.Signatures))
	for i, sig := range t.body.Signatures {
		sigs[i] = append([]byte(nil), sig...)
	}
	return sigs
}

// WithSignature create a new tx with sig appended.
func (t *Transaction) WithSignature(sig []byte) *Transaction {
	newTx := Transaction{
		body: t.body,
	}
	newTx.body.Signatures = append(t.Signatures(), append([]byte(nil), sig...))
	return &newTx
}

// Signers recovers the principals that signed the tx, in signature order.
func (t *Transaction) Signers() (signers []tape.Address, err error) {
	if cached := t.cache.signers.Load(); cached != nil {
		return slices.Clone(cached.([]tape.Address)), nil
	}
	if len(t.body.Signatures) == 0 {
		return nil, ErrUnsigned
	}
	defer func() {
		if err == nil {
			t.cache.signers.Store(slices.Clone(signers))
		}
	}()

	hash := t.SigningHash()
	for i, sig := range t.body.Signatures {
		pub, err := crypto.SigToPub(hash[:], sig)
		if err != nil {
			return nil, errors.Wrapf(err, "recover signature %d", i)
		}
		signer := tape.PrincipalOf(pub)
		if slices.Contains(signers, signer) {
			return nil, errors.Wrap(ErrDuplicateSigner, signer.String())
		}
		signers = append(signers, signer)
	}
	return signers, nil
}

// EncodeRLP implements rlp.Encoder
func (t *Transaction) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &t.body)
}

// DecodeRLP implements rlp.Decoder
func (t *Transaction) DecodeRLP(s *rlp.Stream) error {
	var body body
	if err := s.Decode(&body); err != nil {
		return err
	}
	*t = Transaction{
		body: body,
	}
	return nil
}

// MarshalBinary returns the canonical encoding of the transaction.
func (t *Transaction) MarshalBinary() ([]byte, error) {
	return rlp.EncodeToBytes(t)
}

// UnmarshalBinary decodes the canonical encoding of transactions.
func (t *Transaction) UnmarshalBinary(b []byte) error {
	return rlp.DecodeBytes(b, t)
}
