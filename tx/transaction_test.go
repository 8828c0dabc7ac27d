// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"crypto/ecdsa"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapedrive/tape/tape"
	"github.com/tapedrive/tape/test/datagen"
)

func newKey(t *testing.T) (*ecdsa.PrivateKey, tape.Address) {
	pk, err := crypto.GenerateKey()
	require.NoError(t, err)
	return pk, tape.Address(crypto.PubkeyToAddress(pk.PublicKey))
}

func newTx() *Transaction {
	return NewBuilder(tape.BytesToAddress([]byte("Reward"))).
		Data([]byte{3, 0xc0}).
		Account(datagen.RandAddress(), datagen.RandAddress()).
		Nonce(7).
		Build()
}

func TestSigners(t *testing.T) {
	pk1, addr1 := newKey(t)
	pk2, addr2 := newKey(t)

	unsigned := newTx()
	_, err := unsigned.Signers()
	assert.ErrorIs(t, err, ErrUnsigned)

	signed := MustSign(unsigned, pk1, pk2)
	signers, err := signed.Signers()
	require.NoError(t, err)
	assert.Equal(t, []tape.Address{addr1, addr2}, signers)

	// signatures do not change what is signed
	assert.Equal(t, unsigned.SigningHash(), signed.SigningHash())
	assert.NotEqual(t, unsigned.ID(), signed.ID())
	assert.Len(t, unsigned.Signatures(), 0)
}

func TestDuplicateSigner(t *testing.T) {
	pk, _ := newKey(t)
	signed := MustSign(newTx(), pk, pk)
	_, err := signed.Signers()
	assert.ErrorIs(t, err, ErrDuplicateSigner)
}

func TestBadSignature(t *testing.T) {
	signed := newTx().WithSignature([]byte{1, 2, 3})
	_, err := signed.Signers()
	assert.Error(t, err)
}

func TestTamperedTx(t *testing.T) {
	pk, addr := newKey(t)
	signed := MustSign(newTx(), pk)

	// same signature over another body recovers another principal
	other := NewBuilder(signed.Program()).Data(signed.Data()).Account(signed.Accounts()...).Nonce(8).Build()
	for _, sig := range signed.Signatures() {
		other = other.WithSignature(sig)
	}
	signers, err := other.Signers()
	if err == nil {
		assert.NotEqual(t, []tape.Address{addr}, signers)
	}
}

func TestMarshalling(t *testing.T) {
	pk, addr := newKey(t)
	trx := MustSign(newTx(), pk)

	enc, err := trx.MarshalBinary()
	require.NoError(t, err)

	dec := new(Transaction)
	require.NoError(t, dec.UnmarshalBinary(enc))
	assert.Equal(t, trx.ID(), dec.ID())
	assert.Equal(t, trx.Program(), dec.Program())
	assert.Equal(t, trx.Data(), dec.Data())
	assert.Equal(t, trx.Accounts(), dec.Accounts())
	assert.Equal(t, trx.Nonce(), dec.Nonce())

	signers, err := dec.Signers()
	require.NoError(t, err)
	assert.Equal(t, []tape.Address{addr}, signers)
}

func FuzzTransactionMarshalling(f *testing.F) {
	f.Add([]byte{1, 2, 3}, uint64(1), uint8(2))
	f.Fuzz(func(t *testing.T, data []byte, nonce uint64, accounts uint8) {
		b := NewBuilder(datagen.RandAddress()).Data(data).Nonce(nonce)
		for range accounts % 8 {
			b.Account(datagen.RandAddress())
		}
		trx := b.Build()

		enc, err := trx.MarshalBinary()
		if err != nil {
			t.Fatalf("MarshalBinary: %v", err)
		}
		dec := new(Transaction)
		if err := dec.UnmarshalBinary(enc); err != nil {
			t.Fatalf("UnmarshalBinary: %v", err)
		}
		if dec.ID() != trx.ID() || dec.SigningHash() != trx.SigningHash() {
			t.Fatal("decoded tx differs")
		}
	})
}
