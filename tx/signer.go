// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
)

// MustSign signs a transaction with every key, in order.
// It panics if the signing process fails, returning a signed transaction upon success.
func MustSign(tx *Transaction, pks ...*ecdsa.PrivateKey) *Transaction {
	trx, err := Sign(tx, pks...)
	if err != nil {
		panic(err)
	}
	return trx
}

// Sign signs a transaction with every key, in order.
// It returns the signed transaction or an error if the signing process fails.
func Sign(tx *Transaction, pks ...*ecdsa.PrivateKey) (*Transaction, error) {
	hash := tx.SigningHash()
	for _, pk := range pks {
		sig, err := crypto.Sign(hash.Bytes(), pk)
		if err != nil {
			return nil, fmt.Errorf("unable to sign transaction: %w", err)
		}
		tx = tx.WithSignature(sig)
	}
	return tx, nil
}
