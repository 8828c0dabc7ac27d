// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"context"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapedrive/tape/builtin"
	"github.com/tapedrive/tape/builtin/reward"
	"github.com/tapedrive/tape/clock"
	"github.com/tapedrive/tape/genesis"
	"github.com/tapedrive/tape/logdb"
	"github.com/tapedrive/tape/lvldb"
	"github.com/tapedrive/tape/runtime"
	"github.com/tapedrive/tape/state"
	"github.com/tapedrive/tape/tx"
)

func newNode(t *testing.T, logDB *logdb.LogDB) *Node {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	stater := state.NewStater(db)
	_, _, err = genesis.NewDevnet().Build(stater)
	require.NoError(t, err)

	rt := runtime.New(stater, clock.NewFixed(genesis.DevnetConfig().LaunchTime+1))
	n, err := New(stater, rt, logDB)
	require.NoError(t, err)
	return n
}

func newLogDB(t *testing.T) *logdb.LogDB {
	logDB, err := logdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { logDB.Close() })
	return logDB
}

func registerTx(t *testing.T, acc genesis.DevAccount, id uint64) *tx.Transaction {
	oid := uint256.NewInt(id)
	object, _, err := reward.ObjectAddress(builtin.Reward.Address, acc.Address, oid)
	require.NoError(t, err)
	data, err := reward.EncodeInstruction(&reward.RegisterObject{ObjectID: oid, Size: 1})
	require.NoError(t, err)
	return tx.MustSign(tx.NewBuilder(builtin.Reward.Address).
		Data(data).
		Account(acc.Address, object).
		Nonce(id).
		Build(), acc.PrivateKey)
}

func TestSubmit(t *testing.T) {
	logDB := newLogDB(t)
	n := newNode(t, logDB)
	acc := genesis.DevAccounts()[1]

	changed := n.Changed()
	trx := registerTx(t, acc, 1)
	receipt, err := n.Submit(trx)
	require.NoError(t, err)
	assert.False(t, receipt.Failed())
	assert.Equal(t, uint32(1), n.Batch())

	select {
	case <-changed:
	case <-time.After(time.Second):
		t.Fatal("subscribers not woken")
	}

	got, ok := n.Receipt(trx.ID())
	require.True(t, ok)
	assert.Equal(t, receipt, got)

	_, err = n.Submit(trx)
	assert.ErrorIs(t, err, ErrKnownTx)

	events, err := logDB.FilterEvents(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "EVENT:ObjectRegistered:1", events[0].String())
	assert.Equal(t, trx.ID(), events[0].TxID)
	assert.Equal(t, uint32(1), events[0].Batch)

	oid := uint256.NewInt(1)
	object, _, err := reward.ObjectAddress(builtin.Reward.Address, acc.Address, oid)
	require.NoError(t, err)
	data, err := n.Stater().NewState().GetData(object)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestSubmitFailedInstruction(t *testing.T) {
	logDB := newLogDB(t)
	n := newNode(t, logDB)
	acc := genesis.DevAccounts()[1]

	// replay of the same object id fails inside the program
	_, err := n.Submit(registerTx(t, acc, 1))
	require.NoError(t, err)
	data, err := reward.EncodeInstruction(&reward.RegisterObject{ObjectID: uint256.NewInt(1), Size: 2})
	require.NoError(t, err)
	again := tx.MustSign(tx.NewBuilder(builtin.Reward.Address).
		Data(data).
		Account(registerTx(t, acc, 1).Accounts()...).
		Nonce(2).
		Build(), acc.PrivateKey)

	receipt, err := n.Submit(again)
	require.NoError(t, err)
	assert.True(t, receipt.Reverted)
	assert.Equal(t, uint32(8), receipt.Code)

	events, err := logDB.FilterEvents(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestSubmitRejected(t *testing.T) {
	n := newNode(t, newLogDB(t))
	unsigned := tx.NewBuilder(builtin.Reward.Address).Build()
	_, err := n.Submit(unsigned)
	assert.ErrorIs(t, err, tx.ErrUnsigned)
	assert.Zero(t, n.Batch())
}

func TestResumeBatch(t *testing.T) {
	logDB := newLogDB(t)
	n := newNode(t, logDB)
	_, err := n.Submit(registerTx(t, genesis.DevAccounts()[1], 1))
	require.NoError(t, err)
	_, err = n.Submit(registerTx(t, genesis.DevAccounts()[1], 2))
	require.NoError(t, err)

	resumed := newNode(t, logDB)
	assert.Equal(t, uint32(2), resumed.Batch())
	assert.Equal(t, genesis.DevnetConfig().LaunchTime+1, resumed.Now())
	assert.Equal(t, logDB, resumed.LogDB())
}
