// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapedrive/tape/api"
	"github.com/tapedrive/tape/builtin/reward"
	"github.com/tapedrive/tape/builtin/token"
	"github.com/tapedrive/tape/clock"
	"github.com/tapedrive/tape/genesis"
	"github.com/tapedrive/tape/lvldb"
	"github.com/tapedrive/tape/tape"
	"github.com/tapedrive/tape/test/datagen"
)

func initDir(t *testing.T) string {
	dir := filepath.Join(t.TempDir(), "data")
	hash, err := initInstance(dir, genesis.DevnetConfig(), lvldb.Options{})
	require.NoError(t, err)
	assert.False(t, hash.IsZero())
	return dir
}

func submit(t *testing.T, dir string, c *call, err error, signer genesis.DevAccount) {
	require.NoError(t, err)
	trx, err := c.sign(signer.PrivateKey)
	require.NoError(t, err)
	receipt, err := submitLocal(dir, lvldb.Options{}, trx)
	require.NoError(t, err)
	require.False(t, receipt.Failed(), receipt.Error)
}

func TestInitInstance(t *testing.T) {
	dir := initDir(t)

	_, err := initInstance(dir, genesis.DevnetConfig(), lvldb.Options{})
	assert.ErrorContains(t, err, "already initialized")

	in, err := openInstance(dir, lvldb.Options{})
	require.NoError(t, err)
	defer in.Close()
	assert.Equal(t, genesis.DevnetConfig().Name, in.gen.Name)

	rec, err := inspect(in.stater.NewState(), "global", nil)
	require.NoError(t, err)
	global := rec.(*reward.GlobalState)
	assert.Equal(t, genesis.DevAccounts()[0].Address, global.Admin)
	assert.Equal(t, genesis.MintAddress(), global.RewardMint)
}

func TestOpenUninitialized(t *testing.T) {
	_, err := openInstance(t.TempDir(), lvldb.Options{})
	assert.ErrorContains(t, err, "not initialized")
}

func TestSubmitLocal(t *testing.T) {
	dir := initDir(t)
	owner := genesis.DevAccounts()[1]
	miner := genesis.DevAccounts()[2]
	oid := uint256.NewInt(42)
	commitment := tape.Blake2b([]byte("object"))

	c, err := registerObjectCall(owner.Address, oid, commitment, reward.ProofCompactHash, 4096, 3)
	submit(t, dir, c, err, owner)

	c, err = stakeCall(miner.Address, 1000)
	submit(t, dir, c, err, miner)

	in, err := openInstance(dir, lvldb.Options{})
	require.NoError(t, err)
	defer in.Close()
	st := in.stater.NewState()

	rec, err := inspect(st, "object", []string{owner.Address.String(), "42"})
	require.NoError(t, err)
	obj := rec.(*reward.ObjectRecord)
	assert.Equal(t, owner.Address, obj.Owner)
	assert.Equal(t, commitment, obj.Commitment)
	assert.Equal(t, uint64(4096), obj.Size)

	rec, err = inspect(st, "miner", []string{miner.Address.String()})
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), rec.(*reward.MinerAccount).Stake)

	rec, err = inspect(st, "wallet", []string{miner.Address.String()})
	require.NoError(t, err)
	assert.Equal(t, genesis.DevnetConfig().Accounts[2].Balance-1000, rec.(*token.Account).Amount)

	// batches continue across reopen
	n, err := in.newNode(clock.System{})
	require.NoError(t, err)
	assert.Equal(t, uint32(2), n.Batch())
}

func TestInspectErrors(t *testing.T) {
	dir := initDir(t)
	in, err := openInstance(dir, lvldb.Options{})
	require.NoError(t, err)
	defer in.Close()
	st := in.stater.NewState()

	tests := []struct {
		name string
		kind string
		args []string
		want string
	}{
		{"unknown kind", "block", nil, "unknown record kind"},
		{"missing args", "object", []string{"0x00"}, "expected 2 arguments"},
		{"bad owner", "object", []string{"xyz", "1"}, "owner"},
		{"bad id", "epoch", []string{"1", "-3"}, "invalid id"},
		{"absent record", "miner", []string{genesis.DevAccounts()[4].Address.String()}, "no record"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := inspect(st, tt.kind, tt.args)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestSubmitRemote(t *testing.T) {
	dir := initDir(t)
	in, err := openInstance(dir, lvldb.Options{})
	require.NoError(t, err)
	defer in.Close()

	n, err := in.newNode(clock.NewFixed(genesis.DevnetConfig().LaunchTime + 1))
	require.NoError(t, err)
	handler, closeSubs := api.New(n, api.Options{BacktraceLimit: 10, LogsLimit: 10})
	ts := httptest.NewServer(handler)
	defer func() { closeSubs(); ts.Close() }()

	owner := genesis.DevAccounts()[3]
	c, err := registerObjectCall(owner.Address, uint256.NewInt(7), tape.Bytes32{1}, reward.ProofSnark, 1, 1)
	require.NoError(t, err)
	trx, err := c.sign(owner.PrivateKey)
	require.NoError(t, err)

	receipt, err := submitRemote(context.Background(), ts.URL+"/", trx)
	require.NoError(t, err)
	assert.Equal(t, trx.ID(), receipt.TxID)
	assert.False(t, receipt.Failed())
	assert.Equal(t, []string{"EVENT:ObjectRegistered:7"}, receipt.Events)

	_, err = submitRemote(context.Background(), ts.URL, trx)
	assert.ErrorContains(t, err, "403")
}

func TestCallAccounts(t *testing.T) {
	miner := genesis.DevAccounts()[1].Address
	addrs, err := genesis.WellKnown()
	require.NoError(t, err)
	minerAccount, _, err := reward.MinerAddress(program, miner)
	require.NoError(t, err)

	c, err := stakeCall(miner, 1)
	require.NoError(t, err)
	assert.Equal(t, []tape.Address{miner, genesis.Wallet(miner), minerAccount, addrs.Global, addrs.StakeVault}, c.accounts)

	c, err = claimCall(miner)
	require.NoError(t, err)
	assert.Equal(t, []tape.Address{miner, minerAccount, addrs.Global, addrs.RewardVault, genesis.Wallet(miner)}, c.accounts)

	oid, eid := datagen.RandID(), datagen.RandID()
	proof := datagen.RandomHash()
	epoch, _, err := reward.EpochAddress(program, oid, eid)
	require.NoError(t, err)
	c, err = submitProofCall(miner, oid, eid, proof)
	require.NoError(t, err)
	assert.Equal(t, []tape.Address{miner, epoch, minerAccount, addrs.Global}, c.accounts)
	assert.Equal(t, &reward.SubmitProof{EpochID: eid, ProofHash: proof}, c.ins)

	size := datagen.RandUint64()
	object, _, err := reward.ObjectAddress(program, miner, oid)
	require.NoError(t, err)
	c, err = registerObjectCall(miner, oid, proof, reward.ProofSnark, size, 1)
	require.NoError(t, err)
	assert.Equal(t, []tape.Address{miner, object}, c.accounts)
	assert.Equal(t, size, c.ins.(*reward.RegisterObject).Size)

	admin := genesis.DevAccounts()[0].Address
	c, err = slashCall(admin, miner, 5)
	require.NoError(t, err)
	assert.Equal(t, []tape.Address{admin, minerAccount, addrs.Global}, c.accounts)
	assert.Equal(t, &reward.SlashMiner{Miner: miner, Amount: 5}, c.ins)
}

func TestAppRun(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	app := newApp()

	require.NoError(t, app.Run([]string{"tape", "init", "--data-dir", dir, "--verbosity", "1"}))
	require.NoError(t, app.Run([]string{"tape", "register",
		"--data-dir", dir,
		"--dev-account", "1",
		"--object-id", "0x10",
		"--hash", tape.Bytes32{9}.String(),
		"--size", "64",
		"--retention", "2",
	}))
	require.NoError(t, app.Run([]string{"tape", "inspect", "--data-dir", dir, "object", genesis.DevAccounts()[1].Address.String(), "16"}))

	assert.Error(t, app.Run([]string{"tape", "register", "--data-dir", dir, "--dev-account", "1"}))
	assert.Error(t, app.Run([]string{"tape", "claim", "--data-dir", dir, "--dev-account", "9"}))
}
