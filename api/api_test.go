// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/websocket"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapedrive/tape/api"
	"github.com/tapedrive/tape/api/accounts"
	"github.com/tapedrive/tape/api/events"
	"github.com/tapedrive/tape/api/status"
	"github.com/tapedrive/tape/builtin"
	"github.com/tapedrive/tape/builtin/reward"
	"github.com/tapedrive/tape/clock"
	"github.com/tapedrive/tape/genesis"
	"github.com/tapedrive/tape/logdb"
	"github.com/tapedrive/tape/lvldb"
	"github.com/tapedrive/tape/node"
	"github.com/tapedrive/tape/runtime"
	"github.com/tapedrive/tape/state"
	"github.com/tapedrive/tape/tape"
	"github.com/tapedrive/tape/tx"
)

func newServer(t *testing.T) *httptest.Server {
	return newServerWithOptions(t, api.Options{
		AllowedOrigins: "*",
		BacktraceLimit: 100,
		LogsLimit:      10,
	})
}

func newServerWithOptions(t *testing.T, opts api.Options) *httptest.Server {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	logDB, err := logdb.NewMem()
	require.NoError(t, err)

	stater := state.NewStater(db)
	_, _, err = genesis.NewDevnet().Build(stater)
	require.NoError(t, err)

	rt := runtime.New(stater, clock.NewFixed(genesis.DevnetConfig().LaunchTime+1))
	n, err := node.New(stater, rt, logDB)
	require.NoError(t, err)

	handler, closeSubs := api.New(n, opts)
	ts := httptest.NewServer(handler)
	t.Cleanup(func() {
		closeSubs()
		ts.Close()
		logDB.Close()
		db.Close()
	})
	return ts
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url) //nolint:gosec
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func httpPost(t *testing.T, url string, obj any) ([]byte, int) {
	data, err := json.Marshal(obj)
	require.NoError(t, err)
	res, err := http.Post(url, "application/json", bytes.NewReader(data)) //nolint:gosec
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func registerTx(t *testing.T, acc genesis.DevAccount, id uint64) *tx.Transaction {
	oid := uint256.NewInt(id)
	object, _, err := reward.ObjectAddress(builtin.Reward.Address, acc.Address, oid)
	require.NoError(t, err)
	data, err := reward.EncodeInstruction(&reward.RegisterObject{ObjectID: oid, Size: 64, RetentionEpochs: 3})
	require.NoError(t, err)
	return tx.MustSign(tx.NewBuilder(builtin.Reward.Address).
		Data(data).
		Account(acc.Address, object).
		Nonce(id).
		Build(), acc.PrivateKey)
}

func sendTx(t *testing.T, ts *httptest.Server, trx *tx.Transaction) ([]byte, int) {
	raw, err := trx.MarshalBinary()
	require.NoError(t, err)
	return httpPost(t, ts.URL+"/transactions", map[string]any{"raw": hexutil.Encode(raw)})
}

func TestGlobalRecord(t *testing.T) {
	ts := newServer(t)

	body, code := httpGet(t, ts.URL+"/accounts/records/global")
	require.Equal(t, http.StatusOK, code, string(body))
	var g accounts.Global
	require.NoError(t, json.Unmarshal(body, &g))
	assert.Equal(t, genesis.DevAccounts()[0].Address, g.Admin)
	assert.Equal(t, uint64(1), g.DecayNumerator)
	assert.Equal(t, uint64(100), g.DecayDenom)

	known, err := genesis.WellKnown()
	require.NoError(t, err)
	body, code = httpGet(t, ts.URL+"/accounts/"+known.RewardVault.String()+"/token")
	require.Equal(t, http.StatusOK, code, string(body))
	var vault accounts.TokenAccount
	require.NoError(t, json.Unmarshal(body, &vault))
	assert.Equal(t, known.Global, vault.Owner)
	assert.Equal(t, known.Mint, vault.Mint)

	body, code = httpGet(t, ts.URL+"/accounts/"+known.Global.String())
	require.Equal(t, http.StatusOK, code, string(body))
	var raw accounts.Account
	require.NoError(t, json.Unmarshal(body, &raw))
	assert.Equal(t, builtin.Reward.Address, raw.Owner)
	assert.NotEmpty(t, raw.Data)
}

func TestSubmitAndQuery(t *testing.T) {
	ts := newServer(t)
	acc := genesis.DevAccounts()[1]
	trx := registerTx(t, acc, 42)

	body, code := sendTx(t, ts, trx)
	require.Equal(t, http.StatusOK, code, string(body))
	var receipt tx.Receipt
	require.NoError(t, json.Unmarshal(body, &receipt))
	assert.False(t, receipt.Failed())
	assert.Equal(t, []string{"EVENT:ObjectRegistered:42"}, receipt.Events)

	_, code = sendTx(t, ts, trx)
	assert.Equal(t, http.StatusForbidden, code)

	body, code = httpGet(t, ts.URL+"/transactions/"+trx.ID().String()+"/receipt")
	require.Equal(t, http.StatusOK, code, string(body))

	body, code = httpGet(t, ts.URL+"/accounts/records/objects/"+acc.Address.String()+"/42")
	require.Equal(t, http.StatusOK, code, string(body))
	var obj accounts.Object
	require.NoError(t, json.Unmarshal(body, &obj))
	assert.Equal(t, acc.Address, obj.Owner)
	assert.Equal(t, uint64(64), obj.Size)
	assert.Equal(t, "CompactHash", obj.ProofType)

	body, code = httpPost(t, ts.URL+"/events", map[string]any{
		"criteriaSet": []map[string]any{{"name": "ObjectRegistered", "subject": "42"}},
	})
	require.Equal(t, http.StatusOK, code, string(body))
	var fes []events.FilteredEvent
	require.NoError(t, json.Unmarshal(body, &fes))
	require.Len(t, fes, 1)
	assert.Equal(t, "EVENT:ObjectRegistered:42", fes[0].Line)
	assert.Equal(t, trx.ID(), fes[0].Meta.TxID)
}

func TestStatus(t *testing.T) {
	ts := newServer(t)
	_, code := sendTx(t, ts, registerTx(t, genesis.DevAccounts()[2], 3))
	require.Equal(t, http.StatusOK, code)

	body, code := httpGet(t, ts.URL+"/status")
	require.Equal(t, http.StatusOK, code, string(body))
	var st status.Status
	require.NoError(t, json.Unmarshal(body, &st))
	assert.Equal(t, uint32(1), st.Batch)
	assert.Equal(t, genesis.DevnetConfig().LaunchTime+1, st.Time)
	assert.Equal(t, tape.CurrentConfig(), st.Params)

	known, err := genesis.WellKnown()
	require.NoError(t, err)
	assert.Equal(t, known, st.Addresses)
}

func TestBadRequests(t *testing.T) {
	ts := newServer(t)
	miner := genesis.DevAccounts()[3].Address

	tests := []struct {
		url  string
		code int
	}{
		{"/accounts/records/objects/0x00/1", http.StatusBadRequest},
		{"/accounts/records/objects/" + miner.String() + "/x", http.StatusBadRequest},
		{"/accounts/records/miners/" + miner.String(), http.StatusNotFound},
		{"/accounts/records/epochs/1/1", http.StatusNotFound},
		{"/accounts/" + miner.String() + "/token", http.StatusNotFound},
		{"/transactions/0x01/receipt", http.StatusBadRequest},
		{"/transactions/" + strings.Repeat("00", 32) + "/receipt", http.StatusNotFound},
	}
	for _, tt := range tests {
		body, code := httpGet(t, ts.URL+tt.url)
		assert.Equal(t, tt.code, code, "%s: %s", tt.url, body)
	}

	_, code := httpPost(t, ts.URL+"/transactions", map[string]any{"raw": "0x01"})
	assert.Equal(t, http.StatusBadRequest, code)

	unsigned, err := tx.NewBuilder(builtin.Reward.Address).Build().MarshalBinary()
	require.NoError(t, err)
	_, code = httpPost(t, ts.URL+"/transactions", map[string]any{"raw": hexutil.Encode(unsigned)})
	assert.Equal(t, http.StatusBadRequest, code)

	_, code = httpPost(t, ts.URL+"/events", map[string]any{"options": map[string]any{"limit": 1000}})
	assert.Equal(t, http.StatusForbidden, code)
	_, code = httpPost(t, ts.URL+"/events", map[string]any{"range": map[string]any{"from": 10, "to": 1}})
	assert.Equal(t, http.StatusBadRequest, code)
	_, code = httpPost(t, ts.URL+"/events", map[string]any{"criteriaSet": []any{nil}})
	assert.Equal(t, http.StatusBadRequest, code)
	_, code = httpPost(t, ts.URL+"/events", map[string]any{"unknown": 1})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestEventSubscription(t *testing.T) {
	ts := newServer(t)
	acc := genesis.DevAccounts()[1]

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/subscriptions/event?name=ObjectRegistered"
	conn, res, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer res.Body.Close()
	defer conn.Close()

	_, code := sendTx(t, ts, registerTx(t, acc, 7))
	require.Equal(t, http.StatusOK, code)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var ev events.FilteredEvent
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "ObjectRegistered", ev.Name)
	assert.Equal(t, []string{"7"}, ev.Fields)
	assert.Equal(t, uint32(1), ev.Meta.Batch)
}

func TestSubscriptionBacktrace(t *testing.T) {
	ts := newServer(t)
	acc := genesis.DevAccounts()[1]
	_, code := sendTx(t, ts, registerTx(t, acc, 1))
	require.Equal(t, http.StatusOK, code)

	// replays batch 1
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/subscriptions/event?pos=1"
	conn, res, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer res.Body.Close()
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var ev events.FilteredEvent
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "EVENT:ObjectRegistered:1", ev.Line)

	_, res, err = websocket.DefaultDialer.Dial(strings.Replace(wsURL, "pos=1", "pos=x", 1), nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}
