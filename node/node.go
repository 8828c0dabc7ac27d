// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package node applies submitted transactions one at a time: execute, commit state,
// index the emitted events, then wake subscribers.
package node

import (
	"errors"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/tapedrive/tape/cache"
	"github.com/tapedrive/tape/co"
	"github.com/tapedrive/tape/log"
	"github.com/tapedrive/tape/logdb"
	"github.com/tapedrive/tape/metrics"
	"github.com/tapedrive/tape/runtime"
	"github.com/tapedrive/tape/state"
	"github.com/tapedrive/tape/tape"
	"github.com/tapedrive/tape/tx"
)

var (
	logger = log.WithContext("pkg", "node")

	metricCommitDuration = metrics.LazyLoadHistogramVec("commit_duration_ms", []string{"stage"}, metrics.BucketDurationMs)
	metricBatch          = metrics.LazyLoadGauge("batch_number")
)

// ErrKnownTx is returned when a transaction was already applied.
var ErrKnownTx = errors.New("node: known transaction")

const knownTxCacheSize = 16384

// Node is the abstraction of local node.
type Node struct {
	mu      sync.Mutex
	stater  *state.Stater
	rt      *runtime.Runtime
	logDB   *logdb.LogDB
	writer  *logdb.Writer
	batch   uint32
	known   *cache.LRU[tape.Bytes32, *tx.Receipt]
	changed co.Signal
}

// New creates a node. Event batches continue after the newest one found in logDB.
func New(stater *state.Stater, rt *runtime.Runtime, logDB *logdb.LogDB) (*Node, error) {
	batch, err := logDB.NewestBatch()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "read newest batch")
	}
	known, err := cache.NewLRU[tape.Bytes32, *tx.Receipt](knownTxCacheSize)
	if err != nil {
		return nil, err
	}
	return &Node{
		stater: stater,
		rt:     rt,
		logDB:  logDB,
		writer: logDB.NewWriter(),
		batch:  batch,
		known:  known,
	}, nil
}

// Submit applies trx and returns its receipt. A failing instruction still yields a
// receipt; an error means trx was not applied.
func (n *Node) Submit(trx *tx.Transaction) (*tx.Receipt, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := trx.ID()
	if _, ok := n.known.Get(id); ok {
		return nil, ErrKnownTx
	}

	startTime := time.Now()
	receipt, err := n.rt.ExecuteTransaction(trx)
	if err != nil {
		n.rt.Discard()
		return nil, err
	}
	hash, err := n.rt.Commit()
	if err != nil {
		n.rt.Discard()
		return nil, pkgerrors.Wrap(err, "commit state")
	}
	commitElapsed := time.Since(startTime)

	n.batch++
	if err := n.writer.Write(n.batch, []*tx.Receipt{receipt}); err != nil {
		_ = n.writer.Rollback()
		logger.Error("failed to index events", "id", id, "err", err)
	} else if err := n.writer.Commit(); err != nil {
		logger.Error("failed to commit events", "id", id, "err", err)
	}
	indexElapsed := time.Since(startTime) - commitElapsed

	n.known.Add(id, receipt)
	n.changed.Broadcast()

	metricCommitDuration().ObserveWithLabels(commitElapsed.Milliseconds(), map[string]string{"stage": "state"})
	metricCommitDuration().ObserveWithLabels(indexElapsed.Milliseconds(), map[string]string{"stage": "events"})
	metricBatch().Set(int64(n.batch))

	logger.Info("applied transaction",
		"id", id,
		"batch", n.batch,
		"changes", hash,
		"failed", receipt.Failed(),
		"events", len(receipt.Events),
		"elapsed", commitElapsed+indexElapsed,
	)
	return receipt, nil
}

// Receipt returns the receipt of a recently applied transaction.
func (n *Node) Receipt(id tape.Bytes32) (*tx.Receipt, bool) {
	return n.known.Get(id)
}

// Changed returns a channel closed when the next transaction is applied.
func (n *Node) Changed() <-chan struct{} {
	return n.changed.Wait()
}

// Batch returns the number of the latest applied batch.
func (n *Node) Batch() uint32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.batch
}

// Stater returns the stater reading committed state.
func (n *Node) Stater() *state.Stater {
	return n.stater
}

// LogDB returns the event index.
func (n *Node) LogDB() *logdb.LogDB {
	return n.logDB
}

// Now returns the current reading of the execution clock.
func (n *Node) Now() uint64 {
	return n.rt.Clock().Now()
}
