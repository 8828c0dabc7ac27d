// Copyright (c) 2020 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"database/sql"
	"sync"
)

// stmtCache keeps prepared statements keyed by query text.
// Filter queries differ only by the number of criteria, so the set stays small.
type stmtCache struct {
	db    *sql.DB
	mu    sync.Mutex
	stmts map[string]*sql.Stmt
}

func newStmtCache(db *sql.DB) *stmtCache {
	return &stmtCache{db: db, stmts: make(map[string]*sql.Stmt)}
}

func (sc *stmtCache) get(query string) (*sql.Stmt, bool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	stmt, ok := sc.stmts[query]
	return stmt, ok
}

// Prepare returns the cached statement for query, preparing it on first use.
// The connection is not held under the lock, a writer may own it.
func (sc *stmtCache) Prepare(query string) (*sql.Stmt, error) {
	if stmt, ok := sc.get(query); ok {
		return stmt, nil
	}

	stmt, err := sc.db.Prepare(query)
	if err != nil {
		return nil, err
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	if cached, ok := sc.stmts[query]; ok {
		stmt.Close()
		return cached, nil
	}
	sc.stmts[query] = stmt
	metricPreparedStatements().Set(int64(len(sc.stmts)))
	return stmt, nil
}

func (sc *stmtCache) Clear() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	for query, stmt := range sc.stmts {
		_ = stmt.Close()
		delete(sc.stmts, query)
	}
	metricPreparedStatements().Set(0)
}
