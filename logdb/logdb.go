// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package logdb indexes the events emitted by executed transactions in sqlite.
package logdb

import (
	"context"
	"database/sql"
	"math"
	"strings"

	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/tapedrive/tape/tape"
	"github.com/tapedrive/tape/tx"
)

const memPath = ":memory:"

const insertEvent = "INSERT OR REPLACE INTO event(seq, txID, program, time, name, subject, fields) VALUES(?, ?, ?, ?, ?, ?, ?)"

type LogDB struct {
	path          string
	db            *sql.DB
	driverVersion string
	stmtCache     *stmtCache
}

// New create or open log db at given path.
func New(path string) (logDB *LogDB, err error) {
	dsn := path
	if path != memPath {
		dsn += "?_journal_mode=WAL"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			db.Close()
		}
	}()

	// to avoid 'database is locked' error, and to keep a memory db alive
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, err
	}

	driverVer, _, _ := sqlite3.Version()
	return &LogDB{
		path:          path,
		db:            db,
		driverVersion: driverVer,
		stmtCache:     newStmtCache(db),
	}, nil
}

// NewMem create a log db in ram.
func NewMem() (*LogDB, error) {
	return New(memPath)
}

// Close close the log db.
func (db *LogDB) Close() error {
	db.stmtCache.Clear()
	return db.db.Close()
}

func (db *LogDB) Path() string {
	return db.path
}

// DriverVersion returns the version of the linked sqlite library.
func (db *LogDB) DriverVersion() string {
	return db.driverVersion
}

// NewestBatch returns the batch of the latest written event, zero if there is none.
func (db *LogDB) NewestBatch() (uint32, error) {
	stmt, err := db.stmtCache.Prepare("SELECT MAX(seq) FROM event")
	if err != nil {
		return 0, err
	}
	var seq sql.NullInt64
	if err := stmt.QueryRow().Scan(&seq); err != nil {
		return 0, err
	}
	if !seq.Valid {
		return 0, nil
	}
	return sequence(seq.Int64).Batch(), nil
}

func (db *LogDB) FilterEvents(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	const query = "SELECT seq, txID, program, time, name, fields FROM event"

	if filter == nil {
		return db.queryEvents(ctx, query+" ORDER BY seq ASC")
	}
	metricsHandleEventsFilter(filter)

	var (
		conds []string
		args  []any
	)
	if filter.FromBatch > 0 {
		from, err := newSequence(filter.FromBatch, 0)
		if err != nil {
			return nil, err
		}
		conds = append(conds, "seq >= ?")
		args = append(args, int64(from))
	}
	if filter.TxID != nil {
		conds = append(conds, "txID = ?")
		args = append(args, filter.TxID.Bytes())
	}
	if filter.Program != nil {
		conds = append(conds, "program = ?")
		args = append(args, filter.Program.Bytes())
	}
	if filter.Range != nil {
		conds = append(conds, "time >= ?")
		args = append(args, clampInt64(filter.Range.From))
		if filter.Range.To >= filter.Range.From {
			conds = append(conds, "time <= ?")
			args = append(args, clampInt64(filter.Range.To))
		}
	}
	if len(filter.CriteriaSet) > 0 {
		var subs []string
		for _, c := range filter.CriteriaSet {
			sub := []string{"1"}
			if c.Name != nil {
				sub = append(sub, "name = ?")
				args = append(args, *c.Name)
			}
			if c.Subject != nil {
				sub = append(sub, "subject = ?")
				args = append(args, *c.Subject)
			}
			subs = append(subs, "("+strings.Join(sub, " AND ")+")")
		}
		conds = append(conds, "("+strings.Join(subs, " OR ")+")")
	}

	stmt := query
	if len(conds) > 0 {
		stmt += " WHERE " + strings.Join(conds, " AND ")
	}
	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC"
	} else {
		stmt += " ORDER BY seq ASC"
	}
	if filter.Options != nil {
		stmt += " LIMIT ?, ?"
		args = append(args, clampInt64(filter.Options.Offset), clampInt64(filter.Options.Limit))
	}
	return db.queryEvents(ctx, stmt, args...)
}

// sqlite integers are signed 64 bits.
func clampInt64(v uint64) int64 {
	return int64(min(v, math.MaxInt64))
}

func (db *LogDB) queryEvents(ctx context.Context, query string, args ...any) ([]*Event, error) {
	stmt, err := db.stmtCache.Prepare(query)
	if err != nil {
		return nil, err
	}
	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq     int64
			txID    []byte
			program []byte
			time    uint64
			name    string
			fields  string
		)
		if err := rows.Scan(&seq, &txID, &program, &time, &name, &fields); err != nil {
			return nil, err
		}
		event := &Event{
			Batch:   sequence(seq).Batch(),
			Index:   sequence(seq).Index(),
			TxID:    tape.BytesToBytes32(txID),
			Program: tape.BytesToAddress(program),
			Time:    time,
			Name:    name,
		}
		if fields != "" {
			event.Fields = strings.Split(fields, fieldSeparator)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// NewWriter creates a log writer.
func (db *LogDB) NewWriter() *Writer {
	return &Writer{db: db}
}

// Writer accumulates events in a sql transaction until committed.
type Writer struct {
	db          *LogDB
	tx          *sql.Tx
	uncommitted int
}

// Write indexes the events of the receipts executed in batch. Events of failed
// instructions are never recorded.
func (w *Writer) Write(batch uint32, receipts []*tx.Receipt) error {
	var index uint32
	for _, r := range receipts {
		if r.Failed() {
			continue
		}
		for _, line := range r.Events {
			name, fields, err := ParseEvent(line)
			if err != nil {
				return err
			}
			seq, err := newSequence(batch, index)
			if err != nil {
				return err
			}
			var subject any
			if len(fields) > 0 {
				subject = fields[0]
			}
			if err := w.exec(insertEvent,
				int64(seq),
				r.TxID.Bytes(),
				r.Program.Bytes(),
				clampInt64(r.Time),
				name,
				subject,
				strings.Join(fields, fieldSeparator),
			); err != nil {
				return err
			}
			index++
		}
	}
	return nil
}

func (w *Writer) exec(query string, args ...any) error {
	// prepare before the tx takes the only connection
	stmt, err := w.db.stmtCache.Prepare(query)
	if err != nil {
		return err
	}
	if w.tx == nil {
		tx, err := w.db.db.Begin()
		if err != nil {
			return err
		}
		w.tx = tx
	}
	if _, err := w.tx.Stmt(stmt).Exec(args...); err != nil {
		return errors.Wrap(err, "insert event")
	}
	w.uncommitted++
	return nil
}

// Commit commits accumulated events.
func (w *Writer) Commit() error {
	if w.tx == nil {
		return nil
	}
	err := w.tx.Commit()
	if err == nil {
		metricWrittenEvents().Add(int64(w.uncommitted))
	}
	w.tx = nil
	w.uncommitted = 0
	return err
}

// Rollback rollbacks all uncommitted events.
func (w *Writer) Rollback() error {
	if w.tx == nil {
		return nil
	}
	err := w.tx.Rollback()
	w.tx = nil
	w.uncommitted = 0
	return err
}

// UncommittedCount returns the count of uncommitted events.
func (w *Writer) UncommittedCount() int {
	return w.uncommitted
}
