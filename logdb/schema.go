// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

// seq is the sequence of the event, see sequence.go.
// subject is the first field of the event, fields holds every field joined by ':'.
const eventTableSchema = `CREATE TABLE IF NOT EXISTS event (
	seq INTEGER PRIMARY KEY NOT NULL,
	txID BLOB NOT NULL,
	program BLOB NOT NULL,
	time INTEGER NOT NULL,
	name TEXT NOT NULL,
	subject TEXT,
	fields TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS event_i0 ON event(name, subject);
CREATE INDEX IF NOT EXISTS event_i1 ON event(txID);
CREATE INDEX IF NOT EXISTS event_i2 ON event(time);`
