// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/tapedrive/tape/tape"
)

// EventPrefix starts every event line emitted by programs.
const EventPrefix = "EVENT:"

const fieldSeparator = ":"

// Event represents an event line that can be stored in db.
type Event struct {
	Batch   uint32
	Index   uint32
	TxID    tape.Bytes32
	Program tape.Address
	Time    uint64
	Name    string
	Fields  []string
}

// String renders the event back into its line form.
func (e *Event) String() string {
	return FormatEvent(e.Name, e.Fields...)
}

// Subject returns the first field, the primary key the event is about.
func (e *Event) Subject() string {
	if len(e.Fields) == 0 {
		return ""
	}
	return e.Fields[0]
}

// FormatEvent renders an event line.
func FormatEvent(name string, fields ...string) string {
	if len(fields) == 0 {
		return EventPrefix + name
	}
	return EventPrefix + name + fieldSeparator + strings.Join(fields, fieldSeparator)
}

// ParseEvent splits an event line into its name and fields.
func ParseEvent(line string) (name string, fields []string, err error) {
	body, ok := strings.CutPrefix(line, EventPrefix)
	if !ok {
		return "", nil, errors.Errorf("event %q: missing prefix", line)
	}
	parts := strings.Split(body, fieldSeparator)
	if parts[0] == "" {
		return "", nil, errors.Errorf("event %q: empty name", line)
	}
	return parts[0], parts[1:], nil
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range is an inclusive range of event times. A To below From leaves the range open ended.
type Range struct {
	From uint64
	To   uint64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

// EventCriteria matches events by name and subject. Nil fields match anything.
type EventCriteria struct {
	Name    *string
	Subject *string
}

func (c *EventCriteria) String() string {
	var name, subject = "*", "*"
	if c.Name != nil {
		name = *c.Name
	}
	if c.Subject != nil {
		subject = *c.Subject
	}
	return fmt.Sprintf("%s(%s)", name, subject)
}

// EventFilter filter
type EventFilter struct {
	FromBatch   uint32 // events of earlier batches are skipped
	TxID        *tape.Bytes32
	Program     *tape.Address
	CriteriaSet []*EventCriteria
	Range       *Range
	Options     *Options
	Order       Order // default asc
}

func errIndexOverflow(what string, v uint32) error {
	return errors.Errorf("%s %d overflows the sequence", what, v)
}
