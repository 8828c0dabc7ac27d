// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"math"

	"github.com/tapedrive/tape/logdb"
	"github.com/tapedrive/tape/tape"
)

type EventCriteria struct {
	Name    *string `json:"name"`
	Subject *string `json:"subject"`
}

// Range of event times, both ends inclusive and optional.
type Range struct {
	From *uint64 `json:"from"`
	To   *uint64 `json:"to"`
}

type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

type EventFilter struct {
	TxID        *tape.Bytes32    `json:"txID"`
	CriteriaSet []*EventCriteria `json:"criteriaSet"`
	Range       *Range           `json:"range"`
	Options     *Options         `json:"options"`
	Order       logdb.Order      `json:"order"`
}

// LogMeta locates an event.
type LogMeta struct {
	TxID    tape.Bytes32 `json:"txID"`
	Program tape.Address `json:"program"`
	Time    uint64       `json:"time"`
	Batch   uint32       `json:"batch"`
	Index   uint32       `json:"index"`
}

type FilteredEvent struct {
	Name   string   `json:"name"`
	Fields []string `json:"fields"`
	Line   string   `json:"line"`
	Meta   LogMeta  `json:"meta"`
}

// ConvertEvent converts an indexed event into its api form.
func ConvertEvent(e *logdb.Event) *FilteredEvent {
	fields := e.Fields
	if fields == nil {
		fields = []string{}
	}
	return &FilteredEvent{
		Name:   e.Name,
		Fields: fields,
		Line:   e.String(),
		Meta: LogMeta{
			TxID:    e.TxID,
			Program: e.Program,
			Time:    e.Time,
			Batch:   e.Batch,
			Index:   e.Index,
		},
	}
}

func convertCriteria(c *EventCriteria) *logdb.EventCriteria {
	return &logdb.EventCriteria{Name: c.Name, Subject: c.Subject}
}

// ConvertEventFilter converts the api filter into a logdb filter.
func ConvertEventFilter(f *EventFilter) *logdb.EventFilter {
	filter := &logdb.EventFilter{
		TxID:  f.TxID,
		Order: f.Order,
	}
	for _, c := range f.CriteriaSet {
		filter.CriteriaSet = append(filter.CriteriaSet, convertCriteria(c))
	}
	if f.Range != nil {
		r := &logdb.Range{To: math.MaxInt64}
		if f.Range.From != nil {
			r.From = *f.Range.From
		}
		if f.Range.To != nil {
			r.To = *f.Range.To
		}
		filter.Range = r
	}
	if f.Options != nil {
		filter.Options = &logdb.Options{Offset: f.Options.Offset, Limit: f.Options.Limit}
	}
	return filter
}
