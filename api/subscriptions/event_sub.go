// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"context"

	"github.com/tapedrive/tape/api/events"
	"github.com/tapedrive/tape/logdb"
)

// Source is what an event subscription reads from.
type Source interface {
	Batch() uint32
	Changed() <-chan struct{}
	LogDB() *logdb.LogDB
}

// EventSub tracks the batches an event subscriber has seen.
type EventSub struct {
	src      Source
	criteria *logdb.EventCriteria
	next     uint32
}

func NewEventSub(src Source, criteria *logdb.EventCriteria, from uint32) *EventSub {
	return &EventSub{
		src:      src,
		criteria: criteria,
		next:     from,
	}
}

// Read returns the matching events of the batches applied since the last read.
func (es *EventSub) Read(ctx context.Context) ([]*events.FilteredEvent, error) {
	current := es.src.Batch()
	if es.next > current {
		return nil, nil
	}
	evs, err := es.src.LogDB().FilterEvents(ctx, &logdb.EventFilter{
		FromBatch:   es.next,
		CriteriaSet: []*logdb.EventCriteria{es.criteria},
	})
	if err != nil {
		return nil, err
	}

	result := make([]*events.FilteredEvent, 0, len(evs))
	for _, ev := range evs {
		// written after current was read, left for the next read
		if ev.Batch > current {
			break
		}
		result = append(result, events.ConvertEvent(ev))
	}
	es.next = current + 1
	return result, nil
}
