// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import (
	"sync"
)

// Signal is a broadcast point for goroutines waiting for new data.
// Unlike sync.Cond it is channel based, so waiting can be combined with other
// channels in a select.
type Signal struct {
	l  sync.Mutex
	ch chan struct{}
}

// Wait returns a channel closed by the next Broadcast.
func (s *Signal) Wait() <-chan struct{} {
	s.l.Lock()
	defer s.l.Unlock()

	if s.ch == nil {
		s.ch = make(chan struct{})
	}
	return s.ch
}

// Broadcast wakes all goroutines waiting on s.
func (s *Signal) Broadcast() {
	s.l.Lock()
	defer s.l.Unlock()

	if s.ch != nil {
		close(s.ch)
		s.ch = nil
	}
}
