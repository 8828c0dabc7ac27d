// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package clock provides the time source instructions are executed against.
package clock

import (
	"sync"
	"time"

	"github.com/beevik/ntp"
)

// Clock reports the current time in unix seconds.
type Clock interface {
	Now() uint64
}

// System is the wall clock.
type System struct{}

func (System) Now() uint64 {
	return uint64(time.Now().Unix())
}

// Fixed is a clock that only moves when told to.
type Fixed struct {
	mu  sync.Mutex
	now uint64
}

func NewFixed(now uint64) *Fixed {
	return &Fixed{now: now}
}

func (f *Fixed) Now() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Set moves the clock to now.
func (f *Fixed) Set(now uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = now
}

// Advance moves the clock forward by d, truncated to seconds.
func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now += uint64(d / time.Second)
}

// DefaultNTPServer is queried when no server is configured.
const DefaultNTPServer = "pool.ntp.org"

// NTPDrift returns the offset of the local clock against an NTP server.
func NTPDrift(server string) (time.Duration, error) {
	if server == "" {
		server = DefaultNTPServer
	}
	resp, err := ntp.Query(server)
	if err != nil {
		return 0, err
	}
	return resp.ClockOffset, nil
}
