// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSignalBroadcast(t *testing.T) {
	var (
		sig Signal
		wg  sync.WaitGroup
	)
	const n = 8
	woken := make(chan struct{}, n)
	ready := make(chan struct{}, n)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ch := sig.Wait()
			ready <- struct{}{}
			<-ch
			woken <- struct{}{}
		}()
	}
	for range n {
		<-ready
	}
	sig.Broadcast()
	wg.Wait()
	assert.Len(t, woken, n)
}

func TestSignalWaitAfterBroadcast(t *testing.T) {
	var sig Signal
	sig.Broadcast()

	ch := sig.Wait()
	select {
	case <-ch:
		t.Fatal("woken by an earlier broadcast")
	case <-time.After(10 * time.Millisecond):
	}

	sig.Broadcast()
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("not woken")
	}
}
