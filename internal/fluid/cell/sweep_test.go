// Copyright 2025 The fluid-let Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cell

import (
	"sync"
	"testing"
	"time"
)

// TestSweep_ReclaimsDeadGoroutines tests that slots left behind by exited
// goroutines are removed by the sweep.
func TestSweep_ReclaimsDeadGoroutines(t *testing.T) {
	c := New(func() int { return 1 })

	// Each goroutine materializes its default, pinning a slot past its
	// last scope.
	const numGoroutines = 16
	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Get(func(*int) {})
		}()
	}
	wg.Wait()

	if n := c.slotCount(); n == 0 {
		t.Fatal("no slots before sweep; default materialization broken")
	}

	// wg.Wait returns when Done runs; the goroutines may need a few more
	// scheduler passes to fully exit and leave the live set.
	deadline := time.Now().Add(5 * time.Second)
	for c.slotCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("sweep left %d slots for dead goroutines", c.slotCount())
		}
		time.Sleep(10 * time.Millisecond)
		c.sweepNow()
	}
}

// TestSweep_KeepsLiveGoroutines tests that the sweep never touches slots
// of goroutines that are still running.
func TestSweep_KeepsLiveGoroutines(t *testing.T) {
	c := New(func() int { return 1 })

	const numGoroutines = 8
	ready := make(chan struct{}, numGoroutines)
	release := make(chan struct{})
	var wg sync.WaitGroup

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Get(func(*int) {})
			ready <- struct{}{}
			<-release
			// Slot must still hold the materialized default: the
			// initializer may not run a second time.
			c.Get(func(*int) {})
		}()
	}

	for i := 0; i < numGoroutines; i++ {
		<-ready
	}

	c.sweepNow()

	if n := c.slotCount(); n != numGoroutines {
		t.Errorf("sweep removed live slots: slotCount = %d, want %d", n, numGoroutines)
	}

	close(release)
	wg.Wait()
}

// TestSweep_CountsCreations tests that slot creations feed the sweep
// trigger counter.
func TestSweep_CountsCreations(t *testing.T) {
	c := New[int](nil)

	before := c.creations.Load()
	const numGoroutines = 4
	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Set(1, func() {})
		}()
	}
	wg.Wait()

	if got := c.creations.Load() - before; got != numGoroutines {
		t.Errorf("creation counter advanced by %d, want %d", got, numGoroutines)
	}
}
