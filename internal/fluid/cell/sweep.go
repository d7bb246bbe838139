// Copyright 2025 The fluid-let Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cell

import "github.com/ilammy/fluid-let/internal/fluid/goid"

// sweepInterval is the number of slot creations between sweeps.
//
// A sweep costs about a millisecond per thousand live goroutines
// (runtime.Stack(all=true) dominates), so it is amortized over many
// creations and runs off the caller's goroutine.
const sweepInterval = 256

// maybeSweep triggers the periodic sweep of dead-goroutine slots.
//
// Called on every slot creation. Every sweepInterval creations a sweep
// runs in a background goroutine, keeping the create path fast. Concurrent
// sweeps are harmless: both scan the same map and deletions are idempotent.
func (c *Cell[T]) maybeSweep() {
	if c.creations.Add(1)%sweepInterval == 0 {
		go c.sweep()
	}
}

// sweep removes slots whose goroutine is no longer alive.
//
// Algorithm:
//  1. Capture the live goroutine ID set.
//  2. Scan the slot map; delete entries absent from the live set.
//
// Goroutine IDs are handed out by a monotonic counter and never reused, so
// an ID absent from the live set is dead for good, with one exception: a
// goroutine born after the capture is absent too, and its slot must not be
// touched. Such goroutines have IDs above every captured ID, so the sweep
// only considers entries at or below the captured maximum. Their absence
// from the set then proves death.
func (c *Cell[T]) sweep() {
	live := goid.Live()
	if len(live) == 0 {
		// Parse failure; skip this cycle rather than delete anything.
		return
	}

	liveSet := make(map[int64]bool, len(live))
	var maxLive int64
	for _, gid := range live {
		liveSet[gid] = true
		if gid > maxLive {
			maxLive = gid
		}
	}

	c.slots.Range(func(key, _ any) bool {
		gid := key.(int64)
		if gid <= maxLive && !liveSet[gid] {
			c.slots.Delete(gid)
		}
		return true
	})
}

// sweepNow runs a sweep synchronously. Test hook.
func (c *Cell[T]) sweepNow() {
	c.sweep()
}

// slotCount returns the number of registered slots. Test hook.
func (c *Cell[T]) slotCount() int {
	n := 0
	c.slots.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
