// Copyright 2025 The fluid-let Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cell implements the per-goroutine binding engine behind a fluid
// variable.
//
// One Cell exists per declared variable, for the lifetime of the process.
// The Cell maps goroutine IDs to slots; a slot records the goroutine's view
// of the variable:
//
//   - the innermost active override, if any
//   - the number of active overrides (binding depth)
//   - the lazily materialized default value
//
// Slots are owned exclusively by their goroutine. The Cell's sync.Map makes
// slot lookup and creation safe across goroutines, but the fields inside a
// slot are only ever read or written by the goroutine the slot belongs to.
// No lock protects them and none is needed.
//
// Overrides form a strict LIFO stack per goroutine. Set installs a value,
// runs the body, and restores the previous state in a defer, so restoration
// happens on panic exactly as on normal return, before the panic reaches
// the caller. The guard form (Bind) hands restoration to the caller and
// panics on out-of-order or cross-goroutine release rather than corrupting
// the stack.
//
// The default initializer runs at most once per goroutine, on the first
// read that finds no active override. A read performed by the initializer
// itself on the same cell and goroutine is a deterministic panic. If the
// initializer panics, no default is recorded and the next read runs it
// again.
//
// Goroutines exit silently, so slots they leave behind are reclaimed by an
// amortized sweep: every few slot creations the Cell compares its keys
// against the set of live goroutine IDs and drops entries whose goroutine
// is gone. Slots of goroutines with no active override and no materialized
// default are dropped eagerly instead, without waiting for a sweep.
package cell
