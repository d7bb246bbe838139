// Copyright 2025 The fluid-let Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package goid identifies the current goroutine.
//
// Fluid variables key their per-goroutine slots by goroutine ID, so every
// read and every scoped bind starts with an ID() call. The package offers
// two operations:
//
//   - ID(): the current goroutine's ID, parsed from runtime.Stack output.
//   - Live(): the IDs of every live goroutine, used by the slot sweeper to
//     discard state left behind by goroutines that have exited.
//
// Goroutine IDs are positive and unique among live goroutines. 0 is the
// parse-failure sentinel and never names a real goroutine.
//
// The Go runtime does not expose goroutine IDs on purpose, so ID() parses
// the header line of a single-goroutine stack trace ("goroutine 123
// [running]:"). That costs on the order of a microsecond per call, which is
// acceptable for configuration-style variables read a few times per
// operation. An assembly fast path reading runtime.g directly (the approach
// taken by petermattis/goid) is a known follow-up; tools/goid_offset.go
// computes the field offset it would need.
package goid
