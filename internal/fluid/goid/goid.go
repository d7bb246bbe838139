// Copyright 2025 The fluid-let Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package goid

import "runtime"

// ID returns the current goroutine's ID.
//
// The ID is parsed from the header line of a single-goroutine stack trace.
// Format: "goroutine 123 [running]:\n..."
//
// Performance: ~1µs per call, dominated by runtime.Stack. The fixed-size
// buffer keeps the call allocation-free.
//
// Returns:
//   - int64: goroutine ID (always positive), or 0 if parsing fails
func ID() int64 {
	// Only the header line is needed. 64 bytes covers
	// "goroutine <id> [<state>]:" for any realistic ID.
	var buf [64]byte

	// all=false: stack of the calling goroutine only.
	n := runtime.Stack(buf[:], false)

	return parseID(buf[:n])
}

// parseID extracts the goroutine ID from a stack trace header.
//
// Expected input: "goroutine 123 [running]:...", yielding 123, or 0 when
// the buffer does not start with the header prefix or carries no digits.
//
// Direct byte scanning, no string conversion of the number, no regex.
func parseID(buf []byte) int64 {
	const prefix = "goroutine "
	if len(buf) < len(prefix) {
		return 0
	}
	if string(buf[:len(prefix)]) != prefix {
		return 0
	}

	var id int64
	seen := false
	for i := len(prefix); i < len(buf); i++ {
		c := buf[i]
		if c < '0' || c > '9' {
			// First non-digit ends the ID (the space before "[running]").
			break
		}
		id = id*10 + int64(c-'0')
		seen = true
	}
	if !seen {
		return 0
	}
	return id
}
