// Copyright 2025 The fluid-let Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package goid

import "runtime"

// liveBufSize is the initial buffer for the all-goroutine stack dump.
// 1MB holds roughly a thousand goroutines at typical stack depths.
const liveBufSize = 1 << 20

// Live returns the IDs of all live goroutines.
//
// It captures a stack dump of every goroutine via runtime.Stack(all=true)
// and parses each "goroutine N [state]:" header line. The buffer is grown
// and the dump retried while runtime.Stack reports truncation, so the
// result covers every goroutine even in large programs.
//
// Performance: ~1ms per thousand goroutines. Callers amortize this; the
// slot sweeper runs it once per sweep, never on the read or bind path.
//
// Returns:
//   - []int64: IDs of all live goroutines (order unspecified)
func Live() []int64 {
	buf := make([]byte, liveBufSize)
	for {
		n := runtime.Stack(buf, true)
		if n < len(buf) {
			return parseAllIDs(buf[:n])
		}
		// Truncated dump: goroutine headers past the cut would be lost,
		// and the sweeper must never mistake a live goroutine for dead.
		buf = make([]byte, 2*len(buf))
	}
}

// parseAllIDs extracts every goroutine ID from an all-goroutine stack dump.
//
// Input format (one block per goroutine):
//
//	goroutine 1 [running]:
//	main.main()
//	    /path/to/main.go:10 +0x20
//
//	goroutine 5 [chan receive]:
//	...
//
// Returns the IDs of all header lines that parse, skipping anything else.
func parseAllIDs(buf []byte) []int64 {
	var ids []int64

	i := 0
	for i < len(buf) {
		end := i
		for end < len(buf) && buf[end] != '\n' {
			end++
		}
		line := buf[i:end]

		// Only "goroutine N [state]:" lines carry IDs. parseID rejects
		// everything else, but the prefix check keeps the common case
		// (stack frame lines) cheap.
		if len(line) >= 10 && string(line[:10]) == "goroutine " {
			if id := parseID(line); id != 0 {
				ids = append(ids, id)
			}
		}

		i = end + 1
	}

	return ids
}
