//go:build ignore
// +build ignore

// This tool calculates the offset of the goid field in runtime.g, the
// number an assembly fast path for internal/fluid/goid would hard-code.
// Run with: go run tools/goid_offset.go
//
// The struct below mirrors runtime.g field order up to goid and must be
// re-checked against runtime/runtime2.go whenever the target Go version
// changes.
package main

import (
	"fmt"
	"runtime"
	"unsafe"
)

// Simplified g struct matching runtime.g field order up to goid.
type g struct {
	stack        stack          // offset 0
	stackguard0  uintptr        // offset 16
	stackguard1  uintptr        // offset 24
	_panic       *int           // offset 32 (pointer)
	_defer       *int           // offset 40 (pointer)
	m            *int           // offset 48 (pointer)
	sched        gobuf          // offset 56
	syscallsp    uintptr        // after sched
	syscallpc    uintptr
	syscallbp    uintptr
	stktopsp     uintptr
	param        unsafe.Pointer
	atomicstatus struct {
		v uint32 // atomic wrapper - 4 bytes
	}
	stackLock uint32
	goid      uint64
}

type stack struct {
	lo uintptr // offset 0
	hi uintptr // offset 8
}

type gobuf struct {
	sp   uintptr        // offset 0
	pc   uintptr        // offset 8
	g    uintptr        // offset 16
	ctxt unsafe.Pointer // offset 24
	ret  uintptr        // offset 32
	lr   uintptr        // offset 40
	bp   uintptr        // offset 48
}

func main() {
	var g g

	goidOffset := unsafe.Offsetof(g.goid)

	fmt.Printf("Go version: %s\n", runtime.Version())
	fmt.Printf("Architecture: %s\n", runtime.GOARCH)
	fmt.Printf("goid offset: %d bytes\n", goidOffset)
	fmt.Printf("\nUse this in assembly: const goidOffset = %d\n", goidOffset)
}
