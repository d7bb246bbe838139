// Copyright 2025 The fluid-let Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cell

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ilammy/fluid-let/internal/fluid/goid"
)

// Cell is the binding engine behind one fluid variable.
//
// A Cell is created once per declared variable and lives for the rest of
// the process. All state it accumulates is per goroutine and reclaimed when
// the goroutine exits.
type Cell[T any] struct {
	// init produces the default value for a goroutine that reads the
	// variable with no active override. nil means the variable has no
	// default and unbound reads observe nil.
	//
	// init may run concurrently on different goroutines and must be safe
	// to call without coordination. It is never mutated after New.
	init func() T

	// slots maps goroutine ID (int64) to *slot[T].
	//
	// sync.Map fits the access pattern: a goroutine stores its slot once
	// and loads it on every subsequent operation, so reads dominate and
	// the lock-free Load fast path pays off.
	slots sync.Map

	// creations counts slot creations to trigger the periodic sweep of
	// entries left behind by dead goroutines.
	creations atomic.Uint32
}

// slot is one goroutine's view of the variable.
//
// All fields are owned by the goroutine the slot belongs to. The sweeper
// deletes whole slots of dead goroutines from the map but never touches
// the fields of a live goroutine's slot.
type slot[T any] struct {
	// cur points at the innermost active override, nil when none.
	cur *T

	// depth counts active overrides. It is the frame token for LIFO
	// enforcement: a frame installed at depth N must be the one removed
	// while depth is still N.
	depth int

	// def is the materialized default, nil until the first unbound read.
	// Materialization does not count as an override: cur stays nil.
	def *T

	// initializing is set while the default initializer runs, to turn a
	// recursive read of the same cell into a deterministic panic.
	initializing bool
}

// New creates the engine for one variable. init may be nil for variables
// without a default.
func New[T any](init func() T) *Cell[T] {
	return &Cell[T]{init: init}
}

// Get invokes observer with a read-only view of the current value:
// the innermost override if one is active, else the (lazily materialized)
// default, else nil.
//
// The pointer is only valid during the observer call. Observers must not
// retain it: once the enclosing bind exits, the value it points at is no
// longer the variable's current value.
//
// Observers may bind the same cell reentrantly; the nested frames restore
// in LIFO order as usual.
func (c *Cell[T]) Get(observer func(value *T)) {
	c.GetRaw(func(value *T, _ bool) { observer(value) })
}

// GetRaw is Get with the override status exposed: bound reports whether an
// override is active, distinguishing "overridden" from "default available"
// when the two hold equal values.
func (c *Cell[T]) GetRaw(observer func(value *T, bound bool)) {
	gid := goid.ID()

	s, ok := c.load(gid)
	if !ok {
		if c.init == nil {
			// No override, no default to materialize: nothing to
			// create a slot for.
			observer(nil, false)
			return
		}
		s = c.create(gid)
	}

	if s.cur != nil {
		observer(s.cur, true)
		return
	}
	observer(c.defaultFor(s), false)
}

// Set installs value as the current value for the calling goroutine, runs
// body, and restores the previous state. Restoration runs on every exit
// path: if body panics, the previous state is reinstated before the panic
// propagates past Set.
func (c *Cell[T]) Set(value T, body func()) {
	gid := goid.ID()
	s := c.ensure(gid)

	prev := s.cur
	s.cur = &value
	s.depth++
	token := s.depth

	defer func() {
		if s.depth != token {
			panic(fmt.Sprintf(
				"fluid: binding removed out of order: depth %d at scope exit, expected %d (leaked or double-released guard)",
				s.depth, token))
		}
		s.cur = prev
		s.depth--
		c.release(gid, s)
	}()

	body()
}

// Bind installs value as the current value for the calling goroutine and
// returns the function that removes the binding. It exists for defer-style
// call sites:
//
//	unbind := c.Bind(v)
//	defer unbind()
//
// The returned function panics if called twice, from a different goroutine,
// or while an inner binding on the same cell is still active. Set is the
// safer form; Bind trades that safety for call-site flexibility.
func (c *Cell[T]) Bind(value T) (unbind func()) {
	gid := goid.ID()
	s := c.ensure(gid)

	prev := s.cur
	s.cur = &value
	s.depth++
	token := s.depth

	released := false
	return func() {
		if g := goid.ID(); g != gid {
			panic(fmt.Sprintf(
				"fluid: binding released on goroutine %d, installed on goroutine %d", g, gid))
		}
		if released {
			panic("fluid: binding released twice")
		}
		if s.depth != token {
			panic(fmt.Sprintf(
				"fluid: binding removed out of order: depth %d, expected %d", s.depth, token))
		}
		released = true
		s.cur = prev
		s.depth--
		c.release(gid, s)
	}
}

// Depth returns the calling goroutine's active override count.
func (c *Cell[T]) Depth() int {
	s, ok := c.load(goid.ID())
	if !ok {
		return 0
	}
	return s.depth
}

// load returns the calling goroutine's slot, if it exists.
func (c *Cell[T]) load(gid int64) (*slot[T], bool) {
	v, ok := c.slots.Load(gid)
	if !ok {
		return nil, false
	}
	return v.(*slot[T]), true
}

// ensure returns the calling goroutine's slot, creating it if needed.
func (c *Cell[T]) ensure(gid int64) *slot[T] {
	if s, ok := c.load(gid); ok {
		return s
	}
	return c.create(gid)
}

// create allocates and registers a slot for gid.
//
// Only the goroutine gid itself creates its slot, so LoadOrStore cannot
// race with another creator for the same key; Store suffices. Creation
// feeds the sweep counter.
func (c *Cell[T]) create(gid int64) *slot[T] {
	s := &slot[T]{}
	c.slots.Store(gid, s)
	c.maybeSweep()
	return s
}

// release runs after a frame is popped. A slot holding no override and no
// materialized default carries no state worth keeping, so it is dropped
// eagerly rather than waiting for the dead-goroutine sweep. A slot whose
// initializer is still running stays: the materialized default is about to
// land in it.
func (c *Cell[T]) release(gid int64, s *slot[T]) {
	if s.depth == 0 && s.def == nil && !s.initializing {
		c.slots.Delete(gid)
	}
}

// defaultFor returns a pointer to the goroutine's materialized default,
// running the initializer on first use. Returns nil when the variable has
// no initializer.
func (c *Cell[T]) defaultFor(s *slot[T]) *T {
	if c.init == nil {
		return nil
	}
	if s.def != nil {
		return s.def
	}
	if s.initializing {
		panic("fluid: default initializer read its own variable recursively")
	}

	s.initializing = true
	defer func() { s.initializing = false }()

	// If init panics, def stays nil and the next unbound read retries.
	v := c.init()
	s.def = &v
	return s.def
}
