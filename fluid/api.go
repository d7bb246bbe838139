// Package fluid provides the public API for fluid variables.
//
// See doc.go for detailed documentation and examples.
package fluid

import (
	"github.com/ilammy/fluid-let/internal/fluid/cell"
)

// Var is a fluid variable holding values of type T.
//
// Create one with [New] or [NewWithDefault], typically as a package-level
// var, and never copy or relocate it afterwards: the Var owns the
// per-goroutine state for its slot.
type Var[T any] struct {
	cell *cell.Cell[T]
}

// New declares a fluid variable with no default value. Unbound reads
// observe nil.
func New[T any]() *Var[T] {
	return &Var[T]{cell: cell.New[T](nil)}
}

// NewWithDefault declares a fluid variable whose default is produced by
// init.
//
// init runs lazily, at most once per goroutine, on the first read that
// finds no active binding. It may run concurrently on different goroutines
// and must be safe to call without coordination.
func NewWithDefault[T any](init func() T) *Var[T] {
	return &Var[T]{cell: cell.New(init)}
}

// Get invokes observer with a read-only view of the current value: the
// innermost active binding on this goroutine, else the materialized
// default, else nil.
//
// The pointer is valid only during the observer call; do not retain it.
// For an observer that returns a value, use [Observe].
func (v *Var[T]) Get(observer func(value *T)) {
	v.cell.Get(observer)
}

// IsBound reports whether a binding is active on the calling goroutine.
// A materialized default does not count as a binding.
func (v *Var[T]) IsBound() bool {
	bound := false
	v.cell.GetRaw(func(_ *T, b bool) { bound = b })
	return bound
}

// Set installs value as the current value for the calling goroutine, runs
// body, and restores the previous state.
//
// Restoration runs on every exit path, exactly once, strictly before Set
// returns control to its caller: if body panics, the previous value is
// back in place before the panic propagates. Nested Set calls on the same
// variable form a LIFO stack; the inner exit reinstates the outer binding,
// not the default.
//
// For a body that returns a value, use [Let].
func (v *Var[T]) Set(value T, body func()) {
	v.cell.Set(value, body)
}

// Bind installs value as the current value for the calling goroutine and
// returns a Binding whose Unbind removes it:
//
//	b := v.Bind(value)
//	defer b.Unbind()
//
// Prefer [Var.Set] or [Let]; Bind exists for call sites where the scope is
// a whole function body and a callback would read poorly. Unbind carries
// the same restoration guarantees, and panics when called twice, from
// another goroutine, or while an inner binding is still active.
func (v *Var[T]) Bind(value T) Binding {
	return Binding{unbind: v.cell.Bind(value)}
}

// Binding is an installed binding awaiting release. The zero Binding is
// not valid.
type Binding struct {
	unbind func()
}

// Unbind removes the binding and restores the previous value.
func (b Binding) Unbind() {
	if b.unbind == nil {
		panic("fluid: Unbind of zero Binding")
	}
	b.unbind()
}

// Value returns a copy of the current value: the innermost binding, else
// the materialized default, else the zero value of T.
//
// This is sugar over [Var.Get] for cheaply copyable types. For values
// where a bit copy would share underlying state (slices, maps), see
// [Var.CloneValue].
func (v *Var[T]) Value() T {
	var out T
	v.cell.Get(func(p *T) {
		if p != nil {
			out = *p
		}
	})
	return out
}

// CloneValue returns a deep copy of the current value, produced by clone.
// When neither a binding nor a default is present, it returns the zero
// value of T without invoking clone.
func (v *Var[T]) CloneValue(clone func(T) T) T {
	var out T
	v.cell.Get(func(p *T) {
		if p != nil {
			out = clone(*p)
		}
	})
	return out
}

// Observe invokes observer as [Var.Get] does and returns its result.
//
// A package-level function because Go methods cannot introduce the result
// type parameter.
func Observe[T, R any](v *Var[T], observer func(value *T) R) R {
	var out R
	v.cell.Get(func(p *T) {
		out = observer(p)
	})
	return out
}

// Let installs value for the duration of body and returns body's result.
// Equivalent to [Var.Set] with a result-carrying body, with identical
// restoration guarantees.
func Let[T, R any](v *Var[T], value T, body func() R) R {
	var out R
	v.cell.Set(value, func() {
		out = body()
	})
	return out
}
