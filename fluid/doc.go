// Package fluid provides dynamically scoped ("fluid") variables.
//
// A fluid variable is a named, typed, process-global slot whose current
// value is determined by the live call stack of the executing goroutine
// rather than by lexical nesting. A caller installs a value for the
// duration of a scoped operation; everything invoked during that operation
// observes the installed value; when the operation exits, normally or by
// panic, the previous value is restored exactly, as if the override had
// never happened.
//
// Fluid variables come from the Lisp family of languages, where they are a
// popular way to carry ambient configuration (a log level, an output sink,
// a formatting width) without threading it through every signature.
//
// # Quick Start
//
//	var DebugEnabled = fluid.NewWithDefault(func() bool { return false })
//
//	func handle() {
//		fluid.Let(DebugEnabled, true, func() int {
//			// Everything called from here sees true.
//			return process()
//		})
//		// Restored: reads see false again.
//	}
//
// # API Overview
//
// The package provides:
//   - Declaration: [New], [NewWithDefault]
//   - Read access: [Var.Get], [Observe], [Var.Value], [Var.CloneValue], [Var.IsBound]
//   - Scoped binding: [Var.Set], [Let], [Var.Bind] with [Binding.Unbind]
//   - Version information: [GetInfo], [Version]
//
// Declaration boilerplate for many variables can be generated from a TOML
// manifest by the fluidgen tool (cmd/fluidgen).
//
// # The Per-Goroutine Contract
//
// Each goroutine has an independent view of every variable. A bind
// installed on one goroutine is never observable from another, and each
// goroutine materializes its own copy of the default, at most once, on its
// first unbound read. There is no cross-goroutine propagation: a goroutine
// spawned inside a scope does NOT inherit the scope's bindings.
//
// Consequently, code that multiplexes logical tasks onto shared goroutines
// (worker pools, schedulers) must not expect a binding to survive a
// suspension point. If a different task resumes on the same goroutine it
// would observe the binding; if the original task resumes on a different
// goroutine it would not. Re-establish bindings after such boundaries.
//
// # LIFO Discipline
//
// Binds nest strictly: the innermost bind exits first and restores the
// value installed by the one below it, not the original default. [Var.Set]
// and [Let] enforce this structurally. [Var.Bind] hands the restore step
// to the caller and panics on out-of-order, repeated, or cross-goroutine
// release. These are programming errors that would otherwise corrupt the
// goroutine's binding stack, so they are never ignored.
//
// # Panics and Cancellation
//
// If the body of a scoped bind panics, the previous value is restored
// before the panic propagates past the bind. The recovering frame always
// observes the pre-bind state. The package never swallows or converts
// panics raised by user callbacks.
//
// Go has no way to abandon a stack frame without unwinding it, so any
// cancellation mechanism (including context cancellation) surfaces as a
// normal or panicking return through the body and runs restoration.
package fluid
