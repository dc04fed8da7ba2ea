/*
 * classbox - a partial interpreter for compiled class files
 * Copyright (c) 2026 by the classbox authors.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package frame is the stack-frame interpreter. It owns per-invocation call
// frames, the tight bytecode dispatch loop, heap-backed object/array
// allocation, and method resolution/dispatch. It recurses into itself for
// nested invocations and only reaches out to its Host for the handful of
// VM-level services (class loading, the clock, stdout).
package frame

import (
	"io"

	"github.com/jacobin-run/classbox/internal/classloader"
	"github.com/jacobin-run/classbox/internal/types"
)

// Host is the slice of VM behavior a frame needs while executing: a
// borrowed reference to the VM for heap allocation, class loading, the
// clock, and standard output. Kept as an interface here, rather than
// importing the vm package, so frame stays the dependency root and vm
// depends on frame instead of the reverse.
type Host interface {
	Heap() *Heap
	LoadClass(name string) (*classloader.Class, error)
	NowMillis() int64
	Stdout() io.Writer
}

// Frame is one method invocation's mutable state: a locals
// vector sized to max_locals, an operand stack reserved to max_stack, and
// borrowed references to the class/method being executed and the host VM.
type Frame struct {
	Class  *classloader.Class
	Method *classloader.Method
	Locals []types.Value
	Stack  []types.Value
	Host   Host
}

// NewFrame allocates a frame with max_locals slots (defaulted to KindUnset,
// which stands for an empty optional slot) and an empty stack reserved to
// max_stack.
func NewFrame(class *classloader.Class, method *classloader.Method, host Host) *Frame {
	return &Frame{
		Class:  class,
		Method: method,
		Locals: make([]types.Value, method.MaxLocals),
		Stack:  make([]types.Value, 0, method.MaxStack),
		Host:   host,
	}
}

func (f *Frame) push(v types.Value) { f.Stack = append(f.Stack, v) }

func (f *Frame) pop() types.Value {
	n := len(f.Stack)
	v := f.Stack[n-1]
	f.Stack = f.Stack[:n-1]
	return v
}

func (f *Frame) peek() types.Value { return f.Stack[len(f.Stack)-1] }

// loadLocal reads local slot i, treating an unset slot as the type-default
// value.
func (f *Frame) loadLocal(i int, kind types.Kind) types.Value {
	v := f.Locals[i]
	if v.Kind == types.KindUnset {
		return types.ZeroFor(kind)
	}
	return v
}

func (f *Frame) storeLocal(i int, v types.Value) { f.Locals[i] = v }
