/*
 * classbox - a partial interpreter for compiled class files
 * Copyright (c) 2026 by the classbox authors.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package vm is the top-level virtual machine: the metadata arena (class
// registry), the heap arena, the clock, and the standard output sink,
// mediating class loading and exposing the entry point for calling a
// method.
package vm

import (
	"bytes"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jacobin-run/classbox/internal/classfile"
	"github.com/jacobin-run/classbox/internal/classloader"
	"github.com/jacobin-run/classbox/internal/excnames"
	"github.com/jacobin-run/classbox/internal/frame"
	"github.com/jacobin-run/classbox/internal/trace"
	"github.com/jacobin-run/classbox/internal/types"
)

// VM owns every piece of process-wide state the interpreter needs. Each VM
// carries a random ID so multiple instances constructed within one test
// process (or one CLI invocation that spins up a VM per input) never get
// confused in logs.
type VM struct {
	ID uuid.UUID

	classes map[string]*classloader.Class
	loading map[string]bool // cycle guard: a super-class edge must never revisit a class mid-link

	heap         *frame.Heap
	clock        Clock
	stdout       io.Writer
	runtimeImage RuntimeImageProvider
}

// New constructs a VM. clock and runtimeImage may be nil; a nil clock
// defaults to SystemClock, a nil runtimeImage means classes absent from the
// filesystem simply fail to resolve.
func New(stdout io.Writer, clock Clock, runtimeImage RuntimeImageProvider) *VM {
	if clock == nil {
		clock = SystemClock{}
	}
	return &VM{
		ID:           uuid.New(),
		classes:      make(map[string]*classloader.Class),
		loading:      make(map[string]bool),
		heap:         frame.NewHeap(),
		clock:        clock,
		stdout:       stdout,
		runtimeImage: runtimeImage,
	}
}

// Heap satisfies frame.Host.
func (vm *VM) Heap() *frame.Heap { return vm.heap }

// NowMillis satisfies frame.Host and gfunction.Host (via nativeHost).
func (vm *VM) NowMillis() int64 { return vm.clock.NowMillis() }

// Stdout satisfies frame.Host and gfunction.Host.
func (vm *VM) Stdout() io.Writer { return vm.stdout }

// Render satisfies gfunction.Host directly (the VM has heap access, so it
// can serve as its own native-call host without frame's nativeHost
// wrapper).
func (vm *VM) Render(v types.Value) string { return frame.Render(vm.heap, v) }

// LoadClass implements load_class: cache hit, else read bytes
// (filesystem first, then the runtime-image provider), parse, link
// (recursing into LoadClass for the super chain), cache, then run
// <clinit> exactly once.
func (vm *VM) LoadClass(name string) (*classloader.Class, error) {
	if cls, ok := vm.classes[name]; ok {
		return cls, nil
	}
	if vm.loading[name] {
		return nil, errors.Errorf("cyclic class load through a super-class edge: %s", name)
	}
	vm.loading[name] = true
	defer delete(vm.loading, name)

	data, err := vm.readClassBytes(name)
	if err != nil {
		return nil, err
	}

	cf, err := classfile.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	cls, err := classloader.Link(cf, vm.LoadClass)
	if err != nil {
		return nil, err
	}

	vm.classes[name] = cls
	trace.Trace("[vm " + vm.ID.String() + "] loaded class " + name)

	if err := vm.runClinit(cls); err != nil {
		return nil, err
	}
	return cls, nil
}

func (vm *VM) readClassBytes(name string) ([]byte, error) {
	if data, err := os.ReadFile(name + ".class"); err == nil {
		return data, nil
	}
	if vm.runtimeImage != nil {
		data, err := vm.runtimeImage.ReadClass(name)
		if err == nil {
			return data, nil
		}
		return nil, errors.Wrapf(err, "%s: %s", excnames.ClassNotFoundException, name)
	}
	return nil, errors.Errorf("%s: %s", excnames.ClassNotFoundException, name)
}

// runClinit ensures a class's own <clinit> runs exactly once, and because
// resolveSuper links (and therefore loads and initializes) the super class
// before Link returns, the super's <clinit> always completes before the
// subclass's.
func (vm *VM) runClinit(cls *classloader.Class) error {
	if cls.ClinitDone {
		return nil
	}
	cls.ClinitDone = true
	m, ok := cls.Clinit()
	if !ok || m.Instructions == nil {
		return nil
	}
	fr := frame.NewFrame(cls, m, vm)
	_, _, err := frame.Execute(fr)
	return err
}

// CallMethod is the VM's entry point for invoking an already-resolved
// method with a prepared argument vector.
func (vm *VM) CallMethod(cls *classloader.Class, m *classloader.Method, args []types.Value) (types.Value, bool, error) {
	fr := frame.NewFrame(cls, m, vm)
	copy(fr.Locals, args)
	return frame.Execute(fr)
}

// RunMain loads className and calls its no-argument "main" method.
func (vm *VM) RunMain(className string) error {
	cls, err := vm.LoadClass(className)
	if err != nil {
		return err
	}
	decl, m, ok := cls.LookupMethod("main", "()V")
	if !ok {
		return errors.Errorf("%s: %s.main()V", excnames.NoSuchMethodError, className)
	}
	_, _, err = vm.CallMethod(decl, m, nil)
	return err
}
