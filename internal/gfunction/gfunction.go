/*
 * classbox - a partial interpreter for compiled class files
 * Copyright (c) 2026 by the classbox authors.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package gfunction is the native-intrinsic registry: native methods are
// named entries in a lookup table rather than individually special-cased
// in the dispatch loop, each carrying the slot count it expects and a Go
// function implementing it directly instead of bytecode.
package gfunction

import (
	"fmt"
	"io"

	"github.com/jacobin-run/classbox/internal/types"
)

// Host is the subset of frame.Host an intrinsic needs. Declared locally
// (rather than importing internal/frame) so frame can depend on gfunction
// without a cycle.
type Host interface {
	NowMillis() int64
	Stdout() io.Writer
	// Render renders a value for display, which for object/array references
	// requires walking the heap, something a bare types.Value can't do on
	// its own.
	Render(v types.Value) string
}

// GMeth is one registered native method: how many argument slots it expects
// and the Go function that implements it.
type GMeth struct {
	ParamSlots int
	GFunction  func(host Host, args []types.Value) (types.Value, bool, error)
}

// MethodSignatures is the intrinsic registry, keyed by the bare method name
// regardless of descriptor: two overloads of the same name share one entry.
var MethodSignatures = map[string]GMeth{
	"print":              {ParamSlots: 1, GFunction: gfPrint},
	"currentTimeMillis":  {ParamSlots: 0, GFunction: gfCurrentTimeMillis},
	"registerNatives":    {ParamSlots: 0, GFunction: gfRegisterNatives},
}

// Lookup reports whether name is a recognised intrinsic.
func Lookup(name string) (GMeth, bool) {
	g, ok := MethodSignatures[name]
	return g, ok
}

func gfPrint(host Host, args []types.Value) (types.Value, bool, error) {
	if len(args) != 1 {
		return types.Value{}, false, fmt.Errorf("print: expected 1 argument, got %d", len(args))
	}
	fmt.Fprint(host.Stdout(), host.Render(args[0]))
	return types.Value{}, false, nil
}

func gfCurrentTimeMillis(host Host, args []types.Value) (types.Value, bool, error) {
	return types.Long(host.NowMillis()), true, nil
}

func gfRegisterNatives(host Host, args []types.Value) (types.Value, bool, error) {
	return types.Value{}, false, nil
}
