/*
 * classbox - a partial interpreter for compiled class files
 * Copyright (c) 2026 by the classbox authors.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package frame

import (
	"github.com/jacobin-run/classbox/internal/classloader"
	"github.com/jacobin-run/classbox/internal/types"
)

// Shape distinguishes the two heap allocation layouts, which share a common
// header discriminant: Object (a class pointer plus one cell per instance
// field) and Array (an element-type tag plus a length and that many cells).
// A Go map-based arena makes the literal byte-level header unnecessary;
// Shape plays the discriminant's role directly, addressed by the HeapObject
// a reference resolves to rather than by reading raw bytes.
type Shape int

const (
	ShapeObject Shape = iota
	ShapeArray
)

// HeapObject is one allocation in the VM's heap arena. The two shapes share
// this single struct instead of separate Go types so that a bare reference
// can be classified uniformly by reading Shape: a tagged struct behind a
// map, not a byte layout.
type HeapObject struct {
	Shape Shape

	// Object shape.
	Class *classloader.Class

	// Array shape.
	ElemType types.Kind
	ElemDesc types.FieldType // full element descriptor, for rendering/ArrayStore checks

	Cells []types.Value
}

// Heap is the VM's object arena: allocation-only, no
// reclamation, lifetime equal to the VM's.
type Heap struct {
	objects map[uint64]*HeapObject
	next    uint64
}

// NewHeap returns an empty heap. Address 0 is reserved for the null
// reference and is never allocated.
func NewHeap() *Heap {
	return &Heap{objects: make(map[uint64]*HeapObject), next: 1}
}

// AllocObject lays out one cell per instance field (inherited fields
// first), each initialised to its field's type default.
func (h *Heap) AllocObject(cls *classloader.Class) uint64 {
	cells := make([]types.Value, len(cls.Fields))
	for i, f := range cls.Fields {
		cells[i] = types.ZeroFor(f.Type.Kind())
	}
	addr := h.next
	h.next++
	h.objects[addr] = &HeapObject{Shape: ShapeObject, Class: cls, Cells: cells}
	return addr
}

// AllocArray lays out length cells of elemType's zero value.
func (h *Heap) AllocArray(elemType types.Kind, elemDesc types.FieldType, length int) uint64 {
	cells := make([]types.Value, length)
	for i := range cells {
		cells[i] = types.ZeroFor(elemType)
	}
	addr := h.next
	h.next++
	h.objects[addr] = &HeapObject{Shape: ShapeArray, ElemType: elemType, ElemDesc: elemDesc, Cells: cells}
	return addr
}

// Get resolves a reference to its allocation, or false if it's null or
// otherwise not a live address.
func (h *Heap) Get(ref uint64) (*HeapObject, bool) {
	if ref == 0 {
		return nil, false
	}
	obj, ok := h.objects[ref]
	return obj, ok
}
