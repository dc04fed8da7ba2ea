/*
 * classbox - a partial interpreter for compiled class files
 * Copyright (c) 2026 by the classbox authors.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package classloader is the class linker. It takes a parsed
// classfile.ClassFile and a loader callback and produces an immutable,
// inheritance-resolved Class ready for the frame interpreter.
package classloader

import (
	"github.com/jacobin-run/classbox/internal/bytecode"
	"github.com/jacobin-run/classbox/internal/classfile"
	"github.com/jacobin-run/classbox/internal/types"
)

// Field is one instance field slot in a class's layout, carrying its
// declared type and its stable ordinal.
type Field struct {
	Name        string
	Descriptor  string
	Type        types.FieldType
	AccessFlags uint16
	Ordinal     int
}

func (f Field) IsStatic() bool { return f.AccessFlags&classfile.AccStatic != 0 }

// StaticSlot is a mutable cell holding a static field's current value. It is
// shared by every frame that reads or writes the field.
type StaticSlot struct {
	Value types.Value
}

// Method is a linked, descriptor-parsed method. Instructions is nil iff the
// method is abstract or native.
type Method struct {
	Name        string
	Descriptor  string
	Parsed      types.MethodDescriptor
	AccessFlags uint16

	MaxLocals  uint16
	MaxStack   uint16
	Instructions []bytecode.Instr
}

func (m *Method) IsStatic() bool       { return m.AccessFlags&classfile.AccStatic != 0 }
func (m *Method) IsNative() bool       { return m.AccessFlags&classfile.AccNative != 0 }
func (m *Method) IsAbstract() bool     { return m.AccessFlags&classfile.AccAbstract != 0 }
func (m *Method) IsSynchronized() bool { return m.AccessFlags&classfile.AccSynchronized != 0 }
func (m *Method) IsPrivate() bool      { return m.AccessFlags&classfile.AccPrivate != 0 }

// memberKey identifies a field or method by (name, descriptor), the unit
// symbolic references resolve by.
type memberKey struct {
	Name       string
	Descriptor string
}

// Class is the immutable, linked result of Link. Once published by the
// VM's LoadClass it is never mutated, except through the interior
// mutability of its StaticSlot cells.
type Class struct {
	Name string
	File *classfile.ClassFile
	Super *Class // nil only for the root of the class graph

	Methods map[memberKey]*Method

	// Fields lists every instance field, inherited fields first, preserving
	// the super class's ordinals.
	Fields     []Field
	fieldIndex map[memberKey]int

	StaticFields map[memberKey]*StaticSlot

	// ClinitDone latches once <clinit> has run, so the VM's load_class never
	// re-triggers it.
	ClinitDone bool
}

// FieldOrdinal resolves an instance field's position within this class's
// layout.
func (c *Class) FieldOrdinal(name, descriptor string) (int, bool) {
	idx, ok := c.fieldIndex[memberKey{name, descriptor}]
	return idx, ok
}

// LookupMethod searches this class then its super chain for (name,
// descriptor), returning the class that declares it alongside the method
// itself, or ok=false if neither it nor any ancestor declares it.
func (c *Class) LookupMethod(name, descriptor string) (*Class, *Method, bool) {
	for cur := c; cur != nil; cur = cur.Super {
		if m, ok := cur.Methods[memberKey{name, descriptor}]; ok {
			return cur, m, true
		}
	}
	return nil, nil, false
}

// Clinit returns this class's own class initializer, if it declared one.
// Never walks the super chain: each class's <clinit> runs exactly once,
// triggered by the VM as part of loading that specific class, not inherited or re-triggered by a subclass's load.
func (c *Class) Clinit() (*Method, bool) {
	m, ok := c.Methods[memberKey{"<clinit>", "()V"}]
	return m, ok
}

// LookupStatic searches this class then its super chain for a static field
// slot (getstatic/putstatic may name an owner other than the running
// class's immediate layout).
func (c *Class) LookupStatic(name, descriptor string) (*Class, *StaticSlot, bool) {
	for cur := c; cur != nil; cur = cur.Super {
		if s, ok := cur.StaticFields[memberKey{name, descriptor}]; ok {
			return cur, s, true
		}
	}
	return nil, nil, false
}
