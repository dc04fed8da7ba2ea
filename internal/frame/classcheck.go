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

// classIsA walks an object's super chain looking for targetName, the
// minimal notion of "is-a" this interpreter supports without interface
// tables (interfaces are out of scope; invokeinterface is unsupported).
func classIsA(name string, super *classloader.Class, targetName string) bool {
	if name == targetName {
		return true
	}
	for c := super; c != nil; c = c.Super {
		if c.Name == targetName {
			return true
		}
	}
	return false
}

// checkCast implements checkcast{i}: null always passes; otherwise
// targetName must be the receiver's runtime class or one of that class's
// ancestors.
func (f *Frame) checkCast(cpIndex int) error {
	ref := f.peek()
	if ref.IsNull() {
		return nil
	}
	name, ok := f.Class.File.ClassNameAt(uint16(cpIndex))
	if !ok {
		return typeError("checkcast: constant pool entry is not a Class")
	}
	obj, ok := f.Host.Heap().Get(ref.Ref)
	if !ok || obj.Shape != ShapeObject {
		return typeError("checkcast: reference is not an object")
	}
	if !classIsA(obj.Class.Name, obj.Class.Super, name) {
		return classCastException(obj.Class.Name, name)
	}
	return nil
}

// instanceOf implements instanceof{i}: null is never an instance of
// anything.
func (f *Frame) instanceOf(cpIndex int) error {
	ref := f.pop()
	if ref.IsNull() {
		f.push(types.Int(0))
		return nil
	}
	name, ok := f.Class.File.ClassNameAt(uint16(cpIndex))
	if !ok {
		return typeError("instanceof: constant pool entry is not a Class")
	}
	obj, ok := f.Host.Heap().Get(ref.Ref)
	if !ok || obj.Shape != ShapeObject {
		f.push(types.Int(0))
		return nil
	}
	if classIsA(obj.Class.Name, obj.Class.Super, name) {
		f.push(types.Int(1))
	} else {
		f.push(types.Int(0))
	}
	return nil
}
