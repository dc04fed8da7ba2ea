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

// resolveOwner returns the Class a symbolic class reference names, loading
// it through the Host when it isn't the currently-executing class.
func (f *Frame) resolveOwner(className string) (*classloader.Class, error) {
	if className == f.Class.Name {
		return f.Class, nil
	}
	return f.Host.LoadClass(className)
}

// getStatic implements getstatic{i}.
func (f *Frame) getStatic(cpIndex int) (types.Value, error) {
	className, name, descriptor, ok := f.Class.File.RefAt(uint16(cpIndex))
	if !ok {
		return types.Value{}, typeError("getstatic: constant pool entry is not a field ref")
	}
	owner, err := f.resolveOwner(className)
	if err != nil {
		return types.Value{}, err
	}
	_, slot, ok := owner.LookupStatic(name, descriptor)
	if !ok {
		return types.Value{}, noSuchField(className, name, descriptor)
	}
	return slot.Value, nil
}

// putStatic implements putstatic{i}.
func (f *Frame) putStatic(cpIndex int, v types.Value) error {
	className, name, descriptor, ok := f.Class.File.RefAt(uint16(cpIndex))
	if !ok {
		return typeError("putstatic: constant pool entry is not a field ref")
	}
	owner, err := f.resolveOwner(className)
	if err != nil {
		return err
	}
	_, slot, ok := owner.LookupStatic(name, descriptor)
	if !ok {
		return noSuchField(className, name, descriptor)
	}
	slot.Value = v
	return nil
}

// getField implements getfield{i}. The object's own class (not
// the symbolic owner named by the constant pool entry) locates the field
// ordinal, since inherited ordinals are stable across the hierarchy.
func (f *Frame) getField(cpIndex int) error {
	_, name, descriptor, ok := f.Class.File.RefAt(uint16(cpIndex))
	if !ok {
		return typeError("getfield: constant pool entry is not a field ref")
	}
	ref := f.pop()
	if ref.IsNull() {
		return nullPointer("getfield on null")
	}
	obj, ok := f.Host.Heap().Get(ref.Ref)
	if !ok || obj.Shape != ShapeObject {
		return typeError("getfield: reference is not an object")
	}
	ord, ok := obj.Class.FieldOrdinal(name, descriptor)
	if !ok {
		return noSuchField(obj.Class.Name, name, descriptor)
	}
	f.push(obj.Cells[ord])
	return nil
}

// putField implements putfield{i}.
func (f *Frame) putField(cpIndex int) error {
	_, name, descriptor, ok := f.Class.File.RefAt(uint16(cpIndex))
	if !ok {
		return typeError("putfield: constant pool entry is not a field ref")
	}
	value := f.pop()
	ref := f.pop()
	if ref.IsNull() {
		return nullPointer("putfield on null")
	}
	obj, ok := f.Host.Heap().Get(ref.Ref)
	if !ok || obj.Shape != ShapeObject {
		return typeError("putfield: reference is not an object")
	}
	ord, ok := obj.Class.FieldOrdinal(name, descriptor)
	if !ok {
		return noSuchField(obj.Class.Name, name, descriptor)
	}
	obj.Cells[ord] = value
	return nil
}

// newObject implements new{i}.
func (f *Frame) newObject(cpIndex int) error {
	name, ok := f.Class.File.ClassNameAt(uint16(cpIndex))
	if !ok {
		return typeError("new: constant pool entry is not a Class")
	}
	cls, err := f.resolveOwner(name)
	if err != nil {
		return err
	}
	addr := f.Host.Heap().AllocObject(cls)
	f.push(types.Ref(addr))
	return nil
}
