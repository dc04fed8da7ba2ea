/*
 * classbox - a partial interpreter for compiled class files
 * Copyright (c) 2026 by the classbox authors.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package frame

import (
	"github.com/jacobin-run/classbox/internal/bytecode"
	"github.com/jacobin-run/classbox/internal/types"
)

// newArray implements newarray{element-type}: pop the length,
// allocate length cells of the element type's zero value, push the
// reference.
func (f *Frame) newArray(in bytecode.Instr) error {
	n := f.pop()
	length := int32(n.Num)
	if length < 0 {
		return negativeArraySize(int(length))
	}
	kind, desc := elemTypeForTag(byte(in.IntOperand))
	addr := f.Host.Heap().AllocArray(kind, desc, int(length))
	f.push(types.Ref(addr))
	return nil
}

// aNewArray allocates a reference-element array; the element class is named
// but never itself loaded (array allocation doesn't require the element
// class to be linked, only its name).
func (f *Frame) aNewArray(in bytecode.Instr) error {
	n := f.pop()
	length := int32(n.Num)
	if length < 0 {
		return negativeArraySize(int(length))
	}
	name, ok := f.Class.File.ClassNameAt(uint16(in.CPIndex))
	if !ok {
		return typeError("anewarray: constant pool entry is not a Class")
	}
	desc := types.FieldType{Base: 'L', ClassName: name}
	addr := f.Host.Heap().AllocArray(types.KindReference, desc, int(length))
	f.push(types.Ref(addr))
	return nil
}

func elemTypeForTag(tag byte) (types.Kind, types.FieldType) {
	switch tag {
	case bytecode.ATBoolean:
		return types.KindBoolean, types.FieldType{Base: 'Z'}
	case bytecode.ATChar:
		return types.KindChar, types.FieldType{Base: 'C'}
	case bytecode.ATFloat:
		return types.KindFloat, types.FieldType{Base: 'F'}
	case bytecode.ATDouble:
		return types.KindDouble, types.FieldType{Base: 'D'}
	case bytecode.ATByte:
		return types.KindByte, types.FieldType{Base: 'B'}
	case bytecode.ATShort:
		return types.KindShort, types.FieldType{Base: 'S'}
	case bytecode.ATLong:
		return types.KindLong, types.FieldType{Base: 'J'}
	default: // ATInt and anything else defaults to int, matched by decode.go's own tag validation
		return types.KindInt, types.FieldType{Base: 'I'}
	}
}

// arrayLength implements arraylength: pop a reference, read the
// header's length field, push as Int.
func (f *Frame) arrayLength() error {
	ref := f.pop()
	if ref.IsNull() {
		return nullPointer("arraylength on null")
	}
	obj, ok := f.Host.Heap().Get(ref.Ref)
	if !ok || obj.Shape != ShapeArray {
		return typeError("arraylength: reference is not an array")
	}
	f.push(types.Int(int32(len(obj.Cells))))
	return nil
}

// arrayLoad implements arrayload{type}.
func (f *Frame) arrayLoad(kind types.Kind) error {
	index := f.pop()
	ref := f.pop()
	if ref.IsNull() {
		return nullPointer("array load on null")
	}
	obj, ok := f.Host.Heap().Get(ref.Ref)
	if !ok || obj.Shape != ShapeArray {
		return typeError("array load: reference is not an array")
	}
	idx := int(int32(index.Num))
	if idx < 0 || idx >= len(obj.Cells) {
		return arrayIndexOutOfBounds(idx, len(obj.Cells))
	}
	f.push(obj.Cells[idx])
	return nil
}

// arrayStore implements arraystore{type}: pop value, pop index,
// pop reference; verify the array's element type matches the store type.
func (f *Frame) arrayStore(kind types.Kind) error {
	value := f.pop()
	index := f.pop()
	ref := f.pop()
	if ref.IsNull() {
		return nullPointer("array store on null")
	}
	obj, ok := f.Host.Heap().Get(ref.Ref)
	if !ok || obj.Shape != ShapeArray {
		return typeError("array store: reference is not an array")
	}
	if obj.ElemType != kind {
		return arrayStoreMismatch(kind.String(), obj.ElemType.String())
	}
	idx := int(int32(index.Num))
	if idx < 0 || idx >= len(obj.Cells) {
		return arrayIndexOutOfBounds(idx, len(obj.Cells))
	}
	obj.Cells[idx] = value
	return nil
}
