/*
 * classbox - a partial interpreter for compiled class files
 * Copyright (c) 2026 by the classbox authors.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package frame

import (
	"github.com/jacobin-run/classbox/internal/classfile"
	"github.com/jacobin-run/classbox/internal/types"
)

// resolveLdc implements ldc{i}: a String entry resolves to a
// StringConst; every other kind is unimplemented. This interpreter never
// materializes boxed Integer/Float constants or Class/MethodHandle/
// MethodType call-site metadata.
func (f *Frame) resolveLdc(cpIndex int) (types.Value, error) {
	pool := f.Class.File.ConstantPool
	if cpIndex <= 0 || cpIndex >= len(pool) {
		return types.Value{}, typeError("ldc: constant pool index out of range")
	}
	entry := pool[cpIndex]
	switch entry.Tag {
	case classfile.TagString:
		s, ok := f.Class.File.Utf8At(entry.NameIndex)
		if !ok {
			return types.Value{}, typeError("ldc: String entry's utf8 index is invalid")
		}
		return types.StringConst(s), nil
	default:
		return types.Value{}, unimplemented("ldc of constant-pool tag")
	}
}

// resolveLdc2 implements ldc2{i}, the only two CP tags the wide-constant
// decode ever points at: Long and Double.
func (f *Frame) resolveLdc2(cpIndex int) (types.Value, error) {
	pool := f.Class.File.ConstantPool
	if cpIndex <= 0 || cpIndex >= len(pool) {
		return types.Value{}, typeError("ldc2: constant pool index out of range")
	}
	entry := pool[cpIndex]
	switch entry.Tag {
	case classfile.TagLong:
		return types.Long(entry.LongVal), nil
	case classfile.TagDouble:
		return types.Float64(entry.DoubleVal), nil
	default:
		return types.Value{}, unimplemented("ldc2 of non-long/double constant-pool tag")
	}
}
