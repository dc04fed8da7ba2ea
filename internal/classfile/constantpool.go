/*
 * classbox - a partial interpreter for compiled class files
 * Copyright (c) 2026 by the classbox authors.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

// Constant pool tags. These match the published bytecode format's
// CONSTANT_* values; the decoder in reader.go switches on exactly this set
// and fails UnknownConstantTag on anything else.
const (
	TagUtf8               = 1
	TagInteger            = 3
	TagFloat              = 4
	TagLong               = 5
	TagDouble             = 6
	TagClass              = 7
	TagString             = 8
	TagFieldref           = 9
	TagMethodref          = 10
	TagInterfaceMethodref = 11
	TagNameAndType        = 12
	TagMethodHandle       = 15
	TagMethodType         = 16
	TagDynamic            = 17
	TagInvokeDynamic      = 18
	TagModule             = 19
	TagPackage            = 20
)

// CPEntry is one constant-pool slot. Only the fields relevant to Tag are
// populated; index 0 and the slot following a Long/Double entry are left as
// the zero value (Tag == 0) and are never dereferenced.
type CPEntry struct {
	Tag byte

	// Utf8
	Utf8 string

	// Integer / Float
	IntVal   int32
	FloatVal float32

	// Long / Double (occupy this slot and leave the next one TagPlaceholder)
	LongVal   int64
	DoubleVal float64

	// Class / String: index into the pool of a Utf8 entry
	NameIndex uint16

	// Fieldref / Methodref / InterfaceMethodref
	ClassIndex       uint16
	NameAndTypeIndex uint16

	// NameAndType
	DescriptorIndex uint16

	// MethodHandle
	RefKind  byte
	RefIndex uint16

	// MethodType: DescriptorIndex reused

	// Dynamic / InvokeDynamic
	BootstrapMethodAttrIndex uint16
	// NameAndTypeIndex reused

	// Module / Package
	// NameIndex reused
}

// TagPlaceholder marks the dead slot following a Long/Double entry.
const TagPlaceholder = 0

// IsLive reports whether this slot holds a real entry (as opposed to index 0
// or a long/double placeholder slot).
func (e CPEntry) IsLive() bool { return e.Tag != TagPlaceholder }

// Utf8At resolves a Utf8 constant-pool index to its string, or the empty
// string plus false if the index is out of range or not a Utf8 entry.
func (cf *ClassFile) Utf8At(idx uint16) (string, bool) {
	if int(idx) >= len(cf.ConstantPool) {
		return "", false
	}
	e := cf.ConstantPool[idx]
	if e.Tag != TagUtf8 {
		return "", false
	}
	return e.Utf8, true
}

// ClassNameAt resolves a Class constant-pool index to the internal class
// name it refers to.
func (cf *ClassFile) ClassNameAt(idx uint16) (string, bool) {
	if int(idx) >= len(cf.ConstantPool) {
		return "", false
	}
	e := cf.ConstantPool[idx]
	if e.Tag != TagClass {
		return "", false
	}
	return cf.Utf8At(e.NameIndex)
}

// NameAndTypeAt resolves a NameAndType entry to its (name, descriptor) pair.
func (cf *ClassFile) NameAndTypeAt(idx uint16) (name, descriptor string, ok bool) {
	if int(idx) >= len(cf.ConstantPool) {
		return "", "", false
	}
	e := cf.ConstantPool[idx]
	if e.Tag != TagNameAndType {
		return "", "", false
	}
	name, ok1 := cf.Utf8At(e.NameIndex)
	descriptor, ok2 := cf.Utf8At(e.DescriptorIndex)
	return name, descriptor, ok1 && ok2
}

// RefAt resolves a Fieldref/Methodref/InterfaceMethodref entry to the
// (className, memberName, descriptor) triple method/field dispatch keys on.
func (cf *ClassFile) RefAt(idx uint16) (className, name, descriptor string, ok bool) {
	if int(idx) >= len(cf.ConstantPool) {
		return "", "", "", false
	}
	e := cf.ConstantPool[idx]
	switch e.Tag {
	case TagFieldref, TagMethodref, TagInterfaceMethodref:
	default:
		return "", "", "", false
	}
	className, ok1 := cf.ClassNameAt(e.ClassIndex)
	name, descriptor, ok2 := cf.NameAndTypeAt(e.NameAndTypeIndex)
	return className, name, descriptor, ok1 && ok2
}
