/*
 * classbox - a partial interpreter for compiled class files
 * Copyright (c) 2026 by the classbox authors.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package vm_test

import (
	"bytes"
	"fmt"

	"github.com/jacobin-run/classbox/internal/classfile"
)

// cpBuilder hand-assembles a constant pool one entry at a time, mirroring the
// wire format classfile.Parse expects (there is no compiler available to
// produce real .class fixtures, so scenario classes are built byte-exact by
// hand, the same technique internal/classfile's own reader_test.go uses).
type cpBuilder struct {
	buf   bytes.Buffer
	count uint16 // next index to be assigned; starts at 1 (index 0 is never live)
}

func newCPBuilder() *cpBuilder { return &cpBuilder{count: 1} }

func (b *cpBuilder) u1(v uint8)  { b.buf.WriteByte(v) }
func (b *cpBuilder) u2(v uint16) { b.buf.WriteByte(byte(v >> 8)); b.buf.WriteByte(byte(v)) }

func (b *cpBuilder) utf8(s string) uint16 {
	idx := b.count
	b.u1(classfile.TagUtf8)
	b.u2(uint16(len(s)))
	b.buf.WriteString(s)
	b.count++
	return idx
}

func (b *cpBuilder) classFromUtf8(nameIdx uint16) uint16 {
	idx := b.count
	b.u1(classfile.TagClass)
	b.u2(nameIdx)
	b.count++
	return idx
}

func (b *cpBuilder) stringFromUtf8(utf8Idx uint16) uint16 {
	idx := b.count
	b.u1(classfile.TagString)
	b.u2(utf8Idx)
	b.count++
	return idx
}

func (b *cpBuilder) nameAndType(nameIdx, descIdx uint16) uint16 {
	idx := b.count
	b.u1(classfile.TagNameAndType)
	b.u2(nameIdx)
	b.u2(descIdx)
	b.count++
	return idx
}

func (b *cpBuilder) methodref(classIdx, ntIdx uint16) uint16 {
	idx := b.count
	b.u1(classfile.TagMethodref)
	b.u2(classIdx)
	b.u2(ntIdx)
	b.count++
	return idx
}

func (b *cpBuilder) fieldref(classIdx, ntIdx uint16) uint16 {
	idx := b.count
	b.u1(classfile.TagFieldref)
	b.u2(classIdx)
	b.u2(ntIdx)
	b.count++
	return idx
}

type fieldAsm struct {
	nameIdx, descIdx uint16
	accessFlags      uint16
}

type methodAsm struct {
	nameIdx, descIdx uint16
	accessFlags      uint16
	code             []byte // nil means no Code attribute (abstract/native)
	codeNameIdx      uint16
	maxStack         uint16
	maxLocals        uint16
}

// assembleClass serializes a complete class file from an already-populated
// constant pool plus the this/super class indices, fields, and methods.
func assembleClass(cp *cpBuilder, thisClassIdx, superClassIdx uint16, fields []fieldAsm, methods []methodAsm) []byte {
	var buf bytes.Buffer
	w2 := func(v uint16) { buf.WriteByte(byte(v >> 8)); buf.WriteByte(byte(v)) }
	w4 := func(v uint32) {
		buf.WriteByte(byte(v >> 24))
		buf.WriteByte(byte(v >> 16))
		buf.WriteByte(byte(v >> 8))
		buf.WriteByte(byte(v))
	}

	w4(classfile.Magic)
	w2(0)
	w2(61)

	w2(cp.count)
	buf.Write(cp.buf.Bytes())

	w2(0x0021) // ACC_PUBLIC | ACC_SUPER
	w2(thisClassIdx)
	w2(superClassIdx)
	w2(0) // interfaces_count

	w2(uint16(len(fields)))
	for _, f := range fields {
		w2(f.accessFlags)
		w2(f.nameIdx)
		w2(f.descIdx)
		w2(0) // attributes_count
	}

	w2(uint16(len(methods)))
	for _, m := range methods {
		w2(m.accessFlags)
		w2(m.nameIdx)
		w2(m.descIdx)
		if m.code == nil {
			w2(0)
			continue
		}
		w2(1) // attributes_count
		w2(m.codeNameIdx)
		codeAttrLen := 2 + 2 + 4 + len(m.code) + 2 + 2
		w4(uint32(codeAttrLen))
		w2(m.maxStack)
		w2(m.maxLocals)
		w4(uint32(len(m.code)))
		buf.Write(m.code)
		w2(0) // exception_table_count
		w2(0) // code attributes_count
	}

	w2(0) // class attributes_count
	return buf.Bytes()
}

// buildEmptyClass is the root of every scenario's class graph: no fields, no
// methods, super_class == 0.
func buildEmptyClass(name string) []byte {
	cp := newCPBuilder()
	thisU := cp.utf8(name)
	thisIdx := cp.classFromUtf8(thisU)
	return assembleClass(cp, thisIdx, 0, nil, nil)
}

// mapRuntimeImage serves pre-built class bytes by internal name, standing in
// for a real class-path directory in these end-to-end tests.
type mapRuntimeImage map[string][]byte

func (m mapRuntimeImage) ReadClass(internalName string) ([]byte, error) {
	data, ok := m[internalName]
	if !ok {
		return nil, fmt.Errorf("no such class in test runtime image: %s", internalName)
	}
	return data, nil
}
