/*
 * classbox - a partial interpreter for compiled class files
 * Copyright (c) 2026 by the classbox authors.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// reader is a small cursor over a big-endian byte stream: a single parse()
// entry point threads a position through repeated fixed-width reads,
// expressed here over an io.Reader instead of a raw byte slice so Parse can
// be driven directly from an os.File or a bytes.Reader alike.
type reader struct {
	r   io.Reader
	err error
}

func (rd *reader) u1() uint8 {
	var b [1]byte
	rd.read(b[:])
	return b[0]
}

func (rd *reader) u2() uint16 {
	var b [2]byte
	rd.read(b[:])
	return binary.BigEndian.Uint16(b[:])
}

func (rd *reader) u4() uint32 {
	var b [4]byte
	rd.read(b[:])
	return binary.BigEndian.Uint32(b[:])
}

func (rd *reader) bytes(n int) []byte {
	b := make([]byte, n)
	rd.read(b)
	return b
}

func (rd *reader) read(b []byte) {
	if rd.err != nil {
		return
	}
	if len(b) == 0 {
		return
	}
	if _, err := io.ReadFull(rd.r, b); err != nil {
		rd.err = errors.Wrap(ErrTruncated, err.Error())
	}
}

// Parse decodes a complete class file from r.
func Parse(r io.Reader) (*ClassFile, error) {
	rd := &reader{r: r}

	magic := rd.u4()
	if rd.err != nil {
		return nil, rd.err
	}
	if magic != Magic {
		return nil, ErrBadMagic
	}

	cf := &ClassFile{}
	cf.MinorVersion = rd.u2()
	cf.MajorVersion = rd.u2()

	if err := readConstantPool(rd, cf); err != nil {
		return nil, err
	}

	cf.AccessFlags = rd.u2()
	cf.ThisClass = rd.u2()
	cf.SuperClass = rd.u2()

	ifaceCount := rd.u2()
	for i := 0; i < int(ifaceCount); i++ {
		cf.Interfaces = append(cf.Interfaces, rd.u2())
	}

	fieldCount := rd.u2()
	for i := 0; i < int(fieldCount); i++ {
		fi, err := readFieldOrMethodShell(rd, cf)
		if err != nil {
			return nil, err
		}
		f := FieldInfo{
			AccessFlags: fi.accessFlags,
			NameIndex:   fi.nameIndex,
			DescIndex:   fi.descIndex,
			Attributes:  fi.attributes,
		}
		f.Name, _ = cf.Utf8At(f.NameIndex)
		f.Desc, _ = cf.Utf8At(f.DescIndex)
		cf.Fields = append(cf.Fields, f)
	}

	methodCount := rd.u2()
	for i := 0; i < int(methodCount); i++ {
		mi, err := readFieldOrMethodShell(rd, cf)
		if err != nil {
			return nil, err
		}
		m := MethodInfo{
			AccessFlags: mi.accessFlags,
			NameIndex:   mi.nameIndex,
			DescIndex:   mi.descIndex,
			Attributes:  mi.attributes,
		}
		m.Name, _ = cf.Utf8At(m.NameIndex)
		m.Desc, _ = cf.Utf8At(m.DescIndex)
		for _, a := range m.Attributes {
			if a.Name == "Code" {
				code, err := parseCodeAttribute(a.Raw, cf)
				if err != nil {
					return nil, err
				}
				m.Code = code
			}
		}
		cf.Methods = append(cf.Methods, m)
	}

	attrCount := rd.u2()
	for i := 0; i < int(attrCount); i++ {
		a, err := readAttribute(rd, cf)
		if err != nil {
			return nil, err
		}
		cf.Attributes = append(cf.Attributes, a)
	}

	if rd.err != nil {
		return nil, rd.err
	}

	cf.ThisClassName, _ = cf.ClassNameAt(cf.ThisClass)
	if cf.SuperClass != 0 {
		cf.SuperClassName, _ = cf.ClassNameAt(cf.SuperClass)
	}

	return cf, nil
}

// readConstantPool reads the constant_pool_count and the pool itself,
// leaving the slot following every Long/Double entry as a zero-value
// placeholder, matching the wire format's two-slot convention.
func readConstantPool(rd *reader, cf *ClassFile) error {
	count := rd.u2() // constant_pool_count = count of entries + 1
	cf.ConstantPool = make([]CPEntry, count)
	// index 0 is never used; left as the zero value.
	i := uint16(1)
	for i < count {
		tag := rd.u1()
		entry := CPEntry{Tag: tag}
		switch tag {
		case TagUtf8:
			n := rd.u2()
			entry.Utf8 = string(rd.bytes(int(n)))
		case TagInteger:
			entry.IntVal = int32(rd.u4())
		case TagFloat:
			entry.FloatVal = u32ToFloat32(rd.u4())
		case TagLong:
			hi := uint64(rd.u4())
			lo := uint64(rd.u4())
			entry.LongVal = int64(hi<<32 | lo)
		case TagDouble:
			hi := uint64(rd.u4())
			lo := uint64(rd.u4())
			entry.DoubleVal = u64ToFloat64(hi<<32 | lo)
		case TagClass, TagModule, TagPackage:
			entry.NameIndex = rd.u2()
		case TagString:
			entry.NameIndex = rd.u2()
		case TagFieldref, TagMethodref, TagInterfaceMethodref:
			entry.ClassIndex = rd.u2()
			entry.NameAndTypeIndex = rd.u2()
		case TagNameAndType:
			entry.NameIndex = rd.u2()
			entry.DescriptorIndex = rd.u2()
		case TagMethodHandle:
			entry.RefKind = rd.u1()
			entry.RefIndex = rd.u2()
		case TagMethodType:
			entry.DescriptorIndex = rd.u2()
		case TagDynamic, TagInvokeDynamic:
			entry.BootstrapMethodAttrIndex = rd.u2()
			entry.NameAndTypeIndex = rd.u2()
		default:
			return &UnknownConstantTagError{Tag: tag}
		}
		if rd.err != nil {
			return rd.err
		}
		cf.ConstantPool[i] = entry
		if tag == TagLong || tag == TagDouble {
			i += 2 // the second slot stays a zero-value placeholder
		} else {
			i++
		}
	}
	return nil
}

type memberShell struct {
	accessFlags uint16
	nameIndex   uint16
	descIndex   uint16
	attributes  []AttributeInfo
}

func readFieldOrMethodShell(rd *reader, cf *ClassFile) (memberShell, error) {
	var m memberShell
	m.accessFlags = rd.u2()
	m.nameIndex = rd.u2()
	m.descIndex = rd.u2()
	attrCount := rd.u2()
	for i := 0; i < int(attrCount); i++ {
		a, err := readAttribute(rd, cf)
		if err != nil {
			return m, err
		}
		m.attributes = append(m.attributes, a)
	}
	if rd.err != nil {
		return m, rd.err
	}
	return m, nil
}

func readAttribute(rd *reader, cf *ClassFile) (AttributeInfo, error) {
	nameIdx := rd.u2()
	length := rd.u4()
	raw := rd.bytes(int(length))
	if rd.err != nil {
		return AttributeInfo{}, rd.err
	}
	name, _ := cf.Utf8At(nameIdx)
	return AttributeInfo{NameIndex: nameIdx, Name: name, Raw: raw}, nil
}

// parseCodeAttribute decodes a Code attribute's raw bytes (already fully
// read by the generic attribute reader above) into its structured form.
func parseCodeAttribute(raw []byte, cf *ClassFile) (*CodeAttribute, error) {
	rd := &reader{r: byteSliceReader(raw)}
	ca := &CodeAttribute{}
	ca.MaxStack = rd.u2()
	ca.MaxLocals = rd.u2()
	codeLen := rd.u4()
	ca.Code = rd.bytes(int(codeLen))

	excCount := rd.u2()
	for i := 0; i < int(excCount); i++ {
		ca.Exceptions = append(ca.Exceptions, ExceptionTableEntry{
			StartPC:   rd.u2(),
			EndPC:     rd.u2(),
			HandlerPC: rd.u2(),
			CatchType: rd.u2(),
		})
	}

	attrCount := rd.u2()
	for i := 0; i < int(attrCount); i++ {
		a, err := readAttribute(rd, cf)
		if err != nil {
			return nil, err
		}
		if a.Name == "LineNumberTable" {
			lnRd := &reader{r: byteSliceReader(a.Raw)}
			n := lnRd.u2()
			for j := 0; j < int(n); j++ {
				ca.LineNumbers = append(ca.LineNumbers, LineNumberEntry{
					StartPC:    lnRd.u2(),
					LineNumber: lnRd.u2(),
				})
			}
			if lnRd.err != nil {
				return nil, lnRd.err
			}
		}
		ca.Attributes = append(ca.Attributes, a)
	}
	if rd.err != nil {
		return nil, rd.err
	}
	return ca, nil
}

// ParseBootstrapMethods decodes a BootstrapMethods class attribute's raw
// bytes. Exposed so the linker can resolve invokedynamic call sites'
// bootstrap metadata even though the core never drives it to completion.
func ParseBootstrapMethods(raw []byte) (*BootstrapMethodsAttribute, error) {
	rd := &reader{r: byteSliceReader(raw)}
	n := rd.u2()
	out := &BootstrapMethodsAttribute{}
	for i := 0; i < int(n); i++ {
		bm := BootstrapMethod{MethodRefIndex: rd.u2()}
		argc := rd.u2()
		for j := 0; j < int(argc); j++ {
			bm.Arguments = append(bm.Arguments, rd.u2())
		}
		out.Methods = append(out.Methods, bm)
	}
	if rd.err != nil {
		return nil, rd.err
	}
	return out, nil
}

func u32ToFloat32(bits uint32) float32 {
	return float32frombits(bits)
}

func u64ToFloat64(bits uint64) float64 {
	return float64frombits(bits)
}
