/*
 * classbox - a partial interpreter for compiled class files
 * Copyright (c) 2026 by the classbox authors.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package types

import (
	"strings"

	"github.com/pkg/errors"
)

// FieldType is a parsed field descriptor: either a base type, an object
// type named by its internal class name, or an array of some element type
// repeated ArrayDims times.
type FieldType struct {
	Base       byte // one of BCDFIJSZ, or 'L' for object, or 0 for array
	ClassName  string
	ArrayDims  int
	ArrayOf    *FieldType // element type when ArrayDims > 0
}

// IsArray reports whether this field type denotes an array.
func (f FieldType) IsArray() bool { return f.ArrayDims > 0 }

// Kind maps a base-type byte to the Value Kind used on the operand stack.
func (f FieldType) Kind() Kind {
	if f.IsArray() || f.Base == 'L' {
		return KindReference
	}
	switch f.Base {
	case 'B':
		return KindByte
	case 'C':
		return KindChar
	case 'D':
		return KindDouble
	case 'F':
		return KindFloat
	case 'I':
		return KindInt
	case 'J':
		return KindLong
	case 'S':
		return KindShort
	case 'Z':
		return KindBoolean
	default:
		return KindUnset
	}
}

// Width is the number of local-variable / operand-stack slots a value of
// this type occupies in the class-file format (2 for long/double, 1
// otherwise). The interpreter's locals and operand stack hold one Value per
// entry and do not consult it.
func (f FieldType) Width() int {
	if f.Base == 'J' || f.Base == 'D' {
		return 2
	}
	return 1
}

func (f FieldType) String() string {
	if f.IsArray() {
		return strings.Repeat("[", f.ArrayDims) + f.ArrayOf.String()
	}
	if f.Base == 'L' {
		return "L" + f.ClassName + ";"
	}
	return string(f.Base)
}

// ParseFieldDescriptor parses a single field descriptor starting at s[0],
// returning the parsed type and how many bytes of s it consumed.
func ParseFieldDescriptor(s string) (FieldType, int, error) {
	if len(s) == 0 {
		return FieldType{}, 0, errors.New("InvalidDescriptor: empty field descriptor")
	}
	switch s[0] {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z':
		return FieldType{Base: s[0]}, 1, nil
	case 'L':
		idx := strings.IndexByte(s, ';')
		if idx < 0 {
			return FieldType{}, 0, errors.Errorf("InvalidDescriptor: unterminated object type %q", s)
		}
		return FieldType{Base: 'L', ClassName: s[1:idx]}, idx + 1, nil
	case '[':
		dims := 0
		i := 0
		for i < len(s) && s[i] == '[' {
			dims++
			i++
		}
		elem, n, err := ParseFieldDescriptor(s[i:])
		if err != nil {
			return FieldType{}, 0, err
		}
		return FieldType{ArrayDims: dims, ArrayOf: &elem}, i + n, nil
	default:
		return FieldType{}, 0, errors.Errorf("InvalidDescriptor: unknown field descriptor byte %q in %q", s[0], s)
	}
}

// MethodDescriptor is a parsed method descriptor: ordered parameter types
// plus a return type (Base == 'V' for void).
type MethodDescriptor struct {
	Params []FieldType
	Return FieldType
	IsVoid bool
}

// ParseMethodDescriptor parses a full method descriptor string, e.g.
// "(Ljava/lang/String;I)V".
func ParseMethodDescriptor(s string) (MethodDescriptor, error) {
	if len(s) == 0 || s[0] != '(' {
		return MethodDescriptor{}, errors.Errorf("InvalidDescriptor: method descriptor must start with '(': %q", s)
	}
	i := 1
	var params []FieldType
	for i < len(s) && s[i] != ')' {
		ft, n, err := ParseFieldDescriptor(s[i:])
		if err != nil {
			return MethodDescriptor{}, err
		}
		params = append(params, ft)
		i += n
	}
	if i >= len(s) {
		return MethodDescriptor{}, errors.Errorf("InvalidDescriptor: unterminated parameter list in %q", s)
	}
	i++ // skip ')'
	rest := s[i:]
	if rest == "V" {
		return MethodDescriptor{Params: params, Return: FieldType{Base: 'V'}, IsVoid: true}, nil
	}
	ret, _, err := ParseFieldDescriptor(rest)
	if err != nil {
		return MethodDescriptor{}, err
	}
	return MethodDescriptor{Params: params, Return: ret}, nil
}

// ParamWidth returns the total operand-stack slot width of the descriptor's
// parameters. Invocation pops and copies one entry per parameter
// (len(Params)) and does not use this width.
func (m MethodDescriptor) ParamWidth() int {
	n := 0
	for _, p := range m.Params {
		n += p.Width()
	}
	return n
}
