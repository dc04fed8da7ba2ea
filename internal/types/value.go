/*
 * classbox - a partial interpreter for compiled class files
 * Copyright (c) 2026 by the classbox authors.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package types defines the value domain shared by the class-file reader,
// the instruction decoder, and the frame interpreter: the descriptor grammar
// and the tagged JvmValue union that every local slot, operand-stack entry,
// and heap cell is built from.
package types

import "fmt"

// Kind tags the variant currently held by a Value. A Value is sized and laid
// out uniformly regardless of Kind, so that object and array payload cells
// can be indexed without per-field specialization (see doc comment on Value).
type Kind int

const (
	KindUnset Kind = iota
	KindByte
	KindShort
	KindInt
	KindLong
	KindChar
	KindFloat
	KindDouble
	KindBoolean
	KindReturnAddress
	KindReference
	KindStringConst
)

func (k Kind) String() string {
	switch k {
	case KindByte:
		return "byte"
	case KindShort:
		return "short"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindChar:
		return "char"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindBoolean:
		return "boolean"
	case KindReturnAddress:
		return "returnAddress"
	case KindReference:
		return "reference"
	case KindStringConst:
		return "stringConst"
	default:
		return "unset"
	}
}

// Value is the tagged sum every operand-stack entry, local slot, and heap
// cell is built from: every numeric kind is carried in Num or Flt depending
// on family, references are a heap arena index (0 is null), and StringConst
// borrows a Go string for an unlinked constant-pool string that hasn't yet
// been materialized into a java/lang/String object.
//
// The struct intentionally carries every field regardless of which Kind is
// active (a uniform cell), matching the "don't specialize per field type"
// guidance for the heap payload layout: object and array cells are just
// slices of Value, addressed by ordinal/index without per-kind branching.
type Value struct {
	Kind Kind
	Num  int64
	Flt  float64
	Ref  uint64
	Str  string
}

// Int builds an int-kinded Value.
func Int(v int32) Value { return Value{Kind: KindInt, Num: int64(v)} }

// Long builds a long-kinded Value.
func Long(v int64) Value { return Value{Kind: KindLong, Num: v} }

// Float32 builds a float-kinded Value.
func Float32(v float32) Value { return Value{Kind: KindFloat, Flt: float64(v)} }

// Float64 builds a double-kinded Value.
func Float64(v float64) Value { return Value{Kind: KindDouble, Flt: v} }

// Bool builds a boolean-kinded Value (stored as 0/1 in Num).
func Bool(v bool) Value {
	if v {
		return Value{Kind: KindBoolean, Num: 1}
	}
	return Value{Kind: KindBoolean, Num: 0}
}

// Null is the reference value denoting a null pointer: the integer 0 is
// never a valid arena index.
func Null() Value { return Value{Kind: KindReference, Ref: 0} }

// Ref builds a reference-kinded Value pointing at a heap arena slot.
func Ref(addr uint64) Value { return Value{Kind: KindReference, Ref: addr} }

// StringConst builds a borrowed-string constant value (LDC of a String entry
// before it has been materialized as a java/lang/String heap object).
func StringConst(s string) Value { return Value{Kind: KindStringConst, Str: s} }

// IsNull reports whether a reference Value is the null reference.
func (v Value) IsNull() bool { return v.Kind == KindReference && v.Ref == 0 }

// ZeroFor returns the default value for a given kind, used to initialize
// local variable slots, array cells, and newly allocated object fields.
func ZeroFor(k Kind) Value {
	switch k {
	case KindFloat, KindDouble:
		return Value{Kind: k, Flt: 0}
	case KindReference:
		return Value{Kind: KindReference, Ref: 0}
	case KindBoolean:
		return Value{Kind: KindBoolean, Num: 0}
	default:
		return Value{Kind: k, Num: 0}
	}
}

// Render produces the human-readable form used by the print intrinsic for
// non-reference values.
func (v Value) Render() string {
	switch v.Kind {
	case KindFloat, KindDouble:
		return fmt.Sprintf("%g", v.Flt)
	case KindStringConst:
		return v.Str
	case KindReference:
		if v.Ref == 0 {
			return "null"
		}
		return fmt.Sprintf("ref@%d", v.Ref)
	case KindBoolean:
		return fmt.Sprintf("%t", v.Num != 0)
	default:
		return fmt.Sprintf("%d", v.Num)
	}
}
