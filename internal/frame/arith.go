/*
 * classbox - a partial interpreter for compiled class files
 * Copyright (c) 2026 by the classbox authors.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package frame

import (
	"math"

	"github.com/jacobin-run/classbox/internal/bytecode"
	"github.com/jacobin-run/classbox/internal/types"
)

// arith implements the add/sub/mul/div/rem family. The operand order is
// fixed: pop b then a, push op(a, b). Not commutative for sub/div/rem, so
// the order matters.
func (f *Frame) arith(op bytecode.Op, kind types.Kind) error {
	b := f.pop()
	a := f.pop()
	switch kind {
	case types.KindInt:
		x, y := int32(a.Num), int32(b.Num)
		switch op {
		case bytecode.Add:
			f.push(types.Int(x + y))
		case bytecode.Sub:
			f.push(types.Int(x - y))
		case bytecode.Mul:
			f.push(types.Int(x * y))
		case bytecode.Div:
			if y == 0 {
				return arithmeticException("/ by zero")
			}
			f.push(types.Int(x / y))
		case bytecode.Rem:
			if y == 0 {
				return arithmeticException("/ by zero")
			}
			f.push(types.Int(x % y))
		}
	case types.KindLong:
		x, y := a.Num, b.Num
		switch op {
		case bytecode.Add:
			f.push(types.Long(x + y))
		case bytecode.Sub:
			f.push(types.Long(x - y))
		case bytecode.Mul:
			f.push(types.Long(x * y))
		case bytecode.Div:
			if y == 0 {
				return arithmeticException("/ by zero")
			}
			f.push(types.Long(x / y))
		case bytecode.Rem:
			if y == 0 {
				return arithmeticException("/ by zero")
			}
			f.push(types.Long(x % y))
		}
	case types.KindFloat:
		x, y := a.Flt, b.Flt
		switch op {
		case bytecode.Add:
			f.push(types.Float32(float32(x + y)))
		case bytecode.Sub:
			f.push(types.Float32(float32(x - y)))
		case bytecode.Mul:
			f.push(types.Float32(float32(x * y)))
		case bytecode.Div:
			f.push(types.Float32(float32(x / y)))
		case bytecode.Rem:
			f.push(types.Float32(float32(math.Mod(x, y))))
		}
	case types.KindDouble:
		x, y := a.Flt, b.Flt
		switch op {
		case bytecode.Add:
			f.push(types.Float64(x + y))
		case bytecode.Sub:
			f.push(types.Float64(x - y))
		case bytecode.Mul:
			f.push(types.Float64(x * y))
		case bytecode.Div:
			f.push(types.Float64(x / y))
		case bytecode.Rem:
			f.push(types.Float64(math.Mod(x, y)))
		}
	default:
		return typeError("arithmetic on non-numeric kind")
	}
	return nil
}

func (f *Frame) neg(kind types.Kind) error {
	v := f.pop()
	switch kind {
	case types.KindInt:
		f.push(types.Int(-int32(v.Num)))
	case types.KindLong:
		f.push(types.Long(-v.Num))
	case types.KindFloat:
		f.push(types.Float32(float32(-v.Flt)))
	case types.KindDouble:
		f.push(types.Float64(-v.Flt))
	default:
		return typeError("neg on non-numeric kind")
	}
	return nil
}

// bitop implements shl/shr/ushr/and/or/xor, all restricted to int/long.
func (f *Frame) bitop(op bytecode.Op, kind types.Kind) error {
	b := f.pop()
	a := f.pop()
	switch kind {
	case types.KindInt:
		x := int32(a.Num)
		shift := uint32(b.Num) & 0x1f
		switch op {
		case bytecode.Shl:
			f.push(types.Int(x << shift))
		case bytecode.Shr:
			f.push(types.Int(x >> shift))
		case bytecode.Ushr:
			f.push(types.Int(int32(uint32(x) >> shift)))
		case bytecode.And:
			f.push(types.Int(x & int32(b.Num)))
		case bytecode.Or:
			f.push(types.Int(x | int32(b.Num)))
		case bytecode.Xor:
			f.push(types.Int(x ^ int32(b.Num)))
		}
	case types.KindLong:
		x := a.Num
		shift := uint64(b.Num) & 0x3f
		switch op {
		case bytecode.Shl:
			f.push(types.Long(x << shift))
		case bytecode.Shr:
			f.push(types.Long(x >> shift))
		case bytecode.Ushr:
			f.push(types.Long(int64(uint64(x) >> shift)))
		case bytecode.And:
			f.push(types.Long(x & b.Num))
		case bytecode.Or:
			f.push(types.Long(x | b.Num))
		case bytecode.Xor:
			f.push(types.Long(x ^ b.Num))
		}
	default:
		return typeError("shift/bitwise op on non-integral kind")
	}
	return nil
}

func (f *Frame) convert(from, to types.Kind) error {
	v := f.pop()
	switch from {
	case types.KindInt:
		x := int32(v.Num)
		switch to {
		case types.KindLong:
			f.push(types.Long(int64(x)))
		case types.KindFloat:
			f.push(types.Float32(float32(x)))
		case types.KindDouble:
			f.push(types.Float64(float64(x)))
		case types.KindByte:
			f.push(types.Int(int32(int8(x))))
		case types.KindChar:
			f.push(types.Int(int32(uint16(x))))
		case types.KindShort:
			f.push(types.Int(int32(int16(x))))
		}
	case types.KindLong:
		x := v.Num
		switch to {
		case types.KindInt:
			f.push(types.Int(int32(x)))
		case types.KindFloat:
			f.push(types.Float32(float32(x)))
		case types.KindDouble:
			f.push(types.Float64(float64(x)))
		}
	case types.KindFloat:
		x := v.Flt
		switch to {
		case types.KindInt:
			f.push(types.Int(int32(x)))
		case types.KindLong:
			f.push(types.Long(int64(x)))
		case types.KindDouble:
			f.push(types.Float64(x))
		}
	case types.KindDouble:
		x := v.Flt
		switch to {
		case types.KindInt:
			f.push(types.Int(int32(x)))
		case types.KindLong:
			f.push(types.Long(int64(x)))
		case types.KindFloat:
			f.push(types.Float32(float32(x)))
		}
	default:
		return typeError("convert from non-numeric kind")
	}
	return nil
}

func lcmp(a, b int64) int32 {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

// fcmp implements fcmpg/dcmpg (NaN -> 1) and fcmpl/dcmpl (NaN -> -1).
func fcmp(a, b float64, gWhenNaN bool) int32 {
	if math.IsNaN(a) || math.IsNaN(b) {
		if gWhenNaN {
			return 1
		}
		return -1
	}
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

func condTrue(kind bytecode.Cond, a, b int64) bool {
	switch kind {
	case bytecode.CondEQ:
		return a == b
	case bytecode.CondNE:
		return a != b
	case bytecode.CondLT:
		return a < b
	case bytecode.CondLE:
		return a <= b
	case bytecode.CondGT:
		return a > b
	case bytecode.CondGE:
		return a >= b
	default:
		return false
	}
}
