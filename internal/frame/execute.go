/*
 * classbox - a partial interpreter for compiled class files
 * Copyright (c) 2026 by the classbox authors.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package frame

import (
	"fmt"

	"github.com/jacobin-run/classbox/internal/bytecode"
	"github.com/jacobin-run/classbox/internal/trace"
	"github.com/jacobin-run/classbox/internal/types"
)

// Execute runs a frame's decoded instruction stream to completion: a tight
// dispatch loop over the instruction vector, advancing the program counter
// by a next_instruction_offset that defaults to +1 and is overwritten by
// taken branches. Returns the method's return value (zero value,
// hasReturn=false, for void methods).
func Execute(f *Frame) (types.Value, bool, error) {
	if f.Method.IsSynchronized() {
		return types.Value{}, false, unsupportedSynchronized()
	}

	instrs := f.Method.Instructions
	pc := 0
	for pc >= 0 && pc < len(instrs) {
		in := instrs[pc]
		next := 1
		trace.Inst(fmt.Sprintf("%s.%s pc=%d op=%d", f.Class.Name, f.Method.Name, pc, in.Op))

		switch in.Op {
		case bytecode.Nop:
			// no-op

		case bytecode.AconstNull:
			f.push(types.Null())

		case bytecode.Const:
			switch in.Type {
			case types.KindFloat:
				f.push(types.Float32(float32(in.FloatOperand)))
			case types.KindDouble:
				f.push(types.Float64(in.FloatOperand))
			default:
				f.push(types.Value{Kind: in.Type, Num: in.IntOperand})
			}

		case bytecode.Bipush, bytecode.Sipush:
			f.push(types.Int(int32(in.IntOperand)))

		case bytecode.Ldc:
			v, err := f.resolveLdc(in.CPIndex)
			if err != nil {
				return types.Value{}, false, err
			}
			f.push(v)

		case bytecode.Ldc2:
			v, err := f.resolveLdc2(in.CPIndex)
			if err != nil {
				return types.Value{}, false, err
			}
			f.push(v)

		case bytecode.Load:
			f.push(f.loadLocal(in.LocalIndex, in.Type))

		case bytecode.Store:
			f.storeLocal(in.LocalIndex, f.pop())

		case bytecode.ArrayLoad:
			if err := f.arrayLoad(in.Type); err != nil {
				return types.Value{}, false, err
			}

		case bytecode.ArrayStore:
			if err := f.arrayStore(in.Type); err != nil {
				return types.Value{}, false, err
			}

		case bytecode.Pop:
			f.pop()
		case bytecode.Pop2:
			f.pop()
			f.pop()
		case bytecode.Dup:
			f.push(f.peek())
		case bytecode.DupX1:
			v1, v2 := f.pop(), f.pop()
			f.push(v1)
			f.push(v2)
			f.push(v1)
		case bytecode.DupX2:
			v1, v2, v3 := f.pop(), f.pop(), f.pop()
			f.push(v1)
			f.push(v3)
			f.push(v2)
			f.push(v1)
		case bytecode.Dup2:
			v1, v2 := f.pop(), f.pop()
			f.push(v2)
			f.push(v1)
			f.push(v2)
			f.push(v1)
		case bytecode.Dup2X1:
			v1, v2, v3 := f.pop(), f.pop(), f.pop()
			f.push(v2)
			f.push(v1)
			f.push(v3)
			f.push(v2)
			f.push(v1)
		case bytecode.Dup2X2:
			v1, v2, v3, v4 := f.pop(), f.pop(), f.pop(), f.pop()
			f.push(v2)
			f.push(v1)
			f.push(v4)
			f.push(v3)
			f.push(v2)
			f.push(v1)
		case bytecode.Swap:
			v1, v2 := f.pop(), f.pop()
			f.push(v1)
			f.push(v2)

		case bytecode.Add, bytecode.Sub, bytecode.Mul, bytecode.Div, bytecode.Rem:
			if err := f.arith(in.Op, in.Type); err != nil {
				return types.Value{}, false, err
			}
		case bytecode.Neg:
			if err := f.neg(in.Type); err != nil {
				return types.Value{}, false, err
			}
		case bytecode.Shl, bytecode.Shr, bytecode.Ushr, bytecode.And, bytecode.Or, bytecode.Xor:
			if err := f.bitop(in.Op, in.Type); err != nil {
				return types.Value{}, false, err
			}
		case bytecode.Inc:
			cur := f.loadLocal(in.LocalIndex, types.KindInt)
			f.storeLocal(in.LocalIndex, types.Int(int32(cur.Num)+int32(in.IntOperand)))
		case bytecode.Convert:
			if err := f.convert(in.FromType, in.ToType); err != nil {
				return types.Value{}, false, err
			}

		case bytecode.Lcmp:
			b, a := f.pop(), f.pop()
			f.push(types.Int(lcmp(a.Num, b.Num)))
		case bytecode.FcmpL:
			b, a := f.pop(), f.pop()
			f.push(types.Int(fcmp(a.Flt, b.Flt, false)))
		case bytecode.FcmpG:
			b, a := f.pop(), f.pop()
			f.push(types.Int(fcmp(a.Flt, b.Flt, true)))
		case bytecode.DcmpL:
			b, a := f.pop(), f.pop()
			f.push(types.Int(fcmp(a.Flt, b.Flt, false)))
		case bytecode.DcmpG:
			b, a := f.pop(), f.pop()
			f.push(types.Int(fcmp(a.Flt, b.Flt, true)))

		case bytecode.If:
			v := f.pop()
			if condTrue(in.Kind, v.Num, 0) {
				next = in.Branch
			}
		case bytecode.IfIcmp:
			b, a := f.pop(), f.pop()
			if condTrue(in.Kind, a.Num, b.Num) {
				next = in.Branch
			}
		case bytecode.IfAcmp:
			b, a := f.pop(), f.pop()
			eq := a.Ref == b.Ref
			if (in.Kind == bytecode.CondEQ) == eq {
				next = in.Branch
			}
		case bytecode.IfNull:
			if f.pop().IsNull() {
				next = in.Branch
			}
		case bytecode.IfNonNull:
			if !f.pop().IsNull() {
				next = in.Branch
			}
		case bytecode.Goto:
			next = in.Branch

		case bytecode.Jsr, bytecode.Ret:
			return types.Value{}, false, unimplemented("jsr/ret")
		case bytecode.TableSwitch:
			return types.Value{}, false, unimplemented("tableswitch")
		case bytecode.LookupSwitch:
			return types.Value{}, false, unimplemented("lookupswitch")

		case bytecode.Return:
			if in.Type == types.KindUnset {
				return types.Value{}, false, nil
			}
			return f.pop(), true, nil

		case bytecode.GetStatic:
			v, err := f.getStatic(in.CPIndex)
			if err != nil {
				return types.Value{}, false, err
			}
			f.push(v)
		case bytecode.PutStatic:
			if err := f.putStatic(in.CPIndex, f.pop()); err != nil {
				return types.Value{}, false, err
			}
		case bytecode.GetField:
			if err := f.getField(in.CPIndex); err != nil {
				return types.Value{}, false, err
			}
		case bytecode.PutField:
			if err := f.putField(in.CPIndex); err != nil {
				return types.Value{}, false, err
			}

		case bytecode.Invoke:
			if err := f.invoke(in); err != nil {
				return types.Value{}, false, err
			}

		case bytecode.New:
			if err := f.newObject(in.CPIndex); err != nil {
				return types.Value{}, false, err
			}
		case bytecode.NewArray:
			if err := f.newArray(in); err != nil {
				return types.Value{}, false, err
			}
		case bytecode.ANewArray:
			if err := f.aNewArray(in); err != nil {
				return types.Value{}, false, err
			}
		case bytecode.ArrayLength:
			if err := f.arrayLength(); err != nil {
				return types.Value{}, false, err
			}

		case bytecode.Athrow:
			return types.Value{}, false, unimplemented("athrow")

		case bytecode.CheckCast:
			if err := f.checkCast(in.CPIndex); err != nil {
				return types.Value{}, false, err
			}
		case bytecode.InstanceOf:
			if err := f.instanceOf(in.CPIndex); err != nil {
				return types.Value{}, false, err
			}

		case bytecode.MonitorEnter, bytecode.MonitorExit:
			return types.Value{}, false, unimplemented("monitorenter/exit")

		default:
			return types.Value{}, false, typeError("unrecognised normalized opcode")
		}

		pc += next
	}
	return types.Value{}, false, nil
}
