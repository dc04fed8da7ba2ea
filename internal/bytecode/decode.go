/*
 * classbox - a partial interpreter for compiled class files
 * Copyright (c) 2026 by the classbox authors.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package bytecode

import "github.com/jacobin-run/classbox/internal/types"

// Decode converts a raw Code array into a normalized instruction vector,
// rewriting every branch operand from a byte offset into an instruction-index
// offset. It is a two-pass algorithm: the first pass decodes
// every instruction and records addr -> index; the second pass rewrites
// branch targets using that map.
func Decode(code []byte) ([]Instr, error) {
	var instrs []Instr
	addrToIndex := make(map[int]int, len(code))

	i := 0
	for i < len(code) {
		addr := i
		if i >= len(code) {
			return nil, ErrTruncatedCode
		}
		op := code[i]
		i++
		instr := Instr{Addr: addr}
		var rawBranch int64
		branched := false

		need := func(n int) bool { return i+n <= len(code) }
		u1 := func() byte { v := code[i]; i++; return v }
		s1 := func() int8 { return int8(u1()) }
		u2 := func() uint16 { v := uint16(code[i])<<8 | uint16(code[i+1]); i += 2; return v }
		s2 := func() int16 { return int16(u2()) }
		s4 := func() int32 {
			v := int32(code[i])<<24 | int32(code[i+1])<<16 | int32(code[i+2])<<8 | int32(code[i+3])
			i += 4
			return v
		}

		switch op {
		case opNop:
			instr.Op = Nop
		case opAconstNull:
			instr.Op = AconstNull
		case opIconstM1, opIconst0, opIconst1, opIconst2, opIconst3, opIconst4, opIconst5:
			instr.Op = Const
			instr.Type = types.KindInt
			if op == opIconstM1 {
				instr.IntOperand = -1
			} else {
				instr.IntOperand = int64(op) - int64(opIconst0)
			}
		case opLconst0, opLconst1:
			instr.Op = Const
			instr.Type = types.KindLong
			instr.IntOperand = int64(op) - int64(opLconst0)
		case opFconst0, opFconst1, opFconst2:
			instr.Op = Const
			instr.Type = types.KindFloat
			instr.FloatOperand = float64(op) - float64(opFconst0)
		case opDconst0, opDconst1:
			instr.Op = Const
			instr.Type = types.KindDouble
			instr.FloatOperand = float64(op) - float64(opDconst0)
		case opBipush:
			if !need(1) {
				return nil, ErrTruncatedCode
			}
			instr.Op = Bipush
			instr.Type = types.KindInt
			instr.IntOperand = int64(s1())
		case opSipush:
			if !need(2) {
				return nil, ErrTruncatedCode
			}
			instr.Op = Sipush
			instr.Type = types.KindInt
			instr.IntOperand = int64(s2())
		case opLdc:
			if !need(1) {
				return nil, ErrTruncatedCode
			}
			instr.Op = Ldc
			instr.CPIndex = int(u1())
		case opLdcW:
			if !need(2) {
				return nil, ErrTruncatedCode
			}
			instr.Op = Ldc
			instr.CPIndex = int(u2())
		case opLdc2W:
			if !need(2) {
				return nil, ErrTruncatedCode
			}
			instr.Op = Ldc2
			instr.CPIndex = int(u2())
		case opIload, opLload, opFload, opDload, opAload:
			if !need(1) {
				return nil, ErrTruncatedCode
			}
			instr.Op = Load
			instr.Type = loadStoreType(op)
			instr.LocalIndex = int(u1())
		case opIload0, opIload1, opIload2, opIload3:
			instr.Op, instr.Type, instr.LocalIndex = Load, types.KindInt, int(op-opIload0)
		case opLload0, opLload1, opLload2, opLload3:
			instr.Op, instr.Type, instr.LocalIndex = Load, types.KindLong, int(op-opLload0)
		case opFload0, opFload1, opFload2, opFload3:
			instr.Op, instr.Type, instr.LocalIndex = Load, types.KindFloat, int(op-opFload0)
		case opDload0, opDload1, opDload2, opDload3:
			instr.Op, instr.Type, instr.LocalIndex = Load, types.KindDouble, int(op-opDload0)
		case opAload0, opAload1, opAload2, opAload3:
			instr.Op, instr.Type, instr.LocalIndex = Load, types.KindReference, int(op-opAload0)
		case opIaload, opLaload, opFaload, opDaload, opAaload, opBaload, opCaload, opSaload:
			instr.Op = ArrayLoad
			instr.Type = arrayElemType(op)
		case opIstore, opLstore, opFstore, opDstore, opAstore:
			if !need(1) {
				return nil, ErrTruncatedCode
			}
			instr.Op = Store
			instr.Type = loadStoreType(op)
			instr.LocalIndex = int(u1())
		case opIstore0, opIstore1, opIstore2, opIstore3:
			instr.Op, instr.Type, instr.LocalIndex = Store, types.KindInt, int(op-opIstore0)
		case opLstore0, opLstore1, opLstore2, opLstore3:
			instr.Op, instr.Type, instr.LocalIndex = Store, types.KindLong, int(op-opLstore0)
		case opFstore0, opFstore1, opFstore2, opFstore3:
			instr.Op, instr.Type, instr.LocalIndex = Store, types.KindFloat, int(op-opFstore0)
		case opDstore0, opDstore1, opDstore2, opDstore3:
			instr.Op, instr.Type, instr.LocalIndex = Store, types.KindDouble, int(op-opDstore0)
		case opAstore0, opAstore1, opAstore2, opAstore3:
			instr.Op, instr.Type, instr.LocalIndex = Store, types.KindReference, int(op-opAstore0)
		case opIastore, opLastore, opFastore, opDastore, opAastore, opBastore, opCastore, opSastore:
			instr.Op = ArrayStore
			instr.Type = arrayStoreElemType(op)
		case opPop:
			instr.Op = Pop
		case opPop2:
			instr.Op = Pop2
		case opDup:
			instr.Op = Dup
		case opDupX1:
			instr.Op = DupX1
		case opDupX2:
			instr.Op = DupX2
		case opDup2:
			instr.Op = Dup2
		case opDup2X1:
			instr.Op = Dup2X1
		case opDup2X2:
			instr.Op = Dup2X2
		case opSwap:
			instr.Op = Swap
		case opIadd, opLadd, opFadd, opDadd:
			instr.Op, instr.Type = Add, arithType(op, opIadd)
		case opIsub, opLsub, opFsub, opDsub:
			instr.Op, instr.Type = Sub, arithType(op, opIsub)
		case opImul, opLmul, opFmul, opDmul:
			instr.Op, instr.Type = Mul, arithType(op, opImul)
		case opIdiv, opLdiv, opFdiv, opDdiv:
			instr.Op, instr.Type = Div, arithType(op, opIdiv)
		case opIrem, opLrem, opFrem, opDrem:
			instr.Op, instr.Type = Rem, arithType(op, opIrem)
		case opIneg, opLneg, opFneg, opDneg:
			instr.Op, instr.Type = Neg, arithType(op, opIneg)
		case opIshl, opLshl:
			instr.Op, instr.Type = Shl, intOrLong(op, opIshl)
		case opIshr, opLshr:
			instr.Op, instr.Type = Shr, intOrLong(op, opIshr)
		case opIushr, opLushr:
			instr.Op, instr.Type = Ushr, intOrLong(op, opIushr)
		case opIand, opLand:
			instr.Op, instr.Type = And, intOrLong(op, opIand)
		case opIor, opLor:
			instr.Op, instr.Type = Or, intOrLong(op, opIor)
		case opIxor, opLxor:
			instr.Op, instr.Type = Xor, intOrLong(op, opIxor)
		case opIinc:
			if !need(2) {
				return nil, ErrTruncatedCode
			}
			instr.Op = Inc
			instr.LocalIndex = int(u1())
			instr.IntOperand = int64(s1())
		case opI2l:
			instr.Op, instr.FromType, instr.ToType = Convert, types.KindInt, types.KindLong
		case opI2f:
			instr.Op, instr.FromType, instr.ToType = Convert, types.KindInt, types.KindFloat
		case opI2d:
			instr.Op, instr.FromType, instr.ToType = Convert, types.KindInt, types.KindDouble
		case opL2i:
			instr.Op, instr.FromType, instr.ToType = Convert, types.KindLong, types.KindInt
		case opL2f:
			instr.Op, instr.FromType, instr.ToType = Convert, types.KindLong, types.KindFloat
		case opL2d:
			instr.Op, instr.FromType, instr.ToType = Convert, types.KindLong, types.KindDouble
		case opF2i:
			instr.Op, instr.FromType, instr.ToType = Convert, types.KindFloat, types.KindInt
		case opF2l:
			instr.Op, instr.FromType, instr.ToType = Convert, types.KindFloat, types.KindLong
		case opF2d:
			instr.Op, instr.FromType, instr.ToType = Convert, types.KindFloat, types.KindDouble
		case opD2i:
			instr.Op, instr.FromType, instr.ToType = Convert, types.KindDouble, types.KindInt
		case opD2l:
			instr.Op, instr.FromType, instr.ToType = Convert, types.KindDouble, types.KindLong
		case opD2f:
			instr.Op, instr.FromType, instr.ToType = Convert, types.KindDouble, types.KindFloat
		case opI2b:
			instr.Op, instr.FromType, instr.ToType = Convert, types.KindInt, types.KindByte
		case opI2c:
			instr.Op, instr.FromType, instr.ToType = Convert, types.KindInt, types.KindChar
		case opI2s:
			instr.Op, instr.FromType, instr.ToType = Convert, types.KindInt, types.KindShort
		case opLcmp:
			instr.Op = Lcmp
		case opFcmpl:
			instr.Op = FcmpL
		case opFcmpg:
			instr.Op = FcmpG
		case opDcmpl:
			instr.Op = DcmpL
		case opDcmpg:
			instr.Op = DcmpG
		case opIfeq, opIfne, opIflt, opIfge, opIfgt, opIfle:
			if !need(2) {
				return nil, ErrTruncatedCode
			}
			instr.Op = If
			instr.Kind = ifCond(op)
			rawBranch, branched = int64(s2()), true
		case opIfIcmpeq, opIfIcmpne, opIfIcmplt, opIfIcmpge, opIfIcmpgt, opIfIcmple:
			if !need(2) {
				return nil, ErrTruncatedCode
			}
			instr.Op = IfIcmp
			instr.Kind = ifIcmpCond(op)
			rawBranch, branched = int64(s2()), true
		case opIfAcmpeq, opIfAcmpne:
			if !need(2) {
				return nil, ErrTruncatedCode
			}
			instr.Op = IfAcmp
			if op == opIfAcmpeq {
				instr.Kind = CondEQ
			} else {
				instr.Kind = CondNE
			}
			rawBranch, branched = int64(s2()), true
		case opIfnull:
			if !need(2) {
				return nil, ErrTruncatedCode
			}
			instr.Op = IfNull
			rawBranch, branched = int64(s2()), true
		case opIfnonnull:
			if !need(2) {
				return nil, ErrTruncatedCode
			}
			instr.Op = IfNonNull
			rawBranch, branched = int64(s2()), true
		case opGoto:
			if !need(2) {
				return nil, ErrTruncatedCode
			}
			instr.Op = Goto
			rawBranch, branched = int64(s2()), true
		case opGotoW:
			if !need(4) {
				return nil, ErrTruncatedCode
			}
			instr.Op = Goto
			rawBranch, branched = int64(s4()), true
		case opJsr:
			if !need(2) {
				return nil, ErrTruncatedCode
			}
			instr.Op = Jsr
			rawBranch, branched = int64(s2()), true
		case opJsrW:
			if !need(4) {
				return nil, ErrTruncatedCode
			}
			instr.Op = Jsr
			rawBranch, branched = int64(s4()), true
		case opRet:
			if !need(1) {
				return nil, ErrTruncatedCode
			}
			instr.Op = Ret
			instr.LocalIndex = int(u1())
		case opTableswitch:
			n, err := decodeTableSwitch(code, &i, addr)
			if err != nil {
				return nil, err
			}
			instr.Op = TableSwitch
			instr.SwitchLow = n.low
			instr.SwitchHigh = n.high
			rawBranch, branched = int64(n.def), true
		case opLookupswitch:
			n, err := decodeLookupSwitch(code, &i, addr)
			if err != nil {
				return nil, err
			}
			instr.Op = LookupSwitch
			instr.SwitchPairs = n.pairs
			rawBranch, branched = int64(n.def), true
		case opIreturn:
			instr.Op, instr.Type = Return, types.KindInt
		case opLreturn:
			instr.Op, instr.Type = Return, types.KindLong
		case opFreturn:
			instr.Op, instr.Type = Return, types.KindFloat
		case opDreturn:
			instr.Op, instr.Type = Return, types.KindDouble
		case opAreturn:
			instr.Op, instr.Type = Return, types.KindReference
		case opReturn:
			instr.Op, instr.Type = Return, types.KindUnset
		case opGetstatic:
			if !need(2) {
				return nil, ErrTruncatedCode
			}
			instr.Op, instr.CPIndex = GetStatic, int(u2())
		case opPutstatic:
			if !need(2) {
				return nil, ErrTruncatedCode
			}
			instr.Op, instr.CPIndex = PutStatic, int(u2())
		case opGetfield:
			if !need(2) {
				return nil, ErrTruncatedCode
			}
			instr.Op, instr.CPIndex = GetField, int(u2())
		case opPutfield:
			if !need(2) {
				return nil, ErrTruncatedCode
			}
			instr.Op, instr.CPIndex = PutField, int(u2())
		case opInvokevirtual:
			if !need(2) {
				return nil, ErrTruncatedCode
			}
			instr.Op, instr.Invoke, instr.CPIndex = Invoke, InvokeVirtual, int(u2())
		case opInvokespecial:
			if !need(2) {
				return nil, ErrTruncatedCode
			}
			instr.Op, instr.Invoke, instr.CPIndex = Invoke, InvokeSpecial, int(u2())
		case opInvokestatic:
			if !need(2) {
				return nil, ErrTruncatedCode
			}
			instr.Op, instr.Invoke, instr.CPIndex = Invoke, InvokeStatic, int(u2())
		case opInvokeinterface:
			if !need(4) {
				return nil, ErrTruncatedCode
			}
			instr.Op, instr.Invoke = Invoke, InvokeInterface
			instr.CPIndex = int(u2())
			instr.InterfaceCount = int(u1())
			if u1() != 0 {
				return nil, ErrInvalidReservedByte
			}
		case opInvokedynamic:
			if !need(4) {
				return nil, ErrTruncatedCode
			}
			instr.Op, instr.Invoke = Invoke, InvokeDynamic
			instr.CPIndex = int(u2())
			if u1() != 0 || u1() != 0 {
				return nil, ErrInvalidReservedByte
			}
		case opNew:
			if !need(2) {
				return nil, ErrTruncatedCode
			}
			instr.Op, instr.CPIndex = New, int(u2())
		case opNewarray:
			if !need(1) {
				return nil, ErrTruncatedCode
			}
			atype := u1()
			if atype < ATBoolean || atype > ATLong {
				return nil, &UnknownArrayTypeError{Tag: atype}
			}
			instr.Op, instr.IntOperand = NewArray, int64(atype)
		case opAnewarray:
			if !need(2) {
				return nil, ErrTruncatedCode
			}
			instr.Op, instr.CPIndex = ANewArray, int(u2())
		case opArraylength:
			instr.Op = ArrayLength
		case opAthrow:
			instr.Op = Athrow
		case opCheckcast:
			if !need(2) {
				return nil, ErrTruncatedCode
			}
			instr.Op, instr.CPIndex = CheckCast, int(u2())
		case opInstanceof:
			if !need(2) {
				return nil, ErrTruncatedCode
			}
			instr.Op, instr.CPIndex = InstanceOf, int(u2())
		case opMonitorenter:
			instr.Op = MonitorEnter
		case opMonitorexit:
			instr.Op = MonitorExit
		default:
			return nil, &UnknownOpcodeError{Opcode: op, Addr: addr}
		}

		if branched {
			instr.Branch = int(rawBranch) // temporarily holds the raw byte offset; rewritten below
		}
		addrToIndex[addr] = len(instrs)
		instrs = append(instrs, instr)
	}

	if err := rewriteBranches(instrs, addrToIndex); err != nil {
		return nil, err
	}
	return instrs, nil
}

// rewriteBranches implements the branch-rewriting rule:
//
//	new_branch = index_of(address_of(self) + original_branch) - index_of(self)
func rewriteBranches(instrs []Instr, addrToIndex map[int]int) error {
	for idx := range instrs {
		in := &instrs[idx]
		switch in.Op {
		case If, IfIcmp, IfAcmp, IfNull, IfNonNull, Goto, Jsr, TableSwitch, LookupSwitch:
			targetAddr := in.Addr + in.Branch
			targetIdx, ok := addrToIndex[targetAddr]
			if !ok {
				return ErrProgramCounterOverflow
			}
			in.Branch = targetIdx - idx
		}
	}
	return nil
}

func loadStoreType(op byte) types.Kind {
	switch op {
	case opIload, opIstore:
		return types.KindInt
	case opLload, opLstore:
		return types.KindLong
	case opFload, opFstore:
		return types.KindFloat
	case opDload, opDstore:
		return types.KindDouble
	default:
		return types.KindReference
	}
}

func arrayElemType(op byte) types.Kind {
	switch op {
	case opIaload:
		return types.KindInt
	case opLaload:
		return types.KindLong
	case opFaload:
		return types.KindFloat
	case opDaload:
		return types.KindDouble
	case opAaload:
		return types.KindReference
	case opBaload:
		return types.KindByte
	case opCaload:
		return types.KindChar
	default: // opSaload
		return types.KindShort
	}
}

func arrayStoreElemType(op byte) types.Kind {
	switch op {
	case opIastore:
		return types.KindInt
	case opLastore:
		return types.KindLong
	case opFastore:
		return types.KindFloat
	case opDastore:
		return types.KindDouble
	case opAastore:
		return types.KindReference
	case opBastore:
		return types.KindByte
	case opCastore:
		return types.KindChar
	default: // opSastore
		return types.KindShort
	}
}

func arithType(op, intOp byte) types.Kind {
	switch op - intOp {
	case 0:
		return types.KindInt
	case 1:
		return types.KindLong
	case 2:
		return types.KindFloat
	default:
		return types.KindDouble
	}
}

func intOrLong(op, intOp byte) types.Kind {
	if op == intOp {
		return types.KindInt
	}
	return types.KindLong
}

// ifCond and ifIcmpCond map raw opcodes to Cond explicitly rather than by
// subtracting a base opcode: the if{cond}/if_icmp{cond} opcode families are
// ordered eq,ne,lt,ge,gt,le on the wire, which does not match Cond's
// eq,ne,lt,le,gt,ge declaration order.
func ifCond(op byte) Cond {
	switch op {
	case opIfeq:
		return CondEQ
	case opIfne:
		return CondNE
	case opIflt:
		return CondLT
	case opIfge:
		return CondGE
	case opIfgt:
		return CondGT
	default: // opIfle
		return CondLE
	}
}

func ifIcmpCond(op byte) Cond {
	switch op {
	case opIfIcmpeq:
		return CondEQ
	case opIfIcmpne:
		return CondNE
	case opIfIcmplt:
		return CondLT
	case opIfIcmpge:
		return CondGE
	case opIfIcmpgt:
		return CondGT
	default: // opIfIcmple
		return CondLE
	}
}

type tableSwitchInfo struct {
	def, low, high int32
}

func decodeTableSwitch(code []byte, i *int, instrAddr int) (tableSwitchInfo, error) {
	// padding aligns the first operand byte to a 4-byte boundary measured
	// from the start of the method's code array.
	for (*i)%4 != 0 {
		if *i >= len(code) {
			return tableSwitchInfo{}, ErrTruncatedCode
		}
		*i++
	}
	if *i+12 > len(code) {
		return tableSwitchInfo{}, ErrTruncatedCode
	}
	read4 := func() int32 {
		v := int32(code[*i])<<24 | int32(code[*i+1])<<16 | int32(code[*i+2])<<8 | int32(code[*i+3])
		*i += 4
		return v
	}
	def := read4()
	low := read4()
	high := read4()
	if high < low {
		return tableSwitchInfo{}, ErrTruncatedCode
	}
	n := int(high-low) + 1
	if *i+4*n > len(code) {
		return tableSwitchInfo{}, ErrTruncatedCode
	}
	*i += 4 * n // skip the jump-offset table itself; interpreter never executes it
	return tableSwitchInfo{def: def, low: low, high: high}, nil
}

type lookupSwitchInfo struct {
	def   int32
	pairs [][2]int32
}

func decodeLookupSwitch(code []byte, i *int, instrAddr int) (lookupSwitchInfo, error) {
	for (*i)%4 != 0 {
		if *i >= len(code) {
			return lookupSwitchInfo{}, ErrTruncatedCode
		}
		*i++
	}
	if *i+8 > len(code) {
		return lookupSwitchInfo{}, ErrTruncatedCode
	}
	read4 := func() int32 {
		v := int32(code[*i])<<24 | int32(code[*i+1])<<16 | int32(code[*i+2])<<8 | int32(code[*i+3])
		*i += 4
		return v
	}
	def := read4()
	npairs := read4()
	if npairs < 0 || *i+8*int(npairs) > len(code) {
		return lookupSwitchInfo{}, ErrTruncatedCode
	}
	pairs := make([][2]int32, npairs)
	for p := 0; p < int(npairs); p++ {
		match := read4()
		offset := read4()
		pairs[p] = [2]int32{match, offset}
	}
	return lookupSwitchInfo{def: def, pairs: pairs}, nil
}
