/*
 * classbox - a partial interpreter for compiled class files
 * Copyright (c) 2026 by the classbox authors.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package bytecode

import "github.com/jacobin-run/classbox/internal/types"

// Op is the normalized instruction family a raw opcode decodes to: the
// ~200-opcode surface is normalised here into a compact set.
type Op int

const (
	Nop Op = iota
	AconstNull
	Const // push a typed constant; Type + IntOperand/FloatOperand
	Bipush
	Sipush
	Ldc  // single-width constant-pool load
	Ldc2 // long/double constant-pool load
	Load
	Store
	ArrayLoad
	ArrayStore
	Pop
	Pop2
	Dup
	DupX1
	DupX2
	Dup2
	Dup2X1
	Dup2X2
	Swap
	Add
	Sub
	Mul
	Div
	Rem
	Neg
	Shl
	Shr
	Ushr
	And
	Or
	Xor
	Inc
	Convert // explicit pairwise conversion; From/To Kind
	Lcmp
	FcmpL
	FcmpG
	DcmpL
	DcmpG
	If
	IfIcmp
	IfAcmp
	IfNull
	IfNonNull
	Goto
	Jsr
	Ret
	TableSwitch
	LookupSwitch
	Return
	GetStatic
	PutStatic
	GetField
	PutField
	Invoke
	New
	NewArray
	ANewArray
	ArrayLength
	Athrow
	CheckCast
	InstanceOf
	MonitorEnter
	MonitorExit
)

// Cond is the comparison predicate carried by If/IfIcmp/IfAcmp instructions.
type Cond int

const (
	CondEQ Cond = iota
	CondNE
	CondLT
	CondLE
	CondGT
	CondGE
)

// InvokeKind distinguishes the five invocation forms the decoder normalizes
// invoke{virtual,special,static,interface,dynamic} into.
type InvokeKind int

const (
	InvokeVirtual InvokeKind = iota
	InvokeSpecial
	InvokeStatic
	InvokeInterface
	InvokeDynamic
)

// Instr is one decoded instruction. Only the fields relevant to Op are
// populated; the decoder never relies on zero-value ambiguity because Op
// always disambiguates which fields matter.
type Instr struct {
	Op   Op
	Addr int // original byte address, used by rewriteBranches to resolve branch targets

	Kind Cond // overloaded for If/IfIcmp/IfAcmp's comparison predicate

	Type types.Kind // operand type for Const/Load/Store/ArrayLoad/ArrayStore/
	// arithmetic/Return/Neg/shift family

	FromType, ToType types.Kind // Convert

	IntOperand   int64   // bipush/sipush widened value; inc's signed delta; newarray's element-type tag
	FloatOperand float64 // float/double Const operand (rare: decoder mostly defers to CP for these)

	LocalIndex int // Load/Store/Inc

	CPIndex int // Ldc/Ldc2/GetStatic/PutStatic/GetField/PutField/Invoke/New/ANewArray/CheckCast/InstanceOf

	Invoke         InvokeKind
	InterfaceCount int // invokeinterface's count operand

	// Branch is the *instruction-index* delta to add to this instruction's
	// own index to reach the target, after the rewriting done by
	// rewriteBranches. It replaces the original byte-offset operand entirely.
	Branch int

	// TableSwitch / LookupSwitch structural fields, decoded only deeply
	// enough to step over the instruction. The interpreter refuses to execute either.
	SwitchLow, SwitchHigh int
	SwitchPairs           [][2]int32 // (match, offset) pairs for lookupswitch
}
