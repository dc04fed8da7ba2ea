/*
 * classbox - a partial interpreter for compiled class files
 * Copyright (c) 2026 by the classbox authors.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package bytecode_test

import (
	"testing"

	"github.com/jacobin-run/classbox/internal/bytecode"
	"github.com/jacobin-run/classbox/internal/types"
)

func TestDecodeSimpleSequence(t *testing.T) {
	// iconst_0; istore_1; iload_1; ireturn
	code := []byte{0x03, 0x3C, 0x1B, 0xAC}
	instrs, err := bytecode.Decode(code)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(instrs) != 4 {
		t.Fatalf("len(instrs) = %d, want 4", len(instrs))
	}
	if instrs[0].Op != bytecode.Const || instrs[0].Type != types.KindInt || instrs[0].IntOperand != 0 {
		t.Errorf("instrs[0] = %+v, want Const int 0", instrs[0])
	}
	if instrs[1].Op != bytecode.Store || instrs[1].LocalIndex != 1 {
		t.Errorf("instrs[1] = %+v, want Store local 1", instrs[1])
	}
	if instrs[2].Op != bytecode.Load || instrs[2].LocalIndex != 1 {
		t.Errorf("instrs[2] = %+v, want Load local 1", instrs[2])
	}
	if instrs[3].Op != bytecode.Return || instrs[3].Type != types.KindInt {
		t.Errorf("instrs[3] = %+v, want Return int", instrs[3])
	}
}

func TestDecodeBranchRewriting(t *testing.T) {
	// nop; goto -1 (back to the nop)
	code := []byte{0x00, 0xA7, 0xFF, 0xFF}
	instrs, err := bytecode.Decode(code)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(instrs) != 2 {
		t.Fatalf("len(instrs) = %d, want 2", len(instrs))
	}
	if instrs[1].Branch != -1 {
		t.Errorf("rewritten branch = %d, want -1 (instruction-index delta back to index 0)", instrs[1].Branch)
	}
}

func TestDecodeProgramCounterOverflow(t *testing.T) {
	// goto +100, far past the end of a 3-byte method
	code := []byte{0xA7, 0x00, 0x64}
	_, err := bytecode.Decode(code)
	if err != bytecode.ErrProgramCounterOverflow {
		t.Fatalf("err = %v, want ErrProgramCounterOverflow", err)
	}
}

func TestDecodeUnknownOpcode(t *testing.T) {
	// 0xCA (breakpoint, reserved for debuggers) is not a recognised opcode.
	_, err := bytecode.Decode([]byte{0xCA})
	var unk *bytecode.UnknownOpcodeError
	if err == nil {
		t.Fatal("expected an UnknownOpcodeError")
	}
	if uErr, ok := err.(*bytecode.UnknownOpcodeError); ok {
		unk = uErr
	} else {
		t.Fatalf("err = %v (%T), want *UnknownOpcodeError", err, err)
	}
	if unk.Opcode != 0xCA {
		t.Errorf("Opcode = 0x%X, want 0xCA", unk.Opcode)
	}
}

func TestDecodeInvokeInterfaceReservedByte(t *testing.T) {
	// invokeinterface with a non-zero reserved byte must fail.
	code := []byte{0xB9, 0x00, 0x01, 0x01, 0x01}
	_, err := bytecode.Decode(code)
	if err != bytecode.ErrInvalidReservedByte {
		t.Fatalf("err = %v, want ErrInvalidReservedByte", err)
	}
}
