/*
 * classbox - a partial interpreter for compiled class files
 * Copyright (c) 2026 by the classbox authors.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package bytecode

import "github.com/pkg/errors"

// UnknownOpcodeError names the offending raw opcode byte.
type UnknownOpcodeError struct {
	Opcode byte
	Addr   int
}

func (e *UnknownOpcodeError) Error() string {
	return errors.Errorf("UnknownOpcode(0x%02X) at byte address %d", e.Opcode, e.Addr).Error()
}

// ErrTruncatedCode is returned when the code array ends mid-instruction.
var ErrTruncatedCode = errors.New("TruncatedCode: method code ended mid-instruction")

// ErrInvalidReservedByte is returned when invokeinterface/invokedynamic's
// mandated-zero reserved byte isn't zero.
var ErrInvalidReservedByte = errors.New("InvalidReservedByte: reserved operand byte must be 0")

// UnknownArrayTypeError names the offending newarray element-type tag.
type UnknownArrayTypeError struct {
	Tag byte
}

func (e *UnknownArrayTypeError) Error() string {
	return errors.Errorf("UnknownArrayType(%d)", e.Tag).Error()
}

// ErrProgramCounterOverflow is returned when branch rewriting produces a
// target outside [0, len(instructions)).
var ErrProgramCounterOverflow = errors.New("ProgramCounterOverflow: branch target outside instruction vector")
