/*
 * classbox - a partial interpreter for compiled class files
 * Copyright (c) 2026 by the classbox authors.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import "github.com/pkg/errors"

// ErrBadMagic is returned when the header's magic number isn't 0xCAFEBABE.
var ErrBadMagic = errors.New("BadMagic: not a class file")

// ErrTruncated is returned whenever the byte stream runs out before a
// structure it's decoding is complete.
var ErrTruncated = errors.New("TruncatedClassFile: unexpected end of input")

// UnknownConstantTagError names the offending tag byte.
type UnknownConstantTagError struct {
	Tag byte
}

func (e *UnknownConstantTagError) Error() string {
	return errors.Errorf("UnknownConstantTag(%d)", e.Tag).Error()
}
