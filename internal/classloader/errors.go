/*
 * classbox - a partial interpreter for compiled class files
 * Copyright (c) 2026 by the classbox authors.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import "github.com/pkg/errors"

// ErrMissingSuperClass is returned when the loader callback produces no
// super class, and its message prefixes the error when the callback fails.
// A class declaring super_class == 0 is linked as a root, not rejected.
var ErrMissingSuperClass = errors.New("MissingSuperClass: class has no resolvable super class")

// BadConstantPoolEntryError names the offending index and what the linker
// expected to find there.
type BadConstantPoolEntryError struct {
	Index    uint16
	Expected string
}

func (e *BadConstantPoolEntryError) Error() string {
	return errors.Errorf("BadConstantPoolEntry(index=%d): expected %s", e.Index, e.Expected).Error()
}

// InvalidDescriptorError wraps a descriptor-parse failure with the
// offending string.
type InvalidDescriptorError struct {
	Descriptor string
	Cause      error
}

func (e *InvalidDescriptorError) Error() string {
	return errors.Wrapf(e.Cause, "InvalidDescriptor(%q)", e.Descriptor).Error()
}

func (e *InvalidDescriptorError) Unwrap() error { return e.Cause }
