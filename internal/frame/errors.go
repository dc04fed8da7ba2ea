/*
 * classbox - a partial interpreter for compiled class files
 * Copyright (c) 2026 by the classbox authors.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package frame

import (
	"github.com/pkg/errors"

	"github.com/jacobin-run/classbox/internal/excnames"
)

// ResolveError covers resolve errors: method/field/class
// lookups that walked the full super chain without a hit.
type ResolveError struct {
	Exception string // one of the excnames constants
	Detail    string
}

func (e *ResolveError) Error() string {
	return errors.Errorf("%s: %s", e.Exception, e.Detail).Error()
}

func noSuchMethod(class, name, descriptor string) error {
	return &ResolveError{Exception: excnames.NoSuchMethodError, Detail: class + "." + name + descriptor}
}

func noSuchField(class, name, descriptor string) error {
	return &ResolveError{Exception: excnames.NoSuchFieldError, Detail: class + "." + name + " " + descriptor}
}

// TypeError covers type errors: operand/local kind
// mismatches the interpreter refuses to paper over.
type TypeError struct {
	Detail string
}

func (e *TypeError) Error() string { return errors.Errorf("TypeError: %s", e.Detail).Error() }

func typeError(detail string) error { return &TypeError{Detail: detail} }

// UnimplementedError covers deliberately unsupported opcodes and features.
// A hard failure, never a silent no-op.
type UnimplementedError struct {
	Feature string
}

func (e *UnimplementedError) Error() string {
	return errors.Errorf("Unimplemented(%s)", e.Feature).Error()
}

func unimplemented(feature string) error { return &UnimplementedError{Feature: feature} }

// RuntimeException wraps the handful of JVM exception classes this
// interpreter recognizes as hard failures rather than catchable throws
// (athrow/exception unwinding is itself unimplemented).
type RuntimeException struct {
	Exception string
	Detail    string
}

func (e *RuntimeException) Error() string {
	return errors.Errorf("%s: %s", e.Exception, e.Detail).Error()
}

func nullPointer(detail string) error {
	return &RuntimeException{Exception: excnames.NullPointerException, Detail: detail}
}

func arrayIndexOutOfBounds(index, length int) error {
	return &RuntimeException{
		Exception: excnames.ArrayIndexOutOfBoundsException,
		Detail:    errors.Errorf("index %d out of bounds for length %d", index, length).Error(),
	}
}

func arrayStoreMismatch(want, got string) error {
	return &RuntimeException{
		Exception: excnames.ArrayStoreException,
		Detail:    errors.Errorf("expected %s, got %s", want, got).Error(),
	}
}

func negativeArraySize(n int) error {
	return &RuntimeException{Exception: excnames.NegativeArraySizeException, Detail: errors.Errorf("%d", n).Error()}
}

func arithmeticException(detail string) error {
	return &RuntimeException{Exception: excnames.ArithmeticException, Detail: detail}
}

func classCastException(from, to string) error {
	return &RuntimeException{
		Exception: excnames.ClassCastException,
		Detail:    errors.Errorf("%s cannot be cast to %s", from, to).Error(),
	}
}

func unsupportedSynchronized() error {
	return &RuntimeException{Exception: excnames.UnsupportedOperationException, Detail: "synchronized"}
}
