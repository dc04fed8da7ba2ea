/*
 * classbox - a partial interpreter for compiled class files
 * Copyright (c) 2026 by the classbox authors.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package excnames names the error/exception categories surfaced across the
// interpreter's error taxonomy. The core never throws or catches a Java
// exception object (athrow is unimplemented); these are labels used to tag
// Go errors with the JVM exception name a real implementation would have
// raised, so error messages stay recognizable to anyone used to reading JVM
// stack traces.
package excnames

const (
	ClassNotFoundException         = "java/lang/ClassNotFoundException"
	ClassFormatError               = "java/lang/ClassFormatError"
	NoSuchMethodError               = "java/lang/NoSuchMethodError"
	NoSuchFieldError                = "java/lang/NoSuchFieldError"
	NullPointerException            = "java/lang/NullPointerException"
	ArrayIndexOutOfBoundsException   = "java/lang/ArrayIndexOutOfBoundsException"
	ArrayStoreException              = "java/lang/ArrayStoreException"
	ArithmeticException              = "java/lang/ArithmeticException"
	NegativeArraySizeException       = "java/lang/NegativeArraySizeException"
	UnsupportedOperationException    = "java/lang/UnsupportedOperationException"
	VerifyError                      = "java/lang/VerifyError"
	ClassCastException               = "java/lang/ClassCastException"
)
