/*
 * classbox - a partial interpreter for compiled class files
 * Copyright (c) 2026 by the classbox authors.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package globals holds the small set of process-wide options the CLI wires
// up before handing control to the VM: a single struct of options populated
// once at startup and read by value from then on.
package globals

// Options carries the CLI-derived configuration for one interpreter run.
type Options struct {
	// Dump, when true, makes the CLI print the parsed class structure
	// instead of executing it.
	Dump bool

	// Trace turns on per-instruction execution tracing.
	Trace bool

	// RuntimeImagePath, when non-empty, is passed to the runtime-image
	// provider collaborator as the location of the host ecosystem's
	// standard-library blob.
	RuntimeImagePath string
}

// Default returns the zero-value options (no dump, no trace, no runtime
// image configured).
func Default() Options { return Options{} }
