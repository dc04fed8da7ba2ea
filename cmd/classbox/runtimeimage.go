/*
 * classbox - a partial interpreter for compiled class files
 * Copyright (c) 2026 by the classbox authors.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package main

import (
	"os"
	"path/filepath"
)

// dirRuntimeImage serves class bytes out of a directory tree, the simplest
// possible backing for the RuntimeImageProvider collaborator. A
// production runtime-image extractor (e.g. unpacking the host ecosystem's
// module image) is explicitly out of the core's scope; this is just enough
// to let --runtime-image point at a directory of .class files mirroring
// internal class names.
type dirRuntimeImage struct {
	root string
}

func (d dirRuntimeImage) ReadClass(internalName string) ([]byte, error) {
	return os.ReadFile(filepath.Join(d.root, internalName+".class"))
}
