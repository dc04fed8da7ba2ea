/*
 * classbox - a partial interpreter for compiled class files
 * Copyright (c) 2026 by the classbox authors.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package main

import (
	"fmt"
	"io"

	"github.com/jacobin-run/classbox/internal/classfile"
)

// dumpClass prints the parsed class structure instead of executing it, in
// place of a golden-file snapshot harness: a stable, readable rendering of
// what the binary reader decoded.
func dumpClass(w io.Writer, cf *classfile.ClassFile) {
	fmt.Fprintf(w, "class %s\n", cf.ThisClassName)
	fmt.Fprintf(w, "  version: %d.%d\n", cf.MajorVersion, cf.MinorVersion)
	fmt.Fprintf(w, "  super: %s\n", orNone(cf.SuperClassName))
	fmt.Fprintf(w, "  access_flags: 0x%04X\n", cf.AccessFlags)
	fmt.Fprintf(w, "  constant_pool: %d entries\n", len(cf.ConstantPool))

	fmt.Fprintf(w, "  fields:\n")
	for _, f := range cf.Fields {
		fmt.Fprintf(w, "    %s %s (flags=0x%04X)\n", f.Name, f.Desc, f.AccessFlags)
	}

	fmt.Fprintf(w, "  methods:\n")
	for _, m := range cf.Methods {
		fmt.Fprintf(w, "    %s%s (flags=0x%04X)\n", m.Name, m.Desc, m.AccessFlags)
		if m.Code != nil {
			fmt.Fprintf(w, "      max_stack=%d max_locals=%d code_bytes=%d\n",
				m.Code.MaxStack, m.Code.MaxLocals, len(m.Code.Code))
		}
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
