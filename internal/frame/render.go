/*
 * classbox - a partial interpreter for compiled class files
 * Copyright (c) 2026 by the classbox authors.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package frame

import (
	"strings"

	"github.com/jacobin-run/classbox/internal/types"
)

// Render implements the rendering contract for the print intrinsic:
// numeric/string values print raw, arrays print as "[e0, e1, ...]", objects
// print as "ClassName {field: value, ...}" with inherited fields first, and
// null prints as "null".
func Render(h *Heap, v types.Value) string {
	if v.Kind != types.KindReference || v.IsNull() {
		return v.Render()
	}
	obj, ok := h.Get(v.Ref)
	if !ok {
		return "null"
	}
	switch obj.Shape {
	case ShapeArray:
		parts := make([]string, len(obj.Cells))
		for i, c := range obj.Cells {
			parts[i] = Render(h, c)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ShapeObject:
		var sb strings.Builder
		sb.WriteString(obj.Class.Name)
		sb.WriteString(" {")
		for i, f := range obj.Class.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(f.Name)
			sb.WriteString(": ")
			sb.WriteString(Render(h, obj.Cells[i]))
		}
		sb.WriteString("}")
		return sb.String()
	default:
		return "null"
	}
}

// nativeHost adapts a frame.Host into the narrower gfunction.Host interface,
// supplying the heap-aware Render that a bare Value can't produce itself.
type nativeHost struct {
	Host
}

func (n nativeHost) Render(v types.Value) string { return Render(n.Heap(), v) }
