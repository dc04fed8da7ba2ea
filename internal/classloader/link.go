/*
 * classbox - a partial interpreter for compiled class files
 * Copyright (c) 2026 by the classbox authors.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"github.com/jacobin-run/classbox/internal/bytecode"
	"github.com/jacobin-run/classbox/internal/classfile"
	"github.com/jacobin-run/classbox/internal/types"
)

// LoaderFunc recursively resolves a class by internal name, loading and
// linking it if not already cached. The VM's LoadClass satisfies this
// signature.
type LoaderFunc func(name string) (*Class, error)

// Link produces an immutable Class from a parsed classfile.ClassFile,
// resolving its super chain through load and decoding every method body
// through the instruction decoder.
func Link(cf *classfile.ClassFile, load LoaderFunc) (*Class, error) {
	super, err := resolveSuper(cf, load)
	if err != nil {
		return nil, err
	}

	fields, fieldIndex := linkInstanceFields(cf, super)

	statics, err := linkStaticFields(cf)
	if err != nil {
		return nil, err
	}

	methods, err := linkMethods(cf)
	if err != nil {
		return nil, err
	}

	return &Class{
		Name:         cf.ThisClassName,
		File:         cf,
		Super:        super,
		Methods:      methods,
		Fields:       fields,
		fieldIndex:   fieldIndex,
		StaticFields: statics,
	}, nil
}

// resolveSuper implements step 1. Index 0 means "no super": any class
// declaring it is linked as a root of the class graph.
func resolveSuper(cf *classfile.ClassFile, load LoaderFunc) (*Class, error) {
	if cf.SuperClass == 0 {
		return nil, nil
	}
	name, ok := cf.ClassNameAt(cf.SuperClass)
	if !ok {
		return nil, &BadConstantPoolEntryError{Index: cf.SuperClass, Expected: "Class"}
	}
	super, err := load(name)
	if err != nil {
		return nil, errWrapMissingSuper(err)
	}
	if super == nil {
		return nil, ErrMissingSuperClass
	}
	return super, nil
}

func errWrapMissingSuper(cause error) error {
	return &missingSuperWrap{cause: cause}
}

type missingSuperWrap struct{ cause error }

func (e *missingSuperWrap) Error() string {
	return ErrMissingSuperClass.Error() + ": " + e.cause.Error()
}
func (e *missingSuperWrap) Unwrap() error { return e.cause }

// linkInstanceFields implements step 2: clone the super's field
// list and ordinal map, then append this class's own non-static fields,
// preserving inherited ordinals.
func linkInstanceFields(cf *classfile.ClassFile, super *Class) ([]Field, map[memberKey]int) {
	var fields []Field
	index := make(map[memberKey]int)

	if super != nil {
		fields = append(fields, super.Fields...)
		for k, v := range super.fieldIndex {
			index[k] = v
		}
	}

	for _, fi := range cf.Fields {
		if fi.IsStatic() {
			continue
		}
		ft, _, _ := types.ParseFieldDescriptor(fi.Desc) // best-effort; invalid descriptors default to zero FieldType
		field := Field{
			Name:        fi.Name,
			Descriptor:  fi.Desc,
			Type:        ft,
			AccessFlags: fi.AccessFlags,
			Ordinal:     len(fields),
		}
		index[memberKey{fi.Name, fi.Desc}] = len(fields)
		fields = append(fields, field)
	}

	return fields, index
}

// linkStaticFields implements step 3: allocate one mutable cell
// per static field, initialised to its type's default value.
func linkStaticFields(cf *classfile.ClassFile) (map[memberKey]*StaticSlot, error) {
	statics := make(map[memberKey]*StaticSlot)
	for _, fi := range cf.Fields {
		if !fi.IsStatic() {
			continue
		}
		ft, _, err := types.ParseFieldDescriptor(fi.Desc)
		if err != nil {
			return nil, &InvalidDescriptorError{Descriptor: fi.Desc, Cause: err}
		}
		statics[memberKey{fi.Name, fi.Desc}] = &StaticSlot{Value: types.ZeroFor(ft.Kind())}
	}
	return statics, nil
}

// linkMethods decodes every method's body through the bytecode decoder,
// keyed by (name, descriptor).
func linkMethods(cf *classfile.ClassFile) (map[memberKey]*Method, error) {
	methods := make(map[memberKey]*Method, len(cf.Methods))
	for _, mi := range cf.Methods {
		parsed, err := types.ParseMethodDescriptor(mi.Desc)
		if err != nil {
			return nil, &InvalidDescriptorError{Descriptor: mi.Desc, Cause: err}
		}
		m := &Method{
			Name:        mi.Name,
			Descriptor:  mi.Desc,
			Parsed:      parsed,
			AccessFlags: mi.AccessFlags,
		}
		if mi.Code != nil {
			m.MaxLocals = mi.Code.MaxLocals
			m.MaxStack = mi.Code.MaxStack
			instrs, err := bytecode.Decode(mi.Code.Code)
			if err != nil {
				return nil, err
			}
			m.Instructions = instrs
		}
		methods[memberKey{mi.Name, mi.Desc}] = m
	}
	return methods, nil
}
