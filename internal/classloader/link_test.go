/*
 * classbox - a partial interpreter for compiled class files
 * Copyright (c) 2026 by the classbox authors.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader_test

import (
	"testing"

	"github.com/jacobin-run/classbox/internal/classfile"
	"github.com/jacobin-run/classbox/internal/classloader"
)

// objectClassFile builds the root of the class graph: no super, no members.
func objectClassFile() *classfile.ClassFile {
	return &classfile.ClassFile{
		ThisClassName: "java/lang/Object",
		SuperClass:    0,
	}
}

// superRefPool builds a constant pool whose only live entry is a Class entry
// at index 1 naming superName, wired through a Utf8 at index 2.
func superRefPool(superName string) []classfile.CPEntry {
	return []classfile.CPEntry{
		{}, // index 0, never live
		{Tag: classfile.TagClass, NameIndex: 2},
		{Tag: classfile.TagUtf8, Utf8: superName},
	}
}

func noopLoader(classes map[string]*classfile.ClassFile) classloader.LoaderFunc {
	var load classloader.LoaderFunc
	linked := make(map[string]*classloader.Class)
	load = func(name string) (*classloader.Class, error) {
		if c, ok := linked[name]; ok {
			return c, nil
		}
		cf, ok := classes[name]
		if !ok {
			return nil, classloader.ErrMissingSuperClass
		}
		c, err := classloader.Link(cf, load)
		if err != nil {
			return nil, err
		}
		linked[name] = c
		return c, nil
	}
	return load
}

func TestLinkResolvesSuperChainAndFieldOrdinals(t *testing.T) {
	objectCF := objectClassFile()
	animalCF := &classfile.ClassFile{
		ThisClassName:  "Animal",
		SuperClassName: "java/lang/Object",
		SuperClass:     1,
		ConstantPool:   superRefPool("java/lang/Object"),
		Fields: []classfile.FieldInfo{
			{Name: "name", Desc: "Ljava/lang/String;"},
		},
	}
	dogCF := &classfile.ClassFile{
		ThisClassName:  "Dog",
		SuperClassName: "Animal",
		SuperClass:     1,
		ConstantPool:   superRefPool("Animal"),
		Fields: []classfile.FieldInfo{
			{Name: "breed", Desc: "Ljava/lang/String;"},
		},
	}

	load := noopLoader(map[string]*classfile.ClassFile{
		"java/lang/Object": objectCF,
		"Animal":            animalCF,
	})

	dog, err := classloader.Link(dogCF, load)
	if err != nil {
		t.Fatalf("Link(Dog): %v", err)
	}
	if dog.Super == nil || dog.Super.Name != "Animal" {
		t.Fatalf("Dog.Super = %v, want Animal", dog.Super)
	}
	if dog.Super.Super == nil || dog.Super.Super.Name != "java/lang/Object" {
		t.Fatalf("Dog.Super.Super = %v, want java/lang/Object", dog.Super.Super)
	}

	nameOrd, ok := dog.FieldOrdinal("name", "Ljava/lang/String;")
	if !ok || nameOrd != 0 {
		t.Errorf("FieldOrdinal(name) = (%d, %v), want (0, true)", nameOrd, ok)
	}
	breedOrd, ok := dog.FieldOrdinal("breed", "Ljava/lang/String;")
	if !ok || breedOrd != 1 {
		t.Errorf("FieldOrdinal(breed) = (%d, %v), want (1, true)", breedOrd, ok)
	}
	if len(dog.Fields) != 2 {
		t.Fatalf("len(dog.Fields) = %d, want 2", len(dog.Fields))
	}
}

func TestLinkStaticFieldDefaults(t *testing.T) {
	cf := &classfile.ClassFile{
		ThisClassName: "Counter",
		SuperClass:    0,
		Fields: []classfile.FieldInfo{
			{Name: "n", Desc: "I", AccessFlags: classfile.AccStatic},
		},
	}
	cls, err := classloader.Link(cf, noopLoader(nil))
	if err != nil {
		t.Fatalf("Link: %v", err)
	}
	_, slot, ok := cls.LookupStatic("n", "I")
	if !ok {
		t.Fatal("static field n not found")
	}
	if slot.Value.Num != 0 {
		t.Errorf("default static value = %+v, want zero int", slot.Value)
	}
}

func TestLinkDecodesMethodCode(t *testing.T) {
	cf := &classfile.ClassFile{
		ThisClassName: "Foo",
		SuperClass:    0,
		Methods: []classfile.MethodInfo{
			{
				Name: "main",
				Desc: "()V",
				Code: &classfile.CodeAttribute{
					MaxStack:  0,
					MaxLocals: 0,
					Code:      []byte{0xB1}, // return
				},
			},
		},
	}
	cls, err := classloader.Link(cf, noopLoader(nil))
	if err != nil {
		t.Fatalf("Link: %v", err)
	}
	_, m, ok := cls.LookupMethod("main", "()V")
	if !ok {
		t.Fatal("method main()V not found")
	}
	if len(m.Instructions) != 1 {
		t.Fatalf("len(Instructions) = %d, want 1", len(m.Instructions))
	}
}

func TestLinkMissingSuperClass(t *testing.T) {
	cf := &classfile.ClassFile{
		ThisClassName: "Orphan",
		SuperClass:    1,
		ConstantPool:  superRefPool("DoesNotExist"),
	}
	_, err := classloader.Link(cf, noopLoader(nil))
	if err == nil {
		t.Fatal("expected an error for an unresolvable super class")
	}
}

func TestLinkBadConstantPoolEntry(t *testing.T) {
	cf := &classfile.ClassFile{
		ThisClassName: "Bad",
		SuperClass:    1,
		// index 1 is a Utf8, not a Class entry, so ClassNameAt must fail.
		ConstantPool: []classfile.CPEntry{{}, {Tag: classfile.TagUtf8, Utf8: "oops"}},
	}
	_, err := classloader.Link(cf, noopLoader(nil))
	var badEntry *classloader.BadConstantPoolEntryError
	if err == nil {
		t.Fatal("expected a BadConstantPoolEntryError")
	}
	if be, ok := err.(*classloader.BadConstantPoolEntryError); ok {
		badEntry = be
	} else {
		t.Fatalf("err = %v (%T), want *BadConstantPoolEntryError", err, err)
	}
	if badEntry.Index != 1 {
		t.Errorf("Index = %d, want 1", badEntry.Index)
	}
}

func TestLinkInvalidFieldDescriptor(t *testing.T) {
	cf := &classfile.ClassFile{
		ThisClassName: "Weird",
		SuperClass:    0,
		Fields: []classfile.FieldInfo{
			{Name: "x", Desc: "Q", AccessFlags: classfile.AccStatic},
		},
	}
	_, err := classloader.Link(cf, noopLoader(nil))
	if err == nil {
		t.Fatal("expected an InvalidDescriptorError for a bogus static field descriptor")
	}
}
