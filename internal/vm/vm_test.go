/*
 * classbox - a partial interpreter for compiled class files
 * Copyright (c) 2026 by the classbox authors.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package vm_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacobin-run/classbox/internal/vm"
)

func runScenario(t *testing.T, entryClass string, classes mapRuntimeImage) string {
	t.Helper()
	var out bytes.Buffer
	machine := vm.New(&out, vm.FixedClock{Millis: 0}, classes)
	err := machine.RunMain(entryClass)
	require.NoError(t, err)
	return out.String()
}

func TestScenarioHello(t *testing.T) {
	cp := newCPBuilder()
	thisU := cp.utf8("Hello")
	thisIdx := cp.classFromUtf8(thisU)
	superU := cp.utf8("java/lang/Object")
	superIdx := cp.classFromUtf8(superU)
	printName := cp.utf8("print")
	printDesc := cp.utf8("(Ljava/lang/String;)V")
	mainName := cp.utf8("main")
	mainDesc := cp.utf8("()V")
	helloStr := cp.utf8("hello")
	helloStrIdx := cp.stringFromUtf8(helloStr)
	printNT := cp.nameAndType(printName, printDesc)
	printMR := cp.methodref(thisIdx, printNT)
	codeName := cp.utf8("Code")

	methods := []methodAsm{
		{nameIdx: printName, descIdx: printDesc, accessFlags: 0x0109}, // static native
		{
			nameIdx: mainName, descIdx: mainDesc, accessFlags: 0x0009,
			code: []byte{
				0x12, byte(helloStrIdx), // ldc #helloStrIdx
				0xB8, byte(printMR >> 8), byte(printMR), // invokestatic #printMR
				0xB1, // return
			},
			codeNameIdx: codeName, maxStack: 1, maxLocals: 0,
		},
	}
	data := assembleClass(cp, thisIdx, superIdx, nil, methods)

	out := runScenario(t, "Hello", mapRuntimeImage{
		"Hello":            data,
		"java/lang/Object": buildEmptyClass("java/lang/Object"),
	})
	assert.Equal(t, "hello", out)
}

func TestScenarioSumLoop(t *testing.T) {
	cp := newCPBuilder()
	thisU := cp.utf8("Sum")
	thisIdx := cp.classFromUtf8(thisU)
	superU := cp.utf8("java/lang/Object")
	superIdx := cp.classFromUtf8(superU)
	printName := cp.utf8("print")
	printDesc := cp.utf8("(I)V")
	mainName := cp.utf8("main")
	mainDesc := cp.utf8("()V")
	printNT := cp.nameAndType(printName, printDesc)
	printMR := cp.methodref(thisIdx, printNT)
	codeName := cp.utf8("Code")

	code := []byte{
		0x03,                   // iconst_0        ; sum = 0
		0x3C,                   // istore_1
		0x03,                   // iconst_0        ; i = 0
		0x3B,                   // istore_0
		0x1A,                   // iload_0         ; [loop start, addr4]
		0x10, 0x0A,             // bipush 10
		0xA2, 0x00, 0x0D,       // if_icmpge +13   ; -> addr20
		0x1B,                   // iload_1
		0x1A,                   // iload_0
		0x60,                   // iadd
		0x3C,                   // istore_1        ; sum += i
		0x84, 0x00, 0x01,       // iinc 0, +1      ; i++
		0xA7, 0xFF, 0xF3,       // goto -13        ; -> addr4
		0x1B,                   // iload_1         ; [end, addr20]
		0xB8, byte(printMR >> 8), byte(printMR), // invokestatic print
		0xB1, // return
	}
	methods := []methodAsm{
		{nameIdx: printName, descIdx: printDesc, accessFlags: 0x0109},
		{nameIdx: mainName, descIdx: mainDesc, accessFlags: 0x0009,
			code: code, codeNameIdx: codeName, maxStack: 2, maxLocals: 2},
	}
	data := assembleClass(cp, thisIdx, superIdx, nil, methods)

	out := runScenario(t, "Sum", mapRuntimeImage{
		"Sum":              data,
		"java/lang/Object": buildEmptyClass("java/lang/Object"),
	})
	assert.Equal(t, "45", out)
}

func TestScenarioModulo(t *testing.T) {
	cp := newCPBuilder()
	thisU := cp.utf8("Mod")
	thisIdx := cp.classFromUtf8(thisU)
	superU := cp.utf8("java/lang/Object")
	superIdx := cp.classFromUtf8(superU)
	printName := cp.utf8("print")
	printDesc := cp.utf8("(I)V")
	mainName := cp.utf8("main")
	mainDesc := cp.utf8("()V")
	printNT := cp.nameAndType(printName, printDesc)
	printMR := cp.methodref(thisIdx, printNT)
	codeName := cp.utf8("Code")

	code := []byte{
		0x10, 0x07, // bipush 7
		0x10, 0x03, // bipush 3
		0x70, // irem
		0xB8, byte(printMR >> 8), byte(printMR),
		0xB1,
	}
	methods := []methodAsm{
		{nameIdx: printName, descIdx: printDesc, accessFlags: 0x0109},
		{nameIdx: mainName, descIdx: mainDesc, accessFlags: 0x0009,
			code: code, codeNameIdx: codeName, maxStack: 2, maxLocals: 0},
	}
	data := assembleClass(cp, thisIdx, superIdx, nil, methods)

	out := runScenario(t, "Mod", mapRuntimeImage{
		"Mod":              data,
		"java/lang/Object": buildEmptyClass("java/lang/Object"),
	})
	assert.Equal(t, "1", out)
}

func TestScenarioArray(t *testing.T) {
	cp := newCPBuilder()
	thisU := cp.utf8("Arr")
	thisIdx := cp.classFromUtf8(thisU)
	superU := cp.utf8("java/lang/Object")
	superIdx := cp.classFromUtf8(superU)
	printName := cp.utf8("print")
	printIDesc := cp.utf8("(I)V")
	printArrDesc := cp.utf8("([I)V")
	mainName := cp.utf8("main")
	mainDesc := cp.utf8("()V")
	printINT := cp.nameAndType(printName, printIDesc)
	printIMR := cp.methodref(thisIdx, printINT)
	printArrNT := cp.nameAndType(printName, printArrDesc)
	printArrMR := cp.methodref(thisIdx, printArrNT)
	codeName := cp.utf8("Code")

	code := []byte{
		0x06,       // iconst_3
		0xBC, 0x0A, // newarray int (atype 10)
		0x4B,       // astore_0
		0x2A,       // aload_0
		0x03,       // iconst_0
		0x10, 0x0A, // bipush 10
		0x4F,       // iastore
		0x2A,       // aload_0
		0x04,       // iconst_1
		0x10, 0x14, // bipush 20
		0x4F, // iastore
		0x2A, // aload_0
		0x05, // iconst_2
		0x10, 0x1E, // bipush 30
		0x4F, // iastore
		0x2A, // aload_0
		0xBE, // arraylength
		0xB8, byte(printIMR >> 8), byte(printIMR), // invokestatic print(I)V
		0x2A, // aload_0
		0xB8, byte(printArrMR >> 8), byte(printArrMR), // invokestatic print([I)V
		0xB1, // return
	}
	methods := []methodAsm{
		{nameIdx: printName, descIdx: printIDesc, accessFlags: 0x0109},
		{nameIdx: printName, descIdx: printArrDesc, accessFlags: 0x0109},
		{nameIdx: mainName, descIdx: mainDesc, accessFlags: 0x0009,
			code: code, codeNameIdx: codeName, maxStack: 3, maxLocals: 1},
	}
	data := assembleClass(cp, thisIdx, superIdx, nil, methods)

	out := runScenario(t, "Arr", mapRuntimeImage{
		"Arr":              data,
		"java/lang/Object": buildEmptyClass("java/lang/Object"),
	})
	assert.Equal(t, "3[10, 20, 30]", out)
}

func TestScenarioInstanceFieldAndVirtualDispatch(t *testing.T) {
	objectData := buildEmptyClass("java/lang/Object")

	animalCP := newCPBuilder()
	animalThisU := animalCP.utf8("Animal")
	animalThisIdx := animalCP.classFromUtf8(animalThisU)
	animalSuperU := animalCP.utf8("java/lang/Object")
	animalSuperIdx := animalCP.classFromUtf8(animalSuperU)
	soundName := animalCP.utf8("sound")
	soundDesc := animalCP.utf8("()Ljava/lang/String;")
	animalStr := animalCP.utf8("animal")
	animalStrIdx := animalCP.stringFromUtf8(animalStr)
	animalCodeName := animalCP.utf8("Code")
	animalMethods := []methodAsm{
		{nameIdx: soundName, descIdx: soundDesc, accessFlags: 0x0001, // public instance
			code:        []byte{0x12, byte(animalStrIdx), 0xB0}, // ldc #animalStrIdx; areturn
			codeNameIdx: animalCodeName, maxStack: 1, maxLocals: 1},
	}
	animalData := assembleClass(animalCP, animalThisIdx, animalSuperIdx, nil, animalMethods)

	dogCP := newCPBuilder()
	dogThisU := dogCP.utf8("Dog")
	dogThisIdx := dogCP.classFromUtf8(dogThisU)
	dogSuperU := dogCP.utf8("Animal")
	dogSuperIdx := dogCP.classFromUtf8(dogSuperU)
	dogSoundName := dogCP.utf8("sound")
	dogSoundDesc := dogCP.utf8("()Ljava/lang/String;")
	barkStr := dogCP.utf8("bark")
	barkStrIdx := dogCP.stringFromUtf8(barkStr)
	dogPrintName := dogCP.utf8("print")
	dogPrintDesc := dogCP.utf8("(Ljava/lang/String;)V")
	dogMainName := dogCP.utf8("main")
	dogMainDesc := dogCP.utf8("()V")
	// The method-ref's symbolic owner is Animal (the declared/super type),
	// while the receiver at runtime is a Dog -- exercising single-dispatch
	// re-resolution against the receiver's actual class.
	soundNT := dogCP.nameAndType(dogSoundName, dogSoundDesc)
	soundMR := dogCP.methodref(dogSuperIdx, soundNT)
	printNT := dogCP.nameAndType(dogPrintName, dogPrintDesc)
	printMR := dogCP.methodref(dogThisIdx, printNT)
	dogCodeName := dogCP.utf8("Code")

	dogMethods := []methodAsm{
		{nameIdx: dogSoundName, descIdx: dogSoundDesc, accessFlags: 0x0001,
			code:        []byte{0x12, byte(barkStrIdx), 0xB0}, // ldc #barkStrIdx; areturn
			codeNameIdx: dogCodeName, maxStack: 1, maxLocals: 1},
		{nameIdx: dogPrintName, descIdx: dogPrintDesc, accessFlags: 0x0109},
		{nameIdx: dogMainName, descIdx: dogMainDesc, accessFlags: 0x0009,
			code: []byte{
				0xBB, byte(dogThisIdx >> 8), byte(dogThisIdx), // new Dog
				0xB6, byte(soundMR >> 8), byte(soundMR), // invokevirtual sound()
				0xB8, byte(printMR >> 8), byte(printMR), // invokestatic print
				0xB1, // return
			},
			codeNameIdx: dogCodeName, maxStack: 1, maxLocals: 0},
	}
	dogData := assembleClass(dogCP, dogThisIdx, dogSuperIdx, nil, dogMethods)

	out := runScenario(t, "Dog", mapRuntimeImage{
		"Dog":              dogData,
		"Animal":           animalData,
		"java/lang/Object": objectData,
	})
	assert.Equal(t, "bark", out)
}

func TestScenarioStaticField(t *testing.T) {
	cp := newCPBuilder()
	thisU := cp.utf8("Counter")
	thisIdx := cp.classFromUtf8(thisU)
	superU := cp.utf8("java/lang/Object")
	superIdx := cp.classFromUtf8(superU)
	nName := cp.utf8("n")
	nDesc := cp.utf8("I")
	incName := cp.utf8("inc")
	incDesc := cp.utf8("()V")
	printName := cp.utf8("print")
	printDesc := cp.utf8("(I)V")
	mainName := cp.utf8("main")
	mainDesc := cp.utf8("()V")
	fieldNT := cp.nameAndType(nName, nDesc)
	fieldRef := cp.fieldref(thisIdx, fieldNT)
	incNT := cp.nameAndType(incName, incDesc)
	incMR := cp.methodref(thisIdx, incNT)
	printNT := cp.nameAndType(printName, printDesc)
	printMR := cp.methodref(thisIdx, printNT)
	codeName := cp.utf8("Code")

	incCode := []byte{
		0xB2, byte(fieldRef >> 8), byte(fieldRef), // getstatic n
		0x04,                                       // iconst_1
		0x60,                                       // iadd
		0xB3, byte(fieldRef >> 8), byte(fieldRef), // putstatic n
		0xB1, // return
	}
	mainCode := []byte{
		0xB8, byte(incMR >> 8), byte(incMR), // invokestatic inc
		0xB8, byte(incMR >> 8), byte(incMR), // invokestatic inc
		0xB2, byte(fieldRef >> 8), byte(fieldRef), // getstatic n
		0xB8, byte(printMR >> 8), byte(printMR), // invokestatic print
		0xB1,
	}
	fields := []fieldAsm{{nameIdx: nName, descIdx: nDesc, accessFlags: 0x0008}} // static
	methods := []methodAsm{
		{nameIdx: incName, descIdx: incDesc, accessFlags: 0x0009,
			code: incCode, codeNameIdx: codeName, maxStack: 2, maxLocals: 0},
		{nameIdx: printName, descIdx: printDesc, accessFlags: 0x0109},
		{nameIdx: mainName, descIdx: mainDesc, accessFlags: 0x0009,
			code: mainCode, codeNameIdx: codeName, maxStack: 1, maxLocals: 0},
	}
	data := assembleClass(cp, thisIdx, superIdx, fields, methods)

	out := runScenario(t, "Counter", mapRuntimeImage{
		"Counter":          data,
		"java/lang/Object": buildEmptyClass("java/lang/Object"),
	})
	assert.Equal(t, "2", out)
}
