/*
 * classbox - a partial interpreter for compiled class files
 * Copyright (c) 2026 by the classbox authors.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package frame

import (
	"github.com/jacobin-run/classbox/internal/bytecode"
	"github.com/jacobin-run/classbox/internal/classloader"
	"github.com/jacobin-run/classbox/internal/gfunction"
	"github.com/jacobin-run/classbox/internal/types"
)

// invoke implements method resolution and dispatch rules for an
// Invoke instruction.
func (f *Frame) invoke(in bytecode.Instr) error {
	if in.Invoke == bytecode.InvokeInterface {
		return unimplemented("invokeinterface")
	}
	if in.Invoke == bytecode.InvokeDynamic {
		return unimplemented("invokedynamic")
	}

	className, name, descriptor, ok := f.Class.File.RefAt(uint16(in.CPIndex))
	if !ok {
		return typeError("invoke: constant pool entry is not a method ref")
	}
	desc, err := types.ParseMethodDescriptor(descriptor)
	if err != nil {
		return err
	}

	target, err := f.resolveOwner(className)
	if err != nil {
		return err
	}

	declClass, method, ok := target.LookupMethod(name, descriptor)
	if !ok {
		return noSuchMethod(className, name, descriptor)
	}

	switch in.Invoke {
	case bytecode.InvokeStatic:
		return f.invokeStatic(declClass, method, desc)
	case bytecode.InvokeSpecial:
		return f.invokeDirect(declClass, method, desc)
	case bytecode.InvokeVirtual:
		return f.invokeVirtual(declClass, method, desc, name, descriptor)
	default:
		return unimplemented("invoke")
	}
}

// invokeStatic implements "Static" dispatch rule, including the
// native-intrinsic fast path evaluated first.
func (f *Frame) invokeStatic(declClass *classloader.Class, method *classloader.Method, desc types.MethodDescriptor) error {
	if method.IsNative() {
		return f.invokeNative(method, desc)
	}
	if method.IsSynchronized() {
		return unsupportedSynchronized()
	}
	args := f.popArgs(len(desc.Params))
	return f.callAndPush(declClass, method, args)
}

// invokeDirect implements "Special" dispatch rule: use the
// method found during resolution, receiver occupies local 0.
func (f *Frame) invokeDirect(declClass *classloader.Class, method *classloader.Method, desc types.MethodDescriptor) error {
	if method.IsSynchronized() {
		return unsupportedSynchronized()
	}
	args := f.popArgs(len(desc.Params) + 1)
	return f.callAndPush(declClass, method, args)
}

// invokeVirtual implements "Virtual" dispatch rule: private
// methods behave like special; otherwise re-resolve from the receiver's
// actual runtime class (single dispatch).
func (f *Frame) invokeVirtual(declClass *classloader.Class, method *classloader.Method, desc types.MethodDescriptor, name, descriptor string) error {
	if method.IsPrivate() {
		return f.invokeDirect(declClass, method, desc)
	}

	n := len(desc.Params)
	if len(f.Stack) < n+1 {
		return typeError("invokevirtual: operand stack underflow")
	}
	receiver := f.Stack[len(f.Stack)-n-1]
	if receiver.IsNull() {
		return nullPointer("invokevirtual on null receiver")
	}
	obj, ok := f.Host.Heap().Get(receiver.Ref)
	if !ok || obj.Shape != ShapeObject {
		return typeError("invokevirtual: receiver is not an object")
	}

	actualDecl, actualMethod, ok := obj.Class.LookupMethod(name, descriptor)
	if !ok {
		return noSuchMethod(obj.Class.Name, name, descriptor)
	}

	if actualMethod.IsSynchronized() {
		return unsupportedSynchronized()
	}
	args := f.popArgs(n + 1)
	return f.callAndPush(actualDecl, actualMethod, args)
}

func (f *Frame) invokeNative(method *classloader.Method, desc types.MethodDescriptor) error {
	g, ok := gfunction.Lookup(method.Name)
	if !ok {
		return unimplemented("native:" + method.Name)
	}
	args := f.popArgs(len(desc.Params))
	ret, hasRet, err := g.GFunction(nativeHost{f.Host}, args)
	if err != nil {
		return err
	}
	if hasRet {
		f.push(ret)
	}
	return nil
}

func (f *Frame) callAndPush(declClass *classloader.Class, method *classloader.Method, args []types.Value) error {
	if method.Instructions == nil {
		return unimplemented("abstract or bodiless method: " + declClass.Name + "." + method.Name)
	}
	callee := NewFrame(declClass, method, f.Host)
	copy(callee.Locals, args)
	ret, hasReturn, err := Execute(callee)
	if err != nil {
		return err
	}
	if hasReturn {
		f.push(ret)
	}
	return nil
}

// popArgs pops the top n stack entries, preserving their original
// declaration order.
func (f *Frame) popArgs(n int) []types.Value {
	args := make([]types.Value, n)
	copy(args, f.Stack[len(f.Stack)-n:])
	f.Stack = f.Stack[:len(f.Stack)-n]
	return args
}
