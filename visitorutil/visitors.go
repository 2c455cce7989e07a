// Package visitorutil provides no-op base adapters for every classfile
// visitor interface, adapted from the callback-struct pattern the teacher
// library uses for its own visitor helpers. Embedding one of these structs
// lets a caller override only the handful of Visit* methods it cares about
// instead of implementing the full interface.
package visitorutil

import "github.com/gojvm/classfile/classfile"

// ClassVisitor is a no-op classfile.ClassVisitor. Fields left nil are
// silently skipped; set only the ones a particular walk needs.
type ClassVisitor struct {
	OnVisit                 func(version, access int, name, signature, superName string, interfaces []string)
	OnVisitSource            func(source, debug string)
	OnVisitModule            func(name string, access int, version string) classfile.ModuleVisitor
	OnVisitOuterClass        func(owner, name, descriptor string)
	OnVisitAnnotation        func(descriptor string, visible bool) classfile.AnnotationVisitor
	OnVisitTypeAnnotation    func(typeRef int, typePath *classfile.TypePath, descriptor string, visible bool) classfile.AnnotationVisitor
	OnVisitAttribute         func(attribute *classfile.Attribute)
	OnVisitNestHost          func(nestHost string)
	OnVisitNestMember        func(nestMember string)
	OnVisitPermittedSubclass func(permittedSubclass string)
	OnVisitInnerClass        func(name, outerName, innerName string, access int)
	OnVisitRecordComponent   func(name, descriptor, signature string) classfile.RecordComponentVisitor
	OnVisitField             func(access int, name, descriptor, signature string, value interface{}) classfile.FieldVisitor
	OnVisitMethod            func(access int, name, descriptor, signature string, exceptions []string) classfile.MethodVisitor
	OnVisitEnd               func()
}

func (v ClassVisitor) Visit(version, access int, name, signature, superName string, interfaces []string) {
	if v.OnVisit != nil {
		v.OnVisit(version, access, name, signature, superName, interfaces)
	}
}

func (v ClassVisitor) VisitSource(source, debug string) {
	if v.OnVisitSource != nil {
		v.OnVisitSource(source, debug)
	}
}

func (v ClassVisitor) VisitModule(name string, access int, version string) classfile.ModuleVisitor {
	if v.OnVisitModule != nil {
		return v.OnVisitModule(name, access, version)
	}
	return nil
}

func (v ClassVisitor) VisitOuterClass(owner, name, descriptor string) {
	if v.OnVisitOuterClass != nil {
		v.OnVisitOuterClass(owner, name, descriptor)
	}
}

func (v ClassVisitor) VisitAnnotation(descriptor string, visible bool) classfile.AnnotationVisitor {
	if v.OnVisitAnnotation != nil {
		return v.OnVisitAnnotation(descriptor, visible)
	}
	return nil
}

func (v ClassVisitor) VisitTypeAnnotation(typeRef int, typePath *classfile.TypePath, descriptor string, visible bool) classfile.AnnotationVisitor {
	if v.OnVisitTypeAnnotation != nil {
		return v.OnVisitTypeAnnotation(typeRef, typePath, descriptor, visible)
	}
	return nil
}

func (v ClassVisitor) VisitAttribute(attribute *classfile.Attribute) {
	if v.OnVisitAttribute != nil {
		v.OnVisitAttribute(attribute)
	}
}

func (v ClassVisitor) VisitNestHost(nestHost string) {
	if v.OnVisitNestHost != nil {
		v.OnVisitNestHost(nestHost)
	}
}

func (v ClassVisitor) VisitNestMember(nestMember string) {
	if v.OnVisitNestMember != nil {
		v.OnVisitNestMember(nestMember)
	}
}

func (v ClassVisitor) VisitPermittedSubclass(permittedSubclass string) {
	if v.OnVisitPermittedSubclass != nil {
		v.OnVisitPermittedSubclass(permittedSubclass)
	}
}

func (v ClassVisitor) VisitInnerClass(name, outerName, innerName string, access int) {
	if v.OnVisitInnerClass != nil {
		v.OnVisitInnerClass(name, outerName, innerName, access)
	}
}

func (v ClassVisitor) VisitRecordComponent(name, descriptor, signature string) classfile.RecordComponentVisitor {
	if v.OnVisitRecordComponent != nil {
		return v.OnVisitRecordComponent(name, descriptor, signature)
	}
	return nil
}

func (v ClassVisitor) VisitField(access int, name, descriptor, signature string, value interface{}) classfile.FieldVisitor {
	if v.OnVisitField != nil {
		return v.OnVisitField(access, name, descriptor, signature, value)
	}
	return nil
}

func (v ClassVisitor) VisitMethod(access int, name, descriptor, signature string, exceptions []string) classfile.MethodVisitor {
	if v.OnVisitMethod != nil {
		return v.OnVisitMethod(access, name, descriptor, signature, exceptions)
	}
	return nil
}

func (v ClassVisitor) VisitEnd() {
	if v.OnVisitEnd != nil {
		v.OnVisitEnd()
	}
}

// AnnotationVisitor is a no-op classfile.AnnotationVisitor.
type AnnotationVisitor struct {
	OnVisit           func(name string, value interface{})
	OnVisitEnum       func(name, descriptor, value string)
	OnVisitAnnotation func(name, descriptor string) classfile.AnnotationVisitor
	OnVisitArray      func(name string) classfile.AnnotationVisitor
	OnVisitEnd        func()
}

func (v AnnotationVisitor) Visit(name string, value interface{}) {
	if v.OnVisit != nil {
		v.OnVisit(name, value)
	}
}

func (v AnnotationVisitor) VisitEnum(name, descriptor, value string) {
	if v.OnVisitEnum != nil {
		v.OnVisitEnum(name, descriptor, value)
	}
}

func (v AnnotationVisitor) VisitAnnotation(name, descriptor string) classfile.AnnotationVisitor {
	if v.OnVisitAnnotation != nil {
		return v.OnVisitAnnotation(name, descriptor)
	}
	return nil
}

func (v AnnotationVisitor) VisitArray(name string) classfile.AnnotationVisitor {
	if v.OnVisitArray != nil {
		return v.OnVisitArray(name)
	}
	return nil
}

func (v AnnotationVisitor) VisitEnd() {
	if v.OnVisitEnd != nil {
		v.OnVisitEnd()
	}
}

// FieldVisitor is a no-op classfile.FieldVisitor.
type FieldVisitor struct {
	OnVisitAnnotation     func(descriptor string, visible bool) classfile.AnnotationVisitor
	OnVisitTypeAnnotation func(typeRef int, typePath *classfile.TypePath, descriptor string, visible bool) classfile.AnnotationVisitor
	OnVisitAttribute      func(attribute *classfile.Attribute)
	OnVisitEnd            func()
}

func (v FieldVisitor) VisitAnnotation(descriptor string, visible bool) classfile.AnnotationVisitor {
	if v.OnVisitAnnotation != nil {
		return v.OnVisitAnnotation(descriptor, visible)
	}
	return nil
}

func (v FieldVisitor) VisitTypeAnnotation(typeRef int, typePath *classfile.TypePath, descriptor string, visible bool) classfile.AnnotationVisitor {
	if v.OnVisitTypeAnnotation != nil {
		return v.OnVisitTypeAnnotation(typeRef, typePath, descriptor, visible)
	}
	return nil
}

func (v FieldVisitor) VisitAttribute(attribute *classfile.Attribute) {
	if v.OnVisitAttribute != nil {
		v.OnVisitAttribute(attribute)
	}
}

func (v FieldVisitor) VisitEnd() {
	if v.OnVisitEnd != nil {
		v.OnVisitEnd()
	}
}

// RecordComponentVisitor is a no-op classfile.RecordComponentVisitor.
type RecordComponentVisitor struct {
	OnVisitAnnotation     func(descriptor string, visible bool) classfile.AnnotationVisitor
	OnVisitTypeAnnotation func(typeRef int, typePath *classfile.TypePath, descriptor string, visible bool) classfile.AnnotationVisitor
	OnVisitAttribute      func(attribute *classfile.Attribute)
	OnVisitEnd            func()
}

func (v RecordComponentVisitor) VisitAnnotation(descriptor string, visible bool) classfile.AnnotationVisitor {
	if v.OnVisitAnnotation != nil {
		return v.OnVisitAnnotation(descriptor, visible)
	}
	return nil
}

func (v RecordComponentVisitor) VisitTypeAnnotation(typeRef int, typePath *classfile.TypePath, descriptor string, visible bool) classfile.AnnotationVisitor {
	if v.OnVisitTypeAnnotation != nil {
		return v.OnVisitTypeAnnotation(typeRef, typePath, descriptor, visible)
	}
	return nil
}

func (v RecordComponentVisitor) VisitAttribute(attribute *classfile.Attribute) {
	if v.OnVisitAttribute != nil {
		v.OnVisitAttribute(attribute)
	}
}

func (v RecordComponentVisitor) VisitEnd() {
	if v.OnVisitEnd != nil {
		v.OnVisitEnd()
	}
}

// ModuleVisitor is a no-op classfile.ModuleVisitor.
type ModuleVisitor struct {
	OnVisitMainClass func(mainClass string)
	OnVisitPackage   func(packageName string)
	OnVisitRequire   func(module string, access int, version string)
	OnVisitExport    func(packageName string, access int, modules ...string)
	OnVisitOpen      func(packageName string, access int, modules ...string)
	OnVisitUse       func(service string)
	OnVisitProvide   func(service string, providers ...string)
	OnVisitEnd       func()
}

func (v ModuleVisitor) VisitMainClass(mainClass string) {
	if v.OnVisitMainClass != nil {
		v.OnVisitMainClass(mainClass)
	}
}

func (v ModuleVisitor) VisitPackage(packageName string) {
	if v.OnVisitPackage != nil {
		v.OnVisitPackage(packageName)
	}
}

func (v ModuleVisitor) VisitRequire(module string, access int, version string) {
	if v.OnVisitRequire != nil {
		v.OnVisitRequire(module, access, version)
	}
}

func (v ModuleVisitor) VisitExport(packageName string, access int, modules ...string) {
	if v.OnVisitExport != nil {
		v.OnVisitExport(packageName, access, modules...)
	}
}

func (v ModuleVisitor) VisitOpen(packageName string, access int, modules ...string) {
	if v.OnVisitOpen != nil {
		v.OnVisitOpen(packageName, access, modules...)
	}
}

func (v ModuleVisitor) VisitUse(service string) {
	if v.OnVisitUse != nil {
		v.OnVisitUse(service)
	}
}

func (v ModuleVisitor) VisitProvide(service string, providers ...string) {
	if v.OnVisitProvide != nil {
		v.OnVisitProvide(service, providers...)
	}
}

func (v ModuleVisitor) VisitEnd() {
	if v.OnVisitEnd != nil {
		v.OnVisitEnd()
	}
}

// MethodVisitor is a no-op classfile.MethodVisitor, the workhorse of this
// package: most consumers only ever care about a handful of instruction
// callbacks and want every other event swallowed silently.
type MethodVisitor struct {
	OnVisitParameter              func(name string, access int)
	OnVisitAnnotationDefault      func() classfile.AnnotationVisitor
	OnVisitAnnotation             func(descriptor string, visible bool) classfile.AnnotationVisitor
	OnVisitTypeAnnotation         func(typeRef int, typePath *classfile.TypePath, descriptor string, visible bool) classfile.AnnotationVisitor
	OnVisitAnnotableParameterCount func(parameterCount int, visible bool)
	OnVisitParameterAnnotation     func(parameter int, descriptor string, visible bool) classfile.AnnotationVisitor
	OnVisitAttribute               func(attribute *classfile.Attribute)
	OnVisitCode                    func()
	OnVisitFrame                   func(typed int, numLocal int, local []classfile.VerificationType, numStack int, stack []classfile.VerificationType)
	OnVisitInsn                    func(opcode int)
	OnVisitIntInsn                 func(opcode, operand int)
	OnVisitVarInsn                 func(opcode, varIndex int)
	OnVisitTypeInsn                func(opcode int, typeDescriptor string)
	OnVisitFieldInsn               func(opcode int, owner, name, descriptor string)
	OnVisitMethodInsn              func(opcode int, owner, name, descriptor string, isInterface bool)
	OnVisitInvokeDynamicInsn       func(name, descriptor string, bootstrapMethodHandle classfile.Handle, bootstrapMethodArguments ...interface{})
	OnVisitJumpInsn                func(opcode int, label *classfile.Label)
	OnVisitLabel                   func(label *classfile.Label)
	OnVisitLdcInsn                 func(value interface{})
	OnVisitIincInsn                func(varIndex, increment int)
	OnVisitTableSwitchInsn         func(min, max int, dflt *classfile.Label, labels ...*classfile.Label)
	OnVisitLookupSwitchInsn        func(dflt *classfile.Label, keys []int, labels []*classfile.Label)
	OnVisitMultiANewArrayInsn      func(descriptor string, numDimensions int)
	OnVisitInsnAnnotation          func(typeRef int, typePath *classfile.TypePath, descriptor string, visible bool) classfile.AnnotationVisitor
	OnVisitTryCatchBlock           func(start, end, handler *classfile.Label, exceptionType string)
	OnVisitTryCatchAnnotation      func(typeRef int, typePath *classfile.TypePath, descriptor string, visible bool) classfile.AnnotationVisitor
	OnVisitLocalVariable           func(name, descriptor, signature string, start, end *classfile.Label, index int)
	OnVisitLocalVariableAnnotation func(typeRef int, typePath *classfile.TypePath, start, end []*classfile.Label, index []int, descriptor string, visible bool) classfile.AnnotationVisitor
	OnVisitLineNumber              func(line int, start *classfile.Label)
	OnVisitMaxs                    func(maxStack, maxLocals int)
	OnVisitEnd                     func()
}

func (m MethodVisitor) VisitParameter(name string, access int) {
	if m.OnVisitParameter != nil {
		m.OnVisitParameter(name, access)
	}
}

func (m MethodVisitor) VisitAnnotationDefault() classfile.AnnotationVisitor {
	if m.OnVisitAnnotationDefault != nil {
		return m.OnVisitAnnotationDefault()
	}
	return nil
}

func (m MethodVisitor) VisitAnnotation(descriptor string, visible bool) classfile.AnnotationVisitor {
	if m.OnVisitAnnotation != nil {
		return m.OnVisitAnnotation(descriptor, visible)
	}
	return nil
}

func (m MethodVisitor) VisitTypeAnnotation(typeRef int, typePath *classfile.TypePath, descriptor string, visible bool) classfile.AnnotationVisitor {
	if m.OnVisitTypeAnnotation != nil {
		return m.OnVisitTypeAnnotation(typeRef, typePath, descriptor, visible)
	}
	return nil
}

func (m MethodVisitor) VisitAnnotableParameterCount(parameterCount int, visible bool) {
	if m.OnVisitAnnotableParameterCount != nil {
		m.OnVisitAnnotableParameterCount(parameterCount, visible)
	}
}

func (m MethodVisitor) VisitParameterAnnotation(parameter int, descriptor string, visible bool) classfile.AnnotationVisitor {
	if m.OnVisitParameterAnnotation != nil {
		return m.OnVisitParameterAnnotation(parameter, descriptor, visible)
	}
	return nil
}

func (m MethodVisitor) VisitAttribute(attribute *classfile.Attribute) {
	if m.OnVisitAttribute != nil {
		m.OnVisitAttribute(attribute)
	}
}

func (m MethodVisitor) VisitCode() {
	if m.OnVisitCode != nil {
		m.OnVisitCode()
	}
}

func (m MethodVisitor) VisitFrame(typed int, numLocal int, local []classfile.VerificationType, numStack int, stack []classfile.VerificationType) {
	if m.OnVisitFrame != nil {
		m.OnVisitFrame(typed, numLocal, local, numStack, stack)
	}
}

func (m MethodVisitor) VisitInsn(opcode int) {
	if m.OnVisitInsn != nil {
		m.OnVisitInsn(opcode)
	}
}

func (m MethodVisitor) VisitIntInsn(opcode, operand int) {
	if m.OnVisitIntInsn != nil {
		m.OnVisitIntInsn(opcode, operand)
	}
}

func (m MethodVisitor) VisitVarInsn(opcode, varIndex int) {
	if m.OnVisitVarInsn != nil {
		m.OnVisitVarInsn(opcode, varIndex)
	}
}

func (m MethodVisitor) VisitTypeInsn(opcode int, typeDescriptor string) {
	if m.OnVisitTypeInsn != nil {
		m.OnVisitTypeInsn(opcode, typeDescriptor)
	}
}

func (m MethodVisitor) VisitFieldInsn(opcode int, owner, name, descriptor string) {
	if m.OnVisitFieldInsn != nil {
		m.OnVisitFieldInsn(opcode, owner, name, descriptor)
	}
}

func (m MethodVisitor) VisitMethodInsn(opcode int, owner, name, descriptor string, isInterface bool) {
	if m.OnVisitMethodInsn != nil {
		m.OnVisitMethodInsn(opcode, owner, name, descriptor, isInterface)
	}
}

func (m MethodVisitor) VisitInvokeDynamicInsn(name, descriptor string, bootstrapMethodHandle classfile.Handle, bootstrapMethodArguments ...interface{}) {
	if m.OnVisitInvokeDynamicInsn != nil {
		m.OnVisitInvokeDynamicInsn(name, descriptor, bootstrapMethodHandle, bootstrapMethodArguments...)
	}
}

func (m MethodVisitor) VisitJumpInsn(opcode int, label *classfile.Label) {
	if m.OnVisitJumpInsn != nil {
		m.OnVisitJumpInsn(opcode, label)
	}
}

func (m MethodVisitor) VisitLabel(label *classfile.Label) {
	if m.OnVisitLabel != nil {
		m.OnVisitLabel(label)
	}
}

func (m MethodVisitor) VisitLdcInsn(value interface{}) {
	if m.OnVisitLdcInsn != nil {
		m.OnVisitLdcInsn(value)
	}
}

func (m MethodVisitor) VisitIincInsn(varIndex, increment int) {
	if m.OnVisitIincInsn != nil {
		m.OnVisitIincInsn(varIndex, increment)
	}
}

func (m MethodVisitor) VisitTableSwitchInsn(min, max int, dflt *classfile.Label, labels ...*classfile.Label) {
	if m.OnVisitTableSwitchInsn != nil {
		m.OnVisitTableSwitchInsn(min, max, dflt, labels...)
	}
}

func (m MethodVisitor) VisitLookupSwitchInsn(dflt *classfile.Label, keys []int, labels []*classfile.Label) {
	if m.OnVisitLookupSwitchInsn != nil {
		m.OnVisitLookupSwitchInsn(dflt, keys, labels)
	}
}

func (m MethodVisitor) VisitMultiANewArrayInsn(descriptor string, numDimensions int) {
	if m.OnVisitMultiANewArrayInsn != nil {
		m.OnVisitMultiANewArrayInsn(descriptor, numDimensions)
	}
}

func (m MethodVisitor) VisitInsnAnnotation(typeRef int, typePath *classfile.TypePath, descriptor string, visible bool) classfile.AnnotationVisitor {
	if m.OnVisitInsnAnnotation != nil {
		return m.OnVisitInsnAnnotation(typeRef, typePath, descriptor, visible)
	}
	return nil
}

func (m MethodVisitor) VisitTryCatchBlock(start, end, handler *classfile.Label, exceptionType string) {
	if m.OnVisitTryCatchBlock != nil {
		m.OnVisitTryCatchBlock(start, end, handler, exceptionType)
	}
}

func (m MethodVisitor) VisitTryCatchAnnotation(typeRef int, typePath *classfile.TypePath, descriptor string, visible bool) classfile.AnnotationVisitor {
	if m.OnVisitTryCatchAnnotation != nil {
		return m.OnVisitTryCatchAnnotation(typeRef, typePath, descriptor, visible)
	}
	return nil
}

func (m MethodVisitor) VisitLocalVariable(name, descriptor, signature string, start, end *classfile.Label, index int) {
	if m.OnVisitLocalVariable != nil {
		m.OnVisitLocalVariable(name, descriptor, signature, start, end, index)
	}
}

func (m MethodVisitor) VisitLocalVariableAnnotation(typeRef int, typePath *classfile.TypePath, start, end []*classfile.Label, index []int, descriptor string, visible bool) classfile.AnnotationVisitor {
	if m.OnVisitLocalVariableAnnotation != nil {
		return m.OnVisitLocalVariableAnnotation(typeRef, typePath, start, end, index, descriptor, visible)
	}
	return nil
}

func (m MethodVisitor) VisitLineNumber(line int, start *classfile.Label) {
	if m.OnVisitLineNumber != nil {
		m.OnVisitLineNumber(line, start)
	}
}

func (m MethodVisitor) VisitMaxs(maxStack, maxLocals int) {
	if m.OnVisitMaxs != nil {
		m.OnVisitMaxs(maxStack, maxLocals)
	}
}

func (m MethodVisitor) VisitEnd() {
	if m.OnVisitEnd != nil {
		m.OnVisitEnd()
	}
}
