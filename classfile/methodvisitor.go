package classfile

// MethodVisitor visits a single method declaration, including its Code
// attribute. Its methods must be called in the order: (VisitParameter)*
// [VisitAnnotationDefault] (VisitAnnotation | VisitAnnotableParameterCount |
// VisitParameterAnnotation | VisitTypeAnnotation | VisitAttribute)*
// [VisitCode (VisitFrame | VisitXInsn | VisitLabel | VisitInsnAnnotation |
// VisitTryCatchBlock | VisitTryCatchAnnotation | VisitLocalVariable |
// VisitLocalVariableAnnotation | VisitLineNumber | VisitAttribute)*
// VisitMaxs] VisitEnd. The
// VisitXInsn and VisitLabel calls occur in bytecode order; VisitTryCatchBlock
// is called before the labels it references have themselves been visited
// (spec.md §5).
type MethodVisitor interface {
	VisitParameter(name string, access int)
	VisitAnnotationDefault() AnnotationVisitor
	VisitAnnotation(descriptor string, visible bool) AnnotationVisitor
	VisitTypeAnnotation(typeRef int, typePath *TypePath, descriptor string, visible bool) AnnotationVisitor
	VisitAnnotableParameterCount(parameterCount int, visible bool)
	VisitParameterAnnotation(parameter int, descriptor string, visible bool) AnnotationVisitor
	VisitAttribute(attribute *Attribute)
	VisitCode()
	VisitFrame(typed int, numLocal int, local []VerificationType, numStack int, stack []VerificationType)
	VisitInsn(opcode int)
	VisitIntInsn(opcode, operand int)
	VisitVarInsn(opcode, varIndex int)
	VisitTypeInsn(opcode int, typeDescriptor string)
	VisitFieldInsn(opcode int, owner, name, descriptor string)
	VisitMethodInsn(opcode int, owner, name, descriptor string, isInterface bool)
	VisitInvokeDynamicInsn(name, descriptor string, bootstrapMethodHandle Handle, bootstrapMethodArguments ...interface{})
	VisitJumpInsn(opcode int, label *Label)
	VisitLabel(label *Label)
	VisitLdcInsn(value interface{})
	VisitIincInsn(varIndex, increment int)
	VisitTableSwitchInsn(min, max int, dflt *Label, labels ...*Label)
	VisitLookupSwitchInsn(dflt *Label, keys []int, labels []*Label)
	VisitMultiANewArrayInsn(descriptor string, numDimensions int)
	VisitInsnAnnotation(typeRef int, typePath *TypePath, descriptor string, visible bool) AnnotationVisitor
	VisitTryCatchBlock(start, end, handler *Label, exceptionType string)
	VisitTryCatchAnnotation(typeRef int, typePath *TypePath, descriptor string, visible bool) AnnotationVisitor
	VisitLocalVariable(name, descriptor, signature string, start, end *Label, index int)
	VisitLocalVariableAnnotation(typeRef int, typePath *TypePath, start, end []*Label, index []int, descriptor string, visible bool) AnnotationVisitor
	VisitLineNumber(line int, start *Label)
	VisitMaxs(maxStack, maxLocals int)
	VisitEnd()
}
