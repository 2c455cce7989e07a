package classfile

// ClassVisitor visits the top-level structure of a Java class. Its methods
// must be called in the order: Visit, [VisitSource], [VisitModule],
// [VisitNestHost], [VisitOuterClass], (VisitAnnotation |
// VisitTypeAnnotation | VisitAttribute)*, (VisitNestMember |
// VisitPermittedSubclass | VisitInnerClass | VisitRecordComponent |
// VisitField | VisitMethod)*, VisitEnd.
type ClassVisitor interface {
	Visit(version, access int, name, signature, superName string, interfaces []string)
	VisitSource(source, debug string)
	VisitModule(name string, access int, version string) ModuleVisitor
	VisitOuterClass(owner, name, descriptor string)
	VisitAnnotation(descriptor string, visible bool) AnnotationVisitor
	VisitTypeAnnotation(typeRef int, typePath *TypePath, descriptor string, visible bool) AnnotationVisitor
	VisitAttribute(attribute *Attribute)
	VisitNestHost(nestHost string)
	VisitNestMember(nestMember string)
	VisitPermittedSubclass(permittedSubclass string)
	VisitInnerClass(name, outerName, innerName string, access int)
	VisitRecordComponent(name, descriptor, signature string) RecordComponentVisitor
	VisitField(access int, name, descriptor, signature string, value interface{}) FieldVisitor
	VisitMethod(access int, name, descriptor, signature string, exceptions []string) MethodVisitor
	VisitEnd()
}
