package classfile

// FieldVisitor visits a single field declaration. Its methods must be
// called in the order: (VisitAnnotation | VisitTypeAnnotation |
// VisitAttribute)*, VisitEnd.
type FieldVisitor interface {
	VisitAnnotation(descriptor string, visible bool) AnnotationVisitor
	VisitTypeAnnotation(typeRef int, typePath *TypePath, descriptor string, visible bool) AnnotationVisitor
	VisitAttribute(attribute *Attribute)
	VisitEnd()
}

// RecordComponentVisitor visits a single record_component_info entry. Its
// methods must be called in the order: (VisitAnnotation |
// VisitTypeAnnotation | VisitAttribute)*, VisitEnd.
type RecordComponentVisitor interface {
	VisitAnnotation(descriptor string, visible bool) AnnotationVisitor
	VisitTypeAnnotation(typeRef int, typePath *TypePath, descriptor string, visible bool) AnnotationVisitor
	VisitAttribute(attribute *Attribute)
	VisitEnd()
}
