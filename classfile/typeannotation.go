package classfile

import "github.com/gojvm/classfile/classfile/typereference"

// readTypeAnnotationTarget decodes the target_type + target_info prefix of
// a type_annotation structure (JVMS 4.7.20) starting at offset (which
// points at the target_type byte) and returns the packed targetType value
// (sort in the top byte, the sort-specific index packed into the lower
// bytes per the typereference masks) together with the offset of the
// target_path (its path_length byte) that follows.
//
// Every target_info shape except local_var_target is decoded here;
// local_var_target (inside a method body) is decoded separately in
// code.go, since it must also intern Label pairs. LOCAL_VARIABLE and
// RESOURCE_VARIABLE reach here only if they occur outside a Code attribute,
// which is itself illegal (JVMS 4.7.20); any other unrecognized target_type
// byte is likewise rejected.
func (c *ClassReader) readTypeAnnotationTarget(offset int) (targetType int, next int, err error) {
	sort := int(c.b[offset])
	raw := sort << 24
	switch sort {
	case typereference.CLASS_TYPE_PARAMETER, typereference.METHOD_TYPE_PARAMETER:
		raw |= int(c.b[offset+1]) << 16
		return raw & typereference.TypeParameterTargetMask, offset + 2, nil
	case typereference.CLASS_EXTENDS:
		raw |= c.readUnsignedShort(offset+1) << 8
		return raw & typereference.SuperTypeTargetMask, offset + 3, nil
	case typereference.CLASS_TYPE_PARAMETER_BOUND, typereference.METHOD_TYPE_PARAMETER_BOUND:
		raw |= int(c.b[offset+1])<<16 | int(c.b[offset+2])<<8
		return raw & typereference.TypeParameterBoundTargetMask, offset + 3, nil
	case typereference.FIELD, typereference.METHOD_RETURN, typereference.METHOD_RECEIVER:
		return raw & typereference.EmptyTargetMask, offset + 1, nil
	case typereference.INSTANCEOF, typereference.NEW,
		typereference.CONSTRUCTOR_REFERENCE, typereference.METHOD_REFERENCE:
		return raw & typereference.EmptyTargetMask, offset + 3, nil
	case typereference.METHOD_FORMAL_PARAMETER:
		raw |= int(c.b[offset+1]) << 16
		return raw & typereference.FormalParameterTargetMask, offset + 2, nil
	case typereference.THROWS:
		raw |= c.readUnsignedShort(offset+1) << 8
		return raw & typereference.ThrowsTargetMask, offset + 3, nil
	case typereference.EXCEPTION_PARAMETER:
		raw |= c.readUnsignedShort(offset+1) << 8
		return raw & typereference.ExceptionParameterTargetMask, offset + 3, nil
	case typereference.CAST, typereference.CONSTRUCTOR_INVOCATION_TYPE_ARGUMENT,
		typereference.METHOD_INVOCATION_TYPE_ARGUMENT, typereference.CONSTRUCTOR_REFERENCE_TYPE_ARGUMENT,
		typereference.METHOD_REFERENCE_TYPE_ARGUMENT:
		raw |= int(c.b[offset+3]) << 16
		return raw & typereference.TypeArgumentTargetMask, offset + 4, nil
	default:
		return 0, 0, newDecodeError(offset, BadTypeAnnotationTarget, "target_type %#x outside Code attribute", sort)
	}
}

// visitTypeAnnotations walks a RuntimeVisible/InvisibleTypeAnnotations
// attribute body whose target_info is known to never be a local_var_target
// (i.e. one attached to a class, field, record component, or a method
// outside its Code attribute) and replays it as host.VisitTypeAnnotation
// calls (spec.md §4.9).
func (c *ClassReader) visitTypeAnnotations(host annotationHost, annotationsOffset int, visible bool, charBuffer []rune) error {
	if annotationsOffset == 0 {
		return nil
	}
	numAnnotations := c.readUnsignedShort(annotationsOffset)
	offset := annotationsOffset + 2
	for i := 0; i < numAnnotations; i++ {
		targetType, afterTarget, err := c.readTypeAnnotationTarget(offset)
		if err != nil {
			return err
		}
		pathLength := int(c.b[afterTarget])
		typePath := newTypePath(c.b, afterTarget)
		offset = afterTarget + 1 + pathLength*2
		descriptor := c.readUTF8(offset, charBuffer)
		offset += 2
		av := host.VisitTypeAnnotation(targetType, typePath, descriptor, visible)
		next, err := c.readElementValues(av, offset, true, charBuffer)
		if err != nil {
			return err
		}
		offset = next
	}
	return nil
}
