package classfile

import "github.com/gojvm/classfile/classfile/opcodes"

// readMethod decodes one method_info structure (JVMS 4.6) starting at
// offset and replays it as a VisitMethod call plus the nested attribute
// walk (MethodParameters, AnnotationDefault, annotations, parameter
// annotations, Code), returning the offset of the next method_info /
// class-attributes_count field.
func (c *ClassReader) readMethod(visitor ClassVisitor, ctx *Context, offset int) (int, error) {
	charBuffer := ctx.charBuffer
	accessFlags := c.readUnsignedShort(offset)
	name := c.readUTF8(offset+2, charBuffer)
	descriptor := c.readUTF8(offset+4, charBuffer)
	offset += 6

	var (
		signature                             string
		exceptionsOffset                      int
		methodParametersOffset                int
		annotationDefaultOffset               int
		codeOffset                            int
		runtimeVisibleAnnotationsOffset        int
		runtimeInvisibleAnnotationsOffset      int
		runtimeVisibleParameterAnnotations     int
		runtimeInvisibleParameterAnnotations   int
		runtimeVisibleTypeAnnotationsOffset    int
		runtimeInvisibleTypeAnnotationsOffset  int
	)
	var nonStandardAttributes []*Attribute

	attributesCount := c.readUnsignedShort(offset)
	offset += 2
	for i := 0; i < attributesCount; i++ {
		attributeName := c.readUTF8(offset, charBuffer)
		attributeLength := c.readInt(offset + 2)
		attributeContentOffset := offset + 6
		if attributeContentOffset+attributeLength > len(c.b) {
			return 0, newDecodeError(attributeContentOffset, TruncatedInput, "method attribute %q exceeds buffer", attributeName)
		}

		switch attributeName {
		case "Code":
			if !ctx.skipCode() {
				codeOffset = attributeContentOffset
			}
		case "Exceptions":
			exceptionsOffset = attributeContentOffset
		case "Synthetic":
			accessFlags |= opcodes.ACC_SYNTHETIC
		case "Deprecated":
			accessFlags |= opcodes.ACC_DEPRECATED
		case "Signature":
			signature = c.readUTF8(attributeContentOffset, charBuffer)
		case "RuntimeVisibleAnnotations":
			runtimeVisibleAnnotationsOffset = attributeContentOffset
		case "RuntimeInvisibleAnnotations":
			runtimeInvisibleAnnotationsOffset = attributeContentOffset
		case "RuntimeVisibleParameterAnnotations":
			runtimeVisibleParameterAnnotations = attributeContentOffset
		case "RuntimeInvisibleParameterAnnotations":
			runtimeInvisibleParameterAnnotations = attributeContentOffset
		case "RuntimeVisibleTypeAnnotations":
			runtimeVisibleTypeAnnotationsOffset = attributeContentOffset
		case "RuntimeInvisibleTypeAnnotations":
			runtimeInvisibleTypeAnnotationsOffset = attributeContentOffset
		case "AnnotationDefault":
			annotationDefaultOffset = attributeContentOffset
		case "MethodParameters":
			if !ctx.skipDebug() {
				methodParametersOffset = attributeContentOffset
			}
		default:
			attr, err := c.readAttribute(ctx.attributePrototypes, attributeName, attributeContentOffset, attributeLength, charBuffer, -1, nil)
			if err != nil {
				return 0, err
			}
			nonStandardAttributes = append(nonStandardAttributes, attr)
		}
		offset = attributeContentOffset + attributeLength
	}

	var exceptions []string
	if exceptionsOffset != 0 {
		count := c.readUnsignedShort(exceptionsOffset)
		exceptions = make([]string, count)
		eOffset := exceptionsOffset + 2
		for i := 0; i < count; i++ {
			exceptions[i] = c.readClass(eOffset, charBuffer)
			eOffset += 2
		}
	}

	mv := visitor.VisitMethod(accessFlags, name, descriptor, signature, exceptions)
	if mv == nil {
		return offset, nil
	}

	if methodParametersOffset != 0 {
		parameterCount := int(c.readByte(methodParametersOffset))
		pOffset := methodParametersOffset + 1
		for i := 0; i < parameterCount; i++ {
			parameterName := c.readUTF8(pOffset, charBuffer)
			parameterAccessFlags := c.readUnsignedShort(pOffset + 2)
			mv.VisitParameter(parameterName, parameterAccessFlags)
			pOffset += 4
		}
	}

	if annotationDefaultOffset != 0 {
		av := mv.VisitAnnotationDefault()
		if _, err := c.readElementValue(av, annotationDefaultOffset, "", charBuffer); err != nil {
			return 0, err
		}
		if av != nil {
			av.VisitEnd()
		}
	}

	if err := c.visitAnnotations(mv, runtimeVisibleAnnotationsOffset, true, charBuffer); err != nil {
		return 0, err
	}
	if err := c.visitAnnotations(mv, runtimeInvisibleAnnotationsOffset, false, charBuffer); err != nil {
		return 0, err
	}
	if err := c.visitTypeAnnotations(mv, runtimeVisibleTypeAnnotationsOffset, true, charBuffer); err != nil {
		return 0, err
	}
	if err := c.visitTypeAnnotations(mv, runtimeInvisibleTypeAnnotationsOffset, false, charBuffer); err != nil {
		return 0, err
	}
	if runtimeVisibleParameterAnnotations != 0 {
		if err := c.readParameterAnnotations(mv, runtimeVisibleParameterAnnotations, true, charBuffer); err != nil {
			return 0, err
		}
	}
	if runtimeInvisibleParameterAnnotations != 0 {
		if err := c.readParameterAnnotations(mv, runtimeInvisibleParameterAnnotations, false, charBuffer); err != nil {
			return 0, err
		}
	}
	for _, attr := range nonStandardAttributes {
		mv.VisitAttribute(attr)
	}

	if codeOffset != 0 {
		ctx.currentMethodAccessFlags = accessFlags
		ctx.currentMethodName = name
		ctx.currentMethodDescriptor = descriptor
		if err := c.readCode(mv, ctx, codeOffset); err != nil {
			return 0, err
		}
	}

	mv.VisitEnd()
	return offset, nil
}
