package classfile

import "github.com/gojvm/classfile/classfile/opcodes"

// readField decodes one field_info structure (JVMS 4.5) starting at offset
// and replays it as a VisitField call (and the attribute walk inside it),
// returning the offset of the next field_info / methods_count field.
func (c *ClassReader) readField(visitor ClassVisitor, ctx *Context, offset int) (int, error) {
	charBuffer := ctx.charBuffer
	accessFlags := c.readUnsignedShort(offset)
	name := c.readUTF8(offset+2, charBuffer)
	descriptor := c.readUTF8(offset+4, charBuffer)
	offset += 6

	var (
		signature                            string
		constantValue                        interface{}
		runtimeVisibleAnnotationsOffset       int
		runtimeInvisibleAnnotationsOffset     int
		runtimeVisibleTypeAnnotationsOffset   int
		runtimeInvisibleTypeAnnotationsOffset int
	)
	var nonStandardAttributes []*Attribute

	attributesCount := c.readUnsignedShort(offset)
	offset += 2
	for i := 0; i < attributesCount; i++ {
		attributeName := c.readUTF8(offset, charBuffer)
		attributeLength := c.readInt(offset + 2)
		attributeContentOffset := offset + 6
		if attributeContentOffset+attributeLength > len(c.b) {
			return 0, newDecodeError(attributeContentOffset, TruncatedInput, "field attribute %q exceeds buffer", attributeName)
		}

		switch attributeName {
		case "ConstantValue":
			constIndex := c.readUnsignedShort(attributeContentOffset)
			value, err := c.readConst(constIndex, charBuffer)
			if err != nil {
				return 0, err
			}
			constantValue = value
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
		case "RuntimeVisibleTypeAnnotations":
			runtimeVisibleTypeAnnotationsOffset = attributeContentOffset
		case "RuntimeInvisibleTypeAnnotations":
			runtimeInvisibleTypeAnnotationsOffset = attributeContentOffset
		default:
			attr, err := c.readAttribute(ctx.attributePrototypes, attributeName, attributeContentOffset, attributeLength, charBuffer, -1, nil)
			if err != nil {
				return 0, err
			}
			nonStandardAttributes = append(nonStandardAttributes, attr)
		}
		offset = attributeContentOffset + attributeLength
	}

	fv := visitor.VisitField(accessFlags, name, descriptor, signature, constantValue)
	if fv != nil {
		if err := c.visitAnnotations(fv, runtimeVisibleAnnotationsOffset, true, charBuffer); err != nil {
			return 0, err
		}
		if err := c.visitAnnotations(fv, runtimeInvisibleAnnotationsOffset, false, charBuffer); err != nil {
			return 0, err
		}
		if err := c.visitTypeAnnotations(fv, runtimeVisibleTypeAnnotationsOffset, true, charBuffer); err != nil {
			return 0, err
		}
		if err := c.visitTypeAnnotations(fv, runtimeInvisibleTypeAnnotationsOffset, false, charBuffer); err != nil {
			return 0, err
		}
		for _, attr := range nonStandardAttributes {
			fv.VisitAttribute(attr)
		}
		fv.VisitEnd()
	}

	return offset, nil
}

// readRecordComponents decodes the components of a Record attribute (JVMS
// 4.7.30), whose content begins at offset with components_count.
func (c *ClassReader) readRecordComponents(visitor ClassVisitor, ctx *Context, offset int, charBuffer []rune) error {
	componentsCount := c.readUnsignedShort(offset)
	offset += 2
	for i := 0; i < componentsCount; i++ {
		next, err := c.readRecordComponent(visitor, ctx, offset)
		if err != nil {
			return err
		}
		offset = next
	}
	return nil
}

func (c *ClassReader) readRecordComponent(visitor ClassVisitor, ctx *Context, offset int) (int, error) {
	charBuffer := ctx.charBuffer
	name := c.readUTF8(offset, charBuffer)
	descriptor := c.readUTF8(offset+2, charBuffer)
	offset += 4

	var (
		signature                             string
		runtimeVisibleAnnotationsOffset        int
		runtimeInvisibleAnnotationsOffset      int
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
			return 0, newDecodeError(attributeContentOffset, TruncatedInput, "record component attribute %q exceeds buffer", attributeName)
		}
		switch attributeName {
		case "Signature":
			signature = c.readUTF8(attributeContentOffset, charBuffer)
		case "RuntimeVisibleAnnotations":
			runtimeVisibleAnnotationsOffset = attributeContentOffset
		case "RuntimeInvisibleAnnotations":
			runtimeInvisibleAnnotationsOffset = attributeContentOffset
		case "RuntimeVisibleTypeAnnotations":
			runtimeVisibleTypeAnnotationsOffset = attributeContentOffset
		case "RuntimeInvisibleTypeAnnotations":
			runtimeInvisibleTypeAnnotationsOffset = attributeContentOffset
		default:
			attr, err := c.readAttribute(ctx.attributePrototypes, attributeName, attributeContentOffset, attributeLength, charBuffer, -1, nil)
			if err != nil {
				return 0, err
			}
			nonStandardAttributes = append(nonStandardAttributes, attr)
		}
		offset = attributeContentOffset + attributeLength
	}

	rcv := visitor.VisitRecordComponent(name, descriptor, signature)
	if rcv != nil {
		if err := c.visitAnnotations(rcv, runtimeVisibleAnnotationsOffset, true, charBuffer); err != nil {
			return 0, err
		}
		if err := c.visitAnnotations(rcv, runtimeInvisibleAnnotationsOffset, false, charBuffer); err != nil {
			return 0, err
		}
		if err := c.visitTypeAnnotations(rcv, runtimeVisibleTypeAnnotationsOffset, true, charBuffer); err != nil {
			return 0, err
		}
		if err := c.visitTypeAnnotations(rcv, runtimeInvisibleTypeAnnotationsOffset, false, charBuffer); err != nil {
			return 0, err
		}
		for _, attr := range nonStandardAttributes {
			rcv.VisitAttribute(attr)
		}
		rcv.VisitEnd()
	}

	return offset, nil
}
