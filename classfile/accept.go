package classfile

import "github.com/gojvm/classfile/classfile/opcodes"

// Accept makes visitor visit the ClassFile structure this ClassReader was
// constructed from, using no attribute prototypes.
func (c *ClassReader) Accept(visitor ClassVisitor, parsingOptions int) error {
	return c.AcceptB(visitor, nil, parsingOptions)
}

// AcceptB makes visitor visit the ClassFile structure this ClassReader was
// constructed from. attributePrototypes extends attribute recognition for
// non-standard attributes (spec.md §4.3); parsingOptions is a bit set of
// the Skip*/Expand* flags.
func (c *ClassReader) AcceptB(visitor ClassVisitor, attributePrototypes []AttributePrototype, parsingOptions int) error {
	ctx := newContext(attributePrototypes, parsingOptions, make([]rune, c.maxStringLength))
	charBuffer := ctx.charBuffer

	currentOffset := c.header
	accessFlags := c.readUnsignedShort(currentOffset)
	thisClass := c.readClass(currentOffset+2, charBuffer)
	ctx.currentClassName = thisClass
	superClass := c.readClass(currentOffset+4, charBuffer)
	interfaces := make([]string, c.readUnsignedShort(currentOffset+6))
	currentOffset += 8
	for i := range interfaces {
		interfaces[i] = c.readClass(currentOffset, charBuffer)
		currentOffset += 2
	}

	var (
		innerClassesOffset                    int
		enclosingMethodOffset                 int
		signature                             string
		sourceFile                            string
		sourceDebugExtension                  string
		runtimeVisibleAnnotationsOffset        int
		runtimeInvisibleAnnotationsOffset      int
		runtimeVisibleTypeAnnotationsOffset    int
		runtimeInvisibleTypeAnnotationsOffset  int
		moduleOffset                          int
		modulePackagesOffset                  int
		moduleMainClass                       string
		nestHostClass                         string
		nestMembersOffset                     int
		permittedSubclassesOffset             int
		recordOffset                          int
	)
	var nonStandardAttributes []*Attribute

	currentAttributeOffset := c.getFirstAttributeOffset()
	numAttributes := c.readUnsignedShort(currentAttributeOffset - 2)
	for i := 0; i < numAttributes; i++ {
		attributeName := c.readUTF8(currentAttributeOffset, charBuffer)
		attributeLength := c.readInt(currentAttributeOffset + 2)
		attributeContentOffset := currentAttributeOffset + 6
		if attributeContentOffset+attributeLength > len(c.b) {
			return newDecodeError(attributeContentOffset, TruncatedInput, "class attribute %q exceeds buffer", attributeName)
		}

		switch attributeName {
		case "SourceFile":
			sourceFile = c.readUTF8(attributeContentOffset, charBuffer)
		case "InnerClasses":
			innerClassesOffset = attributeContentOffset
		case "EnclosingMethod":
			enclosingMethodOffset = attributeContentOffset
		case "Signature":
			signature = c.readUTF8(attributeContentOffset, charBuffer)
		case "RuntimeVisibleAnnotations":
			runtimeVisibleAnnotationsOffset = attributeContentOffset
		case "RuntimeVisibleTypeAnnotations":
			runtimeVisibleTypeAnnotationsOffset = attributeContentOffset
		case "Deprecated":
			accessFlags |= opcodes.ACC_DEPRECATED
		case "Synthetic":
			accessFlags |= opcodes.ACC_SYNTHETIC
		case "SourceDebugExtension":
			sourceDebugExtension = c.readUTFBytes(attributeContentOffset, attributeLength, make([]rune, attributeLength))
		case "RuntimeInvisibleAnnotations":
			runtimeInvisibleAnnotationsOffset = attributeContentOffset
		case "RuntimeInvisibleTypeAnnotations":
			runtimeInvisibleTypeAnnotationsOffset = attributeContentOffset
		case "Module":
			moduleOffset = attributeContentOffset
		case "ModuleMainClass":
			moduleMainClass = c.readClass(attributeContentOffset, charBuffer)
		case "ModulePackages":
			modulePackagesOffset = attributeContentOffset
		case "NestHost":
			nestHostClass = c.readClass(attributeContentOffset, charBuffer)
		case "NestMembers":
			nestMembersOffset = attributeContentOffset
		case "PermittedSubclasses":
			permittedSubclassesOffset = attributeContentOffset
		case "Record":
			recordOffset = attributeContentOffset
		case "BootstrapMethods":
			// Already located eagerly in the constructor; nothing to do here.
		default:
			attr, err := c.readAttribute(attributePrototypes, attributeName, attributeContentOffset, attributeLength, charBuffer, -1, nil)
			if err != nil {
				return err
			}
			nonStandardAttributes = append(nonStandardAttributes, attr)
		}
		currentAttributeOffset = attributeContentOffset + attributeLength
	}

	version := c.readInt(c.cpInfoOffsets[1] - 7)
	visitor.Visit(version, accessFlags, thisClass, signature, superClass, interfaces)

	if !ctx.skipDebug() && (sourceFile != "" || sourceDebugExtension != "") {
		visitor.VisitSource(sourceFile, sourceDebugExtension)
	}

	if moduleOffset != 0 {
		if err := c.readModule(visitor, ctx, moduleOffset, modulePackagesOffset, moduleMainClass); err != nil {
			return err
		}
	}

	if nestHostClass != "" {
		visitor.VisitNestHost(nestHostClass)
	}

	if enclosingMethodOffset != 0 {
		className := c.readClass(enclosingMethodOffset, charBuffer)
		methodIndex := c.readUnsignedShort(enclosingMethodOffset + 2)
		var name, descriptor string
		if methodIndex != 0 {
			nameAndTypeOffset := c.cpInfoOffsets[methodIndex]
			name = c.readUTF8(nameAndTypeOffset, charBuffer)
			descriptor = c.readUTF8(nameAndTypeOffset+2, charBuffer)
		}
		visitor.VisitOuterClass(className, name, descriptor)
	}

	if err := c.visitAnnotations(visitor, runtimeVisibleAnnotationsOffset, true, charBuffer); err != nil {
		return err
	}
	if err := c.visitAnnotations(visitor, runtimeInvisibleAnnotationsOffset, false, charBuffer); err != nil {
		return err
	}
	if err := c.visitTypeAnnotations(visitor, runtimeVisibleTypeAnnotationsOffset, true, charBuffer); err != nil {
		return err
	}
	if err := c.visitTypeAnnotations(visitor, runtimeInvisibleTypeAnnotationsOffset, false, charBuffer); err != nil {
		return err
	}

	for _, attr := range nonStandardAttributes {
		visitor.VisitAttribute(attr)
	}

	if nestMembersOffset != 0 {
		count := c.readUnsignedShort(nestMembersOffset)
		offset := nestMembersOffset + 2
		for i := 0; i < count; i++ {
			visitor.VisitNestMember(c.readClass(offset, charBuffer))
			offset += 2
		}
	}

	if permittedSubclassesOffset != 0 {
		count := c.readUnsignedShort(permittedSubclassesOffset)
		offset := permittedSubclassesOffset + 2
		for i := 0; i < count; i++ {
			visitor.VisitPermittedSubclass(c.readClass(offset, charBuffer))
			offset += 2
		}
	}

	if innerClassesOffset != 0 {
		numberOfClasses := c.readUnsignedShort(innerClassesOffset)
		offset := innerClassesOffset + 2
		for i := 0; i < numberOfClasses; i++ {
			visitor.VisitInnerClass(
				c.readClass(offset, charBuffer),
				c.readClass(offset+2, charBuffer),
				c.readClass(offset+4, charBuffer),
				c.readUnsignedShort(offset+6),
			)
			offset += 8
		}
	}

	if recordOffset != 0 {
		if err := c.readRecordComponents(visitor, ctx, recordOffset, charBuffer); err != nil {
			return err
		}
	}

	fieldsCount := c.readUnsignedShort(currentOffset)
	currentOffset += 2
	for ; fieldsCount > 0; fieldsCount-- {
		next, err := c.readField(visitor, ctx, currentOffset)
		if err != nil {
			return err
		}
		currentOffset = next
	}

	methodsCount := c.readUnsignedShort(currentOffset)
	currentOffset += 2
	for ; methodsCount > 0; methodsCount-- {
		next, err := c.readMethod(visitor, ctx, currentOffset)
		if err != nil {
			return err
		}
		currentOffset = next
	}

	visitor.VisitEnd()
	return nil
}
