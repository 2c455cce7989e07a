package classfile

// annotationHost is satisfied by every visitor type that can carry plain
// and type annotations: ClassVisitor, FieldVisitor, RecordComponentVisitor
// and MethodVisitor all declare the same two methods, so a single helper
// drives all four (spec.md §4.8/§4.9).
type annotationHost interface {
	VisitAnnotation(descriptor string, visible bool) AnnotationVisitor
	VisitTypeAnnotation(typeRef int, typePath *TypePath, descriptor string, visible bool) AnnotationVisitor
}

// visitAnnotations walks one RuntimeVisible/InvisibleAnnotations attribute
// body and replays it as host.VisitAnnotation calls. annotationsOffset == 0
// means the attribute was absent.
func (c *ClassReader) visitAnnotations(host annotationHost, annotationsOffset int, visible bool, charBuffer []rune) error {
	if annotationsOffset == 0 {
		return nil
	}
	numAnnotations := c.readUnsignedShort(annotationsOffset)
	offset := annotationsOffset + 2
	for i := 0; i < numAnnotations; i++ {
		descriptor := c.readUTF8(offset, charBuffer)
		offset += 2
		av := host.VisitAnnotation(descriptor, visible)
		next, err := c.readElementValues(av, offset, true, charBuffer)
		if err != nil {
			return err
		}
		offset = next
	}
	return nil
}

// readElementValues walks num_element_value_pairs (named == true, the
// top-level body of an annotation) or num_values (named == false, the body
// of an array-typed element_value) and returns the offset just past the
// structure. It keeps parsing (to compute the correct returned offset) even
// when av is nil, so a caller skipping an uninteresting annotation never
// loses track of the cursor (spec.md §4.8).
func (c *ClassReader) readElementValues(av AnnotationVisitor, offset int, named bool, charBuffer []rune) (int, error) {
	numValues := c.readUnsignedShort(offset)
	offset += 2
	for i := 0; i < numValues; i++ {
		elementName := ""
		if named {
			elementName = c.readUTF8(offset, charBuffer)
			offset += 2
		}
		next, err := c.readElementValue(av, offset, elementName, charBuffer)
		if err != nil {
			return 0, err
		}
		offset = next
	}
	if av != nil {
		av.VisitEnd()
	}
	return offset, nil
}

// readElementValue decodes one element_value (JVMS 4.7.16.1) and returns
// the offset just past it.
func (c *ClassReader) readElementValue(av AnnotationVisitor, offset int, elementName string, charBuffer []rune) (int, error) {
	tag := c.b[offset]
	offset++
	switch tag {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z':
		constIndex := c.readUnsignedShort(offset)
		value, err := c.readConst(constIndex, charBuffer)
		if err != nil {
			return 0, err
		}
		if av != nil {
			av.Visit(elementName, coercePrimitiveElementValue(tag, value))
		}
		return offset + 2, nil
	case 's':
		// Unlike the constant tags B/C/D/F/I/J/S/Z, 's' indexes a
		// CONSTANT_Utf8 entry directly, not a CONSTANT_String entry
		// wrapping one.
		constIndex := c.readUnsignedShort(offset)
		if av != nil {
			av.Visit(elementName, c.readUTF(constIndex, charBuffer))
		}
		return offset + 2, nil
	case 'e':
		typeDescriptor := c.readUTF8(offset, charBuffer)
		constName := c.readUTF8(offset+2, charBuffer)
		if av != nil {
			av.VisitEnum(elementName, typeDescriptor, constName)
		}
		return offset + 4, nil
	case 'c':
		classDescriptor := c.readUTF8(offset, charBuffer)
		if av != nil {
			av.Visit(elementName, NewFieldType(classDescriptor))
		}
		return offset + 2, nil
	case '@':
		annotationDescriptor := c.readUTF8(offset, charBuffer)
		offset += 2
		var nested AnnotationVisitor
		if av != nil {
			nested = av.VisitAnnotation(elementName, annotationDescriptor)
		}
		return c.readElementValues(nested, offset, true, charBuffer)
	case '[':
		numValues := c.readUnsignedShort(offset)
		if numValues > 0 {
			switch c.b[offset+2] {
			case 'B', 'Z', 'S', 'C', 'I', 'J', 'F', 'D':
				return c.readPrimitiveElementValueArray(av, offset, elementName, c.b[offset+2], numValues, charBuffer)
			}
		}
		var arr AnnotationVisitor
		if av != nil {
			arr = av.VisitArray(elementName)
		}
		next, err := c.readElementValues(arr, offset, false, charBuffer)
		if err != nil {
			return 0, err
		}
		return next, nil
	default:
		return 0, newDecodeError(offset-1, BadAnnotationValueTag, "element_value tag %q", string(tag))
	}
}

// readPrimitiveElementValueArray decodes the body of an element_value array
// whose first entry carries a primitive tag (spec.md §4.8's eight
// primitive-array fast paths). Unlike the generic array path, it reads all
// num_values entries itself and replays them as a single av.Visit call
// carrying the materialized Go slice, instead of one VisitArray plus
// num_values per-element Visit calls.
func (c *ClassReader) readPrimitiveElementValueArray(av AnnotationVisitor, offset int, elementName string, tag byte, numValues int, charBuffer []rune) (int, error) {
	pos := offset + 2
	var value interface{}
	switch tag {
	case 'B':
		out := make([]int8, numValues)
		for i := range out {
			v, err := c.readConst(c.readUnsignedShort(pos+1), charBuffer)
			if err != nil {
				return 0, err
			}
			out[i] = int8(v.(int32))
			pos += 3
		}
		value = out
	case 'Z':
		out := make([]bool, numValues)
		for i := range out {
			v, err := c.readConst(c.readUnsignedShort(pos+1), charBuffer)
			if err != nil {
				return 0, err
			}
			out[i] = v.(int32) != 0
			pos += 3
		}
		value = out
	case 'S':
		out := make([]int16, numValues)
		for i := range out {
			v, err := c.readConst(c.readUnsignedShort(pos+1), charBuffer)
			if err != nil {
				return 0, err
			}
			out[i] = int16(v.(int32))
			pos += 3
		}
		value = out
	case 'C':
		out := make([]rune, numValues)
		for i := range out {
			v, err := c.readConst(c.readUnsignedShort(pos+1), charBuffer)
			if err != nil {
				return 0, err
			}
			out[i] = rune(v.(int32))
			pos += 3
		}
		value = out
	case 'I':
		out := make([]int32, numValues)
		for i := range out {
			v, err := c.readConst(c.readUnsignedShort(pos+1), charBuffer)
			if err != nil {
				return 0, err
			}
			out[i] = v.(int32)
			pos += 3
		}
		value = out
	case 'J':
		out := make([]int64, numValues)
		for i := range out {
			v, err := c.readConst(c.readUnsignedShort(pos+1), charBuffer)
			if err != nil {
				return 0, err
			}
			out[i] = v.(int64)
			pos += 3
		}
		value = out
	case 'F':
		out := make([]float32, numValues)
		for i := range out {
			v, err := c.readConst(c.readUnsignedShort(pos+1), charBuffer)
			if err != nil {
				return 0, err
			}
			out[i] = v.(float32)
			pos += 3
		}
		value = out
	case 'D':
		out := make([]float64, numValues)
		for i := range out {
			v, err := c.readConst(c.readUnsignedShort(pos+1), charBuffer)
			if err != nil {
				return 0, err
			}
			out[i] = v.(float64)
			pos += 3
		}
		value = out
	}
	if av != nil {
		av.Visit(elementName, value)
	}
	return pos, nil
}

// coercePrimitiveElementValue narrows the int32/float32/int64/float64/string
// const value resolved from the constant pool to the Go type matching the
// element_value tag (JVMS 4.7.16.1, Table 4.7.16.1-A).
func coercePrimitiveElementValue(tag byte, value interface{}) interface{} {
	switch tag {
	case 'B':
		return int8(value.(int32))
	case 'C':
		return rune(value.(int32))
	case 'S':
		return int16(value.(int32))
	case 'Z':
		return value.(int32) != 0
	default: // D, F, I, J already hold the right Go type.
		return value
	}
}

// readParameterAnnotations walks a RuntimeVisible/InvisibleParameterAnnotations
// attribute body (JVMS 4.7.18/4.7.19) and replays it against mv.
func (c *ClassReader) readParameterAnnotations(mv MethodVisitor, offset int, visible bool, charBuffer []rune) error {
	numParameters := int(c.readByte(offset))
	mv.VisitAnnotableParameterCount(numParameters, visible)
	offset++
	for parameter := 0; parameter < numParameters; parameter++ {
		numAnnotations := c.readUnsignedShort(offset)
		offset += 2
		for i := 0; i < numAnnotations; i++ {
			descriptor := c.readUTF8(offset, charBuffer)
			offset += 2
			av := mv.VisitParameterAnnotation(parameter, descriptor, visible)
			next, err := c.readElementValues(av, offset, true, charBuffer)
			if err != nil {
				return err
			}
			offset = next
		}
	}
	return nil
}
