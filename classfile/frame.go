package classfile

import "github.com/gojvm/classfile/classfile/opcodes"

// advanceFrame folds one offset_delta into ctx.currentFrameOffset following
// the chaining rule of JVMS 4.7.4: the first frame's offset is its
// offset_delta verbatim, every subsequent frame's is the previous frame's
// offset plus offset_delta plus one.
func (ctx *Context) advanceFrame(delta int) {
	if ctx.currentFrameOffset == -1 {
		ctx.currentFrameOffset = delta
	} else {
		ctx.currentFrameOffset += delta + 1
	}
}

// readVerificationTypeInfo decodes one verification_type_info entry (JVMS
// 4.7.4) starting at offset and returns it together with the offset just
// past it. Uninitialized entries intern a Label at the originating `new`
// instruction's bytecode offset rather than keeping the raw offset.
func (c *ClassReader) readVerificationTypeInfo(offset int, labels []*Label, charBuffer []rune) (VerificationType, int, error) {
	tag := c.b[offset]
	offset++
	switch tag {
	case itemTop:
		return primitiveVerificationType(VTTop), offset, nil
	case itemInteger:
		return primitiveVerificationType(VTInteger), offset, nil
	case itemFloat:
		return primitiveVerificationType(VTFloat), offset, nil
	case itemLong:
		return primitiveVerificationType(VTLong), offset, nil
	case itemDouble:
		return primitiveVerificationType(VTDouble), offset, nil
	case itemNull:
		return primitiveVerificationType(VTNull), offset, nil
	case itemUninitializedThis:
		return primitiveVerificationType(VTUninitializedThis), offset, nil
	case itemObject:
		className := c.readClass(offset, charBuffer)
		return objectVerificationType(className), offset + 2, nil
	case itemUninitialized:
		bytecodeOffset := c.readUnsignedShort(offset)
		label := createLabel(bytecodeOffset, labels)
		return uninitializedVerificationType(label), offset + 2, nil
	default:
		return VerificationType{}, 0, newDecodeError(offset-1, BadFrameType, "verification_type_info tag %d", tag)
	}
}

// readStackMapFrame decodes one stack_map_frame entry (JVMS 4.7.4) starting
// at offset, folding it into ctx's incremental frame state, and returns the
// offset just past it. labels is the enclosing method's label array; an
// ITEM_Uninitialized local or stack entry interns a label there.
func (c *ClassReader) readStackMapFrame(offset int, ctx *Context, labels []*Label, charBuffer []rune) (int, error) {
	frameType := int(c.b[offset])
	offset++
	switch {
	case frameType < 64: // same_frame
		ctx.advanceFrame(frameType)
		ctx.currentFrameType = opcodes.F_SAME
		ctx.currentFrameStackCount = 0
	case frameType < 128: // same_locals_1_stack_item_frame
		ctx.advanceFrame(frameType - 64)
		vt, next, err := c.readVerificationTypeInfo(offset, labels, charBuffer)
		if err != nil {
			return 0, err
		}
		offset = next
		ctx.currentFrameType = opcodes.F_SAME1
		ctx.currentFrameStackCount = 1
		ctx.currentFrameStackTypes = []VerificationType{vt}
	case frameType < 247:
		return 0, newDecodeError(offset-1, BadFrameType, "reserved frame_type %d", frameType)
	case frameType == 247: // same_locals_1_stack_item_frame_extended
		delta := c.readUnsignedShort(offset)
		offset += 2
		ctx.advanceFrame(delta)
		vt, next, err := c.readVerificationTypeInfo(offset, labels, charBuffer)
		if err != nil {
			return 0, err
		}
		offset = next
		ctx.currentFrameType = opcodes.F_SAME1
		ctx.currentFrameStackCount = 1
		ctx.currentFrameStackTypes = []VerificationType{vt}
	case frameType <= 250: // chop_frame
		delta := c.readUnsignedShort(offset)
		offset += 2
		ctx.advanceFrame(delta)
		k := 251 - frameType
		ctx.currentFrameType = opcodes.F_CHOP
		ctx.currentFrameLocalCountDelta = k
		ctx.currentFrameLocalCount -= k
		ctx.currentFrameLocalTypes = ctx.currentFrameLocalTypes[:ctx.currentFrameLocalCount]
		ctx.currentFrameStackCount = 0
	case frameType == 251: // same_frame_extended
		delta := c.readUnsignedShort(offset)
		offset += 2
		ctx.advanceFrame(delta)
		ctx.currentFrameType = opcodes.F_SAME
		ctx.currentFrameStackCount = 0
	case frameType <= 254: // append_frame
		delta := c.readUnsignedShort(offset)
		offset += 2
		ctx.advanceFrame(delta)
		k := frameType - 251
		ctx.currentFrameType = opcodes.F_APPEND
		ctx.currentFrameLocalCountDelta = k
		for i := 0; i < k; i++ {
			vt, next, err := c.readVerificationTypeInfo(offset, labels, charBuffer)
			if err != nil {
				return 0, err
			}
			offset = next
			ctx.currentFrameLocalTypes = append(ctx.currentFrameLocalTypes[:ctx.currentFrameLocalCount], vt)
			ctx.currentFrameLocalCount++
		}
		ctx.currentFrameStackCount = 0
	default: // full_frame, frameType == 255
		delta := c.readUnsignedShort(offset)
		offset += 2
		ctx.advanceFrame(delta)
		numLocals := c.readUnsignedShort(offset)
		offset += 2
		locals := make([]VerificationType, numLocals)
		for i := 0; i < numLocals; i++ {
			vt, next, err := c.readVerificationTypeInfo(offset, labels, charBuffer)
			if err != nil {
				return 0, err
			}
			offset = next
			locals[i] = vt
		}
		numStack := c.readUnsignedShort(offset)
		offset += 2
		stack := make([]VerificationType, numStack)
		for i := 0; i < numStack; i++ {
			vt, next, err := c.readVerificationTypeInfo(offset, labels, charBuffer)
			if err != nil {
				return 0, err
			}
			offset = next
			stack[i] = vt
		}
		ctx.currentFrameType = opcodes.F_FULL
		ctx.currentFrameLocalCountDelta = numLocals
		ctx.currentFrameLocalCount = numLocals
		ctx.currentFrameLocalTypes = locals
		ctx.currentFrameStackCount = numStack
		ctx.currentFrameStackTypes = stack
	}
	return offset, nil
}

// readLegacyStackMapFrame decodes one entry of the pre-Java-6 "StackMap"
// attribute (never standardized in the JVMS proper; superseded by
// StackMapTable). Every entry has the full_frame shape with an absolute
// (not delta-chained) offset, and there is no frame_type byte. An entry
// whose offset is lower than the previous entry's is rejected with
// BadFrameType.
func (c *ClassReader) readLegacyStackMapFrame(offset int, ctx *Context, labels []*Label, charBuffer []rune) (int, error) {
	absoluteOffset := c.readUnsignedShort(offset)
	offset += 2
	if absoluteOffset < ctx.currentFrameOffset {
		return 0, newDecodeError(offset-2, BadFrameType, "legacy StackMap entry at %d is out of order after %d", absoluteOffset, ctx.currentFrameOffset)
	}
	Logger.Printf("legacy StackMap frame at %d assumed sorted", absoluteOffset)
	ctx.currentFrameOffset = absoluteOffset
	ctx.currentFrameType = opcodes.F_FULL

	numLocals := c.readUnsignedShort(offset)
	offset += 2
	locals := make([]VerificationType, numLocals)
	for i := 0; i < numLocals; i++ {
		vt, next, err := c.readVerificationTypeInfo(offset, labels, charBuffer)
		if err != nil {
			return 0, err
		}
		offset = next
		locals[i] = vt
	}
	numStack := c.readUnsignedShort(offset)
	offset += 2
	stack := make([]VerificationType, numStack)
	for i := 0; i < numStack; i++ {
		vt, next, err := c.readVerificationTypeInfo(offset, labels, charBuffer)
		if err != nil {
			return 0, err
		}
		offset = next
		stack[i] = vt
	}
	ctx.currentFrameLocalCount = numLocals
	ctx.currentFrameLocalCountDelta = numLocals
	ctx.currentFrameLocalTypes = locals
	ctx.currentFrameStackCount = numStack
	ctx.currentFrameStackTypes = stack
	return offset, nil
}

// computeImplicitFrame synthesizes the method entry frame from its
// descriptor and access flags (JVMS 4.10.1.6, "Stack Map Frame
// Representation"): the receiver ( UninitializedThis in a constructor) plus
// one local per formal parameter. Used when ExpandFrames is set, so the
// first explicit frame's chop/append deltas always have a base to work
// from even for a method with no StackMapTable entry at offset 0.
func (c *ClassReader) computeImplicitFrame(ctx *Context) {
	locals := make([]VerificationType, 0, 4)
	if ctx.currentMethodAccessFlags&opcodes.ACC_STATIC == 0 {
		if ctx.currentMethodName == "<init>" {
			locals = append(locals, primitiveVerificationType(VTUninitializedThis))
		} else {
			locals = append(locals, objectVerificationType(ctx.currentClassName))
		}
	}
	for _, t := range NewMethodType(ctx.currentMethodDescriptor).ArgumentTypes() {
		switch t.Sort() {
		case Boolean, Char, Byte, Short, Int:
			locals = append(locals, primitiveVerificationType(VTInteger))
		case Float:
			locals = append(locals, primitiveVerificationType(VTFloat))
		case Long:
			locals = append(locals, primitiveVerificationType(VTLong))
		case Double:
			locals = append(locals, primitiveVerificationType(VTDouble))
		case Array, Object:
			locals = append(locals, objectVerificationType(t.InternalName()))
		}
	}
	ctx.currentFrameLocalTypes = locals
	ctx.currentFrameLocalCount = len(locals)
	ctx.currentFrameStackCount = 0
	ctx.currentFrameStackTypes = nil
	ctx.currentFrameOffset = -1
	ctx.currentFrameType = opcodes.F_FULL
}
