package classfile

import (
	"github.com/gojvm/classfile/classfile/opcodes"
	"github.com/gojvm/classfile/classfile/symbol"
	"github.com/gojvm/classfile/classfile/typereference"
)

// codeTypeAnnotation is the pre-scanned, not-yet-emitted form of one
// RuntimeVisible/InvisibleTypeAnnotations entry found inside a Code
// attribute. Exactly one of the label fields applies, chosen by the
// target_type sort (spec.md §4.9): a local_var_target carries a table of
// (start, end, index) triples; a catch_target carries an
// exception_table_index; every other legal in-code sort names a single
// bytecode offset.
type codeTypeAnnotation struct {
	targetType          int
	typePath            *TypePath
	descriptor          string
	visible             bool
	elementValuesOffset int

	localVarStarts  []*Label
	localVarEnds    []*Label
	localVarIndices []int

	hasExceptionTableIndex bool
	exceptionTableIndex    int

	hasInstructionLabel bool
	instructionLabel     *Label
}

type exceptionTableEntry struct {
	start, end, handler *Label
	catchType            string
}

// readCode decodes a Code attribute body (JVMS 4.7.3) starting at offset
// (the max_stack field) and drives mv through VisitCode, the try/catch
// table, frames, instructions and local variable tables, finishing with
// VisitMaxs/VisitEnd's prerequisites (spec.md §4.6).
func (c *ClassReader) readCode(mv MethodVisitor, ctx *Context, offset int) error {
	charBuffer := ctx.charBuffer
	maxStack := c.readUnsignedShort(offset)
	maxLocals := c.readUnsignedShort(offset + 2)
	codeLength := c.readInt(offset + 4)
	bytecodeStart := offset + 8
	bytecodeEnd := bytecodeStart + codeLength
	if bytecodeEnd > len(c.b) {
		return newDecodeError(bytecodeStart, TruncatedInput, "code array of length %d exceeds buffer", codeLength)
	}

	labels := make([]*Label, codeLength+1)
	ctx.currentMethodLabels = labels

	mv.VisitCode()

	// Exception table.
	exceptionTableLength := c.readUnsignedShort(bytecodeEnd)
	exceptions := make([]exceptionTableEntry, exceptionTableLength)
	cursor := bytecodeEnd + 2
	for i := 0; i < exceptionTableLength; i++ {
		startPc := c.readUnsignedShort(cursor)
		endPc := c.readUnsignedShort(cursor + 2)
		handlerPc := c.readUnsignedShort(cursor + 4)
		exceptions[i] = exceptionTableEntry{
			start:     createLabel(startPc, labels),
			end:       createLabel(endPc, labels),
			handler:   createLabel(handlerPc, labels),
			catchType: c.readClass(cursor+6, charBuffer),
		}
		cursor += 8
	}

	// Code attributes (LineNumberTable, LocalVariable(Type)Table,
	// StackMapTable/StackMap, type annotations, non-standard).
	attributesCount := c.readUnsignedShort(cursor)
	cursor += 2
	var (
		stackMapTableOffset                  int
		legacyStackMapOffset                  int
		lineNumberTableOffsets                []int
		localVariableTableOffsets             []int
		localVariableTypeTableOffsets          []int
		runtimeVisibleTypeAnnotationsOffset   int
		runtimeInvisibleTypeAnnotationsOffset int
	)
	var nonStandardAttributes []*Attribute
	for i := 0; i < attributesCount; i++ {
		attributeName := c.readUTF8(cursor, charBuffer)
		attributeLength := c.readInt(cursor + 2)
		contentOffset := cursor + 6
		if contentOffset+attributeLength > len(c.b) {
			return newDecodeError(contentOffset, TruncatedInput, "code attribute %q exceeds buffer", attributeName)
		}
		switch attributeName {
		case "StackMapTable":
			if !ctx.skipFrames() {
				stackMapTableOffset = contentOffset
			}
		case "StackMap":
			if !ctx.skipFrames() {
				legacyStackMapOffset = contentOffset
			}
		case "LineNumberTable":
			if !ctx.skipDebug() {
				lineNumberTableOffsets = append(lineNumberTableOffsets, contentOffset)
			}
		case "LocalVariableTable":
			if !ctx.skipDebug() {
				localVariableTableOffsets = append(localVariableTableOffsets, contentOffset)
			}
		case "LocalVariableTypeTable":
			if !ctx.skipDebug() {
				localVariableTypeTableOffsets = append(localVariableTypeTableOffsets, contentOffset)
			}
		case "RuntimeVisibleTypeAnnotations":
			runtimeVisibleTypeAnnotationsOffset = contentOffset
		case "RuntimeInvisibleTypeAnnotations":
			runtimeInvisibleTypeAnnotationsOffset = contentOffset
		default:
			attr, err := c.readAttribute(ctx.attributePrototypes, attributeName, contentOffset, attributeLength, charBuffer, bytecodeStart, labels)
			if err != nil {
				return err
			}
			nonStandardAttributes = append(nonStandardAttributes, attr)
		}
		cursor = contentOffset + attributeLength
	}

	for _, lntOffset := range lineNumberTableOffsets {
		count := c.readUnsignedShort(lntOffset)
		entryOffset := lntOffset + 2
		for i := 0; i < count; i++ {
			startPc := c.readUnsignedShort(entryOffset)
			lineNumber := c.readUnsignedShort(entryOffset + 2)
			createDebugLabel(startPc, labels)
			readLabel(startPc, labels).addLineNumber(lineNumber)
			entryOffset += 4
		}
	}
	for _, lvtOffset := range localVariableTableOffsets {
		count := c.readUnsignedShort(lvtOffset)
		entryOffset := lvtOffset + 2
		for i := 0; i < count; i++ {
			startPc := c.readUnsignedShort(entryOffset)
			length := c.readUnsignedShort(entryOffset + 2)
			createDebugLabel(startPc, labels)
			createDebugLabel(startPc+length, labels)
			entryOffset += 10
		}
	}
	localVariableTypeSignatures := map[[2]int]string{}
	for _, lvttOffset := range localVariableTypeTableOffsets {
		count := c.readUnsignedShort(lvttOffset)
		entryOffset := lvttOffset + 2
		for i := 0; i < count; i++ {
			startPc := c.readUnsignedShort(entryOffset)
			length := c.readUnsignedShort(entryOffset + 2)
			signature := c.readUTF8(entryOffset+6, charBuffer)
			index := c.readUnsignedShort(entryOffset + 8)
			createDebugLabel(startPc, labels)
			createDebugLabel(startPc+length, labels)
			localVariableTypeSignatures[[2]int{startPc, index}] = signature
			entryOffset += 10
		}
	}

	var codeAnnotations []*codeTypeAnnotation
	if runtimeVisibleTypeAnnotationsOffset != 0 {
		anns, err := c.readCodeTypeAnnotations(runtimeVisibleTypeAnnotationsOffset, true, labels, charBuffer)
		if err != nil {
			return err
		}
		codeAnnotations = append(codeAnnotations, anns...)
	}
	if runtimeInvisibleTypeAnnotationsOffset != 0 {
		anns, err := c.readCodeTypeAnnotations(runtimeInvisibleTypeAnnotationsOffset, false, labels, charBuffer)
		if err != nil {
			return err
		}
		codeAnnotations = append(codeAnnotations, anns...)
	}
	instructionAnnotations := map[*Label][]*codeTypeAnnotation{}
	exceptionAnnotationsByIndex := map[int][]*codeTypeAnnotation{}
	var localVarAnnotations []*codeTypeAnnotation
	for _, ann := range codeAnnotations {
		switch {
		case ann.hasInstructionLabel:
			instructionAnnotations[ann.instructionLabel] = append(instructionAnnotations[ann.instructionLabel], ann)
		case ann.hasExceptionTableIndex:
			exceptionAnnotationsByIndex[ann.exceptionTableIndex] = append(exceptionAnnotationsByIndex[ann.exceptionTableIndex], ann)
		default:
			localVarAnnotations = append(localVarAnnotations, ann)
		}
	}

	// Pass 1: discover every branch/switch target label.
	c.discoverLabels(bytecodeStart, bytecodeEnd, labels)

	// Try/catch blocks (and their type annotations) are visited before any
	// of the labels they reference (spec.md §5).
	for i, exc := range exceptions {
		mv.VisitTryCatchBlock(exc.start, exc.end, exc.handler, exc.catchType)
		for _, ann := range exceptionAnnotationsByIndex[i] {
			av := mv.VisitTryCatchAnnotation(ann.targetType, ann.typePath, ann.descriptor, ann.visible)
			if _, err := c.readElementValues(av, ann.elementValuesOffset, true, charBuffer); err != nil {
				return err
			}
		}
	}

	// Frame state initialization.
	var frameWalker *codeFrameWalker
	if stackMapTableOffset != 0 {
		count := c.readUnsignedShort(stackMapTableOffset)
		frameWalker = &codeFrameWalker{cursor: stackMapTableOffset + 2, remaining: count}
	} else if legacyStackMapOffset != 0 {
		count := c.readUnsignedShort(legacyStackMapOffset)
		frameWalker = &codeFrameWalker{cursor: legacyStackMapOffset + 2, remaining: count, legacy: true}
	}
	if frameWalker != nil {
		if ctx.expandFrames() {
			c.computeImplicitFrame(ctx)
		} else {
			ctx.currentFrameOffset = -1
		}
		if err := frameWalker.decodeNext(c, ctx, labels, charBuffer); err != nil {
			return err
		}
	}

	// Pass 2: replay instructions, labels, line numbers and frames in
	// bytecode order.
	currentOffset := bytecodeStart
	for currentOffset < bytecodeEnd {
		relOffset := currentOffset - bytecodeStart

		if label := labels[relOffset]; label != nil {
			mv.VisitLabel(label)
			if !ctx.skipDebug() && label.lineNumber != 0 {
				mv.VisitLineNumber(label.lineNumber, label)
				for _, ln := range label.otherLineNumbers {
					mv.VisitLineNumber(ln, label)
				}
			}
			for _, ann := range instructionAnnotations[label] {
				av := mv.VisitInsnAnnotation(ann.targetType, ann.typePath, ann.descriptor, ann.visible)
				if _, err := c.readElementValues(av, ann.elementValuesOffset, true, charBuffer); err != nil {
					return err
				}
			}
		}

		if frameWalker != nil && relOffset == ctx.currentFrameOffset {
			c.emitFrame(mv, ctx)
			if err := frameWalker.decodeNext(c, ctx, labels, charBuffer); err != nil {
				return err
			}
		}

		next, err := c.readInstruction(mv, ctx, currentOffset, bytecodeStart, labels, charBuffer)
		if err != nil {
			return err
		}
		currentOffset = next
	}
	if label := labels[codeLength]; label != nil {
		mv.VisitLabel(label)
	}

	for _, ann := range localVarAnnotations {
		av := mv.VisitLocalVariableAnnotation(ann.targetType, ann.typePath, ann.localVarStarts, ann.localVarEnds, ann.localVarIndices, ann.descriptor, ann.visible)
		if _, err := c.readElementValues(av, ann.elementValuesOffset, true, charBuffer); err != nil {
			return err
		}
	}

	if !ctx.skipDebug() {
		for _, lvtOffset := range localVariableTableOffsets {
			count := c.readUnsignedShort(lvtOffset)
			entryOffset := lvtOffset + 2
			for i := 0; i < count; i++ {
				startPc := c.readUnsignedShort(entryOffset)
				length := c.readUnsignedShort(entryOffset + 2)
				name := c.readUTF8(entryOffset+4, charBuffer)
				descriptor := c.readUTF8(entryOffset+6, charBuffer)
				index := c.readUnsignedShort(entryOffset + 8)
				signature := localVariableTypeSignatures[[2]int{startPc, index}]
				mv.VisitLocalVariable(name, descriptor, signature, labels[startPc], labels[startPc+length], index)
				entryOffset += 10
			}
		}
	}

	for _, attr := range nonStandardAttributes {
		mv.VisitAttribute(attr)
	}

	mv.VisitMaxs(maxStack, maxLocals)
	return nil
}

func (c *ClassReader) emitFrame(mv MethodVisitor, ctx *Context) {
	if ctx.expandFrames() {
		mv.VisitFrame(opcodes.F_NEW, ctx.currentFrameLocalCount, ctx.currentFrameLocalTypes[:ctx.currentFrameLocalCount], ctx.currentFrameStackCount, ctx.currentFrameStackTypes)
		return
	}
	var numLocal int
	var local []VerificationType
	var numStack int
	var stack []VerificationType
	switch ctx.currentFrameType {
	case opcodes.F_FULL:
		numLocal = ctx.currentFrameLocalCount
		local = ctx.currentFrameLocalTypes[:ctx.currentFrameLocalCount]
		numStack = ctx.currentFrameStackCount
		stack = ctx.currentFrameStackTypes
	case opcodes.F_APPEND:
		numLocal = ctx.currentFrameLocalCountDelta
		local = ctx.currentFrameLocalTypes[ctx.currentFrameLocalCount-ctx.currentFrameLocalCountDelta : ctx.currentFrameLocalCount]
	case opcodes.F_CHOP:
		numLocal = ctx.currentFrameLocalCountDelta
	case opcodes.F_SAME1:
		numStack = ctx.currentFrameStackCount
		stack = ctx.currentFrameStackTypes
	}
	mv.VisitFrame(ctx.currentFrameType, numLocal, local, numStack, stack)
}

// codeFrameWalker threads the StackMapTable/StackMap attribute cursor
// across successive calls from the main instruction loop, decoding one
// frame at a time only once the walk reaches its offset.
type codeFrameWalker struct {
	cursor    int
	remaining int
	legacy    bool
}

func (w *codeFrameWalker) decodeNext(c *ClassReader, ctx *Context, labels []*Label, charBuffer []rune) error {
	if w.remaining == 0 {
		return nil
	}
	var next int
	var err error
	if w.legacy {
		next, err = c.readLegacyStackMapFrame(w.cursor, ctx, labels, charBuffer)
	} else {
		next, err = c.readStackMapFrame(w.cursor, ctx, labels, charBuffer)
	}
	if err != nil {
		return err
	}
	w.cursor = next
	w.remaining--
	if ctx.currentFrameOffset >= 0 && ctx.currentFrameOffset < len(labels) {
		createLabel(ctx.currentFrameOffset, labels)
	}
	return nil
}

// discoverLabels is the label-discovery pass: it walks every instruction
// once, creating a non-debug Label at every branch and
// switch target, without calling any visitor method (spec.md §3, "two-pass
// bytecode walk").
func (c *ClassReader) discoverLabels(bytecodeStart, bytecodeEnd int, labels []*Label) {
	currentOffset := bytecodeStart
	for currentOffset < bytecodeEnd {
		relOffset := currentOffset - bytecodeStart
		opcode := int(c.b[currentOffset])
		switch {
		case opcode == opcodes.WIDE:
			if int(c.b[currentOffset+1]) == opcodes.IINC {
				currentOffset += 6
			} else {
				currentOffset += 4
			}
		case opcode == opcodes.TABLESWITCH:
			tsOffset := currentOffset + 1
			for (tsOffset-bytecodeStart)%4 != 0 {
				tsOffset++
			}
			createLabel(relOffset+c.readInt(tsOffset), labels)
			low := c.readInt(tsOffset + 4)
			high := c.readInt(tsOffset + 8)
			tsOffset += 12
			for i := 0; i < high-low+1; i++ {
				createLabel(relOffset+c.readInt(tsOffset), labels)
				tsOffset += 4
			}
			currentOffset = tsOffset
		case opcode == opcodes.LOOKUPSWITCH:
			lsOffset := currentOffset + 1
			for (lsOffset-bytecodeStart)%4 != 0 {
				lsOffset++
			}
			createLabel(relOffset+c.readInt(lsOffset), labels)
			npairs := c.readInt(lsOffset + 4)
			lsOffset += 8
			for i := 0; i < npairs; i++ {
				createLabel(relOffset+c.readInt(lsOffset+4), labels)
				lsOffset += 8
			}
			currentOffset = lsOffset
		case isBranchOpcode(opcode):
			branch := int(c.readShort(currentOffset + 1))
			createLabel(relOffset+branch, labels)
			currentOffset += 3
		case opcode == opcodes.GOTO_W || opcode == opcodes.JSR_W:
			branch := c.readInt(currentOffset + 1)
			createLabel(relOffset+branch, labels)
			currentOffset += 5
		case isAsmPseudoOpcode(opcode):
			branch := c.readUnsignedShort(currentOffset + 1)
			createLabel(relOffset+branch, labels)
			if isAsmPseudoConditional(opcode) {
				// The complementary IFNOT_cond jump this expands to
				// (spec.md §4.6) targets the instruction right after the
				// synthesized goto_w, i.e. this instruction's successor.
				createLabel(relOffset+3, labels)
			}
			currentOffset += 3
		default:
			currentOffset += fixedInstructionSize(opcode)
		}
	}
}

func isBranchOpcode(opcode int) bool {
	switch opcode {
	case opcodes.IFEQ, opcodes.IFNE, opcodes.IFLT, opcodes.IFGE, opcodes.IFGT, opcodes.IFLE,
		opcodes.IF_ICMPEQ, opcodes.IF_ICMPNE, opcodes.IF_ICMPLT, opcodes.IF_ICMPGE, opcodes.IF_ICMPGT, opcodes.IF_ICMPLE,
		opcodes.IF_ACMPEQ, opcodes.IF_ACMPNE, opcodes.GOTO, opcodes.JSR, opcodes.IFNULL, opcodes.IFNONNULL:
		return true
	default:
		return false
	}
}

// isAsmPseudoOpcode reports whether opcode falls in the reserved
// ASM-private extended-offset branch range (spec.md §4.6, "ASM-private
// extended jumps"): a 16-bit-offset stand-in for a branch a writer rewrote
// because its true target did not fit a signed 16-bit offset.
func isAsmPseudoOpcode(opcode int) bool {
	return opcode >= opcodes.ASM_IFEQ && opcode <= opcodes.ASM_JSR_W
}

// isAsmPseudoConditional reports whether an ASM-private pseudo-opcode stands
// in for a conditional jump (expanded to the IFNOT_cond/goto_w pair) rather
// than for GOTO/JSR/GOTO_W/JSR_W (expanded to a single wide jump).
func isAsmPseudoConditional(opcode int) bool {
	return (opcode >= opcodes.ASM_IFEQ && opcode <= opcodes.ASM_IF_ACMPNE) ||
		opcode == opcodes.ASM_IFNULL || opcode == opcodes.ASM_IFNONNULL
}

// asmPseudoRealOpcode maps an ASM-private extended-offset opcode back to the
// real opcode it was rewritten from.
func asmPseudoRealOpcode(opcode int) int {
	if opcode <= opcodes.ASM_JSR {
		return opcode - opcodes.ASM_OPCODE_DELTA
	}
	return opcode - opcodes.ASM_IFNULL_OPCODE_DELTA
}

// complementaryCondition returns the opcode testing the logical negation of
// cond. JVMS conditional jumps are laid out in adjacent (test, negated-test)
// pairs (IFEQ/IFNE, IFLT/IFGE, ...), so the complement is found by XORing
// the low bit of the opcode's position within its pair (spec.md §4.6).
func complementaryCondition(cond int) int {
	switch {
	case cond >= opcodes.IFEQ && cond <= opcodes.IF_ACMPNE:
		return opcodes.IFEQ + ((cond - opcodes.IFEQ) ^ 1)
	case cond == opcodes.IFNULL || cond == opcodes.IFNONNULL:
		return opcodes.IFNULL + ((cond - opcodes.IFNULL) ^ 1)
	default:
		return cond
	}
}

// fixedInstructionSize returns the total byte length (opcode included) of
// every instruction whose size does not depend on alignment padding or a
// wide prefix.
func fixedInstructionSize(opcode int) int {
	switch opcode {
	case opcodes.BIPUSH, opcodes.NEWARRAY,
		opcodes.ILOAD, opcodes.LLOAD, opcodes.FLOAD, opcodes.DLOAD, opcodes.ALOAD,
		opcodes.ISTORE, opcodes.LSTORE, opcodes.FSTORE, opcodes.DSTORE, opcodes.ASTORE,
		opcodes.RET, opcodes.LDC:
		return 2
	case opcodes.SIPUSH, opcodes.LDC_W, opcodes.LDC2_W,
		opcodes.NEW, opcodes.ANEWARRAY, opcodes.CHECKCAST, opcodes.INSTANCEOF,
		opcodes.GETSTATIC, opcodes.PUTSTATIC, opcodes.GETFIELD, opcodes.PUTFIELD,
		opcodes.INVOKEVIRTUAL, opcodes.INVOKESPECIAL, opcodes.INVOKESTATIC, opcodes.IINC:
		return 3
	case opcodes.MULTIANEWARRAY:
		return 4
	case opcodes.INVOKEINTERFACE, opcodes.INVOKEDYNAMIC:
		return 5
	default:
		return 1
	}
}

// readInstruction decodes and emits the single instruction starting at
// currentOffset, returning the offset of the next one.
func (c *ClassReader) readInstruction(mv MethodVisitor, ctx *Context, currentOffset, bytecodeStart int, labels []*Label, charBuffer []rune) (int, error) {
	relOffset := currentOffset - bytecodeStart
	opcode := int(c.b[currentOffset])
	switch {
	case opcode == opcodes.BIPUSH:
		mv.VisitIntInsn(opcode, int(int8(c.b[currentOffset+1])))
		return currentOffset + 2, nil
	case opcode == opcodes.SIPUSH:
		mv.VisitIntInsn(opcode, int(c.readShort(currentOffset+1)))
		return currentOffset + 3, nil
	case opcode == opcodes.NEWARRAY:
		mv.VisitIntInsn(opcode, int(c.b[currentOffset+1]))
		return currentOffset + 2, nil
	case (opcode >= opcodes.ILOAD && opcode <= opcodes.ALOAD) || (opcode >= opcodes.ISTORE && opcode <= opcodes.ASTORE) || opcode == opcodes.RET:
		mv.VisitVarInsn(opcode, int(c.b[currentOffset+1]))
		return currentOffset + 2, nil
	case opcode >= opcodes.ILOAD_0 && opcode <= opcodes.ALOAD_3:
		generic, index := normalizeShortFormLoad(opcode)
		mv.VisitVarInsn(generic, index)
		return currentOffset + 1, nil
	case opcode >= opcodes.ISTORE_0 && opcode <= opcodes.ASTORE_3:
		generic, index := normalizeShortFormStore(opcode)
		mv.VisitVarInsn(generic, index)
		return currentOffset + 1, nil
	case opcode == opcodes.WIDE:
		wideOpcode := int(c.b[currentOffset+1])
		if wideOpcode == opcodes.IINC {
			mv.VisitIincInsn(c.readUnsignedShort(currentOffset+2), int(c.readShort(currentOffset+4)))
			return currentOffset + 6, nil
		}
		mv.VisitVarInsn(wideOpcode, c.readUnsignedShort(currentOffset+2))
		return currentOffset + 4, nil
	case opcode == opcodes.NEW || opcode == opcodes.ANEWARRAY || opcode == opcodes.CHECKCAST || opcode == opcodes.INSTANCEOF:
		mv.VisitTypeInsn(opcode, c.readClass(currentOffset+1, charBuffer))
		return currentOffset + 3, nil
	case opcode >= opcodes.GETSTATIC && opcode <= opcodes.PUTFIELD:
		fieldrefIndex := c.readUnsignedShort(currentOffset + 1)
		owner, name, descriptor, err := c.readMemberRef(fieldrefIndex, charBuffer)
		if err != nil {
			return 0, err
		}
		mv.VisitFieldInsn(opcode, owner, name, descriptor)
		return currentOffset + 3, nil
	case opcode >= opcodes.INVOKEVIRTUAL && opcode <= opcodes.INVOKESTATIC:
		methodrefIndex := c.readUnsignedShort(currentOffset + 1)
		owner, name, descriptor, isInterface, err := c.readMethodRef(methodrefIndex, charBuffer)
		if err != nil {
			return 0, err
		}
		mv.VisitMethodInsn(opcode, owner, name, descriptor, isInterface)
		return currentOffset + 3, nil
	case opcode == opcodes.INVOKEINTERFACE:
		methodrefIndex := c.readUnsignedShort(currentOffset + 1)
		owner, name, descriptor, isInterface, err := c.readMethodRef(methodrefIndex, charBuffer)
		if err != nil {
			return 0, err
		}
		mv.VisitMethodInsn(opcode, owner, name, descriptor, isInterface)
		return currentOffset + 5, nil
	case opcode == opcodes.INVOKEDYNAMIC:
		cpIndex := c.readUnsignedShort(currentOffset + 1)
		if err := c.checkConstantIndex(currentOffset+1, cpIndex); err != nil {
			return 0, err
		}
		dyn, err := c.readConstantDynamic(cpIndex, c.cpInfoOffsets[cpIndex], charBuffer)
		if err != nil {
			return 0, err
		}
		mv.VisitInvokeDynamicInsn(dyn.Name, dyn.Descriptor, dyn.Bootstrap, dyn.BootstrapArgs...)
		return currentOffset + 5, nil
	case opcode == opcodes.LDC:
		value, err := c.readConst(int(c.b[currentOffset+1]), charBuffer)
		if err != nil {
			return 0, err
		}
		mv.VisitLdcInsn(value)
		return currentOffset + 2, nil
	case opcode == opcodes.LDC_W || opcode == opcodes.LDC2_W:
		value, err := c.readConst(c.readUnsignedShort(currentOffset+1), charBuffer)
		if err != nil {
			return 0, err
		}
		mv.VisitLdcInsn(value)
		return currentOffset + 3, nil
	case opcode == opcodes.IINC:
		mv.VisitIincInsn(int(c.b[currentOffset+1]), int(int8(c.b[currentOffset+2])))
		return currentOffset + 3, nil
	case isBranchOpcode(opcode):
		branch := int(c.readShort(currentOffset + 1))
		mv.VisitJumpInsn(opcode, readLabel(relOffset+branch, labels))
		return currentOffset + 3, nil
	case opcode == opcodes.GOTO_W:
		branch := c.readInt(currentOffset + 1)
		target := readLabel(relOffset+branch, labels)
		emitOpcode := opcodes.GOTO_W
		if !ctx.expandASMInsns() && branch >= -(1<<15) && branch < (1<<15) {
			emitOpcode = opcodes.GOTO
		}
		mv.VisitJumpInsn(emitOpcode, target)
		return currentOffset + 5, nil
	case opcode == opcodes.JSR_W:
		branch := c.readInt(currentOffset + 1)
		target := readLabel(relOffset+branch, labels)
		emitOpcode := opcodes.JSR_W
		if !ctx.expandASMInsns() && branch >= -(1<<15) && branch < (1<<15) {
			emitOpcode = opcodes.JSR
		}
		mv.VisitJumpInsn(emitOpcode, target)
		return currentOffset + 5, nil
	case opcode == opcodes.TABLESWITCH:
		tsOffset := currentOffset + 1
		for (tsOffset-bytecodeStart)%4 != 0 {
			tsOffset++
		}
		defaultLabel := readLabel(relOffset+c.readInt(tsOffset), labels)
		low := c.readInt(tsOffset + 4)
		high := c.readInt(tsOffset + 8)
		tsOffset += 12
		targets := make([]*Label, high-low+1)
		for i := range targets {
			targets[i] = readLabel(relOffset+c.readInt(tsOffset), labels)
			tsOffset += 4
		}
		mv.VisitTableSwitchInsn(low, high, defaultLabel, targets...)
		return tsOffset, nil
	case opcode == opcodes.LOOKUPSWITCH:
		lsOffset := currentOffset + 1
		for (lsOffset-bytecodeStart)%4 != 0 {
			lsOffset++
		}
		defaultLabel := readLabel(relOffset+c.readInt(lsOffset), labels)
		npairs := c.readInt(lsOffset + 4)
		lsOffset += 8
		keys := make([]int, npairs)
		targets := make([]*Label, npairs)
		for i := 0; i < npairs; i++ {
			keys[i] = c.readInt(lsOffset)
			targets[i] = readLabel(relOffset+c.readInt(lsOffset+4), labels)
			lsOffset += 8
		}
		mv.VisitLookupSwitchInsn(defaultLabel, keys, targets)
		return lsOffset, nil
	case opcode == opcodes.MULTIANEWARRAY:
		descriptor := c.readClass(currentOffset+1, charBuffer)
		numDimensions := int(c.b[currentOffset+3])
		mv.VisitMultiANewArrayInsn(descriptor, numDimensions)
		return currentOffset + 4, nil
	case isNoOperandInsn(opcode):
		mv.VisitInsn(opcode)
		return currentOffset + 1, nil
	case isAsmPseudoOpcode(opcode):
		if !ctx.expandASMInsns() {
			return 0, newDecodeError(currentOffset, BadOpcode, "ASM-private opcode %d outside EXPAND_ASM_INSNS", opcode)
		}
		branch := c.readUnsignedShort(currentOffset + 1)
		target := readLabel(relOffset+branch, labels)
		real := asmPseudoRealOpcode(opcode)
		if isAsmPseudoConditional(opcode) {
			fallthroughLabel := readLabel(relOffset+3, labels)
			mv.VisitJumpInsn(complementaryCondition(real), fallthroughLabel)
			mv.VisitJumpInsn(opcodes.GOTO_W, target)
			mv.VisitFrame(opcodes.F_INSERT, 0, nil, 0, nil)
			return currentOffset + 3, nil
		}
		wideOpcode := opcodes.GOTO_W
		if real == opcodes.JSR || real == opcodes.JSR_W {
			wideOpcode = opcodes.JSR_W
		}
		mv.VisitJumpInsn(wideOpcode, target)
		return currentOffset + 3, nil
	default:
		return 0, newDecodeError(currentOffset, BadOpcode, "opcode %d", opcode)
	}
}

// normalizeShortFormLoad maps one of the iload_0..aload_3 opcodes to its
// generic (opcode, local index) pair (spec.md §4.6).
func normalizeShortFormLoad(opcode int) (generic, index int) {
	group := (opcode - opcodes.ILOAD_0) / 4
	index = (opcode - opcodes.ILOAD_0) % 4
	return opcodes.ILOAD + group, index
}

// normalizeShortFormStore maps one of the istore_0..astore_3 opcodes to its
// generic (opcode, local index) pair (spec.md §4.6).
func normalizeShortFormStore(opcode int) (generic, index int) {
	group := (opcode - opcodes.ISTORE_0) / 4
	index = (opcode - opcodes.ISTORE_0) % 4
	return opcodes.ISTORE + group, index
}

func isNoOperandInsn(opcode int) bool {
	switch {
	case opcode >= opcodes.NOP && opcode <= opcodes.DCONST_1:
		return true
	case opcode >= opcodes.IALOAD && opcode <= opcodes.SALOAD:
		return true
	case opcode >= opcodes.IASTORE && opcode <= opcodes.DCMPG:
		// covers IASTORE..SASTORE, POP..SWAP, IADD..DNEG, ISHL..LXOR, and
		// I2L..DCMPG; IINC (132) is handled separately before this check is
		// ever reached.
		return true
	case opcode >= opcodes.IRETURN && opcode <= opcodes.RETURN:
		return true
	case opcode == opcodes.ARRAYLENGTH || opcode == opcodes.ATHROW ||
		opcode == opcodes.MONITORENTER || opcode == opcodes.MONITOREXIT:
		return true
	default:
		return false
	}
}

func (c *ClassReader) readMemberRef(cpIndex int, charBuffer []rune) (owner, name, descriptor string, err error) {
	if err = c.checkConstantIndex(0, cpIndex); err != nil {
		return
	}
	cpInfoOffset := c.cpInfoOffsets[cpIndex]
	owner = c.readClass(cpInfoOffset, charBuffer)
	natIndex := c.readUnsignedShort(cpInfoOffset + 2)
	if err = c.checkConstantIndex(cpInfoOffset+2, natIndex); err != nil {
		return
	}
	natOffset := c.cpInfoOffsets[natIndex]
	name = c.readUTF8(natOffset, charBuffer)
	descriptor = c.readUTF8(natOffset+2, charBuffer)
	return
}

func (c *ClassReader) readMethodRef(cpIndex int, charBuffer []rune) (owner, name, descriptor string, isInterface bool, err error) {
	if err = c.checkConstantIndex(0, cpIndex); err != nil {
		return
	}
	cpInfoOffset := c.cpInfoOffsets[cpIndex]
	isInterface = c.b[cpInfoOffset-1] == byte(symbol.CONSTANT_INTERFACE_METHODREF_TAG)
	owner, name, descriptor, err = c.readMemberRef(cpIndex, charBuffer)
	return
}

// readCodeTypeAnnotations pre-scans a RuntimeVisible/InvisibleTypeAnnotations
// attribute body whose entries are known to live inside a Code attribute
// (spec.md §4.9): it decodes every target_info shape legal there, interning
// whatever labels the target needs, but defers the element_value_pairs walk
// (recorded as elementValuesOffset) until the annotation is replayed at the
// right point in the main bytecode walk.
func (c *ClassReader) readCodeTypeAnnotations(annotationsOffset int, visible bool, labels []*Label, charBuffer []rune) ([]*codeTypeAnnotation, error) {
	numAnnotations := c.readUnsignedShort(annotationsOffset)
	offset := annotationsOffset + 2
	result := make([]*codeTypeAnnotation, 0, numAnnotations)
	for i := 0; i < numAnnotations; i++ {
		sort := int(c.b[offset])
		ann := &codeTypeAnnotation{visible: visible}
		switch sort {
		case typereference.LOCAL_VARIABLE, typereference.RESOURCE_VARIABLE:
			ann.targetType = sort << 24
			tableLength := c.readUnsignedShort(offset + 1)
			entryOffset := offset + 3
			ann.localVarStarts = make([]*Label, tableLength)
			ann.localVarEnds = make([]*Label, tableLength)
			ann.localVarIndices = make([]int, tableLength)
			for j := 0; j < tableLength; j++ {
				startPc := c.readUnsignedShort(entryOffset)
				length := c.readUnsignedShort(entryOffset + 2)
				ann.localVarStarts[j] = createLabel(startPc, labels)
				ann.localVarEnds[j] = createLabel(startPc+length, labels)
				ann.localVarIndices[j] = c.readUnsignedShort(entryOffset + 4)
				entryOffset += 6
			}
			offset = entryOffset
		case typereference.EXCEPTION_PARAMETER:
			exceptionTableIndex := c.readUnsignedShort(offset + 1)
			ann.targetType = (sort << 24) | (exceptionTableIndex << 8)
			ann.hasExceptionTableIndex = true
			ann.exceptionTableIndex = exceptionTableIndex
			offset += 3
		case typereference.INSTANCEOF, typereference.NEW, typereference.CONSTRUCTOR_REFERENCE, typereference.METHOD_REFERENCE:
			ann.targetType = sort << 24
			ann.hasInstructionLabel = true
			ann.instructionLabel = createLabel(c.readUnsignedShort(offset+1), labels)
			offset += 3
		case typereference.CAST, typereference.CONSTRUCTOR_INVOCATION_TYPE_ARGUMENT, typereference.METHOD_INVOCATION_TYPE_ARGUMENT,
			typereference.CONSTRUCTOR_REFERENCE_TYPE_ARGUMENT, typereference.METHOD_REFERENCE_TYPE_ARGUMENT:
			bytecodeOffset := c.readUnsignedShort(offset + 1)
			typeArgumentIndex := int(c.b[offset+3])
			ann.targetType = (sort << 24) | (typeArgumentIndex << 16)
			ann.hasInstructionLabel = true
			ann.instructionLabel = createLabel(bytecodeOffset, labels)
			offset += 4
		default:
			return nil, newDecodeError(offset, BadTypeAnnotationTarget, "target_type %#x inside Code attribute", sort)
		}

		pathLength := int(c.b[offset])
		ann.typePath = newTypePath(c.b, offset)
		offset += 1 + pathLength*2
		ann.descriptor = c.readUTF8(offset, charBuffer)
		offset += 2
		ann.elementValuesOffset = offset
		next, err := c.readElementValues(nil, offset, true, charBuffer)
		if err != nil {
			return nil, err
		}
		offset = next
		result = append(result, ann)
	}
	return result, nil
}
