package classfile

// Context carries all per-Accept mutable state: parsing options, the shared
// UTF-8 scratch buffer, the current method's label array, and the
// incremental stack map frame state. Exactly one Context exists per
// AcceptB call and is never shared across goroutines (spec.md §5).
type Context struct {
	attributePrototypes []AttributePrototype
	parsingOptions      int
	charBuffer          []rune

	// currentClassName is this_class's internal name, needed by
	// computeImplicitFrame to synthesize the receiver local.
	currentClassName string

	// Current method being decoded.
	currentMethodAccessFlags int
	currentMethodName        string
	currentMethodDescriptor  string
	currentMethodLabels      []*Label

	// Type annotation target fields. The decoder does not write or read
	// them: readTypeAnnotationTarget returns the target to its caller.
	currentTypeAnnotationTarget     int
	currentTypeAnnotationTargetPath *TypePath

	// Local-variable (type) annotation range fields. The decoder does not
	// write or read them: the ranges of a Code attribute's local-variable
	// type annotations are held per annotation in codeTypeAnnotation
	// (code.go).
	currentLocalVariableAnnotationRangeStarts  []*Label
	currentLocalVariableAnnotationRangeEnds    []*Label
	currentLocalVariableAnnotationRangeIndices []int

	// Incremental stack map frame state (spec.md §3, "Frame state"): two
	// slices of verification types (locals and stack), plus the bookkeeping needed to decode the next compressed frame
	// relative to this one.
	currentFrameOffset           int
	currentFrameType             int
	currentFrameLocalCount       int
	currentFrameLocalCountDelta  int
	currentFrameLocalTypes       []VerificationType
	currentFrameStackCount       int
	currentFrameStackTypes       []VerificationType
}

func newContext(attributePrototypes []AttributePrototype, parsingOptions int, charBuffer []rune) *Context {
	return &Context{
		attributePrototypes: attributePrototypes,
		parsingOptions:      parsingOptions,
		charBuffer:          charBuffer,
	}
}

func (ctx *Context) skipCode() bool   { return ctx.parsingOptions&SkipCode != 0 }
func (ctx *Context) skipDebug() bool  { return ctx.parsingOptions&SkipDebug != 0 }
func (ctx *Context) skipFrames() bool { return ctx.parsingOptions&SkipFrames != 0 }
func (ctx *Context) expandFrames() bool {
	return ctx.parsingOptions&ExpandFrames != 0
}
func (ctx *Context) expandASMInsns() bool {
	return ctx.parsingOptions&ExpandASMInsns != 0
}
