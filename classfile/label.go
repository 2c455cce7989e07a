package classfile

// Label flags. Only FlagDebugOnly is meaningful to the reader: it
// distinguishes a label created solely to carry a LineNumberTable /
// LocalVariableTable entry from one created for a real control-flow target,
// per spec.md §3. The flag is cleared the moment any non-debug creator
// observes the same bytecode offset.
const (
	FlagDebugOnly = 1 << iota
)

// Label identifies one bytecode offset within a single method. Labels are
// interned per method in a []*Label array indexed by bytecode offset
// (spec.md §3, "Label uniqueness"): two calls naming the same offset return
// the same *Label.
type Label struct {
	// LineNumber is the first source line number attached to this label via
	// addLineNumber, or 0 if none. Additional stacked line numbers (the same
	// bytecode offset can open several inlined source lines) are held in
	// otherLineNumbers.
	lineNumber       int
	otherLineNumbers []int

	// bytecodeOffset is set by readLabel when the label is created; it is
	// informational only; callers identify a label by pointer equality,
	// not by this field.
	bytecodeOffset int
	flags          int
}

func (l *Label) isDebugOnly() bool {
	return l.flags&FlagDebugOnly != 0
}

// addLineNumber stacks one more source line number onto this label. Called
// while walking a LineNumberTable attribute (spec.md §4.6).
func (l *Label) addLineNumber(lineNumber int) {
	if l.lineNumber == 0 {
		l.lineNumber = lineNumber
		return
	}
	l.otherLineNumbers = append(l.otherLineNumbers, lineNumber)
}

// readLabel returns the label interned at bytecodeOffset, creating one (with
// no flags set) if absent. Used by createLabel/createDebugLabel and directly
// by the Code walk wherever it looks up a label without changing its flags;
// never exported.
func readLabel(bytecodeOffset int, labels []*Label) *Label {
	if labels[bytecodeOffset] == nil {
		labels[bytecodeOffset] = &Label{bytecodeOffset: bytecodeOffset}
	}
	return labels[bytecodeOffset]
}

// createLabel interns a non-debug label at bytecodeOffset: a real
// control-flow target, exception range endpoint, or frame offset. If a
// debug-only label already existed at this offset, its flag is cleared
// (spec.md §3: "cleared whenever a non-debug creator observes the same
// offset").
func createLabel(bytecodeOffset int, labels []*Label) *Label {
	label := readLabel(bytecodeOffset, labels)
	label.flags &^= FlagDebugOnly
	return label
}

// createDebugLabel interns a label at bytecodeOffset for LineNumberTable /
// LocalVariableTable purposes only, if no label exists there yet. It never
// clears an existing non-debug label's flag, and never downgrades an
// existing label to debug-only.
func createDebugLabel(bytecodeOffset int, labels []*Label) {
	if labels[bytecodeOffset] == nil {
		readLabel(bytecodeOffset, labels).flags |= FlagDebugOnly
	}
}
