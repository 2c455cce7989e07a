package classfile

import "fmt"

// Type path step kinds (JVMS 4.7.20.2, Table 4.7.20.2-A).
const (
	// TypePathArrayElement steps into the element type of an array type.
	TypePathArrayElement = 0
	// TypePathInnerType steps into the nested type of a class type.
	TypePathInnerType = 1
	// TypePathWildcardBound steps into the bound of a wildcard type argument.
	TypePathWildcardBound = 2
	// TypePathTypeArgument steps into a type argument of a parameterized type.
	TypePathTypeArgument = 3
)

// TypePath is the decoded form of a type_path structure: a sequence of
// (type_path_kind, type_argument_index) steps locating a position within a
// type signature. The wire encoding is one length byte followed by
// length*2 payload bytes.
type TypePath struct {
	path []byte // path[0] = length, path[1:] = 2 bytes per step
}

// newTypePath wraps the raw type_path bytes starting at offset within b
// (offset points at the path_length byte, matching JVMS layout).
func newTypePath(b []byte, offset int) *TypePath {
	return &TypePath{path: b[offset:]}
}

// Length returns the number of steps in this type path.
func (t *TypePath) Length() int {
	if t == nil || len(t.path) == 0 {
		return 0
	}
	return int(t.path[0])
}

// Step returns the type_path_kind of the step at index.
func (t *TypePath) Step(index int) int {
	return int(t.path[2*index+1])
}

// StepArgument returns the type_argument_index of the step at index
// (meaningful only when Step(index) == TypePathTypeArgument).
func (t *TypePath) StepArgument(index int) int {
	return int(t.path[2*index+2])
}

// String renders the type path in ASM's textual notation: '[' for an array
// element step, '.' for an inner type step, '*' for a wildcard bound step,
// and "N;" for a type argument step with argument index N.
func (t *TypePath) String() string {
	if t == nil {
		return ""
	}
	result := ""
	for i := 0; i < t.Length(); i++ {
		switch t.Step(i) {
		case TypePathArrayElement:
			result += "["
		case TypePathInnerType:
			result += "."
		case TypePathWildcardBound:
			result += "*"
		case TypePathTypeArgument:
			result += fmt.Sprintf("%d;", t.StepArgument(i))
		}
	}
	return result
}
