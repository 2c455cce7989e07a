package classfile

import (
	"strings"

	"github.com/gojvm/classfile/classfile/typed"
)

// Type models a single JVM field, method or array type descriptor, in the
// spirit of the teacher's asm/type.go + asm/typed/type.go skeleton (kept,
// completed). It is the decoder's only notion of "a type": used to give
// readConst a real value for CONSTANT_Class/CONSTANT_MethodType entries,
// and to translate a method descriptor into implicit stack map frame
// locals (spec.md §4.6).
type Type struct {
	sort       int
	descriptor string
}

// Sort constants, re-exported from the typed package for readability at
// call sites (t.Sort() == typed.OBJECT rather than a bare magic number).
const (
	Void     = typed.VOID
	Boolean  = typed.BOOLEAN
	Char     = typed.CHAR
	Byte     = typed.BYTE
	Short    = typed.SHORT
	Int      = typed.INT
	Float    = typed.FLOAT
	Long     = typed.LONG
	Double   = typed.DOUBLE
	Array    = typed.ARRAY
	Object   = typed.OBJECT
	Method   = typed.METHOD
)

// NewObjectType builds the Type for an internal class name such as
// "java/lang/Object", or for an array descriptor such as "[I" (array
// descriptors are self-describing and begin with '[').
func NewObjectType(internalNameOrArrayDescriptor string) Type {
	if strings.HasPrefix(internalNameOrArrayDescriptor, "[") {
		return Type{sort: typed.ARRAY, descriptor: internalNameOrArrayDescriptor}
	}
	return Type{sort: typed.OBJECT, descriptor: internalNameOrArrayDescriptor}
}

// NewFieldType parses a single field descriptor ("I", "Ljava/lang/String;",
// "[[D", ...).
func NewFieldType(descriptor string) Type {
	if descriptor == "" {
		return Type{sort: typed.VOID}
	}
	return Type{sort: fieldSortOf(descriptor), descriptor: descriptor}
}

// NewMethodType wraps a raw method descriptor ("(ILjava/lang/String;)V").
// ArgumentTypes/ReturnType lazily parse it.
func NewMethodType(methodDescriptor string) Type {
	return Type{sort: typed.METHOD, descriptor: methodDescriptor}
}

func fieldSortOf(descriptor string) int {
	switch descriptor[0] {
	case 'V':
		return typed.VOID
	case 'Z':
		return typed.BOOLEAN
	case 'C':
		return typed.CHAR
	case 'B':
		return typed.BYTE
	case 'S':
		return typed.SHORT
	case 'I':
		return typed.INT
	case 'F':
		return typed.FLOAT
	case 'J':
		return typed.LONG
	case 'D':
		return typed.DOUBLE
	case '[':
		return typed.ARRAY
	default: // 'L'
		return typed.OBJECT
	}
}

// Sort returns the type's discriminant (one of the Void..Method constants).
func (t Type) Sort() int { return t.sort }

// Descriptor returns the raw descriptor string for this type.
func (t Type) Descriptor() string { return t.descriptor }

// InternalName returns the internal form of the class name for an Object
// type ("java/lang/String"), or the array descriptor itself for an Array
// type, or "" otherwise.
func (t Type) InternalName() string {
	switch t.sort {
	case typed.OBJECT, typed.ARRAY:
		return t.descriptor
	default:
		return ""
	}
}

// Size returns the number of local variable / operand stack slots this type
// occupies: 2 for long and double, 1 for everything else (including void,
// which never actually occupies a slot but is given size 1 so callers don't
// need a special case when summing argument sizes).
func (t Type) Size() int {
	if t.sort == typed.LONG || t.sort == typed.DOUBLE {
		return 2
	}
	return 1
}

// ArgumentTypes parses this method type's parameter descriptors in order.
// Panics (programmer error, not decode error) if Sort() != Method; callers
// only invoke this on descriptors already known to be method descriptors.
func (t Type) ArgumentTypes() []Type {
	descriptor := t.descriptor
	var args []Type
	i := 1 // skip '('
	for descriptor[i] != ')' {
		start := i
		for descriptor[i] == '[' {
			i++
		}
		if descriptor[i] == 'L' {
			for descriptor[i] != ';' {
				i++
			}
		}
		i++
		args = append(args, NewFieldType(descriptor[start:i]))
	}
	return args
}

// ReturnType parses this method type's return descriptor.
func (t Type) ReturnType() Type {
	descriptor := t.descriptor
	i := strings.IndexByte(descriptor, ')') + 1
	return NewFieldType(descriptor[i:])
}
