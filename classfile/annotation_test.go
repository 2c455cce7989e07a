package classfile_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gojvm/classfile/classfile"
	"github.com/gojvm/classfile/classfile/opcodes"
	"github.com/gojvm/classfile/classfile/typereference"
	"github.com/gojvm/classfile/visitorutil"
)

// elementValuePair assembles one element_name_index + element_value pair
// (JVMS 4.7.16.1) for an annotation whose element_value_pairs count is
// fixed up by the caller.
func elementValuePair(nameIdx uint16, value []byte) []byte {
	var out bytes.Buffer
	out.Write(u16b(nameIdx))
	out.Write(value)
	return out.Bytes()
}

// primitiveArrayElementValue assembles a '[' element_value body whose
// num_values entries are all tag + 2-byte constant-pool index (the shape
// every primitive-array entry shares).
func primitiveArrayElementValue(tag byte, constIndexes []uint16) []byte {
	var out bytes.Buffer
	out.WriteByte('[')
	out.Write(u16b(uint16(len(constIndexes))))
	for _, idx := range constIndexes {
		out.WriteByte(tag)
		out.Write(u16b(idx))
	}
	return out.Bytes()
}

// TestPrimitiveArrayAnnotationElementValue builds a field with a single
// RuntimeVisibleAnnotations entry carrying one int[] element value, and
// checks the decoder emits exactly one Visit call carrying the materialized
// []int32 instead of one VisitArray plus per-element Visit calls
// (spec.md §4.8, "primitive-array specializations").
func TestPrimitiveArrayAnnotationElementValue(t *testing.T) {
	cp := newCP()
	aName := cp.utf8("A")
	objName := cp.utf8("java/lang/Object")
	aClass := cp.class(aName)
	objClass := cp.class(objName)

	fieldName := cp.utf8("f")
	fieldDesc := cp.utf8("I")
	annotationDesc := cp.utf8("LAnn;")
	elementName := cp.utf8("value")
	rvaName := cp.utf8("RuntimeVisibleAnnotations")

	i0 := cp.integer(1)
	i1 := cp.integer(2)
	i2 := cp.integer(3)

	arrayValue := primitiveArrayElementValue('I', []uint16{i0, i1, i2})
	pair := elementValuePair(elementName, arrayValue)

	var annotationBody bytes.Buffer
	annotationBody.Write(u16b(annotationDesc))
	annotationBody.Write(u16b(1)) // num_element_value_pairs
	annotationBody.Write(pair)

	var rvaBody bytes.Buffer
	rvaBody.Write(u16b(1)) // num_annotations
	rvaBody.Write(annotationBody.Bytes())

	fieldAttrs := attribute(rvaName, rvaBody.Bytes())
	field := memberInfo(opcodes.ACC_PUBLIC, fieldName, fieldDesc, 1, fieldAttrs)

	cb := newClassBuilder(cp, 52, opcodes.ACC_PUBLIC|opcodes.ACC_SUPER, aClass, objClass)
	cb.addField(field)

	reader, err := classfile.NewClassReader(cb.bytes())
	require.NoError(t, err)

	var visits []interface{}
	var arrayCalls int

	visitor := visitorutil.ClassVisitor{
		OnVisitField: func(access int, name, descriptor, signature string, value interface{}) classfile.FieldVisitor {
			return visitorutil.FieldVisitor{
				OnVisitAnnotation: func(descriptor string, visible bool) classfile.AnnotationVisitor {
					return visitorutil.AnnotationVisitor{
						OnVisit: func(name string, value interface{}) {
							visits = append(visits, value)
						},
						OnVisitArray: func(name string) classfile.AnnotationVisitor {
							arrayCalls++
							return visitorutil.AnnotationVisitor{}
						},
					}
				},
			}
		},
	}
	require.NoError(t, reader.Accept(visitor, 0))

	require.Len(t, visits, 1, "a primitive array must be replayed as exactly one Visit call")
	assert.Equal(t, 0, arrayCalls, "a primitive array must never go through the generic VisitArray path")
	assert.Equal(t, []int32{1, 2, 3}, visits[0])
}

// TestTypeAnnotationTargetOutsideCodeRejectsBadTargetType checks that a
// target_type byte illegal outside a Code attribute (here, LOCAL_VARIABLE,
// which may only appear inside one) raises a localized BadTypeAnnotationTarget
// DecodeError instead of being silently treated as an empty-shape target
// (spec.md §7 reason #6).
func TestTypeAnnotationTargetOutsideCodeRejectsBadTargetType(t *testing.T) {
	cp := newCP()
	aName := cp.utf8("A")
	objName := cp.utf8("java/lang/Object")
	aClass := cp.class(aName)
	objClass := cp.class(objName)

	fieldName := cp.utf8("f")
	fieldDesc := cp.utf8("I")
	annotationDesc := cp.utf8("LAnn;")
	rvtaName := cp.utf8("RuntimeVisibleTypeAnnotations")

	var annotationBody bytes.Buffer
	annotationBody.WriteByte(byte(typereference.LOCAL_VARIABLE)) // illegal outside Code
	annotationBody.WriteByte(0)                                  // table_length = 0 (unused: decode fails before reading it)
	annotationBody.WriteByte(0)                                  // target_path: path_length = 0
	annotationBody.Write(u16b(annotationDesc))
	annotationBody.Write(u16b(0)) // num_element_value_pairs

	var rvtaBody bytes.Buffer
	rvtaBody.Write(u16b(1)) // num_annotations
	rvtaBody.Write(annotationBody.Bytes())

	fieldAttrs := attribute(rvtaName, rvtaBody.Bytes())
	field := memberInfo(opcodes.ACC_PUBLIC, fieldName, fieldDesc, 1, fieldAttrs)

	cb := newClassBuilder(cp, 52, opcodes.ACC_PUBLIC|opcodes.ACC_SUPER, aClass, objClass)
	cb.addField(field)

	reader, err := classfile.NewClassReader(cb.bytes())
	require.NoError(t, err)

	visitor := visitorutil.ClassVisitor{
		OnVisitField: func(access int, name, descriptor, signature string, value interface{}) classfile.FieldVisitor {
			return visitorutil.FieldVisitor{}
		},
	}
	err = reader.Accept(visitor, 0)
	require.Error(t, err)
	var decodeErr *classfile.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, classfile.BadTypeAnnotationTarget, decodeErr.Reason)
}
