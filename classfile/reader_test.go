package classfile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gojvm/classfile/classfile"
	"github.com/gojvm/classfile/classfile/opcodes"
	"github.com/gojvm/classfile/visitorutil"
)

// buildEmptyClass assembles "public class A extends java.lang.Object {}"
// at major version 52 (spec.md §8, seed scenario 1).
func buildEmptyClass() []byte {
	cp := newCP()
	aName := cp.utf8("A")
	objName := cp.utf8("java/lang/Object")
	aClass := cp.class(aName)
	objClass := cp.class(objName)

	cb := newClassBuilder(cp, 52, opcodes.ACC_PUBLIC|opcodes.ACC_SUPER, aClass, objClass)
	return cb.bytes()
}

func TestEmptyClassHeader(t *testing.T) {
	data := buildEmptyClass()
	reader, err := classfile.NewClassReader(data)
	require.NoError(t, err)

	var gotVersion, gotAccess int
	var gotName, gotSuper string
	var gotInterfaces []string
	var ended bool

	visitor := visitorutil.ClassVisitor{
		OnVisit: func(version, access int, name, signature, superName string, interfaces []string) {
			gotVersion, gotAccess, gotName, gotSuper, gotInterfaces = version, access, name, superName, interfaces
		},
		OnVisitEnd: func() { ended = true },
	}
	require.NoError(t, reader.Accept(visitor, 0))

	assert.Equal(t, 52, gotVersion)
	assert.Equal(t, opcodes.ACC_PUBLIC|opcodes.ACC_SUPER, gotAccess)
	assert.Equal(t, "A", gotName)
	assert.Equal(t, "java/lang/Object", gotSuper)
	assert.Empty(t, gotInterfaces)
	assert.True(t, ended)
}

func TestClassReaderAccessors(t *testing.T) {
	data := buildEmptyClass()
	reader, err := classfile.NewClassReader(data)
	require.NoError(t, err)

	assert.Equal(t, opcodes.ACC_PUBLIC|opcodes.ACC_SUPER, reader.GetAccess())
	assert.Equal(t, "A", reader.GetClassName())
	assert.Equal(t, "java/lang/Object", reader.GetSuperName())
	assert.Empty(t, reader.GetInterfaces())
}

func TestUnsupportedMajorVersionRejected(t *testing.T) {
	data := buildEmptyClass()
	_, err := classfile.NewClassReaderConfig(data, classfile.Config{MaxMajorVersion: 51})
	require.Error(t, err)
	var decodeErr *classfile.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, classfile.UnsupportedVersion, decodeErr.Reason)
}

// TestModifiedUTF8RoundTrip exercises the CESU-8 surrogate-pair and
// overlong-NUL conventions (spec.md §4.11, §8 "UTF-8 correctness") by
// round-tripping a UTF-8 class name containing both a NUL byte and an
// astral code point through the modified-UTF-8 wire encoding.
func TestModifiedUTF8RoundTrip(t *testing.T) {
	cp := newCP()
	// "A \U0001F600" encoded per JVMS 4.4.7: NUL as 0xC0 0x80, the
	// supplementary code point U+1F600 as two 3-byte CESU-8 surrogate
	// sequences (high surrogate 0xD83D, low surrogate 0xDE00).
	name := []byte{
		'A',
		0xC0, 0x80, // modified-UTF-8 NUL
		0xED, 0xA0, 0xBD, // high surrogate D83D
		0xED, 0xB8, 0x80, // low surrogate DE00
	}
	nameIdx := cp.count
	cp.count++
	cp.u8(1)
	cp.u16(uint16(len(name)))
	cp.buf.Write(name)

	objName := cp.utf8("java/lang/Object")
	aClass := cp.class(nameIdx)
	objClass := cp.class(objName)
	cb := newClassBuilder(cp, 52, opcodes.ACC_PUBLIC|opcodes.ACC_SUPER, aClass, objClass)

	reader, err := classfile.NewClassReader(cb.bytes())
	require.NoError(t, err)

	want := "A \U0001F600"
	assert.Equal(t, want, reader.GetClassName())
	// Cache idempotence (spec.md §8): reading it twice returns the same value.
	assert.Equal(t, reader.GetClassName(), reader.GetClassName())
}

func TestBadConstantTagRejected(t *testing.T) {
	cp := newCP()
	aName := cp.utf8("A")
	aClass := cp.class(aName)
	cp.u8(0xFE) // unknown tag
	superIdx := cp.count
	cp.count++

	cb := newClassBuilder(cp, 52, opcodes.ACC_PUBLIC, aClass, superIdx)
	_, err := classfile.NewClassReader(cb.bytes())
	require.Error(t, err)
	var decodeErr *classfile.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, classfile.BadConstantTag, decodeErr.Reason)
}
