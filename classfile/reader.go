// Package classfile parses a Java ClassFile binary structure (JVMS §4) and
// drives a user-supplied ClassVisitor with the semantic events it
// discovers: class header, fields, methods, attributes, bytecode
// instructions, stack map frames, and annotations.
package classfile

import (
	"io"

	"github.com/gojvm/classfile/classfile/symbol"
)

// ClassReader parses the ClassFile content passed to its constructor and
// calls the appropriate Visit* methods of a given ClassVisitor for each
// field, method and bytecode instruction it discovers. It never mutates the
// buffer it was built from.
type ClassReader struct {
	b                      []byte
	cpInfoOffsets          []int
	constantUtf8Values     []string
	constantDynamicValues  []*ConstantDynamic
	maxStringLength        int
	header                 int
	maxMajorVersion        int
	bootstrapMethodOffsets []int
}

// NewClassReader constructs a ClassReader over a full ClassFile structure
// occupying the whole of classFile, using DefaultConfig().
func NewClassReader(classFile []byte) (*ClassReader, error) {
	return NewClassReaderConfig(classFile, DefaultConfig())
}

// NewClassReaderConfig constructs a ClassReader over a full ClassFile
// structure occupying the whole of classFile, honoring cfg.MaxMajorVersion.
func NewClassReaderConfig(classFile []byte, cfg Config) (*ClassReader, error) {
	return newClassReader(classFile, 0, cfg)
}

// NewFromReader drains r fully into memory and constructs a ClassReader
// over the result; no incremental parsing over streams is supported
// (spec.md §4.1, "stream constructor").
func NewFromReader(r io.Reader, cfg Config) (*ClassReader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return newClassReader(data, 0, cfg)
}

func newClassReader(b []byte, offset int, cfg Config) (*ClassReader, error) {
	if cfg.MaxMajorVersion <= 0 {
		cfg = DefaultConfig()
	}
	c := &ClassReader{b: b, maxMajorVersion: cfg.MaxMajorVersion}

	if offset+10 > len(b) {
		return nil, newDecodeError(offset, TruncatedInput, "truncated class file header")
	}
	majorVersion := c.readUnsignedShort(offset + 6)
	if majorVersion > cfg.MaxMajorVersion {
		return nil, newDecodeError(offset+6, UnsupportedVersion, "major version %d exceeds configured maximum %d", majorVersion, cfg.MaxMajorVersion)
	}

	constantPoolCount := c.readUnsignedShort(offset + 8)
	c.cpInfoOffsets = make([]int, constantPoolCount)
	c.constantUtf8Values = make([]string, constantPoolCount)
	currentCpInfoOffset := offset + 10
	maxStringLength := 0
	hasBootstrapDependentTag := false

	for i := 1; i < constantPoolCount; i++ {
		if currentCpInfoOffset >= len(b) {
			return nil, newDecodeError(currentCpInfoOffset, TruncatedInput, "constant pool entry %d out of bounds", i)
		}
		c.cpInfoOffsets[i] = currentCpInfoOffset + 1
		var cpInfoSize int

		switch b[currentCpInfoOffset] {
		case byte(symbol.CONSTANT_FIELDREF_TAG), byte(symbol.CONSTANT_METHODREF_TAG), byte(symbol.CONSTANT_INTERFACE_METHODREF_TAG),
			byte(symbol.CONSTANT_INTEGER_TAG), byte(symbol.CONSTANT_FLOAT_TAG), byte(symbol.CONSTANT_NAME_AND_TYPE_TAG):
			cpInfoSize = 5
		case byte(symbol.CONSTANT_INVOKE_DYNAMIC_TAG):
			cpInfoSize = 5
			hasBootstrapDependentTag = true
		case byte(symbol.CONSTANT_LONG_TAG), byte(symbol.CONSTANT_DOUBLE_TAG):
			cpInfoSize = 9
			i++
		case byte(symbol.CONSTANT_UTF8_TAG):
			cpInfoSize = 3 + c.readUnsignedShort(currentCpInfoOffset+1)
			if cpInfoSize > maxStringLength {
				maxStringLength = cpInfoSize
			}
		case byte(symbol.CONSTANT_METHOD_HANDLE_TAG):
			cpInfoSize = 4
		case byte(symbol.CONSTANT_CLASS_TAG), byte(symbol.CONSTANT_STRING_TAG), byte(symbol.CONSTANT_METHOD_TYPE_TAG),
			byte(symbol.CONSTANT_PACKAGE_TAG), byte(symbol.CONSTANT_MODULE_TAG):
			cpInfoSize = 3
		case byte(symbol.CONSTANT_DYNAMIC_TAG):
			cpInfoSize = 5
			hasBootstrapDependentTag = true
		default:
			return nil, newDecodeError(currentCpInfoOffset, BadConstantTag, "unknown constant pool tag %d", b[currentCpInfoOffset])
		}
		currentCpInfoOffset += cpInfoSize
	}

	c.maxStringLength = maxStringLength
	c.header = currentCpInfoOffset
	if hasBootstrapDependentTag {
		c.constantDynamicValues = make([]*ConstantDynamic, constantPoolCount)
		if err := c.locateBootstrapMethods(); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// locateBootstrapMethods scans the class attribute table for
// BootstrapMethods and records the start offset of each bootstrap_method
// struct, so that readConstantDynamic and invokedynamic decoding never need
// to re-scan the attribute table (spec.md §4.1 step 4).
func (c *ClassReader) locateBootstrapMethods() error {
	charBuffer := make([]rune, c.maxStringLength)
	currentAttributeOffset := c.getFirstAttributeOffset()
	numAttributes := c.readUnsignedShort(currentAttributeOffset - 2)
	for i := 0; i < numAttributes; i++ {
		attributeName := c.readUTF8(currentAttributeOffset, charBuffer)
		attributeLength := c.readInt(currentAttributeOffset + 2)
		currentAttributeOffset += 6
		if attributeName == "BootstrapMethods" {
			count := c.readUnsignedShort(currentAttributeOffset)
			offsets := make([]int, count)
			cursor := currentAttributeOffset + 2
			for j := 0; j < count; j++ {
				offsets[j] = cursor
				numArgs := c.readUnsignedShort(cursor + 2)
				cursor += 4 + numArgs*2
			}
			c.bootstrapMethodOffsets = offsets
			return nil
		}
		currentAttributeOffset += attributeLength
	}
	return nil
}

// getFirstAttributeOffset walks past the fields and methods tables to find
// the byte offset of the class-level attributes_count field.
func (c *ClassReader) getFirstAttributeOffset() int {
	currentOffset := c.header + 8 + c.readUnsignedShort(c.header+6)*2
	fieldsCount := c.readUnsignedShort(currentOffset)
	currentOffset += 2
	for ; fieldsCount > 0; fieldsCount-- {
		attributesCount := c.readUnsignedShort(currentOffset + 6)
		currentOffset += 8
		for ; attributesCount > 0; attributesCount-- {
			currentOffset += 6 + c.readInt(currentOffset+2)
		}
	}

	methodsCount := c.readUnsignedShort(currentOffset)
	currentOffset += 2
	for ; methodsCount > 0; methodsCount-- {
		attributesCount := c.readUnsignedShort(currentOffset + 6)
		currentOffset += 8
		for ; attributesCount > 0; attributesCount-- {
			currentOffset += 6 + c.readInt(currentOffset+2)
		}
	}

	return currentOffset + 2
}

// -----------------------------------------------------------------------
// Accessors
// -----------------------------------------------------------------------

// GetAccess returns the class's access_flags.
func (c *ClassReader) GetAccess() int {
	return c.readUnsignedShort(c.header)
}

// GetClassName returns the internal name of this class.
func (c *ClassReader) GetClassName() string {
	charBuffer := make([]rune, c.maxStringLength)
	return c.readClass(c.header+2, charBuffer)
}

// GetSuperName returns the internal name of the super class, or "" for
// java/lang/Object itself (whose constant pool has no super_class entry).
func (c *ClassReader) GetSuperName() string {
	charBuffer := make([]rune, c.maxStringLength)
	return c.readClass(c.header+4, charBuffer)
}

// GetInterfaces returns the internal names of the implemented interfaces.
func (c *ClassReader) GetInterfaces() []string {
	currentOffset := c.header + 6
	interfacesCount := c.readUnsignedShort(currentOffset)
	interfaces := make([]string, interfacesCount)
	if interfacesCount > 0 {
		charBuffer := make([]rune, c.maxStringLength)
		for i := 0; i < interfacesCount; i++ {
			currentOffset += 2
			interfaces[i] = c.readClass(currentOffset, charBuffer)
		}
	}
	return interfaces
}

// -----------------------------------------------------------------------
// Low level cursor: big-endian reads over the immutable buffer.
// -----------------------------------------------------------------------

func (c *ClassReader) readByte(offset int) byte {
	return c.b[offset]
}

func (c *ClassReader) readUnsignedShort(offset int) int {
	b := c.b
	return int(b[offset])<<8 | int(b[offset+1])
}

func (c *ClassReader) readShort(offset int) int16 {
	return int16(c.readUnsignedShort(offset))
}

// readInt reads a big-endian 32-bit field and sign-extends it to Go's int.
// Most 32-bit fields in a ClassFile (lengths, counts) are never negative in
// practice, but branch/switch offsets are signed deltas (JVMS 4.9.1) and
// must come back negative for backward branches; composing this with
// uint32(...) (as readLong does for its two halves) recovers the original
// bit pattern regardless of sign, so sign-extending here is always safe.
func (c *ClassReader) readInt(offset int) int {
	b := c.b
	return int(int32(uint32(b[offset])<<24 | uint32(b[offset+1])<<16 | uint32(b[offset+2])<<8 | uint32(b[offset+3])))
}

func (c *ClassReader) readLong(offset int) int64 {
	high := int64(uint32(c.readInt(offset)))
	low := int64(uint32(c.readInt(offset + 4)))
	return high<<32 | low
}

// readUTF8 reads a 2-byte constant-pool index at offset and resolves it to
// the corresponding CONSTANT_Utf8 string, or "" if the index is 0.
func (c *ClassReader) readUTF8(offset int, charBuffer []rune) string {
	if offset == 0 {
		return ""
	}
	constantPoolEntryIndex := c.readUnsignedShort(offset)
	if constantPoolEntryIndex == 0 {
		return ""
	}
	return c.readUTF(constantPoolEntryIndex, charBuffer)
}

// readUTF resolves (and caches) the CONSTANT_Utf8 entry at constant-pool
// index constantPoolEntryIndex. Reading the same index twice returns the
// same cached string (spec.md §8, "Cache idempotence").
func (c *ClassReader) readUTF(constantPoolEntryIndex int, charBuffer []rune) string {
	if value := c.constantUtf8Values[constantPoolEntryIndex]; value != "" {
		return value
	}
	cpInfoOffset := c.cpInfoOffsets[constantPoolEntryIndex]
	value := c.readUTFBytes(cpInfoOffset+2, c.readUnsignedShort(cpInfoOffset), charBuffer)
	c.constantUtf8Values[constantPoolEntryIndex] = value
	return value
}

// readUTFBytes decodes utfLength bytes of modified UTF-8 (JVMS 4.4.7)
// starting at utfOffset into a Go string, using charBuffer as scratch
// space. charBuffer must be at least as long as the decoded code unit
// count, which is always <= utfLength.
func (c *ClassReader) readUTFBytes(utfOffset, utfLength int, charBuffer []rune) string {
	currentOffset := utfOffset
	endOffset := currentOffset + utfLength
	strLength := 0
	b := c.b
	for currentOffset < endOffset {
		currentByte := b[currentOffset]
		currentOffset++
		if currentByte&0x80 == 0 {
			charBuffer[strLength] = rune(currentByte & 0x7F)
			strLength++
		} else if currentByte&0xE0 == 0xC0 {
			charBuffer[strLength] = rune(currentByte&0x1F)<<6 | rune(b[currentOffset]&0x3F)
			strLength++
			currentOffset++
		} else {
			codePoint := rune(currentByte&0xF)<<12 | rune(b[currentOffset]&0x3F)<<6
			currentOffset++
			codePoint |= rune(b[currentOffset] & 0x3F)
			currentOffset++
			// CESU-8: a supplementary code point above U+FFFF is split into a
			// high/low surrogate pair, each separately encoded as its own
			// 3-byte sequence (spec.md §4.11). Recombine the pair here so the
			// decoded string holds the single astral rune, not two lone
			// surrogates.
			if codePoint >= 0xD800 && codePoint <= 0xDBFF && currentOffset+3 <= endOffset &&
				b[currentOffset]&0xF0 == 0xE0 {
				lowStart := currentOffset
				low := rune(b[lowStart]&0xF)<<12 | rune(b[lowStart+1]&0x3F)<<6 | rune(b[lowStart+2]&0x3F)
				if low >= 0xDC00 && low <= 0xDFFF {
					codePoint = 0x10000 + (codePoint-0xD800)<<10 + (low - 0xDC00)
					currentOffset += 3
				}
			}
			charBuffer[strLength] = codePoint
			strLength++
		}
	}
	return string(charBuffer[:strLength])
}

func (c *ClassReader) readStringish(offset int, charBuffer []rune) string {
	return c.readUTF8(c.cpInfoOffsets[c.readUnsignedShort(offset)], charBuffer)
}

func (c *ClassReader) readClass(offset int, charBuffer []rune) string {
	return c.readStringish(offset, charBuffer)
}

func (c *ClassReader) readModuleName(offset int, charBuffer []rune) string {
	return c.readStringish(offset, charBuffer)
}

func (c *ClassReader) readPackage(offset int, charBuffer []rune) string {
	return c.readStringish(offset, charBuffer)
}
