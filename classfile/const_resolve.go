package classfile

import (
	"math"

	"github.com/gojvm/classfile/classfile/opcodes"
	"github.com/gojvm/classfile/classfile/symbol"
)

func (c *ClassReader) getItemCount() int {
	return len(c.cpInfoOffsets)
}

func (c *ClassReader) getItem(constantPoolEntryIndex int) int {
	return c.cpInfoOffsets[constantPoolEntryIndex]
}

// checkConstantIndex validates that index is a legal, in-bounds
// constant-pool reference (spec.md §8, "Constant-pool validity").
func (c *ClassReader) checkConstantIndex(referencingOffset, index int) error {
	if index < 1 || index >= len(c.cpInfoOffsets) || c.cpInfoOffsets[index] == 0 {
		return newDecodeError(referencingOffset, BadConstantTag, "constant pool index %d out of range", index)
	}
	return nil
}

// readConst dispatches on the tag at offsets[i]-1 and returns a tagged
// value: int32, float32, int64, float64, Type (for Class/MethodType), a
// string (for String), a Handle, or a *ConstantDynamic (spec.md §4.12).
func (c *ClassReader) readConst(constantPoolEntryIndex int, charBuffer []rune) (interface{}, error) {
	if err := c.checkConstantIndex(0, constantPoolEntryIndex); err != nil {
		return nil, err
	}
	cpInfoOffset := c.cpInfoOffsets[constantPoolEntryIndex]
	tag := c.b[cpInfoOffset-1]
	switch tag {
	case byte(symbol.CONSTANT_INTEGER_TAG):
		return int32(c.readInt(cpInfoOffset)), nil
	case byte(symbol.CONSTANT_FLOAT_TAG):
		return math.Float32frombits(uint32(c.readInt(cpInfoOffset))), nil
	case byte(symbol.CONSTANT_LONG_TAG):
		return c.readLong(cpInfoOffset), nil
	case byte(symbol.CONSTANT_DOUBLE_TAG):
		return math.Float64frombits(uint64(c.readLong(cpInfoOffset))), nil
	case byte(symbol.CONSTANT_CLASS_TAG):
		return NewObjectType(c.readUTF8(cpInfoOffset, charBuffer)), nil
	case byte(symbol.CONSTANT_STRING_TAG):
		return c.readUTF8(cpInfoOffset, charBuffer), nil
	case byte(symbol.CONSTANT_METHOD_TYPE_TAG):
		return NewMethodType(c.readUTF8(cpInfoOffset, charBuffer)), nil
	case byte(symbol.CONSTANT_METHOD_HANDLE_TAG):
		return c.readHandle(cpInfoOffset, charBuffer)
	case byte(symbol.CONSTANT_DYNAMIC_TAG):
		return c.readConstantDynamic(constantPoolEntryIndex, cpInfoOffset, charBuffer)
	default:
		return nil, newDecodeError(cpInfoOffset-1, BadConstantTag, "tag %d is not a loadable constant", tag)
	}
}

func (c *ClassReader) readHandle(cpInfoOffset int, charBuffer []rune) (Handle, error) {
	referenceKind := int(c.readByte(cpInfoOffset))
	referenceIndex := c.readUnsignedShort(cpInfoOffset + 1)
	if err := c.checkConstantIndex(cpInfoOffset+1, referenceIndex); err != nil {
		return Handle{}, err
	}
	referenceCpInfoOffset := c.cpInfoOffsets[referenceIndex]
	nameAndTypeIndex := c.readUnsignedShort(referenceCpInfoOffset + 2)
	if err := c.checkConstantIndex(referenceCpInfoOffset+2, nameAndTypeIndex); err != nil {
		return Handle{}, err
	}
	nameAndTypeCpInfoOffset := c.cpInfoOffsets[nameAndTypeIndex]
	owner := c.readClass(referenceCpInfoOffset, charBuffer)
	name := c.readUTF8(nameAndTypeCpInfoOffset, charBuffer)
	descriptor := c.readUTF8(nameAndTypeCpInfoOffset+2, charBuffer)
	isInterface := c.b[referenceCpInfoOffset-1] == byte(symbol.CONSTANT_INTERFACE_METHODREF_TAG)
	if referenceKind <= opcodes.H_PUTSTATIC {
		isInterface = false
	}
	return Handle{
		Tag:         referenceKind,
		Owner:       owner,
		Name:        name,
		Descriptor:  descriptor,
		IsInterface: isInterface,
	}, nil
}

// readConstantDynamic decodes (and caches) a CONSTANT_Dynamic entry. Decoded
// lazily per spec.md §3; value-equal on repeated reads of the same index.
func (c *ClassReader) readConstantDynamic(constantPoolEntryIndex, cpInfoOffset int, charBuffer []rune) (*ConstantDynamic, error) {
	if c.constantDynamicValues != nil && c.constantDynamicValues[constantPoolEntryIndex] != nil {
		return c.constantDynamicValues[constantPoolEntryIndex], nil
	}
	bootstrapMethodIndex := c.readUnsignedShort(cpInfoOffset)
	nameAndTypeIndex := c.readUnsignedShort(cpInfoOffset + 2)
	if err := c.checkConstantIndex(cpInfoOffset+2, nameAndTypeIndex); err != nil {
		return nil, err
	}
	nameAndTypeCpInfoOffset := c.cpInfoOffsets[nameAndTypeIndex]
	name := c.readUTF8(nameAndTypeCpInfoOffset, charBuffer)
	descriptor := c.readUTF8(nameAndTypeCpInfoOffset+2, charBuffer)

	if bootstrapMethodIndex >= len(c.bootstrapMethodOffsets) {
		return nil, newDecodeError(cpInfoOffset, TruncatedInput, "bootstrap method index %d has no BootstrapMethods entry", bootstrapMethodIndex)
	}
	bootstrapOffset := c.bootstrapMethodOffsets[bootstrapMethodIndex]
	handleIndex := c.readUnsignedShort(bootstrapOffset)
	if err := c.checkConstantIndex(bootstrapOffset, handleIndex); err != nil {
		return nil, err
	}
	handle, err := c.readHandle(c.cpInfoOffsets[handleIndex], charBuffer)
	if err != nil {
		return nil, err
	}
	numBootstrapArguments := c.readUnsignedShort(bootstrapOffset + 2)
	args := make([]interface{}, numBootstrapArguments)
	for i := 0; i < numBootstrapArguments; i++ {
		argIndex := c.readUnsignedShort(bootstrapOffset + 4 + 2*i)
		arg, err := c.readConst(argIndex, charBuffer)
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}

	value := &ConstantDynamic{Name: name, Descriptor: descriptor, Bootstrap: handle, BootstrapArgs: args}
	if c.constantDynamicValues == nil {
		c.constantDynamicValues = make([]*ConstantDynamic, len(c.cpInfoOffsets))
	}
	c.constantDynamicValues[constantPoolEntryIndex] = value
	return value, nil
}
