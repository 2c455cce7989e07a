package classfile

// Attribute is an opaque, non-standard class/field/method/record-component
// attribute: a named, length-prefixed byte blob the decoder does not know
// how to interpret on its own. Known attributes (SourceFile, Code,
// StackMapTable, ...) never surface as an Attribute; they are decoded
// in-place and delivered through dedicated visitor calls instead.
type Attribute struct {
	// Type is the UTF-8 attribute_name_index string, e.g. "MyCustomAttribute".
	Type string
	// Content is the raw attribute_info bytes (attribute_length of them),
	// copied out of the input buffer so the Attribute outlives it.
	Content []byte
	// CodeAttributeOffset is the byte offset of the enclosing Code
	// attribute's code array, or -1 if this attribute is not nested inside
	// a Code attribute. AttributePrototype implementations that need to
	// resolve bytecode-offset references (as LocalVariableTable does) use
	// this together with Labels.
	CodeAttributeOffset int
	// Labels is the label array of the enclosing method, or nil outside a
	// Code attribute.
	Labels []*Label
}

// AttributePrototype is the extension point by which a consumer teaches the
// reader to decode a non-standard attribute into something richer than raw
// bytes. Prototypes are matched by Type(); the first matching prototype in
// the slice passed to AcceptB wins.
type AttributePrototype interface {
	// Type returns the attribute_name this prototype knows how to read.
	Type() string
	// Read decodes the attribute_info body starting at offset (length
	// bytes long) and returns the Attribute to deliver to the visitor.
	// codeAttributeOffset and labels are -1/nil unless this attribute is
	// nested inside a Code attribute.
	Read(reader *ClassReader, offset, length int, charBuffer []rune, codeAttributeOffset int, labels []*Label) (*Attribute, error)
}

// readAttribute decodes one attribute whose name did not match any of the
// names the walker recognizes natively: it is delegated to the first
// matching prototype, or wrapped as an opaque Attribute holding the raw
// bytes if no prototype claims it.
func (c *ClassReader) readAttribute(prototypes []AttributePrototype, typeName string, offset, length int, charBuffer []rune, codeAttributeOffset int, labels []*Label) (*Attribute, error) {
	for _, prototype := range prototypes {
		if prototype.Type() == typeName {
			return prototype.Read(c, offset, length, charBuffer, codeAttributeOffset, labels)
		}
	}
	if offset+length > len(c.b) {
		return nil, newDecodeError(offset, TruncatedInput, "attribute %q length %d exceeds buffer", typeName, length)
	}
	Logger.Printf("non-standard attribute %q kept opaque (%d bytes)", typeName, length)
	content := make([]byte, length)
	copy(content, c.b[offset:offset+length])
	return &Attribute{
		Type:                typeName,
		Content:             content,
		CodeAttributeOffset: codeAttributeOffset,
		Labels:              labels,
	}, nil
}
