package classfile_test

import (
	"bytes"
	"encoding/binary"

	"github.com/gojvm/classfile/classfile/symbol"
)

// cpBuilder assembles a constant pool body (everything after
// constant_pool_count) one entry at a time, handing back the 1-based index
// of each entry it adds. It mirrors the layout spec.md §4.1 describes; it
// has no helper for Long/Double entries, so the double-slot rule never
// arises in its pools.
type cpBuilder struct {
	buf   bytes.Buffer
	count uint16 // next index to hand out; index 0 is reserved
}

func newCP() *cpBuilder { return &cpBuilder{count: 1} }

func (p *cpBuilder) u8(v byte)  { p.buf.WriteByte(v) }
func (p *cpBuilder) u16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	p.buf.Write(b[:])
}
func (p *cpBuilder) u32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	p.buf.Write(b[:])
}

func (p *cpBuilder) utf8(s string) uint16 {
	idx := p.count
	p.count++
	p.u8(byte(symbol.CONSTANT_UTF8_TAG))
	p.u16(uint16(len(s)))
	p.buf.WriteString(s)
	return idx
}

func (p *cpBuilder) class(nameIdx uint16) uint16 {
	idx := p.count
	p.count++
	p.u8(byte(symbol.CONSTANT_CLASS_TAG))
	p.u16(nameIdx)
	return idx
}

func (p *cpBuilder) nameAndType(nameIdx, descIdx uint16) uint16 {
	idx := p.count
	p.count++
	p.u8(byte(symbol.CONSTANT_NAME_AND_TYPE_TAG))
	p.u16(nameIdx)
	p.u16(descIdx)
	return idx
}

func (p *cpBuilder) methodref(classIdx, natIdx uint16) uint16 {
	idx := p.count
	p.count++
	p.u8(byte(symbol.CONSTANT_METHODREF_TAG))
	p.u16(classIdx)
	p.u16(natIdx)
	return idx
}

func (p *cpBuilder) integer(v int32) uint16 {
	idx := p.count
	p.count++
	p.u8(byte(symbol.CONSTANT_INTEGER_TAG))
	p.u32(uint32(v))
	return idx
}

// classBuilder assembles a complete minimal ClassFile structure around a
// constant pool, one method_info at a time.
type classBuilder struct {
	cp          *cpBuilder
	major       uint16
	minor       uint16
	access      uint16
	thisClass   uint16
	superClass  uint16
	interfaces  []uint16
	fields      []byte
	numFields   uint16
	methods     []byte
	numMethods  uint16
	attrs       []byte
	numAttrs    uint16
}

func newClassBuilder(cp *cpBuilder, major uint16, access, thisClass, superClass uint16) *classBuilder {
	return &classBuilder{cp: cp, major: major, minor: 0, access: access, thisClass: thisClass, superClass: superClass}
}

func (b *classBuilder) addMethod(m []byte) {
	b.methods = append(b.methods, m...)
	b.numMethods++
}

func (b *classBuilder) addField(f []byte) {
	b.fields = append(b.fields, f...)
	b.numFields++
}

func (b *classBuilder) addClassAttribute(a []byte) {
	b.attrs = append(b.attrs, a...)
	b.numAttrs++
}

func u16b(v uint16) []byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return b[:]
}

func u32b(v uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return b[:]
}

func (b *classBuilder) bytes() []byte {
	var out bytes.Buffer
	out.Write([]byte{0xCA, 0xFE, 0xBA, 0xBE})
	out.Write(u16b(b.minor))
	out.Write(u16b(b.major))
	out.Write(u16b(b.cp.count)) // constant_pool_count = highest index + 1
	out.Write(b.cp.buf.Bytes())
	out.Write(u16b(b.access))
	out.Write(u16b(b.thisClass))
	out.Write(u16b(b.superClass))
	out.Write(u16b(uint16(len(b.interfaces))))
	for _, i := range b.interfaces {
		out.Write(u16b(i))
	}
	out.Write(u16b(b.numFields))
	out.Write(b.fields)
	out.Write(u16b(b.numMethods))
	out.Write(b.methods)
	out.Write(u16b(b.numAttrs))
	out.Write(b.attrs)
	return out.Bytes()
}

// attribute wraps body as a length-prefixed attribute_info keyed by
// nameIdx, the shape every attribute table entry shares (spec.md §4.3).
func attribute(nameIdx uint16, body []byte) []byte {
	var out bytes.Buffer
	out.Write(u16b(nameIdx))
	out.Write(u32b(uint32(len(body))))
	out.Write(body)
	return out.Bytes()
}

// method_info / field_info share the same access/name/descriptor/attributes
// shape (JVMS 4.5, 4.6); attrs is the already-concatenated attribute table.
func memberInfo(access, nameIdx, descIdx uint16, numAttrs uint16, attrs []byte) []byte {
	var out bytes.Buffer
	out.Write(u16b(access))
	out.Write(u16b(nameIdx))
	out.Write(u16b(descIdx))
	out.Write(u16b(numAttrs))
	out.Write(attrs)
	return out.Bytes()
}

// codeAttributeBody assembles a Code attribute body (JVMS 4.7.3): max_stack,
// max_locals, code, the caller's exception table (numExceptions entries,
// already encoded), and whatever sub-attributes the caller supplies already
// concatenated.
func codeAttributeBody(maxStack, maxLocals uint16, code []byte, exceptionTable []byte, numExceptions uint16, numAttrs uint16, attrs []byte) []byte {
	var out bytes.Buffer
	out.Write(u16b(maxStack))
	out.Write(u16b(maxLocals))
	out.Write(u32b(uint32(len(code))))
	out.Write(code)
	out.Write(u16b(numExceptions))
	out.Write(exceptionTable)
	out.Write(u16b(numAttrs))
	out.Write(attrs)
	return out.Bytes()
}
