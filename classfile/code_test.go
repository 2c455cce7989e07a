package classfile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gojvm/classfile/classfile"
	"github.com/gojvm/classfile/classfile/opcodes"
	"github.com/gojvm/classfile/visitorutil"
)

// methodFixture wraps a single method (built via method_info bytes) into
// a minimal "class A extends java.lang.Object" so each bytecode scenario
// only has to describe its own Code attribute.
type methodFixture struct {
	cp    *cpBuilder
	major uint16
}

func newMethodFixture() (*methodFixture, uint16, uint16, uint16) {
	cp := newCP()
	aName := cp.utf8("A")
	objName := cp.utf8("java/lang/Object")
	aClass := cp.class(aName)
	objClass := cp.class(objName)
	codeAttrName := cp.utf8("Code")
	return &methodFixture{cp: cp, major: 52}, aClass, objClass, codeAttrName
}

// TestGotoMethod builds "void m() { while(true); }" compiled to a single
// `goto 0` instruction (spec.md §8, seed scenario 2).
func TestGotoMethod(t *testing.T) {
	fx, aClass, objClass, codeAttrName := newMethodFixture()
	mName := fx.cp.utf8("m")
	mDesc := fx.cp.utf8("()V")

	code := []byte{opcodes.GOTO, 0x00, 0x00} // goto +0 (self-loop)
	codeBody := codeAttributeBody(1, 1, code, nil, 0, 0, nil)
	methodAttrs := attribute(codeAttrName, codeBody)
	method := memberInfo(opcodes.ACC_PUBLIC, mName, mDesc, 1, methodAttrs)

	cb := newClassBuilder(fx.cp, fx.major, opcodes.ACC_PUBLIC|opcodes.ACC_SUPER, aClass, objClass)
	cb.addMethod(method)

	reader, err := classfile.NewClassReader(cb.bytes())
	require.NoError(t, err)

	var jumps []int
	var labelsBeforeJump []*classfile.Label
	var maxStack, maxLocals int
	var jumpLabel *classfile.Label

	visitor := visitorutil.ClassVisitor{
		OnVisitMethod: func(access int, name, descriptor, signature string, exceptions []string) classfile.MethodVisitor {
			return visitorutil.MethodVisitor{
				OnVisitLabel: func(label *classfile.Label) {
					labelsBeforeJump = append(labelsBeforeJump, label)
				},
				OnVisitJumpInsn: func(opcode int, label *classfile.Label) {
					jumps = append(jumps, opcode)
					jumpLabel = label
				},
				OnVisitMaxs: func(ms, ml int) {
					maxStack, maxLocals = ms, ml
				},
			}
		},
	}
	require.NoError(t, reader.Accept(visitor, 0))

	require.Len(t, jumps, 1)
	assert.Equal(t, opcodes.GOTO, jumps[0])
	require.Len(t, labelsBeforeJump, 1, "label at offset 0 must be emitted before the instruction there")
	assert.Same(t, labelsBeforeJump[0], jumpLabel, "goto's target label is the same interned label visited at offset 0")
	assert.Equal(t, 1, maxStack)
	assert.Equal(t, 1, maxLocals)
}

// TestTableSwitchPadding builds a tableswitch at bytecode offset 1 with
// low=0, high=2, verifying the padded default-offset field is read from
// offset 4 (spec.md §8, seed scenario 3).
func TestTableSwitchPadding(t *testing.T) {
	fx, aClass, objClass, codeAttrName := newMethodFixture()
	mName := fx.cp.utf8("m")
	mDesc := fx.cp.utf8("(I)V")

	// iload_1 ; tableswitch <pad> default/low/high/targets, all branches
	// landing on the trailing return at relative offset 28.
	code := []byte{
		opcodes.ILOAD_1,     // offset 0
		opcodes.TABLESWITCH, // offset 1, padding brings the first u32 to offset 4
		0, 0,                // 2 bytes padding (offsets 2,3) -> next field at offset 4
	}
	code = append(code, u32b(27)...) // default: relOffset(1)+27 = 28
	code = append(code, u32b(0)...)  // low
	code = append(code, u32b(2)...)  // high
	code = append(code, u32b(27)...) // case 0 -> 28
	code = append(code, u32b(27)...) // case 1 -> 28
	code = append(code, u32b(27)...) // case 2 -> 28
	code = append(code, opcodes.RETURN) // offset 28, every branch target

	codeBody := codeAttributeBody(1, 2, code, nil, 0, 0, nil)
	methodAttrs := attribute(codeAttrName, codeBody)
	method := memberInfo(opcodes.ACC_PUBLIC, mName, mDesc, 1, methodAttrs)

	cb := newClassBuilder(fx.cp, fx.major, opcodes.ACC_PUBLIC|opcodes.ACC_SUPER, aClass, objClass)
	cb.addMethod(method)

	reader, err := classfile.NewClassReader(cb.bytes())
	require.NoError(t, err)

	var gotLow, gotHigh int
	var gotTargets []*classfile.Label
	var gotDefault *classfile.Label
	var sawTableSwitch bool

	visitor := visitorutil.ClassVisitor{
		OnVisitMethod: func(access int, name, descriptor, signature string, exceptions []string) classfile.MethodVisitor {
			return visitorutil.MethodVisitor{
				OnVisitTableSwitchInsn: func(min, max int, dflt *classfile.Label, labels ...*classfile.Label) {
					sawTableSwitch = true
					gotLow, gotHigh, gotDefault, gotTargets = min, max, dflt, labels
				},
			}
		},
	}
	require.NoError(t, reader.Accept(visitor, 0))

	require.True(t, sawTableSwitch)
	assert.Equal(t, 0, gotLow)
	assert.Equal(t, 2, gotHigh)
	require.NotNil(t, gotDefault)
	require.Len(t, gotTargets, 3)
}

// TestExpandASMInsnsExpandsConditionalPseudoOpcode builds a method whose
// code consists of a single ASM-private extended-offset conditional branch
// (ASM_IFEQ, spec.md §4.6's "ASM-private extended jumps") and checks that,
// under EXPAND_ASM_INSNS, it expands to the complementary IFNE jumping to
// the instruction's own successor, an unconditional GOTO_W to the real
// target, and an F_INSERT frame marking the merge point.
func TestExpandASMInsnsExpandsConditionalPseudoOpcode(t *testing.T) {
	fx, aClass, objClass, codeAttrName := newMethodFixture()
	mName := fx.cp.utf8("m")
	mDesc := fx.cp.utf8("()V")

	code := []byte{
		byte(opcodes.ASM_IFEQ), 0x00, 0x06, // offset 0: branch to offset 6
		opcodes.RETURN, // offset 3: fallthrough
		opcodes.NOP,    // offset 4
		opcodes.NOP,    // offset 5
		opcodes.RETURN, // offset 6: target
	}
	codeBody := codeAttributeBody(1, 1, code, nil, 0, 0, nil)
	methodAttrs := attribute(codeAttrName, codeBody)
	method := memberInfo(opcodes.ACC_PUBLIC, mName, mDesc, 1, methodAttrs)

	cb := newClassBuilder(fx.cp, fx.major, opcodes.ACC_PUBLIC|opcodes.ACC_SUPER, aClass, objClass)
	cb.addMethod(method)

	reader, err := classfile.NewClassReader(cb.bytes())
	require.NoError(t, err)

	var jumpOpcodes []int
	var jumpLabels []*classfile.Label
	var labelsByOffsetOrder []*classfile.Label
	var frames []int

	visitor := visitorutil.ClassVisitor{
		OnVisitMethod: func(access int, name, descriptor, signature string, exceptions []string) classfile.MethodVisitor {
			return visitorutil.MethodVisitor{
				OnVisitJumpInsn: func(opcode int, label *classfile.Label) {
					jumpOpcodes = append(jumpOpcodes, opcode)
					jumpLabels = append(jumpLabels, label)
				},
				OnVisitFrame: func(typed int, numLocal int, local []classfile.VerificationType, numStack int, stack []classfile.VerificationType) {
					frames = append(frames, typed)
					assert.Equal(t, 0, numLocal)
					assert.Nil(t, local)
					assert.Equal(t, 0, numStack)
					assert.Nil(t, stack)
				},
				OnVisitLabel: func(label *classfile.Label) {
					labelsByOffsetOrder = append(labelsByOffsetOrder, label)
				},
			}
		},
	}
	require.NoError(t, reader.Accept(visitor, classfile.ExpandASMInsns))

	require.Len(t, jumpOpcodes, 2)
	assert.Equal(t, opcodes.IFNE, jumpOpcodes[0], "complementary condition of IFEQ is IFNE")
	assert.Equal(t, opcodes.GOTO_W, jumpOpcodes[1])
	require.Len(t, frames, 1)
	assert.Equal(t, opcodes.F_INSERT, frames[0])

	require.Len(t, labelsByOffsetOrder, 2, "labels at the fallthrough (offset 3) and the real target (offset 6)")
	assert.Same(t, labelsByOffsetOrder[0], jumpLabels[0], "IFNE targets the fallthrough label")
	assert.Same(t, labelsByOffsetOrder[1], jumpLabels[1], "GOTO_W targets the real branch target")
}

// TestAsmPseudoOpcodeWithoutExpandFlagIsBadOpcode checks that an
// ASM-private extended-offset opcode encountered without EXPAND_ASM_INSNS
// set is rejected as BadOpcode, since no valid on-disk ClassFile contains
// one outside a re-read of the decoder's own writer output (spec.md §1, §7).
func TestAsmPseudoOpcodeWithoutExpandFlagIsBadOpcode(t *testing.T) {
	fx, aClass, objClass, codeAttrName := newMethodFixture()
	mName := fx.cp.utf8("m")
	mDesc := fx.cp.utf8("()V")

	code := []byte{byte(opcodes.ASM_GOTO), 0x00, 0x00}
	codeBody := codeAttributeBody(1, 1, code, nil, 0, 0, nil)
	methodAttrs := attribute(codeAttrName, codeBody)
	method := memberInfo(opcodes.ACC_PUBLIC, mName, mDesc, 1, methodAttrs)

	cb := newClassBuilder(fx.cp, fx.major, opcodes.ACC_PUBLIC|opcodes.ACC_SUPER, aClass, objClass)
	cb.addMethod(method)

	reader, err := classfile.NewClassReader(cb.bytes())
	require.NoError(t, err)

	visitor := visitorutil.ClassVisitor{
		OnVisitMethod: func(access int, name, descriptor, signature string, exceptions []string) classfile.MethodVisitor {
			return visitorutil.MethodVisitor{}
		},
	}
	err = reader.Accept(visitor, 0)
	require.Error(t, err)
	var decodeErr *classfile.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, classfile.BadOpcode, decodeErr.Reason)
}
