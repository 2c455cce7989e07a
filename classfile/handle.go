package classfile

// Handle is the decoded value of a CONSTANT_MethodHandle_info entry: the
// reference_kind plus the resolved owner/name/descriptor of the field or
// method it points at (spec.md §4.12). It is also embedded in a decoded
// CONSTANT_Dynamic / CONSTANT_InvokeDynamic value as the bootstrap method.
//
// The teacher referenced *asm.Handle from asm/helper/visitors.go and from
// the commented-out body of readConst, but never defined the type.
type Handle struct {
	// Tag is one of the H_* reference kinds in the opcodes package
	// (H_GETFIELD, H_INVOKESTATIC, ...).
	Tag         int
	Owner       string
	Name        string
	Descriptor  string
	IsInterface bool
}

// ConstantDynamic is the decoded value of a CONSTANT_Dynamic entry: a name
// and descriptor plus the bootstrap method handle and its resolved static
// arguments (spec.md §3, "CONSTANT_Dynamic entries are decoded lazily").
type ConstantDynamic struct {
	Name          string
	Descriptor    string
	Bootstrap     Handle
	BootstrapArgs []interface{}
}
