package typereference

// Masks applied to the 32-bit target_type field of a type_annotation structure
// (JVMS 4.7.20) to retain only the bytes that are meaningful for a given sort
// of reference. The high byte is always the sort discriminant (one of the
// constants in typereference.go); the remaining bytes hold
// type_parameter_index, formal_parameter_index, throws_type_index or are
// unused (cleared to zero by the mask), depending on the sort.

// TypeParameterTargetMask keeps the sort byte and the type_parameter_index byte
// for CLASS_TYPE_PARAMETER / METHOD_TYPE_PARAMETER targets.
const TypeParameterTargetMask = 0xFFFF0000

// TypeParameterBoundTargetMask keeps the sort byte, the type_parameter_index
// byte and the bound_index byte for *_TYPE_PARAMETER_BOUND targets.
const TypeParameterBoundTargetMask = 0xFFFFFF00

// SuperTypeTargetMask keeps the sort byte and the two-byte supertype index for
// CLASS_EXTENDS targets.
const SuperTypeTargetMask = 0xFFFFFF00

// FormalParameterTargetMask keeps the sort byte and the formal_parameter_index
// byte for METHOD_FORMAL_PARAMETER targets.
const FormalParameterTargetMask = 0xFFFF0000

// ThrowsTargetMask keeps the sort byte and the two-byte throws_type_index for
// THROWS targets.
const ThrowsTargetMask = 0xFFFFFF00

// EmptyTargetMask keeps only the sort byte for targets with no extra payload
// in target_type itself (FIELD, METHOD_RETURN, METHOD_RECEIVER, INSTANCEOF,
// NEW, CONSTRUCTOR_REFERENCE, METHOD_REFERENCE).
const EmptyTargetMask = 0xFF000000

// ExceptionParameterTargetMask keeps the sort byte and the two-byte
// exception_table_index for EXCEPTION_PARAMETER targets.
const ExceptionParameterTargetMask = 0xFFFFFF00

// TypeArgumentTargetMask keeps the sort byte and the type_argument_index byte
// for CAST and the *_INVOCATION_TYPE_ARGUMENT / *_REFERENCE_TYPE_ARGUMENT
// targets.
const TypeArgumentTargetMask = 0xFFFF0000
