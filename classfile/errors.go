package classfile

import "fmt"

// Reason identifies which structural invariant a DecodeError violates. This
// is the one-kind, several-reasons taxonomy: every failure the decoder
// raises is a *DecodeError, distinguished by Reason rather than by Go error
// type, so that callers can switch on it without a type-assertion per case.
type Reason int

const (
	// UnsupportedVersion is raised when major_version exceeds Config.MaxMajorVersion.
	UnsupportedVersion Reason = iota
	// TruncatedInput is raised when a declared length exceeds the remaining buffer.
	TruncatedInput
	// BadConstantTag is raised for an unknown or malformed constant-pool tag.
	BadConstantTag
	// BadOpcode is raised for an unknown primary opcode, or an unknown opcode after wide.
	BadOpcode
	// BadFrameType is raised for a reserved frame_type byte ([128, 247)).
	BadFrameType
	// BadTypeAnnotationTarget is raised for a target_type byte that cannot appear at the current site.
	BadTypeAnnotationTarget
	// BadAnnotationValueTag is raised for an unknown tag in element_value.
	BadAnnotationValueTag
)

func (r Reason) String() string {
	switch r {
	case UnsupportedVersion:
		return "unsupported version"
	case TruncatedInput:
		return "truncated input"
	case BadConstantTag:
		return "bad constant tag"
	case BadOpcode:
		return "bad opcode"
	case BadFrameType:
		return "bad frame type"
	case BadTypeAnnotationTarget:
		return "bad type annotation target"
	case BadAnnotationValueTag:
		return "bad annotation value tag"
	default:
		return "decode error"
	}
}

// DecodeError is the single error kind raised by this package. It always
// carries the byte offset within the input buffer at which the problem was
// detected (spec requirement: "every decode failure carries a byte offset").
type DecodeError struct {
	Offset int
	Reason Reason
	Msg    string
}

func (e *DecodeError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("classfile: %s at offset %d", e.Reason, e.Offset)
	}
	return fmt.Sprintf("classfile: %s at offset %d: %s", e.Reason, e.Offset, e.Msg)
}

func newDecodeError(offset int, reason Reason, format string, args ...interface{}) *DecodeError {
	return &DecodeError{
		Offset: offset,
		Reason: reason,
		Msg:    fmt.Sprintf(format, args...),
	}
}
