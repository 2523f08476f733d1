package shader

import "fmt"

// ErrorKind categorizes shader reflection and validation errors.
type ErrorKind uint8

const (
	// ErrSpecializationType indicates an override value whose type does not
	// match the declared type of the specialization constant.
	ErrSpecializationType ErrorKind = iota

	// ErrVersionNotSupported indicates a SPIR-V version newer than the
	// target environment supports.
	ErrVersionNotSupported

	// ErrCapabilityNotSupported indicates a required capability the target
	// environment does not declare.
	ErrCapabilityNotSupported

	// ErrExtensionNotSupported indicates a required SPIR-V extension the
	// target environment does not declare.
	ErrExtensionNotSupported

	// ErrDescriptorTypesDisjoint indicates two merged binding requirements
	// with no descriptor type in common.
	ErrDescriptorTypesDisjoint

	// ErrImageFormatConflict indicates two merged binding requirements with
	// differing declared image formats.
	ErrImageFormatConflict

	// ErrImageMultisampledConflict indicates two merged binding requirements
	// that disagree on image multisampling.
	ErrImageMultisampledConflict

	// ErrImageScalarTypeConflict indicates two merged binding requirements
	// with differing image scalar types.
	ErrImageScalarTypeConflict

	// ErrImageViewTypeConflict indicates two merged binding requirements
	// with differing image view types.
	ErrImageViewTypeConflict

	// ErrElementCount indicates two interfaces with differing element counts.
	ErrElementCount

	// ErrMissingLocation indicates an interface location with no matching
	// entry on the other side.
	ErrMissingLocation

	// ErrTypeMismatch indicates two interface entries with differing types
	// at the same location.
	ErrTypeMismatch
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrSpecializationType:
		return "SpecializationType"
	case ErrVersionNotSupported:
		return "VersionNotSupported"
	case ErrCapabilityNotSupported:
		return "CapabilityNotSupported"
	case ErrExtensionNotSupported:
		return "ExtensionNotSupported"
	case ErrDescriptorTypesDisjoint:
		return "DescriptorTypesDisjoint"
	case ErrImageFormatConflict:
		return "ImageFormatConflict"
	case ErrImageMultisampledConflict:
		return "ImageMultisampledConflict"
	case ErrImageScalarTypeConflict:
		return "ImageScalarTypeConflict"
	case ErrImageViewTypeConflict:
		return "ImageViewTypeConflict"
	case ErrElementCount:
		return "ElementCount"
	case ErrMissingLocation:
		return "MissingLocation"
	case ErrTypeMismatch:
		return "TypeMismatch"
	default:
		return "Unknown"
	}
}

// Error represents a shader reflection, specialization or validation error.
type Error struct {
	// Kind categorizes the error.
	Kind ErrorKind

	// Message provides details about the error.
	Message string

	// Location optionally identifies the interface location the error
	// refers to.
	Location *uint32
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Location != nil {
		return fmt.Sprintf("shader %s at location %d: %s", e.Kind, *e.Location, e.Message)
	}
	return fmt.Sprintf("shader %s: %s", e.Kind, e.Message)
}

// NewError creates a new shader error.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
	}
}

// NewLocationError creates a new shader error tied to an interface location.
func NewLocationError(kind ErrorKind, message string, location uint32) *Error {
	return &Error{
		Kind:     kind,
		Message:  message,
		Location: &location,
	}
}
