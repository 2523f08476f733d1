package spirv

// Version represents a SPIR-V version.
type Version struct {
	Major uint8
	Minor uint8
}

// Common SPIR-V versions
var (
	Version1_0 = Version{1, 0}
	Version1_1 = Version{1, 1}
	Version1_2 = Version{1, 2}
	Version1_3 = Version{1, 3}
	Version1_4 = Version{1, 4}
	Version1_5 = Version{1, 5}
	Version1_6 = Version{1, 6}
)

// Word returns the version in SPIR-V header word format.
func (v Version) Word() uint32 {
	return (uint32(v.Major) << 16) | (uint32(v.Minor) << 8)
}

// VersionFromWord decodes a SPIR-V header version word.
func VersionFromWord(word uint32) Version {
	return Version{
		Major: uint8((word >> 16) & 0xFF),
		Minor: uint8((word >> 8) & 0xFF),
	}
}

// AtLeast reports whether v is the same or a later version than other.
func (v Version) AtLeast(other Version) bool {
	if v.Major != other.Major {
		return v.Major > other.Major
	}
	return v.Minor >= other.Minor
}

// SPIR-V magic number and constants
const (
	MagicNumber = 0x07230203
	GeneratorID = 0x00000000 // Unregistered generator

	// HeaderWords is the fixed length of the module header.
	HeaderWords = 5
)

// Boolean sentinel values used when a boolean specialization constant is
// written as raw bytes (VkBool32 representation).
const (
	BoolFalseWord uint32 = 0
	BoolTrueWord  uint32 = 1
)
