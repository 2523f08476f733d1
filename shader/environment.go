package shader

import (
	"fmt"

	"github.com/gogpu/spv/spirv"
)

// Environment describes what the target platform supports. Module creation
// validates a decoded binary's version, capabilities and extensions against
// it; this check is distinct from decoding, which only validates structure.
//
// A nil *Environment accepts every binary.
type Environment struct {
	// Version is the highest SPIR-V version the target accepts.
	Version spirv.Version

	// Capabilities lists the capabilities the target supports.
	Capabilities []spirv.Capability

	// Extensions lists the SPIR-V extensions the target supports.
	Extensions []string
}

// Validate checks a decoded module against the environment.
func (e *Environment) Validate(m *spirv.Module) error {
	if e == nil {
		return nil
	}
	if !e.Version.AtLeast(m.Version) {
		return NewError(ErrVersionNotSupported,
			fmt.Sprintf("module requires SPIR-V %d.%d, target supports up to %d.%d",
				m.Version.Major, m.Version.Minor, e.Version.Major, e.Version.Minor))
	}
	for _, capability := range m.Capabilities() {
		if !e.supportsCapability(capability) {
			return NewError(ErrCapabilityNotSupported,
				fmt.Sprintf("module requires capability %s", capability))
		}
	}
	for _, extension := range m.Extensions() {
		if !e.supportsExtension(extension) {
			return NewError(ErrExtensionNotSupported,
				fmt.Sprintf("module requires extension %s", extension))
		}
	}
	return nil
}

func (e *Environment) supportsCapability(capability spirv.Capability) bool {
	for _, c := range e.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

func (e *Environment) supportsExtension(extension string) bool {
	for _, x := range e.Extensions {
		if x == extension {
			return true
		}
	}
	return false
}
