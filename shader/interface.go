package shader

import "fmt"

// ShaderInterfaceEntryType describes the type of one interface variable.
type ShaderInterfaceEntryType struct {
	// BaseType is the scalar type of the components.
	BaseType ScalarType

	// NumComponents is the vector width, 1 for scalars.
	NumComponents uint32

	// NumElements is the array length or matrix column count, 1 otherwise.
	NumElements uint32

	// Is64Bit marks 64-bit wide components.
	Is64Bit bool
}

// NumLocations returns the number of location slots the type occupies.
//
// 64-bit types occupy two slots per element and are not supported here;
// asking for their width panics rather than returning a silently wrong span.
func (t ShaderInterfaceEntryType) NumLocations() uint32 {
	if t.Is64Bit {
		panic("shader: location spans of 64-bit interface types are not supported")
	}
	return t.NumElements
}

func (t ShaderInterfaceEntryType) String() string {
	s := t.BaseType.String()
	if t.NumComponents > 1 {
		s = fmt.Sprintf("%sx%d", s, t.NumComponents)
	}
	if t.NumElements > 1 {
		s = fmt.Sprintf("%s[%d]", s, t.NumElements)
	}
	return s
}

// ShaderInterfaceEntry is one input or output variable of an entry point.
type ShaderInterfaceEntry struct {
	// Location is the first location slot the variable occupies.
	Location uint32

	// Index distinguishes dual-source blending outputs; 0 otherwise.
	Index uint32

	// Component is the starting component within the location.
	Component uint32

	// Name is the debug name, empty when the binary carries none.
	Name string

	Type ShaderInterfaceEntryType
}

// ShaderInterface is the set of input or output variables an entry point
// exposes at a stage boundary. At most one entry occupies a given location.
type ShaderInterface struct {
	entries []ShaderInterfaceEntry
}

// NewShaderInterface creates an interface from its entries.
func NewShaderInterface(entries []ShaderInterfaceEntry) ShaderInterface {
	return ShaderInterface{entries: entries}
}

// Entries returns the interface variables.
func (si ShaderInterface) Entries() []ShaderInterfaceEntry {
	return si.entries
}

// EntryByLocation returns the entry whose location span covers the given
// slot, or nil.
func (si ShaderInterface) EntryByLocation(location uint32) *ShaderInterfaceEntry {
	for i := range si.entries {
		e := &si.entries[i]
		if location >= e.Location && location < e.Location+e.Type.NumLocations() {
			return e
		}
	}
	return nil
}

// Matches checks that a downstream input interface is structurally compatible
// with this output interface: equal element counts, and for every location
// slot an output entry occupies, an input entry of the exact same type at
// that slot. Names are deliberately not compared; the location is the
// binding contract.
func (si ShaderInterface) Matches(input ShaderInterface) error {
	if len(si.entries) != len(input.entries) {
		return NewError(ErrElementCount,
			fmt.Sprintf("output has %d elements, input has %d",
				len(si.entries), len(input.entries)))
	}

	for i := range si.entries {
		out := &si.entries[i]
		for loc := out.Location; loc < out.Location+out.Type.NumLocations(); loc++ {
			in := input.EntryByLocation(loc)
			if in == nil {
				return NewLocationError(ErrMissingLocation,
					"output location has no matching input", loc)
			}
			if in.Type != out.Type {
				return NewLocationError(ErrTypeMismatch,
					fmt.Sprintf("output type %s does not match input type %s",
						out.Type, in.Type), loc)
			}
		}
	}
	return nil
}
