package spirv

import "encoding/binary"

// Clone returns a deep copy of the module. The copy shares nothing with the
// receiver and may be mutated freely before its side tables are rebuilt.
func (m *Module) Clone() *Module {
	clone := &Module{
		Version:           m.Version,
		Generator:         m.Generator,
		Bound:             m.Bound,
		Schema:            m.Schema,
		Instructions:      make([]Instruction, len(m.Instructions)),
		defs:              make(map[uint32]int, len(m.defs)),
		names:             make(map[uint32]string, len(m.names)),
		memberNames:       make(map[uint32]map[uint32]string, len(m.memberNames)),
		decorations:       make(map[uint32][]Annotation, len(m.decorations)),
		memberDecorations: make(map[uint32]map[uint32][]Annotation, len(m.memberDecorations)),
	}
	for i := range m.Instructions {
		operands := make([]uint32, len(m.Instructions[i].Operands))
		copy(operands, m.Instructions[i].Operands)
		clone.Instructions[i] = Instruction{
			Opcode:   m.Instructions[i].Opcode,
			Operands: operands,
		}
	}
	// Side tables point into Operands slices, so they are rebuilt rather
	// than copied.
	_ = clone.index(false)
	return clone
}

// Specialize returns a copy of the module in which the literal operands of
// OpSpecConstant instructions are replaced with the given byte values, keyed
// by the SpecId decoration. Boolean spec constants are rewritten by switching
// between OpSpecConstantTrue and OpSpecConstantFalse based on whether the
// value bytes are all zero.
//
// Values for constant IDs that do not occur in the module are ignored.
// Instruction count and ID assignments are never changed; only literal
// operand words are. The receiver is not modified.
func (m *Module) Specialize(values map[uint32][]byte) *Module {
	clone := m.Clone()
	for i := range clone.Instructions {
		in := &clone.Instructions[i]
		switch in.Opcode {
		case OpSpecConstant, OpSpecConstantTrue, OpSpecConstantFalse:
		default:
			continue
		}
		id, ok := in.ResultID()
		if !ok {
			continue
		}
		constantID, ok := clone.DecorationValue(id, DecorationSpecId)
		if !ok {
			continue
		}
		value, ok := values[constantID]
		if !ok {
			continue
		}

		if in.Opcode == OpSpecConstantTrue || in.Opcode == OpSpecConstantFalse {
			if isAllZero(value) {
				in.Opcode = OpSpecConstantFalse
			} else {
				in.Opcode = OpSpecConstantTrue
			}
			continue
		}

		// OpSpecConstant: operands are [result type, result, literal...].
		// The literal occupies one word per 4 bytes of declared width.
		for w := 0; w*4 < len(value) && 2+w < len(in.Operands); w++ {
			var word [4]byte
			copy(word[:], value[w*4:])
			in.Operands[2+w] = binary.LittleEndian.Uint32(word[:])
		}
	}
	return clone
}

func isAllZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
