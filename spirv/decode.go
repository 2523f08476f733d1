package spirv

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// DecodeErrorKind categorizes SPIR-V decode errors.
type DecodeErrorKind uint8

const (
	// ErrTooShort indicates the stream is shorter than the 5-word header.
	ErrTooShort DecodeErrorKind = iota

	// ErrBadMagic indicates the first word is not the SPIR-V magic number.
	ErrBadMagic

	// ErrBadSchema indicates a nonzero instruction schema field.
	ErrBadSchema

	// ErrZeroWordCount indicates an instruction with a zero length field.
	ErrZeroWordCount

	// ErrTruncated indicates an instruction that runs past the end of the stream.
	ErrTruncated

	// ErrIDOutOfBounds indicates a result ID not below the declared bound.
	ErrIDOutOfBounds

	// ErrDuplicateID indicates two instructions defining the same result ID.
	ErrDuplicateID

	// ErrMisaligned indicates a byte buffer whose length is not a multiple of 4.
	ErrMisaligned
)

// String returns a human-readable error kind name.
func (k DecodeErrorKind) String() string {
	switch k {
	case ErrTooShort:
		return "TooShort"
	case ErrBadMagic:
		return "BadMagic"
	case ErrBadSchema:
		return "BadSchema"
	case ErrZeroWordCount:
		return "ZeroWordCount"
	case ErrTruncated:
		return "Truncated"
	case ErrIDOutOfBounds:
		return "IDOutOfBounds"
	case ErrDuplicateID:
		return "DuplicateID"
	case ErrMisaligned:
		return "Misaligned"
	default:
		return "Unknown"
	}
}

// DecodeError represents a failure to parse a SPIR-V binary.
type DecodeError struct {
	// Kind categorizes the error.
	Kind DecodeErrorKind

	// Offset is the word offset at which the error was detected.
	Offset int

	// Message provides details about the error.
	Message string
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("spirv %s at word %d: %s", e.Kind, e.Offset, e.Message)
}

// Instruction is a single decoded SPIR-V instruction. Operands holds every
// word after the opcode word, unmodified.
type Instruction struct {
	Opcode   OpCode
	Operands []uint32
}

// Encode returns the instruction as words, including the leading opcode word.
func (in *Instruction) Encode() []uint32 {
	words := make([]uint32, 0, len(in.Operands)+1)
	words = append(words, uint32(len(in.Operands)+1)<<16|uint32(in.Opcode))
	return append(words, in.Operands...)
}

// OperandString decodes the null-terminated UTF-8 string starting at operand
// index start, returning the string and the index of the first operand after
// it.
func (in *Instruction) OperandString(start int) (string, int) {
	var sb strings.Builder
	for i := start; i < len(in.Operands); i++ {
		word := in.Operands[i]
		for shift := 0; shift < 32; shift += 8 {
			b := byte(word >> shift)
			if b == 0 {
				return sb.String(), i + 1
			}
			sb.WriteByte(b)
		}
	}
	return sb.String(), len(in.Operands)
}

// ResultID returns the result ID defined by this instruction, if it has one.
func (in *Instruction) ResultID() (uint32, bool) {
	switch pos := resultPosition(in.Opcode); pos {
	case 0, 1:
		if pos < len(in.Operands) {
			return in.Operands[pos], true
		}
	}
	return 0, false
}

// ResultType returns the result type ID of this instruction, if it has one.
func (in *Instruction) ResultType() (uint32, bool) {
	if resultPosition(in.Opcode) == 1 && len(in.Operands) >= 1 {
		return in.Operands[0], true
	}
	return 0, false
}

// resultPosition returns the operand index holding the result ID for opcodes
// this package indexes, or -1. Position 1 implies a result type at 0.
func resultPosition(op OpCode) int {
	switch op {
	case OpString, OpExtInstImport, OpLabel,
		OpTypeVoid, OpTypeBool, OpTypeInt, OpTypeFloat, OpTypeVector,
		OpTypeMatrix, OpTypeImage, OpTypeSampler, OpTypeSampledImage,
		OpTypeArray, OpTypeRuntimeArray, OpTypeStruct, OpTypeOpaque,
		OpTypePointer, OpTypeFunction:
		return 0
	case OpUndef, OpExtInst,
		OpConstantTrue, OpConstantFalse, OpConstant, OpConstantComposite,
		OpConstantSampler, OpConstantNull,
		OpSpecConstantTrue, OpSpecConstantFalse, OpSpecConstant,
		OpSpecConstantComposite, OpSpecConstantOp,
		OpFunction, OpFunctionParameter, OpFunctionCall, OpVariable,
		OpImageTexelPointer, OpLoad,
		OpAccessChain, OpInBoundsAccessChain, OpPtrAccessChain, OpArrayLength,
		OpVectorShuffle, OpCompositeConstruct, OpCompositeExtract,
		OpCompositeInsert, OpCopyObject, OpSampledImage, OpImage, OpPhi,
		OpImageSampleImplicitLod, OpImageSampleExplicitLod,
		OpImageSampleDrefImplicitLod, OpImageSampleDrefExplicitLod,
		OpImageSampleProjImplicitLod, OpImageSampleProjExplicitLod,
		OpImageSampleProjDrefImplicitLod, OpImageSampleProjDrefExplicitLod,
		OpImageFetch, OpImageGather, OpImageDrefGather, OpImageRead,
		OpImageQuerySizeLod, OpImageQuerySize, OpImageQueryLod,
		OpImageQueryLevels, OpImageQuerySamples,
		OpImageSparseSampleImplicitLod, OpImageSparseSampleExplicitLod,
		OpImageSparseSampleDrefImplicitLod, OpImageSparseSampleDrefExplicitLod,
		OpImageSparseSampleProjImplicitLod, OpImageSparseSampleProjExplicitLod,
		OpImageSparseSampleProjDrefImplicitLod, OpImageSparseSampleProjDrefExplicitLod,
		OpImageSparseFetch, OpImageSparseGather, OpImageSparseDrefGather,
		OpImageSparseRead,
		OpAtomicLoad, OpAtomicExchange, OpAtomicCompareExchange,
		OpAtomicCompareExchangeWeak, OpAtomicIIncrement, OpAtomicIDecrement,
		OpAtomicIAdd, OpAtomicISub, OpAtomicSMin, OpAtomicUMin,
		OpAtomicSMax, OpAtomicUMax, OpAtomicAnd, OpAtomicOr, OpAtomicXor:
		return 1
	}
	return -1
}

// Annotation is a single decoration applied to an ID or a struct member.
type Annotation struct {
	Decoration Decoration
	Operands   []uint32
}

// Value returns the first decoration operand, or 0 if there is none.
func (a Annotation) Value() uint32 {
	if len(a.Operands) > 0 {
		return a.Operands[0]
	}
	return 0
}

// Module is a decoded SPIR-V module: the instruction stream plus side tables
// built during decoding. A Module is immutable after Decode returns;
// Specialize produces a new Module rather than mutating the receiver.
type Module struct {
	Version   Version
	Generator uint32
	Bound     uint32
	Schema    uint32

	// Instructions is the full instruction stream in module order.
	Instructions []Instruction

	defs              map[uint32]int
	names             map[uint32]string
	memberNames       map[uint32]map[uint32]string
	decorations       map[uint32][]Annotation
	memberDecorations map[uint32]map[uint32][]Annotation
	capabilities      []Capability
	extensions        []string
	entryPoints       []int
	executionModes    []int
}

// BytesToWords converts a SPIR-V byte buffer to 32-bit words. The buffer
// length must be a multiple of 4; the words are read little-endian.
func BytesToWords(data []byte) ([]uint32, error) {
	if len(data)%4 != 0 {
		return nil, &DecodeError{
			Kind:    ErrMisaligned,
			Message: fmt.Sprintf("byte length %d is not a multiple of 4", len(data)),
		}
	}
	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return words, nil
}

// Decode parses a SPIR-V word stream into a Module.
//
// The header and the instruction framing are validated; instruction operands
// are not. Unknown opcodes are kept as opaque instructions.
func Decode(words []uint32) (*Module, error) {
	return decode(words, true)
}

// DecodeUnchecked parses a SPIR-V word stream without validating the header,
// framing, or ID assignments. The caller must have validated the binary
// through an external mechanism; passing an invalid binary is undefined
// behavior.
func DecodeUnchecked(words []uint32) *Module {
	m, _ := decode(words, false)
	return m
}

func decode(words []uint32, checked bool) (*Module, error) {
	if checked {
		if len(words) < HeaderWords {
			return nil, &DecodeError{
				Kind:    ErrTooShort,
				Message: fmt.Sprintf("stream has %d words, header needs %d", len(words), HeaderWords),
			}
		}
		if words[0] != MagicNumber {
			return nil, &DecodeError{
				Kind:    ErrBadMagic,
				Message: fmt.Sprintf("got 0x%08X, want 0x%08X", words[0], MagicNumber),
			}
		}
		if words[4] != 0 {
			return nil, &DecodeError{
				Kind:    ErrBadSchema,
				Offset:  4,
				Message: fmt.Sprintf("instruction schema %d, want 0", words[4]),
			}
		}
	}

	m := &Module{
		Version:           VersionFromWord(words[1]),
		Generator:         words[2],
		Bound:             words[3],
		Schema:            words[4],
		defs:              make(map[uint32]int),
		names:             make(map[uint32]string),
		memberNames:       make(map[uint32]map[uint32]string),
		decorations:       make(map[uint32][]Annotation),
		memberDecorations: make(map[uint32]map[uint32][]Annotation),
	}

	offset := HeaderWords
	for offset < len(words) {
		first := words[offset]
		wordCount := int(first >> 16)
		if checked {
			if wordCount == 0 {
				return nil, &DecodeError{
					Kind:    ErrZeroWordCount,
					Offset:  offset,
					Message: "instruction declares zero words",
				}
			}
			if offset+wordCount > len(words) {
				return nil, &DecodeError{
					Kind:   ErrTruncated,
					Offset: offset,
					Message: fmt.Sprintf("instruction needs %d words, %d remain",
						wordCount, len(words)-offset),
				}
			}
		}

		operands := make([]uint32, wordCount-1)
		copy(operands, words[offset+1:offset+wordCount])
		m.Instructions = append(m.Instructions, Instruction{
			Opcode:   OpCode(first & 0xFFFF),
			Operands: operands,
		})
		offset += wordCount
	}

	if err := m.index(checked); err != nil {
		return nil, err
	}
	return m, nil
}

// index rebuilds the side tables from the instruction stream.
func (m *Module) index(checked bool) error {
	for i := range m.Instructions {
		in := &m.Instructions[i]

		if id, ok := in.ResultID(); ok {
			if checked {
				if id == 0 || id >= m.Bound {
					return &DecodeError{
						Kind:    ErrIDOutOfBounds,
						Message: fmt.Sprintf("result ID %d is not below bound %d", id, m.Bound),
					}
				}
				if _, dup := m.defs[id]; dup {
					return &DecodeError{
						Kind:    ErrDuplicateID,
						Message: fmt.Sprintf("result ID %d is defined twice", id),
					}
				}
			}
			m.defs[id] = i
		}

		switch in.Opcode {
		case OpCapability:
			if len(in.Operands) >= 1 {
				m.capabilities = append(m.capabilities, Capability(in.Operands[0]))
			}
		case OpExtension:
			name, _ := in.OperandString(0)
			m.extensions = append(m.extensions, name)
		case OpEntryPoint:
			m.entryPoints = append(m.entryPoints, i)
		case OpExecutionMode:
			m.executionModes = append(m.executionModes, i)
		case OpName:
			if len(in.Operands) >= 1 {
				name, _ := in.OperandString(1)
				m.names[in.Operands[0]] = name
			}
		case OpMemberName:
			if len(in.Operands) >= 2 {
				name, _ := in.OperandString(2)
				members := m.memberNames[in.Operands[0]]
				if members == nil {
					members = make(map[uint32]string)
					m.memberNames[in.Operands[0]] = members
				}
				members[in.Operands[1]] = name
			}
		case OpDecorate:
			if len(in.Operands) >= 2 {
				id := in.Operands[0]
				m.decorations[id] = append(m.decorations[id], Annotation{
					Decoration: Decoration(in.Operands[1]),
					Operands:   in.Operands[2:],
				})
			}
		case OpMemberDecorate:
			if len(in.Operands) >= 3 {
				id, member := in.Operands[0], in.Operands[1]
				members := m.memberDecorations[id]
				if members == nil {
					members = make(map[uint32][]Annotation)
					m.memberDecorations[id] = members
				}
				members[member] = append(members[member], Annotation{
					Decoration: Decoration(in.Operands[2]),
					Operands:   in.Operands[3:],
				})
			}
		}
	}
	return nil
}

// Def returns the instruction defining the given result ID, or nil.
func (m *Module) Def(id uint32) *Instruction {
	if i, ok := m.defs[id]; ok {
		return &m.Instructions[i]
	}
	return nil
}

// Name returns the debug name attached to an ID via OpName.
func (m *Module) Name(id uint32) (string, bool) {
	name, ok := m.names[id]
	return name, ok
}

// MemberName returns the debug name attached to a struct member via
// OpMemberName.
func (m *Module) MemberName(id, member uint32) (string, bool) {
	name, ok := m.memberNames[id][member]
	return name, ok
}

// Decorations returns all decorations applied to an ID.
func (m *Module) Decorations(id uint32) []Annotation {
	return m.decorations[id]
}

// DecorationValue returns the first operand of the given decoration on an ID.
func (m *Module) DecorationValue(id uint32, dec Decoration) (uint32, bool) {
	for _, a := range m.decorations[id] {
		if a.Decoration == dec {
			return a.Value(), true
		}
	}
	return 0, false
}

// HasDecoration reports whether an ID carries the given decoration.
func (m *Module) HasDecoration(id uint32, dec Decoration) bool {
	for _, a := range m.decorations[id] {
		if a.Decoration == dec {
			return true
		}
	}
	return false
}

// MemberDecorationValue returns the first operand of the given decoration on
// a struct member.
func (m *Module) MemberDecorationValue(id, member uint32, dec Decoration) (uint32, bool) {
	for _, a := range m.memberDecorations[id][member] {
		if a.Decoration == dec {
			return a.Value(), true
		}
	}
	return 0, false
}

// HasMemberDecoration reports whether a struct member carries the given
// decoration.
func (m *Module) HasMemberDecoration(id, member uint32, dec Decoration) bool {
	for _, a := range m.memberDecorations[id][member] {
		if a.Decoration == dec {
			return true
		}
	}
	return false
}

// MemberDecorations returns all decorations applied to a struct member.
func (m *Module) MemberDecorations(id, member uint32) []Annotation {
	return m.memberDecorations[id][member]
}

// Capabilities returns the capabilities declared by the module, in
// declaration order.
func (m *Module) Capabilities() []Capability {
	return m.capabilities
}

// Extensions returns the extension names declared by the module, in
// declaration order.
func (m *Module) Extensions() []string {
	return m.extensions
}

// EntryPoints returns the OpEntryPoint instructions, in declaration order.
func (m *Module) EntryPoints() []*Instruction {
	eps := make([]*Instruction, len(m.entryPoints))
	for i, idx := range m.entryPoints {
		eps[i] = &m.Instructions[idx]
	}
	return eps
}

// ExecutionModes returns the OpExecutionMode instructions, in declaration
// order.
func (m *Module) ExecutionModes() []*Instruction {
	ems := make([]*Instruction, len(m.executionModes))
	for i, idx := range m.executionModes {
		ems[i] = &m.Instructions[idx]
	}
	return ems
}

// Words re-encodes the module to a word stream, header included.
func (m *Module) Words() []uint32 {
	total := HeaderWords
	for i := range m.Instructions {
		total += len(m.Instructions[i].Operands) + 1
	}
	words := make([]uint32, 0, total)
	words = append(words, MagicNumber, m.Version.Word(), m.Generator, m.Bound, m.Schema)
	for i := range m.Instructions {
		words = append(words, m.Instructions[i].Encode()...)
	}
	return words
}
