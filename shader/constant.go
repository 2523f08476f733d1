package shader

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/spv/spirv"
)

// ConstantKind identifies the declared type of a specialization constant.
type ConstantKind uint8

const (
	ConstantBool ConstantKind = iota
	ConstantI8
	ConstantI16
	ConstantI32
	ConstantI64
	ConstantU8
	ConstantU16
	ConstantU32
	ConstantU64
	ConstantF16
	ConstantF32
	ConstantF64
)

var constantKindNames = map[ConstantKind]string{
	ConstantBool: "Bool",
	ConstantI8:   "I8", ConstantI16: "I16", ConstantI32: "I32", ConstantI64: "I64",
	ConstantU8: "U8", ConstantU16: "U16", ConstantU32: "U32", ConstantU64: "U64",
	ConstantF16: "F16", ConstantF32: "F32", ConstantF64: "F64",
}

func (k ConstantKind) String() string {
	if name, ok := constantKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ConstantKind(%d)", uint8(k))
}

// SpecializationConstant is the value of a specialization constant: its
// declared type plus the raw value bits. The zero value is a false boolean.
type SpecializationConstant struct {
	kind ConstantKind
	bits uint64
}

// BoolValue returns a boolean specialization constant.
func BoolValue(v bool) SpecializationConstant {
	var bits uint64
	if v {
		bits = 1
	}
	return SpecializationConstant{kind: ConstantBool, bits: bits}
}

// I8Value returns an 8-bit signed integer specialization constant.
func I8Value(v int8) SpecializationConstant {
	return SpecializationConstant{kind: ConstantI8, bits: uint64(uint8(v))}
}

// I16Value returns a 16-bit signed integer specialization constant.
func I16Value(v int16) SpecializationConstant {
	return SpecializationConstant{kind: ConstantI16, bits: uint64(uint16(v))}
}

// I32Value returns a 32-bit signed integer specialization constant.
func I32Value(v int32) SpecializationConstant {
	return SpecializationConstant{kind: ConstantI32, bits: uint64(uint32(v))}
}

// I64Value returns a 64-bit signed integer specialization constant.
func I64Value(v int64) SpecializationConstant {
	return SpecializationConstant{kind: ConstantI64, bits: uint64(v)}
}

// U8Value returns an 8-bit unsigned integer specialization constant.
func U8Value(v uint8) SpecializationConstant {
	return SpecializationConstant{kind: ConstantU8, bits: uint64(v)}
}

// U16Value returns a 16-bit unsigned integer specialization constant.
func U16Value(v uint16) SpecializationConstant {
	return SpecializationConstant{kind: ConstantU16, bits: uint64(v)}
}

// U32Value returns a 32-bit unsigned integer specialization constant.
func U32Value(v uint32) SpecializationConstant {
	return SpecializationConstant{kind: ConstantU32, bits: uint64(v)}
}

// U64Value returns a 64-bit unsigned integer specialization constant.
func U64Value(v uint64) SpecializationConstant {
	return SpecializationConstant{kind: ConstantU64, bits: v}
}

// F16Value returns a 16-bit float specialization constant from its raw bits.
func F16Value(bits uint16) SpecializationConstant {
	return SpecializationConstant{kind: ConstantF16, bits: uint64(bits)}
}

// F32Value returns a 32-bit float specialization constant.
func F32Value(v float32) SpecializationConstant {
	return SpecializationConstant{kind: ConstantF32, bits: uint64(math.Float32bits(v))}
}

// F64Value returns a 64-bit float specialization constant.
func F64Value(v float64) SpecializationConstant {
	return SpecializationConstant{kind: ConstantF64, bits: math.Float64bits(v)}
}

// Kind returns the declared type of the constant.
func (c SpecializationConstant) Kind() ConstantKind {
	return c.kind
}

// SameType reports whether two constants have the same declared type.
// Specialization overrides are only valid against same-typed defaults.
func (c SpecializationConstant) SameType(other SpecializationConstant) bool {
	return c.kind == other.kind
}

// Bool returns the boolean value. Only meaningful for ConstantBool.
func (c SpecializationConstant) Bool() bool {
	return c.bits != 0
}

// Int returns the sign-extended integer value of a signed constant.
func (c SpecializationConstant) Int() int64 {
	switch c.kind {
	case ConstantI8:
		return int64(int8(c.bits))
	case ConstantI16:
		return int64(int16(c.bits))
	case ConstantI32:
		return int64(int32(c.bits))
	default:
		return int64(c.bits)
	}
}

// Uint returns the unsigned integer value of the constant.
func (c SpecializationConstant) Uint() uint64 {
	return c.bits
}

// Float returns the floating-point value of a float constant.
func (c SpecializationConstant) Float() float64 {
	switch c.kind {
	case ConstantF16:
		return float64(float16ToFloat32(uint16(c.bits)))
	case ConstantF32:
		return float64(math.Float32frombits(uint32(c.bits)))
	case ConstantF64:
		return math.Float64frombits(c.bits)
	default:
		return 0
	}
}

// Bytes returns the little-endian byte representation used when the value is
// written into a shader binary. Booleans expand to the 4-byte 0/1 sentinel of
// the target representation.
func (c SpecializationConstant) Bytes() []byte {
	switch c.kind {
	case ConstantBool:
		buf := make([]byte, 4)
		if c.bits != 0 {
			binary.LittleEndian.PutUint32(buf, 1)
		}
		return buf
	case ConstantI8, ConstantU8:
		return []byte{byte(c.bits)}
	case ConstantI16, ConstantU16, ConstantF16:
		buf := make([]byte, 2)
		binary.LittleEndian.PutUint16(buf, uint16(c.bits))
		return buf
	case ConstantI32, ConstantU32, ConstantF32:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, uint32(c.bits))
		return buf
	default:
		buf := make([]byte, 8)
		binary.LittleEndian.PutUint64(buf, c.bits)
		return buf
	}
}

// String formats the constant as "Kind(value)".
func (c SpecializationConstant) String() string {
	switch c.kind {
	case ConstantBool:
		return fmt.Sprintf("Bool(%t)", c.Bool())
	case ConstantI8, ConstantI16, ConstantI32, ConstantI64:
		return fmt.Sprintf("%s(%d)", c.kind, c.Int())
	case ConstantU8, ConstantU16, ConstantU32, ConstantU64:
		return fmt.Sprintf("%s(%d)", c.kind, c.Uint())
	default:
		return fmt.Sprintf("%s(%g)", c.kind, c.Float())
	}
}

// constantFromInstruction reinterprets a spec-constant instruction's literal
// words through its declared type. Returns false for unsupported types.
func constantFromInstruction(m *spirv.Module, in *spirv.Instruction) (SpecializationConstant, bool) {
	typeID, ok := in.ResultType()
	if !ok {
		return SpecializationConstant{}, false
	}
	typeDef := m.Def(typeID)
	if typeDef == nil {
		return SpecializationConstant{}, false
	}

	switch typeDef.Opcode {
	case spirv.OpTypeBool:
		return BoolValue(in.Opcode == spirv.OpSpecConstantTrue), true

	case spirv.OpTypeInt:
		if len(typeDef.Operands) < 3 || len(in.Operands) < 3 {
			return SpecializationConstant{}, false
		}
		width, signed := typeDef.Operands[1], typeDef.Operands[2] != 0
		bits := uint64(in.Operands[2])
		if width == 64 && len(in.Operands) >= 4 {
			bits |= uint64(in.Operands[3]) << 32
		}
		switch {
		case width == 8 && signed:
			return I8Value(int8(bits)), true
		case width == 8:
			return U8Value(uint8(bits)), true
		case width == 16 && signed:
			return I16Value(int16(bits)), true
		case width == 16:
			return U16Value(uint16(bits)), true
		case width == 32 && signed:
			return I32Value(int32(bits)), true
		case width == 32:
			return U32Value(uint32(bits)), true
		case width == 64 && signed:
			return I64Value(int64(bits)), true
		case width == 64:
			return U64Value(bits), true
		}
		return SpecializationConstant{}, false

	case spirv.OpTypeFloat:
		if len(typeDef.Operands) < 2 || len(in.Operands) < 3 {
			return SpecializationConstant{}, false
		}
		switch typeDef.Operands[1] {
		case 16:
			return F16Value(uint16(in.Operands[2])), true
		case 32:
			return SpecializationConstant{kind: ConstantF32, bits: uint64(in.Operands[2])}, true
		case 64:
			if len(in.Operands) < 4 {
				return SpecializationConstant{}, false
			}
			bits := uint64(in.Operands[2]) | uint64(in.Operands[3])<<32
			return SpecializationConstant{kind: ConstantF64, bits: bits}, true
		}
	}
	return SpecializationConstant{}, false
}

// float16ToFloat32 expands an IEEE 754 half-precision value.
func float16ToFloat32(h uint16) float32 {
	sign := uint32(h>>15) & 1
	exp := uint32(h>>10) & 0x1F
	frac := uint32(h) & 0x3FF

	var bits uint32
	switch {
	case exp == 0 && frac == 0:
		bits = sign << 31
	case exp == 0:
		// Subnormal: normalize.
		e := uint32(127 - 15 + 1)
		for frac&0x400 == 0 {
			frac <<= 1
			e--
		}
		frac &= 0x3FF
		bits = sign<<31 | e<<23 | frac<<13
	case exp == 0x1F:
		bits = sign<<31 | 0xFF<<23 | frac<<13
	default:
		bits = sign<<31 | (exp-15+127)<<23 | frac<<13
	}
	return math.Float32frombits(bits)
}
