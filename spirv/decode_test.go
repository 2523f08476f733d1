package spirv

import (
	"errors"
	"testing"
)

// buildMinimal constructs a small compute module with a named uniform variable
// so decode tests have names, decorations and an entry point to index.
func buildMinimal(t *testing.T) []uint32 {
	t.Helper()

	b := NewModuleBuilder(Version1_3)
	b.AddCapability(CapabilityShader)
	b.SetMemoryModel(AddressingModelLogical, MemoryModelGLSL450)

	floatType := b.AddTypeFloat(32)
	structType := b.AddTypeStruct(floatType)
	ptrType := b.AddTypePointer(StorageClassUniform, structType)
	varID := b.AddVariable(ptrType, StorageClassUniform)

	b.AddName(varID, "params")
	b.AddMemberName(structType, 0, "scale")
	b.AddDecorate(structType, DecorationBlock)
	b.AddMemberDecorate(structType, 0, DecorationOffset, 0)
	b.AddDecorate(varID, DecorationDescriptorSet, 0)
	b.AddDecorate(varID, DecorationBinding, 2)

	voidType := b.AddTypeVoid()
	funcType := b.AddTypeFunction(voidType)
	funcID := b.AddFunction(funcType, voidType, FunctionControlNone)
	b.AddLabel()
	b.AddReturn()
	b.AddFunctionEnd()

	b.AddEntryPoint(ExecutionModelGLCompute, funcID, "main", nil)
	b.AddExecutionMode(funcID, ExecutionModeLocalSize, 8, 8, 1)

	return b.BuildWords()
}

func TestDecode_Header(t *testing.T) {
	words := buildMinimal(t)

	m, err := Decode(words)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if m.Version != Version1_3 {
		t.Errorf("Version: got %d.%d, want 1.3", m.Version.Major, m.Version.Minor)
	}
	if m.Generator != GeneratorID {
		t.Errorf("Generator: got 0x%08X, want 0x%08X", m.Generator, GeneratorID)
	}
	if m.Schema != 0 {
		t.Errorf("Schema: got %d, want 0", m.Schema)
	}
	if m.Bound == 0 {
		t.Error("Bound should be > 0")
	}
}

func TestDecode_Errors(t *testing.T) {
	valid := buildMinimal(t)

	badMagic := append([]uint32(nil), valid...)
	badMagic[0] = 0xDEADBEEF

	badSchema := append([]uint32(nil), valid...)
	badSchema[4] = 7

	zeroCount := append([]uint32(nil), valid...)
	zeroCount[HeaderWords] &= 0xFFFF // word count 0

	// Cut inside the first instruction (OpCapability is 2 words).
	truncated := append([]uint32(nil), valid[:HeaderWords+1]...)

	tests := []struct {
		name  string
		words []uint32
		kind  DecodeErrorKind
	}{
		{"too short", valid[:3], ErrTooShort},
		{"bad magic", badMagic, ErrBadMagic},
		{"bad schema", badSchema, ErrBadSchema},
		{"zero word count", zeroCount, ErrZeroWordCount},
		{"truncated instruction", truncated, ErrTruncated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.words)
			if err == nil {
				t.Fatal("Decode should have failed")
			}
			var decErr *DecodeError
			if !errors.As(err, &decErr) {
				t.Fatalf("error is %T, want *DecodeError", err)
			}
			if decErr.Kind != tt.kind {
				t.Errorf("error kind: got %s, want %s", decErr.Kind, tt.kind)
			}
		})
	}
}

func TestDecode_IDOutOfBounds(t *testing.T) {
	words := buildMinimal(t)
	words[3] = 1 // bound below every allocated ID

	_, err := Decode(words)
	var decErr *DecodeError
	if !errors.As(err, &decErr) || decErr.Kind != ErrIDOutOfBounds {
		t.Fatalf("got %v, want IDOutOfBounds error", err)
	}
}

func TestDecode_DuplicateID(t *testing.T) {
	b := NewModuleBuilder(Version1_0)
	b.AddCapability(CapabilityShader)
	b.SetMemoryModel(AddressingModelLogical, MemoryModelGLSL450)
	b.AddTypeFloat(32)
	words := b.BuildWords()

	// Repeat the OpTypeFloat instruction so its result ID is defined twice.
	inst := words[len(words)-3:]
	words = append(words, inst...)

	_, err := Decode(words)
	var decErr *DecodeError
	if !errors.As(err, &decErr) || decErr.Kind != ErrDuplicateID {
		t.Fatalf("got %v, want DuplicateID error", err)
	}
}

func TestDecodeUnchecked_AcceptsBadHeader(t *testing.T) {
	words := buildMinimal(t)
	words[0] = 0 // would fail Decode

	m := DecodeUnchecked(words)
	if m == nil {
		t.Fatal("DecodeUnchecked returned nil")
	}
	if len(m.Instructions) == 0 {
		t.Error("instructions should have been parsed")
	}
}

func TestDecode_SideTables(t *testing.T) {
	words := buildMinimal(t)

	m, err := Decode(words)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	caps := m.Capabilities()
	if len(caps) != 1 || caps[0] != CapabilityShader {
		t.Errorf("Capabilities: got %v, want [Shader]", caps)
	}

	// Find the variable by its debug name.
	var varID uint32
	for id := uint32(1); id < m.Bound; id++ {
		if name, ok := m.Name(id); ok && name == "params" {
			varID = id
		}
	}
	if varID == 0 {
		t.Fatal("variable 'params' not found by name")
	}

	def := m.Def(varID)
	if def == nil || def.Opcode != OpVariable {
		t.Fatalf("Def(%d): got %v, want OpVariable", varID, def)
	}

	set, ok := m.DecorationValue(varID, DecorationDescriptorSet)
	if !ok || set != 0 {
		t.Errorf("DescriptorSet: got %d (ok=%v), want 0", set, ok)
	}
	binding, ok := m.DecorationValue(varID, DecorationBinding)
	if !ok || binding != 2 {
		t.Errorf("Binding: got %d (ok=%v), want 2", binding, ok)
	}

	// The struct behind the variable pointer carries Block and member data.
	ptrDef := m.Def(def.Operands[0])
	if ptrDef == nil || ptrDef.Opcode != OpTypePointer {
		t.Fatalf("pointer type not found")
	}
	structID := ptrDef.Operands[2]
	if !m.HasDecoration(structID, DecorationBlock) {
		t.Error("struct should carry Block decoration")
	}
	offset, ok := m.MemberDecorationValue(structID, 0, DecorationOffset)
	if !ok || offset != 0 {
		t.Errorf("member Offset: got %d (ok=%v), want 0", offset, ok)
	}
	memberName, ok := m.MemberName(structID, 0)
	if !ok || memberName != "scale" {
		t.Errorf("member name: got %q (ok=%v), want \"scale\"", memberName, ok)
	}
}

func TestDecode_EntryPoints(t *testing.T) {
	words := buildMinimal(t)

	m, err := Decode(words)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	eps := m.EntryPoints()
	if len(eps) != 1 {
		t.Fatalf("EntryPoints: got %d, want 1", len(eps))
	}
	if model := ExecutionModel(eps[0].Operands[0]); model != ExecutionModelGLCompute {
		t.Errorf("execution model: got %s, want GLCompute", model)
	}
	name, _ := eps[0].OperandString(2)
	if name != "main" {
		t.Errorf("entry point name: got %q, want \"main\"", name)
	}

	ems := m.ExecutionModes()
	if len(ems) != 1 {
		t.Fatalf("ExecutionModes: got %d, want 1", len(ems))
	}
	if mode := ExecutionMode(ems[0].Operands[1]); mode != ExecutionModeLocalSize {
		t.Errorf("execution mode: got %d, want LocalSize", mode)
	}
}

func TestBytesToWords(t *testing.T) {
	b := NewModuleBuilder(Version1_3)
	b.AddCapability(CapabilityShader)
	b.SetMemoryModel(AddressingModelLogical, MemoryModelGLSL450)
	data := b.Build()

	roundTrip, err := BytesToWords(data)
	if err != nil {
		t.Fatalf("BytesToWords failed: %v", err)
	}
	if roundTrip[0] != MagicNumber {
		t.Errorf("magic after round trip: got 0x%08X", roundTrip[0])
	}

	_, err = BytesToWords(data[:len(data)-2])
	var decErr *DecodeError
	if !errors.As(err, &decErr) || decErr.Kind != ErrMisaligned {
		t.Fatalf("got %v, want Misaligned error", err)
	}
}

func TestModule_WordsRoundTrip(t *testing.T) {
	words := buildMinimal(t)

	m, err := Decode(words)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	out := m.Words()
	if len(out) != len(words) {
		t.Fatalf("word count: got %d, want %d", len(out), len(words))
	}
	for i := range words {
		if out[i] != words[i] {
			t.Fatalf("word %d: got 0x%08X, want 0x%08X", i, out[i], words[i])
		}
	}
}

func TestInstruction_OperandString(t *testing.T) {
	tests := []struct {
		name string
		s    string
	}{
		{"empty", ""},
		{"short", "a"},
		{"word aligned", "main"},
		{"longer", "fragment_main"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewInstructionBuilder()
			b.AddWord(42)
			b.AddString(tt.s)
			inst := b.Build(OpName)

			got, next := inst.OperandString(1)
			if got != tt.s {
				t.Errorf("string: got %q, want %q", got, tt.s)
			}
			if next != len(inst.Operands) {
				t.Errorf("next index: got %d, want %d", next, len(inst.Operands))
			}
		})
	}
}

func TestVersion(t *testing.T) {
	if got := VersionFromWord(Version1_6.Word()); got != Version1_6 {
		t.Errorf("round trip: got %v", got)
	}
	if !Version1_5.AtLeast(Version1_3) {
		t.Error("1.5 should be at least 1.3")
	}
	if Version1_0.AtLeast(Version1_1) {
		t.Error("1.0 should not be at least 1.1")
	}
}
