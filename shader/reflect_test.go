package shader

import (
	"testing"

	"github.com/gogpu/spv/spirv"

	"github.com/stretchr/testify/require"
)

// buildFragmentWords builds a fragment shader that samples a combined image
// sampler at (set=0, binding=0), reads a vec4 input at location 0 and writes
// a vec4 output at location 0.
func buildFragmentWords(t *testing.T) []uint32 {
	t.Helper()

	b := spirv.NewModuleBuilder(spirv.Version1_3)
	b.AddCapability(spirv.CapabilityShader)
	b.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)

	floatType := b.AddTypeFloat(32)
	vec4Type := b.AddTypeVector(floatType, 4)
	imageType := b.AddTypeImage(floatType, spirv.Dim2D, 0, 0, 0, 1, spirv.ImageFormatUnknown)
	sampledType := b.AddTypeSampledImage(imageType)

	inPtr := b.AddTypePointer(spirv.StorageClassInput, vec4Type)
	outPtr := b.AddTypePointer(spirv.StorageClassOutput, vec4Type)
	texPtr := b.AddTypePointer(spirv.StorageClassUniformConstant, sampledType)

	inVar := b.AddVariable(inPtr, spirv.StorageClassInput)
	outVar := b.AddVariable(outPtr, spirv.StorageClassOutput)
	texVar := b.AddVariable(texPtr, spirv.StorageClassUniformConstant)

	b.AddName(inVar, "v_uv")
	b.AddName(outVar, "frag_color")
	b.AddDecorate(inVar, spirv.DecorationLocation, 0)
	b.AddDecorate(outVar, spirv.DecorationLocation, 0)
	b.AddDecorate(texVar, spirv.DecorationDescriptorSet, 0)
	b.AddDecorate(texVar, spirv.DecorationBinding, 0)

	voidType := b.AddTypeVoid()
	funcType := b.AddTypeFunction(voidType)
	funcID := b.AddFunction(funcType, voidType, spirv.FunctionControlNone)
	b.AddLabel()
	coord := b.AddLoad(vec4Type, inVar)
	tex := b.AddLoad(sampledType, texVar)
	color := b.AddImageSample(spirv.OpImageSampleImplicitLod, vec4Type, tex, coord)
	b.AddStore(outVar, color)
	b.AddReturn()
	b.AddFunctionEnd()

	b.AddEntryPoint(spirv.ExecutionModelFragment, funcID, "main", []uint32{inVar, outVar, texVar})
	b.AddExecutionMode(funcID, spirv.ExecutionModeOriginUpperLeft)
	return b.BuildWords()
}

// buildVertexWords builds a vertex shader that reads a uniform buffer at
// (set=0, binding=0) through a helper function and writes a vec4 output at
// location 0.
func buildVertexWords(t *testing.T) []uint32 {
	t.Helper()

	b := spirv.NewModuleBuilder(spirv.Version1_3)
	b.AddCapability(spirv.CapabilityShader)
	b.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)

	floatType := b.AddTypeFloat(32)
	vec4Type := b.AddTypeVector(floatType, 4)
	uintType := b.AddTypeInt(32, false)
	blockType := b.AddTypeStruct(vec4Type)
	blockPtr := b.AddTypePointer(spirv.StorageClassUniform, blockType)
	memberPtr := b.AddTypePointer(spirv.StorageClassUniform, vec4Type)
	outPtr := b.AddTypePointer(spirv.StorageClassOutput, vec4Type)

	uboVar := b.AddVariable(blockPtr, spirv.StorageClassUniform)
	outVar := b.AddVariable(outPtr, spirv.StorageClassOutput)

	b.AddDecorate(blockType, spirv.DecorationBlock)
	b.AddMemberDecorate(blockType, 0, spirv.DecorationOffset, 0)
	b.AddDecorate(uboVar, spirv.DecorationDescriptorSet, 0)
	b.AddDecorate(uboVar, spirv.DecorationBinding, 0)
	b.AddDecorate(outVar, spirv.DecorationLocation, 0)
	b.AddName(outVar, "v_uv")

	zero := b.AddConstant(uintType, 0)

	voidType := b.AddTypeVoid()
	helperType := b.AddTypeFunction(vec4Type)
	mainType := b.AddTypeFunction(voidType)

	// Helper reads the buffer; main reaches it only through the call.
	helperID := b.AddFunction(helperType, vec4Type, spirv.FunctionControlNone)
	b.AddLabel()
	chain := b.AddAccessChain(memberPtr, uboVar, zero)
	_ = b.AddLoad(vec4Type, chain)
	b.AddReturn()
	b.AddFunctionEnd()

	mainID := b.AddFunction(mainType, voidType, spirv.FunctionControlNone)
	b.AddLabel()
	value := b.AddFunctionCall(vec4Type, helperID)
	b.AddStore(outVar, value)
	b.AddReturn()
	b.AddFunctionEnd()

	b.AddEntryPoint(spirv.ExecutionModelVertex, mainID, "main", []uint32{outVar})
	return b.BuildWords()
}

func decodeWords(t *testing.T, words []uint32) *spirv.Module {
	t.Helper()
	m, err := spirv.Decode(words)
	require.NoError(t, err)
	return m
}

func TestEntryPoints_FragmentSampler(t *testing.T) {
	t.Parallel()
	m := decodeWords(t, buildFragmentWords(t))

	infos := EntryPoints(m)
	require.Len(t, infos, 1)

	info := infos[0]
	require.Equal(t, "main", info.Name)
	require.Equal(t, spirv.ExecutionModelFragment, info.ExecutionModel)
	require.Equal(t, StageFragment, info.Stage)

	require.Len(t, info.DescriptorBindingRequirements, 1)
	req := info.DescriptorBindingRequirements[BindingKey{Set: 0, Binding: 0}]
	require.NotNil(t, req)
	require.Equal(t, []DescriptorType{DescriptorTypeCombinedImageSampler}, req.DescriptorTypes)
	require.Equal(t, ShaderStages(0).With(StageFragment), req.Stages)
	require.NotNil(t, req.DescriptorCount)
	require.Equal(t, uint32(1), *req.DescriptorCount)
	require.Nil(t, req.ImageFormat)
	require.NotNil(t, req.ImageScalarType)
	require.Equal(t, ScalarTypeFloat, *req.ImageScalarType)
	require.NotNil(t, req.ImageViewType)
	require.Equal(t, ImageViewType2D, *req.ImageViewType)

	desc := req.Descriptors[IndexAt(0)]
	require.NotNil(t, desc)
	require.True(t, desc.MemoryRead.Contains(StageFragment))
	require.False(t, desc.SamplerCompare)

	require.Len(t, info.InputInterface.Entries(), 1)
	in := info.InputInterface.Entries()[0]
	require.Equal(t, uint32(0), in.Location)
	require.Equal(t, "v_uv", in.Name)
	require.Equal(t, vec(4), in.Type)

	require.Len(t, info.OutputInterface.Entries(), 1)
	out := info.OutputInterface.Entries()[0]
	require.Equal(t, uint32(0), out.Location)
	require.Equal(t, vec(4), out.Type)
}

func TestEntryPoints_VertexThroughCall(t *testing.T) {
	t.Parallel()
	m := decodeWords(t, buildVertexWords(t))

	infos := EntryPoints(m)
	require.Len(t, infos, 1)

	info := infos[0]
	require.Equal(t, StageVertex, info.Stage)

	// The buffer is only reachable through the helper function call.
	req := info.DescriptorBindingRequirements[BindingKey{Set: 0, Binding: 0}]
	require.NotNil(t, req)
	require.Equal(t,
		[]DescriptorType{DescriptorTypeUniformBuffer, DescriptorTypeUniformBufferDynamic},
		req.DescriptorTypes)
	require.True(t, req.Descriptors[IndexAt(0)].MemoryRead.Contains(StageVertex))
}

func TestEntryPoints_InterfacePairMatches(t *testing.T) {
	t.Parallel()
	vertex := EntryPoints(decodeWords(t, buildVertexWords(t)))[0]
	fragment := EntryPoints(decodeWords(t, buildFragmentWords(t)))[0]

	require.NoError(t, vertex.OutputInterface.Matches(fragment.InputInterface))
}

func TestEntryPoints_MergedStages(t *testing.T) {
	t.Parallel()
	vertex := EntryPoints(decodeWords(t, buildVertexWords(t)))[0]

	// A second stage using the same slot as a plain uniform buffer.
	merged := make(map[BindingKey]*DescriptorBindingRequirements)
	require.NoError(t, MergeBindingRequirements(merged, vertex.DescriptorBindingRequirements))
	require.NoError(t, MergeBindingRequirements(merged, map[BindingKey]*DescriptorBindingRequirements{
		{Set: 0, Binding: 0}: uniformBufferReq(StageFragment),
	}))

	req := merged[BindingKey{Set: 0, Binding: 0}]
	require.True(t, req.Stages.Contains(StageVertex))
	require.True(t, req.Stages.Contains(StageFragment))
}

func TestEntryPoints_Deterministic(t *testing.T) {
	t.Parallel()
	words := buildFragmentWords(t)

	first := EntryPoints(decodeWords(t, words))
	second := EntryPoints(decodeWords(t, words))
	require.Equal(t, first, second)
}

func TestEntryPoints_StorageImageAtomicAndWrite(t *testing.T) {
	t.Parallel()
	b := spirv.NewModuleBuilder(spirv.Version1_3)
	b.AddCapability(spirv.CapabilityShader)
	b.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)

	uintType := b.AddTypeInt(32, false)
	imageType := b.AddTypeImage(uintType, spirv.Dim2D, 0, 0, 0, 2, spirv.ImageFormatR32ui)
	imagePtr := b.AddTypePointer(spirv.StorageClassUniformConstant, imageType)
	texelPtr := b.AddTypePointer(spirv.StorageClassImage, uintType)
	imageVar := b.AddVariable(imagePtr, spirv.StorageClassUniformConstant)

	b.AddDecorate(imageVar, spirv.DecorationDescriptorSet, 1)
	b.AddDecorate(imageVar, spirv.DecorationBinding, 2)

	zero := b.AddConstant(uintType, 0)
	one := b.AddConstant(uintType, 1)

	voidType := b.AddTypeVoid()
	funcType := b.AddTypeFunction(voidType)
	funcID := b.AddFunction(funcType, voidType, spirv.FunctionControlNone)
	b.AddLabel()
	image := b.AddLoad(imageType, imageVar)
	b.AddImageWrite(image, zero, zero)
	texel := b.AddImageTexelPointer(texelPtr, imageVar, zero, zero)
	b.AddAtomic(spirv.OpAtomicIAdd, uintType, texel, one, zero, one)
	b.AddReturn()
	b.AddFunctionEnd()

	b.AddEntryPoint(spirv.ExecutionModelGLCompute, funcID, "main", []uint32{imageVar})
	b.AddExecutionMode(funcID, spirv.ExecutionModeLocalSize, 1, 1, 1)

	infos := EntryPoints(decodeWords(t, b.BuildWords()))
	require.Len(t, infos, 1)

	req := infos[0].DescriptorBindingRequirements[BindingKey{Set: 1, Binding: 2}]
	require.NotNil(t, req)
	require.Equal(t, []DescriptorType{DescriptorTypeStorageImage}, req.DescriptorTypes)
	require.NotNil(t, req.ImageFormat)
	require.Equal(t, spirv.ImageFormatR32ui, *req.ImageFormat)
	require.NotNil(t, req.ImageScalarType)
	require.Equal(t, ScalarTypeUint, *req.ImageScalarType)

	desc := req.Descriptors[IndexAt(0)]
	require.NotNil(t, desc)
	require.True(t, desc.MemoryWrite.Contains(StageCompute))
	require.True(t, desc.MemoryRead.Contains(StageCompute))
	require.True(t, desc.StorageImageAtomic)
}

func TestEntryPoints_PushConstantRange(t *testing.T) {
	t.Parallel()
	b := spirv.NewModuleBuilder(spirv.Version1_3)
	b.AddCapability(spirv.CapabilityShader)
	b.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)

	floatType := b.AddTypeFloat(32)
	vec4Type := b.AddTypeVector(floatType, 4)
	uintType := b.AddTypeInt(32, false)
	blockType := b.AddTypeStruct(floatType, vec4Type)
	blockPtr := b.AddTypePointer(spirv.StorageClassPushConstant, blockType)
	memberPtr := b.AddTypePointer(spirv.StorageClassPushConstant, vec4Type)
	pcVar := b.AddVariable(blockPtr, spirv.StorageClassPushConstant)

	b.AddDecorate(blockType, spirv.DecorationBlock)
	b.AddMemberDecorate(blockType, 0, spirv.DecorationOffset, 0)
	b.AddMemberDecorate(blockType, 1, spirv.DecorationOffset, 16)

	one := b.AddConstant(uintType, 1)

	voidType := b.AddTypeVoid()
	funcType := b.AddTypeFunction(voidType)
	funcID := b.AddFunction(funcType, voidType, spirv.FunctionControlNone)
	b.AddLabel()
	chain := b.AddAccessChain(memberPtr, pcVar, one)
	_ = b.AddLoad(vec4Type, chain)
	b.AddReturn()
	b.AddFunctionEnd()

	b.AddEntryPoint(spirv.ExecutionModelVertex, funcID, "main", nil)

	infos := EntryPoints(decodeWords(t, b.BuildWords()))
	require.Len(t, infos, 1)

	// Only the second member (offset 16, 16 bytes) is touched.
	pc := infos[0].PushConstantRange
	require.NotNil(t, pc)
	require.Equal(t, uint32(16), pc.Offset)
	require.Equal(t, uint32(16), pc.Size)
	require.Equal(t, ShaderStages(0).With(StageVertex), pc.Stages)
}

func TestEntryPoints_SeparateSamplerPairing(t *testing.T) {
	t.Parallel()
	b := spirv.NewModuleBuilder(spirv.Version1_3)
	b.AddCapability(spirv.CapabilityShader)
	b.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)

	floatType := b.AddTypeFloat(32)
	vec4Type := b.AddTypeVector(floatType, 4)
	imageType := b.AddTypeImage(floatType, spirv.Dim2D, 0, 0, 0, 1, spirv.ImageFormatUnknown)
	sampledType := b.AddTypeSampledImage(imageType)
	samplerType := b.AddTypeSampler()

	imagePtr := b.AddTypePointer(spirv.StorageClassUniformConstant, imageType)
	samplerPtr := b.AddTypePointer(spirv.StorageClassUniformConstant, samplerType)
	imageVar := b.AddVariable(imagePtr, spirv.StorageClassUniformConstant)
	samplerVar := b.AddVariable(samplerPtr, spirv.StorageClassUniformConstant)

	b.AddDecorate(imageVar, spirv.DecorationDescriptorSet, 0)
	b.AddDecorate(imageVar, spirv.DecorationBinding, 1)
	b.AddDecorate(samplerVar, spirv.DecorationDescriptorSet, 0)
	b.AddDecorate(samplerVar, spirv.DecorationBinding, 2)

	voidType := b.AddTypeVoid()
	funcType := b.AddTypeFunction(voidType)
	funcID := b.AddFunction(funcType, voidType, spirv.FunctionControlNone)
	b.AddLabel()
	image := b.AddLoad(imageType, imageVar)
	sampler := b.AddLoad(samplerType, samplerVar)
	combined := b.AddSampledImage(sampledType, image, sampler)
	coord := b.AddLoad(vec4Type, imageVar) // structurally a coordinate operand
	b.AddImageSample(spirv.OpImageSampleProjImplicitLod, vec4Type, combined, coord)
	b.AddReturn()
	b.AddFunctionEnd()

	b.AddEntryPoint(spirv.ExecutionModelFragment, funcID, "main",
		[]uint32{imageVar, samplerVar})
	b.AddExecutionMode(funcID, spirv.ExecutionModeOriginUpperLeft)

	infos := EntryPoints(decodeWords(t, b.BuildWords()))
	require.Len(t, infos, 1)

	imageReq := infos[0].DescriptorBindingRequirements[BindingKey{Set: 0, Binding: 1}]
	require.NotNil(t, imageReq)
	require.Equal(t, []DescriptorType{DescriptorTypeSampledImage}, imageReq.DescriptorTypes)
	require.True(t, imageReq.Descriptors[IndexAt(0)].MemoryRead.Contains(StageFragment))

	samplerReq := infos[0].DescriptorBindingRequirements[BindingKey{Set: 0, Binding: 2}]
	require.NotNil(t, samplerReq)
	require.Equal(t, []DescriptorType{DescriptorTypeSampler}, samplerReq.DescriptorTypes)

	desc := samplerReq.Descriptors[IndexAt(0)]
	require.NotNil(t, desc)
	// Proj sampling is incompatible with unnormalized coordinates.
	require.True(t, desc.SamplerNoUnnormalizedCoordinates)
	require.False(t, desc.SamplerCompare)
	require.Contains(t, desc.SamplerWithImages,
		DescriptorIdentifier{Set: 0, Binding: 1, Index: 0})
}

func TestSpecializationConstants_Reflection(t *testing.T) {
	t.Parallel()
	b := spirv.NewModuleBuilder(spirv.Version1_3)
	b.AddCapability(spirv.CapabilityShader)
	b.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)

	uintType := b.AddTypeInt(32, false)
	intType := b.AddTypeInt(32, true)
	boolType := b.AddTypeBool()
	floatType := b.AddTypeFloat(32)

	workgroup := b.AddSpecConstant(uintType, 64)
	enabled := b.AddSpecConstantBool(boolType, true)
	offset := b.AddSpecConstant(intType, 0xFFFFFFFE) // -2
	scale := b.AddSpecConstant(floatType, 0x3F800000) // 1.0
	b.AddConstant(uintType, 7)                        // not a spec constant

	b.AddDecorate(workgroup, spirv.DecorationSpecId, 0)
	b.AddDecorate(enabled, spirv.DecorationSpecId, 1)
	b.AddDecorate(offset, spirv.DecorationSpecId, 2)
	b.AddDecorate(scale, spirv.DecorationSpecId, 3)

	voidType := b.AddTypeVoid()
	funcType := b.AddTypeFunction(voidType)
	funcID := b.AddFunction(funcType, voidType, spirv.FunctionControlNone)
	b.AddLabel()
	b.AddReturn()
	b.AddFunctionEnd()
	b.AddEntryPoint(spirv.ExecutionModelGLCompute, funcID, "main", nil)

	constants := SpecializationConstants(decodeWords(t, b.BuildWords()))
	require.Len(t, constants, 4)

	require.Equal(t, ConstantU32, constants[0].Kind())
	require.Equal(t, uint64(64), constants[0].Uint())

	require.Equal(t, ConstantBool, constants[1].Kind())
	require.True(t, constants[1].Bool())

	require.Equal(t, ConstantI32, constants[2].Kind())
	require.Equal(t, int64(-2), constants[2].Int())

	require.Equal(t, ConstantF32, constants[3].Kind())
	require.Equal(t, 1.0, constants[3].Float())
}
