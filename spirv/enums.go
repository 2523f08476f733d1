package spirv

import "fmt"

// StorageClass classifies the memory a pointer or variable lives in.
type StorageClass uint32

const (
	StorageClassUniformConstant StorageClass = 0
	StorageClassInput           StorageClass = 1
	StorageClassUniform         StorageClass = 2
	StorageClassOutput          StorageClass = 3
	StorageClassWorkgroup       StorageClass = 4
	StorageClassCrossWorkgroup  StorageClass = 5
	StorageClassPrivate         StorageClass = 6
	StorageClassFunction        StorageClass = 7
	StorageClassGeneric         StorageClass = 8
	StorageClassPushConstant    StorageClass = 9
	StorageClassAtomicCounter   StorageClass = 10
	StorageClassImage           StorageClass = 11
	StorageClassStorageBuffer   StorageClass = 12
)

var storageClassNames = map[StorageClass]string{
	StorageClassUniformConstant: "UniformConstant", StorageClassInput: "Input",
	StorageClassUniform: "Uniform", StorageClassOutput: "Output",
	StorageClassWorkgroup: "Workgroup", StorageClassCrossWorkgroup: "CrossWorkgroup",
	StorageClassPrivate: "Private", StorageClassFunction: "Function",
	StorageClassGeneric: "Generic", StorageClassPushConstant: "PushConstant",
	StorageClassAtomicCounter: "AtomicCounter", StorageClassImage: "Image",
	StorageClassStorageBuffer: "StorageBuffer",
}

func (sc StorageClass) String() string {
	if name, ok := storageClassNames[sc]; ok {
		return name
	}
	return fmt.Sprintf("StorageClass(%d)", uint32(sc))
}

// ExecutionModel identifies the pipeline stage an entry point executes in.
type ExecutionModel uint32

const (
	ExecutionModelVertex                 ExecutionModel = 0
	ExecutionModelTessellationControl    ExecutionModel = 1
	ExecutionModelTessellationEvaluation ExecutionModel = 2
	ExecutionModelGeometry               ExecutionModel = 3
	ExecutionModelFragment               ExecutionModel = 4
	ExecutionModelGLCompute              ExecutionModel = 5
	ExecutionModelKernel                 ExecutionModel = 6
	ExecutionModelTaskNV                 ExecutionModel = 5267
	ExecutionModelMeshNV                 ExecutionModel = 5268
	ExecutionModelRayGenerationKHR       ExecutionModel = 5313
	ExecutionModelIntersectionKHR        ExecutionModel = 5314
	ExecutionModelAnyHitKHR              ExecutionModel = 5315
	ExecutionModelClosestHitKHR          ExecutionModel = 5316
	ExecutionModelMissKHR                ExecutionModel = 5317
	ExecutionModelCallableKHR            ExecutionModel = 5318
	ExecutionModelTaskEXT                ExecutionModel = 5364
	ExecutionModelMeshEXT                ExecutionModel = 5365
)

var executionModelNames = map[ExecutionModel]string{
	ExecutionModelVertex: "Vertex", ExecutionModelTessellationControl: "TessellationControl",
	ExecutionModelTessellationEvaluation: "TessellationEvaluation",
	ExecutionModelGeometry: "Geometry", ExecutionModelFragment: "Fragment",
	ExecutionModelGLCompute: "GLCompute", ExecutionModelKernel: "Kernel",
	ExecutionModelTaskNV: "TaskNV", ExecutionModelMeshNV: "MeshNV",
	ExecutionModelRayGenerationKHR: "RayGenerationKHR",
	ExecutionModelIntersectionKHR:  "IntersectionKHR",
	ExecutionModelAnyHitKHR:        "AnyHitKHR",
	ExecutionModelClosestHitKHR:    "ClosestHitKHR",
	ExecutionModelMissKHR:          "MissKHR",
	ExecutionModelCallableKHR:      "CallableKHR",
	ExecutionModelTaskEXT:          "TaskEXT", ExecutionModelMeshEXT: "MeshEXT",
}

func (em ExecutionModel) String() string {
	if name, ok := executionModelNames[em]; ok {
		return name
	}
	return fmt.Sprintf("ExecutionModel(%d)", uint32(em))
}

// ExecutionMode configures how an entry point executes.
type ExecutionMode uint32

const (
	ExecutionModeInvocations        ExecutionMode = 0
	ExecutionModeOriginUpperLeft    ExecutionMode = 7
	ExecutionModeOriginLowerLeft    ExecutionMode = 8
	ExecutionModeEarlyFragmentTests ExecutionMode = 9
	ExecutionModeDepthReplacing     ExecutionMode = 12
	ExecutionModeLocalSize          ExecutionMode = 17
	ExecutionModeLocalSizeHint      ExecutionMode = 18
	ExecutionModeOutputVertices     ExecutionMode = 26
)

// Decoration annotates an ID or struct member.
type Decoration uint32

const (
	DecorationRelaxedPrecision     Decoration = 0
	DecorationSpecId               Decoration = 1
	DecorationBlock                Decoration = 2
	DecorationBufferBlock          Decoration = 3
	DecorationRowMajor             Decoration = 4
	DecorationColMajor             Decoration = 5
	DecorationArrayStride          Decoration = 6
	DecorationMatrixStride         Decoration = 7
	DecorationBuiltIn              Decoration = 11
	DecorationNoPerspective        Decoration = 13
	DecorationFlat                 Decoration = 14
	DecorationPatch                Decoration = 15
	DecorationCentroid             Decoration = 16
	DecorationSample               Decoration = 17
	DecorationInvariant            Decoration = 18
	DecorationRestrict             Decoration = 19
	DecorationAliased              Decoration = 20
	DecorationVolatile             Decoration = 21
	DecorationCoherent             Decoration = 23
	DecorationNonWritable          Decoration = 24
	DecorationNonReadable          Decoration = 25
	DecorationUniform              Decoration = 26
	DecorationLocation             Decoration = 30
	DecorationComponent            Decoration = 31
	DecorationIndex                Decoration = 32
	DecorationBinding              Decoration = 33
	DecorationDescriptorSet        Decoration = 34
	DecorationOffset               Decoration = 35
	DecorationInputAttachmentIndex Decoration = 43
)

var decorationNames = map[Decoration]string{
	DecorationRelaxedPrecision: "RelaxedPrecision", DecorationSpecId: "SpecId",
	DecorationBlock: "Block", DecorationBufferBlock: "BufferBlock",
	DecorationRowMajor: "RowMajor", DecorationColMajor: "ColMajor",
	DecorationArrayStride: "ArrayStride", DecorationMatrixStride: "MatrixStride",
	DecorationBuiltIn: "BuiltIn", DecorationNoPerspective: "NoPerspective",
	DecorationFlat: "Flat", DecorationPatch: "Patch", DecorationCentroid: "Centroid",
	DecorationSample: "Sample", DecorationInvariant: "Invariant",
	DecorationRestrict: "Restrict", DecorationAliased: "Aliased",
	DecorationVolatile: "Volatile", DecorationCoherent: "Coherent",
	DecorationNonWritable: "NonWritable", DecorationNonReadable: "NonReadable",
	DecorationUniform: "Uniform", DecorationLocation: "Location",
	DecorationComponent: "Component", DecorationIndex: "Index",
	DecorationBinding: "Binding", DecorationDescriptorSet: "DescriptorSet",
	DecorationOffset: "Offset", DecorationInputAttachmentIndex: "InputAttachmentIndex",
}

func (d Decoration) String() string {
	if name, ok := decorationNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Decoration(%d)", uint32(d))
}

// Dim is the dimensionality operand of OpTypeImage.
type Dim uint32

const (
	Dim1D          Dim = 0
	Dim2D          Dim = 1
	Dim3D          Dim = 2
	DimCube        Dim = 3
	DimRect        Dim = 4
	DimBuffer      Dim = 5
	DimSubpassData Dim = 6
)

var dimNames = map[Dim]string{
	Dim1D: "1D", Dim2D: "2D", Dim3D: "3D", DimCube: "Cube",
	DimRect: "Rect", DimBuffer: "Buffer", DimSubpassData: "SubpassData",
}

func (d Dim) String() string {
	if name, ok := dimNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Dim(%d)", uint32(d))
}

// ImageFormat is the format operand of OpTypeImage. Value 0 (Unknown) means
// the format is not declared in the shader.
type ImageFormat uint32

const (
	ImageFormatUnknown      ImageFormat = 0
	ImageFormatRgba32f      ImageFormat = 1
	ImageFormatRgba16f      ImageFormat = 2
	ImageFormatR32f         ImageFormat = 3
	ImageFormatRgba8        ImageFormat = 4
	ImageFormatRgba8Snorm   ImageFormat = 5
	ImageFormatRg32f        ImageFormat = 6
	ImageFormatRg16f        ImageFormat = 7
	ImageFormatR11fG11fB10f ImageFormat = 8
	ImageFormatR16f         ImageFormat = 9
	ImageFormatRgba16       ImageFormat = 10
	ImageFormatRgb10A2      ImageFormat = 11
	ImageFormatRg16         ImageFormat = 12
	ImageFormatRg8          ImageFormat = 13
	ImageFormatR16          ImageFormat = 14
	ImageFormatR8           ImageFormat = 15
	ImageFormatRgba16Snorm  ImageFormat = 16
	ImageFormatRg16Snorm    ImageFormat = 17
	ImageFormatRg8Snorm     ImageFormat = 18
	ImageFormatR16Snorm     ImageFormat = 19
	ImageFormatR8Snorm      ImageFormat = 20
	ImageFormatRgba32i      ImageFormat = 21
	ImageFormatRgba16i      ImageFormat = 22
	ImageFormatRgba8i       ImageFormat = 23
	ImageFormatR32i         ImageFormat = 24
	ImageFormatRg32i        ImageFormat = 25
	ImageFormatRg16i        ImageFormat = 26
	ImageFormatRg8i         ImageFormat = 27
	ImageFormatR16i         ImageFormat = 28
	ImageFormatR8i          ImageFormat = 29
	ImageFormatRgba32ui     ImageFormat = 30
	ImageFormatRgba16ui     ImageFormat = 31
	ImageFormatRgba8ui      ImageFormat = 32
	ImageFormatR32ui        ImageFormat = 33
	ImageFormatRgb10a2ui    ImageFormat = 34
	ImageFormatRg32ui       ImageFormat = 35
	ImageFormatRg16ui       ImageFormat = 36
	ImageFormatRg8ui        ImageFormat = 37
	ImageFormatR16ui        ImageFormat = 38
	ImageFormatR8ui         ImageFormat = 39
)

// Capability represents a SPIR-V capability.
type Capability uint32

const (
	CapabilityMatrix                  Capability = 0
	CapabilityShader                  Capability = 1
	CapabilityGeometry                Capability = 2
	CapabilityTessellation            Capability = 3
	CapabilityFloat16                 Capability = 9
	CapabilityFloat64                 Capability = 10
	CapabilityInt64                   Capability = 11
	CapabilityInt64Atomics            Capability = 12
	CapabilityInt16                   Capability = 22
	CapabilityImageGatherExtended     Capability = 25
	CapabilityStorageImageMultisample Capability = 26
	CapabilityClipDistance            Capability = 31
	CapabilityCullDistance            Capability = 32
	CapabilityImageCubeArray          Capability = 33
	CapabilitySampleRateShading       Capability = 34
	CapabilityInt8                    Capability = 38
	CapabilityInputAttachment         Capability = 39
	CapabilitySampled1D               Capability = 42
	CapabilityImage1D                 Capability = 43
	CapabilitySampledCubeArray        Capability = 44
	CapabilitySampledBuffer           Capability = 45
	CapabilityImageBuffer             Capability = 46
	CapabilityImageQuery              Capability = 49
	CapabilityRuntimeDescriptorArray  Capability = 5302
)

var capabilityNames = map[Capability]string{
	CapabilityMatrix: "Matrix", CapabilityShader: "Shader",
	CapabilityGeometry: "Geometry", CapabilityTessellation: "Tessellation",
	CapabilityFloat16: "Float16", CapabilityFloat64: "Float64",
	CapabilityInt64: "Int64", CapabilityInt64Atomics: "Int64Atomics",
	CapabilityInt16: "Int16", CapabilityImageGatherExtended: "ImageGatherExtended",
	CapabilityStorageImageMultisample: "StorageImageMultisample",
	CapabilityClipDistance:            "ClipDistance",
	CapabilityCullDistance:            "CullDistance",
	CapabilityImageCubeArray:          "ImageCubeArray",
	CapabilitySampleRateShading:       "SampleRateShading",
	CapabilityInt8:                    "Int8",
	CapabilityInputAttachment:         "InputAttachment",
	CapabilitySampled1D:               "Sampled1D", CapabilityImage1D: "Image1D",
	CapabilitySampledCubeArray: "SampledCubeArray",
	CapabilitySampledBuffer:    "SampledBuffer", CapabilityImageBuffer: "ImageBuffer",
	CapabilityImageQuery:       "ImageQuery",
	CapabilityRuntimeDescriptorArray: "RuntimeDescriptorArray",
}

func (c Capability) String() string {
	if name, ok := capabilityNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Capability(%d)", uint32(c))
}

// AddressingModel is the addressing operand of OpMemoryModel.
type AddressingModel uint32

const (
	AddressingModelLogical    AddressingModel = 0
	AddressingModelPhysical32 AddressingModel = 1
	AddressingModelPhysical64 AddressingModel = 2
)

// MemoryModel is the memory model operand of OpMemoryModel.
type MemoryModel uint32

const (
	MemoryModelSimple  MemoryModel = 0
	MemoryModelGLSL450 MemoryModel = 1
	MemoryModelOpenCL  MemoryModel = 2
	MemoryModelVulkan  MemoryModel = 3
)

// FunctionControl is the control mask operand of OpFunction.
type FunctionControl uint32

const (
	FunctionControlNone    FunctionControl = 0
	FunctionControlInline  FunctionControl = 1
	FunctionControlDontInline FunctionControl = 2
	FunctionControlPure    FunctionControl = 4
	FunctionControlConst   FunctionControl = 8
)

// SelectionControl is the control mask operand of OpSelectionMerge.
type SelectionControl uint32

const (
	SelectionControlNone        SelectionControl = 0
	SelectionControlFlatten     SelectionControl = 1
	SelectionControlDontFlatten SelectionControl = 2
)

// LoopControl is the control mask operand of OpLoopMerge.
type LoopControl uint32

const (
	LoopControlNone       LoopControl = 0
	LoopControlUnroll     LoopControl = 1
	LoopControlDontUnroll LoopControl = 2
)

// Image operand bits on sampling and fetch instructions.
const (
	ImageOperandsBias        uint32 = 0x01
	ImageOperandsLod         uint32 = 0x02
	ImageOperandsGrad        uint32 = 0x04
	ImageOperandsConstOffset uint32 = 0x08
	ImageOperandsOffset      uint32 = 0x10
	ImageOperandsConstOffsets uint32 = 0x20
	ImageOperandsSample      uint32 = 0x40
	ImageOperandsMinLod      uint32 = 0x80
)
