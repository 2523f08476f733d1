package spirv

import "fmt"

// OpCode represents a SPIR-V opcode.
type OpCode uint16

// Opcodes understood by this package. Instructions with other opcodes decode
// as opaque instructions.
const (
	OpNop              OpCode = 0
	OpUndef            OpCode = 1
	OpSourceContinued  OpCode = 2
	OpSource           OpCode = 3
	OpSourceExtension  OpCode = 4
	OpName             OpCode = 5
	OpMemberName       OpCode = 6
	OpString           OpCode = 7
	OpExtension        OpCode = 10
	OpExtInstImport    OpCode = 11
	OpExtInst          OpCode = 12
	OpMemoryModel      OpCode = 14
	OpEntryPoint       OpCode = 15
	OpExecutionMode    OpCode = 16
	OpCapability       OpCode = 17
	OpTypeVoid         OpCode = 19
	OpTypeBool         OpCode = 20
	OpTypeInt          OpCode = 21
	OpTypeFloat        OpCode = 22
	OpTypeVector       OpCode = 23
	OpTypeMatrix       OpCode = 24
	OpTypeImage        OpCode = 25
	OpTypeSampler      OpCode = 26
	OpTypeSampledImage OpCode = 27
	OpTypeArray        OpCode = 28
	OpTypeRuntimeArray OpCode = 29
	OpTypeStruct       OpCode = 30
	OpTypeOpaque       OpCode = 31
	OpTypePointer      OpCode = 32
	OpTypeFunction     OpCode = 33

	OpConstantTrue         OpCode = 41
	OpConstantFalse        OpCode = 42
	OpConstant             OpCode = 43
	OpConstantComposite    OpCode = 44
	OpConstantSampler      OpCode = 45
	OpConstantNull         OpCode = 46
	OpSpecConstantTrue     OpCode = 48
	OpSpecConstantFalse    OpCode = 49
	OpSpecConstant         OpCode = 50
	OpSpecConstantComposite OpCode = 51
	OpSpecConstantOp       OpCode = 52

	OpFunction          OpCode = 54
	OpFunctionParameter OpCode = 55
	OpFunctionEnd       OpCode = 56
	OpFunctionCall      OpCode = 57
	OpVariable          OpCode = 59
	OpImageTexelPointer OpCode = 60
	OpLoad              OpCode = 61
	OpStore             OpCode = 62
	OpCopyMemory        OpCode = 63
	OpCopyMemorySized   OpCode = 64
	OpAccessChain       OpCode = 65
	OpInBoundsAccessChain OpCode = 66
	OpPtrAccessChain    OpCode = 67
	OpArrayLength       OpCode = 68

	OpDecorate       OpCode = 71
	OpMemberDecorate OpCode = 72

	OpVectorShuffle      OpCode = 79
	OpCompositeConstruct OpCode = 80
	OpCompositeExtract   OpCode = 81
	OpCompositeInsert    OpCode = 82
	OpCopyObject         OpCode = 83

	OpSampledImage                   OpCode = 86
	OpImageSampleImplicitLod         OpCode = 87
	OpImageSampleExplicitLod         OpCode = 88
	OpImageSampleDrefImplicitLod     OpCode = 89
	OpImageSampleDrefExplicitLod     OpCode = 90
	OpImageSampleProjImplicitLod     OpCode = 91
	OpImageSampleProjExplicitLod     OpCode = 92
	OpImageSampleProjDrefImplicitLod OpCode = 93
	OpImageSampleProjDrefExplicitLod OpCode = 94
	OpImageFetch                     OpCode = 95
	OpImageGather                    OpCode = 96
	OpImageDrefGather                OpCode = 97
	OpImageRead                      OpCode = 98
	OpImageWrite                     OpCode = 99
	OpImage                          OpCode = 100
	OpImageQuerySizeLod              OpCode = 103
	OpImageQuerySize                 OpCode = 104
	OpImageQueryLod                  OpCode = 105
	OpImageQueryLevels               OpCode = 106
	OpImageQuerySamples              OpCode = 107

	OpImageSparseSampleImplicitLod         OpCode = 305
	OpImageSparseSampleExplicitLod         OpCode = 306
	OpImageSparseSampleDrefImplicitLod     OpCode = 307
	OpImageSparseSampleDrefExplicitLod     OpCode = 308
	OpImageSparseSampleProjImplicitLod     OpCode = 309
	OpImageSparseSampleProjExplicitLod     OpCode = 310
	OpImageSparseSampleProjDrefImplicitLod OpCode = 311
	OpImageSparseSampleProjDrefExplicitLod OpCode = 312
	OpImageSparseFetch                     OpCode = 313
	OpImageSparseGather                    OpCode = 314
	OpImageSparseDrefGather                OpCode = 315
	OpImageSparseRead                      OpCode = 320

	OpAtomicLoad            OpCode = 227
	OpAtomicStore           OpCode = 228
	OpAtomicExchange        OpCode = 229
	OpAtomicCompareExchange OpCode = 230
	OpAtomicCompareExchangeWeak OpCode = 231
	OpAtomicIIncrement      OpCode = 232
	OpAtomicIDecrement      OpCode = 233
	OpAtomicIAdd            OpCode = 234
	OpAtomicISub            OpCode = 235
	OpAtomicSMin            OpCode = 236
	OpAtomicUMin            OpCode = 237
	OpAtomicSMax            OpCode = 238
	OpAtomicUMax            OpCode = 239
	OpAtomicAnd             OpCode = 240
	OpAtomicOr              OpCode = 241
	OpAtomicXor             OpCode = 242

	OpPhi               OpCode = 245
	OpLoopMerge         OpCode = 246
	OpSelectionMerge    OpCode = 247
	OpLabel             OpCode = 248
	OpBranch            OpCode = 249
	OpBranchConditional OpCode = 250
	OpSwitch            OpCode = 251
	OpKill              OpCode = 252
	OpReturn            OpCode = 253
	OpReturnValue       OpCode = 254
	OpUnreachable       OpCode = 255
)

var opcodeNames = map[OpCode]string{
	OpNop: "OpNop", OpUndef: "OpUndef", OpSourceContinued: "OpSourceContinued",
	OpSource: "OpSource", OpSourceExtension: "OpSourceExtension",
	OpName: "OpName", OpMemberName: "OpMemberName", OpString: "OpString",
	OpExtension: "OpExtension", OpExtInstImport: "OpExtInstImport",
	OpExtInst: "OpExtInst", OpMemoryModel: "OpMemoryModel",
	OpEntryPoint: "OpEntryPoint", OpExecutionMode: "OpExecutionMode",
	OpCapability: "OpCapability", OpTypeVoid: "OpTypeVoid",
	OpTypeBool: "OpTypeBool", OpTypeInt: "OpTypeInt", OpTypeFloat: "OpTypeFloat",
	OpTypeVector: "OpTypeVector", OpTypeMatrix: "OpTypeMatrix",
	OpTypeImage: "OpTypeImage", OpTypeSampler: "OpTypeSampler",
	OpTypeSampledImage: "OpTypeSampledImage", OpTypeArray: "OpTypeArray",
	OpTypeRuntimeArray: "OpTypeRuntimeArray", OpTypeStruct: "OpTypeStruct",
	OpTypeOpaque: "OpTypeOpaque", OpTypePointer: "OpTypePointer",
	OpTypeFunction: "OpTypeFunction", OpConstantTrue: "OpConstantTrue",
	OpConstantFalse: "OpConstantFalse", OpConstant: "OpConstant",
	OpConstantComposite: "OpConstantComposite", OpConstantSampler: "OpConstantSampler",
	OpConstantNull: "OpConstantNull", OpSpecConstantTrue: "OpSpecConstantTrue",
	OpSpecConstantFalse: "OpSpecConstantFalse", OpSpecConstant: "OpSpecConstant",
	OpSpecConstantComposite: "OpSpecConstantComposite", OpSpecConstantOp: "OpSpecConstantOp",
	OpFunction: "OpFunction", OpFunctionParameter: "OpFunctionParameter",
	OpFunctionEnd: "OpFunctionEnd", OpFunctionCall: "OpFunctionCall",
	OpVariable: "OpVariable", OpImageTexelPointer: "OpImageTexelPointer",
	OpLoad: "OpLoad", OpStore: "OpStore", OpCopyMemory: "OpCopyMemory",
	OpCopyMemorySized: "OpCopyMemorySized", OpAccessChain: "OpAccessChain",
	OpInBoundsAccessChain: "OpInBoundsAccessChain", OpPtrAccessChain: "OpPtrAccessChain",
	OpArrayLength: "OpArrayLength", OpDecorate: "OpDecorate",
	OpMemberDecorate: "OpMemberDecorate", OpVectorShuffle: "OpVectorShuffle",
	OpCompositeConstruct: "OpCompositeConstruct", OpCompositeExtract: "OpCompositeExtract",
	OpCompositeInsert: "OpCompositeInsert", OpCopyObject: "OpCopyObject",
	OpSampledImage: "OpSampledImage",
	OpImageSampleImplicitLod:         "OpImageSampleImplicitLod",
	OpImageSampleExplicitLod:         "OpImageSampleExplicitLod",
	OpImageSampleDrefImplicitLod:     "OpImageSampleDrefImplicitLod",
	OpImageSampleDrefExplicitLod:     "OpImageSampleDrefExplicitLod",
	OpImageSampleProjImplicitLod:     "OpImageSampleProjImplicitLod",
	OpImageSampleProjExplicitLod:     "OpImageSampleProjExplicitLod",
	OpImageSampleProjDrefImplicitLod: "OpImageSampleProjDrefImplicitLod",
	OpImageSampleProjDrefExplicitLod: "OpImageSampleProjDrefExplicitLod",
	OpImageFetch: "OpImageFetch", OpImageGather: "OpImageGather",
	OpImageDrefGather: "OpImageDrefGather", OpImageRead: "OpImageRead",
	OpImageWrite: "OpImageWrite", OpImage: "OpImage",
	OpImageQuerySizeLod: "OpImageQuerySizeLod", OpImageQuerySize: "OpImageQuerySize",
	OpImageQueryLod: "OpImageQueryLod", OpImageQueryLevels: "OpImageQueryLevels",
	OpImageQuerySamples: "OpImageQuerySamples",
	OpAtomicLoad: "OpAtomicLoad", OpAtomicStore: "OpAtomicStore",
	OpAtomicExchange: "OpAtomicExchange", OpAtomicCompareExchange: "OpAtomicCompareExchange",
	OpAtomicCompareExchangeWeak: "OpAtomicCompareExchangeWeak",
	OpAtomicIIncrement: "OpAtomicIIncrement", OpAtomicIDecrement: "OpAtomicIDecrement",
	OpAtomicIAdd: "OpAtomicIAdd", OpAtomicISub: "OpAtomicISub",
	OpAtomicSMin: "OpAtomicSMin", OpAtomicUMin: "OpAtomicUMin",
	OpAtomicSMax: "OpAtomicSMax", OpAtomicUMax: "OpAtomicUMax",
	OpAtomicAnd: "OpAtomicAnd", OpAtomicOr: "OpAtomicOr", OpAtomicXor: "OpAtomicXor",
	OpPhi: "OpPhi", OpLoopMerge: "OpLoopMerge", OpSelectionMerge: "OpSelectionMerge",
	OpLabel: "OpLabel", OpBranch: "OpBranch", OpBranchConditional: "OpBranchConditional",
	OpSwitch: "OpSwitch", OpKill: "OpKill", OpReturn: "OpReturn",
	OpReturnValue: "OpReturnValue", OpUnreachable: "OpUnreachable",
	OpImageSparseSampleImplicitLod:         "OpImageSparseSampleImplicitLod",
	OpImageSparseSampleExplicitLod:         "OpImageSparseSampleExplicitLod",
	OpImageSparseSampleDrefImplicitLod:     "OpImageSparseSampleDrefImplicitLod",
	OpImageSparseSampleDrefExplicitLod:     "OpImageSparseSampleDrefExplicitLod",
	OpImageSparseSampleProjImplicitLod:     "OpImageSparseSampleProjImplicitLod",
	OpImageSparseSampleProjExplicitLod:     "OpImageSparseSampleProjExplicitLod",
	OpImageSparseSampleProjDrefImplicitLod: "OpImageSparseSampleProjDrefImplicitLod",
	OpImageSparseSampleProjDrefExplicitLod: "OpImageSparseSampleProjDrefExplicitLod",
	OpImageSparseFetch: "OpImageSparseFetch", OpImageSparseGather: "OpImageSparseGather",
	OpImageSparseDrefGather: "OpImageSparseDrefGather", OpImageSparseRead: "OpImageSparseRead",
}

// String returns the SPIR-V assembly name of the opcode.
func (op OpCode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return fmt.Sprintf("Op%d", uint16(op))
}
