package shader

import (
	"sort"

	"github.com/gogpu/spv/spirv"
)

// EntryPointInfo is everything reflection discovers about one entry point:
// its resource requirements, push-constant range and stage interfaces.
// Computed once; read-only afterwards.
type EntryPointInfo struct {
	Name           string
	ExecutionModel spirv.ExecutionModel
	Stage          ShaderStage

	// FunctionID is the SPIR-V ID of the entry function.
	FunctionID uint32

	DescriptorBindingRequirements map[BindingKey]*DescriptorBindingRequirements
	PushConstantRange             *PushConstantRange
	InputInterface                ShaderInterface
	OutputInterface               ShaderInterface
}

// PushConstantRange is the byte range of push-constant data an entry point
// touches.
type PushConstantRange struct {
	Stages ShaderStages
	Offset uint32
	Size   uint32
}

// SpecializationConstants returns the default value of every specialization
// constant in the module, keyed by its SpecId constant_id.
func SpecializationConstants(m *spirv.Module) map[uint32]SpecializationConstant {
	constants := make(map[uint32]SpecializationConstant)
	for i := range m.Instructions {
		in := &m.Instructions[i]
		switch in.Opcode {
		case spirv.OpSpecConstant, spirv.OpSpecConstantTrue, spirv.OpSpecConstantFalse:
		default:
			continue
		}
		id, ok := in.ResultID()
		if !ok {
			continue
		}
		constantID, ok := m.DecorationValue(id, spirv.DecorationSpecId)
		if !ok {
			// Without a SpecId the constant is not overridable.
			continue
		}
		if value, ok := constantFromInstruction(m, in); ok {
			constants[constantID] = value
		}
	}
	return constants
}

// EntryPoints reflects every entry point of the module, in declaration
// order. Map-valued fields have set semantics; callers must not rely on
// their iteration order.
func EntryPoints(m *spirv.Module) []EntryPointInfo {
	w := newWalker(m)

	var infos []EntryPointInfo
	for _, ep := range m.EntryPoints() {
		if len(ep.Operands) < 3 {
			continue
		}
		model := spirv.ExecutionModel(ep.Operands[0])
		fnID := ep.Operands[1]
		name, next := ep.OperandString(2)
		interfaceIDs := ep.Operands[next:]

		info := EntryPointInfo{
			Name:           name,
			ExecutionModel: model,
			Stage:          StageFromExecutionModel(model),
			FunctionID:     fnID,
		}
		w.reflect(&info, interfaceIDs)
		infos = append(infos, info)
	}
	return infos
}

// walker carries the module-wide tables shared by every entry-point walk:
// function body ranges and the alias chains that lead from intermediate IDs
// (access chains, loads, copies) back to the variable they originate from.
type walker struct {
	m *spirv.Module

	// funcs maps a function ID to its [start, end) instruction index range.
	funcs map[uint32]funcRange

	// aliasOf maps a result ID to the ID its value or pointer derives from.
	aliasOf map[uint32]uint32

	// chainIndex records the first index operand of an access chain result,
	// when that index is a constant.
	chainIndex map[uint32]DescriptorIndex

	// sampledPairs maps an OpSampledImage result to its image and sampler
	// operand IDs.
	sampledPairs map[uint32][2]uint32
}

type funcRange struct {
	start, end int
}

func newWalker(m *spirv.Module) *walker {
	w := &walker{
		m:            m,
		funcs:        make(map[uint32]funcRange),
		aliasOf:      make(map[uint32]uint32),
		chainIndex:   make(map[uint32]DescriptorIndex),
		sampledPairs: make(map[uint32][2]uint32),
	}

	currentFn := uint32(0)
	start := 0
	var params []uint32
	for i := range m.Instructions {
		in := &m.Instructions[i]
		switch in.Opcode {
		case spirv.OpFunction:
			if id, ok := in.ResultID(); ok {
				currentFn = id
				start = i
				params = params[:0]
			}
		case spirv.OpFunctionParameter:
			if id, ok := in.ResultID(); ok && currentFn != 0 {
				params = append(params, id)
			}
		case spirv.OpFunctionEnd:
			if currentFn != 0 {
				w.funcs[currentFn] = funcRange{start: start, end: i + 1}
				w.bindParams(currentFn, params)
				currentFn = 0
			}

		case spirv.OpAccessChain, spirv.OpInBoundsAccessChain, spirv.OpPtrAccessChain:
			if id, ok := in.ResultID(); ok && len(in.Operands) >= 3 {
				w.aliasOf[id] = in.Operands[2]
				if len(in.Operands) >= 4 {
					w.chainIndex[id] = w.constantIndex(in.Operands[3])
				}
			}
		case spirv.OpImageTexelPointer, spirv.OpCopyObject, spirv.OpLoad, spirv.OpImage:
			if id, ok := in.ResultID(); ok && len(in.Operands) >= 3 {
				w.aliasOf[id] = in.Operands[2]
			}
		case spirv.OpSampledImage:
			if id, ok := in.ResultID(); ok && len(in.Operands) >= 4 {
				w.sampledPairs[id] = [2]uint32{in.Operands[2], in.Operands[3]}
			}
		}
	}
	return w
}

// bindParams aliases a function's parameters to the arguments of its call
// sites, so resource pointers passed between functions resolve to their
// originating variables. Multiple call sites with different resource
// arguments would need per-call-site cloning; the last binding wins, which
// matches how shader compilers emit one helper per resource in practice.
func (w *walker) bindParams(fnID uint32, params []uint32) {
	if len(params) == 0 {
		return
	}
	for i := range w.m.Instructions {
		in := &w.m.Instructions[i]
		if in.Opcode != spirv.OpFunctionCall || len(in.Operands) < 3 || in.Operands[2] != fnID {
			continue
		}
		args := in.Operands[3:]
		for p := 0; p < len(params) && p < len(args); p++ {
			w.aliasOf[params[p]] = args[p]
		}
	}
}

// constantIndex resolves an ID to a descriptor index key: the literal value
// when the ID names an integer constant, the dynamic key otherwise.
func (w *walker) constantIndex(id uint32) DescriptorIndex {
	def := w.m.Def(id)
	if def != nil && def.Opcode == spirv.OpConstant && len(def.Operands) >= 3 {
		return IndexAt(def.Operands[2])
	}
	return DynamicIndex()
}

// resolve follows the alias chain from an ID to the variable it derives
// from, also reporting which descriptor index within that variable the
// chain selects.
func (w *walker) resolve(id uint32) (uint32, DescriptorIndex) {
	index := IndexAt(0)
	for steps := 0; steps < len(w.aliasOf)+1; steps++ {
		if idx, ok := w.chainIndex[id]; ok {
			index = idx
		}
		next, ok := w.aliasOf[id]
		if !ok {
			return id, index
		}
		id = next
	}
	return id, index
}

// variable returns the OpVariable instruction and storage class for an ID,
// or nil when the ID does not name a variable.
func (w *walker) variable(id uint32) (*spirv.Instruction, spirv.StorageClass) {
	def := w.m.Def(id)
	if def == nil || def.Opcode != spirv.OpVariable || len(def.Operands) < 3 {
		return nil, 0
	}
	return def, spirv.StorageClass(def.Operands[2])
}

// reachable returns the instruction index ranges of every function the
// entry function transitively calls, entry function included.
func (w *walker) reachable(fnID uint32) []funcRange {
	var ranges []funcRange
	visited := make(map[uint32]bool)
	stack := []uint32{fnID}
	for len(stack) > 0 {
		fn := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[fn] {
			continue
		}
		visited[fn] = true
		fr, ok := w.funcs[fn]
		if !ok {
			continue
		}
		ranges = append(ranges, fr)
		for i := fr.start; i < fr.end; i++ {
			in := &w.m.Instructions[i]
			if in.Opcode == spirv.OpFunctionCall && len(in.Operands) >= 3 {
				stack = append(stack, in.Operands[2])
			}
		}
	}
	return ranges
}

// usage accumulates per-descriptor-index requirements for one variable.
type usage map[DescriptorIndex]*DescriptorRequirements

func (u usage) at(index DescriptorIndex) *DescriptorRequirements {
	req, ok := u[index]
	if !ok {
		req = &DescriptorRequirements{}
		u[index] = req
	}
	return req
}

func (w *walker) reflect(info *EntryPointInfo, interfaceIDs []uint32) {
	stage := info.Stage
	used := make(map[uint32]usage)

	// Variables in the interface list are reachable by definition, even
	// when no instruction in the body touches them.
	for _, id := range interfaceIDs {
		if _, class := w.variable(id); isDescriptorClass(class) {
			if used[id] == nil {
				used[id] = make(usage)
			}
		}
	}

	mark := func(operand uint32, f func(*DescriptorRequirements)) (uint32, DescriptorIndex) {
		varID, index := w.resolve(operand)
		if _, class := w.variable(varID); !isDescriptorClass(class) {
			return 0, index
		}
		// The first access-chain index selects a descriptor only when the
		// binding is a descriptor array; otherwise it selects a member.
		if !w.isArrayedBinding(varID) {
			index = IndexAt(0)
		}
		if used[varID] == nil {
			used[varID] = make(usage)
		}
		f(used[varID].at(index))
		return varID, index
	}

	read := func(r *DescriptorRequirements) { r.MemoryRead = r.MemoryRead.With(stage) }
	write := func(r *DescriptorRequirements) { r.MemoryWrite = r.MemoryWrite.With(stage) }

	for _, fr := range w.reachable(info.FunctionID) {
		for i := fr.start; i < fr.end; i++ {
			in := &w.m.Instructions[i]
			switch in.Opcode {
			case spirv.OpLoad:
				if len(in.Operands) >= 3 {
					mark(in.Operands[2], read)
				}
			case spirv.OpStore:
				if len(in.Operands) >= 2 {
					mark(in.Operands[0], write)
				}
			case spirv.OpAtomicStore:
				if len(in.Operands) >= 1 {
					mark(in.Operands[0], func(r *DescriptorRequirements) {
						write(r)
						r.StorageImageAtomic = r.StorageImageAtomic || w.isStorageImage(in.Operands[0])
					})
				}
			case spirv.OpAtomicLoad, spirv.OpAtomicExchange, spirv.OpAtomicCompareExchange,
				spirv.OpAtomicCompareExchangeWeak, spirv.OpAtomicIIncrement,
				spirv.OpAtomicIDecrement, spirv.OpAtomicIAdd, spirv.OpAtomicISub,
				spirv.OpAtomicSMin, spirv.OpAtomicUMin, spirv.OpAtomicSMax,
				spirv.OpAtomicUMax, spirv.OpAtomicAnd, spirv.OpAtomicOr, spirv.OpAtomicXor:
				if len(in.Operands) >= 3 {
					mark(in.Operands[2], func(r *DescriptorRequirements) {
						read(r)
						if in.Opcode != spirv.OpAtomicLoad {
							write(r)
						}
						r.StorageImageAtomic = r.StorageImageAtomic || w.isStorageImage(in.Operands[2])
					})
				}
			case spirv.OpImageRead, spirv.OpImageFetch,
				spirv.OpImageSparseRead, spirv.OpImageSparseFetch:
				if len(in.Operands) >= 3 {
					mark(in.Operands[2], read)
				}
			case spirv.OpImageWrite:
				if len(in.Operands) >= 1 {
					mark(in.Operands[0], write)
				}
			default:
				if sampling, ok := classifySampling(in.Opcode); ok {
					w.markSampling(in, sampling, mark, read)
				}
			}
		}
	}

	info.DescriptorBindingRequirements = w.bindingRequirements(stage, used)
	info.PushConstantRange = w.pushConstantRange(info.FunctionID, stage)
	info.InputInterface, info.OutputInterface = w.interfaces(interfaceIDs)
}

// samplingShape describes an image-sampling opcode's operand layout and the
// sampler constraints its form implies.
type samplingShape struct {
	dref    bool
	proj    bool
	gather  bool
	maskPos int // operand index of the image-operands mask, if present
}

func classifySampling(op spirv.OpCode) (samplingShape, bool) {
	switch op {
	case spirv.OpImageSampleImplicitLod, spirv.OpImageSampleExplicitLod,
		spirv.OpImageSparseSampleImplicitLod, spirv.OpImageSparseSampleExplicitLod:
		return samplingShape{maskPos: 4}, true
	case spirv.OpImageSampleDrefImplicitLod, spirv.OpImageSampleDrefExplicitLod,
		spirv.OpImageSparseSampleDrefImplicitLod, spirv.OpImageSparseSampleDrefExplicitLod:
		return samplingShape{dref: true, maskPos: 5}, true
	case spirv.OpImageSampleProjImplicitLod, spirv.OpImageSampleProjExplicitLod,
		spirv.OpImageSparseSampleProjImplicitLod, spirv.OpImageSparseSampleProjExplicitLod:
		return samplingShape{proj: true, maskPos: 4}, true
	case spirv.OpImageSampleProjDrefImplicitLod, spirv.OpImageSampleProjDrefExplicitLod,
		spirv.OpImageSparseSampleProjDrefImplicitLod, spirv.OpImageSparseSampleProjDrefExplicitLod:
		return samplingShape{dref: true, proj: true, maskPos: 5}, true
	case spirv.OpImageGather, spirv.OpImageSparseGather:
		return samplingShape{gather: true, maskPos: 5}, true
	case spirv.OpImageDrefGather, spirv.OpImageSparseDrefGather:
		return samplingShape{dref: true, gather: true, maskPos: 5}, true
	}
	return samplingShape{}, false
}

func (w *walker) markSampling(in *spirv.Instruction, shape samplingShape,
	mark func(uint32, func(*DescriptorRequirements)) (uint32, DescriptorIndex),
	read func(*DescriptorRequirements)) {

	if len(in.Operands) < 4 {
		return
	}
	sampledOperand := in.Operands[2]

	var mask uint32
	if len(in.Operands) > shape.maskPos {
		mask = in.Operands[shape.maskPos]
	}
	// Unnormalized-coordinate samplers only support the plain sample forms
	// without offsets; YCbCr conversion forbids gathers and offsets.
	offsets := mask & (spirv.ImageOperandsOffset | spirv.ImageOperandsConstOffset |
		spirv.ImageOperandsConstOffsets)
	noUnnorm := shape.dref || shape.proj || shape.gather || offsets != 0
	noYCbCr := shape.gather || offsets != 0

	applySamplerFlags := func(r *DescriptorRequirements) {
		read(r)
		r.SamplerCompare = r.SamplerCompare || shape.dref
		r.SamplerNoUnnormalizedCoordinates = r.SamplerNoUnnormalizedCoordinates || noUnnorm
		r.SamplerNoYCbCrConversion = r.SamplerNoYCbCrConversion || noYCbCr
	}

	// The sampled operand is either an OpSampledImage pairing a separate
	// image and sampler, or derives from a combined-image-sampler variable.
	imageOperand, samplerOperand := sampledOperand, sampledOperand
	if pair, ok := w.sampledPairs[w.chainRoot(sampledOperand)]; ok {
		imageOperand, samplerOperand = pair[0], pair[1]
	}

	imageVar, imageIndex := mark(imageOperand, read)
	if samplerOperand == imageOperand {
		mark(imageOperand, applySamplerFlags)
		return
	}

	mark(samplerOperand, func(r *DescriptorRequirements) {
		applySamplerFlags(r)
		if imageVar == 0 || imageIndex.Dynamic {
			return
		}
		if set, binding, ok := w.bindingOf(imageVar); ok {
			if r.SamplerWithImages == nil {
				r.SamplerWithImages = make(map[DescriptorIdentifier]struct{})
			}
			r.SamplerWithImages[DescriptorIdentifier{
				Set: set, Binding: binding, Index: imageIndex.Index,
			}] = struct{}{}
		}
	})
}

// chainRoot follows copy aliases only far enough to find an OpSampledImage
// result, stopping at the first ID that has a recorded pairing.
func (w *walker) chainRoot(id uint32) uint32 {
	for steps := 0; steps < len(w.aliasOf)+1; steps++ {
		if _, ok := w.sampledPairs[id]; ok {
			return id
		}
		next, ok := w.aliasOf[id]
		if !ok {
			return id
		}
		id = next
	}
	return id
}

func (w *walker) isStorageImage(operand uint32) bool {
	varID, _ := w.resolve(operand)
	def, class := w.variable(varID)
	if def == nil || class != spirv.StorageClassUniformConstant {
		return false
	}
	image := w.unwrapToResource(def.Operands[0])
	return image != nil && image.Opcode == spirv.OpTypeImage &&
		len(image.Operands) >= 7 && image.Operands[6] == 2
}

// isArrayedBinding reports whether a variable is a descriptor array.
func (w *walker) isArrayedBinding(varID uint32) bool {
	def, _ := w.variable(varID)
	if def == nil {
		return false
	}
	ptr := w.m.Def(def.Operands[0])
	if ptr == nil || ptr.Opcode != spirv.OpTypePointer || len(ptr.Operands) < 3 {
		return false
	}
	pointee := w.m.Def(ptr.Operands[2])
	return pointee != nil &&
		(pointee.Opcode == spirv.OpTypeArray || pointee.Opcode == spirv.OpTypeRuntimeArray)
}

func (w *walker) bindingOf(varID uint32) (set, binding uint32, ok bool) {
	set, setOK := w.m.DecorationValue(varID, spirv.DecorationDescriptorSet)
	binding, bindingOK := w.m.DecorationValue(varID, spirv.DecorationBinding)
	return set, binding, setOK && bindingOK
}

func isDescriptorClass(class spirv.StorageClass) bool {
	switch class {
	case spirv.StorageClassUniformConstant, spirv.StorageClassUniform,
		spirv.StorageClassStorageBuffer:
		return true
	}
	return false
}

// bindingRequirements converts the walk's per-variable usage into the
// per-binding requirement map.
func (w *walker) bindingRequirements(stage ShaderStage, used map[uint32]usage) map[BindingKey]*DescriptorBindingRequirements {
	out := make(map[BindingKey]*DescriptorBindingRequirements)
	for varID, u := range used {
		def, class := w.variable(varID)
		if def == nil {
			continue
		}
		set, binding, ok := w.bindingOf(varID)
		if !ok {
			continue
		}
		req := w.requirementsForVariable(def, class, stage)
		if req == nil {
			continue
		}
		req.Descriptors = make(map[DescriptorIndex]*DescriptorRequirements, len(u))
		for index, r := range u {
			req.Descriptors[index] = r
		}
		key := BindingKey{Set: set, Binding: binding}
		if existing, ok := out[key]; ok {
			// Two variables on one slot (aliased bindings); fold them.
			_ = existing.Merge(req)
		} else {
			out[key] = req
		}
	}
	return out
}

// requirementsForVariable infers the descriptor types and image constraints
// a resource variable imposes on its binding slot.
func (w *walker) requirementsForVariable(def *spirv.Instruction, class spirv.StorageClass, stage ShaderStage) *DescriptorBindingRequirements {
	req := &DescriptorBindingRequirements{Stages: ShaderStages(0).With(stage)}

	pointee, count := w.unwrapPointer(def.Operands[0])
	if pointee == nil {
		return nil
	}
	req.DescriptorCount = count

	switch pointee.Opcode {
	case spirv.OpTypeSampler:
		req.DescriptorTypes = []DescriptorType{DescriptorTypeSampler}

	case spirv.OpTypeSampledImage:
		image := w.m.Def(pointee.Operands[1])
		if image == nil {
			return nil
		}
		req.DescriptorTypes = []DescriptorType{DescriptorTypeCombinedImageSampler}
		w.applyImageConstraints(req, image)

	case spirv.OpTypeImage:
		if len(pointee.Operands) < 8 {
			return nil
		}
		dim := spirv.Dim(pointee.Operands[2])
		sampled := pointee.Operands[6]
		switch {
		case dim == spirv.DimSubpassData:
			req.DescriptorTypes = []DescriptorType{DescriptorTypeInputAttachment}
		case dim == spirv.DimBuffer && sampled == 1:
			req.DescriptorTypes = []DescriptorType{DescriptorTypeUniformTexelBuffer}
		case dim == spirv.DimBuffer:
			req.DescriptorTypes = []DescriptorType{DescriptorTypeStorageTexelBuffer}
		case sampled == 1:
			req.DescriptorTypes = []DescriptorType{DescriptorTypeSampledImage}
		default:
			req.DescriptorTypes = []DescriptorType{DescriptorTypeStorageImage}
		}
		w.applyImageConstraints(req, pointee)

	case spirv.OpTypeStruct:
		id, _ := pointee.ResultID()
		switch {
		case class == spirv.StorageClassStorageBuffer,
			w.m.HasDecoration(id, spirv.DecorationBufferBlock):
			req.DescriptorTypes = []DescriptorType{
				DescriptorTypeStorageBuffer, DescriptorTypeStorageBufferDynamic,
			}
		case class == spirv.StorageClassUniform:
			req.DescriptorTypes = []DescriptorType{
				DescriptorTypeUniformBuffer, DescriptorTypeUniformBufferDynamic,
			}
		default:
			return nil
		}

	default:
		return nil
	}
	return req
}

// applyImageConstraints fills the format, scalar type, view type and
// multisampling requirements from an OpTypeImage.
func (w *walker) applyImageConstraints(req *DescriptorBindingRequirements, image *spirv.Instruction) {
	if image.Opcode != spirv.OpTypeImage || len(image.Operands) < 8 {
		return
	}
	dim := spirv.Dim(image.Operands[2])
	arrayed := image.Operands[4] != 0
	req.ImageMultisampled = image.Operands[5] != 0

	if format := spirv.ImageFormat(image.Operands[7]); format != spirv.ImageFormatUnknown {
		req.ImageFormat = &format
	}
	if sampledType := w.m.Def(image.Operands[1]); sampledType != nil {
		if scalar, _, ok := scalarTypeOf(sampledType); ok {
			req.ImageScalarType = &scalar
		}
	}
	if view, ok := viewTypeFor(dim, arrayed); ok {
		req.ImageViewType = &view
	}
}

func viewTypeFor(dim spirv.Dim, arrayed bool) (ImageViewType, bool) {
	switch dim {
	case spirv.Dim1D:
		if arrayed {
			return ImageViewType1DArray, true
		}
		return ImageViewType1D, true
	case spirv.Dim2D, spirv.DimRect:
		if arrayed {
			return ImageViewType2DArray, true
		}
		return ImageViewType2D, true
	case spirv.Dim3D:
		return ImageViewType3D, true
	case spirv.DimCube:
		if arrayed {
			return ImageViewTypeCubeArray, true
		}
		return ImageViewTypeCube, true
	}
	return 0, false
}

func scalarTypeOf(def *spirv.Instruction) (ScalarType, bool, bool) {
	switch def.Opcode {
	case spirv.OpTypeFloat:
		return ScalarTypeFloat, len(def.Operands) >= 2 && def.Operands[1] == 64, true
	case spirv.OpTypeInt:
		is64 := len(def.Operands) >= 2 && def.Operands[1] == 64
		if len(def.Operands) >= 3 && def.Operands[2] != 0 {
			return ScalarTypeSint, is64, true
		}
		return ScalarTypeUint, is64, true
	}
	return 0, false, false
}

// unwrapPointer resolves a pointer type to the resource type behind it,
// peeling one level of descriptor array. The count is nil for runtime-sized
// arrays and 1 for non-arrayed bindings.
func (w *walker) unwrapPointer(ptrTypeID uint32) (*spirv.Instruction, *uint32) {
	ptr := w.m.Def(ptrTypeID)
	if ptr == nil || ptr.Opcode != spirv.OpTypePointer || len(ptr.Operands) < 3 {
		return nil, nil
	}
	pointee := w.m.Def(ptr.Operands[2])
	if pointee == nil {
		return nil, nil
	}

	one := uint32(1)
	count := &one
	switch pointee.Opcode {
	case spirv.OpTypeArray:
		if length := w.m.Def(pointee.Operands[2]); length != nil &&
			length.Opcode == spirv.OpConstant && len(length.Operands) >= 3 {
			n := length.Operands[2]
			count = &n
		}
		pointee = w.m.Def(pointee.Operands[1])
	case spirv.OpTypeRuntimeArray:
		count = nil
		pointee = w.m.Def(pointee.Operands[1])
	}
	return pointee, count
}

// unwrapToResource peels pointer and array types down to the resource type.
func (w *walker) unwrapToResource(ptrTypeID uint32) *spirv.Instruction {
	pointee, _ := w.unwrapPointer(ptrTypeID)
	return pointee
}

// pushConstantRange computes the tightest [min, max) byte range of the
// push-constant block the entry point touches, from the block's member
// Offset decorations. A whole-block access or a dynamically indexed access
// widens the range to the full block.
func (w *walker) pushConstantRange(fnID uint32, stage ShaderStage) *PushConstantRange {
	var blockID uint32
	touched := make(map[uint32]bool)
	allMembers := false

	isPushVariable := func(id uint32) bool {
		def, class := w.variable(id)
		if class != spirv.StorageClassPushConstant {
			return false
		}
		if block := w.unwrapToResource(def.Operands[0]); block != nil {
			blockID, _ = block.ResultID()
			return true
		}
		return false
	}

	for _, fr := range w.reachable(fnID) {
		for i := fr.start; i < fr.end; i++ {
			in := &w.m.Instructions[i]
			switch in.Opcode {
			case spirv.OpAccessChain, spirv.OpInBoundsAccessChain, spirv.OpPtrAccessChain:
				if len(in.Operands) < 3 {
					continue
				}
				base, _ := w.resolve(in.Operands[2])
				if !isPushVariable(base) {
					continue
				}
				if len(in.Operands) >= 4 {
					if index := w.constantIndex(in.Operands[3]); !index.Dynamic {
						touched[index.Index] = true
						continue
					}
				}
				allMembers = true
			case spirv.OpLoad, spirv.OpCopyObject:
				// A direct load of the whole block touches every member.
				if len(in.Operands) >= 3 && isPushVariable(in.Operands[2]) {
					allMembers = true
				}
			case spirv.OpStore:
				if len(in.Operands) >= 1 && isPushVariable(in.Operands[0]) {
					allMembers = true
				}
			}
		}
	}
	if blockID == 0 {
		return nil
	}

	block := w.m.Def(blockID)
	if block == nil || block.Opcode != spirv.OpTypeStruct {
		return nil
	}

	minOffset := ^uint32(0)
	maxEnd := uint32(0)
	for member := range block.Operands[1:] {
		if !allMembers && !touched[uint32(member)] {
			continue
		}
		offset, ok := w.m.MemberDecorationValue(blockID, uint32(member), spirv.DecorationOffset)
		if !ok {
			continue
		}
		if offset < minOffset {
			minOffset = offset
		}
		if end := offset + w.typeSize(block.Operands[1+member], blockID, uint32(member)); end > maxEnd {
			maxEnd = end
		}
	}
	if maxEnd == 0 {
		return nil
	}
	if minOffset == ^uint32(0) {
		minOffset = 0
	}
	return &PushConstantRange{
		Stages: ShaderStages(0).With(stage),
		Offset: minOffset,
		Size:   maxEnd - minOffset,
	}
}

// typeSize computes the byte size of a type as laid out in a push-constant
// or buffer block, honoring ArrayStride and MatrixStride decorations.
func (w *walker) typeSize(typeID uint32, structID, member uint32) uint32 {
	def := w.m.Def(typeID)
	if def == nil {
		return 0
	}
	switch def.Opcode {
	case spirv.OpTypeInt, spirv.OpTypeFloat:
		return def.Operands[1] / 8
	case spirv.OpTypeVector:
		return def.Operands[2] * w.typeSize(def.Operands[1], structID, member)
	case spirv.OpTypeMatrix:
		cols := def.Operands[2]
		if stride, ok := w.m.MemberDecorationValue(structID, member, spirv.DecorationMatrixStride); ok {
			return cols * stride
		}
		return cols * w.typeSize(def.Operands[1], structID, member)
	case spirv.OpTypeArray:
		var length uint32
		if c := w.m.Def(def.Operands[2]); c != nil && c.Opcode == spirv.OpConstant && len(c.Operands) >= 3 {
			length = c.Operands[2]
		}
		id, _ := def.ResultID()
		if stride, ok := w.m.DecorationValue(id, spirv.DecorationArrayStride); ok {
			return length * stride
		}
		return length * w.typeSize(def.Operands[1], structID, member)
	case spirv.OpTypeStruct:
		id, _ := def.ResultID()
		var size uint32
		for m := range def.Operands[1:] {
			offset, _ := w.m.MemberDecorationValue(id, uint32(m), spirv.DecorationOffset)
			if end := offset + w.typeSize(def.Operands[1+m], id, uint32(m)); end > size {
				size = end
			}
		}
		return size
	}
	return 0
}

// interfaces builds the input and output interfaces from the entry point's
// interface list, skipping built-in variables. Entries are ordered by
// location so reflection output is stable.
func (w *walker) interfaces(interfaceIDs []uint32) (input, output ShaderInterface) {
	var inputs, outputs []ShaderInterfaceEntry
	for _, id := range interfaceIDs {
		def, class := w.variable(id)
		if def == nil {
			continue
		}
		if class != spirv.StorageClassInput && class != spirv.StorageClassOutput {
			continue
		}
		if w.isBuiltin(id, def) {
			continue
		}
		location, ok := w.m.DecorationValue(id, spirv.DecorationLocation)
		if !ok {
			continue
		}
		entry := ShaderInterfaceEntry{Location: location}
		entry.Component, _ = w.m.DecorationValue(id, spirv.DecorationComponent)
		entry.Index, _ = w.m.DecorationValue(id, spirv.DecorationIndex)
		entry.Name, _ = w.m.Name(id)

		ty, ok := w.interfaceType(def.Operands[0])
		if !ok {
			continue
		}
		entry.Type = ty

		if class == spirv.StorageClassInput {
			inputs = append(inputs, entry)
		} else {
			outputs = append(outputs, entry)
		}
	}
	sortEntries(inputs)
	sortEntries(outputs)
	return NewShaderInterface(inputs), NewShaderInterface(outputs)
}

func sortEntries(entries []ShaderInterfaceEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Location != entries[j].Location {
			return entries[i].Location < entries[j].Location
		}
		return entries[i].Index < entries[j].Index
	})
}

func (w *walker) isBuiltin(varID uint32, def *spirv.Instruction) bool {
	if w.m.HasDecoration(varID, spirv.DecorationBuiltIn) {
		return true
	}
	// Blocks like gl_PerVertex carry BuiltIn on their members.
	if pointee := w.unwrapToResource(def.Operands[0]); pointee != nil {
		if id, ok := pointee.ResultID(); ok && pointee.Opcode == spirv.OpTypeStruct {
			for member := range pointee.Operands[1:] {
				if w.m.HasMemberDecoration(id, uint32(member), spirv.DecorationBuiltIn) {
					return true
				}
			}
		}
	}
	return false
}

// interfaceType builds the type descriptor of an interface variable from its
// pointer type: arrays and matrices contribute the element count, vectors
// the component count, and the scalar the base type and width.
func (w *walker) interfaceType(ptrTypeID uint32) (ShaderInterfaceEntryType, bool) {
	ptr := w.m.Def(ptrTypeID)
	if ptr == nil || ptr.Opcode != spirv.OpTypePointer || len(ptr.Operands) < 3 {
		return ShaderInterfaceEntryType{}, false
	}
	ty := w.m.Def(ptr.Operands[2])

	out := ShaderInterfaceEntryType{NumComponents: 1, NumElements: 1}
	if ty != nil {
		switch ty.Opcode {
		case spirv.OpTypeArray:
			if c := w.m.Def(ty.Operands[2]); c != nil && c.Opcode == spirv.OpConstant && len(c.Operands) >= 3 {
				out.NumElements = c.Operands[2]
			}
			ty = w.m.Def(ty.Operands[1])
		case spirv.OpTypeMatrix:
			out.NumElements = ty.Operands[2]
			ty = w.m.Def(ty.Operands[1])
		}
	}
	if ty != nil && ty.Opcode == spirv.OpTypeVector {
		out.NumComponents = ty.Operands[2]
		ty = w.m.Def(ty.Operands[1])
	}
	if ty == nil {
		return ShaderInterfaceEntryType{}, false
	}
	scalar, is64, ok := scalarTypeOf(ty)
	if !ok {
		return ShaderInterfaceEntryType{}, false
	}
	out.BaseType = scalar
	out.Is64Bit = is64
	return out, true
}
