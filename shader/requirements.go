package shader

import (
	"fmt"

	"github.com/gogpu/spv/spirv"
)

// DescriptorType identifies the kind of resource a descriptor slot holds.
// The values follow the Vulkan descriptor type layout.
type DescriptorType uint8

const (
	DescriptorTypeSampler              DescriptorType = 0
	DescriptorTypeCombinedImageSampler DescriptorType = 1
	DescriptorTypeSampledImage         DescriptorType = 2
	DescriptorTypeStorageImage         DescriptorType = 3
	DescriptorTypeUniformTexelBuffer   DescriptorType = 4
	DescriptorTypeStorageTexelBuffer   DescriptorType = 5
	DescriptorTypeUniformBuffer        DescriptorType = 6
	DescriptorTypeStorageBuffer        DescriptorType = 7
	DescriptorTypeUniformBufferDynamic DescriptorType = 8
	DescriptorTypeStorageBufferDynamic DescriptorType = 9
	DescriptorTypeInputAttachment      DescriptorType = 10
)

var descriptorTypeNames = map[DescriptorType]string{
	DescriptorTypeSampler:              "Sampler",
	DescriptorTypeCombinedImageSampler: "CombinedImageSampler",
	DescriptorTypeSampledImage:         "SampledImage",
	DescriptorTypeStorageImage:         "StorageImage",
	DescriptorTypeUniformTexelBuffer:   "UniformTexelBuffer",
	DescriptorTypeStorageTexelBuffer:   "StorageTexelBuffer",
	DescriptorTypeUniformBuffer:        "UniformBuffer",
	DescriptorTypeStorageBuffer:        "StorageBuffer",
	DescriptorTypeUniformBufferDynamic: "UniformBufferDynamic",
	DescriptorTypeStorageBufferDynamic: "StorageBufferDynamic",
	DescriptorTypeInputAttachment:      "InputAttachment",
}

func (t DescriptorType) String() string {
	if name, ok := descriptorTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("DescriptorType(%d)", uint8(t))
}

// ScalarType is the base numeric type of an image's sampled type or an
// interface variable.
type ScalarType uint8

const (
	ScalarTypeFloat ScalarType = iota
	ScalarTypeSint
	ScalarTypeUint
)

func (t ScalarType) String() string {
	switch t {
	case ScalarTypeFloat:
		return "Float"
	case ScalarTypeSint:
		return "Sint"
	case ScalarTypeUint:
		return "Uint"
	default:
		return fmt.Sprintf("ScalarType(%d)", uint8(t))
	}
}

// ImageViewType is the view dimensionality an image variable requires.
type ImageViewType uint8

const (
	ImageViewType1D ImageViewType = iota
	ImageViewType2D
	ImageViewType3D
	ImageViewTypeCube
	ImageViewType1DArray
	ImageViewType2DArray
	ImageViewTypeCubeArray
)

var imageViewTypeNames = map[ImageViewType]string{
	ImageViewType1D: "1D", ImageViewType2D: "2D", ImageViewType3D: "3D",
	ImageViewTypeCube: "Cube", ImageViewType1DArray: "1DArray",
	ImageViewType2DArray: "2DArray", ImageViewTypeCubeArray: "CubeArray",
}

func (t ImageViewType) String() string {
	if name, ok := imageViewTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ImageViewType(%d)", uint8(t))
}

// BindingKey addresses one descriptor binding slot.
type BindingKey struct {
	Set     uint32
	Binding uint32
}

func (k BindingKey) String() string {
	return fmt.Sprintf("(set=%d, binding=%d)", k.Set, k.Binding)
}

// DescriptorIdentifier addresses one descriptor within a binding, used to
// record which sampled images a sampler is combined with.
type DescriptorIdentifier struct {
	Set     uint32
	Binding uint32
	Index   uint32
}

// DescriptorIndex is a key into the per-descriptor requirement map of a
// binding. Dynamic marks an access whose array index is not statically known.
type DescriptorIndex struct {
	Index   uint32
	Dynamic bool
}

// IndexAt returns the key for a statically known descriptor index.
func IndexAt(i uint32) DescriptorIndex {
	return DescriptorIndex{Index: i}
}

// DynamicIndex returns the key for dynamically indexed accesses.
func DynamicIndex() DescriptorIndex {
	return DescriptorIndex{Dynamic: true}
}

// DescriptorBindingRequirements describes what a binding slot must provide
// for the shader stages that access it. DescriptorTypes is a restricting set:
// any listed type satisfies the requirement. A nil DescriptorCount marks a
// runtime-sized descriptor array. Nil image fields are unconstrained.
type DescriptorBindingRequirements struct {
	DescriptorTypes   []DescriptorType
	DescriptorCount   *uint32
	ImageFormat       *spirv.ImageFormat
	ImageMultisampled bool
	ImageScalarType   *ScalarType
	ImageViewType     *ImageViewType
	Stages            ShaderStages

	// Descriptors holds finer-grained requirements per descriptor index.
	Descriptors map[DescriptorIndex]*DescriptorRequirements
}

// DescriptorRequirements describes how one descriptor within a binding is
// used by the stages that access it.
type DescriptorRequirements struct {
	MemoryRead  ShaderStages
	MemoryWrite ShaderStages

	SamplerCompare                   bool
	SamplerNoUnnormalizedCoordinates bool
	SamplerNoYCbCrConversion         bool

	// SamplerWithImages records the sampled-image descriptors this sampler
	// descriptor is combined with via OpSampledImage.
	SamplerWithImages map[DescriptorIdentifier]struct{}

	StorageImageAtomic bool
}

// Clone returns a deep copy.
func (r *DescriptorRequirements) Clone() *DescriptorRequirements {
	out := *r
	if r.SamplerWithImages != nil {
		out.SamplerWithImages = make(map[DescriptorIdentifier]struct{}, len(r.SamplerWithImages))
		for id := range r.SamplerWithImages {
			out.SamplerWithImages[id] = struct{}{}
		}
	}
	return &out
}

// Merge folds other into r. Descriptor requirements from different stages
// never conflict: stage sets and flags combine with OR, pairings with union.
func (r *DescriptorRequirements) Merge(other *DescriptorRequirements) {
	r.MemoryRead = r.MemoryRead.Union(other.MemoryRead)
	r.MemoryWrite = r.MemoryWrite.Union(other.MemoryWrite)
	r.SamplerCompare = r.SamplerCompare || other.SamplerCompare
	r.SamplerNoUnnormalizedCoordinates = r.SamplerNoUnnormalizedCoordinates || other.SamplerNoUnnormalizedCoordinates
	r.SamplerNoYCbCrConversion = r.SamplerNoYCbCrConversion || other.SamplerNoYCbCrConversion
	r.StorageImageAtomic = r.StorageImageAtomic || other.StorageImageAtomic
	for id := range other.SamplerWithImages {
		if r.SamplerWithImages == nil {
			r.SamplerWithImages = make(map[DescriptorIdentifier]struct{})
		}
		r.SamplerWithImages[id] = struct{}{}
	}
}

// Clone returns a deep copy.
func (r *DescriptorBindingRequirements) Clone() *DescriptorBindingRequirements {
	out := *r
	out.DescriptorTypes = append([]DescriptorType(nil), r.DescriptorTypes...)
	if r.DescriptorCount != nil {
		count := *r.DescriptorCount
		out.DescriptorCount = &count
	}
	if r.ImageFormat != nil {
		format := *r.ImageFormat
		out.ImageFormat = &format
	}
	if r.ImageScalarType != nil {
		scalar := *r.ImageScalarType
		out.ImageScalarType = &scalar
	}
	if r.ImageViewType != nil {
		view := *r.ImageViewType
		out.ImageViewType = &view
	}
	if r.Descriptors != nil {
		out.Descriptors = make(map[DescriptorIndex]*DescriptorRequirements, len(r.Descriptors))
		for index, req := range r.Descriptors {
			out.Descriptors[index] = req.Clone()
		}
	}
	return &out
}

// Merge folds other into r, reconciling the requirements two independently
// compiled stages place on the same binding slot. On conflict r is left
// unmodified and a typed error names the offending field.
func (r *DescriptorBindingRequirements) Merge(other *DescriptorBindingRequirements) error {
	// Conflict checks precede any mutation.
	if disjoint(r.DescriptorTypes, other.DescriptorTypes) {
		return NewError(ErrDescriptorTypesDisjoint,
			fmt.Sprintf("no descriptor type in common between %v and %v",
				r.DescriptorTypes, other.DescriptorTypes))
	}
	if r.ImageFormat != nil && other.ImageFormat != nil && *r.ImageFormat != *other.ImageFormat {
		return NewError(ErrImageFormatConflict,
			fmt.Sprintf("image format %v conflicts with %v", *r.ImageFormat, *other.ImageFormat))
	}
	if r.ImageMultisampled != other.ImageMultisampled {
		return NewError(ErrImageMultisampledConflict,
			fmt.Sprintf("image multisampled %t conflicts with %t",
				r.ImageMultisampled, other.ImageMultisampled))
	}
	if r.ImageScalarType != nil && other.ImageScalarType != nil && *r.ImageScalarType != *other.ImageScalarType {
		return NewError(ErrImageScalarTypeConflict,
			fmt.Sprintf("image scalar type %v conflicts with %v",
				*r.ImageScalarType, *other.ImageScalarType))
	}
	if r.ImageViewType != nil && other.ImageViewType != nil && *r.ImageViewType != *other.ImageViewType {
		return NewError(ErrImageViewTypeConflict,
			fmt.Sprintf("image view type %v conflicts with %v",
				*r.ImageViewType, *other.ImageViewType))
	}

	r.mergeUnchecked(other)
	return nil
}

// MergeUnchecked folds other into r without the conflict checks Merge
// performs. Merging requirements that Merge would reject is undefined.
func (r *DescriptorBindingRequirements) MergeUnchecked(other *DescriptorBindingRequirements) {
	r.mergeUnchecked(other)
}

func (r *DescriptorBindingRequirements) mergeUnchecked(other *DescriptorBindingRequirements) {
	kept := r.DescriptorTypes[:0]
	for _, ty := range r.DescriptorTypes {
		if containsType(other.DescriptorTypes, ty) {
			kept = append(kept, ty)
		}
	}
	r.DescriptorTypes = kept

	// A concrete count from either side is preserved; two concrete counts
	// combine as the maximum.
	if r.DescriptorCount == nil {
		r.DescriptorCount = copyCount(other.DescriptorCount)
	} else if other.DescriptorCount != nil && *other.DescriptorCount > *r.DescriptorCount {
		r.DescriptorCount = copyCount(other.DescriptorCount)
	}

	if r.ImageFormat == nil {
		r.ImageFormat = other.ImageFormat
	}
	if r.ImageScalarType == nil {
		r.ImageScalarType = other.ImageScalarType
	}
	if r.ImageViewType == nil {
		r.ImageViewType = other.ImageViewType
	}
	r.Stages = r.Stages.Union(other.Stages)

	for index, req := range other.Descriptors {
		if existing, ok := r.Descriptors[index]; ok {
			existing.Merge(req)
		} else {
			if r.Descriptors == nil {
				r.Descriptors = make(map[DescriptorIndex]*DescriptorRequirements)
			}
			r.Descriptors[index] = req.Clone()
		}
	}
}

// MergeBindingRequirements folds the per-binding requirement map of one
// entry point into dst, merging slots both maps address. Slots only in src
// are deep-copied so dst never aliases src.
func MergeBindingRequirements(dst, src map[BindingKey]*DescriptorBindingRequirements) error {
	for key, req := range src {
		if existing, ok := dst[key]; ok {
			if err := existing.Merge(req); err != nil {
				return fmt.Errorf("merging requirements for %s: %w", key, err)
			}
		} else {
			dst[key] = req.Clone()
		}
	}
	return nil
}

func disjoint(a, b []DescriptorType) bool {
	for _, ty := range a {
		if containsType(b, ty) {
			return false
		}
	}
	return true
}

func containsType(types []DescriptorType, ty DescriptorType) bool {
	for _, t := range types {
		if t == ty {
			return true
		}
	}
	return false
}

func copyCount(count *uint32) *uint32 {
	if count == nil {
		return nil
	}
	c := *count
	return &c
}
