package shader

import (
	"testing"

	"github.com/gogpu/spv/spirv"

	"github.com/stretchr/testify/require"
)

func uniformBufferReq(stage ShaderStage) *DescriptorBindingRequirements {
	count := uint32(1)
	return &DescriptorBindingRequirements{
		DescriptorTypes: []DescriptorType{
			DescriptorTypeUniformBuffer, DescriptorTypeUniformBufferDynamic,
		},
		DescriptorCount: &count,
		Stages:          ShaderStages(0).With(stage),
		Descriptors: map[DescriptorIndex]*DescriptorRequirements{
			IndexAt(0): {MemoryRead: ShaderStages(0).With(stage)},
		},
	}
}

func TestDescriptorBindingRequirements_MergeStages(t *testing.T) {
	t.Parallel()
	a := uniformBufferReq(StageVertex)
	b := uniformBufferReq(StageFragment)

	require.NoError(t, a.Merge(b))
	require.True(t, a.Stages.Contains(StageVertex))
	require.True(t, a.Stages.Contains(StageFragment))
	require.Equal(t,
		[]DescriptorType{DescriptorTypeUniformBuffer, DescriptorTypeUniformBufferDynamic},
		a.DescriptorTypes)

	read := a.Descriptors[IndexAt(0)].MemoryRead
	require.True(t, read.Contains(StageVertex))
	require.True(t, read.Contains(StageFragment))
}

func TestDescriptorBindingRequirements_MergeCommutesAndAssociates(t *testing.T) {
	t.Parallel()
	countA, countB := uint32(2), uint32(4)
	formatRgba := spirv.ImageFormatRgba8
	scalarFloat := ScalarTypeFloat
	view2D := ImageViewType2D

	newA := func() *DescriptorBindingRequirements {
		return &DescriptorBindingRequirements{
			DescriptorTypes: []DescriptorType{DescriptorTypeStorageImage},
			DescriptorCount: &countA,
			ImageFormat:     &formatRgba,
			Stages:          ShaderStages(0).With(StageVertex),
		}
	}
	newB := func() *DescriptorBindingRequirements {
		return &DescriptorBindingRequirements{
			DescriptorTypes: []DescriptorType{DescriptorTypeStorageImage},
			DescriptorCount: &countB,
			ImageScalarType: &scalarFloat,
			Stages:          ShaderStages(0).With(StageFragment),
		}
	}
	newC := func() *DescriptorBindingRequirements {
		return &DescriptorBindingRequirements{
			DescriptorTypes: []DescriptorType{DescriptorTypeStorageImage},
			ImageViewType:   &view2D,
			Stages:          ShaderStages(0).With(StageCompute),
		}
	}

	left := newA()
	require.NoError(t, left.Merge(newB()))
	require.NoError(t, left.Merge(newC()))

	bc := newB()
	require.NoError(t, bc.Merge(newC()))
	right := newA()
	require.NoError(t, right.Merge(bc))

	require.Equal(t, left.DescriptorTypes, right.DescriptorTypes)
	require.Equal(t, *left.DescriptorCount, *right.DescriptorCount)
	require.Equal(t, uint32(4), *left.DescriptorCount)
	require.Equal(t, *left.ImageFormat, *right.ImageFormat)
	require.Equal(t, *left.ImageScalarType, *right.ImageScalarType)
	require.Equal(t, *left.ImageViewType, *right.ImageViewType)
	require.Equal(t, left.Stages, right.Stages)
}

func TestDescriptorBindingRequirements_Conflicts(t *testing.T) {
	t.Parallel()
	formatRgba := spirv.ImageFormatRgba8
	formatRg16 := spirv.ImageFormatRg16f
	scalarFloat, scalarUint := ScalarTypeFloat, ScalarTypeUint
	view2D, viewCube := ImageViewType2D, ImageViewTypeCube

	tcs := []struct {
		name string
		a, b *DescriptorBindingRequirements
		kind ErrorKind
	}{
		{
			"disjoint types",
			&DescriptorBindingRequirements{DescriptorTypes: []DescriptorType{DescriptorTypeUniformBuffer}},
			&DescriptorBindingRequirements{DescriptorTypes: []DescriptorType{DescriptorTypeStorageImage}},
			ErrDescriptorTypesDisjoint,
		},
		{
			"format mismatch",
			&DescriptorBindingRequirements{
				DescriptorTypes: []DescriptorType{DescriptorTypeStorageImage},
				ImageFormat:     &formatRgba,
			},
			&DescriptorBindingRequirements{
				DescriptorTypes: []DescriptorType{DescriptorTypeStorageImage},
				ImageFormat:     &formatRg16,
			},
			ErrImageFormatConflict,
		},
		{
			"scalar type mismatch",
			&DescriptorBindingRequirements{
				DescriptorTypes: []DescriptorType{DescriptorTypeSampledImage},
				ImageScalarType: &scalarFloat,
			},
			&DescriptorBindingRequirements{
				DescriptorTypes: []DescriptorType{DescriptorTypeSampledImage},
				ImageScalarType: &scalarUint,
			},
			ErrImageScalarTypeConflict,
		},
		{
			"view type mismatch",
			&DescriptorBindingRequirements{
				DescriptorTypes: []DescriptorType{DescriptorTypeSampledImage},
				ImageViewType:   &view2D,
			},
			&DescriptorBindingRequirements{
				DescriptorTypes: []DescriptorType{DescriptorTypeSampledImage},
				ImageViewType:   &viewCube,
			},
			ErrImageViewTypeConflict,
		},
		{
			"multisampled mismatch",
			&DescriptorBindingRequirements{
				DescriptorTypes:   []DescriptorType{DescriptorTypeSampledImage},
				ImageMultisampled: true,
			},
			&DescriptorBindingRequirements{
				DescriptorTypes: []DescriptorType{DescriptorTypeSampledImage},
			},
			ErrImageMultisampledConflict,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			before := tc.a.Clone()
			err := tc.a.Merge(tc.b)
			require.Error(t, err)
			var shaderErr *Error
			require.ErrorAs(t, err, &shaderErr)
			require.Equal(t, tc.kind, shaderErr.Kind)
			// Failed merges leave the receiver untouched.
			require.Equal(t, before, tc.a)
		})
	}
}

func TestDescriptorRequirements_Merge(t *testing.T) {
	t.Parallel()
	a := &DescriptorRequirements{
		MemoryRead:     ShaderStages(0).With(StageVertex),
		SamplerCompare: true,
		SamplerWithImages: map[DescriptorIdentifier]struct{}{
			{Set: 0, Binding: 1, Index: 0}: {},
		},
	}
	b := &DescriptorRequirements{
		MemoryWrite:        ShaderStages(0).With(StageFragment),
		StorageImageAtomic: true,
		SamplerWithImages: map[DescriptorIdentifier]struct{}{
			{Set: 0, Binding: 2, Index: 0}: {},
		},
	}

	a.Merge(b)
	require.True(t, a.MemoryRead.Contains(StageVertex))
	require.True(t, a.MemoryWrite.Contains(StageFragment))
	require.True(t, a.SamplerCompare)
	require.True(t, a.StorageImageAtomic)
	require.Len(t, a.SamplerWithImages, 2)
}

func TestMergeBindingRequirements(t *testing.T) {
	t.Parallel()
	vertex := map[BindingKey]*DescriptorBindingRequirements{
		{Set: 0, Binding: 0}: uniformBufferReq(StageVertex),
	}
	fragment := map[BindingKey]*DescriptorBindingRequirements{
		{Set: 0, Binding: 0}: uniformBufferReq(StageFragment),
		{Set: 1, Binding: 3}: {
			DescriptorTypes: []DescriptorType{DescriptorTypeCombinedImageSampler},
			Stages:          ShaderStages(0).With(StageFragment),
		},
	}

	require.NoError(t, MergeBindingRequirements(vertex, fragment))
	require.Len(t, vertex, 2)

	merged := vertex[BindingKey{Set: 0, Binding: 0}]
	require.True(t, merged.Stages.Contains(StageVertex))
	require.True(t, merged.Stages.Contains(StageFragment))

	// Slots copied from the source must not alias it.
	copied := vertex[BindingKey{Set: 1, Binding: 3}]
	copied.Stages = copied.Stages.With(StageVertex)
	require.False(t, fragment[BindingKey{Set: 1, Binding: 3}].Stages.Contains(StageVertex))
}

func TestMergeBindingRequirements_Conflict(t *testing.T) {
	t.Parallel()
	dst := map[BindingKey]*DescriptorBindingRequirements{
		{Set: 0, Binding: 0}: {DescriptorTypes: []DescriptorType{DescriptorTypeUniformBuffer}},
	}
	src := map[BindingKey]*DescriptorBindingRequirements{
		{Set: 0, Binding: 0}: {DescriptorTypes: []DescriptorType{DescriptorTypeStorageImage}},
	}

	err := MergeBindingRequirements(dst, src)
	require.Error(t, err)
	var shaderErr *Error
	require.ErrorAs(t, err, &shaderErr)
	require.Equal(t, ErrDescriptorTypesDisjoint, shaderErr.Kind)
}
