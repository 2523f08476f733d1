package shader

import (
	"strings"

	"github.com/gogpu/spv/spirv"
)

// ShaderStage is a single pipeline stage. The bit values follow the Vulkan
// stage flag layout so a ShaderStages set can be handed to a consumer as-is.
type ShaderStage uint32

const (
	StageVertex                 ShaderStage = 0x00000001
	StageTessellationControl    ShaderStage = 0x00000002
	StageTessellationEvaluation ShaderStage = 0x00000004
	StageGeometry               ShaderStage = 0x00000008
	StageFragment               ShaderStage = 0x00000010
	StageCompute                ShaderStage = 0x00000020
	StageRayGeneration          ShaderStage = 0x00000100
	StageAnyHit                 ShaderStage = 0x00000200
	StageClosestHit             ShaderStage = 0x00000400
	StageMiss                   ShaderStage = 0x00000800
	StageIntersection           ShaderStage = 0x00001000
	StageCallable               ShaderStage = 0x00002000
	StageTask                   ShaderStage = 0x00080000
	StageMesh                   ShaderStage = 0x00100000
)

var stageNames = map[ShaderStage]string{
	StageVertex: "Vertex", StageTessellationControl: "TessellationControl",
	StageTessellationEvaluation: "TessellationEvaluation",
	StageGeometry:               "Geometry", StageFragment: "Fragment",
	StageCompute: "Compute", StageRayGeneration: "RayGeneration",
	StageAnyHit: "AnyHit", StageClosestHit: "ClosestHit",
	StageMiss: "Miss", StageIntersection: "Intersection",
	StageCallable: "Callable", StageTask: "Task", StageMesh: "Mesh",
}

func (s ShaderStage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "Unknown"
}

// StageFromExecutionModel maps a SPIR-V execution model to its pipeline
// stage. The result is 0 for models with no pipeline stage.
func StageFromExecutionModel(model spirv.ExecutionModel) ShaderStage {
	switch model {
	case spirv.ExecutionModelVertex:
		return StageVertex
	case spirv.ExecutionModelTessellationControl:
		return StageTessellationControl
	case spirv.ExecutionModelTessellationEvaluation:
		return StageTessellationEvaluation
	case spirv.ExecutionModelGeometry:
		return StageGeometry
	case spirv.ExecutionModelFragment:
		return StageFragment
	case spirv.ExecutionModelGLCompute, spirv.ExecutionModelKernel:
		return StageCompute
	case spirv.ExecutionModelRayGenerationKHR:
		return StageRayGeneration
	case spirv.ExecutionModelAnyHitKHR:
		return StageAnyHit
	case spirv.ExecutionModelClosestHitKHR:
		return StageClosestHit
	case spirv.ExecutionModelMissKHR:
		return StageMiss
	case spirv.ExecutionModelIntersectionKHR:
		return StageIntersection
	case spirv.ExecutionModelCallableKHR:
		return StageCallable
	case spirv.ExecutionModelTaskNV, spirv.ExecutionModelTaskEXT:
		return StageTask
	case spirv.ExecutionModelMeshNV, spirv.ExecutionModelMeshEXT:
		return StageMesh
	}
	return 0
}

// ShaderStages is a set of pipeline stages.
type ShaderStages uint32

// Union returns the stages present in either set.
func (s ShaderStages) Union(other ShaderStages) ShaderStages {
	return s | other
}

// Intersect returns the stages present in both sets.
func (s ShaderStages) Intersect(other ShaderStages) ShaderStages {
	return s & other
}

// Contains reports whether the set includes the given stage.
func (s ShaderStages) Contains(stage ShaderStage) bool {
	return s&ShaderStages(stage) != 0
}

// Empty reports whether the set contains no stages.
func (s ShaderStages) Empty() bool {
	return s == 0
}

// With returns the set extended with the given stage.
func (s ShaderStages) With(stage ShaderStage) ShaderStages {
	return s | ShaderStages(stage)
}

func (s ShaderStages) String() string {
	if s == 0 {
		return "none"
	}
	ordered := []ShaderStage{
		StageVertex, StageTessellationControl, StageTessellationEvaluation,
		StageGeometry, StageFragment, StageCompute,
		StageRayGeneration, StageAnyHit, StageClosestHit, StageMiss,
		StageIntersection, StageCallable, StageTask, StageMesh,
	}
	var parts []string
	for _, stage := range ordered {
		if s.Contains(stage) {
			parts = append(parts, stage.String())
		}
	}
	return strings.Join(parts, "|")
}
