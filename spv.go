// Package spv provides SPIR-V shader-module reflection and specialization.
//
// spv decodes binary SPIR-V modules and extracts the information a graphics
// or compute pipeline needs before it can use a shader:
//   - Entry points — names, stages, and the resources each one reaches
//   - Descriptor binding requirements — keyed by (set, binding), mergeable
//     across the stages of a pipeline
//   - Push-constant ranges and input/output interfaces
//   - Specialization constants — defaults plus type-checked overriding
//
// The package provides a simple, high-level API as well as lower-level
// access to the decoder and reflector.
//
// Example usage:
//
//	module, err := spv.Reflect(binary, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	variant, err := module.Specialize(map[uint32]shader.SpecializationConstant{
//	    0: shader.U32Value(64),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ep, ok := variant.EntryPoint("main")
//
// For direct access to the instruction stream, use the spirv package:
//
//	words, _ := spirv.BytesToWords(binary)
//	m, err := spirv.Decode(words)
//
// The shader package holds the semantic types: requirements, interfaces,
// stages, and the merge and match operations over them.
package spv

import (
	"fmt"

	"github.com/gogpu/spv/shader"
	"github.com/gogpu/spv/spirv"
)

// Reflect decodes a SPIR-V binary and prepares it for reflection and
// specialization. The byte buffer must be a multiple of 4 bytes, words
// little-endian. A non-nil environment rejects binaries whose version,
// capabilities or extensions the target does not support.
func Reflect(binary []byte, env *shader.Environment) (*shader.ShaderModule, error) {
	module, err := shader.NewModuleFromBytes(binary, env)
	if err != nil {
		return nil, fmt.Errorf("reflecting shader module: %w", err)
	}
	return module, nil
}

// ReflectWords is Reflect for callers that already hold a word stream.
func ReflectWords(words []uint32, env *shader.Environment) (*shader.ShaderModule, error) {
	module, err := shader.NewModule(words, env)
	if err != nil {
		return nil, fmt.Errorf("reflecting shader module: %w", err)
	}
	return module, nil
}

// Decode parses a SPIR-V binary into its instruction stream without any
// semantic analysis.
func Decode(binary []byte) (*spirv.Module, error) {
	words, err := spirv.BytesToWords(binary)
	if err != nil {
		return nil, fmt.Errorf("converting shader binary: %w", err)
	}
	module, err := spirv.Decode(words)
	if err != nil {
		return nil, fmt.Errorf("decoding shader binary: %w", err)
	}
	return module, nil
}
