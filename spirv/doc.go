// Package spirv provides decoding, encoding and introspection of SPIR-V
// binary modules.
//
// SPIR-V is the standard intermediate language for GPU shaders,
// used by Vulkan, OpenCL, and other APIs.
//
// # Decoding
//
// Decode parses a stream of 32-bit words into a Module: an ordered list of
// instructions plus side tables for fast lookup by result ID, debug name,
// decoration, capability and extension:
//
//	words, err := spirv.BytesToWords(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	module, err := spirv.Decode(words)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Decoding is purely structural. Unknown opcodes are retained as opaque
// instructions so that callers can introspect what they understand without
// rejecting the rest of the stream.
//
// # Specialization
//
// Module.Specialize produces a copy of the module with the literal operands
// of OpSpecConstant instructions replaced by caller-provided byte values,
// keyed by the SpecId decoration. The receiver is never mutated.
//
// # Encoding
//
// The package also provides a low-level binary writer for constructing
// SPIR-V modules programmatically using ModuleBuilder:
//
//	builder := spirv.NewModuleBuilder(spirv.Version1_3)
//	builder.AddCapability(spirv.CapabilityShader)
//	builder.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)
//
//	// Add types
//	floatType := builder.AddTypeFloat(32)
//	vec4Type := builder.AddTypeVector(floatType, 4)
//
//	// Build binary
//	binary := builder.Build()
//
// # SPIR-V Structure
//
// SPIR-V modules consist of:
//   - Header (magic, version, generator, bound, schema)
//   - Capabilities (required features)
//   - Extensions (optional extensions)
//   - Extended instruction imports (GLSL.std.450, etc.)
//   - Memory model (addressing and memory model)
//   - Entry points (shader entry functions)
//   - Execution modes (shader configuration)
//   - Debug information (names, source info)
//   - Annotations (decorations)
//   - Types and constants
//   - Global variables
//   - Functions (code)
//
// # References
//
// SPIR-V Specification: https://registry.khronos.org/SPIR-V/specs/unified1/SPIRV.html
package spirv
