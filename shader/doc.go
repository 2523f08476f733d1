// Package shader turns decoded SPIR-V binaries into the information a
// pipeline needs: entry points, descriptor binding requirements,
// push-constant ranges, stage interfaces, and specialization constants.
//
// # Modules
//
// A ShaderModule is created from a SPIR-V word stream with NewModule, which
// also checks the binary's version, capabilities and extensions against a
// target Environment. Specialize applies constant overrides and returns a
// SpecializedShaderModule carrying the reflected EntryPointInfo of every
// entry point. Modules are immutable once created and safe to share between
// goroutines.
//
// # Requirements
//
// Each entry point's resource usage is expressed as
// DescriptorBindingRequirements keyed by (set, binding). Requirements from
// several stages bound into one pipeline are reconciled with Merge, which
// reports conflicts instead of picking a side. ShaderInterface.Matches
// checks location-by-location type compatibility between adjacent stages.
package shader
