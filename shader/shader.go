package shader

import (
	"fmt"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gogpu/spv/spirv"
)

// specializationCacheSize bounds the per-module cache of specialized
// variants. Pipelines typically specialize a module with a handful of
// distinct constant sets.
const specializationCacheSize = 16

// ShaderModule is a decoded shader binary plus the specialization constants
// discovered in it. It is immutable after creation and safe for concurrent
// use; specialization produces new modules rather than mutating this one.
type ShaderModule struct {
	module    *spirv.Module
	constants map[uint32]SpecializationConstant
	cache     *lru.Cache[string, *SpecializedShaderModule]
}

// NewModule decodes a SPIR-V word stream and validates its version,
// capabilities and extensions against the target environment. A nil
// environment accepts everything.
func NewModule(words []uint32, env *Environment) (*ShaderModule, error) {
	m, err := spirv.Decode(words)
	if err != nil {
		return nil, fmt.Errorf("decoding shader binary: %w", err)
	}
	if err := env.Validate(m); err != nil {
		return nil, err
	}
	return newShaderModule(m), nil
}

// NewModuleFromBytes decodes a SPIR-V byte buffer. The buffer must be a
// multiple of 4 bytes; words are read little-endian.
func NewModuleFromBytes(data []byte, env *Environment) (*ShaderModule, error) {
	words, err := spirv.BytesToWords(data)
	if err != nil {
		return nil, fmt.Errorf("converting shader binary: %w", err)
	}
	return NewModule(words, env)
}

// NewModuleUnchecked creates a module without validating the binary's
// structure or environment requirements. The caller must have validated the
// binary through an external mechanism; passing an invalid binary is
// undefined behavior.
func NewModuleUnchecked(words []uint32) *ShaderModule {
	return newShaderModule(spirv.DecodeUnchecked(words))
}

func newShaderModule(m *spirv.Module) *ShaderModule {
	cache, _ := lru.New[string, *SpecializedShaderModule](specializationCacheSize)
	return &ShaderModule{
		module:    m,
		constants: SpecializationConstants(m),
		cache:     cache,
	}
}

// Module returns the decoded instruction graph.
func (sm *ShaderModule) Module() *spirv.Module {
	return sm.module
}

// SpecializationConstants returns the default value of every specialization
// constant, keyed by constant_id.
func (sm *ShaderModule) SpecializationConstants() map[uint32]SpecializationConstant {
	out := make(map[uint32]SpecializationConstant, len(sm.constants))
	for id, c := range sm.constants {
		out[id] = c
	}
	return out
}

// Specialize produces a variant of the module with the given constant
// overrides applied.
//
// Validation precedes any rewriting: every override for a constant_id that
// exists in the module must have the exact declared type of that constant,
// or the whole operation fails with no effect. Overrides for constant_ids
// the module does not declare are ignored. When no override is effective the
// result shares the base instruction graph instead of cloning it.
//
// Results are cached per override set, so repeated specialization with the
// same values returns the same *SpecializedShaderModule.
func (sm *ShaderModule) Specialize(info map[uint32]SpecializationConstant) (*SpecializedShaderModule, error) {
	effective := make(map[uint32]SpecializationConstant)
	for id, value := range info {
		declared, ok := sm.constants[id]
		if !ok {
			continue
		}
		if !declared.SameType(value) {
			return nil, NewError(ErrSpecializationType,
				fmt.Sprintf("constant_id %d is declared %s, override is %s",
					id, declared.Kind(), value.Kind()))
		}
		effective[id] = value
	}

	key := specializationKey(effective)
	if cached, ok := sm.cache.Get(key); ok {
		return cached, nil
	}

	var derived *spirv.Module
	if len(effective) > 0 {
		values := make(map[uint32][]byte, len(effective))
		for id, value := range effective {
			values[id] = value.Bytes()
		}
		derived = sm.module.Specialize(values)
	}

	target := derived
	if target == nil {
		target = sm.module
	}
	specialized := &SpecializedShaderModule{
		base:        sm,
		info:        effective,
		module:      derived,
		entryPoints: EntryPoints(target),
	}
	sm.cache.Add(key, specialized)
	return specialized, nil
}

// specializationKey builds a canonical fingerprint of an override set,
// independent of map iteration order.
func specializationKey(info map[uint32]SpecializationConstant) string {
	ids := make([]uint32, 0, len(info))
	for id := range info {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var sb strings.Builder
	for _, id := range ids {
		c := info[id]
		fmt.Fprintf(&sb, "%d=%d:%x;", id, c.Kind(), c.Uint())
	}
	return sb.String()
}

// SpecializedShaderModule is a shader module with its specialization
// constants resolved, plus the reflected info of its entry points. It is
// immutable and safe for concurrent use.
type SpecializedShaderModule struct {
	base *ShaderModule
	info map[uint32]SpecializationConstant

	// module is the rewritten graph, or nil when no constant needed
	// rewriting and the base graph is shared.
	module *spirv.Module

	entryPoints []EntryPointInfo
}

// Base returns the module this variant was specialized from.
func (s *SpecializedShaderModule) Base() *ShaderModule {
	return s.base
}

// Info returns the overrides that were applied.
func (s *SpecializedShaderModule) Info() map[uint32]SpecializationConstant {
	out := make(map[uint32]SpecializationConstant, len(s.info))
	for id, c := range s.info {
		out[id] = c
	}
	return out
}

// Module returns the specialized instruction graph, which is the base graph
// when no rewriting was needed.
func (s *SpecializedShaderModule) Module() *spirv.Module {
	if s.module != nil {
		return s.module
	}
	return s.base.module
}

// EntryPoints returns the reflected info of every entry point, in
// declaration order.
func (s *SpecializedShaderModule) EntryPoints() []EntryPointInfo {
	return s.entryPoints
}

// EntryPoint returns the entry point with the given name, if exactly one
// exists. Several entry points sharing a name (under different execution
// models) yield no match; disambiguate with EntryPointWithExecution.
func (s *SpecializedShaderModule) EntryPoint(name string) (EntryPoint, bool) {
	return s.matchOne(func(info *EntryPointInfo) bool {
		return info.Name == name
	})
}

// EntryPointWithExecution returns the entry point with the given name and
// execution model, if exactly one exists.
func (s *SpecializedShaderModule) EntryPointWithExecution(name string, model spirv.ExecutionModel) (EntryPoint, bool) {
	return s.matchOne(func(info *EntryPointInfo) bool {
		return info.Name == name && info.ExecutionModel == model
	})
}

// SingleEntryPoint returns the module's entry point, if it has exactly one.
func (s *SpecializedShaderModule) SingleEntryPoint() (EntryPoint, bool) {
	return s.matchOne(func(*EntryPointInfo) bool { return true })
}

// SingleEntryPointWithExecution returns the module's only entry point with
// the given execution model, if exactly one exists.
func (s *SpecializedShaderModule) SingleEntryPointWithExecution(model spirv.ExecutionModel) (EntryPoint, bool) {
	return s.matchOne(func(info *EntryPointInfo) bool {
		return info.ExecutionModel == model
	})
}

func (s *SpecializedShaderModule) matchOne(pred func(*EntryPointInfo) bool) (EntryPoint, bool) {
	found := -1
	for i := range s.entryPoints {
		if pred(&s.entryPoints[i]) {
			if found >= 0 {
				// Ambiguous; by policy this is "not found", not an error.
				return EntryPoint{}, false
			}
			found = i
		}
	}
	if found < 0 {
		return EntryPoint{}, false
	}
	return EntryPoint{module: s, index: found}, true
}

// EntryPoint identifies one executable entry of a specialized module. It
// keeps the module alive and exposes a read-only view of its reflected info.
type EntryPoint struct {
	module *SpecializedShaderModule
	index  int
}

// Module returns the specialized module the entry point belongs to.
func (e EntryPoint) Module() *SpecializedShaderModule {
	return e.module
}

// Info returns the reflected info of the entry point.
func (e EntryPoint) Info() *EntryPointInfo {
	return &e.module.entryPoints[e.index]
}

// Name returns the entry point's name.
func (e EntryPoint) Name() string {
	return e.Info().Name
}

// Stage returns the pipeline stage the entry point executes in.
func (e EntryPoint) Stage() ShaderStage {
	return e.Info().Stage
}
