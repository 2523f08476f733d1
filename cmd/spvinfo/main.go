// Command spvinfo prints the reflection summary of a SPIR-V module.
//
// Usage:
//
//	spvinfo [options] <file.spv>
//
// Examples:
//
//	spvinfo shader.spv              # Header, entry points, bindings
//	spvinfo -entry main shader.spv  # Limit output to one entry point
//	spvinfo -v shader.spv           # Structured diagnostics on stderr
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"

	"github.com/gogpu/spv"
	"github.com/gogpu/spv/shader"
)

var (
	entryName = flag.String("entry", "", "print only the named entry point")
	verbose   = flag.Bool("v", false, "structured diagnostics on stderr")
	version   = flag.Bool("version", false, "print version")
)

const spvinfoVersion = "0.1.0-dev"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Printf("spvinfo version %s\n", spvinfoVersion)
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		usage()
		os.Exit(1)
	}
	inputPath := args[0]

	logger := zap.NewNop()
	if *verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	defer logger.Sync()

	binary, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("read input", zap.String("path", inputPath), zap.Int("bytes", len(binary)))

	module, err := spv.Reflect(binary, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	raw := module.Module()
	logger.Info("decoded module",
		zap.Uint32("bound", raw.Bound),
		zap.Int("instructions", len(raw.Instructions)),
		zap.Int("entry_points", len(raw.EntryPoints())))

	fmt.Printf("; SPIR-V\n")
	fmt.Printf("; Version: %d.%d\n", raw.Version.Major, raw.Version.Minor)
	fmt.Printf("; Generator: 0x%08X\n", raw.Generator)
	fmt.Printf("; Bound: %d\n", raw.Bound)

	capabilities := raw.Capabilities()
	if len(capabilities) > 0 {
		fmt.Printf("; Capabilities:")
		for _, c := range capabilities {
			fmt.Printf(" %s", c)
		}
		fmt.Println()
	}
	fmt.Println()

	printSpecConstants(module.SpecializationConstants())

	variant, err := module.Specialize(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	entryPoints := variant.EntryPoints()
	found := false
	for i := range entryPoints {
		info := &entryPoints[i]
		if *entryName != "" && info.Name != *entryName {
			continue
		}
		found = true
		printEntryPoint(info)
	}
	if *entryName != "" && !found {
		fmt.Fprintf(os.Stderr, "Error: entry point %q not found\n", *entryName)
		os.Exit(1)
	}
}

func printSpecConstants(constants map[uint32]shader.SpecializationConstant) {
	if len(constants) == 0 {
		return
	}
	ids := make([]uint32, 0, len(constants))
	for id := range constants {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	fmt.Println("Specialization constants:")
	for _, id := range ids {
		c := constants[id]
		fmt.Printf("  constant_id=%d  %s = %s\n", id, c.Kind(), c)
	}
	fmt.Println()
}

func printEntryPoint(info *shader.EntryPointInfo) {
	fmt.Printf("Entry point %q (%s, stage %s)\n", info.Name, info.ExecutionModel, info.Stage)

	keys := make([]shader.BindingKey, 0, len(info.DescriptorBindingRequirements))
	for key := range info.DescriptorBindingRequirements {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Set != keys[j].Set {
			return keys[i].Set < keys[j].Set
		}
		return keys[i].Binding < keys[j].Binding
	})
	for _, key := range keys {
		printBinding(key, info.DescriptorBindingRequirements[key])
	}

	if pc := info.PushConstantRange; pc != nil {
		fmt.Printf("  push constants: offset=%d size=%d\n", pc.Offset, pc.Size)
	}

	printInterface("inputs", info.InputInterface)
	printInterface("outputs", info.OutputInterface)
	fmt.Println()
}

func printBinding(key shader.BindingKey, req *shader.DescriptorBindingRequirements) {
	fmt.Printf("  %s:", key)
	for _, ty := range req.DescriptorTypes {
		fmt.Printf(" %s", ty)
	}
	if req.DescriptorCount != nil {
		fmt.Printf(" count=%d", *req.DescriptorCount)
	} else {
		fmt.Printf(" count=runtime")
	}
	if req.ImageFormat != nil {
		fmt.Printf(" format=%d", *req.ImageFormat)
	}
	if req.ImageScalarType != nil {
		fmt.Printf(" scalar=%s", *req.ImageScalarType)
	}
	if req.ImageViewType != nil {
		fmt.Printf(" view=%s", *req.ImageViewType)
	}
	if req.ImageMultisampled {
		fmt.Printf(" multisampled")
	}
	fmt.Println()

	indices := make([]shader.DescriptorIndex, 0, len(req.Descriptors))
	for index := range req.Descriptors {
		indices = append(indices, index)
	}
	sort.Slice(indices, func(i, j int) bool {
		if indices[i].Dynamic != indices[j].Dynamic {
			return !indices[i].Dynamic
		}
		return indices[i].Index < indices[j].Index
	})
	for _, index := range indices {
		printDescriptor(index, req.Descriptors[index])
	}
}

func printDescriptor(index shader.DescriptorIndex, req *shader.DescriptorRequirements) {
	label := fmt.Sprintf("[%d]", index.Index)
	if index.Dynamic {
		label = "[dynamic]"
	}
	fmt.Printf("    %s", label)
	if !req.MemoryRead.Empty() {
		fmt.Printf(" read=%s", req.MemoryRead)
	}
	if !req.MemoryWrite.Empty() {
		fmt.Printf(" write=%s", req.MemoryWrite)
	}
	if req.SamplerCompare {
		fmt.Printf(" compare")
	}
	if req.SamplerNoUnnormalizedCoordinates {
		fmt.Printf(" no-unnorm")
	}
	if req.SamplerNoYCbCrConversion {
		fmt.Printf(" no-ycbcr")
	}
	if req.StorageImageAtomic {
		fmt.Printf(" atomic")
	}
	fmt.Println()
}

func printInterface(label string, iface shader.ShaderInterface) {
	entries := iface.Entries()
	if len(entries) == 0 {
		return
	}
	fmt.Printf("  %s:\n", label)
	for _, e := range entries {
		name := e.Name
		if name == "" {
			name = "<unnamed>"
		}
		fmt.Printf("    location=%d %s %s\n", e.Location, e.Type, name)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: spvinfo [options] <file.spv>")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Options:")
	flag.PrintDefaults()
}
