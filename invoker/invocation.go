package invoker

import (
	"maps"
	"slices"
	"strings"
)

const (
	// DefaultProgram is the build tool run when none is configured.
	DefaultProgram = "cargo"

	// TestFilter selects the generated export tests.
	TestFilter = "export_bindings_"

	// Crate whose features are toggled.
	Crate = "ts-rs"

	// ExportDirEnv tells the export run where to write bindings.
	ExportDirEnv = "TS_RS_EXPORT_DIR"
)

// Feature names, without the crate prefix.
const (
	FeatureExport          = "export"
	FeatureNoSerdeWarnings = "no-serde-warnings"
	FeatureImportESM       = "import-esm"
	FeatureFormat          = "format"
)

// Toggles are the optional features of an export run.
type Toggles struct {
	// Disables warnings about serde attributes that can't be processed.
	NoWarnings bool
	// Adds the ".js" extension to generated import paths.
	ESMImports bool
	// Formats the generated TypeScript files.
	Format bool
}

// Features returns the crate features enabled by t,
// in a fixed order.
func (t Toggles) Features() []string {
	var res []string
	if t.NoWarnings {
		res = append(res, FeatureNoSerdeWarnings)
	}
	if t.ESMImports {
		res = append(res, FeatureImportESM)
	}
	if t.Format {
		res = append(res, FeatureFormat)
	}
	return res
}

type Options struct {
	// Program to run. Defaults to [DefaultProgram].
	Program string
	// Absolute path of the output directory.
	OutDir string
	Toggles
	// Additional features. Names without a "crate/" prefix
	// are taken as features of [Crate].
	ExtraFeatures []string
	// Additional arguments placed after the test filter.
	ExtraArgs []string
}

// Invocation is a fully resolved command line and environment
// for one export run.
type Invocation struct {
	Program string
	Args    []string
	// Variables set on top of the inherited environment.
	Env map[string]string
}

// FeatureName qualifies a cargo feature name with its crate.
// Names without a "crate/" prefix are features of [Crate]. The
// feature itself is passed through as is, since cargo feature names
// are case-sensitive and may contain "_" and digits.
func FeatureName(name string) string {
	if strings.Contains(name, "/") {
		return name
	}
	return Crate + "/" + name
}

// NewInvocation builds the command for an export run:
//
//	cargo test export_bindings_ [extra args...] --features ts-rs/export [--features ts-rs/<toggle>...]
func NewInvocation(opts Options) Invocation {
	program := opts.Program
	if program == "" {
		program = DefaultProgram
	}

	args := []string{"test", TestFilter}
	args = append(args, opts.ExtraArgs...)

	features := append([]string{FeatureExport}, opts.Toggles.Features()...)
	features = append(features, opts.ExtraFeatures...)
	var seen []string
	for _, f := range features {
		f = FeatureName(f)
		if slices.Contains(seen, f) {
			continue
		}
		seen = append(seen, f)
		args = append(args, "--features", f)
	}

	return Invocation{
		Program: program,
		Args:    args,
		Env:     map[string]string{ExportDirEnv: opts.OutDir},
	}
}

// Features returns the values of all "--features" arguments.
func (inv Invocation) Features() []string {
	var res []string
	for i := 0; i+1 < len(inv.Args); i++ {
		if inv.Args[i] == "--features" {
			res = append(res, inv.Args[i+1])
			i++
		}
	}
	return res
}

// Environ returns base with the variables of inv.Env set,
// replacing any existing definitions.
func (inv Invocation) Environ(base []string) []string {
	res := slices.DeleteFunc(slices.Clone(base), func(kv string) bool {
		k, _, _ := strings.Cut(kv, "=")
		_, override := inv.Env[k]
		return override
	})
	for _, k := range slices.Sorted(maps.Keys(inv.Env)) {
		res = append(res, k+"="+inv.Env[k])
	}
	return res
}

// String returns the command line, for logging.
func (inv Invocation) String() string {
	return strings.Join(append([]string{inv.Program}, inv.Args...), " ")
}
