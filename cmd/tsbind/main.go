package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/refaktor/tsbind"
	"github.com/refaktor/tsbind/config"
	"github.com/refaktor/tsbind/invoker"
)

const usageHeader = `usage: tsbind [options...]

Runs "cargo test export_bindings_" with ts-rs' export feature enabled and
writes the TypeScript bindings to the output directory.

options:
`

const usageFooter = `
config:
  Defaults for all options can be set in tsbind.toml (or the file given
  with --config). Options given on the command line take precedence.

examples:
  tsbind
  	Export bindings to ./bindings
  tsbind -o web/src/bindings --index --esm-imports
  	Export bindings with ".js" import extensions and write web/src/bindings/index.ts
`

type flags struct {
	outputDirectory string
	noWarnings      bool
	esmImports      bool
	format          bool
	index           bool
	keepGoing       bool
	configPath      string
	quiet           bool
}

func newFlagSet(f *flags) *pflag.FlagSet {
	fs := pflag.NewFlagSet("tsbind", pflag.ContinueOnError)
	fs.StringVarP(&f.outputDirectory, "output-directory", "o", config.DefaultOutputDirectory, "where the TypeScript bindings are written (sets TS_RS_EXPORT_DIR)")
	fs.BoolVar(&f.noWarnings, "no-warnings", false, "disable warnings about serde attributes ts-rs cannot process")
	fs.BoolVar(&f.esmImports, "esm-imports", false, `add the ".js" extension to import paths`)
	fs.BoolVar(&f.format, "format", false, "format the generated TypeScript files")
	fs.BoolVar(&f.index, "index", false, "generate index.ts re-exporting all bindings")
	fs.BoolVar(&f.keepGoing, "keep-going", false, "generate index.ts even if cargo test fails")
	fs.StringVar(&f.configPath, "config", "", "config file (default: "+config.DefaultFileName+" if present)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only print warnings and errors")
	fs.BoolP("help", "h", false, "show help")
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, usageHeader)
		fs.PrintDefaults()
		fmt.Fprint(os.Stderr, usageFooter)
	}
	return fs
}

// resolveOptions combines flags and config. A flag given on the
// command line wins over the config, which wins over the flag default.
func resolveOptions(fs *pflag.FlagSet, f *flags, cfg *config.Config) tsbind.Options {
	str := func(name, flagVal, cfgVal string) string {
		if fs.Changed(name) || cfgVal == "" {
			return flagVal
		}
		return cfgVal
	}
	boolean := func(name string, flagVal bool, cfgVal *bool) bool {
		if fs.Changed(name) || cfgVal == nil {
			return flagVal
		}
		return *cfgVal
	}

	return tsbind.Options{
		OutputDirectory: str("output-directory", f.outputDirectory, cfg.OutputDirectory),
		Toggles: invoker.Toggles{
			NoWarnings: boolean("no-warnings", f.noWarnings, cfg.NoWarnings),
			ESMImports: boolean("esm-imports", f.esmImports, cfg.ESMImports),
			Format:     boolean("format", f.format, cfg.Format),
		},
		Index:         boolean("index", f.index, cfg.Index),
		KeepGoing:     boolean("keep-going", f.keepGoing, cfg.KeepGoing),
		Program:       cfg.Cargo,
		CargoArgs:     cfg.CargoArgs,
		ExtraFeatures: cfg.ExtraFeatures,
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadDefault(".")
}

func run(args []string) error {
	var f flags
	fs := newFlagSet(&f)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if help, _ := fs.GetBool("help"); help {
		fs.Usage()
		return nil
	}
	if fs.NArg() != 0 {
		return fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	cfg, err := loadConfig(f.configPath)
	if err != nil {
		return err
	}

	log := &tsbind.Logger{Writer: os.Stderr, Prefix: "tsbind"}
	if f.quiet {
		log.MinLevel = tsbind.WARN
	}

	res, err := tsbind.Run(context.Background(), resolveOptions(fs, &f, cfg), &invoker.ExecInvoker{}, log)
	if err != nil {
		return err
	}
	if !f.quiet {
		fmt.Println()
		res.WriteSummary(os.Stdout)
	}
	return nil
}

// exitCode maps a failed run to the process exit status.
// A run aborted by a failing cargo test passes on cargo's status.
func exitCode(err error) int {
	var exitErr *invoker.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}

// reportError logs err, using the multi-line form of config errors.
func reportError(log *tsbind.Logger, err error) {
	var cfgErr *config.Error
	if errors.As(err, &cfgErr) {
		log.Errorf("%v", cfgErr.String())
	} else {
		log.Errorf("%v", err)
	}
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		reportError(&tsbind.Logger{Writer: os.Stderr, Prefix: "tsbind"}, err)
		os.Exit(exitCode(err))
	}
}
