package tsbind

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/refaktor/tsbind/artifact"
	"github.com/refaktor/tsbind/index"
	"github.com/refaktor/tsbind/invoker"
)

type Options struct {
	// Where bindings, the metadata log and index.ts are written.
	// Relative paths are resolved against the working directory.
	OutputDirectory string
	invoker.Toggles
	// Generate index.ts re-exporting all bindings.
	Index bool
	// Continue with index generation if the export run fails.
	KeepGoing bool

	// Passed through to [invoker.Options].
	Program       string
	CargoArgs     []string
	ExtraFeatures []string
}

type Timing struct {
	Step     string
	Duration time.Duration
}

type Result struct {
	// Absolute output directory.
	OutputDirectory string
	Invocation      invoker.Invocation
	// Path of the generated index, empty if none was requested.
	IndexFile string
	// Distinct bindings listed in index.ts.
	Exported int
	Timings  []Timing
}

// Run resets the metadata log, runs the export, optionally writes
// index.ts and removes the metadata log again.
//
// The metadata log is removed on every return path once the
// reset succeeded. If both a step and the removal fail, the
// returned error is a [*multierror.Error] holding both.
func Run(ctx context.Context, opts Options, inv invoker.Invoker, log *Logger) (res *Result, err error) {
	outDir, err := filepath.Abs(opts.OutputDirectory)
	if err != nil {
		return nil, fmt.Errorf("resolve output directory: %w", err)
	}
	res = &Result{OutputDirectory: outDir}

	timeStart := time.Now()
	step := func(name string) {
		res.Timings = append(res.Timings, Timing{Step: name, Duration: time.Since(timeStart)})
		timeStart = time.Now()
	}

	metaLog := artifact.NewMetaLog(outDir)
	if err := metaLog.Reset(); err != nil {
		return nil, err
	}
	step("Reset metadata log")

	defer func() {
		timeStart = time.Now()
		if rmErr := metaLog.Remove(); rmErr != nil {
			if err != nil {
				err = multierror.Append(err, rmErr)
			} else {
				err = rmErr
			}
		}
		if err != nil {
			res = nil
			return
		}
		step("Remove metadata log")
	}()

	res.Invocation = invoker.NewInvocation(invoker.Options{
		Program:       opts.Program,
		OutDir:        outDir,
		Toggles:       opts.Toggles,
		ExtraFeatures: opts.ExtraFeatures,
		ExtraArgs:     opts.CargoArgs,
	})
	log.Infof("running %v", res.Invocation)
	if err := inv.Invoke(ctx, res.Invocation); err != nil {
		var exitErr *invoker.ExitError
		if !opts.KeepGoing || !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("export run: %w", err)
		}
		log.Warnf("%v, continuing anyway", exitErr)
	}
	step("Export run")

	if !opts.Index {
		return res, nil
	}

	set, err := metaLog.Read()
	if errors.Is(err, fs.ErrNotExist) {
		log.Warnf("no bindings were exported (%v not found)", metaLog.Path)
		set, err = nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read exported bindings: %w", err)
	}

	if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
		return nil, &artifact.IOError{Op: "create output directory", Path: outDir, Err: err}
	}
	res.IndexFile = index.Path(outDir)
	if err := index.Generate(res.IndexFile, set); err != nil {
		return nil, fmt.Errorf("generate index: %w", err)
	}
	res.Exported = len(set)
	log.Infof("wrote %v exports to %v", res.Exported, res.IndexFile)
	step("Generate index")

	return res, nil
}
