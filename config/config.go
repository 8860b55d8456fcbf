package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"dario.cat/mergo"
	"github.com/pelletier/go-toml/v2"
)

// DefaultFileName is loaded from the working directory
// if no config file is given explicitly.
const DefaultFileName = "tsbind.toml"

// DefaultOutputDirectory is used if neither the config nor
// the command line sets an output directory.
const DefaultOutputDirectory = "./bindings"

// Config holds defaults for the command line options.
// Pointer fields distinguish "unset" from false, so imported
// files only fill in what the importing file leaves open.
type Config struct {
	// Further config files, relative to this file.
	// Their values apply where this file sets none.
	Imports []string `toml:"imports"`

	// Relative to the file that sets it, like imports.
	OutputDirectory string `toml:"output-directory"`
	NoWarnings      *bool  `toml:"no-warnings"`
	ESMImports      *bool  `toml:"esm-imports"`
	Format          *bool  `toml:"format"`
	Index           *bool  `toml:"index"`
	KeepGoing       *bool  `toml:"keep-going"`

	// Build tool executable (default "cargo").
	Cargo string `toml:"cargo"`
	// Extra arguments to "cargo test", e.g. ["-p", "mycrate"].
	CargoArgs []string `toml:"cargo-args"`
	// Extra features; plain names are ts-rs features.
	ExtraFeatures []string `toml:"extra-features"`
}

type Error struct {
	filePath string
	err      error  // short, single-line error
	str      string // full, multi-line error string, or err string, if none
}

// Error returns a short error message.
func (e *Error) Error() string {
	return e.filePath + ": " + e.err.Error()
}

// String returns the full multi-line error string.
func (e *Error) String() string {
	if e.str != "" {
		return "Error in file " + strconv.Quote(e.filePath) + ":\n" + e.str
	} else {
		return e.Error()
	}
}

func (e *Error) Unwrap() error {
	return e.err
}

type ImportCycleError struct {
	Path  string
	Stack []string
}

func (err *ImportCycleError) Error() string {
	var msg strings.Builder
	msg.WriteString("import cycle detected: ")
	for _, item := range err.Stack {
		msg.WriteString(item)
		msg.WriteString(" imports ")
	}
	msg.WriteString(err.Path)
	return msg.String()
}

// Load reads the config file at path, including its imports.
func Load(path string) (*Config, error) {
	return load(path, nil)
}

// LoadDefault loads [DefaultFileName] from dir if it exists.
// Otherwise it returns an empty config.
func LoadDefault(dir string) (*Config, error) {
	path := filepath.Join(dir, DefaultFileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	return Load(path)
}

func load(path string, stack []string) (_ *Config, err error) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if idx := slices.Index(stack, path); idx != -1 {
		return nil, &ImportCycleError{Path: path, Stack: slices.Clone(stack[idx:])}
	}
	stack = append(stack, path)

	defer func() {
		if err != nil {
			var cycleErr *ImportCycleError
			var cfgErr *Error
			if errors.As(err, &cycleErr) || errors.As(err, &cfgErr) {
				// already annotated by the import that failed
			} else if tErr := (&toml.DecodeError{}); errors.As(err, &tErr) {
				err = &Error{filePath: path, err: err, str: tErr.String()}
			} else if tErr := (&toml.StrictMissingError{}); errors.As(err, &tErr) {
				err = &Error{filePath: path, err: err, str: tErr.String()}
			} else {
				err = &Error{filePath: path, err: err}
			}
		}
	}()

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := &Config{}
	err = toml.NewDecoder(bytes.NewReader(file)).
		DisallowUnknownFields().
		Decode(c)
	if err != nil {
		return nil, err
	}
	if c.OutputDirectory != "" && !filepath.IsAbs(c.OutputDirectory) {
		c.OutputDirectory = filepath.Join(filepath.Dir(path), c.OutputDirectory)
	}

	var importedCs []*Config // collect imported files first so their imports don't leak into our file's imports
	for _, imp := range c.Imports {
		if !filepath.IsAbs(imp) {
			imp = filepath.Join(filepath.Dir(path), imp)
		}
		newC, err := load(imp, stack)
		if err != nil {
			return nil, err
		}
		importedCs = append(importedCs, newC)
	}
	for _, newC := range importedCs {
		newC.Imports = nil
		if err := mergo.Merge(c, newC, mergo.WithAppendSlice, mergo.WithoutDereference); err != nil {
			return nil, err
		}
	}

	return c, nil
}
