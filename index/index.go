// Package index generates the index.ts barrel file that
// re-exports every binding produced by an export run.
package index

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/refaktor/tsbind/artifact"
)

// FileName is the name of the generated index file
// inside the output directory.
const FileName = "index.ts"

// Path returns the index file path for outDir.
func Path(outDir string) string {
	return filepath.Join(outDir, FileName)
}

// Quote returns path as a double-quoted TypeScript string literal.
// Backslashes, quotes, control characters and the U+2028/U+2029 line
// terminators are escaped. Invalid UTF-8 is replaced by U+FFFD.
func Quote(path string) string {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(path); err != nil {
		// encoding a string can't fail
		panic(err)
	}
	return string(bytes.TrimSuffix(b.Bytes(), []byte{'\n'}))
}

// Build appends one re-export statement per member of set to cb.
func Build(cb *CodeBuilder, set artifact.ExportSet) {
	for _, path := range set {
		cb.Linef("export * from %v;", Quote(path))
	}
}

// Generate writes a fresh index file to outFile. Any existing
// file at outFile is deleted first, so the result only reflects set.
// An empty set produces an empty file.
func Generate(outFile string, set artifact.ExportSet) error {
	if err := os.Remove(outFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &artifact.IOError{Op: "remove old index", Path: outFile, Err: err}
	}

	var cb CodeBuilder
	Build(&cb, set)
	if err := cb.SaveToNewFile(outFile); err != nil {
		return &artifact.IOError{Op: "write index", Path: outFile, Err: err}
	}
	return nil
}
