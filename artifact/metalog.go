package artifact

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"unicode/utf8"

	"github.com/refaktor/tsbind/textutils"
)

// MetaLogName is the file name of the metadata log inside the
// output directory. The cargo test run appends one line per
// exported binding to it.
const MetaLogName = "ts_rs.meta"

// MetaLog is the append-only log of artifact paths written
// by the export run.
type MetaLog struct {
	Path string
}

// NewMetaLog returns the metadata log located in outDir.
func NewMetaLog(outDir string) *MetaLog {
	return &MetaLog{Path: filepath.Join(outDir, MetaLogName)}
}

// Reset removes a metadata log left behind by an earlier run.
// It is a no-op if no log exists.
func (l *MetaLog) Reset() error {
	return l.remove("remove stale metadata log")
}

// Remove deletes the metadata log. A log that doesn't exist
// (because nothing was exported) is not an error.
func (l *MetaLog) Remove() error {
	return l.remove("remove metadata log")
}

func (l *MetaLog) remove(op string) error {
	if err := os.Remove(l.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &IOError{Op: op, Path: l.Path, Err: err}
	}
	return nil
}

// Read reads the whole log and returns the deduplicated set of
// artifact paths in it. Empty lines are skipped.
//
// If the log doesn't exist, the returned error is an [*IOError]
// wrapping [fs.ErrNotExist].
func (l *MetaLog) Read() (ExportSet, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, &IOError{Op: "read metadata log", Path: l.Path, Err: err}
	}
	lines := textutils.Lines(string(data))
	for i, ln := range lines {
		if !utf8.ValidString(ln) {
			return nil, &EncodingError{Path: l.Path, Line: i + 1}
		}
	}
	lines = slices.DeleteFunc(lines, func(s string) bool { return s == "" })
	return NewExportSet(lines), nil
}
