package artifact

import "slices"

// ExportSet is a set of distinct artifact paths,
// sorted lexicographically.
type ExportSet []string

// NewExportSet sorts paths and removes duplicates.
// The paths slice is not modified.
func NewExportSet(paths []string) ExportSet {
	s := slices.Clone(paths)
	slices.Sort(s)
	return ExportSet(slices.Compact(s))
}

func (s ExportSet) Contains(path string) bool {
	_, ok := slices.BinarySearch(s, path)
	return ok
}
