package artifact

import "fmt"

// IOError is returned for any failed filesystem operation on the
// metadata log or the index file.
type IOError struct {
	// Op is a short description of the operation, e.g. "remove".
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// EncodingError is returned when the metadata log
// is not valid UTF-8 text.
type EncodingError struct {
	Path string
	// 1-based line number of the first invalid line.
	Line int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%v: line %v: artifact path is not valid UTF-8", e.Path, e.Line)
}
