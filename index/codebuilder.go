package index

import (
	"fmt"
	"os"
	"strings"
)

// CodeBuilder is a wrapper around [strings.Builder] that simplifies
// building TypeScript source line by line.
//
// The zero value is safely ready to use.
type CodeBuilder struct {
	b strings.Builder
}

// Linef writes a single line terminated by "\n".
//
// Takes format and args like [fmt.Printf].
func (w *CodeBuilder) Linef(format string, args ...any) {
	fmt.Fprintf(&w.b, format, args...)
	w.b.WriteString("\n")
}

// String returns the current code.
func (w *CodeBuilder) String() string {
	return w.b.String()
}

func (w *CodeBuilder) Reset() {
	w.b.Reset()
}

// SaveToNewFile writes the code to outFile, which must not exist yet.
func (w *CodeBuilder) SaveToNewFile(outFile string) error {
	f, err := os.OpenFile(outFile, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0666)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(w.String()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
