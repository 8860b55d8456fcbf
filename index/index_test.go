package index_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/refaktor/tsbind/artifact"
	"github.com/refaktor/tsbind/index"
	"github.com/stretchr/testify/require"
)

func TestQuote(t *testing.T) {
	require := require.New(t)

	require.Equal(`"a.ts"`, index.Quote("a.ts"))
	require.Equal(`"dir\\a.ts"`, index.Quote(`dir\a.ts`))
	require.Equal(`"\"q\".ts"`, index.Quote(`"q".ts`))
	require.Equal(`"a\tb\n.ts"`, index.Quote("a\tb\n.ts"))
	require.Equal(`"<&>.ts"`, index.Quote("<&>.ts"))
	require.Equal(`" .ts"`, index.Quote(" .ts"))
	require.Equal(`"Ünïcode.ts"`, index.Quote("Ünïcode.ts"))
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	if len(data) == 0 {
		return nil
	}
	require.True(t, strings.HasSuffix(string(data), "\n"), "index must end with a newline")
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func TestGenerateDeduplicates(t *testing.T) {
	require := require.New(t)
	outFile := index.Path(t.TempDir())

	set := artifact.NewExportSet([]string{"a.ts", "b.ts", "a.ts", "c.ts"})
	require.NoError(index.Generate(outFile, set))

	require.ElementsMatch([]string{
		`export * from "a.ts";`,
		`export * from "b.ts";`,
		`export * from "c.ts";`,
	}, readLines(t, outFile))
}

func TestGenerateReplacesStaleIndex(t *testing.T) {
	require := require.New(t)
	outFile := index.Path(t.TempDir())

	require.NoError(os.WriteFile(outFile, []byte("export * from \"old.ts\";\n// unrelated\n"), 0666))
	require.NoError(index.Generate(outFile, artifact.ExportSet{"new.ts"}))
	require.Equal([]string{`export * from "new.ts";`}, readLines(t, outFile))
}

func TestGenerateEmpty(t *testing.T) {
	require := require.New(t)
	outFile := index.Path(t.TempDir())

	require.NoError(os.WriteFile(outFile, []byte("export * from \"old.ts\";\n"), 0666))
	require.NoError(index.Generate(outFile, nil))
	require.Empty(readLines(t, outFile))
}

func TestGenerateMissingDirectory(t *testing.T) {
	require := require.New(t)
	outFile := index.Path(filepath.Join(t.TempDir(), "does-not-exist"))

	err := index.Generate(outFile, artifact.ExportSet{"a.ts"})
	var ioErr *artifact.IOError
	require.ErrorAs(err, &ioErr)
	require.Equal(outFile, ioErr.Path)
}
